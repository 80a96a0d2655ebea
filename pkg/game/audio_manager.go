package game

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"go.uber.org/zap"
)

// 点击提示音参数
const (
	// AudioSampleRate 音频上下文采样率
	AudioSampleRate = 48000

	clickFrequency = 880
	clickDuration  = 60 * time.Millisecond
	clickVolume    = 0.4
)

// AudioManager 桌面端音效管理器
// 职责：
//   - 预先合成点击提示音
//   - 根据 SettingsManager 中的 SoundEnabled 决定是否播放
type AudioManager struct {
	settingsManager *SettingsManager // 可为 nil，此时总是播放
	click           *audio.Player    // 点击提示音，没有音频上下文时为 nil
	logger          *zap.Logger
}

// NewAudioManager 创建音频管理器
//
// 参数：
//   - audioContext: ebiten 音频上下文，可为 nil（静音模式）
//   - sm: 偏好管理器，可为 nil
//   - logger: 可为 nil
func NewAudioManager(audioContext *audio.Context, sm *SettingsManager, logger *zap.Logger) *AudioManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	am := &AudioManager{settingsManager: sm, logger: logger.Named("audio")}
	if audioContext == nil {
		return am
	}

	pcm, err := ClickTone(audioContext.SampleRate(), clickFrequency, clickDuration)
	if err != nil {
		am.logger.Warn("failed to synthesize click tone", zap.Error(err))
		return am
	}
	am.click = audioContext.NewPlayerFromBytes(pcm)
	am.click.SetVolume(clickVolume)
	return am
}

// Enabled 是否启用音效
func (am *AudioManager) Enabled() bool {
	if am.settingsManager == nil {
		return true
	}
	return am.settingsManager.Preferences().SoundEnabled
}

// PlayClick 播放点击提示音
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlayClick() bool {
	if am.click == nil || !am.Enabled() {
		return false
	}
	if err := am.click.Rewind(); err != nil {
		am.logger.Warn("failed to rewind click tone", zap.Error(err))
	}
	am.click.Play()
	return true
}

// ClickTone 合成单声道正弦提示音，输出 16 位小端立体声 PCM
// 末尾做线性淡出，避免截断时的爆音
func ClickTone(sampleRate int, frequency float64, d time.Duration) ([]byte, error) {
	sr := beep.SampleRate(sampleRate)
	sine, err := generators.SineTone(sr, frequency)
	if err != nil {
		return nil, fmt.Errorf("failed to create sine tone: %w", err)
	}

	n := sr.N(d)
	samples := make([][2]float64, n)
	streamer := beep.Take(n, sine)
	filled := 0
	for filled < n {
		got, ok := streamer.Stream(samples[filled:])
		filled += got
		if !ok {
			break
		}
	}

	pcm := make([]byte, filled*4)
	for i := 0; i < filled; i++ {
		fade := 1 - float64(i)/float64(filled)
		v := int16(math.Round(samples[i][0] * fade * math.MaxInt16))
		binary.LittleEndian.PutUint16(pcm[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(pcm[i*4+2:], uint16(v))
	}
	return pcm, nil
}
