package terminal

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	chirpSampleRate = beep.SampleRate(44100)
	chirpFrequency  = 880
	chirpDuration   = 40 * time.Millisecond
)

// Chirper 点击提示音
// 没有音频设备时静默降级；播放频率受限流器约束
type Chirper struct {
	limiter *rate.Limiter
	play    func()
	logger  *zap.Logger
}

// NewChirper 初始化扬声器并创建提示音
// enabled 为 false 或扬声器初始化失败时返回的 Chirper 不发声
func NewChirper(enabled bool, perSecond float64, logger *zap.Logger) *Chirper {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := newChirper(perSecond, nil, logger.Named("chirp"))
	if !enabled {
		return c
	}

	if err := speaker.Init(chirpSampleRate, chirpSampleRate.N(time.Second/10)); err != nil {
		// 非致命，没有声音也能运行
		c.logger.Warn("audio initialization failed, sound disabled", zap.Error(err))
		return c
	}
	c.play = playTone
	return c
}

func newChirper(perSecond float64, play func(), logger *zap.Logger) *Chirper {
	if perSecond <= 0 {
		perSecond = 1
	}
	return &Chirper{
		limiter: rate.NewLimiter(rate.Limit(perSecond), 1),
		play:    play,
		logger:  logger,
	}
}

// Enabled 是否会发声
func (c *Chirper) Enabled() bool {
	return c.play != nil
}

// Play 播放一次提示音，返回是否实际播放
func (c *Chirper) Play() bool {
	if c.play == nil || !c.limiter.Allow() {
		return false
	}
	c.play()
	return true
}

// Close 关闭扬声器
func (c *Chirper) Close() {
	if c.play != nil {
		speaker.Close()
		c.play = nil
	}
}

func playTone() {
	sine, err := generators.SineTone(chirpSampleRate, chirpFrequency)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(chirpSampleRate.N(chirpDuration), sine))
}
