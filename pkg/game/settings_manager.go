package game

import (
	"fmt"

	"github.com/gonewx/cursorbuddy/pkg/utils"
	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Preferences 跨会话保留的用户偏好
// 只记录运行时通过热键切换的状态，启动参数仍以配置文件/命令行为准
type Preferences struct {
	Fullscreen   bool `yaml:"fullscreen"`   // 是否全屏
	DebugOverlay bool `yaml:"debugOverlay"` // 是否显示调试信息
	SoundEnabled bool `yaml:"soundEnabled"` // 点击伙伴时播放提示音
}

// DefaultPreferences 返回默认偏好
func DefaultPreferences() *Preferences {
	return &Preferences{
		Fullscreen:   false,
		DebugOverlay: false,
		SoundEnabled: true,
	}
}

// SettingsManager 偏好管理器
// 负责偏好的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	preferences  *Preferences
	logger       *zap.Logger
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "preferences"
)

// NewSettingsManager 创建偏好管理器
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存偏好）
//   - logger: 可为 nil
//
// 加载失败不是致命错误，使用默认偏好并记录警告。
func NewSettingsManager(gdataManager *gdata.Manager, logger *zap.Logger) *SettingsManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	sm := &SettingsManager{
		gdataManager: gdataManager,
		preferences:  DefaultPreferences(),
		logger:       logger.Named("settings"),
	}

	if err := sm.Load(); err != nil {
		sm.logger.Warn("failed to load preferences, using defaults", zap.Error(err))
	}
	return sm
}

// Load 从 gdata 加载偏好
//
// gdataManager 为 nil 或尚未保存时使用默认偏好
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil || !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.preferences = DefaultPreferences()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.preferences = DefaultPreferences()
		return fmt.Errorf("failed to load preferences: %w", err)
	}

	loaded := DefaultPreferences()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.preferences = DefaultPreferences()
		return fmt.Errorf("failed to unmarshal preferences: %w", err)
	}

	sm.preferences = loaded
	sm.logger.Debug("preferences loaded")
	return nil
}

// Save 保存偏好到 gdata
//
// gdataManager 为 nil 时返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.preferences)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}

	sm.logger.Debug("preferences saved")
	return nil
}

// Preferences 当前偏好
func (sm *SettingsManager) Preferences() *Preferences {
	return sm.preferences
}

// SetFullscreen 设置全屏（需调用 Save 持久化）
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.preferences.Fullscreen = enabled
}

// SetDebugOverlay 设置调试信息显示（需调用 Save 持久化）
func (sm *SettingsManager) SetDebugOverlay(enabled bool) {
	sm.preferences.DebugOverlay = enabled
}

// SetSoundEnabled 设置音效开关（需调用 Save 持久化）
func (sm *SettingsManager) SetSoundEnabled(enabled bool) {
	sm.preferences.SoundEnabled = enabled
}

// OpenStorage 打开应用的 gdata 存储
// 失败时返回 nil 与错误，调用方应进入降级模式
func OpenStorage(appName string) (*gdata.Manager, error) {
	if err := utils.EnsureStorageDir(); err != nil {
		return nil, err
	}
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("failed to open data storage: %w", err)
	}
	return m, nil
}
