package config

import "fmt"

// 窗口默认配置
const (
	// DefaultWindowWidth 默认窗口逻辑宽度
	DefaultWindowWidth = 800

	// DefaultWindowHeight 默认窗口逻辑高度
	DefaultWindowHeight = 600

	// DefaultTPS 默认逻辑帧率（每秒 tick 数）
	DefaultTPS = 60

	// DefaultTerminalFrameMs 终端模式下每帧间隔（毫秒）
	DefaultTerminalFrameMs = 16
)

// AppConfig 应用级配置
//
// 由 viper 从配置文件、环境变量（CURSORBUDDY_ 前缀）和命令行参数合并而来。
type AppConfig struct {
	Window   WindowConfig   `mapstructure:"window"`
	Terminal TerminalConfig `mapstructure:"terminal"`
	Logger   LoggerConfig   `mapstructure:"logger"`

	// Manifest 伙伴清单文件路径，为空时依次尝试用户存储与内置默认清单
	Manifest string `mapstructure:"manifest"`

	// Debug 启动时显示调试面板
	Debug bool `mapstructure:"debug"`
}

// WindowConfig 桌面窗口配置
type WindowConfig struct {
	Width       int    `mapstructure:"width"`
	Height      int    `mapstructure:"height"`
	Title       string `mapstructure:"title"`
	TPS         int    `mapstructure:"tps"`
	Transparent bool   `mapstructure:"transparent"`
	Decorated   bool   `mapstructure:"decorated"`
	Floating    bool   `mapstructure:"floating"`
	Fullscreen  bool   `mapstructure:"fullscreen"`
}

// TerminalConfig 终端模式配置
type TerminalConfig struct {
	// FrameMs 每帧间隔（毫秒）
	FrameMs int `mapstructure:"frameMs"`

	// Sound 点击时播放提示音
	Sound bool `mapstructure:"sound"`

	// ChirpsPerSecond 提示音每秒最多播放次数
	ChirpsPerSecond float64 `mapstructure:"chirpsPerSecond"`
}

// LoggerConfig 日志配置
type LoggerConfig struct {
	Level       string `mapstructure:"level"`
	Format      string `mapstructure:"format"`
	ServiceName string `mapstructure:"serviceName"`
	AddSource   bool   `mapstructure:"addSource"`

	// LogFile 日志文件路径，为空时只输出到控制台
	LogFile    string `mapstructure:"logFile"`
	MaxSize    int    `mapstructure:"maxSize"`
	MaxBackups int    `mapstructure:"maxBackups"`
	MaxAge     int    `mapstructure:"maxAge"`
	Compress   bool   `mapstructure:"compress"`
}

// DefaultAppConfig 返回默认应用配置
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Window: WindowConfig{
			Width:     DefaultWindowWidth,
			Height:    DefaultWindowHeight,
			Title:     "Cursor Buddy",
			TPS:       DefaultTPS,
			Decorated: true,
		},
		Terminal: TerminalConfig{
			FrameMs:         DefaultTerminalFrameMs,
			ChirpsPerSecond: 8,
		},
		Logger: LoggerConfig{
			Level:       "info",
			Format:      "console",
			ServiceName: "cursorbuddy",
			MaxSize:     10,
			MaxBackups:  3,
			MaxAge:      7,
		},
	}
}

// Validate 校验应用配置
func (c AppConfig) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Window.TPS <= 0 {
		return fmt.Errorf("window tps %d must be positive", c.Window.TPS)
	}
	if c.Terminal.FrameMs <= 0 {
		return fmt.Errorf("terminal frameMs %d must be positive", c.Terminal.FrameMs)
	}
	return nil
}
