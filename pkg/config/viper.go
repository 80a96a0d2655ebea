package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix 环境变量前缀，例如 CURSORBUDDY_WINDOW_WIDTH
const EnvPrefix = "CURSORBUDDY"

// SetDefaults 将 DefaultAppConfig 的值注册为 viper 默认值
// 只有注册过的键才会被 AutomaticEnv 覆盖
func SetDefaults(v *viper.Viper) {
	d := DefaultAppConfig()

	v.SetDefault("window.width", d.Window.Width)
	v.SetDefault("window.height", d.Window.Height)
	v.SetDefault("window.title", d.Window.Title)
	v.SetDefault("window.tps", d.Window.TPS)
	v.SetDefault("window.transparent", d.Window.Transparent)
	v.SetDefault("window.decorated", d.Window.Decorated)
	v.SetDefault("window.floating", d.Window.Floating)
	v.SetDefault("window.fullscreen", d.Window.Fullscreen)

	v.SetDefault("terminal.frameMs", d.Terminal.FrameMs)
	v.SetDefault("terminal.sound", d.Terminal.Sound)
	v.SetDefault("terminal.chirpsPerSecond", d.Terminal.ChirpsPerSecond)

	v.SetDefault("logger.level", d.Logger.Level)
	v.SetDefault("logger.format", d.Logger.Format)
	v.SetDefault("logger.serviceName", d.Logger.ServiceName)
	v.SetDefault("logger.addSource", d.Logger.AddSource)
	v.SetDefault("logger.logFile", d.Logger.LogFile)
	v.SetDefault("logger.maxSize", d.Logger.MaxSize)
	v.SetDefault("logger.maxBackups", d.Logger.MaxBackups)
	v.SetDefault("logger.maxAge", d.Logger.MaxAge)
	v.SetDefault("logger.compress", d.Logger.Compress)

	v.SetDefault("manifest", d.Manifest)
	v.SetDefault("debug", d.Debug)
}

// ConfigureEnv 启用 CURSORBUDDY_ 前缀的环境变量覆盖
func ConfigureEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// NewAppConfigFromViper 从 viper 解析并校验应用配置
func NewAppConfigFromViper(v *viper.Viper) (AppConfig, error) {
	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return AppConfig{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return AppConfig{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
