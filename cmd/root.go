// Package cmd 提供 cursorbuddy 的命令行入口
//
// 配置优先级（高到低）：命令行参数 > CURSORBUDDY_ 环境变量 > 配置文件 > 默认值。
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/gonewx/cursorbuddy/internal/observability"
	"github.com/gonewx/cursorbuddy/pkg/app"
	"github.com/gonewx/cursorbuddy/pkg/config"
	"github.com/gonewx/cursorbuddy/pkg/entities"
	"github.com/gonewx/cursorbuddy/pkg/game"
	"github.com/gonewx/cursorbuddy/pkg/terminal"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/quasilyte/gdata/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// appName gdata 存储目录名
const appName = "cursorbuddy"

// annotationQuietConsole 标记不向标准错误输出日志的命令（终端界面占用控制台）
const annotationQuietConsole = "quietConsole"

// cli 一次命令执行的状态
// 外部依赖以函数字段注入，便于测试替换
type cli struct {
	cfgFile string
	v       *viper.Viper
	cfg     config.AppConfig
	logger  *zap.Logger

	openStorage func() (*gdata.Manager, error)
	loader      entities.ImageLoader
	newAudio    func(sm *game.SettingsManager) *game.AudioManager
	runDesktop  func(a *app.App) error
	newScreen   func() (tcell.Screen, error)
	runTerminal func(ctx context.Context, t *terminal.Terminal) error
}

func newCLI() *cli {
	c := &cli{
		logger:      zap.NewNop(),
		openStorage: func() (*gdata.Manager, error) { return game.OpenStorage(appName) },
		runDesktop:  app.Run,
		newScreen:   tcell.NewScreen,
		runTerminal: func(ctx context.Context, t *terminal.Terminal) error { return t.Run(ctx) },
	}
	c.newAudio = func(sm *game.SettingsManager) *game.AudioManager {
		return game.NewAudioManager(audio.NewContext(game.AudioSampleRate), sm, c.logger)
	}
	return c
}

// flagKeys 命令行参数到配置键的映射
var flagKeys = map[string]string{
	"manifest":    "manifest",
	"debug":       "debug",
	"log-level":   "logger.level",
	"log-format":  "logger.format",
	"log-file":    "logger.logFile",
	"width":       "window.width",
	"height":      "window.height",
	"tps":         "window.tps",
	"transparent": "window.transparent",
	"fullscreen":  "window.fullscreen",
	"floating":    "window.floating",
	"sound":       "terminal.sound",
	"frame-ms":    "terminal.frameMs",
}

func newRootCmd(c *cli) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "cursorbuddy",
		Short:         "Companions that follow your cursor",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.initializeConfig(cmd); err != nil {
				return err
			}
			var console zapcore.WriteSyncer = zapcore.Lock(os.Stderr)
			if cmd.Annotations[annotationQuietConsole] == "true" {
				console = nil
			}
			c.logger = observability.Initialize(c.cfg.Logger, console)
			c.logger.Debug("configuration loaded",
				zap.String("config", c.v.ConfigFileUsed()),
				zap.String("command", cmd.Name()))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			observability.Sync()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&c.cfgFile, "config", "c", "", "config file (default is ./cursorbuddy.yaml)")
	flags.StringP("manifest", "m", "", "companion manifest file (default: stored manifest, then built-in)")
	flags.Bool("debug", false, "show the debug overlay")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console, json)")
	flags.String("log-file", "", "also write JSON logs to this file")

	rootCmd.SetVersionTemplate("{{printf \"%s\\n\" .Version}}")
	rootCmd.AddCommand(
		newRunCmd(c),
		newTUICmd(c),
		newValidateCmd(c),
		newInitCmd(c),
		newVersionCmd(),
	)
	return rootCmd
}

// initializeConfig 读取配置文件与环境变量，并绑定当前命令的参数
func (c *cli) initializeConfig(cmd *cobra.Command) error {
	v := viper.New()
	config.SetDefaults(v)
	config.ConfigureEnv(v)

	if c.cfgFile != "" {
		v.SetConfigFile(c.cfgFile)
	} else {
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(dir + string(os.PathSeparator) + appName)
		}
		v.SetConfigName(appName)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok && bindErr == nil {
			bindErr = v.BindPFlag(key, f)
		}
	})
	if bindErr != nil {
		return fmt.Errorf("failed to bind flags: %w", bindErr)
	}

	cfg, err := config.NewAppConfigFromViper(v)
	if err != nil {
		return err
	}
	c.v, c.cfg = v, cfg
	return nil
}

// Execute 执行根命令，出错时以状态码 1 退出
func Execute() {
	c := newCLI()
	rootCmd := newRootCmd(c)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		c.logger.Error("command execution failed", zap.Error(err))
		observability.Sync()
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
