// Package app 提供桌面端应用的核心包装器
//
// 该包将 ECS 世界、伙伴集合与 ebiten 游戏循环组装在一起，
// 桌面端通过 cmd 的 run 命令调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/gonewx/cursorbuddy/pkg/companion"
	"github.com/gonewx/cursorbuddy/pkg/config"
	"github.com/gonewx/cursorbuddy/pkg/ecs"
	"github.com/gonewx/cursorbuddy/pkg/entities"
	"github.com/gonewx/cursorbuddy/pkg/game"
	"github.com/gonewx/cursorbuddy/pkg/systems"
	"github.com/gonewx/cursorbuddy/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"
)

// backgroundColor 非透明窗口的背景色
var backgroundColor = color.RGBA{R: 245, G: 245, B: 245, A: 255}

// KeySource 热键输入
type KeySource interface {
	IsKeyJustPressed(key ebiten.Key) bool
}

type ebitenKeys struct{}

func (ebitenKeys) IsKeyJustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}

// Options 定义应用启动参数
type Options struct {
	// Config 应用配置（窗口、TPS 等）
	Config config.AppConfig
	// Companions 启动时创建的伙伴
	Companions []config.CompanionConfig
	// Settings 偏好管理器，可为 nil
	Settings *game.SettingsManager
	// Audio 点击音效，可为 nil
	Audio *game.AudioManager
	// Logger 可为 nil
	Logger *zap.Logger

	// Input 指针输入源，为 nil 时使用 ebiten 鼠标/触摸
	Input utils.InputSource
	// Keys 热键输入，为 nil 时使用 ebiten 键盘
	Keys KeySource
	// Loader 伙伴图像加载器，为 nil 时使用 entities.LoadCompanionImage
	Loader entities.ImageLoader
}

// App 是桌面端应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	cfg      config.AppConfig
	logger   *zap.Logger
	settings *game.SettingsManager
	audio    *game.AudioManager
	keys     KeySource

	entityManager *ecs.EntityManager
	pointer       *systems.PointerSystem
	frames        *systems.FrameSystem
	timers        *systems.TimerSystem
	tweens        *systems.TweenSystem
	render        *systems.RenderSystem
	registry      *companion.Registry

	overlay     *DebugOverlay
	showOverlay bool
	fullscreen  bool
	quit        bool
	deltaTime   float64
}

// NewApp 创建并初始化应用，所有伙伴在返回前已启动
func NewApp(opts Options) (*App, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	input := opts.Input
	if input == nil {
		input = utils.EbitenInput{}
	}
	keys := opts.Keys
	if keys == nil {
		keys = ebitenKeys{}
	}
	loader := opts.Loader
	if loader == nil {
		loader = entities.LoadCompanionImage
	}

	em := ecs.NewEntityManager()
	a := &App{
		cfg:           opts.Config,
		logger:        logger.Named("app"),
		settings:      opts.Settings,
		audio:         opts.Audio,
		keys:          keys,
		entityManager: em,
		pointer:       systems.NewPointerSystem(em, input),
		frames:        systems.NewFrameSystem(),
		timers:        systems.NewTimerSystem(em),
		tweens:        systems.NewTweenSystem(em),
		render:        systems.NewRenderSystem(em),
		overlay:       NewDebugOverlay(),
		showOverlay:   opts.Config.Debug,
		fullscreen:    opts.Config.Window.Fullscreen,
		deltaTime:     1.0 / float64(opts.Config.Window.TPS),
	}

	if a.settings != nil {
		prefs := a.settings.Preferences()
		a.showOverlay = a.showOverlay || prefs.DebugOverlay
		a.fullscreen = a.fullscreen || prefs.Fullscreen
	}

	a.registry = companion.NewRegistry(entities.NewCompanionFactory(entities.CompanionFactoryOptions{
		EntityManager: em,
		Pointer:       a.pointer,
		Frames:        a.frames,
		Clock:         a.timers,
		Loader:        loader,
		Logger:        logger,
		OnCreate: func(id ecs.EntityID, _ *companion.Controller) {
			a.pointer.ElementEvents(id).OnClick(a.onCompanionClick)
		},
	}), logger)

	if err := a.registry.AddAll(opts.Companions); err != nil {
		a.registry.RemoveAll()
		return nil, fmt.Errorf("failed to start companions: %w", err)
	}

	a.logger.Info("app initialized",
		zap.Int("companions", a.registry.Len()),
		zap.Int("tps", opts.Config.Window.TPS))
	return a, nil
}

// Update 更新逻辑
// 每个 tick 调用一次
func (a *App) Update() error {
	a.handleHotkeys()
	if a.quit {
		return ebiten.Termination
	}

	a.Step(a.deltaTime)
	return nil
}

// Step 推进一帧：指针 → 帧任务 → 计时器 → 过渡，最后清理已销毁的实体
func (a *App) Step(dt float64) {
	a.pointer.Update(dt)
	a.frames.Update(dt)
	a.timers.Update(dt)
	a.tweens.Update(dt)
	a.entityManager.RemoveMarkedEntities()
}

func (a *App) handleHotkeys() {
	switch {
	case a.keys.IsKeyJustPressed(ebiten.KeyEscape):
		a.quit = true
		a.logger.Info("quit requested")
		return
	case a.keys.IsKeyJustPressed(ebiten.KeyP):
		running := a.registry.TogglePause()
		a.logger.Info("companions toggled", zap.Bool("running", running))
	case a.keys.IsKeyJustPressed(ebiten.KeyF11):
		a.fullscreen = !a.fullscreen
		ebiten.SetFullscreen(a.fullscreen)
		if a.settings != nil {
			a.settings.SetFullscreen(a.fullscreen)
			a.savePreferences()
		}
	case a.keys.IsKeyJustPressed(ebiten.KeyS):
		if a.settings != nil {
			prefs := a.settings.Preferences()
			a.settings.SetSoundEnabled(!prefs.SoundEnabled)
			a.savePreferences()
			a.logger.Info("sound toggled", zap.Bool("enabled", prefs.SoundEnabled))
		}
	case a.keys.IsKeyJustPressed(ebiten.KeyF3):
		a.showOverlay = !a.showOverlay
		if a.settings != nil {
			a.settings.SetDebugOverlay(a.showOverlay)
			a.savePreferences()
		}
	}
}

func (a *App) onCompanionClick() {
	if a.audio != nil {
		a.audio.PlayClick()
	}
}

func (a *App) savePreferences() {
	if err := a.settings.Save(); err != nil {
		a.logger.Warn("failed to save preferences", zap.Error(err))
	}
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	if !a.cfg.Window.Transparent {
		screen.Fill(backgroundColor)
	}
	a.render.Draw(screen)

	if a.showOverlay {
		a.overlay.Draw(screen, a.DebugLines())
	}
}

// Layout 返回逻辑屏幕尺寸
// 移动端直接使用设备屏幕尺寸，桌面端使用配置的窗口尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if utils.IsMobile() && outsideWidth > 0 && outsideHeight > 0 {
		return outsideWidth, outsideHeight
	}
	return a.cfg.Window.Width, a.cfg.Window.Height
}

// DebugLines 调试信息内容
func (a *App) DebugLines() []string {
	pos, _ := a.pointer.Position()
	lines := []string{
		fmt.Sprintf("TPS %.0f  FPS %.0f", ebiten.ActualTPS(), ebiten.ActualFPS()),
		fmt.Sprintf("pointer (%.0f, %.0f)  entities %d  timers %d",
			pos.X, pos.Y, a.entityManager.EntityCount(), a.timers.Pending()),
	}
	for _, c := range a.registry.List() {
		p := c.Position()
		state := "running"
		if !c.Running() {
			state = "paused"
		}
		lines = append(lines, fmt.Sprintf("%s %s (%.1f, %.1f) phase %.2f",
			displayName(c), state, p.X, p.Y, c.IdlePhase()))
	}
	return lines
}

func displayName(c *companion.Controller) string {
	if c.Name() != "" {
		return c.Name()
	}
	return c.ID()[:8]
}

// Registry 伙伴集合
func (a *App) Registry() *companion.Registry {
	return a.registry
}

// EntityManager ECS 实体管理器
func (a *App) EntityManager() *ecs.EntityManager {
	return a.entityManager
}

// OverlayVisible 调试信息是否显示
func (a *App) OverlayVisible() bool {
	return a.showOverlay
}

// Close 销毁所有伙伴
func (a *App) Close() {
	a.registry.RemoveAll()
	a.entityManager.RemoveMarkedEntities()
}

// Run 设置窗口并运行游戏循环，直到窗口关闭或按下 Esc
func Run(a *App) error {
	w := a.cfg.Window
	ebiten.SetWindowSize(w.Width, w.Height)
	ebiten.SetWindowTitle(w.Title)
	ebiten.SetWindowDecorated(w.Decorated)
	ebiten.SetWindowFloating(w.Floating)
	ebiten.SetTPS(w.TPS)
	ebiten.SetFullscreen(a.fullscreen)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	defer a.Close()

	err := ebiten.RunGameWithOptions(a, &ebiten.RunGameOptions{
		ScreenTransparent: w.Transparent,
	})
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("game loop failed: %w", err)
	}
	return nil
}
