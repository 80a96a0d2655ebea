// Package terminal 在终端中运行光标伙伴
//
// 伙伴逻辑与桌面端共用同一套 ECS 系统，坐标仍以像素为单位：
// 每个终端单元格对应 8x16 像素，绘制时把元素中心映射回单元格。
package terminal

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gonewx/cursorbuddy/pkg/companion"
	"github.com/gonewx/cursorbuddy/pkg/components"
	"github.com/gonewx/cursorbuddy/pkg/config"
	"github.com/gonewx/cursorbuddy/pkg/ecs"
	"github.com/gonewx/cursorbuddy/pkg/entities"
	"github.com/gonewx/cursorbuddy/pkg/systems"
	"github.com/gonewx/cursorbuddy/pkg/utils"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	companionStyle = tcell.StyleDefault.Foreground(tcell.ColorDodgerBlue).Bold(true)
	pausedStyle    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	statusStyle    = tcell.StyleDefault.Foreground(tcell.ColorSilver)
)

// Options 终端宿主参数
type Options struct {
	Config     config.TerminalConfig
	Companions []config.CompanionConfig
	Logger     *zap.Logger

	// Chirper 点击提示音，为 nil 时根据 Config.Sound 创建
	Chirper *Chirper
}

// Terminal 终端宿主
// 所有状态只在 Run 的主循环 goroutine 中访问
type Terminal struct {
	screen tcell.Screen
	cfg    config.TerminalConfig
	logger *zap.Logger

	entityManager *ecs.EntityManager
	input         *utils.ManualInput
	pointer       *systems.PointerSystem
	frames        *systems.FrameSystem
	timers        *systems.TimerSystem
	tweens        *systems.TweenSystem
	registry      *companion.Registry
	chirper       *Chirper

	buttonDown bool
	clicks     int
}

// New 创建终端宿主并启动全部伙伴
// screen 尚未初始化，调用方需要先调用 Init
func New(screen tcell.Screen, opts Options) (*Terminal, error) {
	if opts.Config.FrameMs <= 0 {
		return nil, fmt.Errorf("%w: terminal frameMs %d must be positive",
			config.ErrInvalidConfiguration, opts.Config.FrameMs)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	chirper := opts.Chirper
	if chirper == nil {
		chirper = NewChirper(opts.Config.Sound, opts.Config.ChirpsPerSecond, logger)
	}

	em := ecs.NewEntityManager()
	input := utils.NewManualInput(0, 0)
	t := &Terminal{
		screen:        screen,
		cfg:           opts.Config,
		logger:        logger.Named("terminal"),
		entityManager: em,
		input:         input,
		pointer:       systems.NewPointerSystem(em, input),
		frames:        systems.NewFrameSystem(),
		timers:        systems.NewTimerSystem(em),
		tweens:        systems.NewTweenSystem(em),
		chirper:       chirper,
	}

	t.registry = companion.NewRegistry(entities.NewCompanionFactory(entities.CompanionFactoryOptions{
		EntityManager: em,
		Pointer:       t.pointer,
		Frames:        t.frames,
		Clock:         t.timers,
		Logger:        logger,
		OnCreate: func(id ecs.EntityID, _ *companion.Controller) {
			t.pointer.ElementEvents(id).OnClick(t.onClick)
		},
	}), logger)

	if err := t.registry.AddAll(opts.Companions); err != nil {
		t.registry.RemoveAll()
		return nil, fmt.Errorf("failed to start companions: %w", err)
	}
	return t, nil
}

// Init 初始化屏幕并开启鼠标移动事件
func (t *Terminal) Init() error {
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal screen: %w", err)
	}
	t.screen.EnableMouse(tcell.MouseMotionEvents)
	t.screen.HideCursor()
	t.screen.Clear()
	return nil
}

// Run 运行主循环，直到按下退出键或 ctx 被取消
//
// 一个 goroutine 阻塞读取终端事件，另一个按固定间隔推进并绘制；
// 返回前销毁全部伙伴并还原终端。
func (t *Terminal) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	events := make(chan tcell.Event, 64)
	done := make(chan struct{})

	g.Go(func() error {
		defer close(events)
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return nil
			}
			select {
			case events <- ev:
			case <-done:
				return nil
			}
		}
	})

	g.Go(func() error {
		// Fini 让阻塞中的 PollEvent 返回 nil
		defer t.screen.Fini()
		defer close(done)
		defer t.Close()

		interval := time.Duration(t.cfg.FrameMs) * time.Millisecond
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		last := time.Now()
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev, ok := <-events:
				if !ok || !t.HandleEvent(ev) {
					t.logger.Info("terminal session finished", zap.Int("clicks", t.clicks))
					return nil
				}
			case now := <-ticker.C:
				t.Step(now.Sub(last).Seconds())
				last = now
				t.Draw()
			}
		}
	})

	return g.Wait()
}

// HandleEvent 处理一个终端事件，返回 false 表示请求退出
func (t *Terminal) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'p':
			running := t.registry.TogglePause()
			t.logger.Info("companions toggled", zap.Bool("running", running))
		}

	case *tcell.EventMouse:
		col, row := ev.Position()
		t.input.MoveTo(toPixels(col, row))
		down := ev.Buttons()&tcell.Button1 != 0
		if down && !t.buttonDown {
			t.input.Press()
		}
		t.buttonDown = down

	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}

// Step 推进一帧，顺序与桌面端一致
func (t *Terminal) Step(dt float64) {
	t.pointer.Update(dt)
	t.frames.Update(dt)
	t.timers.Update(dt)
	t.tweens.Update(dt)
	t.entityManager.RemoveMarkedEntities()
}

// Draw 绘制全部伙伴与底部状态行
func (t *Terminal) Draw() {
	t.screen.Clear()
	width, height := t.screen.Size()

	ids := ecs.GetEntitiesWith3[
		*components.TransformComponent,
		*components.SpriteComponent,
		*components.CompanionComponent,
	](t.entityManager)

	running := 0
	for _, c := range t.registry.List() {
		if c.Running() {
			running++
		}
	}
	style := companionStyle
	if running == 0 {
		style = pausedStyle
	}

	for _, id := range ids {
		transform, _ := ecs.GetComponent[*components.TransformComponent](t.entityManager, id)
		sprite, _ := ecs.GetComponent[*components.SpriteComponent](t.entityManager, id)
		comp, _ := ecs.GetComponent[*components.CompanionComponent](t.entityManager, id)

		col, row := toCell(transform.X+sprite.Width/2, transform.Y+sprite.Height/2)
		if col < 0 || row < 0 || col >= width || row >= height-1 {
			continue
		}
		glyph := Glyph(systems.DisplayTransform(t.entityManager, id), comp.Glyph)
		t.screen.SetContent(col, row, glyph, nil, style)
	}

	status := fmt.Sprintf(" %d/%d running  clicks %d  [p] pause  [q] quit", running, t.registry.Len(), t.clicks)
	for i, r := range []rune(status) {
		if i >= width {
			break
		}
		t.screen.SetContent(i, height-1, r, nil, statusStyle)
	}
	t.screen.Show()
}

// Registry 伙伴集合
func (t *Terminal) Registry() *companion.Registry {
	return t.registry
}

// Clicks 已点击伙伴的次数
func (t *Terminal) Clicks() int {
	return t.clicks
}

// Close 销毁全部伙伴并关闭提示音
func (t *Terminal) Close() {
	t.registry.RemoveAll()
	t.entityManager.RemoveMarkedEntities()
	t.chirper.Close()
}

func (t *Terminal) onClick() {
	t.clicks++
	t.chirper.Play()
}
