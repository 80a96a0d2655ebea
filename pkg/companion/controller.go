package companion

import (
	"fmt"

	"github.com/gonewx/cursorbuddy/pkg/config"
	"github.com/gonewx/cursorbuddy/pkg/host"
	"github.com/gonewx/cursorbuddy/pkg/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Deps 控制器依赖的宿主环境
type Deps struct {
	// Element 伙伴的可视元素
	Element host.Element
	// Pointer 进程级共享的指针移动事件流
	Pointer host.PointerSource
	// Events 元素自身的悬停/点击事件流
	Events host.ElementEvents
	// Frames 帧调度原语
	Frames host.FrameLoop
	// Clock 延迟执行原语（效果还原）
	Clock host.Clock
	// Logger 可选，为 nil 时不输出日志
	Logger *zap.Logger
}

func (d Deps) validate() error {
	switch {
	case d.Element == nil:
		return fmt.Errorf("%w: element is required", config.ErrInvalidConfiguration)
	case d.Pointer == nil:
		return fmt.Errorf("%w: pointer source is required", config.ErrInvalidConfiguration)
	case d.Events == nil:
		return fmt.Errorf("%w: element events are required", config.ErrInvalidConfiguration)
	case d.Frames == nil:
		return fmt.Errorf("%w: frame loop is required", config.ErrInvalidConfiguration)
	case d.Clock == nil:
		return fmt.Errorf("%w: clock is required", config.ErrInvalidConfiguration)
	}
	return nil
}

// Controller 单个伙伴的控制器
//
// 持有伙伴状态（position / target / running / 空闲相位），
// 在 Start/Stop 时挂载/卸载输入监听，并通过帧任务驱动每帧的跟随与漂浮。
// 所有方法都应在宿主的单一逻辑线程上调用。
type Controller struct {
	id     string
	cfg    config.CompanionConfig
	deps   Deps
	logger *zap.Logger

	player *EffectPlayer
	idle   *IdleOscillator

	position types.Vector2
	target   types.Vector2
	running  bool

	// generation 每次 Start 递增，旧的帧任务据此自行退出
	generation uint64
	ticks      uint64

	unsubscribes []host.Unsubscribe
}

// New 创建伙伴控制器
//
// 返回:
//   - *Controller: 尚未启动的控制器，position 与 target 均为 (0,0)
//   - error: 配置或依赖无效时返回包装了 config.ErrInvalidConfiguration 的错误
func New(cfg config.CompanionConfig, deps Deps) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := deps.validate(); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("companion").With(zap.String("id", id), zap.String("name", cfg.Name))

	c := &Controller{
		id:     id,
		cfg:    cfg,
		deps:   deps,
		logger: logger,
		player: NewEffectPlayer(deps.Element, deps.Clock, logger.Named("effects")),
	}
	if cfg.IdleFloats() {
		c.idle = NewIdleOscillator(cfg.Idle.Intensity, cfg.IdleRate)
	}
	return c, nil
}

// Start 启动伙伴
//
// 幂等：已运行时直接返回。挂载指针移动监听（共享）以及元素的悬停/点击监听，
// 并在下一帧开始执行帧任务。
func (c *Controller) Start() {
	if c.running {
		return
	}
	c.running = true
	c.generation++

	c.unsubscribes = append(c.unsubscribes,
		c.deps.Pointer.OnPointerMove(c.handlePointerMove),
		c.deps.Events.OnPointerEnter(c.handlePointerEnter),
		c.deps.Events.OnClick(c.handleClick),
	)

	gen := c.generation
	c.deps.Frames.Schedule(func() bool { return c.tick(gen) })

	c.logger.Debug("companion started", zap.Uint64("generation", gen))
}

// Stop 停止伙伴
//
// 幂等：未运行时直接返回。卸载全部监听，帧任务在下一帧观察到停止后退出。
// 已调度的效果还原不会被取消，它们仍会按时触发。
func (c *Controller) Stop() {
	if !c.running {
		return
	}
	c.running = false
	for _, unsubscribe := range c.unsubscribes {
		unsubscribe()
	}
	c.unsubscribes = c.unsubscribes[:0]

	c.logger.Debug("companion stopped",
		zap.Uint64("ticks", c.ticks),
		zap.Int("pendingReverts", c.player.Pending()))
}

// Destroy 停止伙伴、取消尚未触发的效果还原并分离元素
func (c *Controller) Destroy() {
	c.Stop()
	if n := c.player.CancelPending(); n > 0 {
		c.logger.Debug("cancelled pending reverts", zap.Int("count", n))
	}
	c.deps.Element.Detach()
}

// tick 帧任务：返回 false 时帧循环丢弃该任务
func (c *Controller) tick(gen uint64) bool {
	if !c.running || gen != c.generation {
		return false
	}
	c.ticks++

	c.position = Advance(c.position, c.target, c.cfg.FollowSpeed)

	floatY := 0.0
	if c.idle != nil {
		floatY = c.idle.Next()
	}
	c.deps.Element.SetTranslation(c.position.X, c.position.Y+floatY)
	return true
}

func (c *Controller) handlePointerMove(pos types.Vector2) {
	c.target = pos.Add(c.cfg.Offset)
}

func (c *Controller) handlePointerEnter() {
	c.player.Play(CategoryHover, c.cfg.Hover)
}

func (c *Controller) handleClick() {
	c.player.Play(CategoryClick, c.cfg.Click)
}

// ID 控制器唯一标识
func (c *Controller) ID() string { return c.id }

// Name 配置中的伙伴名称
func (c *Controller) Name() string { return c.cfg.Name }

// Config 规范化后的配置
func (c *Controller) Config() config.CompanionConfig { return c.cfg }

// Position 当前渲染位置（不含空闲漂浮偏移）
func (c *Controller) Position() types.Vector2 { return c.position }

// Target 当前目标位置
func (c *Controller) Target() types.Vector2 { return c.target }

// Running 是否处于运行状态
func (c *Controller) Running() bool { return c.running }

// Ticks 已执行的帧任务次数
func (c *Controller) Ticks() uint64 { return c.ticks }

// IdlePhase 空闲振荡相位；未启用空闲效果时为 0
func (c *Controller) IdlePhase() float64 {
	if c.idle == nil {
		return 0
	}
	return c.idle.Phase()
}

// Effects 效果播放器（只读查询用）
func (c *Controller) Effects() *EffectPlayer { return c.player }
