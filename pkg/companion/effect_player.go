package companion

import (
	"time"

	"github.com/gonewx/cursorbuddy/pkg/config"
	"github.com/gonewx/cursorbuddy/pkg/host"
	"github.com/gonewx/cursorbuddy/pkg/types"
	"go.uber.org/zap"
)

// Category 效果触发类别
type Category int

const (
	// CategoryHover 指针进入元素
	CategoryHover Category = iota
	// CategoryClick 点击元素
	CategoryClick
	// CategoryIdle 空闲
	CategoryIdle
)

// String 返回类别名称
func (c Category) String() string {
	switch c {
	case CategoryHover:
		return "hover"
	case CategoryClick:
		return "click"
	case CategoryIdle:
		return "idle"
	default:
		return "unknown"
	}
}

// 中性变换
const (
	neutralScale    = 1.0
	neutralRotation = 0.0
	fullTurnDegrees = 360.0
	wiggleDegrees   = 10.0
)

// pendingRevert 已调度但尚未触发的还原回调
type pendingRevert struct {
	category Category
	final    bool
	timer    host.Timer
}

// EffectPlayer 一次性变换效果播放器
//
// 每个类别一个独立的状态机：空闲 → 激活（立即写入变换）→ 定时还原 → 空闲。
// 不同类别可以同时激活，它们写入同一元素变换，同一属性后写入者生效，不做合并。
// 同一类别重复触发时，每次触发各自调度还原，快速连续触发可能出现视觉上不一致的还原。
type EffectPlayer struct {
	element host.Element
	clock   host.Clock
	logger  *zap.Logger

	// active 每个类别尚未完成的效果数量
	active map[Category]int
	// pending 尚未触发的还原回调
	pending map[*pendingRevert]struct{}
}

// NewEffectPlayer 创建效果播放器
func NewEffectPlayer(element host.Element, clock host.Clock, logger *zap.Logger) *EffectPlayer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EffectPlayer{
		element: element,
		clock:   clock,
		logger:  logger,
		active:  make(map[Category]int),
		pending: make(map[*pendingRevert]struct{}),
	}
}

// Play 在指定类别上播放效果
//
// spec 为 nil（禁用）、float 或未识别的类型时不做任何事，类别保持空闲。
func (p *EffectPlayer) Play(category Category, spec *config.EffectSpec) {
	if spec == nil {
		return
	}

	el := p.element
	intensity := spec.Intensity
	d := spec.Duration

	switch spec.Type {
	case types.EffectBounce:
		p.begin(category, d)
		el.SetScale(intensity, intensity)
		p.after(category, d, true, func() { el.SetScale(neutralScale, neutralScale) })

	case types.EffectSquash:
		p.begin(category, d)
		el.SetScale(intensity, 2-intensity)
		p.after(category, d, true, func() { el.SetScale(neutralScale, neutralScale) })

	case types.EffectSpin:
		p.begin(category, d)
		el.SetRotation(fullTurnDegrees)
		p.after(category, d, true, func() { el.SetRotation(neutralRotation) })

	case types.EffectWiggle:
		angle := intensity * wiggleDegrees
		p.begin(category, d)
		el.SetRotation(angle)
		p.after(category, d, false, func() { el.SetRotation(-angle) })
		p.after(category, 2*d, true, func() { el.SetRotation(neutralRotation) })

	case types.EffectFloat:
		// 漂浮只用于空闲振荡，没有离散变换

	default:
		p.logger.Debug("ignoring unknown effect type",
			zap.Stringer("category", category),
			zap.Stringer("type", spec.Type))
	}
}

// Active 指定类别是否处于激活状态
func (p *EffectPlayer) Active(category Category) bool {
	return p.active[category] > 0
}

// Pending 尚未触发的还原回调数量
func (p *EffectPlayer) Pending() int {
	return len(p.pending)
}

// CancelPending 取消所有尚未触发的还原回调
//
// Stop 不会调用此方法（暂停后还原照常触发）；只在伙伴被销毁时使用。
// 返回被取消的回调数量。
func (p *EffectPlayer) CancelPending() int {
	cancelled := 0
	for pr := range p.pending {
		if pr.timer != nil && pr.timer.Stop() {
			cancelled++
			if pr.final {
				p.finish(pr.category)
			}
		}
		delete(p.pending, pr)
	}
	return cancelled
}

func (p *EffectPlayer) begin(category Category, d time.Duration) {
	p.active[category]++
	p.element.SetTransition(d)
}

func (p *EffectPlayer) finish(category Category) {
	if p.active[category] > 0 {
		p.active[category]--
	}
}

// after 调度一个还原回调；final 表示该回调结束本次效果
func (p *EffectPlayer) after(category Category, d time.Duration, final bool, fn func()) {
	pr := &pendingRevert{category: category, final: final}
	p.pending[pr] = struct{}{}
	pr.timer = p.clock.AfterFunc(d, func() {
		delete(p.pending, pr)
		fn()
		if final {
			p.finish(category)
		}
	})
}
