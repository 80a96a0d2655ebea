package systems

import (
	"sort"

	"github.com/gonewx/cursorbuddy/pkg/components"
	"github.com/gonewx/cursorbuddy/pkg/ecs"
	"github.com/gonewx/cursorbuddy/pkg/host"
	"github.com/gonewx/cursorbuddy/pkg/types"
	"github.com/gonewx/cursorbuddy/pkg/utils"
)

// PointerSystem 指针输入系统
//
// 每帧轮询一次输入源，并据此派发三类事件：
//   - 指针移动：位置发生变化时通知所有 OnPointerMove 订阅者（进程级共享）
//   - 指针进入：指针从区域外进入某个实体的 HitAreaComponent 时通知该实体的监听器
//   - 点击：按下发生在某个实体的 HitAreaComponent 内时通知该实体的监听器
//
// 首次轮询只记录基准位置，不派发移动事件。
type PointerSystem struct {
	entityManager *ecs.EntityManager
	input         utils.InputSource

	nextID    uint64
	onMove    map[uint64]func(types.Vector2)
	last      types.Vector2
	hasLast   bool
	lastPress bool
}

// NewPointerSystem 创建指针输入系统
func NewPointerSystem(em *ecs.EntityManager, input utils.InputSource) *PointerSystem {
	return &PointerSystem{
		entityManager: em,
		input:         input,
		onMove:        make(map[uint64]func(types.Vector2)),
	}
}

// OnPointerMove 实现 host.PointerSource
func (s *PointerSystem) OnPointerMove(fn func(pos types.Vector2)) host.Unsubscribe {
	s.nextID++
	id := s.nextID
	s.onMove[id] = fn
	return func() { delete(s.onMove, id) }
}

// MoveListeners 当前的指针移动订阅者数量
func (s *PointerSystem) MoveListeners() int {
	return len(s.onMove)
}

// Position 最近一次轮询到的指针位置
func (s *PointerSystem) Position() (types.Vector2, bool) {
	return s.last, s.hasLast
}

// ElementEvents 返回指定实体的元素事件流
//
// 监听器存放在实体的 PointerListenerComponent 上；实体不存在时订阅为空操作。
func (s *PointerSystem) ElementEvents(id ecs.EntityID) host.ElementEvents {
	return elementEvents{entityManager: s.entityManager, id: id}
}

// Update 轮询输入并派发事件
func (s *PointerSystem) Update(deltaTime float64) {
	if s.input == nil {
		return
	}
	state := s.input.Poll()
	pos := types.Vector2{X: float64(state.X), Y: float64(state.Y)}

	if !s.hasLast {
		s.last = pos
		s.hasLast = true
	} else if pos != s.last {
		s.last = pos
		for _, fn := range s.moveListeners() {
			fn(pos)
		}
	}

	s.dispatchElementEvents(pos, state.JustPressed)
}

func (s *PointerSystem) dispatchElementEvents(pos types.Vector2, pressed bool) {
	entities := ecs.GetEntitiesWith3[
		*components.TransformComponent,
		*components.HitAreaComponent,
		*components.PointerListenerComponent,
	](s.entityManager)

	for _, id := range entities {
		if s.entityManager.IsMarkedForDestroy(id) {
			continue
		}
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		hitArea, _ := ecs.GetComponent[*components.HitAreaComponent](s.entityManager, id)
		listeners, _ := ecs.GetComponent[*components.PointerListenerComponent](s.entityManager, id)

		if !hitArea.IsEnabled {
			hitArea.IsHovered = false
			continue
		}

		inside := hitArea.Contains(transform.X, transform.Y, pos.X, pos.Y)
		entered := inside && !hitArea.IsHovered
		hitArea.IsHovered = inside

		if entered {
			for _, fn := range listeners.EnterListeners() {
				fn()
			}
		}
		if pressed && inside {
			for _, fn := range listeners.ClickListeners() {
				fn()
			}
		}
	}
}

func (s *PointerSystem) moveListeners() []func(types.Vector2) {
	ids := make([]uint64, 0, len(s.onMove))
	for id := range s.onMove {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]func(types.Vector2), 0, len(ids))
	for _, id := range ids {
		out = append(out, s.onMove[id])
	}
	return out
}

// elementEvents 实现 host.ElementEvents
type elementEvents struct {
	entityManager *ecs.EntityManager
	id            ecs.EntityID
}

func (e elementEvents) listeners() (*components.PointerListenerComponent, bool) {
	if !e.entityManager.Exists(e.id) || e.entityManager.IsMarkedForDestroy(e.id) {
		return nil, false
	}
	if l, ok := ecs.GetComponent[*components.PointerListenerComponent](e.entityManager, e.id); ok {
		return l, true
	}
	l := components.NewPointerListenerComponent()
	ecs.AddComponent(e.entityManager, e.id, l)
	return l, true
}

// OnPointerEnter 实现 host.ElementEvents
func (e elementEvents) OnPointerEnter(fn func()) host.Unsubscribe {
	l, ok := e.listeners()
	if !ok {
		return func() {}
	}
	return l.AddEnter(fn)
}

// OnClick 实现 host.ElementEvents
func (e elementEvents) OnClick(fn func()) host.Unsubscribe {
	l, ok := e.listeners()
	if !ok {
		return func() {}
	}
	return l.AddClick(fn)
}
