package systems

import (
	"sort"
	"time"

	"github.com/gonewx/cursorbuddy/pkg/components"
	"github.com/gonewx/cursorbuddy/pkg/ecs"
	"github.com/gonewx/cursorbuddy/pkg/host"
)

// timerEpsilon 浮点累计误差容忍度（秒）
const timerEpsilon = 1e-9

// TimerSystem 计时器系统
//
// 实现 host.Clock：每个延迟回调是一个带 TimerComponent 的实体，
// 时间只随 Update 推进，因此同一套逻辑既能驱动游戏循环，也能在测试中精确模拟时间。
type TimerSystem struct {
	entityManager *ecs.EntityManager
	nextSeq       uint64
	now           float64
}

// NewTimerSystem 创建计时器系统
func NewTimerSystem(em *ecs.EntityManager) *TimerSystem {
	return &TimerSystem{entityManager: em}
}

// timerHandle 实现 host.Timer
type timerHandle struct {
	system *TimerSystem
	id     ecs.EntityID
}

// Stop 取消尚未触发的回调
func (h timerHandle) Stop() bool {
	timer, ok := ecs.GetComponent[*components.TimerComponent](h.system.entityManager, h.id)
	if !ok || timer.IsReady || timer.Cancelled {
		return false
	}
	timer.Cancelled = true
	h.system.entityManager.DestroyEntity(h.id)
	return true
}

// AfterFunc 实现 host.Clock
func (s *TimerSystem) AfterFunc(d time.Duration, fn func()) host.Timer {
	if d < 0 {
		d = 0
	}
	s.nextSeq++
	id := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, id, &components.TimerComponent{
		Name:       "after_func",
		TargetTime: d.Seconds(),
		Seq:        s.nextSeq,
		Callback:   fn,
	})
	return timerHandle{system: s, id: id}
}

// Update 推进所有计时器并触发到期回调
//
// 到期回调按剩余时间升序触发，剩余时间相同时按创建顺序。
// 回调中新建的计时器若在本次推进后已到期，同样在本次 Update 中触发。
func (s *TimerSystem) Update(deltaTime float64) {
	s.now += deltaTime

	// 先推进已有的计时器
	for _, id := range ecs.GetEntitiesWith1[*components.TimerComponent](s.entityManager) {
		timer, _ := ecs.GetComponent[*components.TimerComponent](s.entityManager, id)
		if timer.IsReady || timer.Cancelled {
			continue
		}
		timer.CurrentTime += deltaTime
	}

	for {
		due := s.dueTimers()
		if len(due) == 0 {
			return
		}
		for _, id := range due {
			timer, ok := ecs.GetComponent[*components.TimerComponent](s.entityManager, id)
			if !ok || timer.Cancelled || timer.IsReady {
				continue
			}
			timer.IsReady = true
			s.entityManager.DestroyEntity(id)
			if timer.Callback != nil {
				timer.Callback()
			}
		}
	}
}

// dueTimers 返回已到期且尚未触发的计时器，按触发顺序排列
func (s *TimerSystem) dueTimers() []ecs.EntityID {
	var due []ecs.EntityID
	for _, id := range ecs.GetEntitiesWith1[*components.TimerComponent](s.entityManager) {
		timer, _ := ecs.GetComponent[*components.TimerComponent](s.entityManager, id)
		if timer.IsReady || timer.Cancelled {
			continue
		}
		if timer.Remaining() <= timerEpsilon {
			due = append(due, id)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		a, _ := ecs.GetComponent[*components.TimerComponent](s.entityManager, due[i])
		b, _ := ecs.GetComponent[*components.TimerComponent](s.entityManager, due[j])
		if ra, rb := a.Remaining(), b.Remaining(); ra != rb {
			return ra < rb
		}
		return a.Seq < b.Seq
	})
	return due
}

// Pending 尚未触发且未取消的计时器数量
func (s *TimerSystem) Pending() int {
	n := 0
	for _, id := range ecs.GetEntitiesWith1[*components.TimerComponent](s.entityManager) {
		timer, _ := ecs.GetComponent[*components.TimerComponent](s.entityManager, id)
		if !timer.IsReady && !timer.Cancelled {
			n++
		}
	}
	return n
}

// Now 累计推进的时间（秒）
func (s *TimerSystem) Now() float64 {
	return s.now
}
