package systems

import (
	"github.com/gonewx/cursorbuddy/pkg/host"
)

// FrameSystem 帧任务调度系统
//
// 实现 host.FrameLoop。Schedule 注册的任务从下一次 Update 开始每帧执行一次，
// 任务返回 false 后被移除。任务执行期间新注册的任务同样延迟到下一帧。
type FrameSystem struct {
	active  []host.FrameTask
	pending []host.FrameTask
	frame   uint64
}

// NewFrameSystem 创建帧任务调度系统
func NewFrameSystem() *FrameSystem {
	return &FrameSystem{}
}

// Schedule 实现 host.FrameLoop
func (s *FrameSystem) Schedule(task host.FrameTask) {
	if task == nil {
		return
	}
	s.pending = append(s.pending, task)
}

// Update 执行一帧
func (s *FrameSystem) Update(deltaTime float64) {
	s.frame++

	if len(s.pending) > 0 {
		s.active = append(s.active, s.pending...)
		s.pending = nil
	}

	kept := s.active[:0]
	for _, task := range s.active {
		if task() {
			kept = append(kept, task)
		}
	}
	// 清除尾部引用，避免持有已结束的闭包
	for i := len(kept); i < len(s.active); i++ {
		s.active[i] = nil
	}
	s.active = kept
}

// ActiveTasks 当前正在执行的任务数量（不含等待下一帧的任务）
func (s *FrameSystem) ActiveTasks() int {
	return len(s.active)
}

// PendingTasks 等待下一帧开始执行的任务数量
func (s *FrameSystem) PendingTasks() int {
	return len(s.pending)
}

// Frame 已执行的帧数
func (s *FrameSystem) Frame() uint64 {
	return s.frame
}
