package systems

import (
	"testing"

	"github.com/gonewx/cursorbuddy/pkg/host"
)

func TestFrameSystem_TaskStartsNextFrame(t *testing.T) {
	s := NewFrameSystem()
	calls := 0
	s.Schedule(func() bool { calls++; return true })

	if calls != 0 {
		t.Fatal("task must not run during Schedule")
	}
	if s.PendingTasks() != 1 || s.ActiveTasks() != 0 {
		t.Fatalf("expected 1 pending task, got pending=%d active=%d", s.PendingTasks(), s.ActiveTasks())
	}

	s.Update(1.0 / 60)
	s.Update(1.0 / 60)
	if calls != 2 {
		t.Errorf("expected 2 calls, got %d", calls)
	}
}

func TestFrameSystem_TaskReturningFalseIsDropped(t *testing.T) {
	s := NewFrameSystem()
	remaining := 3
	calls := 0
	s.Schedule(func() bool {
		calls++
		remaining--
		return remaining > 0
	})

	for i := 0; i < 10; i++ {
		s.Update(1.0 / 60)
	}
	if calls != 3 {
		t.Errorf("expected task to run 3 times, got %d", calls)
	}
	if s.ActiveTasks() != 0 {
		t.Errorf("expected no active tasks, got %d", s.ActiveTasks())
	}
	if s.Frame() != 10 {
		t.Errorf("expected frame 10, got %d", s.Frame())
	}
}

func TestFrameSystem_ScheduleFromTaskDefersToNextFrame(t *testing.T) {
	s := NewFrameSystem()
	var order []string
	var child host.FrameTask = func() bool { order = append(order, "child"); return false }
	s.Schedule(func() bool {
		order = append(order, "parent")
		s.Schedule(child)
		return false
	})

	s.Update(1.0 / 60)
	if len(order) != 1 {
		t.Fatalf("child must wait for the next frame, got %v", order)
	}
	s.Update(1.0 / 60)
	if len(order) != 2 || order[1] != "child" {
		t.Errorf("expected [parent child], got %v", order)
	}
}

func TestFrameSystem_IgnoresNilTask(t *testing.T) {
	s := NewFrameSystem()
	s.Schedule(nil)
	s.Update(1.0 / 60)
	if s.ActiveTasks() != 0 {
		t.Error("nil task should be ignored")
	}
}
