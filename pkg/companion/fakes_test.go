package companion

import (
	"fmt"
	"sort"
	"time"

	"github.com/gonewx/cursorbuddy/pkg/host"
	"github.com/gonewx/cursorbuddy/pkg/types"
)

// recordingElement 记录所有写入的元素
type recordingElement struct {
	x, y       float64
	sx, sy     float64
	rotation   float64
	transition time.Duration
	detached   bool
	writes     []string
}

func newRecordingElement() *recordingElement {
	return &recordingElement{sx: 1, sy: 1}
}

func (e *recordingElement) SetTranslation(x, y float64) {
	if e.detached {
		return
	}
	e.x, e.y = x, y
}

func (e *recordingElement) SetScale(sx, sy float64) {
	if e.detached {
		return
	}
	e.sx, e.sy = sx, sy
	e.writes = append(e.writes, fmt.Sprintf("scale(%g,%g)", sx, sy))
}

func (e *recordingElement) SetRotation(deg float64) {
	if e.detached {
		return
	}
	e.rotation = deg
	e.writes = append(e.writes, fmt.Sprintf("rotate(%g)", deg))
}

func (e *recordingElement) SetTransition(d time.Duration) { e.transition = d }

func (e *recordingElement) Detach() { e.detached = true }

// fakeClock 手动推进的时钟
type fakeClock struct {
	now    time.Duration
	seq    int
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	at      time.Duration
	seq     int
	fn      func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func (c *fakeClock) AfterFunc(d time.Duration, fn func()) host.Timer {
	c.seq++
	t := &fakeTimer{clock: c, at: c.now + d, seq: c.seq, fn: fn}
	c.timers = append(c.timers, t)
	return t
}

// Advance 推进时间并按到期顺序触发回调
func (c *fakeClock) Advance(d time.Duration) {
	target := c.now + d
	for {
		var due []*fakeTimer
		for _, t := range c.timers {
			if !t.stopped && !t.fired && t.at <= target {
				due = append(due, t)
			}
		}
		if len(due) == 0 {
			break
		}
		sort.Slice(due, func(i, j int) bool {
			if due[i].at != due[j].at {
				return due[i].at < due[j].at
			}
			return due[i].seq < due[j].seq
		})
		next := due[0]
		c.now = next.at
		next.fired = true
		next.fn()
	}
	c.now = target
}

// fakeFrames 手动驱动的帧循环
type fakeFrames struct {
	tasks     []host.FrameTask
	scheduled int
}

func (f *fakeFrames) Schedule(task host.FrameTask) {
	f.scheduled++
	f.tasks = append(f.tasks, task)
}

// Step 执行 n 帧
func (f *fakeFrames) Step(n int) {
	for i := 0; i < n; i++ {
		current := f.tasks
		f.tasks = nil
		for _, task := range current {
			if task() {
				f.tasks = append(f.tasks, task)
			}
		}
	}
}

// fakePointer 指针与元素事件源
type fakePointer struct {
	nextID int
	move   map[int]func(types.Vector2)
	enter  map[int]func()
	click  map[int]func()
}

func newFakePointer() *fakePointer {
	return &fakePointer{
		move:  make(map[int]func(types.Vector2)),
		enter: make(map[int]func()),
		click: make(map[int]func()),
	}
}

func (p *fakePointer) OnPointerMove(fn func(types.Vector2)) host.Unsubscribe {
	p.nextID++
	id := p.nextID
	p.move[id] = fn
	return func() { delete(p.move, id) }
}

func (p *fakePointer) OnPointerEnter(fn func()) host.Unsubscribe {
	p.nextID++
	id := p.nextID
	p.enter[id] = fn
	return func() { delete(p.enter, id) }
}

func (p *fakePointer) OnClick(fn func()) host.Unsubscribe {
	p.nextID++
	id := p.nextID
	p.click[id] = fn
	return func() { delete(p.click, id) }
}

func (p *fakePointer) MoveTo(x, y float64) {
	for _, fn := range p.move {
		fn(types.Vector2{X: x, Y: y})
	}
}

func (p *fakePointer) Enter() {
	for _, fn := range p.enter {
		fn()
	}
}

func (p *fakePointer) Click() {
	for _, fn := range p.click {
		fn()
	}
}

func (p *fakePointer) Listeners() int {
	return len(p.move) + len(p.enter) + len(p.click)
}

// harness 组装好的控制器测试环境
type harness struct {
	element *recordingElement
	clock   *fakeClock
	frames  *fakeFrames
	pointer *fakePointer
}

func newHarness() *harness {
	return &harness{
		element: newRecordingElement(),
		clock:   &fakeClock{},
		frames:  &fakeFrames{},
		pointer: newFakePointer(),
	}
}

func (h *harness) deps() Deps {
	return Deps{
		Element: h.element,
		Pointer: h.pointer,
		Events:  h.pointer,
		Frames:  h.frames,
		Clock:   h.clock,
	}
}
