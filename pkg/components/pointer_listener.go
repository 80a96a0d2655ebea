package components

import "sort"

// PointerListenerComponent 元素级指针事件监听器
//
// 监听器存放在实体上：实体被销毁后监听器随之消失，不会再收到事件。
type PointerListenerComponent struct {
	nextID  uint64
	onEnter map[uint64]func()
	onClick map[uint64]func()
}

// NewPointerListenerComponent 创建空的监听器组件
func NewPointerListenerComponent() *PointerListenerComponent {
	return &PointerListenerComponent{
		onEnter: make(map[uint64]func()),
		onClick: make(map[uint64]func()),
	}
}

// AddEnter 注册指针进入回调，返回注销函数
func (p *PointerListenerComponent) AddEnter(fn func()) func() {
	return p.add(p.onEnter, fn)
}

// AddClick 注册点击回调，返回注销函数
func (p *PointerListenerComponent) AddClick(fn func()) func() {
	return p.add(p.onClick, fn)
}

// EnterListeners 按注册顺序返回指针进入回调快照
func (p *PointerListenerComponent) EnterListeners() []func() {
	return snapshot(p.onEnter)
}

// ClickListeners 按注册顺序返回点击回调快照
func (p *PointerListenerComponent) ClickListeners() []func() {
	return snapshot(p.onClick)
}

// ListenerCount 当前注册的监听器总数
func (p *PointerListenerComponent) ListenerCount() int {
	return len(p.onEnter) + len(p.onClick)
}

func (p *PointerListenerComponent) add(set map[uint64]func(), fn func()) func() {
	p.nextID++
	id := p.nextID
	set[id] = fn
	return func() { delete(set, id) }
}

func snapshot(set map[uint64]func()) []func() {
	ids := make([]uint64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]func(), 0, len(ids))
	for _, id := range ids {
		out = append(out, set[id])
	}
	return out
}
