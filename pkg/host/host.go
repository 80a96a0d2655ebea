// Package host 定义伙伴引擎依赖的宿主环境接口
//
// 引擎本身不关心渲染与事件来源：桌面端由 ECS 系统实现这些接口，
// 终端端复用同一套系统，测试中可以直接驱动模拟时钟。
package host

import (
	"time"

	"github.com/gonewx/cursorbuddy/pkg/types"
)

// Unsubscribe 取消一次订阅，重复调用是安全的
type Unsubscribe func()

// Element 伙伴的可视元素
//
// 平移由每帧的跟随逻辑写入，缩放与旋转由效果播放器写入，
// 两者共存于同一个变换上；同一属性后写入者生效。
// 元素被分离后，所有写入都必须是静默的空操作。
type Element interface {
	// SetTranslation 设置平移（视口坐标，元素左上角）
	SetTranslation(x, y float64)

	// SetScale 设置缩放（以元素中心为原点）
	SetScale(sx, sy float64)

	// SetRotation 设置旋转角度（度，以元素中心为原点）
	SetRotation(deg float64)

	// SetTransition 设置缩放/旋转变化的过渡时长（ease-out）
	SetTransition(d time.Duration)

	// Detach 从宿主中移除元素
	Detach()
}

// PointerSource 进程级共享的指针位置事件流
type PointerSource interface {
	// OnPointerMove 订阅指针移动事件，回调参数为视口坐标
	OnPointerMove(fn func(pos types.Vector2)) Unsubscribe
}

// ElementEvents 作用于单个元素的事件流
type ElementEvents interface {
	// OnPointerEnter 订阅指针进入元素事件
	OnPointerEnter(fn func()) Unsubscribe

	// OnClick 订阅元素点击事件
	OnClick(fn func()) Unsubscribe
}

// FrameTask 每帧执行一次的任务
// 返回 false 表示任务结束，帧循环将不再调用它
type FrameTask func() bool

// FrameLoop 渲染帧调度原语
type FrameLoop interface {
	// Schedule 注册任务，从下一帧开始每帧执行，直到任务返回 false
	Schedule(task FrameTask)
}

// Timer 延迟回调句柄
type Timer interface {
	// Stop 取消尚未触发的回调，返回是否成功取消
	Stop() bool
}

// Clock 延迟执行原语
type Clock interface {
	// AfterFunc 在 d 之后调用 fn
	AfterFunc(d time.Duration, fn func()) Timer
}
