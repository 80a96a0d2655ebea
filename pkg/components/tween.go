package components

// TweenComponent 缩放/旋转的显示过渡状态
//
// TransformComponent 中的值是逻辑值（立即生效），TweenComponent 记录渲染时实际显示的值，
// 在 Transition 时长内以 ease-out 从起始值过渡到逻辑值。
type TweenComponent struct {
	// 当前显示值
	DisplayScaleX, DisplayScaleY, DisplayRotation float64

	// 过渡起点
	FromScaleX, FromScaleY, FromRotation float64

	// Elapsed 已过渡时间（秒）
	Elapsed float64

	// Duration 过渡总时长（秒）
	Duration float64

	// Revision 已同步的 TransformComponent.Revision
	Revision uint64
}

// NewTweenComponent 创建与给定变换一致的过渡状态
func NewTweenComponent(t *TransformComponent) *TweenComponent {
	return &TweenComponent{
		DisplayScaleX:   t.ScaleX,
		DisplayScaleY:   t.ScaleY,
		DisplayRotation: t.Rotation,
		FromScaleX:      t.ScaleX,
		FromScaleY:      t.ScaleY,
		FromRotation:    t.Rotation,
		Revision:        t.Revision,
	}
}

// GetProgress 获取过渡进度（0.0 到 1.0）
// Duration 为 0 时视为已完成
func (tw *TweenComponent) GetProgress() float64 {
	if tw.Duration <= 0 {
		return 1.0
	}
	if tw.Elapsed < 0 {
		return 0.0
	}
	progress := tw.Elapsed / tw.Duration
	if progress > 1.0 {
		return 1.0
	}
	return progress
}
