package components

// TransformComponent 伙伴元素的变换
//
// 平移 (X, Y) 由跟随逻辑每帧写入；缩放与旋转由效果播放器写入。
// 两部分共存：同一属性后写入者生效，不做合并。
// 缩放与旋转以元素中心为原点，平移表示元素左上角在视口中的位置。
type TransformComponent struct {
	// X, Y 平移（视口坐标，像素）
	X, Y float64

	// ScaleX, ScaleY 缩放因子（1.0 = 原始大小）
	ScaleX, ScaleY float64

	// Rotation 旋转角度（度，顺时针）
	Rotation float64

	// Transition 缩放/旋转变化的过渡时长（秒），0 表示立即生效
	Transition float64

	// Revision 缩放/旋转每被写入一次递增，供 TweenSystem 检测变化
	Revision uint64
}

// NewTransformComponent 创建中性变换（无缩放、无旋转）
func NewTransformComponent() *TransformComponent {
	return &TransformComponent{ScaleX: 1, ScaleY: 1}
}
