package components

// HitAreaComponent 定义元素响应指针的区域
// 区域为未缩放的元素矩形（左上角为 TransformComponent 的平移）
type HitAreaComponent struct {
	Width     float64 // 区域宽度(像素)
	Height    float64 // 区域高度(像素)
	IsEnabled bool    // 是否响应指针事件
	IsHovered bool    // 上一帧指针是否位于区域内（用于检测进入）
}

// Contains 判断点是否位于以 (originX, originY) 为左上角的区域内
func (h *HitAreaComponent) Contains(originX, originY, px, py float64) bool {
	return px >= originX && px < originX+h.Width &&
		py >= originY && py < originY+h.Height
}
