package components

// CompanionComponent 标记实体为光标伙伴的可视元素
type CompanionComponent struct {
	// ControllerID 对应控制器的唯一标识（控制器创建后回填）
	ControllerID string

	// Name 伙伴名称
	Name string

	// Alt 替代文本
	Alt string

	// Glyph 终端模式下的固定字符，0 表示按变换自动选择
	Glyph rune
}
