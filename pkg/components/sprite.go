package components

import "github.com/hajimehoshi/ebiten/v2"

// SpriteComponent 存储实体的视觉表现(当前绘制的图像)
type SpriteComponent struct {
	Image *ebiten.Image

	// Width, Height 逻辑尺寸（像素），终端模式下没有图像时也用于命中检测
	Width, Height float64
}
