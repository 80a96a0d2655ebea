package systems

import (
	"math"

	"github.com/gonewx/cursorbuddy/pkg/components"
	"github.com/gonewx/cursorbuddy/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
)

// RenderSystem 伙伴渲染系统
// 按实体 ID 升序绘制所有拥有 SpriteComponent 与 TransformComponent 的实体，
// 缩放与旋转使用 TweenComponent 的显示值（没有时使用逻辑值）。
type RenderSystem struct {
	entityManager *ecs.EntityManager
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(em *ecs.EntityManager) *RenderSystem {
	return &RenderSystem{entityManager: em}
}

// Draw 绘制全部伙伴
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	entities := ecs.GetEntitiesWith2[*components.SpriteComponent, *components.TransformComponent](s.entityManager)
	for _, id := range entities {
		if s.entityManager.IsMarkedForDestroy(id) {
			continue
		}
		s.DrawEntity(screen, id)
	}
}

// DrawEntity 绘制单个实体
func (s *RenderSystem) DrawEntity(screen *ebiten.Image, id ecs.EntityID) {
	sprite, ok := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)
	if !ok || sprite.Image == nil {
		return
	}
	transform, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
	if !ok {
		return
	}

	view := DisplayTransform(s.entityManager, id)
	bounds := sprite.Image.Bounds()

	op := &ebiten.DrawImageOptions{}
	op.GeoM = BuildGeoM(
		float64(bounds.Dx()), float64(bounds.Dy()),
		sprite.Width, sprite.Height,
		transform.X, transform.Y,
		view.ScaleX, view.ScaleY, view.Rotation,
	)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(sprite.Image, op)
}

// View 实体当前应显示的缩放与旋转
type View struct {
	ScaleX, ScaleY, Rotation float64
}

// DisplayTransform 返回实体当前显示的缩放与旋转
// 有 TweenComponent 时使用过渡中的显示值，否则直接使用逻辑值
func DisplayTransform(em *ecs.EntityManager, id ecs.EntityID) View {
	if tween, ok := ecs.GetComponent[*components.TweenComponent](em, id); ok {
		return View{ScaleX: tween.DisplayScaleX, ScaleY: tween.DisplayScaleY, Rotation: tween.DisplayRotation}
	}
	if transform, ok := ecs.GetComponent[*components.TransformComponent](em, id); ok {
		return View{ScaleX: transform.ScaleX, ScaleY: transform.ScaleY, Rotation: transform.Rotation}
	}
	return View{ScaleX: 1, ScaleY: 1}
}

// BuildGeoM 计算伙伴的绘制矩阵
//
// 参数:
//   - imgW, imgH: 源图像尺寸
//   - w, h: 元素逻辑尺寸，源图像被拉伸到该尺寸（<= 0 时保持源尺寸）
//   - x, y: 元素左上角的平移
//   - sx, sy, deg: 以元素中心为原点的缩放与旋转（度）
func BuildGeoM(imgW, imgH, w, h, x, y, sx, sy, deg float64) ebiten.GeoM {
	if w <= 0 {
		w = imgW
	}
	if h <= 0 {
		h = imgH
	}

	var g ebiten.GeoM
	if imgW > 0 && imgH > 0 {
		g.Scale(w/imgW, h/imgH)
	}
	// 以元素中心为原点缩放、旋转
	g.Translate(-w/2, -h/2)
	g.Scale(sx, sy)
	g.Rotate(deg * math.Pi / 180)
	g.Translate(w/2, h/2)

	g.Translate(x, y)
	return g
}
