package entities

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/gonewx/cursorbuddy/pkg/companion"
	"github.com/gonewx/cursorbuddy/pkg/components"
	"github.com/gonewx/cursorbuddy/pkg/config"
	"github.com/gonewx/cursorbuddy/pkg/ecs"
	"github.com/gonewx/cursorbuddy/pkg/host"
	"github.com/gonewx/cursorbuddy/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"go.uber.org/zap"
)

// DefaultCompanionColor 未配置图片时的默认圆形颜色 rgba(0,150,255,0.6)
var DefaultCompanionColor = color.NRGBA{R: 0, G: 150, B: 255, A: 153}

// ImageLoader 为伙伴加载图像
// 为 nil 时不加载图像（终端模式）
type ImageLoader func(cfg config.CompanionConfig) (*ebiten.Image, error)

// LoadCompanionImage 默认图像加载器
// 配置了 Image 时从文件加载，否则生成默认圆形
func LoadCompanionImage(cfg config.CompanionConfig) (*ebiten.Image, error) {
	if cfg.Image != "" {
		img, _, err := ebitenutil.NewImageFromFile(cfg.Image)
		if err != nil {
			return nil, fmt.Errorf("failed to load companion image %s: %w", cfg.Image, err)
		}
		return img, nil
	}
	return ebiten.NewImageFromImage(DefaultCompanionBitmap(cfg.Size)), nil
}

// DefaultCompanionBitmap 生成 size x size 的默认圆形位图
func DefaultCompanionBitmap(size int) *image.NRGBA {
	if size <= 0 {
		size = config.DefaultCompanionSize
	}
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	r := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - r
			dy := float64(y) + 0.5 - r
			if dx*dx+dy*dy <= r*r {
				img.SetNRGBA(x, y, DefaultCompanionColor)
			}
		}
	}
	return img
}

// NewCompanionEntity 创建伙伴的可视实体
// 参数:
//   - em: EntityManager 实例
//   - cfg: 规范化后的伙伴配置
//   - loader: 图像加载器，为 nil 时不加载图像
//
// 返回: 创建的实体ID；图像加载失败时不创建实体
func NewCompanionEntity(em *ecs.EntityManager, cfg config.CompanionConfig, loader ImageLoader) (ecs.EntityID, error) {
	var img *ebiten.Image
	if loader != nil {
		var err error
		if img, err = loader(cfg); err != nil {
			return 0, err
		}
	}

	width, height := float64(cfg.Size), float64(cfg.Size)
	if width <= 0 {
		width, height = float64(config.DefaultCompanionSize), float64(config.DefaultCompanionSize)
	}
	if img != nil {
		// 图像元素使用图像自身尺寸
		b := img.Bounds()
		width, height = float64(b.Dx()), float64(b.Dy())
	}

	id := em.CreateEntity()

	transform := components.NewTransformComponent()
	em.AddComponent(id, transform)
	em.AddComponent(id, components.NewTweenComponent(transform))
	em.AddComponent(id, &components.SpriteComponent{Image: img, Width: width, Height: height})

	// 命中区域使用未缩放的元素矩形
	em.AddComponent(id, &components.HitAreaComponent{Width: width, Height: height, IsEnabled: true})
	em.AddComponent(id, components.NewPointerListenerComponent())

	glyph := rune(0)
	if cfg.Glyph != "" {
		glyph = []rune(cfg.Glyph)[0]
	}
	em.AddComponent(id, &components.CompanionComponent{
		Name:  cfg.Name,
		Alt:   cfg.Alt,
		Glyph: glyph,
	})

	return id, nil
}

// ElementHandle 以实体实现 host.Element
// 实体被销毁（或已标记销毁）后所有写入都是空操作
type ElementHandle struct {
	em *ecs.EntityManager
	id ecs.EntityID
}

// NewElementHandle 为已存在的实体创建元素句柄
func NewElementHandle(em *ecs.EntityManager, id ecs.EntityID) *ElementHandle {
	return &ElementHandle{em: em, id: id}
}

// EntityID 句柄对应的实体
func (h *ElementHandle) EntityID() ecs.EntityID { return h.id }

// Attached 实体是否仍在宿主中
func (h *ElementHandle) Attached() bool {
	return h.em.Exists(h.id) && !h.em.IsMarkedForDestroy(h.id)
}

func (h *ElementHandle) transform() (*components.TransformComponent, bool) {
	if !h.Attached() {
		return nil, false
	}
	return ecs.GetComponent[*components.TransformComponent](h.em, h.id)
}

// SetTranslation 实现 host.Element
func (h *ElementHandle) SetTranslation(x, y float64) {
	if t, ok := h.transform(); ok {
		t.X, t.Y = x, y
	}
}

// SetScale 实现 host.Element
func (h *ElementHandle) SetScale(sx, sy float64) {
	if t, ok := h.transform(); ok {
		t.ScaleX, t.ScaleY = sx, sy
		t.Revision++
	}
}

// SetRotation 实现 host.Element
func (h *ElementHandle) SetRotation(deg float64) {
	if t, ok := h.transform(); ok {
		t.Rotation = deg
		t.Revision++
	}
}

// SetTransition 实现 host.Element
func (h *ElementHandle) SetTransition(d time.Duration) {
	if t, ok := h.transform(); ok {
		t.Transition = d.Seconds()
	}
}

// Detach 实现 host.Element
func (h *ElementHandle) Detach() {
	if h.Attached() {
		h.em.DestroyEntity(h.id)
	}
}

// CompanionFactoryOptions 伙伴工厂依赖
type CompanionFactoryOptions struct {
	EntityManager *ecs.EntityManager
	Pointer       *systems.PointerSystem
	Frames        host.FrameLoop
	Clock         host.Clock
	Loader        ImageLoader
	Logger        *zap.Logger

	// OnCreate 控制器创建后调用，可用于宿主附加额外的监听
	OnCreate func(id ecs.EntityID, c *companion.Controller)
}

// NewCompanionFactory 返回供 companion.Registry 使用的工厂
// 每次调用创建一个实体并以其为元素构造控制器
func NewCompanionFactory(opts CompanionFactoryOptions) companion.Factory {
	return func(cfg config.CompanionConfig) (*companion.Controller, error) {
		id, err := NewCompanionEntity(opts.EntityManager, cfg, opts.Loader)
		if err != nil {
			return nil, err
		}

		c, err := companion.New(cfg, companion.Deps{
			Element: NewElementHandle(opts.EntityManager, id),
			Pointer: opts.Pointer,
			Events:  opts.Pointer.ElementEvents(id),
			Frames:  opts.Frames,
			Clock:   opts.Clock,
			Logger:  opts.Logger,
		})
		if err != nil {
			opts.EntityManager.DestroyEntity(id)
			return nil, err
		}

		if comp, ok := ecs.GetComponent[*components.CompanionComponent](opts.EntityManager, id); ok {
			comp.ControllerID = c.ID()
		}
		if opts.OnCreate != nil {
			opts.OnCreate(id, c)
		}
		return c, nil
	}
}
