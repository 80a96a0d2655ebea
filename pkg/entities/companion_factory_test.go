package entities

import (
	"errors"
	"testing"
	"time"

	"github.com/gonewx/cursorbuddy/pkg/companion"
	"github.com/gonewx/cursorbuddy/pkg/components"
	"github.com/gonewx/cursorbuddy/pkg/config"
	"github.com/gonewx/cursorbuddy/pkg/ecs"
	"github.com/gonewx/cursorbuddy/pkg/systems"
	"github.com/gonewx/cursorbuddy/pkg/types"
	"github.com/gonewx/cursorbuddy/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dt = 1.0 / 60

func TestDefaultCompanionBitmap(t *testing.T) {
	img := DefaultCompanionBitmap(30)
	require.Equal(t, 30, img.Bounds().Dx())
	require.Equal(t, 30, img.Bounds().Dy())

	assert.Equal(t, DefaultCompanionColor, img.NRGBAAt(15, 15), "圆心应为默认颜色")
	assert.Equal(t, uint8(0), img.NRGBAAt(0, 0).A, "角落应透明")

	// 非法尺寸回退默认值
	assert.Equal(t, config.DefaultCompanionSize, DefaultCompanionBitmap(0).Bounds().Dx())
}

func TestNewCompanionEntity_WithoutImage(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg, err := config.NewCompanionConfig(config.CompanionOptions{Name: "blue", Size: 24, Glyph: "@"})
	require.NoError(t, err)

	id, err := NewCompanionEntity(em, cfg, nil)
	require.NoError(t, err)

	sprite, ok := ecs.GetComponent[*components.SpriteComponent](em, id)
	require.True(t, ok)
	assert.Nil(t, sprite.Image)
	assert.Equal(t, 24.0, sprite.Width)

	hit, ok := ecs.GetComponent[*components.HitAreaComponent](em, id)
	require.True(t, ok)
	assert.Equal(t, 24.0, hit.Width)
	assert.True(t, hit.IsEnabled)

	comp, ok := ecs.GetComponent[*components.CompanionComponent](em, id)
	require.True(t, ok)
	assert.Equal(t, "blue", comp.Name)
	assert.Equal(t, '@', comp.Glyph)

	assert.True(t, ecs.HasComponent[*components.TweenComponent](em, id))
	assert.True(t, ecs.HasComponent[*components.PointerListenerComponent](em, id))
}

func TestNewCompanionEntity_LoaderError(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg, err := config.NewCompanionConfig(config.CompanionOptions{})
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = NewCompanionEntity(em, cfg, func(config.CompanionConfig) (*ebiten.Image, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, em.EntityCount())
}

func TestElementHandle(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg, err := config.NewCompanionConfig(config.CompanionOptions{})
	require.NoError(t, err)
	id, err := NewCompanionEntity(em, cfg, nil)
	require.NoError(t, err)

	h := NewElementHandle(em, id)
	transform, _ := ecs.GetComponent[*components.TransformComponent](em, id)

	h.SetTranslation(10, 20)
	h.SetTransition(180 * time.Millisecond)
	h.SetScale(1.1, 1.1)
	h.SetRotation(45)

	assert.Equal(t, 10.0, transform.X)
	assert.Equal(t, 20.0, transform.Y)
	assert.InDelta(t, 0.18, transform.Transition, 1e-9)
	assert.Equal(t, 1.1, transform.ScaleX)
	assert.Equal(t, 45.0, transform.Rotation)
	assert.Equal(t, uint64(2), transform.Revision)

	h.Detach()
	assert.False(t, h.Attached())

	// 分离后写入为静默空操作
	h.SetTranslation(99, 99)
	h.SetScale(3, 3)
	h.Detach()
	assert.Equal(t, 10.0, transform.X)
	assert.Equal(t, 1.1, transform.ScaleX)

	em.RemoveMarkedEntities()
	assert.False(t, em.Exists(id))
	h.SetRotation(1)
}

// world 以真实系统组装的最小宿主
type world struct {
	em       *ecs.EntityManager
	input    *utils.ManualInput
	pointer  *systems.PointerSystem
	frames   *systems.FrameSystem
	timers   *systems.TimerSystem
	tweens   *systems.TweenSystem
	registry *companion.Registry
}

func newWorld(x, y int) *world {
	w := &world{em: ecs.NewEntityManager(), input: utils.NewManualInput(x, y)}
	w.pointer = systems.NewPointerSystem(w.em, w.input)
	w.frames = systems.NewFrameSystem()
	w.timers = systems.NewTimerSystem(w.em)
	w.tweens = systems.NewTweenSystem(w.em)
	w.registry = companion.NewRegistry(NewCompanionFactory(CompanionFactoryOptions{
		EntityManager: w.em,
		Pointer:       w.pointer,
		Frames:        w.frames,
		Clock:         w.timers,
	}), nil)
	return w
}

func (w *world) step(n int) {
	for i := 0; i < n; i++ {
		w.pointer.Update(dt)
		w.frames.Update(dt)
		w.timers.Update(dt)
		w.tweens.Update(dt)
		w.em.RemoveMarkedEntities()
	}
}

func (w *world) transform(t *testing.T) *components.TransformComponent {
	ids := ecs.GetEntitiesWith1[*components.CompanionComponent](w.em)
	require.Len(t, ids, 1)
	tr, ok := ecs.GetComponent[*components.TransformComponent](w.em, ids[0])
	require.True(t, ok)
	return tr
}

func TestCompanionWorld_FollowAndClick(t *testing.T) {
	w := newWorld(500, 500)

	cfg, err := config.NewCompanionConfig(config.CompanionOptions{
		Name:         "clicky",
		FollowSpeed:  ptr(0.5),
		ClickEffects: config.RawEffect{Value: true},
	})
	require.NoError(t, err)

	c, err := w.registry.Add(cfg)
	require.NoError(t, err)
	require.True(t, c.Running())

	comp, _ := ecs.GetComponent[*components.CompanionComponent](w.em, ecs.GetEntitiesWith1[*components.CompanionComponent](w.em)[0])
	assert.Equal(t, c.ID(), comp.ControllerID)

	// 首帧只记录基准位置
	w.step(1)
	assert.Equal(t, types.Vector2{}, c.Target())

	w.input.MoveTo(100, 100)
	w.step(1)
	assert.Equal(t, types.Vector2{X: 100, Y: 100}, c.Target())
	assert.Equal(t, types.Vector2{X: 50, Y: 50}, c.Position())

	w.step(60)
	tr := w.transform(t)
	assert.InDelta(t, 100, tr.X, 1e-6)
	assert.InDelta(t, 100, tr.Y, 1e-6)

	// 点击伙伴：squash 立即生效，150ms 后还原
	w.input.ClickAt(110, 110)
	w.step(1)
	assert.InDelta(t, 0.85, tr.ScaleX, 1e-9)
	assert.InDelta(t, 1.15, tr.ScaleY, 1e-9)
	assert.True(t, c.Effects().Active(companion.CategoryClick))

	w.step(9)
	assert.Equal(t, 1.0, tr.ScaleX)
	assert.Equal(t, 1.0, tr.ScaleY)
	assert.False(t, c.Effects().Active(companion.CategoryClick))
}

func TestCompanionWorld_PauseAndRemove(t *testing.T) {
	w := newWorld(0, 0)

	cfg, err := config.NewCompanionConfig(config.CompanionOptions{IdleEffects: config.RawEffect{Value: true}})
	require.NoError(t, err)
	c, err := w.registry.Add(cfg)
	require.NoError(t, err)

	w.step(10)
	ticks := c.Ticks()
	assert.Equal(t, uint64(10), ticks)

	assert.False(t, w.registry.TogglePause())
	w.step(10)
	assert.Equal(t, ticks, c.Ticks(), "暂停后不再执行帧任务")
	assert.Equal(t, 0, w.pointer.MoveListeners())
	assert.Equal(t, 0, w.frames.ActiveTasks())

	assert.True(t, w.registry.TogglePause())
	w.step(1)
	assert.Equal(t, ticks+1, c.Ticks())

	assert.True(t, w.registry.Remove(c))
	w.step(1)
	assert.Equal(t, 0, w.em.EntityCount())
	assert.Equal(t, 0, w.registry.Len())
}

func ptr[T any](v T) *T { return &v }
