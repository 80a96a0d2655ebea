package systems

import (
	"github.com/gonewx/cursorbuddy/pkg/components"
	"github.com/gonewx/cursorbuddy/pkg/ecs"
	"github.com/gonewx/cursorbuddy/pkg/utils"
)

// TweenSystem 缩放/旋转过渡系统
//
// TransformComponent.Revision 变化时，从当前显示值重新开始一段 ease-out 过渡，
// 目标为最新的逻辑值，时长为 TransformComponent.Transition。
// 平移不参与过渡。
type TweenSystem struct {
	entityManager *ecs.EntityManager
}

// NewTweenSystem 创建过渡系统
func NewTweenSystem(em *ecs.EntityManager) *TweenSystem {
	return &TweenSystem{entityManager: em}
}

// Update 推进所有过渡
func (s *TweenSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith2[*components.TransformComponent, *components.TweenComponent](s.entityManager)

	for _, id := range entities {
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		tween, _ := ecs.GetComponent[*components.TweenComponent](s.entityManager, id)

		if tween.Revision != transform.Revision {
			// 逻辑值变化：从当前显示值重新起步
			tween.FromScaleX = tween.DisplayScaleX
			tween.FromScaleY = tween.DisplayScaleY
			tween.FromRotation = tween.DisplayRotation
			tween.Elapsed = 0
			tween.Duration = transform.Transition
			tween.Revision = transform.Revision
		} else {
			tween.Elapsed += deltaTime
		}

		t := utils.EaseOutQuad(tween.GetProgress())
		tween.DisplayScaleX = utils.Lerp(tween.FromScaleX, transform.ScaleX, t)
		tween.DisplayScaleY = utils.Lerp(tween.FromScaleY, transform.ScaleY, t)
		tween.DisplayRotation = utils.Lerp(tween.FromRotation, transform.Rotation, t)
	}
}
