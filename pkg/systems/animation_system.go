package systems

import (
	"github.com/gonewx/spaza-valley/pkg/components"
	"github.com/gonewx/spaza-valley/pkg/ecs"
)

// AnimationSystem 推进帧序列动画（水面等）并同步到精灵
type AnimationSystem struct {
	entityManager *ecs.EntityManager
}

// NewAnimationSystem 创建一个新的动画系统
func NewAnimationSystem(em *ecs.EntityManager) *AnimationSystem {
	return &AnimationSystem{
		entityManager: em,
	}
}

// Update 按 FPS 推进帧位置
// 循环动画回绕；非循环动画停在最后一帧并标记完成
func (s *AnimationSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith2[*components.AnimationComponent, *components.SpriteComponent](s.entityManager)

	for _, id := range entities {
		anim, _ := ecs.GetComponent[*components.AnimationComponent](s.entityManager, id)
		sprite, _ := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)

		if anim.Finished || len(anim.Frames) == 0 {
			continue
		}

		anim.Frame += anim.FPS * deltaTime
		n := float64(len(anim.Frames))
		if anim.Frame >= n {
			if anim.Loop {
				for anim.Frame >= n {
					anim.Frame -= n
				}
			} else {
				anim.Frame = n - 1
				anim.Finished = true
			}
		}

		sprite.Image = anim.CurrentImage()
	}
}
