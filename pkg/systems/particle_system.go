package systems

import (
	"github.com/gonewx/spaza-valley/pkg/components"
	"github.com/gonewx/spaza-valley/pkg/ecs"
)

// ParticleSystem 匀速移动粒子（空中的雨滴）
// 粒子何时消失由 LifetimeSystem 决定
type ParticleSystem struct {
	entityManager *ecs.EntityManager
}

// NewParticleSystem 创建粒子系统
func NewParticleSystem(em *ecs.EntityManager) *ParticleSystem {
	return &ParticleSystem{entityManager: em}
}

// Update 按速度移动所有粒子
func (s *ParticleSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith2[*components.ParticleComponent, *components.PositionComponent](s.entityManager) {
		particle, _ := ecs.GetComponent[*components.ParticleComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		pos.X += particle.VelocityX * deltaTime
		pos.Y += particle.VelocityY * deltaTime
	}
}
