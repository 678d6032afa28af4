package entities

import (
	"github.com/gonewx/spaza-valley/pkg/components"
	"github.com/gonewx/spaza-valley/pkg/config"
	"github.com/gonewx/spaza-valley/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
)

// FlashDuration 收获/砍树闪光的持续时间（秒）
const FlashDuration = 0.2

// NewFlashParticle 在原物体位置创建白色剪影闪光
// 闪光复用原物体的图像，绘制时替换为纯白，到期后删除
//
// 参数:
//   - em: 实体管理器
//   - img: 原物体图像（可为 nil，此时只保留尺寸）
//   - x, y: 视觉矩形左上角
//   - w, h: 视觉矩形尺寸
//   - z: 渲染层（与原物体相同）
//
// 返回:
//   - ecs.EntityID: 闪光实体ID
func NewFlashParticle(em *ecs.EntityManager, img *ebiten.Image, x, y, w, h float64, z config.Layer) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(id, &components.SpriteComponent{Image: img, Width: w, Height: h, Flash: true})
	em.AddComponent(id, &components.LayerComponent{Z: z})
	em.AddComponent(id, components.NewCapabilities(components.CapRenderable))
	em.AddComponent(id, &components.LifetimeComponent{MaxLifetime: FlashDuration})
	return id
}

// RainDrop 雨滴参数
type RainDrop struct {
	X, Y     float64
	Image    *ebiten.Image
	Lifetime float64 // 秒

	// Moving 为 false 时是地面水花（rain_floor 层，不移动）
	Moving bool
	VelX   float64
	VelY   float64
}

// NewRainDropEntity 创建雨滴
// 空中雨滴在 rain_drops 层沿速度方向移动，地面水花静止在 rain_floor 层
func NewRainDropEntity(em *ecs.EntityManager, drop RainDrop) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{X: drop.X, Y: drop.Y})
	em.AddComponent(id, components.NewSpriteComponent(drop.Image, 4, 4))
	em.AddComponent(id, components.NewCapabilities(components.CapRenderable))
	em.AddComponent(id, &components.LifetimeComponent{MaxLifetime: drop.Lifetime})

	z := config.LayerRainFloor
	if drop.Moving {
		z = config.LayerRainDrops
		em.AddComponent(id, &components.ParticleComponent{VelocityX: drop.VelX, VelocityY: drop.VelY})
	}
	em.AddComponent(id, &components.LayerComponent{Z: z})
	return id
}
