package entities

import (
	"github.com/gonewx/spaza-valley/pkg/components"
	"github.com/gonewx/spaza-valley/pkg/config"
	"github.com/gonewx/spaza-valley/pkg/ecs"
	"github.com/gonewx/spaza-valley/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// WaterAnimationFPS 水面动画帧率
const WaterAnimationFPS = 5

// TreeSpec 创建果树的参数
type TreeSpec struct {
	Size       string
	X, Y       float64 // 左上角
	Width      float64
	Height     float64
	Image      *ebiten.Image
	StumpImage *ebiten.Image
	FruitImage *ebiten.Image
	FruitSlots []utils.Vec
	Health     int
}

// NewTreeEntity 创建果树
// 碰撞盒只取树干底部（宽收缩 20%，高收缩 75%）
// 果实由 TreeSystem.RegrowFruit 生成，这里只记录槽位
func NewTreeEntity(em *ecs.EntityManager, spec TreeSpec) ecs.EntityID {
	id := em.CreateEntity()

	sprite := components.NewSpriteComponent(spec.Image, spec.Width, spec.Height)
	em.AddComponent(id, &components.PositionComponent{X: spec.X, Y: spec.Y})
	em.AddComponent(id, sprite)
	em.AddComponent(id, components.NewInsetCollision(sprite.Width, sprite.Height, sprite.Width*0.2, sprite.Height*0.75))
	em.AddComponent(id, &components.LayerComponent{Z: config.LayerMain})
	em.AddComponent(id, components.NewCapabilities(
		components.CapRenderable, components.CapCollidable, components.CapHarvestTree))
	em.AddComponent(id, &components.HealthComponent{CurrentHealth: spec.Health, MaxHealth: spec.Health})
	em.AddComponent(id, &components.TreeComponent{
		Size:       spec.Size,
		Alive:      true,
		FruitSlots: spec.FruitSlots,
		Fruit:      make([]ecs.EntityID, len(spec.FruitSlots)),
		FruitImage: spec.FruitImage,
		StumpImage: spec.StumpImage,
	})
	return id
}

// NewFruitEntity 在树的槽位上创建果实（fruit 层）
func NewFruitEntity(em *ecs.EntityManager, img *ebiten.Image, tree ecs.EntityID, slot int, x, y float64) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(id, components.NewSpriteComponent(img, 16, 16))
	em.AddComponent(id, &components.LayerComponent{Z: config.LayerFruit})
	em.AddComponent(id, components.NewCapabilities(components.CapRenderable))
	em.AddComponent(id, &components.FruitComponent{Tree: tree, Slot: slot})
	return id
}

// DecorSpec 静态贴图（地面、房屋、围栏、野花）
type DecorSpec struct {
	X, Y   float64
	Width  float64 // 图片为 nil 时的尺寸
	Height float64
	Image  *ebiten.Image
	Z      config.Layer

	// Collidable 为 true 时按 ShrinkW/ShrinkH 收缩出碰撞盒
	Collidable bool
	ShrinkW    float64
	ShrinkH    float64
}

// NewDecorEntity 创建静态贴图实体
func NewDecorEntity(em *ecs.EntityManager, spec DecorSpec) ecs.EntityID {
	id := em.CreateEntity()
	sprite := components.NewSpriteComponent(spec.Image, spec.Width, spec.Height)
	em.AddComponent(id, &components.PositionComponent{X: spec.X, Y: spec.Y})
	em.AddComponent(id, sprite)
	em.AddComponent(id, &components.LayerComponent{Z: spec.Z})

	caps := components.NewCapabilities(components.CapRenderable)
	if spec.Collidable {
		caps.Add(components.CapCollidable)
		em.AddComponent(id, components.NewInsetCollision(sprite.Width, sprite.Height, spec.ShrinkW, spec.ShrinkH))
	}
	em.AddComponent(id, caps)
	return id
}

// NewWildFlowerEntity 野花：main 层，碰撞盒只保留底部一条
func NewWildFlowerEntity(em *ecs.EntityManager, img *ebiten.Image, x, y, w, h float64) ecs.EntityID {
	sprite := components.NewSpriteComponent(img, w, h)
	return NewDecorEntity(em, DecorSpec{
		X:          x,
		Y:          y,
		Width:      sprite.Width,
		Height:     sprite.Height,
		Image:      img,
		Z:          config.LayerMain,
		Collidable: true,
		ShrinkW:    20,
		ShrinkH:    sprite.Height * 0.9,
	})
}

// NewWaterEntity 创建动画水面格子（water 层，5 帧/秒循环）
func NewWaterEntity(em *ecs.EntityManager, frames []*ebiten.Image, coord utils.TileCoord, tileSize int) ecs.EntityID {
	id := em.CreateEntity()
	x, y := utils.TileToWorld(coord, tileSize)
	ts := float64(tileSize)
	anim := &components.AnimationComponent{Frames: frames, FPS: WaterAnimationFPS, Loop: true}
	em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(id, &components.SpriteComponent{Image: anim.CurrentImage(), Width: ts, Height: ts})
	em.AddComponent(id, anim)
	em.AddComponent(id, &components.LayerComponent{Z: config.LayerWater})
	em.AddComponent(id, components.NewCapabilities(components.CapRenderable))
	return id
}

// NewCollisionTileEntity 创建不可见的碰撞格子
func NewCollisionTileEntity(em *ecs.EntityManager, coord utils.TileCoord, tileSize int) ecs.EntityID {
	id := em.CreateEntity()
	x, y := utils.TileToWorld(coord, tileSize)
	ts := float64(tileSize)
	em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(id, &components.CollisionComponent{Width: ts, Height: ts})
	em.AddComponent(id, components.NewCapabilities(components.CapCollidable))
	return id
}

// NewInteractionZone 创建交互区域（床、商人）
// 区域没有图像，碰撞盒即整个矩形，但不阻挡移动
func NewInteractionZone(em *ecs.EntityManager, kind components.InteractionKind, name string, x, y, w, h float64) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(id, &components.CollisionComponent{Width: w, Height: h})
	em.AddComponent(id, components.NewCapabilities(components.CapInteractable))
	em.AddComponent(id, &components.InteractionComponent{Kind: kind, Name: name})
	return id
}
