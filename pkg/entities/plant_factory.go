package entities

import (
	"github.com/gonewx/spaza-valley/pkg/components"
	"github.com/gonewx/spaza-valley/pkg/config"
	"github.com/gonewx/spaza-valley/pkg/ecs"
	"github.com/gonewx/spaza-valley/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// PlantSpec 创建作物所需的品种信息
type PlantSpec struct {
	Species  string
	MaxStage int
	YOffset  float64
	Frames   []*ebiten.Image
}

// NewPlantEntity 在格子上创建 0 阶段的作物
// 作物底边对齐格子底边（加上品种的 YOffset），水平居中
// 0 阶段作物在 ground_plant 层且不参与碰撞，生长后由 SoilSystem 调整
func NewPlantEntity(em *ecs.EntityManager, spec PlantSpec, coord utils.TileCoord, tileSize int) ecs.EntityID {
	id := em.CreateEntity()

	plant := &components.PlantComponent{
		Species:  spec.Species,
		Stage:    0,
		MaxStage: spec.MaxStage,
		Cell:     coord,
		Frames:   spec.Frames,
		YOffset:  spec.YOffset,
	}
	sprite := &components.SpriteComponent{}
	pos := &components.PositionComponent{}

	em.AddComponent(id, plant)
	em.AddComponent(id, sprite)
	em.AddComponent(id, pos)
	em.AddComponent(id, &components.ScaleComponent{ScaleX: 1, ScaleY: 1})
	em.AddComponent(id, &components.LayerComponent{Z: config.LayerGroundPlant})
	em.AddComponent(id, components.NewCapabilities(components.CapRenderable, components.CapPlant))

	ApplyPlantStage(em, id, tileSize)
	return id
}

// ApplyPlantStage 根据当前阶段刷新作物的图像、缩放、位置、层和碰撞盒
// 有逐阶段图片时直接切换图片；否则用缩放表现生长
func ApplyPlantStage(em *ecs.EntityManager, id ecs.EntityID, tileSize int) {
	plant, ok := ecs.GetComponent[*components.PlantComponent](em, id)
	if !ok {
		return
	}
	sprite, _ := ecs.GetComponent[*components.SpriteComponent](em, id)
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	scale, _ := ecs.GetComponent[*components.ScaleComponent](em, id)
	if sprite == nil || pos == nil {
		return
	}

	ts := float64(tileSize)
	if len(plant.Frames) > 1 {
		idx := plant.Stage
		if idx >= len(plant.Frames) {
			idx = len(plant.Frames) - 1
		}
		img := plant.Frames[idx]
		b := img.Bounds()
		sprite.Image = img
		sprite.Width, sprite.Height = float64(b.Dx()), float64(b.Dy())
		if scale != nil {
			scale.ScaleX, scale.ScaleY = 1, 1
		}
	} else {
		var img *ebiten.Image
		w, h := ts, ts
		if len(plant.Frames) == 1 {
			img = plant.Frames[0]
			b := img.Bounds()
			w, h = float64(b.Dx()), float64(b.Dy())
		}
		f := float64(plant.Stage+1) / float64(plant.MaxStage+1)
		sprite.Image = img
		sprite.Width, sprite.Height = w*f, h*f
		if scale != nil {
			scale.ScaleX, scale.ScaleY = f, f
		}
	}

	// 底边中点对齐格子底边中点
	tileX, tileY := utils.TileToWorld(plant.Cell, tileSize)
	pos.X = tileX + ts/2 - sprite.Width/2
	pos.Y = tileY + ts + plant.YOffset - sprite.Height

	plant.Harvestable = plant.Stage >= plant.MaxStage

	if plant.Stage > 0 {
		if layer, ok := ecs.GetComponent[*components.LayerComponent](em, id); ok {
			layer.Z = config.LayerMain
		}
		if caps, ok := ecs.GetComponent[*components.CapabilityComponent](em, id); ok {
			caps.Add(components.CapCollidable)
		}
		em.AddComponent(id, components.NewInsetCollision(sprite.Width, sprite.Height, 26, sprite.Height*0.4))
	}
}
