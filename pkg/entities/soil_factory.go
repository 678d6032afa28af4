package entities

import (
	"github.com/gonewx/spaza-valley/pkg/components"
	"github.com/gonewx/spaza-valley/pkg/config"
	"github.com/gonewx/spaza-valley/pkg/ecs"
	"github.com/gonewx/spaza-valley/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// NewSoilPatchEntity 创建耕地贴图实体（soil 层）
func NewSoilPatchEntity(em *ecs.EntityManager, img *ebiten.Image, coord utils.TileCoord, tileSize int) ecs.EntityID {
	return newTileEntity(em, img, coord, tileSize, config.LayerSoil)
}

// NewWaterOverlayEntity 创建浇水覆盖层实体（soil_water 层）
func NewWaterOverlayEntity(em *ecs.EntityManager, img *ebiten.Image, coord utils.TileCoord, tileSize int) ecs.EntityID {
	return newTileEntity(em, img, coord, tileSize, config.LayerSoilWater)
}

func newTileEntity(em *ecs.EntityManager, img *ebiten.Image, coord utils.TileCoord, tileSize int, z config.Layer) ecs.EntityID {
	id := em.CreateEntity()
	x, y := utils.TileToWorld(coord, tileSize)
	ts := float64(tileSize)
	em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(id, &components.SpriteComponent{Image: img, Width: ts, Height: ts})
	em.AddComponent(id, &components.LayerComponent{Z: z})
	em.AddComponent(id, components.NewCapabilities(components.CapRenderable))
	return id
}
