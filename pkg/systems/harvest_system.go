package systems

import (
	"github.com/charmbracelet/log"
	"github.com/gonewx/spaza-valley/pkg/components"
	"github.com/gonewx/spaza-valley/pkg/config"
	"github.com/gonewx/spaza-valley/pkg/ecs"
	"github.com/gonewx/spaza-valley/pkg/entities"
	"github.com/gonewx/spaza-valley/pkg/game"
	"github.com/gonewx/spaza-valley/pkg/utils"
)

// HarvestSystem 收获与玩家碰撞盒重叠的成熟作物
type HarvestSystem struct {
	entityManager *ecs.EntityManager
	soil          *SoilSystem
	sound         game.SoundPlayer
	logger        *log.Logger
}

// NewHarvestSystem 创建收获系统
func NewHarvestSystem(em *ecs.EntityManager, soil *SoilSystem, sound game.SoundPlayer) *HarvestSystem {
	if sound == nil {
		sound = game.NullSound{}
	}
	return &HarvestSystem{
		entityManager: em,
		soil:          soil,
		sound:         sound,
		logger:        utils.NewLogger("harvest"),
	}
}

// Update 对玩家执行一次收获判定，返回本次收获的数量
//
// 每株成熟作物：背包对应物品 +1、原地生成闪光、删除作物、清除格子的 PLANTED。
// 作物实体立即进入待删除状态，同一帧或下一帧都不会被再次收获。
func (s *HarvestSystem) Update(player ecs.EntityID) int {
	p, ok := ecs.GetComponent[*components.PlayerComponent](s.entityManager, player)
	if !ok || p.Inventory == nil {
		return 0
	}
	hitbox, ok := HitboxRect(s.entityManager, player)
	if !ok {
		return 0
	}

	harvested := 0
	for _, id := range ecs.GetEntitiesWith1[*components.PlantComponent](s.entityManager) {
		plant, _ := ecs.GetComponent[*components.PlantComponent](s.entityManager, id)
		if !plant.Harvestable {
			continue
		}
		rect, ok := VisualRect(s.entityManager, id)
		if !ok || !rect.Intersects(hitbox) {
			continue
		}

		p.Inventory.AddItem(plant.Species, 1)
		s.spawnFlash(id, rect)
		s.entityManager.DestroyEntity(id)
		s.soil.ClearPlanted(plant.Cell)
		s.sound.PlaySound(SoundSuccess)
		harvested++

		s.logger.Debug("harvested", "species", plant.Species, "row", plant.Cell.Row, "col", plant.Cell.Col)
	}
	return harvested
}

func (s *HarvestSystem) spawnFlash(id ecs.EntityID, rect utils.Rect) {
	sprite, _ := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)
	z := config.LayerMain
	if layer, ok := ecs.GetComponent[*components.LayerComponent](s.entityManager, id); ok {
		z = layer.Z
	}
	entities.NewFlashParticle(s.entityManager, sprite.Image, rect.X, rect.Y, rect.W, rect.H, z)
}
