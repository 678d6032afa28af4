package systems

import (
	"testing"

	"github.com/gonewx/spaza-valley/pkg/components"
	"github.com/gonewx/spaza-valley/pkg/config"
	"github.com/gonewx/spaza-valley/pkg/ecs"
	"github.com/gonewx/spaza-valley/pkg/entities"
	"github.com/gonewx/spaza-valley/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// placePlayerOver 把玩家碰撞盒中心放到格子中心
func placePlayerOver(em *ecs.EntityManager, cfg config.PlayerConfig, c utils.TileCoord) ecs.EntityID {
	cx := float64(c.Col*testTS) + testTS/2
	cy := float64(c.Row*testTS) + testTS/2
	return entities.NewPlayerEntity(em, cfg, nil, cx, cy)
}

// TestFarmingEndToEnd 锄地 → 播种 → 浇水生长四天 → 收获
func TestFarmingEndToEnd(t *testing.T) {
	c := utils.TileCoord{Row: 5, Col: 5}
	em, soil := newTestSoil(t, c)
	cfg := config.DefaultGameConfig().Player
	point := utils.Vec{X: 5*testTS + 1, Y: 5*testTS + 1}

	require.True(t, soil.Till(point.X, point.Y))
	assert.True(t, soil.Flags(c).Has(components.SoilTilled))

	inv := components.NewInventory(map[string]int{"corn": 0}, map[string]int{"corn": 5}, 0)
	require.True(t, soil.PlantSeed(point.X, point.Y, "corn"))
	require.True(t, inv.ConsumeSeed("corn"))
	assert.Equal(t, 4, inv.Seeds["corn"])

	cell, _ := soil.Grid().Cell(c)
	plantID := cell.Plant
	plant, _ := ecs.GetComponent[*components.PlantComponent](em, plantID)
	assert.Equal(t, 0, plant.Stage)

	require.True(t, soil.Water(point.X, point.Y))
	assert.True(t, soil.Flags(c).Has(components.SoilWatered))
	soil.UpdatePlants()
	assert.Equal(t, 1, plant.Stage)
	assertGridInvariant(t, soil)

	for day := 2; day <= 4; day++ {
		soil.RemoveWater()
		soil.Water(point.X, point.Y)
		soil.UpdatePlants()
		assert.Equal(t, day, plant.Stage)
	}
	assert.Equal(t, plant.MaxStage, plant.Stage)
	assert.True(t, plant.Harvestable)

	player := placePlayerOver(em, cfg, c)
	p, _ := ecs.GetComponent[*components.PlayerComponent](em, player)
	p.Inventory = inv

	sound := &recordingSound{}
	harvest := NewHarvestSystem(em, soil, sound)
	assert.Equal(t, 1, harvest.Update(player))
	assert.Equal(t, 1, inv.Items["corn"])
	assert.False(t, soil.Flags(c).Has(components.SoilPlanted))
	assert.True(t, soil.Flags(c).Has(components.SoilTilled), "tilled state survives the harvest")
	assert.True(t, em.IsPendingDestroy(plantID))
	assert.Equal(t, 1, sound.count(SoundSuccess))
	assertGridInvariant(t, soil)

	// 连续两帧不会重复计数
	assert.Equal(t, 0, harvest.Update(player))
	em.RemoveMarkedEntities()
	assert.Equal(t, 0, harvest.Update(player))
	assert.Equal(t, 1, inv.Items["corn"])
}

// TestDryDayHaltsGrowth 不下雨的日结清除 WATERED，之后不再生长直到重新浇水
func TestDryDayHaltsGrowth(t *testing.T) {
	c := utils.TileCoord{Row: 5, Col: 5}
	em, soil := newTestSoil(t, c)
	x, y := tilePoint(5, 5)

	soil.Till(x, y)
	soil.PlantSeed(x, y, "corn")
	soil.Water(x, y)
	cell, _ := soil.Grid().Cell(c)
	plant, _ := ecs.GetComponent[*components.PlantComponent](em, cell.Plant)

	// 日结：先生长，再清水，天气为晴
	soil.UpdatePlants()
	soil.RemoveWater()
	soil.SetRaining(false)
	assert.Equal(t, 1, plant.Stage)
	assert.False(t, soil.IsWatered(x, y))

	soil.UpdatePlants()
	soil.UpdatePlants()
	assert.Equal(t, 1, plant.Stage)

	soil.Water(x, y)
	soil.UpdatePlants()
	assert.Equal(t, 2, plant.Stage)
}

func TestHarvestIgnoresUnripeAndDistantPlants(t *testing.T) {
	near := utils.TileCoord{Row: 5, Col: 5}
	far := utils.TileCoord{Row: 15, Col: 15}
	em, soil := newTestSoil(t, near, far)
	cfg := config.DefaultGameConfig().Player

	for _, c := range []utils.TileCoord{near, far} {
		x, y := tilePoint(c.Row, c.Col)
		soil.Till(x, y)
		soil.PlantSeed(x, y, "tomato")
	}
	// 远处的作物成熟
	xf, yf := tilePoint(far.Row, far.Col)
	for i := 0; i < 4; i++ {
		soil.Water(xf, yf)
		soil.UpdatePlants()
		soil.RemoveWater()
	}

	player := placePlayerOver(em, cfg, near)
	harvest := NewHarvestSystem(em, soil, nil)
	assert.Equal(t, 0, harvest.Update(player))
	assert.True(t, soil.Flags(near).Has(components.SoilPlanted))
	assert.True(t, soil.Flags(far).Has(components.SoilPlanted))
}

func TestHarvestSpawnsFlash(t *testing.T) {
	c := utils.TileCoord{Row: 2, Col: 2}
	em, soil := newTestSoil(t, c)
	x, y := tilePoint(2, 2)
	soil.Till(x, y)
	soil.PlantSeed(x, y, "corn")
	for i := 0; i < 4; i++ {
		soil.Water(x, y)
		soil.UpdatePlants()
	}
	player := placePlayerOver(em, config.DefaultGameConfig().Player, c)

	before := len(ecs.GetEntitiesWith1[*components.LifetimeComponent](em))
	NewHarvestSystem(em, soil, nil).Update(player)
	after := ecs.GetEntitiesWith1[*components.LifetimeComponent](em)
	require.Len(t, after, before+1)

	sprite, _ := ecs.GetComponent[*components.SpriteComponent](em, after[len(after)-1])
	assert.True(t, sprite.Flash)
}
