package entities

import (
	"testing"

	"github.com/gonewx/spaza-valley/pkg/components"
	"github.com/gonewx/spaza-valley/pkg/config"
	"github.com/gonewx/spaza-valley/pkg/ecs"
	"github.com/gonewx/spaza-valley/pkg/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlayerEntity(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultGameConfig().Player

	id := NewPlayerEntity(em, cfg, nil, 500, 400)

	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	assert.Equal(t, 500-cfg.SpriteWidth/2, pos.X)
	assert.Equal(t, 400-cfg.SpriteHeight/2, pos.Y)

	hitbox, ok := ecs.GetComponent[*components.CollisionComponent](em, id)
	require.True(t, ok)
	assert.Equal(t, cfg.SpriteWidth-cfg.HitboxShrinkX, hitbox.Width)
	assert.Equal(t, cfg.SpriteHeight-cfg.HitboxShrinkY, hitbox.Height)

	player, ok := ecs.GetComponent[*components.PlayerComponent](em, id)
	require.True(t, ok)
	assert.Equal(t, components.DirDown, player.Status.Direction)
	assert.Equal(t, cfg.StaminaMax, player.Stamina)
	assert.Equal(t, "hoe", player.SelectedTool())
	assert.Equal(t, "corn", player.SelectedSeed())
	assert.Equal(t, 5, player.Inventory.Seeds["corn"])
	assert.Equal(t, cfg.StartMoney, player.Inventory.Money)
	for _, timer := range player.Timers.All() {
		assert.NotNil(t, timer)
		assert.False(t, timer.Active)
	}

	assert.True(t, ecs.HasComponent[*components.CameraTargetComponent](em, id))
}

// TestNewPlayerInventoryIsCopied 背包不与配置共享 map
func TestNewPlayerInventoryIsCopied(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultGameConfig().Player

	id := NewPlayerEntity(em, cfg, nil, 0, 0)
	player, _ := ecs.GetComponent[*components.PlayerComponent](em, id)
	player.Inventory.ConsumeSeed("corn")

	assert.Equal(t, 5, cfg.StartSeeds["corn"])
}

func TestLoadPlayerFramesMissing(t *testing.T) {
	frames := LoadPlayerFrames(game.NullAssets{}, "graphics/character")
	// NullAssets 不返回错误，也不返回帧
	assert.Len(t, frames, len(components.AllPlayerStatuses()))
	for key, f := range frames {
		assert.Empty(t, f, key)
	}
}
