package systems

import (
	"testing"

	"github.com/gonewx/spaza-valley/pkg/components"
	"github.com/gonewx/spaza-valley/pkg/config"
	"github.com/gonewx/spaza-valley/pkg/ecs"
	"github.com/gonewx/spaza-valley/pkg/entities"
	"github.com/gonewx/spaza-valley/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cell55 = utils.TileCoord{Row: 5, Col: 5}

func TestPlayerToolTargetFollowsDirection(t *testing.T) {
	f := newPlayerFixture()
	f.step(1, 0.01)

	box, _ := HitboxRect(f.em, f.player)
	cx, cy := box.Center()
	p := f.component()
	assert.Equal(t, utils.Vec{X: cx, Y: cy + 50}, p.ToolTarget)
	assert.Equal(t, cell55, utils.WorldToTile(p.ToolTarget.X, p.ToolTarget.Y, testTS))

	f.input.Press(utils.ActionLeft)
	f.step(1, 0.01)
	assert.Equal(t, components.DirLeft, p.Status.Direction)
	assert.Equal(t, utils.Vec{X: cx - 50, Y: cy + 40}, p.ToolTarget)
}

func TestPlayerHoeTillsOnExpiry(t *testing.T) {
	f := newPlayerFixture(cell55)

	f.input.Press(utils.ActionUseTool)
	f.step(1, 0.01)
	p := f.component()
	assert.True(t, p.Timers.ToolUse.Active)
	assert.Equal(t, components.ActivityHoe, p.Status.Activity)
	assert.False(t, f.soil.Flags(cell55).Has(components.SoilTilled), "effect waits for the timer")

	f.input.ReleaseAll()
	f.step(40, 0.01)
	assert.True(t, f.soil.Flags(cell55).Has(components.SoilTilled))
	assert.Equal(t, 1, f.sound.count(SoundHoe), "effect fires exactly once")
	assert.Equal(t, components.ActivityIdle, p.Status.Activity)
}

func TestPlayerInputBlockedDuringToolUse(t *testing.T) {
	f := newPlayerFixture()
	f.input.Press(utils.ActionUseTool)
	f.step(1, 0.01)

	f.input.ReleaseAll()
	f.input.Press(utils.ActionRight, utils.ActionSwitchTool)
	f.step(1, 0.01)

	p := f.component()
	assert.Equal(t, utils.Vec{}, p.Input)
	assert.Equal(t, components.DirDown, p.Status.Direction)
	assert.Equal(t, 0, p.ToolIndex)
}

func TestPlayerWaterAfterTill(t *testing.T) {
	f := newPlayerFixture(cell55)
	f.useAndWait(utils.ActionUseTool)

	p := f.component()
	p.ToolIndex = 2 // water
	f.useAndWait(utils.ActionUseTool)

	assert.True(t, f.soil.Flags(cell55).Has(components.SoilWatered))
	assert.Equal(t, 1, f.sound.count(SoundWater))
}

func TestPlayerSeedUse(t *testing.T) {
	f := newPlayerFixture(cell55)
	p := f.component()

	// 未耕地：不扣种子
	f.useAndWait(utils.ActionUseSeed)
	assert.Equal(t, 5, p.Inventory.Seeds["corn"])
	assert.False(t, f.soil.Flags(cell55).Has(components.SoilPlanted))

	f.useAndWait(utils.ActionUseTool)
	f.useAndWait(utils.ActionUseSeed)
	assert.Equal(t, 4, p.Inventory.Seeds["corn"])
	assert.True(t, f.soil.Flags(cell55).Has(components.SoilPlanted))
	assert.Equal(t, 1, f.sound.count(SoundPlant))
}

func TestPlayerSeedUseWithoutStock(t *testing.T) {
	f := newPlayerFixture(cell55)
	p := f.component()
	p.Inventory.Seeds["corn"] = 0

	f.useAndWait(utils.ActionUseTool)
	f.useAndWait(utils.ActionUseSeed)
	assert.False(t, f.soil.Flags(cell55).Has(components.SoilPlanted))
	assert.Equal(t, 0, p.Inventory.Seeds["corn"])
}

func TestPlayerSwitchWraps(t *testing.T) {
	f := newPlayerFixture()
	p := f.component()

	f.input.Press(utils.ActionSwitchTool, utils.ActionSwitchSeed)
	f.step(1, 0.01)
	assert.Equal(t, 1, p.ToolIndex)
	assert.Equal(t, 1, p.SeedIndex)

	// 按住时受 0.2 秒计时器限制
	f.step(5, 0.01)
	assert.Equal(t, 1, p.ToolIndex)

	f.step(20, 0.01)
	assert.Equal(t, 2, p.ToolIndex)
	assert.Equal(t, 0, p.SeedIndex, "two seeds wrap back to the first")

	f.step(20, 0.01)
	assert.Equal(t, 0, p.ToolIndex, "three tools wrap back to the first")
	assert.Equal(t, "hoe", p.SelectedTool())
}

func TestPlayerStamina(t *testing.T) {
	f := newPlayerFixture()
	f.cfg.StaminaDrain = 10
	f.cfg.StaminaRegen = 5
	f.ps.cfg = f.cfg
	p := f.component()
	p.Stamina = 1
	p.StaminaMax = 1
	p.StaminaCooldown.Duration = 0.5

	f.input.Press(utils.ActionRight, utils.ActionSprint)
	f.step(1, 0.05)
	assert.True(t, p.Sprinting)
	assert.Less(t, p.Stamina, 1.0)

	for i := 0; i < 100 && !p.StaminaCooldown.Active; i++ {
		f.step(1, 0.05)
	}
	require.True(t, p.StaminaCooldown.Active)
	assert.Equal(t, 0.0, p.Stamina)

	// 冷却期间不能冲刺，也不恢复
	f.step(1, 0.05)
	assert.False(t, p.Sprinting)
	f.input.ReleaseAll()
	f.step(2, 0.05)
	assert.Equal(t, 0.0, p.Stamina)

	// 冷却结束后恢复，不超过上限
	f.step(100, 0.05)
	assert.False(t, p.StaminaCooldown.Active)
	assert.Equal(t, 1.0, p.Stamina)
}

func TestPlayerSprintDrainsWhileStanding(t *testing.T) {
	f := newPlayerFixture()
	p := f.component()
	start := p.Stamina

	f.input.Press(utils.ActionSprint)
	f.step(1, 0.5)
	assert.True(t, p.Sprinting)
	assert.Equal(t, utils.Vec{}, p.Input)
	assert.InDelta(t, start-f.cfg.StaminaDrain*0.5, p.Stamina, 1e-9)
}

func TestPlayerStaminaPausedDuringToolUse(t *testing.T) {
	f := newPlayerFixture()
	p := f.component()
	p.Stamina = 10

	f.input.Press(utils.ActionUseTool, utils.ActionSprint)
	f.step(1, 0.01)
	require.True(t, p.Timers.ToolUse.Active)
	assert.False(t, p.Sprinting)
	assert.Equal(t, 10.0, p.Stamina, "no drain or regen while the tool is in use")

	f.input.ReleaseAll()
	f.step(10, 0.01)
	require.True(t, p.Timers.ToolUse.Active)
	assert.Equal(t, 10.0, p.Stamina)

	// 冷却同样暂停
	p.StaminaCooldown.Activate()
	f.step(10, 0.01)
	assert.Equal(t, 0.0, p.StaminaCooldown.Elapsed)

	p.StaminaCooldown.Deactivate()
	f.step(40, 0.01)
	assert.False(t, p.Timers.ToolUse.Active)
	assert.Greater(t, p.Stamina, 10.0, "regen resumes after the tool finishes")
}

func TestPlayerAnimation(t *testing.T) {
	f := newPlayerFixture()
	idle := []*ebiten.Image{ebiten.NewImage(1, 1), ebiten.NewImage(1, 1), ebiten.NewImage(1, 1), ebiten.NewImage(1, 1)}
	hoe := []*ebiten.Image{ebiten.NewImage(1, 1), ebiten.NewImage(1, 1)}
	p := f.component()
	p.Frames = map[string][]*ebiten.Image{"down_idle": idle, "down_hoe": hoe}
	sprite, _ := ecs.GetComponent[*components.SpriteComponent](f.em, f.player)

	f.step(1, 0.25) // 4 帧/秒
	assert.Equal(t, 1.0, p.FrameIndex)
	assert.Same(t, idle[1], sprite.Image)

	f.step(3, 0.25)
	assert.Equal(t, 0.0, p.FrameIndex, "wraps around")

	f.step(1, 0.25)
	f.input.Press(utils.ActionUseTool)
	f.step(1, 0.01)
	assert.Less(t, p.FrameIndex, 0.1, "tool activation resets the frame")
	assert.Same(t, hoe[0], sprite.Image)
}

func TestPlayerInteractBed(t *testing.T) {
	f := newPlayerFixture()
	rect, _ := VisualRect(f.em, f.player)
	entities.NewInteractionZone(f.em, components.InteractionBed, config.MapObjectBed, rect.X, rect.Y, 20, 20)

	f.input.Press(utils.ActionInteract)
	f.step(1, 0.01)

	p := f.component()
	assert.True(t, p.Sleep)
	assert.Equal(t, components.PlayerStatus{Direction: components.DirLeft, Activity: components.ActivityIdle}, p.Status)

	// 睡眠时屏蔽移动
	f.input.Press(utils.ActionUp)
	f.step(1, 0.01)
	assert.Equal(t, utils.Vec{}, p.Input)
}

func TestPlayerInteractTrader(t *testing.T) {
	f := newPlayerFixture()
	rect, _ := VisualRect(f.em, f.player)
	entities.NewInteractionZone(f.em, components.InteractionTrader, config.MapObjectTrader, rect.X, rect.Y, 20, 20)

	var got []components.InteractionKind
	f.ps.SetInteractHandler(func(kind components.InteractionKind) { got = append(got, kind) })

	f.input.Press(utils.ActionInteract)
	f.step(1, 0.01)
	// 按住不会连续触发
	f.step(5, 0.01)
	assert.Equal(t, []components.InteractionKind{components.InteractionTrader}, got)
	assert.False(t, f.component().Sleep)
}

func TestPlayerAxeDamagesTree(t *testing.T) {
	f := newPlayerFixture()
	p := f.component()
	p.ToolIndex = 1 // axe

	f.step(1, 0.01)
	target := p.ToolTarget
	tree := entities.NewTreeEntity(f.em, entities.TreeSpec{
		Size:       "Small",
		X:          target.X - 50,
		Y:          target.Y - 50,
		Width:      100,
		Height:     100,
		FruitSlots: []utils.Vec{{X: 10, Y: 10}},
		Health:     2,
	})
	f.trees.RegrowFruit() // fruitChance = 1

	f.useAndWait(utils.ActionUseTool)
	health, _ := ecs.GetComponent[*components.HealthComponent](f.em, tree)
	assert.Equal(t, 1, health.CurrentHealth)
	assert.Equal(t, 1, p.Inventory.Items["apple"])
	assert.Equal(t, 1, f.sound.count(SoundAxe))
}

// TestPlayerBindRetargetsCallbacks 换绑后计时器回调作用于新的土壤
func TestPlayerBindRetargetsCallbacks(t *testing.T) {
	a := newPlayerFixture(cell55)
	b := newPlayerFixture(cell55)

	// 把 a 的玩家搬到 b 的世界
	moved := ecs.TransferEntity(a.em, b.em, a.player)
	b.em.DestroyEntity(b.player)
	b.em.RemoveMarkedEntities()
	b.ps.Bind(moved)

	b.useAndWait(utils.ActionUseTool)
	assert.True(t, b.soil.Flags(cell55).Has(components.SoilTilled))
	assert.False(t, a.soil.Flags(cell55).Has(components.SoilTilled))
}
