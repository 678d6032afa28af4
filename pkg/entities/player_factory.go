package entities

import (
	"path"

	"github.com/gonewx/spaza-valley/pkg/components"
	"github.com/gonewx/spaza-valley/pkg/config"
	"github.com/gonewx/spaza-valley/pkg/ecs"
	"github.com/gonewx/spaza-valley/pkg/game"
	"github.com/gonewx/spaza-valley/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// LoadPlayerFrames 加载玩家全部状态的动画帧
// 目录结构: <dir>/<状态>/0.png, 1.png ...（如 character/left_hoe/）
// 缺失的状态只记录警告，对应状态不绘制
func LoadPlayerFrames(assets game.AssetProvider, dir string) map[string][]*ebiten.Image {
	logger := utils.NewLogger("entities")
	frames := make(map[string][]*ebiten.Image)
	for _, status := range components.AllPlayerStatuses() {
		key := status.FrameSet()
		imgs, err := assets.LoadFrames(path.Join(dir, key))
		if err != nil {
			logger.Warn("missing player animation", "status", key, "error", err)
			continue
		}
		frames[key] = imgs
	}
	return frames
}

// NewPlayerEntity 创建玩家实体
//
// 参数:
//   - em: 实体管理器
//   - cfg: 玩家配置（速度、体力、计时器、工具列表）
//   - frames: 状态 -> 动画帧
//   - centerX, centerY: 出生点（视觉矩形中心）
//
// 返回:
//   - ecs.EntityID: 玩家实体ID
//
// 计时器回调由 PlayerSystem.Bind 绑定到当前关卡
func NewPlayerEntity(em *ecs.EntityManager, cfg config.PlayerConfig, frames map[string][]*ebiten.Image, centerX, centerY float64) ecs.EntityID {
	id := em.CreateEntity()

	w, h := cfg.SpriteWidth, cfg.SpriteHeight
	em.AddComponent(id, &components.PositionComponent{X: centerX - w/2, Y: centerY - h/2})

	status := components.PlayerStatus{Direction: components.DirDown, Activity: components.ActivityIdle}
	var img *ebiten.Image
	if f := frames[status.FrameSet()]; len(f) > 0 {
		img = f[0]
	}
	em.AddComponent(id, &components.SpriteComponent{Image: img, Width: w, Height: h})
	em.AddComponent(id, components.NewInsetCollision(w, h, cfg.HitboxShrinkX, cfg.HitboxShrinkY))
	em.AddComponent(id, &components.LayerComponent{Z: config.LayerMain})
	em.AddComponent(id, components.NewCapabilities(components.CapRenderable))
	em.AddComponent(id, &components.CameraTargetComponent{})

	tools := append([]string(nil), cfg.Tools...)
	seeds := append([]string(nil), cfg.Seeds...)
	em.AddComponent(id, &components.PlayerComponent{
		Status:          status,
		Speed:           cfg.Speed,
		SprintSpeed:     cfg.SprintSpeed,
		Stamina:         cfg.StaminaMax,
		StaminaMax:      cfg.StaminaMax,
		StaminaCooldown: components.NewTimer(cfg.StaminaCooldown, nil),
		Tools:           tools,
		Seeds:           seeds,
		Inventory:       components.NewInventory(cfg.StartItems, cfg.StartSeeds, cfg.StartMoney),
		Timers: components.PlayerTimers{
			ToolUse:    components.NewTimer(cfg.ToolUseTime, nil),
			ToolSwitch: components.NewTimer(cfg.SwitchTime, nil),
			SeedUse:    components.NewTimer(cfg.SeedUseTime, nil),
			SeedSwitch: components.NewTimer(cfg.SwitchTime, nil),
			Interact:   components.NewTimer(cfg.InteractCooldown, nil),
		},
		Frames: frames,
	})

	return id
}
