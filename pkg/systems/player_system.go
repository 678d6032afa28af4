package systems

import (
	"github.com/charmbracelet/log"
	"github.com/gonewx/spaza-valley/pkg/components"
	"github.com/gonewx/spaza-valley/pkg/config"
	"github.com/gonewx/spaza-valley/pkg/ecs"
	"github.com/gonewx/spaza-valley/pkg/game"
	"github.com/gonewx/spaza-valley/pkg/utils"
)

// InteractHandler 玩家与交互区域交互时的回调（床由玩家系统自己处理）
type InteractHandler func(kind components.InteractionKind)

// PlayerSystem 玩家状态机
//
// 每帧顺序：输入 → 状态 → 作用点 → 计时器 → 体力 → 动画。
// 工具/种子使用期间屏蔽移动和再次触发，计时器到期时执行一次对应效果。
// 移动本身由 MovementSystem 完成。
type PlayerSystem struct {
	entityManager *ecs.EntityManager
	input         utils.InputSource
	cfg           config.PlayerConfig
	soil          *SoilSystem
	trees         *TreeSystem
	sound         game.SoundPlayer
	onInteract    InteractHandler
	player        ecs.EntityID
	logger        *log.Logger
}

// NewPlayerSystem 创建玩家系统
func NewPlayerSystem(em *ecs.EntityManager, input utils.InputSource, cfg config.PlayerConfig, soil *SoilSystem, trees *TreeSystem, sound game.SoundPlayer) *PlayerSystem {
	if sound == nil {
		sound = game.NullSound{}
	}
	return &PlayerSystem{
		entityManager: em,
		input:         input,
		cfg:           cfg,
		soil:          soil,
		trees:         trees,
		sound:         sound,
		logger:        utils.NewLogger("player"),
	}
}

// SetInteractHandler 设置与商人等区域交互时的回调
func (s *PlayerSystem) SetInteractHandler(fn InteractHandler) {
	s.onInteract = fn
}

// SetInput 替换输入源
func (s *PlayerSystem) SetInput(input utils.InputSource) {
	s.input = input
}

// Player 当前绑定的玩家实体
func (s *PlayerSystem) Player() ecs.EntityID {
	return s.player
}

// Bind 把玩家实体绑定到本关卡
// 计时器回调在这里重新指向本关卡的土壤和果树，玩家换地图后必须重新绑定
func (s *PlayerSystem) Bind(id ecs.EntityID) {
	s.player = id
	p, ok := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id)
	if !ok {
		s.logger.Warn("bind: entity has no player component", "id", id)
		return
	}
	p.Timers.ToolUse.OnExpire = s.useTool
	p.Timers.SeedUse.OnExpire = s.useSeed
}

// Update 推进玩家状态机
func (s *PlayerSystem) Update(deltaTime float64) {
	p, ok := ecs.GetComponent[*components.PlayerComponent](s.entityManager, s.player)
	if !ok {
		return
	}

	s.handleInput(p)
	s.updateStatus(p)
	s.updateTarget(p)
	for _, timer := range p.Timers.All() {
		timer.Update(deltaTime)
	}
	// 使用工具/种子或睡觉时体力和冷却都暂停
	if !p.Timers.UseActive() && !p.Sleep {
		s.updateStamina(p, deltaTime)
	}
	s.animate(p, deltaTime)
}

func (s *PlayerSystem) handleInput(p *components.PlayerComponent) {
	p.Input = utils.Vec{}
	p.Sprinting = false
	if s.input == nil || p.Timers.UseActive() || p.Sleep {
		return
	}

	if s.input.Pressed(utils.ActionUp) {
		p.Input.Y = -1
		p.Status.Direction = components.DirUp
	} else if s.input.Pressed(utils.ActionDown) {
		p.Input.Y = 1
		p.Status.Direction = components.DirDown
	}
	if s.input.Pressed(utils.ActionRight) {
		p.Input.X = 1
		p.Status.Direction = components.DirRight
	} else if s.input.Pressed(utils.ActionLeft) {
		p.Input.X = -1
		p.Status.Direction = components.DirLeft
	}

	// 按住冲刺键就消耗体力，站着不动也一样
	p.Sprinting = s.input.Pressed(utils.ActionSprint) &&
		p.Stamina > 0 && !p.StaminaCooldown.Active

	if s.input.Pressed(utils.ActionUseTool) {
		p.Timers.ToolUse.Activate()
		p.Input = utils.Vec{}
		p.Sprinting = false
		p.FrameIndex = 0
	}
	if s.input.Pressed(utils.ActionSwitchTool) && !p.Timers.ToolSwitch.Active {
		p.Timers.ToolSwitch.Activate()
		p.ToolIndex = (p.ToolIndex + 1) % len(p.Tools)
	}

	if s.input.Pressed(utils.ActionUseSeed) {
		p.Timers.SeedUse.Activate()
		p.Input = utils.Vec{}
		p.Sprinting = false
		p.FrameIndex = 0
	}
	if s.input.Pressed(utils.ActionSwitchSeed) && !p.Timers.SeedSwitch.Active {
		p.Timers.SeedSwitch.Activate()
		p.SeedIndex = (p.SeedIndex + 1) % len(p.Seeds)
	}

	if s.input.Pressed(utils.ActionInteract) && !p.Timers.Interact.Active {
		p.Timers.Interact.Activate()
		s.interact(p)
	}
}

// interact 检查与玩家视觉矩形重叠的交互区域
func (s *PlayerSystem) interact(p *components.PlayerComponent) {
	rect, ok := VisualRect(s.entityManager, s.player)
	if !ok {
		return
	}
	for _, id := range ecs.GetEntitiesWith1[*components.InteractionComponent](s.entityManager) {
		zone, ok := HitboxRect(s.entityManager, id)
		if !ok || !zone.Intersects(rect) {
			continue
		}
		ic, _ := ecs.GetComponent[*components.InteractionComponent](s.entityManager, id)
		switch ic.Kind {
		case components.InteractionBed:
			p.Status = components.PlayerStatus{Direction: components.DirLeft, Activity: components.ActivityIdle}
			p.Input = utils.Vec{}
			p.Sleep = true
			s.logger.Debug("going to sleep")
		default:
			if s.onInteract != nil {
				s.onInteract(ic.Kind)
			}
		}
		return
	}
}

func (s *PlayerSystem) updateStatus(p *components.PlayerComponent) {
	switch {
	case p.Timers.ToolUse.Active:
		p.Status.Activity = components.ToolActivities[p.SelectedTool()]
	case p.Input == (utils.Vec{}):
		p.Status.Activity = components.ActivityIdle
	default:
		p.Status.Activity = components.ActivityWalk
	}
}

// updateTarget 作用点 = 碰撞盒中心 + 当前朝向的工具偏移
func (s *PlayerSystem) updateTarget(p *components.PlayerComponent) {
	box, ok := HitboxRect(s.entityManager, s.player)
	if !ok {
		return
	}
	cx, cy := box.Center()
	off := s.cfg.ToolOffsets[p.Status.Direction.String()]
	p.ToolTarget = utils.Vec{X: cx + off.X, Y: cy + off.Y}
}

// updateStamina 冲刺消耗体力，耗尽后进入冷却；冷却结束且不冲刺时恢复
func (s *PlayerSystem) updateStamina(p *components.PlayerComponent, dt float64) {
	p.StaminaCooldown.Update(dt)

	if p.Sprinting {
		p.Stamina -= s.cfg.StaminaDrain * dt
		if p.Stamina <= 0 {
			p.Stamina = 0
			p.Sprinting = false
			p.StaminaCooldown.Activate()
			s.logger.Debug("stamina exhausted")
		}
		return
	}
	if !p.StaminaCooldown.Active {
		p.Stamina = utils.ClampF(p.Stamina+s.cfg.StaminaRegen*dt, 0, p.StaminaMax)
	}
}

func (s *PlayerSystem) animate(p *components.PlayerComponent, dt float64) {
	frames := p.Frames[p.Status.FrameSet()]
	sprite, ok := ecs.GetComponent[*components.SpriteComponent](s.entityManager, s.player)
	if !ok {
		return
	}
	if len(frames) == 0 {
		sprite.Image = nil
		return
	}
	p.FrameIndex += s.cfg.AnimationFPS * dt
	for p.FrameIndex >= float64(len(frames)) {
		p.FrameIndex -= float64(len(frames))
	}
	sprite.Image = frames[int(p.FrameIndex)]
}

// useTool 工具使用计时器到期
func (s *PlayerSystem) useTool() {
	p, ok := ecs.GetComponent[*components.PlayerComponent](s.entityManager, s.player)
	if !ok {
		return
	}
	x, y := p.ToolTarget.X, p.ToolTarget.Y

	switch tool := p.SelectedTool(); tool {
	case "hoe":
		s.soil.Till(x, y)
		s.sound.PlaySound(SoundHoe)
	case "axe":
		if s.trees == nil {
			return
		}
		if tree, ok := s.trees.TreeAt(x, y); ok {
			s.trees.Damage(tree, p.Inventory)
			s.sound.PlaySound(SoundAxe)
		}
	case "water":
		s.soil.Water(x, y)
		s.sound.PlaySound(SoundWater)
	default:
		s.logger.Warn("unknown tool", "tool", tool)
	}
}

// useSeed 种子使用计时器到期：有库存且种下成功时扣除一颗
func (s *PlayerSystem) useSeed() {
	p, ok := ecs.GetComponent[*components.PlayerComponent](s.entityManager, s.player)
	if !ok || p.Inventory == nil {
		return
	}
	seed := p.SelectedSeed()
	if p.Inventory.Seeds[seed] <= 0 {
		s.logger.Debug("no seeds left", "seed", seed)
		return
	}
	if s.soil.PlantSeed(p.ToolTarget.X, p.ToolTarget.Y, seed) {
		p.Inventory.ConsumeSeed(seed)
		s.sound.PlaySound(SoundPlant)
	}
}
