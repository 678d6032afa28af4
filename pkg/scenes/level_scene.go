package scenes

import (
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/gonewx/spaza-valley/pkg/components"
	"github.com/gonewx/spaza-valley/pkg/config"
	"github.com/gonewx/spaza-valley/pkg/ecs"
	"github.com/gonewx/spaza-valley/pkg/entities"
	"github.com/gonewx/spaza-valley/pkg/game"
	"github.com/gonewx/spaza-valley/pkg/modules"
	"github.com/gonewx/spaza-valley/pkg/systems"
	"github.com/gonewx/spaza-valley/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// LevelState 关卡状态
type LevelState int

const (
	LevelActive        LevelState = iota // 正常游戏
	LevelShopOpen                        // 商店打开，世界暂停
	LevelTransitioning                   // 睡觉过渡（变黑→日结→变亮）
)

func (s LevelState) String() string {
	switch s {
	case LevelActive:
		return "active"
	case LevelShopOpen:
		return "shop"
	case LevelTransitioning:
		return "transitioning"
	}
	return "unknown"
}

// LevelScene 一张地图
//
// 每个关卡拥有独立的 EntityManager；耕地、作物、果树的状态在切换地图后保留，
// 只有玩家实体在关卡之间搬运。
type LevelScene struct {
	mapID   string
	nextMap string
	cfg     *config.GameConfig

	entityManager *ecs.EntityManager
	state         LevelState
	raining       bool
	day           int
	spawn         utils.Vec
	playerFrames  map[string][]*ebiten.Image

	playerSystem     *systems.PlayerSystem
	movementSystem   *systems.MovementSystem
	soilSystem       *systems.SoilSystem
	treeSystem       *systems.TreeSystem
	harvestSystem    *systems.HarvestSystem
	animationSystem  *systems.AnimationSystem
	particleSystem   *systems.ParticleSystem
	lifetimeSystem   *systems.LifetimeSystem
	weatherSystem    *systems.WeatherSystem
	skySystem        *systems.SkySystem
	transitionSystem *systems.TransitionSystem
	cameraSystem     *systems.CameraSystem
	renderSystem     *systems.RenderSystem

	shop    *modules.ShopModule
	overlay *overlay

	switcher game.MapSwitcher
	showHUD  func() bool
	rng      *rand.Rand
	logger   *log.Logger
}

// 编译期检查
var _ game.Level = (*LevelScene)(nil)

// MapID 实现 game.Level
func (s *LevelScene) MapID() string {
	return s.mapID
}

// State 当前状态
func (s *LevelScene) State() LevelState {
	return s.state
}

// Raining 今天是否下雨
func (s *LevelScene) Raining() bool {
	return s.raining
}

// Day 已经过的天数（从 0 开始）
func (s *LevelScene) Day() int {
	return s.day
}

// EntityManager 关卡的实体管理器
func (s *LevelScene) EntityManager() *ecs.EntityManager {
	return s.entityManager
}

// Soil 关卡的土壤系统
func (s *LevelScene) Soil() *systems.SoilSystem {
	return s.soilSystem
}

// Player 当前关卡中的玩家实体，没有玩家时返回 0
func (s *LevelScene) Player() ecs.EntityID {
	if !s.entityManager.Exists(s.playerSystem.Player()) {
		return 0
	}
	return s.playerSystem.Player()
}

// SetInput 替换输入源（玩家和商店）
func (s *LevelScene) SetInput(input utils.InputSource) {
	s.playerSystem.SetInput(input)
	s.shop.SetInput(input)
}

// SetSwitcher 设置换地图的目标（通常是 SceneManager）
func (s *LevelScene) SetSwitcher(switcher game.MapSwitcher) {
	s.switcher = switcher
}

func (s *LevelScene) playerComponent() *components.PlayerComponent {
	p, _ := ecs.GetComponent[*components.PlayerComponent](s.entityManager, s.Player())
	return p
}

// Update 推进一帧
//
// 商店打开时只更新商店；否则依次执行玩家、移动、世界（动画、粒子、寿命、收获、雨、天色），
// 然后检查睡觉和离开地图，最后清理本帧删除的实体。
func (s *LevelScene) Update(deltaTime float64) {
	defer s.entityManager.RemoveMarkedEntities()

	if s.state == LevelShopOpen {
		var inv *components.Inventory
		if p := s.playerComponent(); p != nil {
			inv = p.Inventory
		}
		s.shop.Update(deltaTime, inv)
		return
	}

	s.playerSystem.Update(deltaTime)
	s.movementSystem.Update(deltaTime)

	s.animationSystem.Update(deltaTime)
	s.particleSystem.Update(deltaTime)
	s.lifetimeSystem.Update(deltaTime)
	if player := s.Player(); player != 0 {
		s.harvestSystem.Update(player)
	}
	s.weatherSystem.Update(deltaTime, s.raining)
	s.skySystem.Update(deltaTime)

	if p := s.playerComponent(); p != nil && p.Sleep && s.state == LevelActive {
		s.state = LevelTransitioning
		s.transitionSystem.Start()
		s.logger.Debug("player went to sleep", "day", s.day)
	}
	s.transitionSystem.Update(deltaTime)

	s.checkMapExit()
}

// checkMapExit 玩家走出地图顶部时切换到配对地图
func (s *LevelScene) checkMapExit() {
	player := s.Player()
	if player == 0 || s.switcher == nil || s.state != LevelActive {
		return
	}
	rect, ok := systems.VisualRect(s.entityManager, player)
	if !ok || rect.Top() >= 0 {
		return
	}

	if err := s.switcher.SwitchLevel(s.nextMap); err != nil {
		s.logger.Warn("failed to switch map", "from", s.mapID, "to", s.nextMap, "error", err)
		// 切换失败时把玩家推回地图内，避免每帧重试
		if pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, player); ok {
			pos.Y -= rect.Top()
		}
	}
}

// endDay 过渡变黑时调用，由 switcher 对所有关卡日结
// 没有 switcher 时只结算本关卡
func (s *LevelScene) endDay() {
	if s.switcher != nil {
		s.switcher.AdvanceDay()
		return
	}
	s.ResetDay()
}

// ResetDay 实现 game.Level
func (s *LevelScene) ResetDay() {
	s.day++
	s.soilSystem.UpdatePlants()
	s.soilSystem.RemoveWater()

	s.raining = s.rng.Float64() < s.cfg.Weather.RainChance
	s.soilSystem.SetRaining(s.raining)
	if s.raining {
		s.soilSystem.WaterAll()
	}

	s.treeSystem.RegrowFruit()
	s.skySystem.Reset()
	s.logger.Info("new day", "map", s.mapID, "day", s.day, "raining", s.raining)
}

// finishSleep 过渡结束，玩家醒来
func (s *LevelScene) finishSleep() {
	if p := s.playerComponent(); p != nil {
		p.Sleep = false
	}
	s.state = LevelActive
}

// openShop 与商人交互
func (s *LevelScene) openShop(kind components.InteractionKind) {
	if kind != components.InteractionTrader || s.state != LevelActive {
		return
	}
	s.state = LevelShopOpen
	s.shop.Open()
	s.logger.Debug("shop opened")
}

func (s *LevelScene) closeShop() {
	if s.state == LevelShopOpen {
		s.state = LevelActive
	}
}

// DetachPlayer 实现 game.Level
func (s *LevelScene) DetachPlayer() ecs.ComponentSet {
	player := s.Player()
	if player == 0 {
		return nil
	}
	return s.entityManager.ExtractEntity(player)
}

// AttachPlayer 实现 game.Level
// 玩家视觉中心放在出生点
func (s *LevelScene) AttachPlayer(set ecs.ComponentSet) error {
	var id ecs.EntityID
	if set == nil {
		id = entities.NewPlayerEntity(s.entityManager, s.cfg.Player, s.playerFrames, s.spawn.X, s.spawn.Y)
	} else {
		id = s.entityManager.AdoptEntity(set)
		if pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id); ok {
			if sprite, ok := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id); ok {
				pos.X = s.spawn.X - sprite.Width/2
				pos.Y = s.spawn.Y - sprite.Height/2
			}
		}
	}
	s.playerSystem.Bind(id)
	s.state = LevelActive
	s.logger.Debug("player attached", "map", s.mapID, "x", s.spawn.X, "y", s.spawn.Y)
	return nil
}

// Draw 绘制世界、天色、叠加层、商店和过渡
func (s *LevelScene) Draw(screen *ebiten.Image) {
	s.cameraSystem.Update()
	s.renderSystem.Draw(&systems.RenderContext{
		Screen:   screen,
		Offset:   s.cameraSystem.Offset(),
		Viewport: s.cameraSystem.Viewport(),
	})
	if screen == nil {
		return
	}
	s.skySystem.Draw(screen)

	p := s.playerComponent()
	if s.showHUD == nil || s.showHUD() {
		s.overlay.Draw(screen, p, s.raining)
	}
	if s.state == LevelShopOpen {
		var inv *components.Inventory
		if p != nil {
			inv = p.Inventory
		}
		s.shop.Draw(screen, inv)
	}
	s.transitionSystem.Draw(screen)
}
