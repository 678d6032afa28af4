package game

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/gonewx/spaza-valley/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// SceneManager 管理当前场景以及已访问过的关卡
//
// 关卡只在第一次访问时构建，之后从缓存复用；
// 切换地图时玩家实体（包括背包）从旧关卡搬到新关卡。
type SceneManager struct {
	currentScene Scene
	levelFactory LevelFactory
	levels       map[string]Level
	logger       *log.Logger
}

// NewSceneManager 创建场景管理器，初始没有活动场景
func NewSceneManager() *SceneManager {
	return &SceneManager{
		levels: make(map[string]Level),
		logger: utils.NewLogger("scene"),
	}
}

// SetLevelFactory 设置关卡工厂
func (sm *SceneManager) SetLevelFactory(factory LevelFactory) {
	sm.levelFactory = factory
}

// SwitchTo 切换当前场景
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// Level 返回缓存的关卡，不存在时用工厂构建并缓存
func (sm *SceneManager) Level(mapID string) (Level, error) {
	if level, ok := sm.levels[mapID]; ok {
		return level, nil
	}
	if sm.levelFactory == nil {
		return nil, fmt.Errorf("level factory not set")
	}

	level, err := sm.levelFactory(mapID)
	if err != nil {
		return nil, fmt.Errorf("failed to build level %s: %w", mapID, err)
	}
	sm.levels[mapID] = level
	sm.logger.Info("level built", "map", mapID)
	return level, nil
}

// StartLevel 进入第一张地图并创建玩家
func (sm *SceneManager) StartLevel(mapID string) error {
	level, err := sm.Level(mapID)
	if err != nil {
		return err
	}
	if err := level.AttachPlayer(nil); err != nil {
		return fmt.Errorf("failed to spawn player in %s: %w", mapID, err)
	}
	sm.SwitchTo(level)
	return nil
}

// SwitchLevel 切换到另一张地图，携带玩家
// 当前场景不是关卡时返回错误；失败时玩家留在原关卡
func (sm *SceneManager) SwitchLevel(mapID string) error {
	from, ok := sm.currentScene.(Level)
	if !ok {
		return fmt.Errorf("current scene is not a level")
	}

	to, err := sm.Level(mapID)
	if err != nil {
		return err
	}

	player := from.DetachPlayer()
	if player == nil {
		return fmt.Errorf("no player in level %s", from.MapID())
	}
	if err := to.AttachPlayer(player); err != nil {
		// 放回原关卡，保持状态一致
		if restoreErr := from.AttachPlayer(player); restoreErr != nil {
			sm.logger.Error("failed to restore player", "map", from.MapID(), "error", restoreErr)
		}
		return fmt.Errorf("failed to move player to %s: %w", mapID, err)
	}

	sm.SwitchTo(to)
	sm.logger.Info("switched map", "from", from.MapID(), "to", mapID)
	return nil
}

// AdvanceDay 日结对整个世界生效：每个已构建的关卡都执行一次 ResetDay
// 未访问过的关卡在第一次构建时从第 0 天开始
func (sm *SceneManager) AdvanceDay() {
	for _, id := range sm.CachedLevels() {
		sm.levels[id].ResetDay()
	}
	sm.logger.Debug("day advanced", "levels", len(sm.levels))
}

// CachedLevels 返回已构建的关卡ID（排序后）
func (sm *SceneManager) CachedLevels() []string {
	ids := make([]string, 0, len(sm.levels))
	for id := range sm.levels {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Update 更新当前场景
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw 绘制当前场景
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
