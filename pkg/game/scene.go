package game

import (
	"github.com/gonewx/spaza-valley/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene 游戏场景，各自负责更新和绘制
type Scene interface {
	// Update 推进场景逻辑，deltaTime 单位为秒
	Update(deltaTime float64)

	// Draw 把场景绘制到 screen
	Draw(screen *ebiten.Image)
}

// Level 一张地图对应的场景
// 关卡被 SceneManager 按地图ID缓存，再次进入时保留耕地、作物、树木等状态
type Level interface {
	Scene

	// MapID 地图ID
	MapID() string

	// DetachPlayer 从关卡中取出玩家实体的全部组件
	DetachPlayer() ecs.ComponentSet

	// AttachPlayer 把玩家放到本关卡的出生点
	// set 为 nil 时创建一个新玩家（游戏开始）
	AttachPlayer(set ecs.ComponentSet) error

	// ResetDay 日结：作物生长、清除浇水、重新决定天气、果树结果
	ResetDay()
}

// LevelFactory 按地图ID构建关卡，避免 game 包依赖 scenes 包
type LevelFactory func(mapID string) (Level, error)

// MapSwitcher 关卡请求切换地图或结束一天时调用
type MapSwitcher interface {
	SwitchLevel(mapID string) error
	// AdvanceDay 对所有已构建的关卡执行日结
	AdvanceDay()
}
