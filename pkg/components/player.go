package components

import (
	"github.com/gonewx/spaza-valley/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// Direction 玩家朝向
type Direction int

const (
	DirDown Direction = iota
	DirUp
	DirLeft
	DirRight
)

var directionNames = map[Direction]string{
	DirDown:  "down",
	DirUp:    "up",
	DirLeft:  "left",
	DirRight: "right",
}

// String 返回朝向名称（与动画目录、工具偏移配置的键一致）
func (d Direction) String() string {
	return directionNames[d]
}

// Activity 玩家当前动作
type Activity int

const (
	ActivityWalk Activity = iota
	ActivityIdle
	ActivityHoe
	ActivityAxe
	ActivityWater
)

// 动作到动画目录后缀的映射
var activitySuffix = map[Activity]string{
	ActivityWalk:  "",
	ActivityIdle:  "_idle",
	ActivityHoe:   "_hoe",
	ActivityAxe:   "_axe",
	ActivityWater: "_water",
}

// ToolActivities 工具名称到动作的映射
var ToolActivities = map[string]Activity{
	"hoe":   ActivityHoe,
	"axe":   ActivityAxe,
	"water": ActivityWater,
}

// PlayerStatus 玩家状态 = 朝向 × 动作
type PlayerStatus struct {
	Direction Direction
	Activity  Activity
}

// FrameSet 返回状态对应的动画帧集合名称，如 "left_hoe"
func (s PlayerStatus) FrameSet() string {
	return s.Direction.String() + activitySuffix[s.Activity]
}

// AllPlayerStatuses 所有合法的状态（用于预加载动画）
func AllPlayerStatuses() []PlayerStatus {
	statuses := make([]PlayerStatus, 0, 20)
	for _, d := range []Direction{DirUp, DirDown, DirLeft, DirRight} {
		for _, a := range []Activity{ActivityWalk, ActivityIdle, ActivityHoe, ActivityAxe, ActivityWater} {
			statuses = append(statuses, PlayerStatus{Direction: d, Activity: a})
		}
	}
	return statuses
}

// PlayerTimers 玩家的各个动作计时器，互相独立
type PlayerTimers struct {
	ToolUse    *Timer
	ToolSwitch *Timer
	SeedUse    *Timer
	SeedSwitch *Timer
	Interact   *Timer
}

// UseActive 任一使用类计时器（工具/种子）正在运行
func (t *PlayerTimers) UseActive() bool {
	return t.ToolUse.Active || t.SeedUse.Active
}

// All 返回全部计时器
func (t *PlayerTimers) All() []*Timer {
	return []*Timer{t.ToolUse, t.ToolSwitch, t.SeedUse, t.SeedSwitch, t.Interact}
}

// PlayerComponent 玩家状态
type PlayerComponent struct {
	Status PlayerStatus
	// Input 本帧的移动方向（未归一化）
	Input utils.Vec

	Speed       float64
	SprintSpeed float64
	Sprinting   bool

	Stamina         float64
	StaminaMax      float64
	StaminaCooldown *Timer // 体力耗尽后的冷却，期间不恢复

	Tools     []string
	Seeds     []string
	ToolIndex int
	SeedIndex int

	Inventory *Inventory
	Timers    PlayerTimers

	Sleep bool

	// Frames 动画帧集合：FrameSet() -> 帧序列
	Frames     map[string][]*ebiten.Image
	FrameIndex float64

	// ToolTarget 工具/种子作用点（世界坐标）
	ToolTarget utils.Vec
}

// SelectedTool 当前工具
func (p *PlayerComponent) SelectedTool() string {
	return p.Tools[p.ToolIndex]
}

// SelectedSeed 当前种子
func (p *PlayerComponent) SelectedSeed() string {
	return p.Seeds[p.SeedIndex]
}
