// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Action 玩家可触发的逻辑动作
// 系统只关心动作，不关心具体按键
type Action int

const (
	ActionUp Action = iota
	ActionDown
	ActionLeft
	ActionRight
	ActionSprint
	ActionUseTool
	ActionSwitchTool
	ActionUseSeed
	ActionSwitchSeed
	ActionInteract
	ActionMenuConfirm
	ActionMenuClose

	// 全局设置热键，由 app 处理
	ActionToggleHUD
	ActionToggleMusic
	ActionToggleSound
	ActionToggleFullscreen
	ActionVolumeDown
	ActionVolumeUp
)

// InputSource 每帧轮询的输入状态
// 核心逻辑只依赖这个接口，测试中使用假实现
type InputSource interface {
	// Pressed 动作对应的任一按键当前处于按下状态
	Pressed(a Action) bool
	// JustPressed 动作对应的任一按键在本帧刚刚按下
	JustPressed(a Action) bool
}

// DefaultKeyBindings 默认键位
var DefaultKeyBindings = map[Action][]ebiten.Key{
	ActionUp:          {ebiten.KeyArrowUp, ebiten.KeyW},
	ActionDown:        {ebiten.KeyArrowDown, ebiten.KeyS},
	ActionLeft:        {ebiten.KeyArrowLeft, ebiten.KeyA},
	ActionRight:       {ebiten.KeyArrowRight, ebiten.KeyD},
	ActionSprint:      {ebiten.KeyShiftLeft},
	ActionUseTool:     {ebiten.KeySpace},
	ActionSwitchTool:  {ebiten.KeyQ},
	ActionUseSeed:     {ebiten.KeyControlLeft},
	ActionSwitchSeed:  {ebiten.KeyE},
	ActionInteract:    {ebiten.KeyEnter},
	ActionMenuConfirm: {ebiten.KeySpace},
	ActionMenuClose:   {ebiten.KeyEscape},

	ActionToggleHUD:        {ebiten.KeyF1},
	ActionToggleMusic:      {ebiten.KeyM},
	ActionToggleSound:      {ebiten.KeyN},
	ActionToggleFullscreen: {ebiten.KeyF11},
	ActionVolumeDown:       {ebiten.KeyMinus},
	ActionVolumeUp:         {ebiten.KeyEqual},
}

// KeyboardInput 基于 ebiten 键盘状态的 InputSource
type KeyboardInput struct {
	bindings map[Action][]ebiten.Key
}

// NewKeyboardInput 创建键盘输入，bindings 为 nil 时使用默认键位
func NewKeyboardInput(bindings map[Action][]ebiten.Key) *KeyboardInput {
	if bindings == nil {
		bindings = DefaultKeyBindings
	}
	return &KeyboardInput{bindings: bindings}
}

// Pressed 实现 InputSource
func (k *KeyboardInput) Pressed(a Action) bool {
	for _, key := range k.bindings[a] {
		if ebiten.IsKeyPressed(key) {
			return true
		}
	}
	return false
}

// JustPressed 实现 InputSource
func (k *KeyboardInput) JustPressed(a Action) bool {
	for _, key := range k.bindings[a] {
		if inpututil.IsKeyJustPressed(key) {
			return true
		}
	}
	return false
}

// StaticInput 固定按键集合的 InputSource
// 用于测试和脚本化演示（无需窗口）
type StaticInput struct {
	Held map[Action]bool
	Just map[Action]bool
}

// NewStaticInput 创建一个所有动作都未按下的 StaticInput
func NewStaticInput() *StaticInput {
	return &StaticInput{Held: map[Action]bool{}, Just: map[Action]bool{}}
}

// Press 按下动作（同时视为本帧刚按下）
func (s *StaticInput) Press(actions ...Action) *StaticInput {
	for _, a := range actions {
		s.Held[a] = true
		s.Just[a] = true
	}
	return s
}

// ReleaseAll 松开所有动作
func (s *StaticInput) ReleaseAll() {
	s.Held = map[Action]bool{}
	s.Just = map[Action]bool{}
}

// EndFrame 清除“刚按下”标记，保留按住状态
func (s *StaticInput) EndFrame() {
	s.Just = map[Action]bool{}
}

// Pressed 实现 InputSource
func (s *StaticInput) Pressed(a Action) bool { return s.Held[a] }

// JustPressed 实现 InputSource
func (s *StaticInput) JustPressed(a Action) bool { return s.Just[a] }
