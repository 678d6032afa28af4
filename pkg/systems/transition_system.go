package systems

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// TransitionSystem 睡眠过渡：画面渐黑 → 日结回调 → 渐亮 → 结束回调
type TransitionSystem struct {
	brightness float64
	direction  float64 // -1 渐黑，+1 渐亮
	speed      float64 // 每秒亮度变化
	active     bool
	onReset    func()
	onFinish   func()
	pixel      *ebiten.Image
}

// NewTransitionSystem 创建过渡效果
//
// 参数:
//   - speed: 每秒亮度变化（0~255）
//   - onReset: 画面全黑时调用（日结）
//   - onFinish: 画面恢复后调用
func NewTransitionSystem(speed float64, onReset, onFinish func()) *TransitionSystem {
	return &TransitionSystem{
		brightness: 255,
		speed:      speed,
		onReset:    onReset,
		onFinish:   onFinish,
	}
}

// Start 开始过渡，已在进行中时忽略
func (s *TransitionSystem) Start() {
	if s.active {
		return
	}
	s.active = true
	s.brightness = 255
	s.direction = -1
}

// Active 是否正在过渡
func (s *TransitionSystem) Active() bool {
	return s.active
}

// Brightness 当前亮度（0~255）
func (s *TransitionSystem) Brightness() float64 {
	return s.brightness
}

// Update 推进过渡
func (s *TransitionSystem) Update(deltaTime float64) {
	if !s.active {
		return
	}
	s.brightness += s.direction * s.speed * deltaTime

	if s.direction < 0 && s.brightness <= 0 {
		s.brightness = 0
		s.direction = 1
		if s.onReset != nil {
			s.onReset()
		}
		return
	}
	if s.direction > 0 && s.brightness >= 255 {
		s.brightness = 255
		s.active = false
		if s.onFinish != nil {
			s.onFinish()
		}
	}
}

// Draw 过渡期间按亮度压暗画面
func (s *TransitionSystem) Draw(screen *ebiten.Image) {
	if !s.active {
		return
	}
	if s.pixel == nil {
		s.pixel = newWhitePixel()
	}
	c := uint8(s.brightness)
	tintScreen(screen, s.pixel, color.RGBA{R: c, G: c, B: c, A: 0xff})
}
