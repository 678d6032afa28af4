package components

import "github.com/hajimehoshi/ebiten/v2"

// SpriteComponent 存储实体当前绘制的图像
// Width/Height 是视觉矩形的尺寸，Image 为 nil 时实体仍然参与排序和碰撞，只是不绘制
type SpriteComponent struct {
	Image  *ebiten.Image
	Width  float64
	Height float64
	// Flash 为 true 时以纯白剪影绘制（粒子效果）
	Flash bool
}

// NewSpriteComponent 以图像尺寸创建精灵，img 为 nil 时使用给定的后备尺寸
func NewSpriteComponent(img *ebiten.Image, fallbackW, fallbackH float64) *SpriteComponent {
	if img == nil {
		return &SpriteComponent{Width: fallbackW, Height: fallbackH}
	}
	b := img.Bounds()
	return &SpriteComponent{Image: img, Width: float64(b.Dx()), Height: float64(b.Dy())}
}
