package systems

import (
	"image/color"

	"github.com/gonewx/spaza-valley/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
)

// blendMultiply 目标颜色 × 源颜色（整屏着色用）
var blendMultiply = ebiten.Blend{
	BlendFactorSourceRGB:        ebiten.BlendFactorZero,
	BlendFactorSourceAlpha:      ebiten.BlendFactorZero,
	BlendFactorDestinationRGB:   ebiten.BlendFactorSourceColor,
	BlendFactorDestinationAlpha: ebiten.BlendFactorOne,
	BlendOperationRGB:           ebiten.BlendOperationAdd,
	BlendOperationAlpha:         ebiten.BlendOperationAdd,
}

// tintScreen 用单一颜色乘整个屏幕
func tintScreen(screen, pixel *ebiten.Image, c color.Color) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	op := &ebiten.DrawImageOptions{Blend: blendMultiply}
	op.GeoM.Scale(float64(w), float64(h))
	op.ColorScale.ScaleWithColor(c)
	screen.DrawImage(pixel, op)
}

func newWhitePixel() *ebiten.Image {
	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)
	return pixel
}

// SkySystem 白天天色逐渐变暗，日结时恢复
type SkySystem struct {
	current [3]float64
	end     config.Color
	speed   float64 // 每秒每个通道下降的值
	pixel   *ebiten.Image
}

// NewSkySystem 创建天空系统
func NewSkySystem(end config.Color, speed float64) *SkySystem {
	s := &SkySystem{end: end, speed: speed}
	s.Reset()
	return s
}

// Reset 恢复白天颜色
func (s *SkySystem) Reset() {
	s.current = [3]float64{255, 255, 255}
}

// Update 每个通道向目标颜色下降，不低于目标
func (s *SkySystem) Update(deltaTime float64) {
	target := [3]float64{float64(s.end.R), float64(s.end.G), float64(s.end.B)}
	for i := range s.current {
		if s.current[i] > target[i] {
			s.current[i] -= s.speed * deltaTime
			if s.current[i] < target[i] {
				s.current[i] = target[i]
			}
		}
	}
}

// Color 当前天色
func (s *SkySystem) Color() color.RGBA {
	return color.RGBA{R: uint8(s.current[0]), G: uint8(s.current[1]), B: uint8(s.current[2]), A: 0xff}
}

// Draw 用天色乘整个画面
func (s *SkySystem) Draw(screen *ebiten.Image) {
	if s.pixel == nil {
		s.pixel = newWhitePixel()
	}
	tintScreen(screen, s.pixel, s.Color())
}
