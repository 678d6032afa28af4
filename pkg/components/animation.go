package components

import "github.com/hajimehoshi/ebiten/v2"

// AnimationComponent 帧序列动画（水面、角色等）
// Frame 是连续的帧位置，取整后作为当前帧索引
type AnimationComponent struct {
	Frames   []*ebiten.Image
	FPS      float64 // 每秒前进的帧数
	Frame    float64
	Loop     bool
	Finished bool // 非循环动画播放完毕
}

// CurrentImage 返回当前帧图像，没有帧时返回 nil
func (a *AnimationComponent) CurrentImage() *ebiten.Image {
	if len(a.Frames) == 0 {
		return nil
	}
	idx := int(a.Frame)
	if idx >= len(a.Frames) {
		idx = len(a.Frames) - 1
	}
	return a.Frames[idx]
}
