package components

// CollisionComponent 定义实体的碰撞盒
// 碰撞盒通常比视觉矩形小（如玩家只有脚下一块参与碰撞）
type CollisionComponent struct {
	Width   float64 // 碰撞盒宽度（像素）
	Height  float64 // 碰撞盒高度（像素）
	OffsetX float64 // 碰撞盒左上角相对于实体位置的X偏移量（像素）
	OffsetY float64 // 碰撞盒左上角相对于实体位置的Y偏移量（像素）
}

// NewInsetCollision 创建以视觉矩形为中心、向内收缩 shrinkW/shrinkH 的碰撞盒
func NewInsetCollision(spriteW, spriteH, shrinkW, shrinkH float64) *CollisionComponent {
	w := spriteW - shrinkW
	h := spriteH - shrinkH
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &CollisionComponent{
		Width:   w,
		Height:  h,
		OffsetX: (spriteW - w) / 2,
		OffsetY: (spriteH - h) / 2,
	}
}
