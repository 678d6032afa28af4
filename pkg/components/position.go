package components

// PositionComponent 世界坐标（视觉矩形左上角，像素）
type PositionComponent struct {
	X float64
	Y float64
}
