package components

// ScaleComponent 渲染时的缩放因子（以视觉矩形底边中点为锚点）
// 作物没有分阶段图片时用它表现生长
type ScaleComponent struct {
	ScaleX float64
	ScaleY float64
}
