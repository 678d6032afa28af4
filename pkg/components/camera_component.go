package components

// CameraTargetComponent 标记镜头跟随的实体（玩家）
// 镜头锚点是该实体视觉矩形的中心
type CameraTargetComponent struct{}
