package components

// ParticleComponent 简单粒子：匀速移动，由 LifetimeComponent 决定何时消失
// 用于收获/砍树的白色闪光和雨滴
type ParticleComponent struct {
	VelocityX float64 // 像素/秒
	VelocityY float64
}
