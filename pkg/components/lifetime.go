package components

// LifetimeComponent 管理短生命周期实体（粒子、雨滴）
// 到期后由 LifetimeSystem 标记删除
type LifetimeComponent struct {
	MaxLifetime     float64 // 最大生命周期(秒)
	CurrentLifetime float64 // 当前已存在时间(秒)
	IsExpired       bool
}
