package components

// Timer 一次性倒计时
// 每帧由所属系统调用 Update(dt) 轮询，到期时自动停用并同步调用一次 OnExpire
type Timer struct {
	Duration float64 // 持续时间（秒）
	Elapsed  float64 // 已经过时间（秒）
	Active   bool
	OnExpire func()
}

// NewTimer 创建一个未激活的计时器
func NewTimer(duration float64, onExpire func()) *Timer {
	return &Timer{Duration: duration, OnExpire: onExpire}
}

// Activate 从零开始计时
func (t *Timer) Activate() {
	t.Active = true
	t.Elapsed = 0
}

// Deactivate 停止计时，不触发回调
func (t *Timer) Deactivate() {
	t.Active = false
	t.Elapsed = 0
}

// Update 推进计时器
func (t *Timer) Update(dt float64) {
	if !t.Active {
		return
	}
	t.Elapsed += dt
	if t.Elapsed >= t.Duration {
		t.Deactivate()
		if t.OnExpire != nil {
			t.OnExpire()
		}
	}
}
