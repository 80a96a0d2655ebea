package components

// TimerComponent 通用计时器组件
// 用于延迟回调（如效果还原）：累计时间达到目标时间后触发回调
type TimerComponent struct {
	Name        string  // 计时器名称，如 "effect_revert"
	TargetTime  float64 // 目标时间（秒）
	CurrentTime float64 // 当前已过时间（秒）
	IsReady     bool    // 计时器是否已完成

	// Seq 创建序号，同一时刻到期的计时器按创建顺序触发
	Seq uint64

	// Callback 到期时调用的回调
	Callback func()

	// Cancelled 已被取消，不再触发
	Cancelled bool
}

// Remaining 距离到期的剩余时间（秒）
func (t *TimerComponent) Remaining() float64 {
	return t.TargetTime - t.CurrentTime
}
