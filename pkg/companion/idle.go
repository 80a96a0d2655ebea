package companion

import "math"

// IdleOscillator 空闲漂浮振荡器
//
// 相位单调递增、不设上界，输出 intensity*sin(phase)，只作用于垂直方向。
// 相位只在伙伴运行时推进，暂停不会重置。
type IdleOscillator struct {
	intensity float64
	rate      float64
	phase     float64
}

// NewIdleOscillator 创建振荡器
// 参数：
//   - intensity: 振幅（像素）
//   - rate: 每帧相位增量（弧度）
func NewIdleOscillator(intensity, rate float64) *IdleOscillator {
	return &IdleOscillator{intensity: intensity, rate: rate}
}

// Next 推进一帧相位并返回当前垂直偏移
func (o *IdleOscillator) Next() float64 {
	o.phase += o.rate
	return o.intensity * math.Sin(o.phase)
}

// Phase 当前相位
func (o *IdleOscillator) Phase() float64 {
	return o.phase
}
