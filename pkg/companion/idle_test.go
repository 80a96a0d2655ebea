package companion

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdleOscillator_BoundedAndPeriodic(t *testing.T) {
	// 默认速率下约 126 帧一个周期
	assert.Equal(t, 126, int(math.Round(2*math.Pi/0.05)))

	const period = 120
	o := NewIdleOscillator(5, 2*math.Pi/period)

	var samples []float64
	for i := 0; i < period*3; i++ {
		v := o.Next()
		assert.LessOrEqual(t, math.Abs(v), 5.0)
		samples = append(samples, v)
	}
	for i := 0; i+period < len(samples); i++ {
		assert.InDelta(t, samples[i], samples[i+period], 1e-9)
	}
}

func TestIdleOscillator_AdvancesBeforeSampling(t *testing.T) {
	o := NewIdleOscillator(5, 0.05)
	assert.Equal(t, 0.0, o.Phase())

	v := o.Next()
	assert.InDelta(t, 0.05, o.Phase(), 1e-12)
	assert.InDelta(t, 5*math.Sin(0.05), v, 1e-12)
}

func TestIdleOscillator_PhaseUnbounded(t *testing.T) {
	o := NewIdleOscillator(1, 1)
	for i := 0; i < 1000; i++ {
		o.Next()
	}
	assert.InDelta(t, 1000, o.Phase(), 1e-9)
}
