package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEffectType(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  EffectType
	}{
		{"弹跳", "bounce", EffectBounce},
		{"挤压", "squash", EffectSquash},
		{"旋转", "spin", EffectSpin},
		{"摇摆", "wiggle", EffectWiggle},
		{"漂浮", "float", EffectFloat},
		{"大小写不敏感", " Wiggle ", EffectWiggle},
		{"未知类型", "explode", EffectUnknown},
		{"空字符串", "", EffectUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseEffectType(tt.input))
		})
	}
}

func TestEffectType_StringRoundTrip(t *testing.T) {
	for _, e := range []EffectType{EffectBounce, EffectSquash, EffectSpin, EffectWiggle, EffectFloat} {
		assert.Equal(t, e, ParseEffectType(e.String()), "类型 %v 往返解析失败", e)
	}
	assert.Equal(t, "unknown", EffectUnknown.String())
}

func TestVector2_Arithmetic(t *testing.T) {
	a := Vector2{X: 3, Y: 4}
	b := Vector2{X: 1, Y: 2}

	assert.Equal(t, Vector2{X: 4, Y: 6}, a.Add(b))
	assert.Equal(t, Vector2{X: 2, Y: 2}, a.Sub(b))
	assert.Equal(t, Vector2{X: 1.5, Y: 2}, a.Scale(0.5))
	assert.InDelta(t, 5.0, a.Len(), 1e-12)
}
