package config

import (
	"math"
	"time"

	"github.com/gonewx/cursorbuddy/pkg/types"
	"gopkg.in/yaml.v3"
)

// EffectSpec 规范化后的效果配置
//
// 每个触发类别（悬停、点击、空闲）最多持有一个 EffectSpec。
// nil 表示该类别的效果被禁用。构造完成后不再修改。
type EffectSpec struct {
	// Type 效果类型
	Type types.EffectType `yaml:"type"`

	// Intensity 效果强度
	// bounce/squash 为缩放倍率，wiggle 为摆角系数（角度 = intensity*10），float 为振幅（像素）
	Intensity float64 `yaml:"intensity"`

	// Duration 单个阶段的持续时间
	// wiggle 共两个阶段，总时长为 2*Duration
	Duration time.Duration `yaml:"-"`
}

// 各触发类别的默认效果
var (
	// DefaultHoverEffect 悬停默认效果：弹跳 1.1 倍，180ms
	DefaultHoverEffect = EffectSpec{Type: types.EffectBounce, Intensity: 1.1, Duration: 180 * time.Millisecond}

	// DefaultClickEffect 点击默认效果：挤压 0.85，150ms
	DefaultClickEffect = EffectSpec{Type: types.EffectSquash, Intensity: 0.85, Duration: 150 * time.Millisecond}

	// DefaultIdleEffect 空闲默认效果：漂浮振幅 5 像素，2000ms
	DefaultIdleEffect = EffectSpec{Type: types.EffectFloat, Intensity: 5, Duration: 2000 * time.Millisecond}
)

// EffectOverride 类型化的部分效果配置
// 未设置的字段（nil）使用默认值
type EffectOverride struct {
	Type       *string
	Intensity  *float64
	DurationMs *float64
}

// ResolveEffect 将用户提供的原始效果配置规范化为 EffectSpec
//
// 规则：
//   - nil / false → nil（禁用）
//   - true → 默认值副本
//   - map[string]any 或 EffectOverride → 逐字段覆盖默认值（type / intensity / duration，duration 单位毫秒）
//   - 其他任何形状（数字、字符串、切片等）→ nil
//
// 纯函数，无副作用。类型不匹配的字段视为缺省，回退到默认值。
func ResolveEffect(raw any, defaults EffectSpec) *EffectSpec {
	switch v := raw.(type) {
	case nil:
		return nil
	case bool:
		if !v {
			return nil
		}
		spec := defaults
		return &spec
	case RawEffect:
		return ResolveEffect(v.Value, defaults)
	case *RawEffect:
		if v == nil {
			return nil
		}
		return ResolveEffect(v.Value, defaults)
	case EffectOverride:
		return resolveOverride(v, defaults)
	case *EffectOverride:
		if v == nil {
			return nil
		}
		return resolveOverride(*v, defaults)
	case map[string]any:
		return resolveMap(v, defaults)
	case map[any]any:
		converted := make(map[string]any, len(v))
		for key, val := range v {
			if s, ok := key.(string); ok {
				converted[s] = val
			}
		}
		return resolveMap(converted, defaults)
	default:
		return nil
	}
}

func resolveOverride(o EffectOverride, defaults EffectSpec) *EffectSpec {
	spec := defaults
	if o.Type != nil {
		spec.Type = types.ParseEffectType(*o.Type)
	}
	if o.Intensity != nil {
		spec.Intensity = *o.Intensity
	}
	if o.DurationMs != nil {
		spec.Duration = millis(*o.DurationMs)
	}
	return &spec
}

func resolveMap(m map[string]any, defaults EffectSpec) *EffectSpec {
	spec := defaults
	if raw, ok := m["type"]; ok {
		switch t := raw.(type) {
		case string:
			spec.Type = types.ParseEffectType(t)
		case types.EffectType:
			spec.Type = t
		}
	}
	if raw, ok := m["intensity"]; ok {
		if f, ok := toFloat(raw); ok {
			spec.Intensity = f
		}
	}
	if raw, ok := m["duration"]; ok {
		switch d := raw.(type) {
		case time.Duration:
			spec.Duration = d
		default:
			if f, ok := toFloat(raw); ok {
				spec.Duration = millis(f)
			}
		}
	}
	return &spec
}

// toFloat 接受任意 Go 数值类型（yaml.v3 与 viper 解码出的数字类型不同）
func toFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func millis(ms float64) time.Duration {
	return time.Duration(math.Round(ms * float64(time.Millisecond)))
}

// RawEffect 保留 YAML 中效果字段的原始形状（缺省 / 布尔 / 对象 / 其他）
// 交由 ResolveEffect 统一规范化
type RawEffect struct {
	Value any
}

// UnmarshalYAML 将节点解码为通用值，不做任何校验
func (r *RawEffect) UnmarshalYAML(node *yaml.Node) error {
	var v any
	if err := node.Decode(&v); err != nil {
		return err
	}
	r.Value = v
	return nil
}

// MarshalYAML 原样输出
func (r RawEffect) MarshalYAML() (interface{}, error) {
	return r.Value, nil
}

// IsSet 字段是否出现在配置中
func (r *RawEffect) IsSet() bool {
	return r != nil && r.Value != nil
}
