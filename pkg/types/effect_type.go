package types

import "strings"

// EffectType 定义伙伴变换效果的类型
type EffectType int

const (
	// EffectUnknown 未识别的效果类型（播放时为空操作）
	EffectUnknown EffectType = iota
	// EffectBounce 弹跳：等比缩放到 intensity
	EffectBounce
	// EffectSquash 挤压：非等比缩放到 (intensity, 2-intensity)
	EffectSquash
	// EffectSpin 旋转一整圈
	EffectSpin
	// EffectWiggle 左右摇摆
	EffectWiggle
	// EffectFloat 漂浮（仅用于空闲振荡，没有离散变换）
	EffectFloat
)

// String 返回效果类型的字符串表示（与配置文件中的名称一致）
func (e EffectType) String() string {
	switch e {
	case EffectBounce:
		return "bounce"
	case EffectSquash:
		return "squash"
	case EffectSpin:
		return "spin"
	case EffectWiggle:
		return "wiggle"
	case EffectFloat:
		return "float"
	default:
		return "unknown"
	}
}

// ParseEffectType 将配置名称解析为效果类型
// 大小写不敏感；无法识别的名称返回 EffectUnknown
func ParseEffectType(name string) EffectType {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bounce":
		return EffectBounce
	case "squash":
		return EffectSquash
	case "spin":
		return EffectSpin
	case "wiggle":
		return EffectWiggle
	case "float":
		return EffectFloat
	default:
		return EffectUnknown
	}
}

// MarshalYAML 以名称形式输出效果类型
func (e EffectType) MarshalYAML() (interface{}, error) {
	return e.String(), nil
}
