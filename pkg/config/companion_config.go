package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/gonewx/cursorbuddy/pkg/types"
)

// ErrInvalidConfiguration 伙伴配置无效（如 followSpeed 不在 (0,1] 内）
var ErrInvalidConfiguration = errors.New("invalid configuration")

const (
	// DefaultFollowSpeed 默认跟随速度（每帧向目标靠近的比例）
	DefaultFollowSpeed = 0.15

	// DefaultIdleRate 空闲振荡每帧相位增量（弧度）
	DefaultIdleRate = 0.05

	// DefaultCompanionSize 默认伙伴尺寸（像素，圆形直径）
	DefaultCompanionSize = 30

	// DefaultAlt 默认替代文本
	DefaultAlt = "Cursor companion"
)

// CompanionOptions 用户提供的伙伴原始配置（清单文件中的一项）
//
// 效果字段保留原始形状，在 NewCompanionConfig 中统一规范化。
type CompanionOptions struct {
	// Name 伙伴名称（仅用于日志与调试面板）
	Name string `yaml:"name,omitempty"`

	// Image 精灵图片路径；为空时使用默认的半透明蓝色圆形
	Image string `yaml:"image,omitempty"`

	// Alt 替代文本（终端模式下作为状态栏标签）
	Alt string `yaml:"alt,omitempty"`

	// Size 默认圆形的直径（像素），仅在未指定 Image 时生效
	Size int `yaml:"size,omitempty"`

	// Glyph 终端模式下使用的字符，为空时根据变换自动选择
	Glyph string `yaml:"glyph,omitempty"`

	// FollowSpeed 跟随速度 (0,1]，缺省为 0.15
	FollowSpeed *float64 `yaml:"followSpeed,omitempty"`

	// Offset 指针到目标位置的偏移
	Offset *types.Vector2 `yaml:"offset,omitempty"`

	// IdleRate 空闲振荡每帧相位增量，缺省为 0.05
	IdleRate *float64 `yaml:"idleRate,omitempty"`

	// HoverEffects 悬停效果（缺省 / true / false / 部分对象）
	HoverEffects RawEffect `yaml:"hoverEffects,omitempty"`

	// ClickEffects 点击效果
	ClickEffects RawEffect `yaml:"clickEffects,omitempty"`

	// IdleEffects 空闲效果（仅 float 类型产生振荡）
	IdleEffects RawEffect `yaml:"idleEffects,omitempty"`
}

// CompanionConfig 规范化后的伙伴配置
type CompanionConfig struct {
	Name  string
	Image string
	Alt   string
	Size  int
	Glyph string

	FollowSpeed float64
	Offset      types.Vector2
	IdleRate    float64

	Hover *EffectSpec
	Click *EffectSpec
	Idle  *EffectSpec
}

// NewCompanionConfig 解析并校验原始配置
//
// 返回:
//   - CompanionConfig: 规范化后的配置
//   - error: followSpeed 或 idleRate 无效时返回包装了 ErrInvalidConfiguration 的错误
func NewCompanionConfig(opts CompanionOptions) (CompanionConfig, error) {
	cfg := CompanionConfig{
		Name:        opts.Name,
		Image:       opts.Image,
		Alt:         opts.Alt,
		Size:        opts.Size,
		Glyph:       opts.Glyph,
		FollowSpeed: DefaultFollowSpeed,
		IdleRate:    DefaultIdleRate,
		Hover:       ResolveEffect(opts.HoverEffects.Value, DefaultHoverEffect),
		Click:       ResolveEffect(opts.ClickEffects.Value, DefaultClickEffect),
		Idle:        ResolveEffect(opts.IdleEffects.Value, DefaultIdleEffect),
	}
	if cfg.Alt == "" {
		cfg.Alt = DefaultAlt
	}
	if cfg.Size <= 0 {
		cfg.Size = DefaultCompanionSize
	}
	if opts.FollowSpeed != nil {
		cfg.FollowSpeed = *opts.FollowSpeed
	}
	if opts.Offset != nil {
		cfg.Offset = *opts.Offset
	}
	if opts.IdleRate != nil {
		cfg.IdleRate = *opts.IdleRate
	}

	if err := cfg.Validate(); err != nil {
		return CompanionConfig{}, err
	}
	return cfg, nil
}

// Validate 校验配置有效性
//
// 检查：
//   - followSpeed ∈ (0,1]：0 永远无法收敛，大于 1 会过冲甚至发散
//   - idleRate 为有限正数
//   - offset 为有限值
func (c CompanionConfig) Validate() error {
	if math.IsNaN(c.FollowSpeed) || c.FollowSpeed <= 0 || c.FollowSpeed > 1 {
		return fmt.Errorf("%w: followSpeed %v must be in (0,1]", ErrInvalidConfiguration, c.FollowSpeed)
	}
	if math.IsNaN(c.IdleRate) || math.IsInf(c.IdleRate, 0) || c.IdleRate <= 0 {
		return fmt.Errorf("%w: idleRate %v must be a positive finite number", ErrInvalidConfiguration, c.IdleRate)
	}
	if math.IsNaN(c.Offset.X) || math.IsNaN(c.Offset.Y) || math.IsInf(c.Offset.X, 0) || math.IsInf(c.Offset.Y, 0) {
		return fmt.Errorf("%w: offset (%v, %v) must be finite", ErrInvalidConfiguration, c.Offset.X, c.Offset.Y)
	}
	return nil
}

// IdleFloats 空闲效果是否产生垂直振荡
// 只要空闲效果启用即振荡（振幅取其 intensity），与效果类型无关
func (c CompanionConfig) IdleFloats() bool {
	return c.Idle != nil
}
