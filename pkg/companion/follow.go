// Package companion 实现单个光标伙伴的动画/效果引擎
//
// 包括指数平滑跟随、空闲振荡、效果状态机以及挂载到帧循环与输入事件的生命周期，
// 以及管理多个伙伴的 Registry。
package companion

import "github.com/gonewx/cursorbuddy/pkg/types"

// Advance 将 position 向 target 推进一步（指数平滑）
//
// 公式：position' = position + (target - position) * speed，逐轴独立计算。
// speed 为 1 时一步到位；target 等于 position 时为不动点。
// 每帧调用一次，|position - target| 每帧按 (1-speed) 几何收敛。
func Advance(position, target types.Vector2, speed float64) types.Vector2 {
	return types.Vector2{
		X: position.X + (target.X-position.X)*speed,
		Y: position.Y + (target.Y-position.Y)*speed,
	}
}
