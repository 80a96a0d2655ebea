// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputState 存储当前帧的输入状态
// 用于统一处理鼠标和触摸输入（只跟踪单一指针）
type InputState struct {
	// 是否有点击/触摸事件刚刚发生
	JustPressed bool
	// 指针位置（视口坐标）
	X, Y int
	// 是否有活动的触摸
	IsTouching bool
}

// InputSource 每帧提供一次输入状态
type InputSource interface {
	Poll() InputState
}

// EbitenInput 从 ebiten 读取鼠标/触摸输入
type EbitenInput struct{}

// Poll 实现 InputSource
func (EbitenInput) Poll() InputState {
	return GetInputState()
}

// GetInputState 获取当前帧的输入状态
// 同时支持鼠标点击和触摸输入，优先检测触摸
func GetInputState() InputState {
	state := InputState{}

	// 首先检查触摸输入（移动设备）
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		// 有新的触摸事件
		state.JustPressed = true
		state.X, state.Y = ebiten.TouchPosition(touchIDs[0])
		state.IsTouching = true
		return state
	}

	// 检查是否有活动的触摸（用于悬停检测）
	allTouchIDs := ebiten.AppendTouchIDs(nil)
	if len(allTouchIDs) > 0 {
		state.X, state.Y = ebiten.TouchPosition(allTouchIDs[0])
		state.IsTouching = true
		return state
	}

	// 其次检查鼠标输入（桌面设备）
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		state.JustPressed = true
		state.X, state.Y = ebiten.CursorPosition()
		return state
	}

	// 获取鼠标位置用于悬停检测
	state.X, state.Y = ebiten.CursorPosition()
	return state
}

// ManualInput 由外部事件驱动的输入源（终端模式与测试使用）
//
// MoveTo 更新指针位置，Press 记录一次按下；按下状态在下一次 Poll 后清除。
type ManualInput struct {
	state InputState
}

// NewManualInput 创建位于 (x, y) 的手动输入源
func NewManualInput(x, y int) *ManualInput {
	return &ManualInput{state: InputState{X: x, Y: y}}
}

// MoveTo 移动指针
func (m *ManualInput) MoveTo(x, y int) {
	m.state.X, m.state.Y = x, y
}

// Press 在当前位置按下一次
func (m *ManualInput) Press() {
	m.state.JustPressed = true
}

// ClickAt 移动到 (x, y) 并按下一次
func (m *ManualInput) ClickAt(x, y int) {
	m.MoveTo(x, y)
	m.Press()
}

// Poll 实现 InputSource
func (m *ManualInput) Poll() InputState {
	state := m.state
	m.state.JustPressed = false
	return state
}
