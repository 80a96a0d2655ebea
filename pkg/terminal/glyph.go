package terminal

import (
	"math"

	"github.com/gonewx/cursorbuddy/pkg/systems"
)

// 终端单元格对应的像素尺寸
// 伙伴逻辑仍以像素为单位，与桌面端共用同一份清单
const (
	cellWidth  = 8.0
	cellHeight = 16.0
)

// defaultGlyph 未配置字符时的中性形态
const defaultGlyph = 'o'

// Glyph 根据显示中的缩放/旋转选择字符
//
// 旋转优先：按角度落在的区间选择 '-' '\' '|' '/'；
// 否则按缩放选择：横向拉伸 '-'，纵向拉伸 '0'，整体放大 'O'；
// 中性时使用配置的字符（fixed 为 0 时为 'o'）。
func Glyph(view systems.View, fixed rune) rune {
	if r := math.Mod(math.Abs(view.Rotation), 360); r > 5 && r < 355 {
		switch half := math.Mod(r, 180); {
		case half < 22.5 || half >= 157.5:
			return '-'
		case half < 67.5:
			return '\\'
		case half < 112.5:
			return '|'
		default:
			return '/'
		}
	}

	switch {
	case view.ScaleX > view.ScaleY*1.1:
		return '-'
	case view.ScaleY > view.ScaleX*1.1:
		return '0'
	case (view.ScaleX+view.ScaleY)/2 > 1.05:
		return 'O'
	}

	if fixed != 0 {
		return fixed
	}
	return defaultGlyph
}

// toPixels 单元格中心对应的像素坐标
func toPixels(col, row int) (int, int) {
	return int(float64(col)*cellWidth + cellWidth/2), int(float64(row)*cellHeight + cellHeight/2)
}

// toCell 像素坐标所在的单元格
func toCell(x, y float64) (int, int) {
	return int(math.Floor(x / cellWidth)), int(math.Floor(y / cellHeight))
}
