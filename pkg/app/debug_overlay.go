package app

import (
	"bytes"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	overlayFontSize = 12
	overlayPadding  = 6
)

// DebugOverlay 左上角调试信息面板
// 字体在首次绘制时加载，加载失败则不显示文字
type DebugOverlay struct {
	face   *text.GoTextFace
	loaded bool
}

// NewDebugOverlay 创建调试面板
func NewDebugOverlay() *DebugOverlay {
	return &DebugOverlay{}
}

func (o *DebugOverlay) fontFace() *text.GoTextFace {
	if o.loaded {
		return o.face
	}
	o.loaded = true
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil
	}
	o.face = &text.GoTextFace{
		Source:    source,
		Size:      overlayFontSize,
		Direction: text.DirectionLeftToRight,
	}
	return o.face
}

// Draw 绘制多行调试信息
func (o *DebugOverlay) Draw(screen *ebiten.Image, lines []string) {
	face := o.fontFace()
	if face == nil || len(lines) == 0 {
		return
	}

	content := strings.Join(lines, "\n")
	lineHeight := face.Size * 1.4
	w, h := text.Measure(content, face, lineHeight)

	vector.DrawFilledRect(screen, 0, 0,
		float32(w+2*overlayPadding), float32(h+2*overlayPadding),
		color.RGBA{A: 160}, false)

	op := &text.DrawOptions{}
	op.GeoM.Translate(overlayPadding, overlayPadding)
	op.ColorScale.ScaleWithColor(color.White)
	op.LineSpacing = lineHeight
	text.Draw(screen, content, face, op)
}
