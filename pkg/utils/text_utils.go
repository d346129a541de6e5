package utils

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// TextOutlineThickness 描边厚度（像素）
const TextOutlineThickness = 2

// MeasureTextWidth 测量单行文本宽度
func MeasureTextWidth(textStr string, face *text.GoTextFace) float64 {
	if textStr == "" || face == nil {
		return 0
	}
	width, _ := text.Measure(textStr, face, 0)
	return width
}

// DrawOutlinedText 绘制带黑色描边的单行文本
//
// 参数：
//   - x, y: 锚点位置，y 为文本顶部
//   - align: 水平对齐方式（相对 x）
func DrawOutlinedText(screen *ebiten.Image, textStr string, face *text.GoTextFace, x, y float64, align text.Align, clr color.Color) {
	if textStr == "" || face == nil {
		return
	}

	// 先画描边
	for dy := -TextOutlineThickness; dy <= TextOutlineThickness; dy++ {
		for dx := -TextOutlineThickness; dx <= TextOutlineThickness; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			op := &text.DrawOptions{}
			op.PrimaryAlign = align
			op.GeoM.Translate(x+float64(dx), y+float64(dy))
			op.ColorScale.ScaleWithColor(color.Black)
			text.Draw(screen, textStr, face, op)
		}
	}

	op := &text.DrawOptions{}
	op.PrimaryAlign = align
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, textStr, face, op)
}
