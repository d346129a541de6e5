// Package ui 提供 HUD 文本控件
//
// 控件只保存显示状态，由场景在事件回调中驱动，在 Draw 中绘制。
package ui

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/decker502/wavearena/pkg/utils"
)

// CounterStepInterval 计数器每次向目标值逼近的间隔（秒）
const CounterStepInterval = 0.05

// CounterText 滚动计数文本
// 显示值每隔 CounterStepInterval 按 LerpSpeed 向目标值插值一次，显示为 Prefix + 四舍五入后的整数
type CounterText struct {
	Prefix    string
	LerpSpeed float64

	X, Y  float64
	Color color.Color

	target      int
	current     float64
	accumulator float64
}

// NewCounterText 创建计数文本，显示值与目标值都从 defaultValue 开始
func NewCounterText(prefix string, defaultValue int, lerpSpeed float64) *CounterText {
	return &CounterText{
		Prefix:    prefix,
		LerpSpeed: lerpSpeed,
		Color:     color.White,
		target:    defaultValue,
		current:   float64(defaultValue),
	}
}

// SetValue 设置目标值，显示值在后续 Update 中逐步逼近
func (c *CounterText) SetValue(value int) {
	c.target = value
}

// Target 返回目标值
func (c *CounterText) Target() int {
	return c.target
}

// Update 推进插值
func (c *CounterText) Update(deltaTime float64) {
	c.accumulator += deltaTime
	for c.accumulator >= CounterStepInterval {
		c.accumulator -= CounterStepInterval
		c.current = utils.Lerp(c.current, float64(c.target), utils.Clamp01(c.LerpSpeed))
	}
}

// DisplayValue 返回当前显示的整数（.5 舍入到偶数）
func (c *CounterText) DisplayValue() int {
	return int(math.RoundToEven(c.current))
}

// Text 返回完整的显示文本
func (c *CounterText) Text() string {
	return fmt.Sprintf("%s%d", c.Prefix, c.DisplayValue())
}

// Draw 左上角对齐绘制
func (c *CounterText) Draw(screen *ebiten.Image, face *text.GoTextFace) {
	if face == nil {
		return
	}
	utils.DrawOutlinedText(screen, c.Text(), face, c.X, c.Y, text.AlignStart, c.Color)
}
