package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/decker502/wavearena/pkg/utils"
)

// StatusText 屏幕中央的两行状态文本（主标题 + 副标题）
type StatusText struct {
	// Complements 每波结束时轮流显示的夸奖语
	Complements []string

	// CenterX, CenterY 主标题中心位置，副标题在其下方 SubTextOffset 处
	CenterX, CenterY float64
	SubTextOffset    float64

	Color    color.Color
	SubColor color.Color

	text    string
	subText string
}

// NewStatusText 创建状态文本
func NewStatusText(complements []string, centerX, centerY float64) *StatusText {
	return &StatusText{
		Complements:   complements,
		CenterX:       centerX,
		CenterY:       centerY,
		SubTextOffset: 56,
		Color:         color.White,
		SubColor:      color.RGBA{R: 200, G: 200, B: 200, A: 255},
	}
}

// GetReady 波次即将开始
func (s *StatusText) GetReady(waveNumber int) {
	s.set("Get ready!", fmt.Sprintf("Wave %d", waveNumber))
}

// WaveDefeated 波次被击败，夸奖语按波次编号轮换
func (s *StatusText) WaveDefeated(waveNumber int) {
	s.set(s.complement(waveNumber), fmt.Sprintf("Wave %d cleared", waveNumber))
}

// Win 全部波次被击败
func (s *StatusText) Win() {
	s.set("You won!", "That was... anticlimactic?")
}

// Lose 玩家死亡
func (s *StatusText) Lose() {
	s.set("You died!", "Sorry...")
}

// Clear 清空两行文本
func (s *StatusText) Clear() {
	s.set("", "")
}

// Text 返回主标题
func (s *StatusText) Text() string {
	return s.text
}

// SubText 返回副标题
func (s *StatusText) SubText() string {
	return s.subText
}

func (s *StatusText) set(text, subText string) {
	s.text = text
	s.subText = subText
}

func (s *StatusText) complement(waveNumber int) string {
	n := len(s.Complements)
	if n == 0 {
		return ""
	}
	i := (waveNumber - 1) % n
	if i < 0 {
		i += n
	}
	return s.Complements[i]
}

// Draw 居中绘制
func (s *StatusText) Draw(screen *ebiten.Image, face, subFace *text.GoTextFace) {
	if face != nil && s.text != "" {
		utils.DrawOutlinedText(screen, s.text, face, s.CenterX, s.CenterY, text.AlignCenter, s.Color)
	}
	if subFace != nil && s.subText != "" {
		utils.DrawOutlinedText(screen, s.subText, subFace, s.CenterX, s.CenterY+s.SubTextOffset, text.AlignCenter, s.SubColor)
	}
}
