package scenes

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/decker502/wavearena/pkg/config"
	"github.com/decker502/wavearena/pkg/game"
	"github.com/decker502/wavearena/pkg/utils"
)

var menuBackgroundColor = color.RGBA{R: 16, G: 18, B: 32, A: 255}

// MenuScene 主菜单
// 显示标题和上一局的分数，回车或点击进入游戏
type MenuScene struct {
	deps Deps

	// lastScore 进入菜单时的分数（上一局结果）
	lastScore int
	starting  bool
}

// NewMenuScene 创建主菜单场景
func NewMenuScene(deps Deps) *MenuScene {
	return &MenuScene{
		deps:      deps,
		lastScore: deps.GameState.Score(),
	}
}

// Update 处理开始游戏输入
func (m *MenuScene) Update(deltaTime float64) {
	clicked, _, _ := utils.IsJustTouchedOrClicked()
	if clicked || utils.IsAnyKeyJustPressed(ebiten.KeyEnter, ebiten.KeySpace) {
		m.Start()
	}
}

// Start 进入游戏场景（下一帧切换）
func (m *MenuScene) Start() {
	if m.starting {
		return
	}
	m.starting = true
	m.deps.SceneManager.GotoScene(game.PlaySceneName, 0)
}

// Draw 绘制标题
func (m *MenuScene) Draw(screen *ebiten.Image) {
	screen.Fill(menuBackgroundColor)
	if m.deps.Fonts == nil {
		return
	}

	cx := float64(config.GameWindowWidth) / 2
	utils.DrawOutlinedText(screen, m.deps.Arena.Name, m.deps.Fonts.Bold(48), cx, 150, text.AlignCenter, color.White)
	utils.DrawOutlinedText(screen, "Click or press Enter to start", m.deps.Fonts.Regular(24), cx, 280, text.AlignCenter, color.White)

	if m.lastScore > 0 {
		utils.DrawOutlinedText(screen, fmt.Sprintf("Last score: %d", m.lastScore), m.deps.Fonts.Regular(20), cx, 340, text.AlignCenter, color.RGBA{R: 255, G: 220, B: 120, A: 255})
	}
}
