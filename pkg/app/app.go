// Package app 提供游戏应用的核心包装器
//
// 该包把启动与每帧驱动逻辑从 main 包提取出来：
// 创建全局状态与效果注册表，注册场景，并实现 ebiten.Game。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/wavearena/pkg/config"
	"github.com/decker502/wavearena/pkg/effects"
	"github.com/decker502/wavearena/pkg/game"
	"github.com/decker502/wavearena/pkg/scenes"
	"github.com/decker502/wavearena/pkg/systems"
	"github.com/decker502/wavearena/pkg/ui"
)

// deltaTime 固定帧间隔（ebiten 默认 60 TPS）
const deltaTime = 1.0 / 60.0

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ArenaPath 竞技场 YAML 配置路径，为空则使用内置配置
	ArenaPath string
	// Seed 敌人出生位置的随机种子，0 表示按当前时间
	Seed int64
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	gameState    *game.GameState
	registry     *effects.Registry

	// clock 单调递增的全局时间（秒），驱动效果注册表
	// 与 GameState 的游玩时间无关，场景重置不会让它回退
	clock float64

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	arena := config.DefaultArenaConfig()
	if cfg.ArenaPath != "" {
		loaded, err := config.LoadArenaConfig(cfg.ArenaPath)
		if err != nil {
			return nil, fmt.Errorf("竞技场配置加载失败: %w", err)
		}
		arena = loaded
	}
	log.Printf("[App] Arena %q: %d waves", arena.Name, len(arena.Waves))

	gameState, created := game.CreateGameState()
	if !created {
		log.Printf("[App] Reusing existing GameState")
	}

	// 全局效果在任何场景之前注册并初始化
	shockwave := effects.NewShockwaveEffect(arena.Shockwave.Amplitude, arena.Shockwave.Speed, arena.Shockwave.Duration)
	registry, owner := effects.AcquireRegistry(shockwave)
	if !owner {
		return nil, fmt.Errorf("效果注册表已被占用")
	}
	registry.Start()

	renderer, err := systems.NewShockwaveRenderSystem(shockwave, registry)
	if err != nil {
		// 着色器不可用时退化为直接绘制
		log.Printf("[App] Warning: %v (shockwaves disabled)", err)
		renderer = nil
	}

	fonts, err := ui.NewFontCache()
	if err != nil {
		return nil, fmt.Errorf("字体加载失败: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	sceneManager := game.NewSceneManager()
	sceneManager.AddSceneLoadedListener(gameState.OnSceneLoaded)
	scenes.Register(scenes.Deps{
		SceneManager: sceneManager,
		GameState:    gameState,
		Arena:        arena,
		Fonts:        fonts,
		Shockwave:    shockwave,
		Renderer:     renderer,
		Seed:         seed,
	})

	if err := sceneManager.LoadScene(game.MenuSceneName); err != nil {
		return nil, fmt.Errorf("菜单场景加载失败: %w", err)
	}

	if gameState.GetSettingsManager().GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return &App{
		sceneManager: sceneManager,
		gameState:    gameState,
		registry:     registry,
	}, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
//
// 顺序：全局效果 → 游玩时间 → 当前场景
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏，并记住选择
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	a.clock += deltaTime
	a.registry.Update(a.clock)
	a.gameState.Tick(deltaTime)
	a.sceneManager.Update(deltaTime)
	return nil
}

func (a *App) toggleFullscreen() {
	settings := a.gameState.GetSettingsManager()

	if ebiten.IsFullscreen() {
		// 退出全屏
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		settings.SetFullscreen(false)
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	} else {
		ebiten.SetFullscreen(true)
		settings.SetFullscreen(true)
	}

	if err := settings.Save(); err != nil {
		log.Printf("[App] Warning: failed to save settings: %v", err)
	}
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// Shutdown 释放全局状态（进程退出时调用）
func (a *App) Shutdown() {
	if d, ok := a.sceneManager.GetCurrentScene().(game.Disposable); ok {
		d.Dispose()
	}
	effects.ReleaseRegistry()
	game.ShutdownGameState()
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}
