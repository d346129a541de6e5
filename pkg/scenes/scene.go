// Package scenes 包含菜单场景和游戏场景
//
// 场景由 game.SceneManager 按名称创建，每次加载都是新实例，
// 离开时通过 Dispose 释放事件订阅和分数监听。
package scenes

import (
	"github.com/decker502/wavearena/pkg/config"
	"github.com/decker502/wavearena/pkg/effects"
	"github.com/decker502/wavearena/pkg/game"
	"github.com/decker502/wavearena/pkg/systems"
	"github.com/decker502/wavearena/pkg/ui"
)

// Scene is a type alias for game.Scene.
type Scene = game.Scene

// Deps 场景共享的依赖，由 app 在启动时创建一次
type Deps struct {
	SceneManager *game.SceneManager
	GameState    *game.GameState
	Arena        *config.ArenaConfig
	Fonts        *ui.FontCache

	Shockwave *effects.ShockwaveEffect
	// Renderer 可为 nil（着色器编译失败时直接绘制场景）
	Renderer *systems.ShockwaveRenderSystem

	// Seed 敌人出生位置的随机种子
	Seed int64
}

// Register 把菜单和游戏场景注册到场景管理器
func Register(deps Deps) {
	deps.SceneManager.Register(game.MenuSceneName, func() game.Scene {
		return NewMenuScene(deps)
	})
	deps.SceneManager.Register(game.PlaySceneName, func() game.Scene {
		return NewPlayScene(deps)
	})
}
