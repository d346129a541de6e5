package game

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 每次加载场景都创建新实例
type SceneFactory func() Scene

// SceneLoadedListener 场景加载完成回调，参数为场景名
type SceneLoadedListener func(sceneName string)

// SceneManager manages the game's high-level state by controlling which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
//
// 场景按名称注册，LoadScene 立即切换，GotoScene 延迟指定秒数后切换。
// 每次切换完成后按注册顺序通知 SceneLoadedListener。
type SceneManager struct {
	currentScene Scene
	currentName  string

	factories map[string]SceneFactory
	listeners []SceneLoadedListener

	// 延迟切换
	hasPending   bool
	pendingName  string
	pendingDelay float64
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use LoadScene to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{
		factories: make(map[string]SceneFactory),
	}
}

// Register 注册场景工厂
func (sm *SceneManager) Register(name string, factory SceneFactory) {
	sm.factories[name] = factory
}

// AddSceneLoadedListener 注册场景加载回调
func (sm *SceneManager) AddSceneLoadedListener(listener SceneLoadedListener) {
	sm.listeners = append(sm.listeners, listener)
}

// SwitchTo changes the active scene to the provided scene without firing load callbacks.
// The new scene's Update and Draw methods will be called on subsequent game loop iterations.
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.disposeCurrent()
	sm.currentScene = scene
	sm.currentName = ""
}

// LoadScene 立即加载指定名称的场景
//
// 返回：
//   - error: 场景未注册或工厂返回 nil
func (sm *SceneManager) LoadScene(name string) error {
	factory, ok := sm.factories[name]
	if !ok {
		return fmt.Errorf("scene %q is not registered", name)
	}

	scene := factory()
	if scene == nil {
		return fmt.Errorf("scene factory for %q returned nil", name)
	}

	sm.disposeCurrent()
	sm.currentScene = scene
	sm.currentName = name
	log.Printf("[SceneManager] Loaded scene: %s", name)

	for _, listener := range sm.listeners {
		listener(name)
	}
	return nil
}

// GotoScene 在 delay 秒后切换到指定场景
// 切换在之后的 Update 中执行；重复调用以最后一次为准
func (sm *SceneManager) GotoScene(name string, delay float64) {
	sm.hasPending = true
	sm.pendingName = name
	sm.pendingDelay = delay
	log.Printf("[SceneManager] Scheduled scene %s in %.2fs", name, delay)
}

// HasPendingTransition 是否有等待中的场景切换
func (sm *SceneManager) HasPendingTransition() bool {
	return sm.hasPending
}

func (sm *SceneManager) disposeCurrent() {
	if d, ok := sm.currentScene.(Disposable); ok {
		d.Dispose()
	}
}

// GetCurrentScene 返回当前活动的场景
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// CurrentSceneName 返回当前场景名，直接 SwitchTo 的场景名为空
func (sm *SceneManager) CurrentSceneName() string {
	return sm.currentName
}

// Update updates the currently active scene.
// 等待中的场景切换先于场景更新处理。
// deltaTime is the time elapsed since the last update in seconds.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.hasPending {
		sm.pendingDelay -= deltaTime
		if sm.pendingDelay <= 0 {
			sm.hasPending = false
			if err := sm.LoadScene(sm.pendingName); err != nil {
				log.Printf("[SceneManager] ERROR: %v", err)
			}
		}
	}

	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
