package game

import (
	"log"

	"github.com/quasilyte/gdata/v2"
)

// 场景名称
const (
	MenuSceneName = "MenuScene"
	PlaySceneName = "GameScene"
)

// gdataAppName gdata 存储使用的应用名
const gdataAppName = "wavearena"

// ScoreListener 分数变化监听函数，参数为新的分数
type ScoreListener func(score int)

// ListenerID 监听器标识，用于移除监听
type ListenerID uint64

type scoreListenerEntry struct {
	id ListenerID
	fn ScoreListener
}

// GameState 存储全局游戏状态
// 这是一个单例，跨场景保存分数与游玩时间
//
// 生命周期：
//   - CreateGameState / GetGameState 创建唯一实例，之后的创建请求返回已有实例
//   - 进入游戏场景时（OnSceneLoaded(PlaySceneName)）分数与时间清零
//   - ShutdownGameState 在进程退出时释放
type GameState struct {
	score       int
	elapsedTime float64

	// activeScene 当前激活的场景名
	activeScene string

	listeners      []scoreListenerEntry
	nextListenerID ListenerID

	// gdata 跨平台存储，可为 nil（降级模式）
	gdataManager    *gdata.Manager
	settingsManager *SettingsManager
}

// 全局单例实例（这是架构规范允许的唯一全局变量）
var globalGameState *GameState

// CreateGameState 创建全局 GameState
//
// 返回：
//   - *GameState: 规范实例
//   - bool: true 表示本次调用创建了实例；false 表示已有实例，本次请求被丢弃且不改变任何状态
func CreateGameState() (*GameState, bool) {
	if globalGameState != nil {
		log.Printf("[GameState] Instance already exists, discarding duplicate")
		return globalGameState, false
	}

	globalGameState = newGameState()
	log.Printf("[GameState] Created")
	return globalGameState, true
}

// GetGameState 返回全局 GameState 单例
// 使用延迟初始化模式，确保整个游戏生命周期只有一个实例
func GetGameState() *GameState {
	if globalGameState == nil {
		CreateGameState()
	}
	return globalGameState
}

// ShutdownGameState 释放全局单例（进程退出时调用）
func ShutdownGameState() {
	if globalGameState == nil {
		return
	}
	globalGameState.listeners = nil
	globalGameState = nil
	log.Printf("[GameState] Shut down")
}

func newGameState() *GameState {
	gs := &GameState{
		nextListenerID: 1,
	}

	manager, err := gdata.Open(gdata.Config{
		AppName: gdataAppName,
	})
	if err != nil {
		log.Printf("[GameState] Warning: gdata unavailable: %v (settings will not persist)", err)
		manager = nil
	}
	gs.gdataManager = manager

	settingsManager, err := NewSettingsManager(manager)
	if err != nil {
		log.Printf("[GameState] Warning: settings manager init failed: %v", err)
	}
	gs.settingsManager = settingsManager

	return gs
}

// Score 返回当前分数
func (gs *GameState) Score() int {
	return gs.score
}

// SetScore 设置分数并同步通知所有监听者
func (gs *GameState) SetScore(score int) {
	gs.score = score
	gs.notifyScore()
}

// AddScore 增加分数（也允许负数增量）
func (gs *GameState) AddScore(amount int) {
	gs.SetScore(gs.score + amount)
}

// RefreshScore 用当前分数重新通知所有监听者
// 新加入的显示组件用它获取初始值
func (gs *GameState) RefreshScore() {
	gs.notifyScore()
}

func (gs *GameState) notifyScore() {
	// 通知期间增删监听者不影响本次通知的对象集合
	listeners := gs.listeners
	for _, entry := range listeners {
		entry.fn(gs.score)
	}
}

// AddScoreListener 注册分数监听者，按注册顺序被通知
func (gs *GameState) AddScoreListener(fn ScoreListener) ListenerID {
	id := gs.nextListenerID
	gs.nextListenerID++
	gs.listeners = append(gs.listeners, scoreListenerEntry{id: id, fn: fn})
	return id
}

// RemoveScoreListener 移除分数监听者，未知 ID 静默忽略
func (gs *GameState) RemoveScoreListener(id ListenerID) {
	for i, entry := range gs.listeners {
		if entry.id == id {
			updated := make([]scoreListenerEntry, 0, len(gs.listeners)-1)
			updated = append(updated, gs.listeners[:i]...)
			updated = append(updated, gs.listeners[i+1:]...)
			gs.listeners = updated
			return
		}
	}
}

// ScoreListenerCount 返回当前监听者数量
func (gs *GameState) ScoreListenerCount() int {
	return len(gs.listeners)
}

// ElapsedTime 返回本局已进行的时间（秒）
func (gs *GameState) ElapsedTime() float64 {
	return gs.elapsedTime
}

// ActiveScene 返回当前激活场景名
func (gs *GameState) ActiveScene() string {
	return gs.activeScene
}

// IsPlaying 当前是否处于游戏场景
func (gs *GameState) IsPlaying() bool {
	return gs.activeScene == PlaySceneName
}

// OnSceneLoaded 场景加载回调
// 只有进入游戏场景时才清零分数与时间，其他场景切换不影响
func (gs *GameState) OnSceneLoaded(sceneName string) {
	gs.activeScene = sceneName
	if sceneName != PlaySceneName {
		return
	}

	gs.elapsedTime = 0
	gs.SetScore(0)
	log.Printf("[GameState] Play scene entered, score and time reset")
}

// Tick 推进游玩时间，仅在游戏场景中累积
func (gs *GameState) Tick(deltaTime float64) {
	if !gs.IsPlaying() {
		return
	}
	gs.elapsedTime += deltaTime
}

// GetGdataManager 返回 gdata 管理器（可能为 nil）
func (gs *GameState) GetGdataManager() *gdata.Manager {
	return gs.gdataManager
}

// GetSettingsManager 返回设置管理器
// gdata 不可用时返回仅内存的设置管理器
func (gs *GameState) GetSettingsManager() *SettingsManager {
	if gs.settingsManager == nil {
		gs.settingsManager, _ = NewSettingsManager(nil)
	}
	return gs.settingsManager
}
