package scenes

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/wavearena/pkg/components"
	"github.com/decker502/wavearena/pkg/config"
	"github.com/decker502/wavearena/pkg/ecs"
	"github.com/decker502/wavearena/pkg/event"
	"github.com/decker502/wavearena/pkg/game"
	"github.com/decker502/wavearena/pkg/systems"
	"github.com/decker502/wavearena/pkg/ui"
	"github.com/decker502/wavearena/pkg/utils"
)

// 玩家点击造成的伤害
const clickDamage = 1

var (
	arenaBackgroundColor = color.RGBA{R: 24, G: 32, B: 48, A: 255}
	arenaRingColor       = color.RGBA{R: 60, G: 76, B: 110, A: 255}
	playerColor          = color.RGBA{R: 90, G: 200, B: 255, A: 255}
	enemyColor           = color.RGBA{R: 240, G: 90, B: 90, A: 255}
)

// PlayScene 游戏场景
//
// 职责：
//   - 创建本局的实体管理器与事件总线，组装敌群、波次序列、计分和冲击波系统
//   - 把波次事件映射到状态文本，把分数变化映射到计数文本
//   - 全部击败或玩家死亡后延迟返回菜单
//
// 每帧顺序：输入 → 敌群 → 波次序列 → HUD → 清理销毁的实体
type PlayScene struct {
	deps Deps

	entityManager *ecs.EntityManager
	dispatcher    *event.Dispatcher

	swarmSystem     *systems.SwarmSystem
	sequencer       *systems.WaveSequencerSystem
	scoreSystem     *systems.ScoreSystem
	shockwaveSystem *systems.ShockwaveSystem

	scoreText  *ui.CounterText
	statusText *ui.StatusText

	subscriptions []event.SubscriptionID
	scoreListener game.ListenerID

	// offscreen 冲击波着色器的输入图像
	offscreen *ebiten.Image

	started  bool
	finished bool
}

// NewPlayScene 创建游戏场景
func NewPlayScene(deps Deps) *PlayScene {
	arena := deps.Arena
	em := ecs.NewEntityManager()
	dispatcher := event.NewDispatcher()

	s := &PlayScene{
		deps:          deps,
		entityManager: em,
		dispatcher:    dispatcher,
		scoreText:     ui.NewCounterText(arena.HUD.ScorePrefix, 0, arena.HUD.LerpSpeed),
		statusText:    ui.NewStatusText(arena.HUD.Complements, config.ArenaCenterX, config.ArenaCenterY-120),
	}
	s.scoreText.X, s.scoreText.Y = 16, 12

	s.swarmSystem = systems.NewSwarmSystem(em, dispatcher, deps.Seed)
	groups := s.swarmSystem.CreateSwarms(arena.Waves)
	s.sequencer = systems.NewWaveSequencerSystem(em, dispatcher, groups, arena.NextWaveDelay)
	s.scoreSystem = systems.NewScoreSystem(dispatcher, deps.GameState)
	s.shockwaveSystem = systems.NewShockwaveSystem(dispatcher, deps.Shockwave, arena.Shockwave.PlayOnStart)

	s.subscriptions = append(s.subscriptions,
		dispatcher.Subscribe(event.WaveIncoming, s.onWaveIncoming),
		dispatcher.Subscribe(event.WaveSpawned, s.onWaveSpawned),
		dispatcher.Subscribe(event.WaveDefeated, s.onWaveDefeated),
		dispatcher.Subscribe(event.AllWavesDefeated, s.onAllWavesDefeated),
		dispatcher.Subscribe(event.PlayerDied, s.onPlayerDied),
	)
	s.scoreListener = deps.GameState.AddScoreListener(s.scoreText.SetValue)
	// 立即同步当前分数，进入游戏场景时的清零随后再通知一次
	deps.GameState.RefreshScore()

	log.Printf("[PlayScene] Created with %d waves", len(arena.Waves))
	return s
}

// Update 处理输入后推进一帧
func (s *PlayScene) Update(deltaTime float64) {
	s.handleInput()
	s.step(deltaTime)
}

// step 推进一帧游戏逻辑（不读取输入）
func (s *PlayScene) step(deltaTime float64) {
	if !s.started {
		s.started = true
		s.shockwaveSystem.Start()
		s.sequencer.Start()
	}

	if !s.swarmSystem.IsPlayerDead() {
		s.swarmSystem.Update(deltaTime)
	}
	s.sequencer.Update(deltaTime)
	s.scoreText.Update(deltaTime)

	s.entityManager.RemoveMarkedEntities()
}

func (s *PlayScene) handleInput() {
	if utils.IsAnyKeyJustPressed(ebiten.KeyEscape) {
		s.returnToMenu(0)
		return
	}
	if s.finished {
		return
	}

	if clicked, x, y := utils.IsJustTouchedOrClicked(); clicked {
		s.swarmSystem.HitAt(float64(x), float64(y), clickDamage)
	}
	if utils.IsAnyKeyJustPressed(ebiten.KeySpace) {
		s.shockwaveSystem.PlayAt(config.ArenaCenterX, config.ArenaCenterY)
	}
}

func (s *PlayScene) onWaveIncoming(e event.Event) {
	if p, ok := e.Data.(event.WavePayload); ok {
		s.statusText.GetReady(p.Wave)
	}
}

func (s *PlayScene) onWaveSpawned(event.Event) {
	s.statusText.Clear()
}

func (s *PlayScene) onWaveDefeated(e event.Event) {
	if p, ok := e.Data.(event.WavePayload); ok {
		s.statusText.WaveDefeated(p.Wave)
	}
}

func (s *PlayScene) onAllWavesDefeated(event.Event) {
	if s.finished {
		return
	}
	s.statusText.Win()
	log.Printf("[PlayScene] All waves defeated, score %d", s.deps.GameState.Score())
	s.returnToMenu(s.deps.Arena.ReturnToMenuDelay)
}

func (s *PlayScene) onPlayerDied(event.Event) {
	if s.finished {
		return
	}
	s.statusText.Lose()
	log.Printf("[PlayScene] Player died on wave %d", s.sequencer.CurrentWave())
	s.returnToMenu(s.deps.Arena.ReturnToMenuDelay)
}

func (s *PlayScene) returnToMenu(delay float64) {
	s.finished = true
	s.deps.SceneManager.GotoScene(game.MenuSceneName, delay)
}

// Draw 绘制竞技场和 HUD
func (s *PlayScene) Draw(screen *ebiten.Image) {
	settings := s.deps.GameState.GetSettingsManager().GetSettings()

	if s.deps.Renderer != nil && settings.ShockwavesEnabled {
		bounds := screen.Bounds()
		if s.offscreen == nil || s.offscreen.Bounds() != bounds {
			if s.offscreen != nil {
				s.offscreen.Deallocate()
			}
			s.offscreen = ebiten.NewImage(bounds.Dx(), bounds.Dy())
		}
		s.offscreen.Clear()
		s.drawArena(s.offscreen)

		s.deps.Renderer.Intensity = settings.ShockwaveIntensity
		s.deps.Renderer.Draw(screen, s.offscreen)
	} else {
		s.drawArena(screen)
	}

	s.drawHUD(screen, settings.ShowTimer)
}

func (s *PlayScene) drawArena(dst *ebiten.Image) {
	dst.Fill(arenaBackgroundColor)

	cx, cy := float32(config.ArenaCenterX), float32(config.ArenaCenterY)
	vector.StrokeCircle(dst, cx, cy, config.EnemySpawnRadius, 2, arenaRingColor, true)
	vector.DrawFilledCircle(dst, cx, cy, config.PlayerRadius, playerColor, true)

	for _, id := range ecs.GetEntitiesWith2[*components.EnemyComponent, *components.PositionComponent](s.entityManager) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		vector.DrawFilledCircle(dst, float32(pos.X), float32(pos.Y), config.EnemyRadius, enemyColor, true)
	}
}

func (s *PlayScene) drawHUD(screen *ebiten.Image, showTimer bool) {
	fonts := s.deps.Fonts
	if fonts == nil {
		return
	}

	s.scoreText.Draw(screen, fonts.Regular(24))
	if showTimer {
		elapsed := s.deps.GameState.ElapsedTime()
		label := fmt.Sprintf("%02d:%02d", int(elapsed)/60, int(elapsed)%60)
		utils.DrawOutlinedText(screen, label, fonts.Regular(24), float64(config.GameWindowWidth)-16, 12, text.AlignEnd, color.White)
	}
	s.statusText.Draw(screen, fonts.Bold(48), fonts.Regular(24))
}

// Dispose 实现 game.Disposable：取消订阅并释放离屏图像
func (s *PlayScene) Dispose() {
	for _, id := range s.subscriptions {
		s.dispatcher.Unsubscribe(id)
	}
	s.subscriptions = nil

	s.deps.GameState.RemoveScoreListener(s.scoreListener)
	s.sequencer.Dispose()
	s.scoreSystem.Dispose()
	s.shockwaveSystem.Dispose()

	if s.offscreen != nil {
		s.offscreen.Deallocate()
		s.offscreen = nil
	}
	log.Printf("[PlayScene] Disposed")
}

// Sequencer 返回波次序列系统
func (s *PlayScene) Sequencer() *systems.WaveSequencerSystem {
	return s.sequencer
}

// StatusText 返回状态文本
func (s *PlayScene) StatusText() *ui.StatusText {
	return s.statusText
}

// ScoreText 返回分数文本
func (s *PlayScene) ScoreText() *ui.CounterText {
	return s.scoreText
}
