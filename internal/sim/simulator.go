// Package sim 无界面地运行一局竞技场
//
// 模拟器使用与游戏场景相同的系统（敌群、波次序列、计分、冲击波），
// 由自动玩家按固定频率攻击离中心最近的敌人，用于调试波次配置。
package sim

import (
	"fmt"
	"math"

	"github.com/decker502/wavearena/pkg/components"
	"github.com/decker502/wavearena/pkg/config"
	"github.com/decker502/wavearena/pkg/ecs"
	"github.com/decker502/wavearena/pkg/effects"
	"github.com/decker502/wavearena/pkg/event"
	"github.com/decker502/wavearena/pkg/game"
	"github.com/decker502/wavearena/pkg/systems"
)

// Outcome 模拟结束原因
type Outcome string

const (
	OutcomeWon     Outcome = "won"
	OutcomeLost    Outcome = "lost"
	OutcomeTimeout Outcome = "timeout"
)

// Options 模拟参数
type Options struct {
	Arena *config.ArenaConfig
	Seed  int64

	// TickRate 每秒 tick 数
	TickRate int
	// HitsPerSecond 自动玩家每秒攻击次数，0 表示不攻击
	HitsPerSecond float64
	// Damage 每次攻击的伤害
	Damage int
	// MaxTime 模拟时长上限（秒）
	MaxTime float64
}

// DefaultOptions 返回默认模拟参数
func DefaultOptions(arena *config.ArenaConfig) Options {
	return Options{
		Arena:         arena,
		Seed:          1,
		TickRate:      60,
		HitsPerSecond: 4,
		Damage:        1,
		MaxTime:       300,
	}
}

// Result 模拟结果
type Result struct {
	Outcome     Outcome
	Elapsed     float64
	Score       int
	WavesClear  int
	TotalWaves  int
	Kills       int
	Shockwaves  int
	ActiveAtEnd int // 结束时仍有效的冲击波数量
}

// EventFunc 事件回调，t 为模拟时间（秒）
type EventFunc func(t float64, e event.Event)

// Run 运行一局模拟
//
// 调用方负责 GameState 与效果注册表的生命周期：
// Run 通过 GetGameState 取得全局状态，并在注册表空闲时获取它。
func Run(opts Options, onEvent EventFunc) (*Result, error) {
	if opts.Arena == nil {
		return nil, fmt.Errorf("arena config is required")
	}
	if opts.TickRate <= 0 {
		return nil, fmt.Errorf("tick rate must be positive, got %d", opts.TickRate)
	}
	if opts.MaxTime <= 0 {
		return nil, fmt.Errorf("max time must be positive, got %v", opts.MaxTime)
	}
	arena := opts.Arena
	dt := 1.0 / float64(opts.TickRate)

	gs := game.GetGameState()
	gs.OnSceneLoaded(game.PlaySceneName)

	shockwave := effects.NewShockwaveEffect(arena.Shockwave.Amplitude, arena.Shockwave.Speed, arena.Shockwave.Duration)
	registry, owner := effects.AcquireRegistry(shockwave)
	if !owner {
		return nil, fmt.Errorf("effect registry is already in use")
	}
	defer effects.ReleaseRegistry()
	registry.Start()
	baseUploads := shockwave.Buffer().UploadCount()

	em := ecs.NewEntityManager()
	dispatcher := event.NewDispatcher()

	swarms := systems.NewSwarmSystem(em, dispatcher, opts.Seed)
	sequencer := systems.NewWaveSequencerSystem(em, dispatcher, swarms.CreateSwarms(arena.Waves), arena.NextWaveDelay)
	scoreSystem := systems.NewScoreSystem(dispatcher, gs)
	shockwaveSystem := systems.NewShockwaveSystem(dispatcher, shockwave, arena.Shockwave.PlayOnStart)
	defer sequencer.Dispose()
	defer scoreSystem.Dispose()
	defer shockwaveSystem.Dispose()

	res := &Result{TotalWaves: sequencer.TotalWaves()}
	clock := 0.0

	if onEvent != nil {
		for _, t := range []event.Type{
			event.WaveIncoming, event.WaveSpawned, event.WaveDefeated, event.AllWavesDefeated,
			event.EnemyDefeated, event.PlayerDied,
		} {
			dispatcher.Subscribe(t, func(e event.Event) { onEvent(clock, e) })
		}
	}
	dispatcher.Subscribe(event.WaveDefeated, func(event.Event) { res.WavesClear++ })
	dispatcher.Subscribe(event.EnemyDefeated, func(event.Event) { res.Kills++ })

	hitInterval := 0.0
	if opts.HitsPerSecond > 0 {
		hitInterval = 1.0 / opts.HitsPerSecond
	}
	hitTimer := hitInterval

	registry.Update(clock)
	shockwaveSystem.Start()
	sequencer.Start()

	for clock < opts.MaxTime {
		clock += dt
		registry.Update(clock)
		gs.Tick(dt)

		if hitInterval > 0 {
			hitTimer -= dt
			for hitTimer <= 0 {
				hitTimer += hitInterval
				if id, ok := nearestEnemy(em, swarms); ok {
					swarms.DamageEnemy(id, opts.Damage)
				}
			}
		}

		swarms.Update(dt)
		sequencer.Update(dt)
		em.RemoveMarkedEntities()

		if swarms.IsPlayerDead() {
			res.Outcome = OutcomeLost
			break
		}
		if sequencer.IsFinished() {
			res.Outcome = OutcomeWon
			break
		}
	}
	if res.Outcome == "" {
		res.Outcome = OutcomeTimeout
	}

	res.Elapsed = gs.ElapsedTime()
	res.Score = gs.Score()
	res.Shockwaves = shockwave.Buffer().UploadCount() - baseUploads
	res.ActiveAtEnd = shockwave.Buffer().ActiveCount(clock)
	return res, nil
}

// nearestEnemy 返回离竞技场中心最近的存活敌人
func nearestEnemy(em *ecs.EntityManager, swarms *systems.SwarmSystem) (ecs.EntityID, bool) {
	var best ecs.EntityID
	bestDist := math.MaxFloat64
	for _, id := range swarms.LivingEnemies() {
		pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
		if !ok {
			continue
		}
		d := math.Hypot(pos.X-config.ArenaCenterX, pos.Y-config.ArenaCenterY)
		if d < bestDist {
			best, bestDist = id, d
		}
	}
	return best, best != 0
}
