package systems

import (
	"log"

	"github.com/decker502/wavearena/pkg/components"
	"github.com/decker502/wavearena/pkg/ecs"
	"github.com/decker502/wavearena/pkg/event"
)

// WaveGroup 波次组（一批同时激活的敌人）
//
// 波次组激活后通过事件报告进度：
//   - event.SwarmSpawned：全部生成完成
//   - event.SwarmDefeated：全部被击败
//
// 两个事件的负载均为 event.SwarmPayload，WaveIndex 为该组在序列中的索引（0-based）。
type WaveGroup interface {
	// Activate 激活波次组，开始生成
	Activate()
	// Release 释放波次组占用的全部资源
	Release()
}

// WaveSequencerSystem 波次序列系统
//
// 职责：
//   - 按顺序逐个激活波次组，同一时刻只有一个波次组处于激活状态
//   - 订阅波次组的生成完成/击败完成信号并推进状态机
//   - 发布 WaveIncoming / WaveSpawned / WaveDefeated / AllWavesDefeated 事件
//
// 状态流转：
//
//	Idle → Active(n) → Spawning(n) → Attacking(n) → Cleared(n) → Cooldown(n) → Active(n+1) … → AllCleared
//
// 架构说明：
//   - 状态存储在 WaveSequenceComponent 中
//   - 信号在事件回调中锁存，状态推进只发生在 Update 中（每 tick 检查一次）
//   - 波次组永远不发信号时，序列停在该波次，不设超时
type WaveSequencerSystem struct {
	entityManager *ecs.EntityManager
	dispatcher    *event.Dispatcher
	groups        []WaveGroup

	// sequenceEntityID 序列组件所在的实体ID
	sequenceEntityID ecs.EntityID

	subscriptions []event.SubscriptionID
}

// NewWaveSequencerSystem 创建波次序列系统
//
// 参数：
//   - em: 实体管理器
//   - dispatcher: 事件分发器
//   - groups: 波次组列表，创建后固定
//   - nextWaveDelay: 波次间隔（秒）
func NewWaveSequencerSystem(em *ecs.EntityManager, dispatcher *event.Dispatcher, groups []WaveGroup, nextWaveDelay float64) *WaveSequencerSystem {
	fixed := make([]WaveGroup, len(groups))
	copy(fixed, groups)

	s := &WaveSequencerSystem{
		entityManager: em,
		dispatcher:    dispatcher,
		groups:        fixed,
	}

	s.sequenceEntityID = em.CreateEntity()
	ecs.AddComponent(em, s.sequenceEntityID, &components.WaveSequenceComponent{
		Phase:         components.WavePhaseIdle,
		TotalWaves:    len(fixed),
		NextWaveDelay: nextWaveDelay,
	})

	s.subscriptions = append(s.subscriptions,
		dispatcher.Subscribe(event.SwarmSpawned, s.onSwarmSpawned),
		dispatcher.Subscribe(event.SwarmDefeated, s.onSwarmDefeated),
	)

	log.Printf("[WaveSequencerSystem] Created sequence entity (ID: %d), total waves: %d", s.sequenceEntityID, len(fixed))
	return s
}

// Start 开始波次序列，只在 Idle 阶段生效
func (s *WaveSequencerSystem) Start() {
	seq := s.getSequence()
	if seq == nil || seq.Phase != components.WavePhaseIdle {
		return
	}
	s.advanceToNextWave(seq)
}

// Update 推进状态机
//
// 参数：
//   - deltaTime: 自上一帧以来经过的时间（秒）
func (s *WaveSequencerSystem) Update(deltaTime float64) {
	seq := s.getSequence()
	if seq == nil {
		return
	}

	switch seq.Phase {
	case components.WavePhaseSpawning:
		if !seq.SpawnSignaled {
			return
		}
		s.onWaveSpawned(seq)
		if seq.DefeatSignaled {
			s.onWaveDefeated(seq)
		}

	case components.WavePhaseAttacking:
		if seq.DefeatSignaled {
			s.onWaveDefeated(seq)
		}

	case components.WavePhaseCooldown:
		seq.CooldownRemaining -= deltaTime
		if seq.CooldownRemaining <= 0 {
			seq.CooldownRemaining = 0
			s.advanceToNextWave(seq)
		}
	}
}

// advanceToNextWave 激活下一波，没有剩余波次时进入终止状态
func (s *WaveSequencerSystem) advanceToNextWave(seq *components.WaveSequenceComponent) {
	if seq.CurrentWave >= seq.TotalWaves {
		s.finish(seq)
		return
	}

	seq.CurrentWave++
	seq.Phase = components.WavePhaseActive
	seq.SpawnSignaled = false
	seq.DefeatSignaled = false

	group := s.groups[seq.CurrentWave-1]
	group.Activate()
	log.Printf("[WaveSequencerSystem] Wave %d/%d incoming", seq.CurrentWave, seq.TotalWaves)

	// 激活和通知可能同步触发信号，先进入 Spawning，信号已被锁存
	seq.Phase = components.WavePhaseSpawning
	s.dispatcher.Dispatch(event.Event{Type: event.WaveIncoming, Data: event.WavePayload{Wave: seq.CurrentWave}})
}

func (s *WaveSequencerSystem) onWaveSpawned(seq *components.WaveSequenceComponent) {
	seq.Phase = components.WavePhaseAttacking
	log.Printf("[WaveSequencerSystem] Wave %d spawned", seq.CurrentWave)
	s.dispatcher.Dispatch(event.Event{Type: event.WaveSpawned, Data: event.WavePayload{Wave: seq.CurrentWave}})
}

func (s *WaveSequencerSystem) onWaveDefeated(seq *components.WaveSequenceComponent) {
	seq.Phase = components.WavePhaseCleared
	log.Printf("[WaveSequencerSystem] Wave %d defeated", seq.CurrentWave)
	s.dispatcher.Dispatch(event.Event{Type: event.WaveDefeated, Data: event.WavePayload{Wave: seq.CurrentWave}})

	// 释放完成后才进入间隔，下一波不会早于释放激活
	s.groups[seq.CurrentWave-1].Release()

	seq.Phase = components.WavePhaseCooldown
	seq.CooldownRemaining = seq.NextWaveDelay
}

func (s *WaveSequencerSystem) finish(seq *components.WaveSequenceComponent) {
	if seq.Phase == components.WavePhaseAllCleared {
		return
	}
	seq.Phase = components.WavePhaseAllCleared
	log.Printf("[WaveSequencerSystem] ✅ All %d waves defeated", seq.TotalWaves)
	s.dispatcher.Dispatch(event.Event{Type: event.AllWavesDefeated})
}

// onSwarmSpawned 锁存当前波次组的生成完成信号
func (s *WaveSequencerSystem) onSwarmSpawned(e event.Event) {
	if seq := s.matchCurrentWave(e); seq != nil {
		seq.SpawnSignaled = true
	}
}

// onSwarmDefeated 锁存当前波次组的击败完成信号
func (s *WaveSequencerSystem) onSwarmDefeated(e event.Event) {
	if seq := s.matchCurrentWave(e); seq != nil {
		seq.DefeatSignaled = true
	}
}

// matchCurrentWave 只接受当前等待中的波次组发出的信号
func (s *WaveSequencerSystem) matchCurrentWave(e event.Event) *components.WaveSequenceComponent {
	payload, ok := e.Data.(event.SwarmPayload)
	if !ok {
		return nil
	}

	seq := s.getSequence()
	if seq == nil {
		return nil
	}

	switch seq.Phase {
	case components.WavePhaseActive, components.WavePhaseSpawning, components.WavePhaseAttacking:
	default:
		return nil
	}

	if payload.WaveIndex != seq.CurrentWave-1 {
		log.Printf("[WaveSequencerSystem] Ignoring %s for wave index %d (current wave %d)", e.Type, payload.WaveIndex, seq.CurrentWave)
		return nil
	}
	return seq
}

// Phase 返回当前阶段
func (s *WaveSequencerSystem) Phase() components.WavePhase {
	seq := s.getSequence()
	if seq == nil {
		return components.WavePhaseIdle
	}
	return seq.Phase
}

// CurrentWave 返回当前波次编号（1-based），尚未开始时为 0
func (s *WaveSequencerSystem) CurrentWave() int {
	seq := s.getSequence()
	if seq == nil {
		return 0
	}
	return seq.CurrentWave
}

// TotalWaves 返回总波次数
func (s *WaveSequencerSystem) TotalWaves() int {
	return len(s.groups)
}

// IsFinished 是否已击败全部波次
func (s *WaveSequencerSystem) IsFinished() bool {
	return s.Phase() == components.WavePhaseAllCleared
}

// CooldownRemaining 返回波次间隔剩余时间（秒）
func (s *WaveSequencerSystem) CooldownRemaining() float64 {
	seq := s.getSequence()
	if seq == nil {
		return 0
	}
	return seq.CooldownRemaining
}

// Dispose 取消事件订阅
func (s *WaveSequencerSystem) Dispose() {
	for _, id := range s.subscriptions {
		s.dispatcher.Unsubscribe(id)
	}
	s.subscriptions = nil
}

// getSequence 获取序列组件
func (s *WaveSequencerSystem) getSequence() *components.WaveSequenceComponent {
	seq, ok := ecs.GetComponent[*components.WaveSequenceComponent](s.entityManager, s.sequenceEntityID)
	if !ok {
		return nil
	}
	return seq
}
