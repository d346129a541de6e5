package systems

import (
	"github.com/decker502/wavearena/pkg/config"
	"github.com/decker502/wavearena/pkg/effects"
	"github.com/decker502/wavearena/pkg/event"
)

// ShockwaveSystem 冲击波触发系统
//
// 职责：
//   - 敌人被击败时在其位置触发冲击波
//   - 玩家主动触发（PlayAt）
//   - 进入场景时按配置在玩家位置触发一次
type ShockwaveSystem struct {
	dispatcher   *event.Dispatcher
	effect       *effects.ShockwaveEffect
	playOnStart  bool
	started      bool
	subscription event.SubscriptionID
}

// NewShockwaveSystem 创建冲击波触发系统
func NewShockwaveSystem(dispatcher *event.Dispatcher, effect *effects.ShockwaveEffect, playOnStart bool) *ShockwaveSystem {
	s := &ShockwaveSystem{
		dispatcher:  dispatcher,
		effect:      effect,
		playOnStart: playOnStart,
	}
	s.subscription = dispatcher.Subscribe(event.EnemyDefeated, s.onEnemyDefeated)
	return s
}

// Start 场景开始时调用一次
func (s *ShockwaveSystem) Start() {
	if s.started {
		return
	}
	s.started = true
	if s.playOnStart {
		s.PlayAt(config.ArenaCenterX, config.ArenaCenterY)
	}
}

// PlayAt 在 (x, y) 触发冲击波，返回写入的槽位
func (s *ShockwaveSystem) PlayAt(x, y float64) int {
	return s.effect.Play(effects.Vec3{X: x, Y: y})
}

func (s *ShockwaveSystem) onEnemyDefeated(e event.Event) {
	payload, ok := e.Data.(event.EnemyDefeatedPayload)
	if !ok {
		return
	}
	s.PlayAt(payload.X, payload.Y)
}

// Dispose 取消事件订阅
func (s *ShockwaveSystem) Dispose() {
	s.dispatcher.Unsubscribe(s.subscription)
}
