package systems

import (
	"github.com/decker502/wavearena/pkg/event"
	"github.com/decker502/wavearena/pkg/game"
)

// ScoreSystem 计分系统
// 订阅 EnemyDefeated，把敌人的分值加到全局分数上
type ScoreSystem struct {
	dispatcher   *event.Dispatcher
	gameState    *game.GameState
	subscription event.SubscriptionID
}

// NewScoreSystem 创建计分系统
func NewScoreSystem(dispatcher *event.Dispatcher, gs *game.GameState) *ScoreSystem {
	s := &ScoreSystem{
		dispatcher: dispatcher,
		gameState:  gs,
	}
	s.subscription = dispatcher.Subscribe(event.EnemyDefeated, s.onEnemyDefeated)
	return s
}

func (s *ScoreSystem) onEnemyDefeated(e event.Event) {
	payload, ok := e.Data.(event.EnemyDefeatedPayload)
	if !ok {
		return
	}
	s.gameState.AddScore(payload.ScoreValue)
}

// Dispose 取消事件订阅
func (s *ScoreSystem) Dispose() {
	s.dispatcher.Unsubscribe(s.subscription)
}
