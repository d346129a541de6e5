package components

import "github.com/decker502/wavearena/pkg/ecs"

// SwarmComponent 敌群（波次组）组件
//
// 生命周期：未激活 → 激活（开始生成）→ 生成完成 → 被击败 → 释放
type SwarmComponent struct {
	// WaveIndex 所属波次索引（0-based）
	WaveIndex int

	// EnemyCount 本组敌人总数
	EnemyCount int

	// SpawnInterval 相邻敌人生成间隔（秒）
	SpawnInterval float64

	// SpawnTimer 距下一次生成的剩余时间（秒）
	SpawnTimer float64

	// SpawnedCount 已生成数量
	SpawnedCount int

	// DefeatedCount 已击败数量
	DefeatedCount int

	// EnemyHealth 每个敌人的生命值
	EnemyHealth int

	// EnemySpeed 敌人移动速度（像素/秒）
	EnemySpeed float64

	// ScoreValue 击败一个敌人获得的分数
	ScoreValue int

	// IsActive 是否已激活
	IsActive bool

	// IsSpawned 是否已全部生成（只读信号）
	IsSpawned bool

	// IsDefeated 是否已全部击败（只读信号）
	IsDefeated bool
}

// EnemyComponent 敌人组件
type EnemyComponent struct {
	// Swarm 所属敌群实体
	Swarm ecs.EntityID

	// Health 剩余生命值
	Health int

	// ScoreValue 击败后获得的分数
	ScoreValue int

	// IsDead 已被击败，等待清理
	IsDead bool
}
