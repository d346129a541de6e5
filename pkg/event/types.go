package event

const (
	// 波次序列事件（Wave 为 1-based 波次编号）
	WaveIncoming     Type = "WaveIncoming"
	WaveSpawned      Type = "WaveSpawned"
	WaveDefeated     Type = "WaveDefeated"
	AllWavesDefeated Type = "AllWavesDefeated"

	// 波次组信号（WaveIndex 为 0-based）
	SwarmSpawned  Type = "SwarmSpawned"
	SwarmDefeated Type = "SwarmDefeated"

	EnemyDefeated Type = "EnemyDefeated"
	PlayerDied    Type = "PlayerDied"
)

// WavePayload 波次序列事件负载
type WavePayload struct {
	Wave int
}

// SwarmPayload 波次组信号负载
type SwarmPayload struct {
	WaveIndex int
}

// EnemyDefeatedPayload 敌人被击败事件负载
type EnemyDefeatedPayload struct {
	X, Y       float64
	ScoreValue int
}
