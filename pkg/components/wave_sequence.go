package components

// WavePhase 波次序列所处阶段
type WavePhase int

const (
	// WavePhaseIdle 尚未开始
	WavePhaseIdle WavePhase = iota
	// WavePhaseActive 当前波次组刚被激活（瞬时阶段，同一帧内进入 Spawning）
	WavePhaseActive
	// WavePhaseSpawning 等待当前波次组生成完成
	WavePhaseSpawning
	// WavePhaseAttacking 等待当前波次组被全部击败
	WavePhaseAttacking
	// WavePhaseCleared 当前波次已击败（瞬时阶段，同一帧内释放波次组并进入 Cooldown）
	WavePhaseCleared
	// WavePhaseCooldown 波次间隔
	WavePhaseCooldown
	// WavePhaseAllCleared 终止状态
	WavePhaseAllCleared
)

// String 返回阶段名称（日志用）
func (p WavePhase) String() string {
	switch p {
	case WavePhaseIdle:
		return "Idle"
	case WavePhaseActive:
		return "Active"
	case WavePhaseSpawning:
		return "Spawning"
	case WavePhaseAttacking:
		return "Attacking"
	case WavePhaseCleared:
		return "Cleared"
	case WavePhaseCooldown:
		return "Cooldown"
	case WavePhaseAllCleared:
		return "AllCleared"
	default:
		return "Unknown"
	}
}

// WaveSequenceComponent 波次序列状态组件
// 供 WaveSequencerSystem 使用，组件仅存储数据
type WaveSequenceComponent struct {
	// Phase 当前阶段
	Phase WavePhase

	// CurrentWave 当前波次编号（1-based），Idle 时为 0
	CurrentWave int

	// TotalWaves 总波次数
	TotalWaves int

	// NextWaveDelay 波次间隔（秒）
	NextWaveDelay float64

	// CooldownRemaining 波次间隔剩余时间（秒）
	CooldownRemaining float64

	// SpawnSignaled 当前波次组已报告生成完成
	// 信号被锁存：在序列到达等待阶段前收到也不会丢失
	SpawnSignaled bool

	// DefeatSignaled 当前波次组已报告被全部击败
	DefeatSignaled bool
}
