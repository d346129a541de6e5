package systems

import (
	"fmt"
	"testing"

	"github.com/decker502/wavearena/pkg/components"
	"github.com/decker502/wavearena/pkg/ecs"
	"github.com/decker502/wavearena/pkg/event"
)

// 测试辅助类型

// fakeWaveGroup 手动控制信号的波次组
type fakeWaveGroup struct {
	index      int
	dispatcher *event.Dispatcher
	log        *[]string

	activated bool
	released  bool

	// spawnOnActivate 激活时同步发出生成完成信号
	spawnOnActivate bool
}

func (g *fakeWaveGroup) Activate() {
	g.activated = true
	*g.log = append(*g.log, fmt.Sprintf("activate(%d)", g.index+1))
	if g.spawnOnActivate {
		g.signalSpawned()
	}
}

func (g *fakeWaveGroup) Release() {
	g.released = true
	*g.log = append(*g.log, fmt.Sprintf("release(%d)", g.index+1))
}

func (g *fakeWaveGroup) signalSpawned() {
	g.dispatcher.Dispatch(event.Event{Type: event.SwarmSpawned, Data: event.SwarmPayload{WaveIndex: g.index}})
}

func (g *fakeWaveGroup) signalDefeated() {
	g.dispatcher.Dispatch(event.Event{Type: event.SwarmDefeated, Data: event.SwarmPayload{WaveIndex: g.index}})
}

// sequencerFixture 测试装置
type sequencerFixture struct {
	em         *ecs.EntityManager
	dispatcher *event.Dispatcher
	groups     []*fakeWaveGroup
	system     *WaveSequencerSystem
	log        []string
}

func newSequencerFixture(waveCount int, delay float64) *sequencerFixture {
	f := &sequencerFixture{
		em:         ecs.NewEntityManager(),
		dispatcher: event.NewDispatcher(),
	}

	groups := make([]WaveGroup, 0, waveCount)
	for i := 0; i < waveCount; i++ {
		g := &fakeWaveGroup{index: i, dispatcher: f.dispatcher, log: &f.log}
		f.groups = append(f.groups, g)
		groups = append(groups, g)
	}

	record := func(name string) event.Handler {
		return func(e event.Event) {
			if p, ok := e.Data.(event.WavePayload); ok {
				f.log = append(f.log, fmt.Sprintf("%s(%d)", name, p.Wave))
				return
			}
			f.log = append(f.log, name)
		}
	}
	f.dispatcher.Subscribe(event.WaveIncoming, record("incoming"))
	f.dispatcher.Subscribe(event.WaveSpawned, record("spawned"))
	f.dispatcher.Subscribe(event.WaveDefeated, record("defeated"))
	f.dispatcher.Subscribe(event.AllWavesDefeated, record("allDefeated"))

	f.system = NewWaveSequencerSystem(f.em, f.dispatcher, groups, delay)
	return f
}

func (f *sequencerFixture) tick(n int, dt float64) {
	for i := 0; i < n; i++ {
		f.system.Update(dt)
	}
}

func (f *sequencerFixture) notifications() []string {
	out := make([]string, 0, len(f.log))
	for _, entry := range f.log {
		switch {
		case len(entry) >= 8 && entry[:8] == "activate", len(entry) >= 7 && entry[:7] == "release":
			continue
		}
		out = append(out, entry)
	}
	return out
}

func assertSequence(t *testing.T, got, expected []string) {
	t.Helper()
	if len(got) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Fatalf("Expected %v, got %v", expected, got)
		}
	}
}

// TestWaveSequencer_Creation 测试系统创建
func TestWaveSequencer_Creation(t *testing.T) {
	f := newSequencerFixture(3, 2.0)

	if f.system.sequenceEntityID == 0 {
		t.Error("Expected sequence entity ID to be non-zero")
	}
	if f.system.Phase() != components.WavePhaseIdle {
		t.Errorf("Expected Idle, got %s", f.system.Phase())
	}
	if f.system.TotalWaves() != 3 || f.system.CurrentWave() != 0 {
		t.Errorf("Unexpected counters: total=%d current=%d", f.system.TotalWaves(), f.system.CurrentWave())
	}

	// 未开始时 Update 不做任何事
	f.tick(10, 1.0)
	if f.groups[0].activated {
		t.Error("Update before Start must not activate waves")
	}
}

// TestWaveSequencer_FullSequence 三个波次的完整通知顺序
func TestWaveSequencer_FullSequence(t *testing.T) {
	const delay = 1.0
	const dt = 0.25
	f := newSequencerFixture(3, delay)

	f.system.Start()

	for wave := 1; wave <= 3; wave++ {
		g := f.groups[wave-1]
		if !g.activated {
			t.Fatalf("wave %d: group should be active", wave)
		}
		if f.system.Phase() != components.WavePhaseSpawning {
			t.Fatalf("wave %d: expected Spawning, got %s", wave, f.system.Phase())
		}

		// 无信号时保持等待
		f.tick(5, dt)
		if f.system.Phase() != components.WavePhaseSpawning {
			t.Fatalf("wave %d: must wait for spawn signal", wave)
		}

		g.signalSpawned()
		f.tick(1, dt)
		if f.system.Phase() != components.WavePhaseAttacking {
			t.Fatalf("wave %d: expected Attacking, got %s", wave, f.system.Phase())
		}

		f.tick(5, dt)
		g.signalDefeated()
		f.tick(1, dt)
		if !g.released {
			t.Fatalf("wave %d: group should be released after defeat", wave)
		}

		if wave < 3 {
			if f.system.Phase() != components.WavePhaseCooldown {
				t.Fatalf("wave %d: expected Cooldown, got %s", wave, f.system.Phase())
			}
			// 间隔未结束前不激活下一波
			f.tick(3, dt)
			if f.groups[wave].activated {
				t.Fatalf("wave %d: next wave activated before cooldown elapsed", wave)
			}
			f.tick(1, dt)
			if !f.groups[wave].activated {
				t.Fatalf("wave %d: next wave should be active after cooldown", wave)
			}
		} else {
			f.tick(4, dt)
		}
	}

	if !f.system.IsFinished() {
		t.Fatalf("Expected AllCleared, got %s", f.system.Phase())
	}

	// 终止后不再有任何通知
	f.tick(100, dt)
	for _, g := range f.groups {
		g.signalSpawned()
		g.signalDefeated()
	}
	f.tick(10, dt)

	assertSequence(t, f.notifications(), []string{
		"incoming(1)", "spawned(1)", "defeated(1)",
		"incoming(2)", "spawned(2)", "defeated(2)",
		"incoming(3)", "spawned(3)", "defeated(3)",
		"allDefeated",
	})
}

// TestWaveSequencer_OneActiveGroup 下一波激活前上一波已释放
func TestWaveSequencer_OneActiveGroup(t *testing.T) {
	f := newSequencerFixture(2, 0)
	f.system.Start()

	f.groups[0].signalSpawned()
	f.groups[0].signalDefeated()
	f.tick(1, 0.1)
	f.tick(1, 0.1)

	assertSequence(t, f.log, []string{
		"activate(1)", "incoming(1)", "spawned(1)", "defeated(1)", "release(1)",
		"activate(2)", "incoming(2)",
	})
}

// TestWaveSequencer_ZeroDelayWaitsOneTick 间隔为 0 时下一波在下一个 tick 激活
func TestWaveSequencer_ZeroDelayWaitsOneTick(t *testing.T) {
	f := newSequencerFixture(2, 0)
	f.system.Start()
	f.groups[0].signalSpawned()
	f.groups[0].signalDefeated()

	f.tick(1, 0.1)
	if f.groups[1].activated {
		t.Fatal("Next wave must not activate in the same tick as the defeat")
	}
	f.tick(1, 0.1)
	if !f.groups[1].activated {
		t.Fatal("Next wave should activate on the following tick")
	}
}

// TestWaveSequencer_SynchronousSpawnSignal 激活时同步发出的信号不会丢失
func TestWaveSequencer_SynchronousSpawnSignal(t *testing.T) {
	f := newSequencerFixture(1, 0)
	f.groups[0].spawnOnActivate = true

	f.system.Start()
	f.tick(1, 0.1)

	if f.system.Phase() != components.WavePhaseAttacking {
		t.Fatalf("Expected Attacking, got %s", f.system.Phase())
	}
}

// TestWaveSequencer_IgnoresForeignSignals 其他波次的信号被忽略
func TestWaveSequencer_IgnoresForeignSignals(t *testing.T) {
	f := newSequencerFixture(3, 0)
	f.system.Start()

	f.groups[1].signalSpawned()
	f.groups[2].signalDefeated()
	f.dispatcher.Dispatch(event.Event{Type: event.SwarmSpawned, Data: "garbage"})
	f.tick(3, 0.1)

	if f.system.Phase() != components.WavePhaseSpawning || f.system.CurrentWave() != 1 {
		t.Fatalf("Foreign signals must not advance wave 1, got %s wave %d", f.system.Phase(), f.system.CurrentWave())
	}
}

// TestWaveSequencer_DefeatBeforeSpawnLatched 击败信号先到时等生成完成后一起处理
func TestWaveSequencer_DefeatBeforeSpawnLatched(t *testing.T) {
	f := newSequencerFixture(1, 0)
	f.system.Start()

	f.groups[0].signalDefeated()
	f.tick(2, 0.1)
	if f.system.Phase() != components.WavePhaseSpawning {
		t.Fatalf("Must keep waiting for spawn signal, got %s", f.system.Phase())
	}

	f.groups[0].signalSpawned()
	f.tick(1, 0.1)
	if f.system.Phase() != components.WavePhaseCooldown {
		t.Fatalf("Expected Cooldown after both signals, got %s", f.system.Phase())
	}
	assertSequence(t, f.notifications(), []string{"incoming(1)", "spawned(1)", "defeated(1)"})
}

// TestWaveSequencer_NeverDefeatedBlocks 永不击败时停在该波次
func TestWaveSequencer_NeverDefeatedBlocks(t *testing.T) {
	f := newSequencerFixture(2, 0)
	f.system.Start()
	f.groups[0].signalSpawned()

	f.tick(10000, 1.0/60.0)

	if f.system.Phase() != components.WavePhaseAttacking || f.groups[1].activated {
		t.Fatalf("Sequencer must block on wave 1, got %s", f.system.Phase())
	}
}

// TestWaveSequencer_NoWaves 没有波次时立即全部击败
func TestWaveSequencer_NoWaves(t *testing.T) {
	f := newSequencerFixture(0, 1.0)
	f.system.Start()
	f.system.Start()
	f.tick(5, 0.1)

	if !f.system.IsFinished() {
		t.Fatalf("Expected AllCleared, got %s", f.system.Phase())
	}
	assertSequence(t, f.notifications(), []string{"allDefeated"})
}

// TestWaveSequencer_StartIsIdempotent 重复 Start 不会重复激活
func TestWaveSequencer_StartIsIdempotent(t *testing.T) {
	f := newSequencerFixture(2, 0)
	f.system.Start()
	f.system.Start()

	assertSequence(t, f.log, []string{"activate(1)", "incoming(1)"})
}

// TestWaveSequencer_Dispose 取消订阅后信号不再被接收
func TestWaveSequencer_Dispose(t *testing.T) {
	f := newSequencerFixture(1, 0)
	f.system.Start()
	f.system.Dispose()

	f.groups[0].signalSpawned()
	f.tick(1, 0.1)
	if f.system.Phase() != components.WavePhaseSpawning {
		t.Fatalf("Disposed sequencer must not receive signals, got %s", f.system.Phase())
	}
	if f.dispatcher.ListenerCount(event.SwarmSpawned) != 0 {
		t.Error("Expected no SwarmSpawned listeners after dispose")
	}
}
