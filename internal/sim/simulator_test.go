package sim

import (
	"testing"

	"github.com/decker502/wavearena/pkg/config"
	"github.com/decker502/wavearena/pkg/event"
	"github.com/decker502/wavearena/pkg/game"
)

func setupGlobals(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", "")
	game.ShutdownGameState()
	t.Cleanup(game.ShutdownGameState)
}

func TestRunDefaultArenaWins(t *testing.T) {
	setupGlobals(t)

	opts := DefaultOptions(config.DefaultArenaConfig())
	opts.HitsPerSecond = 20
	opts.Damage = 5

	var order []event.Type
	res, err := Run(opts, func(_ float64, e event.Event) {
		if e.Type != event.EnemyDefeated {
			order = append(order, e.Type)
		}
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if res.Outcome != OutcomeWon {
		t.Fatalf("Expected win, got %s", res.Outcome)
	}
	if res.WavesClear != 3 || res.TotalWaves != 3 {
		t.Errorf("Expected 3/3 waves, got %d/%d", res.WavesClear, res.TotalWaves)
	}
	if res.Kills != 4+6+8 {
		t.Errorf("Expected 18 kills, got %d", res.Kills)
	}
	if res.Score != 4*1+6*2+8*3 {
		t.Errorf("Expected score 40, got %d", res.Score)
	}
	// 开场一次 + 每个击杀一次
	if res.Shockwaves != 1+res.Kills {
		t.Errorf("Expected %d shockwaves, got %d", 1+res.Kills, res.Shockwaves)
	}
	if res.ActiveAtEnd > 10 {
		t.Errorf("Active shockwaves can never exceed capacity, got %d", res.ActiveAtEnd)
	}

	expected := []event.Type{
		event.WaveIncoming, event.WaveSpawned, event.WaveDefeated,
		event.WaveIncoming, event.WaveSpawned, event.WaveDefeated,
		event.WaveIncoming, event.WaveSpawned, event.WaveDefeated,
		event.AllWavesDefeated,
	}
	if len(order) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, order)
	}
	for i := range expected {
		if order[i] != expected[i] {
			t.Fatalf("Expected %v, got %v", expected, order)
		}
	}
}

func TestRunWithoutHitsLoses(t *testing.T) {
	setupGlobals(t)

	opts := DefaultOptions(config.DefaultArenaConfig())
	opts.HitsPerSecond = 0

	res, err := Run(opts, nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Outcome != OutcomeLost {
		t.Errorf("Expected loss, got %s", res.Outcome)
	}
	if res.Score != 0 || res.WavesClear != 0 {
		t.Errorf("Expected nothing cleared, got score %d waves %d", res.Score, res.WavesClear)
	}
}

func TestRunTimeout(t *testing.T) {
	setupGlobals(t)

	arena := config.DefaultArenaConfig()
	arena.Waves = []config.WaveConfig{{Enemies: 1, SpawnInterval: 0, Health: 1, Speed: 0, ScoreValue: 1}}

	opts := DefaultOptions(arena)
	opts.HitsPerSecond = 0
	opts.MaxTime = 2

	res, err := Run(opts, nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Outcome != OutcomeTimeout {
		t.Errorf("Expected timeout, got %s", res.Outcome)
	}
}

func TestRunValidatesOptions(t *testing.T) {
	if _, err := Run(Options{}, nil); err == nil {
		t.Error("Expected error without arena")
	}

	opts := DefaultOptions(config.DefaultArenaConfig())
	opts.TickRate = 0
	if _, err := Run(opts, nil); err == nil {
		t.Error("Expected error for zero tick rate")
	}
}

func TestRunReleasesRegistry(t *testing.T) {
	setupGlobals(t)

	opts := DefaultOptions(config.DefaultArenaConfig())
	opts.MaxTime = 1
	for i := 0; i < 2; i++ {
		if _, err := Run(opts, nil); err != nil {
			t.Fatalf("Run %d failed: %v", i, err)
		}
	}
}
