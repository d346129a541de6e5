package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/decker502/wavearena/internal/sim"
	"github.com/decker502/wavearena/pkg/config"
	"github.com/decker502/wavearena/pkg/event"
	"github.com/decker502/wavearena/pkg/game"
)

var (
	flagArena  string
	flagHits   float64
	flagDamage int
	flagTPS    int
	flagMax    float64
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate a match",
	Long: `Simulate one match and log every wave event.

The automatic player attacks the enemy closest to the centre
--hits times per second, dealing --damage each time. The match ends
when every wave is defeated, an enemy reaches the player, or --max
seconds pass.`,
	Args: cobra.NoArgs,
	RunE: runSimulation,
}

func init() {
	runCmd.Flags().StringVar(&flagArena, "arena", "", "Path to arena config YAML (default: built-in arena)")
	runCmd.Flags().Float64Var(&flagHits, "hits", 4, "Automatic player attacks per second (0 = never attack)")
	runCmd.Flags().IntVar(&flagDamage, "damage", 1, "Damage per attack")
	runCmd.Flags().IntVar(&flagTPS, "tps", 60, "Simulation ticks per second")
	runCmd.Flags().Float64Var(&flagMax, "max", 300, "Maximum simulated seconds")
}

func loadArena(path string) (*config.ArenaConfig, error) {
	if path == "" {
		return config.DefaultArenaConfig(), nil
	}
	return config.LoadArenaConfig(path)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	arena, err := loadArena(flagArena)
	if err != nil {
		return err
	}

	game.CreateGameState()
	defer game.ShutdownGameState()

	opts := sim.DefaultOptions(arena)
	opts.Seed = flagSeed
	opts.HitsPerSecond = flagHits
	opts.Damage = flagDamage
	opts.TickRate = flagTPS
	opts.MaxTime = flagMax

	logger.Info("starting simulation", "arena", arena.Name, "waves", len(arena.Waves), "seed", flagSeed)

	res, err := sim.Run(opts, logEvent)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	fmt.Println(renderSummary(arena.Name, res))
	return nil
}

func logEvent(t float64, e event.Event) {
	at := fmt.Sprintf("%.2fs", t)

	switch p := e.Data.(type) {
	case event.WavePayload:
		logger.Info(string(e.Type), "t", at, "wave", p.Wave)
	case event.EnemyDefeatedPayload:
		logger.Debug(string(e.Type), "t", at, "x", int(p.X), "y", int(p.Y), "score", p.ScoreValue)
	default:
		switch e.Type {
		case event.PlayerDied:
			logger.Warn(string(e.Type), "t", at)
		default:
			logger.Info(string(e.Type), "t", at)
		}
	}
}

var (
	summaryStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2)
	titleStyle   = lipgloss.NewStyle().Bold(true)
	wonStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	lostStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

func renderSummary(name string, res *sim.Result) string {
	outcome := string(res.Outcome)
	switch res.Outcome {
	case sim.OutcomeWon:
		outcome = wonStyle.Render("You won!")
	case sim.OutcomeLost:
		outcome = lostStyle.Render("You died!")
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(name),
		outcome,
		fmt.Sprintf("Waves:      %d/%d", res.WavesClear, res.TotalWaves),
		fmt.Sprintf("Score:      %d", res.Score),
		fmt.Sprintf("Kills:      %d", res.Kills),
		fmt.Sprintf("Shockwaves: %d", res.Shockwaves),
		fmt.Sprintf("Time:       %.1fs", res.Elapsed),
	)
	return summaryStyle.Render(body)
}
