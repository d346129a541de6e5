package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/decker502/wavearena/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate <arena.yaml>",
	Short: "Validate an arena config",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		arena, err := config.LoadArenaConfig(args[0])
		if err != nil {
			return err
		}

		logger.Info("arena config is valid", "name", arena.Name, "waves", len(arena.Waves))
		fmt.Printf("%-6s %-8s %-10s %-7s %-7s %s\n", "WAVE", "ENEMIES", "INTERVAL", "HEALTH", "SPEED", "SCORE")
		for i, w := range arena.Waves {
			fmt.Printf("%-6d %-8d %-10.2f %-7d %-7.1f %d\n", i+1, w.Enemies, w.SpawnInterval, w.Health, w.Speed, w.ScoreValue)
		}
		return nil
	},
}
