// arenasim runs wave arena matches without a window.
//
// Usage:
//
//	arenasim run [--arena file.yaml]   - Simulate a match with an automatic player
//	arenasim validate <file.yaml>      - Check an arena config and print its waves
//
// Global flags:
//
//	--seed <value>  - RNG seed for enemy spawn angles
//	--verbose       - Include system debug logs
package main

import (
	"fmt"
	"io"
	stdlog "log"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagSeed    int64
	flagVerbose bool

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "arenasim",
	})
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arenasim",
	Short: "Headless wave arena simulator",
	Long: `arenasim plays wave arena matches without opening a window.

It drives the same swarm, wave sequencer, score and shockwave systems
as the game, with an automatic player that attacks the enemy closest
to the centre at a fixed rate.

Examples:
  arenasim run
  arenasim run --arena ./my-arena.yaml --hits 6
  arenasim validate ./my-arena.yaml`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// 系统内部日志走标准库 log，仅在 --verbose 时输出
		if flagVerbose {
			logger.SetLevel(log.DebugLevel)
			stdlog.SetOutput(logger.StandardLog(log.StandardLogOptions{ForceLevel: log.DebugLevel}).Writer())
			stdlog.SetFlags(0)
		} else {
			stdlog.SetOutput(io.Discard)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 1, "RNG seed for enemy spawn angles")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Include system debug logs")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
}
