// autopilot lets a path-planning agent play snake: headless for statistics,
// in the terminal to watch, or over SSH.
//
// Usage:
//
//	autopilot list                  - List board presets
//	autopilot plan <board.yaml>     - Print the planner's decision for one position
//	autopilot run <preset>          - Play games headless and store the results
//	autopilot watch [preset]        - Watch a game in the terminal
//	autopilot serve                 - Start SSH server for remote watching
//	autopilot scores <preset>       - Show the best stored runs
//
// Global flags:
//
//	--config <path>     - Config YAML (default: search ~/.autopilot/configs, ./configs)
//	--seed <value>      - RNG seed for reproducible games
//	--db <path>         - Runs database (default: ~/.autopilot/runs.db)
//	--log-level <lvl>   - debug, info, warn, error
//	--fps <rate>        - Tick rate when watching (default: 30)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-autopilot/internal/autoplay"
	"github.com/vovakirdan/snake-autopilot/internal/config"
)

var (
	flagConfig   string
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagFPS      int

	logger *log.Logger
	cfg    config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "autopilot",
	Short: "Snake Autopilot - watch a planner play snake",
	Long: `Snake Autopilot plays snake on its own. Every decision comes from a
search that looks for the food along a route that still leaves a way back
to the tail, falling back to the longest escape move when there is none.

Available commands:
  list     - Show board presets
  plan     - Ask the planner about one board position
  run      - Play games headless and store the results
  watch    - Watch a game in the terminal
  serve    - Start SSH server for remote watching
  scores   - View stored runs

Examples:
  autopilot list
  autopilot plan ./configs/boards/hook.yaml
  autopilot run autopilot --games 20
  autopilot watch autopilot_large --fps 60
  autopilot serve --ssh :2222
  autopilot scores autopilot`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to autopilot config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.autopilot/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// setup builds the logger and loads the configuration shared by every command.
func setup(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "autopilot",
		Level:           level,
	})

	cfg, err = config.Load(flagConfig)
	if err != nil {
		return err
	}
	autoplay.SetConfig(cfg)
	autoplay.SetLogger(logger)
	return nil
}
