package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-autopilot/internal/autoplay"
	"github.com/vovakirdan/snake-autopilot/internal/config"
	"github.com/vovakirdan/snake-autopilot/internal/storage"
)

var (
	flagGames  int
	flagNoSave bool
)

var runCmd = &cobra.Command{
	Use:   "run <preset>",
	Short: "Play games headless and store the results",
	Long: `Play one or more games without a display, as fast as the planner allows.
Each finished game is logged and saved to the runs database.

A game ends when the snake dies, fills the board, or reaches play.max_moves
from the config. Ctrl+C stops the current game, saves it with outcome
"running" and skips the rest.

Examples:
  autopilot run autopilot
  autopilot run autopilot_walled --games 50 --seed 7
  autopilot run autopilot_large --log-level debug`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().IntVarP(&flagGames, "games", "n", 1, "Number of games to play")
	runCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not store results")
}

func runRun(_ *cobra.Command, args []string) error {
	p, ok := autoplay.FindPreset(args[0])
	if !ok {
		return fmt.Errorf("unknown preset %q, run 'autopilot list' to see available presets", args[0])
	}
	pcfg, err := autoplay.ConfigFor(p)
	if err != nil {
		return err
	}

	var store *storage.Store
	if !flagNoSave {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("could not open runs database, results will not be saved", "err", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	results, err := playGames(ctx, p, pcfg, seed, flagGames, store)
	if err != nil {
		return err
	}

	printSummary(p, results)
	return nil
}

// playGames plays up to n games with seeds seed, seed+1, ... and saves each
// one to store when it is not nil. A game cut short by ctx is saved too, as
// long as it made a move, and ends the loop.
func playGames(ctx context.Context, p autoplay.Preset, pcfg config.Config, seed int64, n int, store *storage.Store) ([]autoplay.RunResult, error) {
	var results []autoplay.RunResult
	for i := 0; i < n; i++ {
		res, err := autoplay.Run(ctx, autoplay.RunConfig{
			Preset: p.ID,
			Config: pcfg,
			Seed:   seed + int64(i),
		}, logger)
		interrupted := errors.Is(err, context.Canceled)
		if err != nil && !interrupted {
			return results, err
		}

		if res.Moves > 0 {
			results = append(results, res)
			saveResult(store, res)
		}
		if interrupted {
			logger.Warn("interrupted", "played", len(results), "last_moves", res.Moves)
			break
		}
	}
	return results, nil
}

func saveResult(store *storage.Store, res autoplay.RunResult) {
	if store == nil {
		return
	}
	_, err := store.SaveRun(storage.Run{
		RunID:   res.ID,
		Preset:  res.Preset,
		Score:   res.Score,
		Length:  res.Length,
		Moves:   res.Moves,
		Outcome: res.Outcome.String(),
	})
	if err != nil {
		logger.Warn("could not save run", "run", res.ID, "err", err)
	}
}

func printSummary(p autoplay.Preset, results []autoplay.RunResult) {
	if len(results) == 0 {
		return
	}

	outcomes := map[string]int{}
	strategies := map[string]int{}
	total, best := 0, results[0]
	for _, r := range results {
		total += r.Score
		outcomes[r.Outcome.String()]++
		for s, n := range r.Strategies {
			strategies[s.String()] += n
		}
		if r.Score > best.Score {
			best = r
		}
	}

	fmt.Printf("%s: %d games\n", p.Title, len(results))
	fmt.Printf("  best     %d (run %s, %d moves)\n", best.Score, best.ID, best.Moves)
	fmt.Printf("  average  %.1f\n", float64(total)/float64(len(results)))
	fmt.Printf("  outcomes %s\n", formatCounts(outcomes))
	fmt.Printf("  plans    %s\n", formatCounts(strategies))
}

func formatCounts(m map[string]int) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := ""
	for i, k := range keys {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s=%d", k, m[k])
	}
	return out
}
