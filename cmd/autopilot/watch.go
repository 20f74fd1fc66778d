package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/snake-autopilot/internal/core"
	"github.com/vovakirdan/snake-autopilot/internal/platform/tui"
	"github.com/vovakirdan/snake-autopilot/internal/registry"
	"github.com/vovakirdan/snake-autopilot/internal/storage"
)

var watchCmd = &cobra.Command{
	Use:   "watch [preset]",
	Short: "Watch the autopilot play in the terminal",
	Long: `Watch a game played by the autopilot. Without a preset, a menu lets you
pick one.

Controls:
  P/Space    - Pause
  +/-        - Faster/slower
  R          - Restart
  Esc/B      - Back to menu (when paused or over)
  Ctrl+S     - Save a text screenshot
  Q/Ctrl+C   - Quit

Examples:
  autopilot watch
  autopilot watch autopilot_walled
  autopilot watch autopilot_large --fps 60 --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func runWatch(_ *cobra.Command, args []string) error {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}

	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database", "err", err)
		store = nil
	} else {
		defer store.Close()
	}

	if len(args) == 1 {
		_, err := watch(args[0], store, rc)
		return err
	}

	// Menu loop: pick, watch, come back
	for {
		res, err := tui.RunMenu(rc)
		if err != nil {
			return err
		}
		rc = res.Config

		switch {
		case res.Quit:
			return nil
		case res.WantsScoreboard:
			back, err := tui.RunScoreboard(store, "", rc.ScreenW, rc.ScreenH)
			if err != nil || !back {
				return err
			}
		default:
			back, err := watch(res.GameID, store, rc)
			if err != nil || !back {
				return err
			}
		}
	}
}

func watch(id string, store *storage.Store, rc core.RuntimeConfig) (bool, error) {
	game, err := registry.Create(id)
	if err != nil {
		return false, fmt.Errorf("%w, run 'autopilot list' to see available presets", err)
	}
	return tui.Run(game, store, rc, logger)
}
