package main

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snake-autopilot/internal/autoplay"
	"github.com/vovakirdan/snake-autopilot/internal/storage"
)

// stopAfter reports no error for the first n Err calls and
// context.Canceled afterwards, like a Ctrl+C in the middle of a game.
type stopAfter struct {
	context.Context
	n int
}

func (c *stopAfter) Err() error {
	if c.n <= 0 {
		return context.Canceled
	}
	c.n--
	return nil
}

func setupRun(t *testing.T) (autoplay.Preset, *storage.Store) {
	t.Helper()
	logger = log.New(io.Discard)

	p, ok := autoplay.FindPreset("autopilot")
	if !ok {
		t.Fatal("autopilot preset not registered")
	}

	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return p, store
}

func TestPlayGamesSavesInterruptedGame(t *testing.T) {
	p, store := setupRun(t)
	pcfg, err := autoplay.ConfigFor(p)
	if err != nil {
		t.Fatalf("ConfigFor failed: %v", err)
	}
	pcfg.Play.Precompute = false

	ctx := &stopAfter{Context: context.Background(), n: 5}
	results, err := playGames(ctx, p, pcfg, 11, 3, store)
	if err != nil {
		t.Fatalf("playGames failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, expected 1", len(results))
	}
	if results[0].Moves == 0 {
		t.Fatal("interrupted game made no moves")
	}

	stored, err := store.RunByID(results[0].ID)
	if err != nil {
		t.Fatalf("RunByID failed: %v", err)
	}
	if stored == nil {
		t.Fatal("interrupted game was not saved")
	}
	if stored.Moves != results[0].Moves {
		t.Errorf("stored Moves = %d, expected %d", stored.Moves, results[0].Moves)
	}

	if n, _ := store.RunCount(p.ID); n != 1 {
		t.Errorf("RunCount = %d, expected 1", n)
	}
}

func TestPlayGamesSkipsGameWithoutMoves(t *testing.T) {
	p, store := setupRun(t)
	pcfg, err := autoplay.ConfigFor(p)
	if err != nil {
		t.Fatalf("ConfigFor failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := playGames(ctx, p, pcfg, 11, 3, store)
	if err != nil {
		t.Fatalf("playGames failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results, expected none", len(results))
	}
	if n, _ := store.RunCount(p.ID); n != 0 {
		t.Errorf("RunCount = %d, expected 0", n)
	}
}

func TestPlayGamesWithoutStore(t *testing.T) {
	p, _ := setupRun(t)
	pcfg, err := autoplay.ConfigFor(p)
	if err != nil {
		t.Fatalf("ConfigFor failed: %v", err)
	}
	pcfg.Play.MaxMoves = 50

	results, err := playGames(context.Background(), p, pcfg, 3, 2, nil)
	if err != nil {
		t.Fatalf("playGames failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, expected 2", len(results))
	}
	if results[0].Seed != 3 || results[1].Seed != 4 {
		t.Errorf("seeds = %d, %d, expected 3, 4", results[0].Seed, results[1].Seed)
	}
}
