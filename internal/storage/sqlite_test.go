package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func saveRun(t *testing.T, store *Store, preset string, score, moves int, outcome string) string {
	t.Helper()
	runID := fmt.Sprintf("%s-%d-%d", preset, score, moves)
	if _, err := store.SaveRun(Run{
		RunID:   runID,
		Preset:  preset,
		Score:   score,
		Length:  score + 3,
		Moves:   moves,
		Outcome: outcome,
	}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	return runID
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreTopRuns(t *testing.T) {
	store := openTestStore(t)

	saveRun(t, store, "autopilot", 20, 400, "dead")
	saveRun(t, store, "autopilot", 61, 900, "full")
	saveRun(t, store, "autopilot", 20, 300, "dead")
	saveRun(t, store, "autopilot_large", 90, 5000, "dead")

	runs, err := store.TopRuns("autopilot", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}

	if runs[0].Score != 61 || runs[0].Outcome != "full" {
		t.Errorf("Expected the full board first, got %+v", runs[0])
	}
	// Equal scores: fewer moves first
	if runs[1].Moves != 300 || runs[2].Moves != 400 {
		t.Errorf("Tie not broken by moves: %+v", runs[1:])
	}
	if runs[0].Length != 64 {
		t.Errorf("Expected length 64, got %d", runs[0].Length)
	}
	if runs[0].CreatedAt.IsZero() {
		t.Error("CreatedAt was not populated")
	}
}

func TestStoreTopRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		saveRun(t, store, "autopilot", (i+1)*10, 100, "dead")
	}

	runs, err := store.TopRuns("autopilot", 3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(runs))
	}
	if runs[0].Score != 50 || runs[1].Score != 40 || runs[2].Score != 30 {
		t.Errorf("Runs not in expected order: %v", runs)
	}
}

func TestStoreBestScoreAndCount(t *testing.T) {
	store := openTestStore(t)

	best, err := store.BestScore("autopilot")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected 0 for a preset without runs, got %d", best)
	}

	saveRun(t, store, "autopilot", 10, 100, "dead")
	saveRun(t, store, "autopilot", 30, 300, "dead")
	saveRun(t, store, "autopilot_walled", 50, 500, "dead")

	best, err = store.BestScore("autopilot")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 30 {
		t.Errorf("Expected best score 30, got %d", best)
	}

	n, err := store.RunCount("autopilot")
	if err != nil {
		t.Fatalf("RunCount() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Expected 2 runs, got %d", n)
	}
}

func TestStoreRunIDUnique(t *testing.T) {
	store := openTestStore(t)

	r := Run{RunID: "same", Preset: "autopilot", Score: 1, Length: 4, Moves: 10, Outcome: "dead"}
	if _, err := store.SaveRun(r); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := store.SaveRun(r); err == nil {
		t.Error("Expected error saving a duplicate run ID")
	}
}

func TestStoreRunByID(t *testing.T) {
	store := openTestStore(t)
	runID := saveRun(t, store, "autopilot", 12, 250, "running")

	got, err := store.RunByID(runID)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got == nil || got.Score != 12 || got.Outcome != "running" {
		t.Errorf("Unexpected run: %+v", got)
	}

	missing, err := store.RunByID("nope")
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if missing != nil {
		t.Errorf("Expected nil for an unknown run, got %+v", missing)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	saveRun(t, store, "autopilot", 10, 100, "dead")
	saveRun(t, store, "autopilot_large", 20, 200, "dead")

	if err := store.ClearRuns("autopilot"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	if n, _ := store.RunCount("autopilot"); n != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", n)
	}
	if n, _ := store.RunCount("autopilot_large"); n != 1 {
		t.Error("Other presets should not be affected by clearing")
	}
}

func TestStoreAllStats(t *testing.T) {
	store := openTestStore(t)

	saveRun(t, store, "autopilot", 10, 100, "dead")
	saveRun(t, store, "autopilot", 61, 900, "full")
	saveRun(t, store, "autopilot_large", 20, 200, "dead")

	stats, err := store.AllStats()
	if err != nil {
		t.Fatalf("AllStats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Expected stats for 2 presets, got %d", len(stats))
	}

	ap := stats["autopilot"]
	if ap.Runs != 2 || ap.BestScore != 61 || ap.Filled != 1 {
		t.Errorf("Unexpected stats: %+v", ap)
	}
	if ap.AvgScore != 35.5 {
		t.Errorf("Expected average 35.5, got %v", ap.AvgScore)
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
