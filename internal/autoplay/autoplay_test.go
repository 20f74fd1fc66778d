package autoplay

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/snake-autopilot/internal/config"
	"github.com/vovakirdan/snake-autopilot/internal/core"
	"github.com/vovakirdan/snake-autopilot/internal/grid"
	"github.com/vovakirdan/snake-autopilot/internal/registry"
	"github.com/vovakirdan/snake-autopilot/internal/snake"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func column(g grid.Grid) snake.State {
	return snake.New(g, []grid.Cell{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}}, grid.MoveDown)
}

func TestBoardFoodOnFreeCell(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		b := NewBoard(column(grid.New(5, 5, false)), seed)
		st := b.State()
		require.True(t, st.HasFood)
		assert.NotContains(t, st.Body, st.Food, "seed %d", seed)
	}
}

func TestBoardSameSeedSameGame(t *testing.T) {
	a := NewBoard(column(grid.New(6, 6, false)), 42)
	b := NewBoard(column(grid.New(6, 6, false)), 42)

	for range 30 {
		assert.Equal(t, a.State(), b.State())
		a.Step(grid.MoveRight)
		b.Step(grid.MoveRight)
	}
}

func TestBoardEatsAndFills(t *testing.T) {
	b := NewBoard(snake.New(grid.New(2, 1, true), []grid.Cell{{X: 0, Y: 0}}, grid.MoveRight), 1)
	require.Equal(t, grid.Cell{X: 1, Y: 0}, b.State().Food)

	assert.Equal(t, OutcomeFull, b.Step(grid.MoveRight))
	assert.Equal(t, 1, b.Score())
	assert.Equal(t, 2, b.Length())
	assert.False(t, b.State().HasFood)

	// Finished boards ignore further moves
	b.Step(grid.MoveLeft)
	assert.Equal(t, 1, b.Moves())
}

func TestBoardDeath(t *testing.T) {
	b := NewBoard(column(grid.New(4, 4, true)), 3)
	b.SetFood(grid.Cell{X: 3, Y: 3})

	assert.Equal(t, OutcomeRunning, b.Step(grid.MoveDown))
	assert.Equal(t, OutcomeDead, b.Step(grid.MoveDown))
	assert.Equal(t, "dead", b.Outcome().String())
	assert.Equal(t, 2, b.Moves())
}

func TestPrecomputerRespectsLookahead(t *testing.T) {
	p := NewPrecomputer(column(grid.New(8, 8, false)), 9, 2, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- p.Run(ctx) }()

	require.Eventually(t, func() bool { return p.Pending() == 2 }, 2*time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 2, p.Pending())

	_, ok := p.Next()
	require.True(t, ok)
	require.Eventually(t, func() bool { return p.Pending() == 2 }, 2*time.Second, time.Millisecond)

	cancel()
	select {
	case err := <-errc:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("producer did not stop")
	}
	assert.ErrorIs(t, p.Err(), context.Canceled)
}

func TestPrecomputerFinishesOnFullBoard(t *testing.T) {
	p := NewPrecomputer(snake.New(grid.New(2, 1, true), []grid.Cell{{X: 0, Y: 0}}, grid.MoveRight), 1, 4, quietLogger())
	require.NoError(t, p.Run(context.Background()))

	seg, ok := p.Wait(context.Background())
	require.True(t, ok)
	assert.Equal(t, []grid.Move{grid.MoveRight}, seg.Path)
	assert.Equal(t, grid.Cell{X: 1, Y: 0}, seg.Food)

	_, ok = p.Wait(context.Background())
	assert.False(t, ok)
	assert.True(t, p.Done())
}

func runConfig(precompute bool, maxMoves int) RunConfig {
	cfg := config.DefaultConfig()
	cfg.Play.Precompute = precompute
	cfg.Play.MaxMoves = maxMoves
	return RunConfig{Preset: "autopilot", Config: cfg, Seed: 2024}
}

func TestRunPrecomputeMatchesLive(t *testing.T) {
	live, err := Run(context.Background(), runConfig(false, 3000), quietLogger())
	require.NoError(t, err)
	pre, err := Run(context.Background(), runConfig(true, 3000), quietLogger())
	require.NoError(t, err)

	assert.Equal(t, live.Score, pre.Score)
	assert.Equal(t, live.Moves, pre.Moves)
	assert.Equal(t, live.Outcome, pre.Outcome)
	assert.Equal(t, live.Strategies, pre.Strategies)
	assert.NotEqual(t, live.ID, pre.ID)
}

func TestRunResult(t *testing.T) {
	res, err := Run(context.Background(), runConfig(false, 500), quietLogger())
	require.NoError(t, err)

	assert.LessOrEqual(t, res.Moves, 500)
	assert.Equal(t, 3+res.Score, res.Length)
	assert.Positive(t, res.Score)
	assert.NotEmpty(t, res.ID)
	if res.Outcome == OutcomeRunning {
		assert.Equal(t, 500, res.Moves)
	}

	total := 0
	for _, n := range res.Strategies {
		total += n
	}
	assert.Positive(t, total)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Run(ctx, runConfig(true, 0), quietLogger())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, res.Moves)
}

func TestRunInvalidConfig(t *testing.T) {
	rc := runConfig(false, 10)
	rc.Config.Snake.Heading = "north"
	_, err := Run(context.Background(), rc, quietLogger())
	assert.Error(t, err)
}

func TestPresetsRegistered(t *testing.T) {
	for _, p := range Presets {
		assert.True(t, registry.Exists(p.ID), p.ID)
		cfg, err := ConfigFor(p)
		require.NoError(t, err, p.ID)
		assert.Equal(t, p.Walled || baseConfig.Board.Walled, cfg.Board.Walled)
	}

	_, ok := FindPreset("autopilot_large")
	assert.True(t, ok)
	_, ok = FindPreset("tetris")
	assert.False(t, ok)
}

func liveGame(t *testing.T) {
	t.Helper()
	prev := baseConfig
	cfg := config.DefaultConfig()
	cfg.Play.Precompute = false
	SetConfig(cfg)
	SetLogger(quietLogger())
	t.Cleanup(func() { SetConfig(prev) })
}

func TestGameDeterminism(t *testing.T) {
	liveGame(t)

	g1, err := registry.Create("autopilot")
	require.NoError(t, err)
	g2, err := registry.Create("autopilot")
	require.NoError(t, err)

	rc := core.RuntimeConfig{Seed: 12345, ScreenW: 80, ScreenH: 24}
	g1.Reset(rc)
	g2.Reset(rc)

	in := core.NewInputFrame()
	for range 200 {
		g1.Step(in)
		g2.Step(in)
	}

	s1, s2 := g1.State(), g2.State()
	assert.Equal(t, s1, s2)
	if !s1.GameOver {
		assert.Equal(t, 100, s1.Moves)
	}
	assert.Equal(t, 3+s1.Score, s1.Length)
}

func TestGamePause(t *testing.T) {
	liveGame(t)

	g := New(Presets[0])
	g.Reset(core.RuntimeConfig{Seed: 1})

	in := core.NewInputFrame()
	in.Set(core.ActionPause)
	g.Step(in)
	in.Clear()
	for range 10 {
		g.Step(in)
	}
	assert.True(t, g.State().Paused)
	assert.Zero(t, g.State().Moves)

	in.Set(core.ActionPause)
	g.Step(in)
	in.Clear()
	g.Step(in)
	assert.Equal(t, 1, g.State().Moves)
}

func TestGamePrecomputeMode(t *testing.T) {
	SetLogger(quietLogger())
	g := New(Presets[0])
	g.Reset(core.RuntimeConfig{Seed: 5})
	defer g.Close()

	in := core.NewInputFrame()
	require.Eventually(t, func() bool {
		g.Step(in)
		return g.State().Moves >= 10 || g.State().GameOver
	}, 5*time.Second, time.Millisecond)
}

func TestGameRender(t *testing.T) {
	liveGame(t)

	g := New(Presets[0])
	g.Reset(core.RuntimeConfig{Seed: 1})
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	assert.Contains(t, out, "Autopilot")
	assert.Contains(t, out, "██")
	assert.Contains(t, out, "●●")

	small := core.NewScreen(30, 8)
	g.Render(small)
	assert.Contains(t, small.String(), "Window too small")
}
