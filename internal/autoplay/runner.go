package autoplay

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/snake-autopilot/internal/config"
	"github.com/vovakirdan/snake-autopilot/internal/planner"
)

// RunConfig describes one headless game.
type RunConfig struct {
	Preset string
	Config config.Config
	Seed   int64
}

// RunResult summarizes a finished headless game.
type RunResult struct {
	ID         string
	Preset     string
	Seed       int64
	Score      int
	Length     int
	Moves      int
	Outcome    Outcome
	Strategies map[planner.Strategy]int // Decisions per strategy
	Duration   time.Duration
}

// Run plays a game without rendering until the snake dies, fills the board
// or reaches max_moves. A cancelled ctx stops the game early; the partial
// result is returned together with the context error.
func Run(ctx context.Context, rc RunConfig, logger *log.Logger) (RunResult, error) {
	if logger == nil {
		logger = log.Default()
	}

	res := RunResult{
		ID:         uuid.NewString(),
		Preset:     rc.Preset,
		Seed:       rc.Seed,
		Strategies: make(map[planner.Strategy]int),
	}

	start, err := rc.Config.StartState()
	if err != nil {
		return res, err
	}

	began := time.Now()
	rng := rand.New(rand.NewSource(rc.Seed))
	seed := rng.Int63()
	board := NewBoard(start, seed)
	maxMoves := rc.Config.Play.MaxMoves

	var pre *Precomputer
	if rc.Config.Play.Precompute {
		pctx, cancel := context.WithCancel(ctx)
		defer cancel()
		pre = NewPrecomputer(start, seed, rc.Config.Play.Lookahead, logger)
		pre.Start(pctx)
	}

	finish := func() RunResult {
		res.Score = board.Score()
		res.Length = board.Length()
		res.Moves = board.Moves()
		res.Outcome = board.Outcome()
		res.Duration = time.Since(began)
		return res
	}

	last := planner.Strategy(-1)
	for board.Outcome() == OutcomeRunning {
		if err := ctx.Err(); err != nil {
			return finish(), err
		}
		if maxMoves > 0 && board.Moves() >= maxMoves {
			break
		}

		var seg Segment
		if pre != nil {
			next, ok := pre.Wait(ctx)
			if !ok {
				if err := ctx.Err(); err != nil {
					return finish(), err
				}
				if err := pre.Err(); err != nil {
					return finish(), err
				}
				// Producer ended early; plan the rest live
				pre = nil
				continue
			}
			seg = next
		} else {
			st := board.State()
			d, err := planner.Decide(st)
			if err != nil {
				return finish(), fmt.Errorf("autoplay: run %s: %w", res.ID, err)
			}
			seg = Segment{Food: st.Food, HasFood: st.HasFood, Path: d.Path, Strategy: d.Strategy}
		}

		res.Strategies[seg.Strategy]++
		if seg.Strategy != last {
			logger.Debug("strategy switch", "run", res.ID, "to", seg.Strategy, "moves", board.Moves(), "score", board.Score())
			last = seg.Strategy
		}

		if maxMoves > 0 && board.Moves()+len(seg.Path) > maxMoves {
			seg.Path = seg.Path[:maxMoves-board.Moves()]
		}
		apply(board, seg)
	}

	res = finish()
	logger.Info("run finished",
		"run", res.ID, "preset", res.Preset, "outcome", res.Outcome,
		"score", res.Score, "length", res.Length, "moves", res.Moves, "took", res.Duration)
	return res, nil
}
