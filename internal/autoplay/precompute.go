package autoplay

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snake-autopilot/internal/grid"
	"github.com/vovakirdan/snake-autopilot/internal/planner"
	"github.com/vovakirdan/snake-autopilot/internal/snake"
)

// Segment is one planner decision together with the food it was made for.
type Segment struct {
	Food     grid.Cell
	HasFood  bool
	Path     []grid.Move
	Strategy planner.Strategy
}

// Precomputer plans a game ahead of playback on its own goroutine.
//
// It plays a private copy of the board, pushing each decision onto a bounded
// queue. The consumer replays segments in order on its own board, setting the
// food from the segment first so both boards stay identical.
type Precomputer struct {
	board  *Board
	limit  int
	logger *log.Logger

	mu    sync.Mutex
	queue []Segment
	done  bool
	err   error

	space chan struct{} // Signalled when the consumer takes a segment
	ready chan struct{} // Signalled when a segment is pushed or the producer stops
}

// NewPrecomputer creates a precomputer for a game starting at start.
// lookahead bounds the number of segments waiting to be consumed.
func NewPrecomputer(start snake.State, seed int64, lookahead int, logger *log.Logger) *Precomputer {
	if logger == nil {
		logger = log.Default()
	}
	return &Precomputer{
		board:  NewBoard(start, seed),
		limit:  max(1, lookahead),
		logger: logger,
		space:  make(chan struct{}, 1),
		ready:  make(chan struct{}, 1),
	}
}

// Start runs the producer on a new goroutine until the virtual game ends or
// ctx is cancelled.
func (p *Precomputer) Start(ctx context.Context) {
	go func() {
		if err := p.Run(ctx); err != nil && ctx.Err() == nil {
			p.logger.Error("precompute stopped", "err", err)
		}
	}()
}

// Run is the producer loop. It blocks while the queue is full.
func (p *Precomputer) Run(ctx context.Context) error {
	err := p.produce(ctx)
	p.finish(err)
	return err
}

func (p *Precomputer) produce(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if p.board.Outcome() != OutcomeRunning {
			p.logger.Debug("precompute finished",
				"outcome", p.board.Outcome(), "score", p.board.Score(), "moves", p.board.Moves())
			return nil
		}

		if p.Pending() >= p.limit {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-p.space:
				continue
			}
		}

		st := p.board.State()
		d, err := planner.Decide(st)
		if err != nil {
			return fmt.Errorf("autoplay: precompute: %w", err)
		}

		p.push(Segment{Food: st.Food, HasFood: st.HasFood, Path: d.Path, Strategy: d.Strategy})

		for _, m := range d.Path {
			if p.board.Step(m) != OutcomeRunning {
				break
			}
		}
	}
}

func (p *Precomputer) push(seg Segment) {
	p.mu.Lock()
	p.queue = append(p.queue, seg)
	p.mu.Unlock()
	signal(p.ready)
}

func (p *Precomputer) finish(err error) {
	p.mu.Lock()
	p.done = true
	p.err = err
	p.mu.Unlock()
	signal(p.ready)
}

// Next pops the oldest segment without blocking.
func (p *Precomputer) Next() (Segment, bool) {
	p.mu.Lock()
	if len(p.queue) == 0 {
		p.mu.Unlock()
		return Segment{}, false
	}
	seg := p.queue[0]
	p.queue = p.queue[1:]
	p.mu.Unlock()

	signal(p.space)
	return seg, true
}

// Wait blocks until a segment is available. It returns false once the
// producer has stopped and the queue is drained, or when ctx is cancelled.
func (p *Precomputer) Wait(ctx context.Context) (Segment, bool) {
	for {
		if seg, ok := p.Next(); ok {
			return seg, true
		}
		if p.Done() {
			return Segment{}, false
		}
		select {
		case <-ctx.Done():
			return Segment{}, false
		case <-p.ready:
		}
	}
}

// Pending returns the number of segments waiting.
func (p *Precomputer) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.queue)
}

// Done reports whether the producer has stopped and every segment was taken.
func (p *Precomputer) Done() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done && len(p.queue) == 0
}

// Err returns the error the producer stopped with, if any.
func (p *Precomputer) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// signal does a non-blocking send on a one-slot channel.
func signal(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

// apply replays a segment on b and returns the outcome.
func apply(b *Board, seg Segment) Outcome {
	if seg.HasFood {
		b.SetFood(seg.Food)
	}
	for _, m := range seg.Path {
		if b.Step(m) != OutcomeRunning {
			break
		}
	}
	return b.Outcome()
}
