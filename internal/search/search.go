// Package search finds minimum-step move sequences for the snake.
//
// The search is best-first on f = g + h, where g is the number of steps taken
// and h the Manhattan distance to the goal, ties broken by the smaller h.
// Every node carries the body as it would look after the moves leading to it,
// so cells the snake vacates along the way become usable and cells it
// occupies block later steps.
//
// Search is the single search routine. FoodPath and TailPath are its two call
// sites: a food search accepts a goal hit only if the snake can still reach
// its own tail after eating, which TailPath checks on the projected state.
package search

import (
	"container/heap"
	"errors"
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/snake-autopilot/internal/grid"
	"github.com/vovakirdan/snake-autopilot/internal/snake"
)

// ErrGoalOutOfBounds is returned when the goal cell lies outside the grid.
var ErrGoalOutOfBounds = errors.New("search: goal outside grid")

// Query parameterizes a search.
type Query struct {
	Goal grid.Cell

	// SimulateMovement retracts the tail on every step, as in real play.
	// When false the body only grows, which freezes everything the snake
	// has covered; tail checks use this mode.
	SimulateMovement bool

	// MaxSteps prunes nodes at this depth. Zero means twice the cell count.
	MaxSteps int

	// NoReverse skips the move opposite to the snake's heading at each node:
	// the state heading at the start, the move that led there afterwards.
	// Real play turns such a move into a straight one.
	NoReverse bool
}

// Result is the outcome of a search. A search that finds nothing is not an
// error: Found is false and Path is nil.
type Result struct {
	Path     []grid.Move
	Found    bool
	Expanded int // Nodes popped within the step budget
	Deepest  int // Largest g among those nodes
}

// acceptFunc decides whether a path that reaches the goal may be returned.
type acceptFunc func(path []grid.Move) bool

type closedKey struct {
	pos grid.Cell
	g   int
}

// Search runs a plain search from the head of s to q.Goal.
func Search(s snake.State, q Query) (Result, error) {
	return run(s, q, nil)
}

// FoodPath searches for a path from the head to the food that leaves the
// snake able to reach its tail afterwards. Each candidate is replayed with
// State.Follow, which turns a reversal into a straight move, and is kept only
// if the replayed snake is alive, has eaten and can still reach its tail.
// Rejected candidates are discarded and the search continues with the
// remaining open nodes. A state without food yields an empty result.
func FoodPath(s snake.State) (Result, error) {
	if err := s.Validate(); err != nil {
		return Result{}, err
	}
	if !s.HasFood {
		return Result{}, nil
	}

	q := Query{Goal: s.Food, SimulateMovement: true, NoReverse: true}
	return run(s, q, func(path []grid.Move) bool {
		end := s.Follow(path)
		return !end.Dead && end.Eaten > s.Eaten && end.Head() == s.Food && TailReachable(end)
	})
}

// TailPath searches for a path from the head to the current tail with the
// body frozen in place.
func TailPath(s snake.State) (Result, error) {
	if err := s.Validate(); err != nil {
		return Result{}, err
	}
	return run(s, Query{Goal: s.Tail()}, nil)
}

// TailReachable reports whether TailPath finds a path for s.
func TailReachable(s snake.State) bool {
	res, err := TailPath(s)
	return err == nil && res.Found
}

func run(s snake.State, q Query, accept acceptFunc) (Result, error) {
	if err := s.Validate(); err != nil {
		return Result{}, err
	}
	if !s.Grid.InBounds(q.Goal) {
		return Result{}, fmt.Errorf("%w: %v", ErrGoalOutOfBounds, q.Goal)
	}

	maxSteps := q.MaxSteps
	if maxSteps <= 0 {
		maxSteps = s.Grid.CellCount() * 2
	}

	nodes := make([]node, 0, s.Grid.CellCount())
	open := newOpenSet(&nodes)
	closed := mapset.New[closedKey]()

	start := s.Head()
	nodes = append(nodes, node{
		pos:    start,
		body:   append([]grid.Cell(nil), s.Body...),
		parent: -1,
		h:      grid.Manhattan(start, q.Goal),
	})
	heap.Push(open, 0)

	var res Result
	for open.Len() > 0 {
		idx := heap.Pop(open).(int)
		cur := nodes[idx]
		closed.Put(closedKey{pos: cur.pos, g: cur.g})

		if cur.g >= maxSteps {
			continue
		}
		res.Expanded++
		res.Deepest = max(res.Deepest, cur.g)

		if cur.pos == q.Goal {
			path := reconstruct(nodes, idx)
			if accept != nil && !accept(path) {
				continue
			}
			res.Path = path
			res.Found = true
			return res, nil
		}

		heading := s.Heading
		if cur.parent >= 0 {
			heading = cur.move
		}

		for _, m := range grid.Moves {
			if q.NoReverse && grid.Opposite(m, heading) {
				continue
			}

			next := cur.pos.Add(m)
			if s.Grid.Walled {
				if s.Grid.BoundaryCollision(next) || grid.OccupiesBody(next, cur.body, true) {
					continue
				}
			} else {
				next = s.Grid.Wrap(next)
			}

			if grid.OccupiesBody(next, cur.body, true) {
				continue
			}

			g := cur.g + 1
			if closed.Has(closedKey{pos: next, g: g}) {
				continue
			}

			body := make([]grid.Cell, 0, len(cur.body)+1)
			if q.SimulateMovement {
				body = append(body, cur.body[1:]...)
			} else {
				body = append(body, cur.body...)
			}
			body = append(body, next)

			// Keep at most one open node per cell, preferring the cheaper one
			if at := open.find(next); at >= 0 {
				if g >= open.at(at).g {
					continue
				}
				heap.Remove(open, at)
			}

			nodes = append(nodes, node{
				pos:    next,
				body:   body,
				move:   m,
				parent: idx,
				g:      g,
				h:      grid.Manhattan(next, q.Goal),
			})
			heap.Push(open, len(nodes)-1)
		}
	}

	return res, nil
}

// reconstruct walks parent links from idx back to the root and returns the
// moves in start-to-goal order.
func reconstruct(nodes []node, idx int) []grid.Move {
	path := make([]grid.Move, 0, nodes[idx].g)
	for i := idx; nodes[i].parent >= 0; i = nodes[i].parent {
		path = append(path, nodes[i].move)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
