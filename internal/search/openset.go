package search

import (
	"container/heap"

	"github.com/vovakirdan/snake-autopilot/internal/grid"
)

// node is one search state. Nodes live in an arena slice and refer to their
// parent by index; they are never modified after being appended.
type node struct {
	pos    grid.Cell
	body   []grid.Cell // Simulated body at this node, tail first
	move   grid.Move   // Move taken from the parent
	parent int         // Arena index of the parent, -1 for the root
	g      int         // Steps from the start
	h      int         // Manhattan distance to the goal
}

func (n node) f() int {
	return n.g + n.h
}

// openSet is a binary heap of arena indices ordered by f, then h, then
// insertion order.
type openSet struct {
	nodes *[]node
	items []int
}

var _ heap.Interface = (*openSet)(nil)

func newOpenSet(nodes *[]node) *openSet {
	return &openSet{nodes: nodes}
}

func (o *openSet) at(i int) node {
	return (*o.nodes)[o.items[i]]
}

func (o *openSet) Len() int { return len(o.items) }

func (o *openSet) Less(i, j int) bool {
	a, b := o.at(i), o.at(j)
	if a.f() != b.f() {
		return a.f() < b.f()
	}
	if a.h != b.h {
		return a.h < b.h
	}
	return o.items[i] < o.items[j]
}

func (o *openSet) Swap(i, j int) { o.items[i], o.items[j] = o.items[j], o.items[i] }

func (o *openSet) Push(x any) { o.items = append(o.items, x.(int)) }

func (o *openSet) Pop() any {
	n := len(o.items)
	x := o.items[n-1]
	o.items = o.items[:n-1]
	return x
}

// find returns the heap position of the open node at pos, or -1.
// A linear scan is fine for the board sizes the planner runs on.
func (o *openSet) find(pos grid.Cell) int {
	for i := range o.items {
		if o.at(i).pos == pos {
			return i
		}
	}
	return -1
}
