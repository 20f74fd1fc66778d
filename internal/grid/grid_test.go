package grid

import (
	"errors"
	"testing"
)

func TestWrap(t *testing.T) {
	g := New(5, 4, false)

	tests := []struct {
		name     string
		in, want Cell
	}{
		{"inside", Cell{2, 3}, Cell{2, 3}},
		{"left edge", Cell{-1, 0}, Cell{4, 0}},
		{"right edge", Cell{5, 1}, Cell{0, 1}},
		{"top edge", Cell{3, -1}, Cell{3, 3}},
		{"bottom edge", Cell{0, 4}, Cell{0, 0}},
		{"far negative", Cell{-11, -9}, Cell{4, 3}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := g.Wrap(tc.in); got != tc.want {
				t.Errorf("Wrap(%v) = %v, expected %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestBoundaryCollision(t *testing.T) {
	walled := New(3, 3, true)
	wrapped := New(3, 3, false)

	outside := Cell{3, 0}
	if !walled.BoundaryCollision(outside) {
		t.Error("walled grid should collide outside bounds")
	}
	if wrapped.BoundaryCollision(outside) {
		t.Error("wrapped grid should never report a boundary collision")
	}
	if walled.BoundaryCollision(Cell{2, 2}) {
		t.Error("cell inside bounds should not collide")
	}
}

func TestInBounds(t *testing.T) {
	g := New(4, 2, true)

	tests := []struct {
		c    Cell
		want bool
	}{
		{Cell{0, 0}, true},
		{Cell{3, 1}, true},
		{Cell{4, 1}, false},
		{Cell{3, 2}, false},
		{Cell{-1, 0}, false},
	}

	for _, tc := range tests {
		if got := g.InBounds(tc.c); got != tc.want {
			t.Errorf("InBounds(%v) = %v, expected %v", tc.c, got, tc.want)
		}
	}
}

func TestOccupiesBody(t *testing.T) {
	body := []Cell{{0, 0}, {0, 1}, {0, 2}}

	if !OccupiesBody(Cell{0, 0}, body, false) {
		t.Error("tail should count as occupied when not excluded")
	}
	if OccupiesBody(Cell{0, 0}, body, true) {
		t.Error("tail should be free when excluded")
	}
	if !OccupiesBody(Cell{0, 2}, body, true) {
		t.Error("head should always be occupied")
	}
	if OccupiesBody(Cell{1, 1}, body, false) {
		t.Error("empty cell reported as occupied")
	}
}

func TestOpposite(t *testing.T) {
	if !Opposite(MoveUp, MoveDown) || !Opposite(MoveLeft, MoveRight) {
		t.Error("expected up/down and left/right to be opposite")
	}
	if Opposite(MoveUp, MoveLeft) || Opposite(MoveRight, MoveRight) {
		t.Error("unexpected opposite pair")
	}
	for _, m := range Moves {
		if !Opposite(m, m.Reverse()) {
			t.Errorf("%v.Reverse() is not opposite", m)
		}
	}
}

func TestParseMove(t *testing.T) {
	for _, m := range Moves {
		got, err := ParseMove(m.String())
		if err != nil {
			t.Fatalf("ParseMove(%q) failed: %v", m.String(), err)
		}
		if got != m {
			t.Errorf("ParseMove(%q) = %v, expected %v", m.String(), got, m)
		}
	}

	if _, err := ParseMove("sideways"); err == nil {
		t.Error("expected error for unknown move")
	}
}

func TestManhattan(t *testing.T) {
	if d := Manhattan(Cell{0, 0}, Cell{3, -2}); d != 5 {
		t.Errorf("Manhattan = %d, expected 5", d)
	}
}

func TestValidate(t *testing.T) {
	if err := New(0, 3, false).Validate(); !errors.Is(err, ErrInvalidGrid) {
		t.Errorf("expected ErrInvalidGrid, got %v", err)
	}
	if err := New(2, 2, true).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestStepWrapsOnlyWhenOpen(t *testing.T) {
	if got := New(3, 3, false).Step(Cell{2, 0}, MoveRight); got != (Cell{0, 0}) {
		t.Errorf("wrapped step = %v, expected (0,0)", got)
	}
	if got := New(3, 3, true).Step(Cell{2, 0}, MoveRight); got != (Cell{3, 0}) {
		t.Errorf("walled step = %v, expected (3,0)", got)
	}
}
