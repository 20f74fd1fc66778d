package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(12, 4)

	if s.Width() != 12 || s.Height() != 4 {
		t.Fatalf("size = %dx%d, expected 12x4", s.Width(), s.Height())
	}
	for y := range s.Height() {
		if s.Row(y) != strings.Repeat(" ", 12) {
			t.Errorf("row %d not blank: %q", y, s.Row(y))
		}
	}
}

func TestScreenSetColor(t *testing.T) {
	s := NewScreen(5, 5)

	s.SetColor(2, 3, '@', ColorGreen)
	cell := s.GetCell(2, 3)
	if cell.Rune != '@' || cell.Color != ColorGreen {
		t.Errorf("GetCell = %+v, expected green '@'", cell)
	}

	// Out of bounds is silent
	s.Set(-1, 0, 'x')
	s.Set(0, 5, 'x')
	if s.Get(-1, 0) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(10, 1)
	s.DrawText(7, 0, "score", ColorYellow)

	if got := s.Row(0); got != "       sco" {
		t.Errorf("Row = %q, text should be clipped", got)
	}
	if s.GetCell(8, 0).Color != ColorYellow {
		t.Error("text color not applied")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(6, 4)
	s.Set(2, 1, 'x')
	s.DrawBox(s.Bounds(), ColorGray)

	want := []string{
		"┌────┐",
		"│    │",
		"│    │",
		"└────┘",
	}
	if got := s.String(); got != strings.Join(want, "\n") {
		t.Errorf("box mismatch:\n%s", got)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(3, 3)
	s.Set(1, 1, 'x')
	s.Resize(4, 2)

	if s.Width() != 4 || s.Height() != 2 {
		t.Fatalf("size = %dx%d, expected 4x2", s.Width(), s.Height())
	}
	if s.Get(1, 1) != ' ' {
		t.Error("resize should clear the buffer")
	}
}

func TestRectCentered(t *testing.T) {
	r := NewRect(0, 0, 20, 10).Centered(6, 4)
	if r != NewRect(7, 3, 6, 4) {
		t.Errorf("Centered = %+v", r)
	}
	if !r.Contains(7, 3) || r.Contains(13, 3) {
		t.Error("Contains edges wrong")
	}
}

func TestClampAbs(t *testing.T) {
	if Clamp(-3, 0, 5) != 0 || Clamp(9, 0, 5) != 5 || Clamp(2, 0, 5) != 2 {
		t.Error("Clamp out of range")
	}
	if Abs(-4) != 4 || Abs(4) != 4 {
		t.Error("Abs wrong")
	}
}
