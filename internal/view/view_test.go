package view

import (
	"math"
	"testing"
)

func newCamera() *Camera {
	return &Camera{Width: 40, Height: 23, Top: 3, Left: 4, MarginX: 4, MarginY: 2}
}

func TestCameraFollowEdgeScroll(t *testing.T) {
	c := newCamera()
	// text area is 36x20
	c.Follow(0, 17)
	if c.Y != 0 {
		t.Fatalf("Y = %d, want 0 inside margin", c.Y)
	}
	c.Follow(0, 18)
	if c.Y != 1 {
		t.Fatalf("Y = %d, want 1", c.Y)
	}
	c.Follow(0, 30)
	if c.Y != 13 {
		t.Fatalf("Y = %d, want 13", c.Y)
	}
	c.Follow(0, 14)
	if c.Y != 12 {
		t.Fatalf("Y = %d, want 12 after moving up past the margin", c.Y)
	}
	c.Follow(0, 0)
	if c.Y != 0 {
		t.Fatalf("Y = %d, want 0", c.Y)
	}
	c.Follow(40, 0)
	if c.X != 40-36+1+4 {
		t.Fatalf("X = %d, want %d", c.X, 40-36+1+4)
	}
}

func TestCameraOffsetsNeverNegative(t *testing.T) {
	c := newCamera()
	c.Follow(-5, -5)
	if c.X != 0 || c.Y != 0 {
		t.Fatalf("offset = (%d, %d), want (0, 0)", c.X, c.Y)
	}
	tiny := &Camera{Width: 5, Height: 4, Top: 3, Left: 4, MarginX: 4, MarginY: 2}
	tiny.Follow(3, 3)
	if tiny.X < 0 || tiny.Y < 0 {
		t.Fatalf("tiny offset = (%d, %d)", tiny.X, tiny.Y)
	}
}

func TestWorldToScreen(t *testing.T) {
	c := newCamera()
	c.X, c.Y = 2, 5
	x, y := c.WorldToScreen(2, 5)
	if x != 4 || y != 3 {
		t.Fatalf("WorldToScreen = (%d, %d), want (4, 3)", x, y)
	}
}

func TestVisibleRangeShiftsByOneLine(t *testing.T) {
	c := newCamera()
	first, last := c.VisibleRange(100)
	if first != 0 || last != 19 {
		t.Fatalf("range = [%d, %d], want [0, 19]", first, last)
	}
	c.Y++
	f2, l2 := c.VisibleRange(100)
	if f2 != first+1 || l2 != last+1 {
		t.Fatalf("range = [%d, %d], want [%d, %d]", f2, l2, first+1, last+1)
	}
	f3, l3 := c.VisibleRange(5)
	if f3 != 1 || l3 != 4 {
		t.Fatalf("short buffer range = [%d, %d], want [1, 4]", f3, l3)
	}
}

func TestSpringConverges(t *testing.T) {
	s := NewSpring2(0.45, 0.55)
	for i := 0; i < 200; i++ {
		s.Step(10, -3)
	}
	if !s.Settled(10, -3) {
		t.Fatalf("spring at (%v, %v), not settled", s.X.Pos, s.Y.Pos)
	}
	if x, y := s.Cell(); x != 10 || y != -3 {
		t.Fatalf("Cell = (%d, %d), want (10, -3)", x, y)
	}
}

func TestNewSpringClampsUnstableConstants(t *testing.T) {
	s := NewSpring(1, 5)
	if s.Stiffness*s.Damping >= 1 {
		t.Fatalf("stiffness*damping = %v, want < 1", s.Stiffness*s.Damping)
	}
	for i := 0; i < 2000; i++ {
		s.Step(1)
	}
	if math.IsNaN(s.Pos) || math.Abs(s.Pos) > 1e6 {
		t.Fatalf("spring diverged: %v", s.Pos)
	}
}

func TestVisualColAndGutter(t *testing.T) {
	line := []rune("\tab\tc")
	if got := VisualCol(line, 1, 4); got != 4 {
		t.Fatalf("VisualCol(1) = %d, want 4", got)
	}
	if got := VisualCol(line, 4, 4); got != 8 {
		t.Fatalf("VisualCol(4) = %d, want 8", got)
	}
	if got := VisualCol([]rune("日本"), 2, 4); got != 4 {
		t.Fatalf("wide VisualCol = %d, want 4", got)
	}
	if got := GutterWidth(1); got != 3 {
		t.Fatalf("GutterWidth(1) = %d, want 3", got)
	}
	if got := GutterWidth(101); got != 5 {
		t.Fatalf("GutterWidth(101) = %d, want 5", got)
	}
}
