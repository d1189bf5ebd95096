package cursor

import (
	"unicode"
)

// Text is the read side of a buffer the cursor moves over.
type Text interface {
	LineCount() int
	Line(i int) string
	CharCount(i int) int
}

// Boundary selects how word jumps find the next stop.
type Boundary int

const (
	// Alnum stops at every change between alphanumeric and other chars.
	Alnum Boundary = iota
	// Whitespace stops at changes between whitespace and non-whitespace.
	Whitespace
)

// JumpLines is the step of Ctrl+Up/Down.
const JumpLines = 4

// Cursor is a zero-based (column, line) position. Col counts chars.
type Cursor struct {
	Col  int
	Line int

	fragment string
}

// Clamp pulls the cursor back inside t.
func (c *Cursor) Clamp(t Text) {
	n := t.LineCount()
	if n <= 0 {
		c.Line, c.Col = 0, 0
		return
	}
	if c.Line < 0 {
		c.Line = 0
	}
	if c.Line >= n {
		c.Line = n - 1
	}
	if c.Col < 0 {
		c.Col = 0
	}
	if n := t.CharCount(c.Line); c.Col > n {
		c.Col = n
	}
}

func (c *Cursor) MoveLeft(t Text) {
	c.Clamp(t)
	if c.Col > 0 {
		c.Col--
		return
	}
	if c.Line > 0 {
		c.Line--
		c.Col = t.CharCount(c.Line)
	}
}

func (c *Cursor) MoveRight(t Text) {
	c.Clamp(t)
	if c.Col < t.CharCount(c.Line) {
		c.Col++
		return
	}
	if c.Line+1 < t.LineCount() {
		c.Line++
		c.Col = 0
	}
}

// MoveUp keeps the column clamped to the destination line. On line 0 it
// moves to column 0.
func (c *Cursor) MoveUp(t Text) {
	c.Clamp(t)
	if c.Line == 0 {
		c.Col = 0
		return
	}
	c.Line--
	c.Col = min(c.Col, t.CharCount(c.Line))
}

func (c *Cursor) MoveDown(t Text) {
	c.Clamp(t)
	if c.Line+1 >= t.LineCount() {
		return
	}
	c.Line++
	c.Col = min(c.Col, t.CharCount(c.Line))
}

// JumpUp moves n lines up. Within the first line it goes to column 0.
func (c *Cursor) JumpUp(t Text, n int) {
	c.Clamp(t)
	if c.Line > n {
		c.Line -= n
	} else if c.Line <= 1 {
		c.Col = 0
	} else {
		c.Line = 0
	}
	c.Col = min(c.Col, t.CharCount(c.Line))
}

// JumpDown moves n lines down, stopping at the last line.
func (c *Cursor) JumpDown(t Text, n int) {
	c.Clamp(t)
	if c.Line+n < t.LineCount() {
		c.Line += n
	} else {
		c.Line = t.LineCount() - 1
	}
	c.Col = min(c.Col, t.CharCount(c.Line))
}

func (c *Cursor) LineStart(t Text) {
	c.Clamp(t)
	c.Col = 0
}

func (c *Cursor) LineEnd(t Text) {
	c.Clamp(t)
	c.Col = t.CharCount(c.Line)
}

// MoveWordLeft jumps to the start of the run left of the cursor. At column 0
// it wraps to the end of the previous line.
func (c *Cursor) MoveWordLeft(t Text, b Boundary) {
	c.Clamp(t)
	if c.Col == 0 {
		if c.Line > 0 {
			c.Line--
			c.Col = t.CharCount(c.Line)
		}
		return
	}
	c.Col -= DistanceLeft([]rune(t.Line(c.Line)), c.Col, b)
}

// MoveWordRight jumps past the run right of the cursor. At line end it wraps
// to the start of the next line.
func (c *Cursor) MoveWordRight(t Text, b Boundary) {
	c.Clamp(t)
	n := t.CharCount(c.Line)
	if c.Col >= n {
		if c.Line+1 < t.LineCount() {
			c.Line++
			c.Col = 0
		}
		return
	}
	c.Col += min(DistanceRight([]rune(t.Line(c.Line)), c.Col, b), n-c.Col)
}

// DistanceRight counts chars from col to the next class change.
func DistanceRight(line []rune, col int, b Boundary) int {
	if col < 0 {
		col = 0
	}
	if col >= len(line) {
		return 0
	}
	class := classOf(line[col], b)
	steps := 0
	for i := col; i < len(line) && classOf(line[i], b) == class; i++ {
		steps++
	}
	return steps
}

// DistanceLeft counts chars from col back to the previous class change.
func DistanceLeft(line []rune, col int, b Boundary) int {
	if col > len(line) {
		col = len(line)
	}
	if col <= 0 {
		return 0
	}
	class := classOf(line[col-1], b)
	steps := 0
	for i := col - 1; i >= 0 && classOf(line[i], b) == class; i-- {
		steps++
	}
	return steps
}

func classOf(r rune, b Boundary) bool {
	if b == Whitespace {
		return unicode.IsSpace(r)
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// WordBounds returns the [start, end) char range of the non-whitespace run
// touching col. An empty range means the cursor sits in whitespace.
func WordBounds(line []rune, col int) (int, int) {
	if col < 0 {
		col = 0
	}
	if col > len(line) {
		col = len(line)
	}
	start, end := col, col
	for start > 0 && !unicode.IsSpace(line[start-1]) {
		start--
	}
	for end < len(line) && !unicode.IsSpace(line[end]) {
		end++
	}
	return start, end
}

// RecognizeWordFragment recomputes the word under the cursor.
func (c *Cursor) RecognizeWordFragment(t Text) {
	c.Clamp(t)
	line := []rune(t.Line(c.Line))
	start, end := WordBounds(line, c.Col)
	c.fragment = string(line[start:end])
}

// Fragment is the run of non-whitespace chars containing the cursor, as of
// the last RecognizeWordFragment.
func (c *Cursor) Fragment() string {
	return c.fragment
}
