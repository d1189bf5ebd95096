package console

import (
	"unicode"

	"github.com/kobzarvs/muse/internal/view"
	"github.com/kobzarvs/muse/internal/workspace"
)

const (
	ResizeStep = 3
	MinWidth   = 20
)

// Console is the directive line docked at the right edge of the screen, plus
// the message overlay that directive results are shown in.
type Console struct {
	Open bool

	text   []rune
	cursor int

	message string
	manual  bool

	target      int
	widthSpring view.Spring
	caret       view.Spring
}

func New(width int, widthSpring, caretSpring view.Spring) *Console {
	c := &Console{target: max(width, MinWidth), widthSpring: widthSpring, caret: caretSpring}
	c.widthSpring.Snap(float64(c.target))
	return c
}

func (c *Console) Text() string { return string(c.text) }

// Col is the char index of the directive cursor.
func (c *Console) Col() int { return c.cursor }

// Stage replaces the directive with text, cursor at the end, and opens the
// console.
func (c *Console) Stage(text string) {
	c.text = []rune(text)
	c.cursor = len(c.text)
	c.Open = true
}

func (c *Console) Clear() {
	c.text = nil
	c.cursor = 0
}

// Insert types r at the cursor. Control characters are ignored.
func (c *Console) Insert(r rune) bool {
	if unicode.IsControl(r) {
		return false
	}
	c.text = append(c.text, 0)
	copy(c.text[c.cursor+1:], c.text[c.cursor:])
	c.text[c.cursor] = r
	c.cursor++
	return true
}

func (c *Console) Backspace() bool {
	if c.cursor == 0 {
		return false
	}
	c.text = append(c.text[:c.cursor-1], c.text[c.cursor:]...)
	c.cursor--
	return true
}

func (c *Console) Delete() bool {
	if c.cursor >= len(c.text) {
		return false
	}
	c.text = append(c.text[:c.cursor], c.text[c.cursor+1:]...)
	return true
}

func (c *Console) Left() bool {
	if c.cursor == 0 {
		return false
	}
	c.cursor--
	return true
}

func (c *Console) Right() bool {
	if c.cursor >= len(c.text) {
		return false
	}
	c.cursor++
	return true
}

func (c *Console) Home() { c.cursor = 0 }
func (c *Console) End()  { c.cursor = len(c.text) }

// Complete swaps the query part of the directive for match.
func (c *Console) Complete(match string) bool {
	if match == "" {
		return false
	}
	c.Stage(workspace.Complete(string(c.text), match))
	return true
}

// Resize moves the target width by steps of ResizeStep columns, clamped to
// [MinWidth, screenWidth].
func (c *Console) Resize(steps, screenWidth int) {
	c.target = clampWidth(c.target+steps*ResizeStep, screenWidth)
}

func clampWidth(w, screenWidth int) int {
	if screenWidth < MinWidth {
		screenWidth = MinWidth
	}
	return min(max(w, MinWidth), screenWidth)
}

func (c *Console) TargetWidth() int { return c.target }

// Width is the animated panel width for this frame.
func (c *Console) Width(screenWidth int) int {
	return clampWidth(c.widthSpring.Cell(), screenWidth)
}

// Animate advances the width and caret springs by one frame.
func (c *Console) Animate(screenWidth, tabWidth int) {
	c.target = clampWidth(c.target, screenWidth)
	c.widthSpring.Step(float64(c.target))
	c.caret.Step(float64(c.CaretTarget(tabWidth)))
}

// CaretTarget is the visual column the caret springs toward.
func (c *Console) CaretTarget(tabWidth int) int {
	return view.VisualCol(c.text, c.cursor, tabWidth)
}

// Caret is the animated caret column.
func (c *Console) Caret() int { return c.caret.Cell() }

// ShowMessage puts msg in the overlay. An empty message clears it.
func (c *Console) ShowMessage(msg string, manual bool) {
	c.message = msg
	c.manual = manual && msg != ""
}

func (c *Console) DismissMessage() {
	c.message = ""
	c.manual = false
}

func (c *Console) Message() (string, bool) { return c.message, c.manual }

func (c *Console) HasMessage() bool { return c.message != "" }
