// Package audio gives keyboard feedback. A terminal can only ring its bell,
// so the screen beeps for the destructive and line-breaking keys and stays
// quiet for the rest.
package audio

// Player is called by the input dispatcher for each consumed key.
type Player interface {
	Insert()
	Delete()
	Return()
	Space()
	Nav()
}

// Nop plays nothing.
type Nop struct{}

func (Nop) Insert() {}
func (Nop) Delete() {}
func (Nop) Return() {}
func (Nop) Space()  {}
func (Nop) Nav()    {}

// Beeper is the part of tcell.Screen used here.
type Beeper interface {
	Beep() error
}

// Bell rings the terminal bell while Enabled.
type Bell struct {
	Enabled bool
	screen  Beeper
}

func NewBell(screen Beeper, enabled bool) *Bell {
	return &Bell{Enabled: enabled, screen: screen}
}

func (b *Bell) ring() {
	if b.Enabled && b.screen != nil {
		_ = b.screen.Beep()
	}
}

func (b *Bell) Insert() {}
func (b *Bell) Space()  {}
func (b *Bell) Nav()    {}
func (b *Bell) Delete() { b.ring() }
func (b *Bell) Return() { b.ring() }

// Toggle flips Enabled and returns the new value.
func (b *Bell) Toggle() bool {
	b.Enabled = !b.Enabled
	return b.Enabled
}
