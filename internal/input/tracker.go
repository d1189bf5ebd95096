package input

import (
	"sort"
	"time"

	"github.com/gdamore/tcell/v2"
)

const (
	// DefaultHoldWindow covers the gap between auto-repeat events of a held
	// key.
	DefaultHoldWindow = 120 * time.Millisecond
	// DefaultStreamGap is the longest gap between two events of one combo
	// that still counts as terminal auto-repeat. Separate taps of the same
	// key are slower than this.
	DefaultStreamGap = 60 * time.Millisecond
)

// Event is one key event. Char is the typed text for printable keys.
// Paste marks events between the bracketed paste markers.
type Event struct {
	Combo Combo
	Char  rune
	At    time.Time
	Paste bool
}

// Tracker turns the terminal's discrete key events into per-frame key
// state. A combo stays down while its events keep arriving within the hold
// window, and it is streaming while they arrive at auto-repeat pace.
// Events are handed out in arrival order.
type Tracker struct {
	HoldWindow time.Duration
	StreamGap  time.Duration

	lastSeen map[Combo]time.Time
	gap      map[Combo]time.Duration
	wasDown  map[Combo]bool
	queue    []Event
	pasting  bool
}

func NewTracker(hold time.Duration) *Tracker {
	if hold <= 0 {
		hold = DefaultHoldWindow
	}
	return &Tracker{
		HoldWindow: hold,
		StreamGap:  min(DefaultStreamGap, hold),
		lastSeen:   make(map[Combo]time.Time),
		gap:        make(map[Combo]time.Duration),
		wasDown:    make(map[Combo]bool),
	}
}

// Observe records a terminal key event.
func (t *Tracker) Observe(ev *tcell.EventKey) {
	c, ch := FromTcell(ev)
	t.ObserveAt(c, ch, ev.When())
}

// ObservePaste records a bracketed paste marker.
func (t *Tracker) ObservePaste(ev *tcell.EventPaste) {
	t.pasting = ev.Start()
}

// ObserveAt records a key event at an explicit time. A zero combo is
// ignored. Pasted events are queued as text and never count as held keys.
func (t *Tracker) ObserveAt(c Combo, ch rune, at time.Time) {
	if c == (Combo{}) {
		return
	}
	if t.pasting {
		if c == Ctrl('j') {
			// a pasted "\n" arrives as ctrl+j
			c = Plain(KeyEnter)
		}
		t.queue = append(t.queue, Event{Combo: c, Char: ch, At: at, Paste: true})
		return
	}
	if last, ok := t.lastSeen[c]; ok {
		t.gap[c] = at.Sub(last)
	} else {
		delete(t.gap, c)
	}
	t.lastSeen[c] = at
	t.queue = append(t.queue, Event{Combo: c, Char: ch, At: at})
}

// Snapshot freezes key state for one frame and takes the queued events.
func (t *Tracker) Snapshot(now time.Time) Snapshot {
	s := Snapshot{
		down:      make(map[Combo]bool, len(t.lastSeen)),
		pressed:   make(map[Combo]bool),
		streaming: make(map[Combo]bool),
		events:    t.queue,
	}
	t.queue = nil
	fresh := make(map[Combo]bool, len(s.events))
	for _, ev := range s.events {
		fresh[ev.Combo] = true
	}
	for c, at := range t.lastSeen {
		since := now.Sub(at)
		if !fresh[c] && since > t.HoldWindow {
			delete(t.lastSeen, c)
			delete(t.gap, c)
			continue
		}
		s.down[c] = true
		if !t.wasDown[c] {
			s.pressed[c] = true
		}
		if gap, ok := t.gap[c]; ok && gap <= t.StreamGap && since <= t.StreamGap {
			s.streaming[c] = true
		}
	}
	t.wasDown = s.down
	return s
}

// Reset forgets all held keys and queued events.
func (t *Tracker) Reset() {
	t.lastSeen = make(map[Combo]time.Time)
	t.gap = make(map[Combo]time.Duration)
	t.wasDown = make(map[Combo]bool)
	t.queue = nil
	t.pasting = false
}

// Snapshot is the key state of one frame.
type Snapshot struct {
	down      map[Combo]bool
	pressed   map[Combo]bool
	streaming map[Combo]bool
	events    []Event
}

// Down reports whether c is held this frame.
func (s Snapshot) Down(c Combo) bool {
	return s.down[c]
}

// Pressed reports whether c went down this frame.
func (s Snapshot) Pressed(c Combo) bool {
	return s.pressed[c]
}

// Streaming reports whether c is arriving at auto-repeat pace.
func (s Snapshot) Streaming(c Combo) bool {
	return s.streaming[c]
}

// Events returns the key events of this frame in arrival order.
func (s Snapshot) Events() []Event {
	return s.events
}

// Held returns every combo down this frame in a stable order.
func (s Snapshot) Held() []Combo {
	out := make([]Combo, 0, len(s.down))
	for c := range s.down {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	return out
}
