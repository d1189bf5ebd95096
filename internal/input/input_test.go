package input

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func TestComboStringRoundTrip(t *testing.T) {
	for _, s := range []string{"ctrl+d", "shift+up", "ctrl+shift+down", "alt+left", "backspace", "space", "ctrl+`", "ctrl+=", "tab"} {
		c, err := ParseCombo(s)
		if err != nil {
			t.Fatalf("ParseCombo(%q) error: %v", s, err)
		}
		if got := c.String(); got != s {
			t.Fatalf("ParseCombo(%q).String() = %q", s, got)
		}
	}
	if _, err := ParseCombo("ctrl+nope"); err == nil {
		t.Fatalf("ParseCombo accepted unknown key")
	}
}

func TestFromTcell(t *testing.T) {
	cases := []struct {
		ev   *tcell.EventKey
		want Combo
		char rune
	}{
		{tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), Plain('a'), 'a'},
		{tcell.NewEventKey(tcell.KeyRune, 'A', tcell.ModShift), Plain('A'), 'A'},
		{tcell.NewEventKey(tcell.KeyCtrlD, 0, tcell.ModCtrl), Ctrl('d'), 0},
		{tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), Plain(KeyTab), 0},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), Plain(KeyEnter), 0},
		{tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), Plain(KeyBackspace), 0},
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModShift), Shift(KeyUp), 0},
		{tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModCtrl|tcell.ModShift), CtrlShift(KeyDown), 0},
		{tcell.NewEventKey(tcell.KeyNUL, 0, tcell.ModCtrl), Ctrl('`'), 0},
	}
	for _, tc := range cases {
		got, ch := FromTcell(tc.ev)
		if got != tc.want || ch != tc.char {
			t.Fatalf("FromTcell(%v) = %v %q, want %v %q", tc.ev.Name(), got, ch, tc.want, tc.char)
		}
	}
}

func TestTrackerHoldWindow(t *testing.T) {
	tr := NewTracker(100 * time.Millisecond)
	t0 := time.Unix(0, 0)
	up := Plain(KeyUp)

	tr.ObserveAt(up, 0, t0)
	s := tr.Snapshot(t0.Add(10 * time.Millisecond))
	if !s.Down(up) || !s.Pressed(up) {
		t.Fatalf("first frame down=%v pressed=%v, want true true", s.Down(up), s.Pressed(up))
	}
	s = tr.Snapshot(t0.Add(50 * time.Millisecond))
	if !s.Down(up) || s.Pressed(up) {
		t.Fatalf("held frame down=%v pressed=%v, want true false", s.Down(up), s.Pressed(up))
	}
	s = tr.Snapshot(t0.Add(200 * time.Millisecond))
	if s.Down(up) {
		t.Fatalf("key still down after hold window")
	}
	tr.ObserveAt(up, 0, t0.Add(210*time.Millisecond))
	s = tr.Snapshot(t0.Add(215 * time.Millisecond))
	if !s.Pressed(up) {
		t.Fatalf("second press not reported")
	}
}

func TestTrackerKeepsArrivalOrder(t *testing.T) {
	tr := NewTracker(0)
	t0 := time.Unix(0, 0)
	tr.ObserveAt(Plain('x'), 'x', t0)
	tr.ObserveAt(Plain(KeyEnter), 0, t0)
	tr.ObserveAt(Plain('y'), 'y', t0)
	evs := tr.Snapshot(t0).Events()
	if len(evs) != 3 || evs[0].Char != 'x' || evs[1].Combo != Plain(KeyEnter) || evs[2].Char != 'y' {
		t.Fatalf("events = %+v", evs)
	}
	if evs := tr.Snapshot(t0.Add(time.Millisecond)).Events(); len(evs) != 0 {
		t.Fatalf("events handed out twice: %+v", evs)
	}
}

func TestTrackerPaste(t *testing.T) {
	tr := NewTracker(0)
	t0 := time.Unix(0, 0)
	tr.ObservePaste(tcell.NewEventPaste(true))
	tr.ObserveAt(Plain('a'), 'a', t0)
	tr.ObserveAt(Ctrl('j'), 0, t0)
	tr.ObservePaste(tcell.NewEventPaste(false))
	tr.ObserveAt(Plain('b'), 'b', t0)

	s := tr.Snapshot(t0)
	evs := s.Events()
	if len(evs) != 3 || !evs[0].Paste || evs[1].Combo != Plain(KeyEnter) || !evs[1].Paste || evs[2].Paste {
		t.Fatalf("events = %+v", evs)
	}
	if s.Down(Plain(KeyEnter)) {
		t.Fatalf("pasted newline counts as a held key")
	}
}

// drive feeds events at the given offsets through 16ms frames until end and
// returns the clock offsets of every activation of c.
func drive(tr *Tracker, rep *Repeat, c Combo, events []time.Duration, end time.Duration) []time.Duration {
	const frame = 16 * time.Millisecond
	t0 := time.Unix(0, 0)
	var fired []time.Duration
	next := 0
	for now := frame; now <= end; now += frame {
		for next < len(events) && events[next] <= now {
			tr.ObserveAt(c, 0, t0.Add(events[next]))
			next++
		}
		s := tr.Snapshot(t0.Add(now))
		rep.Advance(s, frame)
		for _, a := range rep.Activations(s) {
			if a.Combo == c {
				fired = append(fired, now)
			}
		}
	}
	return fired
}

func TestRepeatCountsTaps(t *testing.T) {
	rep := NewRepeat(300*time.Millisecond, 40*time.Millisecond)
	taps := []time.Duration{0, 100 * time.Millisecond, 200 * time.Millisecond, 300 * time.Millisecond, 400 * time.Millisecond}
	fired := drive(NewTracker(0), rep, Plain(KeyBackspace), taps, time.Second)
	if len(fired) != len(taps) {
		t.Fatalf("fired %d times (%v), want %d", len(fired), fired, len(taps))
	}
}

func TestRepeatHeldKeyIsSmooth(t *testing.T) {
	// the terminal repeats after 660ms, then every 40ms
	events := []time.Duration{0}
	for at := 660 * time.Millisecond; at <= 1500*time.Millisecond; at += 40 * time.Millisecond {
		events = append(events, at)
	}
	rep := NewRepeat(300*time.Millisecond, 40*time.Millisecond)
	fired := drive(NewTracker(0), rep, Plain(KeyRight), events, 1500*time.Millisecond)

	if len(fired) < 2 || fired[0] != 16*time.Millisecond {
		t.Fatalf("activations = %v", fired)
	}
	for i := 2; i < len(fired); i++ {
		if gap := fired[i] - fired[i-1]; gap > 64*time.Millisecond {
			t.Fatalf("stall of %v before %v (activations %v)", gap, fired[i], fired)
		}
	}
	if last := fired[len(fired)-1]; last < 1450*time.Millisecond {
		t.Fatalf("repeat stopped at %v", last)
	}
	// about one activation per 40ms after the terminal starts repeating
	if n := len(fired); n < 19 || n > 25 {
		t.Fatalf("fired %d times, want about 22", n)
	}
}

func TestRepeatClockAfterDelay(t *testing.T) {
	// a terminal streaming every 20ms from the start: each event fires until
	// the delay runs out, then the clock paces at the interval
	var events []time.Duration
	for at := time.Duration(0); at <= 600*time.Millisecond; at += 20 * time.Millisecond {
		events = append(events, at)
	}
	rep := NewRepeat(300*time.Millisecond, 50*time.Millisecond)
	fired := drive(NewTracker(0), rep, Plain(KeyDown), events, 600*time.Millisecond)

	var late int
	for _, at := range fired {
		if at > 350*time.Millisecond {
			late++
		}
	}
	// 350ms..600ms at 50ms
	if late < 4 || late > 6 {
		t.Fatalf("fired %d times after the delay (%v), want about 5", late, fired)
	}
}

func TestRepeatFlagsHeldActivations(t *testing.T) {
	tr := NewTracker(0)
	rep := NewRepeat(300*time.Millisecond, 40*time.Millisecond)
	c := Ctrl('s')
	t0 := time.Unix(0, 0)

	tr.ObserveAt(c, 0, t0)
	s := tr.Snapshot(t0.Add(16 * time.Millisecond))
	rep.Advance(s, 16*time.Millisecond)
	if acts := rep.Activations(s); len(acts) != 1 || acts[0].Repeat {
		t.Fatalf("first press = %+v", acts)
	}
	tr.ObserveAt(c, 0, t0.Add(30*time.Millisecond))
	s = tr.Snapshot(t0.Add(32 * time.Millisecond))
	rep.Advance(s, 16*time.Millisecond)
	if acts := rep.Activations(s); len(acts) != 1 || !acts[0].Repeat {
		t.Fatalf("auto-repeat = %+v", acts)
	}
}

func TestRepeatPurgesReleased(t *testing.T) {
	tr := NewTracker(20 * time.Millisecond)
	rep := NewRepeat(0, 0)
	c := Ctrl('x')
	t0 := time.Unix(0, 0)
	tr.ObserveAt(c, 0, t0)
	s := tr.Snapshot(t0)
	rep.Advance(s, 0)
	if acts := rep.Activations(s); len(acts) != 1 {
		t.Fatalf("first activation = %+v", acts)
	}
	s = tr.Snapshot(t0.Add(time.Second))
	rep.Advance(s, time.Second)
	if rep.Tracked(c) {
		t.Fatalf("released combo still tracked")
	}
	if acts := rep.Activations(s); len(acts) != 0 {
		t.Fatalf("released combo fired: %+v", acts)
	}
}
