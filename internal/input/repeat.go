package input

import "time"

const (
	DefaultRepeatDelay    = 300 * time.Millisecond
	DefaultRepeatInterval = 40 * time.Millisecond
)

// Activation is one firing of a combo. Repeat is set when the firing comes
// from holding the key rather than from a fresh press.
type Activation struct {
	Combo  Combo
	Char   rune
	Paste  bool
	Repeat bool
}

// run is the repeat state of one held combo, measured on the repeat clock.
type run struct {
	start time.Duration
	next  time.Duration
}

// Repeat is a manual key-repeat clock. A run exists only while its combo is
// held. Every fresh press fires at once and restarts the run. Until Delay
// has passed, each auto-repeat event from the terminal fires once;
// after that the clock fires every Interval for as long as the terminal
// keeps streaming the key.
type Repeat struct {
	Delay    time.Duration
	Interval time.Duration

	now  time.Duration
	runs map[Combo]*run
}

func NewRepeat(delay, interval time.Duration) *Repeat {
	if delay <= 0 {
		delay = DefaultRepeatDelay
	}
	if interval <= 0 {
		interval = DefaultRepeatInterval
	}
	return &Repeat{
		Delay:    delay,
		Interval: interval,
		runs:     make(map[Combo]*run),
	}
}

// Advance moves the clock by dt and drops runs for combos no longer held.
// Call it once per frame before Activations.
func (r *Repeat) Advance(s Snapshot, dt time.Duration) {
	if dt > 0 {
		r.now += dt
	}
	for c := range r.runs {
		if !s.Down(c) {
			delete(r.runs, c)
		}
	}
}

// Activations returns the firings of this frame. Events keep their arrival
// order; clock firings of held keys come after them. Typed text and pasted
// events pass through one for one.
func (r *Repeat) Activations(s Snapshot) []Activation {
	var out []Activation
	for _, ev := range s.Events() {
		a := Activation{Combo: ev.Combo, Char: ev.Char, Paste: ev.Paste}
		if ev.Paste || ev.Char != 0 {
			out = append(out, a)
			continue
		}
		ru, ok := r.runs[ev.Combo]
		streaming := s.Streaming(ev.Combo)
		switch {
		case !ok || !streaming:
			r.runs[ev.Combo] = &run{start: r.now, next: r.now + r.Delay}
		case r.now-ru.start < r.Delay:
			// the terminal started repeating before our delay ran out
			a.Repeat = true
		default:
			// past the delay the clock paces the key
			continue
		}
		out = append(out, a)
	}

	for _, c := range s.Held() {
		ru, ok := r.runs[c]
		if !ok || !s.Streaming(c) || r.now-ru.start < r.Delay || r.now < ru.next {
			continue
		}
		ru.next += r.Interval
		if ru.next <= r.now {
			// the frame took longer than one interval; do not burst
			ru.next = r.now + r.Interval
		}
		out = append(out, Activation{Combo: c, Repeat: true})
	}
	return out
}

// Tracked reports whether c has a live run.
func (r *Repeat) Tracked(c Combo) bool {
	_, ok := r.runs[c]
	return ok
}
