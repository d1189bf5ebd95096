package syntax

// Source is the read side of a text buffer.
type Source interface {
	LineCount() int
	Line(i int) string
}

// Highlighter tokenizes visible lines with the correct entry state. It keeps
// the state every line starts in so a viewport that begins inside a block
// comment or string is still colored correctly. Callers report edits with
// Invalidate.
type Highlighter struct {
	Enabled bool

	kw     Keywords
	states []State // states[i] is the entry state of line i
}

func NewHighlighter(kw Keywords) *Highlighter {
	return &Highlighter{Enabled: true, kw: kw, states: []State{{}}}
}

// SetKeywords swaps the keyword table and drops every cached state.
func (h *Highlighter) SetKeywords(kw Keywords) {
	h.kw = kw
	h.states = []State{{}}
}

func (h *Highlighter) Keywords() Keywords {
	return h.kw
}

// Invalidate forgets cached states after line from. A negative from is a
// no-op.
func (h *Highlighter) Invalidate(from int) {
	if from < 0 {
		return
	}
	keep := from + 1
	if keep < 1 {
		keep = 1
	}
	if keep < len(h.states) {
		h.states = h.states[:keep]
	}
}

// EntryState returns the state line i starts in.
func (h *Highlighter) EntryState(src Source, i int) State {
	n := src.LineCount()
	if i >= n {
		i = n - 1
	}
	if i <= 0 {
		return State{}
	}
	for k := len(h.states) - 1; k < i; k++ {
		_, next := Tokenize(src.Line(k), h.states[k], h.kw)
		h.states = append(h.states, next)
	}
	return h.states[i]
}

// Lines returns the tokens of lines [first, last). Out of range indices are
// clamped.
func (h *Highlighter) Lines(src Source, first, last int) [][]Token {
	n := src.LineCount()
	if first < 0 {
		first = 0
	}
	if last > n {
		last = n
	}
	if first >= last {
		return nil
	}
	out := make([][]Token, 0, last-first)
	if !h.Enabled {
		for i := first; i < last; i++ {
			out = append(out, Plain(src.Line(i)))
		}
		return out
	}
	st := h.EntryState(src, first)
	for i := first; i < last; i++ {
		toks, next := Tokenize(src.Line(i), st, h.kw)
		out = append(out, toks)
		if i+1 == len(h.states) {
			h.states = append(h.states, next)
		}
		st = next
	}
	return out
}
