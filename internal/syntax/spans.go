package syntax

import "unicode"

// Span is a classified byte range of one line, as produced by a parse-tree
// highlighter.
type Span struct {
	Start int
	End   int
	Class Class
}

// FromSpans colors line with spans and returns a token stream equivalent to
// Tokenize output. Where spans overlap the higher priority class wins. Bytes
// no span covers become space or identifier tokens.
func FromSpans(line string, spans []Span) []Token {
	if line == "" {
		return nil
	}
	classes := make([]Class, len(line))
	covered := make([]bool, len(line))
	for i := range classes {
		classes[i] = Identifier
	}
	for _, sp := range spans {
		start, end := sp.Start, sp.End
		if start < 0 {
			start = 0
		}
		if end > len(line) {
			end = len(line)
		}
		for b := start; b < end; b++ {
			if !covered[b] || sp.Class.priority() > classes[b].priority() {
				classes[b] = sp.Class
				covered[b] = true
			}
		}
	}

	var out []Token
	start := 0
	cur := Class(-1)
	for i, r := range line {
		c := classes[i]
		if !covered[i] && unicode.IsSpace(r) {
			c = Space
		}
		if c != cur {
			if i > start {
				out = append(out, Token{Text: line[start:i], Class: cur})
			}
			start = i
			cur = c
		}
	}
	out = append(out, Token{Text: line[start:], Class: cur})
	return out
}
