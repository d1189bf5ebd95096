package syntax

import (
	"strings"
	"unicode"
)

// State is the lexer context carried from one line to the next. At most one
// field is true.
type State struct {
	InBlockComment bool
	InString       bool
}

// Token is a maximal run of chars sharing one class.
type Token struct {
	Text  string
	Class Class
}

// Tokenize lexes one line starting in state st. The token texts concatenate
// back to line exactly. The returned state is the one the next line starts
// in.
func Tokenize(line string, st State, kw Keywords) ([]Token, State) {
	rs := []rune(line)
	n := len(rs)
	// at maps rune index to byte offset so invalid bytes survive as is
	at := make([]int, 0, n+1)
	for i := range line {
		at = append(at, i)
	}
	at = append(at, len(line))
	var out []Token
	emit := func(from, to int, c Class) {
		if to <= from {
			return
		}
		out = append(out, Token{Text: line[at[from]:at[to]], Class: c})
	}

	i := 0
	switch {
	case st.InBlockComment:
		end := closeComment(rs, 0)
		if end < 0 {
			emit(0, n, Comment)
			return out, st
		}
		emit(0, end, Comment)
		st.InBlockComment = false
		i = end
	case st.InString:
		end := closeString(rs, 0)
		if end < 0 {
			emit(0, n, String)
			return out, st
		}
		emit(0, end, String)
		st.InString = false
		i = end
	}

	include := isIncludeLine(line)
	for i < n {
		c := rs[i]
		switch {
		case c == '/' && i+1 < n && rs[i+1] == '/':
			emit(i, n, Comment)
			i = n
		case c == '/' && i+1 < n && rs[i+1] == '*':
			end := closeComment(rs, i+2)
			if end < 0 {
				emit(i, n, Comment)
				st.InBlockComment = true
				i = n
				continue
			}
			emit(i, end, Comment)
			i = end
		case c == '"':
			end := closeString(rs, i+1)
			if end < 0 {
				emit(i, n, String)
				st.InString = true
				i = n
				continue
			}
			emit(i, end, String)
			i = end
		case c == '#':
			j := i + 1
			for j < n && !unicode.IsSpace(rs[j]) {
				j++
			}
			if j == i+1 {
				// a bare '#' takes the word after it
				for j < n && unicode.IsSpace(rs[j]) {
					j++
				}
				for j < n && !unicode.IsSpace(rs[j]) {
					j++
				}
			}
			emit(i, j, Macro)
			i = j
		case c == '<' && include:
			j := i + 1
			for j < n && rs[j] != '>' {
				j++
			}
			if j < n {
				j++
			}
			emit(i, j, Include)
			i = j
		case unicode.IsSpace(c):
			j := i + 1
			for j < n && unicode.IsSpace(rs[j]) {
				j++
			}
			emit(i, j, Space)
			i = j
		case c >= '0' && c <= '9':
			j := i + 1
			for j < n && isNumberRune(rs[j]) {
				j++
			}
			emit(i, j, Number)
			i = j
		case !isWordRune(c):
			emit(i, i+1, Punctuation)
			i++
		default:
			j := i + 1
			for j < n && isWordRune(rs[j]) {
				j++
			}
			emit(i, j, kw.Classify(string(rs[i:j])))
			i = j
		}
	}
	return out, st
}

// closeComment returns the index just past the first "*/" at or after from,
// or -1.
func closeComment(rs []rune, from int) int {
	for i := from; i+1 < len(rs); i++ {
		if rs[i] == '*' && rs[i+1] == '/' {
			return i + 2
		}
	}
	return -1
}

// closeString returns the index just past the closing quote, skipping
// backslash escapes, or -1.
func closeString(rs []rune, from int) int {
	for i := from; i < len(rs); i++ {
		switch rs[i] {
		case '\\':
			i++
		case '"':
			return i + 1
		}
	}
	return -1
}

func isIncludeLine(line string) bool {
	t := strings.TrimSpace(line)
	return strings.HasPrefix(t, "#include") || strings.HasPrefix(t, "#import")
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isNumberRune(r rune) bool {
	return (r >= '0' && r <= '9') || r == '.' || r == 'f' || r == 'F' || r == '-'
}

// Plain returns the whole line as one identifier token, used when
// highlighting is off.
func Plain(line string) []Token {
	if line == "" {
		return nil
	}
	return []Token{{Text: line, Class: Identifier}}
}
