package buffer

import (
	"strings"
	"unicode/utf8"
)

// Buffer is an ordered list of lines. It always holds at least one line and
// no line contains a line break.
type Buffer struct {
	lines     []string
	dirtyFrom int
}

func New(lines ...string) *Buffer {
	b := &Buffer{}
	b.Replace(lines)
	return b
}

func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Line returns line i, or "" when i is out of range.
func (b *Buffer) Line(i int) string {
	if i < 0 || i >= len(b.lines) {
		return ""
	}
	return b.lines[i]
}

func (b *Buffer) CharCount(i int) int {
	return utf8.RuneCountInString(b.Line(i))
}

// Lines returns a copy of the buffer contents.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

func (b *Buffer) Text() string {
	return strings.Join(b.lines, "\n")
}

// Replace swaps the whole content. Embedded line breaks are split into
// separate lines and an empty input leaves a single empty line. Invalid
// UTF-8 is replaced with U+FFFD.
func (b *Buffer) Replace(lines []string) {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.ToValidUTF8(line, "\uFFFD")
		if strings.ContainsAny(line, "\r\n") {
			for _, part := range strings.Split(strings.ReplaceAll(line, "\r\n", "\n"), "\n") {
				out = append(out, strings.TrimSuffix(part, "\r"))
			}
			continue
		}
		out = append(out, line)
	}
	if len(out) == 0 {
		out = []string{""}
	}
	b.lines = out
	b.dirtyFrom = 0
}

// CharToByte converts a char index on line i to a byte offset. Indexes past
// the end clamp to the line's byte length.
func (b *Buffer) CharToByte(i, col int) int {
	return CharToByte(b.Line(i), col)
}

// CharToByte is the UTF-8 safe column conversion used for every mutation.
func CharToByte(s string, col int) int {
	if col <= 0 {
		return 0
	}
	n := 0
	for idx := range s {
		if n == col {
			return idx
		}
		n++
	}
	return len(s)
}

func (b *Buffer) InsertChar(i, col int, r rune) {
	b.InsertString(i, col, string(r))
}

// InsertString inserts s at col. Line breaks in s are dropped; use SplitLine
// to add lines.
func (b *Buffer) InsertString(i, col int, s string) {
	if i < 0 || i >= len(b.lines) || s == "" {
		return
	}
	s = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, s)
	line := b.lines[i]
	at := CharToByte(line, col)
	b.lines[i] = line[:at] + s + line[at:]
	b.touch(i)
}

// RemoveCharAt removes the char at col. It reports whether anything was
// removed.
func (b *Buffer) RemoveCharAt(i, col int) bool {
	return b.RemoveRange(i, col, col+1) > 0
}

// RemoveRange removes chars [from, to) from line i and returns how many were
// removed.
func (b *Buffer) RemoveRange(i, from, to int) int {
	if i < 0 || i >= len(b.lines) {
		return 0
	}
	if from < 0 {
		from = 0
	}
	if to <= from {
		return 0
	}
	line := b.lines[i]
	start := CharToByte(line, from)
	end := CharToByte(line, to)
	if start >= end {
		return 0
	}
	removed := utf8.RuneCountInString(line[start:end])
	b.lines[i] = line[:start] + line[end:]
	b.touch(i)
	return removed
}

// SplitLine cuts line i at col: the head stays on line i and the tail moves
// to a new line i+1.
func (b *Buffer) SplitLine(i, col int) (head, tail string) {
	if i < 0 || i >= len(b.lines) {
		return "", ""
	}
	line := b.lines[i]
	at := CharToByte(line, col)
	head, tail = line[:at], line[at:]
	b.lines[i] = head
	b.insertAt(i+1, tail)
	b.touch(i)
	return head, tail
}

// MergeLineIntoPrevious appends line i to line i-1 and removes it. It returns
// the char length the previous line had before the merge, or -1 when i has no
// previous line.
func (b *Buffer) MergeLineIntoPrevious(i int) int {
	if i <= 0 || i >= len(b.lines) {
		return -1
	}
	prev := b.lines[i-1]
	joint := utf8.RuneCountInString(prev)
	b.lines[i-1] = prev + b.lines[i]
	b.lines = append(b.lines[:i], b.lines[i+1:]...)
	b.touch(i - 1)
	return joint
}

// InsertLine inserts content at index. Index is clamped to [0, LineCount].
func (b *Buffer) InsertLine(index int, content string) {
	if index < 0 {
		index = 0
	}
	if index > len(b.lines) {
		index = len(b.lines)
	}
	b.insertAt(index, strings.TrimRight(content, "\r\n"))
	b.touch(index)
}

// RemoveLine deletes line index. Removing the only line empties it instead.
func (b *Buffer) RemoveLine(index int) {
	if index < 0 || index >= len(b.lines) {
		return
	}
	if len(b.lines) == 1 {
		b.lines[0] = ""
		b.touch(0)
		return
	}
	b.lines = append(b.lines[:index], b.lines[index+1:]...)
	b.touch(index)
}

func (b *Buffer) SwapLines(i, j int) {
	if i < 0 || j < 0 || i >= len(b.lines) || j >= len(b.lines) || i == j {
		return
	}
	b.lines[i], b.lines[j] = b.lines[j], b.lines[i]
	b.touch(min(i, j))
}

// DirtyFrom reports the lowest line touched since the last ClearDirty, or -1.
func (b *Buffer) DirtyFrom() int {
	return b.dirtyFrom
}

func (b *Buffer) ClearDirty() {
	b.dirtyFrom = -1
}

func (b *Buffer) insertAt(index int, s string) {
	b.lines = append(b.lines, "")
	copy(b.lines[index+1:], b.lines[index:])
	b.lines[index] = s
}

func (b *Buffer) touch(i int) {
	if b.dirtyFrom < 0 || i < b.dirtyFrom {
		b.dirtyFrom = i
	}
}
