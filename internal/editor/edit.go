package editor

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kobzarvs/muse/internal/config"
	"github.com/kobzarvs/muse/internal/cursor"
	"github.com/kobzarvs/muse/internal/logger"
	"github.com/kobzarvs/muse/internal/workspace"
)

// Keymap action names.
const (
	actionDeleteLine    = "delete_line"
	actionDuplicateLine = "duplicate_line"
	actionMoveLineUp    = "move_line_up"
	actionMoveLineDown  = "move_line_down"
	actionDeleteWord    = "delete_word"
	actionSave          = "save"
	actionGotoLine      = "goto_line_prompt"
	actionOpenDirectory = "open_directory"
	actionFind          = "find_prompt"
	actionNewFile       = "new_file"
	actionRename        = "rename_prompt"
	actionRemoveFile    = "remove_file"
	actionMakeDirectory = "make_directory_prompt"
	actionSaveAndQuit   = "save_and_quit"
	actionQuit          = "quit"
	actionToggleConsole = "toggle_console"
	actionFontSmaller   = "font_smaller"
	actionFontLarger    = "font_larger"
	actionFileInfo      = "file_info"
)

const (
	untitledName         = "untitled"
	maxUntitledAttempts  = 100
	fontZoomStepsPerSize = 1
)

// repeatable actions fire through the key-repeat clock while held.
var repeatable = map[string]bool{
	actionDeleteLine:    true,
	actionDuplicateLine: true,
	actionMoveLineUp:    true,
	actionMoveLineDown:  true,
	actionDeleteWord:    true,
	actionFontSmaller:   true,
	actionFontLarger:    true,
}

var (
	openers = map[rune]rune{'(': ')', '[': ']', '{': '}'}
	pairs   = map[rune]rune{'(': ')', '[': ']', '{': '}', '"': '"'}
	closers = map[rune]bool{')': true, ']': true, '}': true, '"': true}
)

func (e *Editor) runAction(action string) {
	switch action {
	case actionDeleteLine:
		e.deleteLine()
		e.player.Delete()
	case actionDuplicateLine:
		e.duplicateLine()
	case actionMoveLineUp:
		e.moveLine(-1)
	case actionMoveLineDown:
		e.moveLine(1)
	case actionDeleteWord:
		e.deleteWord()
		e.player.Delete()
	case actionSave:
		e.runDirective(":w")
	case actionGotoLine:
		e.console.Stage(":l ")
	case actionOpenDirectory:
		e.runDirective(":o")
	case actionFind:
		e.console.Stage(":f ")
	case actionNewFile:
		e.newFile()
	case actionRename:
		e.console.Stage(":b ")
	case actionRemoveFile:
		e.runDirective(":r")
	case actionMakeDirectory:
		e.console.Stage(":md ")
	case actionSaveAndQuit:
		if e.runDirective(":w") == "" {
			e.quit = true
		}
	case actionQuit:
		e.quit = true
	case actionToggleConsole:
		e.console.Open = !e.console.Open
	case actionFontSmaller:
		e.fontStep(-1)
	case actionFontLarger:
		e.fontStep(1)
	case actionFileInfo:
		e.runDirective(":i")
	default:
		logger.Debug("unknown keymap action", "action", action)
	}
}

// runDirective executes text as if typed in the console and shows its
// result. It returns the message.
func (e *Editor) runDirective(text string) string {
	msg, manual := e.ExecuteDirective(text)
	e.entries.invalidate()
	if msg != "" {
		e.console.ShowMessage(msg, manual)
	}
	return msg
}

// typeRune inserts r at the cursor. With smart editing on, brackets and
// quotes are paired and a typed closer steps over the one already there.
func (e *Editor) typeRune(r rune) {
	if unicode.IsControl(r) {
		return
	}
	c := &e.cursor
	line := []rune(e.buf.Line(c.Line))
	if e.smart && closers[r] && c.Col < len(line) && line[c.Col] == r {
		c.Col++
		e.player.Insert()
		return
	}
	e.buf.InsertChar(c.Line, c.Col, r)
	c.Col++
	if closer, ok := pairs[r]; ok && e.smart {
		e.buf.InsertChar(c.Line, c.Col, closer)
	}
	e.ws.Unsaved = true
	if r == ' ' {
		e.player.Space()
	} else {
		e.player.Insert()
	}
}

// backspace removes the char before the cursor. At column 0 the line joins
// the previous one; after a run of indentation a whole tab stop goes.
func (e *Editor) backspace() {
	c := &e.cursor
	if c.Col == 0 {
		if joint := e.buf.MergeLineIntoPrevious(c.Line); joint >= 0 {
			c.Line--
			c.Col = joint
			e.ws.Unsaved = true
		}
		return
	}
	line := []rune(e.buf.Line(c.Line))
	c.Col = min(c.Col, len(line))
	n := 1
	if c.Col >= e.tabWidth && strings.TrimLeft(string(line[c.Col-e.tabWidth:c.Col]), " ") == "" {
		n = e.tabWidth
	}
	if removed := e.buf.RemoveRange(c.Line, c.Col-n, c.Col); removed > 0 {
		c.Col -= removed
		e.ws.Unsaved = true
	}
}

// deleteForward removes the char under the cursor, or pulls the next line up
// at the end of a line.
func (e *Editor) deleteForward() {
	c := &e.cursor
	if c.Col < e.buf.CharCount(c.Line) {
		if e.buf.RemoveCharAt(c.Line, c.Col) {
			e.ws.Unsaved = true
		}
		return
	}
	if e.buf.MergeLineIntoPrevious(c.Line+1) >= 0 {
		e.ws.Unsaved = true
	}
}

// insertRaw inserts r at the cursor with no smart editing.
func (e *Editor) insertRaw(r rune) {
	e.buf.InsertChar(e.cursor.Line, e.cursor.Col, r)
	e.cursor.Col++
	e.ws.Unsaved = true
}

// splitLine breaks the line at the cursor and moves to the new line.
func (e *Editor) splitLine() {
	e.buf.SplitLine(e.cursor.Line, e.cursor.Col)
	e.cursor.Line++
	e.cursor.Col = 0
	e.ws.Unsaved = true
}

func (e *Editor) insertTab() {
	e.buf.InsertString(e.cursor.Line, e.cursor.Col, strings.Repeat(" ", e.tabWidth))
	e.cursor.Col += e.tabWidth
	e.ws.Unsaved = true
}

// newline splits the line at the cursor. With smart editing on, the new line
// keeps the indentation and an opening bracket before the cursor indents one
// more level; a matching closer right after the cursor goes to its own line.
func (e *Editor) newline() {
	if !e.smart {
		e.splitLine()
		return
	}

	c := &e.cursor
	e.ws.Unsaved = true
	line := []rune(e.buf.Line(c.Line))
	col := min(c.Col, len(line))
	head := string(line[:col])
	rest := strings.TrimLeft(string(line[col:]), " \t")
	base := head[:len(head)-len(strings.TrimLeft(head, " \t"))]
	e.buf.RemoveRange(c.Line, col, len(line))

	indent := base
	trimmed := strings.TrimRight(head, " \t")
	if last, _ := utf8.DecodeLastRuneInString(trimmed); trimmed != "" {
		if closer, ok := openers[last]; ok {
			indent = base + strings.Repeat(" ", e.tabWidth)
			if strings.HasPrefix(rest, string(closer)) {
				e.buf.InsertLine(c.Line+1, indent)
				e.buf.InsertLine(c.Line+2, base+rest)
				c.Line++
				c.Col = utf8.RuneCountInString(indent)
				return
			}
		}
	}
	e.buf.InsertLine(c.Line+1, indent+rest)
	c.Line++
	c.Col = utf8.RuneCountInString(indent)
}

func (e *Editor) deleteLine() {
	e.buf.RemoveLine(e.cursor.Line)
	e.cursor.Clamp(e.buf)
	e.ws.Unsaved = true
}

func (e *Editor) duplicateLine() {
	e.buf.InsertLine(e.cursor.Line+1, e.buf.Line(e.cursor.Line))
	e.cursor.Line++
	e.ws.Unsaved = true
}

// moveLine swaps the cursor line with its neighbour in direction d.
func (e *Editor) moveLine(d int) {
	target := e.cursor.Line + d
	if target < 0 || target >= e.buf.LineCount() {
		return
	}
	e.buf.SwapLines(e.cursor.Line, target)
	e.cursor.Line = target
	e.cursor.Clamp(e.buf)
	e.ws.Unsaved = true
}

// deleteWord removes the word under the cursor, or the whitespace before it
// when the cursor is between words.
func (e *Editor) deleteWord() {
	c := &e.cursor
	line := []rune(e.buf.Line(c.Line))
	start, end := cursor.WordBounds(line, c.Col)
	if start == end {
		end = min(c.Col, len(line))
		start = end
		for start > 0 && unicode.IsSpace(line[start-1]) {
			start--
		}
	}
	if e.buf.RemoveRange(c.Line, start, end) > 0 {
		c.Col = start
		e.ws.Unsaved = true
	}
}

// newFile creates the first free untitled file, opens it and stages a rename.
func (e *Editor) newFile() {
	name := untitledName
	var (
		path string
		err  error
	)
	for i := 1; i <= maxUntitledAttempts; i++ {
		path, err = e.ws.CreateFile(name)
		if !errors.Is(err, workspace.ErrNameUsed) {
			break
		}
		name = fmt.Sprintf("%s-%d", untitledName, i)
	}
	if err != nil {
		logger.Error("create untitled file", "dir", e.ws.Dir, "error", err)
		e.console.ShowMessage("FileNameUsed <:c>", false)
		return
	}
	if err := e.openFile(path); err != nil {
		e.console.ShowMessage("FileNotFound <:c>", false)
		return
	}
	e.console.Stage(":b ")
}

// fontStep changes the font size by d steps and asks the terminal to zoom.
func (e *Editor) fontStep(d int) {
	size := config.ClampFontSize(e.fontSize + d*config.FontSizeStep)
	if size == e.fontSize {
		return
	}
	e.fontSize = size
	if e.zoom == nil {
		return
	}
	if err := e.zoom.Zoom(d > 0, fontZoomStepsPerSize); err != nil {
		logger.Debug("terminal zoom", "error", err)
	}
}
