package editor

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/muse/internal/config"
	"github.com/kobzarvs/muse/internal/cursor"
	"github.com/kobzarvs/muse/internal/input"
	"github.com/kobzarvs/muse/internal/workspace"
)

const frameDT = 16 * time.Millisecond

type zoomCall struct {
	in    bool
	times int
}

type recordingZoom struct{ calls []zoomCall }

func (z *recordingZoom) Zoom(in bool, times int) error {
	z.calls = append(z.calls, zoomCall{in, times})
	return nil
}

func newTestEditor(t *testing.T, lines ...string) *Editor {
	t.Helper()
	home := t.TempDir()
	t.Setenv("MUSE_CONFIG_HOME", filepath.Join(home, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(home, "state"))

	e := New(config.Default(), config.BuiltinLanguages(), workspace.New(t.TempDir()))
	e.SetZoomer(&recordingZoom{})
	e.SetGitWatcher(nil)
	if len(lines) > 0 {
		e.buf.Replace(lines)
	}
	e.Resize(80, 24)
	return e
}

// keys drives the editor through the tracker the way the frame loop does.
type keys struct {
	e   *Editor
	tr  *input.Tracker
	now time.Time
}

func newKeys(e *Editor) *keys {
	return &keys{e: e, tr: input.NewTracker(0), now: time.Unix(1000, 0)}
}

// frame advances one frame without new input.
func (k *keys) frame() {
	k.now = k.now.Add(frameDT)
	k.e.Frame(k.tr.Snapshot(k.now), frameDT)
}

// release lets every held key expire.
func (k *keys) release() {
	k.now = k.now.Add(time.Second)
	k.e.Frame(k.tr.Snapshot(k.now), frameDT)
}

func (k *keys) press(c input.Combo) {
	k.tr.ObserveAt(c, 0, k.now)
	k.frame()
	k.release()
}

func (k *keys) typeText(s string) {
	for _, r := range s {
		k.tr.ObserveAt(input.Plain(input.Key(r)), r, k.now)
		k.frame()
	}
	k.release()
}

func wantLines(t *testing.T, e *Editor, want ...string) {
	t.Helper()
	if got := e.buf.Lines(); !reflect.DeepEqual(got, want) {
		t.Fatalf("lines = %q, want %q", got, want)
	}
}

func wantCursor(t *testing.T, e *Editor, col, line int) {
	t.Helper()
	if c := e.Cursor(); c.Col != col || c.Line != line {
		t.Fatalf("cursor = (%d,%d), want (%d,%d)", c.Col, c.Line, col, line)
	}
}

func TestEnterBetweenBracesIndents(t *testing.T) {
	e := newTestEditor(t, "func() {", "}")
	e.SetCursor(cursor.Cursor{Col: 8, Line: 0})
	k := newKeys(e)

	k.press(input.Plain(input.KeyEnter))

	wantLines(t, e, "func() {", "    ", "}")
	wantCursor(t, e, 4, 1)
	if !e.ws.Unsaved {
		t.Fatalf("Unsaved = false after edit")
	}
}

func TestEnterSplitsPairOntoThreeLines(t *testing.T) {
	e := newTestEditor(t, "  if (x) {}")
	e.SetCursor(cursor.Cursor{Col: 10, Line: 0})

	e.newline()

	wantLines(t, e, "  if (x) {", "      ", "  }")
	wantCursor(t, e, 6, 1)
}

func TestEnterKeepsIndentation(t *testing.T) {
	e := newTestEditor(t, "    foo bar")
	e.SetCursor(cursor.Cursor{Col: 7, Line: 0})

	e.newline()

	wantLines(t, e, "    foo", "    bar")
	wantCursor(t, e, 4, 1)
}

func TestEnterWithoutSmartIsPlainSplit(t *testing.T) {
	e := newTestEditor(t, "    {x}")
	e.smart = false
	e.SetCursor(cursor.Cursor{Col: 5, Line: 0})

	e.newline()

	wantLines(t, e, "    {", "x}")
	wantCursor(t, e, 0, 1)
}

func TestTypingPairsAndStepsOverClosers(t *testing.T) {
	e := newTestEditor(t, "")
	k := newKeys(e)

	k.typeText("f(a")
	wantLines(t, e, "f(a)")
	wantCursor(t, e, 3, 0)

	k.typeText(")")
	wantLines(t, e, "f(a)")
	wantCursor(t, e, 4, 0)

	e.smart = false
	k.typeText("[")
	wantLines(t, e, "f(a)[")
}

func TestTypingUTF8(t *testing.T) {
	e := newTestEditor(t, "")
	k := newKeys(e)

	k.typeText("héllo 世界")

	wantLines(t, e, "héllo 世界")
	wantCursor(t, e, 8, 0)
}

func TestBackspace(t *testing.T) {
	cases := []struct {
		name     string
		lines    []string
		col      int
		line     int
		want     []string
		wantCol  int
		wantLine int
	}{
		{"char", []string{"abc"}, 2, 0, []string{"ac"}, 1, 0},
		{"tab stop", []string{"        x"}, 8, 0, []string{"    x"}, 4, 0},
		{"partial indent", []string{"  x"}, 2, 0, []string{" x"}, 1, 0},
		{"join lines", []string{"ab", "cd"}, 0, 1, []string{"abcd"}, 2, 0},
		{"buffer start", []string{"ab"}, 0, 0, []string{"ab"}, 0, 0},
		{"multibyte", []string{"añb"}, 2, 0, []string{"ab"}, 1, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEditor(t, tc.lines...)
			e.SetCursor(cursor.Cursor{Col: tc.col, Line: tc.line})
			e.backspace()
			wantLines(t, e, tc.want...)
			wantCursor(t, e, tc.wantCol, tc.wantLine)
		})
	}
}

func TestDeleteForward(t *testing.T) {
	e := newTestEditor(t, "ab", "cd")
	e.SetCursor(cursor.Cursor{Col: 1, Line: 0})

	e.deleteForward()
	wantLines(t, e, "a", "cd")

	e.deleteForward()
	wantLines(t, e, "acd")
	wantCursor(t, e, 1, 0)
}

func TestTabInsertsSpaces(t *testing.T) {
	e := newTestEditor(t, "x")
	k := newKeys(e)

	k.press(input.Plain(input.KeyTab))

	wantLines(t, e, "    x")
	wantCursor(t, e, 4, 0)
}

func TestLineShortcuts(t *testing.T) {
	e := newTestEditor(t, "one", "two", "three")
	e.SetCursor(cursor.Cursor{Col: 1, Line: 0})
	k := newKeys(e)

	k.press(input.Ctrl('d'))
	wantLines(t, e, "one", "one", "two", "three")
	wantCursor(t, e, 1, 1)

	k.press(input.Shift(input.KeyDown))
	k.press(input.Shift(input.KeyDown))
	wantLines(t, e, "one", "two", "three", "one")
	wantCursor(t, e, 1, 3)

	k.press(input.Shift(input.KeyDown))
	wantCursor(t, e, 1, 3)

	k.press(input.Ctrl('x'))
	wantLines(t, e, "one", "two", "three")
	wantCursor(t, e, 1, 2)
}

func TestDeleteWord(t *testing.T) {
	e := newTestEditor(t, "foo bar   baz")
	e.SetCursor(cursor.Cursor{Col: 5, Line: 0})

	e.deleteWord()
	wantLines(t, e, "foo    baz")
	wantCursor(t, e, 4, 0)

	e.SetCursor(cursor.Cursor{Col: 6, Line: 0})
	e.deleteWord()
	wantLines(t, e, "foo baz")
	wantCursor(t, e, 3, 0)
}

func TestShortcutRepeatsWhileHeld(t *testing.T) {
	e := newTestEditor(t, "x")
	k := newKeys(e)
	c := input.Ctrl('d')
	start := k.now

	// the terminal waits 500ms before it repeats, then resends every 32ms
	k.tr.ObserveAt(c, 0, k.now)
	for k.now.Sub(start) < 500*time.Millisecond {
		k.frame()
	}
	for k.now.Sub(start) < time.Second {
		k.tr.ObserveAt(c, 0, k.now)
		k.frame()
		k.frame()
	}
	k.release()

	// one press, the first resend, each resend inside the delay, then the
	// clock every 40ms
	if n := e.buf.LineCount(); n < 14 || n > 20 {
		t.Fatalf("line count after hold = %d, want between 14 and 20", n)
	}
}

func TestTapsCountOnce(t *testing.T) {
	cases := []struct {
		name    string
		combo   input.Combo
		want    string
		wantCol int
	}{
		{"backspace", input.Plain(input.KeyBackspace), "abcde", 5},
		{"left", input.Plain(input.KeyLeft), "abcdefghij", 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEditor(t, "abcdefghij")
			e.SetCursor(cursor.Cursor{Col: 10})
			k := newKeys(e)

			// five taps 96ms apart: the key never leaves the hold window
			for i := 0; i < 5; i++ {
				k.tr.ObserveAt(tc.combo, 0, k.now)
				for j := 0; j < 6; j++ {
					k.frame()
				}
			}
			k.release()

			wantLines(t, e, tc.want)
			wantCursor(t, e, tc.wantCol, 0)
		})
	}
}

func TestSameFrameKeepsOrder(t *testing.T) {
	e := newTestEditor(t, "")
	k := newKeys(e)

	k.tr.ObserveAt(input.Plain(input.Key('a')), 'a', k.now)
	k.tr.ObserveAt(input.Plain(input.KeyEnter), 0, k.now)
	k.frame()
	k.release()
	wantLines(t, e, "a", "")

	k.tr.ObserveAt(input.Plain(input.KeyEnter), 0, k.now)
	k.tr.ObserveAt(input.Plain(input.KeyEnter), 0, k.now)
	k.tr.ObserveAt(input.Plain(input.Key('b')), 'b', k.now)
	k.frame()
	k.release()
	wantLines(t, e, "a", "", "", "b")
	wantCursor(t, e, 1, 3)
}

func TestPasteInsertsRawText(t *testing.T) {
	e := newTestEditor(t, "")
	k := newKeys(e)

	k.tr.ObservePaste(tcell.NewEventPaste(true))
	for _, r := range "ab\ncd\nf(x" {
		if r == '\n' {
			k.tr.ObserveAt(input.Ctrl('j'), 0, k.now)
			continue
		}
		k.tr.ObserveAt(input.Plain(input.Key(r)), r, k.now)
	}
	k.tr.ObservePaste(tcell.NewEventPaste(false))
	k.frame()
	k.release()

	wantLines(t, e, "ab", "cd", "f(x")
	wantCursor(t, e, 3, 2)
}

func TestNavigation(t *testing.T) {
	e := newTestEditor(t, "alpha beta", "", "x", "y", "z", "last line")
	k := newKeys(e)

	k.press(input.Ctrl(input.KeyRight))
	wantCursor(t, e, 5, 0)

	k.press(input.Plain(input.KeyEnd))
	wantCursor(t, e, 10, 0)

	k.press(input.Ctrl(input.KeyDown))
	wantCursor(t, e, 1, 4)

	k.press(input.Plain(input.KeyHome))
	wantCursor(t, e, 0, 4)

	k.press(input.Plain(input.KeyDown))
	k.press(input.Plain(input.KeyRight))
	wantCursor(t, e, 1, 5)
}

func TestFontSizeSteps(t *testing.T) {
	e := newTestEditor(t)
	z := &recordingZoom{}
	e.SetZoomer(z)

	e.runAction(actionFontLarger)
	if e.FontSize() != 20 {
		t.Fatalf("font size = %d, want 20", e.FontSize())
	}
	e.fontSize = config.MaxFontSize
	e.runAction(actionFontLarger)
	if e.FontSize() != config.MaxFontSize {
		t.Fatalf("font size = %d, want %d", e.FontSize(), config.MaxFontSize)
	}
	if len(z.calls) != 1 || !z.calls[0].in {
		t.Fatalf("zoom calls = %+v, want one zoom in", z.calls)
	}
}

func TestTerminalZoomOnlyOnDarwin(t *testing.T) {
	var ran []string
	z := &TerminalZoom{GOOS: "linux", Run: func(name string, args ...string) error {
		ran = append(ran, name)
		return nil
	}}
	if err := z.Zoom(true, 2); err != nil || len(ran) != 0 {
		t.Fatalf("linux zoom ran %v, err %v", ran, err)
	}
	z.GOOS = "darwin"
	if err := z.Zoom(false, 2); err != nil {
		t.Fatalf("darwin zoom: %v", err)
	}
	if len(ran) != 1 || ran[0] != "osascript" {
		t.Fatalf("darwin zoom ran %v, want osascript", ran)
	}
}

func TestParseKeymapSkipsBadCombos(t *testing.T) {
	km := parseKeymap(config.Keymap{"ctrl+d": actionDuplicateLine, "bogus+": "x"})
	if len(km) != 1 || km[input.Ctrl('d')] != actionDuplicateLine {
		t.Fatalf("keymap = %v", km)
	}
}

func TestToggleConsoleShortcut(t *testing.T) {
	e := newTestEditor(t, "x")
	k := newKeys(e)

	k.press(input.Ctrl('`'))
	if !e.Console().Open {
		t.Fatalf("console closed after ctrl+`")
	}
	k.typeText("q")
	if e.Console().Text() != "q" {
		t.Fatalf("console text = %q, want q", e.Console().Text())
	}
	wantLines(t, e, "x")

	k.press(input.Plain(input.KeyEsc))
	if e.Console().Open {
		t.Fatalf("console open after esc")
	}
}

func TestConsoleEnterRunsDirective(t *testing.T) {
	e := newTestEditor(t, "0", "1", "2", "3", "4")
	k := newKeys(e)

	e.Console().Stage(":l 9")
	k.press(input.Plain(input.KeyEnter))
	if msg, _ := e.Console().Message(); msg != "LineOutOfRange <:l>" {
		t.Fatalf("message = %q", msg)
	}
	if !e.Console().Open || e.Console().Text() != ":l 9" {
		t.Fatalf("failed directive closed or cleared the console")
	}
	wantCursor(t, e, 0, 0)

	k.press(input.Plain(input.KeyEsc))
	if e.Console().HasMessage() || !e.Console().Open {
		t.Fatalf("esc should dismiss the message first")
	}

	e.Console().Stage(":l 3")
	k.press(input.Plain(input.KeyEnter))
	wantCursor(t, e, 0, 3)
	if e.Console().Open || e.Console().Text() != "" {
		t.Fatalf("console after success: open=%v text=%q", e.Console().Open, e.Console().Text())
	}
}

func TestConsoleTabCompletes(t *testing.T) {
	e := newTestEditor(t)
	writeTestFile(t, filepath.Join(e.ws.Dir, "notes.txt"), "")
	k := newKeys(e)

	e.Console().Stage(":r no")
	k.press(input.Plain(input.KeyTab))

	if got := e.Console().Text(); got != ":r notes.txt" {
		t.Fatalf("completed = %q", got)
	}
}

func TestFrameFollowsCursor(t *testing.T) {
	lines := make([]string, 100)
	e := newTestEditor(t, lines...)
	k := newKeys(e)

	e.SetCursor(cursor.Cursor{Line: 80})
	k.frame()

	if cam := e.Camera(); 80 < cam.Y || 80 > cam.Y+cam.TextHeight()-1 {
		t.Fatalf("line 80 off screen: camera Y=%d height=%d", cam.Y, cam.TextHeight())
	}
	if cam := e.Camera(); cam.Left != 4 {
		t.Fatalf("gutter = %d, want 4", cam.Left)
	}
}
