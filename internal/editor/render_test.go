package editor

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/muse/internal/cursor"
)

func renderScreen(t *testing.T, e *Editor, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(s.Fini)
	s.SetSize(w, h)
	e.Render(s)
	return s
}

func row(s tcell.SimulationScreen, y int) string {
	cells, w, _ := s.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		if rs := cells[y*w+x].Runes; len(rs) > 0 {
			b.WriteRune(rs[0])
		} else {
			b.WriteRune(' ')
		}
	}
	return b.String()
}

func TestRenderTextAndGutter(t *testing.T) {
	e := newTestEditor(t, "hi", "x")
	s := renderScreen(t, e, 40, 10)

	cells, w, _ := s.GetContents()
	if r := cells[TopRows*w+3].Runes; len(r) == 0 || r[0] != 'h' {
		t.Fatalf("first text cell = %q, want 'h'", r)
	}
	if r := cells[(TopRows+1)*w+1].Runes; len(r) == 0 || r[0] != '1' {
		t.Fatalf("second gutter cell = %q, want '1'", r)
	}
	if got := row(s, 0); !strings.HasPrefix(got, " INSERT | ") {
		t.Fatalf("top bar = %q", got)
	}
	if got := row(s, 1); !strings.Contains(got, "[No File]") || !strings.Contains(got, "Ln 0, Col 0") {
		t.Fatalf("status row = %q", got)
	}
	if got := strings.TrimSpace(row(s, 2)); got != "" {
		t.Fatalf("spacer row = %q, want blank", got)
	}
}

func TestRenderScrolledText(t *testing.T) {
	lines := make([]string, 30)
	for i := range lines {
		lines[i] = "line"
	}
	lines[25] = "target"
	e := newTestEditor(t, lines...)
	e.SetCursor(cursor.Cursor{Line: 25})
	e.Resize(40, 10)
	newKeys(e).frame()

	s := renderScreen(t, e, 40, 10)
	found := false
	for y := TopRows; y < 10; y++ {
		if strings.Contains(row(s, y), "target") {
			found = true
		}
	}
	if !found {
		t.Fatalf("cursor line not on screen after scrolling")
	}
}

func TestRenderConsole(t *testing.T) {
	e := newTestEditor(t, "abc")
	e.Console().Stage(":l 3")
	s := renderScreen(t, e, 80, 12)

	if got := row(s, 0); !strings.HasPrefix(got, " CONSOLE") || !strings.Contains(got, "console") {
		t.Fatalf("top row = %q", got)
	}
	if got := row(s, 1); !strings.Contains(got, "> :l 3") {
		t.Fatalf("directive row = %q", got)
	}
	if got := row(s, 2); !strings.Contains(got, "├─") || !strings.HasSuffix(got, "┤") {
		t.Fatalf("separator row = %q", got)
	}
}

func TestRenderMessage(t *testing.T) {
	e := newTestEditor(t, "abc")
	e.Console().ShowMessage("NoFileOpen <:w>", false)
	s := renderScreen(t, e, 60, 12)

	var text, title bool
	for y := 0; y < 12; y++ {
		r := row(s, y)
		text = text || strings.Contains(r, "NoFileOpen <:w>")
		title = title || strings.Contains(r, " message ")
	}
	if !text || !title {
		t.Fatalf("message box missing: text=%v title=%v", text, title)
	}
}

func TestComposeStatusLine(t *testing.T) {
	cases := []struct {
		left, right string
		width       int
		want        string
	}{
		{"ab", "cd", 6, "ab  cd"},
		{"abcdef", "xy", 5, "abcxy"},
		{"ab", "wxyz", 3, "xyz"},
		{"ab", "cd", 0, ""},
	}
	for _, tc := range cases {
		if got := string(composeStatusLine(tc.left, tc.right, tc.width)); got != tc.want {
			t.Fatalf("composeStatusLine(%q, %q, %d) = %q, want %q", tc.left, tc.right, tc.width, got, tc.want)
		}
	}
}

func TestRuneAt(t *testing.T) {
	line := []rune("\tab")
	if r := runeAt(line, 2, 4); r != ' ' {
		t.Fatalf("inside tab = %q, want space", r)
	}
	if r := runeAt(line, 5, 4); r != 'b' {
		t.Fatalf("runeAt(5) = %q, want 'b'", r)
	}
	if r := runeAt(line, 9, 4); r != ' ' {
		t.Fatalf("past end = %q, want space", r)
	}
}
