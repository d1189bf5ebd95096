package editor

import (
	"math/rand/v2"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/kobzarvs/muse/internal/audio"
	"github.com/kobzarvs/muse/internal/buffer"
	"github.com/kobzarvs/muse/internal/config"
	"github.com/kobzarvs/muse/internal/console"
	"github.com/kobzarvs/muse/internal/cursor"
	"github.com/kobzarvs/muse/internal/gitinfo"
	"github.com/kobzarvs/muse/internal/input"
	"github.com/kobzarvs/muse/internal/logger"
	"github.com/kobzarvs/muse/internal/session"
	"github.com/kobzarvs/muse/internal/syntax"
	"github.com/kobzarvs/muse/internal/view"
	"github.com/kobzarvs/muse/internal/workspace"
)

// TopRows is the height of the chrome above the text.
const TopRows = 3

// SpanSource is a parse-tree highlighter for the open file.
type SpanSource interface {
	Parse(path, text string) bool
	ParseEdit(path, text string, fromLine int) bool
	Highlights(first, last int) map[int][]syntax.Span
}

type Editor struct {
	buf    *buffer.Buffer
	cursor cursor.Cursor
	repeat *input.Repeat
	keymap map[input.Combo]string

	langs    config.Languages
	language string
	hl       *syntax.Highlighter
	ts       SpanSource
	useTS    bool
	tsActive bool

	cam     view.Camera
	caret   view.Spring2
	console *console.Console
	entries entryCache

	ws      *workspace.Workspace
	picker  workspace.Picker
	player  audio.Player
	session *session.Manager
	git     *gitinfo.Watcher
	zoom    Zoomer

	tabWidth   int
	smart      bool
	audioOn    bool
	fontSize   int
	closeOnRun bool
	gitSymbol  string
	styles     styles

	randIntN func(n int) int
	quit     bool
}

// New builds an editor over ws with an empty buffer. Collaborators that
// talk to the outside world are set with the Set* methods.
func New(cfg config.Config, langs config.Languages, ws *workspace.Workspace) *Editor {
	opts := cfg.Editor
	tabWidth := opts.TabWidth
	if tabWidth < 1 {
		tabWidth = 1
	}
	e := &Editor{
		buf: buffer.New(),
		repeat: input.NewRepeat(
			time.Duration(opts.RepeatDelayMS)*time.Millisecond,
			time.Duration(opts.RepeatIntervalMS)*time.Millisecond,
		),
		keymap: parseKeymap(cfg.Keymap),
		langs:  langs,
		hl:     syntax.NewHighlighter(syntax.Keywords{}),
		useTS:  strings.EqualFold(opts.Highlighter, "tree-sitter"),
		cam: view.Camera{
			Top:     TopRows,
			Left:    view.GutterWidth(1),
			MarginX: opts.FollowMarginX,
			MarginY: opts.FollowMarginY,
		},
		caret: view.NewSpring2(opts.CursorStiffness, opts.CursorDamping),
		console: console.New(
			opts.ConsoleWidth,
			view.NewSpring(opts.ConsoleStiffness, opts.ConsoleDamping),
			view.NewSpring(opts.CursorStiffness, opts.CursorDamping),
		),
		ws:         ws,
		picker:     workspace.NewExecPicker(),
		player:     audio.Nop{},
		git:        gitinfo.NewWatcher(),
		zoom:       NewTerminalZoom(),
		tabWidth:   tabWidth,
		smart:      opts.SmartIndent,
		audioOn:    opts.Audio,
		fontSize:   config.ClampFontSize(opts.FontSize),
		closeOnRun: opts.ConsoleCloseOnRun,
		gitSymbol:  opts.GitBranchSymbol,
		styles:     newStyles(cfg.Theme),
		randIntN:   rand.IntN,
	}
	e.hl.Enabled = opts.Highlight
	return e
}

func (e *Editor) SetPicker(p workspace.Picker)     { e.picker = p }
func (e *Editor) SetSession(m *session.Manager)    { e.session = m }
func (e *Editor) SetZoomer(z Zoomer)               { e.zoom = z }
func (e *Editor) SetTreeSitter(src SpanSource)     { e.ts = src }
func (e *Editor) SetGitWatcher(w *gitinfo.Watcher) { e.git = w }

// SetPlayer installs the key feedback player. A player with a Toggle method
// is switched on or off by :eau.
func (e *Editor) SetPlayer(p audio.Player) {
	if p == nil {
		p = audio.Nop{}
	}
	e.player = p
	if t, ok := p.(*audio.Bell); ok {
		t.Enabled = e.audioOn
	}
}

func (e *Editor) Buffer() *buffer.Buffer          { return e.buf }
func (e *Editor) Cursor() cursor.Cursor           { return e.cursor }
func (e *Editor) Workspace() *workspace.Workspace { return e.ws }
func (e *Editor) Console() *console.Console       { return e.console }
func (e *Editor) Camera() view.Camera             { return e.cam }
func (e *Editor) Language() string                { return e.language }
func (e *Editor) FontSize() int                   { return e.fontSize }

// SetCursor moves the cursor, clamped to the buffer.
func (e *Editor) SetCursor(c cursor.Cursor) {
	e.cursor = c
	e.cursor.Clamp(e.buf)
}

// Resize tells the editor the screen size.
func (e *Editor) Resize(w, h int) {
	e.cam.Width = w
	e.cam.Height = h
}

// OpenPath loads the file at path and moves the working directory next to
// it. It is used for the file restored from the session.
func (e *Editor) OpenPath(path string) error {
	prevFile, prevUnsaved := e.ws.File, e.ws.Unsaved
	e.ws.Open(path)
	if err := e.loadCurrent(); err != nil {
		e.ws.File, e.ws.Unsaved = prevFile, prevUnsaved
		return err
	}
	if dir := filepath.Dir(path); dir != e.ws.Dir {
		if err := e.ws.ChangeDir(dir); err != nil {
			logger.Warn("change dir for restored file", "dir", dir, "error", err)
		}
	}
	return nil
}

// loadCurrent reads the workspace's open file into the buffer and restores
// its saved position. On failure the buffer is unchanged.
func (e *Editor) loadCurrent() error {
	lines, err := e.ws.Load()
	if err != nil {
		logger.Error("load file", "path", e.ws.File, "error", err)
		return err
	}
	e.buf.Replace(lines)
	e.cursor = cursor.Cursor{}
	e.cam.X, e.cam.Y = 0, 0
	if e.session != nil {
		if st, ok := e.session.FileState(e.ws.File); ok {
			e.cursor = cursor.Cursor{Col: st.Col, Line: st.Line}
			e.cam.X, e.cam.Y = st.ScrollX, st.ScrollY
		}
	}
	e.cursor.Clamp(e.buf)
	e.setLanguage(e.ws.File)
	e.snapCaret()
	logger.Info("file loaded", "path", e.ws.File, "lines", e.buf.LineCount())
	return nil
}

// clearBuffer empties the buffer after its file went away.
func (e *Editor) clearBuffer() {
	e.buf.Replace(nil)
	e.cursor = cursor.Cursor{}
	e.cam.X, e.cam.Y = 0, 0
	e.setLanguage("")
	e.snapCaret()
}

// setLanguage reloads the keyword table and parse tree for path.
func (e *Editor) setLanguage(path string) {
	e.language = ""
	if lang := e.langs.Match(path); lang != nil && path != "" {
		e.language = lang.Name
	}
	e.hl.SetKeywords(e.langs.KeywordsFor(path))
	e.tsActive = false
	if e.useTS && e.ts != nil && path != "" {
		e.tsActive = e.ts.Parse(path, e.buf.Text())
	}
}

// rememberFile stores the position in the open file in the session.
func (e *Editor) rememberFile() {
	if e.session == nil {
		return
	}
	if e.ws.File != "" {
		e.session.SetFileState(e.ws.File, session.FileState{
			Line:    e.cursor.Line,
			Col:     e.cursor.Col,
			ScrollY: e.cam.Y,
			ScrollX: e.cam.X,
		})
	}
	e.session.SetActiveDir(e.ws.Dir)
	if err := e.session.Save(); err != nil {
		logger.Warn("save session", "error", err)
	}
}

// Close persists the session. Call it once when the program exits.
func (e *Editor) Close() {
	e.rememberFile()
}

// Quit reports whether a quit directive ran.
func (e *Editor) Quit() bool { return e.quit }

func (e *Editor) cursorWorld() (int, int) {
	line := []rune(e.buf.Line(e.cursor.Line))
	return view.VisualCol(line, e.cursor.Col, e.tabWidth), e.cursor.Line
}

func (e *Editor) snapCaret() {
	x, y := e.cursorWorld()
	e.caret.Snap(float64(x), float64(y))
}

// Frame runs one iteration of the editor: input, model update, camera and
// animation. It returns true when the editor should exit.
func (e *Editor) Frame(snap input.Snapshot, dt time.Duration) bool {
	e.repeat.Advance(snap, dt)
	for _, a := range e.repeat.Activations(snap) {
		if e.quit {
			break
		}
		if e.console.Open {
			e.consoleKey(a)
		} else {
			e.insertKey(a)
		}
	}
	if !e.console.Open {
		e.slide(snap)
	}

	e.cursor.Clamp(e.buf)
	e.cursor.RecognizeWordFragment(e.buf)
	e.syncHighlight()

	if e.git != nil {
		e.git.Update(e.ws.Dir, dt)
	}

	e.cam.Left = view.GutterWidth(e.buf.LineCount())
	x, y := e.cursorWorld()
	e.cam.Follow(x, y)
	e.caret.Step(float64(x), float64(y))
	e.console.Animate(e.cam.Width, e.tabWidth)
	return e.quit
}

// syncHighlight drops highlight state below the first edited line.
func (e *Editor) syncHighlight() {
	dirty := e.buf.DirtyFrom()
	if dirty < 0 {
		return
	}
	e.hl.Invalidate(dirty)
	if e.tsActive {
		e.tsActive = e.ts.ParseEdit(e.ws.File, e.buf.Text(), dirty)
	}
	e.buf.ClearDirty()
}

// insertKey applies one activation to the text: special keys first, then
// the keymap, then navigation. Non-repeatable shortcuts ignore activations
// that come from holding the key.
func (e *Editor) insertKey(a input.Activation) {
	if a.Paste {
		e.pasteKey(a)
		return
	}
	if a.Char != 0 {
		e.typeRune(a.Char)
		return
	}
	switch a.Combo {
	case input.Plain(input.KeyEsc):
		if !a.Repeat {
			e.console.DismissMessage()
		}
	case input.Plain(input.KeyBackspace):
		e.backspace()
		e.player.Delete()
	case input.Plain(input.KeyDelete):
		e.deleteForward()
		e.player.Delete()
	case input.Plain(input.KeyTab):
		e.insertTab()
		e.player.Space()
	case input.Plain(input.KeyEnter):
		e.newline()
		e.player.Return()
	default:
		if action, ok := e.keymap[a.Combo]; ok {
			if repeatable[action] || !a.Repeat {
				e.runAction(action)
			}
			return
		}
		if e.navigate(a.Combo) {
			e.player.Nav()
		}
	}
}

// pasteKey inserts pasted text as it is, without pairing or indentation.
func (e *Editor) pasteKey(a input.Activation) {
	switch {
	case a.Char != 0:
		e.insertRaw(a.Char)
	case a.Combo == input.Plain(input.KeyEnter):
		e.splitLine()
	case a.Combo == input.Plain(input.KeyTab):
		e.insertRaw('\t')
	}
}

// navigate moves the cursor for the arrow family of keys and reports
// whether c was one of them.
func (e *Editor) navigate(c input.Combo) bool {
	switch c {
	case input.Plain(input.KeyLeft):
		e.cursor.MoveLeft(e.buf)
	case input.Plain(input.KeyRight):
		e.cursor.MoveRight(e.buf)
	case input.Plain(input.KeyUp):
		e.cursor.MoveUp(e.buf)
	case input.Plain(input.KeyDown):
		e.cursor.MoveDown(e.buf)
	case input.Ctrl(input.KeyLeft):
		e.cursor.MoveWordLeft(e.buf, cursor.Alnum)
	case input.Ctrl(input.KeyRight):
		e.cursor.MoveWordRight(e.buf, cursor.Alnum)
	case input.Alt(input.KeyLeft):
		e.cursor.MoveWordLeft(e.buf, cursor.Whitespace)
	case input.Alt(input.KeyRight):
		e.cursor.MoveWordRight(e.buf, cursor.Whitespace)
	case input.Ctrl(input.KeyUp):
		e.cursor.JumpUp(e.buf, cursor.JumpLines)
	case input.Ctrl(input.KeyDown):
		e.cursor.JumpDown(e.buf, cursor.JumpLines)
	case input.Plain(input.KeyHome):
		e.cursor.LineStart(e.buf)
	case input.Plain(input.KeyEnd):
		e.cursor.LineEnd(e.buf)
	case input.Plain(input.KeyPgUp):
		e.cursor.JumpUp(e.buf, max(e.cam.TextHeight()-1, 1))
	case input.Plain(input.KeyPgDn):
		e.cursor.JumpDown(e.buf, max(e.cam.TextHeight()-1, 1))
	default:
		return false
	}
	return true
}

// slide moves one line every frame while ctrl+shift+up/down is held.
func (e *Editor) slide(snap input.Snapshot) {
	moved := false
	if snap.Down(input.CtrlShift(input.KeyUp)) {
		e.cursor.MoveUp(e.buf)
		moved = true
	}
	if snap.Down(input.CtrlShift(input.KeyDown)) {
		e.cursor.MoveDown(e.buf)
		moved = true
	}
	if moved {
		e.player.Nav()
	}
}

// consoleKey applies one activation while the console has focus.
func (e *Editor) consoleKey(a input.Activation) {
	c := e.console
	if a.Char != 0 {
		if c.Insert(a.Char) {
			if _, manual := c.Message(); !manual {
				c.DismissMessage()
			}
		}
		return
	}
	if a.Paste {
		return
	}
	w := e.cam.Width
	switch a.Combo {
	case input.Plain(input.KeyEsc):
		if a.Repeat {
			return
		}
		if c.HasMessage() {
			c.DismissMessage()
		} else {
			c.Open = false
		}
	case input.Plain(input.KeyEnter):
		if !a.Repeat {
			e.runConsole()
		}
	case input.Plain(input.KeyTab):
		if !a.Repeat {
			c.Complete(e.ws.BestMatch(workspace.FilterFor(c.Text())))
		}
	case input.Shift(input.KeyLeft):
		c.Resize(1, w)
	case input.Shift(input.KeyRight):
		c.Resize(-1, w)
	case input.Plain(input.KeyBackspace):
		c.Backspace()
	case input.Plain(input.KeyDelete):
		c.Delete()
	case input.Plain(input.KeyLeft):
		c.Left()
	case input.Plain(input.KeyRight):
		c.Right()
	case input.Plain(input.KeyHome):
		c.Home()
	case input.Plain(input.KeyEnd):
		c.End()
	default:
		if e.keymap[a.Combo] == actionToggleConsole && !a.Repeat {
			c.Open = false
		}
	}
}

// runConsole executes the typed directive. A successful directive clears
// the line and, when configured, hands focus back to the text.
func (e *Editor) runConsole() {
	c := e.console
	msg, manual := e.ExecuteDirective(c.Text())
	e.entries.invalidate()
	if msg != "" {
		c.ShowMessage(msg, manual)
		return
	}
	c.DismissMessage()
	c.Clear()
	if e.closeOnRun {
		c.Open = false
	}
}

// entryCache keeps the console listing between frames.
type entryCache struct {
	dir     string
	text    string
	valid   bool
	entries []workspace.Entry
	best    string
}

func (c *entryCache) invalidate() { c.valid = false }

func (e *Editor) listing() ([]workspace.Entry, string) {
	text := e.console.Text()
	if e.entries.valid && e.entries.dir == e.ws.Dir && e.entries.text == text {
		return e.entries.entries, e.entries.best
	}
	f := workspace.FilterFor(text)
	entries, err := e.ws.Entries(f)
	if err != nil {
		logger.Debug("list directory", "dir", e.ws.Dir, "error", err)
	}
	best := ""
	if !f.All && len(entries) > 0 {
		best = entries[0].Name
	}
	e.entries = entryCache{dir: e.ws.Dir, text: text, valid: true, entries: entries, best: best}
	return entries, best
}

func parseKeymap(km config.Keymap) map[input.Combo]string {
	out := make(map[input.Combo]string, len(km))
	keys := make([]string, 0, len(km))
	for k := range km {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		c, err := input.ParseCombo(k)
		if err != nil {
			logger.Warn("skip keymap entry", "combo", k, "error", err)
			continue
		}
		out[c] = km[k]
	}
	return out
}
