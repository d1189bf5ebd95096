package editor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/kobzarvs/muse/internal/config"
	"github.com/kobzarvs/muse/internal/syntax"
	"github.com/kobzarvs/muse/internal/view"
)

type styles struct {
	text         tcell.Style
	classes      map[syntax.Class]tcell.Style
	gutter       tcell.Style
	gutterActive tcell.Style
	topBar       tcell.Style
	cursor       tcell.Style
	console      tcell.Style
	frame        tcell.Style
	folder       tcell.Style
	file         tcell.Style
	selected     tcell.Style
}

func newStyles(t config.Theme) styles {
	bg := parseColor(t.Background, tcell.ColorBlack)
	base := tcell.StyleDefault.Background(bg).Foreground(parseColor(t.Identifier, tcell.ColorWhite))
	fg := func(name string) tcell.Style {
		return base.Foreground(parseColor(name, tcell.ColorWhite))
	}
	panelBg := parseColor(t.ConsoleBackground, bg)
	panel := func(name string) tcell.Style {
		return tcell.StyleDefault.Background(panelBg).Foreground(parseColor(name, tcell.ColorWhite))
	}
	return styles{
		text: base,
		classes: map[syntax.Class]tcell.Style{
			syntax.Identifier:    fg(t.Identifier),
			syntax.Space:         base,
			syntax.Punctuation:   fg(t.Punctuation),
			syntax.Comment:       fg(t.Comment),
			syntax.String:        fg(t.String),
			syntax.Macro:         fg(t.Macro),
			syntax.Include:       fg(t.Include),
			syntax.Number:        fg(t.Number),
			syntax.ControlFlow:   fg(t.ControlFlow),
			syntax.TypeQualifier: fg(t.TypeQualifier),
			syntax.CompositeType: fg(t.CompositeType),
			syntax.StorageClass:  fg(t.StorageClass),
			syntax.Misc:          fg(t.Misc),
			syntax.DataType:      fg(t.DataType),
		},
		gutter:       fg(t.LineNumber),
		gutterActive: fg(t.LineNumber).Bold(true),
		topBar:       tcell.StyleDefault.Background(parseColor(t.TopBar, bg)).Foreground(parseColor(t.ConsoleText, tcell.ColorWhite)),
		cursor:       tcell.StyleDefault.Background(parseColor(t.Cursor, tcell.ColorWhite)).Foreground(bg),
		console:      panel(t.ConsoleText),
		frame:        panel(t.ConsoleFrame),
		folder:       panel(t.Folder),
		file:         panel(t.File),
		selected:     panel(t.SelectedFile).Bold(true),
	}
}

func (st styles) class(c syntax.Class) tcell.Style {
	if s, ok := st.classes[c]; ok {
		return s
	}
	return st.text
}

// Render draws one frame and shows it.
func (e *Editor) Render(s tcell.Screen) {
	w, h := s.Size()
	e.Resize(w, h)
	e.cam.Left = view.GutterWidth(e.buf.LineCount())

	s.SetStyle(e.styles.text)
	s.Clear()
	e.renderTopBar(s, w)
	e.renderText(s, w)
	e.renderCaret(s)
	if e.console.Open {
		e.renderConsole(s, w, h)
	}
	e.renderMessage(s, w, h)
	s.HideCursor()
	s.Show()
}

func (e *Editor) renderTopBar(s tcell.Screen, w int) {
	mode := "INSERT"
	if e.console.Open {
		mode = "CONSOLE"
	}
	name := e.ws.FileName()
	if name == "" {
		name = "[No File]"
	}
	if e.ws.Unsaved {
		name = "*" + name
	}
	left := fmt.Sprintf(" %s | %s", mode, e.ws.Dir)
	right := ""
	if branch := e.gitBranch(); branch != "" {
		right = formatGitBranch(e.gitSymbol, branch) + " "
	}
	drawRunes(s, 0, 0, composeStatusLine(left, right, w), e.styles.topBar)

	left = " " + name
	right = fmt.Sprintf("Ln %d, Col %d", e.cursor.Line, e.cursor.Col)
	if frag := e.cursor.Fragment(); frag != "" {
		right += " | " + view.Truncate(frag, 24)
	}
	right += " | " + strconv.Itoa(e.fontSize) + "pt "
	drawRunes(s, 0, 1, composeStatusLine(left, right, w), e.styles.topBar)
}

func (e *Editor) gitBranch() string {
	if e.git == nil {
		return ""
	}
	return e.git.Branch()
}

func (e *Editor) renderText(s tcell.Screen, w int) {
	first, last := e.cam.VisibleRange(e.buf.LineCount())
	if last < first {
		return
	}
	lines := e.lineTokens(first, last)
	for i := first; i <= last && i-first < len(lines); i++ {
		_, y := e.cam.WorldToScreen(0, i)
		e.drawGutter(s, y, w, i)
		e.drawTokens(s, y, w, lines[i-first])
	}
}

// lineTokens colors lines [first, last] with the parse tree when one is
// active and the lexer otherwise.
func (e *Editor) lineTokens(first, last int) [][]syntax.Token {
	if !e.tsActive || !e.hl.Enabled {
		return e.hl.Lines(e.buf, first, last+1)
	}
	spans := e.ts.Highlights(first, last)
	out := make([][]syntax.Token, 0, last-first+1)
	for i := first; i <= last; i++ {
		out = append(out, syntax.FromSpans(e.buf.Line(i), spans[i]))
	}
	return out
}

func (e *Editor) drawGutter(s tcell.Screen, y, w, line int) {
	gutterWidth := e.cam.Left
	digits := max(gutterWidth-2, 1)
	style := e.styles.gutter
	if line == e.cursor.Line {
		style = e.styles.gutterActive
	}
	num := fmt.Sprintf("%*d", digits, line)
	for i, r := range num {
		x := 1 + i
		if x >= gutterWidth-1 || x >= w {
			break
		}
		s.SetContent(x, y, r, nil, style)
	}
}

// drawTokens draws one line of tokens. Tokens left of the scroll offset are
// skipped whole and drawing stops at the right edge.
func (e *Editor) drawTokens(s tcell.Screen, y, w int, toks []syntax.Token) {
	vx := 0
	for _, tok := range toks {
		end := vx + view.Measure(tok.Text, vx, e.tabWidth)
		if end <= e.cam.X {
			vx = end
			continue
		}
		style := e.styles.class(tok.Class)
		for _, r := range tok.Text {
			cw := view.RuneWidth(r, vx, e.tabWidth)
			sx, _ := e.cam.WorldToScreen(vx, 0)
			vx += cw
			if sx >= w {
				return
			}
			if sx < e.cam.Left || cw == 0 {
				continue
			}
			if r == '\t' {
				for k := 0; k < cw && sx+k < w; k++ {
					s.SetContent(sx+k, y, ' ', nil, style)
				}
				continue
			}
			s.SetContent(sx, y, r, nil, style)
		}
	}
}

// renderCaret inverts the cell under the animated cursor.
func (e *Editor) renderCaret(s tcell.Screen) {
	cx, cy := e.caret.Cell()
	sx, sy := e.cam.WorldToScreen(cx, cy)
	if sx < e.cam.Left || sx >= e.cam.Width || sy < e.cam.Top || sy >= e.cam.Height {
		return
	}
	r := runeAt([]rune(e.buf.Line(cy)), cx, e.tabWidth)
	s.SetContent(sx, sy, r, nil, e.styles.cursor)
}

// runeAt is the char covering visual column x of line, a space past the end
// or inside a tab.
func runeAt(line []rune, x, tabWidth int) rune {
	vx := 0
	for _, r := range line {
		cw := view.RuneWidth(r, vx, tabWidth)
		if x < vx+cw {
			if r == '\t' {
				return ' '
			}
			return r
		}
		vx += cw
	}
	return ' '
}

const consolePrompt = "> "

func (e *Editor) renderConsole(s tcell.Screen, w, h int) {
	st := e.styles
	pw := min(e.console.Width(w), w)
	x0 := w - pw
	fillRect(s, x0, 0, pw, h, st.console)
	drawBox(s, x0, 0, pw, h, st.frame, "console")
	if pw < 6 || h < 4 {
		return
	}

	// directive line
	tx := x0 + 2
	drawString(s, tx, 1, consolePrompt, st.frame)
	textX := tx + len(consolePrompt)
	avail := pw - 4 - len(consolePrompt)
	scroll := max(0, e.console.CaretTarget(e.tabWidth)-avail+1)
	vx := 0
	for _, r := range e.console.Text() {
		cw := view.RuneWidth(r, vx, e.tabWidth)
		sx := textX + vx - scroll
		vx += cw
		if sx < textX {
			continue
		}
		if sx+cw > textX+avail {
			break
		}
		if r == '\t' {
			r = ' '
		}
		s.SetContent(sx, 1, r, nil, st.console)
	}
	if cx := textX + e.console.Caret() - scroll; cx >= textX && cx < textX+avail {
		r := runeAt([]rune(e.console.Text()), e.console.Caret(), e.tabWidth)
		s.SetContent(cx, 1, r, nil, st.cursor)
	}

	s.SetContent(x0, 2, '├', nil, st.frame)
	for x := x0 + 1; x < w-1; x++ {
		s.SetContent(x, 2, '─', nil, st.frame)
	}
	s.SetContent(w-1, 2, '┤', nil, st.frame)

	entries, best := e.listing()
	y := 3
	for _, en := range entries {
		if y >= h-1 {
			break
		}
		style, name := st.file, en.Name
		if en.IsDir {
			style, name = st.folder, en.Name+"/"
		}
		if best != "" && en.Name == best {
			style = st.selected
		}
		drawString(s, tx, y, view.Truncate(name, pw-4), style)
		y++
	}
}

// renderMessage draws the result of the last directive in a centered box.
func (e *Editor) renderMessage(s tcell.Screen, w, h int) {
	msg, manual := e.console.Message()
	if msg == "" {
		return
	}
	lines := strings.Split(strings.ReplaceAll(msg, "\t", strings.Repeat(" ", e.tabWidth)), "\n")
	textWidth := 0
	for _, l := range lines {
		textWidth = max(textWidth, runewidth.StringWidth(l))
	}
	bw := min(textWidth+4, w)
	bh := min(len(lines)+2, h)
	x0, y0 := (w-bw)/2, (h-bh)/2
	title := "message"
	if manual {
		title = "manual"
	}
	fillRect(s, x0, y0, bw, bh, e.styles.console)
	drawBox(s, x0, y0, bw, bh, e.styles.frame, title)
	for i, l := range lines {
		y := y0 + 1 + i
		if y >= y0+bh-1 {
			break
		}
		drawString(s, x0+2, y, view.Truncate(l, bw-4), e.styles.console)
	}
	if hint := " esc "; bw > len(hint)+4 {
		drawString(s, x0+bw-len(hint)-2, y0+bh-1, hint, e.styles.frame)
	}
}

func fillRect(s tcell.Screen, x0, y0, w, h int, style tcell.Style) {
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			s.SetContent(x, y, ' ', nil, style)
		}
	}
}

func drawBox(s tcell.Screen, x0, y0, w, h int, style tcell.Style, title string) {
	if w < 2 || h < 2 {
		return
	}
	x1, y1 := x0+w-1, y0+h-1
	for x := x0 + 1; x < x1; x++ {
		s.SetContent(x, y0, '─', nil, style)
		s.SetContent(x, y1, '─', nil, style)
	}
	for y := y0 + 1; y < y1; y++ {
		s.SetContent(x0, y, '│', nil, style)
		s.SetContent(x1, y, '│', nil, style)
	}
	s.SetContent(x0, y0, '╭', nil, style)
	s.SetContent(x1, y0, '╮', nil, style)
	s.SetContent(x0, y1, '╰', nil, style)
	s.SetContent(x1, y1, '╯', nil, style)
	if title != "" && w > len(title)+4 {
		drawString(s, x0+2, y0, " "+title+" ", style)
	}
}

// drawString draws str from x and returns the column after it.
func drawString(s tcell.Screen, x, y int, str string, style tcell.Style) int {
	for _, r := range str {
		s.SetContent(x, y, r, nil, style)
		x += max(runewidth.RuneWidth(r), 1)
	}
	return x
}

func drawRunes(s tcell.Screen, x, y int, rs []rune, style tcell.Style) {
	for i, r := range rs {
		s.SetContent(x+i, y, r, nil, style)
	}
}

func composeStatusLine(left, right string, width int) []rune {
	if width <= 0 {
		return nil
	}
	leftRunes := []rune(left)
	rightRunes := []rune(right)
	if len(leftRunes)+len(rightRunes) > width {
		if len(rightRunes) >= width {
			rightRunes = rightRunes[len(rightRunes)-width:]
			leftRunes = nil
		} else {
			leftRunes = leftRunes[:width-len(rightRunes)]
		}
	}
	line := make([]rune, 0, width)
	line = append(line, leftRunes...)
	for i := len(leftRunes) + len(rightRunes); i < width; i++ {
		line = append(line, ' ')
	}
	return append(line, rightRunes...)
}

func formatGitBranch(symbol, branch string) string {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		symbol = "git:"
	}
	if strings.HasSuffix(symbol, ":") {
		return symbol + branch
	}
	return symbol + " " + branch
}

// parseColor accepts "#RRGGBB", a color name or "default".
func parseColor(name string, fallback tcell.Color) tcell.Color {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	if strings.HasPrefix(name, "#") && len(name) == 7 {
		v, err := strconv.ParseUint(name[1:], 16, 32)
		if err != nil {
			return fallback
		}
		return tcell.NewRGBColor(int32(v>>16&0xFF), int32(v>>8&0xFF), int32(v&0xFF))
	}
	name = strings.ToLower(name)
	if name == "default" {
		return tcell.ColorDefault
	}
	if c := tcell.GetColor(name); c != tcell.ColorDefault {
		return c
	}
	return fallback
}
