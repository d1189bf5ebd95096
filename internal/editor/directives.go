package editor

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/kobzarvs/muse/internal/audio"
	"github.com/kobzarvs/muse/internal/config"
	"github.com/kobzarvs/muse/internal/cursor"
	"github.com/kobzarvs/muse/internal/logger"
	"github.com/kobzarvs/muse/internal/workspace"
)

// ExecuteDirective runs one console line. Text starting with ':' is a
// directive; anything else names a file in the working directory to switch
// to. The returned message is empty on success; manual is true when the
// message is a manual page or command output rather than an error.
func (e *Editor) ExecuteDirective(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}
	if !strings.HasPrefix(text, ":") {
		return e.switchTo(text), false
	}

	body := strings.TrimSpace(strings.TrimPrefix(text, ":"))
	fields := strings.Fields(body)
	if len(fields) == 0 {
		return "UnknownDirective", false
	}
	name := strings.ToLower(fields[0])
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}
	logger.Info("directive", "name", name, "arg", arg)

	switch name {
	case "o", "od":
		return e.pickDirectory(), false
	case "b":
		return e.rename(arg), false
	case "f":
		return e.find(arg), false
	case "r":
		return e.removeFile(arg), false
	case "md":
		return e.makeDir(arg), false
	case "rd":
		return e.removeDir(arg), false
	case "c":
		return e.createFile(arg), false
	case "cd":
		return e.changeDir(arg), false
	case "l":
		return e.gotoLine(arg), false
	case "w":
		return e.write(), false
	case "e", "q":
		e.quit = true
		return "", false
	case "i":
		return e.fileInfo(), true
	case "t":
		rest := strings.TrimSpace(body[len(fields[0]):])
		return e.runCommand(strings.TrimSpace(strings.TrimPrefix(rest, "$")))
	case "egman", "man":
		return manual(manualGeneral), true
	case "efman":
		return manual(manualFile), true
	case "edman":
		return manual(manualDirectory), true
	case "ecman":
		return manual(manualConfig), true
	case "eoman":
		return manual(manualOther), true
	case "ectrl":
		return manual(manualControls), true
	case "ever":
		return Version, false
	case "egam", "rand", "roll":
		return e.gamble(arg), false
	case "epa":
		return e.palette(arg), false
	case "efn":
		return "Unsupported <:efn>", false
	case "eau":
		e.toggleAudio()
		return "", false
	case "esm":
		e.smart = !e.smart
		return "", false
	case "ehi":
		e.hl.Enabled = !e.hl.Enabled
		return "", false
	case "efl":
		return "Unsupported <:efl>", false
	default:
		return "UnknownDirective", false
	}
}

// openFile records the position in the current file and loads path. On
// failure the previous file stays open.
func (e *Editor) openFile(path string) error {
	e.rememberFile()
	prevFile, prevUnsaved := e.ws.File, e.ws.Unsaved
	e.ws.Open(path)
	if err := e.loadCurrent(); err != nil {
		e.ws.File, e.ws.Unsaved = prevFile, prevUnsaved
		return err
	}
	e.rememberFile()
	return nil
}

// switchTo opens the file called exactly name, or enters the directory of
// that name.
func (e *Editor) switchTo(name string) string {
	e.rememberFile()
	prevFile, prevUnsaved := e.ws.File, e.ws.Unsaved
	if err := e.ws.SwitchFile(name); err == nil {
		if err := e.loadCurrent(); err == nil {
			e.rememberFile()
			return ""
		}
		e.ws.File, e.ws.Unsaved = prevFile, prevUnsaved
		return "FileNotFound"
	}
	if err := e.ws.ChangeDir(name); err == nil {
		e.rememberFile()
		return ""
	}
	return "FileNotFound"
}

func (e *Editor) pickDirectory() string {
	dir, ok, err := e.picker.PickDirectory(e.ws.Dir)
	if err != nil {
		if errors.Is(err, workspace.ErrPickerUnavailable) {
			return "PickerUnavailable <:o>"
		}
		logger.Error("folder picker", "error", err)
		return "PickerFailed <:o>"
	}
	if !ok {
		return ""
	}
	if err := e.ws.ChangeDir(dir); err != nil {
		return "DirectoryNotFound <:o>"
	}
	e.rememberFile()
	return ""
}

func (e *Editor) rename(name string) string {
	if name == "" {
		return "NoFileNameProvided <:b>"
	}
	old := e.ws.File
	if err := e.ws.Rename(name); err != nil {
		if errors.Is(err, workspace.ErrNameUsed) {
			return "FileNameUsed <:b>"
		}
		logger.Debug("rename", "name", name, "error", err)
		return "FileNotFound <:b>"
	}
	if e.session != nil && old != e.ws.File {
		e.session.Forget(old)
	}
	e.setLanguage(e.ws.File)
	e.rememberFile()
	return ""
}

// find puts the cursor on the first occurrence of word.
func (e *Editor) find(word string) string {
	if word == "" {
		return "NoIdentifierProvided <:f>"
	}
	for i := 0; i < e.buf.LineCount(); i++ {
		line := e.buf.Line(i)
		if at := strings.Index(line, word); at >= 0 {
			e.cursor = cursor.Cursor{Col: utf8.RuneCountInString(line[:at]), Line: i}
			return ""
		}
	}
	return "IdentifierNotFound <:f>"
}

func (e *Editor) removeFile(name string) string {
	if name == "" {
		if e.ws.File == "" {
			return "NoFileNameProvided <:r>"
		}
		name = e.ws.File
	}
	open := e.ws.File
	if err := e.ws.DeleteFile(name); err != nil {
		logger.Debug("remove file", "name", name, "error", err)
		return "FileNotFound <:r>"
	}
	if open != "" && e.ws.File == "" {
		if e.session != nil {
			e.session.Forget(open)
		}
		e.clearBuffer()
	}
	return ""
}

func (e *Editor) makeDir(name string) string {
	if name == "" {
		return "NoDirectoryProvided <:md>"
	}
	if err := e.ws.CreateDir(name); err != nil {
		logger.Debug("make directory", "name", name, "error", err)
		return "DirectoryNameUsed <:md>"
	}
	return ""
}

func (e *Editor) removeDir(name string) string {
	if name == "" {
		return "NoDirectoryProvided <:rd>"
	}
	open := e.ws.File
	if err := e.ws.DeleteDir(name); err != nil {
		logger.Debug("remove directory", "name", name, "error", err)
		return "DirectoryNotFound <:rd>"
	}
	if open != "" && e.ws.File == "" {
		if e.session != nil {
			e.session.Forget(open)
		}
		e.clearBuffer()
	}
	return ""
}

func (e *Editor) createFile(name string) string {
	if name == "" {
		return "NoFileNameProvided <:c>"
	}
	path, err := e.ws.CreateFile(name)
	if err != nil {
		logger.Debug("create file", "name", name, "error", err)
		return "FileNameUsed <:c>"
	}
	if err := e.openFile(path); err != nil {
		return "FileNotFound <:c>"
	}
	return ""
}

func (e *Editor) changeDir(name string) string {
	if name == "" {
		return "NoDirectoryNameProvided <:cd>"
	}
	if err := e.ws.ChangeDir(name); err != nil {
		return "DirectoryNotFound <:cd>"
	}
	e.rememberFile()
	return ""
}

// gotoLine moves to column 0 of the zero-based line arg.
func (e *Editor) gotoLine(arg string) string {
	if arg == "" {
		return "NoLineNumProvided <:l>"
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 0 {
		return "InvalidLineArgument <:l>"
	}
	if n >= e.buf.LineCount() {
		return "LineOutOfRange <:l>"
	}
	e.cursor = cursor.Cursor{Line: n}
	return ""
}

func (e *Editor) write() string {
	if e.ws.File == "" {
		return "NoFileOpen <:w>"
	}
	if err := e.ws.Save(e.buf.Lines()); err != nil {
		logger.Error("write file", "path", e.ws.File, "error", err)
		return "WriteFailed <:w>: " + err.Error()
	}
	logger.Info("file written", "path", e.ws.File, "lines", e.buf.LineCount())
	e.rememberFile()
	return ""
}

func (e *Editor) fileInfo() string {
	chars := 0
	for i := 0; i < e.buf.LineCount(); i++ {
		chars += e.buf.CharCount(i)
	}
	file := e.ws.File
	if file == "" {
		file = "none"
	}
	lang := e.language
	if lang == "" {
		lang = "plain"
	}
	unsaved := "no"
	if e.ws.Unsaved {
		unsaved = "yes"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "File:      %s\n", file)
	fmt.Fprintf(&b, "Directory: %s\n", e.ws.Dir)
	fmt.Fprintf(&b, "Lines:     %d\n", e.buf.LineCount())
	fmt.Fprintf(&b, "Chars:     %d\n", chars)
	fmt.Fprintf(&b, "Unsaved:   %s\n", unsaved)
	fmt.Fprintf(&b, "Language:  %s", lang)
	return b.String()
}

func (e *Editor) runCommand(cmdline string) (string, bool) {
	if cmdline == "" {
		return "NoCommandGiven <:t>", false
	}
	out, err := e.ws.Run(cmdline)
	if err != nil {
		if errors.Is(err, workspace.ErrNoCommand) {
			return "NoCommandGiven <:t>", false
		}
		logger.Warn("run command", "cmd", cmdline, "error", err)
		return "CommandFailed <:t>: " + err.Error(), false
	}
	out = strings.TrimRight(out, "\n")
	if out == "" {
		return "", false
	}
	return out, true
}

// gamble draws a number in [0, arg].
func (e *Editor) gamble(arg string) string {
	if arg == "" {
		return "NoMaxNumProvided <:egam>"
	}
	n, err := strconv.ParseUint(arg, 10, 31)
	if err != nil {
		return "InvalidGambleArgument <:egam>"
	}
	return fmt.Sprintf("Gamble result: %d", e.randIntN(int(n)+1))
}

// palette swaps the colors for theme/<name>.toml laid over the defaults.
func (e *Editor) palette(name string) string {
	if name == "" {
		return "NoPaletteProvided <:epa>"
	}
	t, err := config.LoadTheme(name)
	if err != nil {
		logger.Debug("load palette", "name", name, "error", err)
		return "PaletteNotFound <:epa>"
	}
	theme := config.Default().Theme
	config.MergeTheme(&theme, t)
	e.styles = newStyles(theme)
	return ""
}

func (e *Editor) toggleAudio() {
	e.audioOn = !e.audioOn
	if b, ok := e.player.(*audio.Bell); ok {
		b.Enabled = e.audioOn
	}
}
