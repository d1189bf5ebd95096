package workspace

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

var (
	ErrPickerUnavailable = errors.New("no folder picker available")
	ErrNoCommand         = errors.New("no command given")
)

// Picker asks the user for a directory. ok is false when the user cancels.
type Picker interface {
	PickDirectory(start string) (dir string, ok bool, err error)
}

// ExecPicker drives a native dialog through an external program: osascript
// on darwin, zenity or kdialog elsewhere.
type ExecPicker struct {
	GOOS     string
	LookPath func(file string) (string, error)
	Output   func(name string, args ...string) ([]byte, error)
}

func NewExecPicker() *ExecPicker {
	return &ExecPicker{
		GOOS:     runtime.GOOS,
		LookPath: exec.LookPath,
		Output: func(name string, args ...string) ([]byte, error) {
			return exec.Command(name, args...).Output()
		},
	}
}

func (p *ExecPicker) command(start string) (string, []string, bool) {
	if p.GOOS == "darwin" {
		if _, err := p.LookPath("osascript"); err == nil {
			return "osascript", []string{"-e", `POSIX path of (choose folder with prompt "Open directory")`}, true
		}
		return "", nil, false
	}
	if _, err := p.LookPath("zenity"); err == nil {
		return "zenity", []string{"--file-selection", "--directory", "--filename=" + start + string(filepath.Separator)}, true
	}
	if _, err := p.LookPath("kdialog"); err == nil {
		return "kdialog", []string{"--getexistingdirectory", start}, true
	}
	return "", nil, false
}

func (p *ExecPicker) PickDirectory(start string) (string, bool, error) {
	name, args, found := p.command(start)
	if !found {
		return "", false, ErrPickerUnavailable
	}
	out, err := p.Output(name, args...)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// dialogs exit non-zero on cancel
			return "", false, nil
		}
		return "", false, fmt.Errorf("%s: %w", name, err)
	}
	dir := strings.TrimSpace(string(out))
	if dir == "" {
		return "", false, nil
	}
	return filepath.Clean(dir), true, nil
}

// Run executes cmdline in the working directory and returns stdout followed
// by stderr. The line is split on whitespace; there is no shell.
func (w *Workspace) Run(cmdline string) (string, error) {
	fields := strings.Fields(cmdline)
	if len(fields) == 0 {
		return "", ErrNoCommand
	}
	if w.Dir == "" {
		return "", ErrNoDirectory
	}
	cmd := exec.Command(fields[0], fields[1:]...)
	cmd.Dir = w.Dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()

	out := stdout.String()
	if stderr.Len() > 0 {
		if out != "" {
			out += "\n"
		}
		out += stderr.String()
	}
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return out, fmt.Errorf("run %s: %w", fields[0], err)
	}
	return out, nil
}
