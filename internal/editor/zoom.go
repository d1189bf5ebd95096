package editor

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Zoomer changes the terminal font size.
type Zoomer interface {
	Zoom(in bool, times int) error
}

// TerminalZoom sends Cmd+plus or Cmd+minus keystrokes to the frontmost
// terminal through AppleScript. Other systems have no portable way to do
// this and Zoom is a no-op there.
type TerminalZoom struct {
	GOOS string
	Run  func(name string, args ...string) error
}

func NewTerminalZoom() *TerminalZoom {
	return &TerminalZoom{
		GOOS: runtime.GOOS,
		Run: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
	}
}

func (z *TerminalZoom) Zoom(in bool, times int) error {
	if z.GOOS != "darwin" || times <= 0 {
		return nil
	}
	key := "+"
	if !in {
		key = "-"
	}
	script := fmt.Sprintf(`
		tell application "System Events"
			repeat %d times
				keystroke "%s" using command down
			end repeat
		end tell
	`, times, key)
	return z.Run("osascript", "-e", script)
}
