package app

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/muse/internal/audio"
	"github.com/kobzarvs/muse/internal/config"
	"github.com/kobzarvs/muse/internal/editor"
	"github.com/kobzarvs/muse/internal/input"
	"github.com/kobzarvs/muse/internal/logger"
	"github.com/kobzarvs/muse/internal/session"
	"github.com/kobzarvs/muse/internal/treesitter"
	"github.com/kobzarvs/muse/internal/workspace"
)

// FrameInterval is the period of the frame ticker.
const FrameInterval = 16 * time.Millisecond

// App is the top-level runtime for muse.
type App struct{}

func New() *App {
	return &App{}
}

func (a *App) Run() error {
	defer startLogging(os.Stderr)()

	cfg, langs, err := loadConfig()
	if err != nil {
		return err
	}

	sm, err := session.NewManager()
	if err != nil {
		logger.Warn("session unavailable", "error", err)
	}

	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	s.EnablePaste()
	defer s.Fini()

	ts := treesitter.New(langs)
	defer ts.Close()

	ed := editor.New(cfg, langs, workspace.New(startDir(sm)))
	ed.SetPlayer(audio.NewBell(s, cfg.Editor.Audio))
	ed.SetTreeSitter(ts)
	if sm != nil {
		ed.SetSession(sm)
		if file := sm.ActiveFile(); file != "" {
			if err := ed.OpenPath(file); err != nil {
				logger.Warn("restore file", "path", file, "error", err)
			}
		}
	}
	defer ed.Close()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		ticker := time.NewTicker(FrameInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				_ = s.PostEvent(tcell.NewEventInterrupt(nil))
			}
		}
	}()

	logger.Info("editor started", "dir", ed.Workspace().Dir)
	tracker := input.NewTracker(time.Duration(cfg.Editor.HoldWindowMS) * time.Millisecond)
	w, h := s.Size()
	ed.Resize(w, h)
	ed.Render(s)
	last := time.Now()
	for {
		switch ev := s.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventKey:
			tracker.Observe(ev)
		case *tcell.EventPaste:
			tracker.ObservePaste(ev)
		case *tcell.EventResize:
			s.Sync()
			w, h := ev.Size()
			ed.Resize(w, h)
		case *tcell.EventInterrupt:
			now := time.Now()
			dt := now.Sub(last)
			last = now
			if ed.Frame(tracker.Snapshot(now), dt) {
				logger.Info("editor stopped")
				return nil
			}
			ed.Render(s)
		}
	}
}

// startLogging opens the log file and returns its closer. A failure is
// reported on w, which must be written before the screen takes the terminal.
func startLogging(w io.Writer) func() {
	if err := logger.Init(logger.DebugEnabled()); err != nil {
		fmt.Fprintln(w, "muse: logging disabled:", err)
		return func() {}
	}
	return logger.Close
}

func loadConfig() (config.Config, config.Languages, error) {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", "error", err)
		return config.Config{}, config.Languages{}, err
	}
	langs, err := config.LoadLanguages()
	if err != nil {
		logger.Error("load languages", "error", err)
		return config.Config{}, config.Languages{}, err
	}
	logger.Info("config loaded",
		"tab_width", cfg.Editor.TabWidth,
		"highlighter", cfg.Editor.Highlighter,
		"theme", cfg.Theme.Theme,
		"languages", len(langs.Languages),
	)
	return cfg, langs, nil
}

// startDir is the directory restored from the session, else the process
// working directory.
func startDir(sm *session.Manager) string {
	if sm != nil {
		if dir := sm.ActiveDir(); dir != "" {
			if info, err := os.Stat(dir); err == nil && info.IsDir() {
				return dir
			}
		}
	}
	dir, err := os.Getwd()
	if err != nil {
		logger.Warn("working directory", "error", err)
		return "."
	}
	return dir
}
