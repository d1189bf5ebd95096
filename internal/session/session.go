package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileState is the cursor and scroll position last seen in one file.
type FileState struct {
	Line    int `json:"line"`
	Col     int `json:"col"`
	ScrollY int `json:"scroll_y"`
	ScrollX int `json:"scroll_x"`
}

// Session is everything persisted between runs.
type Session struct {
	Files      map[string]FileState `json:"files"`
	ActiveDir  string               `json:"active_dir,omitempty"`
	ActiveFile string               `json:"active_file,omitempty"`
	LastSaved  time.Time            `json:"last_saved"`
}

// Manager holds the session in memory and writes it on demand. The editor
// is single-threaded, so there is no locking and no background autosave;
// callers Save on file switch and on quit.
type Manager struct {
	session Session
	path    string
	dirty   bool
}

// NewManager loads the session at the default location.
func NewManager() (*Manager, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return Open(path), nil
}

// Open loads the session at path. A missing or corrupt file starts fresh.
func Open(path string) *Manager {
	m := &Manager{
		session: Session{Files: make(map[string]FileState)},
		path:    path,
	}
	m.load()
	return m
}

// Path is XDG_STATE_HOME/muse/session.json, or ~/.local/state/muse.
func Path() (string, error) {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		stateDir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateDir, "muse", "session.json"), nil
}

func (m *Manager) load() {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return
	}
	if s.Files == nil {
		s.Files = make(map[string]FileState)
	}
	m.session = s
}

// Save writes the session if anything changed since the last save.
func (m *Manager) Save() error {
	if !m.dirty {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("session dir: %w", err)
	}
	m.session.LastSaved = time.Now()
	data, err := json.MarshalIndent(m.session, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(m.path, data, 0o644); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	m.dirty = false
	return nil
}

func (m *Manager) FileState(absPath string) (FileState, bool) {
	st, ok := m.session.Files[absPath]
	return st, ok
}

// SetFileState records st for absPath and makes it the active file.
func (m *Manager) SetFileState(absPath string, st FileState) {
	if old, ok := m.session.Files[absPath]; ok && old == st && m.session.ActiveFile == absPath {
		return
	}
	m.session.Files[absPath] = st
	m.session.ActiveFile = absPath
	m.dirty = true
}

// Forget drops the state of a deleted or renamed file.
func (m *Manager) Forget(absPath string) {
	if _, ok := m.session.Files[absPath]; !ok {
		return
	}
	delete(m.session.Files, absPath)
	if m.session.ActiveFile == absPath {
		m.session.ActiveFile = ""
	}
	m.dirty = true
}

func (m *Manager) SetActiveDir(dir string) {
	if m.session.ActiveDir == dir {
		return
	}
	m.session.ActiveDir = dir
	m.dirty = true
}

func (m *Manager) ActiveDir() string {
	return m.session.ActiveDir
}

func (m *Manager) ActiveFile() string {
	return m.session.ActiveFile
}
