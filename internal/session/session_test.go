package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPathUsesXDGState(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/tmp/state")
	got, err := Path()
	if err != nil {
		t.Fatalf("Path error: %v", err)
	}
	if got != "/tmp/state/muse/session.json" {
		t.Fatalf("Path = %q, want %q", got, "/tmp/state/muse/session.json")
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "muse", "session.json")
	m := Open(path)
	m.SetActiveDir("/work")
	m.SetFileState("/work/main.c", FileState{Line: 12, Col: 3, ScrollY: 4})
	if err := m.Save(); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	again := Open(path)
	st, ok := again.FileState("/work/main.c")
	if !ok {
		t.Fatalf("file state missing after reload")
	}
	if st.Line != 12 || st.Col != 3 || st.ScrollY != 4 {
		t.Fatalf("state = %+v, want line 12 col 3 scroll 4", st)
	}
	if again.ActiveFile() != "/work/main.c" || again.ActiveDir() != "/work" {
		t.Fatalf("active = %q %q", again.ActiveDir(), again.ActiveFile())
	}
}

func TestSaveSkipsCleanSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	m := Open(path)
	if err := m.Save(); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("clean session was written")
	}
}

func TestCorruptSessionStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	m := Open(path)
	if _, ok := m.FileState("/x"); ok {
		t.Fatalf("unexpected state")
	}
	m.SetFileState("/x", FileState{Line: 1})
	m.Forget("/x")
	if _, ok := m.FileState("/x"); ok || m.ActiveFile() != "" {
		t.Fatalf("Forget left state behind")
	}
}
