package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPathEnv(t *testing.T) {
	t.Setenv("MUSE_LOG_FILE", "/tmp/muse-test.log")
	if got, _ := Path(); got != "/tmp/muse-test.log" {
		t.Fatalf("Path = %q, want %q", got, "/tmp/muse-test.log")
	}
	t.Setenv("MUSE_LOG_FILE", "")
	t.Setenv("MUSE_CONFIG_HOME", "/tmp/cfg")
	if got, _ := Path(); got != "/tmp/cfg/muse.log" {
		t.Fatalf("Path = %q, want %q", got, "/tmp/cfg/muse.log")
	}
	t.Setenv("MUSE_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got, _ := Path(); got != "/tmp/xdg/muse/muse.log" {
		t.Fatalf("Path = %q, want %q", got, "/tmp/xdg/muse/muse.log")
	}
}

func TestInitWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "muse.log")
	t.Setenv("MUSE_LOG_FILE", path)
	if err := Init(true); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	Debug("frame", "dt", 16)
	Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "logger initialized") || !strings.Contains(string(data), "frame") {
		t.Fatalf("log = %q, missing entries", data)
	}
	// wrappers are safe after Close
	Info("ignored")
}
