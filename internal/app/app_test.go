package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStartLoggingReportsFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("MUSE_LOG_FILE", filepath.Join(blocker, "logs", "muse.log"))

	var stderr bytes.Buffer
	startLogging(&stderr)()
	if !strings.HasPrefix(stderr.String(), "muse: logging disabled:") {
		t.Fatalf("stderr = %q", stderr.String())
	}
}

func TestLoadConfigIsLogged(t *testing.T) {
	home := t.TempDir()
	logPath := filepath.Join(home, "muse.log")
	t.Setenv("MUSE_LOG_FILE", logPath)
	t.Setenv("MUSE_CONFIG_HOME", home)

	var stderr bytes.Buffer
	stop := startLogging(&stderr)
	if stderr.Len() != 0 {
		t.Fatalf("stderr = %q, want empty", stderr.String())
	}
	_, langs, err := loadConfig()
	stop()
	if err != nil {
		t.Fatalf("loadConfig error: %v", err)
	}
	if len(langs.Languages) == 0 {
		t.Fatalf("no built-in languages")
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "config loaded") {
		t.Fatalf("log misses config line:\n%s", data)
	}
}

func TestLoadConfigParseError(t *testing.T) {
	home := t.TempDir()
	t.Setenv("MUSE_LOG_FILE", filepath.Join(home, "muse.log"))
	t.Setenv("MUSE_CONFIG_HOME", home)
	if err := os.WriteFile(filepath.Join(home, "config.toml"), []byte("[editor\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, _, err := loadConfig(); err == nil {
		t.Fatalf("loadConfig accepted a broken config")
	}
}
