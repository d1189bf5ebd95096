package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrNoFile      = errors.New("no file open")
	ErrNameUsed    = errors.New("name already used")
	ErrNotFound    = errors.New("not found")
	ErrNoDirectory = errors.New("no working directory")
)

// Workspace is the editor's view of the filesystem: a working directory, the
// open file inside it and whether the buffer differs from disk.
type Workspace struct {
	Dir     string
	File    string
	Unsaved bool
}

func New(dir string) *Workspace {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return &Workspace{Dir: dir}
}

// FileName is the base name of the open file, or "".
func (w *Workspace) FileName() string {
	if w.File == "" {
		return ""
	}
	return filepath.Base(w.File)
}

// LoadLines reads path as lines. A trailing newline does not add an empty
// line, "\r\n" endings are accepted and an empty file is one empty line.
// Invalid UTF-8 is replaced with U+FFFD.
func LoadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text := strings.ToValidUTF8(strings.TrimSuffix(string(data), "\n"), "\uFFFD")
	if text == "" {
		return []string{""}, nil
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines, nil
}

// WriteLines overwrites path, terminating every line with "\n".
func WriteLines(path string, lines []string) error {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// Load reads the open file.
func (w *Workspace) Load() ([]string, error) {
	if w.File == "" {
		return nil, ErrNoFile
	}
	lines, err := LoadLines(w.File)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", w.File, err)
	}
	w.Unsaved = false
	return lines, nil
}

// Save writes lines to the open file. Unsaved stays set on failure.
func (w *Workspace) Save(lines []string) error {
	if w.File == "" {
		return ErrNoFile
	}
	if err := WriteLines(w.File, lines); err != nil {
		return fmt.Errorf("write %s: %w", w.File, err)
	}
	w.Unsaved = false
	return nil
}

func (w *Workspace) path(name string) (string, error) {
	if w.Dir == "" {
		return "", ErrNoDirectory
	}
	if filepath.IsAbs(name) {
		return filepath.Clean(name), nil
	}
	return filepath.Join(w.Dir, name), nil
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// Rename renames the open file within its directory.
func (w *Workspace) Rename(name string) error {
	if w.File == "" {
		return ErrNoFile
	}
	target := filepath.Join(filepath.Dir(w.File), name)
	if target == w.File {
		return nil
	}
	if exists(target) {
		return fmt.Errorf("rename to %s: %w", name, ErrNameUsed)
	}
	if err := os.Rename(w.File, target); err != nil {
		return fmt.Errorf("rename %s: %w: %w", w.File, ErrNotFound, err)
	}
	w.File = target
	return nil
}

// CreateFile creates an empty file and returns its path. It never
// overwrites.
func (w *Workspace) CreateFile(name string) (string, error) {
	p, err := w.path(name)
	if err != nil {
		return "", err
	}
	f, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("create %s: %w", name, ErrNameUsed)
		}
		return "", fmt.Errorf("create %s: %w", name, err)
	}
	return p, f.Close()
}

// DeleteFile removes a regular file. Deleting the open file closes it.
func (w *Workspace) DeleteFile(name string) error {
	p, err := w.path(name)
	if err != nil {
		return err
	}
	info, err := os.Stat(p)
	if err != nil || info.IsDir() {
		return fmt.Errorf("delete %s: %w", name, ErrNotFound)
	}
	if err := os.Remove(p); err != nil {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	if p == w.File {
		w.File = ""
		w.Unsaved = false
	}
	return nil
}

func (w *Workspace) CreateDir(name string) error {
	p, err := w.path(name)
	if err != nil {
		return err
	}
	if exists(p) {
		return fmt.Errorf("mkdir %s: %w", name, ErrNameUsed)
	}
	if err := os.MkdirAll(p, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", name, err)
	}
	return nil
}

// DeleteDir removes a directory and everything under it.
func (w *Workspace) DeleteDir(name string) error {
	p, err := w.path(name)
	if err != nil {
		return err
	}
	info, err := os.Stat(p)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("rmdir %s: %w", name, ErrNotFound)
	}
	if err := os.RemoveAll(p); err != nil {
		return fmt.Errorf("rmdir %s: %w", name, err)
	}
	if w.File != "" && strings.HasPrefix(w.File, p+string(filepath.Separator)) {
		w.File = ""
		w.Unsaved = false
	}
	return nil
}

// ChangeDir moves the working directory, relative to the current one.
func (w *Workspace) ChangeDir(rel string) error {
	p, err := w.path(rel)
	if err != nil {
		return err
	}
	info, err := os.Stat(p)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("cd %s: %w", rel, ErrNotFound)
	}
	if resolved, err := filepath.EvalSymlinks(p); err == nil {
		p = resolved
	}
	w.Dir = p
	return nil
}

// SwitchFile makes the regular file called exactly name in the working
// directory the open file. On failure nothing changes.
func (w *Workspace) SwitchFile(name string) error {
	if w.Dir == "" {
		return ErrNoDirectory
	}
	entries, err := os.ReadDir(w.Dir)
	if err != nil {
		return fmt.Errorf("switch %s: %w", name, err)
	}
	for _, e := range entries {
		if e.Name() != name {
			continue
		}
		p := filepath.Join(w.Dir, name)
		info, err := os.Stat(p)
		if err != nil || !info.Mode().IsRegular() {
			break
		}
		w.File = p
		w.Unsaved = false
		return nil
	}
	return fmt.Errorf("switch %s: %w", name, ErrNotFound)
}

// Open makes path the open file without reading it.
func (w *Workspace) Open(path string) {
	w.File = path
	w.Unsaved = false
}
