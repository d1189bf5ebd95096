package gitinfo

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// RefreshInterval is how often the top bar re-reads HEAD.
const RefreshInterval = 2 * time.Second

// Branch returns the checked out branch of the repository containing path,
// "detached:<sha7>" for a detached HEAD, or "" outside a repository.
func Branch(path string) string {
	gitDir, err := findGitDir(path)
	if err != nil || gitDir == "" {
		return ""
	}
	branch, err := readHead(gitDir)
	if err != nil {
		return ""
	}
	return branch
}

func Root(path string) string {
	gitDir, err := findGitDir(path)
	if err != nil || gitDir == "" {
		return ""
	}
	return filepath.Dir(gitDir)
}

// Watcher caches the branch of a directory and re-reads it once per
// RefreshInterval of frame time, or at once when the directory changes.
type Watcher struct {
	Interval time.Duration

	dir     string
	branch  string
	elapsed time.Duration
	primed  bool
}

func NewWatcher() *Watcher {
	return &Watcher{Interval: RefreshInterval}
}

// Update advances the watcher by dt and reports whether the branch changed.
func (w *Watcher) Update(dir string, dt time.Duration) bool {
	w.elapsed += dt
	if w.primed && dir == w.dir && w.elapsed < w.Interval {
		return false
	}
	w.elapsed = 0
	w.primed = true
	w.dir = dir
	branch := Branch(dir)
	if branch == w.branch {
		return false
	}
	w.branch = branch
	return true
}

func (w *Watcher) Branch() string {
	return w.branch
}

func findGitDir(path string) (string, error) {
	start := path
	info, err := os.Stat(start)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		start = filepath.Dir(start)
	}
	for {
		gitPath := filepath.Join(start, ".git")
		if info, err := os.Stat(gitPath); err == nil {
			if info.IsDir() {
				return gitPath, nil
			}
			if info.Mode().IsRegular() {
				return readGitFile(start, gitPath)
			}
		}
		parent := filepath.Dir(start)
		if parent == start {
			break
		}
		start = parent
	}
	return "", errors.New("git dir not found")
}

// readGitFile follows a worktree ".git" file of the form "gitdir: <path>".
func readGitFile(dir, gitPath string) (string, error) {
	data, err := os.ReadFile(gitPath)
	if err != nil {
		return "", err
	}
	line := strings.TrimSpace(string(data))
	const prefix = "gitdir:"
	if !strings.HasPrefix(line, prefix) {
		return "", errors.New("malformed .git file")
	}
	target := strings.TrimSpace(strings.TrimPrefix(line, prefix))
	if !filepath.IsAbs(target) {
		target = filepath.Join(dir, target)
	}
	return target, nil
}

func readHead(gitDir string) (string, error) {
	f, err := os.Open(filepath.Join(gitDir, "HEAD"))
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return "", errors.New("empty HEAD")
	}
	line := strings.TrimSpace(scanner.Text())
	const refPrefix = "ref:"
	if strings.HasPrefix(line, refPrefix) {
		ref := strings.TrimSpace(strings.TrimPrefix(line, refPrefix))
		return strings.TrimPrefix(ref, "refs/heads/"), nil
	}
	if len(line) >= 7 {
		return "detached:" + line[:7], nil
	}
	return "detached", nil
}
