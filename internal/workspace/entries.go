package workspace

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

type Entry struct {
	Name  string
	Path  string
	IsDir bool
}

// Filter selects directory entries for the console listing.
type Filter struct {
	Query     string // lowercase substring
	All       bool
	DirsOnly  bool
	FilesOnly bool
}

// FilterFor derives the listing filter from the text typed in the console:
// nothing shows everything, ":cd q" shows directories matching q, and any
// other text shows files matching its last word.
func FilterFor(directive string) Filter {
	lower := strings.ToLower(directive)
	switch {
	case directive == "":
		return Filter{All: true}
	case strings.HasPrefix(lower, ":cd "):
		return Filter{Query: strings.TrimSpace(lower[len(":cd "):]), DirsOnly: true}
	case strings.HasPrefix(directive, ":"):
		fields := strings.Fields(lower)
		q := ""
		if len(fields) > 1 {
			q = fields[len(fields)-1]
		}
		return Filter{Query: q, FilesOnly: true}
	default:
		return Filter{Query: lower, FilesOnly: true}
	}
}

func (f Filter) match(e Entry) bool {
	if f.All {
		return true
	}
	if f.DirsOnly && !e.IsDir {
		return false
	}
	if f.FilesOnly && e.IsDir {
		return false
	}
	return strings.Contains(strings.ToLower(e.Name), f.Query)
}

// Entries lists the working directory through f, directories first, then by
// name.
func (w *Workspace) Entries(f Filter) ([]Entry, error) {
	if w.Dir == "" {
		return nil, ErrNoDirectory
	}
	des, err := os.ReadDir(w.Dir)
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(des))
	for _, de := range des {
		p := filepath.Join(w.Dir, de.Name())
		isDir := de.IsDir()
		if de.Type()&os.ModeSymlink != 0 {
			if info, err := os.Stat(p); err == nil {
				isDir = info.IsDir()
			}
		}
		e := Entry{Name: de.Name(), Path: p, IsDir: isDir}
		if f.match(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsDir != out[j].IsDir {
			return out[i].IsDir
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// BestMatch is the first entry the filter keeps, used for Tab completion.
// An unfiltered listing has no best match.
func (w *Workspace) BestMatch(f Filter) string {
	if f.All {
		return ""
	}
	entries, err := w.Entries(f)
	if err != nil || len(entries) == 0 {
		return ""
	}
	return entries[0].Name
}

// Complete replaces the query part of directive with match.
func Complete(directive, match string) string {
	if match == "" {
		return directive
	}
	lower := strings.ToLower(directive)
	switch {
	case strings.HasPrefix(lower, ":cd "):
		return directive[:len(":cd ")] + match
	case strings.HasPrefix(directive, ":"):
		i := strings.LastIndexAny(directive, " \t")
		if i < 0 {
			return directive + " " + match
		}
		return directive[:i+1] + match
	default:
		return match
	}
}
