package treesitter

import (
	"bytes"
	"context"
	"math"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/bash"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/toml"

	"github.com/kobzarvs/muse/internal/config"
	"github.com/kobzarvs/muse/internal/logger"
	"github.com/kobzarvs/muse/internal/syntax"
)

// Engine parses the open file with tree-sitter and answers highlight spans
// for a line range. It runs on the frame loop; every call is synchronous.
type Engine struct {
	langs   config.Languages
	parsers map[string]*sitter.Parser
	queries map[string]*sitter.Query

	path    string
	grammar string
	tree    *sitter.Tree
	source  []byte
}

func New(langs config.Languages) *Engine {
	return &Engine{
		langs:   langs,
		parsers: make(map[string]*sitter.Parser),
		queries: make(map[string]*sitter.Query),
	}
}

func tsLanguageForName(name string) *sitter.Language {
	switch name {
	case "go":
		return golang.GetLanguage()
	case "cpp":
		return cpp.GetLanguage()
	case "java":
		return java.GetLanguage()
	case "rust":
		return rust.GetLanguage()
	case "toml":
		return toml.GetLanguage()
	case "bash":
		return bash.GetLanguage()
	default:
		return nil
	}
}

func queryForName(name string) string {
	switch name {
	case "go":
		return goHighlightQuery
	case "cpp":
		return cppHighlightQuery
	case "java":
		return javaHighlightQuery
	case "rust":
		return rustHighlightQuery
	case "toml":
		return tomlHighlightQuery
	case "bash":
		return bashHighlightQuery
	default:
		return ""
	}
}

// Supports reports whether path has a grammar.
func (e *Engine) Supports(path string) bool {
	lang := e.langs.Match(path)
	return lang != nil && tsLanguageForName(lang.Grammar) != nil
}

// Parse reparses text as the contents of path. It returns false when path
// has no grammar or its query does not compile; the caller falls back to
// the lexer then.
func (e *Engine) Parse(path, text string) bool {
	return e.parse(path, text, -1)
}

// ParseEdit reparses text after an edit that left every line before
// fromLine untouched. The previous tree of the same file is edited and
// reused so only the changed region is parsed again.
func (e *Engine) ParseEdit(path, text string, fromLine int) bool {
	return e.parse(path, text, fromLine)
}

func (e *Engine) parse(path, text string, fromLine int) bool {
	lang := e.langs.Match(path)
	if lang == nil {
		e.reset()
		return false
	}
	tsLang := tsLanguageForName(lang.Grammar)
	if tsLang == nil {
		e.reset()
		return false
	}
	parser := e.parsers[lang.Grammar]
	if parser == nil {
		parser = sitter.NewParser()
		parser.SetLanguage(tsLang)
		e.parsers[lang.Grammar] = parser
	}
	query, ok := e.queries[lang.Grammar]
	if !ok {
		q, err := sitter.NewQuery([]byte(queryForName(lang.Grammar)), tsLang)
		if err != nil {
			logger.Warn("highlight query failed", "grammar", lang.Grammar, "error", err)
			q = nil
		}
		e.queries[lang.Grammar] = q
		query = q
	}
	if query == nil {
		e.reset()
		return false
	}

	source := []byte(text)
	var prev *sitter.Tree
	if fromLine >= 0 && e.tree != nil && e.path == path && e.grammar == lang.Grammar {
		e.tree.Edit(diffEdit(e.source, source, lineOffset(e.source, fromLine)))
		prev = e.tree
	}
	tree, err := parser.ParseCtx(context.Background(), prev, source)
	if err != nil || tree == nil {
		logger.Warn("parse failed", "path", path, "error", err)
		e.reset()
		return false
	}
	if e.tree != nil {
		e.tree.Close()
	}
	e.path = path
	e.grammar = lang.Grammar
	e.tree = tree
	e.source = source
	return true
}

func (e *Engine) reset() {
	if e.tree != nil {
		e.tree.Close()
	}
	e.path, e.grammar, e.tree, e.source = "", "", nil, nil
}

// diffEdit describes the change from old to cur as one replaced byte range.
// Bytes before from are expected to match; the scan restarts at 0 when they
// do not.
func diffEdit(old, cur []byte, from int) sitter.EditInput {
	start := min(from, len(old), len(cur))
	if !bytes.Equal(old[:start], cur[:start]) {
		start = 0
	}
	for start < len(old) && start < len(cur) && old[start] == cur[start] {
		start++
	}
	oldEnd, curEnd := len(old), len(cur)
	for oldEnd > start && curEnd > start && old[oldEnd-1] == cur[curEnd-1] {
		oldEnd--
		curEnd--
	}
	return sitter.EditInput{
		StartIndex:  uint32(start),
		OldEndIndex: uint32(oldEnd),
		NewEndIndex: uint32(curEnd),
		StartPoint:  pointAt(old, start),
		OldEndPoint: pointAt(old, oldEnd),
		NewEndPoint: pointAt(cur, curEnd),
	}
}

// pointAt converts a byte offset to a row and byte column.
func pointAt(src []byte, off int) sitter.Point {
	head := src[:off]
	return sitter.Point{
		Row:    uint32(bytes.Count(head, []byte{'\n'})),
		Column: uint32(off - (bytes.LastIndexByte(head, '\n') + 1)),
	}
}

// lineOffset returns the byte offset where line starts in src.
func lineOffset(src []byte, line int) int {
	off := 0
	for ; line > 0; line-- {
		i := bytes.IndexByte(src[off:], '\n')
		if i < 0 {
			return len(src)
		}
		off += i + 1
	}
	return off
}

// Path is the file of the current tree, "" when nothing is parsed.
func (e *Engine) Path() string { return e.path }

// Highlights returns the spans of lines [first, last], keyed by line.
func (e *Engine) Highlights(first, last int) map[int][]syntax.Span {
	if e.tree == nil || first < 0 || last < first {
		return nil
	}
	return queryHighlights(e.queries[e.grammar], e.tree, e.source, first, last)
}

// Close releases the tree and parsers.
func (e *Engine) Close() {
	e.reset()
	for name, p := range e.parsers {
		p.Close()
		delete(e.parsers, name)
	}
	for name, q := range e.queries {
		if q != nil {
			q.Close()
		}
		delete(e.queries, name)
	}
}

func queryHighlights(query *sitter.Query, tree *sitter.Tree, source []byte, startLine, endLine int) map[int][]syntax.Span {
	if query == nil || tree == nil {
		return nil
	}
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.SetPointRange(
		sitter.Point{Row: uint32(startLine), Column: 0},
		sitter.Point{Row: uint32(endLine + 1), Column: 0},
	)
	cursor.Exec(query, tree.RootNode())

	out := make(map[int][]syntax.Span)
	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}
		match = cursor.FilterPredicates(match, source)
		if match == nil {
			continue
		}
		for _, capture := range match.Captures {
			class, ok := classForCapture(query.CaptureNameForId(capture.Index))
			if !ok {
				continue
			}
			start := capture.Node.StartPoint()
			end := capture.Node.EndPoint()
			for row := int(start.Row); row <= int(end.Row); row++ {
				if row < startLine || row > endLine {
					continue
				}
				startCol := 0
				endCol := math.MaxInt32
				if row == int(start.Row) {
					startCol = int(start.Column)
				}
				if row == int(end.Row) {
					endCol = int(end.Column)
				}
				out[row] = append(out[row], syntax.Span{Start: startCol, End: endCol, Class: class})
			}
		}
	}
	return out
}

// classForCapture maps a capture name such as "keyword.storage" to a
// palette class. Unknown captures are dropped.
func classForCapture(name string) (syntax.Class, bool) {
	switch name {
	case "comment":
		return syntax.Comment, true
	case "string":
		return syntax.String, true
	case "number":
		return syntax.Number, true
	case "keyword":
		return syntax.ControlFlow, true
	case "keyword.storage":
		return syntax.StorageClass, true
	case "keyword.qualifier":
		return syntax.TypeQualifier, true
	case "keyword.composite":
		return syntax.CompositeType, true
	case "type":
		return syntax.DataType, true
	case "constant", "builtin":
		return syntax.Misc, true
	case "include":
		return syntax.Include, true
	case "macro":
		return syntax.Macro, true
	case "operator", "punctuation":
		return syntax.Punctuation, true
	}
	if strings.HasPrefix(name, "function") || name == "variable" || name == "field" || name == "parameter" {
		return syntax.Identifier, true
	}
	return 0, false
}
