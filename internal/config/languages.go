package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/kobzarvs/muse/internal/syntax"
)

type Language struct {
	Name           string   `toml:"name"`
	FileTypes      []string `toml:"file-types"`
	Grammar        string   `toml:"grammar"`
	ControlFlow    []string `toml:"control-flow"`
	StorageClass   []string `toml:"storage-class"`
	TypeQualifiers []string `toml:"type-qualifiers"`
	CompositeTypes []string `toml:"composite-types"`
	Misc           []string `toml:"misc"`
	DataTypes      []string `toml:"data-types"`
}

// Keywords builds the tokenizer table for the language.
func (l *Language) Keywords() syntax.Keywords {
	if l == nil {
		return syntax.Keywords{}
	}
	return syntax.NewKeywords(syntax.KeywordSets{
		ControlFlow:    l.ControlFlow,
		TypeQualifiers: l.TypeQualifiers,
		CompositeTypes: l.CompositeTypes,
		StorageClass:   l.StorageClass,
		Misc:           l.Misc,
		DataTypes:      l.DataTypes,
	})
}

type Languages struct {
	Languages []Language `toml:"language"`
}

func (l Languages) Match(path string) *Language {
	base := filepath.Base(path)
	baseLower := strings.ToLower(base)
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(base), "."))
	for i := range l.Languages {
		lang := &l.Languages[i]
		for _, ft := range lang.FileTypes {
			ftLower := strings.ToLower(ft)
			if ftLower == ext || ftLower == baseLower {
				return lang
			}
			if strings.HasPrefix(ftLower, ".") && strings.TrimPrefix(ftLower, ".") == ext {
				return lang
			}
		}
	}
	return nil
}

// KeywordsFor returns the keyword table for path, empty for unknown types.
func (l Languages) KeywordsFor(path string) syntax.Keywords {
	return l.Match(path).Keywords()
}

// merge overlays user definitions onto l; a user language replaces a
// built-in one with the same name.
func (l Languages) merge(user Languages) Languages {
	// user entries go first so they win Match on shared file types
	out := make([]Language, 0, len(l.Languages)+len(user.Languages))
	out = append(out, user.Languages...)
	replaced := make(map[string]bool)
	for _, u := range user.Languages {
		replaced[strings.ToLower(u.Name)] = true
	}
	for _, b := range l.Languages {
		if !replaced[strings.ToLower(b.Name)] {
			out = append(out, b)
		}
	}
	return Languages{Languages: out}
}

func BuiltinLanguages() Languages {
	return Languages{Languages: []Language{
		{
			Name:      "cpp",
			FileTypes: []string{"c", "h", "cpp", "hpp", "cc"},
			Grammar:   "cpp",
			ControlFlow: []string{
				"if", "else", "switch", "case", "default",
				"for", "while", "do", "break", "continue",
				"goto", "return", "try", "catch", "finally",
			},
			StorageClass: []string{
				"auto", "static", "extern", "register", "typedef",
				"mutable", "constexpr", "thread_local",
			},
			TypeQualifiers: []string{"const", "volatile", "restrict", "constexpr"},
			CompositeTypes: []string{"struct", "union", "enum", "class"},
			Misc: []string{
				"sizeof", "inline", "virtual", "explicit",
				"namespace", "using", "operator", "template",
				"typename", "friend",
			},
			DataTypes: []string{
				"int", "float", "double", "char", "void",
				"short", "long", "unsigned", "bool",
			},
		},
		{
			Name:      "java",
			FileTypes: []string{"java"},
			Grammar:   "java",
			ControlFlow: []string{
				"if", "else", "switch", "case", "default",
				"for", "while", "do", "break", "continue",
				"return", "try", "catch", "finally", "throw",
				"throws",
			},
			StorageClass:   []string{"final", "abstract", "native", "static", "strictfp"},
			TypeQualifiers: []string{"volatile", "synchronized"},
			CompositeTypes: []string{"class", "interface", "enum", "record"},
			Misc:           []string{"import", "package", "new", "instanceof", "extends", "implements"},
			DataTypes: []string{
				"int", "float", "double", "boolean", "char",
				"short", "long", "byte",
			},
		},
		{
			Name:      "rust",
			FileTypes: []string{"rs"},
			Grammar:   "rust",
			ControlFlow: []string{
				"if", "else", "match", "loop", "while", "for",
				"break", "continue", "return",
			},
			StorageClass:   []string{"static", "const", "mut"},
			TypeQualifiers: []string{"ref", "mut", "unsafe"},
			CompositeTypes: []string{"struct", "enum", "trait", "impl", "union"},
			Misc: []string{
				"crate", "super", "self", "pub", "use",
				"mod", "async", "await", "dyn",
			},
			DataTypes: []string{
				"i8", "i16", "i32", "i64", "i128", "isize",
				"u8", "u16", "u32", "u64", "u128", "usize",
				"f32", "f64", "bool", "char", "str",
			},
		},
		{
			Name:      "go",
			FileTypes: []string{"go"},
			Grammar:   "go",
			ControlFlow: []string{
				"if", "else", "switch", "case", "default", "select",
				"for", "range", "break", "continue", "fallthrough",
				"goto", "return", "defer", "go",
			},
			StorageClass:   []string{"var", "const", "type"},
			CompositeTypes: []string{"struct", "interface", "map", "chan", "func"},
			Misc:           []string{"package", "import", "nil", "true", "false", "iota"},
			DataTypes: []string{
				"int", "int8", "int16", "int32", "int64",
				"uint", "uint8", "uint16", "uint32", "uint64", "uintptr",
				"float32", "float64", "complex64", "complex128",
				"bool", "byte", "rune", "string", "error", "any",
			},
		},
		{
			Name:      "bash",
			FileTypes: []string{"sh", "bash"},
			Grammar:   "bash",
			ControlFlow: []string{
				"if", "then", "else", "elif", "fi", "case", "esac",
				"for", "while", "until", "do", "done", "in", "return", "exit",
			},
			StorageClass: []string{"local", "export", "readonly", "declare"},
			Misc:         []string{"function", "source"},
		},
		{
			Name:      "toml",
			FileTypes: []string{"toml"},
			Grammar:   "toml",
			Misc:      []string{"true", "false"},
		},
	}}
}

// LoadLanguages returns the built-in languages merged with languages.toml.
func LoadLanguages() (Languages, error) {
	builtin := BuiltinLanguages()
	path, err := LanguagesPath()
	if err != nil {
		return builtin, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return builtin, nil
		}
		return builtin, err
	}

	var cfg Languages
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return builtin, fmt.Errorf("parse %s: %w", path, err)
	}
	return builtin.merge(cfg), nil
}

func LanguagesPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "languages.toml"), nil
}
