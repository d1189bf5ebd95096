package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Keymap maps key combos ("ctrl+d") to action names for the shortcut stage.
type Keymap map[string]string

type EditorOptions struct {
	TabWidth          int     `toml:"tab-width"`
	SmartIndent       bool    `toml:"smart-indent"`
	Highlight         bool    `toml:"highlight"`
	Highlighter       string  `toml:"highlighter"`
	Audio             bool    `toml:"audio"`
	CursorStiffness   float64 `toml:"cursor-stiffness"`
	CursorDamping     float64 `toml:"cursor-damping"`
	ConsoleStiffness  float64 `toml:"console-stiffness"`
	ConsoleDamping    float64 `toml:"console-damping"`
	FollowMarginX     int     `toml:"follow-margin-x"`
	FollowMarginY     int     `toml:"follow-margin-y"`
	RepeatDelayMS     int     `toml:"repeat-delay-ms"`
	RepeatIntervalMS  int     `toml:"repeat-interval-ms"`
	HoldWindowMS      int     `toml:"hold-window-ms"`
	FontSize          int     `toml:"font-size"`
	ConsoleWidth      int     `toml:"console-width"`
	ConsoleCloseOnRun bool    `toml:"console-close-on-run"`
	GitBranchSymbol   string  `toml:"git-branch-symbol"`
}

type Theme struct {
	Theme             string `toml:"theme"`
	Background        string `toml:"background"`
	Identifier        string `toml:"identifier"`
	Punctuation       string `toml:"punctuation"`
	Comment           string `toml:"comment"`
	String            string `toml:"string"`
	Macro             string `toml:"macro"`
	Include           string `toml:"include"`
	Number            string `toml:"number"`
	ControlFlow       string `toml:"control-flow"`
	TypeQualifier     string `toml:"type-qualifier"`
	CompositeType     string `toml:"composite-type"`
	StorageClass      string `toml:"storage-class"`
	Misc              string `toml:"misc"`
	DataType          string `toml:"data-type"`
	Cursor            string `toml:"cursor"`
	LineNumber        string `toml:"line-number"`
	TopBar            string `toml:"top-bar"`
	ConsoleBackground string `toml:"console-background"`
	ConsoleText       string `toml:"console-text"`
	ConsoleFrame      string `toml:"console-frame"`
	SelectedFile      string `toml:"selected-file"`
	Folder            string `toml:"folder"`
	File              string `toml:"file"`
}

type Config struct {
	Editor EditorOptions `toml:"editor"`
	Theme  Theme         `toml:"theme"`
	Keymap Keymap        `toml:"keymap"`
}

const (
	MinFontSize  = 12
	MaxFontSize  = 45
	FontSizeStep = 2
)

func Default() Config {
	return Config{
		Editor: EditorOptions{
			TabWidth:          4,
			SmartIndent:       true,
			Highlight:         true,
			Highlighter:       "lexer",
			Audio:             false,
			CursorStiffness:   0.45,
			CursorDamping:     0.55,
			ConsoleStiffness:  0.35,
			ConsoleDamping:    0.3,
			FollowMarginX:     4,
			FollowMarginY:     2,
			RepeatDelayMS:     300,
			RepeatIntervalMS:  40,
			HoldWindowMS:      120,
			FontSize:          18,
			ConsoleWidth:      60,
			ConsoleCloseOnRun: true,
			GitBranchSymbol:   "git:",
		},
		Theme: Theme{
			Background:        "#200A30",
			Identifier:        "#FF33CE",
			Punctuation:       "#FFFF00",
			Comment:           "#00FF66",
			String:            "#00FFFF",
			Macro:             "#FF66FF",
			Include:           "#00FFFF",
			Number:            "#00CCFF",
			ControlFlow:       "#FF3399",
			TypeQualifier:     "#00FFFF",
			CompositeType:     "#FF00FF",
			StorageClass:      "#FF3399",
			Misc:              "#FFFFAA",
			DataType:          "#FF6F00",
			Cursor:            "#FFFFFF",
			LineNumber:        "#FFB6F1",
			TopBar:            "#1B0B2A",
			ConsoleBackground: "#1B0B2A",
			ConsoleText:       "#FFB6F1",
			ConsoleFrame:      "#FF00FF",
			SelectedFile:      "#FFD700",
			Folder:            "#00FFFF",
			File:              "#FF6F00",
		},
		Keymap: Keymap{
			"ctrl+x":     "delete_line",
			"ctrl+d":     "duplicate_line",
			"shift+up":   "move_line_up",
			"shift+down": "move_line_down",
			"ctrl+w":     "delete_word",
			"ctrl+s":     "save",
			"ctrl+l":     "goto_line_prompt",
			"ctrl+o":     "open_directory",
			"ctrl+f":     "find_prompt",
			"ctrl+n":     "new_file",
			"ctrl+b":     "rename_prompt",
			"ctrl+r":     "remove_file",
			"ctrl+k":     "make_directory_prompt",
			"ctrl+q":     "save_and_quit",
			"ctrl+e":     "quit",
			"ctrl+`":     "toggle_console",
			"ctrl+-":     "font_smaller",
			"ctrl+=":     "font_larger",
			"ctrl+g":     "file_info",
		},
	}
}

// Load returns the defaults overlaid with config.toml. A missing file is not
// an error.
func Load() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var userCfg Config
	md, err := toml.Decode(string(data), &userCfg)
	if err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	mergeEditor(&cfg.Editor, userCfg.Editor, md)
	if userCfg.Theme.Theme != "" {
		cfg.Theme.Theme = userCfg.Theme.Theme
	}
	if cfg.Theme.Theme != "" {
		theme, err := LoadTheme(cfg.Theme.Theme)
		if err != nil {
			return cfg, err
		}
		MergeTheme(&cfg.Theme, theme)
	}
	MergeTheme(&cfg.Theme, userCfg.Theme)
	for k, v := range userCfg.Keymap {
		cfg.Keymap[k] = v
	}

	return cfg, nil
}

func mergeEditor(dst *EditorOptions, src EditorOptions, md toml.MetaData) {
	if src.TabWidth > 0 {
		dst.TabWidth = src.TabWidth
	}
	if md.IsDefined("editor", "smart-indent") {
		dst.SmartIndent = src.SmartIndent
	}
	if md.IsDefined("editor", "highlight") {
		dst.Highlight = src.Highlight
	}
	if src.Highlighter != "" {
		dst.Highlighter = src.Highlighter
	}
	if md.IsDefined("editor", "audio") {
		dst.Audio = src.Audio
	}
	if src.CursorStiffness > 0 {
		dst.CursorStiffness = src.CursorStiffness
	}
	if md.IsDefined("editor", "cursor-damping") {
		dst.CursorDamping = src.CursorDamping
	}
	if src.ConsoleStiffness > 0 {
		dst.ConsoleStiffness = src.ConsoleStiffness
	}
	if md.IsDefined("editor", "console-damping") {
		dst.ConsoleDamping = src.ConsoleDamping
	}
	if md.IsDefined("editor", "follow-margin-x") && src.FollowMarginX >= 0 {
		dst.FollowMarginX = src.FollowMarginX
	}
	if md.IsDefined("editor", "follow-margin-y") && src.FollowMarginY >= 0 {
		dst.FollowMarginY = src.FollowMarginY
	}
	if src.RepeatDelayMS > 0 {
		dst.RepeatDelayMS = src.RepeatDelayMS
	}
	if src.RepeatIntervalMS > 0 {
		dst.RepeatIntervalMS = src.RepeatIntervalMS
	}
	if src.HoldWindowMS > 0 {
		dst.HoldWindowMS = src.HoldWindowMS
	}
	if src.FontSize > 0 {
		dst.FontSize = ClampFontSize(src.FontSize)
	}
	if src.ConsoleWidth > 0 {
		dst.ConsoleWidth = src.ConsoleWidth
	}
	if md.IsDefined("editor", "console-close-on-run") {
		dst.ConsoleCloseOnRun = src.ConsoleCloseOnRun
	}
	if src.GitBranchSymbol != "" {
		dst.GitBranchSymbol = src.GitBranchSymbol
	}
}

// MergeTheme copies every color src sets over dst.
func MergeTheme(dst *Theme, src Theme) {
	if src.Background != "" {
		dst.Background = src.Background
	}
	if src.Identifier != "" {
		dst.Identifier = src.Identifier
	}
	if src.Punctuation != "" {
		dst.Punctuation = src.Punctuation
	}
	if src.Comment != "" {
		dst.Comment = src.Comment
	}
	if src.String != "" {
		dst.String = src.String
	}
	if src.Macro != "" {
		dst.Macro = src.Macro
	}
	if src.Include != "" {
		dst.Include = src.Include
	}
	if src.Number != "" {
		dst.Number = src.Number
	}
	if src.ControlFlow != "" {
		dst.ControlFlow = src.ControlFlow
	}
	if src.TypeQualifier != "" {
		dst.TypeQualifier = src.TypeQualifier
	}
	if src.CompositeType != "" {
		dst.CompositeType = src.CompositeType
	}
	if src.StorageClass != "" {
		dst.StorageClass = src.StorageClass
	}
	if src.Misc != "" {
		dst.Misc = src.Misc
	}
	if src.DataType != "" {
		dst.DataType = src.DataType
	}
	if src.Cursor != "" {
		dst.Cursor = src.Cursor
	}
	if src.LineNumber != "" {
		dst.LineNumber = src.LineNumber
	}
	if src.TopBar != "" {
		dst.TopBar = src.TopBar
	}
	if src.ConsoleBackground != "" {
		dst.ConsoleBackground = src.ConsoleBackground
	}
	if src.ConsoleText != "" {
		dst.ConsoleText = src.ConsoleText
	}
	if src.ConsoleFrame != "" {
		dst.ConsoleFrame = src.ConsoleFrame
	}
	if src.SelectedFile != "" {
		dst.SelectedFile = src.SelectedFile
	}
	if src.Folder != "" {
		dst.Folder = src.Folder
	}
	if src.File != "" {
		dst.File = src.File
	}
}

// ClampFontSize keeps size in [MinFontSize, MaxFontSize].
func ClampFontSize(size int) int {
	return min(max(size, MinFontSize), MaxFontSize)
}

func ThemePath(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "theme", name+".toml"), nil
}

// LoadTheme reads theme/<name>.toml, either flat or wrapped in [theme].
func LoadTheme(name string) (Theme, error) {
	path, err := ThemePath(name)
	if err != nil {
		return Theme{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("load theme %q: %w", name, err)
	}
	var wrap struct {
		Theme Theme `toml:"theme"`
	}
	md, err := toml.Decode(string(data), &wrap)
	if err != nil {
		return Theme{}, fmt.Errorf("parse theme %q: %w", name, err)
	}
	if md.IsDefined("theme") {
		return wrap.Theme, nil
	}
	var t Theme
	if _, err := toml.Decode(string(data), &t); err != nil {
		return Theme{}, fmt.Errorf("parse theme %q: %w", name, err)
	}
	return t, nil
}

func ConfigDir() (string, error) {
	if v := os.Getenv("MUSE_CONFIG_HOME"); v != "" {
		return filepath.Clean(v), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "muse"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "muse"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
