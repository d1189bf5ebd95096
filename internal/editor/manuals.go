package editor

// Version is reported by :ever.
const Version = "muse 0.1.0"

const (
	manualGeneral = iota
	manualFile
	manualDirectory
	manualConfig
	manualOther
	manualControls
)

const fileManual = `File directives:
  :l <N>      go to zero-based line N
  :w          write the open file
  :i          show file info
  :r [f]      remove file f, or the open file
  :b <f>      rename the open file to f
  :f <w>      go to the first occurrence of w
  :c <f>      create file f and open it
  :t $ <c>    run command c in the working directory
  <f>         switch to file f`

const directoryManual = `Directory directives:
  :cd <d>     change directory
  :o, :od     pick a directory with the system dialog
  :md <d>     create directory d
  :rd <d>     remove directory d and everything in it`

const configManual = `Configuration directives:
  :epa <p>    switch to palette p (theme/p.toml)
  :efn <f>    switch font (not available in a terminal)
  :eau        audio on/off
  :esm        smart indentation and pairing on/off
  :efl        fullscreen on/off (not available in a terminal)
  :ehi        highlighting on/off`

const otherManual = `Other directives:
  :e, :q                 quit
  :egman, :man           all manuals
  :efman                 file manual
  :edman                 directory manual
  :ecman                 configuration manual
  :eoman                 this manual
  :ectrl                 controls
  :ever                  version
  :egam, :rand, :roll N  a random number from 0 to N`

const controlsManual = `Controls:
  arrows               move by one char or line
  ctrl+left/right      jump between alphanumeric words
  alt+left/right       jump between whitespace separated words
  ctrl+up/down         jump four lines
  ctrl+shift+up/down   slide while held
  home/end             line start/end
  pgup/pgdn            one screen up/down
  tab                  indent
  ctrl+x               delete line
  ctrl+d               duplicate line
  shift+up/down        move line
  ctrl+w               delete word
  ctrl+s               write
  ctrl+l               go to line
  ctrl+f               find
  ctrl+o               open directory
  ctrl+n               new file
  ctrl+b               rename file
  ctrl+r               remove file
  ctrl+k               make directory
  ctrl+g               file info
  ctrl+q               write and quit
  ctrl+e               quit
  ctrl+` + "`" + `               console
  ctrl+- / ctrl+=      font size

Console:
  enter                run directive
  tab                  complete from the listing
  shift+left/right     widen/narrow the panel
  esc                  close message, then console`

// manual returns the text of manual id, "" for an unknown id.
func manual(id int) string {
	switch id {
	case manualGeneral:
		return fileManual + "\n\n" + directoryManual + "\n\n" + configManual + "\n\n" + otherManual
	case manualFile:
		return fileManual
	case manualDirectory:
		return directoryManual
	case manualConfig:
		return configManual
	case manualOther:
		return otherManual
	case manualControls:
		return controlsManual
	default:
		return ""
	}
}
