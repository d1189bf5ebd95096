package syntax

// Class is the highlight color class of a token.
type Class int

const (
	Identifier Class = iota
	Space
	Punctuation
	Comment
	String
	Macro
	Include
	Number
	ControlFlow
	TypeQualifier
	CompositeType
	StorageClass
	Misc
	DataType
)

var classNames = [...]string{
	Identifier:    "identifier",
	Space:         "space",
	Punctuation:   "punctuation",
	Comment:       "comment",
	String:        "string",
	Macro:         "macro",
	Include:       "include",
	Number:        "number",
	ControlFlow:   "control-flow",
	TypeQualifier: "type-qualifier",
	CompositeType: "composite-type",
	StorageClass:  "storage-class",
	Misc:          "misc",
	DataType:      "data-type",
}

func (c Class) String() string {
	if c < 0 || int(c) >= len(classNames) {
		return "unknown"
	}
	return classNames[c]
}

// priority decides which class wins where parse-tree spans overlap.
func (c Class) priority() int {
	switch c {
	case Comment:
		return 7
	case String, Include:
		return 6
	case ControlFlow, StorageClass, Macro:
		return 5
	case TypeQualifier, CompositeType, Misc:
		return 4
	case DataType, Number:
		return 3
	case Identifier:
		return 2
	case Punctuation:
		return 1
	default:
		return 0
	}
}
