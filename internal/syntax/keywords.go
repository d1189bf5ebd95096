package syntax

// KeywordSets lists the keywords of one language by class.
type KeywordSets struct {
	ControlFlow    []string
	TypeQualifiers []string
	CompositeTypes []string
	StorageClass   []string
	Misc           []string
	DataTypes      []string
}

// Keywords is an immutable word to class table. The zero value classifies
// every word as an identifier.
type Keywords struct {
	lookup map[string]Class
}

// NewKeywords builds the table. A word listed in several sets keeps the
// first class in this order: control flow, type qualifiers, composite
// types, storage class, misc, data types.
func NewKeywords(sets KeywordSets) Keywords {
	kw := Keywords{lookup: make(map[string]Class)}
	add := func(words []string, c Class) {
		for _, w := range words {
			if _, ok := kw.lookup[w]; !ok {
				kw.lookup[w] = c
			}
		}
	}
	add(sets.ControlFlow, ControlFlow)
	add(sets.TypeQualifiers, TypeQualifier)
	add(sets.CompositeTypes, CompositeType)
	add(sets.StorageClass, StorageClass)
	add(sets.Misc, Misc)
	add(sets.DataTypes, DataType)
	return kw
}

// Classify returns the class of an identifier-like word.
func (k Keywords) Classify(word string) Class {
	if c, ok := k.lookup[word]; ok {
		return c
	}
	if word != "" && allASCIIDigits(word) {
		return Number
	}
	return Identifier
}

func (k Keywords) Len() int {
	return len(k.lookup)
}

func allASCIIDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
