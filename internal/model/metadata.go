package model

// NoParent is the ParentID of top-level code objects.
const NoParent = -1

// CodeObjectMetaData describes a registered code unit.
type CodeObjectMetaData struct {
	Name       string
	Filename   string
	FirstLine  int
	ParentID   int
	BlockCount int
}

// PredicateKind tells which kind of decision point a predicate instruments.
type PredicateKind string

const (
	// PredicateCompare is a comparison feeding a conditional jump.
	PredicateCompare PredicateKind = "compare"
	// PredicateBool is a truthiness test feeding a conditional jump.
	PredicateBool PredicateKind = "bool"
	// PredicateException is an exception type match in a handler.
	PredicateException PredicateKind = "exception"
	// PredicateForLoop is the "iterator has more items" decision of a loop.
	PredicateForLoop PredicateKind = "for"
)

// PredicateMetaData describes a registered predicate.
type PredicateMetaData struct {
	CodeObjectID int
	Line         int
	Kind         PredicateKind
}

// LineMetaData describes a registered source line. Two registrations with
// equal metadata yield the same line id.
type LineMetaData struct {
	CodeObjectID int
	Filename     string
	LineNumber   int
}

// KnownData is the static registry built during instrumentation.
type KnownData struct {
	ExistingCodeObjects   map[int]CodeObjectMetaData
	BranchLessCodeObjects IDSet
	ExistingPredicates    map[int]PredicateMetaData
	ExistingLines         map[int]LineMetaData
}

// NewKnownData creates an empty registry.
func NewKnownData() KnownData {
	return KnownData{
		ExistingCodeObjects:   make(map[int]CodeObjectMetaData),
		BranchLessCodeObjects: NewIDSet(),
		ExistingPredicates:    make(map[int]PredicateMetaData),
		ExistingLines:         make(map[int]LineMetaData),
	}
}

// Clone deep-copies the registry.
func (k KnownData) Clone() KnownData {
	out := NewKnownData()

	for id, meta := range k.ExistingCodeObjects {
		out.ExistingCodeObjects[id] = meta
	}

	for id := range k.BranchLessCodeObjects {
		out.BranchLessCodeObjects.Add(id)
	}

	for id, meta := range k.ExistingPredicates {
		out.ExistingPredicates[id] = meta
	}

	for id, meta := range k.ExistingLines {
		out.ExistingLines[id] = meta
	}

	return out
}
