package usage

import "fmt"

type NodeKind int

const (
	KindCommand NodeKind = iota
	KindPositional
	KindOption
	KindSequence
	KindOptional
	KindRequired
	KindAlternation
	KindRepeated
	KindOptionsShortcut
)

var nodeKindNames = map[NodeKind]string{
	KindCommand:         "Command",
	KindPositional:      "Positional",
	KindOption:          "Option",
	KindSequence:        "Sequence",
	KindOptional:        "Optional",
	KindRequired:        "Required",
	KindAlternation:     "Alternation",
	KindRepeated:        "Repeated",
	KindOptionsShortcut: "OptionsShortcut",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

// NodeID addresses a node in a Grammar's arena.
type NodeID int

// Node is one pattern element. Which fields are meaningful depends on Kind:
// Text holds the literal of a Command and the name of a Positional, Option
// holds the spec id of an Option, Options lists the spec ids an
// OptionsShortcut expands to, and Children holds the contents of groups.
// A Repeated node has exactly one child.
type Node struct {
	Kind     NodeKind
	Text     string
	Option   int
	Options  []int
	Children []NodeID
	Range    Range
}

// IsLeaf reports whether the node binds a variable directly.
func (n Node) IsLeaf() bool {
	switch n.Kind {
	case KindCommand, KindPositional, KindOption:
		return true
	}
	return false
}
