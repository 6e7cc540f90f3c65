package scenedesc

// ValueKind identifies the element type of a Property's value list.
type ValueKind int

const (
	KindBool ValueKind = iota
	KindNumber
	KindString
	KindNode
)

func (k ValueKind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindNode:
		return "node-reference"
	default:
		return "unknown"
	}
}

// Property is a non-empty, homogeneous list of values attached to a
// node under a single name. A scalar property is a list of length 1.
type Property struct {
	Kind    ValueKind
	Bools   []bool
	Numbers []float64
	Strings []string
	Nodes   []*Node
}

// Len returns the number of values in the list, regardless of kind.
func (p Property) Len() int {
	switch p.Kind {
	case KindBool:
		return len(p.Bools)
	case KindNumber:
		return len(p.Numbers)
	case KindString:
		return len(p.Strings)
	case KindNode:
		return len(p.Nodes)
	default:
		return 0
	}
}

// Bool returns a single-valued bool property.
func Bool(v bool) Property { return Property{Kind: KindBool, Bools: []bool{v}} }

// BoolList returns a multi-valued bool property.
func BoolList(vs ...bool) Property { return Property{Kind: KindBool, Bools: vs} }

// Number returns a single-valued numeric property.
func Number(v float64) Property { return Property{Kind: KindNumber, Numbers: []float64{v}} }

// NumberList returns a multi-valued numeric property.
func NumberList(vs ...float64) Property { return Property{Kind: KindNumber, Numbers: vs} }

// String returns a single-valued string property.
func String(v string) Property { return Property{Kind: KindString, Strings: []string{v}} }

// StringList returns a multi-valued string property.
func StringList(vs ...string) Property { return Property{Kind: KindString, Strings: vs} }

// NodeRef returns a single-valued node-reference property.
func NodeRef(v *Node) Property { return Property{Kind: KindNode, Nodes: []*Node{v}} }

// NodeRefList returns a multi-valued node-reference property.
func NodeRefList(vs ...*Node) Property { return Property{Kind: KindNode, Nodes: vs} }

// SourceLocation identifies where in a scene description source a node
// or property was written, for diagnostics. The zero value reports
// false from Valid and carries no useful position.
type SourceLocation struct {
	File   string
	Line   uint32
	Column uint32
}

// Valid reports whether the location carries a source file.
func (l SourceLocation) Valid() bool { return l.File != "" }
