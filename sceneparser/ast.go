package sceneparser

import "github.com/gogpu/photon/scenedesc"

// nodeDecl is a parsed global or internal node declaration, before its
// references have been resolved against the graph.
type nodeDecl struct {
	identifier string // "" for inline (internal) nodes
	tagName    string
	implName   string
	baseRef    string // "" if no base=@id clause
	loc        scenedesc.SourceLocation
	props      []propDecl
}

type propDecl struct {
	name  string
	value valueExpr
}

type valueKind int

const (
	valBool valueKind = iota
	valNumber
	valString
	valRef
	valInline
)

func (k valueKind) String() string {
	switch k {
	case valBool:
		return "bool"
	case valNumber:
		return "number"
	case valString:
		return "string"
	case valRef:
		return "node-reference"
	case valInline:
		return "inline-object"
	default:
		return "unknown"
	}
}

// valueExpr is a property's right-hand side: a homogeneous scalar
// list, a list of @identifier references, or a single inline nested
// object. A bare scalar is represented as a length-1 list, matching
// spec.md §6's "a bare scalar is a list of length 1".
type valueExpr struct {
	kind    valueKind
	bools   []bool
	numbers []float64
	strings []string
	refs    []string
	inline  *nodeDecl
}
