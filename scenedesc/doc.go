// Package scenedesc implements the declarative scene description graph:
// a typed, cross-referencing DAG of nodes built from forward
// declarations, definitions, and references, frozen and validated
// before it is handed to a pipeline builder.
//
// A Graph owns a set of uniquely-identified global nodes plus exactly
// one root node, addressed by the sentinel identifier RootIdentifier.
// Nodes are declared or defined with a Tag drawn from a closed set
// (TagCamera, TagShape, TagSurface, ...); a node may be forward
// declared with Declare and later completed with Define, but its tag
// must agree across both calls. Internal (anonymous) nodes are created
// directly under a parent with DefineInternal and are owned by that
// parent, never by the graph's global table.
//
// Graph is safe for concurrent Declare/Define/DefineInternal/Reference
// calls; a single RWMutex guards the global node table, matching the
// scene parser's use of a shared worker pool for parallel imports.
// Property mutation on a single already-retrieved Node is not
// separately synchronized and must happen from one goroutine.
package scenedesc
