package scenedesc

import "sync"

// maxNestingDepth bounds how deep internal-node and reference chains
// may nest before Validate refuses to walk further. It catches
// accidental recursion in definitions; the scene graph otherwise
// forbids cycles entirely.
const maxNestingDepth = 32

// Graph is a scene description: a single root node plus a table of
// uniquely-identified global nodes, built up by concurrent
// Declare/Define/DefineInternal/Reference calls and validated once
// before being handed to a pipeline builder.
type Graph struct {
	mu     sync.RWMutex
	root   *Node
	global map[string]*Node

	pathMu    sync.Mutex
	pathStack []string
}

// NewGraph returns an empty scene description graph with an
// undefined root node.
func NewGraph() *Graph {
	return &Graph{
		root:   newNode("", TagRoot),
		global: make(map[string]*Node),
	}
}

// Declare forward-declares a global node under identifier with tag,
// without defining its implementation. Declaring the same identifier
// more than once is allowed as long as every declaration and the
// eventual definition agree on tag. Declaring RootIdentifier, or
// declaring with TagRoot or TagInternal, fails with SchemaError.
func (g *Graph) Declare(identifier string, tag Tag) error {
	if tag == TagInternal {
		return schemaError(identifier, SourceLocation{}, "invalid forward declaration of internal node")
	}
	if identifier == RootIdentifier || tag == TagRoot {
		return schemaError(identifier, SourceLocation{}, "invalid forward declaration of root node")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	node, exists := g.global[identifier]
	if !exists {
		g.global[identifier] = newNode(identifier, tag)
		return nil
	}
	if node.tag != tag {
		return schemaError(identifier, SourceLocation{},
			"forward-declaration of node has a different tag %q from %q in previous declarations",
			tag, node.tag)
	}
	return nil
}

// Define completes (or creates and completes) a global node:
// identifier, tag, the plug-in implementation name, and its source
// location. If base is non-nil, the node inherits properties it does
// not itself set from base. Defining RootIdentifier or TagRoot here,
// defining TagInternal as a global, or redefining an already-defined
// node, fails with SchemaError; so does a tag mismatch against a prior
// declaration.
func (g *Graph) Define(identifier string, tag Tag, impl string, loc SourceLocation, base *Node) (*Node, error) {
	if identifier == RootIdentifier || tag == TagRoot {
		return nil, schemaError(identifier, loc, "defining root node as a normal global node is not allowed; use DefineRoot")
	}
	if tag == TagInternal {
		return nil, schemaError(identifier, loc, "defining internal node as a global node is not allowed")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	node, exists := g.global[identifier]
	if !exists {
		node = newNode(identifier, tag)
		g.global[identifier] = node
	} else {
		if node.IsDefined() {
			return nil, schemaError(identifier, loc, "redefinition of node in scene description")
		}
		if node.tag != tag {
			return nil, schemaError(identifier, loc,
				"definition of node has a different tag %q from %q in previous declarations",
				tag, node.tag)
		}
	}
	node.implType = impl
	node.location = loc
	node.base = base
	return node, nil
}

// DefineRoot completes the graph's single root node. Calling it twice
// fails with SchemaError.
func (g *Graph) DefineRoot(loc SourceLocation) (*Node, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.root.IsDefined() {
		return nil, schemaError(RootIdentifier, loc, "redefinition of root node in scene description")
	}
	g.root.implType = RootIdentifier
	g.root.location = loc
	return g.root, nil
}

// DefineInternal creates an anonymous child node owned by parent, with
// the given plug-in implementation name and source location. Internal
// nodes have no identifier and are never entered into the graph's
// global table; Validate reaches them only by walking from their
// owning parent.
func (g *Graph) DefineInternal(parent *Node, impl string, loc SourceLocation, base *Node) *Node {
	child := newNode("", TagInternal)
	child.implType = impl
	child.location = loc
	child.base = base

	g.mu.Lock()
	parent.internal = append(parent.internal, child)
	g.mu.Unlock()

	return child
}

// Reference resolves identifier to its global node. The node need not
// yet be defined (forward references are legal until Validate), but
// it must have been at least declared or defined.
func (g *Graph) Reference(identifier string) (*Node, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	node, ok := g.global[identifier]
	if !ok {
		return nil, schemaError(identifier, SourceLocation{}, "global node not found in scene description")
	}
	return node, nil
}

// Root returns the graph's root node.
func (g *Graph) Root() *Node {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.root
}

// PushSourcePath records that an import is now parsing path, for
// diagnostics and for detecting an unbalanced stack at Validate time.
func (g *Graph) PushSourcePath(path string) {
	g.pathMu.Lock()
	g.pathStack = append(g.pathStack, path)
	g.pathMu.Unlock()
}

// PopSourcePath undoes the matching PushSourcePath.
func (g *Graph) PopSourcePath() {
	g.pathMu.Lock()
	if n := len(g.pathStack); n > 0 {
		g.pathStack = g.pathStack[:n-1]
	}
	g.pathMu.Unlock()
}

// CurrentSourcePath returns the path of the import currently being
// parsed, if any.
func (g *Graph) CurrentSourcePath() (string, bool) {
	g.pathMu.Lock()
	defer g.pathMu.Unlock()
	if n := len(g.pathStack); n > 0 {
		return g.pathStack[n-1], true
	}
	return "", false
}

// Validate freezes the graph and checks it for structural soundness:
// the root and every internal node beneath it are defined, every global
// node they reference directly is defined, no internal chain exceeds
// maxNestingDepth, and the source-path stack is balanced. The
// properties of referenced global nodes are not walked. It returns the
// first violation found, visiting each node's properties in
// declaration order.
func (g *Graph) Validate() error {
	g.pathMu.Lock()
	unbalanced := len(g.pathStack) != 0
	g.pathMu.Unlock()
	if unbalanced {
		return schemaError("", SourceLocation{}, "unbalanced import path stack in scene description")
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	return validateNode(g.root, 0)
}

func validateNode(n *Node, depth int) error {
	if depth > maxNestingDepth {
		return schemaError(n.identifier, n.location, "scene description is too deep; recursion in definitions?")
	}
	if !n.IsDefined() {
		return schemaError(n.identifier, n.location, "node is referenced but not defined in the scene description")
	}
	for _, name := range n.propOrder {
		prop := n.props[name]
		if prop.Kind != KindNode {
			continue
		}
		for _, ref := range prop.Nodes {
			if ref == nil {
				continue
			}
			if ref.IsInternal() {
				continue // internal children are validated via their parent's internal list below
			}
			if !ref.IsDefined() {
				return schemaError(ref.identifier, ref.location, "node is referenced but not defined in the scene description")
			}
		}
	}
	for _, child := range n.internal {
		if err := validateNode(child, depth+1); err != nil {
			return err
		}
	}
	return nil
}
