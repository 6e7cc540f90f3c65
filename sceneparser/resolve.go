package sceneparser

import "github.com/gogpu/photon/scenedesc"

// PluginChecker reports whether a (tag, impl) pair names a registered
// plug-in factory. A Parser with no checker configured skips the
// check entirely and lets an unresolvable impl surface later, when the
// pipeline builder actually tries to instantiate the node.
type PluginChecker func(tag scenedesc.Tag, impl string) bool

// resolveFile applies a parsed file's declarations to graph: a
// forward-declare pass so later files (or later nodes in the same
// file) may reference identifiers regardless of definition order,
// followed by a define pass that resolves property values, inline
// objects, and base references.
func resolveFile(graph *scenedesc.Graph, checker PluginChecker, nodes []*nodeDecl) error {
	for _, decl := range nodes {
		if decl.identifier == scenedesc.RootIdentifier {
			continue
		}
		tag, ok := scenedesc.ParseTag(decl.tagName)
		if !ok {
			return unknownTagError(decl)
		}
		if err := graph.Declare(decl.identifier, tag); err != nil {
			return err
		}
	}

	for _, decl := range nodes {
		if err := defineTopNode(graph, checker, decl); err != nil {
			return err
		}
	}
	return nil
}

func defineTopNode(graph *scenedesc.Graph, checker PluginChecker, decl *nodeDecl) error {
	if decl.identifier == scenedesc.RootIdentifier {
		node, err := graph.DefineRoot(decl.loc)
		if err != nil {
			return err
		}
		return applyProps(graph, checker, node, decl.props)
	}

	tag, ok := scenedesc.ParseTag(decl.tagName)
	if !ok {
		return unknownTagError(decl)
	}
	if checker != nil && !checker(tag, decl.implName) {
		return &PluginError{Tag: decl.tagName, Impl: decl.implName}
	}

	var base *scenedesc.Node
	if decl.baseRef != "" {
		b, err := graph.Reference(decl.baseRef)
		if err != nil {
			return err
		}
		base = b
	}

	node, err := graph.Define(decl.identifier, tag, decl.implName, decl.loc, base)
	if err != nil {
		return err
	}
	return applyProps(graph, checker, node, decl.props)
}

func applyProps(graph *scenedesc.Graph, checker PluginChecker, node *scenedesc.Node, props []propDecl) error {
	for _, prop := range props {
		value, err := resolveValue(graph, checker, node, prop.value)
		if err != nil {
			return err
		}
		node.AddProperty(prop.name, value)
	}
	return nil
}

func resolveValue(graph *scenedesc.Graph, checker PluginChecker, parent *scenedesc.Node, v valueExpr) (scenedesc.Property, error) {
	switch v.kind {
	case valBool:
		return scenedesc.BoolList(v.bools...), nil
	case valNumber:
		return scenedesc.NumberList(v.numbers...), nil
	case valString:
		return scenedesc.StringList(v.strings...), nil
	case valRef:
		nodes := make([]*scenedesc.Node, 0, len(v.refs))
		for _, id := range v.refs {
			n, err := graph.Reference(id)
			if err != nil {
				return scenedesc.Property{}, err
			}
			nodes = append(nodes, n)
		}
		return scenedesc.NodeRefList(nodes...), nil
	case valInline:
		decl := v.inline
		tag, ok := scenedesc.ParseTag(decl.tagName)
		if !ok {
			return scenedesc.Property{}, unknownTagError(decl)
		}
		if checker != nil && !checker(tag, decl.implName) {
			return scenedesc.Property{}, &PluginError{Tag: decl.tagName, Impl: decl.implName}
		}
		child := graph.DefineInternal(parent, decl.implName, decl.loc, nil)
		if err := applyProps(graph, checker, child, decl.props); err != nil {
			return scenedesc.Property{}, err
		}
		return scenedesc.NodeRef(child), nil
	default:
		return scenedesc.Property{}, nil
	}
}

func unknownTagError(decl *nodeDecl) error {
	return &SyntaxError{
		File:    decl.loc.File,
		Line:    int(decl.loc.Line),
		Column:  int(decl.loc.Column),
		Message: "unknown tag \"" + decl.tagName + "\"",
	}
}
