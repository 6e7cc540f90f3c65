package sceneparser

import (
	"fmt"
	"strconv"

	"github.com/gogpu/photon/scenedesc"
)

// fileParser turns one source file's tokens into an AST: a flat list
// of import paths and top-level node declarations. It performs no
// graph mutation — that happens in a later phase shared across
// sequentially and concurrently parsed files, so that every Declare and
// Define call happens through scenedesc.Graph's own synchronization
// rather than this package's.
type fileParser struct {
	lex *lexer
	tok token
	eof bool
}

func newFileParser(file, source string) *fileParser {
	p := &fileParser{lex: newLexer(file, source)}
	p.advance()
	return p
}

func (p *fileParser) advance() {
	p.tok = p.lex.next()
	p.eof = p.tok.kind == tokEOF
}

func (p *fileParser) loc() scenedesc.SourceLocation {
	return scenedesc.SourceLocation{File: p.lex.file, Line: uint32(p.tok.line), Column: uint32(p.tok.column)}
}

func (p *fileParser) errorf(format string, args ...any) error {
	return &SyntaxError{File: p.lex.file, Line: p.tok.line, Column: p.tok.column, Message: fmt.Sprintf(format, args...)}
}

func (p *fileParser) expectPunct(r string) error {
	if p.tok.kind != tokPunct || p.tok.text != r {
		return p.errorf("expected %q, got %q", r, p.tok.text)
	}
	p.advance()
	return nil
}

func (p *fileParser) expectIdent() (string, error) {
	if p.tok.kind != tokIdent {
		return "", p.errorf("expected identifier, got %q", p.tok.text)
	}
	text := p.tok.text
	p.advance()
	return text, nil
}

// parseFile parses the whole token stream into import paths and
// top-level node declarations.
func (p *fileParser) parseFile() ([]string, []*nodeDecl, error) {
	var imports []string
	var nodes []*nodeDecl

	for !p.eof {
		if p.tok.kind == tokIdent && p.tok.text == "import" {
			p.advance()
			if p.tok.kind != tokString {
				return nil, nil, p.errorf("expected string path after import, got %q", p.tok.text)
			}
			imports = append(imports, p.tok.text)
			p.advance()
			continue
		}

		decl, err := p.parseNodeDecl(true)
		if err != nil {
			return nil, nil, err
		}
		nodes = append(nodes, decl)
	}
	return imports, nodes, nil
}

// parseNodeDecl parses `identifier: Tag [impl=name] [base=@id] { props }`.
// When topLevel is false the leading `identifier :` is absent (an
// inline node is introduced directly by its tag keyword).
func (p *fileParser) parseNodeDecl(topLevel bool) (*nodeDecl, error) {
	decl := &nodeDecl{loc: p.loc()}

	if topLevel {
		id, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		decl.identifier = id
		if err := p.expectPunct(":"); err != nil {
			return nil, err
		}
	}

	tagName, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	decl.tagName = tagName

	for p.tok.kind == tokIdent && (p.tok.text == "impl" || p.tok.text == "base") {
		keyword := p.tok.text
		p.advance()
		if err := p.expectPunct("="); err != nil {
			return nil, err
		}
		switch keyword {
		case "impl":
			impl, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			decl.implName = impl
		case "base":
			if err := p.expectPunct("@"); err != nil {
				return nil, err
			}
			ref, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			decl.baseRef = ref
		}
	}

	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	for !(p.tok.kind == tokPunct && p.tok.text == "}") {
		prop, err := p.parsePropDecl()
		if err != nil {
			return nil, err
		}
		decl.props = append(decl.props, prop)
	}
	if err := p.expectPunct("}"); err != nil {
		return nil, err
	}
	return decl, nil
}

func (p *fileParser) parsePropDecl() (propDecl, error) {
	name, err := p.expectIdent()
	if err != nil {
		return propDecl{}, err
	}
	if err := p.expectPunct("="); err != nil {
		return propDecl{}, err
	}
	value, err := p.parseValue()
	if err != nil {
		return propDecl{}, err
	}
	return propDecl{name: name, value: value}, nil
}

func (p *fileParser) parseValue() (valueExpr, error) {
	if p.tok.kind == tokPunct && p.tok.text == "[" {
		p.advance()
		var items []valueExpr
		for !(p.tok.kind == tokPunct && p.tok.text == "]") {
			item, err := p.parseScalarOrRef()
			if err != nil {
				return valueExpr{}, err
			}
			items = append(items, item)
			if p.tok.kind == tokPunct && p.tok.text == "," {
				p.advance()
				continue
			}
			break
		}
		if err := p.expectPunct("]"); err != nil {
			return valueExpr{}, err
		}
		return mergeList(items)
	}

	if p.tok.kind == tokIdent && p.tok.text != "true" && p.tok.text != "false" {
		// An inline node begins with its tag keyword directly.
		decl, err := p.parseNodeDecl(false)
		if err != nil {
			return valueExpr{}, err
		}
		return valueExpr{kind: valInline, inline: decl}, nil
	}

	return p.parseScalarOrRef()
}

func (p *fileParser) parseScalarOrRef() (valueExpr, error) {
	switch {
	case p.tok.kind == tokPunct && p.tok.text == "@":
		p.advance()
		id, err := p.expectIdent()
		if err != nil {
			return valueExpr{}, err
		}
		return valueExpr{kind: valRef, refs: []string{id}}, nil
	case p.tok.kind == tokString:
		s := p.tok.text
		p.advance()
		return valueExpr{kind: valString, strings: []string{s}}, nil
	case p.tok.kind == tokIdent && (p.tok.text == "true" || p.tok.text == "false"):
		b := p.tok.text == "true"
		p.advance()
		return valueExpr{kind: valBool, bools: []bool{b}}, nil
	case p.tok.kind == tokNumber:
		n, err := strconv.ParseFloat(p.tok.text, 64)
		if err != nil {
			return valueExpr{}, p.errorf("invalid number literal %q", p.tok.text)
		}
		p.advance()
		return valueExpr{kind: valNumber, numbers: []float64{n}}, nil
	default:
		return valueExpr{}, p.errorf("expected a value, got %q", p.tok.text)
	}
}

// mergeList folds a list of single-valued scalar/ref expressions into
// one homogeneous valueExpr, failing if the elements disagree on kind —
// property value lists must be homogeneous per spec.md §6.
func mergeList(items []valueExpr) (valueExpr, error) {
	if len(items) == 0 {
		return valueExpr{}, fmt.Errorf("sceneparser: property value lists must be non-empty")
	}
	kind := items[0].kind
	out := valueExpr{kind: kind}
	for _, item := range items {
		if item.kind != kind {
			return valueExpr{}, fmt.Errorf("sceneparser: property value list mixes %v and %v", kind, item.kind)
		}
		switch kind {
		case valBool:
			out.bools = append(out.bools, item.bools...)
		case valNumber:
			out.numbers = append(out.numbers, item.numbers...)
		case valString:
			out.strings = append(out.strings, item.strings...)
		case valRef:
			out.refs = append(out.refs, item.refs...)
		}
	}
	return out, nil
}
