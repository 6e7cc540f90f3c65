package sceneparser

import (
	"strconv"
	"strings"
	"text/scanner"

	"golang.org/x/text/unicode/norm"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokString
	tokNumber
	tokPunct // one of : { } [ ] , = @
)

type token struct {
	kind   tokenKind
	text   string
	line   int
	column int
}

// lexer tokenizes scene description source text. Source is first
// normalized to NFC so that identifiers compare consistently
// regardless of how the input file encoded combining characters, then
// handed to a stdlib text/scanner configured for idents, numbers,
// quoted strings, and Go-style comments — the notation spec.md §6
// describes has no reserved words beyond true/false and the handful of
// property keywords the parser itself interprets positionally.
type lexer struct {
	file    string
	scanner scanner.Scanner
}

func newLexer(file, source string) *lexer {
	normalized := norm.NFC.String(source)

	l := &lexer{file: file}
	l.scanner.Init(strings.NewReader(normalized))
	l.scanner.Filename = file
	l.scanner.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats |
		scanner.ScanStrings | scanner.ScanComments | scanner.SkipComments
	return l
}

func (l *lexer) next() token {
	r := l.scanner.Scan()
	pos := l.scanner.Position
	text := l.scanner.TokenText()

	switch r {
	case scanner.EOF:
		return token{kind: tokEOF, line: pos.Line, column: pos.Column}
	case scanner.Ident:
		return token{kind: tokIdent, text: text, line: pos.Line, column: pos.Column}
	case scanner.String:
		unquoted, err := strconv.Unquote(text)
		if err != nil {
			unquoted = text
		}
		return token{kind: tokString, text: unquoted, line: pos.Line, column: pos.Column}
	case scanner.Int, scanner.Float:
		return token{kind: tokNumber, text: text, line: pos.Line, column: pos.Column}
	default:
		return token{kind: tokPunct, text: string(r), line: pos.Line, column: pos.Column}
	}
}
