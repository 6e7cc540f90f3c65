package sceneparser

import "fmt"

// SyntaxError reports a malformed scene description: an unexpected
// token, an unterminated list, or a type keyword that names no known
// tag.
type SyntaxError struct {
	File    string
	Line    int
	Column  int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Message)
}

// PluginError reports a (tag, impl) pair with no registered plug-in
// factory — the scene description equivalent of a missing dynamic
// module, raised when a Parser is configured with a PluginChecker and
// a node names an implementation the checker does not recognize.
type PluginError struct {
	Tag  string
	Impl string
}

func (e *PluginError) Error() string {
	return fmt.Sprintf("sceneparser: no plug-in registered for impl %q of tag %q", e.Impl, e.Tag)
}
