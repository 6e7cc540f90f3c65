package scenedesc

import "fmt"

// SchemaError reports a structural violation of the scene description
// contract: redefinition, tag disagreement between a declaration and
// its definition, an illegal definition of the root or an internal
// node as a global, or a reference to a node that is never defined.
type SchemaError struct {
	Identifier string
	Location   SourceLocation
	Reason     string
}

func (e *SchemaError) Error() string {
	if e.Location.Valid() {
		return fmt.Sprintf("scenedesc: %s:%d:%d: %s (node %q)",
			e.Location.File, e.Location.Line, e.Location.Column, e.Reason, e.Identifier)
	}
	return fmt.Sprintf("scenedesc: %s (node %q)", e.Reason, e.Identifier)
}

func schemaError(id string, loc SourceLocation, format string, args ...any) *SchemaError {
	return &SchemaError{Identifier: id, Location: loc, Reason: fmt.Sprintf(format, args...)}
}
