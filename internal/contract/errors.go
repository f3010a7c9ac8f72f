package contract

import (
	"fmt"
	"strings"
)

// EncodingError reports that no candidate text encoding decoded the whole
// input file. It is fatal; no partial dataset accompanies it.
type EncodingError struct {
	Path  string
	Tried []string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("could not decode %q with tried encodings: %s", e.Path, strings.Join(e.Tried, ", "))
}

// SchemaError reports a row whose field count does not match the fixed
// 20-field complaint schema. Ingestion fails fast rather than silently
// misaligning columns.
type SchemaError struct {
	Line   int
	Fields int
	Want   int
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("line %d has %d fields, want %d", e.Line, e.Fields, e.Want)
}

// EmptyInputError reports that zero usable transactions survived filtering.
// The caller decides whether to relax filters or parameters.
type EmptyInputError struct {
	Reason string
}

func (e *EmptyInputError) Error() string {
	return e.Reason
}
