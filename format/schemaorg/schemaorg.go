// Package schemaorg provides a format plugin for schema.org JSON-LD.
package schemaorg

import (
	"bytes"

	"github.com/lehigh-university-libraries/bolognese/format"
	"github.com/lehigh-university-libraries/bolognese/format/jsonutil"
)

// Context is the @context written on every document.
const Context = "https://schema.org"

// Format implements the schema.org JSON-LD format.
type Format struct{}

// Ensure Format implements the interfaces
var (
	_ format.Format     = (*Format)(nil)
	_ format.Parser     = (*Format)(nil)
	_ format.Serializer = (*Format)(nil)
	_ format.Validator  = (*Format)(nil)
)

// Name returns the format identifier.
func (f *Format) Name() string {
	return "schemaorg"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "schema.org JSON-LD"
}

// Extensions returns file extensions associated with this format.
func (f *Format) Extensions() []string {
	return []string{"jsonld", "json"}
}

// CanParse returns true if the input is JSON-LD with a schema.org context.
// Codemeta documents also reference schema.org and are left to that format.
func (f *Format) CanParse(peek []byte) bool {
	peek = bytes.TrimSpace(jsonutil.TrimBOM(peek))
	if len(peek) == 0 || (peek[0] != '{' && peek[0] != '[') {
		return false
	}
	if !bytes.Contains(peek, []byte(`"@context"`)) {
		return false
	}
	if bytes.Contains(peek, []byte("codemeta")) {
		return false
	}
	return bytes.Contains(peek, []byte("schema.org"))
}

// Validate reports JSON syntax errors with their line and column.
func (f *Format) Validate(data []byte) []string {
	return jsonutil.Validate(data)
}

func init() {
	format.Register(&Format{})
}
