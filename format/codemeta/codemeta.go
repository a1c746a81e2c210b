// Package codemeta provides a format plugin for CodeMeta software metadata,
// the schema.org profile kept in codemeta.json files.
package codemeta

import (
	"bytes"

	"github.com/lehigh-university-libraries/bolognese/format"
	"github.com/lehigh-university-libraries/bolognese/format/jsonutil"
)

// Context is the @context written on every document.
const Context = "https://doi.org/10.5063/schema/codemeta-2.0"

// Format implements the CodeMeta JSON-LD format.
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
	return "codemeta"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "CodeMeta 2.0 software metadata (JSON-LD)"
}

// Extensions returns file extensions associated with this format.
func (f *Format) Extensions() []string {
	return []string{"json", "jsonld"}
}

// CanParse returns true for JSON-LD whose context mentions codemeta.
func (f *Format) CanParse(peek []byte) bool {
	peek = bytes.TrimSpace(jsonutil.TrimBOM(peek))
	if len(peek) == 0 || peek[0] != '{' {
		return false
	}
	return bytes.Contains(peek, []byte(`"@context"`)) && bytes.Contains(peek, []byte("codemeta"))
}

// Validate reports JSON syntax errors with their line and column.
func (f *Format) Validate(data []byte) []string {
	return jsonutil.Validate(data)
}

func init() {
	format.Register(&Format{})
}
