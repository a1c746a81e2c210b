// Package citeproc provides a format plugin for CSL-JSON, the citeproc input
// format used by the Citation Style Language.
package citeproc

import (
	"bytes"

	"github.com/lehigh-university-libraries/bolognese/format"
	"github.com/lehigh-university-libraries/bolognese/format/jsonutil"
)

// Version documents the CSL specification this implementation targets.
const Version = "1.0.2"

// Format implements the CSL-JSON format.
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
	return "citeproc"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "CSL-JSON (Citation Style Language v" + Version + ")"
}

// Extensions returns file extensions associated with this format.
func (f *Format) Extensions() []string {
	return []string{"json", "csl"}
}

// CanParse returns true if the input looks like CSL-JSON: a JSON object or
// array with a "type" and either "issued" or "author", and no JSON-LD context.
func (f *Format) CanParse(peek []byte) bool {
	peek = bytes.TrimSpace(jsonutil.TrimBOM(peek))
	if len(peek) == 0 {
		return false
	}
	if peek[0] != '[' && peek[0] != '{' {
		return false
	}
	if bytes.Contains(peek, []byte(`"@context"`)) {
		return false
	}
	if !bytes.Contains(peek, []byte(`"type"`)) {
		return false
	}
	return bytes.Contains(peek, []byte(`"issued"`)) || bytes.Contains(peek, []byte(`"author"`))
}

// Validate reports JSON syntax errors with their line and column.
func (f *Format) Validate(data []byte) []string {
	return jsonutil.Validate(data)
}

func init() {
	format.Register(&Format{})
}
