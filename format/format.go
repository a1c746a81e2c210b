// Package format defines the interface for metadata format plugins.
package format

import (
	"errors"
	"io"

	"github.com/lehigh-university-libraries/bolognese/hub"
)

// ErrUnrepresentable is returned by a Serializer when the record cannot be
// expressed in its format. Nothing is written in that case.
var ErrUnrepresentable = errors.New("record cannot be represented in this format")

// ErrUnknownFormat is returned when no registered format matches a name or input.
var ErrUnknownFormat = errors.New("unknown format")

// Format defines the interface that all format plugins must implement.
type Format interface {
	// Name returns the format identifier (e.g., "datacite", "bibtex", "citeproc")
	Name() string

	// Description returns a human-readable format description
	Description() string

	// Extensions returns file extensions associated with this format
	Extensions() []string

	// CanParse returns true if this format can parse the given input
	CanParse(peek []byte) bool
}

// Parser is a format that can read documents into records.
type Parser interface {
	Format

	// Parse reads input and returns records. Malformed field values never fail
	// a parse; only input that cannot be tokenized at all does.
	Parse(r io.Reader, opts *ParseOptions) ([]*hub.Record, error)
}

// Serializer is a format that can write records to output.
type Serializer interface {
	Format

	// Serialize writes records to the output.
	Serialize(w io.Writer, records []*hub.Record, opts *SerializeOptions) error
}

// Validator is implemented by formats that can check a raw document against
// their schema. Each returned string is one error.
type Validator interface {
	Validate(data []byte) []string
}

// ParseOptions contains options for parsing.
type ParseOptions struct {
	// DOI overrides the identifier found in the document
	DOI string

	// Sandbox resolves DOIs against the test resolver
	Sandbox bool

	// SourceName is an identifier for the source (for error messages)
	SourceName string
}

// SerializeOptions contains options for serialization.
type SerializeOptions struct {
	// Pretty enables pretty-printing (for JSON/XML formats)
	Pretty bool
}

// NewParseOptions creates ParseOptions with defaults.
func NewParseOptions() *ParseOptions {
	return &ParseOptions{}
}

// NewSerializeOptions creates SerializeOptions with defaults.
func NewSerializeOptions() *SerializeOptions {
	return &SerializeOptions{
		Pretty: true,
	}
}

// OrDefault returns opts, or the defaults when opts is nil.
func (opts *ParseOptions) OrDefault() *ParseOptions {
	if opts == nil {
		return NewParseOptions()
	}
	return opts
}

// OrDefault returns opts, or the defaults when opts is nil.
func (opts *SerializeOptions) OrDefault() *SerializeOptions {
	if opts == nil {
		return NewSerializeOptions()
	}
	return opts
}
