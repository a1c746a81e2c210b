// Package bibtex provides a format plugin for BibTeX bibliography entries.
package bibtex

import (
	"bytes"
	"regexp"

	"github.com/lehigh-university-libraries/bolognese/format"
)

// Format implements the BibTeX format.
type Format struct{}

// Ensure Format implements the interfaces
var (
	_ format.Format     = (*Format)(nil)
	_ format.Parser     = (*Format)(nil)
	_ format.Serializer = (*Format)(nil)
)

// Name returns the format identifier.
func (f *Format) Name() string {
	return "bibtex"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "BibTeX bibliography format"
}

// Extensions returns file extensions associated with this format.
func (f *Format) Extensions() []string {
	return []string{"bib", "bibtex"}
}

// entryStart matches "@type{" or "@type(" at the start of a line.
var entryStart = regexp.MustCompile(`(?m)^\s*@[A-Za-z]+\s*[{(]`)

// CanParse returns true if the input contains a BibTeX entry.
func (f *Format) CanParse(peek []byte) bool {
	peek = bytes.TrimSpace(peek)
	if len(peek) == 0 || peek[0] == '{' || peek[0] == '<' || peek[0] == '[' {
		return false
	}
	return entryStart.Match(peek)
}

func init() {
	format.Register(&Format{})
}
