// Package crossref provides a format plugin for Crossref XML: the unixref and
// unixsd query results as well as doi_batch deposits.
package crossref

import (
	"bytes"

	"github.com/lehigh-university-libraries/bolognese/format"
)

// Version documents the Crossref deposit schema the writer targets.
const Version = "5.3.1"

const (
	Namespace      = "http://www.crossref.org/schema/" + Version
	schemaLocation = Namespace + " https://www.crossref.org/schemas/crossref" + Version + ".xsd"
	xsiNamespace   = "http://www.w3.org/2001/XMLSchema-instance"
	jatsNamespace  = "http://www.ncbi.nlm.nih.gov/JATS1"
	fundrefNS      = "http://www.crossref.org/fundref.xsd"
	accessNS       = "http://www.crossref.org/AccessIndicators.xsd"
	relationsNS    = "http://www.crossref.org/relations.xsd"
)

// Format implements the Crossref format.
type Format struct{}

var (
	_ format.Format     = (*Format)(nil)
	_ format.Parser     = (*Format)(nil)
	_ format.Serializer = (*Format)(nil)
)

// Name returns the format identifier.
func (f *Format) Name() string {
	return "crossref"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "Crossref XML (unixref, unixsd, deposit schema v" + Version + ")"
}

// Extensions returns file extensions associated with this format.
func (f *Format) Extensions() []string {
	return []string{"xml"}
}

// CanParse returns true if the input looks like Crossref XML.
func (f *Format) CanParse(peek []byte) bool {
	peek = bytes.TrimSpace(peek)
	if len(peek) == 0 || peek[0] != '<' {
		return false
	}
	if bytes.Contains(peek, []byte("datacite.org/schema")) {
		return false
	}

	patterns := [][]byte{
		[]byte("<doi_batch"),
		[]byte("<doi_records"),
		[]byte("<crossref_result"),
		[]byte("crossref.org/schema"),
		[]byte("crossref.org/xschema"),
		[]byte("<journal_article"),
	}
	for _, pattern := range patterns {
		if bytes.Contains(peek, pattern) {
			return true
		}
	}
	return false
}

func init() {
	format.Register(&Format{})
}
