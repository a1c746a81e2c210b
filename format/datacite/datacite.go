// Package datacite provides a format plugin for DataCite XML, kernel 2.1
// through 4.x. Output is always kernel-4.
package datacite

import (
	"bytes"

	"github.com/lehigh-university-libraries/bolognese/format"
)

// Version documents the DataCite specification this implementation targets.
const Version = "4.6"

const (
	// Namespace is the kernel-4 namespace written on output.
	Namespace = "http://datacite.org/schema/kernel-4"

	schemaLocation = Namespace + " http://schema.datacite.org/meta/kernel-4/metadata.xsd"
	xsiNamespace   = "http://www.w3.org/2001/XMLSchema-instance"
)

// Format implements the DataCite format.
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
	return "datacite"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "DataCite Metadata Schema (v" + Version + ")"
}

// Extensions returns file extensions associated with this format.
func (f *Format) Extensions() []string {
	return []string{"xml"}
}

// CanParse returns true if the input looks like DataCite XML.
func (f *Format) CanParse(peek []byte) bool {
	peek = bytes.TrimSpace(peek)
	if len(peek) == 0 || peek[0] != '<' {
		return false
	}

	if bytes.Contains(peek, []byte("datacite.org/schema")) {
		return true
	}

	// Crossref deposits carry <resource> inside doi_data.
	for _, p := range []string{"<doi_batch", "<doi_records", "<crossref", "crossref.org/schema"} {
		if bytes.Contains(peek, []byte(p)) {
			return false
		}
	}
	return bytes.Contains(peek, []byte("<resource"))
}

// Validate checks a DataCite XML document against the content model of its
// kernel version.
func (f *Format) Validate(data []byte) []string {
	return Validate(data)
}

func init() {
	format.Register(&Format{})
}
