package codemeta

import (
	"bytes"

	"github.com/lehigh-university-libraries/bolognese/format/jsonutil"
	"github.com/lehigh-university-libraries/bolognese/format/schemaorg"
)

// Document is a codemeta.json object as written.
type Document struct {
	Context        string                  `json:"@context"`
	Type           string                  `json:"@type"`
	ID             string                  `json:"@id,omitempty"`
	Identifier     any                     `json:"identifier,omitempty"`
	CodeRepository string                  `json:"codeRepository,omitempty"`
	Name           string                  `json:"name,omitempty"`
	Description    string                  `json:"description,omitempty"`
	Author         []schemaorg.Agent       `json:"author,omitempty"`
	Contributor    []schemaorg.Agent       `json:"contributor,omitempty"`
	Editor         []schemaorg.Agent       `json:"editor,omitempty"`
	Maintainer     []schemaorg.Agent       `json:"maintainer,omitempty"`
	Version        string                  `json:"version,omitempty"`
	License        any                     `json:"license,omitempty"`
	Keywords       []string                `json:"keywords,omitempty"`
	DateCreated    string                  `json:"dateCreated,omitempty"`
	DatePublished  string                  `json:"datePublished,omitempty"`
	DateModified   string                  `json:"dateModified,omitempty"`
	Publisher      *schemaorg.Organization `json:"publisher,omitempty"`

	// Extra holds software properties such as programmingLanguage that have
	// no field of their own.
	Extra map[string]any `json:"-"`
}

// MarshalJSON writes the fields above followed by Extra, sorted by key.
func (d Document) MarshalJSON() ([]byte, error) {
	type plain Document
	base, err := jsonutil.Marshal(plain(d), false)
	if err != nil {
		return nil, err
	}
	return jsonutil.MergeExtra(bytes.TrimSpace(base), d.Extra)
}
