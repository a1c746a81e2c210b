// Package hub defines the canonical metadata record that every reader produces
// and every writer consumes, plus the field-level normalizers that populate it.
package hub

import (
	"github.com/jinzhu/copier"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Record is the schema-agnostic representation of one metadata object.
type Record struct {
	DOI                string              `json:"doi,omitempty"`
	URL                string              `json:"url,omitempty"`
	Identifiers        []Identifier        `json:"identifiers,omitempty"`
	Creators           []Name              `json:"creators"`
	Contributors       []Name              `json:"contributors,omitempty"`
	Titles             []Title             `json:"titles,omitempty"`
	Publisher          string              `json:"publisher,omitempty"`
	PublicationYear    string              `json:"publicationYear,omitempty"`
	Container          *Container          `json:"container,omitempty"`
	Types              Types               `json:"types"`
	Subjects           []Subject           `json:"subjects,omitempty"`
	Dates              []Date              `json:"dates,omitempty"`
	Language           string              `json:"language,omitempty"`
	RelatedIdentifiers []RelatedIdentifier `json:"relatedIdentifiers,omitempty"`
	Sizes              []string            `json:"sizes,omitempty"`
	Formats            []string            `json:"formats,omitempty"`
	VersionInfo        string              `json:"version,omitempty"`
	RightsList         []Rights            `json:"rightsList,omitempty"`
	Descriptions       []Description       `json:"descriptions,omitempty"`
	GeoLocations       []GeoLocation       `json:"geoLocations,omitempty"`
	FundingReferences  []FundingReference  `json:"fundingReferences,omitempty"`
	ContentURL         []string            `json:"contentUrl,omitempty"`
	SchemaVersion      string              `json:"schemaVersion,omitempty"`
	Agency             string              `json:"agency,omitempty"`

	// Source is the name of the reader that produced the record.
	Source string `json:"source,omitempty"`

	// Extra holds properties the reader could not map to a field.
	Extra *structpb.Struct `json:"-"`

	State  State    `json:"state,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

// Title is a title with optional type and language.
type Title struct {
	Title     string `json:"title"`
	TitleType string `json:"titleType,omitempty"`
	Lang      string `json:"lang,omitempty"`
}

// Description is an abstract or other description.
type Description struct {
	Description     string `json:"description"`
	DescriptionType string `json:"descriptionType,omitempty"`
	Lang            string `json:"lang,omitempty"`
}

// Subject is a keyword or classification term.
type Subject struct {
	Subject       string `json:"subject"`
	SubjectScheme string `json:"subjectScheme,omitempty"`
	SchemeURI     string `json:"schemeUri,omitempty"`
	ValueURI      string `json:"valueUri,omitempty"`
	Lang          string `json:"lang,omitempty"`
}

// Container describes the journal, series or repository a record belongs to.
type Container struct {
	Type           string `json:"type,omitempty"`
	Title          string `json:"title,omitempty"`
	Identifier     string `json:"identifier,omitempty"`
	IdentifierType string `json:"identifierType,omitempty"`
	Volume         string `json:"volume,omitempty"`
	Issue          string `json:"issue,omitempty"`
	FirstPage      string `json:"firstPage,omitempty"`
	LastPage       string `json:"lastPage,omitempty"`
}

// Types holds the record's type expressed in each supported vocabulary.
type Types struct {
	ResourceTypeGeneral string `json:"resourceTypeGeneral,omitempty"`
	ResourceType        string `json:"resourceType,omitempty"`
	SchemaOrg           string `json:"schemaOrg,omitempty"`
	Citeproc            string `json:"citeproc,omitempty"`
	Bibtex              string `json:"bibtex,omitempty"`
	Ris                 string `json:"ris,omitempty"`
}

// IsZero reports whether no vocabulary label is set.
func (t Types) IsZero() bool {
	return t == Types{}
}

// NewRecord creates an empty record whose creator list is non-nil.
func NewRecord() *Record {
	return &Record{
		Creators: make([]Name, 0),
	}
}

// Clone returns a deep copy of r that shares no slices or pointers with it.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	src := *r
	src.Extra = nil
	out := &Record{}
	if err := copier.CopyWithOption(out, &src, copier.Option{DeepCopy: true}); err != nil {
		// copier only fails on mismatched kinds, which cannot happen for identical types
		panic(err)
	}
	if r.Extra != nil {
		out.Extra = proto.Clone(r.Extra).(*structpb.Struct)
	}
	if out.Creators == nil {
		out.Creators = make([]Name, 0)
	}
	return out
}

// DOIURL returns the record's DOI as a resolver URL, or "".
func (r *Record) DOIURL() string {
	if r.DOI == "" {
		return ""
	}
	for _, id := range r.Identifiers {
		if id.IdentifierType == "DOI" {
			return id.Identifier
		}
	}
	return "https://doi.org/" + r.DOI
}

// MainTitle returns the first title without a titleType, or the first title.
func (r *Record) MainTitle() string {
	for _, t := range r.Titles {
		if t.TitleType == "" {
			return t.Title
		}
	}
	if len(r.Titles) > 0 {
		return r.Titles[0].Title
	}
	return ""
}

// Abstract returns the first Abstract description, or the first description.
func (r *Record) Abstract() string {
	for _, d := range r.Descriptions {
		if d.DescriptionType == "Abstract" {
			return d.Description
		}
	}
	for _, d := range r.Descriptions {
		if d.DescriptionType == "" {
			return d.Description
		}
	}
	return ""
}

// SetExtra sets an extra field value on the record.
func (r *Record) SetExtra(key string, value any) {
	if r.Extra == nil {
		r.Extra = &structpb.Struct{
			Fields: make(map[string]*structpb.Value),
		}
	}
	v, err := structpb.NewValue(value)
	if err == nil {
		r.Extra.Fields[key] = v
	}
}

// GetExtra retrieves an extra field value.
func (r *Record) GetExtra(key string) (any, bool) {
	if r.Extra == nil || r.Extra.Fields == nil {
		return nil, false
	}
	v, ok := r.Extra.Fields[key]
	if !ok {
		return nil, false
	}
	return v.AsInterface(), true
}

// GetExtraString retrieves an extra field as a string.
func (r *Record) GetExtraString(key string) string {
	v, ok := r.GetExtra(key)
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// GetExtraFields returns all extra fields as a map.
func (r *Record) GetExtraFields() map[string]any {
	if r.Extra == nil || r.Extra.Fields == nil {
		return nil
	}
	return r.Extra.AsMap()
}

// SubjectStrings returns the subject terms, deduplicated, in order.
func (r *Record) SubjectStrings() []string {
	seen := make(map[string]bool)
	var result []string
	for _, s := range r.Subjects {
		if s.Subject != "" && !seen[s.Subject] {
			result = append(result, s.Subject)
			seen[s.Subject] = true
		}
	}
	return result
}
