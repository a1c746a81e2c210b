package schemaorg

import (
	"bytes"

	"github.com/lehigh-university-libraries/bolognese/format/jsonutil"
)

// Document is the writer-side shape of a schema.org CreativeWork. Fields hold
// either a single value or a list, so they are typed any.
type Document struct {
	Context               string `json:"@context"`
	Type                  string `json:"@type"`
	ID                    string `json:"@id,omitempty"`
	Identifier            any    `json:"identifier,omitempty"`
	URL                   string `json:"url,omitempty"`
	AdditionalType        string `json:"additionalType,omitempty"`
	Name                  string `json:"name,omitempty"`
	AlternateName         any    `json:"alternateName,omitempty"`
	Author                any    `json:"author,omitempty"`
	Editor                any    `json:"editor,omitempty"`
	Contributor           any    `json:"contributor,omitempty"`
	Description           any    `json:"description,omitempty"`
	License               any    `json:"license,omitempty"`
	Version               string `json:"version,omitempty"`
	Keywords              string `json:"keywords,omitempty"`
	InLanguage            string `json:"inLanguage,omitempty"`
	ContentSize           any    `json:"contentSize,omitempty"`
	EncodingFormat        any    `json:"encodingFormat,omitempty"`
	DateCreated           string `json:"dateCreated,omitempty"`
	DatePublished         string `json:"datePublished,omitempty"`
	DateModified          string `json:"dateModified,omitempty"`
	PageStart             string `json:"pageStart,omitempty"`
	PageEnd               string `json:"pageEnd,omitempty"`
	SpatialCoverage       any    `json:"spatialCoverage,omitempty"`
	Periodical            any    `json:"periodical,omitempty"`
	IsPartOf              any    `json:"isPartOf,omitempty"`
	HasPart               any    `json:"hasPart,omitempty"`
	PredecessorOf         any    `json:"predecessorOf,omitempty"`
	SuccessorOf           any    `json:"successorOf,omitempty"`
	Citation              any    `json:"citation,omitempty"`
	IsBasedOn             any    `json:"isBasedOn,omitempty"`
	Funder                any    `json:"funder,omitempty"`
	Distribution          any    `json:"distribution,omitempty"`
	SchemaVersion         string `json:"schemaVersion,omitempty"`
	Publisher             any    `json:"publisher,omitempty"`
	IncludedInDataCatalog any    `json:"includedInDataCatalog,omitempty"`
	Provider              any    `json:"provider,omitempty"`

	// Extra carries properties the reader kept without mapping. Keys the
	// document already sets are not overwritten.
	Extra map[string]any `json:"-"`
}

// MarshalJSON writes the mapped fields in declaration order and then the
// Extra properties sorted by key.
func (d Document) MarshalJSON() ([]byte, error) {
	type plain Document
	base, err := jsonutil.Marshal(plain(d), false)
	if err != nil {
		return nil, err
	}
	return jsonutil.MergeExtra(bytes.TrimSpace(base), d.Extra)
}

// Agent is a Person or Organization.
type Agent struct {
	Type        string         `json:"@type,omitempty"`
	ID          string         `json:"@id,omitempty"`
	Name        string         `json:"name,omitempty"`
	GivenName   string         `json:"givenName,omitempty"`
	FamilyName  string         `json:"familyName,omitempty"`
	Affiliation []Organization `json:"affiliation,omitempty"`
}

// Organization is an affiliation, publisher, provider or funder.
type Organization struct {
	Type string `json:"@type"`
	ID   string `json:"@id,omitempty"`
	Name string `json:"name,omitempty"`
}

// PropertyValue is a typed identifier.
type PropertyValue struct {
	Type       string `json:"@type"`
	PropertyID string `json:"propertyID,omitempty"`
	Value      string `json:"value"`
}

// Periodical is a journal container.
type Periodical struct {
	Type         string `json:"@type"`
	ID           string `json:"@id,omitempty"`
	Name         string `json:"name,omitempty"`
	ISSN         string `json:"issn,omitempty"`
	VolumeNumber string `json:"volumeNumber,omitempty"`
	IssueNumber  string `json:"issueNumber,omitempty"`
}

// CreativeWork is a related resource or a non-journal container.
type CreativeWork struct {
	Type string `json:"@type"`
	ID   string `json:"@id,omitempty"`
	Name string `json:"name,omitempty"`
}

// DataCatalog is the repository a dataset is held in.
type DataCatalog struct {
	Type string `json:"@type"`
	Name string `json:"name,omitempty"`
	URL  string `json:"url,omitempty"`
}

// DataDownload is one distribution of a dataset.
type DataDownload struct {
	Type           string `json:"@type"`
	ContentURL     string `json:"contentUrl"`
	EncodingFormat string `json:"encodingFormat,omitempty"`
}

// Place wraps a spatialCoverage geometry.
type Place struct {
	Type string `json:"@type"`
	Name string `json:"name,omitempty"`
	Geo  any    `json:"geo,omitempty"`
}

// GeoCoordinates is a point.
type GeoCoordinates struct {
	Type      string `json:"@type"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// GeoShape holds a box ("south west north east") or a polygon of
// [longitude, latitude] pairs.
type GeoShape struct {
	Type    string      `json:"@type"`
	Box     string      `json:"box,omitempty"`
	Polygon [][2]string `json:"polygon,omitempty"`
}
