package schemaorg

import (
	"fmt"
	"io"
	"strings"

	"github.com/lehigh-university-libraries/bolognese/format"
	"github.com/lehigh-university-libraries/bolognese/format/jsonutil"
	"github.com/lehigh-university-libraries/bolognese/hub"
	"github.com/lehigh-university-libraries/bolognese/vocab"
)

// Serialize writes hub records as schema.org JSON-LD. A single record is
// written as an object, several as an array.
func (f *Format) Serialize(w io.Writer, records []*hub.Record, opts *format.SerializeOptions) error {
	opts = opts.OrDefault()

	docs := make([]Document, 0, len(records))
	for _, record := range records {
		docs = append(docs, toDocument(record))
	}

	var v any = docs
	if len(docs) == 1 {
		v = docs[0]
	}
	out, err := jsonutil.Marshal(v, opts.Pretty)
	if err != nil {
		return fmt.Errorf("encoding JSON-LD: %w", err)
	}
	_, err = w.Write(out)
	return err
}

func toDocument(record *hub.Record) Document {
	doc := Document{
		Context:        Context,
		Type:           record.Types.SchemaOrg,
		ID:             record.DOIURL(),
		URL:            record.URL,
		Name:           record.MainTitle(),
		Version:        record.VersionInfo,
		Keywords:       strings.Join(record.SubjectStrings(), ", "),
		InLanguage:     record.Language,
		ContentSize:    jsonutil.One(record.Sizes),
		EncodingFormat: jsonutil.One(record.Formats),
		DateCreated:    hub.GetDate(record.Dates, hub.DateCreated),
		DatePublished:  hub.GetDate(record.Dates, hub.DateIssued),
		DateModified:   hub.GetDate(record.Dates, hub.DateUpdated),
		SchemaVersion:  record.SchemaVersion,
		Extra:          record.GetExtraFields(),
	}
	if doc.Type == "" {
		doc.Type = vocab.FallbackSchemaOrg
	}
	if doc.ID == "" {
		doc.ID = record.URL
	}
	if rt := record.Types.ResourceType; rt != "" && rt != doc.Type {
		doc.AdditionalType = rt
	}
	if doc.DatePublished == "" && record.PublicationYear != "" {
		doc.DatePublished = record.PublicationYear
	}

	doc.Identifier = identifiers(record)

	var alternates []string
	for _, t := range record.Titles {
		if t.Title != doc.Name {
			alternates = append(alternates, t.Title)
		}
	}
	doc.AlternateName = jsonutil.One(alternates)

	doc.Author = jsonutil.One(ToAgents(record.Creators))
	var editors, others []hub.Name
	for _, c := range record.Contributors {
		if c.ContributorType == "Editor" {
			editors = append(editors, c)
		} else {
			others = append(others, c)
		}
	}
	doc.Editor = jsonutil.One(ToAgents(editors))
	doc.Contributor = jsonutil.One(ToAgents(others))

	var descriptions []string
	for _, d := range record.Descriptions {
		if d.DescriptionType == "" || d.DescriptionType == "Abstract" {
			descriptions = append(descriptions, d.Description)
		}
	}
	doc.Description = jsonutil.One(descriptions)
	doc.License = jsonutil.One(hub.RightsURIs(record.RightsList))

	if record.Publisher != "" {
		doc.Publisher = Organization{Type: "Organization", Name: record.Publisher}
	}
	if record.Agency != "" {
		doc.Provider = Organization{Type: "Organization", Name: record.Agency}
	}

	doc.SpatialCoverage = jsonutil.One(places(record.GeoLocations))

	var funders []Organization
	for _, ref := range record.FundingReferences {
		if ref.FunderName == "" && ref.FunderIdentifier == "" {
			continue
		}
		funders = append(funders, Organization{Type: "Organization", ID: ref.FunderIdentifier, Name: ref.FunderName})
	}
	doc.Funder = jsonutil.One(funders)

	var downloads []DataDownload
	for _, u := range record.ContentURL {
		dl := DataDownload{Type: "DataDownload", ContentURL: u}
		if len(record.Formats) > 0 {
			dl.EncodingFormat = record.Formats[0]
		}
		downloads = append(downloads, dl)
	}
	doc.Distribution = jsonutil.One(downloads)

	writeRelations(&doc, record)
	return doc
}

// identifiers lists the DOI and alternate identifiers as PropertyValues.
func identifiers(record *hub.Record) any {
	var out []PropertyValue
	for _, id := range record.Identifiers {
		out = append(out, PropertyValue{Type: "PropertyValue", PropertyID: id.IdentifierType, Value: id.Identifier})
	}
	return jsonutil.One(out)
}

// ToAgents writes people as Person and organizations as Organization, with
// the ORCID as @id.
func ToAgents(names []hub.Name) []Agent {
	var out []Agent
	for _, n := range names {
		a := Agent{
			ID:         n.ORCID(),
			Name:       n.Name,
			GivenName:  n.GivenName,
			FamilyName: n.FamilyName,
		}
		switch {
		case n.IsPersonal():
			a.Type = "Person"
		case n.IsOrganizational():
			a.Type = "Organization"
		}
		for _, aff := range n.Affiliation {
			a.Affiliation = append(a.Affiliation, Organization{Type: "Organization", Name: aff})
		}
		out = append(out, a)
	}
	return out
}

// places writes each geolocation as a Place whose geo holds the point, the
// box and the polygon that are set.
func places(locations []hub.GeoLocation) []Place {
	var out []Place
	for _, g := range locations {
		var geos []any
		if g.Point != nil {
			geos = append(geos, GeoCoordinates{Type: "GeoCoordinates", Latitude: g.Point.PointLatitude, Longitude: g.Point.PointLongitude})
		}
		if g.Box != nil {
			geos = append(geos, GeoShape{Type: "GeoShape", Box: g.Box.BoxText()})
		}
		if len(g.Polygon) > 0 {
			shape := GeoShape{Type: "GeoShape"}
			for _, p := range g.Polygon {
				shape.Polygon = append(shape.Polygon, [2]string{p.PolygonPoint.PointLongitude, p.PolygonPoint.PointLatitude})
			}
			geos = append(geos, shape)
		}
		out = append(out, Place{Type: "Place", Name: g.Place, Geo: jsonutil.One(geos)})
	}
	return out
}

// writeRelations fills the relation properties and the container. A journal
// goes to periodical, a repository to includedInDataCatalog and anything else
// joins the isPartOf list.
func writeRelations(doc *Document, record *hub.Record) {
	related := make(map[string][]any)
	for _, rel := range record.RelatedIdentifiers {
		prop, ok := hub.SchemaOrgRelation(rel.RelationType)
		if !ok {
			continue
		}
		related[prop] = append(related[prop], CreativeWork{
			Type: "CreativeWork",
			ID:   hub.IdentifierURI(rel.RelatedIdentifier, rel.RelatedIdentifierType),
		})
	}

	if c := record.Container; c != nil {
		doc.PageStart = c.FirstPage
		doc.PageEnd = c.LastPage
		switch c.Type {
		case "Journal":
			p := Periodical{Type: "Periodical", Name: c.Title, VolumeNumber: c.Volume, IssueNumber: c.Issue}
			if c.IdentifierType == "ISSN" {
				p.ISSN = c.Identifier
			}
			doc.Periodical = p
		case "DataRepository":
			catalog := DataCatalog{Type: "DataCatalog", Name: c.Title}
			if c.IdentifierType == "URL" {
				catalog.URL = c.Identifier
			}
			doc.IncludedInDataCatalog = catalog
		default:
			if c.Title != "" {
				work := CreativeWork{Type: "CreativeWorkSeries", Name: c.Title}
				if c.Type == "Book" {
					work.Type = "Book"
				}
				related["isPartOf"] = append([]any{work}, related["isPartOf"]...)
			}
		}
	}

	doc.IsPartOf = jsonutil.One(related["isPartOf"])
	doc.HasPart = jsonutil.One(related["hasPart"])
	doc.PredecessorOf = jsonutil.One(related["predecessorOf"])
	doc.SuccessorOf = jsonutil.One(related["successorOf"])
	doc.Citation = jsonutil.One(related["citation"])
	doc.IsBasedOn = jsonutil.One(related["isBasedOn"])
}
