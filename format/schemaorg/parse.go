package schemaorg

import (
	"fmt"
	"io"
	"strings"

	"github.com/lehigh-university-libraries/bolognese/doi"
	"github.com/lehigh-university-libraries/bolognese/format"
	"github.com/lehigh-university-libraries/bolognese/format/jsonutil"
	"github.com/lehigh-university-libraries/bolognese/helpers"
	"github.com/lehigh-university-libraries/bolognese/hub"
	"github.com/lehigh-university-libraries/bolognese/vocab"
)

// mapped lists the top-level properties the reader understands. Everything
// else except @context lands in Extra.
var mapped = map[string]bool{
	"@context": true, "@type": true, "@id": true, "identifier": true, "url": true,
	"additionalType": true, "name": true, "headline": true, "alternateName": true,
	"alternativeHeadline": true, "author": true, "creator": true, "editor": true,
	"contributor": true, "description": true, "abstract": true, "license": true,
	"version": true, "keywords": true, "inLanguage": true, "contentSize": true,
	"encodingFormat": true, "fileFormat": true, "dateCreated": true, "datePublished": true,
	"dateModified": true, "pageStart": true, "pageEnd": true, "spatialCoverage": true,
	"periodical": true, "isPartOf": true, "hasPart": true, "predecessorOf": true,
	"successorOf": true, "citation": true, "isBasedOn": true, "funder": true,
	"distribution": true, "schemaVersion": true, "publisher": true,
	"includedInDataCatalog": true, "provider": true, "sameAs": true,
}

// relationProperties are read in this order.
var relationProperties = []string{"isPartOf", "hasPart", "predecessorOf", "successorOf", "citation", "isBasedOn"}

// Parse reads a schema.org JSON-LD object, or an array of them.
func (f *Format) Parse(r io.Reader, opts *format.ParseOptions) ([]*hub.Record, error) {
	opts = opts.OrDefault()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	docs, err := jsonutil.Documents(data)
	if err != nil {
		return nil, fmt.Errorf("parsing JSON-LD: %w", err)
	}

	records := make([]*hub.Record, 0, len(docs))
	for _, doc := range docs {
		records = append(records, toRecord(doc, opts))
	}
	return records, nil
}

func toRecord(doc map[string]any, opts *format.ParseOptions) *hub.Record {
	record := hub.NewRecord()
	record.Source = "schemaorg"

	readIdentifiers(record, doc, opts)
	record.URL = jsonutil.String(doc, "url")
	record.Types = readTypes(doc)

	record.Creators = Agents(doc["author"], "")
	if len(record.Creators) == 0 {
		record.Creators = Agents(doc["creator"], "")
	}
	record.Contributors = append(Agents(doc["editor"], "Editor"), Agents(doc["contributor"], "Other")...)

	title := jsonutil.String(doc, "name")
	if title == "" {
		title = jsonutil.String(doc, "headline")
	}
	if title != "" {
		record.Titles = append(record.Titles, hub.Title{Title: title})
	}
	for _, key := range []string{"alternateName", "alternativeHeadline"} {
		for _, alt := range jsonutil.Strings(doc[key]) {
			record.Titles = append(record.Titles, hub.Title{Title: alt, TitleType: "AlternativeTitle"})
		}
	}

	for _, key := range []string{"description", "abstract"} {
		for _, d := range jsonutil.Strings(doc[key]) {
			record.Descriptions = append(record.Descriptions, hub.Description{Description: helpers.StripHTML(d), DescriptionType: "Abstract"})
		}
	}

	record.Publisher = jsonutil.First(doc["publisher"])
	record.Agency = jsonutil.First(doc["provider"])
	record.SchemaVersion = jsonutil.String(doc, "schemaVersion")
	record.VersionInfo = jsonutil.String(doc, "version")
	record.Language = language(doc["inLanguage"])
	record.Sizes = jsonutil.Strings(doc["contentSize"])
	record.Formats = jsonutil.Strings(doc["encodingFormat"])
	if len(record.Formats) == 0 {
		record.Formats = jsonutil.Strings(doc["fileFormat"])
	}

	record.AddDate(jsonutil.String(doc, "datePublished"), hub.DateIssued)
	record.AddDate(jsonutil.String(doc, "dateCreated"), hub.DateCreated)
	record.AddDate(jsonutil.String(doc, "dateModified"), hub.DateUpdated)
	record.PublicationYear = hub.PublicationYear(record.Dates)

	record.Subjects = Keywords(doc["keywords"])
	for _, l := range jsonutil.List(doc["license"]) {
		value := jsonutil.AsString(l)
		if m, ok := l.(map[string]any); ok {
			value = jsonutil.String(m, "url")
			if value == "" {
				value = jsonutil.String(m, "@id")
			}
		}
		if value != "" {
			record.RightsList = append(record.RightsList, hub.NewRights(value))
		}
	}

	record.GeoLocations = hub.NormalizeGeoLocations(spatialCoverage(doc["spatialCoverage"]))
	record.FundingReferences = hub.NormalizeFundingReferences(funders(doc["funder"]))

	for _, prop := range relationProperties {
		rt, _ := hub.RelationFromSchemaOrg(prop)
		for _, item := range jsonutil.List(doc[prop]) {
			if rel, ok := relatedIdentifier(item, rt); ok {
				record.AddRelatedIdentifier(rel)
			}
		}
	}

	for _, d := range jsonutil.Objects(doc["distribution"]) {
		if u := jsonutil.String(d, "contentUrl"); u != "" {
			record.ContentURL = append(record.ContentURL, u)
		}
		if len(record.Formats) == 0 {
			record.Formats = jsonutil.Strings(d["encodingFormat"])
		}
	}

	record.Container = container(doc)

	for key, value := range doc {
		if !mapped[key] {
			record.SetExtra(key, value)
		}
	}
	return record
}

// readIdentifiers takes the DOI from @id, identifier or sameAs, in that order,
// and keeps every other identifier.
func readIdentifiers(record *hub.Record, doc map[string]any, opts *format.ParseOptions) {
	var others []hub.Identifier
	found := doi.Validate(jsonutil.String(doc, "@id"))

	candidates := jsonutil.List(doc["identifier"])
	candidates = append(candidates, jsonutil.List(doc["sameAs"])...)
	for _, item := range candidates {
		value, idType := identifierValue(item)
		if value == "" {
			continue
		}
		if idType == "DOI" || (idType == "" && doi.Validate(value) != "") {
			if found == "" {
				found = doi.Validate(value)
			}
			continue
		}
		if idType == "" {
			idType = hub.DetectIdentifierType(value)
		}
		if idType == "" {
			idType = "Other"
		}
		others = append(others, hub.Identifier{Identifier: value, IdentifierType: idType})
	}

	if d := doi.Validate(opts.DOI); d != "" {
		found = d
	}
	if found != "" {
		record.DOI = found
		record.AddIdentifier(hub.Identifier{Identifier: doi.Normalize(found, opts.Sandbox), IdentifierType: "DOI"})
	}
	for _, id := range others {
		record.AddIdentifier(id)
	}
}

// identifierValue reads a string or PropertyValue identifier.
func identifierValue(item any) (value, idType string) {
	m, ok := item.(map[string]any)
	if !ok {
		return jsonutil.AsString(item), ""
	}
	value = jsonutil.String(m, "value")
	if value == "" {
		value = jsonutil.String(m, "@id")
	}
	switch prop := jsonutil.String(m, "propertyID"); strings.ToLower(prop) {
	case "":
	case "doi":
		idType = "DOI"
	case "isbn", "issn", "pmid", "pmcid", "url", "urn", "ark":
		idType = strings.ToUpper(prop)
	case "handle":
		idType = "Handle"
	case "arxiv":
		idType = "arXiv"
	default:
		idType = prop
	}
	return value, idType
}

func readTypes(doc map[string]any) hub.Types {
	schemaType := vocab.FallbackSchemaOrg
	if t := jsonutil.Types(doc); len(t) > 0 {
		schemaType = t[0]
	}
	types, ok := vocab.Lookup(vocab.SchemeSchemaOrg, schemaType)
	if !ok {
		types, _ = vocab.Lookup(vocab.SchemeSchemaOrg, vocab.FallbackSchemaOrg)
		types.SchemaOrg = schemaType
		types.ResourceType = schemaType
	}
	if additional := jsonutil.String(doc, "additionalType"); additional != "" {
		types.ResourceType = additional
	}
	return types
}

// Agents normalizes Person and Organization values. Bare strings go through
// the name heuristics.
func Agents(v any, contributorType string) []hub.Name {
	var raws []helpers.RawName
	for _, item := range jsonutil.List(v) {
		m, ok := item.(map[string]any)
		if !ok {
			if s := jsonutil.AsString(item); s != "" {
				raws = append(raws, helpers.StructuredName{Name: s, ContributorType: contributorType})
			}
			continue
		}

		raw := helpers.StructuredName{
			Name:            jsonutil.String(m, "name"),
			GivenName:       jsonutil.String(m, "givenName"),
			FamilyName:      jsonutil.String(m, "familyName"),
			ContributorType: contributorType,
		}
		switch {
		case jsonutil.HasType(m, "Person"):
			raw.NameType = hub.NameTypePersonal
		case jsonutil.HasType(m, "Organization"):
			raw.NameType = hub.NameTypeOrganizational
		}
		for _, id := range append([]string{jsonutil.String(m, "@id")}, jsonutil.Strings(m["sameAs"])...) {
			if orcid := helpers.NormalizeORCID(id); orcid != "" && strings.Contains(strings.ToLower(id), "orcid") {
				raw.NameIdentifiers = append(raw.NameIdentifiers, hub.NameIdentifier{NameIdentifier: orcid, NameIdentifierScheme: "ORCID"})
				break
			}
		}
		raw.Affiliation = jsonutil.Strings(m["affiliation"])
		raws = append(raws, raw)
	}
	return helpers.GetAuthors(raws)
}

func language(v any) string {
	if m, ok := v.(map[string]any); ok {
		if s := jsonutil.String(m, "alternateName"); s != "" {
			return s
		}
		return jsonutil.String(m, "name")
	}
	return jsonutil.First(v)
}

// Keywords accepts a comma-separated string or a list of terms.
func Keywords(v any) []hub.Subject {
	var out []hub.Subject
	if s, ok := v.(string); ok {
		for _, kw := range strings.Split(s, ",") {
			if kw = strings.TrimSpace(kw); kw != "" {
				out = append(out, hub.Subject{Subject: kw})
			}
		}
		return out
	}
	for _, kw := range jsonutil.Strings(v) {
		out = append(out, hub.Subject{Subject: kw})
	}
	return out
}

// spatialCoverage reads Place values whose geo is GeoCoordinates or a GeoShape
// box or polygon.
func spatialCoverage(v any) []hub.RawGeoLocation {
	var out []hub.RawGeoLocation
	for _, item := range jsonutil.List(v) {
		place, ok := item.(map[string]any)
		if !ok {
			if s := jsonutil.AsString(item); s != "" {
				out = append(out, hub.RawGeoLocation{Place: s})
			}
			continue
		}
		raw := hub.RawGeoLocation{Place: jsonutil.String(place, "name")}
		geos := jsonutil.Objects(place["geo"])
		if len(geos) == 0 && (jsonutil.HasType(place, "GeoCoordinates") || jsonutil.HasType(place, "GeoShape")) {
			geos = []map[string]any{place}
		}
		for _, geo := range geos {
			if lat, lon := jsonutil.String(geo, "latitude"), jsonutil.String(geo, "longitude"); lat != "" && lon != "" {
				raw.Point = &hub.GeoPoint{PointLatitude: lat, PointLongitude: lon}
			}
			if box := jsonutil.String(geo, "box"); box != "" {
				raw.BoxText = box
			}
			if p := polygon(geo["polygon"]); len(p) > 0 {
				raw.Polygon = p
			}
		}
		out = append(out, raw)
	}
	return out
}

// polygon reads [[lon, lat], ...] pairs or a "lat lon lat lon ..." string.
func polygon(v any) []hub.GeoPoint {
	var out []hub.GeoPoint
	if s, ok := v.(string); ok {
		f := strings.Fields(strings.ReplaceAll(s, ",", " "))
		for i := 0; i+1 < len(f); i += 2 {
			out = append(out, hub.GeoPoint{PointLatitude: f[i], PointLongitude: f[i+1]})
		}
		return out
	}
	for _, pair := range jsonutil.List(v) {
		p, ok := pair.([]any)
		if !ok || len(p) != 2 {
			continue
		}
		out = append(out, hub.GeoPoint{PointLongitude: jsonutil.AsString(p[0]), PointLatitude: jsonutil.AsString(p[1])})
	}
	return out
}

func funders(v any) []hub.FundingReference {
	var out []hub.FundingReference
	for _, item := range jsonutil.List(v) {
		if m, ok := item.(map[string]any); ok {
			ref := hub.FundingReference{FunderName: jsonutil.String(m, "name"), FunderIdentifier: jsonutil.String(m, "@id")}
			if ref.FunderIdentifier == "" {
				ref.FunderIdentifier = jsonutil.First(m["identifier"])
			}
			out = append(out, ref)
			continue
		}
		if s := jsonutil.AsString(item); s != "" {
			out = append(out, hub.FundingReference{FunderName: s})
		}
	}
	return out
}

// relatedIdentifier reads a related resource given as a URL or as an object
// with @id, identifier or url.
func relatedIdentifier(item any, relationType string) (hub.RelatedIdentifier, bool) {
	value := jsonutil.AsString(item)
	if m, ok := item.(map[string]any); ok {
		value = jsonutil.String(m, "@id")
		if ids := jsonutil.List(m["identifier"]); value == "" && len(ids) > 0 {
			value, _ = identifierValue(ids[0])
		}
		if value == "" {
			value = jsonutil.String(m, "url")
		}
	}
	if value == "" {
		return hub.RelatedIdentifier{}, false
	}
	if d := doi.Validate(value); d != "" {
		return hub.RelatedIdentifier{RelatedIdentifier: d, RelatedIdentifierType: "DOI", RelationType: relationType}, true
	}
	idType := hub.DetectIdentifierType(value)
	if idType == "" {
		return hub.RelatedIdentifier{}, false
	}
	return hub.RelatedIdentifier{RelatedIdentifier: value, RelatedIdentifierType: idType, RelationType: relationType}, true
}

// container reads the periodical, the isPartOf work or the data catalog the
// record belongs to.
func container(doc map[string]any) *hub.Container {
	pages := func(c *hub.Container) *hub.Container {
		c.FirstPage = jsonutil.String(doc, "pageStart")
		c.LastPage = jsonutil.String(doc, "pageEnd")
		return c
	}

	if p := jsonutil.Object(doc["periodical"]); p != nil {
		return pages(periodical(p))
	}
	for _, p := range jsonutil.Objects(doc["isPartOf"]) {
		switch {
		case jsonutil.HasType(p, "Periodical"), jsonutil.HasType(p, "PublicationIssue"), jsonutil.HasType(p, "PublicationVolume"):
			return pages(periodical(p))
		case jsonutil.String(p, "name") != "":
			c := &hub.Container{Type: containerType(p), Title: jsonutil.String(p, "name")}
			if id := jsonutil.String(p, "@id"); id != "" {
				c.Identifier = id
				c.IdentifierType = hub.DetectIdentifierType(id)
				if d := doi.Validate(id); d != "" {
					c.Identifier, c.IdentifierType = d, "DOI"
				}
			}
			return pages(c)
		}
	}
	if catalog := jsonutil.Object(doc["includedInDataCatalog"]); catalog != nil {
		c := &hub.Container{Type: "DataRepository", Title: jsonutil.String(catalog, "name")}
		if u := jsonutil.String(catalog, "url"); u != "" {
			c.Identifier, c.IdentifierType = u, "URL"
		}
		if c.Title != "" || c.Identifier != "" {
			return c
		}
	}
	return nil
}

// periodical walks a PublicationIssue → PublicationVolume → Periodical chain,
// or reads a flat Periodical with volumeNumber/issueNumber.
func periodical(p map[string]any) *hub.Container {
	c := &hub.Container{Type: "Journal"}
	for node := p; node != nil; node = jsonutil.Object(node["isPartOf"]) {
		if v := jsonutil.String(node, "issueNumber"); v != "" && c.Issue == "" {
			c.Issue = v
		}
		if v := jsonutil.String(node, "volumeNumber"); v != "" && c.Volume == "" {
			c.Volume = v
		}
		if v := jsonutil.String(node, "name"); v != "" && (c.Title == "" || jsonutil.HasType(node, "Periodical")) {
			c.Title = v
		}
		if v := jsonutil.First(node["issn"]); v != "" {
			c.Identifier, c.IdentifierType = v, "ISSN"
		}
	}
	return c
}

func containerType(m map[string]any) string {
	for _, t := range jsonutil.Types(m) {
		switch t {
		case "Book":
			return "Book"
		case "BookSeries", "CreativeWorkSeries":
			return "Series"
		case "DataCatalog":
			return "DataRepository"
		}
	}
	return "Series"
}
