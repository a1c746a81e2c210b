package datacite

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/lehigh-university-libraries/bolognese/doi"
	"github.com/lehigh-university-libraries/bolognese/format"
	"github.com/lehigh-university-libraries/bolognese/helpers"
	"github.com/lehigh-university-libraries/bolognese/hub"
	"github.com/lehigh-university-libraries/bolognese/vocab"
)

var kernelRegex = regexp.MustCompile(`^https?://datacite\.org/schema/kernel-[0-9.]+$`)

// resource is one decoded <resource> plus the namespace it was found in.
type resource struct {
	xml       *XMLResource
	namespace string
}

// Parse reads DataCite XML and returns hub records.
// Handles both bare <resource> elements and OAI-PMH wrapped responses.
func (f *Format) Parse(r io.Reader, opts *format.ParseOptions) ([]*hub.Record, error) {
	opts = opts.OrDefault()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	resources, err := extractResources(data)
	if err != nil {
		return nil, err
	}

	if len(resources) == 0 {
		return nil, fmt.Errorf("no DataCite resource elements found in input")
	}

	records := make([]*hub.Record, 0, len(resources))
	for _, res := range resources {
		records = append(records, resourceToHub(res, opts))
	}

	return records, nil
}

// extractResources finds all <resource> elements in the XML.
// Works for both bare resource documents and OAI-PMH wrapped responses.
func extractResources(data []byte) ([]resource, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	var resources []resource

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing XML: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "resource" {
			continue
		}

		var res XMLResource
		if err := decoder.DecodeElement(&res, &start); err != nil {
			return nil, fmt.Errorf("decoding resource: %w", err)
		}
		resources = append(resources, resource{xml: &res, namespace: start.Name.Space})
	}

	return resources, nil
}

// resourceToHub converts a parsed DataCite XML resource to a hub record.
func resourceToHub(res resource, opts *format.ParseOptions) *hub.Record {
	x := res.xml
	record := hub.NewRecord()
	record.Source = "datacite"
	record.Agency = "DataCite"
	record.SchemaVersion = schemaVersion(res.namespace)

	// DOI: an explicit override wins, other identifiers are kept either way
	d := doi.Validate(opts.DOI)
	if d == "" && x.Identifier != nil && strings.EqualFold(strings.TrimSpace(x.Identifier.IdentifierType), "DOI") {
		d = doi.Validate(x.Identifier.Value)
	}
	if d != "" {
		record.DOI = d
		record.AddIdentifier(hub.Identifier{Identifier: doi.Normalize(d, opts.Sandbox), IdentifierType: "DOI"})
	}
	for _, alt := range x.AlternateIdentifiers {
		record.AddIdentifier(hub.Identifier{
			Identifier:     strings.TrimSpace(alt.Value),
			IdentifierType: strings.TrimSpace(alt.AlternateIdentifierType),
		})
	}

	record.Creators = helpers.GetAuthors(creatorNames(x.Creators))
	record.Contributors = helpers.GetAuthors(contributorNames(x.Contributors))
	if len(record.Contributors) == 0 {
		record.Contributors = nil
	}

	for _, t := range x.Titles {
		if val := strings.TrimSpace(t.Value); val != "" {
			record.Titles = append(record.Titles, hub.Title{Title: val, TitleType: t.TitleType, Lang: t.Lang})
		}
	}

	record.Publisher = strings.TrimSpace(x.Publisher)
	record.Language = strings.TrimSpace(x.Language)
	record.VersionInfo = strings.TrimSpace(x.Version)

	var resourceType, resourceTypeGeneral string
	if x.ResourceType != nil {
		resourceType = strings.TrimSpace(x.ResourceType.Value)
		resourceTypeGeneral = strings.TrimSpace(x.ResourceType.ResourceTypeGeneral)
	}
	record.Types = vocab.FromDataCite(resourceType, resourceTypeGeneral)

	for _, s := range x.Subjects {
		if val := strings.TrimSpace(s.Value); val != "" {
			record.Subjects = append(record.Subjects, hub.Subject{
				Subject:       val,
				SubjectScheme: s.SubjectScheme,
				SchemeURI:     s.SchemeURI,
				ValueURI:      s.ValueURI,
				Lang:          s.Lang,
			})
		}
	}

	dates := make([]hub.Date, 0, len(x.Dates))
	for _, dt := range x.Dates {
		dates = append(dates, hub.Date{Date: dt.Value, DateType: dt.DateType, DateInformation: dt.DateInformation})
	}
	record.Dates = hub.NormalizeDates(dates)

	record.PublicationYear = helpers.YearOf(x.PublicationYear)
	if record.PublicationYear == "" {
		record.PublicationYear = hub.PublicationYear(record.Dates)
	}

	for _, rel := range x.RelatedIdentifiers {
		val := strings.TrimSpace(rel.Value)
		if rel.RelatedIdentifierType == "DOI" {
			if v := doi.Validate(val); v != "" {
				val = v
			}
		}
		record.AddRelatedIdentifier(hub.RelatedIdentifier{
			RelatedIdentifier:     val,
			RelatedIdentifierType: rel.RelatedIdentifierType,
			RelationType:          rel.RelationType,
			ResourceTypeGeneral:   rel.ResourceTypeGeneral,
		})
	}

	record.Sizes = trimAll(x.Sizes)
	record.Formats = trimAll(x.Formats)
	record.ContentURL = trimAll(x.ContentURLs)

	rights := x.RightsList
	if x.Rights != nil {
		// kernel-2 <rights> usually holds the license URL as text
		r := *x.Rights
		if v := strings.TrimSpace(r.Value); r.RightsURI == "" && (strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://")) {
			r = XMLRights{RightsURI: v, Lang: r.Lang}
		}
		rights = append(rights, r)
	}
	for _, r := range rights {
		rr := hub.Rights{Rights: strings.TrimSpace(r.Value), RightsURI: strings.TrimSpace(r.RightsURI), Lang: r.Lang}
		if rr.Rights != "" || rr.RightsURI != "" {
			record.RightsList = append(record.RightsList, rr)
		}
	}

	for _, desc := range x.Descriptions {
		if val := helpers.NormalizeWhitespace(desc.Value); val != "" {
			record.Descriptions = append(record.Descriptions, hub.Description{
				Description:     val,
				DescriptionType: desc.DescriptionType,
				Lang:            desc.Lang,
			})
		}
	}

	record.GeoLocations = hub.NormalizeGeoLocations(rawGeoLocations(x.GeoLocations))
	record.FundingReferences = hub.NormalizeFundingReferences(fundingReferences(x.FundingReferences))
	record.Container = container(record, x.RelatedIdentifiers)

	return record
}

// schemaVersion returns the DataCite namespace as found, defaulting to kernel-4.
func schemaVersion(ns string) string {
	ns = strings.TrimSpace(ns)
	if kernelRegex.MatchString(ns) {
		return ns
	}
	return Namespace
}

func creatorNames(creators []XMLCreator) []helpers.RawName {
	raws := make([]helpers.RawName, 0, len(creators))
	for _, c := range creators {
		raws = append(raws, helpers.StructuredName{
			Name:            c.CreatorName.Value,
			NameType:        nameType(c.CreatorName.NameType),
			GivenName:       c.GivenName,
			FamilyName:      c.FamilyName,
			NameIdentifiers: nameIdentifiers(c.NameIdentifiers),
			Affiliation:     affiliations(c.Affiliations),
		})
	}
	return raws
}

func contributorNames(contributors []XMLContributor) []helpers.RawName {
	raws := make([]helpers.RawName, 0, len(contributors))
	for _, c := range contributors {
		raws = append(raws, helpers.StructuredName{
			Name:            c.ContributorName.Value,
			NameType:        nameType(c.ContributorName.NameType),
			GivenName:       c.GivenName,
			FamilyName:      c.FamilyName,
			NameIdentifiers: nameIdentifiers(c.NameIdentifiers),
			Affiliation:     affiliations(c.Affiliations),
			ContributorType: c.ContributorType,
		})
	}
	return raws
}

func nameType(s string) hub.NameType {
	switch hub.NameType(strings.TrimSpace(s)) {
	case hub.NameTypePersonal:
		return hub.NameTypePersonal
	case hub.NameTypeOrganizational:
		return hub.NameTypeOrganizational
	}
	return hub.NameTypeUnclassified
}

func nameIdentifiers(ids []XMLNameIdentifier) []hub.NameIdentifier {
	out := make([]hub.NameIdentifier, 0, len(ids))
	for _, id := range ids {
		out = append(out, hub.NameIdentifier{
			NameIdentifier:       id.Value,
			NameIdentifierScheme: id.NameIdentifierScheme,
			SchemeURI:            id.SchemeURI,
		})
	}
	return out
}

func affiliations(affs []XMLAffiliation) []string {
	out := make([]string, 0, len(affs))
	for _, a := range affs {
		out = append(out, a.Value)
	}
	return out
}

func rawGeoLocations(geos []XMLGeoLocation) []hub.RawGeoLocation {
	raws := make([]hub.RawGeoLocation, 0, len(geos))
	for _, g := range geos {
		raw := hub.RawGeoLocation{Place: g.Place}
		if g.Point != nil {
			if g.Point.PointLatitude != "" || g.Point.PointLongitude != "" {
				raw.Point = &hub.GeoPoint{PointLatitude: g.Point.PointLatitude, PointLongitude: g.Point.PointLongitude}
			} else {
				raw.PointText = g.Point.Text
			}
		}
		if g.Box != nil {
			if g.Box.WestBoundLongitude != "" || g.Box.SouthBoundLatitude != "" {
				raw.Box = &hub.GeoBox{
					WestBoundLongitude: g.Box.WestBoundLongitude,
					EastBoundLongitude: g.Box.EastBoundLongitude,
					SouthBoundLatitude: g.Box.SouthBoundLatitude,
					NorthBoundLatitude: g.Box.NorthBoundLatitude,
				}
			} else {
				raw.BoxText = g.Box.Text
			}
		}
		// the first polygon shares the entry; each further one gets its own
		for i, poly := range g.Polygons {
			if i > 0 {
				raws = append(raws, raw)
				raw = hub.RawGeoLocation{}
			}
			raw.Polygon = polygonPoints(poly)
		}
		raws = append(raws, raw)
	}
	return raws
}

func polygonPoints(poly XMLGeoPolygon) []hub.GeoPoint {
	out := make([]hub.GeoPoint, 0, len(poly.Points))
	for _, p := range poly.Points {
		out = append(out, hub.GeoPoint{PointLatitude: p.PointLatitude, PointLongitude: p.PointLongitude})
	}
	return out
}

func fundingReferences(refs []XMLFundingReference) []hub.FundingReference {
	out := make([]hub.FundingReference, 0, len(refs))
	for _, f := range refs {
		ref := hub.FundingReference{FunderName: f.FunderName, AwardTitle: f.AwardTitle}
		if f.FunderIdentifier != nil {
			ref.FunderIdentifier = f.FunderIdentifier.Value
			ref.FunderIdentifierType = f.FunderIdentifier.FunderIdentifierType
		}
		if f.AwardNumber != nil {
			ref.AwardNumber = f.AwardNumber.Value
			ref.AwardURI = f.AwardNumber.AwardURI
		}
		out = append(out, ref)
	}
	return out
}

// container derives the series from a SeriesInformation description, or a
// data repository from an IsPartOf link of a dataset.
func container(record *hub.Record, related []XMLRelatedIdentifier) *hub.Container {
	var partOf *XMLRelatedIdentifier
	for i, rel := range related {
		if rel.RelationType == "IsPartOf" && strings.TrimSpace(rel.Value) != "" {
			partOf = &related[i]
		}
	}

	for _, desc := range record.Descriptions {
		if desc.DescriptionType != "SeriesInformation" {
			continue
		}
		c := ParseSeriesInformation(desc.Description)
		c.Type = "Series"
		if partOf != nil {
			c.Identifier = strings.TrimSpace(partOf.Value)
			c.IdentifierType = partOf.RelatedIdentifierType
		}
		return c
	}

	if partOf != nil && partOf.RelatedIdentifierType == "URL" && record.Types.ResourceTypeGeneral == "Dataset" {
		return &hub.Container{
			Type:           "DataRepository",
			Title:          record.Publisher,
			Identifier:     strings.TrimSpace(partOf.Value),
			IdentifierType: "URL",
		}
	}
	return nil
}

var volumeIssueRegex = regexp.MustCompile(`^(.*?)\s*\(([^)]*)\)\s*$`)

// ParseSeriesInformation reads "Title, Volume(Issue), First-Last". Parts that
// are missing stay empty.
func ParseSeriesInformation(s string) *hub.Container {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	c := &hub.Container{Title: parts[0]}
	if len(parts) > 2 {
		if m := volumeIssueRegex.FindStringSubmatch(parts[1]); m != nil {
			c.Volume = m[1]
			c.Issue = m[2]
		} else {
			c.Volume = parts[1]
		}
	}
	if len(parts) > 1 {
		first, last, _ := strings.Cut(parts[len(parts)-1], "-")
		c.FirstPage = strings.TrimSpace(first)
		c.LastPage = strings.TrimSpace(last)
	}
	return c
}

// SeriesInformation is the inverse of ParseSeriesInformation.
func SeriesInformation(c *hub.Container) string {
	if c == nil || c.Title == "" {
		return ""
	}
	parts := []string{c.Title}
	if c.Volume != "" || c.Issue != "" {
		vi := c.Volume
		if c.Issue != "" {
			vi += "(" + c.Issue + ")"
		}
		parts = append(parts, vi)
	}
	if c.FirstPage != "" {
		pages := c.FirstPage
		if c.LastPage != "" {
			pages += "-" + c.LastPage
		}
		parts = append(parts, pages)
	}
	return strings.Join(parts, ", ")
}

func trimAll(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
