package datacite

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/lehigh-university-libraries/bolognese/format"
	"github.com/lehigh-university-libraries/bolognese/hub"
)

// Serialize writes hub records as kernel-4 DataCite XML. Every record needs a
// DOI; otherwise format.ErrUnrepresentable is returned and nothing is written.
func (f *Format) Serialize(w io.Writer, records []*hub.Record, opts *format.SerializeOptions) error {
	opts = opts.OrDefault()

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	for i, record := range records {
		if record.DOI == "" {
			return fmt.Errorf("record %d has no DOI: %w", i, format.ErrUnrepresentable)
		}

		var output []byte
		var err error
		if opts.Pretty {
			output, err = xml.MarshalIndent(hubToXML(record), "", "  ")
		} else {
			output, err = xml.Marshal(hubToXML(record))
		}
		if err != nil {
			return fmt.Errorf("marshaling record %d: %w", i, err)
		}
		buf.Write(output)
		buf.WriteByte('\n')
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// hubToXML converts a hub record to the kernel-4 XML structure.
func hubToXML(record *hub.Record) *XMLResource {
	res := &XMLResource{
		Xmlns:             Namespace,
		XmlnsXsi:          xsiNamespace,
		XsiSchemaLocation: schemaLocation,
		Identifier:        &XMLIdentifier{IdentifierType: "DOI", Value: record.DOI},
		Publisher:         record.Publisher,
		PublicationYear:   record.PublicationYear,
		Language:          record.Language,
		Version:           record.VersionInfo,
		Sizes:             record.Sizes,
		Formats:           record.Formats,
	}
	if res.PublicationYear == "" {
		res.PublicationYear = hub.PublicationYear(record.Dates)
	}

	for _, c := range record.Creators {
		res.Creators = append(res.Creators, XMLCreator{
			CreatorName:     XMLPersonName{NameType: string(c.NameType), Value: c.Name},
			GivenName:       c.GivenName,
			FamilyName:      c.FamilyName,
			NameIdentifiers: xmlNameIdentifiers(c.NameIdentifiers),
			Affiliations:    xmlAffiliations(c.Affiliation),
		})
	}

	for _, t := range record.Titles {
		res.Titles = append(res.Titles, XMLTitle{TitleType: t.TitleType, Lang: t.Lang, Value: t.Title})
	}

	rtg := record.Types.ResourceTypeGeneral
	if rtg == "" {
		rtg = "Other"
	}
	res.ResourceType = &XMLResourceType{ResourceTypeGeneral: rtg, Value: record.Types.ResourceType}

	for _, s := range record.Subjects {
		res.Subjects = append(res.Subjects, XMLSubject{
			SubjectScheme: s.SubjectScheme,
			SchemeURI:     s.SchemeURI,
			ValueURI:      s.ValueURI,
			Lang:          s.Lang,
			Value:         s.Subject,
		})
	}

	for _, c := range record.Contributors {
		ct := c.ContributorType
		if ct == "" {
			ct = "Other"
		}
		res.Contributors = append(res.Contributors, XMLContributor{
			ContributorType: ct,
			ContributorName: XMLPersonName{NameType: string(c.NameType), Value: c.Name},
			GivenName:       c.GivenName,
			FamilyName:      c.FamilyName,
			NameIdentifiers: xmlNameIdentifiers(c.NameIdentifiers),
			Affiliations:    xmlAffiliations(c.Affiliation),
		})
	}

	for _, d := range record.Dates {
		res.Dates = append(res.Dates, XMLDate{DateType: d.DateType, DateInformation: d.DateInformation, Value: d.Date})
	}

	for _, id := range record.Identifiers {
		if id.IdentifierType == "DOI" {
			continue
		}
		res.AlternateIdentifiers = append(res.AlternateIdentifiers, XMLAlternateIdentifier{
			AlternateIdentifierType: id.IdentifierType,
			Value:                   id.Identifier,
		})
	}

	for _, rel := range record.RelatedIdentifiers {
		res.RelatedIdentifiers = append(res.RelatedIdentifiers, XMLRelatedIdentifier{
			RelatedIdentifierType: rel.RelatedIdentifierType,
			RelationType:          rel.RelationType,
			ResourceTypeGeneral:   rel.ResourceTypeGeneral,
			Value:                 rel.RelatedIdentifier,
		})
	}

	for _, r := range record.RightsList {
		res.RightsList = append(res.RightsList, XMLRights{RightsURI: r.RightsURI, Lang: r.Lang, Value: r.Rights})
	}

	hasSeries := false
	for _, d := range record.Descriptions {
		hasSeries = hasSeries || d.DescriptionType == "SeriesInformation"
		res.Descriptions = append(res.Descriptions, XMLDescription{DescriptionType: descriptionType(d.DescriptionType), Lang: d.Lang, Value: d.Description})
	}
	if !hasSeries && record.Container != nil && record.Container.Type == "Series" {
		if s := SeriesInformation(record.Container); s != "" {
			res.Descriptions = append(res.Descriptions, XMLDescription{DescriptionType: "SeriesInformation", Value: s})
		}
	}

	for _, g := range record.GeoLocations {
		res.GeoLocations = append(res.GeoLocations, xmlGeoLocation(g))
	}

	for _, f := range record.FundingReferences {
		ref := XMLFundingReference{FunderName: f.FunderName, AwardTitle: f.AwardTitle}
		if f.FunderIdentifier != "" {
			ref.FunderIdentifier = &XMLFunderIdentifier{FunderIdentifierType: f.FunderIdentifierType, Value: f.FunderIdentifier}
		}
		if f.AwardNumber != "" {
			ref.AwardNumber = &XMLAwardNumber{AwardURI: f.AwardURI, Value: f.AwardNumber}
		}
		res.FundingReferences = append(res.FundingReferences, ref)
	}

	return res
}

func descriptionType(t string) string {
	if t == "" {
		return "Abstract"
	}
	return t
}

func xmlNameIdentifiers(ids []hub.NameIdentifier) []XMLNameIdentifier {
	var out []XMLNameIdentifier
	for _, id := range ids {
		out = append(out, XMLNameIdentifier{
			NameIdentifierScheme: id.NameIdentifierScheme,
			SchemeURI:            id.SchemeURI,
			Value:                id.NameIdentifier,
		})
	}
	return out
}

func xmlAffiliations(affs hub.Affiliation) []XMLAffiliation {
	var out []XMLAffiliation
	for _, a := range affs {
		out = append(out, XMLAffiliation{Value: a})
	}
	return out
}

func xmlGeoLocation(g hub.GeoLocation) XMLGeoLocation {
	x := XMLGeoLocation{Place: g.Place}
	if g.Point != nil {
		x.Point = &XMLGeoPoint{PointLongitude: g.Point.PointLongitude, PointLatitude: g.Point.PointLatitude}
	}
	if g.Box != nil {
		x.Box = &XMLGeoBox{
			WestBoundLongitude: g.Box.WestBoundLongitude,
			EastBoundLongitude: g.Box.EastBoundLongitude,
			SouthBoundLatitude: g.Box.SouthBoundLatitude,
			NorthBoundLatitude: g.Box.NorthBoundLatitude,
		}
	}
	if len(g.Polygon) > 0 {
		var poly XMLGeoPolygon
		for _, p := range g.Polygon {
			poly.Points = append(poly.Points, XMLGeoPoint{PointLongitude: p.PolygonPoint.PointLongitude, PointLatitude: p.PolygonPoint.PointLatitude})
		}
		x.Polygons = []XMLGeoPolygon{poly}
	}
	return x
}
