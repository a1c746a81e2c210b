package codemeta

import (
	"fmt"
	"io"

	"github.com/lehigh-university-libraries/bolognese/format"
	"github.com/lehigh-university-libraries/bolognese/format/jsonutil"
	"github.com/lehigh-university-libraries/bolognese/format/schemaorg"
	"github.com/lehigh-university-libraries/bolognese/hub"
)

// Serialize writes hub records as codemeta.json. Records that do not describe
// software are still written, typed with their schema.org type.
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
		return fmt.Errorf("encoding codemeta: %w", err)
	}
	_, err = w.Write(out)
	return err
}

func toDocument(record *hub.Record) Document {
	doc := Document{
		Context:        Context,
		Type:           record.Types.SchemaOrg,
		ID:             record.DOIURL(),
		CodeRepository: record.URL,
		Name:           record.MainTitle(),
		Description:    record.Abstract(),
		Author:         schemaorg.ToAgents(record.Creators),
		Version:        record.VersionInfo,
		Keywords:       record.SubjectStrings(),
		DateCreated:    hub.GetDate(record.Dates, hub.DateCreated),
		DatePublished:  hub.GetDate(record.Dates, hub.DateIssued),
		DateModified:   hub.GetDate(record.Dates, hub.DateUpdated),
		Extra:          record.GetExtraFields(),
	}
	if doc.Type == "" {
		doc.Type = "SoftwareSourceCode"
	}

	var ids []string
	for _, id := range record.Identifiers {
		ids = append(ids, id.Identifier)
	}
	doc.Identifier = jsonutil.One(ids)

	var editors, maintainers, others []hub.Name
	for _, c := range record.Contributors {
		switch c.ContributorType {
		case "Editor":
			editors = append(editors, c)
		case "ContactPerson":
			maintainers = append(maintainers, c)
		default:
			others = append(others, c)
		}
	}
	doc.Editor = schemaorg.ToAgents(editors)
	doc.Maintainer = schemaorg.ToAgents(maintainers)
	doc.Contributor = schemaorg.ToAgents(others)

	var licenses []string
	for _, r := range record.RightsList {
		switch {
		case r.RightsURI != "":
			licenses = append(licenses, r.RightsURI)
		case r.Rights != "":
			licenses = append(licenses, r.Rights)
		}
	}
	doc.License = jsonutil.One(licenses)

	if record.Publisher != "" {
		doc.Publisher = &schemaorg.Organization{Type: "Organization", Name: record.Publisher}
	}
	return doc
}
