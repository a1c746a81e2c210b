package codemeta

import (
	"fmt"
	"io"

	"github.com/lehigh-university-libraries/bolognese/doi"
	"github.com/lehigh-university-libraries/bolognese/format"
	"github.com/lehigh-university-libraries/bolognese/format/jsonutil"
	"github.com/lehigh-university-libraries/bolognese/format/schemaorg"
	"github.com/lehigh-university-libraries/bolognese/helpers"
	"github.com/lehigh-university-libraries/bolognese/hub"
	"github.com/lehigh-university-libraries/bolognese/vocab"
)

// mapped lists the properties read into record fields. "url" is only mapped
// when there is no codeRepository; otherwise it stays in Extra.
var mapped = map[string]bool{
	"@context": true, "@type": true, "@id": true, "identifier": true,
	"codeRepository": true, "name": true, "description": true, "author": true,
	"creator": true, "contributor": true, "editor": true, "maintainer": true,
	"version": true, "license": true, "keywords": true, "dateCreated": true,
	"datePublished": true, "dateModified": true, "publisher": true,
}

// Parse reads a codemeta.json document.
func (f *Format) Parse(r io.Reader, opts *format.ParseOptions) ([]*hub.Record, error) {
	opts = opts.OrDefault()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	docs, err := jsonutil.Documents(data)
	if err != nil {
		return nil, fmt.Errorf("parsing codemeta: %w", err)
	}

	records := make([]*hub.Record, 0, len(docs))
	for _, doc := range docs {
		records = append(records, toRecord(doc, opts))
	}
	return records, nil
}

func toRecord(doc map[string]any, opts *format.ParseOptions) *hub.Record {
	record := hub.NewRecord()
	record.Source = "codemeta"

	readIdentifiers(record, doc, opts)

	codeType := "SoftwareSourceCode"
	if t := jsonutil.Types(doc); len(t) > 0 {
		codeType = t[0]
	}
	types, ok := vocab.Lookup(vocab.SchemeSchemaOrg, codeType)
	if !ok {
		types, _ = vocab.Lookup(vocab.SchemeSchemaOrg, "SoftwareSourceCode")
		types.SchemaOrg = codeType
		types.ResourceType = codeType
	}
	record.Types = types

	record.URL = jsonutil.String(doc, "codeRepository")
	urlMapped := record.URL == ""
	if urlMapped {
		record.URL = jsonutil.String(doc, "url")
	}

	record.Creators = schemaorg.Agents(doc["author"], "")
	if len(record.Creators) == 0 {
		record.Creators = schemaorg.Agents(doc["creator"], "")
	}
	var contributors []hub.Name
	contributors = append(contributors, schemaorg.Agents(doc["editor"], "Editor")...)
	contributors = append(contributors, schemaorg.Agents(doc["maintainer"], "ContactPerson")...)
	contributors = append(contributors, schemaorg.Agents(doc["contributor"], "Other")...)
	if len(contributors) > 0 {
		record.Contributors = contributors
	}

	if title := jsonutil.String(doc, "name"); title != "" {
		record.Titles = append(record.Titles, hub.Title{Title: title})
	}
	if description := jsonutil.String(doc, "description"); description != "" {
		record.Descriptions = append(record.Descriptions, hub.Description{Description: helpers.StripHTML(description), DescriptionType: "Abstract"})
	}
	record.VersionInfo = jsonutil.String(doc, "version")
	record.Publisher = jsonutil.First(doc["publisher"])
	record.Subjects = schemaorg.Keywords(doc["keywords"])

	for _, l := range jsonutil.List(doc["license"]) {
		value := jsonutil.AsString(l)
		if m, ok := l.(map[string]any); ok {
			value = jsonutil.String(m, "url")
			if value == "" {
				value = jsonutil.String(m, "@id")
			}
			if value == "" {
				value = jsonutil.String(m, "name")
			}
		}
		if value != "" {
			record.RightsList = append(record.RightsList, hub.NewRights(value))
		}
	}

	record.AddDate(jsonutil.String(doc, "datePublished"), hub.DateIssued)
	record.AddDate(jsonutil.String(doc, "dateCreated"), hub.DateCreated)
	record.AddDate(jsonutil.String(doc, "dateModified"), hub.DateUpdated)
	record.PublicationYear = hub.PublicationYear(record.Dates)

	for key, value := range doc {
		if mapped[key] || (key == "url" && urlMapped) {
			continue
		}
		record.SetExtra(key, value)
	}
	return record
}

// readIdentifiers takes the DOI from @id or identifier and keeps the other
// identifiers with a detected type.
func readIdentifiers(record *hub.Record, doc map[string]any, opts *format.ParseOptions) {
	found := doi.Validate(jsonutil.String(doc, "@id"))
	var others []hub.Identifier
	for _, item := range jsonutil.List(doc["identifier"]) {
		value := jsonutil.AsString(item)
		if m, ok := item.(map[string]any); ok {
			value = jsonutil.String(m, "value")
			if value == "" {
				value = jsonutil.String(m, "@id")
			}
		}
		if value == "" {
			continue
		}
		if d := doi.Validate(value); d != "" {
			if found == "" {
				found = d
			}
			continue
		}
		idType := hub.DetectIdentifierType(value)
		if idType == "" {
			idType = "Other"
		}
		others = append(others, hub.Identifier{Identifier: value, IdentifierType: idType})
	}

	if d := doi.Validate(opts.DOI); d != "" {
		found = d
	}
	if found != "" {
		record.SetDOI(found, doi.Normalize(found, opts.Sandbox))
	}
	for _, id := range others {
		record.AddIdentifier(id)
	}
}
