package citeproc

import (
	"fmt"
	"io"
	"strings"

	"github.com/lehigh-university-libraries/bolognese/format"
	"github.com/lehigh-university-libraries/bolognese/format/jsonutil"
	"github.com/lehigh-university-libraries/bolognese/helpers"
	"github.com/lehigh-university-libraries/bolognese/hub"
	"github.com/lehigh-university-libraries/bolognese/vocab"
)

// Serialize writes hub records as CSL-JSON. One record is written as an
// object, several as an array.
func (f *Format) Serialize(w io.Writer, records []*hub.Record, opts *format.SerializeOptions) error {
	opts = opts.OrDefault()

	items := make([]Item, 0, len(records))
	for _, record := range records {
		items = append(items, toItem(record))
	}

	var v any = items
	if len(items) == 1 {
		v = items[0]
	}
	out, err := jsonutil.Marshal(v, opts.Pretty)
	if err != nil {
		return fmt.Errorf("encoding CSL-JSON: %w", err)
	}
	_, err = w.Write(out)
	return err
}

func toItem(record *hub.Record) Item {
	item := Item{
		ID:        record.DOIURL(),
		Type:      record.Types.Citeproc,
		Title:     record.MainTitle(),
		Author:    toNames(record.Creators),
		DOI:       record.DOI,
		URL:       record.URL,
		Publisher: record.Publisher,
		Abstract:  record.Abstract(),
		Keyword:   strings.Join(record.SubjectStrings(), ", "),
		Version:   record.VersionInfo,
		Language:  record.Language,
	}
	if item.Type == "" {
		item.Type = vocab.FallbackCiteproc
	}
	if item.ID == "" {
		item.ID = record.URL
	}
	if item.ID == "" {
		item.ID = generateID(record)
	}

	var editors, translators []hub.Name
	for _, c := range record.Contributors {
		switch vocab.CitationRole(c.ContributorType) {
		case "editor":
			editors = append(editors, c)
		case "translator":
			translators = append(translators, c)
		}
	}
	item.Editor = toNames(editors)
	item.Translator = toNames(translators)

	parts := helpers.ParseDate(hub.GetDate(record.Dates, hub.DateIssued)).Slice()
	if parts == nil {
		parts = helpers.ParseDate(record.PublicationYear).Slice()
	}
	if parts != nil {
		item.Issued = &Date{DateParts: [][]int{parts}}
	}

	for _, id := range record.Identifiers {
		if id.IdentifierType == "ISBN" {
			item.ISBN = id.Identifier
			break
		}
	}

	if c := record.Container; c != nil {
		item.ContainerTitle = c.Title
		item.Volume = c.Volume
		item.Issue = c.Issue
		item.Page = c.FirstPage
		if c.FirstPage != "" && c.LastPage != "" {
			item.Page = c.FirstPage + "-" + c.LastPage
		}
		if c.IdentifierType == "ISSN" {
			item.ISSN = c.Identifier
		}
	}

	if len(record.RightsList) > 0 {
		rights := record.RightsList[0]
		item.Copyright = rights.RightsURI
		if item.Copyright == "" {
			item.Copyright = rights.Rights
		}
	}
	return item
}

// toNames writes people as family/given and everything else as a literal.
func toNames(list []hub.Name) []Name {
	var out []Name
	for _, n := range list {
		switch {
		case n.FamilyName != "":
			out = append(out, Name{Family: n.FamilyName, Given: n.GivenName})
		case n.Name != "":
			out = append(out, Name{Literal: n.Name})
		}
	}
	return out
}

// generateID creates an ID from the first author's family name and the year.
func generateID(record *hub.Record) string {
	var author string
	if len(record.Creators) > 0 {
		c := record.Creators[0]
		if c.FamilyName != "" {
			author = c.FamilyName
		} else if parts := strings.Fields(c.Name); len(parts) > 0 {
			author = parts[len(parts)-1]
		}
	}
	if author == "" {
		author = "unknown"
	}

	year := record.PublicationYear
	if year == "" {
		year = "nd"
	}

	author = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return r
		}
		return -1
	}, author)

	return strings.ToLower(author) + year
}
