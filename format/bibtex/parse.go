package bibtex

import (
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

var (
	pagesRegex    = regexp.MustCompile(`^\s*([^-–\s]+)\s*(?:-+|–)\s*(\S+)\s*$`)
	keywordsRegex = regexp.MustCompile(`\s*[,;]\s*`)
)

// Parse reads every entry in a BibTeX file. @string macros are expanded;
// @comment and @preamble blocks are skipped, as is any entry that does not
// parse. A valid DOI override is applied to every entry.
func (f *Format) Parse(r io.Reader, opts *format.ParseOptions) ([]*hub.Record, error) {
	opts = opts.OrDefault()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	found := entries(data)
	if len(found) == 0 {
		return nil, fmt.Errorf("no BibTeX entries found in input")
	}

	records := make([]*hub.Record, 0, len(found))
	for _, e := range found {
		records = append(records, toRecord(e, opts))
	}
	return records, nil
}

func toRecord(e *entry, opts *format.ParseOptions) *hub.Record {
	field := func(name string) string {
		return clean(e.fields[name])
	}

	record := hub.NewRecord()
	record.Source = "bibtex"

	types, ok := vocab.Lookup(vocab.SchemeBibtex, e.typ)
	if !ok {
		types, _ = vocab.Lookup(vocab.SchemeBibtex, vocab.FallbackBibtex)
		types.Bibtex = e.typ
		types.ResourceType = e.typ
	}
	record.Types = types

	d := doi.Validate(field("doi"))
	if d == "" {
		d = doi.Validate(e.key)
	}
	if override := doi.Validate(opts.DOI); override != "" {
		d = override
	}
	if d != "" {
		record.SetDOI(d, doi.Normalize(d, opts.Sandbox))
	}
	record.URL = field("url")

	if title := field("title"); title != "" {
		record.Titles = append(record.Titles, hub.Title{Title: title})
	}

	var authors []helpers.RawName
	for _, name := range helpers.SplitNames(e.fields["author"], " and ") {
		authors = append(authors, rawName(name, ""))
	}
	record.Creators = helpers.GetAuthors(authors)

	var editors []helpers.RawName
	for _, name := range helpers.SplitNames(e.fields["editor"], " and ") {
		editors = append(editors, rawName(name, "Editor"))
	}
	record.Contributors = helpers.GetAuthors(editors)

	record.Publisher = field("publisher")
	if record.Publisher == "" {
		record.Publisher = field("institution")
	}
	if record.Publisher == "" {
		record.Publisher = field("school")
	}
	record.Language = field("language")

	if abstract := field("abstract"); abstract != "" {
		record.Descriptions = append(record.Descriptions, hub.Description{Description: abstract, DescriptionType: "Abstract"})
	}
	for _, kw := range keywordsRegex.Split(field("keywords"), -1) {
		if kw != "" {
			record.Subjects = append(record.Subjects, hub.Subject{Subject: kw})
		}
	}
	for _, key := range []string{"copyright", "license"} {
		if v := field(key); v != "" {
			record.RightsList = append(record.RightsList, hub.NewRights(v))
		}
	}

	issued := helpers.ParseDate(field("date")).ISO8601()
	if issued == "" {
		issued = helpers.DateFromParts(field("year"), field("month"), field("day"))
	}
	record.AddDate(issued, hub.DateIssued)
	record.PublicationYear = hub.PublicationYear(record.Dates)

	if isbn := field("isbn"); isbn != "" {
		record.AddIdentifier(hub.Identifier{Identifier: isbn, IdentifierType: "ISBN"})
	}
	record.Container = container(e.typ, field)
	return record
}

// rawName keeps organizations written as {Name} whole.
func rawName(s, contributorType string) helpers.RawName {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") && !strings.Contains(s[1:len(s)-1], "{") {
		return helpers.StructuredName{Name: clean(s), NameType: hub.NameTypeOrganizational, ContributorType: contributorType}
	}
	return helpers.StructuredName{Name: clean(s), ContributorType: contributorType}
}

// container reads journal or booktitle with volume, number and pages.
func container(typ string, field func(string) string) *hub.Container {
	c := &hub.Container{Volume: field("volume"), Issue: field("number")}
	switch {
	case field("journal") != "":
		c.Type = "Journal"
		c.Title = field("journal")
	case field("booktitle") != "":
		c.Type = "Book"
		if typ == "inproceedings" || typ == "conference" {
			c.Type = "Proceedings"
		}
		c.Title = field("booktitle")
	case field("series") != "":
		c.Type = "Series"
		c.Title = field("series")
	}

	if issn := field("issn"); issn != "" {
		c.Identifier, c.IdentifierType = issn, "ISSN"
	} else if isbn := field("isbn"); isbn != "" && c.Type == "Book" {
		c.Identifier, c.IdentifierType = isbn, "ISBN"
	}

	pages := field("pages")
	if m := pagesRegex.FindStringSubmatch(pages); m != nil {
		c.FirstPage, c.LastPage = m[1], m[2]
	} else {
		c.FirstPage = pages
	}

	if *c == (hub.Container{}) {
		return nil
	}
	if c.Type == "" {
		c.Type = "Series"
	}
	return c
}
