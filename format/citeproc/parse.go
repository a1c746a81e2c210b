package citeproc

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/lehigh-university-libraries/bolognese/doi"
	"github.com/lehigh-university-libraries/bolognese/format"
	"github.com/lehigh-university-libraries/bolognese/format/jsonutil"
	"github.com/lehigh-university-libraries/bolognese/helpers"
	"github.com/lehigh-university-libraries/bolognese/hub"
	"github.com/lehigh-university-libraries/bolognese/vocab"
)

var pageRange = regexp.MustCompile(`^\s*([^-–\s]+)\s*(?:-+|–)\s*(\S+)\s*$`)

// Parse reads a CSL-JSON item or an array of items.
func (f *Format) Parse(r io.Reader, opts *format.ParseOptions) ([]*hub.Record, error) {
	opts = opts.OrDefault()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	items, err := jsonutil.Documents(data)
	if err != nil {
		return nil, fmt.Errorf("parsing CSL-JSON: %w", err)
	}

	records := make([]*hub.Record, 0, len(items))
	for _, item := range items {
		records = append(records, toRecord(item, opts))
	}
	return records, nil
}

func toRecord(item map[string]any, opts *format.ParseOptions) *hub.Record {
	record := hub.NewRecord()
	record.Source = "citeproc"

	itemType := jsonutil.String(item, "type")
	types, ok := vocab.Lookup(vocab.SchemeCiteproc, itemType)
	if !ok {
		types, _ = vocab.Lookup(vocab.SchemeCiteproc, vocab.FallbackCiteproc)
		types.Citeproc = itemType
		types.ResourceType = itemType
	}
	record.Types = types

	d := doi.Validate(jsonutil.String(item, "DOI"))
	if d == "" {
		d = doi.Validate(jsonutil.String(item, "id"))
	}
	if override := doi.Validate(opts.DOI); override != "" {
		d = override
	}
	if d != "" {
		record.SetDOI(d, doi.Normalize(d, opts.Sandbox))
	}
	record.URL = jsonutil.String(item, "URL")
	if isbn := jsonutil.String(item, "ISBN"); isbn != "" {
		record.AddIdentifier(hub.Identifier{Identifier: isbn, IdentifierType: "ISBN"})
	}

	if title := jsonutil.String(item, "title"); title != "" {
		record.Titles = append(record.Titles, hub.Title{Title: title})
	}

	record.Creators = names(item["author"], "")
	contributors := names(item["editor"], "Editor")
	contributors = append(contributors, names(item["translator"], "Translator")...)
	if len(contributors) > 0 {
		record.Contributors = contributors
	}

	record.Publisher = jsonutil.String(item, "publisher")
	record.Language = jsonutil.String(item, "language")
	record.VersionInfo = jsonutil.String(item, "version")
	if abstract := jsonutil.String(item, "abstract"); abstract != "" {
		record.Descriptions = append(record.Descriptions, hub.Description{Description: helpers.StripHTML(abstract), DescriptionType: "Abstract"})
	}
	for _, kw := range strings.Split(jsonutil.String(item, "keyword"), ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			record.Subjects = append(record.Subjects, hub.Subject{Subject: kw})
		}
	}
	if rights := jsonutil.String(item, "copyright"); rights != "" {
		record.RightsList = append(record.RightsList, hub.NewRights(rights))
	}

	record.AddDate(issued(item["issued"]), hub.DateIssued)
	record.PublicationYear = hub.PublicationYear(record.Dates)
	record.Container = container(item, types.Citeproc)
	return record
}

// names reads a CSL name list. A literal name is left for the normalizer to
// classify; family and given parts are taken as they are.
func names(v any, contributorType string) []hub.Name {
	var raws []helpers.RawName
	for _, n := range jsonutil.Objects(v) {
		raws = append(raws, helpers.StructuredName{
			Name:            jsonutil.String(n, "literal"),
			GivenName:       jsonutil.String(n, "given"),
			FamilyName:      jsonutil.String(n, "family"),
			ContributorType: contributorType,
		})
	}
	return helpers.GetAuthors(raws)
}

// issued reads date-parts, falling back to the literal or raw string forms.
func issued(v any) string {
	m := jsonutil.Object(v)
	if m == nil {
		return helpers.ParseDate(jsonutil.AsString(v)).ISO8601()
	}
	for _, parts := range jsonutil.List(m["date-parts"]) {
		p := jsonutil.List(parts)
		if len(p) == 0 {
			continue
		}
		var month, day any
		if len(p) > 1 {
			month = p[1]
		}
		if len(p) > 2 {
			day = p[2]
		}
		if iso := helpers.DateFromParts(p[0], month, day); iso != "" {
			return iso
		}
	}
	for _, key := range []string{"literal", "raw"} {
		if iso := helpers.ParseDate(jsonutil.String(m, key)).ISO8601(); iso != "" {
			return iso
		}
	}
	return ""
}

// container builds the journal, book or series the item appeared in.
func container(item map[string]any, itemType string) *hub.Container {
	c := &hub.Container{
		Title:  jsonutil.String(item, "container-title"),
		Volume: jsonutil.String(item, "volume"),
		Issue:  jsonutil.String(item, "issue"),
	}
	if issn := jsonutil.First(item["ISSN"]); issn != "" {
		c.Identifier, c.IdentifierType = issn, "ISSN"
	}
	page := jsonutil.String(item, "page")
	if m := pageRange.FindStringSubmatch(page); m != nil {
		c.FirstPage, c.LastPage = m[1], m[2]
	} else {
		c.FirstPage = page
	}
	if *c == (hub.Container{}) {
		return nil
	}

	switch itemType {
	case "article-journal", "article-magazine", "article-newspaper":
		c.Type = "Journal"
	case "chapter", "entry":
		c.Type = "Book"
	case "paper-conference":
		c.Type = "Proceedings"
	default:
		c.Type = "Series"
	}
	return c
}
