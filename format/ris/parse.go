package ris

import (
	"bufio"
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

// tagRegex matches "XX  - value". Some exporters drop the space after the dash.
var tagRegex = regexp.MustCompile(`^([A-Z][A-Z0-9])  -(?: (.*))?$`)

// entry is one TY … ER block. Repeated tags keep their values in order.
type entry struct {
	tags map[string][]string
}

func (e *entry) add(tag, value string) {
	e.tags[tag] = append(e.tags[tag], value)
}

func (e *entry) first(tags ...string) string {
	for _, t := range tags {
		for _, v := range e.tags[t] {
			if v != "" {
				return v
			}
		}
	}
	return ""
}

func (e *entry) all(tags ...string) []string {
	var out []string
	for _, t := range tags {
		for _, v := range e.tags[t] {
			if v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

// Parse reads every TY … ER record in the input. A valid DOI override is
// applied to every record.
func (f *Format) Parse(r io.Reader, opts *format.ParseOptions) ([]*hub.Record, error) {
	opts = opts.OrDefault()

	entries, err := scan(r)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no RIS records found in input")
	}

	records := make([]*hub.Record, 0, len(entries))
	for _, e := range entries {
		records = append(records, toRecord(e, opts))
	}
	return records, nil
}

// scan splits the input into entries. Lines that carry no tag continue the
// previous value.
func scan(r io.Reader) ([]*entry, error) {
	var (
		entries []*entry
		current *entry
		lastTag string
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r ")
		line = strings.TrimPrefix(line, "\ufeff")

		m := tagRegex.FindStringSubmatch(line)
		if m == nil {
			if current != nil && lastTag != "" && strings.TrimSpace(line) != "" {
				values := current.tags[lastTag]
				values[len(values)-1] = strings.TrimSpace(values[len(values)-1] + " " + strings.TrimSpace(line))
			}
			continue
		}

		tag, value := m[1], strings.TrimSpace(m[2])
		switch tag {
		case "TY":
			current = &entry{tags: make(map[string][]string)}
			entries = append(entries, current)
			current.add(tag, value)
			lastTag = tag
		case "ER":
			current = nil
			lastTag = ""
		default:
			if current == nil {
				continue
			}
			current.add(tag, value)
			lastTag = tag
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return entries, nil
}

func toRecord(e *entry, opts *format.ParseOptions) *hub.Record {
	record := hub.NewRecord()
	record.Source = "ris"

	ty := e.first("TY")
	types, ok := vocab.Lookup(vocab.SchemeRIS, ty)
	if !ok {
		types, _ = vocab.Lookup(vocab.SchemeRIS, vocab.FallbackRis)
		types.Ris = ty
		types.ResourceType = ty
	}
	record.Types = types

	d := doi.Validate(e.first("DO"))
	if override := doi.Validate(opts.DOI); override != "" {
		d = override
	}
	if d != "" {
		record.SetDOI(d, doi.Normalize(d, opts.Sandbox))
	}
	record.URL = e.first("UR")

	if title := e.first("T1", "TI"); title != "" {
		record.Titles = append(record.Titles, hub.Title{Title: title})
	}
	for _, st := range e.all("ST") {
		record.Titles = append(record.Titles, hub.Title{Title: st, TitleType: "AlternativeTitle"})
	}

	var authors []helpers.RawName
	for _, a := range e.all("AU", "A1") {
		authors = append(authors, helpers.FlatName(a))
	}
	record.Creators = helpers.GetAuthors(authors)

	var editors []helpers.RawName
	for _, a := range e.all("A2", "ED") {
		editors = append(editors, helpers.StructuredName{Name: a, ContributorType: "Editor"})
	}
	record.Contributors = helpers.GetAuthors(editors)

	record.Publisher = e.first("PB")
	record.Language = e.first("LA")
	if abstract := e.first("AB", "N2"); abstract != "" {
		record.Descriptions = append(record.Descriptions, hub.Description{Description: helpers.StripHTML(abstract), DescriptionType: "Abstract"})
	}
	for _, kw := range e.all("KW") {
		record.Subjects = append(record.Subjects, hub.Subject{Subject: kw})
	}

	if issued := helpers.ParseDate(e.first("DA", "PY", "Y1")); !issued.IsZero() {
		record.AddDate(issued.ISO8601(), hub.DateIssued)
	}
	record.PublicationYear = hub.PublicationYear(record.Dates)

	record.Container = container(e, record.Types.Ris)
	for _, sn := range e.all("SN") {
		if idType := hub.DetectIdentifierType(sn); idType == "ISBN" {
			record.AddIdentifier(hub.Identifier{Identifier: sn, IdentifierType: idType})
		}
	}
	return record
}

// container builds the journal, book or series the record appeared in.
func container(e *entry, ty string) *hub.Container {
	c := &hub.Container{
		Title:     e.first("T2", "JO", "JF", "JA", "BT"),
		Volume:    e.first("VL"),
		Issue:     e.first("IS"),
		FirstPage: e.first("SP"),
		LastPage:  e.first("EP"),
	}
	if sn := e.first("SN"); sn != "" {
		if idType := hub.DetectIdentifierType(sn); idType == "ISSN" || idType == "ISBN" {
			c.Identifier, c.IdentifierType = sn, idType
		}
	}
	if *c == (hub.Container{}) {
		return nil
	}
	if first, last, ok := strings.Cut(c.FirstPage, "-"); ok && c.LastPage == "" {
		c.FirstPage, c.LastPage = strings.TrimSpace(first), strings.TrimSpace(last)
	}

	switch ty {
	case "JOUR", "JFULL", "MGZN", "NEWS", "EJOUR", "INPR":
		c.Type = "Journal"
	case "CHAP", "EDBOOK":
		c.Type = "Book"
	case "CPAPER", "CONF":
		c.Type = "Proceedings"
	default:
		c.Type = "Series"
	}
	return c
}
