package bibtex

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/lehigh-university-libraries/bolognese/format"
	"github.com/lehigh-university-libraries/bolognese/helpers"
	"github.com/lehigh-university-libraries/bolognese/hub"
	"github.com/lehigh-university-libraries/bolognese/vocab"
)

// Serialize writes hub records as BibTeX entries separated by a blank line.
func (f *Format) Serialize(w io.Writer, records []*hub.Record, opts *format.SerializeOptions) error {
	// no layout options apply to BibTeX
	_ = opts

	bw := bufio.NewWriter(w)
	for i, record := range records {
		if i > 0 {
			bw.WriteString("\n")
		}
		bw.WriteString(toEntry(record))
	}
	return bw.Flush()
}

// toEntry renders one record. Values are brace-delimited; month is written as
// the bare three-letter macro.
func toEntry(record *hub.Record) string {
	var sb strings.Builder

	entryType := record.Types.Bibtex
	if entryType == "" {
		entryType = vocab.FallbackBibtex
	}
	fmt.Fprintf(&sb, "@%s{%s,\n", entryType, citationKey(record))

	field := func(name, value string) {
		if value = strings.TrimSpace(value); value != "" {
			fmt.Fprintf(&sb, "  %s = {%s},\n", name, escapeBibtex(value))
		}
	}

	field("title", record.MainTitle())
	if authors, ok := helpers.AuthorsAsString(record.Creators); ok {
		fmt.Fprintf(&sb, "  author = {%s},\n", escapeBibtex(authors))
	}
	var editors []hub.Name
	for _, c := range record.Contributors {
		if vocab.CitationRole(c.ContributorType) == "editor" {
			editors = append(editors, c)
		}
	}
	if names, ok := helpers.AuthorsAsString(editors); ok {
		fmt.Fprintf(&sb, "  editor = {%s},\n", escapeBibtex(names))
	}

	issued := helpers.ParseDate(hub.GetDate(record.Dates, hub.DateIssued))
	if issued.IsZero() {
		field("year", record.PublicationYear)
	} else {
		field("year", fmt.Sprintf("%04d", issued.Year))
	}
	if month := issued.MonthAbbrev(); month != "" {
		fmt.Fprintf(&sb, "  month = %s,\n", month)
	}

	if c := record.Container; c != nil {
		switch {
		case c.Type == "Journal":
			field("journal", c.Title)
		case c.Type == "Book", c.Type == "Proceedings":
			field("booktitle", c.Title)
		default:
			field("series", c.Title)
		}
		field("volume", c.Volume)
		field("number", c.Issue)
		switch {
		case c.FirstPage != "" && c.LastPage != "":
			field("pages", c.FirstPage+"-"+c.LastPage)
		default:
			field("pages", c.FirstPage)
		}
		if c.IdentifierType == "ISSN" {
			field("issn", c.Identifier)
		}
	}

	field("publisher", record.Publisher)
	field("doi", record.DOI)
	field("url", record.URL)
	for _, id := range record.Identifiers {
		if id.IdentifierType == "ISBN" {
			field("isbn", id.Identifier)
			break
		}
	}
	field("keywords", strings.Join(record.SubjectStrings(), ", "))
	field("abstract", record.Abstract())
	field("language", record.Language)
	if len(record.RightsList) > 0 {
		rights := record.RightsList[0]
		if rights.RightsURI != "" {
			field("copyright", rights.RightsURI)
		} else {
			field("copyright", rights.Rights)
		}
	}

	sb.WriteString("}\n")
	return sb.String()
}

// citationKey is the DOI URL when there is one, otherwise the first author's
// family name and the year.
func citationKey(record *hub.Record) string {
	if record.DOI != "" {
		return record.DOIURL()
	}

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

// escapeBibtex escapes special characters for BibTeX.
func escapeBibtex(s string) string {
	s = strings.ReplaceAll(s, "&", "\\&")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "$", "\\$")
	s = strings.ReplaceAll(s, "#", "\\#")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
