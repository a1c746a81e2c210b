package crossref

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/lehigh-university-libraries/bolognese/doi"
	"github.com/lehigh-university-libraries/bolognese/format"
	"github.com/lehigh-university-libraries/bolognese/helpers"
	"github.com/lehigh-university-libraries/bolognese/hub"
	"github.com/lehigh-university-libraries/bolognese/vocab"
)

// works is one decoded <crossref> or deposit <body> plus the document context
// it was found in.
type works struct {
	xml       *XMLWorks
	namespace string
	publisher string
}

// Parse reads Crossref XML and returns hub records. It accepts unixref
// (doi_records), unixsd (crossref_result) and doi_batch deposits; every work
// element (article, chapter, paper, ...) becomes one record.
func (f *Format) Parse(r io.Reader, opts *format.ParseOptions) ([]*hub.Record, error) {
	opts = opts.OrDefault()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	found, err := extractWorks(data)
	if err != nil {
		return nil, err
	}

	var records []*hub.Record
	for _, w := range found {
		records = append(records, worksToHub(w)...)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no Crossref works found in input")
	}

	for _, rec := range records {
		finish(rec, opts)
	}
	return records, nil
}

// extractWorks walks the token stream for <crossref> elements of query
// results and the <body> of deposits. unixsd puts the publisher name in a
// crm-item ahead of the record it belongs to.
func extractWorks(data []byte) ([]works, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	var found []works
	var stack []string
	publisher := ""

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			parent := ""
			if len(stack) > 0 {
				parent = stack[len(stack)-1]
			}

			switch {
			case t.Name.Local == "crm-item" && attr(t, "name") == "publisher-name":
				var v string
				if err := decoder.DecodeElement(&v, &t); err != nil {
					return nil, fmt.Errorf("decoding crm-item: %w", err)
				}
				publisher = strings.TrimSpace(v)
				continue
			case t.Name.Local == "crossref" || (t.Name.Local == "body" && parent == "doi_batch"):
				var w XMLWorks
				if err := decoder.DecodeElement(&w, &t); err != nil {
					return nil, fmt.Errorf("decoding %s: %w", t.Name.Local, err)
				}
				found = append(found, works{xml: &w, namespace: t.Name.Space, publisher: publisher})
				publisher = ""
				continue
			}
			stack = append(stack, t.Name.Local)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	return found, nil
}

func attr(start xml.StartElement, local string) string {
	for _, a := range start.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

func worksToHub(w works) []*hub.Record {
	var records []*hub.Record
	add := func(rec *hub.Record) {
		rec.SchemaVersion = w.namespace
		if rec.Publisher == "" {
			rec.Publisher = w.publisher
		}
		records = append(records, rec)
	}

	for _, j := range w.xml.Journals {
		for _, a := range journalRecords(j) {
			add(a)
		}
	}
	for _, b := range w.xml.Books {
		for _, rec := range bookRecords(b) {
			add(rec)
		}
	}
	for _, c := range w.xml.Conferences {
		for _, p := range c.Papers {
			rec := workToHub(p, "ProceedingsArticle")
			if pm := c.Proceedings; pm != nil {
				rec.Container = &hub.Container{Type: "Proceedings", Title: strings.TrimSpace(pm.ProceedingsTitle)}
				if rec.Publisher == "" && pm.Publisher != nil {
					rec.Publisher = strings.TrimSpace(pm.Publisher.Name)
				}
				addISBNs(rec, pm.ISBNs)
			}
			if p.Pages != nil && rec.Container != nil {
				rec.Container.FirstPage = strings.TrimSpace(p.Pages.FirstPage)
				rec.Container.LastPage = strings.TrimSpace(p.Pages.LastPage)
			}
			if ev := c.Event; ev != nil {
				if v := strings.TrimSpace(ev.Name); v != "" {
					rec.SetExtra("conference_name", v)
				}
				if v := strings.TrimSpace(ev.Location); v != "" {
					rec.SetExtra("conference_location", v)
				}
				if v := strings.TrimSpace(ev.Date); v != "" {
					rec.SetExtra("conference_date", v)
				}
			}
			add(rec)
		}
	}
	for _, d := range w.xml.Dissertations {
		add(workToHub(d, "Dissertation"))
	}
	for _, p := range w.xml.PostedContent {
		add(workToHub(p, "PostedContent"))
	}
	for _, db := range w.xml.Databases {
		for _, ds := range db.Datasets {
			rec := workToHub(ds, "Dataset")
			if m := db.Metadata; m != nil {
				if rec.Publisher == "" && m.Publisher != nil {
					rec.Publisher = strings.TrimSpace(m.Publisher.Name)
				}
				if t := firstTitle(m.Titles); t != "" {
					rec.Container = &hub.Container{Type: "DataRepository", Title: t}
				}
			}
			add(rec)
		}
	}
	for _, rp := range w.xml.Reports {
		if rp.Metadata != nil {
			add(workToHub(*rp.Metadata, "Report"))
		}
	}
	for _, s := range w.xml.Standards {
		if s.Metadata != nil {
			add(workToHub(*s.Metadata, "Standard"))
		}
	}
	for _, pr := range w.xml.PeerReviews {
		add(workToHub(pr, "PeerReview"))
	}
	return records
}

// journalRecords returns one record per article, each carrying the journal
// and issue as its container. A journal without articles yields the issue or
// the journal itself when either has a DOI.
func journalRecords(j XMLJournal) []*hub.Record {
	var container hub.Container
	container.Type = "Journal"
	language := ""
	if m := j.Metadata; m != nil {
		container.Title = strings.TrimSpace(m.FullTitle)
		if container.Title == "" {
			container.Title = strings.TrimSpace(m.AbbrevTitle)
		}
		if issn := pickISSN(m.ISSNs); issn != "" {
			container.Identifier = issn
			container.IdentifierType = "ISSN"
		}
		language = m.Language
	}
	var issueDates []XMLDate
	if is := j.Issue; is != nil {
		container.Volume = strings.TrimSpace(is.Volume)
		container.Issue = strings.TrimSpace(is.Issue)
		issueDates = is.PublicationDates
	}

	var records []*hub.Record
	for _, a := range j.Articles {
		if len(a.PublicationDates) == 0 {
			a.PublicationDates = issueDates
		}
		if a.Language == "" {
			a.Language = language
		}
		rec := workToHub(a, "JournalArticle")
		c := container
		if a.Pages != nil {
			c.FirstPage = strings.TrimSpace(a.Pages.FirstPage)
			c.LastPage = strings.TrimSpace(a.Pages.LastPage)
		}
		if c.Title != "" || c.Identifier != "" {
			rec.Container = &c
		}
		records = append(records, rec)
	}
	if len(records) > 0 {
		return records
	}

	if is := j.Issue; is != nil && is.DoiData != nil {
		rec := workToHub(XMLWork{DoiData: is.DoiData, PublicationDates: is.PublicationDates}, "JournalIssue")
		rec.Titles = []hub.Title{{Title: container.Title}}
		c := container
		rec.Container = &c
		return []*hub.Record{rec}
	}
	if m := j.Metadata; m != nil && m.DoiData != nil {
		w := *m
		w.Titles = &XMLTitles{Titles: []XMLMarkup{{Inner: m.FullTitle}}}
		rec := workToHub(w, "Journal")
		return []*hub.Record{rec}
	}
	return nil
}

// bookRecords returns the chapters of a book, or the book itself when it has
// none.
func bookRecords(b XMLBook) []*hub.Record {
	meta := b.Metadata
	if meta == nil {
		meta = b.SeriesMetadata
	}
	if meta == nil {
		meta = b.SetMetadata
	}

	if len(b.ContentItems) == 0 {
		if meta == nil {
			return nil
		}
		rec := workToHub(*meta, bookKind(b.BookType))
		addISBNs(rec, meta.ISBNs)
		return []*hub.Record{rec}
	}

	var records []*hub.Record
	for _, item := range b.ContentItems {
		kind := "BookChapter"
		switch item.ComponentType {
		case "section":
			kind = "BookSection"
		case "part":
			kind = "BookPart"
		case "track":
			kind = "BookTrack"
		}
		rec := workToHub(item, kind)
		if meta != nil {
			c := &hub.Container{Type: "Book", Title: firstTitle(meta.Titles), Volume: strings.TrimSpace(meta.Volume)}
			if isbn := pickISBN(meta.ISBNs); isbn != "" {
				c.Identifier = isbn
				c.IdentifierType = "ISBN"
			}
			if item.Pages != nil {
				c.FirstPage = strings.TrimSpace(item.Pages.FirstPage)
				c.LastPage = strings.TrimSpace(item.Pages.LastPage)
			}
			rec.Container = c
			if rec.Publisher == "" && meta.Publisher != nil {
				rec.Publisher = strings.TrimSpace(meta.Publisher.Name)
			}
			if len(rec.Dates) == 0 {
				if d := pickDate(meta.PublicationDates); d != "" {
					rec.AddDate(d, hub.DateIssued)
				}
			}
			if meta.DoiData != nil {
				if bookDOI := doi.Validate(meta.DoiData.DOI); bookDOI != "" {
					rec.AddRelatedIdentifier(hub.RelatedIdentifier{RelatedIdentifier: bookDOI, RelatedIdentifierType: "DOI", RelationType: "IsPartOf"})
				}
			}
		}
		records = append(records, rec)
	}
	return records
}

func bookKind(bookType string) string {
	switch bookType {
	case "edited_book":
		return "EditedBook"
	case "monograph":
		return "Monograph"
	case "reference":
		return "ReferenceBook"
	}
	return "Book"
}

// workToHub maps the fields shared by every work element. kind is the
// CamelCased Crossref work type.
func workToHub(w XMLWork, kind string) *hub.Record {
	record := hub.NewRecord()
	record.Source = "crossref"
	record.Agency = "Crossref"

	types, ok := vocab.Lookup(vocab.SchemeCrossref, kind)
	if !ok {
		types, _ = vocab.Lookup(vocab.SchemeCrossref, "Component")
		types.ResourceType = kind
	}
	record.Types = types

	if w.DoiData != nil {
		if d := doi.Validate(w.DoiData.DOI); d != "" {
			record.DOI = d
		}
		record.URL = strings.TrimSpace(w.DoiData.Resource)
	}

	creators, contributors := names(w)
	record.Creators = creators
	record.Contributors = contributors

	if w.Titles != nil {
		for _, t := range w.Titles.Titles {
			if v := markupText(t.Inner); v != "" {
				record.Titles = append(record.Titles, hub.Title{Title: v, Lang: t.Lang})
			}
		}
		for _, t := range w.Titles.Subtitles {
			if v := markupText(t.Inner); v != "" {
				record.Titles = append(record.Titles, hub.Title{Title: v, TitleType: "Subtitle", Lang: t.Lang})
			}
		}
		for _, t := range w.Titles.OriginalTitle {
			if v := markupText(t.Inner); v != "" {
				record.Titles = append(record.Titles, hub.Title{Title: v, TitleType: "TranslatedTitle", Lang: t.Lang})
			}
		}
	}

	for _, a := range w.Abstracts {
		if v := markupText(a.Inner); v != "" {
			record.Descriptions = append(record.Descriptions, hub.Description{Description: v, DescriptionType: "Abstract", Lang: a.Lang})
		}
	}

	if w.Publisher != nil {
		record.Publisher = strings.TrimSpace(w.Publisher.Name)
	}
	if record.Publisher == "" {
		for _, inst := range w.Institutions {
			if v := strings.TrimSpace(inst.Name); v != "" {
				record.Publisher = v
				break
			}
		}
	}
	record.Language = strings.TrimSpace(w.Language)
	record.VersionInfo = strings.TrimSpace(w.EditionNumber)

	switch {
	case w.PostedDate != nil:
		record.AddDate(dateString(*w.PostedDate), hub.DateIssued)
	case len(w.ApprovalDates) > 0:
		record.AddDate(pickDate(w.ApprovalDates), hub.DateIssued)
	case w.DatabaseDate != nil:
		if d := w.DatabaseDate.Creation; d != nil {
			record.AddDate(dateString(*d), hub.DateCreated)
		}
		if d := w.DatabaseDate.Publication; d != nil {
			record.AddDate(dateString(*d), hub.DateIssued)
		}
		if d := w.DatabaseDate.Update; d != nil {
			record.AddDate(dateString(*d), hub.DateUpdated)
		}
	default:
		record.AddDate(pickDate(w.PublicationDates), hub.DateIssued)
	}
	record.PublicationYear = hub.PublicationYear(record.Dates)

	for _, p := range w.Programs {
		readProgram(record, p)
	}

	for _, c := range w.Citations {
		if d := doi.Validate(c.DOI); d != "" {
			record.AddRelatedIdentifier(hub.RelatedIdentifier{RelatedIdentifier: d, RelatedIdentifierType: "DOI", RelationType: "References"})
		}
	}

	if issn := pickISSN(w.ISSNs); issn != "" && kind != "JournalArticle" {
		record.AddIdentifier(hub.Identifier{Identifier: issn, IdentifierType: "ISSN"})
	}
	for _, deg := range w.Degrees {
		if v := strings.TrimSpace(deg); v != "" {
			record.SetExtra("degree", v)
		}
	}

	return record
}

// finish applies the DOI override and builds the identifier list once the
// work-level fields are known.
func finish(record *hub.Record, opts *format.ParseOptions) {
	if d := doi.Validate(opts.DOI); d != "" {
		record.DOI = d
	}
	if record.DOI != "" {
		record.AddIdentifier(hub.Identifier{Identifier: doi.Normalize(record.DOI, opts.Sandbox), IdentifierType: "DOI"})
	}
}

// names splits a work's contributors into creators (authors) and other
// contributors, keeping document order within each.
func names(w XMLWork) (creators, contributors []hub.Name) {
	var authorRaws, otherRaws []helpers.RawName

	items := w.PersonNames
	if w.Contributors != nil {
		items = append(items, w.Contributors.Items...)
	}
	for _, c := range items {
		raw, ok := rawName(c)
		if !ok {
			continue
		}
		role := strings.ToLower(strings.TrimSpace(c.ContributorRole))
		if role == "" || role == "author" {
			authorRaws = append(authorRaws, raw)
			continue
		}
		raw.ContributorType = helpers.ContributorType(role)
		otherRaws = append(otherRaws, raw)
	}

	creators = helpers.GetAuthors(authorRaws)
	if others := helpers.GetAuthors(otherRaws); len(others) > 0 {
		contributors = others
	}
	return creators, contributors
}

func rawName(c XMLContributor) (helpers.StructuredName, bool) {
	var affiliations []string
	affiliations = append(affiliations, c.Affiliations...)
	for _, inst := range c.Institutions {
		affiliations = append(affiliations, inst.Name)
	}

	switch c.XMLName.Local {
	case "person_name":
		raw := helpers.StructuredName{
			GivenName:   c.GivenName,
			FamilyName:  c.Surname,
			NameType:    hub.NameTypePersonal,
			Affiliation: affiliations,
		}
		if orcid := strings.TrimSpace(c.ORCID); orcid != "" {
			raw.NameIdentifiers = []hub.NameIdentifier{{NameIdentifier: orcid, NameIdentifierScheme: "ORCID"}}
		}
		if strings.TrimSpace(c.GivenName) == "" {
			raw.Name = c.Surname
		}
		return raw, strings.TrimSpace(c.Surname) != ""
	case "organization":
		name := strings.TrimSpace(c.Text)
		return helpers.StructuredName{Name: name, NameType: hub.NameTypeOrganizational}, name != ""
	}
	return helpers.StructuredName{}, false
}

// readProgram maps the fundref, access indicator and relations programs.
func readProgram(record *hub.Record, p XMLProgram) {
	for _, a := range p.Assertions {
		if a.Name == "fundgroup" {
			record.FundingReferences = append(record.FundingReferences, hub.NormalizeFundingReferences([]hub.FundingReference{fundGroup(a)})...)
		}
	}
	if strings.EqualFold(p.Name, "fundref") {
		// a fundref program may also list funders directly, without a fundgroup
		var direct hub.FundingReference
		collectFunding(&direct, p.Assertions)
		if direct.FunderName != "" && !hasFunder(record.FundingReferences, direct.FunderName) {
			record.FundingReferences = append(record.FundingReferences, hub.NormalizeFundingReferences([]hub.FundingReference{direct})...)
		}
	}

	for _, l := range p.LicenseRefs {
		uri := hub.NormalizeLicenseURI(l.Value)
		if uri == "" {
			continue
		}
		if !containsRights(record.RightsList, uri) {
			record.RightsList = append(record.RightsList, hub.Rights{RightsURI: uri})
		}
	}

	for _, item := range p.RelatedItems {
		for _, rel := range append(item.InterWork, item.IntraWork...) {
			rt := hub.NormalizeRelationType(rel.RelationshipType)
			value := strings.TrimSpace(rel.Value)
			if rt == "" || value == "" {
				continue
			}
			idType := identifierType(rel.IdentifierType)
			if idType == "DOI" {
				if d := doi.Validate(value); d != "" {
					value = d
				}
			}
			record.AddRelatedIdentifier(hub.RelatedIdentifier{RelatedIdentifier: value, RelatedIdentifierType: idType, RelationType: rt})
		}
	}
}

func fundGroup(a XMLAssertion) hub.FundingReference {
	var ref hub.FundingReference
	collectFunding(&ref, a.Assertions)
	return ref
}

// collectFunding fills ref from funder_name, funder_identifier and
// award_number assertions at any depth below the group.
func collectFunding(ref *hub.FundingReference, assertions []XMLAssertion) {
	for _, a := range assertions {
		switch a.Name {
		case "fundgroup":
			continue
		case "funder_name":
			if ref.FunderName == "" {
				ref.FunderName = strings.TrimSpace(a.Value)
			}
		case "funder_identifier":
			if ref.FunderIdentifier == "" {
				ref.FunderIdentifier = strings.TrimSpace(a.Value)
			}
		case "award_number":
			if ref.AwardNumber == "" {
				ref.AwardNumber = strings.TrimSpace(a.Value)
			}
		}
		collectFunding(ref, a.Assertions)
	}
}

func hasFunder(refs []hub.FundingReference, name string) bool {
	for _, r := range refs {
		if r.FunderName == name {
			return true
		}
	}
	return false
}

func containsRights(list []hub.Rights, uri string) bool {
	for _, r := range list {
		if r.RightsURI == uri {
			return true
		}
	}
	return false
}

func identifierType(t string) string {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case "doi":
		return "DOI"
	case "issn":
		return "ISSN"
	case "isbn":
		return "ISBN"
	case "uri", "url":
		return "URL"
	case "pmid":
		return "PMID"
	case "arxiv":
		return "arXiv"
	case "handle":
		return "Handle"
	}
	return "Other"
}

// markupText strips JATS or face markup from the inner XML of an element.
func markupText(inner string) string {
	return helpers.NormalizeWhitespace(helpers.StripHTML(inner))
}

func firstTitle(t *XMLTitles) string {
	if t == nil {
		return ""
	}
	for _, title := range t.Titles {
		if v := markupText(title.Inner); v != "" {
			return v
		}
	}
	return ""
}

// pickDate prefers the online date over print, then the first one given.
func pickDate(dates []XMLDate) string {
	for _, media := range []string{"online", "print", ""} {
		for _, d := range dates {
			if media == "" || d.MediaType == media {
				if s := dateString(d); s != "" {
					return s
				}
			}
		}
	}
	return ""
}

func dateString(d XMLDate) string {
	return helpers.DateFromParts(d.Year, d.Month, d.Day)
}

// pickISSN prefers the electronic ISSN.
func pickISSN(issns []XMLTyped) string {
	return pickTyped(issns)
}

func pickISBN(isbns []XMLTyped) string {
	return pickTyped(isbns)
}

func pickTyped(values []XMLTyped) string {
	for _, media := range []string{"electronic", ""} {
		for _, v := range values {
			if media == "" || v.MediaType == media {
				if s := strings.TrimSpace(v.Value); s != "" {
					return s
				}
			}
		}
	}
	return ""
}

func addISBNs(record *hub.Record, isbns []XMLTyped) {
	for _, v := range isbns {
		if s := strings.TrimSpace(v.Value); s != "" {
			record.AddIdentifier(hub.Identifier{Identifier: s, IdentifierType: "ISBN"})
		}
	}
}
