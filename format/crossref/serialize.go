package crossref

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iancoleman/strcase"

	"github.com/lehigh-university-libraries/bolognese/format"
	"github.com/lehigh-university-libraries/bolognese/helpers"
	"github.com/lehigh-university-libraries/bolognese/hub"
	"github.com/lehigh-university-libraries/bolognese/vocab"
)

// Depositor identifies this tool in the deposit head.
const Depositor = "bolognese"

// Serialize writes hub records as a Crossref doi_batch deposit. Only records
// registered with Crossref can be written; anything else, or a record without
// a DOI, returns format.ErrUnrepresentable and nothing is written.
func (f *Format) Serialize(w io.Writer, records []*hub.Record, opts *format.SerializeOptions) error {
	opts = opts.OrDefault()

	for i, record := range records {
		if !strings.EqualFold(record.Agency, "Crossref") {
			return fmt.Errorf("record %d is registered with %q, not Crossref: %w", i, record.Agency, format.ErrUnrepresentable)
		}
		if record.DOI == "" {
			return fmt.Errorf("record %d has no DOI: %w", i, format.ErrUnrepresentable)
		}
	}

	batch := &XMLDeposit{
		XMLNS:     Namespace,
		XSI:       xsiNamespace,
		JATS:      jatsNamespace,
		FR:        fundrefNS,
		AI:        accessNS,
		REL:       relationsNS,
		SchemaLoc: schemaLocation,
		Version:   Version,
		Head: &XMLHead{
			DoiBatchID: uuid.NewString(),
			Timestamp:  time.Now().UTC().Format("20060102150405"),
			Depositor:  &XMLDepositor{DepositorName: Depositor},
			Registrant: Depositor,
		},
		Body: &XMLBody{},
	}
	for _, record := range records {
		addToBody(batch.Body, record)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	encoder := xml.NewEncoder(&buf)
	if opts.Pretty {
		encoder.Indent("", "  ")
	}
	if err := encoder.Encode(batch); err != nil {
		return fmt.Errorf("encoding deposit: %w", err)
	}
	buf.WriteByte('\n')

	_, err := w.Write(buf.Bytes())
	return err
}

// addToBody places a record under the body element its work type belongs to.
func addToBody(body *XMLBody, record *hub.Record) {
	kind := strcase.ToCamel(record.Types.ResourceType)
	if !vocab.Has(vocab.SchemeCrossref, kind) {
		kind = kindFromGeneral(record.Types.ResourceTypeGeneral)
	}

	switch kind {
	case "JournalArticle":
		body.Journals = append(body.Journals, buildJournal(record))
	case "BookChapter", "BookSection", "BookPart", "BookTrack":
		body.Books = append(body.Books, buildChapter(record))
	case "Book", "Monograph", "EditedBook", "ReferenceBook", "BookSeries", "BookSet":
		body.Books = append(body.Books, buildBook(record, kind))
	case "ProceedingsArticle":
		body.Conferences = append(body.Conferences, buildConference(record))
	case "Dissertation":
		body.Dissertations = append(body.Dissertations, buildDissertation(record))
	case "Dataset":
		body.Databases = append(body.Databases, buildDatabase(record))
	default:
		body.PostedContent = append(body.PostedContent, buildPostedContent(record))
	}
}

func kindFromGeneral(rtg string) string {
	switch rtg {
	case "Dataset":
		return "Dataset"
	case "Book":
		return "Book"
	case "BookChapter":
		return "BookChapter"
	case "Dissertation":
		return "Dissertation"
	case "JournalArticle":
		return "JournalArticle"
	case "ConferencePaper":
		return "ProceedingsArticle"
	}
	return "PostedContent"
}

func buildJournal(record *hub.Record) *XMLJournalOut {
	j := &XMLJournalOut{Metadata: &XMLJournalMetadataOut{Language: languageCode(record.Language)}}
	article := &XMLArticleOut{
		PublicationType: "full_text",
		Titles:          buildTitles(record),
		Contributors:    buildContributors(record),
		Abstracts:       buildAbstracts(record),
		PublicationDate: buildDate(record, "online"),
		Fundref:         buildFundref(record),
		Access:          buildAccess(record),
		Relations:       buildRelations(record),
		DoiData:         buildDoiData(record),
		Citations:       buildCitations(record),
	}

	if c := record.Container; c != nil {
		j.Metadata.FullTitle = c.Title
		if c.IdentifierType == "ISSN" && c.Identifier != "" {
			j.Metadata.ISSN = &XMLTypedOut{MediaType: "electronic", Value: c.Identifier}
		}
		if c.Volume != "" || c.Issue != "" {
			j.Issue = &XMLJournalIssueOut{Issue: c.Issue}
			if c.Volume != "" {
				j.Issue.Volume = &XMLVolumeOut{Volume: c.Volume}
			}
		}
		if c.FirstPage != "" {
			article.Pages = &XMLPagesOut{FirstPage: c.FirstPage, LastPage: c.LastPage}
		}
	}
	if j.Metadata.FullTitle == "" {
		j.Metadata.FullTitle = record.Publisher
	}
	j.Article = article
	return j
}

func buildChapter(record *hub.Record) *XMLBookOut {
	meta := &XMLBookMetadataOut{Language: languageCode(record.Language), Publisher: buildPublisher(record)}
	item := &XMLContentItemOut{
		ComponentType:   "chapter",
		Titles:          buildTitles(record),
		Contributors:    buildContributors(record),
		Abstracts:       buildAbstracts(record),
		PublicationDate: buildDate(record, "online"),
		Fundref:         buildFundref(record),
		Access:          buildAccess(record),
		Relations:       buildRelations(record),
		DoiData:         buildDoiData(record),
		Citations:       buildCitations(record),
	}
	if c := record.Container; c != nil {
		meta.Titles = &XMLTitlesOut{Title: c.Title}
		meta.Volume = c.Volume
		if c.IdentifierType == "ISBN" && c.Identifier != "" {
			meta.ISBN = c.Identifier
		}
		if c.FirstPage != "" {
			item.Pages = &XMLPagesOut{FirstPage: c.FirstPage, LastPage: c.LastPage}
		}
	}
	if meta.ISBN == "" {
		meta.NoISBN = &XMLNoISBN{Reason: "monograph"}
	}
	meta.PublicationDate = buildDate(record, "print")
	return &XMLBookOut{BookType: "monograph", Metadata: meta, ContentItem: item}
}

func buildBook(record *hub.Record, kind string) *XMLBookOut {
	bookType := "monograph"
	switch kind {
	case "EditedBook":
		bookType = "edited_book"
	case "ReferenceBook":
		bookType = "reference"
	case "Book", "BookSeries", "BookSet":
		bookType = "other"
	}

	meta := &XMLBookMetadataOut{
		Language:        languageCode(record.Language),
		Contributors:    buildContributors(record),
		Titles:          buildTitles(record),
		Abstracts:       buildAbstracts(record),
		EditionNumber:   record.VersionInfo,
		PublicationDate: buildDate(record, "print"),
		Publisher:       buildPublisher(record),
		Fundref:         buildFundref(record),
		Access:          buildAccess(record),
		Relations:       buildRelations(record),
		DoiData:         buildDoiData(record),
		Citations:       buildCitations(record),
	}
	for _, id := range record.Identifiers {
		if id.IdentifierType == "ISBN" {
			meta.ISBN = id.Identifier
			break
		}
	}
	if meta.ISBN == "" {
		meta.NoISBN = &XMLNoISBN{Reason: "monograph"}
	}
	return &XMLBookOut{BookType: bookType, Metadata: meta}
}

func buildConference(record *hub.Record) *XMLConferenceOut {
	conf := &XMLConferenceOut{
		Event: &XMLEventOut{Name: record.GetExtraString("conference_name")},
		Proceedings: &XMLProceedingsOut{
			Publisher:       buildPublisher(record),
			PublicationDate: buildDate(record, "print"),
			NoISBN:          XMLNoISBN{Reason: "simple_series"},
		},
		Paper: &XMLPaperOut{
			Titles:          buildTitles(record),
			Contributors:    buildContributors(record),
			Abstracts:       buildAbstracts(record),
			PublicationDate: buildDate(record, "online"),
			Fundref:         buildFundref(record),
			Access:          buildAccess(record),
			Relations:       buildRelations(record),
			DoiData:         buildDoiData(record),
			Citations:       buildCitations(record),
		},
	}
	conf.Event.Location = record.GetExtraString("conference_location")
	conf.Event.Date = record.GetExtraString("conference_date")
	if c := record.Container; c != nil {
		conf.Proceedings.Title = c.Title
		if c.FirstPage != "" {
			conf.Paper.Pages = &XMLPagesOut{FirstPage: c.FirstPage, LastPage: c.LastPage}
		}
	}
	if conf.Event.Name == "" {
		conf.Event.Name = conf.Proceedings.Title
	}
	return conf
}

func buildDissertation(record *hub.Record) *XMLDissertationOut {
	diss := &XMLDissertationOut{
		Language:     languageCode(record.Language),
		Titles:       buildTitles(record),
		Abstracts:    buildAbstracts(record),
		ApprovalDate: buildDate(record, ""),
		DoiData:      buildDoiData(record),
		Citations:    buildCitations(record),
	}
	if c := buildContributors(record); c != nil && len(c.Items) > 0 {
		p := c.Items[0]
		diss.PersonName = &p
	}
	if record.Publisher != "" {
		diss.Institution = &XMLInstitutionOut{Name: record.Publisher}
	}
	diss.Degree = record.GetExtraString("degree")
	return diss
}

func buildDatabase(record *hub.Record) *XMLDatabaseOut {
	db := &XMLDatabaseOut{
		Metadata: &XMLDatabaseMetadataOut{Language: languageCode(record.Language), Publisher: buildPublisher(record)},
		Dataset: &XMLDatasetOut{
			DatasetType:  "record",
			Contributors: buildContributors(record),
			Titles:       buildTitles(record),
			Description:  buildAbstracts(record),
			Fundref:      buildFundref(record),
			Access:       buildAccess(record),
			Relations:    buildRelations(record),
			DoiData:      buildDoiData(record),
			Citations:    buildCitations(record),
		},
	}
	if c := record.Container; c != nil && c.Title != "" {
		db.Metadata.Titles = &XMLTitlesOut{Title: c.Title}
	} else {
		db.Metadata.Titles = &XMLTitlesOut{Title: record.Publisher}
	}

	dates := &XMLDatabaseDateOut{}
	if d := dateOut(hub.GetDate(record.Dates, hub.DateCreated), ""); d != nil {
		dates.Creation = d
	}
	if d := dateOut(hub.GetDate(record.Dates, hub.DateIssued), ""); d != nil {
		dates.Publication = d
	}
	if d := dateOut(hub.GetDate(record.Dates, hub.DateUpdated), ""); d != nil {
		dates.Update = d
	}
	if dates.Creation != nil || dates.Publication != nil || dates.Update != nil {
		db.Dataset.DatabaseDate = dates
	}
	return db
}

func buildPostedContent(record *hub.Record) *XMLPostedContentOut {
	pc := &XMLPostedContentOut{
		Type:         "other",
		Language:     languageCode(record.Language),
		Contributors: buildContributors(record),
		Titles:       buildTitles(record),
		PostedDate:   buildDate(record, ""),
		Abstracts:    buildAbstracts(record),
		Fundref:      buildFundref(record),
		Access:       buildAccess(record),
		Relations:    buildRelations(record),
		DoiData:      buildDoiData(record),
		Citations:    buildCitations(record),
	}
	switch record.Types.ResourceTypeGeneral {
	case "Preprint":
		pc.Type = "preprint"
	case "Report":
		pc.Type = "report"
	case "Text":
		if record.Types.ResourceType == "PostedContent" {
			pc.Type = "preprint"
		}
	}
	if record.Publisher != "" {
		pc.Institution = &XMLInstitutionOut{Name: record.Publisher}
	}
	return pc
}

func buildTitles(record *hub.Record) *XMLTitlesOut {
	t := &XMLTitlesOut{}
	for _, title := range record.Titles {
		switch title.TitleType {
		case "":
			if t.Title == "" {
				t.Title = title.Title
			}
		case "Subtitle":
			if t.Subtitle == "" {
				t.Subtitle = title.Title
			}
		}
	}
	if t.Title == "" {
		t.Title = record.MainTitle()
	}
	return t
}

// buildContributors lists creators as authors, then the other contributors
// under the Crossref role their contributorType maps to.
func buildContributors(record *hub.Record) *XMLContributorsOut {
	out := &XMLContributorsOut{}
	for _, c := range record.Creators {
		out.Items = append(out.Items, contributorOut(c, "author", len(out.Items) == 0))
	}
	for _, c := range record.Contributors {
		role := "editor"
		switch vocab.CitationRole(c.ContributorType) {
		case "editor":
		case "translator":
			role = "translator"
		default:
			continue
		}
		out.Items = append(out.Items, contributorOut(c, role, len(out.Items) == 0))
	}
	if len(out.Items) == 0 {
		return nil
	}
	return out
}

func contributorOut(n hub.Name, role string, first bool) XMLContributorOut {
	c := XMLContributorOut{ContributorRole: role, Sequence: "additional"}
	if first {
		c.Sequence = "first"
	}

	if n.IsOrganizational() || (n.FamilyName == "" && !n.IsPersonal()) {
		c.XMLName = xml.Name{Local: "organization"}
		c.Text = n.Name
		return c
	}

	c.XMLName = xml.Name{Local: "person_name"}
	c.GivenName = n.GivenName
	c.Surname = n.FamilyName
	if c.Surname == "" {
		c.Surname = n.Name
	}
	for _, a := range n.Affiliation {
		c.Affiliations = append(c.Affiliations, a)
	}
	c.ORCID = n.ORCID()
	return c
}

func buildAbstracts(record *hub.Record) []XMLAbstractOut {
	var out []XMLAbstractOut
	for _, d := range record.Descriptions {
		if d.DescriptionType == "Abstract" || d.DescriptionType == "" {
			out = append(out, XMLAbstractOut{P: []string{d.Description}})
		}
	}
	return out
}

// buildDate renders the Issued date (or the derived publication year).
func buildDate(record *hub.Record, mediaType string) *XMLDateOut {
	value := hub.GetDate(record.Dates, hub.DateIssued)
	if value == "" {
		value = record.PublicationYear
	}
	return dateOut(value, mediaType)
}

func dateOut(value, mediaType string) *XMLDateOut {
	d := helpers.ParseDate(value)
	if d.IsZero() {
		return nil
	}
	out := &XMLDateOut{MediaType: mediaType, Year: fmt.Sprintf("%04d", d.Year)}
	if d.Month > 0 {
		out.Month = fmt.Sprintf("%02d", d.Month)
	}
	if d.Day > 0 {
		out.Day = fmt.Sprintf("%02d", d.Day)
	}
	return out
}

func buildPublisher(record *hub.Record) *XMLPublisherOut {
	if record.Publisher == "" {
		return nil
	}
	return &XMLPublisherOut{Name: record.Publisher}
}

// buildFundref writes the funding references as a fundref program.
func buildFundref(record *hub.Record) *XMLFundrefOut {
	if len(record.FundingReferences) == 0 {
		return nil
	}
	fr := &XMLFundrefOut{Name: "fundref"}
	for _, f := range record.FundingReferences {
		group := XMLAssertionOut{Name: "fundgroup"}
		if f.FunderName != "" {
			name := XMLAssertionOut{Name: "funder_name", Value: f.FunderName}
			if f.FunderIdentifier != "" {
				name.Assertions = []XMLAssertionOut{{Name: "funder_identifier", Value: f.FunderIdentifier}}
			}
			group.Assertions = append(group.Assertions, name)
		} else if f.FunderIdentifier != "" {
			group.Assertions = append(group.Assertions, XMLAssertionOut{Name: "funder_identifier", Value: f.FunderIdentifier})
		}
		if f.AwardNumber != "" {
			group.Assertions = append(group.Assertions, XMLAssertionOut{Name: "award_number", Value: f.AwardNumber})
		}
		fr.Assertions = append(fr.Assertions, group)
	}
	return fr
}

// buildAccess writes the license URIs as an access indicators program.
func buildAccess(record *hub.Record) *XMLAccessOut {
	uris := hub.RightsURIs(record.RightsList)
	if len(uris) == 0 {
		return nil
	}
	ai := &XMLAccessOut{Name: "AccessIndicators"}
	for _, uri := range uris {
		ai.LicenseRefs = append(ai.LicenseRefs, XMLLicenseRefOut{Value: uri})
	}
	return ai
}

func buildDoiData(record *hub.Record) *XMLDoiDataOut {
	resource := record.URL
	if resource == "" {
		resource = record.DOIURL()
	}
	return &XMLDoiDataOut{DOI: record.DOI, Resource: resource}
}

// buildRelations writes related identifiers other than DOI citations as a
// relations program.
func buildRelations(record *hub.Record) *XMLRelationsOut {
	rel := &XMLRelationsOut{Name: "relations"}
	for _, r := range record.RelatedIdentifiers {
		if r.RelationType == "References" && r.RelatedIdentifierType == "DOI" {
			continue
		}
		if r.RelationType == "" {
			continue
		}
		rel.Items = append(rel.Items, XMLRelatedItemOut{InterWork: &XMLRelationOut{
			RelationshipType: strings.ToLower(r.RelationType[:1]) + r.RelationType[1:],
			IdentifierType:   relationIdentifierType(r.RelatedIdentifierType),
			Value:            r.RelatedIdentifier,
		}})
	}
	if len(rel.Items) == 0 {
		return nil
	}
	return rel
}

func relationIdentifierType(t string) string {
	switch t {
	case "DOI", "ISSN", "ISBN", "PMID", "PMCID", "arXiv", "Handle":
		return strings.ToLower(t)
	case "URL", "URN", "PURL":
		return "uri"
	}
	return "other"
}

func buildCitations(record *hub.Record) *XMLCitationListOut {
	out := &XMLCitationListOut{}
	for _, rel := range record.RelatedIdentifiers {
		if rel.RelationType != "References" || rel.RelatedIdentifierType != "DOI" {
			continue
		}
		out.Citations = append(out.Citations, XMLCitationOut{Key: fmt.Sprintf("ref%d", len(out.Citations)+1), DOI: rel.RelatedIdentifier})
	}
	if len(out.Citations) == 0 {
		return nil
	}
	return out
}

// languageCode keeps the two-letter code Crossref's language attribute allows.
func languageCode(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if len(lang) >= 2 && (len(lang) == 2 || lang[2] == '-' || lang[2] == '_') {
		return lang[:2]
	}
	return ""
}

// Writer-side XML types. Prefixed names rely on the namespace declarations
// on doi_batch.

type XMLDeposit struct {
	XMLName   xml.Name `xml:"doi_batch"`
	XMLNS     string   `xml:"xmlns,attr"`
	XSI       string   `xml:"xmlns:xsi,attr"`
	JATS      string   `xml:"xmlns:jats,attr"`
	FR        string   `xml:"xmlns:fr,attr"`
	AI        string   `xml:"xmlns:ai,attr"`
	REL       string   `xml:"xmlns:rel,attr"`
	SchemaLoc string   `xml:"xsi:schemaLocation,attr"`
	Version   string   `xml:"version,attr"`
	Head      *XMLHead `xml:"head"`
	Body      *XMLBody `xml:"body"`
}

type XMLHead struct {
	DoiBatchID string        `xml:"doi_batch_id"`
	Timestamp  string        `xml:"timestamp"`
	Depositor  *XMLDepositor `xml:"depositor"`
	Registrant string        `xml:"registrant"`
}

type XMLDepositor struct {
	DepositorName string `xml:"depositor_name"`
	EmailAddress  string `xml:"email_address,omitempty"`
}

type XMLBody struct {
	Journals      []*XMLJournalOut       `xml:"journal,omitempty"`
	Books         []*XMLBookOut          `xml:"book,omitempty"`
	Conferences   []*XMLConferenceOut    `xml:"conference,omitempty"`
	Dissertations []*XMLDissertationOut  `xml:"dissertation,omitempty"`
	PostedContent []*XMLPostedContentOut `xml:"posted_content,omitempty"`
	Databases     []*XMLDatabaseOut      `xml:"database,omitempty"`
}

type XMLJournalOut struct {
	Metadata *XMLJournalMetadataOut `xml:"journal_metadata"`
	Issue    *XMLJournalIssueOut    `xml:"journal_issue,omitempty"`
	Article  *XMLArticleOut         `xml:"journal_article"`
}

type XMLJournalMetadataOut struct {
	Language  string       `xml:"language,attr,omitempty"`
	FullTitle string       `xml:"full_title"`
	ISSN      *XMLTypedOut `xml:"issn,omitempty"`
}

type XMLJournalIssueOut struct {
	Volume *XMLVolumeOut `xml:"journal_volume,omitempty"`
	Issue  string        `xml:"issue,omitempty"`
}

type XMLVolumeOut struct {
	Volume string `xml:"volume"`
}

type XMLArticleOut struct {
	PublicationType string              `xml:"publication_type,attr"`
	Titles          *XMLTitlesOut       `xml:"titles"`
	Contributors    *XMLContributorsOut `xml:"contributors,omitempty"`
	Abstracts       []XMLAbstractOut    `xml:"jats:abstract,omitempty"`
	PublicationDate *XMLDateOut         `xml:"publication_date,omitempty"`
	Pages           *XMLPagesOut        `xml:"pages,omitempty"`
	Fundref         *XMLFundrefOut      `xml:"fr:program,omitempty"`
	Access          *XMLAccessOut       `xml:"ai:program,omitempty"`
	Relations       *XMLRelationsOut    `xml:"rel:program,omitempty"`
	DoiData         *XMLDoiDataOut      `xml:"doi_data"`
	Citations       *XMLCitationListOut `xml:"citation_list,omitempty"`
}

type XMLBookOut struct {
	BookType    string              `xml:"book_type,attr"`
	Metadata    *XMLBookMetadataOut `xml:"book_metadata"`
	ContentItem *XMLContentItemOut  `xml:"content_item,omitempty"`
}

type XMLBookMetadataOut struct {
	Language        string              `xml:"language,attr,omitempty"`
	Contributors    *XMLContributorsOut `xml:"contributors,omitempty"`
	Titles          *XMLTitlesOut       `xml:"titles"`
	Abstracts       []XMLAbstractOut    `xml:"jats:abstract,omitempty"`
	Volume          string              `xml:"volume,omitempty"`
	EditionNumber   string              `xml:"edition_number,omitempty"`
	PublicationDate *XMLDateOut         `xml:"publication_date,omitempty"`
	ISBN            string              `xml:"isbn,omitempty"`
	NoISBN          *XMLNoISBN          `xml:"noisbn,omitempty"`
	Publisher       *XMLPublisherOut    `xml:"publisher,omitempty"`
	Fundref         *XMLFundrefOut      `xml:"fr:program,omitempty"`
	Access          *XMLAccessOut       `xml:"ai:program,omitempty"`
	Relations       *XMLRelationsOut    `xml:"rel:program,omitempty"`
	DoiData         *XMLDoiDataOut      `xml:"doi_data,omitempty"`
	Citations       *XMLCitationListOut `xml:"citation_list,omitempty"`
}

type XMLNoISBN struct {
	Reason string `xml:"reason,attr"`
}

type XMLContentItemOut struct {
	ComponentType   string              `xml:"component_type,attr"`
	Contributors    *XMLContributorsOut `xml:"contributors,omitempty"`
	Titles          *XMLTitlesOut       `xml:"titles"`
	Abstracts       []XMLAbstractOut    `xml:"jats:abstract,omitempty"`
	PublicationDate *XMLDateOut         `xml:"publication_date,omitempty"`
	Pages           *XMLPagesOut        `xml:"pages,omitempty"`
	Fundref         *XMLFundrefOut      `xml:"fr:program,omitempty"`
	Access          *XMLAccessOut       `xml:"ai:program,omitempty"`
	Relations       *XMLRelationsOut    `xml:"rel:program,omitempty"`
	DoiData         *XMLDoiDataOut      `xml:"doi_data"`
	Citations       *XMLCitationListOut `xml:"citation_list,omitempty"`
}

type XMLConferenceOut struct {
	Event       *XMLEventOut       `xml:"event_metadata"`
	Proceedings *XMLProceedingsOut `xml:"proceedings_metadata"`
	Paper       *XMLPaperOut       `xml:"conference_paper"`
}

type XMLEventOut struct {
	Name     string `xml:"conference_name"`
	Location string `xml:"conference_location,omitempty"`
	Date     string `xml:"conference_date,omitempty"`
}

type XMLProceedingsOut struct {
	Title           string           `xml:"proceedings_title"`
	Publisher       *XMLPublisherOut `xml:"publisher,omitempty"`
	PublicationDate *XMLDateOut      `xml:"publication_date,omitempty"`
	NoISBN          XMLNoISBN        `xml:"noisbn"`
}

type XMLPaperOut struct {
	Contributors    *XMLContributorsOut `xml:"contributors,omitempty"`
	Titles          *XMLTitlesOut       `xml:"titles"`
	Abstracts       []XMLAbstractOut    `xml:"jats:abstract,omitempty"`
	PublicationDate *XMLDateOut         `xml:"publication_date,omitempty"`
	Pages           *XMLPagesOut        `xml:"pages,omitempty"`
	Fundref         *XMLFundrefOut      `xml:"fr:program,omitempty"`
	Access          *XMLAccessOut       `xml:"ai:program,omitempty"`
	Relations       *XMLRelationsOut    `xml:"rel:program,omitempty"`
	DoiData         *XMLDoiDataOut      `xml:"doi_data"`
	Citations       *XMLCitationListOut `xml:"citation_list,omitempty"`
}

type XMLDissertationOut struct {
	Language     string              `xml:"language,attr,omitempty"`
	PersonName   *XMLContributorOut  `xml:"person_name,omitempty"`
	Titles       *XMLTitlesOut       `xml:"titles"`
	Abstracts    []XMLAbstractOut    `xml:"jats:abstract,omitempty"`
	ApprovalDate *XMLDateOut         `xml:"approval_date,omitempty"`
	Institution  *XMLInstitutionOut  `xml:"institution,omitempty"`
	Degree       string              `xml:"degree,omitempty"`
	DoiData      *XMLDoiDataOut      `xml:"doi_data"`
	Citations    *XMLCitationListOut `xml:"citation_list,omitempty"`
}

type XMLPostedContentOut struct {
	Type         string              `xml:"type,attr"`
	Language     string              `xml:"language,attr,omitempty"`
	Contributors *XMLContributorsOut `xml:"contributors,omitempty"`
	Titles       *XMLTitlesOut       `xml:"titles"`
	PostedDate   *XMLDateOut         `xml:"posted_date,omitempty"`
	Institution  *XMLInstitutionOut  `xml:"institution,omitempty"`
	Abstracts    []XMLAbstractOut    `xml:"jats:abstract,omitempty"`
	Fundref      *XMLFundrefOut      `xml:"fr:program,omitempty"`
	Access       *XMLAccessOut       `xml:"ai:program,omitempty"`
	Relations    *XMLRelationsOut    `xml:"rel:program,omitempty"`
	DoiData      *XMLDoiDataOut      `xml:"doi_data"`
	Citations    *XMLCitationListOut `xml:"citation_list,omitempty"`
}

type XMLDatabaseOut struct {
	Metadata *XMLDatabaseMetadataOut `xml:"database_metadata"`
	Dataset  *XMLDatasetOut          `xml:"dataset"`
}

type XMLDatabaseMetadataOut struct {
	Language  string           `xml:"language,attr,omitempty"`
	Titles    *XMLTitlesOut    `xml:"titles"`
	Publisher *XMLPublisherOut `xml:"publisher,omitempty"`
}

type XMLDatasetOut struct {
	DatasetType  string              `xml:"dataset_type,attr"`
	Contributors *XMLContributorsOut `xml:"contributors,omitempty"`
	Titles       *XMLTitlesOut       `xml:"titles"`
	DatabaseDate *XMLDatabaseDateOut `xml:"database_date,omitempty"`
	Description  []XMLAbstractOut    `xml:"jats:abstract,omitempty"`
	Fundref      *XMLFundrefOut      `xml:"fr:program,omitempty"`
	Access       *XMLAccessOut       `xml:"ai:program,omitempty"`
	Relations    *XMLRelationsOut    `xml:"rel:program,omitempty"`
	DoiData      *XMLDoiDataOut      `xml:"doi_data"`
	Citations    *XMLCitationListOut `xml:"citation_list,omitempty"`
}

type XMLDatabaseDateOut struct {
	Creation    *XMLDateOut `xml:"creation_date,omitempty"`
	Publication *XMLDateOut `xml:"publication_date,omitempty"`
	Update      *XMLDateOut `xml:"update_date,omitempty"`
}

type XMLTitlesOut struct {
	Title    string `xml:"title"`
	Subtitle string `xml:"subtitle,omitempty"`
}

type XMLContributorsOut struct {
	Items []XMLContributorOut
}

// XMLContributorOut is written as person_name or organization depending on
// its XMLName.
type XMLContributorOut struct {
	XMLName         xml.Name
	ContributorRole string   `xml:"contributor_role,attr"`
	Sequence        string   `xml:"sequence,attr"`
	GivenName       string   `xml:"given_name,omitempty"`
	Surname         string   `xml:"surname,omitempty"`
	Affiliations    []string `xml:"affiliation,omitempty"`
	ORCID           string   `xml:"ORCID,omitempty"`
	Text            string   `xml:",chardata"`
}

type XMLAbstractOut struct {
	P []string `xml:"jats:p"`
}

type XMLDateOut struct {
	MediaType string `xml:"media_type,attr,omitempty"`
	Month     string `xml:"month,omitempty"`
	Day       string `xml:"day,omitempty"`
	Year      string `xml:"year"`
}

type XMLPagesOut struct {
	FirstPage string `xml:"first_page"`
	LastPage  string `xml:"last_page,omitempty"`
}

type XMLTypedOut struct {
	MediaType string `xml:"media_type,attr,omitempty"`
	Value     string `xml:",chardata"`
}

type XMLPublisherOut struct {
	Name string `xml:"publisher_name"`
}

type XMLInstitutionOut struct {
	Name string `xml:"institution_name"`
}

type XMLFundrefOut struct {
	Name       string            `xml:"name,attr"`
	Assertions []XMLAssertionOut `xml:"fr:assertion"`
}

type XMLAssertionOut struct {
	Name       string            `xml:"name,attr"`
	Value      string            `xml:",chardata"`
	Assertions []XMLAssertionOut `xml:"fr:assertion,omitempty"`
}

type XMLAccessOut struct {
	Name        string             `xml:"name,attr"`
	LicenseRefs []XMLLicenseRefOut `xml:"ai:license_ref"`
}

type XMLLicenseRefOut struct {
	Value string `xml:",chardata"`
}

type XMLRelationsOut struct {
	Name  string              `xml:"name,attr"`
	Items []XMLRelatedItemOut `xml:"rel:related_item"`
}

type XMLRelatedItemOut struct {
	InterWork *XMLRelationOut `xml:"rel:inter_work_relation"`
}

type XMLRelationOut struct {
	RelationshipType string `xml:"relationship-type,attr"`
	IdentifierType   string `xml:"identifier-type,attr"`
	Value            string `xml:",chardata"`
}

type XMLDoiDataOut struct {
	DOI      string `xml:"doi"`
	Resource string `xml:"resource"`
}

type XMLCitationListOut struct {
	Citations []XMLCitationOut `xml:"citation"`
}

type XMLCitationOut struct {
	Key string `xml:"key,attr"`
	DOI string `xml:"doi"`
}
