package crossref

import "encoding/xml"

// Reader-side XML types. Tags carry no namespace so unixref, unixsd and
// deposit documents of any schema version decode into them.

// XMLWorks is the content of a <crossref> element (query results) or a
// deposit <body>.
type XMLWorks struct {
	Journals      []XMLJournal    `xml:"journal"`
	Books         []XMLBook       `xml:"book"`
	Conferences   []XMLConference `xml:"conference"`
	Dissertations []XMLWork       `xml:"dissertation"`
	PostedContent []XMLWork       `xml:"posted_content"`
	Databases     []XMLDatabase   `xml:"database"`
	Reports       []XMLReport     `xml:"report-paper"`
	Standards     []XMLStandard   `xml:"standard"`
	PeerReviews   []XMLWork       `xml:"peer_review"`
}

type XMLJournal struct {
	Metadata *XMLWork         `xml:"journal_metadata"`
	Issue    *XMLJournalIssue `xml:"journal_issue"`
	Articles []XMLWork        `xml:"journal_article"`
}

type XMLJournalIssue struct {
	PublicationDates []XMLDate   `xml:"publication_date"`
	Volume           string      `xml:"journal_volume>volume"`
	Issue            string      `xml:"issue"`
	DoiData          *XMLDoiData `xml:"doi_data"`
}

type XMLBook struct {
	BookType       string    `xml:"book_type,attr"`
	Metadata       *XMLWork  `xml:"book_metadata"`
	SeriesMetadata *XMLWork  `xml:"book_series_metadata"`
	SetMetadata    *XMLWork  `xml:"book_set_metadata"`
	ContentItems   []XMLWork `xml:"content_item"`
}

type XMLConference struct {
	Event       *XMLEvent `xml:"event_metadata"`
	Proceedings *XMLWork  `xml:"proceedings_metadata"`
	Papers      []XMLWork `xml:"conference_paper"`
}

type XMLEvent struct {
	Name     string `xml:"conference_name"`
	Acronym  string `xml:"conference_acronym"`
	Location string `xml:"conference_location"`
	Date     string `xml:"conference_date"`
}

type XMLDatabase struct {
	Metadata *XMLWork  `xml:"database_metadata"`
	Datasets []XMLWork `xml:"dataset"`
}

type XMLReport struct {
	Metadata *XMLWork `xml:"report-paper_metadata"`
}

type XMLStandard struct {
	Metadata *XMLWork `xml:"standard_metadata"`
}

// XMLWork is the union of the work-level elements (journal_article,
// book_metadata, content_item, conference_paper, dissertation, ...). Each
// element only fills the fields its schema has.
type XMLWork struct {
	Language         string           `xml:"language,attr"`
	PublicationType  string           `xml:"publication_type,attr"`
	Type             string           `xml:"type,attr"`
	ComponentType    string           `xml:"component_type,attr"`
	FullTitle        string           `xml:"full_title"`
	AbbrevTitle      string           `xml:"abbrev_title"`
	ProceedingsTitle string           `xml:"proceedings_title"`
	Titles           *XMLTitles       `xml:"titles"`
	Contributors     *XMLContributors `xml:"contributors"`
	PersonNames      []XMLContributor `xml:"person_name"`
	Abstracts        []XMLMarkup      `xml:"abstract"`
	PublicationDates []XMLDate        `xml:"publication_date"`
	PostedDate       *XMLDate         `xml:"posted_date"`
	ApprovalDates    []XMLDate        `xml:"approval_date"`
	DatabaseDate     *XMLDatabaseDate `xml:"database_date"`
	Volume           string           `xml:"volume"`
	EditionNumber    string           `xml:"edition_number"`
	Pages            *XMLPages        `xml:"pages"`
	ISSNs            []XMLTyped       `xml:"issn"`
	ISBNs            []XMLTyped       `xml:"isbn"`
	Publisher        *XMLPublisher    `xml:"publisher"`
	Institutions     []XMLInstitution `xml:"institution"`
	Degrees          []string         `xml:"degree"`
	Programs         []XMLProgram     `xml:"program"`
	DoiData          *XMLDoiData      `xml:"doi_data"`
	Citations        []XMLCitation    `xml:"citation_list>citation"`
}

type XMLTitles struct {
	Titles        []XMLMarkup `xml:"title"`
	Subtitles     []XMLMarkup `xml:"subtitle"`
	OriginalTitle []XMLMarkup `xml:"original_language_title"`
}

// XMLMarkup keeps the raw inner XML of elements that may hold JATS or
// face markup.
type XMLMarkup struct {
	Lang  string `xml:"http://www.w3.org/XML/1998/namespace lang,attr"`
	Inner string `xml:",innerxml"`
}

// XMLContributors keeps people and organizations in document order.
type XMLContributors struct {
	Items []XMLContributor `xml:",any"`
}

// XMLContributor is a person_name, organization or anonymous element.
type XMLContributor struct {
	XMLName         xml.Name
	ContributorRole string           `xml:"contributor_role,attr"`
	Sequence        string           `xml:"sequence,attr"`
	GivenName       string           `xml:"given_name"`
	Surname         string           `xml:"surname"`
	Suffix          string           `xml:"suffix"`
	ORCID           string           `xml:"ORCID"`
	Affiliations    []string         `xml:"affiliation"`
	Institutions    []XMLInstitution `xml:"affiliations>institution"`
	Text            string           `xml:",chardata"`
}

type XMLDate struct {
	MediaType string `xml:"media_type,attr"`
	Year      string `xml:"year"`
	Month     string `xml:"month"`
	Day       string `xml:"day"`
}

type XMLDatabaseDate struct {
	Creation    *XMLDate `xml:"creation_date"`
	Publication *XMLDate `xml:"publication_date"`
	Update      *XMLDate `xml:"update_date"`
}

type XMLPages struct {
	FirstPage  string `xml:"first_page"`
	LastPage   string `xml:"last_page"`
	OtherPages string `xml:"other_pages"`
}

type XMLTyped struct {
	MediaType string `xml:"media_type,attr"`
	Value     string `xml:",chardata"`
}

type XMLPublisher struct {
	Name  string `xml:"publisher_name"`
	Place string `xml:"publisher_place"`
}

type XMLInstitution struct {
	Name       string `xml:"institution_name"`
	Acronym    string `xml:"institution_acronym"`
	Place      string `xml:"institution_place"`
	Department string `xml:"institution_department"`
}

// XMLProgram covers the fundref, access indicator and relations programs.
type XMLProgram struct {
	Name         string           `xml:"name,attr"`
	Assertions   []XMLAssertion   `xml:"assertion"`
	LicenseRefs  []XMLLicenseRef  `xml:"license_ref"`
	RelatedItems []XMLRelatedItem `xml:"related_item"`
}

type XMLAssertion struct {
	Name       string         `xml:"name,attr"`
	Value      string         `xml:",chardata"`
	Assertions []XMLAssertion `xml:"assertion"`
}

type XMLLicenseRef struct {
	AppliesTo string `xml:"applies_to,attr"`
	StartDate string `xml:"start_date,attr"`
	Value     string `xml:",chardata"`
}

type XMLRelatedItem struct {
	InterWork []XMLRelation `xml:"inter_work_relation"`
	IntraWork []XMLRelation `xml:"intra_work_relation"`
}

type XMLRelation struct {
	RelationshipType string `xml:"relationship-type,attr"`
	IdentifierType   string `xml:"identifier-type,attr"`
	Value            string `xml:",chardata"`
}

type XMLDoiData struct {
	DOI      string `xml:"doi"`
	Resource string `xml:"resource"`
}

type XMLCitation struct {
	Key          string `xml:"key,attr"`
	DOI          string `xml:"doi"`
	Unstructured string `xml:"unstructured_citation"`
}
