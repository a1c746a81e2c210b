package citeproc

// Item is one CSL-JSON entry as written. Reading goes through loose maps
// because producers disagree on strings versus numbers.
type Item struct {
	ID             string `json:"id"`
	Type           string `json:"type"`
	Title          string `json:"title,omitempty"`
	Author         []Name `json:"author,omitempty"`
	Editor         []Name `json:"editor,omitempty"`
	Translator     []Name `json:"translator,omitempty"`
	Issued         *Date  `json:"issued,omitempty"`
	ContainerTitle string `json:"container-title,omitempty"`
	Volume         string `json:"volume,omitempty"`
	Issue          string `json:"issue,omitempty"`
	Page           string `json:"page,omitempty"`
	DOI            string `json:"DOI,omitempty"`
	URL            string `json:"URL,omitempty"`
	ISSN           string `json:"ISSN,omitempty"`
	ISBN           string `json:"ISBN,omitempty"`
	Publisher      string `json:"publisher,omitempty"`
	Abstract       string `json:"abstract,omitempty"`
	Keyword        string `json:"keyword,omitempty"`
	Version        string `json:"version,omitempty"`
	Copyright      string `json:"copyright,omitempty"`
	Language       string `json:"language,omitempty"`
}

// Name is a CSL name variable. Organizations use Literal.
type Name struct {
	Family  string `json:"family,omitempty"`
	Given   string `json:"given,omitempty"`
	Literal string `json:"literal,omitempty"`
}

// Date is a CSL date variable in date-parts form.
type Date struct {
	DateParts [][]int `json:"date-parts,omitempty"`
}
