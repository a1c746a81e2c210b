package hub

import (
	"regexp"
	"strings"
)

// Identifier is an alternate identifier of the record. The DOI, when present,
// is stored first as a resolver URL with IdentifierType "DOI".
type Identifier struct {
	Identifier     string `json:"identifier"`
	IdentifierType string `json:"identifierType,omitempty"`
}

// RelatedIdentifier links the record to another resource.
type RelatedIdentifier struct {
	RelatedIdentifier     string `json:"relatedIdentifier"`
	RelatedIdentifierType string `json:"relatedIdentifierType,omitempty"`
	RelationType          string `json:"relationType,omitempty"`
	ResourceTypeGeneral   string `json:"resourceTypeGeneral,omitempty"`
}

var (
	doiRegex    = regexp.MustCompile(`^10\.\d{4,}/[^\s]+$`)
	handleRegex = regexp.MustCompile(`^\d+(\.\d+)*/[^\s]+$`)
	orcidRegex  = regexp.MustCompile(`^\d{4}-\d{4}-\d{4}-\d{3}[\dX]$`)
	isbnRegex   = regexp.MustCompile(`^(?:\d{9}[\dX]|\d{13})$`)
	issnRegex   = regexp.MustCompile(`^\d{4}-\d{3}[\dX]$`)
	uuidRegex   = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
	pmidRegex   = regexp.MustCompile(`^\d{1,8}$`)
	arxivRegex  = regexp.MustCompile(`^(?:arXiv:)?\d{4}\.\d{4,5}(v\d+)?$`)
)

// IdentifierURI returns the identifier as a resolvable URI where possible.
func IdentifierURI(value, idType string) string {
	value = NormalizeIdentifier(value, idType)
	switch idType {
	case "DOI":
		return "https://doi.org/" + value
	case "Handle":
		return "https://hdl.handle.net/" + value
	case "ORCID":
		return "https://orcid.org/" + value
	case "PMID":
		return "https://pubmed.ncbi.nlm.nih.gov/" + value
	case "arXiv":
		return "https://arxiv.org/abs/" + value
	default:
		return value
	}
}

// DetectIdentifierType determines a DataCite identifier type from a value.
// It returns "" when nothing matches.
func DetectIdentifierType(value string) string {
	value = strings.TrimSpace(value)
	lower := strings.ToLower(value)

	switch {
	case strings.HasPrefix(value, "10.") && doiRegex.MatchString(value),
		strings.HasPrefix(lower, "https://doi.org/"), strings.HasPrefix(lower, "http://doi.org/"),
		strings.HasPrefix(lower, "http://dx.doi.org/"), strings.HasPrefix(lower, "https://dx.doi.org/"),
		strings.HasPrefix(lower, "doi:"):
		return "DOI"
	case strings.HasPrefix(lower, "https://orcid.org/"), strings.HasPrefix(lower, "http://orcid.org/"),
		orcidRegex.MatchString(value):
		return "ORCID"
	case strings.HasPrefix(lower, "https://hdl.handle.net/"), strings.HasPrefix(lower, "http://hdl.handle.net/"),
		strings.HasPrefix(lower, "hdl:"):
		return "Handle"
	case arxivRegex.MatchString(value), strings.Contains(lower, "arxiv.org/abs/"):
		return "arXiv"
	case uuidRegex.MatchString(value):
		return "UUID"
	case strings.HasPrefix(lower, "urn:"):
		return "URN"
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"),
		strings.HasPrefix(lower, "s3://"), strings.HasPrefix(lower, "gs://"), strings.HasPrefix(lower, "ftp://"):
		return "URL"
	case issnRegex.MatchString(value):
		return "ISSN"
	case isbnRegex.MatchString(strings.ReplaceAll(value, "-", "")):
		return "ISBN"
	case pmidRegex.MatchString(value):
		return "PMID"
	case handleRegex.MatchString(value):
		return "Handle"
	}
	return ""
}

// NormalizeIdentifier strips resolver prefixes from a value of the given type.
func NormalizeIdentifier(value, idType string) string {
	value = strings.TrimSpace(value)

	switch idType {
	case "DOI":
		for _, p := range []string{"https://doi.org/", "http://doi.org/", "https://dx.doi.org/", "http://dx.doi.org/", "doi:", "DOI:"} {
			value = strings.TrimPrefix(value, p)
		}
		return strings.ToLower(value)
	case "Handle":
		value = strings.TrimPrefix(value, "https://hdl.handle.net/")
		value = strings.TrimPrefix(value, "http://hdl.handle.net/")
		return strings.TrimPrefix(value, "hdl:")
	case "ORCID":
		value = strings.TrimPrefix(value, "https://orcid.org/")
		return strings.TrimPrefix(value, "http://orcid.org/")
	case "arXiv":
		value = strings.TrimPrefix(value, "https://arxiv.org/abs/")
		value = strings.TrimPrefix(value, "http://arxiv.org/abs/")
		return strings.TrimPrefix(value, "arXiv:")
	case "ISBN", "ISSN":
		return strings.ToUpper(value)
	default:
		return value
	}
}

// AddIdentifier appends id unless the same {identifier, identifierType} pair is
// already present. A DOI identifier is always moved to the front.
func (r *Record) AddIdentifier(id Identifier) {
	id.Identifier = strings.TrimSpace(id.Identifier)
	if id.Identifier == "" {
		return
	}
	for _, existing := range r.Identifiers {
		if existing.Identifier == id.Identifier && existing.IdentifierType == id.IdentifierType {
			return
		}
	}
	if id.IdentifierType == "DOI" {
		r.Identifiers = append([]Identifier{id}, r.Identifiers...)
		return
	}
	r.Identifiers = append(r.Identifiers, id)
}

// SetDOI sets the record DOI and replaces any DOI identifier with url, keeping
// the other identifiers in their order.
func (r *Record) SetDOI(d, url string) {
	r.DOI = d
	kept := r.Identifiers[:0:0]
	for _, id := range r.Identifiers {
		if id.IdentifierType != "DOI" {
			kept = append(kept, id)
		}
	}
	r.Identifiers = kept
	if d != "" && url != "" {
		r.AddIdentifier(Identifier{Identifier: url, IdentifierType: "DOI"})
	}
}

// AddRelatedIdentifier appends rel unless an identical entry exists.
func (r *Record) AddRelatedIdentifier(rel RelatedIdentifier) {
	rel.RelatedIdentifier = strings.TrimSpace(rel.RelatedIdentifier)
	if rel.RelatedIdentifier == "" {
		return
	}
	for _, existing := range r.RelatedIdentifiers {
		if existing == rel {
			return
		}
	}
	r.RelatedIdentifiers = append(r.RelatedIdentifiers, rel)
}
