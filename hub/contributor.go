package hub

import (
	"encoding/json"
	"strings"
)

// NameType distinguishes people from organizations. The zero value means the
// name could not be classified.
type NameType string

const (
	NameTypePersonal       NameType = "Personal"
	NameTypeOrganizational NameType = "Organizational"
	NameTypeUnclassified   NameType = ""
)

// Name is a creator or contributor.
//
// Personal names carry GivenName/FamilyName and NameIdentifiers; organizational
// and unclassified names only use Name.
type Name struct {
	Name            string           `json:"name"`
	GivenName       string           `json:"givenName,omitempty"`
	FamilyName      string           `json:"familyName,omitempty"`
	NameType        NameType         `json:"nameType,omitempty"`
	NameIdentifiers []NameIdentifier `json:"nameIdentifiers,omitempty"`
	Affiliation     Affiliation      `json:"affiliation,omitempty"`
	ContributorType string           `json:"contributorType,omitempty"`
}

// NameIdentifier is an ORCID, ISNI or other person/organization identifier.
type NameIdentifier struct {
	NameIdentifier       string `json:"nameIdentifier"`
	NameIdentifierScheme string `json:"nameIdentifierScheme,omitempty"`
	SchemeURI            string `json:"schemeUri,omitempty"`
}

// IsPersonal reports whether n was classified as a person.
func (n Name) IsPersonal() bool {
	return n.NameType == NameTypePersonal
}

// IsOrganizational reports whether n was classified as an organization.
func (n Name) IsOrganizational() bool {
	return n.NameType == NameTypeOrganizational
}

// DisplayName returns "Family, Given" for people with both parts, else Name.
func (n Name) DisplayName() string {
	if n.FamilyName != "" && n.GivenName != "" {
		return n.FamilyName + ", " + n.GivenName
	}
	if n.FamilyName != "" {
		return n.FamilyName
	}
	return n.Name
}

// ORCID returns the ORCID URL of n, or "".
func (n Name) ORCID() string {
	for _, id := range n.NameIdentifiers {
		if strings.EqualFold(id.NameIdentifierScheme, "ORCID") {
			return id.NameIdentifier
		}
	}
	return ""
}

// Affiliation is one or more affiliation strings. A single affiliation
// marshals as a bare string; several marshal as a list.
type Affiliation []string

// MarshalJSON implements json.Marshaler.
func (a Affiliation) MarshalJSON() ([]byte, error) {
	switch len(a) {
	case 0:
		return []byte("null"), nil
	case 1:
		return json.Marshal(a[0])
	default:
		return json.Marshal([]string(a))
	}
}

// UnmarshalJSON accepts a string, a list of strings, or a list of
// {"name": ...} objects.
func (a *Affiliation) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single != "" {
			*a = Affiliation{single}
		}
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Affiliation, 0, len(raw))
	for _, item := range raw {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			if s != "" {
				out = append(out, s)
			}
			continue
		}
		var obj struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(item, &obj); err == nil && obj.Name != "" {
			out = append(out, obj.Name)
		}
	}
	*a = out
	return nil
}

// Value returns the affiliation as a string (single) or []string (several), or nil.
func (a Affiliation) Value() any {
	switch len(a) {
	case 0:
		return nil
	case 1:
		return a[0]
	default:
		return []string(a)
	}
}
