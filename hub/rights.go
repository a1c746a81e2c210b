package hub

import (
	"regexp"
	"strings"
)

// Rights is a license or rights statement.
type Rights struct {
	Rights    string `json:"rights,omitempty"`
	RightsURI string `json:"rightsUri,omitempty"`
	Lang      string `json:"lang,omitempty"`
}

var ccRegex = regexp.MustCompile(`(?i)^https?://(?:www\.)?creativecommons\.org/(licenses|publicdomain)/([a-z-]+)(?:/([0-9.]+))?`)

// NormalizeLicenseURI canonicalizes Creative Commons license URLs to the
// "https://creativecommons.org/licenses/by/4.0/legalcode" form. Other URIs are
// returned trimmed.
func NormalizeLicenseURI(uri string) string {
	uri = strings.TrimSpace(uri)
	m := ccRegex.FindStringSubmatch(uri)
	if m == nil {
		return uri
	}
	out := "https://creativecommons.org/" + strings.ToLower(m[1]) + "/" + strings.ToLower(m[2])
	if m[3] != "" {
		out += "/" + m[3]
	}
	return out + "/legalcode"
}

// LicenseName returns a short human-readable label for a rights URI.
func LicenseName(uri string) string {
	lower := strings.ToLower(uri)

	if strings.Contains(lower, "creativecommons.org") {
		if strings.Contains(lower, "/zero/") || strings.Contains(lower, "/publicdomain/") {
			return "CC0 1.0"
		}
		m := ccRegex.FindStringSubmatch(uri)
		if m != nil && m[1] == "licenses" {
			label := "CC " + strings.ToUpper(m[2])
			if m[3] != "" {
				label += " " + m[3]
			}
			return label
		}
	}
	if code := RightsStatementFromURI(uri); code != "" {
		if label, ok := RightsStatementLabels[code]; ok {
			return label
		}
	}
	return uri
}

// IsOpenAccess returns true if the rights allow open access.
func IsOpenAccess(r Rights) bool {
	uri := strings.ToLower(r.RightsURI)
	name := strings.ToLower(r.Rights)

	if strings.Contains(uri, "creativecommons.org") || strings.Contains(uri, "publicdomain") {
		return true
	}
	if strings.HasPrefix(name, "cc") && !strings.Contains(name, "nc") {
		return true
	}
	return strings.Contains(uri, "opensource.org") || strings.Contains(uri, "info:eu-repo/semantics/openaccess")
}

// RightsStatementFromURI extracts the rights statement code from a rightsstatements.org URI.
func RightsStatementFromURI(uri string) string {
	if !strings.Contains(uri, "rightsstatements.org") {
		return ""
	}
	parts := strings.Split(strings.TrimSuffix(uri, "/"), "/")
	if len(parts) >= 2 {
		return parts[len(parts)-2]
	}
	return ""
}

// RightsStatementLabels maps rightsstatements.org codes to labels.
var RightsStatementLabels = map[string]string{
	"InC":     "In Copyright",
	"InC-EDU": "In Copyright - Educational Use Permitted",
	"InC-NC":  "In Copyright - Non-Commercial Use Permitted",
	"NoC-US":  "No Copyright - United States",
	"NoC-CR":  "No Copyright - Contractual Restrictions",
	"NoC-NC":  "No Copyright - Non-Commercial Use Only",
	"CNE":     "Copyright Not Evaluated",
	"UND":     "Copyright Undetermined",
	"NKC":     "No Known Copyright",
}

// NewRights builds a Rights entry from a license URI or free-text statement.
func NewRights(value string) Rights {
	value = strings.TrimSpace(value)
	if strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") {
		return Rights{RightsURI: NormalizeLicenseURI(value)}
	}
	return Rights{Rights: value}
}

// RightsURIs returns the rights URIs of list, in order.
func RightsURIs(list []Rights) []string {
	var out []string
	for _, r := range list {
		if r.RightsURI != "" {
			out = append(out, r.RightsURI)
		}
	}
	return out
}
