// Package doi validates, normalizes and resolves Digital Object Identifiers.
package doi

import (
	"net/url"
	"regexp"
	"strings"
)

const (
	// ProductionResolver is the public DOI resolver.
	ProductionResolver = "https://doi.org/"
	// SandboxResolver is the DataCite test resolver.
	SandboxResolver = "https://handle.test.datacite.org/"

	ProductionAPI = "https://api.datacite.org/dois/"
	SandboxAPI    = "https://api.test.datacite.org/dois/"

	sandboxHost = "handle.test.datacite.org"
)

var (
	// Registrant codes are 4 or 5 digits. The scheme separator tolerates a single slash.
	doiRegex    = regexp.MustCompile(`^(?:(http|https):/(/)?(dx\.)?(doi\.org|handle\.test\.datacite\.org)/)?(doi:)?(10\.\d{4,5}/.+)$`)
	prefixRegex = regexp.MustCompile(`^(?:(http|https):/(/)?(dx\.)?(doi\.org|handle\.test\.datacite\.org)/)?(doi:)?(10\.\d{4,5}).*$`)
	urlRegex    = regexp.MustCompile(`^(?:(http|https)://(dx\.)?(doi\.org|handle\.test\.datacite\.org)/)?(doi:)?(10\.\d{4,5}/.+)$`)
)

// Validate extracts the DOI from a bare DOI, a doi: URI or a resolver URL.
// The result is lower-cased. It returns "" when s is not a DOI.
func Validate(s string) string {
	m := doiRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return ""
	}
	d := strings.ReplaceAll(m[len(m)-1], "\u200b", "")
	return strings.ToLower(d)
}

// ValidatePrefix returns the registrant prefix (10.NNNN) of s, or "".
func ValidatePrefix(s string) string {
	m := prefixRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return ""
	}
	return m[len(m)-1]
}

// Resolver returns the resolver base URL for s.
func Resolver(s string, sandbox bool) string {
	if sandbox || strings.Contains(s, sandboxHost) {
		return SandboxResolver
	}
	return ProductionResolver
}

// APIURL returns the DataCite REST API URL for s.
func APIURL(s string, sandbox bool) string {
	base := ProductionAPI
	if sandbox || strings.Contains(s, sandboxHost) {
		base = SandboxAPI
	}
	d := FromURL(s)
	if d == "" {
		d = Validate(s)
	}
	return base + d
}

// Normalize returns the DOI in s as a resolvable URL, or "" when s is not a DOI.
func Normalize(s string, sandbox bool) string {
	d := Validate(s)
	if d == "" {
		return ""
	}
	return Resolver(s, sandbox) + escapePath(d)
}

// FromURL extracts the lower-cased DOI from a resolver URL.
func FromURL(s string) string {
	s = strings.TrimSpace(s)
	if !urlRegex.MatchString(s) {
		return ""
	}
	if strings.HasPrefix(s, "http") {
		u, err := url.Parse(s)
		if err != nil {
			return ""
		}
		return strings.ToLower(strings.TrimPrefix(u.Path, "/"))
	}
	s = strings.TrimPrefix(s, "doi:")
	if unescaped, err := url.PathUnescape(s); err == nil {
		s = unescaped
	}
	return strings.ToLower(s)
}

// AsURL wraps a bare DOI in the production resolver.
func AsURL(d string) string {
	if d == "" {
		return ""
	}
	return ProductionResolver + d
}

// escapePath escapes each segment of the DOI while keeping the slashes.
func escapePath(d string) string {
	parts := strings.Split(d, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
