package helpers

import (
	"bufio"
	"bytes"
	_ "embed"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/lehigh-university-libraries/bolognese/hub"
)

// RawName is a creator or contributor as it appears in a source document,
// before classification. It is either a FlatName or a StructuredName.
type RawName interface {
	rawName()
}

// FlatName is a bare name string such as "Fenner, Martin" or "Martin Fenner".
type FlatName string

// StructuredName is a name with separate parts, as DataCite and Crossref
// documents carry them.
type StructuredName struct {
	Name            string
	GivenName       string
	FamilyName      string
	NameType        hub.NameType
	NameIdentifiers []hub.NameIdentifier
	Affiliation     []string
	ContributorType string
}

func (FlatName) rawName()       {}
func (StructuredName) rawName() {}

//go:embed data/given_names.txt
var givenNamesTxt []byte

var givenNames = loadGivenNames(givenNamesTxt)

func loadGivenNames(data []byte) map[string]bool {
	names := make(map[string]bool)
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names[strings.ToLower(line)] = true
	}
	return names
}

var (
	// Name prefixes (nobiliary particles)
	prefixes = []string{"van", "von", "de", "del", "della", "di", "da", "le", "la", "du", "des", "den", "der", "het", "ter", "ten", "op", "dos", "das", "al", "el", "ibn", "bin"}

	// "Smith J." or "Smith J.-P."
	trailingInitialRegex = regexp.MustCompile(`\s([A-Z]\.)?(-?[A-Z]\.)$`)

	// "M.H." -> "M. H."
	joinedInitialsRegex = regexp.MustCompile(`([A-Z])\.([A-Z])`)

	emailRegex = regexp.MustCompile(`\s*<?[\w.+-]+@[\w-]+(\.[\w-]+)+>?`)

	spaceRegex      = regexp.MustCompile(`\s+`)
	commaSpaceRegex = regexp.MustCompile(`\s*,\s*`)

	orcidRegex = regexp.MustCompile(`(\d{4}-\d{4}-\d{4}-\d{3}[0-9X])`)
)

// organizational identifier schemes never make a name personal
var orgSchemes = map[string]bool{
	"ror":                true,
	"grid":               true,
	"crossref funder id": true,
	"fundref":            true,
}

// CleanupAuthor repairs common defects in a name string: stray whitespace,
// e-mail addresses, wrapping parentheses or quotes, degree suffixes, an
// unpunctuated trailing initial ("Smith J.") and joined initials ("M.H.").
func CleanupAuthor(s string) string {
	s = norm.NFC.String(s)
	s = strings.TrimSpace(spaceRegex.ReplaceAllString(s, " "))
	if s == "" {
		return ""
	}

	s = strings.TrimSpace(emailRegex.ReplaceAllString(s, ""))
	s = commaSpaceRegex.ReplaceAllString(s, ", ")

	if !strings.Contains(s, ",") {
		s = trailingInitialRegex.ReplaceAllString(s, ", $1$2")
	}

	if i := strings.LastIndex(s, ", "); i >= 0 {
		switch s[i+2:] {
		case "MD", "M.D.", "PhD", "Ph.D.":
			s = s[:i]
		}
	}

	s = strings.TrimRight(s, ",; ")
	if len(s) > 1 && s[0] == '(' && s[len(s)-1] == ')' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if len(s) > 1 && s[0] == '\'' && s[len(s)-1] == '\'' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	return joinedInitialsRegex.ReplaceAllString(s, "$1. $2")
}

// IsPersonalName reports whether raw names a person. An explicit nameType
// decides; otherwise a personal name identifier, a given and family name, a
// comma in the name, or a first token found in the given-names list mark a
// person. Everything else is left unclassified.
func IsPersonalName(raw RawName) bool {
	switch n := raw.(type) {
	case FlatName:
		return isPersonalString(CleanupAuthor(string(n)))
	case StructuredName:
		if n.NameType != hub.NameTypeUnclassified {
			return n.NameType == hub.NameTypePersonal
		}
		for _, id := range n.NameIdentifiers {
			if strings.TrimSpace(id.NameIdentifier) != "" && !orgSchemes[strings.ToLower(id.NameIdentifierScheme)] {
				return true
			}
		}
		if strings.TrimSpace(n.GivenName) != "" && strings.TrimSpace(n.FamilyName) != "" {
			return true
		}
		return isPersonalString(CleanupAuthor(n.Name))
	}
	return false
}

func isPersonalString(s string) bool {
	if !splittable(s) {
		return false
	}
	if strings.Contains(s, ",") {
		return true
	}
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return false
	}
	return givenNames[strings.ToLower(strings.TrimRight(fields[0], "."))]
}

// splittable reports whether s is a single Latin-script name.
func splittable(s string) bool {
	if s == "" || strings.Contains(s, ";") {
		return false
	}
	for _, r := range s {
		if unicode.IsLetter(r) && !unicode.Is(unicode.Latin, r) {
			return false
		}
	}
	return true
}

// GetOneAuthor normalizes a raw name into a hub.Name.
func GetOneAuthor(raw RawName) hub.Name {
	switch n := raw.(type) {
	case FlatName:
		return normalizeFlat(n)
	case StructuredName:
		return normalizeStructured(n)
	}
	return hub.Name{}
}

// GetAuthors normalizes raws in order, dropping names that end up empty.
func GetAuthors(raws []RawName) []hub.Name {
	out := make([]hub.Name, 0, len(raws))
	for _, raw := range raws {
		n := GetOneAuthor(raw)
		if n.Name == "" {
			continue
		}
		out = append(out, n)
	}
	return out
}

// AuthorsFromStrings normalizes a list of flat name strings.
func AuthorsFromStrings(names []string) []hub.Name {
	raws := make([]RawName, len(names))
	for i, n := range names {
		raws[i] = FlatName(n)
	}
	return GetAuthors(raws)
}

func normalizeFlat(n FlatName) hub.Name {
	s := CleanupAuthor(string(n))
	if !isPersonalString(s) {
		return hub.Name{Name: s}
	}
	family, given := splitName(s)
	return personalName("", given, family, nil)
}

func normalizeStructured(n StructuredName) hub.Name {
	name := CleanupAuthor(n.Name)
	given := strings.TrimSpace(n.GivenName)
	family := strings.TrimSpace(n.FamilyName)
	affiliation := cleanAffiliation(n.Affiliation)
	ids := NormalizeNameIdentifiers(n.NameIdentifiers)

	var out hub.Name
	switch {
	case n.NameType == hub.NameTypeOrganizational:
		if name == "" {
			name = family
		}
		out = hub.Name{
			Name:            cases.Title(language.Und, cases.NoLower).String(name),
			NameType:        hub.NameTypeOrganizational,
			NameIdentifiers: ids,
		}
	case IsPersonalName(n):
		if given == "" && family == "" && splittable(name) && (strings.Contains(name, ",") || len(strings.Fields(name)) > 1) {
			family, given = splitName(name)
			name = ""
		}
		out = personalName(name, given, family, ids)
	default:
		if name == "" {
			name = family
		}
		out = hub.Name{Name: name}
	}

	out.Affiliation = affiliation
	out.ContributorType = strings.TrimSpace(n.ContributorType)
	return out
}

func personalName(name, given, family string, ids []hub.NameIdentifier) hub.Name {
	n := hub.Name{
		Name:            name,
		GivenName:       given,
		FamilyName:      family,
		NameType:        hub.NameTypePersonal,
		NameIdentifiers: ids,
	}
	if n.Name == "" {
		n.Name = n.DisplayName()
	}
	return n
}

// splitName splits "Family, Given" on the first comma, or "Given [particle] Family"
// before the last token and any particles preceding it. Parts written all in
// one case are title-cased.
func splitName(s string) (family, given string) {
	if i := strings.Index(s, ","); i >= 0 {
		family = strings.TrimSpace(s[:i])
		given = strings.TrimSpace(s[i+1:])
	} else {
		fields := strings.Fields(s)
		start := len(fields) - 1
		for start > 1 && isPrefix(fields[start-1]) {
			start--
		}
		family = strings.Join(fields[start:], " ")
		given = strings.Join(fields[:start], " ")
	}
	return titleIfSingleCase(family), titleIfSingleCase(given)
}

func titleIfSingleCase(s string) string {
	if s == "" || (s != strings.ToLower(s) && s != strings.ToUpper(s)) {
		return s
	}
	return cases.Title(language.Und).String(s)
}

// isPrefix checks if a word is a nobiliary particle.
func isPrefix(word string) bool {
	lower := strings.ToLower(word)
	if lower != word {
		return false
	}
	for _, prefix := range prefixes {
		if lower == prefix {
			return true
		}
	}
	return false
}

// NormalizeNameIdentifiers drops empty identifiers and rewrites ORCIDs, bare
// or as URLs, to https://orcid.org/ form. Other schemes are kept verbatim.
func NormalizeNameIdentifiers(ids []hub.NameIdentifier) []hub.NameIdentifier {
	var out []hub.NameIdentifier
	for _, id := range ids {
		value := strings.TrimSpace(id.NameIdentifier)
		if value == "" {
			continue
		}
		scheme := strings.TrimSpace(id.NameIdentifierScheme)
		if strings.EqualFold(scheme, "ORCID") || (scheme == "" && strings.Contains(value, "orcid.org")) {
			if orcid := NormalizeORCID(value); orcid != "" {
				out = append(out, hub.NameIdentifier{
					NameIdentifier:       orcid,
					NameIdentifierScheme: "ORCID",
					SchemeURI:            "https://orcid.org",
				})
				continue
			}
		}
		out = append(out, hub.NameIdentifier{
			NameIdentifier:       value,
			NameIdentifierScheme: scheme,
			SchemeURI:            strings.TrimSpace(id.SchemeURI),
		})
	}
	return out
}

// NormalizeORCID returns the https://orcid.org/ URL for an ORCID in any
// common spelling, or "".
func NormalizeORCID(s string) string {
	m := orcidRegex.FindString(strings.ToUpper(s))
	if m == "" {
		return ""
	}
	return "https://orcid.org/" + m
}

func cleanAffiliation(list []string) hub.Affiliation {
	var out hub.Affiliation
	for _, a := range list {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}

// AuthorsAsString renders names the way BibTeX author fields want them:
// "Family, Given" for people, organizations wrapped in braces, joined with
// " and ". It returns false when there is nothing to render.
func AuthorsAsString(names []hub.Name) (string, bool) {
	parts := make([]string, 0, len(names))
	for _, n := range names {
		switch {
		case n.FamilyName != "":
			parts = append(parts, n.DisplayName())
		case n.IsOrganizational() && n.Name != "":
			parts = append(parts, "{"+n.Name+"}")
		case n.Name != "":
			parts = append(parts, n.Name)
		}
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, " and "), true
}

// SplitNames splits a packed author string on sep (" and " for BibTeX),
// trimming each part and dropping empty ones.
func SplitNames(names, sep string) []string {
	if strings.TrimSpace(names) == "" {
		return nil
	}
	var result []string
	for _, p := range strings.Split(names, sep) {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}
