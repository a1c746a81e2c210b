// Package vocab holds the static resource-type crosswalk between DataCite,
// Crossref, schema.org, RIS, BibTeX and citeproc vocabularies.
//
// The tables are embedded YAML, parsed once at init and never mutated.
package vocab

import (
	_ "embed"
	"fmt"
	"sort"

	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v3"

	"github.com/lehigh-university-libraries/bolognese/hub"
)

// Schemes a native type can be looked up in.
const (
	SchemeResourceTypeGeneral = "resourceTypeGeneral"
	SchemeCrossref            = "crossref"
	SchemeSchemaOrg           = "schemaOrg"
	SchemeRIS                 = "ris"
	SchemeBibtex              = "bibtex"
	SchemeCiteproc            = "citeproc"
)

//go:embed data/types.yaml
var typesYAML []byte

// entry is one row of the table. The label for the entry's own scheme is the key.
type entry struct {
	ResourceTypeGeneral string `yaml:"resourceTypeGeneral"`
	SchemaOrg           string `yaml:"schemaOrg"`
	Ris                 string `yaml:"ris"`
	Bibtex              string `yaml:"bibtex"`
	Citeproc            string `yaml:"citeproc"`
}

type tables struct {
	ResourceTypeGeneral map[string]entry  `yaml:"resourceTypeGeneral"`
	Crossref            map[string]entry  `yaml:"crossref"`
	SchemaOrg           map[string]entry  `yaml:"schemaOrg"`
	Ris                 map[string]entry  `yaml:"ris"`
	Bibtex              map[string]entry  `yaml:"bibtex"`
	Citeproc            map[string]entry  `yaml:"citeproc"`
	ContributorTypes    map[string]string `yaml:"contributorTypes"`
}

var loaded = mustLoad(typesYAML)

func mustLoad(data []byte) *tables {
	t, err := parseTables(data)
	if err != nil {
		panic(err)
	}
	return t
}

func parseTables(data []byte) (*tables, error) {
	var t tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing vocabulary YAML: %w", err)
	}
	if len(t.ResourceTypeGeneral) == 0 {
		return nil, fmt.Errorf("vocabulary YAML has no resourceTypeGeneral table")
	}
	return &t, nil
}

func (t *tables) scheme(name string) map[string]entry {
	switch name {
	case SchemeResourceTypeGeneral:
		return t.ResourceTypeGeneral
	case SchemeCrossref:
		return t.Crossref
	case SchemeSchemaOrg:
		return t.SchemaOrg
	case SchemeRIS:
		return t.Ris
	case SchemeBibtex:
		return t.Bibtex
	case SchemeCiteproc:
		return t.Citeproc
	}
	return nil
}

// Lookup maps a native type in scheme to every vocabulary. ResourceType is
// always the native value. For an unknown scheme or key only ResourceType is
// set and ok is false.
func Lookup(scheme, native string) (types hub.Types, ok bool) {
	types.ResourceType = native
	e, ok := loaded.scheme(scheme)[native]
	if !ok {
		return types, false
	}

	types.ResourceTypeGeneral = e.ResourceTypeGeneral
	types.SchemaOrg = e.SchemaOrg
	types.Ris = e.Ris
	types.Bibtex = e.Bibtex
	types.Citeproc = e.Citeproc

	switch scheme {
	case SchemeResourceTypeGeneral:
		types.ResourceTypeGeneral = native
	case SchemeSchemaOrg:
		types.SchemaOrg = native
	case SchemeRIS:
		types.Ris = native
	case SchemeBibtex:
		types.Bibtex = native
	case SchemeCiteproc:
		types.Citeproc = native
	}
	return types, true
}

// Has reports whether native is a key of scheme.
func Has(scheme, native string) bool {
	_, ok := loaded.scheme(scheme)[native]
	return ok
}

// ResourceTypeGenerals returns the DataCite resourceTypeGeneral terms, sorted.
func ResourceTypeGenerals() []string {
	return sortedKeys(loaded.ResourceTypeGeneral)
}

// ContributorTypes returns the DataCite contributorType terms, sorted.
func ContributorTypes() []string {
	out := make([]string, 0, len(loaded.ContributorTypes))
	for k := range loaded.ContributorTypes {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// IsContributorType reports whether s is a DataCite contributorType term.
func IsContributorType(s string) bool {
	_, ok := loaded.ContributorTypes[s]
	return ok
}

// CitationRole returns the citeproc/BibTeX role ("editor", "translator" or
// "contributor") for a contributorType, or "" when unknown.
func CitationRole(contributorType string) string {
	return loaded.ContributorTypes[contributorType]
}

func sortedKeys(m map[string]entry) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Catch-all labels the DataCite reader uses when a document has no
// resourceTypeGeneral at all.
const (
	FallbackSchemaOrg = "CreativeWork"
	FallbackRis       = "GEN"
	FallbackBibtex    = "misc"
	FallbackCiteproc  = "article"
)

// FromDataCite derives the types of a DataCite resource. A free-text
// resourceType naming a Crossref work type in any case or separator style
// (e.g. "Monograph", "Journal Article", "BOOK-CHAPTER")
// takes precedence over resourceTypeGeneral for the derived labels. Both
// document values are kept verbatim.
func FromDataCite(resourceType, resourceTypeGeneral string) hub.Types {
	types, ok := Lookup(SchemeCrossref, strcase.ToCamel(resourceType))
	if !ok || resourceType == "" {
		types, ok = Lookup(SchemeResourceTypeGeneral, resourceTypeGeneral)
	}
	if !ok && resourceTypeGeneral == "" {
		types = hub.Types{
			SchemaOrg: FallbackSchemaOrg,
			Ris:       FallbackRis,
			Bibtex:    FallbackBibtex,
			Citeproc:  FallbackCiteproc,
		}
	}
	types.ResourceType = resourceType
	types.ResourceTypeGeneral = resourceTypeGeneral
	return types
}
