package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehigh-university-libraries/bolognese/hub"
)

func TestIsPersonalName(t *testing.T) {
	tests := []struct {
		name string
		raw  RawName
		want bool
	}{
		{"comma", FlatName("Fenner, Martin"), true},
		{"known given name", FlatName("Martin Fenner"), true},
		{"initial only", FlatName("M Fenner"), false},
		{"single token", FlatName("Tester"), false},
		{"digits in name", FlatName("Fran2 Levy"), false},
		{"packed authors", FlatName("Jones, Matt; Slaughter, Peter"), false},
		{"non-latin", FlatName("กัมพล ทองเชิญ"), false},
		{"orcid", StructuredName{Name: "Fenner M", NameIdentifiers: []hub.NameIdentifier{{NameIdentifier: "0000-0003-1419-2405", NameIdentifierScheme: "ORCID"}}}, true},
		{"ror is not personal", StructuredName{Name: "DataCite", NameIdentifiers: []hub.NameIdentifier{{NameIdentifier: "https://ror.org/04wxnsj81", NameIdentifierScheme: "ROR"}}}, false},
		{"given and family", StructuredName{GivenName: "Martin", FamilyName: "Fenner"}, true},
		{"explicit organizational wins", StructuredName{Name: "Fenner, Martin", NameType: hub.NameTypeOrganizational, NameIdentifiers: []hub.NameIdentifier{{NameIdentifier: "0000-0003-1419-2405", NameIdentifierScheme: "ORCID"}}}, false},
		{"explicit personal", StructuredName{Name: "Tester", NameType: hub.NameTypePersonal}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPersonalName(tt.raw))
		})
	}
}

func TestGetOneAuthorWithORCID(t *testing.T) {
	got := GetOneAuthor(StructuredName{
		Name: "Fenner, Martin",
		NameIdentifiers: []hub.NameIdentifier{{
			NameIdentifier:       "http://orcid.org/0000-0003-1419-2405",
			NameIdentifierScheme: "ORCID",
			SchemeURI:            "http://orcid.org/",
		}},
	})

	assert.Equal(t, hub.Name{
		Name:       "Fenner, Martin",
		GivenName:  "Martin",
		FamilyName: "Fenner",
		NameType:   hub.NameTypePersonal,
		NameIdentifiers: []hub.NameIdentifier{{
			NameIdentifier:       "https://orcid.org/0000-0003-1419-2405",
			NameIdentifierScheme: "ORCID",
			SchemeURI:            "https://orcid.org",
		}},
	}, got)
}

func TestGetOneAuthorKeepsISNI(t *testing.T) {
	got := GetOneAuthor(StructuredName{
		GivenName:  "Elizabeth",
		FamilyName: "Miller",
		NameIdentifiers: []hub.NameIdentifier{{
			NameIdentifier:       "0000000134596520",
			NameIdentifierScheme: "ISNI",
			SchemeURI:            "http://isni.org/isni/",
		}},
		Affiliation: []string{"DataCite", " "},
	})

	assert.Equal(t, "Miller, Elizabeth", got.Name)
	assert.Equal(t, hub.NameTypePersonal, got.NameType)
	assert.Equal(t, []hub.NameIdentifier{{NameIdentifier: "0000000134596520", NameIdentifierScheme: "ISNI", SchemeURI: "http://isni.org/isni/"}}, got.NameIdentifiers)
	assert.Equal(t, hub.Affiliation{"DataCite"}, got.Affiliation)
}

func TestGetOneAuthorFlat(t *testing.T) {
	tests := []struct {
		in   string
		want hub.Name
	}{
		{"Martin Fenner", hub.Name{Name: "Fenner, Martin", GivenName: "Martin", FamilyName: "Fenner", NameType: hub.NameTypePersonal}},
		{"Fenner ,Martin", hub.Name{Name: "Fenner, Martin", GivenName: "Martin", FamilyName: "Fenner", NameType: hub.NameTypePersonal}},
		{"FENNER, MARTIN", hub.Name{Name: "Fenner, Martin", GivenName: "Martin", FamilyName: "Fenner", NameType: hub.NameTypePersonal}},
		{"Smith J.", hub.Name{Name: "Smith, J.", GivenName: "J.", FamilyName: "Smith", NameType: hub.NameTypePersonal}},
		{"M Fenner", hub.Name{Name: "M Fenner"}},
		{"Anonymous", hub.Name{Name: "Anonymous"}},
		{"กัมพล ทองเชิญ", hub.Name{Name: "กัมพล ทองเชิญ"}},
		{"Jones, Matt; Slaughter, Peter", hub.Name{Name: "Jones, Matt; Slaughter, Peter"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, GetOneAuthor(FlatName(tt.in)))
		})
	}
}

func TestGetOneAuthorOrganizational(t *testing.T) {
	got := GetOneAuthor(StructuredName{Name: "University of California, Santa Barbara", NameType: hub.NameTypeOrganizational})
	assert.Equal(t, hub.Name{Name: "University Of California, Santa Barbara", NameType: hub.NameTypeOrganizational}, got)

	got = GetOneAuthor(StructuredName{Name: "The GTEx Consortium", NameType: hub.NameTypeOrganizational})
	assert.Equal(t, "The GTEx Consortium", got.Name)
}

func TestGetOneAuthorParticles(t *testing.T) {
	got := GetOneAuthor(StructuredName{Name: "Peter van der Berg", NameType: hub.NameTypePersonal})
	assert.Equal(t, "van der Berg", got.FamilyName)
	assert.Equal(t, "Peter", got.GivenName)
	assert.Equal(t, "van der Berg, Peter", got.Name)
}

func TestGetAuthors(t *testing.T) {
	got := GetAuthors([]RawName{
		FlatName("Fenner, Martin"),
		FlatName("  "),
		StructuredName{Name: "DataCite", NameType: hub.NameTypeOrganizational, ContributorType: "HostingInstitution"},
	})
	require.Len(t, got, 2)
	assert.Equal(t, "Fenner", got[0].FamilyName)
	assert.Equal(t, "HostingInstitution", got[1].ContributorType)

	assert.Empty(t, GetAuthors(nil))
}

func TestAuthorsAsString(t *testing.T) {
	s, ok := AuthorsAsString(nil)
	assert.False(t, ok)
	assert.Equal(t, "", s)

	s, ok = AuthorsAsString([]hub.Name{
		{Name: "Matt Jones", NameType: hub.NameTypePersonal},
		{Name: "Peter Slaughter", NameType: hub.NameTypePersonal},
		{Name: "University of California, Santa Barbara", NameType: hub.NameTypeOrganizational},
	})
	assert.True(t, ok)
	assert.Equal(t, "Matt Jones and Peter Slaughter and {University of California, Santa Barbara}", s)

	s, ok = AuthorsAsString([]hub.Name{{Name: "Fenner, Martin", GivenName: "Martin", FamilyName: "Fenner", NameType: hub.NameTypePersonal}})
	assert.True(t, ok)
	assert.Equal(t, "Fenner, Martin", s)
}

func TestCleanupAuthor(t *testing.T) {
	cases := map[string]string{
		"  Fenner ,  Martin ":          "Fenner, Martin",
		"Smith J.":                     "Smith, J.",
		"M.H. Fenner":                  "M. H. Fenner",
		"(Fenner, Martin)":             "Fenner, Martin",
		"'Fenner, Martin'":             "Fenner, Martin",
		"John Smith, MD":               "John Smith",
		"Fenner, Martin;":              "Fenner, Martin",
		"Martin Fenner mf@example.org": "Martin Fenner",
		"":                             "",
	}
	for in, want := range cases {
		assert.Equal(t, want, CleanupAuthor(in), in)
	}
}

func TestNormalizeORCID(t *testing.T) {
	assert.Equal(t, "https://orcid.org/0000-0001-9999-000X", NormalizeORCID("http://orcid.org/0000-0001-9999-000x"))
	assert.Equal(t, "https://orcid.org/0000-0003-1419-2405", NormalizeORCID("0000-0003-1419-2405"))
	assert.Equal(t, "", NormalizeORCID("not an orcid"))
}

func TestSplitNames(t *testing.T) {
	assert.Equal(t, []string{"Fenner, Martin", "{DataCite}"}, SplitNames("Fenner, Martin and {DataCite}", " and "))
	assert.Nil(t, SplitNames(" ", " and "))
}

func TestContributorType(t *testing.T) {
	cases := map[string]string{
		"Editor":         "Editor",
		"editor":         "Editor",
		"project leader": "ProjectLeader",
		"relators:edt":   "Editor",
		"translator":     "Translator",
		"relators:trl":   "Translator",
		"CONTACT PERSON": "ContactPerson",
		"chef":           "Other",
		"":               "",
	}
	for in, want := range cases {
		assert.Equal(t, want, ContributorType(in), in)
	}
	assert.Equal(t, "Supervisor", ContributorType("http://id.loc.gov/vocabulary/relators/ths"))
}
