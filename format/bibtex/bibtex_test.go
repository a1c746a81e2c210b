package bibtex

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehigh-university-libraries/bolognese/format"
	"github.com/lehigh-university-libraries/bolognese/hub"
)

func parseFixture(t *testing.T, opts *format.ParseOptions) []*hub.Record {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "references.bib"))
	require.NoError(t, err)

	records, err := (&Format{}).Parse(bytes.NewReader(data), opts)
	require.NoError(t, err)
	return records
}

func TestParseArticle(t *testing.T) {
	records := parseFixture(t, nil)
	require.Len(t, records, 3)
	r := records[0]

	assert.Equal(t, "bibtex", r.Source)
	assert.Equal(t, "10.7554/elife.01567", r.DOI)
	assert.Equal(t, []hub.Identifier{{Identifier: "https://doi.org/10.7554/elife.01567", IdentifierType: "DOI"}}, r.Identifiers)
	assert.Equal(t, hub.Types{
		ResourceTypeGeneral: "Text",
		ResourceType:        "article",
		SchemaOrg:           "ScholarlyArticle",
		Citeproc:            "article-journal",
		Bibtex:              "article",
		Ris:                 "JOUR",
	}, r.Types)
	assert.Equal(t, "Automated quantitative histology reveals vascular morphodynamics during Arabidopsis hypocotyl secondary growth", r.MainTitle())

	require.Len(t, r.Creators, 5)
	assert.Equal(t, "Sankar, Martial", r.Creators[0].Name)
	assert.Equal(t, "Martial", r.Creators[0].GivenName)
	assert.Equal(t, "Sankar", r.Creators[0].FamilyName)

	assert.Equal(t, &hub.Container{
		Type:           "Journal",
		Title:          "eLife",
		Identifier:     "2050-084X",
		IdentifierType: "ISSN",
		Volume:         "3",
		FirstPage:      "e01567",
		LastPage:       "e01580",
	}, r.Container)
	assert.Equal(t, []hub.Date{{Date: "2014-02", DateType: hub.DateIssued}}, r.Dates)
	assert.Equal(t, "2014", r.PublicationYear)
	assert.Equal(t, "eLife Sciences Organisation, Ltd.", r.Publisher)
	assert.Equal(t, "https://elifesciences.org/articles/01567", r.URL)
	assert.Equal(t, []string{"Arabidopsis", "secondary growth", "machine learning"}, r.SubjectStrings())
	assert.Equal(t, []hub.Rights{{RightsURI: "https://creativecommons.org/licenses/by/3.0/legalcode"}}, r.RightsList)
	assert.Equal(t, "en", r.Language)
	assert.Contains(t, r.Abstract(), "model organisms")
}

func TestParseParenthesizedEntryWithMacros(t *testing.T) {
	r := parseFixture(t, nil)[1]

	assert.Equal(t, "inproceedings", r.Types.Bibtex)
	assert.Equal(t, "paper-conference", r.Types.Citeproc)
	assert.Equal(t, "", r.DOI)
	assert.Equal(t, "Reading PLoS ONE at scale", r.MainTitle())

	require.Len(t, r.Creators, 2)
	assert.Equal(t, "García Müller", r.Creators[0].FamilyName)
	assert.Equal(t, "José", r.Creators[0].GivenName)
	assert.Equal(t, "Open Science Foundation", r.Creators[1].Name)
	assert.True(t, r.Creators[1].IsOrganizational())

	require.Len(t, r.Contributors, 1)
	assert.Equal(t, "Editor", r.Contributors[0].ContributorType)
	assert.Equal(t, "Doe", r.Contributors[0].FamilyName)

	assert.Equal(t, []hub.Identifier{{Identifier: "978-3-16-148410-0", IdentifierType: "ISBN"}}, r.Identifiers)
	assert.Equal(t, &hub.Container{Type: "Proceedings", Title: "Proceedings of the Workshop on Metadata", FirstPage: "12", LastPage: "20"}, r.Container)
	assert.Equal(t, "2019", r.PublicationYear)
}

func TestParseEscapes(t *testing.T) {
	r := parseFixture(t, nil)[2]

	assert.Equal(t, "Percent % and ampersand & survive", r.MainTitle())
	assert.Equal(t, "misc", r.Types.Bibtex)
	assert.NotNil(t, r.Creators)
	assert.Empty(t, r.Creators)
	assert.Nil(t, r.Container)
	assert.Empty(t, r.Dates)
}

func TestParseDOIOverride(t *testing.T) {
	records := parseFixture(t, &format.ParseOptions{DOI: "https://doi.org/10.5072/override"})
	require.Len(t, records, 3)
	for _, r := range records {
		assert.Equal(t, "10.5072/override", r.DOI)
		assert.Equal(t, "https://doi.org/10.5072/override", r.Identifiers[0].Identifier)
	}
}

func TestParseInvalidDOIOverrideIsIgnored(t *testing.T) {
	records := parseFixture(t, &format.ParseOptions{DOI: "not-a-doi"})
	require.Len(t, records, 3)
	assert.Equal(t, "10.7554/elife.01567", records[0].DOI)
	assert.Equal(t, "", records[1].DOI)
}

func TestParseNoEntries(t *testing.T) {
	_, err := (&Format{}).Parse(strings.NewReader("nothing to see"), nil)
	assert.Error(t, err)
}

func TestParseSkipsBrokenEntry(t *testing.T) {
	input := "@book{broken,\n  title = {Unbalanced\n\n@book{fine,\n  title = {Finished},\n  note = {mail someone@example.org}\n}\n"
	records, err := (&Format{}).Parse(strings.NewReader(input), nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Finished", records[0].MainTitle())

	_, err = (&Format{}).Parse(strings.NewReader("@book{key,\n  title = {Unfinished"), nil)
	assert.Error(t, err)
}

func TestBlocks(t *testing.T) {
	got := blocks([]byte("% header\n@string{j = \"J\"}\n@misc{a, note = {x@y}}\n@misc(b, title = \"q@r\")"))
	assert.Equal(t, []string{
		`@string{j = "J"}`,
		"@misc{a, note = {x@y}}",
		`@misc(b, title = "q@r")`,
	}, got)
	assert.Equal(t, "@misc{b, title = {x}}", braced("@misc(b, title = {x})", true))
}

func TestClean(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`Schr{\"o}dinger`, "Schrödinger"},
		{`Erd\H{o}s`, `ErdHos`},
		{`{\'E}cole~Normale`, "École Normale"},
		{`\c{c}`, "cc"},
		{`10\% of \{braces\}`, "10% of {braces}"},
		{"  spread \n out  ", "spread out"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, clean(tt.in), tt.in)
	}
}

func TestSerialize(t *testing.T) {
	records := parseFixture(t, nil)

	var buf bytes.Buffer
	require.NoError(t, (&Format{}).Serialize(&buf, records, nil))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "@article{https://doi.org/10.7554/elife.01567,\n"))
	assert.Contains(t, out, "  author = {Sankar, Martial and Nieminen, Kaisa and ")
	assert.Contains(t, out, "  year = {2014},\n  month = feb,\n")
	assert.Contains(t, out, "  journal = {eLife},\n")
	assert.Contains(t, out, "  pages = {e01567-e01580},\n")
	assert.Contains(t, out, "  copyright = {https://creativecommons.org/licenses/by/3.0/legalcode},\n")
	assert.Contains(t, out, "@inproceedings{garcamller2019,\n")
	assert.Contains(t, out, "  author = {García Müller, José and {Open Science Foundation}},\n")
	assert.Contains(t, out, "  editor = {Doe, Jane},\n")
	assert.Contains(t, out, "  booktitle = {Proceedings of the Workshop on Metadata},\n")
	assert.Contains(t, out, "  isbn = {978-3-16-148410-0},\n")
	assert.Contains(t, out, "@misc{unknownnd,\n  title = {Percent \\% and ampersand \\& survive},\n}\n")
}

func TestSerializeFallbackType(t *testing.T) {
	r := hub.NewRecord()
	r.Titles = []hub.Title{{Title: "Untyped"}}

	var buf bytes.Buffer
	require.NoError(t, (&Format{}).Serialize(&buf, []*hub.Record{r}, nil))
	assert.Equal(t, "@misc{unknownnd,\n  title = {Untyped},\n}\n", buf.String())
}

func TestRoundTrip(t *testing.T) {
	first := parseFixture(t, nil)

	var buf bytes.Buffer
	require.NoError(t, (&Format{}).Serialize(&buf, first, nil))
	second, err := (&Format{}).Parse(&buf, nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCanParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"article", "@article{key,\n title = {x}}", true},
		{"leading comment", "% exported\n@Book(key, title = {x})", true},
		{"json", `{"@type": "Dataset"}`, false},
		{"xml", `<resource/>`, false},
		{"ris", "TY  - JOUR\nER  - ", false},
		{"email only", "contact me at someone@example.org", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, (&Format{}).CanParse([]byte(tt.input)))
		})
	}
}
