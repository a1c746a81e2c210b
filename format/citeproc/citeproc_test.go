package citeproc

import (
	"bytes"
	"encoding/json"
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
	data, err := os.ReadFile(filepath.Join("testdata", "items.json"))
	require.NoError(t, err)

	records, err := (&Format{}).Parse(bytes.NewReader(data), opts)
	require.NoError(t, err)
	return records
}

func TestParseJournalArticle(t *testing.T) {
	records := parseFixture(t, nil)
	require.Len(t, records, 2)
	r := records[0]

	assert.Equal(t, "citeproc", r.Source)
	assert.Equal(t, "10.7554/elife.01567", r.DOI)
	assert.Equal(t, "https://doi.org/10.7554/elife.01567", r.DOIURL())
	assert.Equal(t, "article-journal", r.Types.Citeproc)
	assert.Equal(t, "Text", r.Types.ResourceTypeGeneral)
	assert.Equal(t, "ScholarlyArticle", r.Types.SchemaOrg)

	require.Len(t, r.Creators, 2)
	assert.Equal(t, "Sankar, Martial", r.Creators[0].Name)
	assert.True(t, r.Creators[0].IsPersonal())
	require.Len(t, r.Contributors, 1)
	assert.Equal(t, "Editor", r.Contributors[0].ContributorType)
	assert.Equal(t, "Weigel", r.Contributors[0].FamilyName)

	assert.Equal(t, []hub.Date{{Date: "2014-02-11", DateType: hub.DateIssued}}, r.Dates)
	assert.Equal(t, "2014", r.PublicationYear)
	assert.Equal(t, &hub.Container{
		Type:           "Journal",
		Title:          "eLife",
		Identifier:     "2050-084X",
		IdentifierType: "ISSN",
		Volume:         "3",
		FirstPage:      "e01567",
	}, r.Container)
	assert.Equal(t, "Among various advantages, their small size makes model organisms preferred subjects of investigation.", r.Abstract())
	assert.Equal(t, []string{"Arabidopsis", "secondary growth"}, r.SubjectStrings())
	assert.Equal(t, []hub.Rights{{RightsURI: "https://creativecommons.org/licenses/by/3.0/legalcode"}}, r.RightsList)
	assert.Equal(t, "en", r.Language)
}

func TestParseLiteralAuthorAndStringDateParts(t *testing.T) {
	r := parseFixture(t, nil)[1]

	assert.Empty(t, r.DOI)
	assert.Equal(t, "Dataset", r.Types.ResourceTypeGeneral)
	require.Len(t, r.Creators, 1)
	assert.Equal(t, "Pangaea Consortium", r.Creators[0].Name)
	assert.Equal(t, hub.NameTypeUnclassified, r.Creators[0].NameType)
	assert.Equal(t, "2019-06", hub.GetDate(r.Dates, hub.DateIssued))
	assert.Equal(t, "1.0", r.VersionInfo)
	assert.Nil(t, r.Container)
	assert.Nil(t, r.Contributors)
}

func TestParseSingleObject(t *testing.T) {
	input := `{"type": "book", "title": "A Book", "issued": {"literal": "March 2001"}, "author": [{"family": "Doe", "given": "Jane"}]}`
	records, err := (&Format{}).Parse(strings.NewReader(input), nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Book", records[0].Types.SchemaOrg)
	assert.Equal(t, "2001-03", hub.GetDate(records[0].Dates, hub.DateIssued))
}

func TestParseUnknownType(t *testing.T) {
	records, err := (&Format{}).Parse(strings.NewReader(`{"type": "hologram", "title": "x"}`), nil)
	require.NoError(t, err)
	types := records[0].Types
	assert.Equal(t, "hologram", types.Citeproc)
	assert.Equal(t, "hologram", types.ResourceType)
	assert.Equal(t, "Article", types.SchemaOrg)
}

func TestParseDOIOverride(t *testing.T) {
	records := parseFixture(t, &format.ParseOptions{DOI: "10.5072/Override", Sandbox: true})
	assert.Equal(t, "10.5072/override", records[1].DOI)
	assert.Equal(t, "https://handle.test.datacite.org/10.5072/override", records[1].DOIURL())
}

func TestParseMalformed(t *testing.T) {
	_, err := (&Format{}).Parse(strings.NewReader(`{"type": `), nil)
	assert.Error(t, err)
}

func TestSerialize(t *testing.T) {
	records := parseFixture(t, nil)

	var buf bytes.Buffer
	require.NoError(t, (&Format{}).Serialize(&buf, records[:1], nil))

	var item map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &item))
	assert.Equal(t, "https://doi.org/10.7554/elife.01567", item["id"])
	assert.Equal(t, "article-journal", item["type"])
	assert.Equal(t, "10.7554/elife.01567", item["DOI"])
	assert.Equal(t, []any{map[string]any{"family": "Sankar", "given": "Martial"}, map[string]any{"family": "Nieminen", "given": "Kaisa"}}, item["author"])
	assert.Equal(t, []any{map[string]any{"family": "Weigel", "given": "Detlef"}}, item["editor"])
	assert.Equal(t, map[string]any{"date-parts": []any{[]any{2014.0, 2.0, 11.0}}}, item["issued"])
	assert.Equal(t, "eLife", item["container-title"])
	assert.Equal(t, "3", item["volume"])
	assert.Equal(t, "2050-084X", item["ISSN"])
	assert.Equal(t, "Arabidopsis, secondary growth", item["keyword"])
	assert.Equal(t, "https://creativecommons.org/licenses/by/3.0/legalcode", item["copyright"])
}

func TestSerializeGeneratedID(t *testing.T) {
	r := hub.NewRecord()
	r.Titles = []hub.Title{{Title: "Untitled notes"}}
	r.Creators = []hub.Name{{Name: "Fenner, Martin", GivenName: "Martin", FamilyName: "Fenner", NameType: hub.NameTypePersonal}}
	r.PublicationYear = "2017"

	var buf bytes.Buffer
	require.NoError(t, (&Format{}).Serialize(&buf, []*hub.Record{r}, &format.SerializeOptions{}))
	assert.Equal(t, `{"id":"fenner2017","type":"article","title":"Untitled notes","author":[{"family":"Fenner","given":"Martin"}],"issued":{"date-parts":[[2017]]}}`+"\n", buf.String())
}

func TestSerializeMultipleRecordsAsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&Format{}).Serialize(&buf, parseFixture(t, nil), nil))
	assert.True(t, strings.HasPrefix(buf.String(), "["))
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
		{"item", `{"type": "book", "issued": {"date-parts": [[2001]]}}`, true},
		{"array", `[{"type": "dataset", "author": [{"literal": "x"}]}]`, true},
		{"type only", `{"type": "book", "title": "x"}`, false},
		{"schema.org", `{"@context": "https://schema.org", "@type": "Dataset", "author": "x", "type": "y"}`, false},
		{"xml", `<resource/>`, false},
		{"empty", ``, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, (&Format{}).CanParse([]byte(tt.input)))
		})
	}
}
