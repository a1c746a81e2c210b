package format_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehigh-university-libraries/bolognese/format"
	_ "github.com/lehigh-university-libraries/bolognese/format/bibtex"
	_ "github.com/lehigh-university-libraries/bolognese/format/citeproc"
	_ "github.com/lehigh-university-libraries/bolognese/format/codemeta"
	_ "github.com/lehigh-university-libraries/bolognese/format/crossref"
	_ "github.com/lehigh-university-libraries/bolognese/format/datacite"
	_ "github.com/lehigh-university-libraries/bolognese/format/ris"
	_ "github.com/lehigh-university-libraries/bolognese/format/schemaorg"
	"github.com/lehigh-university-libraries/bolognese/hub"
)

const dataciteXML = `<?xml version="1.0" encoding="UTF-8"?>
<resource xmlns="http://datacite.org/schema/kernel-4">
  <identifier identifierType="DOI">10.5438/4k3m-nyvg</identifier>
  <creators>
    <creator>
      <creatorName>Fenner, Martin</creatorName>
      <givenName>Martin</givenName>
      <familyName>Fenner</familyName>
    </creator>
  </creators>
  <titles><title>Eating your own Dog Food</title></titles>
  <publisher>DataCite</publisher>
  <publicationYear>2016</publicationYear>
  <resourceType resourceTypeGeneral="Text">BlogPosting</resourceType>
</resource>`

func TestDetectFromContent(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"datacite", `<resource xmlns="http://datacite.org/schema/kernel-4"><identifier/></resource>`, "datacite"},
		{"crossref", `<doi_records><doi_record><crossref><journal/></crossref></doi_record></doi_records>`, "crossref"},
		{"schema.org", `{"@context":"http://schema.org","@type":"Dataset"}`, "schemaorg"},
		{"codemeta", `{"@context":"https://doi.org/10.5063/schema/codemeta-2.0","@type":"SoftwareSourceCode"}`, "codemeta"},
		{"citeproc", `{"type":"article-journal","issued":{"date-parts":[[2014]]}}`, "citeproc"},
		{"ris", "TY  - JOUR\nT1  - Title\nER  -\n", "ris"},
		{"bibtex", "@article{key,\n  title = {Title}\n}", "bibtex"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := format.DetectFromContent([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Name())
		})
	}
}

func TestDetectUnknown(t *testing.T) {
	_, err := format.DetectFromContent([]byte("plain text"))
	assert.ErrorIs(t, err, format.ErrUnknownFormat)
}

func TestListIncludesEveryFormat(t *testing.T) {
	assert.Equal(t, []string{"bibtex", "citeproc", "codemeta", "crossref", "datacite", "ris", "schemaorg"}, format.List())
}

func parse(t *testing.T, name string, data []byte) *hub.Record {
	t.Helper()
	p, err := format.GetParser(name)
	require.NoError(t, err)
	records, err := p.Parse(bytes.NewReader(data), nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
	return records[0]
}

func serialize(t *testing.T, name string, record *hub.Record) []byte {
	t.Helper()
	s, err := format.GetSerializer(name)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, s.Serialize(&buf, []*hub.Record{record}, nil))
	return buf.Bytes()
}

// TestCrossFormatRoundTrip converts DataCite XML through each DOI-carrying
// format and back, checking the core fields survive.
func TestCrossFormatRoundTrip(t *testing.T) {
	original := parse(t, "datacite", []byte(dataciteXML))

	for _, via := range []string{"schemaorg", "citeproc", "bibtex", "ris"} {
		t.Run(via, func(t *testing.T) {
			intermediate := parse(t, via, serialize(t, via, original))
			back := parse(t, "datacite", serialize(t, "datacite", intermediate))

			assert.Equal(t, original.DOI, back.DOI)
			assert.Equal(t, original.MainTitle(), back.MainTitle())
			assert.Equal(t, original.Publisher, back.Publisher)
			assert.Equal(t, original.PublicationYear, back.PublicationYear)
			require.Len(t, back.Creators, 1)
			assert.Equal(t, "Fenner", back.Creators[0].FamilyName)
			assert.Equal(t, "Martin", back.Creators[0].GivenName)
		})
	}
}

func TestUnknownFormat(t *testing.T) {
	_, err := format.GetParser("marc")
	assert.ErrorIs(t, err, format.ErrUnknownFormat)
	_, err = format.GetSerializer("marc")
	assert.ErrorIs(t, err, format.ErrUnknownFormat)
}
