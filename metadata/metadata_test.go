package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehigh-university-libraries/bolognese/doi"
	"github.com/lehigh-university-libraries/bolognese/format"
	_ "github.com/lehigh-university-libraries/bolognese/format/bibtex"
	_ "github.com/lehigh-university-libraries/bolognese/format/citeproc"
	_ "github.com/lehigh-university-libraries/bolognese/format/datacite"
	_ "github.com/lehigh-university-libraries/bolognese/format/ris"
	"github.com/lehigh-university-libraries/bolognese/hub"
)

const dataciteXML = `<?xml version="1.0" encoding="UTF-8"?>
<resource xmlns="http://datacite.org/schema/kernel-4">
  <identifier identifierType="DOI">10.5072/example-full</identifier>
  <creators><creator><creatorName>Miller, Elizabeth</creatorName></creator></creators>
  <titles><title>Full DataCite XML Example</title></titles>
  <publisher>DataCite</publisher>
  <publicationYear>2014</publicationYear>
  <resourceType resourceTypeGeneral="Software">XML</resourceType>
</resource>`

const fundingXML = `<?xml version="1.0" encoding="UTF-8"?>
<resource xmlns="http://datacite.org/schema/kernel-4">
  <identifier identifierType="DOI">10.5072/funding</identifier>
  <creators><creator><creatorName>DataCite</creatorName></creator></creators>
  <titles><title>Funding</title></titles>
  <publisher>DataCite</publisher>
  <publicationYear>2019</publicationYear>
  <resourceType resourceTypeGeneral="Text"/>
  <fundingReferences>
    <fundingReference><funderName>Agency for Science, Technology and Research (Singapore)</funderName></fundingReference>
    <fundingReference></fundingReference>
  </fundingReferences>
</resource>`

const emptyCreatorsXML = `<?xml version="1.0" encoding="UTF-8"?>
<resource xmlns="http://datacite.org/schema/kernel-4">
  <identifier identifierType="DOI">10.5072/no-creators</identifier>
  <creators></creators>
  <titles><title>Nobody</title></titles>
  <publisher>DataCite</publisher>
  <publicationYear>2019</publicationYear>
  <resourceType resourceTypeGeneral="Text"/>
</resource>`

const risRecords = `TY  - JOUR
T1  - First article
AU  - Fenner, Martin
PY  - 2017
DO  - 10.5072/first
ER  -

TY  - JOUR
T1  - Second article
AU  - Garza, Kristian
PY  - 2018
DO  - 10.5072/second
ER  -
`

const bibtexEntry = `@article{fenner2017,
  author = {Fenner, Martin},
  title = {Notes on metadata},
  year = {2017},
  doi = {10.5072/notes}
}`

type fakeFetcher struct {
	body    []byte
	err     error
	doi     string
	sandbox bool
	calls   int
}

func (f *fakeFetcher) Fetch(_ context.Context, d string, sandbox bool) ([]byte, error) {
	f.calls++
	f.doi = d
	f.sandbox = sandbox
	return f.body, f.err
}

func attributes() *hub.Record {
	record := hub.NewRecord()
	record.SetDOI("10.5072/attrs", "https://doi.org/10.5072/attrs")
	record.Creators = []hub.Name{{Name: "Fenner, Martin", GivenName: "Martin", FamilyName: "Fenner", NameType: hub.NameTypePersonal}}
	record.Titles = []hub.Title{{Title: "Attributes"}}
	record.Publisher = "DataCite"
	record.PublicationYear = "2020"
	record.Types = hub.Types{ResourceTypeGeneral: "Dataset", SchemaOrg: "Dataset"}
	return record
}

func TestNewFromContent(t *testing.T) {
	m, err := New(context.Background(), dataciteXML)
	require.NoError(t, err)

	assert.Equal(t, "datacite", m.From())
	assert.Equal(t, "10.5072/example-full", m.DOI())
	assert.Equal(t, []hub.Identifier{{Identifier: "https://doi.org/10.5072/example-full", IdentifierType: "DOI"}}, m.Identifiers())
	assert.Equal(t, "Full DataCite XML Example", m.Titles()[0].Title)
	assert.Equal(t, "DataCite", m.Publisher())
	assert.Equal(t, "2014", m.PublicationYear())
	assert.Equal(t, "Software", m.Types().ResourceTypeGeneral)
	assert.Equal(t, "DataCite", m.Agency())
	assert.Equal(t, "http://datacite.org/schema/kernel-4", m.SchemaVersion())
	assert.True(t, m.Valid())
	assert.Empty(t, m.Errors())
	assert.Equal(t, hub.StateFindable, m.State())
	assert.Equal(t, dataciteXML, string(m.Raw()))
}

func TestNewWithState(t *testing.T) {
	m, err := New(context.Background(), dataciteXML, WithState(hub.StateRegistered))
	require.NoError(t, err)
	assert.Equal(t, hub.StateRegistered, m.State())
	assert.True(t, m.Valid())
}

func TestNewWithDOIOverride(t *testing.T) {
	m, err := New(context.Background(), dataciteXML, WithDOI("10.5072/other"))
	require.NoError(t, err)
	assert.Equal(t, "10.5072/other", m.DOI())
}

func TestNewFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "citations.ris")
	require.NoError(t, os.WriteFile(path, []byte(risRecords), 0o644))

	all, err := Parse(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "ris", all[0].From())
	assert.Equal(t, "10.5072/first", all[0].DOI())
	assert.Equal(t, "10.5072/second", all[1].DOI())

	first, err := New(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "First article", first.Titles()[0].Title)
}

func TestNewExpandsHomeDirectory(t *testing.T) {
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })

	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.WriteFile(filepath.Join(home, "notes.bib"), []byte(bibtexEntry), 0o644))

	m, err := New(context.Background(), "~/notes.bib")
	require.NoError(t, err)
	assert.Equal(t, "bibtex", m.From())
	assert.Equal(t, "10.5072/notes", m.DOI())
	assert.Equal(t, "Fenner", m.Creators()[0].FamilyName)
}

func TestNewWithExplicitFormat(t *testing.T) {
	m, err := New(context.Background(), bibtexEntry, WithFrom("bibtex"))
	require.NoError(t, err)
	assert.Equal(t, "bibtex", m.From())
	assert.Equal(t, "Notes on metadata", m.Titles()[0].Title)
}

func TestNewUnknownFormat(t *testing.T) {
	_, err := New(context.Background(), dataciteXML, WithFrom("marc"))
	require.Error(t, err)
	assert.ErrorIs(t, err, format.ErrUnknownFormat)
}

func TestNewUndetectableContent(t *testing.T) {
	_, err := New(context.Background(), "just some words")
	require.Error(t, err)
	assert.ErrorIs(t, err, format.ErrUnknownFormat)
}

func TestNewFetchesDOI(t *testing.T) {
	fetcher := &fakeFetcher{body: []byte(dataciteXML)}
	m, err := New(context.Background(), "https://doi.org/10.5072/example-full", WithFetcher(fetcher))
	require.NoError(t, err)

	assert.Equal(t, 1, fetcher.calls)
	assert.Equal(t, "10.5072/example-full", fetcher.doi)
	assert.False(t, fetcher.sandbox)
	assert.Equal(t, "datacite", m.From())
	assert.Equal(t, hub.StateFindable, m.State())
}

// dryadXML mirrors the registered metadata of 10.5061/dryad.8515.
func dryadXML() string {
	creators := []string{"Ollomo, Benjamin", "Durand, Patrick", "Prugnolle, Franck", "Douzery, Emmanuel J. P.",
		"Arnathau, Céline", "Nkoghe, Dieudonné", "Leroy, Eric", "Renaud, François"}
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<resource xmlns="http://datacite.org/schema/kernel-3">
  <identifier identifierType="DOI">10.5061/DRYAD.8515</identifier>
  <creators>`)
	for _, c := range creators {
		b.WriteString("<creator><creatorName>" + c + "</creatorName></creator>")
	}
	b.WriteString(`</creators>
  <titles><title>Data from: A new malaria agent in African hominids.</title></titles>
  <publisher>Dryad Digital Repository</publisher>
  <publicationYear>2011</publicationYear>
  <resourceType resourceTypeGeneral="Dataset">DataPackage</resourceType>
</resource>`)
	return b.String()
}

func TestNewFetchesDryadDataset(t *testing.T) {
	fetcher := &fakeFetcher{body: []byte(dryadXML())}
	m, err := New(context.Background(), "10.5061/dryad.8515", WithFrom("datacite"), WithFetcher(fetcher))
	require.NoError(t, err)

	assert.Equal(t, "10.5061/dryad.8515", fetcher.doi)
	assert.Equal(t, "Dryad Digital Repository", m.Publisher())
	assert.Equal(t, "2011", m.PublicationYear())
	assert.Len(t, m.Creators(), 8)
	assert.Equal(t, "Dataset", m.Types().ResourceTypeGeneral)
	assert.Equal(t, "10.5061/dryad.8515", m.DOI())
}

func TestNewFetchesSandboxDOI(t *testing.T) {
	fetcher := &fakeFetcher{body: []byte(dataciteXML)}
	m, err := New(context.Background(), "https://handle.test.datacite.org/10.5072/example-full", WithFetcher(fetcher))
	require.NoError(t, err)

	assert.True(t, fetcher.sandbox)
	assert.Equal(t, doi.SandboxResolver+"10.5072/example-full", m.Identifiers()[0].Identifier)
}

func TestNewNotFound(t *testing.T) {
	fetcher := &fakeFetcher{err: doi.ErrNotFound}
	m, err := New(context.Background(), "10.5072/missing", WithFetcher(fetcher))
	require.NoError(t, err)

	assert.Equal(t, hub.StateNotFound, m.State())
	assert.False(t, m.Valid())
	assert.Equal(t, []string{"DOI 10.5072/missing not found"}, m.Errors())
	assert.Equal(t, "DataCite", m.Agency())
	assert.Equal(t, "10.5072/missing", m.DOI())
	assert.Equal(t, []hub.Identifier{{Identifier: "https://doi.org/10.5072/missing", IdentifierType: "DOI"}}, m.Identifiers())
	assert.Nil(t, m.Raw())

	m.SetState(hub.StateFindable)
	m.Validate()
	assert.Equal(t, hub.StateNotFound, m.State())
}

func TestNewFetchErrorPropagates(t *testing.T) {
	boom := errors.New("connection reset")
	_, err := New(context.Background(), "10.5072/broken", WithFetcher(&fakeFetcher{err: boom}))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestFundingReferenceWithoutValues(t *testing.T) {
	m, err := New(context.Background(), fundingXML)
	require.NoError(t, err)

	assert.False(t, m.Valid())
	assert.Len(t, m.Errors(), 1)
	assert.Equal(t, hub.StateDraft, m.State())
	assert.Equal(t, []hub.FundingReference{{FunderName: "Agency for Science, Technology and Research (Singapore)"}}, m.Record().FundingReferences)
}

func TestEmptyCreatorList(t *testing.T) {
	m, err := New(context.Background(), emptyCreatorsXML)
	require.NoError(t, err)

	assert.Equal(t, []hub.Name{}, m.Creators())
	assert.False(t, m.Valid())
	assert.Equal(t, []string{"4:0: ERROR: Element '{http://datacite.org/schema/kernel-4}creators': Missing child element(s). " +
		"Expected is ( {http://datacite.org/schema/kernel-4}creator )."}, m.Errors())
	assert.Equal(t, hub.StateDraft, m.State())
}

func TestAccessorsReturnCopies(t *testing.T) {
	m, err := New(context.Background(), fundingXML)
	require.NoError(t, err)

	m.Identifiers()[0].Identifier = "changed"
	m.Creators()[0].Name = "changed"
	m.Titles()[0].Title = "changed"
	m.Errors()[0] = "changed"

	assert.Equal(t, "https://doi.org/10.5072/funding", m.Identifiers()[0].Identifier)
	assert.Equal(t, "DataCite", m.Creators()[0].Name)
	assert.Equal(t, "Funding", m.Titles()[0].Title)
	assert.NotEqual(t, "changed", m.Errors()[0])
}

// pairFormat reads any input as two records and always reports one error.
type pairFormat struct{}

func (pairFormat) Name() string              { return "pair" }
func (pairFormat) Description() string       { return "two records per document" }
func (pairFormat) Extensions() []string      { return nil }
func (pairFormat) CanParse(peek []byte) bool { return true }
func (pairFormat) Validate(data []byte) []string {
	return []string{"1:0: ERROR: always invalid"}
}

func (pairFormat) Parse(r io.Reader, opts *format.ParseOptions) ([]*hub.Record, error) {
	return []*hub.Record{hub.NewRecord(), hub.NewRecord()}, nil
}

func TestParsedRecordsHaveOwnErrors(t *testing.T) {
	registry := format.NewRegistry()
	registry.Register(pairFormat{})

	all, err := Parse(context.Background(), "anything\n", WithRegistry(registry), WithFrom("pair"))
	require.NoError(t, err)
	require.Len(t, all, 2)

	all[0].record.Errors[0] = "changed"
	assert.Equal(t, []string{"1:0: ERROR: always invalid"}, all[1].Errors())
	assert.False(t, all[1].Valid())
}

func TestFromAttributes(t *testing.T) {
	m := FromAttributes(attributes(), "")
	assert.True(t, m.Valid())
	assert.Equal(t, hub.StateFindable, m.State())
	assert.Equal(t, "", m.From())
	assert.Nil(t, m.Raw())

	kept := FromAttributes(attributes(), hub.StateRegistered)
	assert.Equal(t, hub.StateRegistered, kept.State())

	incomplete := attributes()
	incomplete.Publisher = ""
	invalid := FromAttributes(incomplete, "")
	assert.False(t, invalid.Valid())
	assert.Len(t, invalid.Errors(), 1)
	assert.Contains(t, invalid.Errors()[0], "publisher is required")
	assert.Equal(t, hub.StateDraft, invalid.State())
}

func TestMutationRequiresValidate(t *testing.T) {
	m, err := New(context.Background(), dataciteXML)
	require.NoError(t, err)

	m.SetTitles(nil)
	m.SetCreators(nil)
	assert.Nil(t, m.Raw())
	assert.True(t, m.Valid(), "mutation alone does not validate")

	m.Validate()
	assert.False(t, m.Valid())
	assert.Equal(t, hub.StateDraft, m.State())
	assert.NotNil(t, m.Creators())
}

func TestSetDOI(t *testing.T) {
	m := FromAttributes(attributes(), "")
	m.SetDOI("https://doi.org/10.5072/Renamed")
	assert.Equal(t, "10.5072/renamed", m.DOI())
	assert.Equal(t, []hub.Identifier{{Identifier: "https://doi.org/10.5072/renamed", IdentifierType: "DOI"}}, m.Identifiers())

	m.SetDOI("")
	m.Validate()
	assert.Equal(t, "", m.DOI())
	assert.Empty(t, m.Identifiers())
	assert.False(t, m.Valid())
}

func TestRecordIsACopy(t *testing.T) {
	m := FromAttributes(attributes(), "")
	copied := m.Record()
	copied.Titles[0].Title = "Changed"
	assert.Equal(t, "Attributes", m.Titles()[0].Title)
}

func TestWrite(t *testing.T) {
	m, err := New(context.Background(), dataciteXML)
	require.NoError(t, err)

	out, err := m.Write("citeproc")
	require.NoError(t, err)

	var item map[string]any
	require.NoError(t, json.Unmarshal(out, &item))
	assert.Equal(t, "10.5072/example-full", item["DOI"])
	assert.Equal(t, "Full DataCite XML Example", item["title"])
	assert.Equal(t, "DataCite", item["publisher"])
}

func TestWriteUnrepresentable(t *testing.T) {
	record := attributes()
	record.SetDOI("", "")
	m := FromAttributes(record, "")

	out, err := m.Write("datacite")
	assert.Nil(t, out)
	assert.Equal(t, format.ErrUnrepresentable, err)
}

func TestWriteUnknownFormat(t *testing.T) {
	m := FromAttributes(attributes(), "")
	_, err := m.Write("marc")
	assert.ErrorIs(t, err, format.ErrUnknownFormat)
}

func TestWriteSeveralRecords(t *testing.T) {
	all, err := Parse(context.Background(), risRecords)
	require.NoError(t, err)

	out, err := Write("ris", all...)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(out), "TY  - "))
	assert.Contains(t, string(out), "10.5072/second")
}

func TestWriteNothing(t *testing.T) {
	_, err := Write("ris")
	assert.Error(t, err)
}
