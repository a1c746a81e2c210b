package datacite

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehigh-university-libraries/bolognese/format"
	"github.com/lehigh-university-libraries/bolognese/hub"
)

func TestSerializeRoundTrip(t *testing.T) {
	in := parseFixture(t, "blogposting.xml", nil)

	var buf bytes.Buffer
	require.NoError(t, (&Format{}).Serialize(&buf, []*hub.Record{in}, nil))
	out := buf.String()

	assert.Contains(t, out, `<resource xmlns="http://datacite.org/schema/kernel-4"`)
	assert.Contains(t, out, `<identifier identifierType="DOI">10.5438/4k3m-nyvg</identifier>`)
	assert.Contains(t, out, `<nameIdentifier nameIdentifierScheme="ORCID" schemeURI="https://orcid.org">https://orcid.org/0000-0003-1419-2405</nameIdentifier>`)
	assert.Contains(t, out, `<resourceType resourceTypeGeneral="Text">BlogPosting</resourceType>`)
	assert.Contains(t, out, `xml:lang="en"`)

	// the output must read back to the same record and validate
	assert.Empty(t, Validate(buf.Bytes()))
	records, err := (&Format{}).Parse(strings.NewReader(out), nil)
	require.NoError(t, err)
	back := records[0]

	assert.Equal(t, in.DOI, back.DOI)
	assert.Equal(t, in.Identifiers, back.Identifiers)
	assert.Equal(t, in.Creators, back.Creators)
	assert.Equal(t, in.Titles, back.Titles)
	assert.Equal(t, in.Types, back.Types)
	assert.Equal(t, in.Subjects, back.Subjects)
	assert.Equal(t, in.Dates, back.Dates)
	assert.Equal(t, in.RelatedIdentifiers, back.RelatedIdentifiers)
	assert.Equal(t, in.Descriptions, back.Descriptions)
	assert.Equal(t, in.RightsList, back.RightsList)
	// related DOIs are lower-cased on the way in, so the series identifier is too
	require.NotNil(t, back.Container)
	assert.Equal(t, "10.5438/0000-00ss", back.Container.Identifier)
	assert.Equal(t, in.Container.Title, back.Container.Title)
	assert.Equal(t, in.Container.Volume, back.Container.Volume)
}

func TestSerializeGeoAndFunding(t *testing.T) {
	in := parseFixture(t, "polygon-kernel4.xml", nil)

	var buf bytes.Buffer
	require.NoError(t, (&Format{}).Serialize(&buf, []*hub.Record{in}, &format.SerializeOptions{}))
	assert.Empty(t, Validate(buf.Bytes()))

	records, err := (&Format{}).Parse(&buf, nil)
	require.NoError(t, err)
	assert.Equal(t, in.GeoLocations, records[0].GeoLocations)
	assert.Equal(t, in.FundingReferences, records[0].FundingReferences)
}

func TestSerializeKernel3UpgradesToKernel4(t *testing.T) {
	in := parseFixture(t, "geo-kernel3.xml", nil)

	var buf bytes.Buffer
	require.NoError(t, (&Format{}).Serialize(&buf, []*hub.Record{in}, nil))
	out := buf.String()
	assert.Contains(t, out, "<pointLatitude>37.046</pointLatitude>")
	assert.Contains(t, out, "<southBoundLatitude>37.046</southBoundLatitude>")
	assert.Empty(t, Validate(buf.Bytes()))
}

func TestSerializeRequiresDOI(t *testing.T) {
	r := hub.NewRecord()
	r.Titles = []hub.Title{{Title: "No identifier"}}

	var buf bytes.Buffer
	err := (&Format{}).Serialize(&buf, []*hub.Record{r}, nil)
	assert.True(t, errors.Is(err, format.ErrUnrepresentable))
	assert.Zero(t, buf.Len())
}

func TestSerializeRebuildsSeriesInformation(t *testing.T) {
	r := hub.NewRecord()
	r.DOI = "10.5438/series"
	r.Container = &hub.Container{Type: "Series", Title: "DataCite Blog", Volume: "2", Issue: "9"}

	var buf bytes.Buffer
	require.NoError(t, (&Format{}).Serialize(&buf, []*hub.Record{r}, nil))
	assert.Contains(t, buf.String(), `<description descriptionType="SeriesInformation">DataCite Blog, 2(9)</description>`)
}
