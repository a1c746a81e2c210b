package hub

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloneSharesNothing(t *testing.T) {
	r := NewRecord()
	r.DOI = "10.5061/dryad.8515"
	r.Creators = []Name{{Name: "Ollomo, Benjamin", GivenName: "Benjamin", FamilyName: "Ollomo", NameType: NameTypePersonal, Affiliation: Affiliation{"CIRMF"}}}
	r.GeoLocations = []GeoLocation{{Point: &GeoPoint{PointLatitude: "1", PointLongitude: "2"}}}
	r.Container = &Container{Title: "DataCite Blog"}
	r.SetExtra("programmingLanguage", "Go")

	c := r.Clone()
	c.Creators[0].Affiliation[0] = "changed"
	c.GeoLocations[0].Point.PointLatitude = "9"
	c.Container.Title = "changed"
	c.SetExtra("programmingLanguage", "Ruby")

	assert.Equal(t, "CIRMF", r.Creators[0].Affiliation[0])
	assert.Equal(t, "1", r.GeoLocations[0].Point.PointLatitude)
	assert.Equal(t, "DataCite Blog", r.Container.Title)
	assert.Equal(t, "Go", r.GetExtraString("programmingLanguage"))
	assert.Equal(t, "Ruby", c.GetExtraString("programmingLanguage"))
}

func TestCloneKeepsEmptyCreators(t *testing.T) {
	c := NewRecord().Clone()
	require.NotNil(t, c.Creators)
	assert.Empty(t, c.Creators)
}

func TestAddIdentifier(t *testing.T) {
	r := NewRecord()
	r.AddIdentifier(Identifier{Identifier: "MS-49-3632-5083", IdentifierType: "Local accession number"})
	r.AddIdentifier(Identifier{Identifier: "https://doi.org/10.5061/dryad.8515", IdentifierType: "DOI"})
	r.AddIdentifier(Identifier{Identifier: "MS-49-3632-5083", IdentifierType: "Local accession number"})
	r.AddIdentifier(Identifier{Identifier: "  ", IdentifierType: "URL"})

	require.Len(t, r.Identifiers, 2)
	assert.Equal(t, "DOI", r.Identifiers[0].IdentifierType)
	assert.Equal(t, "Local accession number", r.Identifiers[1].IdentifierType)
}

func TestSetDOIKeepsOtherIdentifiers(t *testing.T) {
	r := NewRecord()
	r.AddIdentifier(Identifier{Identifier: "https://doi.org/10.5061/dryad.8515", IdentifierType: "DOI"})
	r.AddIdentifier(Identifier{Identifier: "MS-49-3632-5083", IdentifierType: "Local accession number"})

	r.SetDOI("10.5061/override", "https://doi.org/10.5061/override")
	require.Len(t, r.Identifiers, 2)
	assert.Equal(t, Identifier{Identifier: "https://doi.org/10.5061/override", IdentifierType: "DOI"}, r.Identifiers[0])
	assert.Equal(t, "MS-49-3632-5083", r.Identifiers[1].Identifier)
}

func TestDetectIdentifierType(t *testing.T) {
	cases := map[string]string{
		"10.5061/dryad.8515":                    "DOI",
		"https://doi.org/10.5061/dryad.8515":    "DOI",
		"https://orcid.org/0000-0003-1419-2405": "ORCID",
		"0000-0003-1419-2405":                   "ORCID",
		"https://hdl.handle.net/1234/5678":      "Handle",
		"http://example.org/dataset":            "URL",
		"s3://bucket/object":                    "URL",
		"1932-6203":                             "ISSN",
		"978-3-642-05287-9":                     "ISBN",
		"19478877":                              "PMID",
		"arXiv:1501.00001":                      "arXiv",
		"":                                      "",
	}
	for in, want := range cases {
		assert.Equal(t, want, DetectIdentifierType(in), in)
	}
}

func TestAffiliationJSON(t *testing.T) {
	one, err := json.Marshal(Name{Name: "x", Affiliation: Affiliation{"UC Merced"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"x","affiliation":"UC Merced"}`, string(one))

	many, err := json.Marshal(Name{Name: "x", Affiliation: Affiliation{"UC Merced", "NSF"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"x","affiliation":["UC Merced","NSF"]}`, string(many))

	var n Name
	require.NoError(t, json.Unmarshal([]byte(`{"name":"x","affiliation":[{"name":"DataCite"},"ORCID"]}`), &n))
	assert.Equal(t, Affiliation{"DataCite", "ORCID"}, n.Affiliation)
	require.NoError(t, json.Unmarshal([]byte(`{"name":"y","affiliation":"DataCite"}`), &n))
	assert.Equal(t, Affiliation{"DataCite"}, n.Affiliation)
	assert.Equal(t, "DataCite", n.Affiliation.Value())
}

func TestPublicationYear(t *testing.T) {
	dates := []Date{
		{Date: "2010-01-01", DateType: DateCreated},
		{Date: "2011-02-03", DateType: DateIssued},
	}
	assert.Equal(t, "2011", PublicationYear(dates))
	assert.Equal(t, "2010", PublicationYear(dates[:1]))
	assert.Equal(t, "", PublicationYear(nil))
}

func TestNormalizeDatesKeepsOrderAndInformation(t *testing.T) {
	got := NormalizeDates([]Date{
		{Date: " 2012-03-12 ", DateType: "Issued"},
		{Date: "", DateType: "Created"},
		{Date: "2013-06-01", DateType: "Other", DateInformation: "Correction"},
	})
	assert.Equal(t, []Date{
		{Date: "2012-03-12", DateType: "Issued"},
		{Date: "2013-06-01", DateType: "Other", DateInformation: "Correction"},
	}, got)
}

func TestNormalizeGeoLocations(t *testing.T) {
	got := NormalizeGeoLocations([]RawGeoLocation{
		{Point: &GeoPoint{PointLatitude: " 31.233 ", PointLongitude: "-67.302"}},
		{BoxText: "41.090 -71.032 42.893 -68.211"},
		{Polygon: []GeoPoint{{"41.991", "-71.032"}, {"42.893", "-69.622"}, {"41.991", "-71.032"}}},
		{Place: "Regional"},
		{},
		{PointText: "31.233"},
	})

	require.Len(t, got, 4)
	assert.Equal(t, &GeoPoint{PointLatitude: "31.233", PointLongitude: "-67.302"}, got[0].Point)
	assert.Nil(t, got[0].Box)
	assert.Empty(t, got[0].Polygon)

	assert.Nil(t, got[1].Point)
	assert.Equal(t, &GeoBox{SouthBoundLatitude: "41.090", WestBoundLongitude: "-71.032", NorthBoundLatitude: "42.893", EastBoundLongitude: "-68.211"}, got[1].Box)

	require.Len(t, got[2].Polygon, 3)
	assert.Equal(t, "42.893", got[2].Polygon[1].PolygonPoint.PointLatitude)
	assert.Nil(t, got[2].Point)
	assert.Nil(t, got[2].Box)

	assert.Equal(t, GeoLocation{Place: "Regional"}, got[3])
}

func TestNormalizeFundingReferences(t *testing.T) {
	got := NormalizeFundingReferences([]FundingReference{
		{FunderName: "Agency for Science, Technology and Research (Singapore)"},
		{FunderName: "National Science Foundation", FunderIdentifier: "10.13039/100000001"},
		{FunderName: "European Commission", FunderIdentifier: "https://doi.org/10.13039/501100000780", FunderIdentifierType: "Crossref Funder ID", AwardNumber: "654039", AwardURI: "http://cordis.europa.eu/project/rcn/194927_en.html"},
		{FunderName: "  "},
	})

	require.Len(t, got, 3)
	assert.Equal(t, FundingReference{FunderName: "Agency for Science, Technology and Research (Singapore)"}, got[0])
	assert.Equal(t, "https://doi.org/10.13039/100000001", got[1].FunderIdentifier)
	assert.Equal(t, "Crossref Funder ID", got[1].FunderIdentifierType)
	assert.Equal(t, "http://cordis.europa.eu/project/rcn/194927_en.html", got[2].AwardURI)
}

func TestResolveState(t *testing.T) {
	assert.Equal(t, StateFindable, ResolveState("", true, ""))
	assert.Equal(t, StateDraft, ResolveState("", false, ""))
	assert.Equal(t, StateRegistered, ResolveState(StateFindable, true, StateRegistered))
	assert.Equal(t, StateNotFound, ResolveState(StateNotFound, true, StateFindable))
}

func TestValidateAttributes(t *testing.T) {
	r := NewRecord()
	errs := ValidateAttributes(r)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "doi is required")
	assert.Contains(t, errs[0], "publisher is required")

	r.DOI = "10.5061/dryad.8515"
	r.Titles = []Title{{Title: "Data from: A new malaria agent"}}
	r.Publisher = "Dryad Digital Repository"
	r.PublicationYear = "2011"
	assert.Empty(t, ValidateAttributes(r))
}

func TestRelationHelpers(t *testing.T) {
	assert.Equal(t, "HasPart", RelationInverse("IsPartOf"))
	assert.Equal(t, "IsPartOf", RelationInverse("HasPart"))
	assert.Equal(t, "IsIdenticalTo", RelationInverse("IsIdenticalTo"))
	assert.Equal(t, "IsPartOf", NormalizeRelationType("is_part_of"))
	assert.Equal(t, "", NormalizeRelationType("nonsense"))

	p, ok := SchemaOrgRelation("References")
	assert.True(t, ok)
	assert.Equal(t, "citation", p)
	rt, ok := RelationFromSchemaOrg("isBasedOn")
	assert.True(t, ok)
	assert.Equal(t, "IsSupplementTo", rt)
}

func TestLicenseHelpers(t *testing.T) {
	assert.Equal(t, "https://creativecommons.org/licenses/by/4.0/legalcode", NormalizeLicenseURI("http://creativecommons.org/licenses/by/4.0/"))
	assert.Equal(t, "https://creativecommons.org/publicdomain/zero/1.0/legalcode", NormalizeLicenseURI("https://creativecommons.org/publicdomain/zero/1.0"))
	assert.Equal(t, "https://opensource.org/licenses/MIT", NormalizeLicenseURI("https://opensource.org/licenses/MIT"))
	assert.Equal(t, "CC BY 4.0", LicenseName("https://creativecommons.org/licenses/by/4.0/legalcode"))
	assert.Equal(t, "CC0 1.0", LicenseName("http://creativecommons.org/publicdomain/zero/1.0"))
	assert.True(t, IsOpenAccess(Rights{RightsURI: "http://creativecommons.org/publicdomain/zero/1.0"}))
}
