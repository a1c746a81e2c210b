package datacite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validateFixture(t *testing.T, name string) []string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return Validate(data)
}

func TestValidateValidDocuments(t *testing.T) {
	for _, name := range []string{"blogposting.xml", "geo-kernel3.xml", "polygon-kernel4.xml", "kernel21.xml"} {
		t.Run(name, func(t *testing.T) {
			assert.Empty(t, validateFixture(t, name))
		})
	}
}

func TestValidateMissingResourceType(t *testing.T) {
	errs := validateFixture(t, "missing-resourcetype.xml")
	require.Len(t, errs, 1)
	assert.Equal(t, "2:0: ERROR: Element '{http://datacite.org/schema/kernel-4}resource': Missing child element(s). "+
		"Expected is one of ( {http://datacite.org/schema/kernel-4}resourceType, {http://datacite.org/schema/kernel-4}subjects, "+
		"{http://datacite.org/schema/kernel-4}contributors, {http://datacite.org/schema/kernel-4}language, "+
		"{http://datacite.org/schema/kernel-4}alternateIdentifiers, {http://datacite.org/schema/kernel-4}relatedIdentifiers, "+
		"{http://datacite.org/schema/kernel-4}sizes, {http://datacite.org/schema/kernel-4}formats, "+
		"{http://datacite.org/schema/kernel-4}rightsList, {http://datacite.org/schema/kernel-4}descriptions ).", errs[0])
}

func TestValidateKernel22Sequence(t *testing.T) {
	errs := validateFixture(t, "kernel22-invalid.xml")
	require.Len(t, errs, 1)
	assert.Equal(t, "13:0: ERROR: Element '{http://datacite.org/schema/kernel-2.2}publisher': This element is not expected. "+
		"Expected is ( {http://datacite.org/schema/kernel-2.2}publicationYear ).", errs[0])
}

func TestValidateMissingAttributes(t *testing.T) {
	errs := validateFixture(t, "kernel3-missing-attrs.xml")
	require.Len(t, errs, 2)
	assert.Equal(t, "14:0: ERROR: Element '{http://datacite.org/schema/kernel-3}resourceType': The attribute 'resourceTypeGeneral' is required but missing.", errs[0])
	assert.Equal(t, "16:0: ERROR: Element '{http://datacite.org/schema/kernel-3}alternateIdentifier': The attribute 'alternateIdentifierType' is required but missing.", errs[1])
}

func TestValidateEmptyFundingReference(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<resource xmlns="http://datacite.org/schema/kernel-4">
  <identifier identifierType="DOI">10.5072/funding</identifier>
  <creators><creator><creatorName>DataCite</creatorName></creator></creators>
  <titles><title>Funding</title></titles>
  <publisher>DataCite</publisher>
  <publicationYear>2019</publicationYear>
  <resourceType resourceTypeGeneral="Text"/>
  <fundingReferences>
    <fundingReference></fundingReference>
  </fundingReferences>
</resource>`

	errs := Validate([]byte(doc))
	require.Len(t, errs, 1)
	ns := "{http://datacite.org/schema/kernel-4}"
	assert.Equal(t, "10:0: ERROR: Element '"+ns+"fundingReference': Missing child element(s). Expected is one of ( "+
		ns+"funderName, "+ns+"funderIdentifier, "+ns+"awardNumber, "+ns+"awardTitle ).", errs[0])
}

func TestValidateEmptyCreators(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<resource xmlns="http://datacite.org/schema/kernel-4">
  <identifier identifierType="DOI">10.5072/no-creators</identifier>
  <creators></creators>
  <titles><title>Nobody</title></titles>
  <publisher>DataCite</publisher>
  <publicationYear>2019</publicationYear>
  <resourceType resourceTypeGeneral="Text"/>
</resource>`

	errs := Validate([]byte(doc))
	require.Len(t, errs, 1)
	assert.Equal(t, "4:0: ERROR: Element '{http://datacite.org/schema/kernel-4}creators': Missing child element(s). "+
		"Expected is ( {http://datacite.org/schema/kernel-4}creator ).", errs[0])
}

func TestValidateCreatorSequence(t *testing.T) {
	doc := `<resource xmlns="http://datacite.org/schema/kernel-4">
  <identifier identifierType="DOI">10.5072/creator</identifier>
  <creators>
    <creator>
      <givenName>Martin</givenName>
    </creator>
  </creators>
  <titles><title>Creator</title></titles>
  <publisher>DataCite</publisher>
  <publicationYear>2019</publicationYear>
  <resourceType resourceTypeGeneral="Text"/>
</resource>`

	errs := Validate([]byte(doc))
	require.Len(t, errs, 1)
	assert.Equal(t, "5:0: ERROR: Element '{http://datacite.org/schema/kernel-4}givenName': This element is not expected. "+
		"Expected is ( {http://datacite.org/schema/kernel-4}creatorName ).", errs[0])
}

func TestValidateMalformedXML(t *testing.T) {
	errs := Validate([]byte("<resource>\n<identifier>\n</resource>"))
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "3:0: ERROR:")
}
