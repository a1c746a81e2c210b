package datacite

import "encoding/xml"

// XML types shared by the reader and the writer. Element names carry no
// namespace so documents of every kernel version decode into them.

type XMLResource struct {
	XMLName              xml.Name                 `xml:"resource"`
	Xmlns                string                   `xml:"xmlns,attr,omitempty"`
	XmlnsXsi             string                   `xml:"xmlns:xsi,attr,omitempty"`
	XsiSchemaLocation    string                   `xml:"xsi:schemaLocation,attr,omitempty"`
	Identifier           *XMLIdentifier           `xml:"identifier"`
	Creators             []XMLCreator             `xml:"creators>creator"`
	Titles               []XMLTitle               `xml:"titles>title"`
	Publisher            string                   `xml:"publisher"`
	PublicationYear      string                   `xml:"publicationYear"`
	ResourceType         *XMLResourceType         `xml:"resourceType"`
	Subjects             []XMLSubject             `xml:"subjects>subject"`
	Contributors         []XMLContributor         `xml:"contributors>contributor"`
	Dates                []XMLDate                `xml:"dates>date"`
	Language             string                   `xml:"language,omitempty"`
	AlternateIdentifiers []XMLAlternateIdentifier `xml:"alternateIdentifiers>alternateIdentifier"`
	RelatedIdentifiers   []XMLRelatedIdentifier   `xml:"relatedIdentifiers>relatedIdentifier"`
	Sizes                []string                 `xml:"sizes>size"`
	Formats              []string                 `xml:"formats>format"`
	Version              string                   `xml:"version,omitempty"`
	RightsList           []XMLRights              `xml:"rightsList>rights"`
	Rights               *XMLRights               `xml:"rights"`
	Descriptions         []XMLDescription         `xml:"descriptions>description"`
	GeoLocations         []XMLGeoLocation         `xml:"geoLocations>geoLocation"`
	FundingReferences    []XMLFundingReference    `xml:"fundingReferences>fundingReference"`
	ContentURLs          []string                 `xml:"contentUrl"`
}

type XMLIdentifier struct {
	IdentifierType string `xml:"identifierType,attr"`
	Value          string `xml:",chardata"`
}

type XMLCreator struct {
	CreatorName     XMLPersonName       `xml:"creatorName"`
	GivenName       string              `xml:"givenName,omitempty"`
	FamilyName      string              `xml:"familyName,omitempty"`
	NameIdentifiers []XMLNameIdentifier `xml:"nameIdentifier"`
	Affiliations    []XMLAffiliation    `xml:"affiliation"`
}

type XMLContributor struct {
	ContributorType string              `xml:"contributorType,attr"`
	ContributorName XMLPersonName       `xml:"contributorName"`
	GivenName       string              `xml:"givenName,omitempty"`
	FamilyName      string              `xml:"familyName,omitempty"`
	NameIdentifiers []XMLNameIdentifier `xml:"nameIdentifier"`
	Affiliations    []XMLAffiliation    `xml:"affiliation"`
}

type XMLPersonName struct {
	NameType string `xml:"nameType,attr,omitempty"`
	Value    string `xml:",chardata"`
}

type XMLNameIdentifier struct {
	NameIdentifierScheme string `xml:"nameIdentifierScheme,attr"`
	SchemeURI            string `xml:"schemeURI,attr,omitempty"`
	Value                string `xml:",chardata"`
}

type XMLAffiliation struct {
	AffiliationIdentifier       string `xml:"affiliationIdentifier,attr,omitempty"`
	AffiliationIdentifierScheme string `xml:"affiliationIdentifierScheme,attr,omitempty"`
	Value                       string `xml:",chardata"`
}

type XMLTitle struct {
	TitleType string `xml:"titleType,attr,omitempty"`
	Lang      string `xml:"http://www.w3.org/XML/1998/namespace lang,attr,omitempty"`
	Value     string `xml:",chardata"`
}

type XMLSubject struct {
	SubjectScheme string `xml:"subjectScheme,attr,omitempty"`
	SchemeURI     string `xml:"schemeURI,attr,omitempty"`
	ValueURI      string `xml:"valueURI,attr,omitempty"`
	Lang          string `xml:"http://www.w3.org/XML/1998/namespace lang,attr,omitempty"`
	Value         string `xml:",chardata"`
}

type XMLResourceType struct {
	ResourceTypeGeneral string `xml:"resourceTypeGeneral,attr"`
	Value               string `xml:",chardata"`
}

type XMLDate struct {
	DateType        string `xml:"dateType,attr"`
	DateInformation string `xml:"dateInformation,attr,omitempty"`
	Value           string `xml:",chardata"`
}

type XMLAlternateIdentifier struct {
	AlternateIdentifierType string `xml:"alternateIdentifierType,attr"`
	Value                   string `xml:",chardata"`
}

type XMLRelatedIdentifier struct {
	RelatedIdentifierType string `xml:"relatedIdentifierType,attr"`
	RelationType          string `xml:"relationType,attr"`
	ResourceTypeGeneral   string `xml:"resourceTypeGeneral,attr,omitempty"`
	Value                 string `xml:",chardata"`
}

type XMLRights struct {
	RightsURI string `xml:"rightsURI,attr,omitempty"`
	Lang      string `xml:"http://www.w3.org/XML/1998/namespace lang,attr,omitempty"`
	Value     string `xml:",chardata"`
}

type XMLDescription struct {
	DescriptionType string `xml:"descriptionType,attr"`
	Lang            string `xml:"http://www.w3.org/XML/1998/namespace lang,attr,omitempty"`
	Value           string `xml:",chardata"`
}

// XMLGeoLocation holds both the kernel-3 text form of points and boxes and
// the kernel-4 child elements.
type XMLGeoLocation struct {
	Place    string          `xml:"geoLocationPlace,omitempty"`
	Point    *XMLGeoPoint    `xml:"geoLocationPoint"`
	Box      *XMLGeoBox      `xml:"geoLocationBox"`
	Polygons []XMLGeoPolygon `xml:"geoLocationPolygon"`
}

type XMLGeoPoint struct {
	Text           string `xml:",chardata"`
	PointLongitude string `xml:"pointLongitude,omitempty"`
	PointLatitude  string `xml:"pointLatitude,omitempty"`
}

type XMLGeoBox struct {
	Text               string `xml:",chardata"`
	WestBoundLongitude string `xml:"westBoundLongitude,omitempty"`
	EastBoundLongitude string `xml:"eastBoundLongitude,omitempty"`
	SouthBoundLatitude string `xml:"southBoundLatitude,omitempty"`
	NorthBoundLatitude string `xml:"northBoundLatitude,omitempty"`
}

type XMLGeoPolygon struct {
	Points []XMLGeoPoint `xml:"polygonPoint"`
}

type XMLFundingReference struct {
	FunderName       string               `xml:"funderName"`
	FunderIdentifier *XMLFunderIdentifier `xml:"funderIdentifier"`
	AwardNumber      *XMLAwardNumber      `xml:"awardNumber"`
	AwardTitle       string               `xml:"awardTitle,omitempty"`
}

type XMLFunderIdentifier struct {
	FunderIdentifierType string `xml:"funderIdentifierType,attr"`
	Value                string `xml:",chardata"`
}

type XMLAwardNumber struct {
	AwardURI string `xml:"awardURI,attr,omitempty"`
	Value    string `xml:",chardata"`
}
