package hub

import (
	"strings"
)

// RelationTypes is the DataCite relationType vocabulary.
var RelationTypes = []string{
	"IsCitedBy", "Cites", "IsSupplementTo", "IsSupplementedBy",
	"IsContinuedBy", "Continues", "IsDescribedBy", "Describes",
	"HasMetadata", "IsMetadataFor", "HasVersion", "IsVersionOf",
	"IsNewVersionOf", "IsPreviousVersionOf", "IsPartOf", "HasPart",
	"IsPublishedIn", "IsReferencedBy", "References", "IsDocumentedBy",
	"Documents", "IsCompiledBy", "Compiles", "IsVariantFormOf",
	"IsOriginalFormOf", "IsIdenticalTo", "IsReviewedBy", "Reviews",
	"IsDerivedFrom", "IsSourceOf", "IsRequiredBy", "Requires",
	"IsObsoletedBy", "Obsoletes",
}

var relationPairs = map[string]string{
	"IsCitedBy":       "Cites",
	"IsSupplementTo":  "IsSupplementedBy",
	"IsContinuedBy":   "Continues",
	"IsDescribedBy":   "Describes",
	"HasMetadata":     "IsMetadataFor",
	"HasVersion":      "IsVersionOf",
	"IsNewVersionOf":  "IsPreviousVersionOf",
	"IsPartOf":        "HasPart",
	"IsReferencedBy":  "References",
	"IsDocumentedBy":  "Documents",
	"IsCompiledBy":    "Compiles",
	"IsVariantFormOf": "IsOriginalFormOf",
	"IsReviewedBy":    "Reviews",
	"IsDerivedFrom":   "IsSourceOf",
	"IsRequiredBy":    "Requires",
	"IsObsoletedBy":   "Obsoletes",
	"IsIdenticalTo":   "IsIdenticalTo",
}

var relationInverses = make(map[string]string, 2*len(relationPairs))

func init() {
	for k, v := range relationPairs {
		relationInverses[k] = v
		relationInverses[v] = k
	}
}

// RelationInverse returns the inverse relation type, or rt when it has none.
func RelationInverse(rt string) string {
	if inv, ok := relationInverses[rt]; ok {
		return inv
	}
	return rt
}

// NormalizeRelationType maps loosely written relation names ("is_part_of",
// "ispartof", "isPartOf") to the DataCite term. It returns "" when unknown.
func NormalizeRelationType(value string) string {
	key := strings.ToLower(strings.NewReplacer("_", "", "-", "", " ", "").Replace(value))
	for _, rt := range RelationTypes {
		if strings.ToLower(rt) == key {
			return rt
		}
	}
	return ""
}

// schema.org properties that carry related resources, keyed by DataCite relation.
var schemaOrgRelations = map[string]string{
	"IsPartOf":            "isPartOf",
	"HasPart":             "hasPart",
	"IsPreviousVersionOf": "predecessorOf",
	"IsNewVersionOf":      "successorOf",
	"References":          "citation",
	"IsSupplementTo":      "isBasedOn",
}

// SchemaOrgRelation returns the schema.org property for a DataCite relation type.
func SchemaOrgRelation(rt string) (string, bool) {
	p, ok := schemaOrgRelations[rt]
	return p, ok
}

// RelationFromSchemaOrg returns the DataCite relation type for a schema.org property.
func RelationFromSchemaOrg(property string) (string, bool) {
	for rt, p := range schemaOrgRelations {
		if p == property {
			return rt, true
		}
	}
	return "", false
}

// RelatedByType returns the related identifiers with the given relation type.
func (r *Record) RelatedByType(relationType string) []RelatedIdentifier {
	var result []RelatedIdentifier
	for _, rel := range r.RelatedIdentifiers {
		if rel.RelationType == relationType {
			result = append(result, rel)
		}
	}
	return result
}
