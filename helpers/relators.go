package helpers

import (
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/lehigh-university-libraries/bolognese/vocab"
)

// relatorContributorTypes maps MARC relator codes to DataCite contributorType terms.
var relatorContributorTypes = map[string]string{
	"edt": "Editor",
	"com": "Editor",
	"dtc": "DataCollector",
	"col": "DataCollector",
	"cur": "DataCurator",
	"dtm": "DataManager",
	"dst": "Distributor",
	"pbl": "Distributor",
	"his": "HostingInstitution",
	"pro": "Producer",
	"bkp": "Producer",
	"res": "Researcher",
	"spn": "Sponsor",
	"fnd": "Sponsor",
	"ths": "Supervisor",
	"dgs": "Supervisor",
	"cph": "RightsHolder",
	"own": "RightsHolder",
	"trl": "Translator",
	"ctb": "Other",
	"oth": "Other",
}

// role words used by Crossref, citeproc, RIS and codemeta
var roleAliases = map[string]string{
	"editor":           "Editor",
	"editors":          "Editor",
	"chair":            "Editor",
	"series-editor":    "Editor",
	"contributor":      "Other",
	"maintainer":       "ContactPerson",
	"contact":          "ContactPerson",
	"funder":           "Sponsor",
	"sponsor":          "Sponsor",
	"advisor":          "Supervisor",
	"thesis advisor":   "Supervisor",
	"copyrightholder":  "RightsHolder",
	"copyright holder": "RightsHolder",
}

// RelatorCodeFromURI extracts the relator code from "relators:edt" or
// "http://id.loc.gov/vocabulary/relators/edt". Anything else is returned as is.
func RelatorCodeFromURI(uri string) string {
	if strings.HasPrefix(uri, "relators:") {
		return strings.TrimPrefix(uri, "relators:")
	}
	if _, code, ok := strings.Cut(uri, "relators/"); ok {
		return strings.TrimSuffix(code, "/")
	}
	return uri
}

// ContributorType maps a role, given as a DataCite term, a MARC relator code or
// URI, or a role word such as "editor", to a DataCite contributorType. Unknown
// roles map to "Other"; an empty role stays empty.
func ContributorType(role string) string {
	role = strings.TrimSpace(role)
	if role == "" {
		return ""
	}
	if vocab.IsContributorType(role) {
		return role
	}
	if ct := strcase.ToCamel(role); vocab.IsContributorType(ct) {
		return ct
	}
	lower := strings.ToLower(role)
	if ct, ok := relatorContributorTypes[strings.ToLower(RelatorCodeFromURI(role))]; ok {
		return ct
	}
	if ct, ok := roleAliases[lower]; ok {
		return ct
	}
	return "Other"
}
