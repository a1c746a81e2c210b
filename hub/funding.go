package hub

import (
	"strings"
)

// FundingReference credits a funder and optionally a specific award.
type FundingReference struct {
	FunderName           string `json:"funderName,omitempty"`
	FunderIdentifier     string `json:"funderIdentifier,omitempty"`
	FunderIdentifierType string `json:"funderIdentifierType,omitempty"`
	AwardNumber          string `json:"awardNumber,omitempty"`
	AwardURI             string `json:"awardUri,omitempty"`
	AwardTitle           string `json:"awardTitle,omitempty"`
}

const crossrefFunderPrefix = "10.13039/"

// NormalizeFundingReferences trims every value, expands bare Crossref Funder IDs
// to resolver URLs and drops references with no values at all. A reference
// carrying only funderName is kept.
func NormalizeFundingReferences(refs []FundingReference) []FundingReference {
	var result []FundingReference
	for _, f := range refs {
		f.FunderName = strings.TrimSpace(f.FunderName)
		f.FunderIdentifier = strings.TrimSpace(f.FunderIdentifier)
		f.FunderIdentifierType = strings.TrimSpace(f.FunderIdentifierType)
		f.AwardNumber = strings.TrimSpace(f.AwardNumber)
		f.AwardURI = strings.TrimSpace(f.AwardURI)
		f.AwardTitle = strings.TrimSpace(f.AwardTitle)

		if f.FunderIdentifier != "" {
			f.FunderIdentifier, f.FunderIdentifierType = normalizeFunderIdentifier(f.FunderIdentifier, f.FunderIdentifierType)
		}

		if f == (FundingReference{}) {
			continue
		}
		result = append(result, f)
	}
	return result
}

func normalizeFunderIdentifier(id, idType string) (string, string) {
	lower := strings.ToLower(id)
	bare := lower
	for _, p := range []string{"https://doi.org/", "http://doi.org/", "http://dx.doi.org/", "https://dx.doi.org/", "doi:"} {
		bare = strings.TrimPrefix(bare, p)
	}
	if strings.HasPrefix(bare, crossrefFunderPrefix) {
		return "https://doi.org/" + bare, "Crossref Funder ID"
	}
	if idType == "" {
		switch {
		case strings.Contains(lower, "ror.org/"):
			idType = "ROR"
		case strings.Contains(lower, "isni.org/"):
			idType = "ISNI"
		case strings.Contains(lower, "grid.ac/"):
			idType = "GRID"
		default:
			idType = "Other"
		}
	}
	return id, idType
}
