package hub

import (
	"fmt"
	"strings"
)

// State is the lifecycle state of a record.
type State string

const (
	StateDraft      State = "draft"
	StateRegistered State = "registered"
	StateFindable   State = "findable"
	StateNotFound   State = "not_found"
)

// ParseState returns the State named by s, or "" when s names none.
func ParseState(s string) State {
	switch State(strings.ToLower(strings.TrimSpace(s))) {
	case StateDraft:
		return StateDraft
	case StateRegistered:
		return StateRegistered
	case StateFindable:
		return StateFindable
	case StateNotFound:
		return StateNotFound
	}
	return ""
}

// ResolveState derives the lifecycle state. not_found is sticky; otherwise a
// caller override wins; otherwise valid records are findable and invalid ones draft.
func ResolveState(current State, valid bool, override State) State {
	if current == StateNotFound || override == StateNotFound {
		return StateNotFound
	}
	if override != "" {
		return override
	}
	if valid {
		return StateFindable
	}
	return StateDraft
}

// ValidationError represents a validation failure with context.
type ValidationError struct {
	Field   string // Field path (e.g., "creators")
	Code    string // Error code (e.g., "required")
	Message string // Human-readable message
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationResult contains all validation errors for a record.
type ValidationResult struct {
	Errors []ValidationError
}

// IsValid returns true if there are no errors.
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// Error returns a combined error message, or nil if valid.
func (r *ValidationResult) Error() error {
	if r.IsValid() {
		return nil
	}
	var msgs []string
	for _, e := range r.Errors {
		msgs = append(msgs, e.Error())
	}
	return fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
}

// ValidateRequired checks the fields a record needs when it was built from
// attributes rather than parsed from a document: a DOI, a creator or a title,
// a publisher and a publication year.
func ValidateRequired(r *Record) *ValidationResult {
	result := &ValidationResult{}

	if r.DOI == "" {
		result.Errors = append(result.Errors, ValidationError{
			Field: "doi", Code: "required", Message: "doi is required",
		})
	}
	if len(r.Creators) == 0 && len(r.Titles) == 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field: "creators", Code: "required", Message: "at least one creator or title is required",
		})
	}
	if strings.TrimSpace(r.Publisher) == "" {
		result.Errors = append(result.Errors, ValidationError{
			Field: "publisher", Code: "required", Message: "publisher is required",
		})
	}
	if r.PublicationYear == "" && PublicationYear(r.Dates) == "" {
		result.Errors = append(result.Errors, ValidationError{
			Field: "publicationYear", Code: "required", Message: "publication year is required",
		})
	}
	return result
}

// ValidateAttributes returns at most one descriptive error for a record built
// from attributes. The error carries no document position.
func ValidateAttributes(r *Record) []string {
	if err := ValidateRequired(r).Error(); err != nil {
		return []string{err.Error()}
	}
	return nil
}

// NotFoundError is the error recorded for a DOI the registration agency does not know.
func NotFoundError(doi string) string {
	return fmt.Sprintf("DOI %s not found", doi)
}
