package hub

import (
	"regexp"
	"strings"
)

// Date types from the DataCite vocabulary.
const (
	DateAccepted    = "Accepted"
	DateAvailable   = "Available"
	DateCopyrighted = "Copyrighted"
	DateCollected   = "Collected"
	DateCreated     = "Created"
	DateIssued      = "Issued"
	DateSubmitted   = "Submitted"
	DateUpdated     = "Updated"
	DateValid       = "Valid"
	DateWithdrawn   = "Withdrawn"
	DateOther       = "Other"
)

// Date is a dated event in the life of the resource.
type Date struct {
	Date            string `json:"date"`
	DateType        string `json:"dateType,omitempty"`
	DateInformation string `json:"dateInformation,omitempty"`
}

var yearRegex = regexp.MustCompile(`^\d{4}`)

// GetDate returns the first date value of the given type, or "".
func GetDate(dates []Date, dateType string) string {
	for _, d := range dates {
		if d.DateType == dateType {
			return d.Date
		}
	}
	return ""
}

// PublicationYear derives a four-digit year from Issued, Available or Created,
// in that order.
func PublicationYear(dates []Date) string {
	for _, dt := range []string{DateIssued, DateAvailable, DateCreated} {
		if y := yearRegex.FindString(GetDate(dates, dt)); y != "" {
			return y
		}
	}
	return ""
}

// NormalizeDates trims values, drops empty dates and keeps order and dateInformation.
func NormalizeDates(dates []Date) []Date {
	var result []Date
	for _, d := range dates {
		d.Date = strings.TrimSpace(d.Date)
		d.DateType = strings.TrimSpace(d.DateType)
		d.DateInformation = strings.TrimSpace(d.DateInformation)
		if d.Date == "" {
			continue
		}
		result = append(result, d)
	}
	return result
}

// AddDate appends a date when value is not empty and the same date/type pair is absent.
func (r *Record) AddDate(value, dateType string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	for _, d := range r.Dates {
		if d.Date == value && d.DateType == dateType {
			return
		}
	}
	r.Dates = append(r.Dates, Date{Date: value, DateType: dateType})
}
