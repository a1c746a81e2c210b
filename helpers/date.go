// Package helpers normalizes the free-form values metadata documents carry:
// personal and organizational names, dates and marked-up text.
package helpers

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// DateParts is a date of year, month or day precision. Zero fields are unknown.
type DateParts struct {
	Year  int
	Month int
	Day   int
}

var (
	// ISO 8601 date, optionally followed by a time: 2014-03-12T10:00:00Z
	isoDateRegex = regexp.MustCompile(`^(\d{4})(?:-(\d{1,2})(?:-(\d{1,2}))?)?(?:T.*| \d{1,2}:\d{2}.*)?$`)

	// RIS PY/DA: 2014/03/12/ or 2014///
	risDateRegex = regexp.MustCompile(`^(\d{4})/(\d{0,2})/(\d{0,2})(?:/.*)?$`)

	tokenSplitRegex = regexp.MustCompile(`[^\p{L}\p{N}]+`)
)

var monthNames = []string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}

// ParseDate reads a date in any of the spellings metadata documents use: ISO 8601
// (with or without time), RIS "YYYY/MM/DD/", an "a/b" range (the start is
// used), English month names ("March 2014", "12 jan 2014") and bare years.
// Unparseable input yields zero DateParts.
func ParseDate(s string) DateParts {
	s = strings.TrimSpace(s)
	if s == "" {
		return DateParts{}
	}

	if m := isoDateRegex.FindStringSubmatch(s); m != nil {
		return validParts(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}
	if m := risDateRegex.FindStringSubmatch(s); m != nil {
		return validParts(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}
	if start, _, ok := strings.Cut(s, "/"); ok {
		return ParseDate(start)
	}
	return parseTextDate(s)
}

func parseTextDate(s string) DateParts {
	var year, month, day int
	for _, tok := range tokenSplitRegex.Split(strings.ToLower(s), -1) {
		switch {
		case tok == "":
		case isDigits(tok) && len(tok) == 4 && year == 0:
			year = atoi(tok)
		case isDigits(tok) && len(tok) <= 2 && day == 0:
			day = atoi(tok)
		case len(tok) >= 3 && month == 0:
			month = monthIndex(tok)
		}
	}
	if month == 0 {
		day = 0
	}
	return validParts(year, month, day)
}

func monthIndex(tok string) int {
	for i, name := range monthNames {
		if strings.HasPrefix(tok, name) {
			return i + 1
		}
	}
	return 0
}

func validParts(year, month, day int) DateParts {
	if year == 0 {
		return DateParts{}
	}
	if month < 1 || month > 12 {
		return DateParts{Year: year}
	}
	if day < 1 || day > 31 {
		day = 0
	}
	return DateParts{Year: year, Month: month, Day: day}
}

// IsZero reports whether no year is known.
func (d DateParts) IsZero() bool {
	return d.Year == 0
}

// ISO8601 returns "2014", "2014-03" or "2014-03-12", or "" when the year is unknown.
func (d DateParts) ISO8601() string {
	switch {
	case d.Year == 0:
		return ""
	case d.Month == 0:
		return fmt.Sprintf("%04d", d.Year)
	case d.Day == 0:
		return fmt.Sprintf("%04d-%02d", d.Year, d.Month)
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Slice returns the citeproc date-parts form, [2014 3 12], truncated to the
// known precision.
func (d DateParts) Slice() []int {
	switch {
	case d.Year == 0:
		return nil
	case d.Month == 0:
		return []int{d.Year}
	case d.Day == 0:
		return []int{d.Year, d.Month}
	}
	return []int{d.Year, d.Month, d.Day}
}

// RIS returns the RIS "YYYY/MM/DD/" form with unknown parts left empty.
func (d DateParts) RIS() string {
	if d.Year == 0 {
		return ""
	}
	var month, day string
	if d.Month > 0 {
		month = fmt.Sprintf("%02d", d.Month)
	}
	if d.Day > 0 {
		day = fmt.Sprintf("%02d", d.Day)
	}
	return fmt.Sprintf("%04d/%s/%s/", d.Year, month, day)
}

// MonthAbbrev returns the three-letter BibTeX month ("mar"), or "".
func (d DateParts) MonthAbbrev() string {
	if d.Month < 1 || d.Month > 12 {
		return ""
	}
	return monthNames[d.Month-1]
}

// YearOf returns the four-digit year of a date string, or "".
func YearOf(s string) string {
	d := ParseDate(s)
	if d.Year == 0 {
		return ""
	}
	return fmt.Sprintf("%04d", d.Year)
}

// DateFromParts builds an ISO 8601 date from citeproc or BibTeX parts. Each
// part may be an int, a float64 (decoded JSON) or a string; a string month may
// be a month name.
func DateFromParts(year, month, day any) string {
	return validParts(partInt(year, false), partInt(month, true), partInt(day, false)).ISO8601()
}

func partInt(v any, month bool) int {
	switch x := v.(type) {
	case int:
		return x
	case int64:
		return int(x)
	case float64:
		return int(x)
	case string:
		x = strings.TrimSpace(x)
		if n, err := strconv.Atoi(x); err == nil {
			return n
		}
		if month {
			return monthIndex(strings.ToLower(x))
		}
	}
	return 0
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
