// Package ris provides a format plugin for RIS tagged citation records.
package ris

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/lehigh-university-libraries/bolognese/format"
)

// Format implements the RIS format.
type Format struct{}

// Ensure Format implements the interfaces
var (
	_ format.Format     = (*Format)(nil)
	_ format.Parser     = (*Format)(nil)
	_ format.Serializer = (*Format)(nil)
)

// Name returns the format identifier.
func (f *Format) Name() string {
	return "ris"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "RIS tagged citation format"
}

// Extensions returns file extensions associated with this format.
func (f *Format) Extensions() []string {
	return []string{"ris"}
}

// CanParse returns true if the first non-blank line is a TY tag.
func (f *Format) CanParse(peek []byte) bool {
	scanner := bufio.NewScanner(bytes.NewReader(bytes.TrimPrefix(peek, []byte{0xEF, 0xBB, 0xBF})))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		return strings.HasPrefix(line, "TY  -")
	}
	return false
}

func init() {
	format.Register(&Format{})
}
