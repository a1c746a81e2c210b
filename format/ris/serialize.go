package ris

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/lehigh-university-libraries/bolognese/format"
	"github.com/lehigh-university-libraries/bolognese/helpers"
	"github.com/lehigh-university-libraries/bolognese/hub"
	"github.com/lehigh-university-libraries/bolognese/vocab"
)

// Serialize writes each record as a TY … ER block. Blocks are separated by a
// blank line and lines end in CRLF.
func (f *Format) Serialize(w io.Writer, records []*hub.Record, opts *format.SerializeOptions) error {
	_ = opts.OrDefault()

	bw := bufio.NewWriter(w)
	for i, record := range records {
		if i > 0 {
			bw.WriteString("\r\n")
		}
		for _, line := range lines(record) {
			fmt.Fprintf(bw, "%s  - %s\r\n", line[0], line[1])
		}
	}
	return bw.Flush()
}

// lines returns the tag/value pairs of one record in output order.
func lines(record *hub.Record) [][2]string {
	var out [][2]string
	add := func(tag, value string) {
		if value = strings.TrimSpace(value); value != "" {
			out = append(out, [2]string{tag, value})
		}
	}

	ty := record.Types.Ris
	if ty == "" {
		ty = vocab.FallbackRis
	}
	add("TY", ty)
	add("T1", record.MainTitle())

	c := record.Container
	if c == nil {
		c = &hub.Container{}
	}
	add("T2", c.Title)

	for _, n := range record.Creators {
		add("AU", n.DisplayName())
	}
	add("DO", record.DOI)
	add("UR", record.URL)
	add("AB", record.Abstract())
	for _, kw := range record.SubjectStrings() {
		add("KW", kw)
	}

	issued := helpers.ParseDate(hub.GetDate(record.Dates, hub.DateIssued))
	if issued.IsZero() {
		add("PY", record.PublicationYear)
	} else {
		add("PY", fmt.Sprintf("%04d", issued.Year))
	}
	if issued.Month > 0 {
		add("DA", issued.RIS())
	}
	add("PB", record.Publisher)
	add("LA", record.Language)
	if c.IdentifierType == "ISSN" || c.IdentifierType == "ISBN" {
		add("SN", c.Identifier)
	}
	add("VL", c.Volume)
	add("IS", c.Issue)
	add("SP", c.FirstPage)
	add("EP", c.LastPage)

	out = append(out, [2]string{"ER", ""})
	return out
}
