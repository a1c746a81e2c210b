package main

import (
	"github.com/lehigh-university-libraries/bolognese/cmd"

	// Register format plugins
	_ "github.com/lehigh-university-libraries/bolognese/format/bibtex"
	_ "github.com/lehigh-university-libraries/bolognese/format/citeproc"
	_ "github.com/lehigh-university-libraries/bolognese/format/codemeta"
	_ "github.com/lehigh-university-libraries/bolognese/format/crossref"
	_ "github.com/lehigh-university-libraries/bolognese/format/datacite"
	_ "github.com/lehigh-university-libraries/bolognese/format/ris"
	_ "github.com/lehigh-university-libraries/bolognese/format/schemaorg"
)

func main() {
	cmd.Execute()
}
