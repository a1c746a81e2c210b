package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/bolognese/config"
	"github.com/lehigh-university-libraries/bolognese/metadata"
)

var validateCmd = &cobra.Command{
	Use:   "validate [input]",
	Short: "Validate metadata without converting",
	Long: `Validate metadata against the schema of its format.

DataCite XML is checked against the XSD of its kernel version; JSON formats
are checked for well-formedness. Each error is printed on its own line and
the command fails when any record is invalid.

Examples:
  bolognese validate record.xml
  bolognese validate 10.5061/dryad.8515
  cat record.json | bolognese validate --from schemaorg`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringP("from", "f", "", "Input format (default: detected)")
	validateCmd.Flags().Bool("sandbox", false, "Resolve DOIs against the DataCite test environment")
}

func runValidate(cmd *cobra.Command, args []string) error {
	input, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	cfg := config.Decode(settings)

	items, err := metadata.Parse(cmd.Context(), input,
		metadata.WithFrom(cfg.From),
		metadata.WithSandbox(cfg.Sandbox),
		metadata.WithFetcher(newClient(settings)),
	)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	invalid := 0
	for i, m := range items {
		label := m.DOI()
		if label == "" {
			label = fmt.Sprintf("record %d", i+1)
		}
		if m.Valid() {
			fmt.Fprintf(out, "✓ %s (%s, %s)\n", label, m.From(), m.State())
			continue
		}
		invalid++
		fmt.Fprintf(out, "✗ %s (%s, %s)\n", label, m.From(), m.State())
		for _, e := range m.Errors() {
			fmt.Fprintf(out, "  %s\n", e)
		}
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d records invalid", invalid, len(items))
	}
	return nil
}
