package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/bolognese/config"
	"github.com/lehigh-university-libraries/bolognese/doi"
)

var doiCmd = &cobra.Command{
	Use:   "doi <input>",
	Short: "Normalize a DOI",
	Long: `Print the DOI, its resolver URL and its DataCite API URL.

Examples:
  bolognese doi doi:10.5061/DRYAD.8515
  bolognese doi 10.5072/example --sandbox`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d := doi.Validate(args[0])
		if d == "" {
			return fmt.Errorf("not a DOI: %s", args[0])
		}
		sandbox := config.Decode(settings).Sandbox

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "doi:    %s\n", d)
		fmt.Fprintf(out, "prefix: %s\n", doi.ValidatePrefix(args[0]))
		fmt.Fprintf(out, "url:    %s\n", doi.Normalize(args[0], sandbox))
		fmt.Fprintf(out, "api:    %s\n", doi.APIURL(args[0], sandbox))
		return nil
	},
}

func init() {
	doiCmd.Flags().Bool("sandbox", false, "Use the DataCite test environment")
}
