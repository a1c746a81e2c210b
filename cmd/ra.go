package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/bolognese/doi"
)

var raCmd = &cobra.Command{
	Use:   "ra <doi>",
	Short: "Look up the registration agency of a DOI",
	Long: `Ask doi.org which registration agency (DataCite, Crossref, ...) issued
the prefix of a DOI.

Examples:
  bolognese ra 10.5061/dryad.8515
  bolognese ra https://doi.org/10.1371/journal.pone.0000030`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if doi.ValidatePrefix(args[0]) == "" {
			return fmt.Errorf("not a DOI: %s", args[0])
		}
		agency, err := newClient(settings).RegistrationAgency(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if agency == "" {
			return fmt.Errorf("no registration agency found for %s", args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), agency)
		return nil
	},
}
