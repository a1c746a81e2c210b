package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/bolognese/format"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported formats",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Available formats:")
		for _, name := range format.List() {
			f, _ := format.Get(name)

			var modes []string
			if _, ok := f.(format.Parser); ok {
				modes = append(modes, "read")
			}
			if _, ok := f.(format.Serializer); ok {
				modes = append(modes, "write")
			}
			if _, ok := f.(format.Validator); ok {
				modes = append(modes, "validate")
			}
			fmt.Fprintf(out, "  %-10s %-22s %s\n", name, strings.Join(modes, ","), f.Description())
		}
		return nil
	},
}
