package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/bolognese/config"
	"github.com/lehigh-university-libraries/bolognese/format"
	"github.com/lehigh-university-libraries/bolognese/hub"
	"github.com/lehigh-university-libraries/bolognese/metadata"
)

var (
	convertOutput string
	convertDOI    string
	convertState  string
)

var convertCmd = &cobra.Command{
	Use:   "convert [input]",
	Short: "Convert metadata between formats",
	Long: `Convert scholarly metadata from one format to another.

The input is a file path, a DOI or DOI URL, or "-" for stdin (the default).
The input format is detected unless --from is given; fetched DOIs are read
as DataCite XML.

Examples:
  bolognese convert 10.5061/dryad.8515 --to citeproc
  bolognese convert https://handle.test.datacite.org/10.5072/example --sandbox
  bolognese convert record.xml --to bibtex -o record.bib
  cat record.bib | bolognese convert --from bibtex --to datacite --doi 10.5072/abc`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringP("from", "f", "", "Input format (default: detected)")
	convertCmd.Flags().StringP("to", "t", "", "Output format (default: schemaorg)")
	convertCmd.Flags().Bool("sandbox", false, "Resolve DOIs against the DataCite test environment")
	convertCmd.Flags().StringVar(&convertDOI, "doi", "", "Override the DOI of the input")
	convertCmd.Flags().StringVar(&convertState, "state", "", "Declare the record state (draft, registered, findable)")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Output file (default: stdout)")
}

func runConvert(cmd *cobra.Command, args []string) (err error) {
	input, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	cfg := config.Decode(settings)

	opts := []metadata.Option{
		metadata.WithFrom(cfg.From),
		metadata.WithDOI(convertDOI),
		metadata.WithSandbox(cfg.Sandbox),
		metadata.WithFetcher(newClient(settings)),
	}
	if convertState != "" {
		state := hub.ParseState(convertState)
		if state == "" {
			return fmt.Errorf("unknown state %q", convertState)
		}
		opts = append(opts, metadata.WithState(state))
	}

	items, err := metadata.Parse(cmd.Context(), input, opts...)
	if err != nil {
		return err
	}
	for _, m := range items {
		if !m.Valid() {
			slog.Warn("input does not validate", "doi", m.DOI(), "state", m.State(), "errors", m.Errors())
		}
	}

	out, err := metadata.Write(cfg.To, items...)
	if errors.Is(err, format.ErrUnrepresentable) {
		return fmt.Errorf("%s cannot represent this record: %w", cfg.To, err)
	}
	if err != nil {
		return err
	}
	slog.Debug("converted", "from", items[0].From(), "to", cfg.To, "records", len(items))

	var output io.Writer = cmd.OutOrStdout()
	if convertOutput != "" {
		f, err := os.Create(convertOutput)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing output file: %w", cerr)
			}
		}()
		output = f
	}

	_, err = output.Write(out)
	return err
}
