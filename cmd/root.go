// Package cmd provides CLI commands for bolognese.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lehigh-university-libraries/bolognese/config"
	"github.com/lehigh-university-libraries/bolognese/doi"
)

var (
	configDir string
	settings  = config.New()
)

func setupLogger(logLevel string) {
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		logLevel = env
	}

	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN", "WARNING":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

var rootCmd = &cobra.Command{
	Use:   "bolognese",
	Short: "Convert scholarly metadata between formats",
	Long: `Bolognese reads and writes scholarly metadata in DataCite XML, Crossref XML,
schema.org JSON-LD, Codemeta, Citeproc JSON, BibTeX and RIS.

Input is a file, literal content on stdin, or a DOI whose DataCite
metadata is fetched.

Examples:
  bolognese convert 10.5061/dryad.8515 --to citeproc
  bolognese convert record.xml --to bibtex -o record.bib
  cat citations.ris | bolognese convert --to datacite
  bolognese validate record.xml`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		v, err := config.Load(configDir)
		if err != nil {
			return err
		}
		for _, key := range []string{config.KeyFrom, config.KeyTo, config.KeySandbox} {
			if f := cmd.Flags().Lookup(key); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return fmt.Errorf("binding --%s: %w", key, err)
				}
			}
		}
		settings = v
		setupLogger(config.Decode(v).LogLevel)
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", config.DefaultDir, "Directory holding config.yaml")
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(raCmd)
	rootCmd.AddCommand(doiCmd)
	rootCmd.AddCommand(formatsCmd)
}

// newClient builds the DOI client from the loaded settings.
func newClient(v *viper.Viper) *doi.Client {
	cfg := config.Decode(v)
	return doi.NewClient(
		doi.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		doi.WithRateLimit(cfg.RateLimit),
		doi.WithUserAgent(cfg.UserAgent),
	)
}

// readInput returns the argument, or stdin when there is none or it is "-".
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 && args[0] != "-" {
		return args[0], nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("no input given")
	}
	return string(data), nil
}
