package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/satheeshds/invoice-viewer/config"
	"github.com/satheeshds/invoice-viewer/loader"
	"github.com/satheeshds/invoice-viewer/logger"
)

var version = "1.0.0"

// app carries what every subcommand needs once flags are parsed.
type app struct {
	v   *viper.Viper
	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	root := &cobra.Command{
		Use:   "invoice-viewer",
		Short: "View and pay event invoices",
		Long: `invoice-viewer serves event invoices as web pages, derives their
deposit, balance and tipping state, and takes (simulated) payments.

Invoices are JSON documents read from a directory, an HTTP location or
an S3 bucket.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.v)
			if err != nil {
				return err
			}
			if err := logger.Setup(cfg.GetLoggerConfig()); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.cfg = cfg
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.String("source", config.SourceFile, "invoice source: file, http or s3")
	flags.String("dir", "", "directory holding <id>.json files (file source)")
	flags.String("base-url", "", "base URL serving /invoices/<id>.json (http source)")
	flags.String("bucket", "", "bucket holding invoices (s3 source)")
	flags.String("log-level", "", "log level: trace, debug, info, warn, error")
	for key, name := range map[string]string{
		"INVOICE_SOURCE":   "source",
		"INVOICE_DIR":      "dir",
		"INVOICE_BASE_URL": "base-url",
		"S3_BUCKET":        "bucket",
		"LOG_LEVEL":        "log-level",
	} {
		a.v.BindPFlag(key, flags.Lookup(name))
	}

	root.AddCommand(
		newServeCmd(a),
		newShowCmd(a),
		newWatchCmd(a),
		newPayCmd(a),
	)
	return root
}

// Execute runs the CLI.
func Execute() {
	log := logger.WithComponent("cmd")

	if err := newRootCmd().Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLoader builds the loader for the configured source.
func (a *app) newLoader(ctx context.Context) (*loader.Loader, error) {
	switch a.cfg.Source {
	case config.SourceHTTP:
		return loader.New(loader.NewHTTPSource(a.cfg.BaseURL, http.DefaultClient, a.cfg.HTTPTimeout)), nil
	case config.SourceS3:
		src, err := loader.NewS3Source(ctx, a.cfg.S3)
		if err != nil {
			return nil, fmt.Errorf("failed to configure s3 source: %w", err)
		}
		return loader.New(src), nil
	default:
		return loader.New(loader.NewDirSource(a.cfg.InvoiceDir)), nil
	}
}
