package cmd

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/satheeshds/invoice-viewer/viewer"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <invoice-id>",
		Short: "Print an invoice and reprint it whenever it changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			l, err := a.newLoader(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			session := viewer.NewSession(l, a.cfg.PollInterval, viewer.WithOnChange(func(s viewer.Snapshot) {
				fmt.Fprintf(out, "\n=== %s (version %s) ===\n", time.Now().Format(time.RFC3339), s.Document.Version)
				if err := printInvoice(out, s.ID, s.Document, time.Now(), nil); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "render failed: %v\n", err)
				}
			}))
			defer session.Close()

			view := session.Navigate(ctx, args[0])
			if view.Snapshot().Status == viewer.StatusNotFound {
				fmt.Fprintf(out, "Invoice %q not found yet; waiting for it to appear.\n", args[0])
			}

			<-ctx.Done()
			return nil
		},
	}
}
