package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/satheeshds/invoice-viewer/billing"
	"github.com/satheeshds/invoice-viewer/loader"
	"github.com/satheeshds/invoice-viewer/models"
	"github.com/satheeshds/invoice-viewer/render"
)

func newShowCmd(a *app) *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "show <invoice-id>",
		Short: "Print an invoice with its payment options",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now, err := parseAt(at)
			if err != nil {
				return err
			}
			l, err := a.newLoader(cmd.Context())
			if err != nil {
				return err
			}
			doc, err := l.Load(cmd.Context(), args[0])
			if err != nil {
				return notFound(args[0], err)
			}
			return printInvoice(cmd.OutOrStdout(), args[0], doc, now, nil)
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "derive the invoice as of this time instead of now")
	return cmd
}

// parseAt returns the evaluation time for --at, defaulting to now.
func parseAt(at string) (time.Time, error) {
	if at == "" {
		return time.Now(), nil
	}
	ts, err := models.ParseTimestamp(at)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --at: %w", err)
	}
	return ts.Time, nil
}

func printInvoice(w io.Writer, id string, doc *loader.Document, now time.Time, alert *render.Alert) error {
	view := billing.DeriveView(doc.Invoice, now)
	page := render.NewInvoicePage(id, doc.Invoice, view, doc.Version.String(), 0)
	page.Alert = alert
	return render.Text(w, page)
}

func notFound(id string, err error) error {
	return fmt.Errorf("invoice %q could not be found or loaded: %w", id, err)
}
