package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/satheeshds/invoice-viewer/billing"
	"github.com/satheeshds/invoice-viewer/models"
	"github.com/satheeshds/invoice-viewer/payment"
)

func newPayCmd(a *app) *cobra.Command {
	var (
		kind string
		tip  string
		at   string
	)

	cmd := &cobra.Command{
		Use:   "pay <invoice-id>",
		Short: "Pay the deposit or the full amount of an invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			now, err := parseAt(at)
			if err != nil {
				return err
			}
			l, err := a.newLoader(cmd.Context())
			if err != nil {
				return err
			}
			doc, err := l.Load(cmd.Context(), id)
			if err != nil {
				return notFound(id, err)
			}

			view := billing.DeriveView(doc.Invoice, now)
			opt, ok := billing.FindOption(view, billing.Action(kind))
			if !ok {
				return fmt.Errorf("payment option %q is not available for invoice %q", kind, id)
			}
			requested := billing.ClampTip(tip)
			applied := billing.ApplyTip(opt, requested)
			if requested.IsPositive() && !opt.TipAllowed {
				fmt.Fprintln(cmd.ErrOrStderr(), "Tipping is not offered for this payment; tip ignored.")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Processing %s...\n", models.FormatCurrency(billing.PayableAmount(opt, applied)))
			stub := payment.NewStub(a.cfg.PaymentDelay)
			receipt, err := stub.InitiatePayment(cmd.Context(), opt.Amount, applied, id, opt.Action)
			if err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), payment.FailureMessage)
				if errors.Is(err, payment.ErrPaymentFailed) {
					return err
				}
				return fmt.Errorf("%w: %v", payment.ErrPaymentFailed, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), receipt.Message())
			fmt.Fprintf(cmd.OutOrStdout(), "Transaction: %s\n", receipt.TransactionID)
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", string(billing.ActionFull), "what to pay: full or deposit")
	cmd.Flags().StringVar(&tip, "tip", "", "optional tip, honoured only when tipping is offered")
	cmd.Flags().StringVar(&at, "at", "", "derive the invoice as of this time instead of now")
	return cmd
}
