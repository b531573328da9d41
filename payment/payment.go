// Package payment is the boundary between the invoice viewer and a payment
// processor.
package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/satheeshds/invoice-viewer/billing"
	"github.com/satheeshds/invoice-viewer/models"
)

// ErrPaymentFailed is returned when the processor rejects a payment.
var ErrPaymentFailed = errors.New("payment failed")

// Kind is the payment action being paid for.
type Kind = billing.Action

// Receipt describes a successful payment.
type Receipt struct {
	InvoiceID     string          `json:"invoiceId"`
	Kind          Kind            `json:"kind"`
	Amount        decimal.Decimal `json:"amount"`
	Tip           decimal.Decimal `json:"tip"`
	Total         decimal.Decimal `json:"total"`
	TransactionID string          `json:"transactionId"`
	ProcessedAt   time.Time       `json:"processedAt"`
}

// Message is the confirmation shown to the payer.
func (r *Receipt) Message() string {
	if r.Tip.IsPositive() {
		return fmt.Sprintf("Payment of %s (including %s tip) processed successfully!",
			models.FormatCurrency(r.Total), models.FormatCurrency(r.Tip))
	}
	return fmt.Sprintf("Payment of %s processed successfully!", models.FormatCurrency(r.Total))
}

// Initiator hands a payment to a processor. InitiatePayment blocks until
// the processor settles the payment or ctx is done. It returns an error
// wrapping ErrPaymentFailed when the payment is declined.
type Initiator interface {
	InitiatePayment(ctx context.Context, amount, tip decimal.Decimal, invoiceID string, kind Kind) (*Receipt, error)
}

// FailureMessage is what payers see when a payment does not go through.
const FailureMessage = "Payment failed. Please try again."
