package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/satheeshds/invoice-viewer/logger"
)

// DefaultDelay is how long the stub pretends the processor takes.
const DefaultDelay = 2 * time.Second

// Stub simulates a payment processor that approves every payment after a
// fixed delay.
type Stub struct {
	delay   time.Duration
	decline func(invoiceID string, kind Kind) bool
	now     func() time.Time
	log     zerolog.Logger
}

// StubOption configures a Stub.
type StubOption func(*Stub)

// WithDecline makes the stub decline payments for which fn returns true.
func WithDecline(fn func(invoiceID string, kind Kind) bool) StubOption {
	return func(s *Stub) { s.decline = fn }
}

// WithClock overrides the receipt timestamp source.
func WithClock(now func() time.Time) StubOption {
	return func(s *Stub) { s.now = now }
}

// WithLogger sets the stub's logger.
func WithLogger(l zerolog.Logger) StubOption {
	return func(s *Stub) { s.log = l }
}

// NewStub returns a stub that settles after delay.
func NewStub(delay time.Duration, opts ...StubOption) *Stub {
	s := &Stub{
		delay: delay,
		now:   time.Now,
		log:   logger.WithComponent("payment"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Stub) InitiatePayment(ctx context.Context, amount, tip decimal.Decimal, invoiceID string, kind Kind) (*Receipt, error) {
	if amount.IsNegative() || tip.IsNegative() {
		return nil, fmt.Errorf("%w: negative amount", ErrPaymentFailed)
	}

	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, ctx.Err())
	case <-timer.C:
	}

	if s.decline != nil && s.decline(invoiceID, kind) {
		s.log.Warn().Str("invoice_id", invoiceID).Str("kind", string(kind)).Msg("payment declined")
		return nil, fmt.Errorf("%w: declined by processor", ErrPaymentFailed)
	}

	r := &Receipt{
		InvoiceID:     invoiceID,
		Kind:          kind,
		Amount:        amount,
		Tip:           tip,
		Total:         amount.Add(tip),
		TransactionID: "sim_" + uuid.NewString(),
		ProcessedAt:   s.now().UTC(),
	}
	s.log.Info().
		Str("invoice_id", invoiceID).
		Str("kind", string(kind)).
		Str("total", r.Total.StringFixed(2)).
		Str("transaction_id", r.TransactionID).
		Msg("simulated payment approved")
	return r, nil
}
