// Package billing derives everything the invoice page shows from an invoice
// document and the current time. Every function here is pure.
package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/satheeshds/invoice-viewer/models"
)

// DefaultDepositPercentage applies when an invoice does not configure one.
const DefaultDepositPercentage = 50

// TippingLeadTime is how long before the event starts tipping opens up.
const TippingLeadTime = 24 * time.Hour

var hundred = decimal.NewFromInt(100)

// Status summarises how much of an invoice has been paid.
type Status string

const (
	StatusUnpaid      Status = "unpaid"
	StatusDepositPaid Status = "deposit-paid"
	StatusPaid        Status = "paid"
)

// View holds the values derived from a document at a point in time.
type View struct {
	DepositPercentage  decimal.Decimal `json:"depositPercentage"`
	DepositAmount      decimal.Decimal `json:"depositAmount"`
	BalanceAmount      decimal.Decimal `json:"balanceAmount"`
	IsPostEvent        bool            `json:"isPostEvent"`
	HasDepositBeenPaid bool            `json:"hasDepositBeenPaid"`
	ShouldOfferTipping bool            `json:"shouldOfferTipping"`
	PaidAmount         decimal.Decimal `json:"paidAmount"`
	AmountDue          decimal.Decimal `json:"amountDue"`
	Status             Status          `json:"status"`
}

// DeriveView computes the derived view of doc at now.
func DeriveView(doc *models.Invoice, now time.Time) View {
	pct := DepositPercentage(doc)
	total := models.RoundCents(doc.TotalAmount)
	paid := PaidAmount(doc.PaymentHistory)
	depositPaid := HasDepositBeenPaid(doc.PaymentHistory)

	due := total.Sub(paid)
	if due.IsNegative() {
		due = decimal.Zero
	}

	status := StatusUnpaid
	switch {
	case !paid.IsZero() && due.IsZero():
		status = StatusPaid
	case depositPaid:
		status = StatusDepositPaid
	}

	return View{
		DepositPercentage:  pct,
		DepositAmount:      CalculateDepositAmount(total, pct),
		BalanceAmount:      CalculateBalance(total, pct),
		IsPostEvent:        IsAfterEventDate(doc.EventDetails.TimeRange.End.Time, now),
		HasDepositBeenPaid: depositPaid,
		ShouldOfferTipping: ShouldOfferTipping(doc, now),
		PaidAmount:         paid,
		AmountDue:          due,
		Status:             status,
	}
}

// DepositPercentage returns the invoice's configured deposit share, or the
// default when none is set.
func DepositPercentage(doc *models.Invoice) decimal.Decimal {
	if p := doc.PaymentTerms.MinimumDepositPercentage; p.Valid {
		return p.Decimal
	}
	return decimal.NewFromInt(DefaultDepositPercentage)
}

// CalculateDepositAmount returns percentage% of total rounded to cents,
// half away from zero. total must be non-negative and percentage in [0, 100].
func CalculateDepositAmount(total, percentage decimal.Decimal) decimal.Decimal {
	return models.RoundCents(total.Mul(percentage).Div(hundred))
}

// CalculateBalance returns what remains of total after the deposit.
// Deposit plus balance always equals total when total is in whole cents.
func CalculateBalance(total, percentage decimal.Decimal) decimal.Decimal {
	return total.Sub(CalculateDepositAmount(total, percentage))
}

// IsAfterEventDate reports whether now is strictly after end.
func IsAfterEventDate(end, now time.Time) bool {
	return now.After(end)
}

// HasDepositBeenPaid reports whether history records a deposit.
func HasDepositBeenPaid(history []models.Payment) bool {
	for _, p := range history {
		if p.Kind == models.PaymentDeposit {
			return true
		}
	}
	return false
}

// PaidAmount sums deposits and full payments. Tips do not count toward
// the invoice total.
func PaidAmount(history []models.Payment) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range history {
		if p.Kind == models.PaymentDeposit || p.Kind == models.PaymentFull {
			sum = sum.Add(p.Amount)
		}
	}
	return sum
}

// ShouldOfferTipping reports whether the tipping section is available:
// once a deposit is paid, once the event is over, or from 24 hours before
// the event starts.
func ShouldOfferTipping(doc *models.Invoice, now time.Time) bool {
	if HasDepositBeenPaid(doc.PaymentHistory) {
		return true
	}
	tr := doc.EventDetails.TimeRange
	if IsAfterEventDate(tr.End.Time, now) {
		return true
	}
	return !now.Before(tr.Start.Add(-TippingLeadTime))
}
