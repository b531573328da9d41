package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PaymentKind classifies an entry in an invoice's payment history.
type PaymentKind string

const (
	PaymentDeposit PaymentKind = "Deposit"
	PaymentFull    PaymentKind = "Full Payment"
	PaymentTip     PaymentKind = "Tip"
)

// Valid reports whether k is one of the known payment kinds.
func (k PaymentKind) Valid() bool {
	switch k {
	case PaymentDeposit, PaymentFull, PaymentTip:
		return true
	}
	return false
}

// Invoice is the externally supplied invoice document. It is read-only
// once loaded and replaced as a whole on reload.
type Invoice struct {
	InvoiceNumber  string           `json:"invoiceNumber"`
	ClientName     string           `json:"clientName"`
	EventDetails   EventDetails     `json:"eventDetails"`
	LineItems      []LineItem       `json:"lineItems"`
	Subtotal       *decimal.Decimal `json:"subtotal,omitempty"`
	Tax            *decimal.Decimal `json:"tax,omitempty"`
	TotalAmount    decimal.Decimal  `json:"totalAmount"`
	PaymentHistory []Payment        `json:"paymentHistory,omitempty"`
	Memo           string           `json:"memo"`
	PaymentTerms   PaymentTerms     `json:"paymentTerms"`
}

// EventDetails describes the billable event.
type EventDetails struct {
	Type            string    `json:"type"`
	SubjectName     string    `json:"childName"`
	TimeRange       TimeRange `json:"dateTime"`
	Venue           Venue     `json:"venue"`
	FreeTextDetails string    `json:"details"`
}

// TimeRange is the event's start and end. Start must not be after End.
type TimeRange struct {
	Start Timestamp `json:"start"`
	End   Timestamp `json:"end"`
}

type Venue struct {
	Name    string  `json:"name"`
	Address Address `json:"address"`
}

type Address struct {
	Line1   string  `json:"line1"`
	Line2   *string `json:"line2,omitempty"`
	City    string  `json:"city"`
	State   string  `json:"state"`
	ZipCode string  `json:"zipCode"`
}

// LineItem is a single billed row; its total is Quantity × UnitPrice.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"price"`
}

// Total returns the line total.
func (l LineItem) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// PaymentTerms holds the display labels and the configured deposit share.
type PaymentTerms struct {
	DepositDueLabel string `json:"depositDue"`
	BalanceDueLabel string `json:"balanceDue"`
	// MinimumDepositPercentage is 0-100. Absent means the default share.
	MinimumDepositPercentage decimal.NullDecimal `json:"minimumDeposit"`
}

// Payment is one append-only payment history entry.
type Payment struct {
	Date                 string          `json:"date"`
	Kind                 PaymentKind     `json:"type"`
	Amount               decimal.Decimal `json:"amount"`
	TransactionReference *string         `json:"transactionId,omitempty"`
}

// Validate performs the structural checks a document must pass before the
// derivation logic may consume it. It returns an empty string when valid.
func (i *Invoice) Validate() string {
	if i.InvoiceNumber == "" {
		return "invoiceNumber is required"
	}
	if i.TotalAmount.IsNegative() {
		return "totalAmount must be non-negative"
	}
	tr := i.EventDetails.TimeRange
	if tr.Start.IsZero() || tr.End.IsZero() {
		return "eventDetails.dateTime.start and end are required"
	}
	if tr.Start.After(tr.End.Time) {
		return "eventDetails.dateTime.start must not be after end"
	}
	for idx, item := range i.LineItems {
		if item.Quantity < 0 {
			return fmt.Sprintf("lineItems[%d].quantity must be non-negative", idx)
		}
		if item.UnitPrice.IsNegative() {
			return fmt.Sprintf("lineItems[%d].price must be non-negative", idx)
		}
	}
	if p := i.PaymentTerms.MinimumDepositPercentage; p.Valid {
		if p.Decimal.IsNegative() || p.Decimal.GreaterThan(decimal.NewFromInt(100)) {
			return "paymentTerms.minimumDeposit must be between 0 and 100"
		}
	}
	for idx, p := range i.PaymentHistory {
		if !p.Kind.Valid() {
			return fmt.Sprintf("paymentHistory[%d].type must be one of: Deposit, Full Payment, Tip", idx)
		}
		if p.Amount.IsNegative() {
			return fmt.Sprintf("paymentHistory[%d].amount must be non-negative", idx)
		}
	}
	return ""
}

// LineItemsTotal sums the line totals. The document's TotalAmount is
// trusted for billing; this is only used for display.
func (i *Invoice) LineItemsTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range i.LineItems {
		sum = sum.Add(item.Total())
	}
	return sum
}
