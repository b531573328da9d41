// Package render turns invoices and their derived views into pages.
package render

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/satheeshds/invoice-viewer/billing"
	"github.com/satheeshds/invoice-viewer/models"
)

// AlertKind selects the styling of a page alert.
type AlertKind string

const (
	AlertSuccess AlertKind = "success"
	AlertError   AlertKind = "error"
)

// Alert is a dismissable message shown above the invoice.
type Alert struct {
	Kind    AlertKind
	Message string
}

// InvoicePage is the deterministic input for rendering an invoice.
type InvoicePage struct {
	ID           string
	Invoice      *models.Invoice
	View         billing.View
	Options      []billing.PaymentOption
	Version      string
	PollInterval time.Duration
	Alert        *Alert
}

// NewInvoicePage assembles the page for doc as derived at now.
func NewInvoicePage(id string, inv *models.Invoice, view billing.View, version string, poll time.Duration) InvoicePage {
	return InvoicePage{
		ID:           id,
		Invoice:      inv,
		View:         view,
		Options:      billing.PaymentOptions(view),
		Version:      version,
		PollInterval: poll,
	}
}

// LandingPage lists the sample invoices.
type LandingPage struct {
	Samples []string
}

// NotFoundPage is shown for any invoice that cannot be loaded.
type NotFoundPage struct {
	ID string
}

// SampleInvoices are the example ids offered on the landing page.
var SampleInvoices = []string{
	"betty25",
	"john-birthday-2024",
	"sarah-party-inv",
}

// TipSection is the data for the tipping controls on the full-payment form.
type TipSection struct {
	Default   decimal.Decimal
	Step      decimal.Decimal
	Max       decimal.Decimal
	QuickTips []decimal.Decimal
}

func tipSection() TipSection {
	return TipSection{Default: billing.DefaultTip, Step: billing.TipStep, Max: billing.MaxTip, QuickTips: billing.QuickTips}
}
