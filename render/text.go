package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/satheeshds/invoice-viewer/models"
)

// Text writes a plain-text rendition of page for terminals.
func Text(w io.Writer, page InvoicePage) error {
	inv := page.Invoice
	ev := inv.EventDetails

	var b strings.Builder
	if page.Alert != nil {
		fmt.Fprintf(&b, "[%s] %s\n\n", cases.Upper(language.AmericanEnglish).String(string(page.Alert.Kind)), page.Alert.Message)
	}
	if page.View.IsPostEvent {
		b.WriteString("!! Payment Required: this event has concluded. Full payment is now required.\n\n")
	}
	fmt.Fprintf(&b, "Invoice #%s\n%s\n", inv.InvoiceNumber, inv.ClientName)
	fmt.Fprintf(&b, "Deposit Due: %s\nBalance Due: %s\n\n", inv.PaymentTerms.DepositDueLabel, inv.PaymentTerms.BalanceDueLabel)
	fmt.Fprintf(&b, "%s for %s\n%s - %s\n", ev.Type, ev.SubjectName, ev.TimeRange.Start.Display(), ev.TimeRange.End.Display())
	if ev.Venue.Name != "" {
		fmt.Fprintf(&b, "%s\n", ev.Venue.Name)
	}
	fmt.Fprintf(&b, "%s\n", ev.Venue.Address.Line1)
	if ev.Venue.Address.Line2 != nil {
		fmt.Fprintf(&b, "%s\n", *ev.Venue.Address.Line2)
	}
	fmt.Fprintf(&b, "%s, %s %s\n", ev.Venue.Address.City, ev.Venue.Address.State, ev.Venue.Address.ZipCode)
	if ev.FreeTextDetails != "" {
		fmt.Fprintf(&b, "%s\n", ev.FreeTextDetails)
	}
	b.WriteString("\n")

	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DESCRIPTION\tQTY\tPRICE\tTOTAL")
	for _, item := range inv.LineItems {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", item.Description, item.Quantity,
			models.FormatCurrency(item.UnitPrice), models.FormatCurrency(item.Total()))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	b.WriteString("\n")
	if inv.Subtotal != nil {
		fmt.Fprintf(&b, "Subtotal: %s\n", models.FormatCurrency(*inv.Subtotal))
	}
	if inv.Tax != nil {
		fmt.Fprintf(&b, "Tax: %s\n", models.FormatCurrency(*inv.Tax))
	}
	fmt.Fprintf(&b, "Total: %s\n", models.FormatCurrency(inv.TotalAmount))
	if inv.Memo != "" {
		fmt.Fprintf(&b, "\n%s\n", inv.Memo)
	}

	b.WriteString("\nPayment options:\n")
	for _, opt := range page.Options {
		fmt.Fprintf(&b, "  %s (%s)", opt.Label, models.FormatCurrency(opt.Amount))
		if opt.TipAllowed {
			b.WriteString("  [tip optional]")
		}
		b.WriteString("\n")
	}

	if len(inv.PaymentHistory) > 0 {
		b.WriteString("\nPayment history:\n")
		for _, p := range inv.PaymentHistory {
			fmt.Fprintf(&b, "  %s  %-12s %s\n", p.Date, p.Kind, models.FormatCurrency(p.Amount))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
