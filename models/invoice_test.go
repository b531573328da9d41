package models

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleInvoice = `{
  "invoiceNumber": "INV-7",
  "clientName": "Ada",
  "eventDetails": {
    "type": "Magic Show",
    "childName": "Betty",
    "dateTime": {"start": "2026-01-10T18:00:00Z", "end": "2026-01-10T20:00:00Z"},
    "venue": {"name": "Hall", "address": {"line1": "1 Main St", "city": "Austin", "state": "TX", "zipCode": "78701"}},
    "details": "Bring a table"
  },
  "lineItems": [
    {"description": "Show", "quantity": 1, "price": 300},
    {"description": "Balloons", "quantity": 4, "price": 50}
  ],
  "totalAmount": 500,
  "paymentHistory": [{"date": "2025-12-01", "type": "Deposit", "amount": 250, "transactionId": "pi_1"}],
  "memo": "Thanks",
  "paymentTerms": {"depositDue": "Now", "balanceDue": "Later", "minimumDeposit": 50}
}`

func decodeSample(t *testing.T, raw string) Invoice {
	t.Helper()
	var inv Invoice
	require.NoError(t, json.Unmarshal([]byte(raw), &inv))
	return inv
}

func TestInvoiceDecode(t *testing.T) {
	inv := decodeSample(t, sampleInvoice)

	assert.Equal(t, "INV-7", inv.InvoiceNumber)
	assert.Equal(t, "Betty", inv.EventDetails.SubjectName)
	assert.Equal(t, "Bring a table", inv.EventDetails.FreeTextDetails)
	assert.Equal(t, 2026, inv.EventDetails.TimeRange.Start.Year())
	require.Len(t, inv.LineItems, 2)
	assert.Equal(t, "200", inv.LineItems[1].Total().String())
	assert.Equal(t, "500", inv.LineItemsTotal().String())
	require.Len(t, inv.PaymentHistory, 1)
	assert.Equal(t, PaymentDeposit, inv.PaymentHistory[0].Kind)
	require.NotNil(t, inv.PaymentHistory[0].TransactionReference)
	assert.True(t, inv.PaymentTerms.MinimumDepositPercentage.Valid)
	assert.Equal(t, "", inv.Validate())
}

func TestInvoiceValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Invoice)
		want   string
	}{
		{"missing number", func(i *Invoice) { i.InvoiceNumber = "" }, "invoiceNumber is required"},
		{"negative total", func(i *Invoice) { i.TotalAmount = i.TotalAmount.Neg() }, "totalAmount must be non-negative"},
		{"start after end", func(i *Invoice) {
			i.EventDetails.TimeRange.Start, i.EventDetails.TimeRange.End = i.EventDetails.TimeRange.End, i.EventDetails.TimeRange.Start
		}, "eventDetails.dateTime.start must not be after end"},
		{"missing end", func(i *Invoice) { i.EventDetails.TimeRange.End = Timestamp{} }, "eventDetails.dateTime.start and end are required"},
		{"negative quantity", func(i *Invoice) { i.LineItems[0].Quantity = -1 }, "lineItems[0].quantity must be non-negative"},
		{"unknown payment kind", func(i *Invoice) { i.PaymentHistory[0].Kind = "Refund" }, "paymentHistory[0].type must be one of: Deposit, Full Payment, Tip"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := decodeSample(t, sampleInvoice)
			tt.mutate(&inv)
			assert.Equal(t, tt.want, inv.Validate())
		})
	}
}

func TestInvoiceValidate_DepositPercentageRange(t *testing.T) {
	var inv Invoice
	raw := `{"invoiceNumber":"x","totalAmount":1,"eventDetails":{"dateTime":{"start":"2026-01-01T10:00","end":"2026-01-01T11:00"}},"paymentTerms":{"minimumDeposit":150}}`
	require.NoError(t, json.Unmarshal([]byte(raw), &inv))
	assert.Equal(t, "paymentTerms.minimumDeposit must be between 0 and 100", inv.Validate())
}

func TestTimestampLayouts(t *testing.T) {
	for _, s := range []string{"2026-01-10T18:00:00Z", "2026-01-10T18:00:00-06:00", "2026-01-10T18:00:00", "2026-01-10T18:00", "2026-01-10 18:00"} {
		_, err := ParseTimestamp(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseTimestamp("next tuesday")
	assert.Error(t, err)

	var inv Invoice
	err = json.Unmarshal([]byte(`{"eventDetails":{"dateTime":{"start":12}}}`), &inv)
	assert.Error(t, err)
}

func TestBundledInvoicesAreValid(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "public", "invoices", "*.json"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, f := range files {
		raw, err := os.ReadFile(f)
		require.NoError(t, err)
		inv := decodeSample(t, string(raw))
		assert.Empty(t, inv.Validate(), f)
	}
}
