package billing

import (
	"github.com/shopspring/decimal"

	"github.com/satheeshds/invoice-viewer/models"
)

// Action identifies one of the payment actions offered on an invoice.
type Action string

const (
	ActionDeposit Action = "deposit"
	ActionFull    Action = "full"
)

// Tip defaults used by the tipping section.
var (
	DefaultTip = decimal.NewFromInt(25)
	TipStep    = decimal.NewFromInt(5)
	MaxTip     = decimal.NewFromInt(10000)
	QuickTips  = []decimal.Decimal{
		decimal.NewFromInt(15), decimal.NewFromInt(20), decimal.NewFromInt(25), decimal.NewFromInt(30),
		decimal.NewFromInt(40), decimal.NewFromInt(50), decimal.NewFromInt(75), decimal.NewFromInt(100),
	}
)

// PaymentOption is one payment action the viewer offers.
type PaymentOption struct {
	Action     Action          `json:"action"`
	Label      string          `json:"label"`
	Amount     decimal.Decimal `json:"amount"`
	TipAllowed bool            `json:"tipAllowed"`
}

// PaymentOptions lists the actions for an invoice in display order. The
// full-amount action is always offered and is the only one that may carry
// a tip. The deposit action disappears once a deposit is recorded.
func PaymentOptions(v View) []PaymentOption {
	opts := []PaymentOption{{
		Action:     ActionFull,
		Label:      "Pay Full Amount",
		Amount:     v.AmountDue,
		TipAllowed: v.ShouldOfferTipping,
	}}
	if !v.HasDepositBeenPaid {
		opts = append(opts, PaymentOption{
			Action: ActionDeposit,
			Label:  "Pay Deposit",
			Amount: v.DepositAmount,
		})
	}
	return opts
}

// FindOption returns the offered option for action, if any.
func FindOption(v View, action Action) (PaymentOption, bool) {
	for _, opt := range PaymentOptions(v) {
		if opt.Action == action {
			return opt, true
		}
	}
	return PaymentOption{}, false
}

// ClampTip turns user input into a tip amount. Non-numeric and negative
// input become zero and anything above MaxTip becomes MaxTip.
func ClampTip(input string) decimal.Decimal {
	if input == "" {
		return decimal.Zero
	}
	d, err := models.ParseCurrency(input)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return decimal.Min(d, MaxTip)
}

// IncrementTip raises tip by one step, never above MaxTip.
func IncrementTip(tip decimal.Decimal) decimal.Decimal {
	return decimal.Min(tip.Add(TipStep), MaxTip)
}

// DecrementTip lowers tip by one step, never below zero.
func DecrementTip(tip decimal.Decimal) decimal.Decimal {
	next := tip.Sub(TipStep)
	if next.IsNegative() {
		return decimal.Zero
	}
	return next
}

// ApplyTip returns the tip that actually applies to opt. Options that do
// not allow tipping always get zero.
func ApplyTip(opt PaymentOption, tip decimal.Decimal) decimal.Decimal {
	if !opt.TipAllowed || tip.IsNegative() {
		return decimal.Zero
	}
	return models.RoundCents(decimal.Min(tip, MaxTip))
}

// PayableAmount is the base amount of opt plus any applicable tip.
func PayableAmount(opt PaymentOption, tip decimal.Decimal) decimal.Decimal {
	return opt.Amount.Add(ApplyTip(opt, tip))
}
