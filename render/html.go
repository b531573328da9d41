package render

import (
	"bytes"
	"html/template"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/satheeshds/invoice-viewer/models"
)

const layoutTemplate = `{{define "head"}}<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>{{.}}</title>
  <style>
    * { box-sizing: border-box; }
    body { margin: 0; padding: 32px 16px; background: #f9fafb; color: #111827;
      font-family: "Roboto Mono", ui-monospace, monospace; }
    .card { max-width: 880px; margin: 0 auto 24px; background: #fff; border-radius: 8px;
      box-shadow: 0 4px 12px rgba(0,0,0,.08); padding: 32px; }
    .narrow { max-width: 440px; text-align: center; }
    a { color: #4f46e5; }
    h1 { font-size: 24px; margin: 0 0 12px; }
    h3 { font-size: 18px; margin: 0 0 12px; }
    .muted { color: #4b5563; }
    .grid { display: grid; grid-template-columns: 1fr 1fr; gap: 32px; }
    table { width: 100%; border-collapse: collapse; margin-top: 16px; }
    th { background: #fde047; text-align: left; padding: 12px; }
    td { padding: 12px; border-bottom: 1px solid #e5e7eb; }
    .num { text-align: center; }
    .total { text-align: right; font-size: 18px; font-weight: bold; margin: 24px 0 12px; }
    .banner { max-width: 880px; margin: 0 auto 24px; padding: 16px; border-radius: 8px; }
    .banner.warn, .banner.error { background: #fef2f2; border: 1px solid #fecaca; color: #991b1b; }
    .banner.success { background: #f0fdf4; border: 1px solid #bbf7d0; color: #166534; }
    .actions form { margin-bottom: 12px; }
    button.pay { width: 100%; padding: 12px; border: 0; border-radius: 8px; color: #fff; font: inherit; cursor: pointer; }
    button.full { background: #ef4444; }
    button.deposit { background: #2563eb; }
    .tips { margin-top: 8px; padding: 12px; background: #f9fafb; border: 1px solid #e5e7eb; border-radius: 8px; }
    .stepper { display: flex; gap: 8px; align-items: center; }
    .breakdown { margin-top: 12px; padding: 12px; background: #fff; border: 1px solid #bbf7d0; border-radius: 8px; }
    .breakdown div { display: flex; justify-content: space-between; }
    .breakdown .sum { border-top: 1px solid #e5e7eb; margin-top: 8px; padding-top: 8px; }
    .quick button { margin: 4px 2px; border-radius: 999px; border: 0; padding: 4px 10px; background: #e5e7eb; }
    .history li { display: flex; justify-content: space-between; padding: 10px; background: #f0fdf4;
      border-radius: 8px; margin-bottom: 8px; list-style: none; }
    .history ul { padding: 0; }
    input[type=text], input[type=number] { width: 100%; padding: 10px; border: 1px solid #d1d5db; border-radius: 8px; font: inherit; }
  </style>
</head>
<body>
{{end}}
{{define "foot"}}</body>
</html>
{{end}}`

const landingTemplate = `{{template "head" "Invoice System"}}
<div class="card narrow">
  <h1>Invoice System</h1>
  <p class="muted">Enter an invoice ID to view or pay</p>
  <form method="get" action="/">
    <label for="invoiceId">Invoice ID</label>
    <input type="text" id="invoiceId" name="invoiceId" placeholder="e.g., betty25" required />
    <p><button class="pay deposit" type="submit">View Invoice</button></p>
  </form>
  <h3>Sample Invoices:</h3>
  <ul>
    {{range .Samples}}<li><a href="/{{.}}">{{.}}</a></li>{{end}}
  </ul>
</div>
{{template "foot"}}`

const notFoundTemplate = `{{template "head" "Invoice Not Found"}}
<div class="card narrow">
  <h1>Invoice Not Found</h1>
  <p class="muted">The invoice "{{.ID}}" could not be found or loaded.</p>
  <p><a href="/">&larr; Back to Home</a></p>
</div>
{{template "foot"}}`

const invoiceTemplate = `{{template "head" (print "Invoice #" .Invoice.InvoiceNumber)}}
<p class="banner"><a href="/">&larr; Back to Home</a></p>
{{with .Alert}}
<div class="banner {{.Kind}}" role="alert" id="payment-alert">
  {{.Message}} <a href="/{{$.ID}}">Dismiss</a>
</div>
{{end}}
{{if .View.IsPostEvent}}
<div class="banner warn" id="post-event-banner">
  <strong>Payment Required</strong>
  <div>This event has concluded. Full payment is now required.</div>
</div>
{{end}}
<div class="card">
  <h1>Invoice #{{.Invoice.InvoiceNumber}}</h1>
  <div><strong>{{.Invoice.ClientName}}</strong></div>
  <div class="muted">Deposit Due: {{.Invoice.PaymentTerms.DepositDueLabel}}</div>
  <div class="muted">Balance Due: {{.Invoice.PaymentTerms.BalanceDueLabel}}</div>
  {{with .Invoice.EventDetails}}
  <h3 style="margin-top:16px">{{.Type}} for {{.SubjectName}}</h3>
  <div>{{formatTime .TimeRange.Start}} - {{formatTime .TimeRange.End}}</div>
  <hr />
  <div class="grid">
    <div>
      <h3>Event Address</h3>
      {{if .Venue.Name}}<div>{{.Venue.Name}}</div>{{end}}
      <div>{{.Venue.Address.Line1}}</div>
      {{with .Venue.Address.Line2}}<div>{{.}}</div>{{end}}
      <div>{{.Venue.Address.City}}, {{.Venue.Address.State}} {{.Venue.Address.ZipCode}}</div>
    </div>
    <div>
      <h3>Event Info</h3>
      <div>{{.FreeTextDetails}}</div>
    </div>
  </div>
  {{end}}
  <table>
    <thead><tr><th>Description</th><th class="num">Qty</th><th class="num">Price</th><th class="num">Total</th></tr></thead>
    <tbody>
      {{range .Invoice.LineItems}}
      <tr>
        <td>{{.Description}}</td>
        <td class="num">{{.Quantity}}</td>
        <td class="num">{{formatMoney .UnitPrice}}</td>
        <td class="num">{{formatMoney .Total}}</td>
      </tr>
      {{end}}
    </tbody>
  </table>
  <div class="grid" style="margin-top:24px">
    <div class="muted">{{.Invoice.Memo}}</div>
    <div>
      {{with .Invoice.Subtotal}}<div class="muted" style="text-align:right">Subtotal: {{formatMoney .}}</div>{{end}}
      {{with .Invoice.Tax}}<div class="muted" style="text-align:right">Tax: {{formatMoney .}}</div>{{end}}
      <div class="total" id="invoice-total">Total: {{formatMoney .Invoice.TotalAmount}}</div>
      <div class="actions">
        {{range .Options}}{{$opt := .}}
        <form method="post" action="/{{$.ID}}/pay" id="pay-{{.Action}}">
          <input type="hidden" name="kind" value="{{.Action}}" />
          <button class="pay {{.Action}}" type="submit" data-label="{{.Label}}" data-amount="{{.Amount.StringFixed 2}}">{{.Label}} ({{formatMoney .Amount}})</button>
          {{if .TipAllowed}}{{with tipSection}}
          <details class="tips" id="tip-section">
            <summary>Questions about tipping?</summary>
            <p>Your enjoyment of the show is all I ask for, and tips are NEVER expected.
              But if you'd like to leave a token of appreciation, you may enter an amount
              here to be added to your final payment.</p>
            <label for="tip">Optional Tip Amount ($)</label>
            <div class="stepper">
              <button type="button" onclick="var t=document.getElementById('tip');t.value=Math.max(0,(+t.value||0)-Number({{.Step}}))">&minus;</button>
              <input type="number" id="tip" name="tip" min="0" max="{{.Max}}" step="{{.Step}}" value="{{.Default}}" />
              <button type="button" onclick="var t=document.getElementById('tip');t.value=(+t.value||0)+Number({{.Step}})">+</button>
            </div>
            <div class="quick">
              {{range .QuickTips}}<button type="button" onclick="document.getElementById('tip').value='{{.}}'">${{.}}</button>{{end}}
            </div>
            <label><input type="checkbox" name="addTip" value="1" /> Add this tip to my payment</label>
            <div class="breakdown" id="tip-breakdown" hidden>
              <div><span class="muted">Payment Amount:</span> <span>{{formatMoney $opt.Amount}}</span></div>
              <div><span class="muted">Tip Amount:</span> <span data-tip>+ {{formatMoney .Default}}</span></div>
              <div class="sum"><strong>Total:</strong> <strong data-total>{{formatMoney ($opt.Amount.Add .Default)}}</strong></div>
            </div>
          </details>
          {{end}}{{end}}
        </form>
        {{end}}
      </div>
    </div>
  </div>
</div>
{{if .Invoice.PaymentHistory}}
<div class="card history" id="payment-history">
  <h3>Payment History</h3>
  <ul>
    {{range .Invoice.PaymentHistory}}
    <li><span><strong>{{.Kind}}</strong> <span class="muted">{{.Date}}</span></span><strong>{{formatMoney .Amount}}</strong></li>
    {{end}}
  </ul>
</div>
{{end}}
<script>
(function () {
  var forms = document.querySelectorAll(".actions form");
  forms.forEach(function (form) {
    form.addEventListener("submit", function () {
      document.querySelectorAll("button.pay").forEach(function (b) { b.disabled = true; });
      form.querySelector("button.pay").textContent = "Processing...";
    });
  });
})();
(function () {
  var tip = document.getElementById("tip");
  if (!tip) { return; }
  var form = tip.form;
  var button = form.querySelector("button.pay");
  var addTip = form.querySelector("input[name=addTip]");
  var breakdown = document.getElementById("tip-breakdown");
  var amount = Number(button.dataset.amount);
  var max = Number(tip.max);
  var money = new Intl.NumberFormat("en-US", { style: "currency", currency: "USD" });
  function update() {
    var t = Math.min(Math.max(0, Number(tip.value) || 0), max);
    var added = addTip.checked && t > 0;
    button.textContent = button.dataset.label + " (" + money.format(amount + (added ? t : 0)) + ")";
    breakdown.hidden = !added;
    breakdown.querySelector("[data-tip]").textContent = "+ " + money.format(t);
    breakdown.querySelector("[data-total]").textContent = money.format(amount + t);
  }
  form.addEventListener("input", update);
  form.addEventListener("change", update);
  form.addEventListener("click", update);
})();
(function () {
  var version = "{{.Version}}";
  var target = "/{{.ID}}";
  setInterval(function () {
    fetch("/api/v1/invoices/{{.ID}}/version", { cache: "no-store" })
      .then(function (r) { return r.ok ? r.json() : null; })
      .then(function (body) {
        if (body && body.data && body.data.version && body.data.version !== version) {
          window.location.replace(target);
        }
      })
      .catch(function () {});
  }, {{pollMillis .PollInterval}});
})();
</script>
{{template "foot"}}`

// HTMLRenderer renders the viewer's pages.
type HTMLRenderer struct {
	landing  *template.Template
	invoice  *template.Template
	notFound *template.Template
}

// NewHTMLRenderer parses the page templates.
func NewHTMLRenderer() *HTMLRenderer {
	funcs := template.FuncMap{
		"formatMoney": formatMoney,
		"formatTime":  formatTime,
		"pollMillis":  pollMillis,
		"tipSection":  tipSection,
	}
	parse := func(name, body string) *template.Template {
		t := template.Must(template.New(name).Funcs(funcs).Parse(layoutTemplate))
		return template.Must(t.Parse(body))
	}
	return &HTMLRenderer{
		landing:  parse("landing", landingTemplate),
		invoice:  parse("invoice", invoiceTemplate),
		notFound: parse("not-found", notFoundTemplate),
	}
}

// Landing writes the landing page.
func (r *HTMLRenderer) Landing(w io.Writer, page LandingPage) error {
	return execute(w, r.landing, page)
}

// Invoice writes an invoice page.
func (r *HTMLRenderer) Invoice(w io.Writer, page InvoicePage) error {
	return execute(w, r.invoice, page)
}

// NotFound writes the not-found page.
func (r *HTMLRenderer) NotFound(w io.Writer, page NotFoundPage) error {
	return execute(w, r.notFound, page)
}

// execute renders into a buffer first so a template error never leaves a
// half-written page.
func execute(w io.Writer, t *template.Template, data any) error {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}

func formatMoney(amount any) string {
	switch v := amount.(type) {
	case decimal.Decimal:
		return models.FormatCurrency(v)
	case *decimal.Decimal:
		if v == nil {
			return "-"
		}
		return models.FormatCurrency(*v)
	}
	return "-"
}

func formatTime(t models.Timestamp) string {
	return t.Display()
}

func pollMillis(d time.Duration) int64 {
	if d <= 0 {
		return 2000
	}
	return d.Milliseconds()
}
