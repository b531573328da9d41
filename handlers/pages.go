package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/satheeshds/invoice-viewer/billing"
	"github.com/satheeshds/invoice-viewer/loader"
	"github.com/satheeshds/invoice-viewer/models"
	"github.com/satheeshds/invoice-viewer/payment"
	"github.com/satheeshds/invoice-viewer/render"
)

// unavailableMessage is shown when a form asks for an action that is no
// longer offered, e.g. a deposit after one has been recorded.
const unavailableMessage = "This payment option is no longer available."

// Landing shows the invoice id form. A submitted id redirects to its page.
func (s *Server) Landing(w http.ResponseWriter, r *http.Request) {
	if id := strings.TrimSpace(r.URL.Query().Get("invoiceId")); id != "" {
		http.Redirect(w, r, "/"+url.PathEscape(id), http.StatusSeeOther)
		return
	}
	s.html(w, http.StatusOK, func(b *bytes.Buffer) error {
		return s.pages.Landing(b, render.LandingPage{Samples: render.SampleInvoices})
	})
}

// InvoicePage shows one invoice with its payment options.
func (s *Server) InvoicePage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "invoiceId")
	doc, err := s.load(r.Context(), id)
	if err != nil {
		s.notFoundPage(w, id)
		return
	}
	page := s.invoicePage(id, doc)
	s.html(w, http.StatusOK, func(b *bytes.Buffer) error {
		return s.pages.Invoice(b, page)
	})
}

// PayInvoice handles the payment forms on the invoice page. Amounts come
// from the invoice as it is now, never from the form.
func (s *Server) PayInvoice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "invoiceId")
	doc, err := s.load(r.Context(), id)
	if err != nil {
		s.notFoundPage(w, id)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	page := s.invoicePage(id, doc)
	status := http.StatusOK

	action := billing.Action(r.PostForm.Get("kind"))
	opt, ok := billing.FindOption(page.View, action)
	if !ok {
		status = http.StatusConflict
		s.metrics.IncPayment(string(action), "unavailable")
		page.Alert = &render.Alert{Kind: render.AlertError, Message: unavailableMessage}
	} else {
		tip := decimal.Zero
		if r.PostForm.Get("addTip") != "" {
			tip = billing.ClampTip(r.PostForm.Get("tip"))
		}
		page.Alert = s.pay(r, id, opt, tip)
	}

	s.html(w, status, func(b *bytes.Buffer) error {
		return s.pages.Invoice(b, page)
	})
}

func (s *Server) pay(r *http.Request, id string, opt billing.PaymentOption, tip decimal.Decimal) *render.Alert {
	receipt, err := s.initiate(r.Context(), id, opt, tip)
	if err != nil {
		return &render.Alert{Kind: render.AlertError, Message: payment.FailureMessage}
	}
	return &render.Alert{Kind: render.AlertSuccess, Message: receipt.Message()}
}

// initiate pays opt, plus tip where opt allows one.
func (s *Server) initiate(ctx context.Context, id string, opt billing.PaymentOption, tip decimal.Decimal) (*payment.Receipt, error) {
	receipt, err := s.payments.InitiatePayment(ctx, opt.Amount, billing.ApplyTip(opt, tip), id, opt.Action)
	if err != nil {
		s.metrics.IncPayment(string(opt.Action), "failed")
		s.log.Error().Err(err).Str("invoice_id", id).Str("kind", string(opt.Action)).Msg("payment failed")
		return nil, err
	}
	s.metrics.IncPayment(string(opt.Action), "success")
	s.metrics.AddTipCents(models.Cents(receipt.Tip))
	return receipt, nil
}

// load fetches id, recording the outcome.
func (s *Server) load(ctx context.Context, id string) (*loader.Document, error) {
	doc, err := s.loader.Load(ctx, id)
	s.metrics.IncInvoiceLoad(loadResult(err))
	if err != nil {
		s.logLoadError(id, err)
	}
	return doc, err
}

func loadResult(err error) string {
	switch {
	case err == nil:
		return "loaded"
	case errors.Is(err, loader.ErrNotFound):
		return "not_found"
	case errors.Is(err, loader.ErrDecode):
		return "invalid"
	default:
		return "unreachable"
	}
}

func (s *Server) invoicePage(id string, doc *loader.Document) render.InvoicePage {
	view := billing.DeriveView(doc.Invoice, s.now())
	return render.NewInvoicePage(id, doc.Invoice, view, doc.Version.String(), s.pollInterval)
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	s.notFoundPage(w, strings.Trim(r.URL.Path, "/"))
}

func (s *Server) notFoundPage(w http.ResponseWriter, id string) {
	s.html(w, http.StatusNotFound, func(b *bytes.Buffer) error {
		return s.pages.NotFound(b, render.NotFoundPage{ID: id})
	})
}

// html commits status only after fn has rendered successfully.
func (s *Server) html(w http.ResponseWriter, status int, fn func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		s.log.Error().Err(err).Msg("failed to render page")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (s *Server) logLoadError(id string, err error) {
	ev := s.log.Warn()
	if errors.Is(err, loader.ErrNotFound) {
		ev = s.log.Debug()
	}
	ev.Err(err).Str("invoice_id", id).Msg("invoice unavailable")
}
