package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/satheeshds/invoice-viewer/billing"
	"github.com/satheeshds/invoice-viewer/loader"
	"github.com/satheeshds/invoice-viewer/models"
	"github.com/satheeshds/invoice-viewer/payment"
)

// InvoiceResponse is an invoice together with everything derived from it.
type InvoiceResponse struct {
	ID      string                  `json:"id"`
	Invoice *models.Invoice         `json:"invoice"`
	View    billing.View            `json:"view"`
	Options []billing.PaymentOption `json:"options"`
	Version string                  `json:"version"`
}

// VersionResponse identifies the current revision of an invoice.
type VersionResponse struct {
	Version  string    `json:"version"`
	Modified time.Time `json:"modified"`
	Digest   string    `json:"digest"`
}

// PaymentRequest asks for one of the offered payment actions. Tip may be
// a JSON number or a string holding a plain amount.
type PaymentRequest struct {
	Kind billing.Action `json:"kind"`
	Tip  json.Number    `json:"tip,omitempty" swaggertype:"string" example:"20.00"`
}

// TipAmount parses Tip. An absent tip is zero.
func (p *PaymentRequest) TipAmount() (decimal.Decimal, error) {
	if p.Tip == "" {
		return decimal.Zero, nil
	}
	return models.ParseCurrency(p.Tip.String())
}

// Validate checks the request and returns an error message, or "" if valid.
func (p *PaymentRequest) Validate() string {
	if p.Kind != billing.ActionFull && p.Kind != billing.ActionDeposit {
		return "kind must be one of: full, deposit"
	}
	tip, err := p.TipAmount()
	switch {
	case err != nil:
		return "tip must be a plain amount such as 20.00"
	case tip.IsNegative():
		return "tip must not be negative"
	case tip.GreaterThan(billing.MaxTip):
		return "tip must not exceed " + models.FormatCurrency(billing.MaxTip)
	}
	return ""
}

// loadStatus maps a loader error to the API status code.
func loadStatus(err error) int {
	switch {
	case errors.Is(err, loader.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, loader.ErrDecode):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

func loadMessage(err error) string {
	switch {
	case errors.Is(err, loader.ErrNotFound):
		return "invoice not found"
	case errors.Is(err, loader.ErrDecode):
		return "invoice document is invalid"
	default:
		return "invoice source unavailable"
	}
}

// GetInvoice returns an invoice with its derived view
// @Summary      Get invoice
// @Description  Get an invoice document together with the derived deposit, balance, tipping and payment options as of now.
// @Tags         invoices
// @Produce      json
// @Param        invoiceId  path      string  true  "Invoice ID"
// @Success      200        {object}  Response{data=InvoiceResponse}
// @Failure      404        {object}  Response
// @Failure      422        {object}  Response
// @Failure      502        {object}  Response
// @Router       /invoices/{invoiceId} [get]
func (s *Server) GetInvoice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "invoiceId")
	doc, err := s.load(r.Context(), id)
	if err != nil {
		writeError(w, loadStatus(err), loadMessage(err))
		return
	}

	view := billing.DeriveView(doc.Invoice, s.now())
	writeJSON(w, http.StatusOK, InvoiceResponse{
		ID:      id,
		Invoice: doc.Invoice,
		View:    view,
		Options: billing.PaymentOptions(view),
		Version: doc.Version.String(),
	})
}

// GetInvoiceVersion returns the version of the current valid invoice
// @Summary      Get invoice version
// @Description  Get the version marker of an invoice. Clients poll this to learn when the document changes. A document that cannot be decoded does not advance the version.
// @Tags         invoices
// @Produce      json
// @Param        invoiceId  path      string  true  "Invoice ID"
// @Success      200        {object}  Response{data=VersionResponse}
// @Failure      404        {object}  Response
// @Failure      422        {object}  Response
// @Failure      502        {object}  Response
// @Router       /invoices/{invoiceId}/version [get]
func (s *Server) GetInvoiceVersion(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "invoiceId")
	doc, err := s.load(r.Context(), id)
	if err != nil {
		writeError(w, loadStatus(err), loadMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, VersionResponse{
		Version:  doc.Version.String(),
		Modified: doc.Version.Modified,
		Digest:   doc.Version.Digest,
	})
}

// CreatePayment pays one of the actions offered on an invoice
// @Summary      Pay an invoice
// @Description  Initiate a deposit or full payment. Amounts are derived from the current invoice; a tip is honoured only when the chosen action allows one.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        invoiceId  path      string          true  "Invoice ID"
// @Param        payment    body      PaymentRequest  true  "Payment to make"
// @Success      201        {object}  Response{data=payment.Receipt}
// @Failure      400        {object}  Response
// @Failure      402        {object}  Response
// @Failure      404        {object}  Response
// @Failure      409        {object}  Response
// @Router       /invoices/{invoiceId}/payments [post]
func (s *Server) CreatePayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "invoiceId")

	var req PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := req.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	doc, err := s.load(r.Context(), id)
	if err != nil {
		writeError(w, loadStatus(err), loadMessage(err))
		return
	}

	view := billing.DeriveView(doc.Invoice, s.now())
	opt, ok := billing.FindOption(view, req.Kind)
	if !ok {
		s.metrics.IncPayment(string(req.Kind), "unavailable")
		writeError(w, http.StatusConflict, unavailableMessage)
		return
	}
	tip, _ := req.TipAmount()

	receipt, err := s.initiate(r.Context(), id, opt, tip)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, payment.ErrPaymentFailed) {
			status = http.StatusPaymentRequired
		}
		writeError(w, status, payment.FailureMessage)
		return
	}
	writeJSON(w, http.StatusCreated, receipt)
}

// RawInvoice serves the stored document as-is, e.g. /invoices/betty25.json.
func (s *Server) RawInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok := strings.CutSuffix(chi.URLParam(r, "file"), ".json")
	if !ok {
		s.notFoundPage(w, chi.URLParam(r, "file"))
		return
	}
	res, err := s.loader.Raw(r.Context(), id)
	if err != nil {
		s.logLoadError(id, err)
		status := http.StatusNotFound
		if errors.Is(err, loader.ErrNetwork) {
			status = http.StatusBadGateway
		}
		http.Error(w, http.StatusText(status), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if !res.Version.Modified.IsZero() {
		w.Header().Set("Last-Modified", res.Version.Modified.UTC().Format(http.TimeFormat))
	}
	w.Header().Set("ETag", `"`+res.Version.Digest+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(res.Body)
}
