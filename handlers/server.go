package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/satheeshds/invoice-viewer/loader"
	"github.com/satheeshds/invoice-viewer/logger"
	"github.com/satheeshds/invoice-viewer/metrics"
	"github.com/satheeshds/invoice-viewer/payment"
	"github.com/satheeshds/invoice-viewer/render"
	"github.com/satheeshds/invoice-viewer/viewer"
)

// Payment submission limits per client.
const (
	DefaultPaymentRate  = 1.0
	DefaultPaymentBurst = 5
)

// InvoiceLoader is what the handlers need from the loader.
type InvoiceLoader interface {
	Load(ctx context.Context, id string) (*loader.Document, error)
	Raw(ctx context.Context, id string) (*loader.Resource, error)
}

// Server serves the invoice pages and the JSON API.
type Server struct {
	loader       InvoiceLoader
	payments     payment.Initiator
	pages        *render.HTMLRenderer
	now          func() time.Time
	pollInterval time.Duration
	log          zerolog.Logger
	metrics      *metrics.Metrics
	limiter      *RateLimiter
	trustProxy   bool
}

// Option configures a Server.
type Option func(*Server)

// WithClock overrides the time used to derive invoice views.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithPollInterval sets how often invoice pages check for a new version.
func WithPollInterval(d time.Duration) Option {
	return func(s *Server) { s.pollInterval = d }
}

// WithLogger sets the server's logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithMetrics records loads, payments and requests on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithPaymentRateLimit sets how many payment submissions a client may make
// per second, with burst allowed at once.
func WithPaymentRateLimit(perSecond float64, burst int) Option {
	return func(s *Server) { s.limiter = NewRateLimiter(perSecond, burst) }
}

// WithTrustedProxy takes the client address from X-Forwarded-For and
// X-Real-IP. Only enable it when every request arrives through a proxy
// that sets those headers.
func WithTrustedProxy(trust bool) Option {
	return func(s *Server) { s.trustProxy = trust }
}

// NewServer returns a server loading invoices with l and taking payments
// through p.
func NewServer(l InvoiceLoader, p payment.Initiator, opts ...Option) *Server {
	s := &Server{
		loader:       l,
		payments:     p,
		pages:        render.NewHTMLRenderer(),
		now:          time.Now,
		pollInterval: viewer.DefaultPollInterval,
		log:          logger.WithComponent("http"),
		metrics:      metrics.New(),
		limiter:      NewRateLimiter(DefaultPaymentRate, DefaultPaymentBurst),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if s.trustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(logger.RequestLogger(s.log))
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/healthz", Healthz)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler())
	}
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(NoStore)
		r.Get("/invoices/{invoiceId}", s.GetInvoice)
		r.Get("/invoices/{invoiceId}/version", s.GetInvoiceVersion)
		r.With(s.limiter.Limit).Post("/invoices/{invoiceId}/payments", s.CreatePayment)
	})

	// Raw documents, as the static resource location would serve them
	r.Get("/invoices/{file}", s.RawInvoice)

	// Pages
	r.Group(func(r chi.Router) {
		r.Use(NoStore)
		r.Get("/", s.Landing)
		r.Get("/{invoiceId}", s.InvoicePage)
		r.With(s.limiter.Limit).Post("/{invoiceId}/pay", s.PayInvoice)
	})

	r.NotFound(s.notFound)
	return r
}

// Healthz reports that the server is up.
func Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
