// Package viewer holds the per-visitor state of an invoice view: its
// load status, the current document, and the background refresh that
// keeps the document up to date.
package viewer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/satheeshds/invoice-viewer/billing"
	"github.com/satheeshds/invoice-viewer/loader"
	"github.com/satheeshds/invoice-viewer/logger"
)

// DefaultPollInterval is how often a watched view re-fetches its invoice.
const DefaultPollInterval = 2 * time.Second

// Status is the top-level state of a view. Exactly one applies at a time.
type Status string

const (
	StatusLoading  Status = "loading"
	StatusLoaded   Status = "loaded"
	StatusNotFound Status = "not-found"
)

// DocumentLoader loads an invoice document by id.
type DocumentLoader interface {
	Load(ctx context.Context, id string) (*loader.Document, error)
}

// Snapshot is a consistent read of a view's state.
type Snapshot struct {
	ID       string
	Status   Status
	Document *loader.Document
}

// Derive computes the derived view of the snapshot's document at now. It
// returns false unless the snapshot is loaded.
func (s Snapshot) Derive(now time.Time) (billing.View, bool) {
	if s.Status != StatusLoaded || s.Document == nil {
		return billing.View{}, false
	}
	return billing.DeriveView(s.Document.Invoice, now), true
}

// Option configures a View.
type Option func(*View)

// WithLogger sets the view's logger.
func WithLogger(l zerolog.Logger) Option {
	return func(v *View) { v.log = l }
}

// WithOnChange registers fn to be called after every document change,
// including the initial load. fn runs on the goroutine that applied the
// change and must not call Close.
func WithOnChange(fn func(Snapshot)) Option {
	return func(v *View) { v.onChange = fn }
}

// View is the state for one invoice id. A View is never reused for
// another id; navigating elsewhere means closing it and opening a new one.
type View struct {
	id       string
	loader   DocumentLoader
	log      zerolog.Logger
	onChange func(Snapshot)

	mu     sync.RWMutex
	status Status
	doc    *loader.Document
	closed bool

	watchOnce sync.Once
	stop      context.CancelFunc
	done      chan struct{}
}

// NewView returns a view for id in the loading state.
func NewView(id string, l DocumentLoader, opts ...Option) *View {
	v := &View{
		id:     id,
		loader: l,
		log:    logger.WithInvoice("viewer", id),
		status: StatusLoading,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// ID returns the invoice id the view is bound to.
func (v *View) ID() string {
	return v.id
}

// Snapshot returns the current state.
func (v *View) Snapshot() Snapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return Snapshot{ID: v.id, Status: v.status, Document: v.doc}
}

// Load performs the initial fetch. Any failure, whether the invoice is
// missing, malformed or unreachable, leaves the view not-found.
func (v *View) Load(ctx context.Context) Status {
	doc, err := v.loader.Load(ctx, v.id)

	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return StatusLoading
	}
	if err != nil {
		v.status = StatusNotFound
		v.doc = nil
		v.mu.Unlock()
		v.logLoadError(err)
		return StatusNotFound
	}
	v.status = StatusLoaded
	v.doc = doc
	snap := Snapshot{ID: v.id, Status: v.status, Document: v.doc}
	v.mu.Unlock()

	v.log.Debug().Str("version", doc.Version.String()).Msg("invoice loaded")
	v.notify(snap)
	return StatusLoaded
}

func (v *View) logLoadError(err error) {
	evt := v.log.Warn()
	if errors.Is(err, loader.ErrNotFound) {
		evt = v.log.Info()
	}
	evt.Err(err).Msg("invoice could not be loaded")
}

// Refresh re-fetches the invoice and swaps in the new document if its
// version marker is newer. It reports whether the document changed. A
// failed fetch leaves the view untouched.
func (v *View) Refresh(ctx context.Context) (bool, error) {
	doc, err := v.loader.Load(ctx, v.id)
	if err != nil {
		return false, err
	}

	v.mu.Lock()
	if v.closed || ctx.Err() != nil {
		v.mu.Unlock()
		return false, nil
	}
	if v.doc != nil && !doc.Version.Newer(v.doc.Version) {
		v.mu.Unlock()
		return false, nil
	}
	v.doc = doc
	v.status = StatusLoaded
	snap := Snapshot{ID: v.id, Status: v.status, Document: v.doc}
	v.mu.Unlock()

	v.log.Info().Str("version", doc.Version.String()).Msg("invoice updated")
	v.notify(snap)
	return true, nil
}

func (v *View) notify(s Snapshot) {
	if v.onChange != nil {
		v.onChange(s)
	}
}

// Watch starts refreshing the view every interval until Close. Calling
// Watch more than once has no effect.
func (v *View) Watch(interval time.Duration) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	v.watchOnce.Do(func() {
		v.mu.Lock()
		if v.closed {
			v.mu.Unlock()
			return
		}
		ctx, cancel := context.WithCancel(context.Background())
		v.stop = cancel
		v.done = make(chan struct{})
		v.mu.Unlock()

		go v.poll(ctx, interval)
	})
}

func (v *View) poll(ctx context.Context, interval time.Duration) {
	defer close(v.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Poll failures are dropped so a blip never replaces a good document.
			if _, err := v.Refresh(ctx); err != nil && ctx.Err() == nil {
				v.log.Debug().Err(err).Msg("poll failed")
			}
		}
	}
}

// Close stops the background refresh and waits for it to exit. After
// Close returns the view's state never changes again.
func (v *View) Close() {
	v.mu.Lock()
	v.closed = true
	stop, done := v.stop, v.done
	v.mu.Unlock()

	if stop != nil {
		stop()
		<-done
	}
}
