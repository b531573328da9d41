package viewer

import (
	"context"
	"sync"
	"time"
)

// Session follows a visitor as they move between invoices. It owns at
// most one open view at a time.
type Session struct {
	loader   DocumentLoader
	interval time.Duration
	opts     []Option

	mu      sync.Mutex
	current *View
}

// NewSession returns a session whose views refresh every interval. An
// interval of zero disables background refresh.
func NewSession(l DocumentLoader, interval time.Duration, opts ...Option) *Session {
	return &Session{loader: l, interval: interval, opts: opts}
}

// Navigate closes the current view, then opens, loads and (if enabled)
// watches a view for id. The previous view's refresh has fully stopped
// before the new view exists.
func (s *Session) Navigate(ctx context.Context, id string) *View {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		s.current.Close()
		s.current = nil
	}

	v := NewView(id, s.loader, s.opts...)
	v.Load(ctx)
	if s.interval > 0 {
		v.Watch(s.interval)
	}
	s.current = v
	return v
}

// Current returns the open view, or nil.
func (s *Session) Current() *View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Close closes the open view.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		s.current.Close()
		s.current = nil
	}
}
