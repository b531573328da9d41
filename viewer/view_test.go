package viewer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satheeshds/invoice-viewer/loader"
	"github.com/satheeshds/invoice-viewer/models"
)

// fakeLoader serves one mutable document per id.
type fakeLoader struct {
	mu    sync.Mutex
	docs  map[string]*loader.Document
	err   error
	calls map[string]int
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{docs: map[string]*loader.Document{}, calls: map[string]int{}}
}

func (f *fakeLoader) Load(_ context.Context, id string) (*loader.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[id]++
	if f.err != nil {
		return nil, f.err
	}
	doc, ok := f.docs[id]
	if !ok {
		return nil, &loader.LoadError{Op: "fetch", ID: id, Err: loader.ErrNotFound}
	}
	return doc, nil
}

func (f *fakeLoader) put(id, total string, modified time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	inv := &models.Invoice{
		InvoiceNumber: id,
		TotalAmount:   decimal.RequireFromString(total),
		EventDetails: models.EventDetails{TimeRange: models.TimeRange{
			Start: models.Timestamp{Time: time.Date(2026, 1, 10, 18, 0, 0, 0, time.UTC)},
			End:   models.Timestamp{Time: time.Date(2026, 1, 10, 20, 0, 0, 0, time.UTC)},
		}},
	}
	f.docs[id] = &loader.Document{Invoice: inv, Version: loader.NewVersion(modified, []byte(id+total))}
}

func (f *fakeLoader) failWith(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakeLoader) callCount(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[id]
}

var t0 = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func quiet() Option {
	return WithLogger(zerolog.Nop())
}

func TestView_InitialLoad(t *testing.T) {
	fl := newFakeLoader()
	fl.put("a", "500", t0)

	v := NewView("a", fl, quiet())
	assert.Equal(t, StatusLoading, v.Snapshot().Status)

	assert.Equal(t, StatusLoaded, v.Load(context.Background()))
	snap := v.Snapshot()
	require.NotNil(t, snap.Document)
	assert.Equal(t, "a", snap.Document.Invoice.InvoiceNumber)

	dv, ok := snap.Derive(t0)
	require.True(t, ok)
	assert.Equal(t, "250.00", dv.DepositAmount.StringFixed(2))
}

func TestView_LoadFailuresAreNotFound(t *testing.T) {
	for name, err := range map[string]error{
		"missing": nil,
		"decode":  &loader.LoadError{Op: "decode", ID: "a", Err: loader.ErrDecode},
		"network": &loader.LoadError{Op: "fetch", ID: "a", Err: loader.ErrNetwork},
	} {
		t.Run(name, func(t *testing.T) {
			fl := newFakeLoader()
			fl.failWith(err)
			v := NewView("a", fl, quiet())
			assert.Equal(t, StatusNotFound, v.Load(context.Background()))
			_, ok := v.Snapshot().Derive(t0)
			assert.False(t, ok)
		})
	}
}

func TestView_Refresh(t *testing.T) {
	ctx := context.Background()
	fl := newFakeLoader()
	fl.put("a", "500", t0)

	var changes atomic.Int32
	v := NewView("a", fl, quiet(), WithOnChange(func(Snapshot) { changes.Add(1) }))
	v.Load(ctx)
	first := v.Snapshot().Document

	t.Run("unchanged marker leaves the document alone", func(t *testing.T) {
		changed, err := v.Refresh(ctx)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Same(t, first, v.Snapshot().Document)
	})

	t.Run("newer marker replaces the whole document", func(t *testing.T) {
		fl.put("a", "800", t0.Add(time.Minute))
		changed, err := v.Refresh(ctx)
		require.NoError(t, err)
		assert.True(t, changed)
		snap := v.Snapshot()
		assert.NotSame(t, first, snap.Document)
		assert.Equal(t, "800", snap.Document.Invoice.TotalAmount.String())
	})

	t.Run("older marker is ignored", func(t *testing.T) {
		fl.put("a", "100", t0)
		changed, err := v.Refresh(ctx)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, "800", v.Snapshot().Document.Invoice.TotalAmount.String())
	})

	t.Run("failures keep the last good document", func(t *testing.T) {
		fl.failWith(&loader.LoadError{Op: "fetch", ID: "a", Err: loader.ErrNetwork})
		changed, err := v.Refresh(ctx)
		assert.ErrorIs(t, err, loader.ErrNetwork)
		assert.False(t, changed)
		snap := v.Snapshot()
		assert.Equal(t, StatusLoaded, snap.Status)
		assert.Equal(t, "800", snap.Document.Invoice.TotalAmount.String())
		fl.failWith(nil)
	})

	assert.EqualValues(t, 2, changes.Load())
}

func TestView_RefreshRecoversNotFound(t *testing.T) {
	ctx := context.Background()
	fl := newFakeLoader()
	v := NewView("late", fl, quiet())
	require.Equal(t, StatusNotFound, v.Load(ctx))

	fl.put("late", "50", t0)
	changed, err := v.Refresh(ctx)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, StatusLoaded, v.Snapshot().Status)
}

func TestView_WatchPicksUpChanges(t *testing.T) {
	fl := newFakeLoader()
	fl.put("a", "500", t0)

	v := NewView("a", fl, quiet())
	v.Load(context.Background())
	v.Watch(5 * time.Millisecond)
	defer v.Close()

	fl.put("a", "650", t0.Add(time.Second))
	require.Eventually(t, func() bool {
		return v.Snapshot().Document.Invoice.TotalAmount.String() == "650"
	}, time.Second, 5*time.Millisecond)
}

func TestView_WatchSwallowsErrors(t *testing.T) {
	fl := newFakeLoader()
	fl.put("a", "500", t0)

	v := NewView("a", fl, quiet())
	v.Load(context.Background())
	fl.failWith(errors.New("connection refused"))
	v.Watch(2 * time.Millisecond)

	require.Eventually(t, func() bool { return fl.callCount("a") > 3 }, time.Second, 2*time.Millisecond)
	v.Close()

	snap := v.Snapshot()
	assert.Equal(t, StatusLoaded, snap.Status)
	assert.Equal(t, "500", snap.Document.Invoice.TotalAmount.String())
}

func TestView_CloseStopsPolling(t *testing.T) {
	fl := newFakeLoader()
	fl.put("a", "500", t0)

	v := NewView("a", fl, quiet())
	v.Load(context.Background())
	v.Watch(time.Millisecond)
	require.Eventually(t, func() bool { return fl.callCount("a") > 2 }, time.Second, time.Millisecond)

	v.Close()
	calls := fl.callCount("a")
	fl.put("a", "999", t0.Add(time.Hour))
	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, calls, fl.callCount("a"))
	assert.Equal(t, "500", v.Snapshot().Document.Invoice.TotalAmount.String())

	changed, err := v.Refresh(context.Background())
	require.NoError(t, err)
	assert.False(t, changed, "closed views never change")
}

func TestSession_NavigateTearsDownPreviousView(t *testing.T) {
	fl := newFakeLoader()
	fl.put("a", "100", t0)
	fl.put("b", "200", t0)

	var mu sync.Mutex
	seen := map[string][]string{}
	s := NewSession(fl, time.Millisecond, quiet(), WithOnChange(func(snap Snapshot) {
		mu.Lock()
		defer mu.Unlock()
		seen[snap.ID] = append(seen[snap.ID], snap.Document.Invoice.InvoiceNumber)
	}))
	defer s.Close()

	a := s.Navigate(context.Background(), "a")
	require.Eventually(t, func() bool { return fl.callCount("a") > 2 }, time.Second, time.Millisecond)

	b := s.Navigate(context.Background(), "b")
	assert.Same(t, b, s.Current())
	callsA := fl.callCount("a")

	fl.put("a", "101", t0.Add(time.Minute))
	fl.put("b", "201", t0.Add(time.Minute))
	require.Eventually(t, func() bool {
		return b.Snapshot().Document.Invoice.TotalAmount.String() == "201"
	}, time.Second, time.Millisecond)

	assert.Equal(t, callsA, fl.callCount("a"), "view a kept polling after navigation")
	assert.Equal(t, "100", a.Snapshot().Document.Invoice.TotalAmount.String())

	mu.Lock()
	defer mu.Unlock()
	for id, numbers := range seen {
		for _, n := range numbers {
			assert.Equal(t, id, n, fmt.Sprintf("view %s received invoice %s", id, n))
		}
	}
}
