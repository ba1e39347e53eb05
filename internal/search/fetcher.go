package search

import (
	"context"
	"time"

	"safelogist/internal/domain"
)

// Fetcher issues lookups and decides which responses may commit. Tokens are
// minted from a monotonic counter; only the most recently issued, still
// active token is accepted. Superseded requests have their context cancelled
// but are otherwise left to finish.
type Fetcher struct {
	lookup  Lookup
	limit   int
	issued  uint64
	active  uint64
	cancel  context.CancelFunc
	started time.Time
}

// NewFetcher creates a fetcher bound to a lookup
func NewFetcher(lookup Lookup, limit int) *Fetcher {
	return &Fetcher{lookup: lookup, limit: limit}
}

// Issue invalidates any in-flight request and starts a new one. The result
// is delivered as a ResultMsg through dispatch.
func (f *Fetcher) Issue(session, query string, dispatch Dispatcher) uint64 {
	f.Invalidate()

	f.issued++
	token := f.issued
	ctx, cancel := context.WithCancel(context.Background())
	f.active, f.cancel, f.started = token, cancel, time.Now()

	lookup, limit := f.lookup, f.limit
	go func() {
		items, err := lookup.Search(ctx, query, limit)
		dispatch(ResultMsg{Session: session, Token: token, Query: query, Items: items, Err: err})
	}()
	return token
}

// Invalidate makes the in-flight request stale
func (f *Fetcher) Invalidate() {
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.active = 0
}

// InFlight reports whether an accepted response is still awaited
func (f *Fetcher) InFlight() bool {
	return f.active != 0
}

// Accept consumes the response for token if it is still the active one and
// reports how long the request took
func (f *Fetcher) Accept(token uint64) (time.Duration, bool) {
	if f.active == 0 || token != f.active {
		return 0, false
	}
	elapsed := time.Since(f.started)
	f.cancel()
	f.cancel = nil
	f.active = 0
	return elapsed, true
}

// TimerFiredMsg is posted when a debounce timer elapses
type TimerFiredMsg struct {
	Session string
	Seq     uint64
}

// ResultMsg carries a finished lookup back to the loop
type ResultMsg struct {
	Session string
	Token   uint64
	Query   string
	Items   []domain.Company
	Err     error
}

// CloseElapsedMsg is posted when the dropdown collapse delay elapses
type CloseElapsedMsg struct {
	Session string
	Seq     uint64
}
