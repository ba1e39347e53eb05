package search

import (
	"context"
	"sync"
	"testing"
	"time"

	"safelogist/internal/domain"
)

// manualScheduler fires timers only when the test says so
type manualScheduler struct {
	mu     sync.Mutex
	timers []*manualTimer
}

type manualTimer struct {
	mu      sync.Mutex
	delay   time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTimer{delay: d, fn: f}
	s.timers = append(s.timers, t)
	return t
}

// fireLive runs every timer that was neither stopped nor fired and returns
// how many ran
func (s *manualScheduler) fireLive() int {
	s.mu.Lock()
	timers := append([]*manualTimer(nil), s.timers...)
	s.mu.Unlock()

	n := 0
	for _, t := range timers {
		t.mu.Lock()
		live := !t.stopped && !t.fired
		if live {
			t.fired = true
		}
		t.mu.Unlock()
		if live {
			t.fn()
			n++
		}
	}
	return n
}

func (s *manualScheduler) live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		t.mu.Lock()
		if !t.stopped && !t.fired {
			n++
		}
		t.mu.Unlock()
	}
	return n
}

type reply struct {
	items []domain.Company
	err   error
}

// pendingCall is one lookup waiting for the test to resolve it
type pendingCall struct {
	query string
	limit int
	ctx   context.Context
	reply chan reply
}

func (c *pendingCall) resolve(items ...domain.Company) {
	c.reply <- reply{items: items}
}

func (c *pendingCall) fail(err error) {
	c.reply <- reply{err: err}
}

// controlledLookup hands every call to the test, which resolves calls in
// whatever order it wants
type controlledLookup struct {
	calls chan *pendingCall
}

func newControlledLookup() *controlledLookup {
	return &controlledLookup{calls: make(chan *pendingCall, 16)}
}

func (l *controlledLookup) Search(ctx context.Context, query string, limit int) ([]domain.Company, error) {
	c := &pendingCall{query: query, limit: limit, ctx: ctx, reply: make(chan reply, 1)}
	l.calls <- c
	r := <-c.reply
	return r.items, r.err
}

func (l *controlledLookup) next(t *testing.T) *pendingCall {
	t.Helper()
	select {
	case c := <-l.calls:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("expected a lookup call")
		return nil
	}
}

func (l *controlledLookup) assertNoCall(t *testing.T) {
	t.Helper()
	select {
	case c := <-l.calls:
		t.Fatalf("unexpected lookup call for %q", c.query)
	case <-time.After(30 * time.Millisecond):
	}
}

// harness wires a session to the manual scheduler and a message queue that
// stands in for the UI event loop
type harness struct {
	t      *testing.T
	sched  *manualScheduler
	lookup *controlledLookup
	msgs   chan any
	sess   *Session
}

func newHarness(t *testing.T, opts Options, sessOpts ...SessionOption) *harness {
	h := &harness{
		t:      t,
		sched:  &manualScheduler{},
		lookup: newControlledLookup(),
		msgs:   make(chan any, 64),
	}
	all := append([]SessionOption{WithScheduler(h.sched)}, sessOpts...)
	h.sess = NewSession("header", h.lookup, opts, func(m any) { h.msgs <- m }, all...)
	return h
}

// pump hands the next queued message to the session
func (h *harness) pump() bool {
	h.t.Helper()
	select {
	case m := <-h.msgs:
		return h.sess.Handle(m)
	case <-time.After(2 * time.Second):
		h.t.Fatal("expected a message on the loop")
		return false
	}
}

// next returns the next queued message without handling it
func (h *harness) next() any {
	h.t.Helper()
	select {
	case m := <-h.msgs:
		return m
	case <-time.After(2 * time.Second):
		h.t.Fatal("expected a message on the loop")
		return nil
	}
}

// typeText feeds every prefix of text, as keystrokes do
func (h *harness) typeText(text string) {
	for i := 1; i <= len(text); i++ {
		h.sess.Input(text[:i])
	}
}

// settle fires the debounce timer and hands the fire to the session
func (h *harness) settle() {
	h.t.Helper()
	if h.sched.fireLive() == 0 {
		h.t.Fatal("no live timer to fire")
	}
	h.pump()
}

func company(id, name string) domain.Company {
	return domain.Company{ID: domain.CompanyID(id), Name: name}
}
