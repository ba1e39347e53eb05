package search

import (
	"strings"
	"unicode/utf8"

	"safelogist/internal/domain"
	"safelogist/internal/eventbus"
	"safelogist/internal/logging"
)

// Session is one mounted search box. It owns the query, the debounce timer,
// the request tokens and the displayed result set; nothing is shared between
// sessions. All methods must be called from the owner's event loop.
type Session struct {
	id        string
	opts      Options
	dispatch  Dispatcher
	scheduler Scheduler
	debouncer *Debouncer
	fetcher   *Fetcher
	bus       eventbus.EventBus
	log       *logging.Logger

	query   string
	open    bool
	results *domain.ResultSet

	closeTimer Timer
	closeSeq   uint64

	navPending int
	unmounted  bool
}

// SessionOption configures a Session
type SessionOption func(*Session)

// WithScheduler replaces the real-time scheduler
func WithScheduler(s Scheduler) SessionOption {
	return func(sess *Session) { sess.scheduler = s }
}

// WithBus publishes lookup and navigation events on bus
func WithBus(bus eventbus.EventBus) SessionOption {
	return func(sess *Session) { sess.bus = bus }
}

// WithLogger replaces the component logger
func WithLogger(l *logging.Logger) SessionOption {
	return func(sess *Session) { sess.log = l }
}

// NewSession mounts a search box. id distinguishes messages of sessions
// sharing one loop.
func NewSession(id string, lookup Lookup, opts Options, dispatch Dispatcher, options ...SessionOption) *Session {
	s := &Session{
		id:         id,
		opts:       opts.withDefaults(),
		dispatch:   dispatch,
		scheduler:  SystemScheduler,
		navPending: -1,
	}
	for _, opt := range options {
		opt(s)
	}
	if s.log == nil {
		l := logging.Component("search").With().Str("session", id).Logger()
		s.log = &l
	}
	s.debouncer = NewDebouncer(s.scheduler, s.opts.DebounceDelay)
	s.fetcher = NewFetcher(lookup, s.opts.Limit)
	return s
}

// ID returns the session id
func (s *Session) ID() string { return s.id }

// Options returns the effective options
func (s *Session) Options() Options { return s.opts }

// Query returns the trimmed current query
func (s *Session) Query() string { return s.query }

// Open reports whether the dropdown is expanded
func (s *Session) Open() bool { return s.open && !s.unmounted }

// Results returns the retained result set, if any. It can outlive the
// visible dropdown until the collapse delay elapses.
func (s *Session) Results() (domain.ResultSet, bool) {
	if s.results == nil {
		return domain.ResultSet{}, false
	}
	return *s.results, true
}

// PendingIndex returns the row whose navigation is in progress, or -1
func (s *Session) PendingIndex() int { return s.navPending }

// State derives the dropdown state
func (s *Session) State() UIState {
	switch {
	case s.unmounted || !s.open:
		return StateIdle
	case s.debouncer.Pending():
		return StateDebouncing
	case s.fetcher.InFlight():
		return StateLoading
	case s.results == nil:
		return StateIdle
	case s.results.Empty():
		return StateShowingEmpty
	default:
		return StateShowingResults
	}
}

// Input handles a change of the text field
func (s *Session) Input(raw string) {
	if s.unmounted {
		return
	}

	s.query = strings.TrimSpace(raw)
	s.debouncer.Cancel()
	s.fetcher.Invalidate()

	if utf8.RuneCountInString(s.query) < s.opts.MinQueryLength {
		s.collapse()
		return
	}

	s.open = true
	s.cancelClose()
	s.debouncer.Schedule(func(seq uint64) {
		s.dispatch(TimerFiredMsg{Session: s.id, Seq: seq})
	})
}

// Handle applies an asynchronous message. It reports whether the message
// belonged to this session and changed its state.
func (s *Session) Handle(msg any) bool {
	if s.unmounted {
		return false
	}

	switch m := msg.(type) {
	case TimerFiredMsg:
		if m.Session != s.id || !s.debouncer.Accept(m.Seq) {
			return false
		}
		s.issue()
		return true

	case ResultMsg:
		if m.Session != s.id {
			return false
		}
		return s.resolve(m)

	case CloseElapsedMsg:
		if m.Session != s.id || m.Seq != s.closeSeq || s.closeTimer == nil || s.open {
			return false
		}
		s.closeTimer = nil
		s.results = nil
		return true
	}
	return false
}

// Dismiss closes an open dropdown, as an outside click does
func (s *Session) Dismiss() bool {
	if s.unmounted || !s.open {
		return false
	}
	s.collapse()
	s.publish(eventbus.ResultsDismissedEvent{Session: s.id})
	return true
}

// Submit builds the full search page route for the current query. It does
// not touch the debounce timer or an in-flight lookup.
func (s *Session) Submit() (domain.Route, bool) {
	if s.unmounted || s.query == "" {
		return domain.Route{}, false
	}
	route := SearchRoute(s.opts.BasePath, s.query)
	s.publish(eventbus.NavigationRequestedEvent{Session: s.id, Route: route})
	return route, true
}

// Select builds the detail route for a displayed row. While a navigation is
// pending further selections are ignored.
func (s *Session) Select(index int) (domain.Route, bool) {
	if s.unmounted || s.navPending >= 0 || s.State() != StateShowingResults {
		return domain.Route{}, false
	}
	if index < 0 || index >= len(s.results.Items) {
		return domain.Route{}, false
	}

	s.navPending = index
	route := ItemRoute(s.opts.BasePath, s.results.Items[index])
	s.publish(eventbus.NavigationRequestedEvent{Session: s.id, Route: route})
	return route, true
}

// NavigationDone clears the pending navigation marker
func (s *Session) NavigationDone() {
	s.navPending = -1
}

// Unmount tears the session down. Later messages and calls are no-ops.
func (s *Session) Unmount() {
	if s.unmounted {
		return
	}
	s.unmounted = true
	s.open = false
	s.debouncer.Cancel()
	s.fetcher.Invalidate()
	s.cancelClose()
	s.results = nil
}

func (s *Session) issue() {
	token := s.fetcher.Issue(s.id, s.query, s.dispatch)
	s.log.Debug().Uint64("token", token).Str("query", s.query).Msg("lookup issued")
	s.publish(eventbus.LookupIssuedEvent{Session: s.id, Token: token, Query: s.query})
}

func (s *Session) resolve(m ResultMsg) bool {
	elapsed, ok := s.fetcher.Accept(m.Token)
	if !ok {
		s.log.Trace().Uint64("token", m.Token).Str("query", m.Query).Msg("stale lookup response dropped")
		return false
	}

	if m.Err != nil {
		s.log.Warn().Err(m.Err).Uint64("token", m.Token).Str("query", m.Query).Msg("lookup failed")
		s.results = &domain.ResultSet{Query: m.Query}
		s.publish(eventbus.LookupFailedEvent{Session: s.id, Token: m.Token, Query: m.Query, Err: m.Err})
		return true
	}

	s.results = &domain.ResultSet{Query: m.Query, Items: m.Items}
	s.log.Debug().Uint64("token", m.Token).Str("query", m.Query).Int("count", len(m.Items)).
		Dur("elapsed", elapsed).Msg("lookup completed")
	s.publish(eventbus.LookupCompletedEvent{
		Session: s.id,
		Token:   m.Token,
		Query:   m.Query,
		Count:   len(m.Items),
		Elapsed: elapsed,
	})
	return true
}

// collapse hides the dropdown at once and releases the result set after the
// close delay
func (s *Session) collapse() {
	s.open = false
	s.debouncer.Cancel()
	s.fetcher.Invalidate()
	s.cancelClose()

	if s.results == nil {
		return
	}
	if s.opts.CloseDelay <= 0 {
		s.results = nil
		return
	}

	s.closeSeq++
	seq := s.closeSeq
	s.closeTimer = s.scheduler.AfterFunc(s.opts.CloseDelay, func() {
		s.dispatch(CloseElapsedMsg{Session: s.id, Seq: seq})
	})
}

func (s *Session) cancelClose() {
	if s.closeTimer != nil {
		s.closeTimer.Stop()
		s.closeTimer = nil
	}
}

func (s *Session) publish(e eventbus.DomainEvent) {
	if s.bus != nil {
		s.bus.Publish(e)
	}
}
