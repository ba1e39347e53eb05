package ui

import (
	"context"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"safelogist/internal/config"
	"safelogist/internal/domain"
	"safelogist/internal/eventbus"
	"safelogist/internal/logging"
	"safelogist/internal/search"
	"safelogist/internal/ui/views"
)

// DefaultSessionID names the search box when only one is mounted
const DefaultSessionID = "header"

// Model is the search screen: one text field, a submit button and the
// results dropdown driven by a search.Session
type Model struct {
	config  *config.Config
	session *search.Session
	nav     Navigator
	log     *logging.Logger

	input    textinput.Model
	help     help.Model
	keys     keyMap
	renderer *views.Renderer
	layout   views.Layout

	// messages posted from timer and lookup goroutines
	msgs     chan any
	done     chan struct{}
	doneOnce sync.Once

	width          int
	cursor         int // highlighted row, -1 while the field has focus
	navigating     bool
	quitOnNavigate bool
	quitting       bool
	status         string
	lastRoute      *domain.Route

	// collected before the session is built
	sessionID string
	sessOpts  []search.SessionOption
}

// ModelOption configures a Model
type ModelOption func(*Model)

// WithBus publishes the session's events on bus
func WithBus(bus eventbus.EventBus) ModelOption {
	return func(m *Model) {
		if bus != nil {
			m.sessOpts = append(m.sessOpts, search.WithBus(bus))
		}
	}
}

// WithScheduler replaces the real-time timers of the session
func WithScheduler(s search.Scheduler) ModelOption {
	return func(m *Model) { m.sessOpts = append(m.sessOpts, search.WithScheduler(s)) }
}

// WithSessionID names the session
func WithSessionID(id string) ModelOption {
	return func(m *Model) { m.sessionID = id }
}

// WithQuitOnNavigate ends the program after the first successful navigation
func WithQuitOnNavigate() ModelOption {
	return func(m *Model) { m.quitOnNavigate = true }
}

// NewModel creates the search screen
func NewModel(cfg *config.Config, lookup search.Lookup, nav Navigator, opts ...ModelOption) *Model {
	ti := textinput.New()
	ti.Placeholder = "Company name"
	ti.Prompt = "⌕ "
	ti.CharLimit = 200
	ti.Focus()

	m := &Model{
		config:    cfg,
		nav:       nav,
		log:       logging.Component("ui"),
		input:     ti,
		help:      help.New(),
		keys:      defaultKeyMap(),
		renderer:  views.NewRenderer(),
		msgs:      make(chan any, 64),
		done:      make(chan struct{}),
		cursor:    -1,
		sessionID: DefaultSessionID,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.session = search.NewSession(m.sessionID, lookup, searchOptions(cfg), m.dispatch, m.sessOpts...)
	return m
}

func searchOptions(cfg *config.Config) search.Options {
	return search.Options{
		DebounceDelay:  cfg.DebounceDelay(),
		MinQueryLength: cfg.Search.MinQueryLength,
		Limit:          cfg.Search.Limit,
		CloseDelay:     cfg.CloseDelay(),
		BasePath:       cfg.BasePath(),
	}
}

// Session exposes the search session
func (m *Model) Session() *search.Session {
	return m.session
}

// LastRoute returns the route of the last completed navigation
func (m *Model) LastRoute() (domain.Route, bool) {
	if m.lastRoute == nil {
		return domain.Route{}, false
	}
	return *m.lastRoute, true
}

// dispatch is the session's way back onto the loop. It never blocks past
// shutdown.
func (m *Model) dispatch(msg any) {
	select {
	case m.msgs <- msg:
	case <-m.done:
	}
}

// listen waits for the next dispatched message
func (m *Model) listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-m.msgs:
			return dispatchedMsg{msg: msg}
		case <-m.done:
			return nil
		}
	}
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.listen())
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case dispatchedMsg:
		if m.session.Handle(msg.msg) {
			m.cursor = -1
		}
		return m, m.listen()

	case navigatedMsg:
		m.navigating = false
		m.session.NavigationDone()
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Str("path", msg.route.Path).Msg("navigation failed")
			m.status = "Could not open " + msg.route.Path
			return m, nil
		}
		route := msg.route
		m.lastRoute = &route
		m.log.Info().Str("kind", route.Kind.String()).Str("path", route.Path).Msg("navigated")
		if m.quitOnNavigate {
			return m, m.quit()
		}
		return m, nil

	case helpPagerMsg:
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Msg("help pager failed")
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quit()

	case key.Matches(msg, m.keys.Dismiss):
		if m.session.Dismiss() {
			m.cursor = -1
			return m, nil
		}
		return m, m.quit()

	case key.Matches(msg, m.keys.Help):
		return m, m.showHelp()

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		if m.cursor >= 0 {
			return m, m.selectRow(m.cursor)
		}
		return m, m.submit()
	}

	prev := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != prev {
		m.status = ""
		m.cursor = -1
		m.session.Input(value)
	}
	return m, cmd
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	if m.layout.OnButton(msg.X, msg.Y) {
		return m, m.submit()
	}
	if row := m.layout.RowAt(msg.X, msg.Y); row >= 0 {
		m.cursor = row
		return m, m.selectRow(row)
	}
	if !m.layout.Contains(msg.X, msg.Y) && m.session.Dismiss() {
		m.cursor = -1
	}
	return m, nil
}

func (m *Model) moveCursor(delta int) {
	if m.session.State() != search.StateShowingResults {
		m.cursor = -1
		return
	}
	rs, _ := m.session.Results()

	next := m.cursor + delta
	if next < -1 {
		next = -1
	}
	if next > len(rs.Items)-1 {
		next = len(rs.Items) - 1
	}
	m.cursor = next
}

func (m *Model) selectRow(index int) tea.Cmd {
	if m.navigating {
		return nil
	}
	route, ok := m.session.Select(index)
	if !ok {
		return nil
	}
	return m.navigate(route)
}

func (m *Model) submit() tea.Cmd {
	if m.navigating {
		return nil
	}
	route, ok := m.session.Submit()
	if !ok {
		return nil
	}
	return m.navigate(route)
}

func (m *Model) navigate(route domain.Route) tea.Cmd {
	m.navigating = true
	m.status = ""
	nav := m.nav
	return func() tea.Msg {
		return navigatedMsg{route: route, err: nav.Navigate(context.Background(), route)}
	}
}

// showHelp pages the key reference when the navigator can page text
func (m *Model) showHelp() tea.Cmd {
	pager, ok := m.nav.(Pager)
	if !ok || m.navigating {
		return nil
	}
	content := RenderHelpContent(m.config.BasePath())
	return func() tea.Msg {
		return helpPagerMsg{err: pager.Show(content)}
	}
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.session.Unmount()
	m.doneOnce.Do(func() { close(m.done) })
	return tea.Quit
}

// View renders the screen and remembers the layout for mouse handling
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	state := m.session.State()
	vs := views.ViewState{
		Width:       m.width,
		Input:       m.input.View(),
		Focused:     m.cursor < 0,
		State:       state,
		Query:       m.session.Query(),
		Cursor:      m.cursor,
		Pending:     m.session.PendingIndex(),
		LoadingText: m.config.Search.LoadingText,
		EmptyText:   m.config.Search.EmptyText,
		Status:      m.status,
		Help:        m.help.View(m.keys),
	}
	if rs, ok := m.session.Results(); ok {
		vs.Items = rs.Items
		if state == search.StateShowingResults {
			vs.Query = rs.Query
		}
	}

	out, layout := m.renderer.Render(vs)
	m.layout = layout
	return out
}
