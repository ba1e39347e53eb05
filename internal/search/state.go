package search

// UIState is what the dropdown should currently show. It is always derived
// from the session's query, timers and fetch state, never stored.
type UIState int

const (
	StateIdle UIState = iota
	StateDebouncing
	StateLoading
	StateShowingResults
	StateShowingEmpty
)

func (s UIState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDebouncing:
		return "debouncing"
	case StateLoading:
		return "loading"
	case StateShowingResults:
		return "showingResults"
	case StateShowingEmpty:
		return "showingEmpty"
	default:
		return "unknown"
	}
}
