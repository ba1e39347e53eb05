package ui

import "safelogist/internal/domain"

// dispatchedMsg carries a message posted by a timer or a lookup goroutine
// back onto the Bubble Tea loop
type dispatchedMsg struct {
	msg any
}

// navigatedMsg reports that the navigator finished with a route
type navigatedMsg struct {
	route domain.Route
	err   error
}
