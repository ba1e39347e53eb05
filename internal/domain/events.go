package domain

import "time"

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventLookupIssued        EventType = "LookupIssued"
	EventLookupCompleted     EventType = "LookupCompleted"
	EventLookupFailed        EventType = "LookupFailed"
	EventResultsDismissed    EventType = "ResultsDismissed"
	EventNavigationRequested EventType = "NavigationRequested"
	EventConfigLoaded        EventType = "ConfigLoaded"
	EventConfigSaved         EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// LookupIssuedEvent is emitted when a debounced lookup goes out
type LookupIssuedEvent struct {
	Session string
	Token   uint64
	Query   string
}

func (e LookupIssuedEvent) Type() EventType { return EventLookupIssued }

// LookupCompletedEvent is emitted when the active lookup commits results
type LookupCompletedEvent struct {
	Session string
	Token   uint64
	Query   string
	Count   int
	Elapsed time.Duration
}

func (e LookupCompletedEvent) Type() EventType { return EventLookupCompleted }

// LookupFailedEvent is emitted when the active lookup fails.
// The search box shows it as an empty result.
type LookupFailedEvent struct {
	Session string
	Token   uint64
	Query   string
	Err     error
}

func (e LookupFailedEvent) Type() EventType { return EventLookupFailed }

// ResultsDismissedEvent is emitted when the dropdown is closed by the user
type ResultsDismissedEvent struct {
	Session string
}

func (e ResultsDismissedEvent) Type() EventType { return EventResultsDismissed }

// NavigationRequestedEvent is emitted when the search box produces a route
type NavigationRequestedEvent struct {
	Session string
	Route   Route
}

func (e NavigationRequestedEvent) Type() EventType { return EventNavigationRequested }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
