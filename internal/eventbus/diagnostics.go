package eventbus

import (
	"github.com/rs/zerolog"

	"safelogist/internal/logging"
)

// LogEvents subscribes a logger to every event type. Lookup traffic is logged
// at debug, failures at warn, the rest at info. The returned function removes
// all subscriptions.
func LogEvents(b EventBus, log *logging.Logger) func() {
	handle := func(e DomainEvent) {
		var ev *zerolog.Event
		switch e := e.(type) {
		case LookupIssuedEvent:
			ev = log.Debug().Str("session", e.Session).Uint64("token", e.Token).Str("query", e.Query)
		case LookupCompletedEvent:
			ev = log.Debug().Str("session", e.Session).Uint64("token", e.Token).Str("query", e.Query).
				Int("count", e.Count).Dur("elapsed", e.Elapsed)
		case LookupFailedEvent:
			ev = log.Warn().Str("session", e.Session).Uint64("token", e.Token).Str("query", e.Query).Err(e.Err)
		case ResultsDismissedEvent:
			ev = log.Debug().Str("session", e.Session)
		case NavigationRequestedEvent:
			ev = log.Info().Str("session", e.Session).Str("kind", e.Route.Kind.String()).Str("path", e.Route.Path)
		case ConfigLoadedEvent:
			ev = log.Info().Str("path", e.Path)
		case ConfigSavedEvent:
			ev = log.Info().Str("path", e.Path)
		default:
			ev = log.Debug()
		}
		ev.Str("event", string(e.Type())).Msg("event")
	}

	types := []EventType{
		EventLookupIssued,
		EventLookupCompleted,
		EventLookupFailed,
		EventResultsDismissed,
		EventNavigationRequested,
		EventConfigLoaded,
		EventConfigSaved,
	}
	unsubs := make([]func(), 0, len(types))
	for _, t := range types {
		unsubs = append(unsubs, b.Subscribe(t, handle))
	}

	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}
