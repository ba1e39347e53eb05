package search

import (
	"context"
	"time"

	"safelogist/internal/domain"
)

// Lookup is the remote read the fetcher issues. lookup.Client satisfies it.
type Lookup interface {
	Search(ctx context.Context, query string, limit int) ([]domain.Company, error)
}

// Dispatcher re-enters the owner's event loop with a message. Timer fires
// and lookup results arrive through it from other goroutines; the owner must
// hand them back to Session.Handle on its own loop.
type Dispatcher func(msg any)

// Options configures one search box
type Options struct {
	DebounceDelay  time.Duration
	MinQueryLength int
	Limit          int
	CloseDelay     time.Duration
	BasePath       string
}

// DefaultOptions mirrors the defaults of the site's header search
func DefaultOptions() Options {
	return Options{
		DebounceDelay:  300 * time.Millisecond,
		MinQueryLength: 2,
		Limit:          10,
		CloseDelay:     300 * time.Millisecond,
		BasePath:       "/ru/reviews",
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.MinQueryLength < 1 {
		o.MinQueryLength = def.MinQueryLength
	}
	if o.Limit < 1 {
		o.Limit = def.Limit
	}
	if o.BasePath == "" {
		o.BasePath = def.BasePath
	}
	if o.DebounceDelay < 0 {
		o.DebounceDelay = 0
	}
	if o.CloseDelay < 0 {
		o.CloseDelay = 0
	}
	return o
}
