package ui

import (
	"context"
	"sync"

	"safelogist/internal/domain"
)

// Navigator opens the page a route points at. Navigate blocks until the page
// is closed again or the context ends.
type Navigator interface {
	Navigate(ctx context.Context, route domain.Route) error
}

// RecordNavigator remembers routes instead of opening them. Print mode uses
// it together with quit-on-navigate, so the caller can print the URL once the
// terminal is released.
type RecordNavigator struct {
	mu     sync.Mutex
	routes []domain.Route
}

// Navigate records route
func (n *RecordNavigator) Navigate(_ context.Context, route domain.Route) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.routes = append(n.routes, route)
	return nil
}

// Routes returns every recorded route in order
func (n *RecordNavigator) Routes() []domain.Route {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]domain.Route(nil), n.routes...)
}
