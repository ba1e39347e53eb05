package eventbus

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesSubscribersInOrder(t *testing.T) {
	b := New()
	defer b.Close()

	var mu sync.Mutex
	var got []string
	done := make(chan struct{})

	b.Subscribe(EventLookupIssued, func(e DomainEvent) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, e.(LookupIssuedEvent).Query)
		if len(got) == 3 {
			close(done)
		}
	})

	for _, q := range []string{"ac", "acm", "acme"} {
		b.Publish(LookupIssuedEvent{Session: "header", Query: q})
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("events were not delivered")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"ac", "acm", "acme"}, got)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New()
	defer b.Close()

	removed := make(chan DomainEvent, 1)
	kept := make(chan DomainEvent, 1)

	unsubscribe := b.Subscribe(EventResultsDismissed, func(e DomainEvent) { removed <- e })
	b.Subscribe(EventResultsDismissed, func(e DomainEvent) { kept <- e })
	unsubscribe()

	b.Publish(ResultsDismissedEvent{Session: "dashboard"})

	select {
	case e := <-kept:
		assert.Equal(t, "dashboard", e.(ResultsDismissedEvent).Session)
	case <-time.After(2 * time.Second):
		t.Fatal("remaining subscriber was not called")
	}
	assert.Empty(t, removed)
}

func TestHandlerPanicDoesNotStopDispatch(t *testing.T) {
	b := New()
	defer b.Close()

	got := make(chan DomainEvent, 1)
	b.Subscribe(EventLookupFailed, func(DomainEvent) { panic("boom") })
	b.Subscribe(EventLookupFailed, func(e DomainEvent) { got <- e })

	b.Publish(LookupFailedEvent{Query: "acme"})

	select {
	case e := <-got:
		require.Equal(t, "acme", e.(LookupFailedEvent).Query)
	case <-time.After(2 * time.Second):
		t.Fatal("second handler was not called after panic")
	}
}

func TestPublishAfterCloseIsNoop(t *testing.T) {
	b := New()
	b.Close()
	b.Close()

	assert.NotPanics(t, func() {
		b.Publish(NavigationRequestedEvent{Session: "header"})
	})
}
