package eventbus

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"safelogist/internal/domain"
)

type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

func TestLogEvents(t *testing.T) {
	b := New()
	defer b.Close()

	var buf syncBuffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)
	stop := LogEvents(b, &log)

	b.Publish(LookupIssuedEvent{Session: "header", Token: 3, Query: "acme"})
	b.Publish(LookupFailedEvent{Session: "header", Token: 3, Query: "acme", Err: errors.New("status 502")})
	b.Publish(NavigationRequestedEvent{Session: "header", Route: domain.Route{Kind: domain.RouteItem, Path: "/ru/reviews/item/1"}})

	assert.Eventually(t, func() bool {
		return strings.Count(buf.String(), "\n") >= 3
	}, 2*time.Second, 10*time.Millisecond)

	out := buf.String()
	assert.Contains(t, out, `"event":"LookupIssued"`)
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, `"error":"status 502"`)
	assert.Contains(t, out, `"path":"/ru/reviews/item/1"`)

	stop()
	b.Publish(ResultsDismissedEvent{Session: "header"})
	time.Sleep(50 * time.Millisecond)
	assert.NotContains(t, buf.String(), "ResultsDismissed")
}
