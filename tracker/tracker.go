// Package tracker fires page view analytics events on navigation.
//
// The tracker must never block or break the UI: events are queued and
// sent by a background worker, send failures are logged and swallowed,
// and a full queue drops the event rather than stalling the caller.
package tracker

import (
	"context"
	"log/slog"
	"sync"

	portal "github.com/microdemo/portal-go"
	"github.com/microdemo/portal-go/metrics"
	"github.com/microdemo/portal-go/session"
)

// Tracker emits page_view events tagged with the current path and, when
// a session is authenticated, the current identity.
type Tracker struct {
	analytics portal.AnalyticsService
	sessions  *session.Manager
	logger    *slog.Logger
	metrics   *metrics.Metrics

	queue chan string
	done  chan struct{}
	wg    sync.WaitGroup

	closeOnce sync.Once
}

// Option configures the Tracker.
type Option func(*Tracker)

// WithLogger sets a structured logger for swallowed failures.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) { t.logger = l }
}

// WithMetrics enables tracker outcome metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(t *Tracker) { t.metrics = m }
}

// WithQueueSize sets the navigation queue buffer (default 64).
func WithQueueSize(n int) Option {
	return func(t *Tracker) {
		if n > 0 {
			t.queue = make(chan string, n)
		}
	}
}

// New creates a tracker and starts its background sender.
func New(analytics portal.AnalyticsService, sessions *session.Manager, opts ...Option) *Tracker {
	t := &Tracker{
		analytics: analytics,
		sessions:  sessions,
		logger:    slog.Default(),
		metrics:   metrics.New(false),
		queue:     make(chan string, 64),
		done:      make(chan struct{}),
	}
	for _, o := range opts {
		o(t)
	}

	t.wg.Add(1)
	go t.process()

	return t
}

// Navigated reports a navigation to the given path. It never blocks:
// when the queue is full the event is dropped and counted.
func (t *Tracker) Navigated(path string) {
	select {
	case t.queue <- path:
	default:
		t.metrics.RecordTrackerEvent("dropped")
		t.logger.Warn("page view dropped, queue full", "path", path)
	}
}

// process sends queued page views until Close.
func (t *Tracker) process() {
	defer t.wg.Done()

	for {
		select {
		case path := <-t.queue:
			t.send(path)
		case <-t.done:
			// Drain remaining navigations
			for {
				select {
				case path := <-t.queue:
					t.send(path)
				default:
					return
				}
			}
		}
	}
}

// send fires one page_view event. Failures are logged, never surfaced.
func (t *Tracker) send(path string) {
	ev := portal.Event{
		EventType: portal.EventPageView,
		EventData: map[string]any{"path": path},
	}
	if snap := t.sessions.Current(); snap.Authenticated() {
		ev.UserID = snap.Identity
	}

	if _, err := t.analytics.Track(context.Background(), ev); err != nil {
		t.metrics.RecordTrackerEvent("failed")
		t.logger.Warn("page view tracking failed", "path", path, "error", err)
		return
	}
	t.metrics.RecordTrackerEvent("sent")
}

// Close drains the queue and stops the background sender.
func (t *Tracker) Close() error {
	t.closeOnce.Do(func() {
		close(t.done)
		t.wg.Wait()
	})
	return nil
}
