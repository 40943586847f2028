package rest

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	portal "github.com/microdemo/portal-go"
)

// analyticsBackend implements portal.AnalyticsService against the analytics service.
type analyticsBackend struct {
	c *Client
}

// compile-time check
var _ portal.AnalyticsService = (*analyticsBackend)(nil)

// Track records a single event.
func (a *analyticsBackend) Track(ctx context.Context, ev portal.Event) (*portal.TrackResult, error) {
	var result portal.TrackResult
	if err := a.c.doJSON(ctx, "analytics", http.MethodPost, "/analytics/track", ev, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Events returns recent events, newest first, optionally filtered.
func (a *analyticsBackend) Events(ctx context.Context, q portal.EventQuery) ([]portal.Event, error) {
	params := url.Values{}
	if q.EventType != "" {
		params.Set("event_type", q.EventType)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	path := "/analytics/events"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var events []portal.Event
	if err := a.c.doJSON(ctx, "analytics", http.MethodGet, path, nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Summary returns per-type event counts.
func (a *analyticsBackend) Summary(ctx context.Context) ([]portal.EventSummary, error) {
	var summary []portal.EventSummary
	if err := a.c.doJSON(ctx, "analytics", http.MethodGet, "/analytics/summary", nil, &summary); err != nil {
		return nil, err
	}
	return summary, nil
}

// Clear deletes all recorded events.
func (a *analyticsBackend) Clear(ctx context.Context) error {
	return a.c.doJSON(ctx, "analytics", http.MethodDelete, "/analytics/events", nil, nil)
}
