package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"
)

// ErrDispatchBlocked is returned when a polygon overlaps a restricted zone
var ErrDispatchBlocked = errors.New("polygon overlaps a no-fly zone")

// Dispatcher sends a polygon to the drone operator
type Dispatcher interface {
	Dispatch(ctx context.Context, rec PolygonRecord) error
}

// CheckDispatchAllowed refuses records that overlap any restricted zone
func CheckDispatchAllowed(rec PolygonRecord) error {
	if rec.Blocked() {
		return fmt.Errorf("%w: %v", ErrDispatchBlocked, rec.IntersectingNoFlyZones)
	}
	return nil
}

// DispatchPolygon checks the gate and then hands the record to d
func DispatchPolygon(ctx context.Context, d Dispatcher, rec PolygonRecord) error {
	if err := CheckDispatchAllowed(rec); err != nil {
		return err
	}
	return d.Dispatch(ctx, rec)
}

// HTTPDispatcher posts the record as JSON to an operator endpoint
type HTTPDispatcher struct {
	URL    string
	Client *http.Client
}

// NewHTTPDispatcher creates a dispatcher with the given request timeout
func NewHTTPDispatcher(url string, timeout time.Duration) *HTTPDispatcher {
	return &HTTPDispatcher{
		URL:    url,
		Client: &http.Client{Timeout: timeout},
	}
}

// Dispatch implements Dispatcher
func (d *HTTPDispatcher) Dispatch(ctx context.Context, rec PolygonRecord) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal polygon: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build dispatch request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.Client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to dispatch polygon: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("operator rejected polygon: status %d", resp.StatusCode)
	}

	log.Printf("   ✅ Polygon %s dispatched to %s\n", rec.ID, d.URL)
	return nil
}

// LogDispatcher only logs; used when no operator endpoint is configured
type LogDispatcher struct{}

// Dispatch implements Dispatcher
func (LogDispatcher) Dispatch(_ context.Context, rec PolygonRecord) error {
	log.Printf("   ✈️  Polygon %s (%q, %.2f m²) ready for the drone operator\n", rec.ID, rec.Name, rec.Area)
	return nil
}

// newDispatcher returns an HTTP dispatcher when url is set, otherwise a LogDispatcher
func newDispatcher(url string, timeout time.Duration) Dispatcher {
	if url == "" {
		return LogDispatcher{}
	}
	return NewHTTPDispatcher(url, timeout)
}
