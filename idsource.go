package main

import (
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// IDSource hands out identifiers for new polygon records
type IDSource interface {
	NextID() string
}

// UUIDSource generates random UUIDv4 identifiers
type UUIDSource struct{}

// NextID implements IDSource
func (UUIDSource) NextID() string {
	return uuid.New().String()
}

// CounterSource generates "<prefix><n>" identifiers starting at 1.
// Safe for concurrent use.
type CounterSource struct {
	Prefix string
	n      atomic.Int64
}

// NextID implements IDSource
func (c *CounterSource) NextID() string {
	return c.Prefix + strconv.FormatInt(c.n.Add(1), 10)
}

// TimeSource uses the current Unix time in milliseconds as the identifier.
// Two records created within the same millisecond get the same ID.
type TimeSource struct {
	Now func() time.Time
}

// NextID implements IDSource
func (s TimeSource) NextID() string {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return strconv.FormatInt(now().UnixMilli(), 10)
}

// newIDSource picks an IDSource by name: "uuid", "time" or "counter"
func newIDSource(kind string) IDSource {
	switch kind {
	case "time":
		return TimeSource{}
	case "counter":
		return &CounterSource{}
	default:
		return UUIDSource{}
	}
}
