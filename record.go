package main

import (
	"fmt"
	"time"
)

// DefaultPricePerSquareMeter is the estimate rate applied to drawn areas
const DefaultPricePerSquareMeter = 0.5

// PolygonRecord is a drawn polygon together with its derived estimate
type PolygonRecord struct {
	ID                     string    `json:"id"`
	Coordinates            Ring      `json:"coordinates"`
	Area                   float64   `json:"area"`
	EstimatedPrice         float64   `json:"estimatedPrice"`
	CreatedAt              time.Time `json:"createdAt"`
	Name                   string    `json:"name"`
	IntersectingNoFlyZones []string  `json:"intersectingNoFlyZones"`
}

// Blocked reports whether the record overlaps a restricted zone and must not be dispatched
func (p PolygonRecord) Blocked() bool {
	return len(p.IntersectingNoFlyZones) > 0
}

// RecordBuilder assembles PolygonRecords. IDs and timestamps come from the
// injected sources so builds are reproducible in tests.
type RecordBuilder struct {
	PricePerSquareMeter float64
	NamePrefix          string
	IDs                 IDSource
	Now                 func() time.Time
}

// NewRecordBuilder creates a builder with a UUID source and the wall clock
func NewRecordBuilder(pricePerSquareMeter float64, namePrefix string) *RecordBuilder {
	return &RecordBuilder{
		PricePerSquareMeter: pricePerSquareMeter,
		NamePrefix:          namePrefix,
		IDs:                 UUIDSource{},
		Now:                 time.Now,
	}
}

// Build packages a drawn ring, its precomputed area and its overlapping zone
// names into a record. savedCount is the number of records already saved
// and drives the default name. Zero or negative areas are not rejected.
func (b *RecordBuilder) Build(ring Ring, area float64, zones []string, savedCount int) PolygonRecord {
	coords := make(Ring, len(ring))
	copy(coords, ring)

	overlaps := make([]string, len(zones))
	copy(overlaps, zones)

	return PolygonRecord{
		ID:                     b.IDs.NextID(),
		Coordinates:            coords,
		Area:                   area,
		EstimatedPrice:         area * b.PricePerSquareMeter,
		CreatedAt:              b.Now(),
		Name:                   fmt.Sprintf("%s %d", b.NamePrefix, savedCount+1),
		IntersectingNoFlyZones: overlaps,
	}
}
