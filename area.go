package main

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// SquareMetersPerDunam converts areas for display
const SquareMetersPerDunam = 1000.0

// EstimateArea returns the spherical area of a (lat, lon) ring in square meters
func EstimateArea(ring Ring) float64 {
	if len(ring) < 3 {
		return 0
	}
	return math.Abs(geo.Area(toOrbRing(ring)))
}

// AreaInDunams converts square meters to dunams
func AreaInDunams(squareMeters float64) float64 {
	return squareMeters / SquareMetersPerDunam
}

// toOrbRing converts a (lat, lon) ring to a closed orb.Ring in [lon, lat] order
func toOrbRing(ring Ring) orb.Ring {
	out := make(orb.Ring, 0, len(ring)+1)
	for _, p := range ring {
		out = append(out, orb.Point{p.Y, p.X})
	}
	if len(out) > 0 && out[0] != out[len(out)-1] {
		out = append(out, out[0])
	}
	return out
}

// fromOrbRing converts an orb.Ring in [lon, lat] order to a (lat, lon) ring,
// dropping the duplicate closing vertex
func fromOrbRing(ring orb.Ring) Ring {
	n := len(ring)
	if n > 1 && ring[0] == ring[n-1] {
		n--
	}
	out := make(Ring, 0, n)
	for _, p := range ring[:n] {
		out = append(out, Point{X: p[1], Y: p[0]})
	}
	return out
}
