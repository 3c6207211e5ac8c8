package main

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestEstimateArea(t *testing.T) {
	// 0.01 x 0.01 degrees near the equator is roughly 1.113 km on each side
	ring := Ring{{0, 0}, {0, 0.01}, {0.01, 0.01}, {0.01, 0}}

	area := EstimateArea(ring)
	assert.InDelta(t, 1.236e6, area, 0.02e6)

	reversed := Ring{ring[3], ring[2], ring[1], ring[0]}
	assert.InDelta(t, area, EstimateArea(reversed), 1e-6)
}

func TestEstimateAreaDegenerate(t *testing.T) {
	assert.Zero(t, EstimateArea(nil))
	assert.Zero(t, EstimateArea(Ring{{1, 1}, {2, 2}}))
}

func TestAreaInDunams(t *testing.T) {
	assert.Equal(t, 2.5, AreaInDunams(2500))
	assert.Zero(t, AreaInDunams(0))
}

func TestOrbRingConversion(t *testing.T) {
	ring := Ring{{31.5, 34.8}, {31.6, 34.8}, {31.6, 34.9}}

	o := toOrbRing(ring)
	assert.Len(t, o, 4)
	assert.Equal(t, orb.Point{34.8, 31.5}, o[0])
	assert.Equal(t, o[0], o[3])

	assert.Equal(t, ring, fromOrbRing(o))
}
