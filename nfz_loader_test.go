package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleZones = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"name": "Airport"},
      "geometry": {"type": "Polygon", "coordinates": [[[34.0, 31.0], [35.0, 31.0], [35.0, 32.0], [34.0, 32.0], [34.0, 31.0]]]}
    },
    {
      "type": "Feature",
      "properties": {"name": "Twin Bases"},
      "geometry": {"type": "MultiPolygon", "coordinates": [
        [[[10.0, 1.0], [11.0, 1.0], [11.0, 2.0], [10.0, 1.0]]],
        [[[20.0, 1.0], [21.0, 1.0], [21.0, 2.0], [20.0, 1.0]]]
      ]}
    },
    {
      "type": "Feature",
      "properties": {"name": "Beacon"},
      "geometry": {"type": "Point", "coordinates": [34.5, 31.5]}
    },
    {
      "type": "Feature",
      "properties": {},
      "geometry": {"type": "Polygon", "coordinates": [[[0.0, 0.0], [1.0, 0.0], [1.0, 1.0], [0.0, 0.0]]]}
    }
  ]
}`

func TestParseZoneCatalog(t *testing.T) {
	catalog, err := ParseZoneCatalog([]byte(sampleZones))
	require.NoError(t, err)

	zones := catalog.Zones()
	require.Len(t, zones, 4)

	assert.Equal(t, "Airport", zones[0].Name)
	// [lon, lat] becomes (lat, lon) and the closing vertex is dropped
	assert.Equal(t, Ring{{31, 34}, {31, 35}, {32, 35}, {32, 34}}, zones[0].Ring)

	assert.Equal(t, "Twin Bases", zones[1].Name)
	assert.Equal(t, "Twin Bases", zones[2].Name)
	assert.Equal(t, Point{X: 1, Y: 20}, zones[2].Ring[0])

	assert.Equal(t, "zone-4", zones[3].Name)
}

func TestParseZoneCatalogSwapsForPipeline(t *testing.T) {
	catalog, err := ParseZoneCatalog([]byte(sampleZones))
	require.NoError(t, err)

	// drawn in (lat, lon) around 31.5N 34.5E
	drawn := Ring{{31.4, 34.4}, {31.4, 34.6}, {31.6, 34.6}, {31.6, 34.4}}
	assert.Equal(t, []string{"Airport"}, FindIntersectingZones(drawn, catalog))

	// the same numbers in (lon, lat) order miss it
	swapped := Ring{{34.4, 31.4}, {34.6, 31.4}, {34.6, 31.6}, {34.4, 31.6}}
	assert.Empty(t, FindIntersectingZones(swapped, catalog))
}

func TestParseZoneCatalogInvalid(t *testing.T) {
	_, err := ParseZoneCatalog([]byte(`{"type": "FeatureCollection", "features": [`))
	assert.Error(t, err)
}

func TestLoadZoneCatalogBundled(t *testing.T) {
	catalog, err := LoadZoneCatalog("")
	require.NoError(t, err)
	require.Equal(t, 5, catalog.Len())

	names := make([]string, 0, catalog.Len())
	for _, zone := range catalog.Zones() {
		names = append(names, zone.Name)
		assert.GreaterOrEqual(t, len(zone.Ring), 3)
	}
	assert.Equal(t, "Ben Gurion Airport", names[0])

	// a field next to the runway, drawn in (lat, lon)
	drawn := Ring{{32.00, 34.88}, {32.00, 34.89}, {32.01, 34.89}, {32.01, 34.88}}
	assert.Equal(t, []string{"Ben Gurion Airport"}, FindIntersectingZones(drawn, catalog))
}

func TestLoadZoneCatalogFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zones.geojson")
	require.NoError(t, os.WriteFile(path, []byte(sampleZones), 0o644))

	catalog, err := LoadZoneCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, 4, catalog.Len())

	_, err = LoadZoneCatalog(filepath.Join(t.TempDir(), "missing.geojson"))
	assert.Error(t, err)
}

func TestZoneCatalogGeoJSONRoundTrip(t *testing.T) {
	catalog, err := ParseZoneCatalog([]byte(sampleZones))
	require.NoError(t, err)

	data, err := ZoneCatalogGeoJSON(catalog)
	require.NoError(t, err)

	again, err := ParseZoneCatalog(data)
	require.NoError(t, err)
	assert.Equal(t, catalog.Zones(), again.Zones())
}
