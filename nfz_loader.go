package main

import (
	_ "embed"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// bundledNoFlyZones is the catalog served when no zones file is configured
//
//go:embed data/noflyzones.geojson
var bundledNoFlyZones []byte

// LoadZoneCatalog loads the restricted zones from a GeoJSON file, or the
// bundled catalog when path is empty
func LoadZoneCatalog(path string) (*ZoneCatalog, error) {
	if path == "" {
		log.Println("Loading bundled no-fly zone catalog...")
		return ParseZoneCatalog(bundledNoFlyZones)
	}

	log.Printf("Loading no-fly zones from %s...\n", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	return ParseZoneCatalog(data)
}

// ParseZoneCatalog converts a GeoJSON FeatureCollection into a zone catalog.
// Coordinates are stored as [lon, lat] and are swapped to (lat, lon).
// Features with unsupported geometry are skipped.
func ParseZoneCatalog(data []byte) (*ZoneCatalog, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feature collection: %w", err)
	}

	var zones []RestrictedZone
	for i, feature := range fc.Features {
		name := feature.Properties.MustString("name", fmt.Sprintf("zone-%d", i+1))
		parsed := parseZoneGeometry(name, feature.Geometry)
		if len(parsed) == 0 {
			log.Printf("⚠️  Skipping feature %q: unsupported geometry\n", name)
			continue
		}
		zones = append(zones, parsed...)
	}

	log.Printf("   ✅ Loaded %d no-fly zones from %d features\n", len(zones), len(fc.Features))
	return NewZoneCatalog(zones), nil
}

// parseZoneGeometry converts a feature geometry to zones, using the outer
// ring of each polygon
func parseZoneGeometry(name string, geometry orb.Geometry) []RestrictedZone {
	var zones []RestrictedZone

	switch g := geometry.(type) {
	case orb.Polygon:
		if len(g) > 0 {
			zones = append(zones, RestrictedZone{Name: name, Ring: fromOrbRing(g[0])})
		}

	case orb.MultiPolygon:
		for _, polygon := range g {
			if len(polygon) > 0 {
				zones = append(zones, RestrictedZone{Name: name, Ring: fromOrbRing(polygon[0])})
			}
		}
	}

	return zones
}

// ZoneCatalogGeoJSON encodes the catalog back into a GeoJSON FeatureCollection
// in [lon, lat] order, one Polygon feature per zone
func ZoneCatalogGeoJSON(catalog *ZoneCatalog) ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	for _, zone := range catalog.Zones() {
		feature := geojson.NewFeature(orb.Polygon{toOrbRing(zone.Ring)})
		feature.Properties["name"] = zone.Name
		fc.Append(feature)
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal zones: %w", err)
	}
	return data, nil
}
