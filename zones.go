package main

// RestrictedZone is a named no-fly area from the catalog
type RestrictedZone struct {
	Name string `json:"name"`
	Ring Ring   `json:"ring"`
}

// ZoneCatalog is the fixed set of restricted zones, in source order.
// It is built once at startup and only read afterwards, so it can be
// shared between requests without locking.
type ZoneCatalog struct {
	zones []RestrictedZone
}

// NewZoneCatalog creates a catalog holding a private copy of zones
func NewZoneCatalog(zones []RestrictedZone) *ZoneCatalog {
	copied := make([]RestrictedZone, len(zones))
	copy(copied, zones)
	return &ZoneCatalog{zones: copied}
}

// Len returns the number of zones in the catalog
func (c *ZoneCatalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.zones)
}

// Zones returns a copy of the catalog's zones
func (c *ZoneCatalog) Zones() []RestrictedZone {
	if c == nil {
		return nil
	}
	zones := make([]RestrictedZone, len(c.zones))
	copy(zones, c.zones)
	return zones
}

// Bounds returns the box covering every zone in the catalog
func (c *ZoneCatalog) Bounds() BBox {
	if c.Len() == 0 {
		return BBox{}
	}
	bounds := getBBox(c.zones[0].Ring)
	for _, zone := range c.zones[1:] {
		bounds = bounds.union(getBBox(zone.Ring))
	}
	return bounds
}

// FindIntersectingZones returns the names of catalog zones overlapping ring,
// in catalog order. The result is never nil; no match gives an empty slice.
func FindIntersectingZones(ring Ring, catalog *ZoneCatalog) []string {
	names := make([]string, 0)
	if catalog == nil {
		return names
	}

	for _, zone := range catalog.zones {
		if DoPolygonsIntersect(ring, zone.Ring) {
			names = append(names, zone.Name)
		}
	}

	return names
}
