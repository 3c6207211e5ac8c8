package main

import "math"

// Point is a planar coordinate pair. X holds latitude and Y holds longitude,
// matching the (lat, lon) order used by the drawing surface.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Ring is an implicitly closed polygon boundary. The last vertex connects
// back to the first; no duplicate closing vertex is needed.
type Ring []Point

// LineSegment represents a line segment between two points
type LineSegment struct {
	P1, P2 Point
}

// Edges returns the ring's edges, edge i joining vertex i and vertex i+1 (mod n).
func (r Ring) Edges() []LineSegment {
	n := len(r)
	edges := make([]LineSegment, 0, n)
	for i := 0; i < n; i++ {
		edges = append(edges, LineSegment{P1: r[i], P2: r[(i+1)%n]})
	}
	return edges
}

// IsPointInPolygon checks if a point is inside a ring using ray casting (even-odd rule).
// A horizontal ray is cast towards +X and every edge it crosses flips the result.
//
// Points lying exactly on the boundary get no consistent classification.
func IsPointInPolygon(point Point, ring Ring) bool {
	inside := false
	n := len(ring)

	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		vi, vj := ring[i], ring[j]

		// Edge straddles the scanline: exactly one endpoint strictly above it
		if (vi.Y > point.Y) != (vj.Y > point.Y) {
			crossX := (vj.X-vi.X)*(point.Y-vi.Y)/(vj.Y-vi.Y) + vi.X
			if point.X < crossX {
				inside = !inside
			}
		}
	}

	return inside
}

// ccw reports whether a, b, c turn counter-clockwise. Collinear triples report false.
func ccw(a, b, c Point) bool {
	return (c.Y-a.Y)*(b.X-a.X) > (b.Y-a.Y)*(c.X-a.X)
}

// DoSegmentsIntersect checks if two line segments properly cross.
// Collinear and shared-endpoint cases are not treated specially and usually report false.
func DoSegmentsIntersect(seg1, seg2 LineSegment) bool {
	p1, p2 := seg1.P1, seg1.P2
	p3, p4 := seg2.P1, seg2.P2

	return ccw(p1, p3, p4) != ccw(p2, p3, p4) &&
		ccw(p1, p2, p3) != ccw(p1, p2, p4)
}

// DoesSegmentIntersectPolygon checks if a line segment crosses any edge of a ring
func DoesSegmentIntersectPolygon(seg LineSegment, ring Ring) bool {
	for _, edge := range ring.Edges() {
		if DoSegmentsIntersect(seg, edge) {
			return true
		}
	}
	return false
}

// DoPolygonsIntersect reports whether two simple rings overlap in any way.
//
// The checks short-circuit in order: a vertex of poly1 inside poly2, a vertex
// of poly2 inside poly1, then any pair of crossing edges. Both rings are
// assumed simple; self-intersecting input gives undefined results.
func DoPolygonsIntersect(poly1, poly2 Ring) bool {
	for _, vertex := range poly1 {
		if IsPointInPolygon(vertex, poly2) {
			return true
		}
	}
	for _, vertex := range poly2 {
		if IsPointInPolygon(vertex, poly1) {
			return true
		}
	}

	for _, edge := range poly1.Edges() {
		if DoesSegmentIntersectPolygon(edge, poly2) {
			return true
		}
	}

	return false
}

// BBox represents a bounding box
type BBox struct {
	MinX float64 `json:"minX"`
	MinY float64 `json:"minY"`
	MaxX float64 `json:"maxX"`
	MaxY float64 `json:"maxY"`
}

// getBBox calculates the bounding box of a ring
func getBBox(ring Ring) BBox {
	if len(ring) == 0 {
		return BBox{}
	}

	bbox := BBox{
		MinX: ring[0].X,
		MinY: ring[0].Y,
		MaxX: ring[0].X,
		MaxY: ring[0].Y,
	}

	for _, v := range ring[1:] {
		bbox.MinX = math.Min(bbox.MinX, v.X)
		bbox.MinY = math.Min(bbox.MinY, v.Y)
		bbox.MaxX = math.Max(bbox.MaxX, v.X)
		bbox.MaxY = math.Max(bbox.MaxY, v.Y)
	}

	return bbox
}

// union grows the box to cover other
func (b BBox) union(other BBox) BBox {
	return BBox{
		MinX: math.Min(b.MinX, other.MinX),
		MinY: math.Min(b.MinY, other.MinY),
		MaxX: math.Max(b.MaxX, other.MaxX),
		MaxY: math.Max(b.MaxY, other.MaxY),
	}
}
