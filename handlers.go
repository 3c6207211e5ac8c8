package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
)

// ErrInvalidRing is returned for drawn coordinates that cannot form a ring
var ErrInvalidRing = errors.New("coordinates must hold at least 3 [lat, lon] pairs")

// Server serves the estimator API over a fixed zone catalog
type Server struct {
	catalog    *ZoneCatalog
	store      *PolygonStore
	builder    *RecordBuilder
	dispatcher Dispatcher
}

// NewServer wires the API handlers to their collaborators
func NewServer(catalog *ZoneCatalog, store *PolygonStore, builder *RecordBuilder, dispatcher Dispatcher) *Server {
	return &Server{
		catalog:    catalog,
		store:      store,
		builder:    builder,
		dispatcher: dispatcher,
	}
}

// DrawRequest carries a ring drawn on the map
type DrawRequest struct {
	// Coordinates are [[lat, lon], ...]
	Coordinates [][]float64 `json:"coordinates"`
	// Area is in square meters; estimated from the ring when absent
	Area *float64 `json:"area,omitempty"`
}

// NameRequest carries a display name for the save and rename steps
type NameRequest struct {
	Name string `json:"name"`
}

// PolygonResponse is a record plus display-only fields
type PolygonResponse struct {
	PolygonRecord
	AreaDunams float64 `json:"areaDunams"`
	Blocked    bool    `json:"blocked"`
}

func newPolygonResponse(rec PolygonRecord) PolygonResponse {
	return PolygonResponse{
		PolygonRecord: rec,
		AreaDunams:    AreaInDunams(rec.Area),
		Blocked:       rec.Blocked(),
	}
}

// Routes registers every endpoint on a new router
func (s *Server) Routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(corsMiddleware)

	r.HandleFunc("/health", s.healthHandler).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/zones", s.zonesHandler).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/check", s.checkHandler).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/polygons", s.listPolygonsHandler).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/polygons/draft", s.draftPolygonHandler).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/polygons/{id}", s.getPolygonHandler).Methods(http.MethodGet)
	r.HandleFunc("/polygons/{id}", s.renamePolygonHandler).Methods(http.MethodPatch)
	r.HandleFunc("/polygons/{id}", s.deletePolygonHandler).Methods(http.MethodDelete)
	r.HandleFunc("/polygons/{id}", noContent).Methods(http.MethodOptions)
	r.HandleFunc("/polygons/{id}/save", s.savePolygonHandler).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/polygons/{id}/dispatch", s.dispatchPolygonHandler).Methods(http.MethodPost, http.MethodOptions)

	return r
}

// corsMiddleware adds CORS headers to allow frontend requests
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func noContent(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// GET /health - Health check endpoint
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":        "ready",
		"numZones":      s.catalog.Len(),
		"savedPolygons": s.store.SavedCount(),
	})
}

// GET /zones - Restricted zones as GeoJSON plus their combined bounds
func (s *Server) zonesHandler(w http.ResponseWriter, r *http.Request) {
	data, err := ZoneCatalogGeoJSON(s.catalog)
	if err != nil {
		log.Printf("❌ %v\n", err)
		http.Error(w, "Failed to encode zones", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"zones":  json.RawMessage(data),
		"bounds": s.catalog.Bounds(),
	})
}

// POST /check - Overlapping zone names for a ring, without building a record
func (s *Server) checkHandler(w http.ResponseWriter, r *http.Request) {
	var req DrawRequest
	ring, err := decodeRing(r, &req)
	if err != nil {
		log.Printf("❌ Invalid request body: %v\n", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}

	zones := FindIntersectingZones(ring, s.catalog)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"intersectingNoFlyZones": zones,
		"blocked":                len(zones) > 0,
	})
}

// POST /polygons/draft - Build a record for a freshly drawn ring
func (s *Server) draftPolygonHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("========================================")
	log.Println("📐 Draw request received")
	defer log.Println("========================================")

	var req DrawRequest
	ring, err := decodeRing(r, &req)
	if err != nil {
		log.Printf("❌ Invalid request body: %v\n", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var area float64
	if req.Area != nil {
		area = *req.Area
	} else {
		area = EstimateArea(ring)
	}

	zones := FindIntersectingZones(ring, s.catalog)
	rec := s.builder.Build(ring, area, zones, s.store.SavedCount())
	s.store.AddDraft(rec)

	log.Printf("   Vertices: %d\n", len(ring))
	log.Printf("   Area: %.2f m² (%.2f dunam)\n", area, AreaInDunams(area))
	log.Printf("   Estimated price: %.2f\n", rec.EstimatedPrice)
	if rec.Blocked() {
		log.Printf("   ⚠️  Overlaps %d no-fly zones: %v\n", len(zones), zones)
	} else {
		log.Println("   ✅ No no-fly zone overlap")
	}

	writeJSON(w, http.StatusCreated, newPolygonResponse(rec))
}

// POST /polygons/{id}/save - Save a draft, optionally with a new name
func (s *Server) savePolygonHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req NameRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("❌ Invalid request body: %v\n", err)
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}

	rec, err := s.store.SaveDraft(id, req.Name)
	if err != nil {
		writeStoreError(w, id, err)
		return
	}

	log.Printf("💾 Saved polygon %s as %q\n", rec.ID, rec.Name)
	writeJSON(w, http.StatusOK, newPolygonResponse(rec))
}

// GET /polygons?q=&sort=date|area|price - Saved polygons
func (s *Server) listPolygonsHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	records := s.store.List(query.Get("q"), query.Get("sort"))

	polygons := make([]PolygonResponse, 0, len(records))
	for _, rec := range records {
		polygons = append(polygons, newPolygonResponse(rec))
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"polygons": polygons,
		"count":    len(polygons),
	})
}

// GET /polygons/{id}
func (s *Server) getPolygonHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	rec, err := s.store.Get(id)
	if err != nil {
		writeStoreError(w, id, err)
		return
	}
	writeJSON(w, http.StatusOK, newPolygonResponse(rec))
}

// PATCH /polygons/{id} - Rename a saved polygon
func (s *Server) renamePolygonHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req NameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "A non-empty name is required", http.StatusBadRequest)
		return
	}

	rec, err := s.store.Rename(id, req.Name)
	if err != nil {
		writeStoreError(w, id, err)
		return
	}

	log.Printf("✏️  Renamed polygon %s to %q\n", rec.ID, rec.Name)
	writeJSON(w, http.StatusOK, newPolygonResponse(rec))
}

// DELETE /polygons/{id}
func (s *Server) deletePolygonHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := s.store.Delete(id); err != nil {
		writeStoreError(w, id, err)
		return
	}

	log.Printf("🗑️  Deleted polygon %s\n", id)
	w.WriteHeader(http.StatusNoContent)
}

// POST /polygons/{id}/dispatch - Send a polygon to the drone operator
func (s *Server) dispatchPolygonHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	log.Printf("✈️  Dispatch request for polygon %s\n", id)

	rec, err := s.store.Get(id)
	if err != nil {
		writeStoreError(w, id, err)
		return
	}

	err = DispatchPolygon(r.Context(), s.dispatcher, rec)
	switch {
	case errors.Is(err, ErrDispatchBlocked):
		log.Printf("   ❌ Blocked: %v\n", err)
		writeJSON(w, http.StatusConflict, map[string]interface{}{
			"success":                false,
			"error":                  err.Error(),
			"intersectingNoFlyZones": rec.IntersectingNoFlyZones,
		})
	case err != nil:
		log.Printf("   ❌ Dispatch failed: %v\n", err)
		writeError(w, http.StatusBadGateway, err)
	default:
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"id":      rec.ID,
		})
	}
}

// decodeRing reads a DrawRequest and converts its coordinate pairs to a Ring
func decodeRing(r *http.Request, req *DrawRequest) (Ring, error) {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		return nil, fmt.Errorf("failed to decode request: %w", err)
	}
	return ringFromPairs(req.Coordinates)
}

// ringFromPairs converts [[lat, lon], ...] pairs to a Ring
func ringFromPairs(pairs [][]float64) (Ring, error) {
	if len(pairs) < 3 {
		return nil, ErrInvalidRing
	}

	ring := make(Ring, 0, len(pairs))
	for _, pair := range pairs {
		if len(pair) != 2 {
			return nil, ErrInvalidRing
		}
		ring = append(ring, Point{X: pair[0], Y: pair[1]})
	}
	return ring, nil
}

func writeStoreError(w http.ResponseWriter, id string, err error) {
	if errors.Is(err, ErrPolygonNotFound) {
		writeError(w, http.StatusNotFound, fmt.Errorf("polygon %s: %w", id, err))
		return
	}
	writeError(w, http.StatusInternalServerError, err)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   err.Error(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("⚠️  Failed to write response: %v\n", err)
	}
}
