package main

import (
	"errors"
	"sort"
	"strings"
	"sync"
)

// ErrPolygonNotFound is returned when no draft or saved record has the given ID
var ErrPolygonNotFound = errors.New("polygon not found")

// Sort orders accepted by PolygonStore.List. All orders are descending.
const (
	SortByDate  = "date"
	SortByArea  = "area"
	SortByPrice = "price"
)

// PolygonStore keeps drafts and saved polygon records for the lifetime of the process
type PolygonStore struct {
	mu     sync.RWMutex
	drafts map[string]PolygonRecord
	saved  map[string]PolygonRecord
}

// NewPolygonStore creates an empty store
func NewPolygonStore() *PolygonStore {
	return &PolygonStore{
		drafts: make(map[string]PolygonRecord),
		saved:  make(map[string]PolygonRecord),
	}
}

// SavedCount returns the number of saved records
func (s *PolygonStore) SavedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.saved)
}

// AddDraft keeps a freshly built record until the user saves it
func (s *PolygonStore) AddDraft(rec PolygonRecord) {
	s.mu.Lock()
	s.drafts[rec.ID] = rec
	s.mu.Unlock()
}

// SaveDraft moves a draft into the saved set. A non-empty name replaces the
// default one; nothing else about the record changes.
func (s *PolygonStore) SaveDraft(id, name string) (PolygonRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.drafts[id]
	if !ok {
		return PolygonRecord{}, ErrPolygonNotFound
	}
	if name != "" {
		rec.Name = name
	}

	delete(s.drafts, id)
	s.saved[id] = rec
	return rec, nil
}

// Rename changes the display name of a saved record
func (s *PolygonStore) Rename(id, name string) (PolygonRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.saved[id]
	if !ok {
		return PolygonRecord{}, ErrPolygonNotFound
	}
	rec.Name = name
	s.saved[id] = rec
	return rec, nil
}

// Delete removes a saved record or a pending draft
func (s *PolygonStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.saved[id]; ok {
		delete(s.saved, id)
		return nil
	}
	if _, ok := s.drafts[id]; ok {
		delete(s.drafts, id)
		return nil
	}
	return ErrPolygonNotFound
}

// Get looks up a record, saved records first, then drafts
func (s *PolygonStore) Get(id string) (PolygonRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if rec, ok := s.saved[id]; ok {
		return rec, nil
	}
	if rec, ok := s.drafts[id]; ok {
		return rec, nil
	}
	return PolygonRecord{}, ErrPolygonNotFound
}

// List returns saved records whose name contains query (case-insensitive),
// sorted descending by date, area or price. Unknown orders fall back to date.
func (s *PolygonStore) List(query, sortBy string) []PolygonRecord {
	s.mu.RLock()
	needle := strings.ToLower(query)
	result := make([]PolygonRecord, 0, len(s.saved))
	for _, rec := range s.saved {
		if strings.Contains(strings.ToLower(rec.Name), needle) {
			result = append(result, rec)
		}
	}
	s.mu.RUnlock()

	var less func(a, b PolygonRecord) bool
	switch sortBy {
	case SortByArea:
		less = func(a, b PolygonRecord) bool { return a.Area > b.Area }
	case SortByPrice:
		less = func(a, b PolygonRecord) bool { return a.EstimatedPrice > b.EstimatedPrice }
	default:
		less = func(a, b PolygonRecord) bool { return a.CreatedAt.After(b.CreatedAt) }
	}

	// ID breaks ties so map iteration order never leaks into the result
	sort.SliceStable(result, func(i, j int) bool {
		if less(result[i], result[j]) {
			return true
		}
		if less(result[j], result[i]) {
			return false
		}
		return result[i].ID < result[j].ID
	})

	return result
}
