package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storedRecord(id, name string, area float64, created time.Time) PolygonRecord {
	return PolygonRecord{
		ID:                     id,
		Name:                   name,
		Coordinates:            square(0, 0, 1),
		Area:                   area,
		EstimatedPrice:         area * DefaultPricePerSquareMeter,
		CreatedAt:              created,
		IntersectingNoFlyZones: []string{},
	}
}

func seededStore(t *testing.T) *PolygonStore {
	t.Helper()
	s := NewPolygonStore()
	for _, rec := range []PolygonRecord{
		storedRecord("a", "Orchard North", 500, fixedTime),
		storedRecord("b", "Vineyard", 1500, fixedTime.Add(time.Hour)),
		storedRecord("c", "orchard south", 1000, fixedTime.Add(-time.Hour)),
	} {
		s.AddDraft(rec)
		_, err := s.SaveDraft(rec.ID, "")
		require.NoError(t, err)
	}
	return s
}

func ids(records []PolygonRecord) []string {
	out := make([]string, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.ID)
	}
	return out
}

func TestPolygonStoreDraftLifecycle(t *testing.T) {
	s := NewPolygonStore()
	rec := storedRecord("p1", "Polygon 1", 100, fixedTime)

	s.AddDraft(rec)
	assert.Equal(t, 0, s.SavedCount())
	assert.Empty(t, s.List("", SortByDate))

	got, err := s.Get("p1")
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	saved, err := s.SaveDraft("p1", "Field by the river")
	require.NoError(t, err)
	assert.Equal(t, "Field by the river", saved.Name)
	assert.Equal(t, rec.Area, saved.Area)
	assert.Equal(t, rec.CreatedAt, saved.CreatedAt)
	assert.Equal(t, 1, s.SavedCount())

	_, err = s.SaveDraft("p1", "again")
	assert.ErrorIs(t, err, ErrPolygonNotFound)
}

func TestPolygonStoreSaveKeepsDefaultName(t *testing.T) {
	s := NewPolygonStore()
	s.AddDraft(storedRecord("p1", "Polygon 1", 100, fixedTime))

	saved, err := s.SaveDraft("p1", "")
	require.NoError(t, err)
	assert.Equal(t, "Polygon 1", saved.Name)
}

func TestPolygonStoreRename(t *testing.T) {
	s := seededStore(t)

	rec, err := s.Rename("b", "Vineyard East")
	require.NoError(t, err)
	assert.Equal(t, "Vineyard East", rec.Name)
	assert.Equal(t, 1500.0, rec.Area)

	got, err := s.Get("b")
	require.NoError(t, err)
	assert.Equal(t, "Vineyard East", got.Name)

	_, err = s.Rename("missing", "x")
	assert.ErrorIs(t, err, ErrPolygonNotFound)
}

func TestPolygonStoreDelete(t *testing.T) {
	s := seededStore(t)
	s.AddDraft(storedRecord("d", "draft", 1, fixedTime))

	require.NoError(t, s.Delete("a"))
	require.NoError(t, s.Delete("d"))
	assert.Equal(t, 2, s.SavedCount())

	_, err := s.Get("a")
	assert.ErrorIs(t, err, ErrPolygonNotFound)
	assert.ErrorIs(t, s.Delete("a"), ErrPolygonNotFound)
}

func TestPolygonStoreList(t *testing.T) {
	s := seededStore(t)

	tests := []struct {
		name   string
		query  string
		sortBy string
		want   []string
	}{
		{"newest first", "", SortByDate, []string{"b", "a", "c"}},
		{"unknown sort falls back to date", "", "name", []string{"b", "a", "c"}},
		{"largest area first", "", SortByArea, []string{"b", "c", "a"}},
		{"highest price first", "", SortByPrice, []string{"b", "c", "a"}},
		{"case-insensitive filter", "ORCHARD", SortByDate, []string{"a", "c"}},
		{"filter and sort", "orchard", SortByArea, []string{"c", "a"}},
		{"no match", "barley", SortByDate, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(s.List(tt.query, tt.sortBy)))
		})
	}
}

func TestPolygonStoreListTiesByID(t *testing.T) {
	s := NewPolygonStore()
	for _, id := range []string{"z", "m", "a"} {
		s.AddDraft(storedRecord(id, id, 10, fixedTime))
		_, err := s.SaveDraft(id, "")
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"a", "m", "z"}, ids(s.List("", SortByArea)))
}
