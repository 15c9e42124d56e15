package domain

import (
	"sort"
	"strings"
)

// FallbackTable is an immutable lookup of well-known cities used when the
// remote geocoder has no answer.
type FallbackTable struct {
	keys    []string
	entries map[string]Location
}

// NewFallbackTable builds a table from city name to location. Keys are
// case-folded and trimmed; the input map is copied.
func NewFallbackTable(cities map[string]Location) FallbackTable {
	t := FallbackTable{entries: make(map[string]Location, len(cities))}
	for name, loc := range cities {
		key := normalizeQuery(name)
		if key == "" {
			continue
		}
		if _, dup := t.entries[key]; !dup {
			t.keys = append(t.keys, key)
		}
		t.entries[key] = loc
	}
	sort.Strings(t.keys)
	return t
}

// DefaultFallbackTable returns the built-in city table.
func DefaultFallbackTable() FallbackTable {
	return NewFallbackTable(map[string]Location{
		"douala":   {Latitude: 4.0511, Longitude: 9.7679, DisplayName: "Douala, Cameroon"},
		"yaounde":  {Latitude: 3.8480, Longitude: 11.5021, DisplayName: "Yaoundé, Cameroon"},
		"paris":    {Latitude: 48.8566, Longitude: 2.3522, DisplayName: "Paris, France"},
		"london":   {Latitude: 51.5074, Longitude: -0.1278, DisplayName: "London, UK"},
		"new york": {Latitude: 40.7128, Longitude: -74.0060, DisplayName: "New York, USA"},
		"tokyo":    {Latitude: 35.6762, Longitude: 139.6503, DisplayName: "Tokyo, Japan"},
		"lagos":    {Latitude: 6.5244, Longitude: 3.3792, DisplayName: "Lagos, Nigeria"},
		"nairobi":  {Latitude: -1.2864, Longitude: 36.8172, DisplayName: "Nairobi, Kenya"},
		"cairo":    {Latitude: 30.0444, Longitude: 31.2357, DisplayName: "Cairo, Egypt"},
	})
}

// Len returns the number of cities in the table.
func (t FallbackTable) Len() int {
	return len(t.keys)
}

// Lookup matches query case-insensitively. An exact key wins; otherwise the
// first key (in sorted order) that contains the query or is contained in it.
func (t FallbackTable) Lookup(query string) (Location, bool) {
	q := normalizeQuery(query)
	if q == "" {
		return Location{}, false
	}
	if loc, ok := t.entries[q]; ok {
		return loc, true
	}
	for _, k := range t.keys {
		if strings.Contains(q, k) || strings.Contains(k, q) {
			return t.entries[k], true
		}
	}
	return Location{}, false
}

func normalizeQuery(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
