package domain

import (
	"context"
	"time"
)

// Geocoder turns free text into candidate locations.
type Geocoder interface {
	// Search returns candidates ordered by relevance, best first. No match is
	// an empty slice and a nil error; transport or upstream failures are errors.
	Search(ctx context.Context, query string) ([]Location, error)
}

// Archive serves historical daily observations.
type Archive interface {
	// DailyRange returns every day in [start, end] the archive has, in one
	// upstream request. Days or metrics the archive lacks are absent or nil.
	DailyRange(ctx context.Context, loc Location, start, end time.Time) ([]DailyRecord, error)
}
