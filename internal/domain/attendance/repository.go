package attendance

import (
	"context"
	"time"
)

// Repository defines data access for staff attendance.
type Repository interface {
	// ListRange retrieves attendance rows with date inside [start, end]
	// (plain date column, not a timestamp) joined with staff names.
	ListRange(ctx context.Context, start, end time.Time) ([]Record, error)
}
