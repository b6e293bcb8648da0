package activity

import (
	"context"
	"time"
)

// LogRepository defines data access for activity logs.
type LogRepository interface {
	// ListRange retrieves logs with timestamp inside [start, end of the end
	// day], newest first.
	ListRange(ctx context.Context, start, end time.Time) ([]Log, error)

	// DeleteRange hard-deletes logs inside the range and returns the number
	// of rows removed. Only used by the explicit post-archive purge.
	DeleteRange(ctx context.Context, start, end time.Time) (int64, error)
}
