package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/iza-pos/pos-backend-go/internal/domain/activity"
	"github.com/iza-pos/pos-backend-go/internal/pkg/database"
)

type activityLogRepository struct {
	db *database.DB
}

// ListRange implements activity.LogRepository. The range is inclusive of
// the entire end day: [start, end 23:59:59].
func (r *activityLogRepository) ListRange(ctx context.Context, start, end time.Time) ([]activity.Log, error) {
	q := GetQuerier(ctx, r.db)

	endOfDay := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, end.Location())

	query := `
		SELECT id, timestamp, user_name, action, category, severity, description, created_at
		FROM activity_logs
		WHERE timestamp >= $1 AND timestamp <= $2
		ORDER BY timestamp DESC
	`

	rows, err := q.Query(ctx, query, start, endOfDay)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity logs: %w", err)
	}
	defer rows.Close()

	var logs []activity.Log
	for rows.Next() {
		var l activity.Log
		err := rows.Scan(
			&l.ID, &l.Timestamp, &l.UserName, &l.Action,
			&l.Category, &l.Severity, &l.Description, &l.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity log: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read activity logs: %w", err)
	}

	return logs, nil
}

// DeleteRange implements activity.LogRepository.
func (r *activityLogRepository) DeleteRange(ctx context.Context, start, end time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	endOfDay := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, end.Location())

	commandTag, err := q.Exec(ctx,
		`DELETE FROM activity_logs WHERE timestamp >= $1 AND timestamp <= $2`,
		start, endOfDay,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete activity logs: %w", err)
	}

	return commandTag.RowsAffected(), nil
}

func NewActivityLogRepository(db *database.DB) activity.LogRepository {
	return &activityLogRepository{db: db}
}
