package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/iza-pos/pos-backend-go/internal/domain/attendance"
	"github.com/iza-pos/pos-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

// ListRange implements attendance.Repository. The date column is a plain
// date, so the range is [start, end] without any end-of-day adjustment.
func (r *attendanceRepository) ListRange(ctx context.Context, start, end time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.staff_id, a.date, a.clock_in, a.clock_out, a.status, a.notes,
			   COALESCE(s.full_name, a.staff_id) AS staff_name
		FROM staff_attendances a
		LEFT JOIN staff s ON s.id = a.staff_id
		WHERE a.date >= $1 AND a.date <= $2
		ORDER BY a.date ASC, staff_name ASC
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query staff attendance: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		err := rows.Scan(
			&rec.ID, &rec.StaffID, &rec.Date, &rec.ClockIn, &rec.ClockOut,
			&rec.Status, &rec.Notes, &rec.StaffName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read staff attendance: %w", err)
	}

	return records, nil
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}
