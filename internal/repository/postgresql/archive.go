package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/iza-pos/pos-backend-go/internal/domain/archive"
	"github.com/iza-pos/pos-backend-go/internal/pkg/database"
)

type archiveRepository struct {
	db *database.DB
}

// Insert implements archive.Repository. archive_id is deliberately not
// constrained here; repeated runs for the same month create sibling rows.
func (r *archiveRepository) Insert(ctx context.Context, a archive.Archive) (archive.Archive, error) {
	q := GetQuerier(ctx, r.db)

	totalRecords, err := json.Marshal(a.TotalRecords)
	if err != nil {
		return archive.Archive{}, fmt.Errorf("failed to encode total_records: %w", err)
	}
	keyMetrics, err := json.Marshal(a.KeyMetrics)
	if err != nil {
		return archive.Archive{}, fmt.Errorf("failed to encode key_metrics: %w", err)
	}
	fileMetadata, err := json.Marshal(a.FileMetadata)
	if err != nil {
		return archive.Archive{}, fmt.Errorf("failed to encode file_metadata: %w", err)
	}

	if a.ID == "" {
		a.ID = uuid.New().String()
	}

	query := `
		INSERT INTO archives (
			id, archive_id, period_month, period_year, generated_at, generated_by,
			data_types, total_records, key_metrics, file_metadata
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		) RETURNING created_at
	`

	err = q.QueryRow(ctx, query,
		a.ID,
		a.ArchiveID,
		a.PeriodMonth,
		a.PeriodYear,
		a.GeneratedAt,
		a.GeneratedBy,
		a.DataTypes,
		totalRecords,
		keyMetrics,
		fileMetadata,
	).Scan(&a.CreatedAt)

	if err != nil {
		return archive.Archive{}, fmt.Errorf("failed to insert archive: %w", err)
	}

	return a, nil
}

// List implements archive.Repository.
func (r *archiveRepository) List(ctx context.Context) ([]archive.Archive, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.archive_id, a.period_month, a.period_year, a.generated_at,
			   a.generated_by, a.data_types, a.total_records, a.key_metrics,
			   a.file_metadata, a.deleted_at, a.deleted_by, a.created_at,
			   u.full_name AS generated_by_name
		FROM archives a
		LEFT JOIN users u ON u.id = a.generated_by
		WHERE a.deleted_at IS NULL
		ORDER BY a.generated_at DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query archives: %w", err)
	}
	defer rows.Close()

	var archives []archive.Archive
	for rows.Next() {
		a, err := scanArchive(rows)
		if err != nil {
			return nil, err
		}
		archives = append(archives, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read archives: %w", err)
	}

	return archives, nil
}

func scanArchive(row pgx.Row) (archive.Archive, error) {
	var a archive.Archive
	var totalRecords, keyMetrics, fileMetadata []byte

	err := row.Scan(
		&a.ID, &a.ArchiveID, &a.PeriodMonth, &a.PeriodYear, &a.GeneratedAt,
		&a.GeneratedBy, &a.DataTypes, &totalRecords, &keyMetrics,
		&fileMetadata, &a.DeletedAt, &a.DeletedBy, &a.CreatedAt,
		&a.GeneratedByName,
	)
	if err != nil {
		return archive.Archive{}, fmt.Errorf("failed to scan archive: %w", err)
	}

	if err := json.Unmarshal(totalRecords, &a.TotalRecords); err != nil {
		return archive.Archive{}, fmt.Errorf("failed to decode total_records: %w", err)
	}
	if err := json.Unmarshal(keyMetrics, &a.KeyMetrics); err != nil {
		return archive.Archive{}, fmt.Errorf("failed to decode key_metrics: %w", err)
	}
	if err := json.Unmarshal(fileMetadata, &a.FileMetadata); err != nil {
		return archive.Archive{}, fmt.Errorf("failed to decode file_metadata: %w", err)
	}

	return a, nil
}

// SoftDelete implements archive.Repository. The row survives; only the
// deletion markers are stamped.
func (r *archiveRepository) SoftDelete(ctx context.Context, archiveID string, deletedBy string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE archives
		SET deleted_at = NOW(), deleted_by = $2
		WHERE archive_id = $1 AND deleted_at IS NULL
		RETURNING id
	`

	var id string
	if err := q.QueryRow(ctx, query, archiveID, deletedBy).Scan(&id); err != nil {
		if err == pgx.ErrNoRows {
			return archive.ErrArchiveNotFound
		}
		return fmt.Errorf("failed to delete archive: %w", err)
	}

	return nil
}

// ExistsForMonth implements archive.Repository.
func (r *archiveRepository) ExistsForMonth(ctx context.Context, archiveID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM archives
			WHERE archive_id = $1 AND deleted_at IS NULL
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, archiveID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check archive existence: %w", err)
	}

	return exists, nil
}

func NewArchiveRepository(db *database.DB) archive.Repository {
	return &archiveRepository{db: db}
}
