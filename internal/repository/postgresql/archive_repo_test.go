package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iza-pos/pos-backend-go/internal/domain/archive"
	"github.com/iza-pos/pos-backend-go/internal/repository/postgresql"
)

func testArchive(archiveID string, generatedBy string, generatedAt time.Time) archive.Archive {
	orders := 3
	revenue := 400000.0
	return archive.Archive{
		ArchiveID:   archiveID,
		PeriodMonth: generatedAt.AddDate(0, -1, 0).Month().String(),
		PeriodYear:  generatedAt.Format("2006"),
		GeneratedAt: generatedAt,
		GeneratedBy: generatedBy,
		DataTypes:   []string{"sales"},
		TotalRecords: archive.TotalRecords{
			Orders: &orders,
		},
		KeyMetrics: archive.KeyMetrics{
			TotalRevenue: &revenue,
			TotalOrders:  &orders,
		},
		FileMetadata: archive.FileMetadata{
			Files:       []string{"metadata", "sales_json", "sales_pdf"},
			GeneratedAt: generatedAt,
		},
	}
}

func TestArchiveRepository_SoftDelete_ExcludedFromListingButRowSurvives(t *testing.T) {
	db := requireTestDB(t)
	defer cleanupTestData(t, db)
	cleanupTestData(t, db)

	ctx := context.Background()
	repo := postgresql.NewArchiveRepository(db)
	userID := createTestUser(t, ctx, db, "Owner")
	actorID := uuid.New().String()

	older, err := repo.Insert(ctx, testArchive("2025-06", userID, time.Date(2025, time.July, 1, 9, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	newer, err := repo.Insert(ctx, testArchive("2025-07", userID, time.Date(2025, time.August, 1, 9, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	// Newest first, generator name resolved.
	listed, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, newer.ArchiveID, listed[0].ArchiveID)
	assert.Equal(t, older.ArchiveID, listed[1].ArchiveID)
	require.NotNil(t, listed[0].GeneratedByName)
	assert.Equal(t, "Owner", *listed[0].GeneratedByName)

	require.NoError(t, repo.SoftDelete(ctx, "2025-06", actorID))

	// The listing excludes the deleted row.
	listed, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "2025-07", listed[0].ArchiveID)

	// The row itself survives with the deletion markers stamped.
	var deletedAt *time.Time
	var deletedBy *string
	err = db.QueryRow(ctx, `
		SELECT deleted_at, deleted_by FROM archives WHERE archive_id = $1
	`, "2025-06").Scan(&deletedAt, &deletedBy)
	require.NoError(t, err)
	require.NotNil(t, deletedAt)
	require.NotNil(t, deletedBy)
	assert.Equal(t, actorID, *deletedBy)
}

func TestArchiveRepository_SoftDelete_MissingRow(t *testing.T) {
	db := requireTestDB(t)
	defer cleanupTestData(t, db)
	cleanupTestData(t, db)

	repo := postgresql.NewArchiveRepository(db)

	err := repo.SoftDelete(context.Background(), "2030-01", uuid.New().String())
	assert.ErrorIs(t, err, archive.ErrArchiveNotFound)
}

func TestArchiveRepository_SoftDelete_Twice(t *testing.T) {
	db := requireTestDB(t)
	defer cleanupTestData(t, db)
	cleanupTestData(t, db)

	ctx := context.Background()
	repo := postgresql.NewArchiveRepository(db)
	userID := createTestUser(t, ctx, db, "Owner")

	_, err := repo.Insert(ctx, testArchive("2025-07", userID, time.Date(2025, time.August, 1, 9, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	require.NoError(t, repo.SoftDelete(ctx, "2025-07", userID))

	// An already-deleted archive is indistinguishable from a missing one.
	err = repo.SoftDelete(ctx, "2025-07", userID)
	assert.ErrorIs(t, err, archive.ErrArchiveNotFound)
}

func TestArchiveRepository_ExistsForMonth(t *testing.T) {
	db := requireTestDB(t)
	defer cleanupTestData(t, db)
	cleanupTestData(t, db)

	ctx := context.Background()
	repo := postgresql.NewArchiveRepository(db)
	userID := createTestUser(t, ctx, db, "Owner")

	exists, err := repo.ExistsForMonth(ctx, "2025-07")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.Insert(ctx, testArchive("2025-07", userID, time.Date(2025, time.August, 1, 9, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	exists, err = repo.ExistsForMonth(ctx, "2025-07")
	require.NoError(t, err)
	assert.True(t, exists)

	// Soft-deleted archives no longer count as archived.
	require.NoError(t, repo.SoftDelete(ctx, "2025-07", userID))
	exists, err = repo.ExistsForMonth(ctx, "2025-07")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestArchiveRepository_DuplicateArchiveIDsCoexist(t *testing.T) {
	db := requireTestDB(t)
	defer cleanupTestData(t, db)
	cleanupTestData(t, db)

	ctx := context.Background()
	repo := postgresql.NewArchiveRepository(db)
	userID := createTestUser(t, ctx, db, "Owner")

	_, err := repo.Insert(ctx, testArchive("2025-07", userID, time.Date(2025, time.August, 1, 9, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	_, err = repo.Insert(ctx, testArchive("2025-07", userID, time.Date(2025, time.August, 2, 9, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	listed, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	// Latest run first.
	assert.True(t, listed[0].GeneratedAt.After(listed[1].GeneratedAt))
}

func TestWithTransaction_Commit(t *testing.T) {
	db := requireTestDB(t)
	defer cleanupTestData(t, db)
	cleanupTestData(t, db)

	ctx := context.Background()
	repo := postgresql.NewArchiveRepository(db)
	userID := createTestUser(t, ctx, db, "Owner")

	err := postgresql.WithTransaction(ctx, db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)
		_, err := repo.Insert(txCtx, testArchive("2025-07", userID, time.Date(2025, time.August, 1, 9, 0, 0, 0, time.UTC)))
		return err
	})
	require.NoError(t, err)

	exists, err := repo.ExistsForMonth(ctx, "2025-07")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestWithTransaction_RollsBackOnError(t *testing.T) {
	db := requireTestDB(t)
	defer cleanupTestData(t, db)
	cleanupTestData(t, db)

	ctx := context.Background()
	repo := postgresql.NewArchiveRepository(db)
	userID := createTestUser(t, ctx, db, "Owner")
	boom := errors.New("boom")

	err := postgresql.WithTransaction(ctx, db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)
		if _, err := repo.Insert(txCtx, testArchive("2025-07", userID, time.Date(2025, time.August, 1, 9, 0, 0, 0, time.UTC))); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	exists, err := repo.ExistsForMonth(ctx, "2025-07")
	require.NoError(t, err)
	assert.False(t, exists, "rolled-back insert must not be visible")
}
