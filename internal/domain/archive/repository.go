package archive

import "context"

// Repository defines data access for archive metadata rows.
type Repository interface {
	// Insert persists a new archive row and returns it with ID and
	// timestamps populated. The natural key archive_id is NOT checked for
	// uniqueness; repeated runs for a month create additional rows.
	Insert(ctx context.Context, a Archive) (Archive, error)

	// List retrieves all non-deleted archives, newest first, with the
	// generating user's display name resolved.
	List(ctx context.Context) ([]Archive, error)

	// SoftDelete stamps deleted_at/deleted_by on the row. Returns
	// ErrArchiveNotFound when no non-deleted row matches.
	SoftDelete(ctx context.Context, archiveID string, deletedBy string) error

	// ExistsForMonth reports whether a non-deleted archive exists for the
	// given "YYYY-MM" id. Used by the reminder job.
	ExistsForMonth(ctx context.Context, archiveID string) (bool, error)
}
