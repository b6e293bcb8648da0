package archive

import "context"

// Service is the archive pipeline surface consumed by handlers and the
// reminder job.
type Service interface {
	// GenerateMonthlyArchive runs the whole pipeline for the previous
	// calendar month. It never returns a Go error for pipeline failures;
	// the result carries success/message the way callers display it.
	GenerateMonthlyArchive(ctx context.Context, req GenerateRequest) GenerateResult

	// ListArchives returns all non-deleted archive rows, newest first.
	ListArchives(ctx context.Context) ([]Archive, error)

	// DeleteArchive soft-deletes one archive row, stamping the acting user.
	DeleteArchive(ctx context.Context, archiveID string) error

	// PurgeArchivedSourceData hard-deletes archived activity log rows in the
	// given range. Orders and attendance are always preserved; requesting
	// them reports the categories as skipped.
	PurgeArchivedSourceData(ctx context.Context, req PurgeRequest) (PurgeResult, error)

	// SalesWorkbook renders the month's sales as an xlsx workbook.
	SalesWorkbook(ctx context.Context, req WorkbookRequest) ([]byte, string, error)
}
