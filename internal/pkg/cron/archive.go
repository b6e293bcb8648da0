package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/iza-pos/pos-backend-go/internal/domain/archive"
	"github.com/iza-pos/pos-backend-go/internal/pkg/reminder"
)

// NewArchiveReminderJob returns a job that nudges operators when the
// previous calendar month has not been archived yet. It checks at most
// once per day and consults the local reminder flags first, so the
// database is only hit when needed. Purely advisory.
func NewArchiveReminderJob(archiveRepo archive.Repository, store *reminder.Store) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		now := time.Now()
		today := now.Format("2006-01-02")

		state, err := store.Load()
		if err != nil {
			return err
		}
		if state.LastCheckDate == today {
			return nil
		}

		prevMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).
			AddDate(0, -1, 0).Format("2006-01")

		if state.LastArchivedMonth != prevMonth {
			exists, err := archiveRepo.ExistsForMonth(ctx, prevMonth)
			if err != nil {
				return err
			}
			if !exists {
				slog.Warn("previous month has not been archived yet", "archive_id", prevMonth)
			} else if markErr := store.MarkArchived(prevMonth); markErr != nil {
				slog.Error("failed to record archived month", "error", markErr)
			}
		}

		return store.TouchCheck(today)
	}
}
