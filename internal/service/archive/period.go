package archive

import (
	"fmt"
	"time"

	"github.com/iza-pos/pos-backend-go/internal/domain/archive"
)

// PreviousMonthRange resolves the archive period for a run happening at
// now: the full previous calendar month. Day arithmetic goes through the
// first of the current month, so month lengths and the January rollover
// into the prior year come out right without any hardcoded day counts.
func PreviousMonthRange(now time.Time) archive.Period {
	firstOfCurrent := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := firstOfCurrent.AddDate(0, 0, -1)
	start := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, now.Location())

	return archive.Period{
		Start: start,
		End:   end,
		Month: end.Month().String(),
		Year:  fmt.Sprintf("%d", end.Year()),
	}
}

// ArchiveIDFor derives the "YYYY-MM" natural key from the period's start
// date, never from the display month name.
func ArchiveIDFor(p archive.Period) string {
	return p.Start.Format("2006-01")
}

// PeriodLabel is the human-readable period used on report headers.
func PeriodLabel(p archive.Period) string {
	return fmt.Sprintf("%s %s (%s - %s)",
		p.Month, p.Year,
		p.Start.Format("2006-01-02"), p.End.Format("2006-01-02"),
	)
}

// MonthRange builds the period for an explicitly chosen month, used by the
// workbook export.
func MonthRange(year int, month time.Month, loc *time.Location) archive.Period {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, -1)

	return archive.Period{
		Start: start,
		End:   end,
		Month: month.String(),
		Year:  fmt.Sprintf("%d", year),
	}
}
