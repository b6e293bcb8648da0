package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/iza-pos/pos-backend-go/internal/domain/activity"
	"github.com/iza-pos/pos-backend-go/internal/domain/archive"
	"github.com/iza-pos/pos-backend-go/internal/domain/attendance"
	"github.com/iza-pos/pos-backend-go/internal/domain/order"
	"github.com/iza-pos/pos-backend-go/internal/pkg/jwt"
	"github.com/iza-pos/pos-backend-go/internal/pkg/reminder"
	"github.com/iza-pos/pos-backend-go/internal/pkg/storage"
	"github.com/iza-pos/pos-backend-go/internal/pkg/validator"
)

// ErrorPolicy dictates what a category fetch failure does to the run.
type ErrorPolicy string

const (
	PolicyAbort   ErrorPolicy = "abort"
	PolicyDegrade ErrorPolicy = "degrade"
)

// FetchPolicies is the per-category failure policy. Attendance is
// best-effort: a failed fetch yields an empty aggregate instead of killing
// the run. The other two abort.
var FetchPolicies = map[archive.Category]ErrorPolicy{
	archive.CategoryActivityLogs:    PolicyAbort,
	archive.CategorySales:           PolicyAbort,
	archive.CategoryStaffAttendance: PolicyDegrade,
}

// canonicalOrder fixes the category iteration and file ordering.
var canonicalOrder = []archive.Category{
	archive.CategoryActivityLogs,
	archive.CategorySales,
	archive.CategoryStaffAttendance,
}

type archiveService struct {
	archiveRepo    archive.Repository
	activityRepo   activity.LogRepository
	orderRepo      order.OrderRepository
	attendanceRepo attendance.Repository
	files          storage.FileStorage
	reminders      *reminder.Store
	now            func() time.Time
}

func NewArchiveService(
	archiveRepo archive.Repository,
	activityRepo activity.LogRepository,
	orderRepo order.OrderRepository,
	attendanceRepo attendance.Repository,
	files storage.FileStorage,
	reminders *reminder.Store,
) archive.Service {
	return &archiveService{
		archiveRepo:    archiveRepo,
		activityRepo:   activityRepo,
		orderRepo:      orderRepo,
		attendanceRepo: attendanceRepo,
		files:          files,
		reminders:      reminders,
		now:            time.Now,
	}
}

// GenerateMonthlyArchive implements archive.Service. Every step after
// authentication funnels failures into a {success:false, message} result;
// there are no retries and no partial state to resume from.
func (s *archiveService) GenerateMonthlyArchive(ctx context.Context, req archive.GenerateRequest) archive.GenerateResult {
	if err := req.Validate(); err != nil {
		return failResult(err.Error())
	}

	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return failResult(err.Error())
	}

	now := s.now()
	period := PreviousMonthRange(now)
	archiveID := ArchiveIDFor(period)
	types := normalizeCategories(req.DataTypes)

	var data archive.FetchedData
	for _, c := range types {
		if fetchErr := s.fetchCategory(ctx, c, period, &data); fetchErr != nil {
			if FetchPolicies[c] == PolicyDegrade {
				slog.Warn("category fetch degraded to empty", "category", c, "error", fetchErr)
				degradeCategory(c, &data)
				continue
			}
			return s.abort(categoryLabel(c)+" fetch failed", fetchErr)
		}
	}

	meta := BuildMetadata(period, types, data, actor.ID, now)
	fileNames := exportFileNames(types)

	_, err = s.archiveRepo.Insert(ctx, archive.Archive{
		ArchiveID:    archiveID,
		PeriodMonth:  period.Month,
		PeriodYear:   period.Year,
		GeneratedAt:  now,
		GeneratedBy:  actor.ID,
		DataTypes:    meta.DataTypes,
		TotalRecords: meta.TotalRecords,
		KeyMetrics:   meta.KeyMetrics,
		FileMetadata: archive.FileMetadata{Files: fileNames, GeneratedAt: now},
	})
	if err != nil {
		return s.abort("failed to save archive metadata", err)
	}

	blobs, err := renderFiles(meta, data, period, now)
	if err != nil {
		return s.abort("failed to render export files", err)
	}

	files, err := s.deliver(ctx, archiveID, fileNames, blobs)
	if err != nil {
		return s.abort("failed to deliver export files", err)
	}

	// Advisory only; a failed flag write never fails the archive.
	if err := s.reminders.MarkArchived(archiveID); err != nil {
		slog.Error("failed to record archived month", "error", err)
	}

	slog.Info("monthly archive generated",
		"archive_id", archiveID, "data_types", meta.DataTypes, "files", len(files))

	return archive.GenerateResult{
		Success:   true,
		Message:   fmt.Sprintf("Archive %s generated successfully", archiveID),
		ArchiveID: archiveID,
		Files:     files,
	}
}

func (s *archiveService) fetchCategory(ctx context.Context, c archive.Category, period archive.Period, data *archive.FetchedData) error {
	switch c {
	case archive.CategoryActivityLogs:
		logs, err := s.activityRepo.ListRange(ctx, period.Start, period.End)
		if err != nil {
			return err
		}
		if logs == nil {
			logs = []activity.Log{}
		}
		data.Activities = logs
	case archive.CategorySales:
		orders, err := s.orderRepo.ListRange(ctx, period.Start, period.End)
		if err != nil {
			return err
		}
		agg := AggregateSales(orders)
		data.Sales = &agg
	case archive.CategoryStaffAttendance:
		records, err := s.attendanceRepo.ListRange(ctx, period.Start, period.End)
		if err != nil {
			return err
		}
		agg := AggregateAttendance(records)
		data.Attendance = &agg
	}
	return nil
}

func degradeCategory(c archive.Category, data *archive.FetchedData) {
	switch c {
	case archive.CategoryStaffAttendance:
		agg := EmptyAttendanceAggregate()
		data.Attendance = &agg
	}
}

// renderFiles produces every export blob keyed by file name: the metadata
// dump plus a JSON and a PDF per fetched category.
func renderFiles(meta archive.Metadata, data archive.FetchedData, period archive.Period, now time.Time) (map[string][]byte, error) {
	blobs := make(map[string][]byte)

	metaJSON, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode metadata: %w", err)
	}
	blobs["metadata"] = metaJSON

	if data.Activities != nil {
		payload, err := json.MarshalIndent(data.Activities, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode activity logs: %w", err)
		}
		blobs["activity_logs_json"] = payload

		pdf, err := RenderActivityReport(data.Activities, period, now)
		if err != nil {
			return nil, err
		}
		blobs["activity_logs_pdf"] = pdf
	}

	if data.Sales != nil {
		payload, err := json.MarshalIndent(data.Sales, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode sales data: %w", err)
		}
		blobs["sales_json"] = payload

		pdf, err := RenderSalesReport(*data.Sales, period, now)
		if err != nil {
			return nil, err
		}
		blobs["sales_pdf"] = pdf
	}

	if data.Attendance != nil {
		payload, err := json.MarshalIndent(data.Attendance, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode attendance data: %w", err)
		}
		blobs["attendance_json"] = payload

		pdf, err := RenderAttendanceReport(*data.Attendance, period, now)
		if err != nil {
			return nil, err
		}
		blobs["attendance_pdf"] = pdf
	}

	return blobs, nil
}

// deliver hands every blob to storage as {archive_id}_{name}.{ext} under
// the archive's directory. A mid-delivery failure removes the blobs already
// written so an aborted run leaves no files behind.
func (s *archiveService) deliver(ctx context.Context, archiveID string, fileNames []string, blobs map[string][]byte) ([]archive.ExportFile, error) {
	files := make([]archive.ExportFile, 0, len(fileNames))

	for _, name := range fileNames {
		blob, ok := blobs[name]
		if !ok {
			s.discard(ctx, archiveID, files)
			return nil, fmt.Errorf("missing blob for file %q", name)
		}

		ext, contentType := fileFormat(name)
		path := exportFilePath(archiveID, name, ext)

		url, err := s.files.Save(ctx, path, blob, contentType)
		if err != nil {
			s.discard(ctx, archiveID, files)
			return nil, fmt.Errorf("failed to deliver %s: %w", name, err)
		}

		files = append(files, archive.ExportFile{
			Name: name,
			Ext:  ext,
			URL:  url,
			Size: len(blob),
		})
	}

	return files, nil
}

// discard best-effort removes already-delivered blobs of an aborted run.
func (s *archiveService) discard(ctx context.Context, archiveID string, delivered []archive.ExportFile) {
	for _, f := range delivered {
		path := exportFilePath(archiveID, f.Name, f.Ext)
		if err := s.files.Delete(ctx, path); err != nil {
			slog.Error("failed to remove partial export file", "path", path, "error", err)
		}
	}
}

func exportFilePath(archiveID, name, ext string) string {
	return fmt.Sprintf("archives/%s/%s_%s.%s", archiveID, archiveID, name, ext)
}

// ListArchives implements archive.Service.
func (s *archiveService) ListArchives(ctx context.Context) ([]archive.Archive, error) {
	return s.archiveRepo.List(ctx)
}

// DeleteArchive implements archive.Service.
func (s *archiveService) DeleteArchive(ctx context.Context, archiveID string) error {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return err
	}

	if !validator.IsValidArchiveID(archiveID) {
		return archive.ErrArchiveNotFound
	}

	return s.archiveRepo.SoftDelete(ctx, archiveID, actor.ID)
}

// PurgeArchivedSourceData implements archive.Service. Only activity logs
// are ever purged; orders and attendance stay in the source tables for
// bookkeeping regardless of what the caller asks for.
func (s *archiveService) PurgeArchivedSourceData(ctx context.Context, req archive.PurgeRequest) (archive.PurgeResult, error) {
	if err := req.Validate(); err != nil {
		return archive.PurgeResult{}, err
	}
	if _, err := jwt.ActorFromContext(ctx); err != nil {
		return archive.PurgeResult{}, err
	}

	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)

	var result archive.PurgeResult
	for _, c := range normalizeCategories(req.DataTypes) {
		if c != archive.CategoryActivityLogs {
			result.Skipped = append(result.Skipped, c)
			continue
		}

		deleted, err := s.activityRepo.DeleteRange(ctx, start, end)
		if err != nil {
			return archive.PurgeResult{}, fmt.Errorf("failed to purge activity logs: %w", err)
		}
		result.ActivityLogsDeleted = deleted
	}

	slog.Info("archived source data purged",
		"start", req.StartDate, "end", req.EndDate,
		"activity_logs_deleted", result.ActivityLogsDeleted)

	return result, nil
}

// SalesWorkbook implements archive.Service.
func (s *archiveService) SalesWorkbook(ctx context.Context, req archive.WorkbookRequest) ([]byte, string, error) {
	if err := req.Validate(); err != nil {
		return nil, "", err
	}
	if _, err := jwt.ActorFromContext(ctx); err != nil {
		return nil, "", err
	}

	period := MonthRange(req.Year, time.Month(req.Month), time.Local)

	orders, err := s.orderRepo.ListRange(ctx, period.Start, period.End)
	if err != nil {
		return nil, "", fmt.Errorf("sales data fetch failed: %w", err)
	}

	workbook, err := BuildSalesWorkbook(AggregateSales(orders), period, s.now())
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("sales_%s.xlsx", period.Start.Format("2006-01"))
	return workbook, filename, nil
}

func (s *archiveService) abort(label string, err error) archive.GenerateResult {
	slog.Error("monthly archive aborted", "step", label, "error", err)
	return failResult(fmt.Sprintf("%s: %v", label, err))
}

func failResult(message string) archive.GenerateResult {
	return archive.GenerateResult{Success: false, Message: message}
}

// normalizeCategories dedupes and fixes the order of requested categories.
func normalizeCategories(requested []archive.Category) []archive.Category {
	var types []archive.Category
	for _, c := range canonicalOrder {
		if containsCategory(requested, c) {
			types = append(types, c)
		}
	}
	return types
}

// exportFileNames is the deterministic file set for the requested
// categories: metadata first, then {base}_json and {base}_pdf per category.
func exportFileNames(types []archive.Category) []string {
	names := []string{"metadata"}
	for _, c := range types {
		base := fileBase(c)
		names = append(names, base+"_json", base+"_pdf")
	}
	return names
}

func fileBase(c archive.Category) string {
	if c == archive.CategoryStaffAttendance {
		return "attendance"
	}
	return string(c)
}

func fileFormat(name string) (ext string, contentType string) {
	if len(name) > 4 && name[len(name)-4:] == "_pdf" {
		return "pdf", "application/pdf"
	}
	return "json", "application/json"
}

func categoryLabel(c archive.Category) string {
	switch c {
	case archive.CategoryActivityLogs:
		return "activity logs"
	case archive.CategorySales:
		return "sales data"
	case archive.CategoryStaffAttendance:
		return "staff attendance"
	}
	return string(c)
}
