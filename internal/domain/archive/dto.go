package archive

import (
	"github.com/iza-pos/pos-backend-go/internal/domain/activity"
	"github.com/iza-pos/pos-backend-go/internal/domain/attendance"
	"github.com/iza-pos/pos-backend-go/internal/domain/order"
	"github.com/iza-pos/pos-backend-go/internal/pkg/validator"
)

// Category names a source data set the archive pipeline can include.
type Category string

const (
	CategoryActivityLogs    Category = "activity_logs"
	CategorySales           Category = "sales"
	CategoryStaffAttendance Category = "staff_attendance"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryActivityLogs, CategorySales, CategoryStaffAttendance:
		return true
	}
	return false
}

// SalesAggregate couples the raw orders with their derived summary.
type SalesAggregate struct {
	Orders  []order.Order `json:"orders"`
	Summary SalesSummary  `json:"summary"`
}

type SalesSummary struct {
	TotalOrders    int            `json:"total_orders"`
	TotalRevenue   float64        `json:"total_revenue"`
	AvgOrderValue  float64        `json:"avg_order_value"`
	PaymentMethods map[string]int `json:"payment_methods"`
	OrderTypes     map[string]int `json:"order_types"`
	TopProducts    []ProductSales `json:"top_products"`
}

// ProductSales sums line items by exact product name.
type ProductSales struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// AttendanceAggregate couples raw attendance rows with per-staff metrics.
type AttendanceAggregate struct {
	Attendance []attendance.Record `json:"attendance"`
	Summary    AttendanceSummary   `json:"summary"`
}

type AttendanceSummary struct {
	TotalRecords int           `json:"total_records"`
	StaffMetrics []StaffMetric `json:"staff_metrics"`
}

type StaffMetric struct {
	StaffID string `json:"staff_id"`
	Name    string `json:"name"`
	// TotalDays counts rows; TotalHours only accumulates days where both
	// clock-in and clock-out exist.
	TotalDays      int     `json:"total_days"`
	LateCount      int     `json:"late_count"`
	EarlyDeparture int     `json:"early_departure"`
	TotalHours     float64 `json:"total_hours"`
}

// FetchedData carries whatever the requested categories produced.
type FetchedData struct {
	Activities []activity.Log
	Sales      *SalesAggregate
	Attendance *AttendanceAggregate
}

// ========================================
// REQUESTS / RESULTS
// ========================================

type GenerateRequest struct {
	DataTypes []Category `json:"data_types"`
}

func (r *GenerateRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.DataTypes) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "data_types",
			Message: "at least one data type is required",
		})
	}
	for _, c := range r.DataTypes {
		if !c.Valid() {
			errs = append(errs, validator.ValidationError{
				Field:   "data_types",
				Message: "unknown data type: " + string(c),
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ExportFile is one produced blob, already delivered to storage.
type ExportFile struct {
	Name string `json:"name"`
	Ext  string `json:"ext"`
	URL  string `json:"url"`
	Size int    `json:"size_bytes"`
}

// GenerateResult mirrors what the archive pipeline reports to the caller:
// either success with the archive id and delivered files, or a failure
// message taken from the first error encountered.
type GenerateResult struct {
	Success   bool         `json:"success"`
	Message   string       `json:"message"`
	ArchiveID string       `json:"archive_id,omitempty"`
	Files     []ExportFile `json:"files,omitempty"`
}

type PurgeRequest struct {
	StartDate string     `json:"start_date"`
	EndDate   string     `json:"end_date"`
	DataTypes []Category `json:"data_types"`
}

func (r *PurgeRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be YYYY-MM-DD",
		})
	}
	if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be YYYY-MM-DD",
		})
	}
	if len(r.DataTypes) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "data_types",
			Message: "at least one data type is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PurgeResult struct {
	ActivityLogsDeleted int64      `json:"activity_logs_deleted"`
	Skipped             []Category `json:"skipped,omitempty"`
}

// WorkbookRequest selects the month for the sales spreadsheet export.
type WorkbookRequest struct {
	Month int
	Year  int
}

func (r *WorkbookRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}
	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is out of range",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
