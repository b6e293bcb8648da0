package archive

import "time"

// Archive is one persisted metadata row describing a monthly archive run.
// ArchiveID is the natural key "YYYY-MM"; the row ID stays a surrogate so
// repeated runs for the same month coexist (newest wins in listings).
type Archive struct {
	ID           string
	ArchiveID    string
	PeriodMonth  string
	PeriodYear   string
	GeneratedAt  time.Time
	GeneratedBy  string
	DataTypes    []string
	TotalRecords TotalRecords
	KeyMetrics   KeyMetrics
	FileMetadata FileMetadata
	DeletedAt    *time.Time
	DeletedBy    *string
	CreatedAt    time.Time

	// DTO
	GeneratedByName *string
}

// TotalRecords holds per-category row counts; nil means the category was not
// part of the run.
type TotalRecords struct {
	Activities *int `json:"activities,omitempty"`
	Orders     *int `json:"orders,omitempty"`
	Attendance *int `json:"attendance,omitempty"`
}

type KeyMetrics struct {
	TotalRevenue *float64 `json:"total_revenue,omitempty"`
	TotalOrders  *int     `json:"total_orders,omitempty"`
	ActiveStaff  *int     `json:"active_staff,omitempty"`
}

// FileMetadata records which file categories were produced and when.
type FileMetadata struct {
	Files       []string  `json:"files"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Metadata is the in-memory summary assembled per run; it is both persisted
// as an Archive row and dumped verbatim into the metadata export file.
type Metadata struct {
	ArchiveID    string       `json:"archive_id"`
	GeneratedAt  time.Time    `json:"generated_at"`
	Period       Period       `json:"period"`
	DataTypes    []string     `json:"data_types"`
	TotalRecords TotalRecords `json:"total_records"`
	KeyMetrics   KeyMetrics   `json:"key_metrics"`
	GeneratedBy  string       `json:"generated_by"`
	Version      string       `json:"version"`
}

// Period is the archived calendar month, always the month before the run.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Month string    `json:"month"`
	Year  string    `json:"year"`
}
