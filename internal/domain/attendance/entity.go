package attendance

import "time"

// Record is one staff attendance row joined with the staff identity.
type Record struct {
	ID       string
	StaffID  string
	Date     time.Time
	ClockIn  *time.Time
	ClockOut *time.Time
	Status   string
	Notes    *string

	// DTO
	StaffName string
}

const StatusLate = "late"
