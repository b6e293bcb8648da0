package activity

import "time"

// Log is one activity log row as written by the POS frontend.
type Log struct {
	ID          string
	Timestamp   time.Time
	UserName    string
	Action      string
	Category    string
	Severity    string
	Description string
	CreatedAt   time.Time
}
