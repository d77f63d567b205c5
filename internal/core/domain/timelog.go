package domain

import "time"

// Timelog records work done by one user on one calendar day. Date is always
// normalized to start of day in UTC; the time of day is irrelevant.
type Timelog struct {
	ID          string
	Description string
	Date        time.Time
	Minutes     int
	UserID      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
