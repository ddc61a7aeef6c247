package model

import "time"

// LeaveType enumerates the selectable leave categories.
type LeaveType string

// Leave types offered by the application form.
const (
	LeaveSick   LeaveType = "Sick Leave"
	LeaveCasual LeaveType = "Casual Leave"
	LeaveEarned LeaveType = "Earned Leave"
)

// LeaveTypes lists every valid leave type, in display order.
func LeaveTypes() []LeaveType {
	return []LeaveType{LeaveSick, LeaveCasual, LeaveEarned}
}

// Valid reports whether t is one of the known leave types.
func (t LeaveType) Valid() bool {
	for _, known := range LeaveTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// LeaveRequest is a locally recorded leave application.
type LeaveRequest struct {
	ID        int64
	Type      LeaveType
	From      time.Time
	To        time.Time
	Reason    string
	CreatedAt time.Time
}

// Days returns the inclusive number of calendar days the request covers.
func (r LeaveRequest) Days() int {
	from := time.Date(r.From.Year(), r.From.Month(), r.From.Day(), 0, 0, 0, 0, r.From.Location())
	to := time.Date(r.To.Year(), r.To.Month(), r.To.Day(), 0, 0, 0, 0, r.To.Location())
	return int(to.Sub(from).Hours()/24) + 1
}
