package attendance

import (
	"context"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create inserts a check-in row; returns ErrAlreadyCheckedIn on a duplicate (employee, date)
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// List returns rows matching the filter, newest id first, joined with the employee name
	List(ctx context.Context, filter ReportFilter) ([]Attendance, error)

	// UpdateCheckOut sets time_out and working_hours; returns ErrAttendanceNotFound when no row matches
	UpdateCheckOut(ctx context.Context, id int64, timeOut ClockTime, workingHours float64) error

	// DeleteByEmployeeID removes every row of one employee
	DeleteByEmployeeID(ctx context.Context, employeeID string) (int64, error)
}
