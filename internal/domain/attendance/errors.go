package attendance

import "errors"

// Attendance domain errors
var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrAlreadyCheckedIn   = errors.New("employee has already checked in on this date")
	ErrEmployeeInactive   = errors.New("employee is not active")
)
