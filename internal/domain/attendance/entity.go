package attendance

import (
	"time"
)

// Stored attendance statuses
const (
	StatusPresent = "Present"
	StatusLate    = "Late"
)

type Attendance struct {
	ID           int64
	EmployeeID   string
	Date         time.Time
	TimeIn       *ClockTime
	TimeOut      *ClockTime
	Temperature  *float64
	Status       string
	WorkingHours *float64

	// Joined from employees
	FullName *string
}
