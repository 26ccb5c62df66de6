package attendance

import (
	"github.com/kennar-hris/kennar-backend-go/internal/pkg/validator"
)

// ========================================
// CHECK-IN
// ========================================

type CheckInRequest struct {
	EmployeeID  string   `json:"employee_id"`
	Date        string   `json:"date,omitempty"` // YYYY-MM-DD, defaults to today (local)
	TimeIn      string   `json:"time_in"`        // HH:MM[:SS]
	Temperature *float64 `json:"temperature,omitempty"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.TimeIn) {
		errs = append(errs, validator.ValidationError{
			Field:   "time_in",
			Message: "time_in is required",
		})
	} else if _, ok := validator.IsValidClockTime(r.TimeIn); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "time_in",
			Message: "time_in must be in HH:MM or HH:MM:SS format",
		})
	}

	if r.Date != "" {
		if _, ok := validator.IsValidDate(r.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if r.Temperature != nil && (*r.Temperature < 30 || *r.Temperature > 45) {
		errs = append(errs, validator.ValidationError{
			Field:   "temperature",
			Message: "temperature must be between 30 and 45",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceResponse struct {
	ID          int64    `json:"id"`
	EmployeeID  string   `json:"employee_id"`
	Date        string   `json:"date"`
	TimeIn      *string  `json:"time_in"`
	TimeOut     *string  `json:"time_out"`
	Temperature *float64 `json:"temperature"`
	Status      string   `json:"status"`
	InStatus    Label    `json:"in_status"`
}

// ========================================
// REPORT
// ========================================

// ReportFilter narrows the report; an empty filter projects the whole table.
type ReportFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD
}

func (f *ReportFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.StartDate != nil && *f.StartDate != "" {
		if _, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) == 0 && f.StartDate != nil && f.EndDate != nil && *f.StartDate != "" && *f.EndDate != "" {
		start, _ := validator.IsValidDate(*f.StartDate)
		end, _ := validator.IsValidDate(*f.EndDate)
		if end.Before(start) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must not be before start_date",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ReportRow is one projected attendance row. WorkingHours is derived from the
// recorded times; RecordedWorkingHours is the value stored at check-out.
type ReportRow struct {
	AttendanceID         int64    `json:"attendance_id"`
	EmployeeID           string   `json:"employee_id"`
	FullName             *string  `json:"fullname"`
	Date                 string   `json:"date"`
	Temperature          *float64 `json:"temperature"`
	TimeIn               *string  `json:"time_in"`
	TimeOut              *string  `json:"time_out"`
	Status               string   `json:"status"`
	InStatus             Label    `json:"in_status"`
	OutStatus            Label    `json:"out_status"`
	WorkingHours         *float64 `json:"working_hours"`
	RecordedWorkingHours *float64 `json:"recorded_working_hours"`
}

// ========================================
// CHECK-OUT UPDATE
// ========================================

// MaxWorkingHours bounds a single day's recorded hours
const MaxWorkingHours = 24

// UpdateAttendanceRequest carries the check-out time and the working hours the
// client computed. Pointers distinguish a missing field from a zero value.
type UpdateAttendanceRequest struct {
	ID           int64    `json:"-"`
	TimeOut      *string  `json:"time_out"`
	WorkingHours *float64 `json:"working_hours"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.TimeOut == nil || validator.IsEmpty(*r.TimeOut) {
		errs = append(errs, validator.ValidationError{
			Field:   "time_out",
			Message: "time_out is required",
		})
	} else if _, ok := validator.IsValidClockTime(*r.TimeOut); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "time_out",
			Message: "time_out must be in HH:MM or HH:MM:SS format",
		})
	}

	if r.WorkingHours == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "working_hours",
			Message: "working_hours is required",
		})
	} else if *r.WorkingHours < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "working_hours",
			Message: "working_hours must not be negative",
		})
	} else if *r.WorkingHours > MaxWorkingHours {
		errs = append(errs, validator.ValidationError{
			Field:   "working_hours",
			Message: "working_hours must not exceed 24",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
