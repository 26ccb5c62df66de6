package attendance

import (
	"context"
	"io"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn records the daily check-in posted by a kiosk
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)

	// ListReport projects attendance rows with derived in/out status and working hours
	ListReport(ctx context.Context, filter ReportFilter) ([]ReportRow, error)

	// ExportReport writes the projected report as an XLSX workbook
	ExportReport(ctx context.Context, filter ReportFilter, w io.Writer) error

	// UpdateAttendance applies the check-out mutation
	UpdateAttendance(ctx context.Context, req UpdateAttendanceRequest) error
}
