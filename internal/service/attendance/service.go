package attendance

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/kennar-hris/kennar-backend-go/internal/domain/attendance"
	"github.com/kennar-hris/kennar-backend-go/internal/domain/employee"
	"github.com/xuri/excelize/v2"
)

const reportSheet = "Attendance"

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	utcOffsetHours int
	now            func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	utcOffsetHours int,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		utcOffsetHours: utcOffsetHours,
		now:            time.Now,
	}
}

func clockPtrToString(c *attendance.ClockTime) *string {
	if c == nil {
		return nil
	}
	s := c.String()
	return &s
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := s.employeeRepo.GetByEmployeeID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if emp.Status != employee.StatusActive {
		return attendance.AttendanceResponse{}, attendance.ErrEmployeeInactive
	}

	dateStr := req.Date
	if dateStr == "" {
		dateStr = attendance.LocalDate(s.now(), s.utcOffsetHours)
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to parse date: %w", err)
	}

	timeIn, err := attendance.ParseClockTime(req.TimeIn)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	created, err := s.attendanceRepo.Create(ctx, attendance.Attendance{
		EmployeeID:  emp.EmployeeID,
		Date:        date,
		TimeIn:      &timeIn,
		Temperature: req.Temperature,
		Status:      attendance.StoredStatus(timeIn),
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return attendance.AttendanceResponse{
		ID:          created.ID,
		EmployeeID:  created.EmployeeID,
		Date:        created.Date.Format("2006-01-02"),
		TimeIn:      clockPtrToString(created.TimeIn),
		TimeOut:     clockPtrToString(created.TimeOut),
		Temperature: created.Temperature,
		Status:      created.Status,
		InStatus:    attendance.ClassifyIn(created.TimeIn),
	}, nil
}

// ListReport implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListReport(ctx context.Context, filter attendance.ReportFilter) ([]attendance.ReportRow, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	records, err := s.attendanceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	rows := make([]attendance.ReportRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, projectRow(rec))
	}
	return rows, nil
}

func projectRow(rec attendance.Attendance) attendance.ReportRow {
	return attendance.ReportRow{
		AttendanceID:         rec.ID,
		EmployeeID:           rec.EmployeeID,
		FullName:             rec.FullName,
		Date:                 rec.Date.Format("2006-01-02"),
		Temperature:          rec.Temperature,
		TimeIn:               clockPtrToString(rec.TimeIn),
		TimeOut:              clockPtrToString(rec.TimeOut),
		Status:               rec.Status,
		InStatus:             attendance.ClassifyIn(rec.TimeIn),
		OutStatus:            attendance.ClassifyOut(rec.TimeOut),
		WorkingHours:         attendance.WorkingHours(rec.TimeIn, rec.TimeOut),
		RecordedWorkingHours: rec.WorkingHours,
	}
}

// ExportReport implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ExportReport(ctx context.Context, filter attendance.ReportFilter, w io.Writer) error {
	rows, err := s.ListReport(ctx, filter)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := []interface{}{
		"Attendance ID", "Employee ID", "Full Name", "Date", "Temperature",
		"Time In", "Time Out", "Status", "In Status", "Out Status",
		"Working Hours", "Recorded Working Hours",
	}
	if err := f.SetSheetRow(reportSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetRowStyle(reportSheet, 1, 1, bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{
			row.AttendanceID,
			row.EmployeeID,
			deref(row.FullName),
			row.Date,
			deref(row.Temperature),
			deref(row.TimeIn),
			deref(row.TimeOut),
			row.Status,
			string(row.InStatus),
			string(row.OutStatus),
			deref(row.WorkingHours),
			deref(row.RecordedWorkingHours),
		}
		if err := f.SetSheetRow(reportSheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// deref returns the pointed value, or nil so the cell is left empty
func deref[T any](p *T) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

// UpdateAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	timeOut, err := attendance.ParseClockTime(*req.TimeOut)
	if err != nil {
		return err
	}

	// The client-supplied working hours are stored as sent; the report derives its own.
	return s.attendanceRepo.UpdateCheckOut(ctx, req.ID, timeOut, *req.WorkingHours)
}
