package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/kennar-hris/kennar-backend-go/internal/domain/attendance"
	"github.com/kennar-hris/kennar-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance (employee_id, date, time_in, temperature, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := q.QueryRow(ctx, query,
		newAttendance.EmployeeID,
		newAttendance.Date,
		toPgTime(newAttendance.TimeIn),
		newAttendance.Temperature,
		newAttendance.Status,
	).Scan(&newAttendance.ID)

	if err != nil {
		if isUniqueViolation(err, "attendance_employee_id_date_key") {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return newAttendance, nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.ReportFilter) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	where := "WHERE 1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		where += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		start, err := time.Parse("2006-01-02", *filter.StartDate)
		if err != nil {
			return nil, fmt.Errorf("invalid start_date: %w", err)
		}
		where += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, start)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		end, err := time.Parse("2006-01-02", *filter.EndDate)
		if err != nil {
			return nil, fmt.Errorf("invalid end_date: %w", err)
		}
		where += fmt.Sprintf(" AND a.date <= $%d", argIdx)
		args = append(args, end)
		argIdx++
	}

	query := fmt.Sprintf(`
		SELECT a.id, a.employee_id, e.name, a.date, a.time_in, a.time_out,
			   a.temperature::float8, a.status, a.working_hours::float8
		FROM attendance a
		LEFT JOIN employees e ON e.employee_id = a.employee_id
		%s
		ORDER BY a.id DESC
	`, where)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		var (
			att             attendance.Attendance
			timeIn, timeOut pgtype.Time
		)
		if err := rows.Scan(
			&att.ID, &att.EmployeeID, &att.FullName, &att.Date, &timeIn, &timeOut,
			&att.Temperature, &att.Status, &att.WorkingHours,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		att.TimeIn = fromPgTime(timeIn)
		att.TimeOut = fromPgTime(timeOut)
		records = append(records, att)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance: %w", err)
	}

	return records, nil
}

// UpdateCheckOut implements attendance.AttendanceRepository.
func (a *attendanceRepository) UpdateCheckOut(ctx context.Context, id int64, timeOut attendance.ClockTime, workingHours float64) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance
		SET time_out = $1, working_hours = $2
		WHERE id = $3
	`

	tag, err := q.Exec(ctx, query, toPgTime(&timeOut), workingHours, id)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// DeleteByEmployeeID implements attendance.AttendanceRepository.
func (a *attendanceRepository) DeleteByEmployeeID(ctx context.Context, employeeID string) (int64, error) {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendance WHERE employee_id = $1`, employeeID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete attendance for employee %s: %w", employeeID, err)
	}

	return tag.RowsAffected(), nil
}

func toPgTime(c *attendance.ClockTime) pgtype.Time {
	if c == nil {
		return pgtype.Time{}
	}
	return pgtype.Time{Microseconds: int64(*c) * int64(time.Second/time.Microsecond), Valid: true}
}

func fromPgTime(t pgtype.Time) *attendance.ClockTime {
	if !t.Valid {
		return nil
	}
	c := attendance.ClockTime(t.Microseconds / int64(time.Second/time.Microsecond))
	return &c
}

