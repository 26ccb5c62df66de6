package postgresql_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/kennar-hris/kennar-backend-go/internal/domain/admin"
	"github.com/kennar-hris/kennar-backend-go/internal/domain/attendance"
	"github.com/kennar-hris/kennar-backend-go/internal/domain/employee"
	"github.com/kennar-hris/kennar-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func createEmployee(t *testing.T, ctx context.Context, employeeID string, status employee.Status) employee.Employee {
	t.Helper()
	repo := postgresql.NewEmployeeRepository(testDB.DB)
	emp, err := repo.Create(ctx, employee.Employee{
		EmployeeID: employeeID,
		Name:       "Employee " + employeeID,
		Status:     status,
	})
	require.NoError(t, err)
	return emp
}

func checkIn(t *testing.T, ctx context.Context, employeeID string, date time.Time, timeIn attendance.ClockTime) attendance.Attendance {
	t.Helper()
	repo := postgresql.NewAttendanceRepository(testDB.DB)
	att, err := repo.Create(ctx, attendance.Attendance{
		EmployeeID: employeeID,
		Date:       date,
		TimeIn:     &timeIn,
		Status:     attendance.StoredStatus(timeIn),
	})
	require.NoError(t, err)
	return att
}

func TestEmployeeRepository_DuplicateEmployeeID(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(testDB.DB)

	first := createEmployee(t, ctx, "E001", employee.StatusActive)

	_, err := repo.Create(ctx, employee.Employee{EmployeeID: "E001", Name: "Someone Else", Status: employee.StatusActive})
	assert.ErrorIs(t, err, employee.ErrEmployeeIDExists)

	got, err := repo.GetByEmployeeID(ctx, "E001")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, first.Name, got.Name)
}

func TestEmployeeRepository_UpdateKeepsImageUnlessReplaced(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(testDB.DB)

	_, err := repo.Create(ctx, employee.Employee{
		EmployeeID: "E010",
		Name:       "Before",
		Image:      ptr("old.png"),
		Status:     employee.StatusActive,
	})
	require.NoError(t, err)

	updated, err := repo.Update(ctx, employee.Employee{EmployeeID: "E010", Name: "After", Status: employee.StatusInactive}, false)
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Name)
	assert.Equal(t, employee.StatusInactive, updated.Status)
	require.NotNil(t, updated.Image)
	assert.Equal(t, "old.png", *updated.Image)

	updated, err = repo.Update(ctx, employee.Employee{EmployeeID: "E010", Name: "After", Image: ptr("new.png"), Status: employee.StatusActive}, true)
	require.NoError(t, err)
	require.NotNil(t, updated.Image)
	assert.Equal(t, "new.png", *updated.Image)

	_, err = repo.Update(ctx, employee.Employee{EmployeeID: "missing", Name: "x", Status: employee.StatusActive}, false)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeDelete_CascadesAttendanceInTransaction(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	empRepo := postgresql.NewEmployeeRepository(testDB.DB)
	attRepo := postgresql.NewAttendanceRepository(testDB.DB)
	tx := postgresql.NewTransactor(testDB.DB)

	emp := createEmployee(t, ctx, "E020", employee.StatusActive)
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	checkIn(t, ctx, "E020", day, attendance.NewClockTime(8, 0, 0))
	checkIn(t, ctx, "E020", day.AddDate(0, 0, 1), attendance.NewClockTime(8, 30, 0))

	err := tx.WithinTx(ctx, func(txCtx context.Context) error {
		if _, err := attRepo.DeleteByEmployeeID(txCtx, emp.EmployeeID); err != nil {
			return err
		}
		return empRepo.Delete(txCtx, emp.ID)
	})
	require.NoError(t, err)

	rows, err := attRepo.List(ctx, attendance.ReportFilter{EmployeeID: ptr("E020")})
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, err = empRepo.GetByID(ctx, emp.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	attRepo := postgresql.NewAttendanceRepository(testDB.DB)
	tx := postgresql.NewTransactor(testDB.DB)

	emp := createEmployee(t, ctx, "E030", employee.StatusActive)
	checkIn(t, ctx, "E030", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), attendance.NewClockTime(8, 0, 0))

	boom := fmt.Errorf("boom")
	err := tx.WithinTx(ctx, func(txCtx context.Context) error {
		if _, err := attRepo.DeleteByEmployeeID(txCtx, emp.EmployeeID); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	rows, err := attRepo.List(ctx, attendance.ReportFilter{EmployeeID: ptr("E030")})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestAttendanceRepository_CheckInAndCheckOut(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(testDB.DB)

	createEmployee(t, ctx, "E040", employee.StatusActive)
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	att := checkIn(t, ctx, "E040", day, attendance.NewClockTime(8, 0, 0))

	_, err := repo.Create(ctx, attendance.Attendance{
		EmployeeID: "E040",
		Date:       day,
		TimeIn:     ptr(attendance.NewClockTime(9, 0, 0)),
		Status:     attendance.StatusLate,
	})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)

	rows, err := repo.List(ctx, attendance.ReportFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].TimeOut)
	assert.Nil(t, rows[0].WorkingHours)
	require.NotNil(t, rows[0].FullName)
	assert.Equal(t, "Employee E040", *rows[0].FullName)

	require.NoError(t, repo.UpdateCheckOut(ctx, att.ID, attendance.NewClockTime(17, 30, 0), 0))

	rows, err = repo.List(ctx, attendance.ReportFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].TimeIn)
	require.NotNil(t, rows[0].TimeOut)
	assert.Equal(t, "08:00:00", rows[0].TimeIn.String())
	assert.Equal(t, "17:30:00", rows[0].TimeOut.String())
	require.NotNil(t, rows[0].WorkingHours)
	assert.Equal(t, 0.0, *rows[0].WorkingHours)

	err = repo.UpdateCheckOut(ctx, att.ID+1000, attendance.NewClockTime(17, 0, 0), 8)
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestAttendanceRepository_ListOrderAndFilters(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(testDB.DB)

	createEmployee(t, ctx, "E050", employee.StatusActive)
	createEmployee(t, ctx, "E051", employee.StatusActive)
	d1 := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)
	a1 := checkIn(t, ctx, "E050", d1, attendance.NewClockTime(8, 0, 0))
	a2 := checkIn(t, ctx, "E051", d1, attendance.NewClockTime(8, 0, 0))
	a3 := checkIn(t, ctx, "E050", d2, attendance.NewClockTime(8, 0, 0))

	rows, err := repo.List(ctx, attendance.ReportFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []int64{a3.ID, a2.ID, a1.ID}, []int64{rows[0].ID, rows[1].ID, rows[2].ID})

	rows, err = repo.List(ctx, attendance.ReportFilter{EmployeeID: ptr("E050")})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = repo.List(ctx, attendance.ReportFilter{StartDate: ptr("2024-02-02"), EndDate: ptr("2024-02-02")})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, a3.ID, rows[0].ID)
}

func TestDashboardRepository_Counts(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	repo := postgresql.NewDashboardRepository(testDB.DB)
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 10; i++ {
		createEmployee(t, ctx, fmt.Sprintf("A%02d", i), employee.StatusActive)
	}
	createEmployee(t, ctx, "X01", employee.StatusInactive)

	for i := 0; i < 5; i++ {
		checkIn(t, ctx, fmt.Sprintf("A%02d", i), day, attendance.NewClockTime(8, 0, 0))
	}
	for i := 5; i < 7; i++ {
		checkIn(t, ctx, fmt.Sprintf("A%02d", i), day, attendance.NewClockTime(8, 30, 0))
	}
	// another day does not count
	checkIn(t, ctx, "A09", day.AddDate(0, 0, 1), attendance.NewClockTime(8, 0, 0))

	employees, err := repo.CountActiveEmployees(ctx)
	require.NoError(t, err)
	present, err := repo.CountPresent(ctx, day)
	require.NoError(t, err)
	late, err := repo.CountLate(ctx, day)
	require.NoError(t, err)
	absent, err := repo.CountAbsent(ctx, day)
	require.NoError(t, err)

	assert.Equal(t, int64(10), employees)
	assert.Equal(t, int64(7), present)
	assert.Equal(t, int64(2), late)
	assert.Equal(t, int64(3), absent)
}

func TestAdminRepository(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	repo := postgresql.NewAdminRepository(testDB.DB)

	created, err := repo.Create(ctx, admin.Admin{
		EmployeeID:   "E001",
		AdminName:    "Jane",
		Username:     "jane",
		PasswordHash: "$2a$10$hash",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	_, err = repo.Create(ctx, admin.Admin{EmployeeID: "E002", AdminName: "Other", Username: "jane", PasswordHash: "x"})
	assert.ErrorIs(t, err, admin.ErrUsernameExists)

	got, err := repo.GetByUsername(ctx, "jane")
	require.NoError(t, err)
	assert.Equal(t, "$2a$10$hash", got.PasswordHash)

	_, err = repo.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, admin.ErrAdminNotFound)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Empty(t, list[0].PasswordHash)

	require.NoError(t, repo.Delete(ctx, created.ID))
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), admin.ErrAdminNotFound)
}
