package employee

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kennar-hris/kennar-backend-go/internal/domain/attendance"
	"github.com/kennar-hris/kennar-backend-go/internal/domain/employee"
	"github.com/kennar-hris/kennar-backend-go/internal/pkg/storage"
	"github.com/kennar-hris/kennar-backend-go/internal/pkg/validator"
	"github.com/kennar-hris/kennar-backend-go/internal/service/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

type memoryEmployeeRepo struct {
	nextID    int64
	employees map[int64]employee.Employee
}

func newMemoryEmployeeRepo() *memoryEmployeeRepo {
	return &memoryEmployeeRepo{employees: map[int64]employee.Employee{}}
}

func (m *memoryEmployeeRepo) List(ctx context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for id := int64(1); id <= m.nextID; id++ {
		if e, ok := m.employees[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memoryEmployeeRepo) GetByID(ctx context.Context, id int64) (employee.Employee, error) {
	e, ok := m.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (m *memoryEmployeeRepo) GetByEmployeeID(ctx context.Context, employeeID string) (employee.Employee, error) {
	for _, e := range m.employees {
		if e.EmployeeID == employeeID {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (m *memoryEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	if _, err := m.GetByEmployeeID(ctx, e.EmployeeID); err == nil {
		return employee.Employee{}, employee.ErrEmployeeIDExists
	}
	m.nextID++
	e.ID = m.nextID
	m.employees[e.ID] = e
	return e, nil
}

func (m *memoryEmployeeRepo) Update(ctx context.Context, e employee.Employee, replaceImage bool) (employee.Employee, error) {
	existing, err := m.GetByEmployeeID(ctx, e.EmployeeID)
	if err != nil {
		return employee.Employee{}, err
	}
	e.ID = existing.ID
	if !replaceImage {
		e.Image = existing.Image
	}
	m.employees[e.ID] = e
	return e, nil
}

func (m *memoryEmployeeRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.employees[id]; !ok {
		return employee.ErrEmployeeNotFound
	}
	delete(m.employees, id)
	return nil
}

type memoryAttendanceRepo struct {
	rows    []attendance.Attendance
	failErr error
}

func (m *memoryAttendanceRepo) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	a.ID = int64(len(m.rows) + 1)
	m.rows = append(m.rows, a)
	return a, nil
}

func (m *memoryAttendanceRepo) List(ctx context.Context, filter attendance.ReportFilter) ([]attendance.Attendance, error) {
	return m.rows, nil
}

func (m *memoryAttendanceRepo) UpdateCheckOut(ctx context.Context, id int64, timeOut attendance.ClockTime, workingHours float64) error {
	return nil
}

func (m *memoryAttendanceRepo) DeleteByEmployeeID(ctx context.Context, employeeID string) (int64, error) {
	if m.failErr != nil {
		return 0, m.failErr
	}
	kept := m.rows[:0]
	var removed int64
	for _, r := range m.rows {
		if r.EmployeeID == employeeID {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	m.rows = kept
	return removed, nil
}

// passthroughTx runs fn directly; the memory repos have no transactions
type passthroughTx struct {
	calls int
}

func (p *passthroughTx) WithinTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	p.calls++
	return fn(ctx)
}

type fixture struct {
	svc      *EmployeeServiceImpl
	emps     *memoryEmployeeRepo
	att      *memoryAttendanceRepo
	tx       *passthroughTx
	basePath string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	basePath := t.TempDir()
	store, err := storage.NewLocalStorage(basePath, "/uploads")
	require.NoError(t, err)

	f := fixture{
		emps:     newMemoryEmployeeRepo(),
		att:      &memoryAttendanceRepo{},
		tx:       &passthroughTx{},
		basePath: basePath,
	}
	f.svc = NewEmployeeService(f.tx, f.emps, f.att, file.NewFileService(store)).(*EmployeeServiceImpl)
	return f
}

func (f fixture) fileExists(path string) bool {
	_, err := os.Stat(filepath.Join(f.basePath, filepath.FromSlash(path)))
	return err == nil
}

func pngImage(t *testing.T) *bytes.Reader {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	return bytes.NewReader(buf.Bytes())
}

// nopFile adapts a bytes.Reader to multipart.File
type nopFile struct {
	*bytes.Reader
}

func (nopFile) Close() error { return nil }

func TestCreateEmployee(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults status to Active and stores image", func(t *testing.T) {
		f := newFixture(t)
		resp, err := f.svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{
			EmployeeID:  "E001",
			Name:        "Ana Cruz",
			DateOfBirth: ptr("1990-05-01"),
			MobilePhone: ptr(""),
			File:        nopFile{pngImage(t)},
		})
		require.NoError(t, err)
		assert.Equal(t, "Active", resp.Status)
		assert.Equal(t, "1990-05-01", *resp.DateOfBirth)
		assert.Nil(t, resp.MobilePhone)
		require.NotNil(t, resp.Image)
		assert.True(t, f.fileExists(*resp.Image))
		require.NotNil(t, resp.ImageURL)
		assert.True(t, strings.HasPrefix(*resp.ImageURL, "/uploads/employees/"))
	})

	t.Run("duplicate employee_id keeps the first record", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{EmployeeID: "E001", Name: "First"})
		require.NoError(t, err)

		_, err = f.svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{EmployeeID: "E001", Name: "Second", File: nopFile{pngImage(t)}})
		assert.ErrorIs(t, err, employee.ErrEmployeeIDExists)

		got, err := f.emps.GetByEmployeeID(ctx, "E001")
		require.NoError(t, err)
		assert.Equal(t, "First", got.Name)

		entries, err := os.ReadDir(filepath.Join(f.basePath, "employees"))
		require.NoError(t, err)
		assert.Empty(t, entries, "orphaned upload must be removed")
	})

	t.Run("missing required fields", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{})
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		fields := verrs.ToMap()
		assert.Contains(t, fields, "employee_id")
		assert.Contains(t, fields, "name")
	})
}

func TestUpdateEmployee(t *testing.T) {
	ctx := context.Background()

	t.Run("keeps image when none is sent", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{EmployeeID: "E001", Name: "Ana", File: nopFile{pngImage(t)}})
		require.NoError(t, err)

		updated, err := f.svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{EmployeeID: "E001", Name: "Ana Cruz", Status: "Inactive"})
		require.NoError(t, err)
		assert.Equal(t, "Ana Cruz", updated.Name)
		assert.Equal(t, "Inactive", updated.Status)
		assert.Equal(t, *created.Image, *updated.Image)
	})

	t.Run("replaces image and removes the old file", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{EmployeeID: "E001", Name: "Ana", File: nopFile{pngImage(t)}})
		require.NoError(t, err)

		updated, err := f.svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{EmployeeID: "E001", Name: "Ana", File: nopFile{pngImage(t)}})
		require.NoError(t, err)
		assert.NotEqual(t, *created.Image, *updated.Image)
		assert.False(t, f.fileExists(*created.Image))
		assert.True(t, f.fileExists(*updated.Image))
		assert.Equal(t, "Active", updated.Status)
	})

	t.Run("unknown employee", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{EmployeeID: "nobody", Name: "x"})
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})
}

func TestDeleteEmployee(t *testing.T) {
	ctx := context.Background()

	t.Run("removes attendance, employee and image", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{EmployeeID: "E001", Name: "Ana", File: nopFile{pngImage(t)}})
		require.NoError(t, err)
		_, err = f.svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{EmployeeID: "E002", Name: "Ben"})
		require.NoError(t, err)
		f.att.rows = []attendance.Attendance{{EmployeeID: "E001"}, {EmployeeID: "E002"}, {EmployeeID: "E001"}}

		require.NoError(t, f.svc.DeleteEmployee(ctx, created.ID))

		assert.Equal(t, 1, f.tx.calls)
		require.Len(t, f.att.rows, 1)
		assert.Equal(t, "E002", f.att.rows[0].EmployeeID)
		_, err = f.emps.GetByID(ctx, created.ID)
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
		assert.False(t, f.fileExists(*created.Image))
	})

	t.Run("attendance failure keeps the employee", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{EmployeeID: "E001", Name: "Ana"})
		require.NoError(t, err)
		dbErr := errors.New("deadlock detected")
		f.att.failErr = dbErr

		err = f.svc.DeleteEmployee(ctx, created.ID)
		assert.ErrorIs(t, err, dbErr)
		_, err = f.emps.GetByID(ctx, created.ID)
		assert.NoError(t, err)
	})

	t.Run("unknown id", func(t *testing.T) {
		f := newFixture(t)
		assert.ErrorIs(t, f.svc.DeleteEmployee(ctx, 42), employee.ErrEmployeeNotFound)
	})
}

func TestGetImage(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	withImage, err := f.svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{EmployeeID: "E001", Name: "Ana", File: nopFile{pngImage(t)}})
	require.NoError(t, err)
	withoutImage, err := f.svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{EmployeeID: "E002", Name: "Ben"})
	require.NoError(t, err)

	resp, err := f.svc.GetImage(ctx, withImage.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.Base64, "data:image/png;base64,"))

	_, err = f.svc.GetImage(ctx, withoutImage.ID)
	assert.ErrorIs(t, err, employee.ErrImageNotFound)

	require.NoError(t, os.Remove(filepath.Join(f.basePath, filepath.FromSlash(*withImage.Image))))
	_, err = f.svc.GetImage(ctx, withImage.ID)
	assert.ErrorIs(t, err, employee.ErrImageNotFound)

	_, err = f.svc.GetImage(ctx, 999)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
