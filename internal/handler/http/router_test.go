package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kennar-hris/kennar-backend-go/internal/domain/admin"
	"github.com/kennar-hris/kennar-backend-go/internal/domain/attendance"
	"github.com/kennar-hris/kennar-backend-go/internal/domain/auth"
	"github.com/kennar-hris/kennar-backend-go/internal/domain/dashboard"
	"github.com/kennar-hris/kennar-backend-go/internal/domain/employee"
	"github.com/kennar-hris/kennar-backend-go/internal/pkg/jwt"
	"github.com/kennar-hris/kennar-backend-go/internal/pkg/realtime"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

// ---- fakes ----

type fakeDashboardService struct {
	got dashboard.StatsRequest
	res dashboard.StatsResponse
	err error
}

func (f *fakeDashboardService) GetStats(ctx context.Context, req dashboard.StatsRequest) (dashboard.StatsResponse, error) {
	f.got = req
	return f.res, f.err
}

type fakeEmployeeService struct {
	created   employee.CreateEmployeeRequest
	createdIm []byte
	updated   employee.UpdateEmployeeRequest
	deletedID int64
	list      []employee.EmployeeResponse
	result    employee.EmployeeResponse
	image     employee.ImageResponse
	err       error
}

func (f *fakeEmployeeService) ListEmployees(ctx context.Context) ([]employee.EmployeeResponse, error) {
	return f.list, f.err
}

func (f *fakeEmployeeService) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	f.created = req
	if req.File != nil {
		f.createdIm, _ = io.ReadAll(req.File)
	}
	return f.result, f.err
}

func (f *fakeEmployeeService) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	f.updated = req
	return f.result, f.err
}

func (f *fakeEmployeeService) DeleteEmployee(ctx context.Context, id int64) error {
	f.deletedID = id
	return f.err
}

func (f *fakeEmployeeService) GetImage(ctx context.Context, id int64) (employee.ImageResponse, error) {
	return f.image, f.err
}

type fakeAttendanceService struct {
	checkIn attendance.CheckInRequest
	filter  attendance.ReportFilter
	update  attendance.UpdateAttendanceRequest
	rows    []attendance.ReportRow
	created attendance.AttendanceResponse
	export  []byte
	err     error
}

func (f *fakeAttendanceService) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	f.checkIn = req
	return f.created, f.err
}

func (f *fakeAttendanceService) ListReport(ctx context.Context, filter attendance.ReportFilter) ([]attendance.ReportRow, error) {
	f.filter = filter
	return f.rows, f.err
}

func (f *fakeAttendanceService) ExportReport(ctx context.Context, filter attendance.ReportFilter, w io.Writer) error {
	f.filter = filter
	if f.err != nil {
		return f.err
	}
	_, err := w.Write(f.export)
	return err
}

func (f *fakeAttendanceService) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) error {
	f.update = req
	return f.err
}

type fakeAdminService struct {
	created   admin.CreateAdminRequest
	deletedID int64
	list      []admin.AdminResponse
	result    admin.AdminResponse
	err       error
}

func (f *fakeAdminService) ListAdmins(ctx context.Context) ([]admin.AdminResponse, error) {
	return f.list, f.err
}

func (f *fakeAdminService) CreateAdmin(ctx context.Context, req admin.CreateAdminRequest) (admin.AdminResponse, error) {
	f.created = req
	return f.result, f.err
}

func (f *fakeAdminService) DeleteAdmin(ctx context.Context, id int64) error {
	f.deletedID = id
	return f.err
}

type fakeAuthService struct {
	got auth.LoginRequest
	res auth.LoginResponse
	err error
}

func (f *fakeAuthService) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	f.got = req
	return f.res, f.err
}

// ---- harness ----

type testServer struct {
	router     http.Handler
	jwt        jwt.Service
	hub        *realtime.Hub
	dashboard  *fakeDashboardService
	employee   *fakeEmployeeService
	attendance *fakeAttendanceService
	admin      *fakeAdminService
	auth       *fakeAuthService
}

func newTestServer(t *testing.T, enforceAuth bool) *testServer {
	t.Helper()

	s := &testServer{
		jwt:        jwt.NewJWTService(handlerTestSecret, "1h"),
		hub:        realtime.NewHub(),
		dashboard:  &fakeDashboardService{},
		employee:   &fakeEmployeeService{},
		attendance: &fakeAttendanceService{},
		admin:      &fakeAdminService{},
		auth:       &fakeAuthService{},
	}

	s.router = NewRouter(
		RouterConfig{
			AppEnv:         "test",
			LogLevel:       slog.LevelError,
			AllowedOrigins: []string{"*"},
			EnforceAuth:    enforceAuth,
			UploadsDir:     t.TempDir(),
			UploadsURL:     "/uploads",
		},
		s.jwt,
		Handlers{
			Auth:       NewAuthHandler(s.auth),
			Admin:      NewAdminHandler(s.admin),
			Employee:   NewEmployeeHandler(s.employee),
			Attendance: NewAttendanceHandler(s.attendance),
			Dashboard:  NewDashboardHandler(s.dashboard),
			Kiosk:      NewKioskHandler(s.hub, []string{"*"}),
		},
	)
	return s
}

func (s *testServer) do(t *testing.T, method, path string, body io.Reader, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) doJSON(t *testing.T, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	return s.do(t, method, path, &body, http.Header{"Content-Type": {"application/json"}})
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	body := decodeBody(t, rec)
	errBlock, ok := body["error"].(map[string]interface{})
	require.True(t, ok, rec.Body.String())
	return errBlock["code"].(string)
}
