package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kennar-hris/kennar-backend-go/internal/domain/attendance"
	"github.com/kennar-hris/kennar-backend-go/internal/domain/employee"
	"github.com/kennar-hris/kennar-backend-go/internal/pkg/storage"
	"github.com/kennar-hris/kennar-backend-go/internal/service/file"
)

// Transactor runs fn inside one database transaction
type Transactor interface {
	WithinTx(ctx context.Context, fn func(txCtx context.Context) error) error
}

type EmployeeServiceImpl struct {
	tx             Transactor
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	fileService    file.FileService
}

func NewEmployeeService(
	tx Transactor,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	fileService file.FileService,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		tx:             tx,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		fileService:    fileService,
	}
}

func (s *EmployeeServiceImpl) mapEmployeeToResponse(emp employee.Employee) employee.EmployeeResponse {
	var dobStr *string
	if emp.DateOfBirth != nil {
		d := emp.DateOfBirth.Format("2006-01-02")
		dobStr = &d
	}

	var imageURL *string
	if emp.Image != nil && *emp.Image != "" {
		u := s.fileService.FileURL(*emp.Image)
		imageURL = &u
	}

	return employee.EmployeeResponse{
		ID:            emp.ID,
		EmployeeID:    emp.EmployeeID,
		Name:          emp.Name,
		MobilePhone:   emp.MobilePhone,
		DateOfBirth:   dobStr,
		Image:         emp.Image,
		ImageURL:      imageURL,
		FaceEmbedding: emp.FaceEmbedding,
		FingerprintID: emp.FingerprintID,
		Status:        string(emp.Status),
	}
}

// nonEmpty treats a blank form value as absent
func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func parseDOB(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil
	}
	return &t
}

func statusOrDefault(s string) employee.Status {
	if s == "" {
		return employee.StatusActive
	}
	return employee.Status(s)
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		resp = append(resp, s.mapEmployeeToResponse(emp))
	}
	return resp, nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	var imagePath *string
	if req.File != nil {
		p, err := s.fileService.UploadEmployeeImage(ctx, req.File)
		if err != nil {
			return employee.EmployeeResponse{}, err
		}
		imagePath = &p
	}

	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		EmployeeID:    req.EmployeeID,
		Name:          req.Name,
		MobilePhone:   nonEmpty(req.MobilePhone),
		DateOfBirth:   parseDOB(req.DateOfBirth),
		Image:         imagePath,
		FaceEmbedding: nonEmpty(req.FaceEmbedding),
		FingerprintID: nonEmpty(req.FingerprintID),
		Status:        statusOrDefault(req.Status),
	})
	if err != nil {
		s.discardImage(ctx, imagePath)
		return employee.EmployeeResponse{}, err
	}

	return s.mapEmployeeToResponse(created), nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	existing, err := s.employeeRepo.GetByEmployeeID(ctx, req.EmployeeID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	var imagePath *string
	if req.File != nil {
		p, err := s.fileService.UploadEmployeeImage(ctx, req.File)
		if err != nil {
			return employee.EmployeeResponse{}, err
		}
		imagePath = &p
	}

	updated, err := s.employeeRepo.Update(ctx, employee.Employee{
		EmployeeID:    req.EmployeeID,
		Name:          req.Name,
		MobilePhone:   nonEmpty(req.MobilePhone),
		DateOfBirth:   parseDOB(req.DateOfBirth),
		Image:         imagePath,
		FaceEmbedding: nonEmpty(req.FaceEmbedding),
		FingerprintID: nonEmpty(req.FingerprintID),
		Status:        statusOrDefault(req.Status),
	}, imagePath != nil)
	if err != nil {
		s.discardImage(ctx, imagePath)
		return employee.EmployeeResponse{}, err
	}

	if imagePath != nil {
		s.discardImage(ctx, existing.Image)
	}

	return s.mapEmployeeToResponse(updated), nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id int64) error {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// Attendance rows reference the employee, so they go first
	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		removed, err := s.attendanceRepo.DeleteByEmployeeID(txCtx, emp.EmployeeID)
		if err != nil {
			return err
		}
		if err := s.employeeRepo.Delete(txCtx, emp.ID); err != nil {
			return err
		}
		slog.Info("employee deleted", "employee_id", emp.EmployeeID, "attendance_removed", removed)
		return nil
	})
	if err != nil {
		return err
	}

	s.discardImage(ctx, emp.Image)
	return nil
}

// GetImage implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetImage(ctx context.Context, id int64) (employee.ImageResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.ImageResponse{}, err
	}
	if emp.Image == nil || *emp.Image == "" {
		return employee.ImageResponse{}, employee.ErrImageNotFound
	}

	uri, err := s.fileService.ReadDataURI(ctx, *emp.Image)
	if err != nil {
		if errors.Is(err, storage.ErrFileNotFound) || errors.Is(err, storage.ErrInvalidPath) {
			return employee.ImageResponse{}, employee.ErrImageNotFound
		}
		return employee.ImageResponse{}, fmt.Errorf("failed to read employee image: %w", err)
	}

	return employee.ImageResponse{Base64: uri}, nil
}

// discardImage removes a stored image; failures are logged, never returned
func (s *EmployeeServiceImpl) discardImage(ctx context.Context, imagePath *string) {
	if imagePath == nil || *imagePath == "" {
		return
	}
	if err := s.fileService.DeleteFile(ctx, *imagePath); err != nil {
		slog.Warn("failed to remove employee image", "path", *imagePath, "error", err)
	}
}
