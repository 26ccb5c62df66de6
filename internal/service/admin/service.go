package admin

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kennar-hris/kennar-backend-go/internal/domain/admin"
	"golang.org/x/crypto/bcrypt"
)

type AdminServiceImpl struct {
	admin.AdminRepository
	bcryptCost int
}

func NewAdminService(repo admin.AdminRepository) admin.AdminService {
	return &AdminServiceImpl{
		AdminRepository: repo,
		bcryptCost:      bcrypt.DefaultCost,
	}
}

func mapAdminToResponse(a admin.Admin) admin.AdminResponse {
	return admin.AdminResponse{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		AdminName:  a.AdminName,
		Username:   a.Username,
	}
}

// ListAdmins implements admin.AdminService.
func (s *AdminServiceImpl) ListAdmins(ctx context.Context) ([]admin.AdminResponse, error) {
	admins, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]admin.AdminResponse, 0, len(admins))
	for _, a := range admins {
		resp = append(resp, mapAdminToResponse(a))
	}
	return resp, nil
}

// CreateAdmin implements admin.AdminService.
func (s *AdminServiceImpl) CreateAdmin(ctx context.Context, req admin.CreateAdminRequest) (admin.AdminResponse, error) {
	if err := req.Validate(); err != nil {
		return admin.AdminResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return admin.AdminResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.Create(ctx, admin.Admin{
		EmployeeID:   req.EmployeeID,
		AdminName:    req.AdminName,
		Username:     req.Username,
		PasswordHash: string(hash),
	})
	if err != nil {
		return admin.AdminResponse{}, err
	}

	slog.Info("admin account created", "admin_id", created.ID, "username", created.Username)
	return mapAdminToResponse(created), nil
}

// DeleteAdmin implements admin.AdminService.
func (s *AdminServiceImpl) DeleteAdmin(ctx context.Context, id int64) error {
	return s.Delete(ctx, id)
}
