package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kennar-hris/kennar-backend-go/internal/domain/admin"
	"github.com/kennar-hris/kennar-backend-go/internal/domain/auth"
	"github.com/kennar-hris/kennar-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when the username is unknown so a miss costs
// the same as a wrong password.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("kennar-dummy-password"), bcrypt.DefaultCost)

type AuthServiceImpl struct {
	admin.AdminRepository
	jwt.Service
}

func NewAuthService(adminRepository admin.AdminRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		AdminRepository: adminRepository,
		Service:         jwtService,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, loginReq auth.LoginRequest) (auth.LoginResponse, error) {
	if err := loginReq.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	adminData, err := a.GetByUsername(ctx, loginReq.Username)
	if err != nil {
		if errors.Is(err, admin.ErrAdminNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(loginReq.Password))
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get admin by username: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(adminData.PasswordHash), []byte(loginReq.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	accessToken, expiresAt, err := a.GenerateAccessToken(adminData.ID, adminData.Username, adminData.EmployeeID)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	slog.Info("admin logged in", "admin_id", adminData.ID, "username", adminData.Username)

	return auth.LoginResponse{
		Success:     true,
		AdminName:   adminData.AdminName,
		EmployeeID:  adminData.EmployeeID,
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
	}, nil
}
