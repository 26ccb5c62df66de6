package admin

import "context"

type AdminService interface {
	ListAdmins(ctx context.Context) ([]AdminResponse, error)
	CreateAdmin(ctx context.Context, req CreateAdminRequest) (AdminResponse, error)
	DeleteAdmin(ctx context.Context, id int64) error
}
