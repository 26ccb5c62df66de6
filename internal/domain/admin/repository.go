package admin

import "context"

type AdminRepository interface {
	List(ctx context.Context) ([]Admin, error)
	GetByUsername(ctx context.Context, username string) (Admin, error)
	// Create returns ErrUsernameExists when username is taken
	Create(ctx context.Context, newAdmin Admin) (Admin, error)
	Delete(ctx context.Context, id int64) error
}
