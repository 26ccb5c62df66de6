package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kennar-hris/kennar-backend-go/internal/domain/admin"
	"github.com/kennar-hris/kennar-backend-go/internal/pkg/database"
)

type adminRepositoryImpl struct {
	db *database.DB
}

func NewAdminRepository(db *database.DB) admin.AdminRepository {
	return &adminRepositoryImpl{db: db}
}

// List implements admin.AdminRepository.
func (r *adminRepositoryImpl) List(ctx context.Context) ([]admin.Admin, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, admin_name, username, created_at
		FROM admins
		ORDER BY id
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	defer rows.Close()

	var admins []admin.Admin
	for rows.Next() {
		var a admin.Admin
		if err := rows.Scan(&a.ID, &a.EmployeeID, &a.AdminName, &a.Username, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan admin: %w", err)
		}
		admins = append(admins, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate admins: %w", err)
	}

	return admins, nil
}

// GetByUsername implements admin.AdminRepository.
func (r *adminRepositoryImpl) GetByUsername(ctx context.Context, username string) (admin.Admin, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, admin_name, username, password, created_at
		FROM admins
		WHERE username = $1
	`

	var a admin.Admin
	err := q.QueryRow(ctx, query, username).Scan(
		&a.ID, &a.EmployeeID, &a.AdminName, &a.Username, &a.PasswordHash, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return admin.Admin{}, admin.ErrAdminNotFound
		}
		return admin.Admin{}, fmt.Errorf("failed to get admin by username: %w", err)
	}
	return a, nil
}

// Create implements admin.AdminRepository.
func (r *adminRepositoryImpl) Create(ctx context.Context, newAdmin admin.Admin) (admin.Admin, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO admins (employee_id, admin_name, username, password)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		newAdmin.EmployeeID,
		newAdmin.AdminName,
		newAdmin.Username,
		newAdmin.PasswordHash,
	).Scan(&newAdmin.ID, &newAdmin.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "admins_username_key") {
			return admin.Admin{}, admin.ErrUsernameExists
		}
		return admin.Admin{}, fmt.Errorf("failed to create admin: %w", err)
	}

	return newAdmin, nil
}

// Delete implements admin.AdminRepository.
func (r *adminRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM admins WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete admin with id %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return admin.ErrAdminNotFound
	}
	return nil
}
