package employee

import (
	"context"
)

// EmployeeService defines business logic for roster operations
type EmployeeService interface {
	// ListEmployees returns the full roster
	ListEmployees(ctx context.Context) ([]EmployeeResponse, error)

	// CreateEmployee adds an employee, storing the optional image
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// UpdateEmployee edits an employee identified by its business employee_id
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// DeleteEmployee removes an employee and its attendance records
	DeleteEmployee(ctx context.Context, id int64) error

	// GetImage returns the stored image as a base64 data URI
	GetImage(ctx context.Context, id int64) (ImageResponse, error)
}
