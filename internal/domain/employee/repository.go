package employee

import "context"

type EmployeeRepository interface {
	List(ctx context.Context) ([]Employee, error)
	GetByID(ctx context.Context, id int64) (Employee, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (Employee, error)
	// Create returns ErrEmployeeIDExists when employee_id is taken
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	// Update matches on EmployeeID; the image column is only written when replaceImage is set
	Update(ctx context.Context, emp Employee, replaceImage bool) (Employee, error)
	Delete(ctx context.Context, id int64) error
}
