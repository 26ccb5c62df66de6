package admin

import "github.com/kennar-hris/kennar-backend-go/internal/pkg/validator"

type CreateAdminRequest struct {
	EmployeeID string `json:"employee_id"`
	AdminName  string `json:"admin_name"`
	Username   string `json:"username"`
	Password   string `json:"password"`
}

func (r *CreateAdminRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if validator.IsEmpty(r.AdminName) {
		errs = append(errs, validator.ValidationError{
			Field:   "admin_name",
			Message: "admin_name is required",
		})
	}
	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username is required",
		})
	} else if !validator.IsValidUsername(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username must be 3-50 characters of letters, numbers, dots, underscores, or hyphens",
		})
	}
	if r.Password == "" {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	} else if len(r.Password) > 72 {
		// bcrypt ignores input past 72 bytes
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must not exceed 72 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AdminResponse struct {
	ID         int64  `json:"id"`
	EmployeeID string `json:"employee_id"`
	AdminName  string `json:"admin_name"`
	Username   string `json:"username"`
}

type DeleteAdminResponse struct {
	Success bool `json:"success"`
}
