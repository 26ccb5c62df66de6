package response

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/kennar-hris/kennar-backend-go/internal/domain/admin"
	"github.com/kennar-hris/kennar-backend-go/internal/domain/attendance"
	"github.com/kennar-hris/kennar-backend-go/internal/domain/auth"
	"github.com/kennar-hris/kennar-backend-go/internal/domain/employee"
	"github.com/kennar-hris/kennar-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid credentials")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrImageNotFound):
		NotFound(w, "No image found for this employee")
	case errors.Is(err, employee.ErrEmployeeIDExists):
		BadRequest(w, "Employee ID already exists", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Employee already checked in on this date")
	case errors.Is(err, attendance.ErrEmployeeInactive):
		BadRequest(w, "Employee is not active", nil)

	// Admin domain errors
	case errors.Is(err, admin.ErrAdminNotFound):
		NotFound(w, "Admin not found")
	case errors.Is(err, admin.ErrUsernameExists):
		Conflict(w, "Username already exists")

	case errors.Is(err, context.DeadlineExceeded):
		GatewayTimeout(w, "Request timed out")

	// Default
	default:
		slog.Error("request failed", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
