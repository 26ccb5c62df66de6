package http

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kennar-hris/kennar-backend-go/internal/domain/employee"
	"github.com/kennar-hris/kennar-backend-go/internal/handler/http/response"
)

// maxEmployeeForm covers the 10MB image plus the text fields
const maxEmployeeForm = 11 << 20

type EmployeeHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	GetImage(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &employeeHandlerImpl{
		employeeService: employeeService,
	}
}

// parseEmployeeForm accepts multipart or urlencoded bodies and returns the
// optional image part.
func parseEmployeeForm(w http.ResponseWriter, r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxEmployeeForm)

	if err := r.ParseMultipartForm(maxEmployeeForm); err != nil {
		if !errors.Is(err, http.ErrNotMultipart) {
			return nil, nil, err
		}
		if err := r.ParseForm(); err != nil {
			return nil, nil, err
		}
		return nil, nil, nil
	}

	file, fileHeader, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	return file, fileHeader, nil
}

// List handles GET /employees
func (h *employeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employeeService.ListEmployees(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.OK(w, employees)
}

// Create handles POST /employees
func (h *employeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	file, fileHeader, err := parseEmployeeForm(w, r)
	if err != nil {
		slog.Error("Failed to parse employee form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}
	if file != nil {
		defer file.Close()
	}

	req := employee.CreateEmployeeRequest{
		EmployeeID:    r.FormValue("employee_id"),
		Name:          r.FormValue("name"),
		MobilePhone:   formValuePtr(r, "mobile_phone"),
		DateOfBirth:   formValuePtr(r, "date_of_birth"),
		Status:        r.FormValue("status"),
		FaceEmbedding: formValuePtr(r, "face_embedding"),
		FingerprintID: formValuePtr(r, "fingerprint_id"),
		File:          file,
		FileHeader:    fileHeader,
	}

	result, err := h.employeeService.CreateEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee added successfully", result)
}

// Update handles PUT /employees/{id}, where id is the business employee_id
func (h *employeeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")

	file, fileHeader, err := parseEmployeeForm(w, r)
	if err != nil {
		slog.Error("Failed to parse employee form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}
	if file != nil {
		defer file.Close()
	}

	req := employee.UpdateEmployeeRequest{
		EmployeeID:    employeeID,
		Name:          r.FormValue("name"),
		MobilePhone:   formValuePtr(r, "mobile_phone"),
		DateOfBirth:   formValuePtr(r, "date_of_birth"),
		Status:        r.FormValue("status"),
		FaceEmbedding: formValuePtr(r, "face_embedding"),
		FingerprintID: formValuePtr(r, "fingerprint_id"),
		File:          file,
		FileHeader:    fileHeader,
	}

	result, err := h.employeeService.UpdateEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee updated successfully", result)
}

// Delete handles DELETE /employees/{id}
func (h *employeeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		response.BadRequest(w, "Invalid employee id", nil)
		return
	}

	if err := h.employeeService.DeleteEmployee(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee deleted successfully", nil)
}

// GetImage handles GET /employees/{id}/image
func (h *employeeHandlerImpl) GetImage(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		response.BadRequest(w, "Invalid employee id", nil)
		return
	}

	result, err := h.employeeService.GetImage(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.OK(w, result)
}
