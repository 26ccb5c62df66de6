package employee

import (
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/kennar-hris/kennar-backend-go/internal/pkg/validator"
)

const maxImageSize = 10 << 20 // 10MB

var allowedImageExts = []string{".jpg", ".jpeg", ".png", ".webp"}

type CreateEmployeeRequest struct {
	EmployeeID    string                `json:"employee_id"`
	Name          string                `json:"name"`
	MobilePhone   *string               `json:"mobile_phone,omitempty"`
	DateOfBirth   *string               `json:"date_of_birth,omitempty"`
	Status        string                `json:"status,omitempty"`
	FaceEmbedding *string               `json:"face_embedding,omitempty"`
	FingerprintID *string               `json:"fingerprint_id,omitempty"`
	File          multipart.File        `json:"-"`
	FileHeader    *multipart.FileHeader `json:"-"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	errs = append(errs, validateProfile(r.Name, r.MobilePhone, r.DateOfBirth, r.Status, r.FileHeader)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	EmployeeID    string                `json:"-"`
	Name          string                `json:"name"`
	MobilePhone   *string               `json:"mobile_phone,omitempty"`
	DateOfBirth   *string               `json:"date_of_birth,omitempty"`
	Status        string                `json:"status,omitempty"`
	FaceEmbedding *string               `json:"face_embedding,omitempty"`
	FingerprintID *string               `json:"fingerprint_id,omitempty"`
	File          multipart.File        `json:"-"`
	FileHeader    *multipart.FileHeader `json:"-"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	errs := validateProfile(r.Name, r.MobilePhone, r.DateOfBirth, r.Status, r.FileHeader)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateProfile(name string, phone, dob *string, status string, fh *multipart.FileHeader) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if validator.IsEmpty(name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if phone != nil && *phone != "" && !validator.IsValidPhoneNumber(*phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "mobile_phone",
			Message: "mobile_phone must be 7-15 digits",
		})
	}

	if dob != nil && *dob != "" {
		if _, ok := validator.IsValidDate(*dob); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date_of_birth",
				Message: "date_of_birth must be in YYYY-MM-DD format",
			})
		}
	}

	if status != "" && !validator.IsInSlice(status, []string{string(StatusActive), string(StatusInactive)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: Active, Inactive",
		})
	}

	if fh != nil {
		ext := strings.ToLower(filepath.Ext(fh.Filename))
		if !validator.IsInSlice(ext, allowedImageExts) {
			errs = append(errs, validator.ValidationError{
				Field:   "image",
				Message: "invalid file type: only jpg, jpeg, png, webp allowed",
			})
		} else if fh.Size > maxImageSize {
			errs = append(errs, validator.ValidationError{
				Field:   "image",
				Message: "image size must not exceed 10MB",
			})
		}
	}

	return errs
}

type EmployeeResponse struct {
	ID            int64   `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	Name          string  `json:"name"`
	MobilePhone   *string `json:"mobile_phone"`
	DateOfBirth   *string `json:"date_of_birth"`
	Image         *string `json:"image"`
	ImageURL      *string `json:"image_url,omitempty"`
	FaceEmbedding *string `json:"face_embedding"`
	FingerprintID *string `json:"fingerprint_id"`
	Status        string  `json:"status"`
}

type ImageResponse struct {
	Base64 string `json:"base64"`
}
