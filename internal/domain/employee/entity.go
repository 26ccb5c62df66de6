package employee

import (
	"time"
)

type Employee struct {
	ID            int64
	EmployeeID    string
	Name          string
	MobilePhone   *string
	DateOfBirth   *time.Time
	Image         *string
	FaceEmbedding *string
	FingerprintID *string
	Status        Status
	CreatedAt     time.Time
}

type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)
