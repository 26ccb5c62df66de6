package admin

import "time"

type Admin struct {
	ID           int64
	EmployeeID   string
	AdminName    string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
