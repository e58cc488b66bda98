package domain

import "time"

// StaffRole enumerates staff permission levels.
type StaffRole string

const (
	StaffRoleAdmin StaffRole = "ADMIN"
	StaffRoleAgent StaffRole = "AGENT"
)

// StaffMember is an internal operator who manages leads and quotes.
type StaffMember struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         StaffRole
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
