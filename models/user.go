package models

import "time"

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// LoginCredential is a username/password pair used for authentication.
type LoginCredential struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:100;uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         string    `gorm:"size:20;not null;default:'staff'" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (LoginCredential) TableName() string {
	return "users"
}

// ValidRole reports whether role is a known credential role.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleStaff
}
