package models

import "time"

// Employee is a staff member. Username mirrors the login credential, if any;
// uniqueness is enforced on users.username, not here.
type Employee struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null;index" json:"name"`
	Designation string    `gorm:"size:100" json:"designation"`
	Email       string    `gorm:"size:255" json:"email"`
	Phone       string    `gorm:"size:20" json:"phone"`
	Username    string    `gorm:"size:100;index" json:"username,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}
