package models

import "time"

// Vendor is a client or supplier. Projects refer to vendors by name only.
type Vendor struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:255;not null;index" json:"name"`
	GSTNumber     string    `gorm:"column:gst_number;size:20" json:"gst_number"`
	Address       string    `gorm:"type:text" json:"address"`
	ContactPerson string    `gorm:"size:255" json:"contact_person"`
	Phone         string    `gorm:"size:20" json:"phone"`
	Email         string    `gorm:"size:255" json:"email"`
	BankName      string    `gorm:"size:255" json:"bank_name"`
	BankAccount   string    `gorm:"size:50" json:"bank_account"`
	IFSCCode      string    `gorm:"column:ifsc_code;size:20" json:"ifsc_code"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Vendor) TableName() string {
	return "vendors"
}
