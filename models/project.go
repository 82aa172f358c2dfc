package models

import "time"

type DesignStatus string

const (
	DesignPreparation DesignStatus = "preparation"
	DesignCompleted   DesignStatus = "completed"
)

// Project is one enquiry/job. Client and Incharge are soft references to
// Vendor.Name and Employee.Name.
type Project struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	EnquiryID     string       `gorm:"column:enquiry_id;size:50;uniqueIndex;not null" json:"enquiry_id"`
	Client        string       `gorm:"size:255" json:"client"`
	QuotationRef  string       `gorm:"size:100" json:"quotation_ref"`
	StartDate     *Date        `json:"start_date,omitempty"`
	EndDate       *Date        `json:"end_date,omitempty"`
	Location      string       `gorm:"size:255" json:"location"`
	SourceDrawing string       `gorm:"size:255" json:"source_drawing,omitempty"`
	GSTNumber     string       `gorm:"column:gst_number;size:20" json:"gst_number"`
	Address       string       `gorm:"type:text" json:"address"`
	Incharge      string       `gorm:"size:255" json:"incharge"`
	Notes         string       `gorm:"type:text" json:"notes"`
	DesignStatus  DesignStatus `gorm:"size:20;not null;default:'preparation';index" json:"design_status"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

func (Project) TableName() string {
	return "projects"
}

// IsFinalized reports whether the design has been completed.
func (p *Project) IsFinalized() bool {
	return p.DesignStatus == DesignCompleted
}
