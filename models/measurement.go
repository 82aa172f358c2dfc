package models

import "time"

// MeasurementSheetEntry is one duct line on a project's measurement sheet.
// Dimensions are in millimetres, Area in square metres.
type MeasurementSheetEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"not null;index" json:"project_id"`
	Project   *Project  `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
	DuctNo    string    `gorm:"size:50" json:"duct_no"`
	DuctType  string    `gorm:"size:100" json:"duct_type"`
	Length    float64   `gorm:"not null" json:"length"`
	Width     float64   `gorm:"not null" json:"width"`
	Height    float64   `gorm:"not null;default:0" json:"height"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Gauge     string    `gorm:"size:20;not null;index" json:"gauge"`
	Area      float64   `gorm:"not null" json:"area"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (MeasurementSheetEntry) TableName() string {
	return "measurement_sheets"
}

// DuctArea converts a length x width (mm) duct run of qty pieces to m².
func DuctArea(length, width float64, qty int) float64 {
	return length * width * float64(qty) / 1_000_000
}

// ComputeArea refreshes Area from the entry's own dimensions.
func (e *MeasurementSheetEntry) ComputeArea() {
	e.Area = DuctArea(e.Length, e.Width, e.Quantity)
}
