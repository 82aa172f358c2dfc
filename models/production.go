package models

import "time"

// ProductionRecord holds the completion percentage (0-100) of the five
// production stages of a project. At most one per project.
type ProductionRecord struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	ProjectID         uint      `gorm:"not null;uniqueIndex" json:"project_id"`
	Project           *Project  `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
	SheetCutting      float64   `gorm:"not null;default:0" json:"sheet_cutting"`
	PlasmaFabrication float64   `gorm:"not null;default:0" json:"plasma_fabrication"`
	BoxingAssembly    float64   `gorm:"not null;default:0" json:"boxing_assembly"`
	QualityChecking   float64   `gorm:"not null;default:0" json:"quality_checking"`
	Dispatch          float64   `gorm:"not null;default:0" json:"dispatch"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (ProductionRecord) TableName() string {
	return "production"
}
