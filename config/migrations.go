package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
	"p9e.in/fabtrack/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "01022024_create_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.LoginCredential{}, &models.Vendor{}, &models.Employee{},
					&models.Project{}, &models.MeasurementSheetEntry{}, &models.ProductionRecord{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("production", "measurement_sheets", "projects",
					"employees", "vendors", "users")
			},
		},
		{
			ID: "15032024_add_measurement_gauge_index",
			Migrate: func(tx *gorm.DB) error {
				if tx.Migrator().HasIndex(&models.MeasurementSheetEntry{}, "idx_measurement_sheets_project_gauge") {
					return nil
				}
				return tx.Exec("CREATE INDEX idx_measurement_sheets_project_gauge ON measurement_sheets(project_id, gauge)").Error
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropIndex(&models.MeasurementSheetEntry{}, "idx_measurement_sheets_project_gauge")
			},
		},
	})
	return m.Migrate()
}
