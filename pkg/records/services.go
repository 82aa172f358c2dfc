package records

import (
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Options configures NewServices.
type Options struct {
	EnquiryPrefix      string
	EnquiryMaxAttempts int
}

// Services bundles every record service over one database handle.
type Services struct {
	Credentials  *CredentialService
	Vendors      *VendorService
	Employees    *EmployeeService
	Projects     *ProjectService
	Measurements *MeasurementService
	Production   *ProductionService
	Summaries    *SummaryService
	Dashboard    *DashboardService
}

func NewServices(db *gorm.DB, opts Options, log *zap.Logger) *Services {
	credentials := NewCredentialService(db)
	vendors := NewVendorService(db)
	employees := NewEmployeeService(db, credentials)
	projects := NewProjectService(db, NewEnquiryAllocator(opts.EnquiryPrefix), opts.EnquiryMaxAttempts, log)
	measurements := NewMeasurementService(db)
	production := NewProductionService(db)

	return &Services{
		Credentials:  credentials,
		Vendors:      vendors,
		Employees:    employees,
		Projects:     projects,
		Measurements: measurements,
		Production:   production,
		Summaries:    NewSummaryService(db, measurements, production),
		Dashboard:    NewDashboardService(vendors, employees, projects, production),
	}
}
