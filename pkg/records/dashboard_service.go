package records

import (
	"context"
	"fmt"

	"p9e.in/fabtrack/models"
)

// DashboardStats are the headline counts shown on the home page.
type DashboardStats struct {
	Vendors             int64   `json:"vendors"`
	Employees           int64   `json:"employees"`
	ProjectsPreparation int64   `json:"projects_preparation"`
	ProjectsCompleted   int64   `json:"projects_completed"`
	AverageProgress     float64 `json:"average_progress"`
}

type DashboardService struct {
	vendors    *VendorService
	employees  *EmployeeService
	projects   *ProjectService
	production *ProductionService
}

func NewDashboardService(vendors *VendorService, employees *EmployeeService, projects *ProjectService, production *ProductionService) *DashboardService {
	return &DashboardService{vendors: vendors, employees: employees, projects: projects, production: production}
}

// Stats counts records and averages overall progress over finalized projects.
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	var err error

	if stats.Vendors, err = s.vendors.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Employees, err = s.employees.Count(ctx); err != nil {
		return nil, err
	}
	counts, err := s.projects.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	stats.ProjectsPreparation = counts[models.DesignPreparation]
	stats.ProjectsCompleted = counts[models.DesignCompleted]

	rows, err := s.production.ProductionView(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load production view: %w", err)
	}
	if len(rows) > 0 {
		var sum float64
		for _, r := range rows {
			sum += r.OverallProgress
		}
		stats.AverageProgress = round2(sum / float64(len(rows)))
	}
	return &stats, nil
}
