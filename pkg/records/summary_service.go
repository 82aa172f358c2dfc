package records

import (
	"context"

	"gorm.io/gorm"
	"p9e.in/fabtrack/models"
)

// ProjectSummary is a read-only report of one project: core fields,
// sheet area per gauge and production progress.
type ProjectSummary struct {
	Project         models.Project     `json:"project"`
	AreaByGauge     map[string]float64 `json:"area_by_gauge"`
	Gauges          []GaugeArea        `json:"gauges"`
	TotalArea       float64            `json:"total_area"`
	EntryCount      int64              `json:"entry_count"`
	Stages          Stages             `json:"stages"`
	OverallProgress float64            `json:"overall_progress"`
}

// SummaryService composes project summaries. It never writes.
type SummaryService struct {
	db           *gorm.DB
	measurements *MeasurementService
	production   *ProductionService
}

func NewSummaryService(db *gorm.DB, measurements *MeasurementService, production *ProductionService) *SummaryService {
	return &SummaryService{db: db, measurements: measurements, production: production}
}

// BuildSummary returns ErrNotFound when projectID does not exist.
func (s *SummaryService) BuildSummary(ctx context.Context, projectID uint) (*ProjectSummary, error) {
	project, err := loadProject(s.db.WithContext(ctx), projectID)
	if err != nil {
		return nil, err
	}
	areas, err := s.measurements.AreaByGauge(ctx, projectID)
	if err != nil {
		return nil, err
	}
	stages, err := s.production.GetStages(ctx, projectID)
	if err != nil {
		return nil, err
	}

	var entries int64
	err = s.db.WithContext(ctx).Model(&models.MeasurementSheetEntry{}).
		Where("project_id = ?", projectID).
		Count(&entries).Error
	if err != nil {
		return nil, err
	}

	var total float64
	for _, a := range areas {
		total += a
	}

	return &ProjectSummary{
		Project:         *project,
		AreaByGauge:     areas,
		Gauges:          SortedGaugeAreas(areas),
		TotalArea:       round2(total),
		EntryCount:      entries,
		Stages:          stages,
		OverallProgress: stages.Overall(),
	}, nil
}
