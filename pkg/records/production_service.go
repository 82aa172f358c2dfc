package records

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"p9e.in/fabtrack/models"
)

// Stages are the five production stage percentages of a project.
type Stages struct {
	SheetCutting      float64 `json:"sheet_cutting"`
	PlasmaFabrication float64 `json:"plasma_fabrication"`
	BoxingAssembly    float64 `json:"boxing_assembly"`
	QualityChecking   float64 `json:"quality_checking"`
	Dispatch          float64 `json:"dispatch"`
}

func stagesOf(r *models.ProductionRecord) Stages {
	if r == nil {
		return Stages{}
	}
	return Stages{
		SheetCutting:      r.SheetCutting,
		PlasmaFabrication: r.PlasmaFabrication,
		BoxingAssembly:    r.BoxingAssembly,
		QualityChecking:   r.QualityChecking,
		Dispatch:          r.Dispatch,
	}
}

// Overall is the mean of the five stages, rounded to two decimals.
func (s Stages) Overall() float64 {
	sum := s.SheetCutting + s.PlasmaFabrication + s.BoxingAssembly + s.QualityChecking + s.Dispatch
	return round2(sum / 5)
}

// StageUpdate is a partial update: nil fields keep their stored value.
type StageUpdate struct {
	SheetCutting      *float64 `json:"sheet_cutting,omitempty"`
	PlasmaFabrication *float64 `json:"plasma_fabrication,omitempty"`
	BoxingAssembly    *float64 `json:"boxing_assembly,omitempty"`
	QualityChecking   *float64 `json:"quality_checking,omitempty"`
	Dispatch          *float64 `json:"dispatch,omitempty"`
}

type stageField struct {
	name string
	val  *float64
	dst  *float64
}

// fields pairs each optional value of u with its column in r.
func (u StageUpdate) fields(r *models.ProductionRecord) []stageField {
	return []stageField{
		{"sheet_cutting", u.SheetCutting, &r.SheetCutting},
		{"plasma_fabrication", u.PlasmaFabrication, &r.PlasmaFabrication},
		{"boxing_assembly", u.BoxingAssembly, &r.BoxingAssembly},
		{"quality_checking", u.QualityChecking, &r.QualityChecking},
		{"dispatch", u.Dispatch, &r.Dispatch},
	}
}

func (u StageUpdate) validate() error {
	for _, f := range u.fields(&models.ProductionRecord{}) {
		if f.val != nil && (*f.val < 0 || *f.val > 100) {
			return validationError("%s must be between 0 and 100, got %g", f.name, *f.val)
		}
	}
	return nil
}

// ProductionRow is one line of the production view.
type ProductionRow struct {
	Project         models.Project `json:"project"`
	Stages          Stages         `json:"stages"`
	OverallProgress float64        `json:"overall_progress"`
}

// ProductionService tracks stage completion of finalized projects.
type ProductionService struct {
	db *gorm.DB
}

func NewProductionService(db *gorm.DB) *ProductionService {
	return &ProductionService{db: db}
}

// SetStages upserts the project's production record. Only stages present in
// u are written; a new record starts with every stage at 0.
func (s *ProductionService) SetStages(ctx context.Context, projectID uint, u StageUpdate) (Stages, error) {
	if err := u.validate(); err != nil {
		return Stages{}, err
	}
	var record models.ProductionRecord
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireProject(tx, projectID); err != nil {
			return err
		}
		err := tx.Where("project_id = ?", projectID).First(&record).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			record = models.ProductionRecord{ProjectID: projectID}
		case err != nil:
			return err
		}
		for _, f := range u.fields(&record) {
			if f.val != nil {
				*f.dst = *f.val
			}
		}
		if record.ID == 0 {
			return tx.Create(&record).Error
		}
		return tx.Save(&record).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Stages{}, err
		}
		if isUniqueViolation(err) {
			return Stages{}, fmt.Errorf("production record for project %d was created concurrently: %w", projectID, ErrDuplicate)
		}
		return Stages{}, fmt.Errorf("failed to save production stages: %w", err)
	}
	return stagesOf(&record), nil
}

// GetStages returns the stored stages, all zero when none were recorded.
func (s *ProductionService) GetStages(ctx context.Context, projectID uint) (Stages, error) {
	db := s.db.WithContext(ctx)
	if err := requireProject(db, projectID); err != nil {
		return Stages{}, err
	}
	record, err := findProduction(db, projectID)
	if err != nil {
		return Stages{}, err
	}
	return stagesOf(record), nil
}

// OverallProgress is the mean of the five stages, or 0 without a record.
func (s *ProductionService) OverallProgress(ctx context.Context, projectID uint) (float64, error) {
	stages, err := s.GetStages(ctx, projectID)
	if err != nil {
		return 0, err
	}
	return stages.Overall(), nil
}

// ProductionView lists finalized projects, newest first, with their stages.
func (s *ProductionService) ProductionView(ctx context.Context) ([]ProductionRow, error) {
	db := s.db.WithContext(ctx)
	var projects []models.Project
	err := db.Where("design_status = ?", models.DesignCompleted).Order("id DESC").Find(&projects).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list finalized projects: %w", err)
	}
	if len(projects) == 0 {
		return []ProductionRow{}, nil
	}

	ids := make([]uint, len(projects))
	for i, p := range projects {
		ids[i] = p.ID
	}
	var records []models.ProductionRecord
	if err := db.Where("project_id IN ?", ids).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load production records: %w", err)
	}
	byProject := make(map[uint]*models.ProductionRecord, len(records))
	for i := range records {
		byProject[records[i].ProjectID] = &records[i]
	}

	rows := make([]ProductionRow, len(projects))
	for i, p := range projects {
		stages := stagesOf(byProject[p.ID])
		rows[i] = ProductionRow{Project: p, Stages: stages, OverallProgress: stages.Overall()}
	}
	return rows, nil
}

func findProduction(db *gorm.DB, projectID uint) (*models.ProductionRecord, error) {
	var record models.ProductionRecord
	err := db.Where("project_id = ?", projectID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load production record: %w", err)
	}
	return &record, nil
}
