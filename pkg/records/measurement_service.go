package records

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
	"p9e.in/fabtrack/models"
)

// EntryInput carries the dimensions of one measurement sheet line, in mm.
type EntryInput struct {
	DuctNo   string  `json:"duct_no"`
	DuctType string  `json:"duct_type"`
	Length   float64 `json:"length"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Quantity int     `json:"quantity"`
	Gauge    string  `json:"gauge"`
}

func (in EntryInput) validate() error {
	switch {
	case in.Length <= 0:
		return validationError("length must be greater than zero")
	case in.Width <= 0:
		return validationError("width must be greater than zero")
	case in.Height < 0:
		return validationError("height must not be negative")
	case in.Quantity < 1:
		return validationError("quantity must be at least 1")
	case strings.TrimSpace(in.Gauge) == "":
		return validationError("gauge is required")
	}
	return nil
}

// apply overwrites every input field and recomputes the area.
func (in EntryInput) apply(e *models.MeasurementSheetEntry) {
	e.DuctNo = strings.TrimSpace(in.DuctNo)
	e.DuctType = strings.TrimSpace(in.DuctType)
	e.Length = in.Length
	e.Width = in.Width
	e.Height = in.Height
	e.Quantity = in.Quantity
	e.Gauge = strings.ToUpper(strings.TrimSpace(in.Gauge))
	e.ComputeArea()
}

// GaugeArea is the total sheet area of one gauge.
type GaugeArea struct {
	Gauge string  `json:"gauge"`
	Area  float64 `json:"area"`
}

// MeasurementService keeps project measurement sheets and aggregates them.
type MeasurementService struct {
	db *gorm.DB
}

func NewMeasurementService(db *gorm.DB) *MeasurementService {
	return &MeasurementService{db: db}
}

// AddEntry appends a line to the project's measurement sheet.
func (s *MeasurementService) AddEntry(ctx context.Context, projectID uint, in EntryInput) (*models.MeasurementSheetEntry, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	entry := models.MeasurementSheetEntry{ProjectID: projectID}
	in.apply(&entry)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireProject(tx, projectID); err != nil {
			return err
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to add measurement: %w", err)
	}
	return &entry, nil
}

// EditEntry replaces all dimensions of an entry; the area is recomputed
// from the new values.
func (s *MeasurementService) EditEntry(ctx context.Context, id uint, in EntryInput) (*models.MeasurementSheetEntry, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var entry models.MeasurementSheetEntry
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&entry, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("measurement", id)
			}
			return err
		}
		in.apply(&entry)
		return tx.Save(&entry).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to edit measurement: %w", err)
	}
	return &entry, nil
}

func (s *MeasurementService) GetEntry(ctx context.Context, id uint) (*models.MeasurementSheetEntry, error) {
	var entry models.MeasurementSheetEntry
	if err := s.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("measurement", id)
		}
		return nil, fmt.Errorf("failed to load measurement: %w", err)
	}
	return &entry, nil
}

func (s *MeasurementService) DeleteEntry(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.MeasurementSheetEntry{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete measurement: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound("measurement", id)
	}
	return nil
}

// ListEntries returns a project's measurement sheet, newest line first.
func (s *MeasurementService) ListEntries(ctx context.Context, projectID uint) ([]models.MeasurementSheetEntry, error) {
	db := s.db.WithContext(ctx)
	if err := requireProject(db, projectID); err != nil {
		return nil, err
	}
	var entries []models.MeasurementSheetEntry
	if err := db.Where("project_id = ?", projectID).Order("id DESC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list measurements: %w", err)
	}
	return entries, nil
}

// AreaByGauge sums the area of a project's entries per gauge, each total
// rounded to two decimals.
func (s *MeasurementService) AreaByGauge(ctx context.Context, projectID uint) (map[string]float64, error) {
	db := s.db.WithContext(ctx)
	if err := requireProject(db, projectID); err != nil {
		return nil, err
	}
	var rows []GaugeArea
	err := db.Model(&models.MeasurementSheetEntry{}).
		Select("gauge, SUM(area) AS area").
		Where("project_id = ?", projectID).
		Group("gauge").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate measurements: %w", err)
	}
	totals := make(map[string]float64, len(rows))
	for _, r := range rows {
		totals[r.Gauge] = round2(r.Area)
	}
	return totals, nil
}

// SortedGaugeAreas flattens an AreaByGauge result in gauge order.
func SortedGaugeAreas(totals map[string]float64) []GaugeArea {
	out := make([]GaugeArea, 0, len(totals))
	for g, a := range totals {
		out = append(out, GaugeArea{Gauge: g, Area: a})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Gauge < out[j].Gauge })
	return out
}
