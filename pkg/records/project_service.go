package records

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"p9e.in/fabtrack/models"
)

// ProjectInput carries the editable project fields. An empty EnquiryID on
// create asks the allocator for one.
type ProjectInput struct {
	EnquiryID     string       `json:"enquiry_id"`
	Client        string       `json:"client"`
	QuotationRef  string       `json:"quotation_ref"`
	StartDate     *models.Date `json:"start_date"`
	EndDate       *models.Date `json:"end_date"`
	Location      string       `json:"location"`
	// SourceDrawing is set from a stored upload only, never from the body.
	SourceDrawing string       `json:"-"`
	GSTNumber     string       `json:"gst_number"`
	Address       string       `json:"address"`
	Incharge      string       `json:"incharge"`
	Notes         string       `json:"notes"`
}

func (in ProjectInput) validate() error {
	if strings.TrimSpace(in.Client) == "" {
		return validationError("client is required")
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Time().Before(in.StartDate.Time()) {
		return validationError("end date %s is before start date %s", in.EndDate, in.StartDate)
	}
	return nil
}

func (in ProjectInput) apply(p *models.Project) {
	p.Client = strings.TrimSpace(in.Client)
	p.QuotationRef = in.QuotationRef
	p.StartDate = in.StartDate
	p.EndDate = in.EndDate
	p.Location = in.Location
	p.GSTNumber = strings.TrimSpace(in.GSTNumber)
	p.Address = in.Address
	p.Incharge = in.Incharge
	p.Notes = in.Notes
	if in.SourceDrawing != "" {
		p.SourceDrawing = in.SourceDrawing
	}
}

// ProjectService manages projects and their design status.
type ProjectService struct {
	db          *gorm.DB
	allocator   *EnquiryAllocator
	maxAttempts int
	now         func() time.Time
	log         *zap.Logger
}

func NewProjectService(db *gorm.DB, allocator *EnquiryAllocator, maxAttempts int, log *zap.Logger) *ProjectService {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &ProjectService{
		db:          db,
		allocator:   allocator,
		maxAttempts: maxAttempts,
		now:         time.Now,
		log:         log,
	}
}

// WithClock replaces the clock used to pick the allocation year.
func (s *ProjectService) WithClock(now func() time.Time) *ProjectService {
	s.now = now
	return s
}

// Create inserts a new project in preparation status.
//
// A caller-supplied enquiry id that already exists fails with ErrDuplicate and
// nothing is written. Without one, the id is allocated for the current year;
// if the candidate collides (another writer got there first, or a project
// was deleted) the sequence is bumped and the insert retried, up to
// maxAttempts times.
func (s *ProjectService) Create(ctx context.Context, in ProjectInput) (*models.Project, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	project := models.Project{DesignStatus: models.DesignPreparation}
	in.apply(&project)

	if explicit := strings.TrimSpace(in.EnquiryID); explicit != "" {
		project.EnquiryID = explicit
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			taken, err := enquiryTaken(tx, explicit, 0)
			if err != nil {
				return err
			}
			if taken {
				return fmt.Errorf("enquiry id %s: %w", explicit, ErrDuplicate)
			}
			return tx.Create(&project).Error
		})
		if err != nil {
			return nil, wrapProjectWrite(err, explicit)
		}
		return &project, nil
	}

	year := s.now().Year()
	seq := 0
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if seq == 0 {
				next, err := s.allocator.NextSequence(ctx, tx, year)
				if err != nil {
					return err
				}
				seq = next
			}
			candidate := s.allocator.Format(year, seq)
			taken, err := enquiryTaken(tx, candidate, 0)
			if err != nil {
				return err
			}
			if taken {
				return fmt.Errorf("enquiry id %s: %w", candidate, ErrDuplicate)
			}
			project.ID = 0
			project.EnquiryID = candidate
			return tx.Create(&project).Error
		})
		if err == nil {
			return &project, nil
		}
		if !errors.Is(err, ErrDuplicate) && !isUniqueViolation(err) {
			return nil, fmt.Errorf("failed to create project: %w", err)
		}
		s.log.Warn("Enquiry id collision, retrying",
			zap.String("enquiry_id", s.allocator.Format(year, seq)),
			zap.Int("attempt", attempt))
		seq++
	}
	return nil, fmt.Errorf("no free enquiry id for %d after %d attempts: %w", year, s.maxAttempts, ErrDuplicate)
}

// List returns all projects, newest first.
func (s *ProjectService) List(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	if err := s.db.WithContext(ctx).Order("id DESC").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// ListByStatus returns projects with the given design status, newest first.
func (s *ProjectService) ListByStatus(ctx context.Context, status models.DesignStatus) ([]models.Project, error) {
	var projects []models.Project
	err := s.db.WithContext(ctx).Where("design_status = ?", status).Order("id DESC").Find(&projects).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list %s projects: %w", status, err)
	}
	return projects, nil
}

func (s *ProjectService) Get(ctx context.Context, id uint) (*models.Project, error) {
	return loadProject(s.db.WithContext(ctx), id)
}

// Update overwrites the editable fields. A non-empty EnquiryID different from
// the current one must not belong to another project. Design status is not
// editable here; see FinalizeDesign.
func (s *ProjectService) Update(ctx context.Context, id uint, in ProjectInput) (*models.Project, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var project *models.Project
	newID := strings.TrimSpace(in.EnquiryID)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := loadProject(tx, id)
		if err != nil {
			return err
		}
		if newID != "" && newID != p.EnquiryID {
			taken, err := enquiryTaken(tx, newID, id)
			if err != nil {
				return err
			}
			if taken {
				return fmt.Errorf("enquiry id %s: %w", newID, ErrDuplicate)
			}
			p.EnquiryID = newID
		}
		in.apply(p)
		project = p
		return tx.Save(p).Error
	})
	if err != nil {
		return nil, wrapProjectWrite(err, newID)
	}
	return project, nil
}

// FinalizeDesign moves a project from preparation to completed, which makes
// it eligible for production tracking.
func (s *ProjectService) FinalizeDesign(ctx context.Context, id uint) (*models.Project, error) {
	var project *models.Project
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := loadProject(tx, id)
		if err != nil {
			return err
		}
		if p.IsFinalized() {
			return fmt.Errorf("project %d design is already %s: %w", id, p.DesignStatus, ErrInvalidTransition)
		}
		p.DesignStatus = models.DesignCompleted
		project = p
		return tx.Model(p).Update("design_status", models.DesignCompleted).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidTransition) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to finalize project: %w", err)
	}
	return project, nil
}

// Delete removes the project with its measurement entries and production
// record.
func (s *ProjectService) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.MeasurementSheetEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.ProductionRecord{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Project{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return notFound("project", id)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

// CountByStatus returns the number of projects per design status.
func (s *ProjectService) CountByStatus(ctx context.Context) (map[models.DesignStatus]int64, error) {
	var rows []struct {
		DesignStatus models.DesignStatus
		N            int64
	}
	err := s.db.WithContext(ctx).Model(&models.Project{}).
		Select("design_status, COUNT(*) AS n").
		Group("design_status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count projects: %w", err)
	}
	counts := map[models.DesignStatus]int64{
		models.DesignPreparation: 0,
		models.DesignCompleted:   0,
	}
	for _, r := range rows {
		counts[r.DesignStatus] = r.N
	}
	return counts, nil
}

func loadProject(db *gorm.DB, id uint) (*models.Project, error) {
	var project models.Project
	if err := db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("project", id)
		}
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	return &project, nil
}

func requireProject(db *gorm.DB, id uint) error {
	var n int64
	if err := db.Model(&models.Project{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return fmt.Errorf("failed to load project: %w", err)
	}
	if n == 0 {
		return notFound("project", id)
	}
	return nil
}

// enquiryTaken reports whether enquiryID belongs to a project other than except.
func enquiryTaken(db *gorm.DB, enquiryID string, except uint) (bool, error) {
	q := db.Model(&models.Project{}).Where("enquiry_id = ?", enquiryID)
	if except != 0 {
		q = q.Where("id <> ?", except)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, fmt.Errorf("failed to check enquiry id: %w", err)
	}
	return n > 0, nil
}

func wrapProjectWrite(err error, enquiryID string) error {
	switch {
	case errors.Is(err, ErrDuplicate), errors.Is(err, ErrNotFound):
		return err
	case isUniqueViolation(err):
		return fmt.Errorf("enquiry id %s: %w", enquiryID, ErrDuplicate)
	default:
		return fmt.Errorf("failed to save project: %w", err)
	}
}
