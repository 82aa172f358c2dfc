package records

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"p9e.in/fabtrack/models"
)

// VendorInput carries the editable vendor fields.
type VendorInput struct {
	Name          string `json:"name"`
	GSTNumber     string `json:"gst_number"`
	Address       string `json:"address"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	BankName      string `json:"bank_name"`
	BankAccount   string `json:"bank_account"`
	IFSCCode      string `json:"ifsc_code"`
}

func (in VendorInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return validationError("vendor name is required")
	}
	return nil
}

func (in VendorInput) apply(v *models.Vendor) {
	v.Name = strings.TrimSpace(in.Name)
	v.GSTNumber = strings.TrimSpace(in.GSTNumber)
	v.Address = in.Address
	v.ContactPerson = in.ContactPerson
	v.Phone = in.Phone
	v.Email = in.Email
	v.BankName = in.BankName
	v.BankAccount = in.BankAccount
	v.IFSCCode = strings.ToUpper(strings.TrimSpace(in.IFSCCode))
}

// VendorService manages vendor records
type VendorService struct {
	db *gorm.DB
}

func NewVendorService(db *gorm.DB) *VendorService {
	return &VendorService{db: db}
}

func (s *VendorService) Create(ctx context.Context, in VendorInput) (*models.Vendor, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var vendor models.Vendor
	in.apply(&vendor)
	if err := s.db.WithContext(ctx).Create(&vendor).Error; err != nil {
		return nil, fmt.Errorf("failed to create vendor: %w", err)
	}
	return &vendor, nil
}

// List returns all vendors, newest first.
func (s *VendorService) List(ctx context.Context) ([]models.Vendor, error) {
	var vendors []models.Vendor
	if err := s.db.WithContext(ctx).Order("id DESC").Find(&vendors).Error; err != nil {
		return nil, fmt.Errorf("failed to list vendors: %w", err)
	}
	return vendors, nil
}

// Names returns vendor names in alphabetical order, for client pickers.
func (s *VendorService) Names(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).Model(&models.Vendor{}).Order("name ASC").Pluck("name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list vendor names: %w", err)
	}
	return names, nil
}

func (s *VendorService) Get(ctx context.Context, id uint) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := s.db.WithContext(ctx).First(&vendor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("vendor", id)
		}
		return nil, fmt.Errorf("failed to load vendor: %w", err)
	}
	return &vendor, nil
}

func (s *VendorService) Update(ctx context.Context, id uint, in VendorInput) (*models.Vendor, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var vendor models.Vendor
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&vendor, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("vendor", id)
			}
			return err
		}
		in.apply(&vendor)
		return tx.Save(&vendor).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update vendor: %w", err)
	}
	return &vendor, nil
}

func (s *VendorService) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Vendor{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete vendor: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound("vendor", id)
	}
	return nil
}

// Count returns the number of vendors.
func (s *VendorService) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Vendor{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count vendors: %w", err)
	}
	return n, nil
}
