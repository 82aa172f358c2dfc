package records

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"p9e.in/fabtrack/models"
)

// EmployeeInput carries the editable employee fields. Password is only used
// when Username is set on create; it is never stored on the employee.
type EmployeeInput struct {
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Username    string `json:"username"`
	Password    string `json:"password,omitempty"`
	Role        string `json:"role,omitempty"`
}

func (in EmployeeInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return validationError("employee name is required")
	}
	return nil
}

func (in EmployeeInput) apply(e *models.Employee) {
	e.Name = strings.TrimSpace(in.Name)
	e.Designation = in.Designation
	e.Email = in.Email
	e.Phone = in.Phone
	e.Username = strings.TrimSpace(in.Username)
}

// EmployeeService manages employee records and their optional login.
type EmployeeService struct {
	db          *gorm.DB
	credentials *CredentialService
}

func NewEmployeeService(db *gorm.DB, credentials *CredentialService) *EmployeeService {
	return &EmployeeService{db: db, credentials: credentials}
}

// Create saves the employee and, when a username is given, registers the
// login credential in the same transaction. A taken username rolls back the
// employee as well and returns ErrDuplicate.
func (s *EmployeeService) Create(ctx context.Context, in EmployeeInput) (*models.Employee, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var employee models.Employee
	in.apply(&employee)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&employee).Error; err != nil {
			return fmt.Errorf("failed to create employee: %w", err)
		}
		if employee.Username == "" {
			return nil
		}
		_, err := s.credentials.Register(ctx, tx, employee.Username, in.Password, in.Role)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

// List returns all employees, newest first.
func (s *EmployeeService) List(ctx context.Context) ([]models.Employee, error) {
	var employees []models.Employee
	if err := s.db.WithContext(ctx).Order("id DESC").Find(&employees).Error; err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

// Names returns employee names in alphabetical order, for incharge pickers.
func (s *EmployeeService) Names(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).Model(&models.Employee{}).Order("name ASC").Pluck("name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list employee names: %w", err)
	}
	return names, nil
}

func (s *EmployeeService) Get(ctx context.Context, id uint) (*models.Employee, error) {
	var employee models.Employee
	if err := s.db.WithContext(ctx).First(&employee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("employee", id)
		}
		return nil, fmt.Errorf("failed to load employee: %w", err)
	}
	return &employee, nil
}

// Update edits the employee record only; credentials are not touched.
func (s *EmployeeService) Update(ctx context.Context, id uint, in EmployeeInput) (*models.Employee, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var employee models.Employee
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&employee, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("employee", id)
			}
			return err
		}
		username := employee.Username
		in.apply(&employee)
		employee.Username = username
		return tx.Save(&employee).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}
	return &employee, nil
}

// Delete removes the employee. Its login credential, if any, is kept.
func (s *EmployeeService) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Employee{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete employee: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound("employee", id)
	}
	return nil
}

// Count returns the number of employees.
func (s *EmployeeService) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Employee{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count employees: %w", err)
	}
	return n, nil
}
