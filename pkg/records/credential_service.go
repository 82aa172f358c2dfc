package records

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"p9e.in/fabtrack/models"
)

const minPasswordLength = 6

// CredentialService stores bcrypt-hashed login credentials.
type CredentialService struct {
	db   *gorm.DB
	cost int
}

func NewCredentialService(db *gorm.DB) *CredentialService {
	return &CredentialService{db: db, cost: bcrypt.DefaultCost}
}

// WithCost overrides the bcrypt cost, mainly to keep tests fast.
func (s *CredentialService) WithCost(cost int) *CredentialService {
	s.cost = cost
	return s
}

// Register creates a credential. tx may be a transaction owned by the
// caller; nil means the service's own database handle.
func (s *CredentialService) Register(ctx context.Context, tx *gorm.DB, username, password, role string) (*models.LoginCredential, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, validationError("username is required")
	}
	if len(password) < minPasswordLength {
		return nil, validationError("password must be at least %d characters", minPasswordLength)
	}
	if role == "" {
		role = models.RoleStaff
	}
	if !models.ValidRole(role) {
		return nil, validationError("unknown role %q", role)
	}
	if tx == nil {
		tx = s.db
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}
	cred := models.LoginCredential{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := tx.WithContext(ctx).Create(&cred).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("username %q: %w", username, ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to create credential: %w", err)
	}
	return &cred, nil
}

// Authenticate checks username and password. Unknown users and wrong
// passwords both yield ErrInvalidCredentials.
func (s *CredentialService) Authenticate(ctx context.Context, username, password string) (*models.LoginCredential, error) {
	var cred models.LoginCredential
	err := s.db.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)).First(&cred).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// burn comparable time so unknown usernames are not distinguishable
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load credential: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &cred, nil
}

// ChangePassword replaces the password after verifying the current one.
func (s *CredentialService) ChangePassword(ctx context.Context, username, current, next string) error {
	cred, err := s.Authenticate(ctx, username, current)
	if err != nil {
		return err
	}
	if len(next) < minPasswordLength {
		return validationError("password must be at least %d characters", minPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), s.cost)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}
	err = s.db.WithContext(ctx).Model(cred).Update("password_hash", string(hash)).Error
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// Count returns the number of credentials.
func (s *CredentialService) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.LoginCredential{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}

var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("fabtrack-dummy-password"), bcrypt.DefaultCost)
