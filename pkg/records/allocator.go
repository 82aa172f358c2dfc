package records

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"p9e.in/fabtrack/models"
)

// EnquiryAllocator hands out year-scoped enquiry ids of the form
// PREFIX/2024/E001.
type EnquiryAllocator struct {
	prefix string
}

func NewEnquiryAllocator(prefix string) *EnquiryAllocator {
	return &EnquiryAllocator{prefix: prefix}
}

// Prefix returns the prefix shared by all ids of year, e.g. "VE/TN/2024/E".
func (a *EnquiryAllocator) Prefix(year int) string {
	return fmt.Sprintf("%s/%d/E", a.prefix, year)
}

// Format renders sequence number seq of year.
func (a *EnquiryAllocator) Format(year, seq int) string {
	return fmt.Sprintf("%s%03d", a.Prefix(year), seq)
}

// NextSequence returns 1 + the number of projects already holding an id of
// year. It does not reserve anything; callers insert and retry on collision.
func (a *EnquiryAllocator) NextSequence(ctx context.Context, db *gorm.DB, year int) (int, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&models.Project{}).
		Where(`enquiry_id LIKE ? ESCAPE '\'`, escapeLike(a.Prefix(year))+"%").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count enquiry ids for %d: %w", year, err)
	}
	return int(count) + 1, nil
}

// Next returns the next enquiry id for year.
func (a *EnquiryAllocator) Next(ctx context.Context, db *gorm.DB, year int) (string, error) {
	seq, err := a.NextSequence(ctx, db, year)
	if err != nil {
		return "", err
	}
	return a.Format(year, seq), nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
