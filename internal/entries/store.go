package entries

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"timetracker/internal/models"

	"gorm.io/gorm"
)

var ErrInvalidDate = errors.New("invalid date format, expected YYYY-MM-DD")

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func ValidDate(s string) bool { return datePattern.MatchString(s) }

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Create stores an entry for ownerID. Callers pass the owner from the
// session, never from the submitted form. Hours are kept as entered.
func (s *Store) Create(ctx context.Context, ownerID uint, date, hours, description string) (uint, error) {
	date = strings.TrimSpace(date)
	if !ValidDate(date) {
		return 0, ErrInvalidDate
	}

	e := models.Entry{
		UserID:      ownerID,
		Date:        date,
		Hours:       strings.TrimSpace(hours),
		Description: strings.TrimSpace(description),
	}
	if err := s.db.WithContext(ctx).Create(&e).Error; err != nil {
		return 0, fmt.Errorf("insert entry: %w", err)
	}
	return e.ID, nil
}

func (s *Store) ListForUser(ctx context.Context, ownerID uint) ([]models.Entry, error) {
	var list []models.Entry
	err := s.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("date desc").
		Order("id desc").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return list, nil
}

// Delete removes an entry by id. A missing id is not an error.
func (s *Store) Delete(ctx context.Context, id uint) error {
	if err := s.db.WithContext(ctx).Delete(&models.Entry{}, id).Error; err != nil {
		return fmt.Errorf("delete entry %d: %w", id, err)
	}
	return nil
}
