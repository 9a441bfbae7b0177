// Package users persists accounts and their bcrypt password hashes.
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"timetracker/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrDuplicateUsername = errors.New("username already exists")
	ErrNotFound          = errors.New("user not found")
	ErrInvalidInput      = errors.New("invalid username or password")
)

const (
	minUsernameLen = 3
	maxUsernameLen = 50
	minPasswordLen = 6

	reservedUsername = "all"
)

type Store struct {
	db   *gorm.DB
	cost int
}

// NewStore returns a Store hashing with the given bcrypt cost; zero means bcrypt.DefaultCost.
func NewStore(db *gorm.DB, cost int) *Store {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Store{db: db, cost: cost}
}

func (s *Store) Cost() int { return s.cost }

// Create registers a regular user. There is no way to pick the role here.
func (s *Store) Create(ctx context.Context, username, password string) (uint, error) {
	username = strings.TrimSpace(username)
	if len(username) < minUsernameLen || len(username) > maxUsernameLen || len(password) < minPasswordLen {
		return 0, ErrInvalidInput
	}
	// "all" is the report selector for every user
	if strings.EqualFold(username, reservedUsername) {
		return 0, ErrInvalidInput
	}
	u, err := s.create(ctx, username, password, models.RoleUser)
	if err != nil {
		return 0, err
	}
	return u.ID, nil
}

func (s *Store) create(ctx context.Context, username, password string, role models.UserRole) (*models.User, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ?", username).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateUsername
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &u, nil
}

func (s *Store) FindByUsername(ctx context.Context, username string) (models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

// EnsureAdmin creates the bootstrap admin account unless an admin already
// exists. It reports whether an account was created.
func (s *Store) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("role = ?", models.RoleAdmin).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("check admin: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	username = strings.TrimSpace(username)
	if username == "" || len(password) < minPasswordLen {
		return false, ErrInvalidInput
	}
	if _, err := s.create(ctx, username, password, models.RoleAdmin); err != nil {
		return false, err
	}
	return true, nil
}
