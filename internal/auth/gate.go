// Package auth verifies credentials, keeps the logged-in identity in the
// session and answers role checks.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"timetracker/internal/models"
	"timetracker/internal/users"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrAuth matches every login failure.
	ErrAuth          = errors.New("authentication failed")
	ErrUserNotFound  = fmt.Errorf("%w: unknown user", ErrAuth)
	ErrBadCredential = fmt.Errorf("%w: wrong password", ErrAuth)

	ErrUnauthenticated = errors.New("not logged in")
	ErrForbidden       = errors.New("insufficient role")
)

// Identity is what a session knows about its user.
type Identity struct {
	UserID   uint
	Username string
	Role     models.UserRole
}

func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == models.RoleAdmin
}

type Gate struct {
	users *users.Store

	dummyOnce sync.Once
	dummyHash []byte
}

func NewGate(store *users.Store) *Gate {
	return &Gate{users: store}
}

// Login checks username and password. Unknown users still pay for a hash
// comparison so both failure kinds take about the same time.
func (g *Gate) Login(ctx context.Context, username, password string) (Identity, error) {
	u, err := g.users.FindByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, users.ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(g.dummy(), []byte(password))
		return Identity{}, ErrUserNotFound
	}
	if err != nil {
		return Identity{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return Identity{}, ErrBadCredential
	}

	return Identity{UserID: u.ID, Username: u.Username, Role: u.Role}, nil
}

func (g *Gate) dummy() []byte {
	g.dummyOnce.Do(func() {
		g.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("timing-equalizer"), g.users.Cost())
	})
	return g.dummyHash
}

// Authorize reports whether id may perform an operation that needs required.
// RoleNone admits any logged-in user.
func Authorize(id *Identity, required models.UserRole) error {
	if id == nil || id.UserID == 0 {
		return ErrUnauthenticated
	}
	switch required {
	case models.RoleNone:
		return nil
	case models.RoleAdmin:
		if id.Role == models.RoleAdmin {
			return nil
		}
		return ErrForbidden
	default:
		if id.Role == required || id.Role == models.RoleAdmin {
			return nil
		}
		return ErrForbidden
	}
}
