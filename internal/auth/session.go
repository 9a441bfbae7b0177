package auth

import (
	"errors"
	"fmt"
	"net/http"

	"timetracker/internal/models"

	"github.com/gin-contrib/sessions"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"gorm.io/gorm"
)

// SessionName is the cookie carrying the session id.
const SessionName = "tt_session"

const (
	keyUserID   = "user_id"
	keyUsername = "username"
	keyRole     = "role"
)

// ErrNoSession is returned by Destroy when nobody was logged in.
var ErrNoSession = errors.New("no active session")

// NewStore keeps sessions in the sessions table of db so they survive restarts.
func NewStore(db *gorm.DB, secret []byte, maxAge int) sessions.Store {
	store := gormsessions.NewStore(db, true, secret)
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return store
}

// Attach starts a new session holding id. A session the request already
// carried is deleted first, so a cookie obtained before login never
// becomes an authenticated one.
func Attach(store sessions.Store, r *http.Request, w http.ResponseWriter, id Identity) error {
	// a cookie that fails to decode still yields a usable new session
	prev, _ := store.Get(r, SessionName)
	if prev != nil && !prev.IsNew {
		prev.Values = map[interface{}]interface{}{}
		if prev.Options != nil {
			opts := *prev.Options
			opts.MaxAge = -1
			prev.Options = &opts
		}
		if err := store.Save(r, w, prev); err != nil {
			return fmt.Errorf("drop previous session: %w", err)
		}
	}

	fresh, err := store.New(r, SessionName)
	if fresh == nil {
		return fmt.Errorf("new session: %w", err)
	}
	fresh.ID = ""
	fresh.IsNew = true
	fresh.Values = map[interface{}]interface{}{
		keyUserID:   id.UserID,
		keyUsername: id.Username,
		keyRole:     string(id.Role),
	}
	if err := store.Save(r, w, fresh); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Current returns the identity held by the session, or nil.
func Current(sess sessions.Session) *Identity {
	uid, ok := sess.Get(keyUserID).(uint)
	if !ok || uid == 0 {
		return nil
	}
	username, _ := sess.Get(keyUsername).(string)
	role, _ := sess.Get(keyRole).(string)
	if username == "" || role == "" {
		return nil
	}
	return &Identity{UserID: uid, Username: username, Role: models.UserRole(role)}
}

// Destroy removes the session from the store and expires the cookie.
func Destroy(sess sessions.Session) error {
	if Current(sess) == nil {
		return ErrNoSession
	}
	sess.Clear()
	sess.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := sess.Save(); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}
