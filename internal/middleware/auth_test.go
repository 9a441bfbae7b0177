package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"timetracker/internal/auth"
	"timetracker/internal/models"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func engineWith(id *auth.Identity, role models.UserRole) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if id != nil {
			c.Set(identityKey, id)
		}
		c.Next()
	})
	r.GET("/x", RequireRole(role), func(c *gin.Context) {
		if CurrentIdentity(c) == nil {
			c.String(http.StatusInternalServerError, "identity missing")
			return
		}
		c.String(http.StatusOK, "ok")
	})
	return r
}

func TestRequireRole(t *testing.T) {
	user := &auth.Identity{UserID: 1, Username: "alice", Role: models.RoleUser}
	admin := &auth.Identity{UserID: 2, Username: "root", Role: models.RoleAdmin}

	cases := []struct {
		name     string
		id       *auth.Identity
		role     models.UserRole
		status   int
		location string
	}{
		{"anonymous auth", nil, models.RoleNone, http.StatusFound, "/login"},
		{"anonymous admin", nil, models.RoleAdmin, http.StatusFound, "/login"},
		{"user auth", user, models.RoleNone, http.StatusOK, ""},
		{"user admin", user, models.RoleAdmin, http.StatusForbidden, ""},
		{"admin admin", admin, models.RoleAdmin, http.StatusOK, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			engineWith(tc.id, tc.role).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/x", nil))
			if rr.Code != tc.status {
				t.Fatalf("status=%d want %d", rr.Code, tc.status)
			}
			if got := rr.Header().Get("Location"); got != tc.location {
				t.Fatalf("location=%q want %q", got, tc.location)
			}
		})
	}
}

func TestRequireAuthIsAnyRole(t *testing.T) {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(identityKey, &auth.Identity{UserID: 3, Username: "bob", Role: models.RoleUser})
	})
	r.GET("/x", RequireAuth(), func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/x", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
}
