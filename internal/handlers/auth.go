package handlers

import (
	"errors"
	"net/http"

	"timetracker/internal/auth"
	"timetracker/internal/users"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

func (h *Handler) ShowRegister(c *gin.Context) {
	render(c, http.StatusOK, "register.html", gin.H{"error": "", "path": h.RegisterPath})
}

type credentialsForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

func (h *Handler) Register(c *gin.Context) {
	var form credentialsForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "register.html", gin.H{"error": "Invalid form data", "path": h.RegisterPath})
		return
	}

	_, err := h.Users.Create(c.Request.Context(), form.Username, form.Password)
	switch {
	case err == nil:
	case errors.Is(err, users.ErrInvalidInput):
		render(c, http.StatusUnprocessableEntity, "register.html", gin.H{
			"error": "Username needs 3 to 50 characters and cannot be \"all\", password at least 6",
			"path":  h.RegisterPath,
		})
		return
	case errors.Is(err, users.ErrDuplicateUsername):
		render(c, http.StatusConflict, "register.html", gin.H{"error": "User already exists", "path": h.RegisterPath})
		return
	default:
		h.fail(c, "Could not register user", err)
		return
	}

	h.Log.InfoContext(c.Request.Context(), "user registered", "username", form.Username)
	c.Redirect(http.StatusFound, "/login")
}

func (h *Handler) ShowLogin(c *gin.Context) {
	render(c, http.StatusOK, "login.html", gin.H{"error": ""})
}

func (h *Handler) Login(c *gin.Context) {
	var form credentialsForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "login.html", gin.H{"error": "Invalid form data"})
		return
	}

	id, err := h.Gate.Login(c.Request.Context(), form.Username, form.Password)
	if errors.Is(err, auth.ErrAuth) {
		// one message for both cases so usernames cannot be probed
		h.Log.DebugContext(c.Request.Context(), "login rejected", "username", form.Username, "reason", err)
		render(c, http.StatusUnauthorized, "login.html", gin.H{"error": "Invalid username or password"})
		return
	}
	if err != nil {
		h.fail(c, "Login is currently unavailable", err)
		return
	}

	if err := auth.Attach(h.Sessions, c.Request, c.Writer, id); err != nil {
		h.fail(c, "Login is currently unavailable", err)
		return
	}

	c.Redirect(http.StatusFound, "/dashboard")
}

func (h *Handler) Logout(c *gin.Context) {
	err := auth.Destroy(sessions.Default(c))
	if err != nil && !errors.Is(err, auth.ErrNoSession) {
		h.fail(c, "Logout failed", err)
		return
	}
	c.Redirect(http.StatusFound, "/login")
}
