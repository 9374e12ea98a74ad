package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/aerogestion/aerogate/internal/session"
)

// AuthHandler exposes login and logout for the operator session.
type AuthHandler struct {
	Session *session.Session
}

func NewAuthHandler(s *session.Session) *AuthHandler {
	return &AuthHandler{Session: s}
}

// Login handles POST /v1/auth/login. Credentials are exchanged with the
// identity provider and the resulting token becomes the gateway session.
func (h *AuthHandler) Login(c echo.Context) error {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	username := strings.TrimSpace(body.Username)
	if username == "" || body.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username and password are required"})
	}
	if err := h.Session.Login(c.Request().Context(), username, body.Password); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"username": username})
}

// Logout handles POST /v1/auth/logout and drops the session. Logging out
// with no session held is not an error.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.Session.Invalidate()
	return c.NoContent(http.StatusNoContent)
}

// Me handles GET /v1/me.
func (h *AuthHandler) Me(c echo.Context) error {
	if !h.Session.Valid() {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "no active session"})
	}
	return c.JSON(http.StatusOK, echo.Map{"username": h.Session.Username()})
}
