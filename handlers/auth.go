package handlers

import (
	"net/http"
	"time"

	"custodia360/db"
	"custodia360/middleware"
	"custodia360/models"
	"custodia360/services"

	"github.com/labstack/echo/v4"
)

// LoginRequest is the login form payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginHandler authenticates a delegate and creates a session
func LoginHandler(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Email and password are required")
	}

	var delegado models.Delegado
	if err := db.DB.Where("email = ?", req.Email).First(&delegado).Error; err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}

	if !delegado.IsActive || !services.CheckPassword(req.Password, delegado.Password) {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}

	entidadID := ""
	if delegado.EntidadID != nil {
		entidadID = *delegado.EntidadID
	}

	session, err := services.CreateSession(db.DB, delegado.ID, entidadID, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create session")
	}

	now := time.Now()
	db.DB.Model(&delegado).Update("last_login_at", now)

	middleware.SetSessionCookie(c, session.Token, int(services.DefaultSessionDuration.Seconds()))

	return c.JSON(http.StatusOK, map[string]interface{}{
		"delegado": delegado,
	})
}

// LogoutHandler deletes the current session
func LogoutHandler(c echo.Context) error {
	cookie, err := c.Cookie(middleware.SessionCookieName)
	if err == nil {
		services.DeleteSession(db.DB, cookie.Value)
	}

	middleware.SetSessionCookie(c, "", -1)
	return c.NoContent(http.StatusNoContent)
}

// MeHandler returns the authenticated delegate
func MeHandler(c echo.Context) error {
	delegado := middleware.GetCurrentDelegado(c)
	if delegado == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	return c.JSON(http.StatusOK, delegado)
}
