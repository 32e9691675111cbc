package middleware

import (
	"net/http"

	"custodia360/config"
	"custodia360/db"
	"custodia360/models"
	"custodia360/services"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const (
	// SessionCookieName is the name of the session cookie
	SessionCookieName = "custodia360_session"
	// ContextKeyDelegado is the context key for the authenticated delegate
	ContextKeyDelegado = "delegado"
	// ContextKeyEntidad is the context key for the delegate's entity
	ContextKeyEntidad = "entidad"
	// ContextKeySession is the context key for the session
	ContextKeySession = "session"
)

// RequireAuth is middleware that requires a valid session
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
			}

			session, err := services.ValidateSession(db.DB, cookie.Value)
			if err != nil {
				// Invalid or expired session, clear cookie
				clearSessionCookie(c)
				return echo.NewHTTPError(http.StatusUnauthorized, "Session invalid or expired")
			}

			if !session.Delegado.IsActive {
				clearSessionCookie(c)
				return echo.NewHTTPError(http.StatusUnauthorized, "Account disabled")
			}

			c.Set(ContextKeyDelegado, &session.Delegado)
			c.Set(ContextKeyEntidad, session.Entidad)
			c.Set(ContextKeySession, session)

			return next(c)
		}
	}
}

// RequireRol is middleware that requires specific roles
func RequireRol(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			delegado := GetCurrentDelegado(c)
			if delegado == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
			}

			for _, rol := range roles {
				if delegado.Rol == rol {
					return next(c)
				}
			}

			return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
		}
	}
}

// RequireEntidad ensures the delegate belongs to an entity
func RequireEntidad() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			delegado := GetCurrentDelegado(c)
			if delegado == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
			}
			if !delegado.HasEntidad() {
				return echo.NewHTTPError(http.StatusForbidden, "No entity assigned")
			}
			return next(c)
		}
	}
}

// GetCurrentDelegado retrieves the current delegate from context
func GetCurrentDelegado(c echo.Context) *models.Delegado {
	delegado, ok := c.Get(ContextKeyDelegado).(*models.Delegado)
	if !ok {
		return nil
	}
	return delegado
}

// GetCurrentEntidad retrieves the current entity from context
func GetCurrentEntidad(c echo.Context) *models.Entidad {
	entidad, ok := c.Get(ContextKeyEntidad).(*models.Entidad)
	if !ok {
		return nil
	}
	return entidad
}

// GetEntidadScopedQuery returns a GORM query scoped to the current
// delegate's entity. Tenant isolation relies on this filter.
func GetEntidadScopedQuery(c echo.Context, db *gorm.DB) *gorm.DB {
	delegado := GetCurrentDelegado(c)
	if delegado == nil || delegado.EntidadID == nil {
		// Return query that matches nothing
		return db.Where("1 = 0")
	}

	return db.Where("entidad_id = ?", *delegado.EntidadID)
}

// clearSessionCookie clears the session cookie
func clearSessionCookie(c echo.Context) {
	var isProduction bool
	if cfg, ok := c.Get("config").(*config.Config); ok {
		isProduction = cfg.Environment == "production"
	}

	cookie := &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
	}
	c.SetCookie(cookie)
}

// SetSessionCookie sets the session cookie after login
func SetSessionCookie(c echo.Context, token string, maxAge int) {
	var isProduction bool
	if cfg, ok := c.Get("config").(*config.Config); ok {
		isProduction = cfg.Environment == "production"
	}

	cookie := &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
	}
	c.SetCookie(cookie)
}
