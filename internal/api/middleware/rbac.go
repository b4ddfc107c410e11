package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Sanjana0524/Pharmaceutical-Quality-Control-Record-Portal/internal/core/domain"
)

// RBAC rejects principals the access policy denies for action. Services check
// the policy again; this only fails fast before the body is read.
func RBAC(action domain.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get(PrincipalKey).(*domain.User)
			if !ok || user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
			}
			if domain.Authorize(user.Role, user.IsActive, action) != domain.Allow {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "insufficient permissions"})
			}
			return next(c)
		}
	}
}
