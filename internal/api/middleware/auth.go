package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Sanjana0524/Pharmaceutical-Quality-Control-Record-Portal/internal/core/domain"
)

// PrincipalKey is the echo context key holding the resolved *domain.User.
const PrincipalKey = "principal"

// SessionResolver turns a bearer token into the principal it was issued to.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*domain.User, error)
}

// Auth resolves the bearer session and injects the principal into context.
func Auth(sessions SessionResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			user, err := sessions.ResolveSession(c.Request().Context(), parts[1])
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrSessionExpired):
					return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
				case errors.Is(err, domain.ErrAuthentication):
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid session")
				}
				return err
			}

			c.Set(PrincipalKey, user)
			return next(c)
		}
	}
}
