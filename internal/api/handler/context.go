package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Sanjana0524/Pharmaceutical-Quality-Control-Record-Portal/internal/api/middleware"
	"github.com/Sanjana0524/Pharmaceutical-Quality-Control-Record-Portal/internal/core/domain"
)

// HeaderAuditTrail flags a response whose mutation succeeded while its audit
// entry is still pending reconciliation.
const HeaderAuditTrail = "X-Audit-Trail"

// ctxPrincipal returns the principal injected by the Auth middleware. A
// missing principal means the route was mounted without Auth; reject with 401.
func ctxPrincipal(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(middleware.PrincipalKey).(*domain.User)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return user, nil
}

// ctxActor builds the acting principal with the caller's network address.
func ctxActor(c echo.Context) (domain.Actor, error) {
	user, err := ctxPrincipal(c)
	if err != nil {
		return domain.Actor{}, err
	}
	return domain.ActorFrom(user, c.RealIP()), nil
}

// respond writes body with status. A degraded audit write still renders the
// persisted entity, flagged with X-Audit-Trail: degraded; any other error is
// left to the central error handler.
func respond(c echo.Context, status int, body any, err error) error {
	if err != nil {
		var trail *domain.AuditTrailError
		if !errors.As(err, &trail) || body == nil {
			return err
		}
		c.Response().Header().Set(HeaderAuditTrail, "degraded")
	}
	return c.JSON(status, body)
}
