package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Sanjana0524/Pharmaceutical-Quality-Control-Record-Portal/internal/core/domain"
	"github.com/Sanjana0524/Pharmaceutical-Quality-Control-Record-Portal/internal/core/ports"
)

// AuditHandler serves the audit trail.
type AuditHandler struct {
	audit ports.AuditLogService
}

func NewAuditHandler(audit ports.AuditLogService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// List handles GET /api/audit-logs.
//
// @Summary      Read the audit trail
// @Description  Newest first. Restricted to Admin, QC Manager and Auditor.
// @Tags         audit
// @Produce      json
// @Security     BearerAuth
// @Param        entity_type  query     string  false  "test, batch, specification, equipment or user"
// @Param        entity_id    query     string  false  "Entity id"
// @Param        username     query     string  false  "Acting username"
// @Param        action       query     string  false  "CREATE, UPDATE, SIGN or REGISTER"
// @Param        limit        query     int     false  "At most 1000"
// @Success      200          {object}  listResponse[domain.AuditEntry]
// @Failure      403          {object}  map[string]string
// @Router       /api/audit-logs [get]
func (h *AuditHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	filter := domain.AuditFilter{
		EntityType: c.QueryParam("entity_type"),
		EntityID:   c.QueryParam("entity_id"),
		Username:   c.QueryParam("username"),
		Action:     domain.AuditAction(c.QueryParam("action")),
	}
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return domain.NewValidationError("limit", "must be a positive integer")
		}
		filter.Limit = limit
	}

	entries, err := h.audit.ReadAuditLog(c.Request().Context(), filter, actor)
	if err != nil {
		return err
	}
	items := []*domain.AuditEntry{}
	for e, err := range entries {
		if err != nil {
			return err
		}
		items = append(items, e)
	}
	return c.JSON(http.StatusOK, listResponse[*domain.AuditEntry]{Items: items, Total: len(items)})
}
