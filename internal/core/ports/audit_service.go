package ports

import (
	"context"
	"iter"

	"github.com/Sanjana0524/Pharmaceutical-Quality-Control-Record-Portal/internal/core/domain"
)

// AuditLogService exposes the role-gated audit trail.
type AuditLogService interface {
	ReadAuditLog(ctx context.Context, filter domain.AuditFilter, actor domain.Actor) (iter.Seq2[*domain.AuditEntry, error], error)
}
