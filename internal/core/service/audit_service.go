package service

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Sanjana0524/Pharmaceutical-Quality-Control-Record-Portal/internal/core/domain"
	"github.com/Sanjana0524/Pharmaceutical-Quality-Control-Record-Portal/internal/core/ports"
)

const defaultAuditLimit = 1000

// AuditRecorder appends audit entries and serves the role-gated audit log.
type AuditRecorder struct {
	repo       ports.AuditRepository
	reconciler ports.AuditReconciler
	logger     zerolog.Logger
	now        func() time.Time
}

// NewAuditRecorder returns an AuditRecorder. reconciler may be nil, in which
// case failed appends are only reported.
func NewAuditRecorder(repo ports.AuditRepository, reconciler ports.AuditReconciler, logger zerolog.Logger) *AuditRecorder {
	return &AuditRecorder{
		repo:       repo,
		reconciler: reconciler,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (r *AuditRecorder) newEntry(
	action domain.AuditAction,
	entityType, entityID string,
	actor domain.Actor,
	details map[string]any,
	state domain.AuditState,
) (*domain.AuditEntry, error) {
	if details == nil {
		details = map[string]any{}
	}
	e := &domain.AuditEntry{
		ID:         uuid.NewString(),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		UserID:     actor.UserID,
		Username:   actor.Username,
		// Stores keep millisecond precision; truncating keeps the digest stable.
		Timestamp: r.now().Truncate(time.Millisecond),
		Details:   details,
		IPAddress: actor.Origin,
		State:     state,
	}
	digest, err := e.ComputeDigest()
	if err != nil {
		return nil, fmt.Errorf("audit digest: %w", err)
	}
	e.Digest = digest
	return e, nil
}

// Record appends a committed entry for a mutation that has already been
// persisted. A failed append is handed to the reconciler and reported as a
// *domain.AuditTrailError so the caller can surface a degraded success.
func (r *AuditRecorder) Record(
	ctx context.Context,
	action domain.AuditAction,
	entityType, entityID string,
	actor domain.Actor,
	details map[string]any,
) error {
	entry, err := r.newEntry(action, entityType, entityID, actor, details, domain.AuditCommitted)
	if err != nil {
		return &domain.AuditTrailError{Action: action, EntityID: entityID, Err: err}
	}

	// The mutation is already durable; an abandoned request must not drop
	// its trail.
	if err := r.repo.Append(context.WithoutCancel(ctx), entry); err != nil {
		r.logger.Error().Err(err).
			Str("audit_id", entry.ID).
			Str("action", string(action)).
			Str("entity_type", entityType).
			Str("entity_id", entityID).
			Str("user", actor.Username).
			Msg("audit append failed after mutation, queued for reconciliation")
		r.reconcile(*entry)
		return &domain.AuditTrailError{Action: action, EntityID: entityID, Err: err}
	}
	return nil
}

// Provisional appends an entry that only becomes part of the committed trail
// once Resolve marks it so.
func (r *AuditRecorder) Provisional(
	ctx context.Context,
	action domain.AuditAction,
	entityType, entityID string,
	actor domain.Actor,
	details map[string]any,
) (*domain.AuditEntry, error) {
	entry, err := r.newEntry(action, entityType, entityID, actor, details, domain.AuditProvisional)
	if err != nil {
		return nil, err
	}
	if err := r.repo.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("append provisional audit entry: %w", err)
	}
	return entry, nil
}

// Resolve finalises a provisional entry.
func (r *AuditRecorder) Resolve(ctx context.Context, entry *domain.AuditEntry, state domain.AuditState) error {
	if err := r.repo.Resolve(ctx, entry.ID, state); err != nil {
		return fmt.Errorf("resolve audit entry %s: %w", entry.ID, err)
	}
	entry.State = state
	return nil
}

// Reconcile hands an entry whose final state could not be written to the
// reconciler.
func (r *AuditRecorder) Reconcile(entry domain.AuditEntry) { r.reconcile(entry) }

func (r *AuditRecorder) reconcile(entry domain.AuditEntry) {
	if r.reconciler == nil {
		return
	}
	r.reconciler.Enqueue(entry)
}

// ReadAuditLog returns the trail newest first. Only roles allowed to read the
// audit log may call it.
func (r *AuditRecorder) ReadAuditLog(
	ctx context.Context,
	filter domain.AuditFilter,
	actor domain.Actor,
) (iter.Seq2[*domain.AuditEntry, error], error) {
	if !actor.Can(domain.ActionReadAuditLog) {
		return nil, domain.ErrForbidden
	}
	if filter.Limit <= 0 || filter.Limit > defaultAuditLimit {
		filter.Limit = defaultAuditLimit
	}
	return r.repo.List(ctx, filter), nil
}
