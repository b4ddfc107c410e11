package ports

import (
	"context"
	"iter"

	"github.com/Sanjana0524/Pharmaceutical-Quality-Control-Record-Portal/internal/core/domain"
)

// AuditRepository is the append-only audit store.
type AuditRepository interface {
	Append(ctx context.Context, entry *domain.AuditEntry) error
	// Resolve moves a provisional entry to committed or aborted. Entries in
	// any other state are left alone.
	Resolve(ctx context.Context, id string, state domain.AuditState) error
	// List yields entries newest first, hiding aborted ones.
	List(ctx context.Context, filter domain.AuditFilter) iter.Seq2[*domain.AuditEntry, error]
}

// AuditReconciler retries audit appends that failed after their mutation
// succeeded.
type AuditReconciler interface {
	Enqueue(entry domain.AuditEntry)
}

// Transactor runs fn as one unit of work across the record and audit stores.
// Implementations without real transactions simply call fn.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
	// Atomic reports whether WithinTransaction gives all-or-nothing semantics.
	Atomic() bool
}
