package ports

import (
	"context"
	"iter"

	"github.com/Sanjana0524/Pharmaceutical-Quality-Control-Record-Portal/internal/core/domain"
)

// TestRecordRepository persists test records. Every write is a single-document
// atomic update guarded by the record version.
type TestRecordRepository interface {
	Create(ctx context.Context, rec *domain.TestRecord) error
	// FindByID returns a *domain.NotFoundError when no record has id.
	FindByID(ctx context.Context, id string) (*domain.TestRecord, error)
	// Update writes the substantive fields and status of rec if the stored
	// version still equals expectedVersion, bumping the version. Signature
	// fields are never written. Fails with domain.ErrConflict on a version
	// mismatch.
	Update(ctx context.Context, rec *domain.TestRecord, expectedVersion int64) (*domain.TestRecord, error)
	// ApplySignature stores a under its meaning and refreshes the latest
	// signature summary fields, bumping the version. A nil expectedVersion
	// skips the version guard.
	ApplySignature(ctx context.Context, id string, a domain.Attestation, expectedVersion *int64) (*domain.TestRecord, error)
	// Search yields matching records, newest first. Each range over the
	// sequence runs a fresh query.
	Search(ctx context.Context, filter domain.TestRecordFilter) iter.Seq2[*domain.TestRecord, error]
}
