package ports

import (
	"context"

	"github.com/Sanjana0524/Pharmaceutical-Quality-Control-Record-Portal/internal/core/domain"
)

// SignInput carries the credential supplied specifically for one signature.
type SignInput struct {
	RecordID        string
	Username        string
	Password        string
	Meaning         string
	Comments        string
	ExpectedVersion *int64
}

// SignatureResult is returned after a record is signed.
type SignatureResult struct {
	Attestation domain.Attestation
	Record      *domain.TestRecord
	AuditID     string
}

// SignatureService binds electronic signatures to test records.
type SignatureService interface {
	Sign(ctx context.Context, in SignInput, actor domain.Actor) (*SignatureResult, error)
}
