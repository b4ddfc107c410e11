package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Sanjana0524/Pharmaceutical-Quality-Control-Record-Portal/internal/core/domain"
	"github.com/Sanjana0524/Pharmaceutical-Quality-Control-Record-Portal/internal/core/ports"
)

// credentialVerifier is the slice of the authentication gate the signing
// protocol needs.
type credentialVerifier interface {
	VerifyCredential(ctx context.Context, username, password string) (*domain.User, error)
}

// SignatureService binds electronic signatures to test records.
type SignatureService struct {
	records ports.TestRecordRepository
	auth    credentialVerifier
	audit   *AuditRecorder
	tx      ports.Transactor
	logger  zerolog.Logger
	now     func() time.Time
}

func NewSignatureService(
	records ports.TestRecordRepository,
	auth credentialVerifier,
	audit *AuditRecorder,
	tx ports.Transactor,
	logger zerolog.Logger,
) *SignatureService {
	return &SignatureService{
		records: records,
		auth:    auth,
		audit:   audit,
		tx:      tx,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Sign re-authenticates the signer with the credential supplied for this
// signature, then applies the attestation and its SIGN entry as one unit.
//
// With an atomic Transactor any failure rolls the whole unit back. Otherwise
// the entry is written provisional first, the signature is applied, and the
// entry is committed; a failed signature write aborts the entry, and a failed
// commit marker is returned as a *domain.AuditTrailError next to the signed
// record and left to the reconciler.
func (s *SignatureService) Sign(ctx context.Context, in ports.SignInput, actor domain.Actor) (*ports.SignatureResult, error) {
	if !actor.Can(domain.ActionSignTest) {
		return nil, domain.ErrForbidden
	}
	if strings.TrimSpace(in.Meaning) == "" {
		return nil, domain.NewValidationError("meaning", "is required")
	}
	if domain.MeaningKey(in.Meaning) == "" {
		return nil, domain.NewValidationError("meaning", "must contain a letter or digit")
	}

	rec, err := s.records.FindByID(ctx, in.RecordID)
	if err != nil {
		return nil, err
	}
	if in.ExpectedVersion != nil && *in.ExpectedVersion != rec.Version {
		return nil, fmt.Errorf("%w: test record %s is at version %d, expected %d",
			domain.ErrConflict, rec.ID, rec.Version, *in.ExpectedVersion)
	}

	signer, err := s.auth.VerifyCredential(ctx, in.Username, in.Password)
	if err != nil {
		if errors.Is(err, domain.ErrAuthentication) {
			s.logger.Warn().Str("test_id", rec.ID).Str("session_user", actor.Username).Msg("signature re-authentication failed")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if domain.Authorize(signer.Role, signer.IsActive, domain.ActionSignTest) == domain.Deny {
		return nil, domain.ErrForbidden
	}

	att := domain.NewAttestation(signer, in.Meaning, in.Comments, s.now().Truncate(time.Millisecond))
	details := map[string]any{
		"signer":    signer.Username,
		"signer_id": signer.ID,
		"meaning":   att.Meaning,
		"signature": att.Statement,
	}

	unitCtx := ctx
	if !s.tx.Atomic() {
		// Without a transaction the unit must finish once started.
		unitCtx = context.WithoutCancel(ctx)
	}

	var (
		signed    *domain.TestRecord
		entry     *domain.AuditEntry
		commitErr error
	)
	err = s.tx.WithinTransaction(unitCtx, func(txCtx context.Context) error {
		e, err := s.audit.Provisional(txCtx, domain.AuditSign, domain.EntityTest, rec.ID, actor, details)
		if err != nil {
			return err
		}
		entry = e

		signed, err = s.records.ApplySignature(txCtx, rec.ID, att, in.ExpectedVersion)
		if err != nil {
			if !s.tx.Atomic() {
				s.abort(txCtx, e)
			}
			return err
		}

		if err := s.audit.Resolve(txCtx, e, domain.AuditCommitted); err != nil {
			if s.tx.Atomic() {
				return err
			}
			commitErr = err
		}
		return nil
	})
	if err != nil {
		s.logger.Error().Err(err).Str("test_id", rec.ID).Str("signer", signer.Username).Msg("signature not applied")
		return nil, fmt.Errorf("sign test record: %w", err)
	}

	result := &ports.SignatureResult{Attestation: att, Record: signed, AuditID: entry.ID}

	if commitErr != nil {
		committed := *entry
		committed.State = domain.AuditCommitted
		s.logger.Error().Err(commitErr).
			Str("audit_id", entry.ID).
			Str("test_id", rec.ID).
			Msg("signature applied but audit commit marker failed, queued for reconciliation")
		s.audit.Reconcile(committed)
		return result, &domain.AuditTrailError{Action: domain.AuditSign, EntityID: rec.ID, Err: commitErr}
	}

	s.logger.Info().
		Str("test_id", rec.ID).
		Str("signer", signer.Username).
		Str("meaning", att.Meaning).
		Str("session_user", actor.Username).
		Msg("test record signed")
	return result, nil
}

func (s *SignatureService) abort(ctx context.Context, e *domain.AuditEntry) {
	if err := s.audit.Resolve(context.WithoutCancel(ctx), e, domain.AuditAborted); err != nil {
		s.logger.Error().Err(err).Str("audit_id", e.ID).Msg("failed to abort provisional audit entry")
	}
}
