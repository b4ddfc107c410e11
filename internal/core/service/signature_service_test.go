package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Sanjana0524/Pharmaceutical-Quality-Control-Record-Portal/internal/core/domain"
	"github.com/Sanjana0524/Pharmaceutical-Quality-Control-Record-Portal/internal/core/ports"
)

type signFixture struct {
	svc        *SignatureService
	records    *stubRecordRepo
	audit      *stubAuditRepo
	tx         *stubTransactor
	reconciler *mockReconciler
	record     *domain.TestRecord
	session    domain.Actor
}

func newSignFixture(t *testing.T, atomic bool) *signFixture {
	t.Helper()
	auth, _, _ := newTestAuthService(nil)
	ana := registerUser(t, auth, "ana", domain.RoleQCAnalyst)
	registerUser(t, auth, "rev", domain.RoleQCManager)

	f := &signFixture{
		records:    newStubRecordRepo(),
		audit:      &stubAuditRepo{},
		reconciler: &mockReconciler{},
		session:    domain.ActorFrom(ana, "10.2.2.2"),
	}
	f.tx = &stubTransactor{atomic: atomic, stores: []interface{ snapshot() func() }{f.records, f.audit}}
	recorder := NewAuditRecorder(f.audit, f.reconciler, zerolog.Nop())

	records := NewTestRecordService(f.records, nil, recorder, zerolog.Nop())
	rec, err := records.Create(context.Background(), validInput(), f.session)
	require.NoError(t, err)
	f.record = rec

	f.svc = NewSignatureService(f.records, auth, recorder, f.tx, zerolog.Nop())
	return f
}

func (f *signFixture) signEntries() []*domain.AuditEntry {
	var out []*domain.AuditEntry
	for _, e := range f.audit.forEntity(f.record.ID) {
		if e.Action == domain.AuditSign {
			out = append(out, e)
		}
	}
	return out
}

func TestSignatureService_Sign(t *testing.T) {
	f := newSignFixture(t, false)

	res, err := f.svc.Sign(context.Background(), ports.SignInput{
		RecordID: f.record.ID, Username: "ana", Password: "s3cret!", Meaning: "Tested by", Comments: "ok",
	}, f.session)
	require.NoError(t, err)

	assert.Equal(t, "Tested by ana", res.Attestation.Statement)
	assert.Equal(t, "Tested by ana", res.Record.Signature)
	assert.NotNil(t, res.Record.SignatureDate)
	assert.Equal(t, "ok", res.Record.SignatureComments)
	assert.Equal(t, f.record.PassFailStatus, res.Record.PassFailStatus, "signing never changes status")
	assert.Equal(t, f.record.ResultValue, res.Record.ResultValue)
	assert.Equal(t, f.record.Version+1, res.Record.Version)

	entries := f.signEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, res.AuditID, entries[0].ID)
	assert.Equal(t, domain.AuditCommitted, entries[0].State)
	assert.Equal(t, "ana", entries[0].Details["signer"])
	assert.Equal(t, "Tested by", entries[0].Details["meaning"])
	assert.Equal(t, "10.2.2.2", entries[0].IPAddress)
}

func TestSignatureService_Sign_UniformCredentialFailure(t *testing.T) {
	f := newSignFixture(t, false)

	_, wrongPassword := f.svc.Sign(context.Background(), ports.SignInput{
		RecordID: f.record.ID, Username: "ana", Password: "wrong", Meaning: "Tested by",
	}, f.session)
	_, unknownUser := f.svc.Sign(context.Background(), ports.SignInput{
		RecordID: f.record.ID, Username: "ghost", Password: "wrong", Meaning: "Tested by",
	}, f.session)

	require.ErrorIs(t, wrongPassword, domain.ErrInvalidCredentials)
	require.ErrorIs(t, unknownUser, domain.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())

	assert.Empty(t, f.signEntries())
	stored, _ := f.records.FindByID(context.Background(), f.record.ID)
	assert.False(t, stored.IsSigned())
}

func TestSignatureService_Sign_InactiveSignerLooksLikeBadCredential(t *testing.T) {
	f := newSignFixture(t, false)
	users := f.svc.auth.(*AuthService).users
	rev, err := users.FindByUsername(context.Background(), "rev")
	require.NoError(t, err)
	inactive := false
	_, err = users.UpdateAccess(context.Background(), rev.ID, nil, &inactive)
	require.NoError(t, err)

	_, err = f.svc.Sign(context.Background(), ports.SignInput{
		RecordID: f.record.ID, Username: "rev", Password: "s3cret!", Meaning: "Reviewed by",
	}, f.session)

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestSignatureService_Sign_RecordNotFound(t *testing.T) {
	f := newSignFixture(t, false)

	_, err := f.svc.Sign(context.Background(), ports.SignInput{
		RecordID: "nope", Username: "ana", Password: "s3cret!", Meaning: "Tested by",
	}, f.session)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.EqualError(t, err, "test record nope not found")
}

func TestSignatureService_Sign_LayersMeanings(t *testing.T) {
	f := newSignFixture(t, false)
	sign := func(user, meaning, comments string) *ports.SignatureResult {
		res, err := f.svc.Sign(context.Background(), ports.SignInput{
			RecordID: f.record.ID, Username: user, Password: "s3cret!", Meaning: meaning, Comments: comments,
		}, f.session)
		require.NoError(t, err)
		return res
	}

	sign("ana", "Tested by", "first")
	sign("rev", "Reviewed by", "")
	res := sign("ana", "Tested by", "second")

	rec := res.Record
	require.Len(t, rec.Signatures, 2)
	assert.Equal(t, "second", rec.Signatures["tested_by"].Comments)
	assert.Equal(t, "Reviewed by rev", rec.Signatures["reviewed_by"].Statement)
	assert.Equal(t, "rev", rec.ReviewedBy)
	assert.Len(t, f.signEntries(), 3)
}

func TestSignatureService_Sign_SessionPrincipalIsAudited(t *testing.T) {
	f := newSignFixture(t, false)

	_, err := f.svc.Sign(context.Background(), ports.SignInput{
		RecordID: f.record.ID, Username: "rev", Password: "s3cret!", Meaning: "Approved by",
	}, f.session)
	require.NoError(t, err)

	entries := f.signEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, "ana", entries[0].Username)
	assert.Equal(t, "rev", entries[0].Details["signer"])
}

func TestSignatureService_Sign_VersionMismatch(t *testing.T) {
	f := newSignFixture(t, false)
	stale := f.record.Version + 1

	_, err := f.svc.Sign(context.Background(), ports.SignInput{
		RecordID: f.record.ID, Username: "ana", Password: "s3cret!", Meaning: "Tested by", ExpectedVersion: &stale,
	}, f.session)

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, f.signEntries())
}

func TestSignatureService_Sign_RequiresMeaning(t *testing.T) {
	f := newSignFixture(t, false)

	_, err := f.svc.Sign(context.Background(), ports.SignInput{
		RecordID: f.record.ID, Username: "ana", Password: "s3cret!", Meaning: "  ",
	}, f.session)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSignatureService_Sign_FailedWriteAbortsEntry(t *testing.T) {
	f := newSignFixture(t, false)
	f.records.applyErr = errors.New("write concern timeout")

	_, err := f.svc.Sign(context.Background(), ports.SignInput{
		RecordID: f.record.ID, Username: "ana", Password: "s3cret!", Meaning: "Tested by",
	}, f.session)
	require.Error(t, err)

	entries := f.signEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, domain.AuditAborted, entries[0].State)

	for e, err := range f.audit.List(context.Background(), domain.AuditFilter{EntityID: f.record.ID}) {
		require.NoError(t, err)
		assert.NotEqual(t, domain.AuditSign, e.Action, "aborted entries stay hidden")
	}
}

func TestSignatureService_Sign_CommitMarkerFailureIsDegraded(t *testing.T) {
	f := newSignFixture(t, false)
	f.audit.resolveErr = errors.New("audit store unavailable")
	f.reconciler.On("Enqueue", mock.MatchedBy(func(e domain.AuditEntry) bool {
		return e.Action == domain.AuditSign && e.State == domain.AuditCommitted && e.EntityID == f.record.ID
	})).Once()

	res, err := f.svc.Sign(context.Background(), ports.SignInput{
		RecordID: f.record.ID, Username: "ana", Password: "s3cret!", Meaning: "Tested by",
	}, f.session)

	require.NotNil(t, res)
	assert.True(t, res.Record.IsSigned())
	assert.ErrorIs(t, err, domain.ErrAuditTrailIncomplete)
	f.reconciler.AssertExpectations(t)
}

func TestSignatureService_Sign_AtomicRollsBack(t *testing.T) {
	f := newSignFixture(t, true)
	f.audit.resolveErr = errors.New("transaction aborted")

	res, err := f.svc.Sign(context.Background(), ports.SignInput{
		RecordID: f.record.ID, Username: "ana", Password: "s3cret!", Meaning: "Tested by",
	}, f.session)

	require.Error(t, err)
	assert.Nil(t, res)
	assert.Empty(t, f.signEntries(), "no entry survives the rollback")
	stored, _ := f.records.FindByID(context.Background(), f.record.ID)
	assert.False(t, stored.IsSigned(), "no signature survives the rollback")
	f.reconciler.AssertNotCalled(t, "Enqueue", mock.Anything)
}
