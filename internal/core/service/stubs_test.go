package service

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/Sanjana0524/Pharmaceutical-Quality-Control-Record-Portal/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	return &c
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return domain.ErrUserExists
		}
	}
	r.users[u.ID] = cloneUser(u)
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.NewNotFoundError("user", id)
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) find(match func(*domain.User) bool, key string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.NewNotFoundError("user", key)
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Username == username }, username)
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Email == email }, email)
}

func (r *stubUserRepo) UpdateAccess(_ context.Context, id string, role *domain.Role, active *bool) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.NewNotFoundError("user", id)
	}
	if role != nil {
		u.Role = *role
	}
	if active != nil {
		u.IsActive = *active
	}
	return cloneUser(u), nil
}

type stubRecordRepo struct {
	mu   sync.Mutex
	recs map[string]*domain.TestRecord

	// racingWrites makes the next n Update calls lose to a concurrent writer.
	racingWrites int
	updates      int
	applyErr     error
}

func newStubRecordRepo() *stubRecordRepo {
	return &stubRecordRepo{recs: make(map[string]*domain.TestRecord)}
}

func (r *stubRecordRepo) Create(_ context.Context, rec *domain.TestRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recs[rec.ID] = rec.Clone()
	return nil
}

func (r *stubRecordRepo) FindByID(_ context.Context, id string) (*domain.TestRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.recs[id]
	if !ok {
		return nil, domain.NewNotFoundError("test record", id)
	}
	return rec.Clone(), nil
}

func (r *stubRecordRepo) Update(_ context.Context, rec *domain.TestRecord, expectedVersion int64) (*domain.TestRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates++
	stored, ok := r.recs[rec.ID]
	if !ok {
		return nil, domain.NewNotFoundError("test record", rec.ID)
	}
	if r.racingWrites > 0 {
		r.racingWrites--
		stored.Version++
	}
	if stored.Version != expectedVersion {
		return nil, domain.ErrConflict
	}

	next := rec.Clone()
	// Mirrors the store: signature fields are never written by Update.
	next.Signature = stored.Signature
	next.SignatureDate = stored.SignatureDate
	next.SignatureMeaning = stored.SignatureMeaning
	next.SignatureComments = stored.SignatureComments
	next.ReviewedBy = stored.ReviewedBy
	next.ReviewDate = stored.ReviewDate
	next.Signatures = stored.Clone().Signatures
	next.Version = stored.Version + 1
	r.recs[rec.ID] = next
	return next.Clone(), nil
}

func (r *stubRecordRepo) ApplySignature(_ context.Context, id string, a domain.Attestation, expectedVersion *int64) (*domain.TestRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.applyErr != nil {
		return nil, r.applyErr
	}
	stored, ok := r.recs[id]
	if !ok {
		return nil, domain.NewNotFoundError("test record", id)
	}
	if expectedVersion != nil && *expectedVersion != stored.Version {
		return nil, domain.ErrConflict
	}
	stored.Sign(a)
	stored.Version++
	return stored.Clone(), nil
}

func (r *stubRecordRepo) Search(_ context.Context, f domain.TestRecordFilter) iter.Seq2[*domain.TestRecord, error] {
	return func(yield func(*domain.TestRecord, error) bool) {
		r.mu.Lock()
		var out []*domain.TestRecord
		for _, rec := range r.recs {
			if f.Matches(rec) {
				out = append(out, rec.Clone())
			}
		}
		r.mu.Unlock()
		slices.SortFunc(out, func(a, b *domain.TestRecord) int { return b.CreatedAt.Compare(a.CreatedAt) })
		for _, rec := range out {
			if !yield(rec, nil) {
				return
			}
		}
	}
}

func (r *stubRecordRepo) snapshot() func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	saved := make(map[string]*domain.TestRecord, len(r.recs))
	for k, v := range r.recs {
		saved[k] = v.Clone()
	}
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.recs = saved
	}
}

type stubAuditRepo struct {
	mu         sync.Mutex
	entries    []*domain.AuditEntry
	appendErr  error
	resolveErr error
}

func cloneEntry(e *domain.AuditEntry) *domain.AuditEntry {
	c := *e
	return &c
}

func (r *stubAuditRepo) Append(_ context.Context, e *domain.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.appendErr != nil {
		return r.appendErr
	}
	for _, existing := range r.entries {
		if existing.ID == e.ID {
			return fmt.Errorf("%w: duplicate audit id", domain.ErrConflict)
		}
	}
	r.entries = append(r.entries, cloneEntry(e))
	return nil
}

func (r *stubAuditRepo) Resolve(_ context.Context, id string, state domain.AuditState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.resolveErr != nil {
		return r.resolveErr
	}
	for _, e := range r.entries {
		if e.ID == id && e.State == domain.AuditProvisional {
			e.State = state
		}
	}
	return nil
}

func (r *stubAuditRepo) List(_ context.Context, f domain.AuditFilter) iter.Seq2[*domain.AuditEntry, error] {
	return func(yield func(*domain.AuditEntry, error) bool) {
		r.mu.Lock()
		snapshot := slices.Clone(r.entries)
		r.mu.Unlock()
		n := 0
		for i := len(snapshot) - 1; i >= 0; i-- {
			e := snapshot[i]
			if e.State == domain.AuditAborted {
				continue
			}
			if f.EntityID != "" && e.EntityID != f.EntityID {
				continue
			}
			if f.Limit > 0 && n == f.Limit {
				return
			}
			n++
			if !yield(cloneEntry(e), nil) {
				return
			}
		}
	}
}

// forEntity returns every stored entry for entityID, including aborted ones.
func (r *stubAuditRepo) forEntity(entityID string) []*domain.AuditEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.AuditEntry
	for _, e := range r.entries {
		if e.EntityID == entityID {
			out = append(out, cloneEntry(e))
		}
	}
	return out
}

func (r *stubAuditRepo) snapshot() func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	saved := make([]*domain.AuditEntry, 0, len(r.entries))
	for _, e := range r.entries {
		saved = append(saved, cloneEntry(e))
	}
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.entries = saved
	}
}

type stubSpecRepo struct {
	specs []*domain.Specification
}

func (r *stubSpecRepo) Create(_ context.Context, s *domain.Specification) error {
	c := *s
	r.specs = append(r.specs, &c)
	return nil
}

func (r *stubSpecRepo) List(context.Context) ([]*domain.Specification, error) { return r.specs, nil }

func (r *stubSpecRepo) FindFor(_ context.Context, product, testType string) (*domain.Specification, error) {
	for _, s := range r.specs {
		if s.ProductName == product && s.TestType == testType {
			c := *s
			return &c, nil
		}
	}
	return nil, domain.NewNotFoundError("specification", product+"/"+testType)
}

type stubBatchRepo struct {
	batches map[string]*domain.Batch
}

func (r *stubBatchRepo) Create(_ context.Context, b *domain.Batch) error {
	if r.batches == nil {
		r.batches = make(map[string]*domain.Batch)
	}
	c := *b
	r.batches[b.ID] = &c
	return nil
}

func (r *stubBatchRepo) FindByID(_ context.Context, id string) (*domain.Batch, error) {
	b, ok := r.batches[id]
	if !ok {
		return nil, domain.NewNotFoundError("batch", id)
	}
	c := *b
	return &c, nil
}

func (r *stubBatchRepo) List(context.Context) ([]*domain.Batch, error) {
	out := make([]*domain.Batch, 0, len(r.batches))
	for _, b := range r.batches {
		out = append(out, b)
	}
	return out, nil
}

type stubEquipmentRepo struct {
	items []*domain.Equipment
}

func (r *stubEquipmentRepo) Create(_ context.Context, e *domain.Equipment) error {
	c := *e
	r.items = append(r.items, &c)
	return nil
}

func (r *stubEquipmentRepo) List(context.Context) ([]*domain.Equipment, error) { return r.items, nil }

// stubTransactor rolls back every snapshotted store when fn fails and atomic
// is set.
type stubTransactor struct {
	atomic bool
	stores []interface{ snapshot() func() }
}

func (t *stubTransactor) WithinTransaction(ctx context.Context, fn func(context.Context) error) error {
	if !t.atomic {
		return fn(ctx)
	}
	restores := make([]func(), 0, len(t.stores))
	for _, s := range t.stores {
		restores = append(restores, s.snapshot())
	}
	if err := fn(ctx); err != nil {
		for _, restore := range restores {
			restore()
		}
		return err
	}
	return nil
}

func (t *stubTransactor) Atomic() bool { return t.atomic }

// ---------------------------------------------------------------------------
// Mocks
// ---------------------------------------------------------------------------

type mockReconciler struct{ mock.Mock }

func (m *mockReconciler) Enqueue(e domain.AuditEntry) { m.Called(e) }

type mockLimiter struct{ mock.Mock }

func (m *mockLimiter) Locked(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *mockLimiter) RecordFailure(ctx context.Context, username string) error {
	return m.Called(ctx, username).Error(0)
}

func (m *mockLimiter) Reset(ctx context.Context, username string) error {
	return m.Called(ctx, username).Error(0)
}
