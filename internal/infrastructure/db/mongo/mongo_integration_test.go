//go:build integration

package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Sanjana0524/Pharmaceutical-Quality-Control-Record-Portal/internal/core/domain"
)

var (
	once      sync.Once
	sharedURI string
	initErr   error
)

// setupDB starts a shared single-node replica set (once per test run) and
// returns a client plus a fresh database that is dropped on cleanup.
func setupDB(t *testing.T) (*mongo.Client, *mongo.Database) {
	t.Helper()

	once.Do(func() {
		sharedURI, initErr = startReplicaSet()
	})
	if initErr != nil {
		t.Fatalf("failed to start mongo: %v", initErr)
	}

	var (
		client *mongo.Client
		db     *mongo.Database
		err    error
	)
	name := "qc_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	// The node needs a moment to elect itself primary after rs.initiate.
	for attempt := 0; attempt < 30; attempt++ {
		client, db, err = Connect(context.Background(), Config{URI: sharedURI, Database: name, Timeout: 2 * time.Second})
		if err == nil {
			break
		}
		time.Sleep(500 * time.Millisecond)
	}
	require.NoError(t, err)
	require.NoError(t, EnsureIndexes(context.Background(), db))

	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	return client, db
}

func startReplicaSet() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			Cmd:          []string{"--replSet", "rs0", "--bind_ip_all"},
			WaitingFor:   wait.ForLog("Waiting for connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return "", fmt.Errorf("start container: %w", err)
	}

	code, _, err := container.Exec(ctx, []string{
		"mongosh", "--quiet", "--eval",
		"rs.initiate({_id: 'rs0', members: [{_id: 0, host: 'localhost:27017'}]})",
	})
	if err != nil || code != 0 {
		return "", fmt.Errorf("rs.initiate exit %d: %v", code, err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return "", err
	}
	port, err := container.MappedPort(ctx, "27017")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("mongodb://%s:%s/?directConnection=true", host, port.Port()), nil
}

func newRecord(batchNumber string, createdAt time.Time) *domain.TestRecord {
	rec := &domain.TestRecord{
		ID:               uuid.NewString(),
		BatchID:          "b-1",
		BatchNumber:      batchNumber,
		ProductName:      "Paracetamol 500mg",
		TestType:         "Assay",
		TestDate:         "2026-05-01",
		ResultValue:      "5.0",
		SpecificationMin: "4.0",
		SpecificationMax: "6.0",
		Attachments:      []string{},
		Version:          1,
		CreatedAt:        createdAt.UTC().Truncate(time.Millisecond),
		UpdatedAt:        createdAt.UTC().Truncate(time.Millisecond),
	}
	rec.Reevaluate()
	return rec
}

func TestUserRepository(t *testing.T) {
	_, db := setupDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &domain.User{ID: uuid.NewString(), Username: "ana", Email: "ana@lab.example", Role: domain.RoleQCAnalyst, IsActive: true, PasswordHash: "h"}
	require.NoError(t, repo.Create(ctx, u))

	dup := *u
	dup.ID = uuid.NewString()
	dup.Email = "other@lab.example"
	assert.ErrorIs(t, repo.Create(ctx, &dup), domain.ErrUserExists)

	got, err := repo.FindByUsername(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = repo.FindByEmail(ctx, "nobody@lab.example")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	inactive := false
	updated, err := repo.UpdateAccess(ctx, u.ID, nil, &inactive)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, domain.RoleQCAnalyst, updated.Role)
}

func TestTestRecordRepository_VersionGuard(t *testing.T) {
	_, db := setupDB(t)
	repo := NewTestRecordRepository(db)
	ctx := context.Background()

	rec := newRecord("B-1", time.Now())
	require.NoError(t, repo.Create(ctx, rec))

	next := rec.Clone()
	next.ResultValue = "7.0"
	next.Reevaluate()
	updated, err := repo.Update(ctx, next, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.Version)
	assert.Equal(t, domain.StatusFail, updated.PassFailStatus)

	_, err = repo.Update(ctx, next, 1)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = repo.Update(ctx, newRecord("B-x", time.Now()), 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTestRecordRepository_Signatures(t *testing.T) {
	_, db := setupDB(t)
	repo := NewTestRecordRepository(db)
	ctx := context.Background()

	rec := newRecord("B-1", time.Now())
	require.NoError(t, repo.Create(ctx, rec))

	ana := &domain.User{ID: "u1", Username: "ana"}
	rev := &domain.User{ID: "u2", Username: "rev"}
	at := time.Now().UTC().Truncate(time.Millisecond)

	_, err := repo.ApplySignature(ctx, rec.ID, domain.NewAttestation(ana, "Tested by", "", at), nil)
	require.NoError(t, err)
	signed, err := repo.ApplySignature(ctx, rec.ID, domain.NewAttestation(rev, "Reviewed by", "ok", at), nil)
	require.NoError(t, err)

	assert.Len(t, signed.Signatures, 2)
	assert.Equal(t, "Reviewed by rev", signed.Signature)
	assert.Equal(t, "rev", signed.ReviewedBy)
	assert.Equal(t, rec.PassFailStatus, signed.PassFailStatus)
	assert.Equal(t, int64(3), signed.Version)

	// A stale substantive update must not erase signatures written meanwhile.
	next := signed.Clone()
	next.Comments = "note"
	next.Signatures = nil
	next.Signature = ""
	updated, err := repo.Update(ctx, next, signed.Version)
	require.NoError(t, err)
	assert.Len(t, updated.Signatures, 2)
	assert.Equal(t, "Reviewed by rev", updated.Signature)

	stale := int64(1)
	_, err = repo.ApplySignature(ctx, rec.ID, domain.NewAttestation(ana, "Approved by", "", at), &stale)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestTestRecordRepository_Search(t *testing.T) {
	_, db := setupDB(t)
	repo := NewTestRecordRepository(db)
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

	for i, bn := range []string{"B-1-REWORK", "B-2", "b-10", "B-1.("} {
		require.NoError(t, repo.Create(ctx, newRecord(bn, base.Add(time.Duration(i)*time.Minute))))
	}

	collect := func(f domain.TestRecordFilter) []string {
		var out []string
		for rec, err := range repo.Search(ctx, f) {
			require.NoError(t, err)
			out = append(out, rec.BatchNumber)
		}
		return out
	}

	assert.Equal(t, []string{"B-1.(", "b-10", "B-2", "B-1-REWORK"}, collect(domain.TestRecordFilter{}))
	assert.Equal(t, []string{"B-1.(", "b-10", "B-1-REWORK"}, collect(domain.TestRecordFilter{BatchNumber: "b-1"}))
	assert.Equal(t, []string{"B-1.("}, collect(domain.TestRecordFilter{BatchNumber: "1.("}))
	assert.Empty(t, collect(domain.TestRecordFilter{DateFrom: "2026-05-02"}))
}

func TestAuditRepository(t *testing.T) {
	_, db := setupDB(t)
	repo := NewAuditRepository(db)
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Millisecond)

	mk := func(id string, offset time.Duration, state domain.AuditState) *domain.AuditEntry {
		return &domain.AuditEntry{
			ID: id, Action: domain.AuditSign, EntityType: domain.EntityTest, EntityID: "t1",
			Username: "ana", Timestamp: base.Add(offset), Details: map[string]any{"meaning": "Tested by"}, State: state,
		}
	}
	require.NoError(t, repo.Append(ctx, mk("a1", 0, domain.AuditCommitted)))
	require.NoError(t, repo.Append(ctx, mk("a2", time.Second, domain.AuditProvisional)))
	require.NoError(t, repo.Append(ctx, mk("a3", 2*time.Second, domain.AuditProvisional)))

	assert.ErrorIs(t, repo.Append(ctx, mk("a1", 0, domain.AuditCommitted)), domain.ErrConflict)

	require.NoError(t, repo.Resolve(ctx, "a2", domain.AuditCommitted))
	require.NoError(t, repo.Resolve(ctx, "a3", domain.AuditAborted))
	require.NoError(t, repo.Resolve(ctx, "a2", domain.AuditAborted), "resolving twice is a no-op")
	assert.ErrorIs(t, repo.Resolve(ctx, "missing", domain.AuditCommitted), domain.ErrNotFound)

	var ids []string
	for e, err := range repo.List(ctx, domain.AuditFilter{EntityID: "t1"}) {
		require.NoError(t, err)
		ids = append(ids, e.ID)
		assert.Equal(t, domain.AuditCommitted, e.State)
	}
	assert.Equal(t, []string{"a2", "a1"}, ids)
}

func TestTransactor_RollsBack(t *testing.T) {
	client, db := setupDB(t)
	tx := NewTransactor(client)
	records := NewTestRecordRepository(db)
	audit := NewAuditRepository(db)
	ctx := context.Background()

	rec := newRecord("B-1", time.Now())
	require.NoError(t, records.Create(ctx, rec))

	boom := errors.New("boom")
	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		e := &domain.AuditEntry{ID: "tx1", Action: domain.AuditSign, EntityID: rec.ID, Timestamp: time.Now().UTC(), State: domain.AuditProvisional}
		if err := audit.Append(ctx, e); err != nil {
			return err
		}
		if _, err := records.ApplySignature(ctx, rec.ID, domain.NewAttestation(&domain.User{Username: "ana"}, "Tested by", "", time.Now()), nil); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := records.FindByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.False(t, got.IsSigned())
	for range audit.List(ctx, domain.AuditFilter{EntityID: rec.ID}) {
		t.Fatal("audit entry survived rollback")
	}
}
