package mongo

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Sanjana0524/Pharmaceutical-Quality-Control-Record-Portal/internal/core/domain"
)

// AuditRepository implements ports.AuditRepository using MongoDB. Entries are
// inserted once; the only later write moves a provisional entry's state.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(collectionAuditLogs)}
}

type auditDoc struct {
	ID         string         `bson:"id"`
	Action     string         `bson:"action"`
	EntityType string         `bson:"entity_type"`
	EntityID   string         `bson:"entity_id"`
	UserID     string         `bson:"user_id"`
	Username   string         `bson:"username"`
	Timestamp  time.Time      `bson:"timestamp"`
	Details    map[string]any `bson:"details"`
	IPAddress  string         `bson:"ip_address,omitempty"`
	State      string         `bson:"state"`
	Digest     string         `bson:"digest"`
}

func (d auditDoc) toDomain() *domain.AuditEntry {
	return &domain.AuditEntry{
		ID:         d.ID,
		Action:     domain.AuditAction(d.Action),
		EntityType: d.EntityType,
		EntityID:   d.EntityID,
		UserID:     d.UserID,
		Username:   d.Username,
		Timestamp:  d.Timestamp.UTC(),
		Details:    d.Details,
		IPAddress:  d.IPAddress,
		State:      domain.AuditState(d.State),
		Digest:     d.Digest,
	}
}

// Append inserts the entry. A repeated id fails with domain.ErrConflict, which
// the reconciler treats as already written.
func (r *AuditRepository) Append(ctx context.Context, e *domain.AuditEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := auditDoc{
		ID:         e.ID,
		Action:     string(e.Action),
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		UserID:     e.UserID,
		Username:   e.Username,
		Timestamp:  e.Timestamp,
		Details:    e.Details,
		IPAddress:  e.IPAddress,
		State:      string(e.State),
		Digest:     e.Digest,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if isDuplicateKey(err) {
			return fmt.Errorf("%w: audit entry %s already exists", domain.ErrConflict, e.ID)
		}
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// Resolve moves a provisional entry to state. Resolving an entry that already
// left the provisional state is a no-op.
func (r *AuditRepository) Resolve(ctx context.Context, id string, state domain.AuditState) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "state": string(domain.AuditProvisional)},
		bson.M{"$set": bson.M{"state": string(state)}},
	)
	if err != nil {
		return fmt.Errorf("resolve audit entry: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	err = r.coll.FindOne(ctx, bson.M{"id": id}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.NewNotFoundError("audit entry", id)
	}
	return err
}

func auditFilter(f domain.AuditFilter) bson.M {
	filter := bson.M{"state": bson.M{"$ne": string(domain.AuditAborted)}}
	if f.EntityType != "" {
		filter["entity_type"] = f.EntityType
	}
	if f.EntityID != "" {
		filter["entity_id"] = f.EntityID
	}
	if f.Username != "" {
		filter["username"] = f.Username
	}
	if f.Action != "" {
		filter["action"] = string(f.Action)
	}
	return filter
}

// List streams entries newest first, hiding aborted ones.
func (r *AuditRepository) List(ctx context.Context, f domain.AuditFilter) iter.Seq2[*domain.AuditEntry, error] {
	return func(yield func(*domain.AuditEntry, error) bool) {
		opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}})
		if f.Limit > 0 {
			opts.SetLimit(int64(f.Limit))
		}
		cur, err := r.coll.Find(ctx, auditFilter(f), opts)
		if err != nil {
			yield(nil, fmt.Errorf("list audit entries: %w", err))
			return
		}
		defer cur.Close(context.WithoutCancel(ctx))

		for cur.Next(ctx) {
			var doc auditDoc
			if err := cur.Decode(&doc); err != nil {
				yield(nil, fmt.Errorf("decode audit entry: %w", err))
				return
			}
			if !yield(doc.toDomain(), nil) {
				return
			}
		}
		if err := cur.Err(); err != nil {
			yield(nil, fmt.Errorf("list audit entries: %w", err))
		}
	}
}
