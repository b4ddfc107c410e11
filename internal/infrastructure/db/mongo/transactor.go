package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// Transactor runs a unit of work in a multi-document transaction. It needs a
// replica set or sharded cluster.
type Transactor struct {
	client *mongo.Client
}

func NewTransactor(client *mongo.Client) *Transactor {
	return &Transactor{client: client}
}

// WithinTransaction runs fn with a session context. The driver retries fn on
// transient transaction errors, so fn must be safe to repeat.
func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return t.client.UseSession(ctx, func(sc mongo.SessionContext) error {
		_, err := sc.WithTransaction(sc, func(txCtx mongo.SessionContext) (any, error) {
			return nil, fn(txCtx)
		})
		if err != nil {
			return fmt.Errorf("mongo transaction: %w", err)
		}
		return nil
	})
}

func (t *Transactor) Atomic() bool { return true }

// NoopTransactor calls fn directly, for standalone servers.
type NoopTransactor struct{}

func (NoopTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (NoopTransactor) Atomic() bool { return false }
