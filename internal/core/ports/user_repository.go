package ports

import (
	"context"

	"github.com/Sanjana0524/Pharmaceutical-Quality-Control-Record-Portal/internal/core/domain"
)

// UserRepository persists principals. Username and email are unique; Create
// fails with domain.ErrUserExists on either collision.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// UpdateAccess changes role and/or active flag. Nil arguments are kept.
	UpdateAccess(ctx context.Context, id string, role *domain.Role, active *bool) (*domain.User, error)
}

// AttemptLimiter throttles repeated credential failures per username.
type AttemptLimiter interface {
	Locked(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}
