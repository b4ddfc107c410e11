package ports

import (
	"context"
	"time"

	"github.com/Sanjana0524/Pharmaceutical-Quality-Control-Record-Portal/internal/core/domain"
)

// RegisterInput carries a new principal's details.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     domain.Role
	FullName string
}

// Session is an issued session token and its absolute expiry.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// AuthService is the authentication gate plus principal management.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput, origin string) (*domain.User, error)
	// Authenticate verifies the credential and issues a session.
	Authenticate(ctx context.Context, username, password string) (*Session, *domain.User, error)
	// VerifyCredential re-checks a password independently of any session.
	VerifyCredential(ctx context.Context, username, password string) (*domain.User, error)
	IssueSession(user *domain.User) (*Session, error)
	ResolveSession(ctx context.Context, token string) (*domain.User, error)
	UpdateAccess(ctx context.Context, id string, role *domain.Role, active *bool, actor domain.Actor) (*domain.User, error)
}
