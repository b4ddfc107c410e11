package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/Sanjana0524/Pharmaceutical-Quality-Control-Record-Portal/internal/core/domain"
	"github.com/Sanjana0524/Pharmaceutical-Quality-Control-Record-Portal/internal/core/ports"
)

const defaultSessionTTL = 8 * time.Hour

// AuthOptions configures session issuing and password hashing.
type AuthOptions struct {
	JWTSecret  string
	Issuer     string
	SessionTTL time.Duration
	BcryptCost int
}

// AuthService verifies credentials, issues and resolves sessions, and manages
// principals.
type AuthService struct {
	users     ports.UserRepository
	limiter   ports.AttemptLimiter
	audit     *AuditRecorder
	secret    []byte
	issuer    string
	ttl       time.Duration
	cost      int
	dummyHash []byte
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAuthService returns an AuthService. limiter may be nil to disable
// failed-attempt throttling.
func NewAuthService(
	users ports.UserRepository,
	limiter ports.AttemptLimiter,
	audit *AuditRecorder,
	opts AuthOptions,
	logger zerolog.Logger,
) *AuthService {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = defaultSessionTTL
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	if opts.Issuer == "" {
		opts.Issuer = "qc-portal"
	}
	// Compared against when the username is unknown so both failure paths
	// cost the same.
	dummy, _ := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), opts.BcryptCost)

	return &AuthService{
		users:     users,
		limiter:   limiter,
		audit:     audit,
		secret:    []byte(opts.JWTSecret),
		issuer:    opts.Issuer,
		ttl:       opts.SessionTTL,
		cost:      opts.BcryptCost,
		dummyHash: dummy,
		logger:    logger,
		now:       time.Now,
	}
}

// Register creates a principal with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput, origin string) (*domain.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)

	var verr domain.ValidationError
	for _, f := range []struct{ field, value string }{
		{"username", in.Username},
		{"email", in.Email},
		{"password", in.Password},
		{"full_name", in.FullName},
	} {
		if strings.TrimSpace(f.value) == "" {
			verr.Errors = append(verr.Errors, domain.FieldError{Field: f.field, Message: "is required"})
		}
	}
	if !in.Role.Valid() {
		verr.Errors = append(verr.Errors, domain.FieldError{Field: "role", Message: "must be one of Admin, QC Manager, QC Analyst, Auditor"})
	}
	if len(verr.Errors) > 0 {
		return nil, &verr
	}

	if _, err := s.users.FindByUsername(ctx, in.Username); err == nil {
		return nil, fmt.Errorf("%w: username already registered", domain.ErrUserExists)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}
	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", domain.ErrUserExists)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := s.now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     in.Username,
		Email:        in.Email,
		FullName:     in.FullName,
		Role:         in.Role,
		IsActive:     true,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Str("username", user.Username).Str("role", string(user.Role)).Msg("user registered")

	auditErr := s.audit.Record(ctx, domain.AuditRegister, domain.EntityUser, user.ID, domain.ActorFrom(user, origin),
		map[string]any{"username": user.Username, "role": string(user.Role)})
	return user, auditErr
}

// VerifyCredential checks username and password against the stored hash. It
// never reveals whether the username exists: unknown users and wrong
// passwords both yield domain.ErrInvalidCredentials.
func (s *AuthService) VerifyCredential(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		locked, err := s.limiter.Locked(ctx, username)
		if err != nil {
			s.logger.Warn().Err(err).Msg("attempt limiter unavailable, continuing without throttle")
		} else if locked {
			return nil, domain.ErrCredentialLocked
		}
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("verify credential: %w", err)
		}
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		s.recordFailure(ctx, username)
		return nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, username)
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrInactiveAccount
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, username); err != nil {
			s.logger.Warn().Err(err).Msg("failed to reset attempt counter")
		}
	}
	return user, nil
}

func (s *AuthService) recordFailure(ctx context.Context, username string) {
	if s.limiter == nil {
		return
	}
	if err := s.limiter.RecordFailure(ctx, username); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record credential failure")
	}
}

// Authenticate verifies the credential and issues a session for it.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*ports.Session, *domain.User, error) {
	user, err := s.VerifyCredential(ctx, username, password)
	if err != nil {
		return nil, nil, err
	}
	session, err := s.IssueSession(user)
	if err != nil {
		return nil, nil, err
	}
	s.logger.Info().Str("user_id", user.ID).Msg("session issued")
	return session, user, nil
}

// IssueSession signs an HS256 token carrying the principal id and expiry.
func (s *AuthService) IssueSession(user *domain.User) (*ports.Session, error) {
	now := s.now()
	exp := now.Add(s.ttl)
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   user.ID,
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}
	return &ports.Session{Token: token, ExpiresAt: exp.UTC()}, nil
}

// ResolveSession maps a token back to its principal.
func (s *AuthService) ResolveSession(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrSessionInvalid
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrSessionExpired
		}
		return nil, domain.ErrSessionInvalid
	}
	if claims.Subject == "" {
		return nil, domain.ErrSessionInvalid
	}

	user, err := s.users.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnknownPrincipal
		}
		return nil, fmt.Errorf("resolve session: %w", err)
	}
	return user, nil
}

// UpdateAccess changes a principal's role and/or active flag.
func (s *AuthService) UpdateAccess(
	ctx context.Context,
	id string,
	role *domain.Role,
	active *bool,
	actor domain.Actor,
) (*domain.User, error) {
	if !actor.Can(domain.ActionManageUsers) {
		return nil, domain.ErrForbidden
	}
	if role != nil && !role.Valid() {
		return nil, domain.NewValidationError("role", "must be one of Admin, QC Manager, QC Analyst, Auditor")
	}

	var changed []string
	if role != nil {
		changed = append(changed, "role")
	}
	if active != nil {
		changed = append(changed, "is_active")
	}
	if len(changed) == 0 {
		return nil, domain.NewValidationError("body", "role or is_active is required")
	}

	user, err := s.users.UpdateAccess(ctx, id, role, active)
	if err != nil {
		return nil, fmt.Errorf("update access: %w", err)
	}

	s.logger.Info().Str("user_id", id).Strs("fields", changed).Str("by", actor.Username).Msg("user access updated")

	auditErr := s.audit.Record(ctx, domain.AuditUpdate, domain.EntityUser, id, actor,
		map[string]any{"updated_fields": changed})
	return user, auditErr
}
