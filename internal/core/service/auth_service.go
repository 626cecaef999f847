package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/freeedu/auth-service/internal/api/metrics"
	"github.com/freeedu/auth-service/internal/core/domain"
	"github.com/freeedu/auth-service/internal/core/ports"
)

// AuthService orchestrates registration and login: uniqueness check,
// password hashing, persistence, and token issuance.
type AuthService struct {
	users       ports.UserRepository
	hasher      ports.PasswordHasher
	tokens      ports.TokenService
	audit       ports.AuditRecorder
	defaultRole domain.Role
	log         zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenService,
	audit ports.AuditRecorder,
	defaultRole domain.Role,
	log zerolog.Logger,
) *AuthService {
	if !defaultRole.Valid() {
		defaultRole = domain.RoleStudent
	}
	return &AuthService{
		users:       users,
		hasher:      hasher,
		tokens:      tokens,
		audit:       audit,
		defaultRole: defaultRole,
		log:         log,
	}
}

// Register creates a new account and issues a token for it. A duplicate
// email fails with domain.ErrEmailTaken, whether caught by the pre-check
// or by the store's unique index.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	exists, err := s.users.ExistsByEmail(ctx, in.Email)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("register: %w", err)
	}
	if exists {
		s.recordEvent(in.Email, domain.ActionRegister, domain.OutcomeFailure, "email_taken", in.RemoteIP)
		metrics.RegistrationsTotal.WithLabelValues("email_taken").Inc()
		return nil, domain.ErrEmailTaken
	}

	start := time.Now()
	hash, err := s.hasher.Hash(in.Password)
	metrics.HashDuration.WithLabelValues("hash").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	user := &domain.User{
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         s.defaultRole,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		// The unique index closes the check-then-save race; a concurrent
		// insert surfaces here as ErrEmailTaken.
		if errors.Is(err, domain.ErrEmailTaken) {
			s.recordEvent(in.Email, domain.ActionRegister, domain.OutcomeFailure, "email_taken", in.RemoteIP)
			metrics.RegistrationsTotal.WithLabelValues("email_taken").Inc()
			return nil, err
		}
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("register: %w", err)
	}

	token, err := s.tokens.Generate(created.Email)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("register: %w", err)
	}

	s.recordEvent(created.Email, domain.ActionRegister, domain.OutcomeSuccess, "", in.RemoteIP)
	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("email", created.Email).Str("role", string(created.Role)).Msg("user registered")

	return &ports.AuthResult{Token: token, Role: created.Role}, nil
}

// Login verifies credentials and issues a token. An unknown email and a
// wrong password both fail with the same domain.ErrInvalidCredentials so
// error content cannot be used to enumerate registered emails.
func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordEvent(in.Email, domain.ActionLogin, domain.OutcomeFailure, "unknown_email", in.RemoteIP)
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("login: %w", err)
	}

	start := time.Now()
	ok := s.hasher.Verify(in.Password, user.PasswordHash)
	metrics.HashDuration.WithLabelValues("verify").Observe(time.Since(start).Seconds())
	if !ok {
		s.recordEvent(in.Email, domain.ActionLogin, domain.OutcomeFailure, "wrong_password", in.RemoteIP)
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.Email)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("login: %w", err)
	}

	s.recordEvent(user.Email, domain.ActionLogin, domain.OutcomeSuccess, "", in.RemoteIP)
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("email", user.Email).Msg("user logged in")

	return &ports.AuthResult{Token: token, Role: user.Role}, nil
}

func (s *AuthService) recordEvent(email, action, outcome, reason, ip string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuthEvent{
		Email:     email,
		Action:    action,
		Outcome:   outcome,
		Reason:    reason,
		RemoteIP:  ip,
		Timestamp: time.Now().UTC(),
	})
}
