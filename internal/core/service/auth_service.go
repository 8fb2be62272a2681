package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rewardly/cashback-system/internal/core/domain"
	"github.com/rewardly/cashback-system/internal/core/ports"
)

// VerifyPasswordFunc checks a plaintext password against a stored digest.
// Injected so the auth service is not coupled to a specific hashing library.
type VerifyPasswordFunc func(plain, digest string) bool

// LoginLimiter throttles repeated failed logins per email (Redis-backed in
// production). Limiter failures must not block logins.
type LoginLimiter interface {
	Allow(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// AuthService implements the login transaction: resolve the user, verify the
// password, mint a bearer token. ErrUserNotFound and ErrPasswordVerification
// are mapped to the same response at the transport boundary so callers cannot
// probe which emails have accounts.
type AuthService struct {
	users          ports.UserRepository
	tokens         ports.TokenProvider
	verifyPassword VerifyPasswordFunc
	limiter        LoginLimiter
	log            zerolog.Logger
}

// NewAuthService wires the login transaction. limiter may be nil to disable
// throttling.
func NewAuthService(
	users ports.UserRepository,
	tokens ports.TokenProvider,
	verifyPassword VerifyPasswordFunc,
	limiter LoginLimiter,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:          users,
		tokens:         tokens,
		verifyPassword: verifyPassword,
		limiter:        limiter,
		log:            log,
	}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Token, error) {
	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Msg("login limiter check failed, proceeding")
		} else if !allowed {
			s.log.Info().Str("email", email).Msg("login throttled")
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("login: find user: %w", err)
	}
	if user == nil {
		s.log.Debug().Str("email", email).Msg("login for unknown email")
		return nil, domain.ErrUserNotFound
	}

	if !s.verifyPassword(password, user.PasswordHash) {
		if s.limiter != nil {
			if err := s.limiter.RecordFailure(ctx, email); err != nil {
				s.log.Warn().Err(err).Msg("failed to record login failure")
			}
		}
		return nil, domain.ErrPasswordVerification
	}

	signed, err := s.tokens.CreateAccessToken(domain.TokenPayload{
		UserID:   user.ID,
		UserRole: user.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("failed to reset login failures")
		}
	}

	s.log.Info().Str("user_id", user.ID).Msg("login succeeded")

	return &domain.Token{AccessToken: signed, TokenType: domain.TokenTypeBearer}, nil
}
