package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rewardly/cashback-system/internal/core/domain"
	"github.com/rewardly/cashback-system/internal/core/ports"
)

// PasswordPolicyFunc rejects passwords that fail the complexity rules.
type PasswordPolicyFunc func(password string) error

// HashPasswordFunc derives a storable digest from a plaintext password.
type HashPasswordFunc func(plain string) (string, error)

// UserService implements account registration. Policy and hasher are injected
// as narrow func capabilities.
type UserService struct {
	enforcePasswordComplexity PasswordPolicyFunc
	hashPassword              HashPasswordFunc
	users                     ports.UserRepository
	log                       zerolog.Logger
}

func NewUserService(
	enforcePasswordComplexity PasswordPolicyFunc,
	hashPassword HashPasswordFunc,
	users ports.UserRepository,
	log zerolog.Logger,
) *UserService {
	return &UserService{
		enforcePasswordComplexity: enforcePasswordComplexity,
		hashPassword:              hashPassword,
		users:                     users,
		log:                       log,
	}
}

func (s *UserService) CreateUser(ctx context.Context, email, password string) (*domain.User, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("create user: check email: %w", err)
	}
	if existing != nil {
		s.log.Info().Str("email", email).Msg("attempt to register an existing email")
		return nil, domain.ErrEmailAlreadyRegistered
	}

	if err := s.enforcePasswordComplexity(password); err != nil {
		return nil, err
	}

	hash, err := s.hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info().Str("user_id", created.ID).Msg("user registered")
	return created, nil
}
