package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rewardly/cashback-system/internal/core/domain"
	"github.com/rewardly/cashback-system/internal/core/ports"
)

// CurrentUserService resolves bearer tokens into live user records. The user
// row is re-fetched on every call: a token that outlives its account, or that
// belongs to a deactivated or demoted user, is rejected on the very next
// request even while cryptographically valid.
type CurrentUserService struct {
	users  ports.UserRepository
	tokens ports.TokenProvider
	log    zerolog.Logger
}

func NewCurrentUserService(users ports.UserRepository, tokens ports.TokenProvider, log zerolog.Logger) *CurrentUserService {
	return &CurrentUserService{users: users, tokens: tokens, log: log}
}

func (s *CurrentUserService) ResolveCurrentUser(ctx context.Context, token string) (*domain.User, error) {
	payload, err := s.tokens.VerifyAccessToken(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, payload.UserID)
	if err != nil {
		return nil, fmt.Errorf("resolve current user: %w", err)
	}
	if user == nil {
		// The account was deleted after the token was issued.
		s.log.Debug().Str("user_id", payload.UserID).Msg("token valid but user not found")
		return nil, domain.ErrInvalidToken
	}

	if !user.Active {
		s.log.Debug().Str("user_id", user.ID).Msg("token valid but user is inactive")
		return nil, domain.ErrInvalidToken
	}

	return user, nil
}

// ResolveCurrentAdmin gates privileged paths on the live role, not the
// token's role claim.
func (s *CurrentUserService) ResolveCurrentAdmin(user *domain.User) (*domain.User, error) {
	if !user.IsAdmin() {
		s.log.Debug().Str("user_id", user.ID).Str("role", user.Role).Msg("token valid but user is not an admin")
		return nil, domain.ErrInvalidToken
	}
	return user, nil
}
