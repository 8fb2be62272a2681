package ports

import (
	"context"

	"github.com/rewardly/cashback-system/internal/core/domain"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (*domain.Token, error)
}

// CurrentUserResolver turns a bearer token into a live user record. The user
// is re-fetched on every call so deactivation and deletion take effect
// immediately, regardless of the token's remaining lifetime.
type CurrentUserResolver interface {
	ResolveCurrentUser(ctx context.Context, token string) (*domain.User, error)
	ResolveCurrentAdmin(user *domain.User) (*domain.User, error)
}
