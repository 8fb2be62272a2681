package ports

import (
	"context"

	"github.com/rewardly/cashback-system/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
// Lookups return (nil, nil) when no row matches; an error always means
// infrastructure failure, never "not found".
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
