package ports

import (
	"context"

	"github.com/rewardly/cashback-system/internal/core/domain"
)

type UserService interface {
	CreateUser(ctx context.Context, email, password string) (*domain.User, error)
}
