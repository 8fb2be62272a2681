package ports

import (
	"context"

	"github.com/rewardly/cashback-system/internal/core/domain"
)

// CreateMerchantInput carries the fields for enrolling a new merchant.
type CreateMerchantInput struct {
	Name                      string
	DefaultCashbackPercentage float64
	Active                    bool
}

type MerchantService interface {
	CreateMerchant(ctx context.Context, input CreateMerchantInput) (*domain.Merchant, error)
	ListMerchants(ctx context.Context, filter ListMerchantsFilter) ([]*domain.Merchant, int64, error)
	SetMerchantStatus(ctx context.Context, merchantID string, active bool) (*domain.Merchant, error)
}
