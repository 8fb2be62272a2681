package ports

import (
	"context"

	"github.com/rewardly/cashback-system/internal/core/domain"
)

// ListMerchantsFilter carries the query parameters for listing merchants.
type ListMerchantsFilter struct {
	Active   *bool // nil = no filter; otherwise match the active flag
	Page     int   // 1-based
	PageSize int   // max rows per page (capped at 100 by the service)
}

// MerchantRepository defines persistence operations for merchants.
// Lookups return (nil, nil) when no row matches.
type MerchantRepository interface {
	Create(ctx context.Context, m *domain.Merchant) (*domain.Merchant, error)
	FindByID(ctx context.Context, id string) (*domain.Merchant, error)
	FindByName(ctx context.Context, name string) (*domain.Merchant, error)
	// List returns a page of merchants matching filter and the total count.
	List(ctx context.Context, filter ListMerchantsFilter) ([]*domain.Merchant, int64, error)
	UpdateStatus(ctx context.Context, id string, active bool) (*domain.Merchant, error)
}
