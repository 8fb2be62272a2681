package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rewardly/cashback-system/internal/core/domain"
	"github.com/rewardly/cashback-system/internal/core/ports"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// CashbackPolicyFunc rejects default cashback percentages outside the
// configured bounds.
type CashbackPolicyFunc func(percentage float64) error

type MerchantService struct {
	enforceCashbackValidity CashbackPolicyFunc
	merchants               ports.MerchantRepository
	log                     zerolog.Logger
}

func NewMerchantService(
	enforceCashbackValidity CashbackPolicyFunc,
	merchants ports.MerchantRepository,
	log zerolog.Logger,
) *MerchantService {
	return &MerchantService{
		enforceCashbackValidity: enforceCashbackValidity,
		merchants:               merchants,
		log:                     log,
	}
}

func (s *MerchantService) CreateMerchant(ctx context.Context, input ports.CreateMerchantInput) (*domain.Merchant, error) {
	if err := s.enforceCashbackValidity(input.DefaultCashbackPercentage); err != nil {
		return nil, err
	}

	existing, err := s.merchants.FindByName(ctx, input.Name)
	if err != nil {
		return nil, fmt.Errorf("create merchant: check name: %w", err)
	}
	if existing != nil {
		s.log.Info().Str("name", input.Name).Msg("attempt to create a merchant with an existing name")
		return nil, domain.ErrMerchantNameExists
	}

	merchant := &domain.Merchant{
		ID:                        uuid.NewString(),
		Name:                      input.Name,
		DefaultCashbackPercentage: input.DefaultCashbackPercentage,
		Active:                    input.Active,
	}

	created, err := s.merchants.Create(ctx, merchant)
	if err != nil {
		return nil, fmt.Errorf("create merchant: %w", err)
	}

	s.log.Info().Str("merchant_id", created.ID).Str("name", created.Name).Msg("merchant created")
	return created, nil
}

func (s *MerchantService) ListMerchants(ctx context.Context, filter ports.ListMerchantsFilter) ([]*domain.Merchant, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = defaultPageSize
	}
	if filter.PageSize > maxPageSize {
		filter.PageSize = maxPageSize
	}

	items, total, err := s.merchants.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list merchants: %w", err)
	}
	return items, total, nil
}

func (s *MerchantService) SetMerchantStatus(ctx context.Context, merchantID string, active bool) (*domain.Merchant, error) {
	merchant, err := s.merchants.FindByID(ctx, merchantID)
	if err != nil {
		return nil, fmt.Errorf("set merchant status: %w", err)
	}
	if merchant == nil {
		s.log.Debug().Str("merchant_id", merchantID).Msg("merchant not found for status update")
		return nil, domain.ErrMerchantNotFound
	}

	updated, err := s.merchants.UpdateStatus(ctx, merchantID, active)
	if err != nil {
		return nil, fmt.Errorf("set merchant status: %w", err)
	}
	if updated == nil {
		// Row disappeared between the lookup and the update.
		return nil, domain.ErrMerchantNotFound
	}

	s.log.Info().Str("merchant_id", merchantID).Bool("active", active).Msg("merchant status updated")
	return updated, nil
}
