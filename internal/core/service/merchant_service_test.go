package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/rewardly/cashback-system/internal/core/domain"
	"github.com/rewardly/cashback-system/internal/core/ports"
)

type stubMerchantRepo struct {
	merchants map[string]*domain.Merchant
}

func newStubMerchantRepo() *stubMerchantRepo {
	return &stubMerchantRepo{merchants: make(map[string]*domain.Merchant)}
}

func cloneMerchant(m *domain.Merchant) *domain.Merchant {
	if m == nil {
		return nil
	}
	clone := *m
	return &clone
}

func (r *stubMerchantRepo) Create(_ context.Context, m *domain.Merchant) (*domain.Merchant, error) {
	r.merchants[m.ID] = cloneMerchant(m)
	return cloneMerchant(m), nil
}

func (r *stubMerchantRepo) FindByID(_ context.Context, id string) (*domain.Merchant, error) {
	return cloneMerchant(r.merchants[id]), nil
}

func (r *stubMerchantRepo) FindByName(_ context.Context, name string) (*domain.Merchant, error) {
	for _, m := range r.merchants {
		if m.Name == name {
			return cloneMerchant(m), nil
		}
	}
	return nil, nil
}

func (r *stubMerchantRepo) List(_ context.Context, filter ports.ListMerchantsFilter) ([]*domain.Merchant, int64, error) {
	var all []*domain.Merchant
	for _, m := range r.merchants {
		if filter.Active != nil && m.Active != *filter.Active {
			continue
		}
		all = append(all, cloneMerchant(m))
	}
	total := int64(len(all))

	start := (filter.Page - 1) * filter.PageSize
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + filter.PageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *stubMerchantRepo) UpdateStatus(_ context.Context, id string, active bool) (*domain.Merchant, error) {
	m, ok := r.merchants[id]
	if !ok {
		return nil, nil
	}
	m.Active = active
	return cloneMerchant(m), nil
}

func newTestMerchantService(repo *stubMerchantRepo) *MerchantService {
	policy := func(p float64) error { return domain.EnforceCashbackPercentageValidity(p, 20) }
	return NewMerchantService(policy, repo, zerolog.Nop())
}

func TestMerchantService_CreateMerchant_Success(t *testing.T) {
	repo := newStubMerchantRepo()
	svc := newTestMerchantService(repo)

	merchant, err := svc.CreateMerchant(context.Background(), ports.CreateMerchantInput{
		Name:                      "Acme Groceries",
		DefaultCashbackPercentage: 5.5,
		Active:                    true,
	})
	if err != nil {
		t.Fatalf("CreateMerchant: %v", err)
	}
	if merchant.ID == "" {
		t.Fatal("expected a generated id")
	}
	if merchant.DefaultCashbackPercentage != 5.5 {
		t.Fatalf("unexpected percentage: %g", merchant.DefaultCashbackPercentage)
	}
}

func TestMerchantService_CreateMerchant_DuplicateName(t *testing.T) {
	repo := newStubMerchantRepo()
	svc := newTestMerchantService(repo)

	input := ports.CreateMerchantInput{Name: "Acme", DefaultCashbackPercentage: 5, Active: true}
	if _, err := svc.CreateMerchant(context.Background(), input); err != nil {
		t.Fatalf("CreateMerchant: %v", err)
	}
	if _, err := svc.CreateMerchant(context.Background(), input); !errors.Is(err, domain.ErrMerchantNameExists) {
		t.Fatalf("expected ErrMerchantNameExists, got %v", err)
	}
}

func TestMerchantService_CreateMerchant_InvalidPercentage(t *testing.T) {
	repo := newStubMerchantRepo()
	svc := newTestMerchantService(repo)

	_, err := svc.CreateMerchant(context.Background(), ports.CreateMerchantInput{
		Name:                      "Acme",
		DefaultCashbackPercentage: 35,
		Active:                    true,
	})
	var ce *domain.CashbackPercentageError
	if !errors.As(err, &ce) {
		t.Fatalf("expected CashbackPercentageError, got %v", err)
	}
	if len(repo.merchants) != 0 {
		t.Fatal("merchant should not have been created")
	}
}

func TestMerchantService_ListMerchants_NormalizesPaging(t *testing.T) {
	repo := newStubMerchantRepo()
	svc := newTestMerchantService(repo)

	for _, name := range []string{"One", "Two", "Three"} {
		if _, err := svc.CreateMerchant(context.Background(), ports.CreateMerchantInput{
			Name:                      name,
			DefaultCashbackPercentage: 1,
			Active:                    true,
		}); err != nil {
			t.Fatalf("CreateMerchant: %v", err)
		}
	}

	// Page and size below 1 fall back to defaults instead of failing.
	items, total, err := svc.ListMerchants(context.Background(), ports.ListMerchantsFilter{Page: 0, PageSize: 0})
	if err != nil {
		t.Fatalf("ListMerchants: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected total 3, got %d", total)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
}

func TestMerchantService_ListMerchants_ActiveFilter(t *testing.T) {
	repo := newStubMerchantRepo()
	svc := newTestMerchantService(repo)

	for _, m := range []struct {
		name   string
		active bool
	}{{"On", true}, {"Off", false}} {
		if _, err := svc.CreateMerchant(context.Background(), ports.CreateMerchantInput{
			Name:                      m.name,
			DefaultCashbackPercentage: 1,
			Active:                    m.active,
		}); err != nil {
			t.Fatalf("CreateMerchant: %v", err)
		}
	}

	active := true
	items, total, err := svc.ListMerchants(context.Background(), ports.ListMerchantsFilter{Page: 1, PageSize: 20, Active: &active})
	if err != nil {
		t.Fatalf("ListMerchants: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].Name != "On" {
		t.Fatalf("expected only the active merchant, got total=%d items=%d", total, len(items))
	}
}

func TestMerchantService_SetMerchantStatus(t *testing.T) {
	repo := newStubMerchantRepo()
	svc := newTestMerchantService(repo)

	created, err := svc.CreateMerchant(context.Background(), ports.CreateMerchantInput{
		Name:                      "Acme",
		DefaultCashbackPercentage: 5,
		Active:                    true,
	})
	if err != nil {
		t.Fatalf("CreateMerchant: %v", err)
	}

	updated, err := svc.SetMerchantStatus(context.Background(), created.ID, false)
	if err != nil {
		t.Fatalf("SetMerchantStatus: %v", err)
	}
	if updated.Active {
		t.Fatal("expected merchant to be inactive")
	}
}

// vanishingMerchantRepo drops the row after the lookup, simulating a delete
// racing the status update.
type vanishingMerchantRepo struct {
	*stubMerchantRepo
}

func (r *vanishingMerchantRepo) UpdateStatus(ctx context.Context, id string, active bool) (*domain.Merchant, error) {
	delete(r.merchants, id)
	return r.stubMerchantRepo.UpdateStatus(ctx, id, active)
}

func TestMerchantService_SetMerchantStatus_RowVanishesAfterLookup(t *testing.T) {
	repo := newStubMerchantRepo()
	svc := NewMerchantService(
		func(p float64) error { return domain.EnforceCashbackPercentageValidity(p, 20) },
		&vanishingMerchantRepo{stubMerchantRepo: repo},
		zerolog.Nop(),
	)

	created, err := svc.CreateMerchant(context.Background(), ports.CreateMerchantInput{
		Name:                      "Acme",
		DefaultCashbackPercentage: 5,
		Active:                    true,
	})
	if err != nil {
		t.Fatalf("CreateMerchant: %v", err)
	}

	updated, err := svc.SetMerchantStatus(context.Background(), created.ID, false)
	if !errors.Is(err, domain.ErrMerchantNotFound) {
		t.Fatalf("expected ErrMerchantNotFound, got %v", err)
	}
	if updated != nil {
		t.Fatal("expected nil merchant")
	}
}

func TestMerchantService_SetMerchantStatus_NotFound(t *testing.T) {
	repo := newStubMerchantRepo()
	svc := newTestMerchantService(repo)

	if _, err := svc.SetMerchantStatus(context.Background(), "missing", true); !errors.Is(err, domain.ErrMerchantNotFound) {
		t.Fatalf("expected ErrMerchantNotFound, got %v", err)
	}
}
