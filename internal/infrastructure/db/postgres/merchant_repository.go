package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rewardly/cashback-system/internal/core/domain"
	"github.com/rewardly/cashback-system/internal/core/ports"
)

// MerchantRepository implements ports.MerchantRepository on PostgreSQL.
type MerchantRepository struct {
	pool *pgxpool.Pool
}

func NewMerchantRepository(pool *pgxpool.Pool) *MerchantRepository {
	return &MerchantRepository{pool: pool}
}

func (r *MerchantRepository) Create(ctx context.Context, m *domain.Merchant) (*domain.Merchant, error) {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO merchants (id, name, default_cashback_percentage, active)
		 VALUES ($1, $2, $3, $4)`,
		m.ID,
		m.Name,
		m.DefaultCashbackPercentage,
		m.Active,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrMerchantNameExists
		}
		return nil, fmt.Errorf("insert merchant: %w", err)
	}
	return m, nil
}

func (r *MerchantRepository) FindByID(ctx context.Context, id string) (*domain.Merchant, error) {
	return r.findOne(ctx,
		`SELECT id, name, default_cashback_percentage, active
		 FROM merchants WHERE id = $1`, id)
}

func (r *MerchantRepository) FindByName(ctx context.Context, name string) (*domain.Merchant, error) {
	return r.findOne(ctx,
		`SELECT id, name, default_cashback_percentage, active
		 FROM merchants WHERE name = $1`, name)
}

func (r *MerchantRepository) List(ctx context.Context, filter ports.ListMerchantsFilter) ([]*domain.Merchant, int64, error) {
	where := ""
	args := []any{}
	if filter.Active != nil {
		where = "WHERE active = $1"
		args = append(args, *filter.Active)
	}

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT count(*) FROM merchants "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count merchants: %w", err)
	}

	offset := (filter.Page - 1) * filter.PageSize
	query := fmt.Sprintf(
		"SELECT id, name, default_cashback_percentage, active FROM merchants %s ORDER BY name LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2,
	)
	args = append(args, filter.PageSize, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list merchants: %w", err)
	}
	defer rows.Close()

	var merchants []*domain.Merchant
	for rows.Next() {
		m := &domain.Merchant{}
		if err := rows.Scan(&m.ID, &m.Name, &m.DefaultCashbackPercentage, &m.Active); err != nil {
			return nil, 0, fmt.Errorf("scan merchant: %w", err)
		}
		merchants = append(merchants, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate merchants: %w", err)
	}

	return merchants, total, nil
}

func (r *MerchantRepository) UpdateStatus(ctx context.Context, id string, active bool) (*domain.Merchant, error) {
	m := &domain.Merchant{}
	err := r.pool.QueryRow(ctx,
		`UPDATE merchants SET active = $2 WHERE id = $1
		 RETURNING id, name, default_cashback_percentage, active`,
		id, active,
	).Scan(&m.ID, &m.Name, &m.DefaultCashbackPercentage, &m.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update merchant status: %w", err)
	}
	return m, nil
}

func (r *MerchantRepository) findOne(ctx context.Context, query string, arg any) (*domain.Merchant, error) {
	m := &domain.Merchant{}
	err := r.pool.QueryRow(ctx, query, arg).Scan(&m.ID, &m.Name, &m.DefaultCashbackPercentage, &m.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find merchant: %w", err)
	}
	return m, nil
}
