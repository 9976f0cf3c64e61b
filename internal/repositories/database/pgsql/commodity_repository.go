package pgsql

import (
	"context"
	"errors"

	"github.com/finchbooks/finch/internal/apperrors"
	"github.com/finchbooks/finch/internal/core/domain"
	portsrepo "github.com/finchbooks/finch/internal/core/ports/repositories"
	"github.com/finchbooks/finch/internal/models"
	"github.com/finchbooks/finch/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCommodityRepository struct {
	BaseRepository
}

// newPgxCommodityRepository creates a new repository for commodity data.
func newPgxCommodityRepository(pool *pgxpool.Pool) portsrepo.CommodityRepository {
	return &PgxCommodityRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CommodityRepository = (*PgxCommodityRepository)(nil)

const commodityColumns = `
	code, name, symbol, fraction,
	created_at, created_by, last_updated_at, last_updated_by
`

// SaveCommodity inserts a new commodity.
func (r *PgxCommodityRepository) SaveCommodity(ctx context.Context, commodity domain.Commodity) error {
	m := mapping.ToModelCommodity(commodity)
	query := `
		INSERT INTO commodities (` + commodityColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.Code,
		m.Name,
		m.Symbol,
		m.Fraction,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert commodity "+m.Code, err)
	}
	return nil
}

// FindCommodityByCode retrieves a commodity by its code.
func (r *PgxCommodityRepository) FindCommodityByCode(ctx context.Context, code string) (*domain.Commodity, error) {
	query := `SELECT ` + commodityColumns + ` FROM commodities WHERE code = $1;`

	var m models.Commodity
	err := r.Pool.QueryRow(ctx, query, code).Scan(
		&m.Code,
		&m.Name,
		&m.Symbol,
		&m.Fraction,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find commodity by code "+code, err)
	}

	commodity := mapping.ToDomainCommodity(m)
	return &commodity, nil
}

// FindCommoditiesByCodes retrieves the given commodities keyed by code.
func (r *PgxCommodityRepository) FindCommoditiesByCodes(ctx context.Context, codes []string) (map[string]domain.Commodity, error) {
	result := make(map[string]domain.Commodity, len(codes))
	if len(codes) == 0 {
		return result, nil
	}

	query := `SELECT ` + commodityColumns + ` FROM commodities WHERE code = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, codes)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query commodities by codes", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.Commodity
		if err := rows.Scan(
			&m.Code,
			&m.Name,
			&m.Symbol,
			&m.Fraction,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan commodity row", err)
		}
		result[m.Code] = mapping.ToDomainCommodity(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating commodity rows", err)
	}
	return result, nil
}

// ListCommodities retrieves all commodities ordered by code.
func (r *PgxCommodityRepository) ListCommodities(ctx context.Context) ([]domain.Commodity, error) {
	query := `SELECT ` + commodityColumns + ` FROM commodities ORDER BY code;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query commodities", err)
	}
	defer rows.Close()

	commodities := []domain.Commodity{}
	for rows.Next() {
		var m models.Commodity
		if err := rows.Scan(
			&m.Code,
			&m.Name,
			&m.Symbol,
			&m.Fraction,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan commodity row", err)
		}
		commodities = append(commodities, mapping.ToDomainCommodity(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating commodity rows", err)
	}
	return commodities, nil
}

// UpdateCommodity updates a commodity's fields. The service layer refuses
// fraction changes on referenced commodities before this is reached.
func (r *PgxCommodityRepository) UpdateCommodity(ctx context.Context, commodity domain.Commodity) error {
	m := mapping.ToModelCommodity(commodity)
	query := `
		UPDATE commodities
		SET name = $2,
		    symbol = $3,
		    fraction = $4,
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE code = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Code,
		m.Name,
		m.Symbol,
		m.Fraction,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update commodity "+m.Code, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// IsCommodityReferenced reports whether any account or transaction references
// the commodity.
func (r *PgxCommodityRepository) IsCommodityReferenced(ctx context.Context, code string) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM accounts WHERE commodity_code = $1)
		    OR EXISTS (SELECT 1 FROM transactions WHERE currency_code = $1);
	`
	var referenced bool
	if err := r.Pool.QueryRow(ctx, query, code).Scan(&referenced); err != nil {
		return false, apperrors.NewAppError(500, "failed to check references for commodity "+code, err)
	}
	return referenced, nil
}
