package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/finchbooks/finch/internal/apperrors"
	"github.com/finchbooks/finch/internal/core/domain"
	portsrepo "github.com/finchbooks/finch/internal/core/ports/repositories"
	"github.com/finchbooks/finch/internal/models"
	"github.com/finchbooks/finch/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxExchangeRateRepository struct {
	BaseRepository
}

// newPgxExchangeRateRepository creates a new repository for authored rate quotes.
func newPgxExchangeRateRepository(pool *pgxpool.Pool) portsrepo.ExchangeRateRepository {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ExchangeRateRepository = (*PgxExchangeRateRepository)(nil)

const exchangeRateColumns = `
	exchange_rate_id, from_code, to_code, rate, date_effective,
	created_at, created_by, last_updated_at, last_updated_by
`

// SaveExchangeRate inserts a new rate quote.
func (r *PgxExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	m := mapping.ToModelExchangeRate(rate)
	query := `
		INSERT INTO exchange_rates (` + exchangeRateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ExchangeRateID,
		m.FromCode,
		m.ToCode,
		m.Rate,
		m.DateEffective,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert exchange rate "+m.ExchangeRateID, err)
	}
	return nil
}

// FindRate returns the latest quote from -> to effective on or before date.
func (r *PgxExchangeRateRepository) FindRate(ctx context.Context, fromCode, toCode string, onDate time.Time) (*domain.ExchangeRate, error) {
	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE from_code = $1 AND to_code = $2 AND date_effective <= $3
		ORDER BY date_effective DESC
		LIMIT 1;
	`
	row := r.Pool.QueryRow(ctx, query, fromCode, toCode, onDate)
	m, err := scanExchangeRate(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find rate "+fromCode+"->"+toCode, err)
	}

	rate := mapping.ToDomainExchangeRate(m)
	return &rate, nil
}

// ListExchangeRates retrieves all quotes for a pair, newest first.
func (r *PgxExchangeRateRepository) ListExchangeRates(ctx context.Context, fromCode, toCode string) ([]domain.ExchangeRate, error) {
	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE from_code = $1 AND to_code = $2
		ORDER BY date_effective DESC;
	`
	rows, err := r.Pool.Query(ctx, query, fromCode, toCode)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query rates "+fromCode+"->"+toCode, err)
	}
	defer rows.Close()

	rates := []domain.ExchangeRate{}
	for rows.Next() {
		m, err := scanExchangeRate(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan exchange rate row", err)
		}
		rates = append(rates, mapping.ToDomainExchangeRate(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating exchange rate rows", err)
	}
	return rates, nil
}

func scanExchangeRate(row pgx.Row) (models.ExchangeRate, error) {
	var m models.ExchangeRate
	err := row.Scan(
		&m.ExchangeRateID,
		&m.FromCode,
		&m.ToCode,
		&m.Rate,
		&m.DateEffective,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}
