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

type PgxStatementRepository struct {
	BaseRepository
}

// newPgxStatementRepository creates a new repository for externally reported balances.
func newPgxStatementRepository(pool *pgxpool.Pool) portsrepo.StatementRepository {
	return &PgxStatementRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.StatementRepository = (*PgxStatementRepository)(nil)

// UpsertStatementBalance stores the latest reported balance for an account,
// one row per account.
func (r *PgxStatementRepository) UpsertStatementBalance(ctx context.Context, balance domain.StatementBalance) error {
	query := `
		INSERT INTO statement_balances (account_id, balance_num, balance_denom, as_of_date, reported_at, reported_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (account_id) DO UPDATE SET
			balance_num = EXCLUDED.balance_num,
			balance_denom = EXCLUDED.balance_denom,
			as_of_date = EXCLUDED.as_of_date,
			reported_at = EXCLUDED.reported_at,
			reported_by = EXCLUDED.reported_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		balance.AccountID,
		balance.Balance.Num(),
		balance.Balance.Denom(),
		balance.AsOfDate,
		balance.LastUpdatedAt,
		balance.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to upsert statement balance for account "+balance.AccountID, err)
	}
	return nil
}

// FindStatementBalance retrieves the latest reported balance for an account.
func (r *PgxStatementRepository) FindStatementBalance(ctx context.Context, accountID string) (*domain.StatementBalance, error) {
	query := `
		SELECT account_id, balance_num, balance_denom, as_of_date, reported_at, reported_by
		FROM statement_balances
		WHERE account_id = $1;
	`
	var m models.StatementBalance
	err := r.Pool.QueryRow(ctx, query, accountID).Scan(
		&m.AccountID,
		&m.BalanceNum,
		&m.BalanceDenom,
		&m.AsOfDate,
		&m.ReportedAt,
		&m.ReportedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find statement balance for account "+accountID, err)
	}

	balance, err := mapping.ToDomainNumeric(m.BalanceNum, m.BalanceDenom)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to rebuild statement balance for account "+accountID, err)
	}
	return &domain.StatementBalance{
		AccountID: m.AccountID,
		Balance:   balance,
		AsOfDate:  m.AsOfDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.ReportedAt,
			CreatedBy:     m.ReportedBy,
			LastUpdatedAt: m.ReportedAt,
			LastUpdatedBy: m.ReportedBy,
		},
	}, nil
}
