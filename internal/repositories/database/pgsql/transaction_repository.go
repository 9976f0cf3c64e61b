package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/finchbooks/finch/internal/apperrors"
	"github.com/finchbooks/finch/internal/core/domain"
	portsrepo "github.com/finchbooks/finch/internal/core/ports/repositories"
	"github.com/finchbooks/finch/internal/models"
	"github.com/finchbooks/finch/internal/utils/mapping"
	"github.com/finchbooks/finch/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for transaction and split data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const insertTransactionQuery = `
	INSERT INTO transactions (
		transaction_id, currency_code, post_date, description, reference_num,
		entered_at, version_stamp,
		created_at, created_by, last_updated_at, last_updated_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
`

const insertSplitQuery = `
	INSERT INTO splits (
		split_id, transaction_id, account_id,
		value_num, value_denom, quantity_num, quantity_denom,
		memo, action, reconcile_state
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
`

// SaveTransaction persists a new transaction and all of its splits within a DB
// transaction and returns the initial version token.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) (domain.VersionToken, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return domain.VersionToken{}, err
	}
	defer r.Rollback(ctx, tx) // Ignored once committed

	stamp := time.Now().UTC()
	modelTxn := mapping.ToModelTransaction(txn)

	_, err = tx.Exec(ctx, insertTransactionQuery,
		modelTxn.TransactionID,
		modelTxn.CurrencyCode,
		modelTxn.PostDate,
		modelTxn.Description,
		modelTxn.ReferenceNum,
		modelTxn.EnteredAt,
		stamp,
		modelTxn.CreatedAt,
		modelTxn.CreatedBy,
		modelTxn.LastUpdatedAt,
		modelTxn.LastUpdatedBy,
	)
	if err != nil {
		return domain.VersionToken{}, apperrors.NewAppError(500, "failed to insert transaction "+modelTxn.TransactionID, err)
	}

	if err := insertSplitsInTx(ctx, tx, txn.Splits); err != nil {
		return domain.VersionToken{}, apperrors.NewAppError(500, "failed to insert splits for transaction "+modelTxn.TransactionID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return domain.VersionToken{}, err
	}
	return domain.NewVersionToken(stamp), nil
}

// CommitTransactionUpdate replaces a transaction's header and splits, but only
// if the stored version stamp still equals the token the caller read. The
// stamp is re-checked under a row lock inside the DB transaction, so a
// concurrent writer that slipped in after the service-level check is still
// rejected.
func (r *PgxTransactionRepository) CommitTransactionUpdate(ctx context.Context, txn domain.Transaction, expected domain.VersionToken) (domain.VersionToken, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return domain.VersionToken{}, err
	}
	defer r.Rollback(ctx, tx)

	stored, err := lockVersionStamp(ctx, tx, txn.TransactionID)
	if err != nil {
		return domain.VersionToken{}, err
	}
	if err := domain.CheckVersion(stored, expected); err != nil {
		return domain.VersionToken{}, err
	}

	stamp := time.Now().UTC()
	modelTxn := mapping.ToModelTransaction(txn)

	// entered_at is deliberately not in the SET list; it never changes.
	updateQuery := `
		UPDATE transactions
		SET currency_code = $2,
		    post_date = $3,
		    description = $4,
		    reference_num = $5,
		    version_stamp = $6,
		    last_updated_at = $7,
		    last_updated_by = $8
		WHERE transaction_id = $1;
	`
	_, err = tx.Exec(ctx, updateQuery,
		modelTxn.TransactionID,
		modelTxn.CurrencyCode,
		modelTxn.PostDate,
		modelTxn.Description,
		modelTxn.ReferenceNum,
		stamp,
		modelTxn.LastUpdatedAt,
		modelTxn.LastUpdatedBy,
	)
	if err != nil {
		return domain.VersionToken{}, apperrors.NewAppError(500, "failed to update transaction "+modelTxn.TransactionID, err)
	}

	_, err = tx.Exec(ctx, `DELETE FROM splits WHERE transaction_id = $1;`, modelTxn.TransactionID)
	if err != nil {
		return domain.VersionToken{}, apperrors.NewAppError(500, "failed to clear splits for transaction "+modelTxn.TransactionID, err)
	}
	if err := insertSplitsInTx(ctx, tx, txn.Splits); err != nil {
		return domain.VersionToken{}, apperrors.NewAppError(500, "failed to insert splits for transaction "+modelTxn.TransactionID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return domain.VersionToken{}, err
	}
	return domain.NewVersionToken(stamp), nil
}

// DeleteTransaction removes a transaction and its splits, guarded by the same
// version re-check as updates.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string, expected domain.VersionToken) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	stored, err := lockVersionStamp(ctx, tx, transactionID)
	if err != nil {
		return err
	}
	if err := domain.CheckVersion(stored, expected); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM splits WHERE transaction_id = $1;`, transactionID); err != nil {
		return apperrors.NewAppError(500, "failed to delete splits for transaction "+transactionID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID); err != nil {
		return apperrors.NewAppError(500, "failed to delete transaction "+transactionID, err)
	}

	return r.Commit(ctx, tx)
}

// MarkSplitsReconciled transitions every given split of the account to the
// reconciled state. All-or-nothing: if any split is missing, belongs to a
// different account, or is already reconciled, the row count comes up short
// and the whole batch rolls back.
func (r *PgxTransactionRepository) MarkSplitsReconciled(ctx context.Context, accountID string, splitIDs []string, userID string, now time.Time) error {
	if len(splitIDs) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE splits
		SET reconcile_state = $1
		WHERE split_id = ANY($2)
		  AND account_id = $3
		  AND reconcile_state <> $1;
	`
	cmdTag, err := tx.Exec(ctx, query, string(domain.Reconciled), splitIDs, accountID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark splits reconciled for account "+accountID, err)
	}
	if cmdTag.RowsAffected() != int64(len(splitIDs)) {
		// Explicit rollback so the sentinel reaches the caller untouched.
		_ = r.Rollback(ctx, tx)
		return apperrors.ErrPartialCompletion
	}

	// Touch the parent transactions' audit trail without bumping their
	// version stamps: reconciling records state, it does not edit content.
	touchQuery := `
		UPDATE transactions
		SET last_updated_at = $1, last_updated_by = $2
		WHERE transaction_id IN (SELECT DISTINCT transaction_id FROM splits WHERE split_id = ANY($3));
	`
	if _, err := tx.Exec(ctx, touchQuery, now, userID, splitIDs); err != nil {
		return apperrors.NewAppError(500, "failed to touch transactions for reconciled splits", err)
	}

	return r.Commit(ctx, tx)
}

// FindTransactionByID retrieves a transaction with all of its splits and the
// version token it was read at.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Versioned[domain.Transaction], error) {
	query := `
		SELECT transaction_id, currency_code, post_date, description, reference_num,
		       entered_at, version_stamp,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM transactions
		WHERE transaction_id = $1;
	`
	var m models.Transaction
	err := r.Pool.QueryRow(ctx, query, transactionID).Scan(
		&m.TransactionID,
		&m.CurrencyCode,
		&m.PostDate,
		&m.Description,
		&m.ReferenceNum,
		&m.EnteredAt,
		&m.VersionStamp,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction by ID "+transactionID, err)
	}

	splits, err := r.findSplitsByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	txn := mapping.ToDomainTransaction(m)
	txn.Splits = splits
	return &domain.Versioned[domain.Transaction]{
		Value: txn,
		Token: domain.NewVersionToken(m.VersionStamp),
	}, nil
}

func (r *PgxTransactionRepository) findSplitsByTransactionID(ctx context.Context, transactionID string) ([]domain.Split, error) {
	query := `
		SELECT split_id, transaction_id, account_id,
		       value_num, value_denom, quantity_num, quantity_denom,
		       memo, action, reconcile_state
		FROM splits
		WHERE transaction_id = $1
		ORDER BY split_id;
	`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query splits for transaction "+transactionID, err)
	}
	defer rows.Close()

	splits := []domain.Split{}
	for rows.Next() {
		s, err := scanSplit(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan split row for transaction "+transactionID, err)
		}
		splits = append(splits, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating split rows for transaction "+transactionID, err)
	}
	return splits, nil
}

// ListTransactionsByAccountID retrieves a paginated ledger view of the splits
// touching an account, newest post date first, using token-based pagination.
func (r *PgxTransactionRepository) ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.AccountSplit, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to know whether there is a next page.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT s.split_id, s.transaction_id, s.account_id,
		       s.value_num, s.value_denom, s.quantity_num, s.quantity_denom,
		       s.memo, s.action, s.reconcile_state,
		       t.post_date, t.description, t.entered_at
		FROM splits s
		JOIN transactions t ON s.transaction_id = t.transaction_id
		WHERE s.account_id = $1
	`
	// Stable ordering: post_date DESC with entered_at DESC as tie-breaker.
	orderByClause := `ORDER BY t.post_date DESC, t.entered_at DESC, s.split_id`

	args := []interface{}{accountID}
	if nextToken != nil && *nextToken != "" {
		lastPostDate, lastEnteredAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		baseQuery += ` AND (t.post_date, t.entered_at) < ($2, $3)`
		args = append(args, lastPostDate, lastEnteredAt)
	}
	query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query ledger for account "+accountID, err)
	}
	defer rows.Close()

	type ledgerRow struct {
		split     domain.AccountSplit
		enteredAt time.Time
	}
	fetched := make([]ledgerRow, 0, fetchLimit)
	for rows.Next() {
		var m models.Split
		var postDate, enteredAt time.Time
		var description string
		if err := rows.Scan(
			&m.SplitID,
			&m.TransactionID,
			&m.AccountID,
			&m.ValueNum,
			&m.ValueDenom,
			&m.QuantityNum,
			&m.QuantityDenom,
			&m.Memo,
			&m.Action,
			&m.ReconcileState,
			&postDate,
			&description,
			&enteredAt,
		); err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan ledger row for account "+accountID, err)
		}
		s, err := mapping.ToDomainSplit(m)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to rebuild split "+m.SplitID, err)
		}
		fetched = append(fetched, ledgerRow{
			split: domain.AccountSplit{
				Split:                  s,
				PostDate:               postDate,
				TransactionDescription: description,
			},
			enteredAt: enteredAt,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating ledger rows for account "+accountID, err)
	}

	var nextTokenVal *string
	if len(fetched) > limit {
		last := fetched[limit-1]
		token := pagination.EncodeToken(last.split.PostDate, last.enteredAt)
		nextTokenVal = &token
		fetched = fetched[:limit]
	}

	results := make([]domain.AccountSplit, len(fetched))
	for i, row := range fetched {
		results[i] = row.split
	}
	return results, nextTokenVal, nil
}

// FindSplitsByAccountIDs retrieves every split of the given accounts with a
// post date up to and including endDate, grouped by account ID.
func (r *PgxTransactionRepository) FindSplitsByAccountIDs(ctx context.Context, accountIDs []string, endDate time.Time) (map[string][]domain.AccountSplit, error) {
	result := make(map[string][]domain.AccountSplit, len(accountIDs))
	for _, id := range accountIDs {
		result[id] = []domain.AccountSplit{}
	}
	if len(accountIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT s.split_id, s.transaction_id, s.account_id,
		       s.value_num, s.value_denom, s.quantity_num, s.quantity_denom,
		       s.memo, s.action, s.reconcile_state,
		       t.post_date, t.description
		FROM splits s
		JOIN transactions t ON s.transaction_id = t.transaction_id
		WHERE s.account_id = ANY($1) AND t.post_date <= $2
		ORDER BY s.account_id, t.post_date, t.entered_at;
	`
	rows, err := r.Pool.Query(ctx, query, accountIDs, endDate)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query splits for accounts", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.Split
		var postDate time.Time
		var description string
		if err := rows.Scan(
			&m.SplitID,
			&m.TransactionID,
			&m.AccountID,
			&m.ValueNum,
			&m.ValueDenom,
			&m.QuantityNum,
			&m.QuantityDenom,
			&m.Memo,
			&m.Action,
			&m.ReconcileState,
			&postDate,
			&description,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan split row during batch fetch", err)
		}
		s, err := mapping.ToDomainSplit(m)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to rebuild split "+m.SplitID, err)
		}
		result[s.AccountID] = append(result[s.AccountID], domain.AccountSplit{
			Split:                  s,
			PostDate:               postDate,
			TransactionDescription: description,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating split rows during batch fetch", err)
	}
	return result, nil
}

// FindSplitsByIDs retrieves specific splits by ID.
func (r *PgxTransactionRepository) FindSplitsByIDs(ctx context.Context, splitIDs []string) (map[string]domain.Split, error) {
	result := make(map[string]domain.Split, len(splitIDs))
	if len(splitIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT split_id, transaction_id, account_id,
		       value_num, value_denom, quantity_num, quantity_denom,
		       memo, action, reconcile_state
		FROM splits
		WHERE split_id = ANY($1);
	`
	rows, err := r.Pool.Query(ctx, query, splitIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query splits by IDs", err)
	}
	defer rows.Close()

	for rows.Next() {
		s, err := scanSplit(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan split row", err)
		}
		result[s.SplitID] = s
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating split rows", err)
	}
	return result, nil
}

// SumReconciledValue returns the exact sum of value over an account's splits
// already in the reconciled state. The rational pairs are summed in Go with
// Numeric.Add rather than rescaled in SQL: split denominators can be finer
// than the target fraction (a fraction-3 currency posting into a fraction-2
// account) and integer division would silently drop those values.
func (r *PgxTransactionRepository) SumReconciledValue(ctx context.Context, accountID string, fraction int32) (domain.Numeric, error) {
	query := `
		SELECT value_num, value_denom
		FROM splits
		WHERE account_id = $1 AND reconcile_state = $2;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, string(domain.Reconciled))
	if err != nil {
		return domain.Numeric{}, apperrors.NewAppError(500, "failed to sum reconciled splits for account "+accountID, err)
	}
	defer rows.Close()

	sum := domain.ZeroNumeric(fraction)
	for rows.Next() {
		var num, denom int64
		if err := rows.Scan(&num, &denom); err != nil {
			return domain.Numeric{}, apperrors.NewAppError(500, "failed to scan reconciled split value", err)
		}
		value, err := mapping.ToDomainNumeric(num, denom)
		if err != nil {
			return domain.Numeric{}, apperrors.NewAppError(500, "invalid reconciled split value for account "+accountID, err)
		}
		sum = sum.Add(value)
	}
	if err := rows.Err(); err != nil {
		return domain.Numeric{}, apperrors.NewAppError(500, "error iterating reconciled splits for account "+accountID, err)
	}
	return sum, nil
}

// AccountHasSplits reports whether any split references the account.
func (r *PgxTransactionRepository) AccountHasSplits(ctx context.Context, accountID string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM splits WHERE account_id = $1);`, accountID).Scan(&exists)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to check splits for account "+accountID, err)
	}
	return exists, nil
}

// lockVersionStamp reads a transaction's version stamp under FOR UPDATE so no
// concurrent writer can change it until the enclosing DB transaction ends.
func lockVersionStamp(ctx context.Context, tx pgx.Tx, transactionID string) (domain.VersionToken, error) {
	var stamp time.Time
	err := tx.QueryRow(ctx, `SELECT version_stamp FROM transactions WHERE transaction_id = $1 FOR UPDATE;`, transactionID).Scan(&stamp)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.VersionToken{}, apperrors.ErrNotFound
		}
		return domain.VersionToken{}, apperrors.NewAppError(500, "failed to lock transaction "+transactionID, err)
	}
	return domain.NewVersionToken(stamp), nil
}

// insertSplitsInTx batch-inserts splits inside an open DB transaction.
func insertSplitsInTx(ctx context.Context, tx pgx.Tx, splits []domain.Split) error {
	batch := &pgx.Batch{}
	for _, s := range splits {
		m := mapping.ToModelSplit(s)
		batch.Queue(insertSplitQuery,
			m.SplitID,
			m.TransactionID,
			m.AccountID,
			m.ValueNum,
			m.ValueDenom,
			m.QuantityNum,
			m.QuantityDenom,
			m.Memo,
			m.Action,
			m.ReconcileState,
		)
	}
	br := tx.SendBatch(ctx, batch)
	return br.Close()
}

func scanSplit(rows pgx.Rows) (domain.Split, error) {
	var m models.Split
	if err := rows.Scan(
		&m.SplitID,
		&m.TransactionID,
		&m.AccountID,
		&m.ValueNum,
		&m.ValueDenom,
		&m.QuantityNum,
		&m.QuantityDenom,
		&m.Memo,
		&m.Action,
		&m.ReconcileState,
	); err != nil {
		return domain.Split{}, err
	}
	return mapping.ToDomainSplit(m)
}
