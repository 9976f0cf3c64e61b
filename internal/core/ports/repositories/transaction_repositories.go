package repositories

import (
	"context"
	"time"

	"github.com/finchbooks/finch/internal/core/domain"
)

// TransactionReader defines read operations for transaction and split data.
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction with all of its splits and
	// the version token it was read at.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Versioned[domain.Transaction], error)

	// ListTransactionsByAccountID retrieves a paginated ledger view of the
	// splits touching an account, newest post date first, using token-based
	// pagination. Returns the splits, a token for the next page, and an error.
	ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.AccountSplit, *string, error)

	// FindSplitsByAccountIDs retrieves every split of the given accounts with
	// a post date up to and including endDate, grouped by account ID.
	FindSplitsByAccountIDs(ctx context.Context, accountIDs []string, endDate time.Time) (map[string][]domain.AccountSplit, error)

	// FindSplitsByIDs retrieves specific splits by ID.
	FindSplitsByIDs(ctx context.Context, splitIDs []string) (map[string]domain.Split, error)

	// SumReconciledValue returns the exact sum of value over an account's
	// splits already in the reconciled state, at the given fraction.
	SumReconciledValue(ctx context.Context, accountID string, fraction int32) (domain.Numeric, error)

	// AccountHasSplits reports whether any split references the account.
	AccountHasSplits(ctx context.Context, accountID string) (bool, error)
}

// TransactionWriter defines write operations for transaction and split data.
// Every method is atomic: all splits of one transaction commit, or none.
type TransactionWriter interface {
	// SaveTransaction persists a new transaction with its splits and returns
	// the initial version token.
	SaveTransaction(ctx context.Context, txn domain.Transaction) (domain.VersionToken, error)

	// CommitTransactionUpdate replaces a transaction's header and splits iff
	// the stored version token still equals expected, re-checking inside the
	// storage transaction immediately before the write. Returns the new token,
	// or ErrStaleVersion without applying anything.
	CommitTransactionUpdate(ctx context.Context, txn domain.Transaction, expected domain.VersionToken) (domain.VersionToken, error)

	// DeleteTransaction removes a transaction and its splits iff the stored
	// version token still equals expected.
	DeleteTransaction(ctx context.Context, transactionID string, expected domain.VersionToken) error

	// MarkSplitsReconciled transitions every given split of the account to the
	// reconciled state in one storage transaction. If any split is missing or
	// already reconciled the whole batch is rolled back with
	// ErrPartialCompletion; zero splits change state.
	MarkSplitsReconciled(ctx context.Context, accountID string, splitIDs []string, userID string, now time.Time) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
