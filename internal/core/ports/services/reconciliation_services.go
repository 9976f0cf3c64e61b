package services

import (
	"context"
	"time"

	"github.com/finchbooks/finch/internal/core/domain"
	"github.com/finchbooks/finch/internal/dto"
)

// ReconciliationSvcFacade drives the reconciliation workflow: one live
// session per account, splits toggled into a selection, completion only when
// the selection matches the statement balance exactly. Sessions are
// ephemeral; nothing is persisted until Complete succeeds.
type ReconciliationSvcFacade interface {
	StartSession(ctx context.Context, req dto.StartReconciliationRequest, userID string) (*dto.ReconciliationSessionResponse, error)
	GetSession(ctx context.Context, sessionID string) (*dto.ReconciliationSessionResponse, error)
	ToggleSplit(ctx context.Context, sessionID string, splitID string) (*dto.ReconciliationSessionResponse, error)
	SelectAllUnreconciled(ctx context.Context, sessionID string) (*dto.ReconciliationSessionResponse, error)
	Complete(ctx context.Context, sessionID string, userID string) error
	Cancel(ctx context.Context, sessionID string) error

	// RequiresOverrideWarning reports whether editing or deleting the given
	// splits should first be acknowledged by the user (any split cleared or
	// reconciled). It warns; it never blocks.
	RequiresOverrideWarning(splits []domain.Split) bool
}

// ExchangeRateSvcFacade is the rate-lookup collaborator: consulted by callers
// authoring cross-currency splits, never by the balance validator.
type ExchangeRateSvcFacade interface {
	CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error)
	RateFor(ctx context.Context, fromCode, toCode string, onDate time.Time) (*domain.ExchangeRate, error)
	ListExchangeRates(ctx context.Context, fromCode, toCode string) ([]domain.ExchangeRate, error)
}

// BankFeedSvcFacade is the bank-feed collaborator boundary: an external feed
// records reported balances, and reconciliation reads them to seed targets.
type BankFeedSvcFacade interface {
	RecordStatementBalance(ctx context.Context, accountID string, req dto.RecordStatementRequest, userID string) (*domain.StatementBalance, error)
	ReportedBalance(ctx context.Context, accountID string) (*domain.StatementBalance, error)
}
