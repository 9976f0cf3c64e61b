package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finchbooks/finch/internal/apperrors"
	"github.com/finchbooks/finch/internal/core/domain"
	portsrepo "github.com/finchbooks/finch/internal/core/ports/repositories"
	portssvc "github.com/finchbooks/finch/internal/core/ports/services"
	"github.com/finchbooks/finch/internal/dto"
	"github.com/finchbooks/finch/internal/middleware"
	"github.com/finchbooks/finch/internal/utils/accounting"
)

var (
	// ErrOverrideRequired means the stored transaction has cleared or
	// reconciled splits and the caller did not acknowledge the warning.
	ErrOverrideRequired = errors.New("transaction has reconciled splits, override acknowledgement required")
)

// transactionService provides the core transaction operations: build a
// proposed transaction from a request, validate the double-entry invariants,
// and commit through the repository under the optimistic version guard.
type transactionService struct {
	txnRepo      portsrepo.TransactionRepositoryFacade
	accountSvc   portssvc.AccountSvcFacade
	commoditySvc portssvc.CommoditySvcFacade
	invalidator  portssvc.BalanceInvalidator
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade, accountSvc portssvc.AccountSvcFacade, commoditySvc portssvc.CommoditySvcFacade, invalidator portssvc.BalanceInvalidator) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:      txnRepo,
		accountSvc:   accountSvc,
		commoditySvc: commoditySvc,
		invalidator:  invalidator,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// buildSplits converts request splits into domain splits with exact amounts.
// Quantity defaults to value for same-commodity accounts and is required for
// cross-currency splits; the caller captured the exchange rate itself.
func (s *transactionService) buildSplits(txnID, currencyCode string, currencyFraction int32, reqSplits []dto.CreateSplitRequest, accounts map[string]domain.Account, commodities map[string]domain.Commodity) ([]domain.Split, error) {
	splits := make([]domain.Split, len(reqSplits))
	for i, sr := range reqSplits {
		acc, ok := accounts[sr.AccountID]
		if !ok {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, sr.AccountID)
		}

		value, err := domain.NewNumericFromDecimal(sr.Value, currencyFraction)
		if err != nil {
			return nil, fmt.Errorf("%w: split value for account %s: %v", apperrors.ErrValidation, sr.AccountID, err)
		}

		var quantity domain.Numeric
		if acc.CommodityCode == currencyCode {
			if sr.Quantity != nil && !sr.Quantity.Equal(sr.Value) {
				return nil, fmt.Errorf("%w: quantity must equal value for same-currency split on account %s", apperrors.ErrValidation, sr.AccountID)
			}
			quantity = value
		} else {
			if sr.Quantity == nil {
				return nil, fmt.Errorf("%w: quantity required for cross-currency split on account %s (%s vs %s)", apperrors.ErrValidation, sr.AccountID, acc.CommodityCode, currencyCode)
			}
			com, ok := commodities[acc.CommodityCode]
			if !ok {
				return nil, fmt.Errorf("%w: commodity %s", apperrors.ErrNotFound, acc.CommodityCode)
			}
			quantity, err = domain.NewNumericFromDecimal(*sr.Quantity, com.Fraction)
			if err != nil {
				return nil, fmt.Errorf("%w: split quantity for account %s: %v", apperrors.ErrValidation, sr.AccountID, err)
			}
		}

		splitID := sr.SplitID
		if splitID == "" {
			splitID = uuid.NewString()
		}
		splits[i] = domain.Split{
			SplitID:        splitID,
			TransactionID:  txnID,
			AccountID:      sr.AccountID,
			Value:          value,
			Quantity:       quantity,
			Memo:           sr.Memo,
			Action:         sr.Action,
			ReconcileState: domain.NotReconciled,
		}
	}
	return splits, nil
}

// loadReferences fetches the accounts and commodities a proposed split set
// needs, including the transaction currency itself.
func (s *transactionService) loadReferences(ctx context.Context, currencyCode string, reqSplits []dto.CreateSplitRequest) (map[string]domain.Account, map[string]domain.Commodity, *domain.Commodity, error) {
	accountIDs := make([]string, 0, len(reqSplits))
	seen := make(map[string]struct{}, len(reqSplits))
	for _, sr := range reqSplits {
		if _, ok := seen[sr.AccountID]; !ok {
			seen[sr.AccountID] = struct{}{}
			accountIDs = append(accountIDs, sr.AccountID)
		}
	}

	accounts, err := s.accountSvc.GetAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range accountIDs {
		if _, ok := accounts[id]; !ok {
			return nil, nil, nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
	}

	currency, err := s.commoditySvc.GetCommodityByCode(ctx, currencyCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, nil, fmt.Errorf("%w: transaction currency %s not found", apperrors.ErrValidation, currencyCode)
		}
		return nil, nil, nil, fmt.Errorf("failed to fetch transaction currency %s: %w", currencyCode, err)
	}

	commodities := map[string]domain.Commodity{currency.Code: *currency}
	for _, acc := range accounts {
		if _, ok := commodities[acc.CommodityCode]; ok {
			continue
		}
		com, err := s.commoditySvc.GetCommodityByCode(ctx, acc.CommodityCode)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to fetch commodity %s: %w", acc.CommodityCode, err)
		}
		commodities[com.Code] = *com
	}

	return accounts, commodities, currency, nil
}

// CreateTransaction validates and persists a new transaction. The full
// proposed split set is validated before any persistence call.
func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*dto.TransactionResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, commodities, currency, err := s.loadReferences(ctx, req.CurrencyCode, req.Splits)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txnID := uuid.NewString()

	splits, err := s.buildSplits(txnID, currency.Code, currency.Fraction, req.Splits, accounts, commodities)
	if err != nil {
		return nil, err
	}

	txn := domain.Transaction{
		TransactionID: txnID,
		CurrencyCode:  currency.Code,
		PostDate:      truncateToDate(req.PostDate),
		Description:   req.Description,
		ReferenceNum:  req.ReferenceNum,
		EnteredAt:     now,
		Splits:        splits,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := accounting.ValidateTransaction(txn, accounts, currency.Fraction); err != nil {
		return nil, err
	}

	token, err := s.txnRepo.SaveTransaction(ctx, txn)
	if err != nil {
		logger.Error("Failed to save transaction", slog.String("error", err.Error()), slog.String("transaction_id", txnID))
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}
	s.invalidator.InvalidateBalances()

	logger.Info("Transaction created", slog.String("transaction_id", txnID), slog.Int("splits", len(splits)))
	resp := dto.ToTransactionResponse(domain.Versioned[domain.Transaction]{Value: txn, Token: token})
	return &resp, nil
}

// GetTransactionByID retrieves a transaction with its splits and version token.
func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*dto.TransactionResponse, error) {
	stored, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	resp := dto.ToTransactionResponse(*stored)
	return &resp, nil
}

// UpdateTransaction replaces a transaction's header and splits under the
// optimistic version guard. The guard runs twice: an early check here to fail
// fast, and a final check inside the repository's storage transaction
// immediately before the write, where it is authoritative.
func (s *transactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, userID string) (*dto.TransactionResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	supplied, err := domain.ParseVersionToken(req.Version)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed version token", apperrors.ErrValidation)
	}

	stored, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}

	if err := domain.CheckVersion(stored.Token, supplied); err != nil {
		logger.Warn("Stale transaction update rejected", slog.String("transaction_id", transactionID))
		return nil, err
	}

	if stored.Value.HasReconciledSplits() && !req.Force {
		return nil, ErrOverrideRequired
	}

	accounts, commodities, currency, err := s.loadReferences(ctx, req.CurrencyCode, req.Splits)
	if err != nil {
		return nil, err
	}

	splits, err := s.buildSplits(transactionID, currency.Code, currency.Fraction, req.Splits, accounts, commodities)
	if err != nil {
		return nil, err
	}

	// A kept split (same ID) retains its reconcile state across the edit.
	storedStates := make(map[string]domain.ReconcileState, len(stored.Value.Splits))
	for _, sp := range stored.Value.Splits {
		storedStates[sp.SplitID] = sp.ReconcileState
	}
	for i := range splits {
		if state, ok := storedStates[splits[i].SplitID]; ok {
			splits[i].ReconcileState = state
		}
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID: transactionID,
		CurrencyCode:  currency.Code,
		PostDate:      truncateToDate(req.PostDate),
		Description:   req.Description,
		ReferenceNum:  req.ReferenceNum,
		EnteredAt:     stored.Value.EnteredAt, // immutable creation metadata
		Splits:        splits,
		AuditFields: domain.AuditFields{
			CreatedAt:     stored.Value.CreatedAt,
			CreatedBy:     stored.Value.CreatedBy,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := accounting.ValidateTransaction(txn, accounts, currency.Fraction); err != nil {
		return nil, err
	}

	token, err := s.txnRepo.CommitTransactionUpdate(ctx, txn, supplied)
	if err != nil {
		if errors.Is(err, apperrors.ErrStaleVersion) {
			logger.Warn("Transaction update lost the commit race", slog.String("transaction_id", transactionID))
			return nil, err
		}
		logger.Error("Failed to commit transaction update", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	s.invalidator.InvalidateBalances()

	logger.Info("Transaction updated", slog.String("transaction_id", transactionID))
	resp := dto.ToTransactionResponse(domain.Versioned[domain.Transaction]{Value: txn, Token: token})
	return &resp, nil
}

// DeleteTransaction removes a transaction and its splits under the version guard.
func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID string, req dto.DeleteTransactionRequest, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	supplied, err := domain.ParseVersionToken(req.Version)
	if err != nil {
		return fmt.Errorf("%w: malformed version token", apperrors.ErrValidation)
	}

	stored, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	if err := domain.CheckVersion(stored.Token, supplied); err != nil {
		return err
	}
	if stored.Value.HasReconciledSplits() && !req.Force {
		return ErrOverrideRequired
	}

	if err := s.txnRepo.DeleteTransaction(ctx, transactionID, supplied); err != nil {
		if errors.Is(err, apperrors.ErrStaleVersion) {
			return err
		}
		logger.Error("Failed to delete transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	s.invalidator.InvalidateBalances()

	logger.Info("Transaction deleted", slog.String("transaction_id", transactionID), slog.String("deleted_by", userID))
	return nil
}

// ListAccountLedger returns a paginated ledger view of an account's splits.
func (s *transactionService) ListAccountLedger(ctx context.Context, accountID string, params dto.ListLedgerParams) (*dto.ListLedgerResponse, error) {
	if _, err := s.accountSvc.GetAccountByID(ctx, accountID); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}

	splits, nextToken, err := s.txnRepo.ListTransactionsByAccountID(ctx, accountID, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list account ledger: %w", err)
	}

	return &dto.ListLedgerResponse{
		Lines:     dto.ToLedgerLineResponses(splits),
		NextToken: nextToken,
	}, nil
}

// truncateToDate strips the time component; post dates are calendar dates.
func truncateToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
