package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/finchbooks/finch/internal/apperrors"
	"github.com/finchbooks/finch/internal/core/domain"
	portsrepo "github.com/finchbooks/finch/internal/core/ports/repositories"
	portssvc "github.com/finchbooks/finch/internal/core/ports/services"
	"github.com/finchbooks/finch/internal/dto"
	"github.com/finchbooks/finch/internal/middleware"
)

// session is one live reconciliation workflow for a single account. Sessions
// are purely in-memory: abandoning one writes nothing.
type session struct {
	sessionID       string
	accountID       string
	fraction        int32
	target          domain.Numeric
	priorReconciled domain.Numeric
	selected        map[string]domain.Numeric // split ID -> value
	startedAt       time.Time
}

func (s *session) selectedSum() domain.Numeric {
	sum := domain.ZeroNumeric(s.fraction)
	for _, v := range s.selected {
		sum = sum.Add(v)
	}
	return sum
}

// difference returns selectedSum + priorReconciled - target; zero means the
// session can complete.
func (s *session) difference() domain.Numeric {
	return s.selectedSum().Add(s.priorReconciled).Sub(s.target)
}

func (s *session) canComplete() bool {
	return s.difference().IsZero()
}

// reconciliationService drives reconciliation sessions. One live session per
// account: two sessions must never target overlapping splits concurrently,
// and holding the invariant here keeps every engine caller honest.
type reconciliationService struct {
	txnRepo      portsrepo.TransactionRepositoryFacade
	accountSvc   portssvc.AccountSvcFacade
	commoditySvc portssvc.CommoditySvcFacade
	bankFeedSvc  portssvc.BankFeedSvcFacade
	invalidator  portssvc.BalanceInvalidator

	mu        sync.Mutex
	byID      map[string]*session
	byAccount map[string]*session
}

// NewReconciliationService creates a new ReconciliationService.
func NewReconciliationService(txnRepo portsrepo.TransactionRepositoryFacade, accountSvc portssvc.AccountSvcFacade, commoditySvc portssvc.CommoditySvcFacade, bankFeedSvc portssvc.BankFeedSvcFacade, invalidator portssvc.BalanceInvalidator) portssvc.ReconciliationSvcFacade {
	return &reconciliationService{
		txnRepo:      txnRepo,
		accountSvc:   accountSvc,
		commoditySvc: commoditySvc,
		bankFeedSvc:  bankFeedSvc,
		invalidator:  invalidator,
		byID:         make(map[string]*session),
		byAccount:    make(map[string]*session),
	}
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

// RequiresOverrideWarning reports whether any of the splits is cleared or
// reconciled, meaning an edit should be acknowledged first.
func (s *reconciliationService) RequiresOverrideWarning(splits []domain.Split) bool {
	for _, sp := range splits {
		if sp.ReconcileState == domain.Cleared || sp.ReconcileState == domain.Reconciled {
			return true
		}
	}
	return false
}

// StartSession opens a session with an empty selection. The target comes
// from the request, or from the bank-feed collaborator's latest reported
// balance when the request omits it.
func (s *reconciliationService) StartSession(ctx context.Context, req dto.StartReconciliationRequest, userID string) (*dto.ReconciliationSessionResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountSvc.GetAccountByID(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	commodity, err := s.commoditySvc.GetCommodityByCode(ctx, account.CommodityCode)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch commodity %s: %w", account.CommodityCode, err)
	}

	var target domain.Numeric
	if req.TargetBalance != nil {
		target, err = domain.NewNumericFromDecimal(*req.TargetBalance, commodity.Fraction)
		if err != nil {
			return nil, fmt.Errorf("%w: target balance: %v", apperrors.ErrValidation, err)
		}
	} else {
		reported, err := s.bankFeedSvc.ReportedBalance(ctx, req.AccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: no target balance supplied and no reported balance on file for account %s", apperrors.ErrValidation, req.AccountID)
			}
			return nil, err
		}
		target = reported.Balance
	}

	prior, err := s.txnRepo.SumReconciledValue(ctx, req.AccountID, commodity.Fraction)
	if err != nil {
		return nil, fmt.Errorf("failed to compute prior reconciled balance: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.byAccount[req.AccountID]; ok {
		return nil, fmt.Errorf("%w: reconciliation session %s already open for account %s", apperrors.ErrDuplicate, existing.sessionID, req.AccountID)
	}

	sess := &session{
		sessionID:       uuid.NewString(),
		accountID:       req.AccountID,
		fraction:        commodity.Fraction,
		target:          target,
		priorReconciled: prior,
		selected:        make(map[string]domain.Numeric),
		startedAt:       time.Now().UTC(),
	}
	s.byID[sess.sessionID] = sess
	s.byAccount[sess.accountID] = sess

	logger.Info("Reconciliation session started",
		slog.String("session_id", sess.sessionID),
		slog.String("account_id", req.AccountID),
		slog.String("target", target.StringFixed()),
		slog.String("started_by", userID),
	)
	return s.toResponse(sess), nil
}

// GetSession returns the current state of a live session.
func (s *reconciliationService) GetSession(ctx context.Context, sessionID string) (*dto.ReconciliationSessionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.byID[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: reconciliation session %s", apperrors.ErrNotFound, sessionID)
	}
	return s.toResponse(sess), nil
}

// ToggleSplit adds or removes a split from the selection. Splits already in
// the terminal reconciled state may not be toggled.
func (s *reconciliationService) ToggleSplit(ctx context.Context, sessionID string, splitID string) (*dto.ReconciliationSessionResponse, error) {
	s.mu.Lock()
	sess, ok := s.byID[sessionID]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: reconciliation session %s", apperrors.ErrNotFound, sessionID)
	}

	splits, err := s.txnRepo.FindSplitsByIDs(ctx, []string{splitID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch split %s: %w", splitID, err)
	}
	split, ok := splits[splitID]
	if !ok {
		return nil, fmt.Errorf("%w: split %s", apperrors.ErrNotFound, splitID)
	}
	if split.AccountID != sess.accountID {
		return nil, fmt.Errorf("%w: split %s does not belong to account %s", apperrors.ErrValidation, splitID, sess.accountID)
	}
	if split.ReconcileState == domain.Reconciled {
		return nil, fmt.Errorf("%w: split %s", apperrors.ErrSplitAlreadyReconciled, splitID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// The session may have been completed or cancelled while the split was
	// being fetched; a toggle must not land on a dead session.
	if s.byID[sessionID] != sess {
		return nil, fmt.Errorf("%w: reconciliation session %s", apperrors.ErrNotFound, sessionID)
	}
	if _, selected := sess.selected[splitID]; selected {
		delete(sess.selected, splitID)
	} else {
		sess.selected[splitID] = split.Value
	}
	return s.toResponse(sess), nil
}

// SelectAllUnreconciled selects every eligible split of the session's
// account: equivalent to toggling each one on.
func (s *reconciliationService) SelectAllUnreconciled(ctx context.Context, sessionID string) (*dto.ReconciliationSessionResponse, error) {
	s.mu.Lock()
	sess, ok := s.byID[sessionID]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: reconciliation session %s", apperrors.ErrNotFound, sessionID)
	}

	splitsByAccount, err := s.txnRepo.FindSplitsByAccountIDs(ctx, []string{sess.accountID}, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch candidate splits: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.byID[sessionID] != sess {
		return nil, fmt.Errorf("%w: reconciliation session %s", apperrors.ErrNotFound, sessionID)
	}
	for _, sp := range splitsByAccount[sess.accountID] {
		if sp.ReconcileState == domain.Reconciled {
			continue
		}
		sess.selected[sp.SplitID] = sp.Value
	}
	return s.toResponse(sess), nil
}

// Complete atomically transitions every selected split to reconciled. The
// batch is all-or-nothing: if any split was concurrently reconciled by
// another writer, zero splits change state and the whole call fails.
func (s *reconciliationService) Complete(ctx context.Context, sessionID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	s.mu.Lock()
	sess, ok := s.byID[sessionID]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: reconciliation session %s", apperrors.ErrNotFound, sessionID)
	}
	// Snapshot the selection under the lock: ToggleSplit and
	// SelectAllUnreconciled mutate sess.selected concurrently.
	diff := sess.difference()
	splitIDs := make([]string, 0, len(sess.selected))
	for id := range sess.selected {
		splitIDs = append(splitIDs, id)
	}
	s.mu.Unlock()

	if !diff.IsZero() {
		return &apperrors.AmountMismatchError{Difference: diff.Decimal()}
	}

	if err := s.txnRepo.MarkSplitsReconciled(ctx, sess.accountID, splitIDs, userID, time.Now().UTC()); err != nil {
		logger.Warn("Reconciliation completion rejected",
			slog.String("session_id", sessionID),
			slog.String("account_id", sess.accountID),
			slog.String("error", err.Error()),
		)
		return err
	}
	s.invalidator.InvalidateBalances()

	s.mu.Lock()
	delete(s.byID, sess.sessionID)
	delete(s.byAccount, sess.accountID)
	s.mu.Unlock()

	logger.Info("Reconciliation completed",
		slog.String("session_id", sessionID),
		slog.String("account_id", sess.accountID),
		slog.Int("splits", len(splitIDs)),
	)
	return nil
}

// Cancel abandons a session with no persisted side effect.
func (s *reconciliationService) Cancel(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.byID[sessionID]
	if !ok {
		return fmt.Errorf("%w: reconciliation session %s", apperrors.ErrNotFound, sessionID)
	}
	delete(s.byID, sess.sessionID)
	delete(s.byAccount, sess.accountID)
	return nil
}

// toResponse snapshots a session. Callers must hold s.mu or own the session.
func (s *reconciliationService) toResponse(sess *session) *dto.ReconciliationSessionResponse {
	selectedIDs := make([]string, 0, len(sess.selected))
	for id := range sess.selected {
		selectedIDs = append(selectedIDs, id)
	}
	sort.Strings(selectedIDs)
	return &dto.ReconciliationSessionResponse{
		SessionID:        sess.sessionID,
		AccountID:        sess.accountID,
		TargetBalance:    sess.target.StringFixed(),
		PriorReconciled:  sess.priorReconciled.StringFixed(),
		SelectedSum:      sess.selectedSum().StringFixed(),
		Difference:       sess.difference().StringFixed(),
		CanComplete:      sess.canComplete(),
		SelectedSplitIDs: selectedIDs,
		StartedAt:        sess.startedAt,
	}
}
