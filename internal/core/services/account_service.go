package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/finchbooks/finch/internal/apperrors"
	"github.com/finchbooks/finch/internal/core/domain"
	portsrepo "github.com/finchbooks/finch/internal/core/ports/repositories"
	portssvc "github.com/finchbooks/finch/internal/core/ports/services"
	"github.com/finchbooks/finch/internal/dto"
	"github.com/finchbooks/finch/internal/middleware"
	"github.com/finchbooks/finch/internal/utils/hierarchy"
)

var (
	ErrAccountHasSplits = errors.New("account has splits and cannot be deleted")
	ErrAccountCycle     = errors.New("reparenting would create a cycle in the account tree")
)

// accountService manages the chart of accounts. The tree is acyclic, every
// non-ROOT account has exactly one parent, and an account's commodity and
// type are fixed at creation.
type accountService struct {
	accountRepo  portsrepo.AccountRepositoryFacade
	txnReader    portsrepo.TransactionReader
	commoditySvc portssvc.CommoditySvcFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, txnReader portsrepo.TransactionReader, commoditySvc portssvc.CommoditySvcFacade) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo:  accountRepo,
		txnReader:    txnReader,
		commoditySvc: commoditySvc,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount validates and persists a new account.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accountType := domain.AccountType(req.AccountType)
	if !accountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}
	if accountType == domain.Root {
		return nil, fmt.Errorf("%w: the ROOT account cannot be created through the API", apperrors.ErrValidation)
	}

	if _, err := s.commoditySvc.GetCommodityByCode(ctx, req.CommodityCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: commodity %q not found", apperrors.ErrValidation, req.CommodityCode)
		}
		return nil, err
	}

	if req.ParentAccountID != "" {
		if _, err := s.accountRepo.FindAccountByID(ctx, req.ParentAccountID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent account %s not found", apperrors.ErrValidation, req.ParentAccountID)
			}
			return nil, err
		}
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		Name:            req.Name,
		AccountType:     accountType,
		CommodityCode:   req.CommodityCode,
		ParentAccountID: req.ParentAccountID,
		Description:     req.Description,
		Hidden:          req.Hidden,
		Placeholder:     req.Placeholder,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("name", account.Name))
	return &account, nil
}

// GetAccountByID retrieves one account.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

// GetAccountsByIDs retrieves several accounts keyed by ID.
func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	return s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
}

// ListAccountTree returns the chart of accounts as a tree, name-ordered,
// hidden accounts filtered per the request.
func (s *accountService) ListAccountTree(ctx context.Context, params dto.ListAccountsParams) ([]dto.AccountTreeNode, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	byID := make(map[string]domain.Account, len(accounts))
	for _, acc := range accounts {
		byID[acc.AccountID] = acc
	}
	children := make(map[string][]domain.Account)
	var roots []domain.Account
	for _, acc := range accounts {
		if acc.AccountType == domain.Root {
			continue
		}
		if parent, ok := byID[acc.ParentAccountID]; ok && parent.AccountType != domain.Root {
			children[acc.ParentAccountID] = append(children[acc.ParentAccountID], acc)
		} else {
			roots = append(roots, acc)
		}
	}

	var build func(siblings []domain.Account) []dto.AccountTreeNode
	build = func(siblings []domain.Account) []dto.AccountTreeNode {
		visible := make([]domain.Account, 0, len(siblings))
		for _, acc := range siblings {
			if hierarchy.IsVisible(acc, params.ShowHidden) {
				visible = append(visible, acc)
			}
		}
		sort.SliceStable(visible, func(i, j int) bool {
			return visible[i].Name < visible[j].Name
		})
		nodes := make([]dto.AccountTreeNode, 0, len(visible))
		for _, acc := range visible {
			nodes = append(nodes, dto.AccountTreeNode{
				AccountResponse: dto.ToAccountResponse(acc),
				Children:        build(children[acc.AccountID]),
			})
		}
		return nodes
	}
	return build(roots), nil
}

// UpdateAccount applies mutable field changes. Commodity and type never
// change; reparenting is checked against the ancestor chain to keep the tree
// acyclic.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.Description != nil {
		account.Description = *req.Description
		updated = true
	}
	if req.Hidden != nil {
		account.Hidden = *req.Hidden
		updated = true
	}
	if req.Placeholder != nil {
		if *req.Placeholder && !account.Placeholder {
			hasSplits, err := s.txnReader.AccountHasSplits(ctx, accountID)
			if err != nil {
				return nil, fmt.Errorf("failed to check account splits: %w", err)
			}
			if hasSplits {
				return nil, fmt.Errorf("%w: account %s has splits and cannot become a placeholder", apperrors.ErrValidation, accountID)
			}
		}
		account.Placeholder = *req.Placeholder
		updated = true
	}
	if req.ParentAccountID != nil && *req.ParentAccountID != account.ParentAccountID {
		if err := s.checkNoCycle(ctx, accountID, *req.ParentAccountID); err != nil {
			return nil, err
		}
		account.ParentAccountID = *req.ParentAccountID
		updated = true
	}

	if !updated {
		return account, nil
	}

	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return account, nil
}

// checkNoCycle walks the proposed ancestor chain and rejects a reparent that
// would make the account its own ancestor.
func (s *accountService) checkNoCycle(ctx context.Context, accountID, newParentID string) error {
	current := newParentID
	for current != "" {
		if current == accountID {
			return fmt.Errorf("%w: account %s", ErrAccountCycle, accountID)
		}
		parent, err := s.accountRepo.FindAccountByID(ctx, current)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: parent account %s not found", apperrors.ErrValidation, current)
			}
			return err
		}
		current = parent.ParentAccountID
	}
	return nil
}

// DeleteAccount removes an account that owns no splits and has no children.
func (s *accountService) DeleteAccount(ctx context.Context, accountID string) error {
	hasSplits, err := s.txnReader.AccountHasSplits(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to check account splits: %w", err)
	}
	if hasSplits {
		return fmt.Errorf("%w: %s", ErrAccountHasSplits, accountID)
	}
	return s.accountRepo.DeleteAccount(ctx, accountID)
}
