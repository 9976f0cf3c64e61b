package services

import (
	"context"
	"fmt"
	"time"

	"github.com/finchbooks/finch/internal/apperrors"
	"github.com/finchbooks/finch/internal/core/domain"
	portsrepo "github.com/finchbooks/finch/internal/core/ports/repositories"
	portssvc "github.com/finchbooks/finch/internal/core/ports/services"
	"github.com/finchbooks/finch/internal/dto"
)

// bankFeedService is the bank-feed collaborator boundary. An external feed
// posts reported balances in; reconciliation reads the latest one per
// account to seed its target.
type bankFeedService struct {
	statementRepo portsrepo.StatementRepository
	accountSvc    portssvc.AccountSvcFacade
	commoditySvc  portssvc.CommoditySvcFacade
}

// NewBankFeedService creates a new BankFeedService.
func NewBankFeedService(statementRepo portsrepo.StatementRepository, accountSvc portssvc.AccountSvcFacade, commoditySvc portssvc.CommoditySvcFacade) portssvc.BankFeedSvcFacade {
	return &bankFeedService{
		statementRepo: statementRepo,
		accountSvc:    accountSvc,
		commoditySvc:  commoditySvc,
	}
}

var _ portssvc.BankFeedSvcFacade = (*bankFeedService)(nil)

// RecordStatementBalance stores the balance an external statement reports
// for an account, quantized to the account commodity's fraction.
func (s *bankFeedService) RecordStatementBalance(ctx context.Context, accountID string, req dto.RecordStatementRequest, userID string) (*domain.StatementBalance, error) {
	account, err := s.accountSvc.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	commodity, err := s.commoditySvc.GetCommodityByCode(ctx, account.CommodityCode)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch commodity %s: %w", account.CommodityCode, err)
	}

	balance, err := domain.NewNumericFromDecimal(req.Balance, commodity.Fraction)
	if err != nil {
		return nil, fmt.Errorf("%w: reported balance: %v", apperrors.ErrValidation, err)
	}

	now := time.Now().UTC()
	statement := domain.StatementBalance{
		AccountID: accountID,
		Balance:   balance,
		AsOfDate:  req.AsOfDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.statementRepo.UpsertStatementBalance(ctx, statement); err != nil {
		return nil, fmt.Errorf("failed to record statement balance: %w", err)
	}
	return &statement, nil
}

// ReportedBalance returns the latest reported balance for an account.
func (s *bankFeedService) ReportedBalance(ctx context.Context, accountID string) (*domain.StatementBalance, error) {
	statement, err := s.statementRepo.FindStatementBalance(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find reported balance for account %s: %w", accountID, err)
	}
	return statement, nil
}
