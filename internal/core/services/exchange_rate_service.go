package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finchbooks/finch/internal/apperrors"
	"github.com/finchbooks/finch/internal/core/domain"
	portsrepo "github.com/finchbooks/finch/internal/core/ports/repositories"
	portssvc "github.com/finchbooks/finch/internal/core/ports/services"
	"github.com/finchbooks/finch/internal/dto"
)

// exchangeRateService manages authored rate quotes. It is the rate-lookup
// collaborator: callers authoring cross-currency splits consult it; the
// balance validator never does.
type exchangeRateService struct {
	rateRepo     portsrepo.ExchangeRateRepository
	commoditySvc portssvc.CommoditySvcFacade
}

// NewExchangeRateService creates a new ExchangeRateService.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepository, commoditySvc portssvc.CommoditySvcFacade) portssvc.ExchangeRateSvcFacade {
	return &exchangeRateService{
		rateRepo:     rateRepo,
		commoditySvc: commoditySvc,
	}
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

// CreateExchangeRate authors a new quote.
func (s *exchangeRateService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error) {
	if req.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}
	if req.FromCode == req.ToCode {
		return nil, fmt.Errorf("%w: from and to commodity codes cannot be the same", apperrors.ErrValidation)
	}

	for _, code := range []string{req.FromCode, req.ToCode} {
		if _, err := s.commoditySvc.GetCommodityByCode(ctx, code); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: commodity code %q not found", apperrors.ErrValidation, code)
			}
			return nil, fmt.Errorf("failed to validate commodity %q: %w", code, err)
		}
	}

	now := time.Now().UTC()
	rate := domain.ExchangeRate{
		ExchangeRateID: uuid.NewString(),
		FromCode:       req.FromCode,
		ToCode:         req.ToCode,
		Rate:           req.Rate,
		DateEffective:  req.DateEffective,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
		return nil, fmt.Errorf("failed to save exchange rate: %w", err)
	}
	return &rate, nil
}

// RateFor returns the latest quote from -> to effective on or before the date.
func (s *exchangeRateService) RateFor(ctx context.Context, fromCode, toCode string, onDate time.Time) (*domain.ExchangeRate, error) {
	rate, err := s.rateRepo.FindRate(ctx, fromCode, toCode, onDate)
	if err != nil {
		return nil, fmt.Errorf("failed to find rate %s->%s: %w", fromCode, toCode, err)
	}
	return rate, nil
}

// ListExchangeRates lists authored quotes for a commodity pair.
func (s *exchangeRateService) ListExchangeRates(ctx context.Context, fromCode, toCode string) ([]domain.ExchangeRate, error) {
	return s.rateRepo.ListExchangeRates(ctx, fromCode, toCode)
}
