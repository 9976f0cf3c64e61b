package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finchbooks/finch/internal/apperrors"
	"github.com/finchbooks/finch/internal/core/domain"
	portsrepo "github.com/finchbooks/finch/internal/core/ports/repositories"
	portssvc "github.com/finchbooks/finch/internal/core/ports/services"
	"github.com/finchbooks/finch/internal/dto"
	"github.com/finchbooks/finch/internal/middleware"
)

// commodityService manages commodities. A commodity's fraction is immutable
// once any account or split references it; amounts already stored at that
// fraction must stay exactly representable.
type commodityService struct {
	commodityRepo portsrepo.CommodityRepository
}

// NewCommodityService creates a new CommodityService.
func NewCommodityService(commodityRepo portsrepo.CommodityRepository) portssvc.CommoditySvcFacade {
	return &commodityService{commodityRepo: commodityRepo}
}

var _ portssvc.CommoditySvcFacade = (*commodityService)(nil)

// CreateCommodity registers a new commodity.
func (s *commodityService) CreateCommodity(ctx context.Context, req dto.CreateCommodityRequest, creatorUserID string) (*domain.Commodity, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	commodity := domain.Commodity{
		Code:     req.Code,
		Name:     req.Name,
		Symbol:   req.Symbol,
		Fraction: req.Fraction,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.commodityRepo.SaveCommodity(ctx, commodity); err != nil {
		logger.Error("Failed to save commodity", slog.String("error", err.Error()), slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to save commodity: %w", err)
	}
	logger.Info("Commodity created", slog.String("code", commodity.Code), slog.Int("fraction", int(commodity.Fraction)))
	return &commodity, nil
}

// GetCommodityByCode retrieves one commodity.
func (s *commodityService) GetCommodityByCode(ctx context.Context, code string) (*domain.Commodity, error) {
	commodity, err := s.commodityRepo.FindCommodityByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to find commodity %s: %w", code, err)
	}
	return commodity, nil
}

// ListCommodities retrieves all commodities.
func (s *commodityService) ListCommodities(ctx context.Context) ([]domain.Commodity, error) {
	return s.commodityRepo.ListCommodities(ctx)
}

// UpdateCommodity applies display-field changes. Fraction changes are
// rejected once the commodity is referenced anywhere.
func (s *commodityService) UpdateCommodity(ctx context.Context, code string, req dto.UpdateCommodityRequest, userID string) (*domain.Commodity, error) {
	commodity, err := s.commodityRepo.FindCommodityByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		commodity.Name = *req.Name
		updated = true
	}
	if req.Symbol != nil {
		commodity.Symbol = *req.Symbol
		updated = true
	}
	if req.Fraction != nil && *req.Fraction != commodity.Fraction {
		referenced, err := s.commodityRepo.IsCommodityReferenced(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("failed to check commodity references: %w", err)
		}
		if referenced {
			return nil, fmt.Errorf("%w: commodity %s is referenced and its fraction is immutable", apperrors.ErrValidation, code)
		}
		commodity.Fraction = *req.Fraction
		updated = true
	}

	if !updated {
		return commodity, nil
	}

	commodity.LastUpdatedAt = time.Now().UTC()
	commodity.LastUpdatedBy = userID

	if err := s.commodityRepo.UpdateCommodity(ctx, *commodity); err != nil {
		return nil, fmt.Errorf("failed to update commodity: %w", err)
	}
	return commodity, nil
}
