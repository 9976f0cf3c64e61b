package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finchbooks/finch/internal/apperrors"
	"github.com/finchbooks/finch/internal/core/domain"
	portsrepo "github.com/finchbooks/finch/internal/core/ports/repositories"
	portssvc "github.com/finchbooks/finch/internal/core/ports/services"
	"github.com/finchbooks/finch/internal/core/services"
	"github.com/finchbooks/finch/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

var _ portsrepo.ExchangeRateRepository = (*MockExchangeRateRepository)(nil)

func (m *MockExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) FindRate(ctx context.Context, fromCode, toCode string, onDate time.Time) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCode, toCode, onDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) ListExchangeRates(ctx context.Context, fromCode, toCode string) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCode, toCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

// --- Test Suite ---

type ExchangeRateServiceTestSuite struct {
	suite.Suite
	mockRateRepo     *MockExchangeRateRepository
	mockCommoditySvc *MockCommodityService
	service          portssvc.ExchangeRateSvcFacade
	usd              domain.Commodity
	eur              domain.Commodity
	userID           string
}

func (suite *ExchangeRateServiceTestSuite) SetupTest() {
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.mockCommoditySvc = new(MockCommodityService)
	suite.service = services.NewExchangeRateService(suite.mockRateRepo, suite.mockCommoditySvc)

	suite.usd = domain.Commodity{Code: "USD", Name: "US Dollar", Fraction: 2}
	suite.eur = domain.Commodity{Code: "EUR", Name: "Euro", Fraction: 2}
	suite.userID = uuid.NewString()
}

// --- Test Cases ---

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_Success() {
	ctx := context.Background()
	req := dto.CreateExchangeRateRequest{
		FromCode:      "USD",
		ToCode:        "EUR",
		Rate:          decimal.RequireFromString("0.925"),
		DateEffective: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}

	suite.mockCommoditySvc.On("GetCommodityByCode", ctx, "USD").Return(&suite.usd, nil).Once()
	suite.mockCommoditySvc.On("GetCommodityByCode", ctx, "EUR").Return(&suite.eur, nil).Once()
	suite.mockRateRepo.On("SaveExchangeRate", ctx, mock.AnythingOfType("domain.ExchangeRate")).Return(nil).Once()

	rate, err := suite.service.CreateExchangeRate(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(rate.ExchangeRateID)
	suite.Equal("USD", rate.FromCode)
	suite.True(rate.Rate.Equal(req.Rate))
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_NonPositiveRate() {
	ctx := context.Background()
	req := dto.CreateExchangeRateRequest{FromCode: "USD", ToCode: "EUR", Rate: decimal.Zero}

	_, err := suite.service.CreateExchangeRate(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "SaveExchangeRate", mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_SameCodes() {
	ctx := context.Background()
	req := dto.CreateExchangeRateRequest{FromCode: "USD", ToCode: "USD", Rate: decimal.NewFromInt(1)}

	_, err := suite.service.CreateExchangeRate(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_UnknownCommodity() {
	ctx := context.Background()
	req := dto.CreateExchangeRateRequest{FromCode: "USD", ToCode: "XYZ", Rate: decimal.NewFromInt(1)}

	suite.mockCommoditySvc.On("GetCommodityByCode", ctx, "USD").Return(&suite.usd, nil).Once()
	suite.mockCommoditySvc.On("GetCommodityByCode", ctx, "XYZ").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateExchangeRate(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "SaveExchangeRate", mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestRateFor() {
	ctx := context.Background()
	onDate := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	stored := &domain.ExchangeRate{
		ExchangeRateID: uuid.NewString(),
		FromCode:       "USD",
		ToCode:         "EUR",
		Rate:           decimal.RequireFromString("0.925"),
		DateEffective:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}

	suite.mockRateRepo.On("FindRate", ctx, "USD", "EUR", onDate).Return(stored, nil).Once()

	rate, err := suite.service.RateFor(ctx, "USD", "EUR", onDate)

	suite.Require().NoError(err)
	suite.Equal(stored.ExchangeRateID, rate.ExchangeRateID)
}

func (suite *ExchangeRateServiceTestSuite) TestRateFor_NotFound() {
	ctx := context.Background()
	onDate := time.Now()

	suite.mockRateRepo.On("FindRate", ctx, "USD", "JPY", onDate).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.RateFor(ctx, "USD", "JPY", onDate)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestExchangeRateService(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}
