package services_test

import (
	"context"
	"testing"

	"github.com/finchbooks/finch/internal/apperrors"
	"github.com/finchbooks/finch/internal/core/domain"
	portsrepo "github.com/finchbooks/finch/internal/core/ports/repositories"
	portssvc "github.com/finchbooks/finch/internal/core/ports/services"
	"github.com/finchbooks/finch/internal/core/services"
	"github.com/finchbooks/finch/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock CommodityRepository ---
type MockCommodityRepository struct {
	mock.Mock
}

var _ portsrepo.CommodityRepository = (*MockCommodityRepository)(nil)

func (m *MockCommodityRepository) SaveCommodity(ctx context.Context, commodity domain.Commodity) error {
	args := m.Called(ctx, commodity)
	return args.Error(0)
}

func (m *MockCommodityRepository) FindCommodityByCode(ctx context.Context, code string) (*domain.Commodity, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Commodity), args.Error(1)
}

func (m *MockCommodityRepository) FindCommoditiesByCodes(ctx context.Context, codes []string) (map[string]domain.Commodity, error) {
	args := m.Called(ctx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Commodity), args.Error(1)
}

func (m *MockCommodityRepository) ListCommodities(ctx context.Context) ([]domain.Commodity, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Commodity), args.Error(1)
}

func (m *MockCommodityRepository) UpdateCommodity(ctx context.Context, commodity domain.Commodity) error {
	args := m.Called(ctx, commodity)
	return args.Error(0)
}

func (m *MockCommodityRepository) IsCommodityReferenced(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

// --- Test Suite ---

type CommodityServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCommodityRepository
	service  portssvc.CommoditySvcFacade
	userID   string
}

func (suite *CommodityServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCommodityRepository)
	suite.service = services.NewCommodityService(suite.mockRepo)
	suite.userID = uuid.NewString()
}

// --- Test Cases ---

func (suite *CommodityServiceTestSuite) TestCreateCommodity_Success() {
	ctx := context.Background()
	req := dto.CreateCommodityRequest{Code: "USD", Name: "US Dollar", Symbol: "$", Fraction: 2}

	suite.mockRepo.On("SaveCommodity", ctx, mock.AnythingOfType("domain.Commodity")).Return(nil).Once()

	commodity, err := suite.service.CreateCommodity(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("USD", commodity.Code)
	suite.Equal(int32(2), commodity.Fraction)
	suite.Equal(suite.userID, commodity.CreatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CommodityServiceTestSuite) TestCreateCommodity_Duplicate() {
	ctx := context.Background()
	req := dto.CreateCommodityRequest{Code: "USD", Name: "US Dollar", Fraction: 2}

	suite.mockRepo.On("SaveCommodity", ctx, mock.AnythingOfType("domain.Commodity")).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateCommodity(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *CommodityServiceTestSuite) TestUpdateCommodity_FractionImmutableOnceReferenced() {
	ctx := context.Background()
	usd := domain.Commodity{Code: "USD", Name: "US Dollar", Fraction: 2}

	suite.mockRepo.On("FindCommodityByCode", ctx, "USD").Return(&usd, nil).Once()
	suite.mockRepo.On("IsCommodityReferenced", ctx, "USD").Return(true, nil).Once()

	newFraction := int32(3)
	_, err := suite.service.UpdateCommodity(ctx, "USD", dto.UpdateCommodityRequest{Fraction: &newFraction}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateCommodity", mock.Anything, mock.Anything)
}

func (suite *CommodityServiceTestSuite) TestUpdateCommodity_FractionChangeWhileUnreferenced() {
	ctx := context.Background()
	token := domain.Commodity{Code: "PTS", Name: "Points", Fraction: 0}

	suite.mockRepo.On("FindCommodityByCode", ctx, "PTS").Return(&token, nil).Once()
	suite.mockRepo.On("IsCommodityReferenced", ctx, "PTS").Return(false, nil).Once()
	suite.mockRepo.On("UpdateCommodity", ctx, mock.AnythingOfType("domain.Commodity")).Return(nil).Once()

	newFraction := int32(2)
	updated, err := suite.service.UpdateCommodity(ctx, "PTS", dto.UpdateCommodityRequest{Fraction: &newFraction}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(int32(2), updated.Fraction)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CommodityServiceTestSuite) TestUpdateCommodity_NameOnlySkipsReferenceCheck() {
	ctx := context.Background()
	usd := domain.Commodity{Code: "USD", Name: "US Dollar", Fraction: 2}

	suite.mockRepo.On("FindCommodityByCode", ctx, "USD").Return(&usd, nil).Once()
	suite.mockRepo.On("UpdateCommodity", ctx, mock.AnythingOfType("domain.Commodity")).Return(nil).Once()

	name := "United States Dollar"
	updated, err := suite.service.UpdateCommodity(ctx, "USD", dto.UpdateCommodityRequest{Name: &name}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(name, updated.Name)
	suite.mockRepo.AssertNotCalled(suite.T(), "IsCommodityReferenced", mock.Anything, mock.Anything)
}

func (suite *CommodityServiceTestSuite) TestGetCommodityByCode_NotFound() {
	ctx := context.Background()
	suite.mockRepo.On("FindCommodityByCode", ctx, "XYZ").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetCommodityByCode(ctx, "XYZ")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestCommodityService(t *testing.T) {
	suite.Run(t, new(CommodityServiceTestSuite))
}
