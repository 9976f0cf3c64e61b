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

// --- Mock StatementRepository ---
type MockStatementRepository struct {
	mock.Mock
}

var _ portsrepo.StatementRepository = (*MockStatementRepository)(nil)

func (m *MockStatementRepository) UpsertStatementBalance(ctx context.Context, balance domain.StatementBalance) error {
	args := m.Called(ctx, balance)
	return args.Error(0)
}

func (m *MockStatementRepository) FindStatementBalance(ctx context.Context, accountID string) (*domain.StatementBalance, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StatementBalance), args.Error(1)
}

// --- Test Suite ---

type BankFeedServiceTestSuite struct {
	suite.Suite
	mockStatementRepo *MockStatementRepository
	mockAccountSvc    *MockAccountService
	mockCommoditySvc  *MockCommodityService
	service           portssvc.BankFeedSvcFacade
	usd               domain.Commodity
	checkingAccount   domain.Account
	userID            string
}

func (suite *BankFeedServiceTestSuite) SetupTest() {
	suite.mockStatementRepo = new(MockStatementRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.mockCommoditySvc = new(MockCommodityService)
	suite.service = services.NewBankFeedService(suite.mockStatementRepo, suite.mockAccountSvc, suite.mockCommoditySvc)

	suite.usd = domain.Commodity{Code: "USD", Name: "US Dollar", Fraction: 2}
	suite.checkingAccount = domain.Account{
		AccountID:     uuid.NewString(),
		Name:          "Checking",
		AccountType:   domain.Bank,
		CommodityCode: "USD",
	}
	suite.userID = uuid.NewString()
}

// --- Test Cases ---

func (suite *BankFeedServiceTestSuite) TestRecordStatementBalance_Success() {
	ctx := context.Background()
	req := dto.RecordStatementRequest{
		Balance:  decimal.RequireFromString("1250.75"),
		AsOfDate: time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
	}

	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.checkingAccount.AccountID).Return(&suite.checkingAccount, nil).Once()
	suite.mockCommoditySvc.On("GetCommodityByCode", ctx, "USD").Return(&suite.usd, nil).Once()

	var stored domain.StatementBalance
	suite.mockStatementRepo.On("UpsertStatementBalance", ctx, mock.AnythingOfType("domain.StatementBalance")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(domain.StatementBalance) }).
		Return(nil).Once()

	statement, err := suite.service.RecordStatementBalance(ctx, suite.checkingAccount.AccountID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("1250.75", statement.Balance.StringFixed())
	suite.Equal(suite.userID, statement.LastUpdatedBy)
	suite.Equal(int64(125075), stored.Balance.Num())
	suite.Equal(int64(100), stored.Balance.Denom())
	suite.mockStatementRepo.AssertExpectations(suite.T())
}

func (suite *BankFeedServiceTestSuite) TestRecordStatementBalance_TooPrecise() {
	ctx := context.Background()
	req := dto.RecordStatementRequest{
		Balance:  decimal.RequireFromString("1250.755"),
		AsOfDate: time.Now(),
	}

	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.checkingAccount.AccountID).Return(&suite.checkingAccount, nil).Once()
	suite.mockCommoditySvc.On("GetCommodityByCode", ctx, "USD").Return(&suite.usd, nil).Once()

	_, err := suite.service.RecordStatementBalance(ctx, suite.checkingAccount.AccountID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockStatementRepo.AssertNotCalled(suite.T(), "UpsertStatementBalance", mock.Anything, mock.Anything)
}

func (suite *BankFeedServiceTestSuite) TestRecordStatementBalance_UnknownAccount() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccountSvc.On("GetAccountByID", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.RecordStatementBalance(ctx, accountID, dto.RecordStatementRequest{Balance: decimal.NewFromInt(1)}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *BankFeedServiceTestSuite) TestReportedBalance() {
	ctx := context.Background()
	stored := &domain.StatementBalance{
		AccountID: suite.checkingAccount.AccountID,
		Balance:   mustNumeric("449.99", 2),
		AsOfDate:  time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
	}

	suite.mockStatementRepo.On("FindStatementBalance", ctx, suite.checkingAccount.AccountID).Return(stored, nil).Once()

	statement, err := suite.service.ReportedBalance(ctx, suite.checkingAccount.AccountID)

	suite.Require().NoError(err)
	suite.Equal("449.99", statement.Balance.StringFixed())
}

func (suite *BankFeedServiceTestSuite) TestReportedBalance_NotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockStatementRepo.On("FindStatementBalance", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ReportedBalance(ctx, accountID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestBankFeedService(t *testing.T) {
	suite.Run(t, new(BankFeedServiceTestSuite))
}
