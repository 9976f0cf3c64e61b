package services_test

import (
	"context"
	"errors"
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

func mustNumeric(s string, fraction int32) domain.Numeric {
	n, err := domain.NewNumericFromString(s, fraction)
	if err != nil {
		panic(err)
	}
	return n
}

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

// Ensure MockTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) (domain.VersionToken, error) {
	args := m.Called(ctx, txn)
	return args.Get(0).(domain.VersionToken), args.Error(1)
}

func (m *MockTransactionRepository) CommitTransactionUpdate(ctx context.Context, txn domain.Transaction, expected domain.VersionToken) (domain.VersionToken, error) {
	args := m.Called(ctx, txn, expected)
	return args.Get(0).(domain.VersionToken), args.Error(1)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string, expected domain.VersionToken) error {
	args := m.Called(ctx, transactionID, expected)
	return args.Error(0)
}

func (m *MockTransactionRepository) MarkSplitsReconciled(ctx context.Context, accountID string, splitIDs []string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, splitIDs, userID, now)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Versioned[domain.Transaction], error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Versioned[domain.Transaction]), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.AccountSplit, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.AccountSplit), returnedNextToken, args.Error(2)
}

func (m *MockTransactionRepository) FindSplitsByAccountIDs(ctx context.Context, accountIDs []string, endDate time.Time) (map[string][]domain.AccountSplit, error) {
	args := m.Called(ctx, accountIDs, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]domain.AccountSplit), args.Error(1)
}

func (m *MockTransactionRepository) FindSplitsByIDs(ctx context.Context, splitIDs []string) (map[string]domain.Split, error) {
	args := m.Called(ctx, splitIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Split), args.Error(1)
}

func (m *MockTransactionRepository) SumReconciledValue(ctx context.Context, accountID string, fraction int32) (domain.Numeric, error) {
	args := m.Called(ctx, accountID, fraction)
	return args.Get(0).(domain.Numeric), args.Error(1)
}

func (m *MockTransactionRepository) AccountHasSplits(ctx context.Context, accountID string) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}

// --- Mock AccountService (as consumed by collaborating services) ---
type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccountTree(ctx context.Context, params dto.ListAccountsParams) ([]dto.AccountTreeNode, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.AccountTreeNode), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeleteAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

// --- Mock CommodityService ---
type MockCommodityService struct {
	mock.Mock
}

var _ portssvc.CommoditySvcFacade = (*MockCommodityService)(nil)

func (m *MockCommodityService) CreateCommodity(ctx context.Context, req dto.CreateCommodityRequest, creatorUserID string) (*domain.Commodity, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Commodity), args.Error(1)
}

func (m *MockCommodityService) GetCommodityByCode(ctx context.Context, code string) (*domain.Commodity, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Commodity), args.Error(1)
}

func (m *MockCommodityService) ListCommodities(ctx context.Context) ([]domain.Commodity, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Commodity), args.Error(1)
}

func (m *MockCommodityService) UpdateCommodity(ctx context.Context, code string, req dto.UpdateCommodityRequest, userID string) (*domain.Commodity, error) {
	args := m.Called(ctx, code, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Commodity), args.Error(1)
}

// --- Mock BalanceInvalidator ---
type MockBalanceInvalidator struct {
	mock.Mock
}

var _ portssvc.BalanceInvalidator = (*MockBalanceInvalidator)(nil)

func (m *MockBalanceInvalidator) InvalidateBalances() {
	m.Called()
}

// --- Test Suite ---

type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo      *MockTransactionRepository
	mockAccountSvc   *MockAccountService
	mockCommoditySvc *MockCommodityService
	mockInvalidator  *MockBalanceInvalidator
	service          portssvc.TransactionSvcFacade
	usd              domain.Commodity
	eur              domain.Commodity
	checkingAccount  domain.Account
	expenseAccount   domain.Account
	eurAccount       domain.Account
	userID           string
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.mockCommoditySvc = new(MockCommodityService)
	suite.mockInvalidator = new(MockBalanceInvalidator)
	suite.service = services.NewTransactionService(suite.mockTxnRepo, suite.mockAccountSvc, suite.mockCommoditySvc, suite.mockInvalidator)

	suite.userID = uuid.NewString()
	suite.usd = domain.Commodity{Code: "USD", Name: "US Dollar", Fraction: 2}
	suite.eur = domain.Commodity{Code: "EUR", Name: "Euro", Fraction: 2}

	suite.checkingAccount = domain.Account{
		AccountID:     uuid.NewString(),
		Name:          "Checking",
		AccountType:   domain.Bank,
		CommodityCode: "USD",
	}
	suite.expenseAccount = domain.Account{
		AccountID:     uuid.NewString(),
		Name:          "Groceries",
		AccountType:   domain.Expense,
		CommodityCode: "USD",
	}
	suite.eurAccount = domain.Account{
		AccountID:     uuid.NewString(),
		Name:          "EUR Savings",
		AccountType:   domain.Bank,
		CommodityCode: "EUR",
	}
}

func (suite *TransactionServiceTestSuite) expectAccounts(ctx context.Context, accounts ...domain.Account) {
	ids := make([]string, len(accounts))
	byID := make(map[string]domain.Account, len(accounts))
	for i, acc := range accounts {
		ids[i] = acc.AccountID
		byID[acc.AccountID] = acc
	}
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, ids).Return(byID, nil).Once()
}

// --- Test Cases ---

func (suite *TransactionServiceTestSuite) TestCreateTransaction_Success() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		CurrencyCode: "USD",
		PostDate:     time.Date(2025, 6, 3, 15, 4, 5, 0, time.UTC),
		Description:  "Weekly groceries",
		Splits: []dto.CreateSplitRequest{
			{AccountID: suite.expenseAccount.AccountID, Value: decimal.RequireFromString("50.00")},
			{AccountID: suite.checkingAccount.AccountID, Value: decimal.RequireFromString("-50.00")},
		},
	}

	suite.expectAccounts(ctx, suite.expenseAccount, suite.checkingAccount)
	suite.mockCommoditySvc.On("GetCommodityByCode", ctx, "USD").Return(&suite.usd, nil).Once()

	token := domain.NewVersionToken(time.Now().UTC())
	var saved domain.Transaction
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Transaction) }).
		Return(token, nil).Once()
	suite.mockInvalidator.On("InvalidateBalances").Return().Once()

	resp, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.NotEmpty(resp.TransactionID)
	suite.Equal(token.String(), resp.Version)
	suite.Equal(time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC), resp.PostDate, "post date should be truncated to a calendar date")
	suite.Len(resp.Splits, 2)
	suite.Equal("50.00", resp.Splits[0].Value)
	suite.Equal(string(domain.NotReconciled), resp.Splits[0].ReconcileState)
	suite.False(resp.RequiresOverrideWarning)

	suite.True(saved.ValueSum(2).IsZero(), "persisted transaction must balance")
	suite.Equal(suite.userID, saved.CreatedBy)

	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockAccountSvc.AssertExpectations(suite.T())
	suite.mockCommoditySvc.AssertExpectations(suite.T())
	suite.mockInvalidator.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_Unbalanced() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		CurrencyCode: "USD",
		PostDate:     time.Now(),
		Description:  "Off by ten",
		Splits: []dto.CreateSplitRequest{
			{AccountID: suite.expenseAccount.AccountID, Value: decimal.RequireFromString("60.00")},
			{AccountID: suite.checkingAccount.AccountID, Value: decimal.RequireFromString("-50.00")},
		},
	}

	suite.expectAccounts(ctx, suite.expenseAccount, suite.checkingAccount)
	suite.mockCommoditySvc.On("GetCommodityByCode", ctx, "USD").Return(&suite.usd, nil).Once()

	_, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnbalanced)
	var unbalanced *apperrors.UnbalancedError
	suite.Require().True(errors.As(err, &unbalanced))
	suite.True(unbalanced.Difference.Equal(decimal.RequireFromString("10.00")))

	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
	suite.mockInvalidator.AssertNotCalled(suite.T(), "InvalidateBalances")
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_InsufficientSplits() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		CurrencyCode: "USD",
		PostDate:     time.Now(),
		Description:  "One-legged",
		Splits: []dto.CreateSplitRequest{
			{AccountID: suite.checkingAccount.AccountID, Value: decimal.Zero},
		},
	}

	suite.expectAccounts(ctx, suite.checkingAccount)
	suite.mockCommoditySvc.On("GetCommodityByCode", ctx, "USD").Return(&suite.usd, nil).Once()

	_, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientSplits)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_UnknownCurrency() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		CurrencyCode: "XYZ",
		PostDate:     time.Now(),
		Description:  "Bad currency",
		Splits: []dto.CreateSplitRequest{
			{AccountID: suite.expenseAccount.AccountID, Value: decimal.RequireFromString("50.00")},
			{AccountID: suite.checkingAccount.AccountID, Value: decimal.RequireFromString("-50.00")},
		},
	}

	suite.expectAccounts(ctx, suite.expenseAccount, suite.checkingAccount)
	suite.mockCommoditySvc.On("GetCommodityByCode", ctx, "XYZ").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_CrossCurrencyRequiresQuantity() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		CurrencyCode: "USD",
		PostDate:     time.Now(),
		Description:  "Transfer to EUR savings",
		Splits: []dto.CreateSplitRequest{
			{AccountID: suite.eurAccount.AccountID, Value: decimal.RequireFromString("100.00")}, // quantity missing
			{AccountID: suite.checkingAccount.AccountID, Value: decimal.RequireFromString("-100.00")},
		},
	}

	suite.expectAccounts(ctx, suite.eurAccount, suite.checkingAccount)
	suite.mockCommoditySvc.On("GetCommodityByCode", ctx, "USD").Return(&suite.usd, nil).Once()
	suite.mockCommoditySvc.On("GetCommodityByCode", ctx, "EUR").Return(&suite.eur, nil).Maybe()

	_, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_CrossCurrencySuccess() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		CurrencyCode: "USD",
		PostDate:     time.Now(),
		Description:  "Transfer to EUR savings",
		Splits: []dto.CreateSplitRequest{
			{AccountID: suite.eurAccount.AccountID, Value: decimal.RequireFromString("100.00"), Quantity: decimalPtr(decimal.RequireFromString("92.50"))},
			{AccountID: suite.checkingAccount.AccountID, Value: decimal.RequireFromString("-100.00")},
		},
	}

	suite.expectAccounts(ctx, suite.eurAccount, suite.checkingAccount)
	suite.mockCommoditySvc.On("GetCommodityByCode", ctx, "USD").Return(&suite.usd, nil).Once()
	suite.mockCommoditySvc.On("GetCommodityByCode", ctx, "EUR").Return(&suite.eur, nil).Once()

	token := domain.NewVersionToken(time.Now().UTC())
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(token, nil).Once()
	suite.mockInvalidator.On("InvalidateBalances").Return().Once()

	resp, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("100.00", resp.Splits[0].Value)
	suite.Equal("92.50", resp.Splits[0].Quantity)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) storedTransaction(reconcileState domain.ReconcileState) (*domain.Versioned[domain.Transaction], string) {
	txnID := uuid.NewString()
	enteredAt := time.Date(2025, 5, 1, 10, 30, 0, 123456789, time.UTC)
	stored := &domain.Versioned[domain.Transaction]{
		Value: domain.Transaction{
			TransactionID: txnID,
			CurrencyCode:  "USD",
			PostDate:      time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
			Description:   "Original",
			EnteredAt:     enteredAt,
			Splits: []domain.Split{
				{
					SplitID:        uuid.NewString(),
					TransactionID:  txnID,
					AccountID:      suite.expenseAccount.AccountID,
					Value:          mustNumeric("50.00", 2),
					Quantity:       mustNumeric("50.00", 2),
					ReconcileState: domain.NotReconciled,
				},
				{
					SplitID:        uuid.NewString(),
					TransactionID:  txnID,
					AccountID:      suite.checkingAccount.AccountID,
					Value:          mustNumeric("-50.00", 2),
					Quantity:       mustNumeric("-50.00", 2),
					ReconcileState: reconcileState,
				},
			},
			AuditFields: domain.AuditFields{
				CreatedAt: enteredAt,
				CreatedBy: suite.userID,
			},
		},
		Token: domain.NewVersionToken(time.Date(2025, 5, 1, 10, 30, 0, 123456789, time.UTC)),
	}
	return stored, txnID
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_PreservesReconcileState() {
	ctx := context.Background()
	stored, txnID := suite.storedTransaction(domain.Reconciled)
	keptSplitID := stored.Value.Splits[1].SplitID

	req := dto.UpdateTransactionRequest{
		Version:      stored.Token.String(),
		CurrencyCode: "USD",
		PostDate:     time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC),
		Description:  "Edited",
		Force:        true,
		Splits: []dto.CreateSplitRequest{
			{AccountID: suite.expenseAccount.AccountID, Value: decimal.RequireFromString("60.00")},
			{SplitID: keptSplitID, AccountID: suite.checkingAccount.AccountID, Value: decimal.RequireFromString("-60.00")},
		},
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txnID).Return(stored, nil).Once()
	suite.expectAccounts(ctx, suite.expenseAccount, suite.checkingAccount)
	suite.mockCommoditySvc.On("GetCommodityByCode", ctx, "USD").Return(&suite.usd, nil).Once()

	newToken := domain.NewVersionToken(time.Now().UTC())
	var committed domain.Transaction
	suite.mockTxnRepo.On("CommitTransactionUpdate", ctx, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("domain.VersionToken")).
		Run(func(args mock.Arguments) { committed = args.Get(1).(domain.Transaction) }).
		Return(newToken, nil).Once()
	suite.mockInvalidator.On("InvalidateBalances").Return().Once()

	resp, err := suite.service.UpdateTransaction(ctx, txnID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(newToken.String(), resp.Version)

	// The kept split keeps its reconcile state, the new one starts fresh.
	suite.Require().Len(committed.Splits, 2)
	suite.Equal(domain.NotReconciled, committed.Splits[0].ReconcileState)
	suite.Equal(domain.Reconciled, committed.Splits[1].ReconcileState)
	suite.True(committed.EnteredAt.Equal(stored.Value.EnteredAt), "EnteredAt is immutable across edits")
	suite.Equal(suite.userID, committed.LastUpdatedBy)

	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_StaleVersion() {
	ctx := context.Background()
	stored, txnID := suite.storedTransaction(domain.NotReconciled)

	staleToken := domain.NewVersionToken(stored.Token.Stamp().Add(-time.Hour))
	req := dto.UpdateTransactionRequest{
		Version:      staleToken.String(),
		CurrencyCode: "USD",
		PostDate:     time.Now(),
		Description:  "Edited",
		Splits: []dto.CreateSplitRequest{
			{AccountID: suite.expenseAccount.AccountID, Value: decimal.RequireFromString("60.00")},
			{AccountID: suite.checkingAccount.AccountID, Value: decimal.RequireFromString("-60.00")},
		},
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txnID).Return(stored, nil).Once()

	_, err := suite.service.UpdateTransaction(ctx, txnID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrStaleVersion)
	suite.mockAccountSvc.AssertNotCalled(suite.T(), "GetAccountsByIDs", mock.Anything, mock.Anything)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "CommitTransactionUpdate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_OverrideRequired() {
	ctx := context.Background()
	stored, txnID := suite.storedTransaction(domain.Cleared)

	req := dto.UpdateTransactionRequest{
		Version:      stored.Token.String(),
		CurrencyCode: "USD",
		PostDate:     time.Now(),
		Description:  "Edited without acknowledging",
		Splits: []dto.CreateSplitRequest{
			{AccountID: suite.expenseAccount.AccountID, Value: decimal.RequireFromString("60.00")},
			{AccountID: suite.checkingAccount.AccountID, Value: decimal.RequireFromString("-60.00")},
		},
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txnID).Return(stored, nil).Once()

	_, err := suite.service.UpdateTransaction(ctx, txnID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrOverrideRequired)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "CommitTransactionUpdate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_MalformedVersion() {
	ctx := context.Background()
	req := dto.UpdateTransactionRequest{Version: "garbage"}

	_, err := suite.service.UpdateTransaction(ctx, uuid.NewString(), req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "FindTransactionByID", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_Success() {
	ctx := context.Background()
	stored, txnID := suite.storedTransaction(domain.NotReconciled)

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txnID).Return(stored, nil).Once()
	suite.mockTxnRepo.On("DeleteTransaction", ctx, txnID, mock.AnythingOfType("domain.VersionToken")).Return(nil).Once()
	suite.mockInvalidator.On("InvalidateBalances").Return().Once()

	err := suite.service.DeleteTransaction(ctx, txnID, dto.DeleteTransactionRequest{Version: stored.Token.String()}, suite.userID)

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockInvalidator.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_LostCommitRace() {
	ctx := context.Background()
	stored, txnID := suite.storedTransaction(domain.NotReconciled)

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txnID).Return(stored, nil).Once()
	// The early check passed, but a concurrent writer got there first.
	suite.mockTxnRepo.On("DeleteTransaction", ctx, txnID, mock.AnythingOfType("domain.VersionToken")).Return(apperrors.ErrStaleVersion).Once()

	err := suite.service.DeleteTransaction(ctx, txnID, dto.DeleteTransactionRequest{Version: stored.Token.String()}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrStaleVersion)
	suite.mockInvalidator.AssertNotCalled(suite.T(), "InvalidateBalances")
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_OverrideRequired() {
	ctx := context.Background()
	stored, txnID := suite.storedTransaction(domain.Reconciled)

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txnID).Return(stored, nil).Once()

	err := suite.service.DeleteTransaction(ctx, txnID, dto.DeleteTransactionRequest{Version: stored.Token.String()}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrOverrideRequired)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "DeleteTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestListAccountLedger_DefaultLimit() {
	ctx := context.Background()
	accountID := suite.checkingAccount.AccountID

	suite.mockAccountSvc.On("GetAccountByID", ctx, accountID).Return(&suite.checkingAccount, nil).Once()

	line := domain.AccountSplit{
		Split: domain.Split{
			SplitID:        uuid.NewString(),
			TransactionID:  uuid.NewString(),
			AccountID:      accountID,
			Value:          mustNumeric("-50.00", 2),
			Quantity:       mustNumeric("-50.00", 2),
			ReconcileState: domain.NotReconciled,
		},
		PostDate:               time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		TransactionDescription: "Weekly groceries",
	}
	var nilToken *string
	suite.mockTxnRepo.On("ListTransactionsByAccountID", ctx, accountID, 50, nilToken).Return([]domain.AccountSplit{line}, "next-page", nil).Once()

	resp, err := suite.service.ListAccountLedger(ctx, accountID, dto.ListLedgerParams{})

	suite.Require().NoError(err)
	suite.Require().Len(resp.Lines, 1)
	suite.Equal("Weekly groceries", resp.Lines[0].TransactionDescription)
	suite.Equal("-50.00", resp.Lines[0].Value)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("next-page", *resp.NextToken)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func TestTransactionService(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
