package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/DeveloperWK/product-inventory-api/internal/apperrors"
	"github.com/DeveloperWK/product-inventory-api/internal/core/domain"
	portsrepo "github.com/DeveloperWK/product-inventory-api/internal/core/ports/repositories"
	portssvc "github.com/DeveloperWK/product-inventory-api/internal/core/ports/services"
	"github.com/DeveloperWK/product-inventory-api/internal/core/services"
	"github.com/DeveloperWK/product-inventory-api/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, delta decimal.Decimal) error {
	args := m.Called(ctx, txn, delta)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, old, txn domain.Transaction, deltas map[string]decimal.Decimal) error {
	args := m.Called(ctx, old, txn, deltas)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) SaveTransfer(ctx context.Context, out domain.Transaction, in domain.Transaction) (*portsrepo.TransferResult, error) {
	args := m.Called(ctx, out, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portsrepo.TransferResult), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SummarizeByType(ctx context.Context, startDate, endDate *time.Time) ([]domain.CashFlowSummaryRow, error) {
	args := m.Called(ctx, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashFlowSummaryRow), args.Error(1)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.CashAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.CashAccount, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashAccount), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, filter portsrepo.AccountFilter) ([]domain.CashAccount, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashAccount), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.CashAccount, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.CashAccount), args.Error(1)
}

func (m *MockAccountRepository) ApplyBalanceDeltasInTx(ctx context.Context, tx pgx.Tx, deltas map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, deltas, userID, now)
	return args.Error(0)
}

// --- Test Suite ---
type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo     *MockTransactionRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.TransactionSvcFacade
	accountID       string
	userID          string
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewTransactionService(suite.mockTxnRepo, suite.mockAccountRepo)
	suite.accountID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *TransactionServiceTestSuite) TestPostTransaction_IncomeDeltaIsPositive() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		TxnType:       "income",
		Category:      "sales_revenue",
		Amount:        decimal.NewFromInt(1200),
		PaymentMethod: "cash",
		AccountID:     suite.accountID,
	}

	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.NewFromInt(1200))
	})).Return(nil).Once()

	txn, err := suite.service.PostTransaction(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.NotEmpty(txn.TransactionID)
	suite.Equal(domain.TxnIncome, txn.TxnType)
	suite.Equal(suite.userID, txn.CreatedBy)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestPostTransaction_ExpenseDeltaIsNegative() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		TxnType:       "expense",
		Category:      "inventory_purchase",
		Amount:        decimal.NewFromInt(300),
		PaymentMethod: "bank",
		AccountID:     suite.accountID,
	}

	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.NewFromInt(-300))
	})).Return(nil).Once()

	_, err := suite.service.PostTransaction(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestPostTransaction_RejectsTransferType() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		TxnType:       "transfer",
		Category:      "transfer",
		Amount:        decimal.NewFromInt(100),
		PaymentMethod: "bank",
		AccountID:     suite.accountID,
	}

	_, err := suite.service.PostTransaction(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestAmendTransaction_SameAccountAppliesNetDelta() {
	ctx := context.Background()
	existing := &domain.Transaction{
		TransactionID: uuid.NewString(),
		TxnType:       domain.TxnIncome,
		Category:      "sales_revenue",
		Amount:        decimal.NewFromInt(100),
		AccountID:     suite.accountID,
		PaymentMethod: "cash",
	}
	newAmount := decimal.NewFromInt(150)
	req := dto.UpdateTransactionRequest{Amount: &newAmount}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, existing.TransactionID).Return(existing, nil).Once()
	suite.mockTxnRepo.On("UpdateTransaction", ctx,
		mock.MatchedBy(func(old domain.Transaction) bool {
			// the committed snapshot the deltas were derived from travels down
			// so the repository can guard against concurrent changes
			return old.Amount.Equal(decimal.NewFromInt(100)) && old.AccountID == suite.accountID
		}),
		mock.AnythingOfType("domain.Transaction"),
		mock.MatchedBy(func(deltas map[string]decimal.Decimal) bool {
			return len(deltas) == 1 && deltas[suite.accountID].Equal(decimal.NewFromInt(50))
		})).Return(nil).Once()

	updated, err := suite.service.AmendTransaction(ctx, existing.TransactionID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(newAmount.Equal(updated.Amount))
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestAmendTransaction_MovedAccountReversesAndApplies() {
	ctx := context.Background()
	otherAccountID := uuid.NewString()
	existing := &domain.Transaction{
		TransactionID: uuid.NewString(),
		TxnType:       domain.TxnExpense,
		Category:      "rent",
		Amount:        decimal.NewFromInt(80),
		AccountID:     suite.accountID,
		PaymentMethod: "bank",
	}
	req := dto.UpdateTransactionRequest{AccountID: &otherAccountID}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, existing.TransactionID).Return(existing, nil).Once()
	suite.mockTxnRepo.On("UpdateTransaction", ctx, *existing, mock.AnythingOfType("domain.Transaction"), mock.MatchedBy(func(deltas map[string]decimal.Decimal) bool {
		// old account gets the expense reversed (+80), new account gets it applied (-80)
		return len(deltas) == 2 &&
			deltas[suite.accountID].Equal(decimal.NewFromInt(80)) &&
			deltas[otherAccountID].Equal(decimal.NewFromInt(-80))
	})).Return(nil).Once()

	_, err := suite.service.AmendTransaction(ctx, existing.TransactionID, req, suite.userID)

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestAmendTransaction_CategoryOnlyHasZeroDelta() {
	ctx := context.Background()
	existing := &domain.Transaction{
		TransactionID: uuid.NewString(),
		TxnType:       domain.TxnIncome,
		Category:      "sales_revenue",
		Amount:        decimal.NewFromInt(100),
		AccountID:     suite.accountID,
		PaymentMethod: "cash",
	}
	newCategory := "service_revenue"
	req := dto.UpdateTransactionRequest{Category: &newCategory}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, existing.TransactionID).Return(existing, nil).Once()
	suite.mockTxnRepo.On("UpdateTransaction", ctx, *existing, mock.AnythingOfType("domain.Transaction"), mock.MatchedBy(func(deltas map[string]decimal.Decimal) bool {
		return len(deltas) == 1 && deltas[suite.accountID].IsZero()
	})).Return(nil).Once()

	updated, err := suite.service.AmendTransaction(ctx, existing.TransactionID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(newCategory, updated.Category)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestAmendTransaction_TransferLegRejected() {
	ctx := context.Background()
	leg := &domain.Transaction{
		TransactionID: uuid.NewString(),
		TxnType:       domain.TxnTransfer,
		Amount:        decimal.NewFromInt(100),
		AccountID:     suite.accountID,
		TransferID:    uuid.NewString(),
		TransferOut:   true,
	}
	newCategory := "whatever"

	suite.mockTxnRepo.On("FindTransactionByID", ctx, leg.TransactionID).Return(leg, nil).Once()

	_, err := suite.service.AmendTransaction(ctx, leg.TransactionID, dto.UpdateTransactionRequest{Category: &newCategory}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "UpdateTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestAmendTransaction_ConcurrentChangeSurfacesTransient() {
	ctx := context.Background()
	existing := &domain.Transaction{
		TransactionID: uuid.NewString(),
		TxnType:       domain.TxnIncome,
		Category:      "sales_revenue",
		Amount:        decimal.NewFromInt(100),
		AccountID:     suite.accountID,
		PaymentMethod: "cash",
	}
	newAmount := decimal.NewFromInt(150)

	// The repository rejects a unit whose snapshot no longer matches the row,
	// so an amend racing another amend retries instead of applying a delta
	// computed against stale state.
	suite.mockTxnRepo.On("FindTransactionByID", ctx, existing.TransactionID).Return(existing, nil).Once()
	suite.mockTxnRepo.On("UpdateTransaction", ctx, *existing, mock.AnythingOfType("domain.Transaction"), mock.Anything).
		Return(apperrors.ErrTransient).Once()

	_, err := suite.service.AmendTransaction(ctx, existing.TransactionID, dto.UpdateTransactionRequest{Amount: &newAmount}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrTransient)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestRetractTransaction_DeletesExistingRow() {
	ctx := context.Background()
	existing := &domain.Transaction{
		TransactionID: uuid.NewString(),
		TxnType:       domain.TxnExpense,
		Amount:        decimal.NewFromInt(40),
		AccountID:     suite.accountID,
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, existing.TransactionID).Return(existing, nil).Once()
	suite.mockTxnRepo.On("DeleteTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.TransactionID == existing.TransactionID
	})).Return(nil).Once()

	err := suite.service.RetractTransaction(ctx, existing.TransactionID, suite.userID)

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestRetractTransaction_TransferLegRejected() {
	ctx := context.Background()
	leg := &domain.Transaction{
		TransactionID: uuid.NewString(),
		TxnType:       domain.TxnTransfer,
		Amount:        decimal.NewFromInt(100),
		AccountID:     suite.accountID,
		TransferID:    uuid.NewString(),
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, leg.TransactionID).Return(leg, nil).Once()

	err := suite.service.RetractTransaction(ctx, leg.TransactionID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "DeleteTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestSummarizeCashFlow_RejectsInvertedWindow() {
	ctx := context.Background()
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, -1, 0)

	_, err := suite.service.SummarizeCashFlow(ctx, dto.SummaryParams{StartDate: &start, EndDate: &end})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SummarizeByType", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestSummarizeCashFlow_PassesWindowThrough() {
	ctx := context.Background()
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	rows := []domain.CashFlowSummaryRow{
		{TxnType: domain.TxnIncome, TotalAmount: decimal.NewFromInt(900), Count: 3},
	}

	suite.mockTxnRepo.On("SummarizeByType", ctx, &start, &end).Return(rows, nil).Once()

	got, err := suite.service.SummarizeCashFlow(ctx, dto.SummaryParams{StartDate: &start, EndDate: &end})

	suite.Require().NoError(err)
	suite.Equal(rows, got)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
