package services_test

import (
	"context"
	"testing"

	"github.com/DeveloperWK/product-inventory-api/internal/apperrors"
	"github.com/DeveloperWK/product-inventory-api/internal/core/domain"
	portsrepo "github.com/DeveloperWK/product-inventory-api/internal/core/ports/repositories"
	portssvc "github.com/DeveloperWK/product-inventory-api/internal/core/ports/services"
	"github.com/DeveloperWK/product-inventory-api/internal/core/services"
	"github.com/DeveloperWK/product-inventory-api/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockTxnRepo     *MockTransactionRepository
	service         portssvc.AccountSvcFacade
	userID          string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo, suite.mockTxnRepo)
	suite.userID = uuid.NewString()
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Name:        "Main Till",
		AccountType: "cash",
		Balance:     decimal.NewFromInt(5000),
	}

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.CashAccount) bool {
		return a.Name == "Main Till" && a.IsActive && a.Currency == "BDT"
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.True(decimal.NewFromInt(5000).Equal(account.Balance))
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_UnknownTypeRejected() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Name: "X", AccountType: "crypto"}

	_, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_NegativeOpeningBalanceRejected() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Name: "X", AccountType: "bank", Balance: decimal.NewFromInt(-1)}

	_, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestTransferFunds_SameAccountRejected() {
	ctx := context.Background()
	accountID := uuid.NewString()
	req := dto.TransferRequest{FromAccount: accountID, ToAccount: accountID, Amount: decimal.NewFromInt(100)}

	_, err := suite.service.TransferFunds(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransfer", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestTransferFunds_NonPositiveAmountRejected() {
	ctx := context.Background()
	req := dto.TransferRequest{FromAccount: uuid.NewString(), ToAccount: uuid.NewString(), Amount: decimal.Zero}

	_, err := suite.service.TransferFunds(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransfer", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestTransferFunds_LegsSharePairIdentity() {
	ctx := context.Background()
	fromID := uuid.NewString()
	toID := uuid.NewString()
	req := dto.TransferRequest{FromAccount: fromID, ToAccount: toID, Amount: decimal.NewFromInt(400)}
	result := &portsrepo.TransferResult{
		NewSourceBalance: decimal.NewFromInt(600),
		NewTargetBalance: decimal.NewFromInt(900),
	}

	suite.mockTxnRepo.On("SaveTransfer", ctx,
		mock.MatchedBy(func(out domain.Transaction) bool {
			return out.TxnType == domain.TxnTransfer && out.TransferOut &&
				out.AccountID == fromID && out.TransferID != "" &&
				out.Amount.Equal(decimal.NewFromInt(400))
		}),
		mock.MatchedBy(func(in domain.Transaction) bool {
			return in.TxnType == domain.TxnTransfer && !in.TransferOut &&
				in.AccountID == toID && in.TransferID != ""
		}),
	).Return(result, nil).Once()

	resp, err := suite.service.TransferFunds(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(600).Equal(resp.NewSourceBalance))
	suite.True(decimal.NewFromInt(900).Equal(resp.NewTargetBalance))
	suite.mockTxnRepo.AssertExpectations(suite.T())

	// both legs carry the same transfer id
	call := suite.mockTxnRepo.Calls[0]
	out := call.Arguments.Get(1).(domain.Transaction)
	in := call.Arguments.Get(2).(domain.Transaction)
	suite.Equal(out.TransferID, in.TransferID)
	suite.NotEqual(out.TransactionID, in.TransactionID)
}

func (suite *AccountServiceTestSuite) TestTransferFunds_InsufficientFundsSurfaces() {
	ctx := context.Background()
	fromID := uuid.NewString()
	req := dto.TransferRequest{FromAccount: fromID, ToAccount: uuid.NewString(), Amount: decimal.NewFromInt(99999)}

	suite.mockTxnRepo.On("SaveTransfer", ctx, mock.Anything, mock.Anything).
		Return(nil, apperrors.NewInsufficientFunds(fromID)).Once()

	_, err := suite.service.TransferFunds(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.True(apperrors.IsInsufficientFunds(err))
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
