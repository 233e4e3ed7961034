package pgsql

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/DeveloperWK/product-inventory-api/internal/apperrors"
	"github.com/DeveloperWK/product-inventory-api/internal/core/domain"
	portsrepo "github.com/DeveloperWK/product-inventory-api/internal/core/ports/repositories"
)

type TransactionRepositoryTestSuite struct {
	suite.Suite
	pool        *pgxpool.Pool
	accountRepo portsrepo.AccountRepositoryFacade
	txnRepo     portsrepo.TransactionRepositoryFacade
	userID      string
}

func (s *TransactionRepositoryTestSuite) SetupTest() {
	s.pool = setupTestPool(s.T())
	s.accountRepo = newPgxAccountRepository(s.pool)
	s.txnRepo = newPgxTransactionRepository(s.pool, s.accountRepo)
	s.userID = uuid.NewString()
}

func (s *TransactionRepositoryTestSuite) createAccount(balance decimal.Decimal) domain.CashAccount {
	now := time.Now().UTC()
	account := domain.CashAccount{
		AccountID:   uuid.NewString(),
		Name:        "acct-" + uuid.NewString(),
		AccountType: domain.AccountCash,
		Balance:     balance,
		Currency:    "BDT",
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     s.userID,
			LastUpdatedAt: now,
			LastUpdatedBy: s.userID,
		},
	}
	s.Require().NoError(s.accountRepo.SaveAccount(context.Background(), account))
	return account
}

func (s *TransactionRepositoryTestSuite) balanceOf(accountID string) decimal.Decimal {
	account, err := s.accountRepo.FindAccountByID(context.Background(), accountID)
	s.Require().NoError(err)
	return account.Balance
}

func (s *TransactionRepositoryTestSuite) incomeTxn(accountID string, amount decimal.Decimal) domain.Transaction {
	now := time.Now().UTC()
	return domain.Transaction{
		TransactionID: uuid.NewString(),
		TxnType:       domain.TxnIncome,
		Category:      "sales_revenue",
		Amount:        amount,
		TxnDate:       now,
		PaymentMethod: "cash",
		AccountID:     accountID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     s.userID,
			LastUpdatedAt: now,
			LastUpdatedBy: s.userID,
		},
	}
}

func (s *TransactionRepositoryTestSuite) transferLegs(sourceID, targetID string, amount decimal.Decimal) (domain.Transaction, domain.Transaction) {
	transferID := uuid.NewString()
	out := s.incomeTxn(sourceID, amount)
	out.TxnType = domain.TxnTransfer
	out.Category = "transfer"
	out.TransferID = transferID
	out.TransferOut = true
	in := s.incomeTxn(targetID, amount)
	in.TxnType = domain.TxnTransfer
	in.Category = "transfer"
	in.TransferID = transferID
	return out, in
}

func (s *TransactionRepositoryTestSuite) TestPostThenRetractRestoresBalance() {
	ctx := context.Background()
	account := s.createAccount(decimal.NewFromInt(100))
	txn := s.incomeTxn(account.AccountID, decimal.NewFromInt(50))

	s.Require().NoError(s.txnRepo.SaveTransaction(ctx, txn, txn.Delta()))
	s.True(decimal.NewFromInt(150).Equal(s.balanceOf(account.AccountID)))

	s.Require().NoError(s.txnRepo.DeleteTransaction(ctx, txn))
	s.True(decimal.NewFromInt(100).Equal(s.balanceOf(account.AccountID)))

	_, err := s.txnRepo.FindTransactionByID(ctx, txn.TransactionID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *TransactionRepositoryTestSuite) TestTransferMovesFundsAtomically() {
	ctx := context.Background()
	source := s.createAccount(decimal.NewFromInt(100))
	target := s.createAccount(decimal.NewFromInt(20))
	out, in := s.transferLegs(source.AccountID, target.AccountID, decimal.NewFromInt(30))

	result, err := s.txnRepo.SaveTransfer(ctx, out, in)

	s.Require().NoError(err)
	s.True(decimal.NewFromInt(70).Equal(result.NewSourceBalance))
	s.True(decimal.NewFromInt(50).Equal(result.NewTargetBalance))
	s.True(decimal.NewFromInt(70).Equal(s.balanceOf(source.AccountID)))
	s.True(decimal.NewFromInt(50).Equal(s.balanceOf(target.AccountID)))

	outLeg, err := s.txnRepo.FindTransactionByID(ctx, out.TransactionID)
	s.Require().NoError(err)
	s.True(outLeg.TransferOut)
	s.Equal(out.TransferID, outLeg.TransferID)
}

func (s *TransactionRepositoryTestSuite) TestTransferRechecksFundsOnLockedBalance() {
	ctx := context.Background()
	source := s.createAccount(decimal.NewFromInt(100))
	target := s.createAccount(decimal.NewFromInt(20))
	out, in := s.transferLegs(source.AccountID, target.AccountID, decimal.NewFromInt(150))

	_, err := s.txnRepo.SaveTransfer(ctx, out, in)

	s.Require().Error(err)
	s.True(apperrors.IsInsufficientFunds(err))

	// Nothing of the rejected transfer may survive: no legs, no balance drift.
	s.True(decimal.NewFromInt(100).Equal(s.balanceOf(source.AccountID)))
	s.True(decimal.NewFromInt(20).Equal(s.balanceOf(target.AccountID)))
	_, err = s.txnRepo.FindTransactionByID(ctx, out.TransactionID)
	s.ErrorIs(err, apperrors.ErrNotFound)
	_, err = s.txnRepo.FindTransactionByID(ctx, in.TransactionID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *TransactionRepositoryTestSuite) TestAmendWithStaleSnapshotAborts() {
	ctx := context.Background()
	account := s.createAccount(decimal.NewFromInt(100))
	txn := s.incomeTxn(account.AccountID, decimal.NewFromInt(50))
	s.Require().NoError(s.txnRepo.SaveTransaction(ctx, txn, txn.Delta()))

	snapshot, err := s.txnRepo.FindTransactionByID(ctx, txn.TransactionID)
	s.Require().NoError(err)

	// First amend wins: 50 -> 70, net +20 on the account.
	first := *snapshot
	first.Amount = decimal.NewFromInt(70)
	s.Require().NoError(s.txnRepo.UpdateTransaction(ctx, *snapshot, first,
		map[string]decimal.Decimal{account.AccountID: decimal.NewFromInt(20)}))
	s.True(decimal.NewFromInt(170).Equal(s.balanceOf(account.AccountID)))

	// A second amend still holding the pre-amend snapshot derived its delta
	// from amount 50. Applying it against the amended row would corrupt the
	// balance, so the unit must abort instead.
	second := *snapshot
	second.Amount = decimal.NewFromInt(20)
	err = s.txnRepo.UpdateTransaction(ctx, *snapshot, second,
		map[string]decimal.Decimal{account.AccountID: decimal.NewFromInt(-30)})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrTransient)
	s.True(decimal.NewFromInt(170).Equal(s.balanceOf(account.AccountID)))
	current, err := s.txnRepo.FindTransactionByID(ctx, txn.TransactionID)
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(70).Equal(current.Amount))
}

func (s *TransactionRepositoryTestSuite) TestRetractWithStaleSnapshotAborts() {
	ctx := context.Background()
	account := s.createAccount(decimal.NewFromInt(100))
	txn := s.incomeTxn(account.AccountID, decimal.NewFromInt(50))
	s.Require().NoError(s.txnRepo.SaveTransaction(ctx, txn, txn.Delta()))

	snapshot, err := s.txnRepo.FindTransactionByID(ctx, txn.TransactionID)
	s.Require().NoError(err)

	amended := *snapshot
	amended.Amount = decimal.NewFromInt(70)
	s.Require().NoError(s.txnRepo.UpdateTransaction(ctx, *snapshot, amended,
		map[string]decimal.Decimal{account.AccountID: decimal.NewFromInt(20)}))

	// Retracting with the pre-amend snapshot would reverse a delta the row
	// no longer carries.
	err = s.txnRepo.DeleteTransaction(ctx, *snapshot)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrTransient)
	s.True(decimal.NewFromInt(170).Equal(s.balanceOf(account.AccountID)))
	_, err = s.txnRepo.FindTransactionByID(ctx, txn.TransactionID)
	s.Require().NoError(err)
}

func (s *TransactionRepositoryTestSuite) TestAmendVanishedRowIsNotFound() {
	ctx := context.Background()
	account := s.createAccount(decimal.NewFromInt(100))
	txn := s.incomeTxn(account.AccountID, decimal.NewFromInt(50))
	s.Require().NoError(s.txnRepo.SaveTransaction(ctx, txn, txn.Delta()))
	s.Require().NoError(s.txnRepo.DeleteTransaction(ctx, txn))

	amended := txn
	amended.Amount = decimal.NewFromInt(70)
	err := s.txnRepo.UpdateTransaction(ctx, txn, amended,
		map[string]decimal.Decimal{account.AccountID: decimal.NewFromInt(20)})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.True(decimal.NewFromInt(100).Equal(s.balanceOf(account.AccountID)))
}

func TestTransactionRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionRepositoryTestSuite))
}
