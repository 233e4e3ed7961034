package dto

import (
	"github.com/DeveloperWK/product-inventory-api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest is the payload for creating a cash account.
type CreateAccountRequest struct {
	Name          string          `json:"name" binding:"required"`
	AccountType   string          `json:"type" binding:"required,oneof=bank cash mobile"`
	Balance       decimal.Decimal `json:"balance"`
	Currency      string          `json:"currency,omitempty"`
	AccountNumber string          `json:"accountNumber,omitempty"`
	Institution   string          `json:"institution,omitempty"`
}

// ListAccountsParams carries the read-side account filters.
type ListAccountsParams struct {
	AccountType string `form:"type"`
	IsActive    *bool  `form:"isActive"`
}

// TransferRequest moves funds between two distinct cash accounts.
type TransferRequest struct {
	FromAccount string          `json:"fromAccount" binding:"required"`
	ToAccount   string          `json:"toAccount" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required,dpositive"`
	Description string          `json:"description,omitempty"`
}

// TransferResponse reports the post-transfer balances of both accounts.
type TransferResponse struct {
	NewSourceBalance decimal.Decimal `json:"newSourceBalance"`
	NewTargetBalance decimal.Decimal `json:"newTargetBalance"`
}

// AccountResponse is the wire representation of a cash account.
type AccountResponse struct {
	AccountID     string          `json:"accountID"`
	Name          string          `json:"name"`
	AccountType   string          `json:"type"`
	Balance       decimal.Decimal `json:"balance"`
	Currency      string          `json:"currency"`
	AccountNumber string          `json:"accountNumber,omitempty"`
	Institution   string          `json:"institution,omitempty"`
	IsActive      bool            `json:"isActive"`
}

// BalanceResponse is the slim balance read projection.
type BalanceResponse struct {
	AccountID string          `json:"accountID"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
	Currency  string          `json:"currency"`
}

// ToAccountResponse converts a domain.CashAccount to its wire form.
func ToAccountResponse(a *domain.CashAccount) AccountResponse {
	return AccountResponse{
		AccountID:     a.AccountID,
		Name:          a.Name,
		AccountType:   string(a.AccountType),
		Balance:       a.Balance,
		Currency:      a.Currency,
		AccountNumber: a.AccountNumber,
		Institution:   a.Institution,
		IsActive:      a.IsActive,
	}
}

// ToAccountResponses converts a slice of domain cash accounts.
func ToAccountResponses(accounts []domain.CashAccount) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
