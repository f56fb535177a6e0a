package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type BalanceOperationRequest struct {
	AccountID int64           `json:"accountId"`
	Currency  string          `json:"currency"`
	Amount    decimal.Decimal `json:"amount"`
}

func (r BalanceOperationRequest) Validate() error {
	var errs []string

	if r.AccountID <= 0 {
		errs = append(errs, "accountId is required")
	}
	errs = append(errs, validateMoney(r.Currency, r.Amount)...)

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type TransferRequest struct {
	FromAccountID int64           `json:"fromAccountId"`
	ToAccountID   int64           `json:"toAccountId"`
	Currency      string          `json:"currency"`
	Amount        decimal.Decimal `json:"amount"`
}

func (r TransferRequest) Validate() error {
	var errs []string

	if r.FromAccountID <= 0 {
		errs = append(errs, "fromAccountId is required")
	}
	if r.ToAccountID <= 0 {
		errs = append(errs, "toAccountId is required")
	}
	if r.FromAccountID > 0 && r.FromAccountID == r.ToAccountID {
		errs = append(errs, "fromAccountId and toAccountId cannot be the same")
	}
	errs = append(errs, validateMoney(r.Currency, r.Amount)...)

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type TransactionResponse struct {
	ID            int64  `json:"id"`
	Reference     string `json:"reference"`
	FromAccountID *int64 `json:"fromAccountId,omitempty"`
	ToAccountID   *int64 `json:"toAccountId,omitempty"`
	Currency      string `json:"currency"`
	Amount        string `json:"amount"`
	OperationType string `json:"operationType"`
	State         string `json:"state"`
	CreatedAt     string `json:"createdAt"`
}

func validateMoney(currency string, amount decimal.Decimal) []string {
	var errs []string

	if len(strings.TrimSpace(currency)) != 3 {
		errs = append(errs, "currency must be 3 characters")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "amount must be greater than zero")
	}

	return errs
}
