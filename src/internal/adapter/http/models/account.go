package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type CreateAccountRequest struct {
	ClientID       int64           `json:"clientId"`
	Currency       string          `json:"currency"`
	InitialDeposit decimal.Decimal `json:"initialDeposit"`
}

func (r CreateAccountRequest) Validate() error {
	var errs []string

	if r.ClientID <= 0 {
		errs = append(errs, "clientId is required")
	}
	if len(strings.TrimSpace(r.Currency)) != 3 {
		errs = append(errs, "currency must be 3 characters")
	}
	if r.InitialDeposit.IsNegative() {
		errs = append(errs, "initialDeposit cannot be negative")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type AccountResponse struct {
	ID        int64  `json:"id"`
	ClientID  int64  `json:"clientId"`
	Currency  string `json:"currency"`
	Balance   string `json:"balance"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}
