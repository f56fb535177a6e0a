package commands

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/api-sage/fiat-ledger-core/src/internal/domain"
)

// AccountStore is the slice of the account ledger store a balance
// command needs: one read and one lock-held write.
type AccountStore interface {
	Get(ctx context.Context, id int64) (domain.Account, error)
	UpdateBalance(ctx context.Context, id int64, balance domain.Money) error
}

// BalanceCommand mutates one account balance by a fixed amount. The
// target account and the amount are plain struct fields, not closures;
// the caller is expected to hold the account lock for the whole
// Execute, so the read-transform-write below runs under it.
type BalanceCommand struct {
	accounts  AccountStore
	accountID int64
	currency  domain.Currency
	amount    decimal.Decimal
	debit     bool

	before    decimal.Decimal
	committed bool
}

// Credit builds a command adding amount to the account balance.
func Credit(accounts AccountStore, accountID int64, amount domain.Money) *BalanceCommand {
	return &BalanceCommand{
		accounts:  accounts,
		accountID: accountID,
		currency:  amount.Currency,
		amount:    amount.Amount,
	}
}

// Debit builds a command subtracting amount from the account balance.
// It fails with insufficient funds when the balance cannot cover the
// amount, before anything is written.
func Debit(accounts AccountStore, accountID int64, amount domain.Money) *BalanceCommand {
	return &BalanceCommand{
		accounts:  accounts,
		accountID: accountID,
		currency:  amount.Currency,
		amount:    amount.Amount,
		debit:     true,
	}
}

func (c *BalanceCommand) Execute(ctx context.Context) error {
	account, err := c.accounts.Get(ctx, c.accountID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCommandFailed, err)
	}

	// Pre-state is captured before the transform runs; rollback always
	// restores this value, never a recomputed one.
	c.before = account.Balance.Amount

	after, err := c.apply(c.before)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCommandFailed, err)
	}

	if err := c.accounts.UpdateBalance(ctx, c.accountID, domain.NewMoney(c.currency, after)); err != nil {
		return fmt.Errorf("%w: %w", ErrCommandFailed, err)
	}

	c.committed = true

	return nil
}

// Rollback restores the captured pre-state if the command committed; it
// is a no-op otherwise, so calling it twice equals calling it once.
func (c *BalanceCommand) Rollback(ctx context.Context) error {
	if !c.committed {
		return nil
	}

	if err := c.accounts.UpdateBalance(ctx, c.accountID, domain.NewMoney(c.currency, c.before)); err != nil {
		return fmt.Errorf("%w: %w", ErrCommandFailed, err)
	}

	c.committed = false

	return nil
}

func (c *BalanceCommand) apply(current decimal.Decimal) (decimal.Decimal, error) {
	if !c.debit {
		return current.Add(c.amount), nil
	}

	if current.LessThan(c.amount) {
		return decimal.Zero, fmt.Errorf("%w: balance %s is less than required amount %s",
			domain.ErrInsufficientFunds, current, c.amount)
	}

	return current.Sub(c.amount), nil
}
