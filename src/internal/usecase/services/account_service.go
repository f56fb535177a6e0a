package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/api-sage/fiat-ledger-core/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/fiat-ledger-core/src/internal/domain"
	"github.com/api-sage/fiat-ledger-core/src/internal/logger"
)

type AccountService struct {
	accountRepo repo_interfaces.AccountRepository
	clientRepo  repo_interfaces.ClientRepository
}

func NewAccountService(
	accountRepo repo_interfaces.AccountRepository,
	clientRepo repo_interfaces.ClientRepository,
) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		clientRepo:  clientRepo,
	}
}

// CreateAccount opens an account for an active client. A client holds
// at most one account per currency.
func (s *AccountService) CreateAccount(ctx context.Context, clientID int64, currency domain.Currency, initialDeposit decimal.Decimal) (domain.Account, error) {
	if _, err := s.clientRepo.Get(ctx, clientID); err != nil {
		return domain.Account{}, err
	}
	if initialDeposit.IsNegative() {
		return domain.Account{}, domain.ErrInvalidAmount
	}

	balance := domain.NewMoney(currency, initialDeposit)
	if balance.Currency == "" {
		return domain.Account{}, fmt.Errorf("currency is required")
	}

	existing, err := s.accountRepo.GetAllByClientID(ctx, clientID)
	if err != nil {
		return domain.Account{}, err
	}
	for _, account := range existing {
		if account.Active && account.Balance.SameCurrency(balance) {
			return domain.Account{}, fmt.Errorf("%w: client %d already has a %s account",
				domain.ErrAccountAlreadyExists, clientID, balance.Currency)
		}
	}

	created, err := s.accountRepo.Create(ctx, domain.Account{
		ClientID: clientID,
		Balance:  balance,
	})
	if err != nil {
		logger.Error("account service create account repository failed", err, logger.Fields{
			"clientId": clientID,
		})
		return domain.Account{}, err
	}

	logger.Info("account service account created", logger.Fields{
		"accountId": created.ID,
		"clientId":  created.ClientID,
		"currency":  string(created.Balance.Currency),
	})

	return created, nil
}

// GetAccount returns the account with its Active flag resolved through
// the owning client, so callers see the effective activity.
func (s *AccountService) GetAccount(ctx context.Context, id int64) (domain.Account, error) {
	account, err := s.accountRepo.Get(ctx, id)
	if err != nil {
		return domain.Account{}, err
	}

	account.Active = accountIsActive(ctx, account, s.clientRepo)

	return account, nil
}

func (s *AccountService) ListAccounts(ctx context.Context, clientID int64) ([]domain.Account, error) {
	accounts, err := s.accountRepo.GetAllByClientID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	for i := range accounts {
		accounts[i].Active = accountIsActive(ctx, accounts[i], s.clientRepo)
	}

	return accounts, nil
}

// DeleteAccount deactivates the account. The record stays resolvable;
// a concurrent transaction holding the account lock makes the delete
// fail with lock-busy rather than wait.
func (s *AccountService) DeleteAccount(ctx context.Context, id int64) error {
	if err := s.accountRepo.Delete(ctx, id); err != nil {
		logger.Error("account service delete failed", err, logger.Fields{
			"accountId": id,
		})
		return err
	}

	logger.Info("account service account deactivated", logger.Fields{
		"accountId": id,
	})

	return nil
}
