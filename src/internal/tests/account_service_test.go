package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/api-sage/fiat-ledger-core/src/internal/adapter/repository/memory"
	"github.com/api-sage/fiat-ledger-core/src/internal/domain"
	"github.com/api-sage/fiat-ledger-core/src/internal/usecase/services"
)

func newAccountServiceFixture(t *testing.T) (*services.AccountService, *memory.ClientRepository, domain.Client) {
	t.Helper()

	clients := memory.NewClientRepository()
	accounts := memory.NewAccountRepository()
	svc := services.NewAccountService(accounts, clients)

	client, err := clients.Create(context.Background(), domain.Client{Name: "Ada", Surname: "Lovelace"})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}

	return svc, clients, client
}

func TestAccountServiceCreateAccountUnknownClient(t *testing.T) {
	svc, _, _ := newAccountServiceFixture(t)

	_, err := svc.CreateAccount(context.Background(), 404, "USD", decimal.Zero)
	if !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected client not found, got %v", err)
	}
}

func TestAccountServiceCreateAccount(t *testing.T) {
	svc, _, client := newAccountServiceFixture(t)

	account, err := svc.CreateAccount(context.Background(), client.ID, "usd", decimal.RequireFromString("50.00"))
	if err != nil {
		t.Fatalf("create account: %v", err)
	}
	if account.Balance.Currency != "USD" {
		t.Fatalf("expected normalized currency USD, got %s", account.Balance.Currency)
	}
	if account.Balance.Amount.StringFixed(2) != "50.00" {
		t.Fatalf("expected balance 50.00, got %s", account.Balance.Amount)
	}
}

func TestAccountServiceRejectsSecondAccountSameCurrency(t *testing.T) {
	svc, _, client := newAccountServiceFixture(t)

	if _, err := svc.CreateAccount(context.Background(), client.ID, "USD", decimal.Zero); err != nil {
		t.Fatalf("create account: %v", err)
	}
	if _, err := svc.CreateAccount(context.Background(), client.ID, "USD", decimal.Zero); !errors.Is(err, domain.ErrAccountAlreadyExists) {
		t.Fatalf("expected duplicate account error, got %v", err)
	}
	if _, err := svc.CreateAccount(context.Background(), client.ID, "EUR", decimal.Zero); err != nil {
		t.Fatalf("second currency account should be allowed: %v", err)
	}
}

func TestAccountServiceActivityFollowsClient(t *testing.T) {
	svc, clients, client := newAccountServiceFixture(t)

	account, err := svc.CreateAccount(context.Background(), client.ID, "USD", decimal.Zero)
	if err != nil {
		t.Fatalf("create account: %v", err)
	}

	got, err := svc.GetAccount(context.Background(), account.ID)
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if !got.Active {
		t.Fatal("expected account to be active")
	}

	if err := clients.Delete(context.Background(), client.ID); err != nil {
		t.Fatalf("delete client: %v", err)
	}

	got, err = svc.GetAccount(context.Background(), account.ID)
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if got.Active {
		t.Fatal("account of deleted client must read inactive even with its own flag still set")
	}
}

func TestAccountServiceDeleteAccount(t *testing.T) {
	svc, _, client := newAccountServiceFixture(t)

	account, err := svc.CreateAccount(context.Background(), client.ID, "USD", decimal.Zero)
	if err != nil {
		t.Fatalf("create account: %v", err)
	}

	if err := svc.DeleteAccount(context.Background(), account.ID); err != nil {
		t.Fatalf("delete account: %v", err)
	}

	got, err := svc.GetAccount(context.Background(), account.ID)
	if err != nil {
		t.Fatalf("deleted account must stay resolvable: %v", err)
	}
	if got.Active {
		t.Fatal("expected account to be inactive after delete")
	}
}

func TestAccountServiceListAccounts(t *testing.T) {
	svc, _, client := newAccountServiceFixture(t)

	if _, err := svc.CreateAccount(context.Background(), client.ID, "USD", decimal.Zero); err != nil {
		t.Fatalf("create account: %v", err)
	}
	if _, err := svc.CreateAccount(context.Background(), client.ID, "EUR", decimal.Zero); err != nil {
		t.Fatalf("create account: %v", err)
	}

	accounts, err := svc.ListAccounts(context.Background(), client.ID)
	if err != nil {
		t.Fatalf("list accounts: %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(accounts))
	}
}
