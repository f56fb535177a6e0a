package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api-sage/fiat-ledger-core/src/internal/domain"
)

func newTestAccount(clientID int64, amount string) domain.Account {
	return domain.Account{
		ClientID: clientID,
		Balance:  domain.NewMoney("USD", decimal.RequireFromString(amount)),
	}
}

func TestAccountRepositoryCreateAssignsAscendingIDs(t *testing.T) {
	repo := NewAccountRepository()
	ctx := context.Background()

	first, err := repo.Create(ctx, newTestAccount(1, "10.00"))
	require.NoError(t, err)
	second, err := repo.Create(ctx, newTestAccount(1, "20.00"))
	require.NoError(t, err)

	assert.Greater(t, second.ID, first.ID)
	assert.True(t, first.Active)
}

func TestAccountRepositoryGetUnknownID(t *testing.T) {
	repo := NewAccountRepository()

	_, err := repo.Get(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestAccountRepositoryUpdateBalanceVisibleToReaders(t *testing.T) {
	repo := NewAccountRepository()
	ctx := context.Background()

	account, err := repo.Create(ctx, newTestAccount(1, "100.00"))
	require.NoError(t, err)

	require.NoError(t, repo.TryLock(ctx, account.ID))
	require.NoError(t, repo.UpdateBalance(ctx, account.ID, domain.NewMoney("USD", decimal.RequireFromString("70.00"))))
	require.NoError(t, repo.Unlock(ctx, account.ID))

	got, err := repo.Get(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "70.00", got.Balance.Amount.StringFixed(2))
}

func TestAccountRepositoryLockSurvivesBalanceUpdate(t *testing.T) {
	repo := NewAccountRepository()
	ctx := context.Background()

	account, err := repo.Create(ctx, newTestAccount(1, "100.00"))
	require.NoError(t, err)

	require.NoError(t, repo.TryLock(ctx, account.ID))
	require.NoError(t, repo.UpdateBalance(ctx, account.ID, domain.NewMoney("USD", decimal.RequireFromString("50.00"))))

	// The update must not have replaced the lock: it is still held.
	assert.ErrorIs(t, repo.TryLock(ctx, account.ID), domain.ErrAccountLocked)

	require.NoError(t, repo.Unlock(ctx, account.ID))
	assert.NoError(t, repo.TryLock(ctx, account.ID))
	require.NoError(t, repo.Unlock(ctx, account.ID))
}

func TestAccountRepositoryTryLockContention(t *testing.T) {
	repo := NewAccountRepository()
	ctx := context.Background()

	account, err := repo.Create(ctx, newTestAccount(1, "100.00"))
	require.NoError(t, err)

	require.NoError(t, repo.TryLock(ctx, account.ID))
	assert.ErrorIs(t, repo.TryLock(ctx, account.ID), domain.ErrAccountLocked)

	require.NoError(t, repo.Unlock(ctx, account.ID))
	assert.NoError(t, repo.TryLock(ctx, account.ID))
	require.NoError(t, repo.Unlock(ctx, account.ID))
}

func TestAccountRepositoryDeleteIsSoft(t *testing.T) {
	repo := NewAccountRepository()
	ctx := context.Background()

	account, err := repo.Create(ctx, newTestAccount(1, "100.00"))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, account.ID))

	got, err := repo.Get(ctx, account.ID)
	require.NoError(t, err, "soft-deleted account must stay resolvable")
	assert.False(t, got.Active)
	assert.Equal(t, "100.00", got.Balance.Amount.StringFixed(2))
}

func TestAccountRepositoryDeleteWhileLockedFails(t *testing.T) {
	repo := NewAccountRepository()
	ctx := context.Background()

	account, err := repo.Create(ctx, newTestAccount(1, "100.00"))
	require.NoError(t, err)

	require.NoError(t, repo.TryLock(ctx, account.ID))
	assert.ErrorIs(t, repo.Delete(ctx, account.ID), domain.ErrAccountLocked)
	require.NoError(t, repo.Unlock(ctx, account.ID))

	assert.NoError(t, repo.Delete(ctx, account.ID))
}

func TestAccountRepositoryGetAllByClientID(t *testing.T) {
	repo := NewAccountRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, newTestAccount(1, "10.00"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newTestAccount(2, "20.00"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newTestAccount(1, "30.00"))
	require.NoError(t, err)

	accounts, err := repo.GetAllByClientID(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, accounts, 2)
	for _, account := range accounts {
		assert.EqualValues(t, 1, account.ClientID)
	}
}
