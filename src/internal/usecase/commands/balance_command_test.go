package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api-sage/fiat-ledger-core/src/internal/domain"
)

type fakeAccountStore struct {
	balances  map[int64]domain.Money
	failWrite error
	writes    int
}

func newFakeAccountStore(id int64, amount string) *fakeAccountStore {
	value, _ := decimal.NewFromString(amount)
	return &fakeAccountStore{
		balances: map[int64]domain.Money{
			id: domain.NewMoney("USD", value),
		},
	}
}

func (s *fakeAccountStore) Get(_ context.Context, id int64) (domain.Account, error) {
	balance, ok := s.balances[id]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}
	return domain.Account{ID: id, Balance: balance, Active: true}, nil
}

func (s *fakeAccountStore) UpdateBalance(_ context.Context, id int64, balance domain.Money) error {
	if s.failWrite != nil {
		return s.failWrite
	}
	if _, ok := s.balances[id]; !ok {
		return domain.ErrAccountNotFound
	}
	s.balances[id] = balance
	s.writes++
	return nil
}

func (s *fakeAccountStore) amount(id int64) string {
	return s.balances[id].Amount.StringFixed(2)
}

func TestCreditExecuteAddsAmount(t *testing.T) {
	store := newFakeAccountStore(1, "100.00")
	cmd := Credit(store, 1, domain.NewMoney("USD", decimal.RequireFromString("30.00")))

	require.NoError(t, cmd.Execute(context.Background()))
	assert.Equal(t, "130.00", store.amount(1))
}

func TestDebitExecuteSubtractsAmount(t *testing.T) {
	store := newFakeAccountStore(1, "100.00")
	cmd := Debit(store, 1, domain.NewMoney("USD", decimal.RequireFromString("30.00")))

	require.NoError(t, cmd.Execute(context.Background()))
	assert.Equal(t, "70.00", store.amount(1))
}

func TestDebitInsufficientFundsFailsBeforeWrite(t *testing.T) {
	store := newFakeAccountStore(1, "10.00")
	cmd := Debit(store, 1, domain.NewMoney("USD", decimal.RequireFromString("30.00")))

	err := cmd.Execute(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCommandFailed)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.Equal(t, "10.00", store.amount(1), "failed debit must not write")
	assert.Zero(t, store.writes)
}

func TestRollbackRestoresPreState(t *testing.T) {
	store := newFakeAccountStore(1, "100.00")
	cmd := Credit(store, 1, domain.NewMoney("USD", decimal.RequireFromString("30.00")))

	require.NoError(t, cmd.Execute(context.Background()))
	require.NoError(t, cmd.Rollback(context.Background()))
	assert.Equal(t, "100.00", store.amount(1))
}

func TestRollbackIsIdempotent(t *testing.T) {
	store := newFakeAccountStore(1, "100.00")
	cmd := Credit(store, 1, domain.NewMoney("USD", decimal.RequireFromString("30.00")))

	require.NoError(t, cmd.Execute(context.Background()))
	require.NoError(t, cmd.Rollback(context.Background()))
	writesAfterFirst := store.writes

	require.NoError(t, cmd.Rollback(context.Background()))
	assert.Equal(t, writesAfterFirst, store.writes, "second rollback must not write")
	assert.Equal(t, "100.00", store.amount(1))
}

func TestRollbackWithoutExecuteIsNoOp(t *testing.T) {
	store := newFakeAccountStore(1, "100.00")
	cmd := Debit(store, 1, domain.NewMoney("USD", decimal.RequireFromString("30.00")))

	require.NoError(t, cmd.Rollback(context.Background()))
	assert.Equal(t, "100.00", store.amount(1))
	assert.Zero(t, store.writes)
}

func TestExecuteWriteFailureStaysUncommitted(t *testing.T) {
	store := newFakeAccountStore(1, "100.00")
	store.failWrite = errors.New("store unavailable")
	cmd := Credit(store, 1, domain.NewMoney("USD", decimal.RequireFromString("30.00")))

	err := cmd.Execute(context.Background())
	require.ErrorIs(t, err, ErrCommandFailed)

	store.failWrite = nil
	require.NoError(t, cmd.Rollback(context.Background()))
	assert.Zero(t, store.writes, "rollback after failed execute must be a no-op")
}
