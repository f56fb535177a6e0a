package commands

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api-sage/fiat-ledger-core/src/internal/domain"
)

func usd(amount string) domain.Money {
	return domain.NewMoney("USD", decimal.RequireFromString(amount))
}

func transferStore() *fakeAccountStore {
	store := newFakeAccountStore(1, "100.00")
	store.balances[2] = usd("0.00")
	return store
}

func TestSequenceExecutesInOrder(t *testing.T) {
	store := transferStore()
	seq := NewSequence(
		Debit(store, 1, usd("30.00")),
		Credit(store, 2, usd("30.00")),
	)

	require.NoError(t, seq.Execute(context.Background()))
	assert.Equal(t, "70.00", store.amount(1))
	assert.Equal(t, "30.00", store.amount(2))
}

func TestSequenceFailureRollsBackCompletedMembers(t *testing.T) {
	store := transferStore()
	seq := NewSequence(
		Credit(store, 2, usd("30.00")),
		Debit(store, 1, usd("1000.00")),
	)

	err := seq.Execute(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	// The completed credit was undone; no partial transfer remains.
	assert.Equal(t, "100.00", store.amount(1))
	assert.Equal(t, "0.00", store.amount(2))
}

func TestSequenceFirstMemberFailureLeavesEverythingUntouched(t *testing.T) {
	store := transferStore()
	seq := NewSequence(
		Debit(store, 1, usd("1000.00")),
		Credit(store, 2, usd("1000.00")),
	)

	require.Error(t, seq.Execute(context.Background()))
	assert.Equal(t, "100.00", store.amount(1))
	assert.Equal(t, "0.00", store.amount(2))
}

func TestSequenceRollbackAfterSuccessRevertsAllMembers(t *testing.T) {
	store := transferStore()
	seq := NewSequence(
		Debit(store, 1, usd("30.00")),
		Credit(store, 2, usd("30.00")),
	)

	require.NoError(t, seq.Execute(context.Background()))
	require.NoError(t, seq.Rollback(context.Background()))

	assert.Equal(t, "100.00", store.amount(1))
	assert.Equal(t, "0.00", store.amount(2))
}

func TestSequenceRollbackAfterFailureIsNoOp(t *testing.T) {
	store := transferStore()
	seq := NewSequence(
		Debit(store, 1, usd("30.00")),
		Credit(store, 2, usd("1000.00")),
		Debit(store, 1, usd("1000.00")),
	)

	require.Error(t, seq.Execute(context.Background()))
	assert.Equal(t, "100.00", store.amount(1))
	assert.Equal(t, "0.00", store.amount(2))

	// Members were already rolled back inside Execute; a second
	// rollback must change nothing.
	require.NoError(t, seq.Rollback(context.Background()))
	assert.Equal(t, "100.00", store.amount(1))
	assert.Equal(t, "0.00", store.amount(2))
}
