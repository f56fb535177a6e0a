package domain

import "time"

type OperationType string

const (
	OperationTypeReplenish OperationType = "REPLENISH"
	OperationTypeWithdraw  OperationType = "WITHDRAW"
	OperationTypeTransfer  OperationType = "TRANSFER"
)

type TransactionState string

const (
	TransactionStateStarted    TransactionState = "STARTED"
	TransactionStateCommitted  TransactionState = "COMMITTED"
	TransactionStateRolledBack TransactionState = "ROLLED_BACK"
)

// IsTerminal reports whether no further state transition is permitted.
func (s TransactionState) IsTerminal() bool {
	return s == TransactionStateCommitted || s == TransactionStateRolledBack
}

// Transaction records one attempted balance operation. The record is
// immutable except for State, which moves STARTED -> COMMITTED or
// STARTED -> ROLLED_BACK exactly once. Records are never deleted.
//
// REPLENISH and WITHDRAW reference their sole account through
// FromAccountID; TRANSFER sets both account references.
type Transaction struct {
	ID            int64
	Reference     string
	FromAccountID *int64
	ToAccountID   *int64
	Amount        Money
	Type          OperationType
	State         TransactionState
	CreatedAt     time.Time
}

// References reports whether the transaction touches the given account
// as source or destination.
func (t Transaction) References(accountID int64) bool {
	if t.FromAccountID != nil && *t.FromAccountID == accountID {
		return true
	}
	return t.ToAccountID != nil && *t.ToAccountID == accountID
}
