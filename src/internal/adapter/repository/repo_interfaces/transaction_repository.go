package repo_interfaces

import (
	"context"

	"github.com/api-sage/fiat-ledger-core/src/internal/domain"
)

// TransactionRepository is the transaction ledger store. Records are
// immutable apart from their lifecycle state, which moves from STARTED
// to exactly one terminal state and never back.
type TransactionRepository interface {
	Create(ctx context.Context, transaction domain.Transaction) (domain.Transaction, error)
	Get(ctx context.Context, id int64) (domain.Transaction, error)
	GetAllByAccountID(ctx context.Context, accountID int64) ([]domain.Transaction, error)
	UpdateTransactionState(ctx context.Context, id int64, state domain.TransactionState) error
}
