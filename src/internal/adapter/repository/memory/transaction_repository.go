package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/api-sage/fiat-ledger-core/src/internal/domain"
)

type TransactionRepository struct {
	mu      sync.RWMutex
	nextID  int64
	storage map[int64]domain.Transaction
}

func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{
		storage: make(map[int64]domain.Transaction),
	}
}

func (r *TransactionRepository) Create(_ context.Context, transaction domain.Transaction) (domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	transaction.ID = r.nextID
	transaction.Reference = uuid.NewString()
	transaction.State = domain.TransactionStateStarted
	transaction.CreatedAt = time.Now().UTC()

	r.storage[transaction.ID] = transaction

	return transaction, nil
}

func (r *TransactionRepository) Get(_ context.Context, id int64) (domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	transaction, ok := r.storage[id]
	if !ok {
		return domain.Transaction{}, domain.ErrTransactionNotFound
	}

	return transaction, nil
}

func (r *TransactionRepository) GetAllByAccountID(_ context.Context, accountID int64) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	transactions := make([]domain.Transaction, 0)
	for _, transaction := range r.storage {
		if transaction.References(accountID) {
			transactions = append(transactions, transaction)
		}
	}

	return transactions, nil
}

// UpdateTransactionState moves a transaction out of STARTED. A record
// already in a terminal state is never transitioned again.
func (r *TransactionRepository) UpdateTransactionState(_ context.Context, id int64, state domain.TransactionState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	transaction, ok := r.storage[id]
	if !ok {
		return domain.ErrTransactionNotFound
	}
	if transaction.State.IsTerminal() {
		return domain.ErrTransactionStateFinal
	}

	transaction.State = state
	r.storage[id] = transaction

	return nil
}
