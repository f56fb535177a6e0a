package memory

import (
	"context"
	"sync"
	"time"

	"github.com/api-sage/fiat-ledger-core/src/internal/domain"
)

// accountRecord is the live account entry. txnLock is the exclusive
// mutation lock exposed through TryLock/Unlock and held across a whole
// read-transform-write; dataMu only guards field access and is never
// held across calls. Records are mutated in place, so txnLock stays the
// same object for the record's whole lifetime.
type accountRecord struct {
	txnLock sync.Mutex
	dataMu  sync.RWMutex
	account domain.Account
}

type AccountRepository struct {
	mu      sync.Mutex
	nextID  int64
	storage map[int64]*accountRecord
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		storage: make(map[int64]*accountRecord),
	}
}

func (r *AccountRepository) Create(_ context.Context, account domain.Account) (domain.Account, error) {
	now := time.Now().UTC()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	account.ID = r.nextID
	account.Active = true
	account.CreatedAt = now
	account.UpdatedAt = now

	r.storage[account.ID] = &accountRecord{account: account}

	return account, nil
}

func (r *AccountRepository) Get(_ context.Context, id int64) (domain.Account, error) {
	record, ok := r.record(id)
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	record.dataMu.RLock()
	defer record.dataMu.RUnlock()

	return record.account, nil
}

func (r *AccountRepository) GetAllByClientID(_ context.Context, clientID int64) ([]domain.Account, error) {
	r.mu.Lock()
	records := make([]*accountRecord, 0, len(r.storage))
	for _, record := range r.storage {
		records = append(records, record)
	}
	r.mu.Unlock()

	accounts := make([]domain.Account, 0)
	for _, record := range records {
		record.dataMu.RLock()
		account := record.account
		record.dataMu.RUnlock()

		if account.ClientID == clientID {
			accounts = append(accounts, account)
		}
	}

	return accounts, nil
}

// UpdateBalance replaces the stored balance in place, preserving the
// record's lock object. The caller must hold the account lock.
func (r *AccountRepository) UpdateBalance(_ context.Context, id int64, balance domain.Money) error {
	record, ok := r.record(id)
	if !ok {
		return domain.ErrAccountNotFound
	}

	record.dataMu.Lock()
	defer record.dataMu.Unlock()

	// The record must still be the one the store maps to this id; a
	// concurrent replacement would mean the caller's lock guards a
	// stale record.
	if current, ok := r.record(id); !ok || current != record {
		return domain.ErrAccountConflict
	}

	record.account.Balance = balance
	record.account.UpdatedAt = time.Now().UTC()

	return nil
}

func (r *AccountRepository) Delete(_ context.Context, id int64) error {
	record, ok := r.record(id)
	if !ok {
		return domain.ErrAccountNotFound
	}

	if !record.txnLock.TryLock() {
		return domain.ErrAccountLocked
	}
	defer record.txnLock.Unlock()

	record.dataMu.Lock()
	record.account.Active = false
	record.account.UpdatedAt = time.Now().UTC()
	record.dataMu.Unlock()

	return nil
}

func (r *AccountRepository) TryLock(_ context.Context, id int64) error {
	record, ok := r.record(id)
	if !ok {
		return domain.ErrAccountNotFound
	}

	if !record.txnLock.TryLock() {
		return domain.ErrAccountLocked
	}

	return nil
}

// Unlock releases the account lock unconditionally. The caller must be
// the lock holder.
func (r *AccountRepository) Unlock(_ context.Context, id int64) error {
	record, ok := r.record(id)
	if !ok {
		return domain.ErrAccountNotFound
	}

	record.txnLock.Unlock()

	return nil
}

func (r *AccountRepository) record(id int64) (*accountRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.storage[id]
	return record, ok
}
