package repo_interfaces

import (
	"context"

	"github.com/api-sage/fiat-ledger-core/src/internal/domain"
)

// AccountRepository is the account ledger store. Every stored record is
// guarded by a non-reentrant exclusive lock whose lifetime equals the
// record's; the lock survives balance updates in place.
type AccountRepository interface {
	Create(ctx context.Context, account domain.Account) (domain.Account, error)
	Get(ctx context.Context, id int64) (domain.Account, error)
	GetAllByClientID(ctx context.Context, clientID int64) ([]domain.Account, error)

	// UpdateBalance replaces the stored balance. The caller must hold
	// the account lock; the lock object itself is preserved across the
	// write.
	UpdateBalance(ctx context.Context, id int64, balance domain.Money) error

	// Delete deactivates the account. The record stays resolvable so
	// outstanding references remain valid but inactive.
	Delete(ctx context.Context, id int64) error

	// TryLock attempts the account lock without blocking, failing with
	// domain.ErrAccountLocked when another mutator holds it.
	TryLock(ctx context.Context, id int64) error
	Unlock(ctx context.Context, id int64) error
}
