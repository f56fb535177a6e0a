package domain

import "time"

// Account is a single-currency balance owned by a client. The account
// store guards every record with an exclusive lock; balance mutation is
// only legal while that lock is held.
type Account struct {
	ID        int64
	ClientID  int64
	Balance   Money
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
