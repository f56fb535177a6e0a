package domain

import (
	"strings"
	"time"
)

// Client is a bank customer. Accounts reference a client by identity
// only; whether an account counts as active also depends on its client
// still resolving as active.
type Client struct {
	ID        int64
	Name      string
	Surname   string
	PinHash   string
	Active    bool
	CreatedAt time.Time
}

// SameProfile reports whether two clients carry the same identification
// data. Used to reject duplicate registrations.
func (c Client) SameProfile(other Client) bool {
	return strings.EqualFold(strings.TrimSpace(c.Name), strings.TrimSpace(other.Name)) &&
		strings.EqualFold(strings.TrimSpace(c.Surname), strings.TrimSpace(other.Surname))
}
