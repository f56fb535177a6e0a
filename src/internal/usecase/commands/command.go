// Package commands holds the reversible balance mutations a transaction
// is assembled from. A command captures the pre-state of the value it
// mutates on execute and can undo itself exactly once; a Sequence
// groups commands into an all-or-nothing unit.
package commands

import (
	"context"
	"errors"
)

// ErrCommandFailed wraps any failure raised while executing a command.
var ErrCommandFailed = errors.New("command failed")

// Command is a single reversible mutation. Rollback is meaningful only
// after a successful Execute and before the next one; repeated Rollback
// calls are no-ops.
type Command interface {
	Execute(ctx context.Context) error
	Rollback(ctx context.Context) error
}
