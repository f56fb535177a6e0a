package repo_interfaces

import (
	"context"

	"github.com/api-sage/fiat-ledger-core/src/internal/domain"
)

// ClientRepository is the client directory. Get resolves active clients
// only; a deactivated client is reported as not found, which is what
// makes accounts of deleted clients read as inactive.
type ClientRepository interface {
	Create(ctx context.Context, client domain.Client) (domain.Client, error)
	Get(ctx context.Context, id int64) (domain.Client, error)
	GetAll(ctx context.Context) ([]domain.Client, error)
	Delete(ctx context.Context, id int64) error
}
