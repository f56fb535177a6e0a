package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api-sage/fiat-ledger-core/src/internal/domain"
)

func TestClientRepositoryCreateAndGet(t *testing.T) {
	repo := NewClientRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, domain.Client{Name: "Ada", Surname: "Lovelace"})
	require.NoError(t, err)
	assert.True(t, created.Active)

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)
}

func TestClientRepositoryDeletedClientReadsNotFound(t *testing.T) {
	repo := NewClientRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, domain.Client{Name: "Ada", Surname: "Lovelace"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))

	_, err = repo.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrClientNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, created.ID), domain.ErrClientNotFound)
}

func TestClientRepositoryGetAllSkipsInactive(t *testing.T) {
	repo := NewClientRepository()
	ctx := context.Background()

	first, err := repo.Create(ctx, domain.Client{Name: "Ada", Surname: "Lovelace"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, domain.Client{Name: "Alan", Surname: "Turing"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, first.ID))

	clients, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "Alan", clients[0].Name)
}
