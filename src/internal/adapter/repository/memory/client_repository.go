package memory

import (
	"context"
	"sync"
	"time"

	"github.com/api-sage/fiat-ledger-core/src/internal/domain"
)

type ClientRepository struct {
	mu      sync.RWMutex
	nextID  int64
	storage map[int64]domain.Client
}

func NewClientRepository() *ClientRepository {
	return &ClientRepository{
		storage: make(map[int64]domain.Client),
	}
}

func (r *ClientRepository) Create(_ context.Context, client domain.Client) (domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	client.ID = r.nextID
	client.Active = true
	client.CreatedAt = time.Now().UTC()

	r.storage[client.ID] = client

	return client, nil
}

// Get resolves active clients only; a deactivated client reads as not
// found.
func (r *ClientRepository) Get(_ context.Context, id int64) (domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	client, ok := r.storage[id]
	if !ok || !client.Active {
		return domain.Client{}, domain.ErrClientNotFound
	}

	return client, nil
}

func (r *ClientRepository) GetAll(_ context.Context) ([]domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	clients := make([]domain.Client, 0, len(r.storage))
	for _, client := range r.storage {
		if client.Active {
			clients = append(clients, client)
		}
	}

	return clients, nil
}

// Delete deactivates the client. The record is kept so accounts that
// reference it keep resolving, as inactive.
func (r *ClientRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	client, ok := r.storage[id]
	if !ok || !client.Active {
		return domain.ErrClientNotFound
	}

	client.Active = false
	r.storage[id] = client

	return nil
}
