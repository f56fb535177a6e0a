package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/api-sage/fiat-ledger-core/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/fiat-ledger-core/src/internal/domain"
	"github.com/api-sage/fiat-ledger-core/src/internal/logger"
)

type ClientService struct {
	clientRepo repo_interfaces.ClientRepository
}

func NewClientService(clientRepo repo_interfaces.ClientRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo}
}

// Register creates a client profile with a hashed transaction pin. A
// profile carrying the same identification data as an existing active
// client is rejected.
func (s *ClientService) Register(ctx context.Context, name, surname, pin string) (domain.Client, error) {
	name = strings.TrimSpace(name)
	surname = strings.TrimSpace(surname)
	pin = strings.TrimSpace(pin)

	if name == "" || surname == "" {
		return domain.Client{}, fmt.Errorf("name and surname are required")
	}
	if pin == "" {
		return domain.Client{}, fmt.Errorf("pin is required")
	}

	candidate := domain.Client{Name: name, Surname: surname}

	existing, err := s.clientRepo.GetAll(ctx)
	if err != nil {
		logger.Error("client service register duplicate check failed", err, nil)
		return domain.Client{}, err
	}
	for _, client := range existing {
		if client.SameProfile(candidate) {
			return domain.Client{}, fmt.Errorf("%w: %s %s", domain.ErrClientAlreadyExists, name, surname)
		}
	}

	hashed, err := hashPin(pin)
	if err != nil {
		logger.Error("client service register hash pin failed", err, nil)
		return domain.Client{}, err
	}
	candidate.PinHash = hashed

	created, err := s.clientRepo.Create(ctx, candidate)
	if err != nil {
		logger.Error("client service register repository failed", err, nil)
		return domain.Client{}, err
	}

	logger.Info("client service client registered", logger.Fields{
		"clientId": created.ID,
	})

	return created, nil
}

func (s *ClientService) GetClient(ctx context.Context, id int64) (domain.Client, error) {
	return s.clientRepo.Get(ctx, id)
}

// FindClients returns active clients matching the given profile data,
// or every active client when both fields are empty.
func (s *ClientService) FindClients(ctx context.Context, name, surname string) ([]domain.Client, error) {
	clients, err := s.clientRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	surname = strings.TrimSpace(surname)
	if name == "" && surname == "" {
		return clients, nil
	}

	filter := domain.Client{Name: name, Surname: surname}
	matched := make([]domain.Client, 0)
	for _, client := range clients {
		if client.SameProfile(filter) {
			matched = append(matched, client)
		}
	}
	if len(matched) == 0 {
		return nil, domain.ErrClientNotFound
	}

	return matched, nil
}

// DeleteClient deactivates the client profile. The client's accounts
// start reading as inactive from this point on.
func (s *ClientService) DeleteClient(ctx context.Context, id int64) error {
	if err := s.clientRepo.Delete(ctx, id); err != nil {
		logger.Error("client service delete failed", err, logger.Fields{
			"clientId": id,
		})
		return err
	}

	logger.Info("client service client deactivated", logger.Fields{
		"clientId": id,
	})

	return nil
}

// VerifyPin compares the provided pin against the stored hash.
func (s *ClientService) VerifyPin(ctx context.Context, id int64, pin string) error {
	client, err := s.clientRepo.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(client.PinHash), []byte(strings.TrimSpace(pin))); err != nil {
		if err == bcrypt.ErrMismatchedHashAndPassword {
			return domain.ErrInvalidPin
		}
		return fmt.Errorf("verify pin: %w", err)
	}

	return nil
}

func hashPin(pin string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash pin: %w", err)
	}

	return string(hashed), nil
}
