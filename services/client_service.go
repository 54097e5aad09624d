package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/kendall-kelly/furniture-portal-api/models"
	"go.uber.org/zap"
)

// ownerScoped is implemented by every repository holding client-owned records
type ownerScoped interface {
	DeleteByOwner(ctx context.Context, clientID string) (int, error)
}

// ClientService manages the client account lifecycle across repositories
type ClientService struct {
	clients    *ClientRepository
	aggregator *ContractAggregator
	owned      []namedOwnerScoped
	logger     *zap.Logger
}

type namedOwnerScoped struct {
	name string
	repo ownerScoped
}

func NewClientService(p *Portal) *ClientService {
	return &ClientService{
		clients:    p.Clients,
		aggregator: p.Aggregator,
		owned: []namedOwnerScoped{
			{"furniture_items", p.Furniture},
			{"deadlines", p.Deadlines},
			{"assistance_requests", p.Assistance},
			{"messages", p.Messages},
			{"purchased_items", p.PurchasedItems},
			{"contracts", p.Contracts},
		},
		logger: p.logger,
	}
}

func (s *ClientService) Create(ctx context.Context, input ClientInput) (models.Client, error) {
	client, err := s.clients.Create(ctx, input)
	if err != nil {
		return models.Client{}, err
	}
	s.logger.Info("client created", zap.String("client_id", client.ID), zap.String("username", client.Username))
	return client, nil
}

// Update changes the account and refreshes the client name stored on the contract
func (s *ClientService) Update(ctx context.Context, id string, patch ClientPatch) (models.Client, bool, error) {
	client, found, err := s.clients.Update(ctx, id, patch)
	if err != nil || !found {
		return models.Client{}, found, err
	}
	if err := s.aggregator.SyncClientName(ctx, client.ID, client.Name); err != nil {
		return client, true, fmt.Errorf("client updated but contract name not refreshed: %w", err)
	}
	return client, true, nil
}

// Delete removes the account and then every record the client owns. Each collection is
// cleaned independently; failures are joined and returned without stopping the cascade.
// Returns false when the client does not exist.
func (s *ClientService) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.clients.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if !deleted {
		return false, nil
	}

	var errs []error
	for _, owned := range s.owned {
		removed, err := owned.repo.DeleteByOwner(ctx, id)
		if err != nil {
			s.logger.Error("cascade delete failed",
				zap.String("client_id", id),
				zap.String("collection", owned.name),
				zap.Error(err),
			)
			errs = append(errs, fmt.Errorf("%s: %w", owned.name, err))
			continue
		}
		s.logger.Debug("cascade delete", zap.String("client_id", id), zap.String("collection", owned.name), zap.Int("removed", removed))
	}

	s.logger.Info("client deleted", zap.String("client_id", id))
	return true, errors.Join(errs...)
}
