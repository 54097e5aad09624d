package services

import (
	"context"

	"github.com/kendall-kelly/furniture-portal-api/models"
	"github.com/kendall-kelly/furniture-portal-api/store"
	"go.uber.org/zap"
)

// ContractRepository stores one contract per client, keyed by client id
type ContractRepository struct {
	contracts *store.Collection[models.ContractDetails]
}

func NewContractRepository(backend store.Backend, logger *zap.Logger, seed func() []models.ContractDetails) *ContractRepository {
	return &ContractRepository{
		contracts: store.NewCollection(backend, logger, store.Options[models.ContractDetails]{
			Key: "contracts",
			ID:  func(c models.ContractDetails) string { return c.ClientID },
			Valid: func(c models.ContractDetails) bool {
				return c.ClientID != "" && c.ContractNumber != ""
			},
			Seed: seed,
		}),
	}
}

func (r *ContractRepository) Load(ctx context.Context) error {
	return r.contracts.Load(ctx)
}

func (r *ContractRepository) ListAll() []models.ContractDetails {
	return r.contracts.List(nil)
}

// GetByOwner returns the contract of a client
func (r *ContractRepository) GetByOwner(clientID string) (models.ContractDetails, bool) {
	return r.contracts.Get(clientID)
}

// Save inserts or replaces the contract of contract.ClientID
func (r *ContractRepository) Save(ctx context.Context, contract models.ContractDetails) (models.ContractDetails, error) {
	return r.contracts.Upsert(ctx, contract)
}

// Update changes an existing contract in place
func (r *ContractRepository) Update(ctx context.Context, clientID string, fn func(*models.ContractDetails) error) (models.ContractDetails, bool, error) {
	return r.contracts.Update(ctx, clientID, fn)
}

func (r *ContractRepository) DeleteByOwner(ctx context.Context, clientID string) (int, error) {
	return r.contracts.DeleteWhere(ctx, func(c models.ContractDetails) bool { return c.ClientID == clientID })
}
