package services

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/kendall-kelly/furniture-portal-api/models"
	"go.uber.org/zap"
)

// ContractPolicy selects which items count toward a contract's total value
type ContractPolicy string

const (
	PolicyFurnitureOnly         ContractPolicy = "furniture"
	PolicyFurnitureAndPurchased ContractPolicy = "furniture_and_purchased"
)

// ParseContractPolicy validates a policy name. Empty selects PolicyFurnitureOnly.
func ParseContractPolicy(value string) (ContractPolicy, error) {
	switch ContractPolicy(value) {
	case "", PolicyFurnitureOnly:
		return PolicyFurnitureOnly, nil
	case PolicyFurnitureAndPurchased:
		return PolicyFurnitureAndPurchased, nil
	default:
		return "", fmt.Errorf("unknown contract total policy %q", value)
	}
}

const placeholderTerms = "To be defined"

// ContractPatch holds the editable contract terms. Total and client name are always derived.
type ContractPatch struct {
	ContractNumber *string
	DateSigned     *time.Time
	ProjectAddress *string
	PaymentTerms   *string
	ScopeOfWork    *string
	DocumentURL    *string
}

// ContractAggregator derives contract totals from a client's priced items
type ContractAggregator struct {
	contracts *ContractRepository
	furniture *FurnitureRepository
	purchased *PurchasedItemRepository
	clients   *ClientRepository
	logger    *zap.Logger
	now       func() time.Time

	mu     sync.Mutex
	policy ContractPolicy
}

func NewContractAggregator(contracts *ContractRepository, furniture *FurnitureRepository, purchased *PurchasedItemRepository, clients *ClientRepository, policy ContractPolicy, logger *zap.Logger) *ContractAggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContractAggregator{
		contracts: contracts,
		furniture: furniture,
		purchased: purchased,
		clients:   clients,
		logger:    logger,
		now:       time.Now,
		policy:    policy,
	}
}

// Policy returns the active policy
func (a *ContractAggregator) Policy() ContractPolicy {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.policy
}

// SetPolicy changes the policy. Totals are refreshed on the next recalculation.
func (a *ContractAggregator) SetPolicy(policy ContractPolicy) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.policy = policy
}

// ComputeTotal sums the furniture project values of a client, plus purchased item totals
// under PolicyFurnitureAndPurchased.
func (a *ContractAggregator) ComputeTotal(clientID string) float64 {
	return a.computeTotal(clientID, a.Policy())
}

func (a *ContractAggregator) computeTotal(clientID string, policy ContractPolicy) float64 {
	total := 0.0
	for _, item := range a.furniture.ListByOwner(clientID) {
		total += item.Value()
	}
	if policy == PolicyFurnitureAndPurchased {
		for _, item := range a.purchased.ListByOwner(clientID) {
			total += item.TotalPrice
		}
	}
	return total
}

// HandleItemChanged is the event bus subscriber
func (a *ContractAggregator) HandleItemChanged(ctx context.Context, event ItemChangedEvent) error {
	_, _, err := a.Recalculate(ctx, event.ClientID)
	return err
}

// Recalculate stores the derived total on the client's contract. Returns false when the client
// has no contract. Nothing is written when the total is unchanged.
func (a *ContractAggregator) Recalculate(ctx context.Context, clientID string) (models.ContractDetails, bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.recalculateLocked(ctx, clientID)
}

func (a *ContractAggregator) recalculateLocked(ctx context.Context, clientID string) (models.ContractDetails, bool, error) {
	contract, ok := a.contracts.GetByOwner(clientID)
	if !ok {
		return models.ContractDetails{}, false, nil
	}

	total := a.computeTotal(clientID, a.policy)
	if contract.TotalValue == total {
		return contract, true, nil
	}

	updated, found, err := a.contracts.Update(ctx, clientID, func(c *models.ContractDetails) error {
		c.TotalValue = total
		return nil
	})
	if err != nil {
		return models.ContractDetails{}, found, fmt.Errorf("failed to store contract total for %s: %w", clientID, err)
	}
	a.logger.Debug("contract total recalculated", zap.String("client_id", clientID), zap.Float64("total_value", total))
	return updated, found, nil
}

// RecalculateAll refreshes every stored contract
func (a *ContractAggregator) RecalculateAll(ctx context.Context) error {
	for _, contract := range a.contracts.ListAll() {
		if _, _, err := a.Recalculate(ctx, contract.ClientID); err != nil {
			return err
		}
	}
	return nil
}

// GetOrCreate returns the contract of an existing client, creating an empty shell when the
// client has none. Returns false when the client does not exist.
func (a *ContractAggregator) GetOrCreate(ctx context.Context, clientID string) (models.ContractDetails, bool, error) {
	client, ok := a.clients.GetByID(clientID)
	if !ok {
		return models.ContractDetails{}, false, nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	contract, exists := a.contracts.GetByOwner(clientID)
	if !exists {
		shell := a.newShell(client)
		if _, err := a.contracts.Save(ctx, shell); err != nil {
			return models.ContractDetails{}, true, err
		}
		a.logger.Info("created shell contract", zap.String("client_id", clientID), zap.String("contract_number", shell.ContractNumber))
	} else if contract.ClientName != client.Name {
		if _, _, err := a.contracts.Update(ctx, clientID, func(c *models.ContractDetails) error {
			c.ClientName = client.Name
			return nil
		}); err != nil {
			return models.ContractDetails{}, true, err
		}
	}

	contract, _, err := a.recalculateLocked(ctx, clientID)
	if err != nil {
		return models.ContractDetails{}, true, err
	}
	return contract, true, nil
}

// UpdateTerms applies an admin edit to a client's contract, creating it when missing
func (a *ContractAggregator) UpdateTerms(ctx context.Context, clientID string, patch ContractPatch) (models.ContractDetails, bool, error) {
	if _, ok, err := a.GetOrCreate(ctx, clientID); !ok || err != nil {
		return models.ContractDetails{}, ok, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	_, found, err := a.contracts.Update(ctx, clientID, func(c *models.ContractDetails) error {
		if patch.ContractNumber != nil && *patch.ContractNumber != "" {
			c.ContractNumber = *patch.ContractNumber
		}
		if patch.DateSigned != nil {
			c.DateSigned = patch.DateSigned.UTC()
		}
		if patch.ProjectAddress != nil {
			c.ProjectAddress = *patch.ProjectAddress
		}
		if patch.PaymentTerms != nil {
			c.PaymentTerms = *patch.PaymentTerms
		}
		if patch.ScopeOfWork != nil {
			c.ScopeOfWork = *patch.ScopeOfWork
		}
		if patch.DocumentURL != nil {
			c.DocumentURL = patch.DocumentURL
		}
		return nil
	})
	if err != nil || !found {
		return models.ContractDetails{}, found, err
	}

	contract, _, err := a.recalculateLocked(ctx, clientID)
	return contract, true, err
}

// SyncClientName refreshes the denormalized client name on the contract, if any
func (a *ContractAggregator) SyncClientName(ctx context.Context, clientID, name string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	contract, ok := a.contracts.GetByOwner(clientID)
	if !ok || contract.ClientName == name {
		return nil
	}
	_, _, err := a.contracts.Update(ctx, clientID, func(c *models.ContractDetails) error {
		c.ClientName = name
		return nil
	})
	return err
}

func (a *ContractAggregator) newShell(client models.Client) models.ContractDetails {
	now := a.now().UTC()
	millis := strconv.FormatInt(now.UnixMilli(), 10)
	return models.ContractDetails{
		ClientID:       client.ID,
		ContractNumber: fmt.Sprintf("CT-NEW-%s-%s", client.ID, millis[len(millis)-3:]),
		ClientName:     client.Name,
		DateSigned:     now,
		ProjectAddress: placeholderTerms,
		TotalValue:     0,
		PaymentTerms:   placeholderTerms,
		ScopeOfWork:    "New project, scope to be detailed.",
	}
}
