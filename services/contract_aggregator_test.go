package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/kendall-kelly/furniture-portal-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContractTotalFollowsFurniture(t *testing.T) {
	ctx := context.Background()
	p, _ := setupTestPortal(t, PolicyFurnitureOnly)
	client := createTestClient(t, p, "carla")

	first, err := p.Furniture.Create(ctx, client.ID, FurnitureInput{
		Name:         "Kitchen",
		Status:       models.StatusProductionStarted,
		ProjectValue: float64Ptr(25000),
	})
	require.NoError(t, err)

	progress, err := ProgressPercentage(first.Status)
	require.NoError(t, err)
	assert.Equal(t, 50.0, progress)

	contract, found, err := p.Aggregator.GetOrCreate(ctx, client.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 25000.0, contract.TotalValue)

	second, err := p.Furniture.Create(ctx, client.ID, FurnitureInput{Name: "Wardrobe", ProjectValue: float64Ptr(8500)})
	require.NoError(t, err)
	stored, _ := p.Contracts.GetByOwner(client.ID)
	assert.Equal(t, 33500.0, stored.TotalValue, "creating an item should refresh the total")

	deleted, err := p.Furniture.Delete(ctx, first.ID)
	require.NoError(t, err)
	require.True(t, deleted)
	stored, _ = p.Contracts.GetByOwner(client.ID)
	assert.Equal(t, 8500.0, stored.TotalValue, "deleting an item should refresh the total")

	_, _, err = p.Furniture.Update(ctx, second.ID, FurniturePatch{ProjectValue: float64Ptr(9000)})
	require.NoError(t, err)
	stored, _ = p.Contracts.GetByOwner(client.ID)
	assert.Equal(t, 9000.0, stored.TotalValue, "updating an item should refresh the total")
}

func TestContractTotal_MissingProjectValueCountsAsZero(t *testing.T) {
	ctx := context.Background()
	p, _ := setupTestPortal(t, PolicyFurnitureOnly)
	client := createTestClient(t, p, "nina")

	_, err := p.Furniture.Create(ctx, client.ID, FurnitureInput{Name: "Shelf"})
	require.NoError(t, err)
	_, err = p.Furniture.Create(ctx, client.ID, FurnitureInput{Name: "Desk", ProjectValue: float64Ptr(1200)})
	require.NoError(t, err)

	assert.Equal(t, 1200.0, p.Aggregator.ComputeTotal(client.ID))
}

func TestContractTotal_PurchasedItemsPolicy(t *testing.T) {
	ctx := context.Background()
	p, _ := setupTestPortal(t, PolicyFurnitureAndPurchased)
	client := createTestClient(t, p, "paulo")
	_, _, err := p.Aggregator.GetOrCreate(ctx, client.ID)
	require.NoError(t, err)

	_, err = p.Furniture.Create(ctx, client.ID, FurnitureInput{Name: "Kitchen", ProjectValue: float64Ptr(1000)})
	require.NoError(t, err)

	item, err := p.PurchasedItems.Create(ctx, client.ID, PurchasedItemInput{Name: "Chair", Quantity: 4, UnitPrice: 150})
	require.NoError(t, err)
	assertPurchasedInvariant(t, p, client.ID)

	_, _, err = p.PurchasedItems.Update(ctx, item.ID, PurchasedItemPatch{Quantity: intPtr(2)})
	require.NoError(t, err)
	assertPurchasedInvariant(t, p, client.ID)

	lamp, err := p.PurchasedItems.Create(ctx, client.ID, PurchasedItemInput{Name: "Lamp", Quantity: 1, UnitPrice: 89.9})
	require.NoError(t, err)
	_, _, err = p.PurchasedItems.Update(ctx, lamp.ID, PurchasedItemPatch{UnitPrice: float64Ptr(99.9)})
	require.NoError(t, err)
	assertPurchasedInvariant(t, p, client.ID)

	_, err = p.PurchasedItems.Delete(ctx, item.ID)
	require.NoError(t, err)
	assertPurchasedInvariant(t, p, client.ID)

	stored, _ := p.Contracts.GetByOwner(client.ID)
	assert.InDelta(t, 1099.9, stored.TotalValue, 0.0001)
}

// assertPurchasedInvariant checks total_price and the contract total after every operation
func assertPurchasedInvariant(t *testing.T, p *Portal, clientID string) {
	t.Helper()
	expected := 0.0
	for _, f := range p.Furniture.ListByOwner(clientID) {
		expected += f.Value()
	}
	for _, item := range p.PurchasedItems.ListByOwner(clientID) {
		assert.InDelta(t, float64(item.Quantity)*item.UnitPrice, item.TotalPrice, 0.0001)
		expected += item.TotalPrice
	}
	contract, ok := p.Contracts.GetByOwner(clientID)
	require.True(t, ok)
	assert.InDelta(t, expected, contract.TotalValue, 0.0001)
}

func TestContractTotal_FurniturePolicyIgnoresPurchasedItems(t *testing.T) {
	ctx := context.Background()
	p, _ := setupTestPortal(t, PolicyFurnitureOnly)
	client := createTestClient(t, p, "rui")
	_, _, err := p.Aggregator.GetOrCreate(ctx, client.ID)
	require.NoError(t, err)

	_, err = p.PurchasedItems.Create(ctx, client.ID, PurchasedItemInput{Name: "Chair", Quantity: 2, UnitPrice: 100})
	require.NoError(t, err)

	stored, _ := p.Contracts.GetByOwner(client.ID)
	assert.Equal(t, 0.0, stored.TotalValue)

	p.Aggregator.SetPolicy(PolicyFurnitureAndPurchased)
	contract, _, err := p.Aggregator.Recalculate(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, 200.0, contract.TotalValue)
}

func TestGetOrCreate_Shell(t *testing.T) {
	ctx := context.Background()
	p, _ := setupTestPortal(t, PolicyFurnitureOnly)
	client := createTestClient(t, p, "sara")

	contract, found, err := p.Aggregator.GetOrCreate(ctx, client.ID)
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, fmt.Sprintf("CT-NEW-%s-%03d", client.ID, fixedNow.UnixMilli()%1000), contract.ContractNumber)
	assert.Equal(t, client.Name, contract.ClientName)
	assert.Equal(t, "To be defined", contract.PaymentTerms)
	assert.Equal(t, "To be defined", contract.ProjectAddress)
	assert.Equal(t, 0.0, contract.TotalValue)
	assert.Equal(t, fixedNow, contract.DateSigned)

	again, _, err := p.Aggregator.GetOrCreate(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, contract.ContractNumber, again.ContractNumber, "shell is created once")
	assert.Len(t, p.Contracts.ListAll(), 1)
}

func TestGetOrCreate_UnknownClient(t *testing.T) {
	p, _ := setupTestPortal(t, PolicyFurnitureOnly)

	_, found, err := p.Aggregator.GetOrCreate(context.Background(), "missing")
	assert.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, p.Contracts.ListAll())
}

func TestUpdateTerms(t *testing.T) {
	ctx := context.Background()
	p, _ := setupTestPortal(t, PolicyFurnitureOnly)
	client := createTestClient(t, p, "teo")
	_, err := p.Furniture.Create(ctx, client.ID, FurnitureInput{Name: "Bed", ProjectValue: float64Ptr(4000)})
	require.NoError(t, err)

	contract, found, err := p.Aggregator.UpdateTerms(ctx, client.ID, ContractPatch{
		ContractNumber: stringPtr("CT-2025-00001"),
		PaymentTerms:   stringPtr("Cash on delivery"),
		DocumentURL:    stringPtr("uploads/contract.pdf"),
	})
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "CT-2025-00001", contract.ContractNumber)
	assert.Equal(t, "Cash on delivery", contract.PaymentTerms)
	assert.Equal(t, 4000.0, contract.TotalValue, "total is always derived")
	require.NotNil(t, contract.DocumentURL)
	assert.Equal(t, "uploads/contract.pdf", *contract.DocumentURL)

	_, found, err = p.Aggregator.UpdateTerms(ctx, "missing", ContractPatch{})
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestRecalculate_StorageFailureIsLoggedNotReturnedToWriter(t *testing.T) {
	ctx := context.Background()
	p, backend := setupTestPortal(t, PolicyFurnitureOnly)
	client := createTestClient(t, p, "vera")
	_, _, err := p.Aggregator.GetOrCreate(ctx, client.ID)
	require.NoError(t, err)

	backend.FailWrites("contracts", errors.New("unavailable"))
	item, err := p.Furniture.Create(ctx, client.ID, FurnitureInput{Name: "Table", ProjectValue: float64Ptr(700)})
	require.NoError(t, err, "the item write is committed even when the total cannot be stored")
	_, ok := p.Furniture.GetByID(item.ID)
	assert.True(t, ok)

	stale, _ := p.Contracts.GetByOwner(client.ID)
	assert.Equal(t, 0.0, stale.TotalValue)

	backend.FailWrites("contracts", nil)
	contract, _, err := p.Aggregator.GetOrCreate(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, 700.0, contract.TotalValue, "the next read recomputes")
}

func TestClientNameSyncedToContract(t *testing.T) {
	ctx := context.Background()
	p, _ := setupTestPortal(t, PolicyFurnitureOnly)
	client := createTestClient(t, p, "ugo")
	_, _, err := p.Aggregator.GetOrCreate(ctx, client.ID)
	require.NoError(t, err)

	_, _, err = p.ClientService.Update(ctx, client.ID, ClientPatch{Name: stringPtr("Ugo Renamed")})
	require.NoError(t, err)

	contract, _ := p.Contracts.GetByOwner(client.ID)
	assert.Equal(t, "Ugo Renamed", contract.ClientName)
}

func TestParseContractPolicy(t *testing.T) {
	policy, err := ParseContractPolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyFurnitureOnly, policy)

	policy, err = ParseContractPolicy("furniture_and_purchased")
	require.NoError(t, err)
	assert.Equal(t, PolicyFurnitureAndPurchased, policy)

	_, err = ParseContractPolicy("everything")
	assert.Error(t, err)
}

func intPtr(v int) *int { return &v }
