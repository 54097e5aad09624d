package services

import (
	"context"
	"testing"
	"time"

	"github.com/kendall-kelly/furniture-portal-api/models"
	"github.com/kendall-kelly/furniture-portal-api/store"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var fixedNow = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func fixedJitter() int { return 3 }

func testHasher() PasswordHasher {
	return BcryptHasher{Cost: bcrypt.MinCost}
}

// setupTestPortal builds an empty portal over a memory backend
func setupTestPortal(t *testing.T, policy ContractPolicy) (*Portal, *store.MemoryBackend) {
	t.Helper()
	backend := store.NewMemoryBackend()
	p := NewPortal(backend, nil, PortalOptions{
		Policy:                policy,
		Hasher:                testHasher(),
		DefaultClientPassword: "welcome123",
		SeedAdminPassword:     "adminpass",
		WithoutSeed:           true,
		Now:                   fixedClock,
		Jitter:                fixedJitter,
	})
	require.NoError(t, p.Load(context.Background()))
	return p, backend
}

// setupSeededPortal builds a portal that starts from the demo data set. A nil backend starts empty.
func setupSeededPortal(t *testing.T, backend *store.MemoryBackend) *Portal {
	t.Helper()
	if backend == nil {
		backend = store.NewMemoryBackend()
	}
	p := NewPortal(backend, nil, PortalOptions{
		Hasher:                testHasher(),
		DefaultClientPassword: "welcome123",
		SeedAdminPassword:     "adminpass",
		Now:                   fixedClock,
		Jitter:                fixedJitter,
	})
	require.NoError(t, p.Load(context.Background()))
	return p
}

func createTestClient(t *testing.T, p *Portal, username string) models.Client {
	t.Helper()
	client, err := p.ClientService.Create(context.Background(), ClientInput{
		Username: username,
		Name:     "Client " + username,
		Email:    username + "@example.com",
	})
	require.NoError(t, err)
	return client
}

func float64Ptr(v float64) *float64 { return &v }

func stringPtr(v string) *string { return &v }
