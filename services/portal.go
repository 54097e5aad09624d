package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kendall-kelly/furniture-portal-api/store"
	"go.uber.org/zap"
)

// PortalOptions configures NewPortal
type PortalOptions struct {
	Policy                ContractPolicy
	Hasher                PasswordHasher
	DefaultClientPassword string
	SeedAdminPassword     string
	// WithoutSeed starts missing or corrupt collections empty instead of with demo data
	WithoutSeed bool
	Now         func() time.Time
	Jitter      func() int
}

// Portal wires every repository and engine over one backend
type Portal struct {
	Clients        *ClientRepository
	Admins         *AdminRepository
	Furniture      *FurnitureRepository
	Deadlines      *DeadlineRepository
	Assistance     *AssistanceRepository
	Messages       *MessageRepository
	PurchasedItems *PurchasedItemRepository
	Contracts      *ContractRepository

	Timeline   *Timeline
	Bus        *EventBus
	Aggregator *ContractAggregator

	ClientService *ClientService
	Dashboard     *DashboardService
	Reports       *ReportService

	backend store.Backend
	logger  *zap.Logger
}

// NewPortal builds the repositories. Call Load before serving.
func NewPortal(backend store.Backend, logger *zap.Logger, opts PortalOptions) *Portal {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Hasher == nil {
		opts.Hasher = BcryptHasher{}
	}
	if opts.Policy == "" {
		opts.Policy = PolicyFurnitureOnly
	}

	timeline := NewTimeline(opts.Now, opts.Jitter)
	bus := NewEventBus()
	seed := SeedData{
		Timeline:       timeline,
		Hasher:         opts.Hasher,
		ClientPassword: opts.DefaultClientPassword,
		AdminPassword:  opts.SeedAdminPassword,
		Logger:         logger,
	}

	p := &Portal{
		Timeline: timeline,
		Bus:      bus,
		backend:  backend,
		logger:   logger,
	}

	if opts.WithoutSeed {
		p.Clients = NewClientRepository(backend, logger, opts.Hasher, opts.DefaultClientPassword, nil)
		p.Admins = NewAdminRepository(backend, logger, opts.Hasher, nil)
		p.Furniture = NewFurnitureRepository(backend, logger, timeline, bus, nil)
		p.Deadlines = NewDeadlineRepository(backend, logger, nil)
		p.Assistance = NewAssistanceRepository(backend, logger, opts.Now, nil)
		p.Messages = NewMessageRepository(backend, logger, opts.Now, nil)
		p.PurchasedItems = NewPurchasedItemRepository(backend, logger, bus, nil)
		p.Contracts = NewContractRepository(backend, logger, nil)
	} else {
		p.Clients = NewClientRepository(backend, logger, opts.Hasher, opts.DefaultClientPassword, seed.Clients)
		p.Admins = NewAdminRepository(backend, logger, opts.Hasher, seed.Admins)
		p.Furniture = NewFurnitureRepository(backend, logger, timeline, bus, seed.Furniture)
		p.Deadlines = NewDeadlineRepository(backend, logger, seed.Deadlines)
		p.Assistance = NewAssistanceRepository(backend, logger, opts.Now, seed.AssistanceRequests)
		p.Messages = NewMessageRepository(backend, logger, opts.Now, seed.Messages)
		p.PurchasedItems = NewPurchasedItemRepository(backend, logger, bus, seed.PurchasedItems)
		p.Contracts = NewContractRepository(backend, logger, seed.Contracts)
	}

	p.Aggregator = NewContractAggregator(p.Contracts, p.Furniture, p.PurchasedItems, p.Clients, opts.Policy, logger)
	if opts.Now != nil {
		p.Aggregator.now = opts.Now
		p.Clients.now = opts.Now
	}
	bus.Subscribe(p.Aggregator.HandleItemChanged)

	p.ClientService = NewClientService(p)
	p.Dashboard = NewDashboardService(p)
	p.Reports = NewReportService(p)
	return p
}

// BackendName returns the name of the storage backend in use
func (p *Portal) BackendName() string {
	return p.backend.Name()
}

// Ping reads the clients collection to check the backend is reachable
func (p *Portal) Ping(ctx context.Context) error {
	_, err := p.backend.Read(ctx, "clients")
	if err != nil && !errors.Is(err, store.ErrKeyNotFound) {
		return fmt.Errorf("%s backend unreachable: %w", p.backend.Name(), err)
	}
	return nil
}

// Load reads every collection and refreshes all contract totals
func (p *Portal) Load(ctx context.Context) error {
	loaders := []struct {
		name string
		load func(context.Context) error
	}{
		{"clients", p.Clients.Load},
		{"admins", p.Admins.Load},
		{"furniture_items", p.Furniture.Load},
		{"deadlines", p.Deadlines.Load},
		{"assistance_requests", p.Assistance.Load},
		{"messages", p.Messages.Load},
		{"purchased_items", p.PurchasedItems.Load},
		{"contracts", p.Contracts.Load},
	}
	for _, l := range loaders {
		if err := l.load(ctx); err != nil {
			return fmt.Errorf("failed to load %s: %w", l.name, err)
		}
	}

	if err := p.Aggregator.RecalculateAll(ctx); err != nil {
		return fmt.Errorf("failed to recalculate contract totals: %w", err)
	}
	p.logger.Info("portal data loaded", zap.String("backend", p.backend.Name()))
	return nil
}
