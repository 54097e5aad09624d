package services

import (
	"context"

	"github.com/kendall-kelly/furniture-portal-api/models"
	"github.com/kendall-kelly/furniture-portal-api/store"
	"github.com/kendall-kelly/furniture-portal-api/utils"
	"github.com/kendall-kelly/furniture-portal-api/validation"
	"go.uber.org/zap"
)

// PurchasedItemInput holds the fields of a new purchased item
type PurchasedItemInput struct {
	Name      string
	Quantity  int
	UnitPrice float64
	ImageURLs []string
	Details   *string
}

// PurchasedItemPatch holds the fields to change. nil fields are left untouched.
type PurchasedItemPatch struct {
	Name      *string
	Quantity  *int
	UnitPrice *float64
	ImageURLs *[]string
	Details   *string
}

// PurchasedItemRepository stores purchased items. TotalPrice is recomputed on every write.
type PurchasedItemRepository struct {
	items  *store.Collection[models.PurchasedItem]
	bus    *EventBus
	logger *zap.Logger
}

func NewPurchasedItemRepository(backend store.Backend, logger *zap.Logger, bus *EventBus, seed func() []models.PurchasedItem) *PurchasedItemRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PurchasedItemRepository{
		items: store.NewCollection(backend, logger, store.Options[models.PurchasedItem]{
			Key:   "purchased_items",
			ID:    func(p models.PurchasedItem) string { return p.ID },
			Valid: func(p models.PurchasedItem) bool { return p.ID != "" && p.Name != "" },
			Seed:  seed,
		}),
		bus:    bus,
		logger: logger,
	}
}

func (r *PurchasedItemRepository) Load(ctx context.Context) error {
	return r.items.Load(ctx)
}

func (r *PurchasedItemRepository) ListByOwner(clientID string) []models.PurchasedItem {
	return r.items.List(func(p models.PurchasedItem) bool { return p.ClientID == clientID })
}

func (r *PurchasedItemRepository) GetByID(id string) (models.PurchasedItem, bool) {
	return r.items.Get(id)
}

func validatePurchasedItem(item models.PurchasedItem) error {
	v := validation.Violations{}
	validation.Required("name", item.Name, v)
	validation.PositiveInt("quantity", item.Quantity, v)
	validation.NonNegativeFloat("unit_price", item.UnitPrice, v)
	return v.Err()
}

func (r *PurchasedItemRepository) Create(ctx context.Context, clientID string, input PurchasedItemInput) (models.PurchasedItem, error) {
	item := models.PurchasedItem{
		ID:        utils.NewID("pitem"),
		ClientID:  clientID,
		Name:      input.Name,
		Quantity:  input.Quantity,
		UnitPrice: input.UnitPrice,
		ImageURLs: nonNilStrings(input.ImageURLs),
		Details:   input.Details,
	}
	v := validation.Violations{}
	validation.Required("client_id", clientID, v)
	if err := v.Err(); err != nil {
		return models.PurchasedItem{}, err
	}
	if err := validatePurchasedItem(item); err != nil {
		return models.PurchasedItem{}, err
	}
	item.ComputeTotal()

	created, err := r.items.Insert(ctx, item)
	if err != nil {
		return models.PurchasedItem{}, err
	}
	r.publish(ctx, created.ClientID, created.ID, ItemCreated)
	return created, nil
}

func (r *PurchasedItemRepository) Update(ctx context.Context, id string, patch PurchasedItemPatch) (models.PurchasedItem, bool, error) {
	updated, found, err := r.items.Update(ctx, id, func(item *models.PurchasedItem) error {
		if patch.Name != nil {
			item.Name = *patch.Name
		}
		if patch.Quantity != nil {
			item.Quantity = *patch.Quantity
		}
		if patch.UnitPrice != nil {
			item.UnitPrice = *patch.UnitPrice
		}
		if patch.ImageURLs != nil {
			item.ImageURLs = nonNilStrings(*patch.ImageURLs)
		}
		if patch.Details != nil {
			item.Details = patch.Details
		}
		if err := validatePurchasedItem(*item); err != nil {
			return err
		}
		item.ComputeTotal()
		return nil
	})
	if err != nil || !found {
		return models.PurchasedItem{}, found, err
	}

	r.publish(ctx, updated.ClientID, updated.ID, ItemUpdated)
	return updated, true, nil
}

func (r *PurchasedItemRepository) Delete(ctx context.Context, id string) (bool, error) {
	item, ok := r.items.Get(id)
	if !ok {
		return false, nil
	}
	deleted, err := r.items.Delete(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}
	r.publish(ctx, item.ClientID, item.ID, ItemDeleted)
	return true, nil
}

// DeleteByOwner removes every item of a client without publishing events
func (r *PurchasedItemRepository) DeleteByOwner(ctx context.Context, clientID string) (int, error) {
	return r.items.DeleteWhere(ctx, func(p models.PurchasedItem) bool { return p.ClientID == clientID })
}

func (r *PurchasedItemRepository) publish(ctx context.Context, clientID, itemID string, op ItemOp) {
	notifyItemChanged(ctx, r.bus, r.logger, ItemChangedEvent{ClientID: clientID, Kind: ItemKindPurchased, ItemID: itemID, Op: op})
}
