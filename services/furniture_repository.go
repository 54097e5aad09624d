package services

import (
	"context"
	"errors"
	"time"

	"github.com/kendall-kelly/furniture-portal-api/models"
	"github.com/kendall-kelly/furniture-portal-api/store"
	"github.com/kendall-kelly/furniture-portal-api/utils"
	"github.com/kendall-kelly/furniture-portal-api/validation"
	"go.uber.org/zap"
)

// FurnitureInput holds the fields of a new furniture item
type FurnitureInput struct {
	Name                    string
	Description             string
	ImageURLs               []string
	Status                  models.FurnitureStatus // defaults to the first stage
	EstimatedCompletionDate time.Time
	Dimensions              *string
	Material                *string
	ProjectValue            *float64
}

// FurniturePatch holds the fields to change on a furniture item. nil fields are left untouched.
type FurniturePatch struct {
	Name                    *string
	Description             *string
	ImageURLs               *[]string
	Status                  *models.FurnitureStatus
	EstimatedCompletionDate *time.Time
	Dimensions              *string
	Material                *string
	ProjectValue            *float64
	// Actor and Notes annotate the log entry written on a status change
	Actor string
	Notes string
}

// FurnitureRepository stores furniture items and keeps their manufacturing log in sync
type FurnitureRepository struct {
	items    *store.Collection[models.FurnitureItem]
	timeline *Timeline
	bus      *EventBus
	logger   *zap.Logger
}

// NewFurnitureRepository creates the repository. seed may be nil.
func NewFurnitureRepository(backend store.Backend, logger *zap.Logger, timeline *Timeline, bus *EventBus, seed func() []models.FurnitureItem) *FurnitureRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FurnitureRepository{
		items: store.NewCollection(backend, logger, store.Options[models.FurnitureItem]{
			Key:   "furniture_items",
			ID:    func(f models.FurnitureItem) string { return f.ID },
			Valid: func(f models.FurnitureItem) bool { return f.ID != "" && f.Name != "" && f.Status.Valid() },
			Seed:  seed,
		}),
		timeline: timeline,
		bus:      bus,
		logger:   logger,
	}
}

func (r *FurnitureRepository) Load(ctx context.Context) error {
	return r.items.Load(ctx)
}

// ListAll returns every furniture item
func (r *FurnitureRepository) ListAll() []models.FurnitureItem {
	return r.items.List(nil)
}

// ListByOwner returns the furniture items of a client
func (r *FurnitureRepository) ListByOwner(clientID string) []models.FurnitureItem {
	return r.items.List(func(f models.FurnitureItem) bool { return f.ClientID == clientID })
}

// GetByID returns a furniture item by id
func (r *FurnitureRepository) GetByID(id string) (models.FurnitureItem, bool) {
	return r.items.Get(id)
}

// GetOwned returns the item only if it belongs to clientID
func (r *FurnitureRepository) GetOwned(id, clientID string) (models.FurnitureItem, bool) {
	item, ok := r.items.Get(id)
	if !ok || item.ClientID != clientID {
		return models.FurnitureItem{}, false
	}
	return item, true
}

// Create validates input, seeds the manufacturing log and stores a new item
func (r *FurnitureRepository) Create(ctx context.Context, clientID string, input FurnitureInput) (models.FurnitureItem, error) {
	if input.Status == "" {
		input.Status = models.StatusPaymentApproved
	}

	v := validation.Violations{}
	validation.Required("client_id", clientID, v)
	validation.Required("name", input.Name, v)
	validation.OneOf("status", input.Status.Valid(), v)
	if input.ProjectValue != nil {
		validation.NonNegativeFloat("project_value", *input.ProjectValue, v)
	}
	if err := v.Err(); err != nil {
		return models.FurnitureItem{}, err
	}

	log, err := r.timeline.SeedInitialLog(input.Status)
	if err != nil {
		return models.FurnitureItem{}, err
	}

	now := r.timeline.Now()
	item := models.FurnitureItem{
		ID:                      utils.NewID("furn"),
		ClientID:                clientID,
		Name:                    input.Name,
		Description:             input.Description,
		ImageURLs:               nonNilStrings(input.ImageURLs),
		Status:                  input.Status,
		EstimatedCompletionDate: input.EstimatedCompletionDate,
		ManufacturingLog:        log,
		Dimensions:              input.Dimensions,
		Material:                input.Material,
		ProjectValue:            input.ProjectValue,
		CreatedAt:               now,
		UpdatedAt:               now,
	}

	created, err := r.items.Insert(ctx, item)
	if err != nil {
		return models.FurnitureItem{}, err
	}
	r.publish(ctx, created.ClientID, created.ID, ItemCreated)
	return created, nil
}

// Update applies patch. A status change goes through the timeline engine.
func (r *FurnitureRepository) Update(ctx context.Context, id string, patch FurniturePatch) (models.FurnitureItem, bool, error) {
	v := validation.Violations{}
	if patch.Name != nil {
		validation.Required("name", *patch.Name, v)
	}
	if patch.Status != nil {
		validation.OneOf("status", patch.Status.Valid(), v)
	}
	if patch.ProjectValue != nil {
		validation.NonNegativeFloat("project_value", *patch.ProjectValue, v)
	}
	if err := v.Err(); err != nil {
		return models.FurnitureItem{}, r.exists(id), err
	}

	actor := patch.Actor
	if actor == "" {
		actor = ActorSystem
	}

	updated, found, err := r.items.Update(ctx, id, func(item *models.FurnitureItem) error {
		if patch.Name != nil {
			item.Name = *patch.Name
		}
		if patch.Description != nil {
			item.Description = *patch.Description
		}
		if patch.ImageURLs != nil {
			item.ImageURLs = nonNilStrings(*patch.ImageURLs)
		}
		if patch.EstimatedCompletionDate != nil {
			item.EstimatedCompletionDate = *patch.EstimatedCompletionDate
		}
		if patch.Dimensions != nil {
			item.Dimensions = patch.Dimensions
		}
		if patch.Material != nil {
			item.Material = patch.Material
		}
		if patch.ProjectValue != nil {
			item.ProjectValue = patch.ProjectValue
		}
		if patch.Status != nil {
			r.timeline.RecordStatusChange(item, *patch.Status, actor, patch.Notes)
		}
		item.UpdatedAt = r.timeline.Now()
		return nil
	})
	if err != nil || !found {
		return models.FurnitureItem{}, found, err
	}

	r.publish(ctx, updated.ClientID, updated.ID, ItemUpdated)
	return updated, true, nil
}

// Delete removes an item
func (r *FurnitureRepository) Delete(ctx context.Context, id string) (bool, error) {
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
func (r *FurnitureRepository) DeleteByOwner(ctx context.Context, clientID string) (int, error) {
	return r.items.DeleteWhere(ctx, func(f models.FurnitureItem) bool { return f.ClientID == clientID })
}

// CountByStatus returns how many items are in each stage
func (r *FurnitureRepository) CountByStatus() map[models.FurnitureStatus]int {
	counts := make(map[models.FurnitureStatus]int, len(models.StageOrder))
	for _, stage := range models.StageOrder {
		counts[stage] = 0
	}
	for _, item := range r.items.List(nil) {
		counts[item.Status]++
	}
	return counts
}

func (r *FurnitureRepository) exists(id string) bool {
	_, ok := r.items.Get(id)
	return ok
}

func (r *FurnitureRepository) publish(ctx context.Context, clientID, itemID string, op ItemOp) {
	notifyItemChanged(ctx, r.bus, r.logger, ItemChangedEvent{ClientID: clientID, Kind: ItemKindFurniture, ItemID: itemID, Op: op})
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}

// IsValidationError reports whether err carries field violations
func IsValidationError(err error) bool {
	var verr *validation.Error
	return errors.As(err, &verr)
}
