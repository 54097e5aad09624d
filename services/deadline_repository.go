package services

import (
	"context"
	"sort"
	"time"

	"github.com/kendall-kelly/furniture-portal-api/models"
	"github.com/kendall-kelly/furniture-portal-api/store"
	"github.com/kendall-kelly/furniture-portal-api/utils"
	"github.com/kendall-kelly/furniture-portal-api/validation"
	"go.uber.org/zap"
)

type DeadlineInput struct {
	Title   string
	Date    time.Time
	Type    models.DeadlineType
	Details *string
}

type DeadlinePatch struct {
	Title   *string
	Date    *time.Time
	Type    *models.DeadlineType
	Details *string
}

// DeadlineRepository stores client deadlines
type DeadlineRepository struct {
	deadlines *store.Collection[models.Deadline]
}

func NewDeadlineRepository(backend store.Backend, logger *zap.Logger, seed func() []models.Deadline) *DeadlineRepository {
	return &DeadlineRepository{
		deadlines: store.NewCollection(backend, logger, store.Options[models.Deadline]{
			Key:   "deadlines",
			ID:    func(d models.Deadline) string { return d.ID },
			Valid: func(d models.Deadline) bool { return d.ID != "" && d.Title != "" },
			Seed:  seed,
		}),
	}
}

func (r *DeadlineRepository) Load(ctx context.Context) error {
	return r.deadlines.Load(ctx)
}

// ListByOwner returns the deadlines of a client, earliest first
func (r *DeadlineRepository) ListByOwner(clientID string) []models.Deadline {
	deadlines := r.deadlines.List(func(d models.Deadline) bool { return d.ClientID == clientID })
	sort.SliceStable(deadlines, func(i, j int) bool { return deadlines[i].Date.Before(deadlines[j].Date) })
	return deadlines
}

func (r *DeadlineRepository) GetByID(id string) (models.Deadline, bool) {
	return r.deadlines.Get(id)
}

func validateDeadline(d models.Deadline) error {
	v := validation.Violations{}
	validation.Required("title", d.Title, v)
	validation.OneOf("type", d.Type.Valid(), v)
	if d.Date.IsZero() {
		v["date"] = "required"
	}
	return v.Err()
}

func (r *DeadlineRepository) Create(ctx context.Context, clientID string, input DeadlineInput) (models.Deadline, error) {
	deadline := models.Deadline{
		ID:       utils.NewID("dl"),
		ClientID: clientID,
		Title:    input.Title,
		Date:     input.Date.UTC(),
		Type:     input.Type,
		Details:  input.Details,
	}
	if err := validateDeadline(deadline); err != nil {
		return models.Deadline{}, err
	}
	return r.deadlines.Insert(ctx, deadline)
}

func (r *DeadlineRepository) Update(ctx context.Context, id string, patch DeadlinePatch) (models.Deadline, bool, error) {
	return r.deadlines.Update(ctx, id, func(d *models.Deadline) error {
		if patch.Title != nil {
			d.Title = *patch.Title
		}
		if patch.Date != nil {
			d.Date = patch.Date.UTC()
		}
		if patch.Type != nil {
			d.Type = *patch.Type
		}
		if patch.Details != nil {
			d.Details = patch.Details
		}
		return validateDeadline(*d)
	})
}

func (r *DeadlineRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.deadlines.Delete(ctx, id)
}

func (r *DeadlineRepository) DeleteByOwner(ctx context.Context, clientID string) (int, error) {
	return r.deadlines.DeleteWhere(ctx, func(d models.Deadline) bool { return d.ClientID == clientID })
}
