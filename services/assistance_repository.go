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

// AssistanceInput is what a client submits when opening a request
type AssistanceInput struct {
	Subject     string
	Description string
	ImageURLs   []string
}

// AssistancePatch is an admin update. The image list stays as the client attached it.
type AssistancePatch struct {
	Subject         *string
	Description     *string
	Status          *models.AssistanceStatus
	ResolutionNotes *string
}

// AssistanceRepository stores assistance requests
type AssistanceRepository struct {
	requests *store.Collection[models.AssistanceRequest]
	now      func() time.Time
}

func NewAssistanceRepository(backend store.Backend, logger *zap.Logger, now func() time.Time, seed func() []models.AssistanceRequest) *AssistanceRepository {
	if now == nil {
		now = time.Now
	}
	return &AssistanceRepository{
		requests: store.NewCollection(backend, logger, store.Options[models.AssistanceRequest]{
			Key:   "assistance_requests",
			ID:    func(a models.AssistanceRequest) string { return a.ID },
			Valid: func(a models.AssistanceRequest) bool { return a.ID != "" && a.Subject != "" },
			Seed:  seed,
		}),
		now: now,
	}
}

func (r *AssistanceRepository) Load(ctx context.Context) error {
	return r.requests.Load(ctx)
}

func newestFirst(requests []models.AssistanceRequest) []models.AssistanceRequest {
	sort.SliceStable(requests, func(i, j int) bool { return requests[i].Date.After(requests[j].Date) })
	return requests
}

// ListAll returns every request, newest first
func (r *AssistanceRepository) ListAll() []models.AssistanceRequest {
	return newestFirst(r.requests.List(nil))
}

// ListByOwner returns the requests of a client, newest first
func (r *AssistanceRepository) ListByOwner(clientID string) []models.AssistanceRequest {
	return newestFirst(r.requests.List(func(a models.AssistanceRequest) bool { return a.ClientID == clientID }))
}

func (r *AssistanceRepository) GetByID(id string) (models.AssistanceRequest, bool) {
	return r.requests.Get(id)
}

// CountPending returns how many requests are Open or Under Review
func (r *AssistanceRepository) CountPending() int {
	return r.requests.Count(func(a models.AssistanceRequest) bool { return a.Status.Pending() })
}

// Create opens a new request dated now with status Open
func (r *AssistanceRepository) Create(ctx context.Context, clientID string, input AssistanceInput) (models.AssistanceRequest, error) {
	v := validation.Violations{}
	validation.Required("client_id", clientID, v)
	validation.Required("subject", input.Subject, v)
	validation.Required("description", input.Description, v)
	if err := v.Err(); err != nil {
		return models.AssistanceRequest{}, err
	}

	return r.requests.Insert(ctx, models.AssistanceRequest{
		ID:          utils.NewID("ar"),
		ClientID:    clientID,
		Date:        r.now().UTC(),
		Subject:     input.Subject,
		Description: input.Description,
		Status:      models.AssistanceOpen,
		ImageURLs:   nonNilStrings(input.ImageURLs),
	})
}

// Update applies an admin change. Any status may be set at any time.
func (r *AssistanceRepository) Update(ctx context.Context, id string, patch AssistancePatch) (models.AssistanceRequest, bool, error) {
	return r.requests.Update(ctx, id, func(a *models.AssistanceRequest) error {
		if patch.Subject != nil {
			a.Subject = *patch.Subject
		}
		if patch.Description != nil {
			a.Description = *patch.Description
		}
		if patch.Status != nil {
			a.Status = *patch.Status
		}
		if patch.ResolutionNotes != nil {
			a.ResolutionNotes = patch.ResolutionNotes
		}

		v := validation.Violations{}
		validation.Required("subject", a.Subject, v)
		validation.OneOf("status", a.Status.Valid(), v)
		return v.Err()
	})
}

func (r *AssistanceRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.requests.Delete(ctx, id)
}

func (r *AssistanceRepository) DeleteByOwner(ctx context.Context, clientID string) (int, error) {
	return r.requests.DeleteWhere(ctx, func(a models.AssistanceRequest) bool { return a.ClientID == clientID })
}
