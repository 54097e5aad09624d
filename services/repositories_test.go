package services

import (
	"context"
	"testing"
	"time"

	"github.com/kendall-kelly/furniture-portal-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFurnitureRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	p, _ := setupTestPortal(t, PolicyFurnitureOnly)
	client := createTestClient(t, p, "eva")
	material := "Oak"

	created, err := p.Furniture.Create(ctx, client.ID, FurnitureInput{
		Name:                    "Dining table",
		Description:             "Eight seats",
		ImageURLs:               []string{"uploads/table.png"},
		Status:                  models.StatusDescriptiveApproved,
		EstimatedCompletionDate: fixedNow.AddDate(0, 1, 0),
		Material:                &material,
		ProjectValue:            float64Ptr(3000),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Len(t, created.ManufacturingLog, 4)

	got, ok := p.Furniture.GetByID(created.ID)
	require.True(t, ok)
	assert.Equal(t, created, got)

	_, ok = p.Furniture.GetOwned(created.ID, "someone-else")
	assert.False(t, ok)
	_, ok = p.Furniture.GetOwned(created.ID, client.ID)
	assert.True(t, ok)
}

func TestFurnitureRepository_Defaults(t *testing.T) {
	p, _ := setupTestPortal(t, PolicyFurnitureOnly)

	item, err := p.Furniture.Create(context.Background(), "c1", FurnitureInput{Name: "Stool"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaymentApproved, item.Status)
	assert.Equal(t, []string{}, item.ImageURLs)
	require.Len(t, item.ManufacturingLog, 1)
	assert.Nil(t, item.ProjectValue)
}

func TestFurnitureRepository_Validation(t *testing.T) {
	ctx := context.Background()
	p, _ := setupTestPortal(t, PolicyFurnitureOnly)

	tests := []struct {
		name  string
		input FurnitureInput
		field string
	}{
		{"missing name", FurnitureInput{}, "name"},
		{"unknown status", FurnitureInput{Name: "x", Status: "Shipped"}, "status"},
		{"negative value", FurnitureInput{Name: "x", ProjectValue: float64Ptr(-1)}, "project_value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Furniture.Create(ctx, "c1", tt.input)
			require.Error(t, err)
			assert.True(t, IsValidationError(err))
			assert.Contains(t, err.Error(), tt.field)
		})
	}

	item, err := p.Furniture.Create(ctx, "c1", FurnitureInput{Name: "ok"})
	require.NoError(t, err)
	bad := models.FurnitureStatus("Lost")
	_, found, err := p.Furniture.Update(ctx, item.ID, FurniturePatch{Status: &bad})
	assert.True(t, found)
	assert.True(t, IsValidationError(err))

	stored, _ := p.Furniture.GetByID(item.ID)
	assert.Equal(t, models.StatusPaymentApproved, stored.Status, "rejected update leaves the item unchanged")
}

func TestFurnitureRepository_StatusUpdateWritesLog(t *testing.T) {
	ctx := context.Background()
	p, _ := setupTestPortal(t, PolicyFurnitureOnly)
	item, err := p.Furniture.Create(ctx, "c1", FurnitureInput{Name: "Bed", Status: models.StatusProductionStarted})
	require.NoError(t, err)

	next := models.StatusReadyForDelivery
	updated, found, err := p.Furniture.Update(ctx, item.ID, FurniturePatch{Status: &next, Actor: "admin1"})
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, next, updated.Status)
	require.Len(t, updated.ManufacturingLog, 6)
	assert.Equal(t, "admin1", updated.ManufacturingLog[5].Actor)

	_, found, err = p.Furniture.Update(ctx, "missing", FurniturePatch{Status: &next})
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestFurnitureRepository_CountByStatus(t *testing.T) {
	ctx := context.Background()
	p, _ := setupTestPortal(t, PolicyFurnitureOnly)
	_, err := p.Furniture.Create(ctx, "c1", FurnitureInput{Name: "a", Status: models.StatusCompleted})
	require.NoError(t, err)
	_, err = p.Furniture.Create(ctx, "c1", FurnitureInput{Name: "b", Status: models.StatusCompleted})
	require.NoError(t, err)

	counts := p.Furniture.CountByStatus()
	assert.Equal(t, 2, counts[models.StatusCompleted])
	assert.Equal(t, 0, counts[models.StatusPaymentApproved])
	assert.Len(t, counts, len(models.StageOrder))
}

func TestDeadlineRepository(t *testing.T) {
	ctx := context.Background()
	p, _ := setupTestPortal(t, PolicyFurnitureOnly)

	late, err := p.Deadlines.Create(ctx, "c1", DeadlineInput{Title: "Assembly", Date: fixedNow.AddDate(0, 0, 20), Type: models.DeadlineEstimatedAssembly})
	require.NoError(t, err)
	early, err := p.Deadlines.Create(ctx, "c1", DeadlineInput{Title: "Payment", Date: fixedNow, Type: models.DeadlinePayment})
	require.NoError(t, err)

	list := p.Deadlines.ListByOwner("c1")
	require.Len(t, list, 2)
	assert.Equal(t, early.ID, list[0].ID, "earliest first")
	assert.Equal(t, late.ID, list[1].ID)

	_, err = p.Deadlines.Create(ctx, "c1", DeadlineInput{Title: "Bad", Date: fixedNow, Type: "Installment"})
	assert.True(t, IsValidationError(err))
	_, err = p.Deadlines.Create(ctx, "c1", DeadlineInput{Title: "No date", Type: models.DeadlinePayment})
	assert.True(t, IsValidationError(err))

	newDate := fixedNow.AddDate(0, 0, -1)
	updated, found, err := p.Deadlines.Update(ctx, late.ID, DeadlinePatch{Date: &newDate})
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, newDate, updated.Date)
	assert.Equal(t, late.ID, p.Deadlines.ListByOwner("c1")[0].ID)

	deleted, err := p.Deadlines.Delete(ctx, late.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = p.Deadlines.Delete(ctx, late.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestAssistanceRepository_CreateDefaults(t *testing.T) {
	p, _ := setupTestPortal(t, PolicyFurnitureOnly)

	req, err := p.Assistance.Create(context.Background(), "c1", AssistanceInput{Subject: "Hinge", Description: "Loose hinge"})
	require.NoError(t, err)
	assert.Equal(t, models.AssistanceOpen, req.Status)
	assert.Equal(t, fixedNow, req.Date)
	assert.Equal(t, []string{}, req.ImageURLs)
	assert.Equal(t, 1, p.Assistance.CountPending())

	_, err = p.Assistance.Create(context.Background(), "c1", AssistanceInput{Subject: "Hinge"})
	assert.True(t, IsValidationError(err))
}

func TestAssistanceRepository_UpdatePreservesImages(t *testing.T) {
	ctx := context.Background()
	p, _ := setupTestPortal(t, PolicyFurnitureOnly)
	req, err := p.Assistance.Create(ctx, "c1", AssistanceInput{
		Subject:     "Door",
		Description: "Door misaligned",
		ImageURLs:   []string{"uploads/a.png", "uploads/b.png"},
	})
	require.NoError(t, err)

	scheduled := models.AssistanceScheduled
	updated, found, err := p.Assistance.Update(ctx, req.ID, AssistancePatch{Status: &scheduled})
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, models.AssistanceScheduled, updated.Status)
	assert.Equal(t, []string{"uploads/a.png", "uploads/b.png"}, updated.ImageURLs)

	resolved := models.AssistanceResolved
	notes := "  Technician adjusted the hinge.  "
	updated, _, err = p.Assistance.Update(ctx, req.ID, AssistancePatch{Status: &resolved, ResolutionNotes: &notes})
	require.NoError(t, err)
	require.NotNil(t, updated.ResolutionNotes)
	assert.Equal(t, notes, *updated.ResolutionNotes, "notes are stored verbatim")
	assert.Equal(t, 0, p.Assistance.CountPending())

	// any status may be set at any time
	open := models.AssistanceOpen
	updated, _, err = p.Assistance.Update(ctx, req.ID, AssistancePatch{Status: &open})
	require.NoError(t, err)
	assert.Equal(t, models.AssistanceOpen, updated.Status)

	assert.Equal(t, []string{"uploads/a.png", "uploads/b.png"}, updated.ImageURLs)

	bogus := models.AssistanceStatus("Escalated")
	_, found, err = p.Assistance.Update(ctx, req.ID, AssistancePatch{Status: &bogus})
	assert.True(t, found)
	assert.True(t, IsValidationError(err))
}

func TestAssistanceRepository_NewestFirst(t *testing.T) {
	ctx := context.Background()
	clock := fixedNow
	p, _ := setupTestPortal(t, PolicyFurnitureOnly)
	p.Assistance.now = func() time.Time { return clock }

	older, err := p.Assistance.Create(ctx, "c1", AssistanceInput{Subject: "Old", Description: "old"})
	require.NoError(t, err)
	clock = clock.Add(48 * time.Hour)
	newer, err := p.Assistance.Create(ctx, "c1", AssistanceInput{Subject: "New", Description: "new"})
	require.NoError(t, err)
	_, err = p.Assistance.Create(ctx, "c2", AssistanceInput{Subject: "Other", Description: "other"})
	require.NoError(t, err)

	list := p.Assistance.ListByOwner("c1")
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)
	assert.Len(t, p.Assistance.ListAll(), 3)
}

func TestMessageRepository(t *testing.T) {
	ctx := context.Background()
	clock := fixedNow
	p, _ := setupTestPortal(t, PolicyFurnitureOnly)
	p.Messages.now = func() time.Time { return clock }

	fromClient, err := p.Messages.Send(ctx, "c1", models.SenderClient, "Any news?")
	require.NoError(t, err)
	assert.True(t, fromClient.Read, "client messages are stored read")

	clock = clock.Add(time.Minute)
	fromAdmin, err := p.Messages.Send(ctx, "c1", models.SenderAdmin, "Production started")
	require.NoError(t, err)
	assert.False(t, fromAdmin.Read)

	clock = clock.Add(time.Minute)
	_, err = p.Messages.Send(ctx, "c1", models.SenderCompany, "Delivery scheduled")
	require.NoError(t, err)

	list := p.Messages.ListByOwner("c1")
	require.Len(t, list, 3)
	assert.Equal(t, fromClient.ID, list[0].ID, "oldest first")
	assert.Equal(t, 2, p.Messages.CountUnread("c1"))
	assert.Equal(t, 2, p.Messages.CountUnreadByClients())

	marked, err := p.Messages.MarkReadByClient(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 2, marked)
	assert.Equal(t, 0, p.Messages.CountUnread("c1"))

	_, err = p.Messages.Send(ctx, "c1", models.SenderClient, "   ")
	assert.True(t, IsValidationError(err))
	_, err = p.Messages.Send(ctx, "c1", models.SenderRole("robot"), "hi")
	assert.True(t, IsValidationError(err))
}

func TestPurchasedItemRepository_Validation(t *testing.T) {
	ctx := context.Background()
	p, _ := setupTestPortal(t, PolicyFurnitureOnly)

	_, err := p.PurchasedItems.Create(ctx, "c1", PurchasedItemInput{Name: "Chair", Quantity: 0, UnitPrice: 10})
	assert.True(t, IsValidationError(err))
	_, err = p.PurchasedItems.Create(ctx, "c1", PurchasedItemInput{Name: "Chair", Quantity: 1, UnitPrice: -10})
	assert.True(t, IsValidationError(err))

	item, err := p.PurchasedItems.Create(ctx, "c1", PurchasedItemInput{Name: "Chair", Quantity: 3, UnitPrice: 10})
	require.NoError(t, err)
	assert.Equal(t, 30.0, item.TotalPrice)

	_, found, err := p.PurchasedItems.Update(ctx, item.ID, PurchasedItemPatch{Quantity: intPtr(-1)})
	assert.True(t, found)
	assert.True(t, IsValidationError(err))
	stored, _ := p.PurchasedItems.GetByID(item.ID)
	assert.Equal(t, 3, stored.Quantity)
}

func TestAdminRepository(t *testing.T) {
	ctx := context.Background()
	p, _ := setupTestPortal(t, PolicyFurnitureOnly)

	admin, err := p.Admins.Create(ctx, AdminInput{Username: "root", Name: "Root", Password: "secret"})
	require.NoError(t, err)
	assert.NotEmpty(t, admin.PasswordHash)
	assert.NotEqual(t, "secret", admin.PasswordHash)

	_, err = p.Admins.Create(ctx, AdminInput{Username: "root", Name: "Again", Password: "secret"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
	_, err = p.Admins.Create(ctx, AdminInput{Username: "nopass", Name: "No Pass", Password: " "})
	assert.ErrorIs(t, err, ErrPasswordRequired)

	assert.ErrorIs(t, p.Admins.ChangePassword(ctx, admin.ID, "wrong", "new"), ErrIncorrectPassword)
	assert.ErrorIs(t, p.Admins.ChangePassword(ctx, admin.ID, "secret", ""), ErrPasswordRequired)
	assert.ErrorIs(t, p.Admins.ChangePassword(ctx, "missing", "secret", "new"), ErrAdminNotFound)
	require.NoError(t, p.Admins.ChangePassword(ctx, admin.ID, "secret", "new-secret"))

	_, ok := p.Admins.Authenticate("root", "new-secret")
	assert.True(t, ok)
	_, ok = p.Admins.Authenticate("root", "secret")
	assert.False(t, ok)
}
