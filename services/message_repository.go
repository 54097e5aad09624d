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

// MessageRepository stores the conversation between each client and the company
type MessageRepository struct {
	messages *store.Collection[models.Message]
	now      func() time.Time
}

func NewMessageRepository(backend store.Backend, logger *zap.Logger, now func() time.Time, seed func() []models.Message) *MessageRepository {
	if now == nil {
		now = time.Now
	}
	return &MessageRepository{
		messages: store.NewCollection(backend, logger, store.Options[models.Message]{
			Key:   "messages",
			ID:    func(m models.Message) string { return m.ID },
			Valid: func(m models.Message) bool { return m.ID != "" && m.Content != "" },
			Seed:  seed,
		}),
		now: now,
	}
}

func (r *MessageRepository) Load(ctx context.Context) error {
	return r.messages.Load(ctx)
}

// ListByOwner returns a client's conversation, oldest first
func (r *MessageRepository) ListByOwner(clientID string) []models.Message {
	messages := r.messages.List(func(m models.Message) bool { return m.ClientID == clientID })
	sort.SliceStable(messages, func(i, j int) bool { return messages[i].Timestamp.Before(messages[j].Timestamp) })
	return messages
}

func (r *MessageRepository) GetByID(id string) (models.Message, bool) {
	return r.messages.Get(id)
}

// Send appends a message. Messages from the client are stored read; company and admin
// messages stay unread until the client reads the conversation.
func (r *MessageRepository) Send(ctx context.Context, clientID string, sender models.SenderRole, content string) (models.Message, error) {
	v := validation.Violations{}
	validation.Required("client_id", clientID, v)
	validation.Required("content", content, v)
	validation.OneOf("sender", sender.Valid(), v)
	if err := v.Err(); err != nil {
		return models.Message{}, err
	}

	return r.messages.Insert(ctx, models.Message{
		ID:        utils.NewSequentialID(),
		ClientID:  clientID,
		Sender:    sender,
		Content:   content,
		Timestamp: r.now().UTC(),
		Read:      sender == models.SenderClient,
	})
}

// MarkReadByClient marks every unread company/admin message of a client as read
func (r *MessageRepository) MarkReadByClient(ctx context.Context, clientID string) (int, error) {
	return r.messages.UpdateWhere(ctx, func(m models.Message) bool {
		return m.ClientID == clientID && !m.Read && m.Sender != models.SenderClient
	}, func(m *models.Message) {
		m.Read = true
	})
}

// CountUnreadByClients returns how many company/admin messages clients have not read yet
func (r *MessageRepository) CountUnreadByClients() int {
	return r.messages.Count(func(m models.Message) bool { return !m.Read && m.Sender != models.SenderClient })
}

// CountUnread returns the unread messages of a single client
func (r *MessageRepository) CountUnread(clientID string) int {
	return r.messages.Count(func(m models.Message) bool {
		return m.ClientID == clientID && !m.Read && m.Sender != models.SenderClient
	})
}

func (r *MessageRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.messages.Delete(ctx, id)
}

func (r *MessageRepository) DeleteByOwner(ctx context.Context, clientID string) (int, error) {
	return r.messages.DeleteWhere(ctx, func(m models.Message) bool { return m.ClientID == clientID })
}
