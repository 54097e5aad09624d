package services

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// ItemKind identifies which priced collection changed
type ItemKind string

const (
	ItemKindFurniture ItemKind = "furniture"
	ItemKindPurchased ItemKind = "purchased_item"
)

// ItemOp is the committed mutation
type ItemOp string

const (
	ItemCreated ItemOp = "created"
	ItemUpdated ItemOp = "updated"
	ItemDeleted ItemOp = "deleted"
)

// ItemChangedEvent is published after a furniture or purchased item write has been persisted
type ItemChangedEvent struct {
	ClientID string
	Kind     ItemKind
	ItemID   string
	Op       ItemOp
}

// ItemChangedHandler reacts to an ItemChangedEvent
type ItemChangedHandler func(ctx context.Context, event ItemChangedEvent) error

// EventBus delivers events synchronously to every subscriber in subscription order
type EventBus struct {
	mu       sync.RWMutex
	handlers []ItemChangedHandler
}

// NewEventBus creates an event bus with no subscribers
func NewEventBus() *EventBus {
	return &EventBus{}
}

// Subscribe registers a handler
func (b *EventBus) Subscribe(handler ItemChangedHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, handler)
}

// Publish calls every handler and joins their errors
func (b *EventBus) Publish(ctx context.Context, event ItemChangedEvent) error {
	b.mu.RLock()
	handlers := make([]ItemChangedHandler, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// notifyItemChanged publishes after a committed write. The write stands even if a handler fails,
// so failures are logged rather than returned.
func notifyItemChanged(ctx context.Context, bus *EventBus, logger *zap.Logger, event ItemChangedEvent) {
	if bus == nil {
		return
	}
	if err := bus.Publish(ctx, event); err != nil {
		logger.Warn("item change handler failed",
			zap.String("client_id", event.ClientID),
			zap.String("kind", string(event.Kind)),
			zap.String("item_id", event.ItemID),
			zap.String("op", string(event.Op)),
			zap.Error(err),
		)
	}
}
