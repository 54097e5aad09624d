package store

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreCollection is the Firestore collection holding one document per entity collection
const FirestoreCollection = "portal_collections"

// FirestoreBackend stores each collection as a document with a JSON "payload" string field
type FirestoreBackend struct {
	client *firestore.Client
}

// NewFirestoreBackend wraps a Firestore client (see config.NewFirestoreClient)
func NewFirestoreBackend(client *firestore.Client) *FirestoreBackend {
	return &FirestoreBackend{client: client}
}

func (b *FirestoreBackend) Name() string {
	return "firestore"
}

func (b *FirestoreBackend) Read(ctx context.Context, key string) ([]byte, error) {
	snap, err := b.client.Collection(FirestoreCollection).Doc(key).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}

	payload, err := snap.DataAt("payload")
	if err != nil {
		return nil, fmt.Errorf("document %s has no payload: %w", key, err)
	}
	text, ok := payload.(string)
	if !ok {
		// the collection loader treats an unparsable payload as corruption
		return []byte("null"), nil
	}
	return []byte(text), nil
}

func (b *FirestoreBackend) Write(ctx context.Context, key string, data []byte) error {
	_, err := b.client.Collection(FirestoreCollection).Doc(key).Set(ctx, map[string]interface{}{
		"payload":    string(data),
		"updated_at": time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
