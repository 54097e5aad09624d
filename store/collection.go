package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Options configures a Collection
type Options[T any] struct {
	// Key is the backend document key (e.g. "furniture")
	Key string
	// ID returns the identifier of a record
	ID func(T) string
	// Valid is the structural predicate every stored record must satisfy
	Valid func(T) bool
	// Seed returns the default records used on first start and after corruption
	Seed func() []T
}

// Collection holds the in-memory copy of one entity collection and persists every mutation
// as one document write. A failed write leaves memory unchanged.
type Collection[T any] struct {
	key     string
	id      func(T) string
	valid   func(T) bool
	seed    func() []T
	backend Backend
	logger  *zap.Logger

	mu      sync.RWMutex
	records []T
}

// NewCollection creates an empty, unloaded collection
func NewCollection[T any](backend Backend, logger *zap.Logger, opts Options[T]) *Collection[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	valid := opts.Valid
	if valid == nil {
		valid = func(T) bool { return true }
	}
	seed := opts.Seed
	if seed == nil {
		seed = func() []T { return nil }
	}
	return &Collection[T]{
		key:     opts.Key,
		id:      opts.ID,
		valid:   valid,
		seed:    seed,
		backend: backend,
		logger:  logger.With(zap.String("collection", opts.Key)),
		records: []T{},
	}
}

// Key returns the backend document key
func (c *Collection[T]) Key() string {
	return c.key
}

// Load reads the collection from the backend. A missing document is seeded; an
// undecodable or structurally invalid document is replaced by the seed and overwritten.
func (c *Collection[T]) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := c.backend.Read(ctx, c.key)
	if errors.Is(err, ErrKeyNotFound) {
		c.logger.Info("no stored data, initializing with defaults")
		return c.resetToSeed(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to read collection %s: %w", c.key, err)
	}

	records, decodeErr := c.decode(data)
	if decodeErr != nil {
		c.logger.Warn("stored data is invalid, falling back to defaults", zap.Error(decodeErr))
		return c.resetToSeed(ctx)
	}

	c.records = records
	c.logger.Info("loaded collection", zap.Int("count", len(records)))
	return nil
}

func (c *Collection[T]) decode(data []byte) ([]T, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("payload is not a JSON array: %w", err)
	}
	if raw == nil {
		return nil, errors.New("payload is null")
	}
	records := make([]T, 0, len(raw))
	for i, item := range raw {
		var record T
		if err := json.Unmarshal(item, &record); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if !c.valid(record) {
			return nil, fmt.Errorf("record %d fails shape check", i)
		}
		records = append(records, record)
	}
	return records, nil
}

func (c *Collection[T]) resetToSeed(ctx context.Context) error {
	seeded := c.seed()
	if seeded == nil {
		seeded = []T{}
	}
	if err := c.persist(ctx, seeded); err != nil {
		return err
	}
	c.records = seeded
	return nil
}

// persist writes next to the backend. Caller holds the write lock.
func (c *Collection[T]) persist(ctx context.Context, next []T) error {
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("failed to encode collection %s: %w", c.key, err)
	}
	if err := c.backend.Write(ctx, c.key, data); err != nil {
		c.logger.Error("failed to persist collection", zap.Error(err))
		return fmt.Errorf("failed to write collection %s: %w", c.key, err)
	}
	return nil
}

// clone returns a deep copy so callers never alias stored records
func clone[T any](v T) T {
	data, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return v
	}
	return out
}

// List returns copies of all records matching pred (all records when pred is nil), in stored order
func (c *Collection[T]) List(pred func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, 0)
	for _, record := range c.records {
		if pred == nil || pred(record) {
			out = append(out, clone(record))
		}
	}
	return out
}

// Find returns a copy of the first record matching pred
func (c *Collection[T]) Find(pred func(T) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, record := range c.records {
		if pred(record) {
			return clone(record), true
		}
	}
	var zero T
	return zero, false
}

// Get returns a copy of the record with the given id
func (c *Collection[T]) Get(id string) (T, bool) {
	return c.Find(func(record T) bool { return c.id(record) == id })
}

// Count returns the number of records matching pred
func (c *Collection[T]) Count(pred func(T) bool) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, record := range c.records {
		if pred == nil || pred(record) {
			n++
		}
	}
	return n
}

// Insert appends record and persists the collection
func (c *Collection[T]) Insert(ctx context.Context, record T) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored := clone(record)
	next := make([]T, len(c.records), len(c.records)+1)
	copy(next, c.records)
	next = append(next, stored)
	if err := c.persist(ctx, next); err != nil {
		var zero T
		return zero, err
	}
	c.records = next
	return clone(stored), nil
}

// Update applies fn to a copy of the record with the given id and persists the result.
// fn may return an error to abort the update. Returns false when the id is unknown.
func (c *Collection[T]) Update(ctx context.Context, id string, fn func(*T) error) (T, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	idx := -1
	for i, record := range c.records {
		if c.id(record) == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return zero, false, nil
	}

	updated := clone(c.records[idx])
	if err := fn(&updated); err != nil {
		return zero, true, err
	}

	next := make([]T, len(c.records))
	copy(next, c.records)
	next[idx] = updated
	if err := c.persist(ctx, next); err != nil {
		return zero, true, err
	}
	c.records = next
	return clone(updated), true, nil
}

// Upsert replaces the record whose id matches record's id, or appends it
func (c *Collection[T]) Upsert(ctx context.Context, record T) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored := clone(record)
	next := make([]T, 0, len(c.records)+1)
	replaced := false
	for _, existing := range c.records {
		if c.id(existing) == c.id(stored) {
			next = append(next, stored)
			replaced = true
			continue
		}
		next = append(next, existing)
	}
	if !replaced {
		next = append(next, stored)
	}
	if err := c.persist(ctx, next); err != nil {
		var zero T
		return zero, err
	}
	c.records = next
	return clone(stored), nil
}

// Delete removes the record with the given id. Returns false when it did not exist.
func (c *Collection[T]) Delete(ctx context.Context, id string) (bool, error) {
	removed, err := c.DeleteWhere(ctx, func(record T) bool { return c.id(record) == id })
	return removed > 0, err
}

// DeleteWhere removes every record matching pred and returns how many were removed.
// Nothing is written when no record matches.
func (c *Collection[T]) DeleteWhere(ctx context.Context, pred func(T) bool) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := make([]T, 0, len(c.records))
	for _, record := range c.records {
		if !pred(record) {
			next = append(next, record)
		}
	}
	removed := len(c.records) - len(next)
	if removed == 0 {
		return 0, nil
	}
	if err := c.persist(ctx, next); err != nil {
		return 0, err
	}
	c.records = next
	return removed, nil
}

// UpdateWhere applies fn to every record matching pred in a single write and returns how many changed.
// Nothing is written when no record matches.
func (c *Collection[T]) UpdateWhere(ctx context.Context, pred func(T) bool, fn func(*T)) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := make([]T, len(c.records))
	copy(next, c.records)
	changed := 0
	for i, record := range next {
		if !pred(record) {
			continue
		}
		updated := clone(record)
		fn(&updated)
		next[i] = updated
		changed++
	}
	if changed == 0 {
		return 0, nil
	}
	if err := c.persist(ctx, next); err != nil {
		return 0, err
	}
	c.records = next
	return changed, nil
}
