package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kendall-kelly/furniture-portal-api/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBackend stores each collection as one row of the portal_collections table
type GormBackend struct {
	db *gorm.DB
}

// NewGormBackend wraps an open database. The table must exist (see config.RunMigrations).
func NewGormBackend(db *gorm.DB) *GormBackend {
	return &GormBackend{db: db}
}

func (b *GormBackend) Name() string {
	return "sql"
}

func (b *GormBackend) Read(ctx context.Context, key string) ([]byte, error) {
	var record models.CollectionRecord
	err := b.db.WithContext(ctx).Where(&models.CollectionRecord{Key: key}).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return []byte(record.Payload), nil
}

func (b *GormBackend) Write(ctx context.Context, key string, data []byte) error {
	record := models.CollectionRecord{
		Key:       key,
		Payload:   datatypes.JSON(data),
		UpdatedAt: time.Now().UTC(),
	}
	err := b.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
