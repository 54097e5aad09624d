package models

import (
	"time"

	"gorm.io/datatypes"
)

// CollectionRecord stores one serialized entity collection in the SQL backend
type CollectionRecord struct {
	Key       string         `gorm:"primaryKey;size:128" json:"key"`
	Payload   datatypes.JSON `gorm:"not null" json:"payload"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// TableName specifies the table name for the CollectionRecord model
func (CollectionRecord) TableName() string {
	return "portal_collections"
}
