package models

import (
	"time"

	"gorm.io/datatypes"
)

// KVRecord is one namespaced value in the SQL backend (one row per physical key)
type KVRecord struct {
	PhysicalKey string         `gorm:"primaryKey;type:varchar(320)" json:"physical_key"`
	Namespace   string         `gorm:"index;not null;type:varchar(160)" json:"namespace"` // prefix + user id, or the guest namespace
	LogicalKey  string         `gorm:"index;not null;type:varchar(128)" json:"logical_key"`
	Value       datatypes.JSON `json:"value"`

	Timestamps
}

func (KVRecord) TableName() string { return "kv_records" }

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
