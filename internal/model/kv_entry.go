package model

import "time"

// KVEntry is a single row of the local key-value storage.
type KVEntry struct {
	Key       string    `gorm:"primaryKey;size:128"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName pins the table name independent of GORM's pluralisation rules.
func (KVEntry) TableName() string {
	return "kv_entries"
}
