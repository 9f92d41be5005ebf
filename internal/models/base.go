package models

import "time"

// KVEntry is one row of the key-value table that backs the record store when
// it runs on SQLite or PostgreSQL. Value holds the JSON-encoded record.
type KVEntry struct {
	Key       string    `gorm:"primaryKey;size:255" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName pins the table name used by migrations.
func (KVEntry) TableName() string {
	return "kv_entries"
}
