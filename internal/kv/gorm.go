package kv

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pocketledger/internal/models"
)

// GormStore keeps entries in the kv_entries table through GORM, so the same
// code runs on SQLite and PostgreSQL.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a store over db. The kv_entries table must exist; see
// database.Manager.Migrate.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) GetItem(key string) (string, bool, error) {
	var entry models.KVEntry
	if err := s.db.Where("key = ?", key).Take(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return entry.Value, true, nil
}

func (s *GormStore) SetItem(key, value string) error {
	entry := models.KVEntry{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (s *GormStore) RemoveItem(key string) error {
	return s.db.Where("key = ?", key).Delete(&models.KVEntry{}).Error
}

func (s *GormStore) Keys() ([]string, error) {
	var keys []string
	if err := s.db.Model(&models.KVEntry{}).Order("key").Pluck("key", &keys).Error; err != nil {
		return nil, err
	}
	return keys, nil
}

func (s *GormStore) Clear() error {
	return s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.KVEntry{}).Error
}
