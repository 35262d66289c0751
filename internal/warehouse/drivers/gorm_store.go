package drivers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/wareline/wareline/internal/warehouse"
	"github.com/wareline/wareline/internal/warehouse/model"
)

// SessionRecord is the database row holding one serialized session snapshot.
type SessionRecord struct {
	Key       string          `gorm:"type:varchar(100);primaryKey"`
	Snapshot  json.RawMessage `gorm:"type:json;not null"`
	CreatedAt time.Time       `gorm:"autoCreateTime"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime"`
}

// TableName returns the table name for SessionRecord.
func (SessionRecord) TableName() string {
	return "session_snapshots"
}

// GormStore persists session snapshots in a relational database.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore migrates the snapshot table and returns the store.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database cannot be nil")
	}
	if err := db.AutoMigrate(&SessionRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate session snapshots: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) Load(ctx context.Context, key string) (*model.Session, error) {
	var record SessionRecord
	if err := s.db.WithContext(ctx).First(&record, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, warehouse.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to load session snapshot: %w", err)
	}

	session := model.NewSession()
	if err := json.Unmarshal(record.Snapshot, session); err != nil {
		return nil, fmt.Errorf("corrupt session snapshot %q: %w", key, err)
	}
	return session, nil
}

func (s *GormStore) Save(ctx context.Context, key string, session *model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	record := SessionRecord{Key: key, Snapshot: data}
	if err := s.db.WithContext(ctx).Save(&record).Error; err != nil {
		return fmt.Errorf("failed to save session snapshot: %w", err)
	}
	return nil
}
