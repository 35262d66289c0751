package warehouse

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wareline/wareline/internal/warehouse/model"
)

// ScanEventRecord is one applied or rejected scan in the audit journal.
// The journal is append-only; undo writes its own event instead of deleting.
type ScanEventRecord struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Workflow  model.Workflow `gorm:"type:varchar(20);index;not null" json:"workflow"`
	ItemID    string         `gorm:"type:varchar(100);index" json:"itemId"`
	Operator  string         `gorm:"type:varchar(100);index" json:"operator,omitempty"`
	RawToken  string         `gorm:"type:varchar(200)" json:"rawToken"`
	Requested int            `gorm:"not null" json:"requested"`
	Applied   int            `gorm:"not null" json:"applied"`
	Success   bool           `gorm:"not null" json:"success"`
	Reason    string         `gorm:"type:varchar(50)" json:"reason,omitempty"`
	Undo      bool           `gorm:"not null" json:"undo"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName returns the table name for ScanEventRecord.
func (ScanEventRecord) TableName() string {
	return "scan_events"
}

// ScanJournal persists scan events for audit and troubleshooting. It is an
// optional collaborator; a nil journal disables journaling.
type ScanJournal struct {
	db *gorm.DB
}

// NewScanJournal migrates the journal table and returns the journal.
func NewScanJournal(db *gorm.DB) (*ScanJournal, error) {
	if db == nil {
		return nil, fmt.Errorf("database cannot be nil")
	}
	if err := db.AutoMigrate(&ScanEventRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate scan events: %w", err)
	}
	return &ScanJournal{db: db}, nil
}

// Record appends one event. The caller fills everything but ID.
func (j *ScanJournal) Record(ctx context.Context, event ScanEventRecord) error {
	if j == nil {
		return nil
	}
	event.ID = uuid.New()
	if err := j.db.WithContext(ctx).Create(&event).Error; err != nil {
		return fmt.Errorf("failed to record scan event: %w", err)
	}
	return nil
}

// Recent returns the newest events for a workflow, newest first.
func (j *ScanJournal) Recent(ctx context.Context, workflow model.Workflow, limit int) ([]ScanEventRecord, error) {
	if j == nil {
		return nil, nil
	}
	var events []ScanEventRecord
	err := j.db.WithContext(ctx).
		Where("workflow = ?", workflow).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query scan events: %w", err)
	}
	return events, nil
}
