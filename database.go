package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// RunStore records run results for later review. It is an optional side
// channel: the run log file stays the source of truth.
type RunStore interface {
	SaveEntries(runID string, entries []RunLogEntry) error
}

// BannerRecord is one produced (or failed) banner within a run.
type BannerRecord struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	RunID       string         `gorm:"column:runId;type:uuid;not null"`
	RunDate     string         `gorm:"column:runDate;not null"`
	ProductName string         `gorm:"column:productName;not null;type:text"`
	Headline    string         `gorm:"type:text"`
	Subheadline string         `gorm:"type:text"`
	Scene       string         `gorm:"type:text"`
	Prompt      string         `gorm:"type:text"`
	Keywords    pq.StringArray `gorm:"type:text[];default:'{}'"`
	Filename    string         `gorm:"type:text"`
	Status      string         `gorm:"not null"`
	Step        string         `gorm:"type:text"`
	Error       string         `gorm:"type:text"`
	CreatedAt   time.Time      `gorm:"column:createdAt;default:CURRENT_TIMESTAMP"`
}

func (BannerRecord) TableName() string {
	return "banner_record"
}

// PostgresRunStore persists run history through GORM.
type PostgresRunStore struct {
	db *gorm.DB
}

func NewPostgresRunStore(dbURL string) (*PostgresRunStore, error) {
	db, err := gorm.Open(postgres.Open(dbURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&BannerRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate banner_record table: %v", err)
	}
	return &PostgresRunStore{db: db}, nil
}

func (s *PostgresRunStore) SaveEntries(runID string, entries []RunLogEntry) error {
	records := recordsFromEntries(runID, entries)
	if len(records) == 0 {
		return nil
	}
	if err := s.db.Create(&records).Error; err != nil {
		return fmt.Errorf("error saving run history: %v", err)
	}
	return nil
}

// recordsFromEntries flattens log entries into database rows. Failed
// entries carry no content, so their copy columns stay empty.
func recordsFromEntries(runID string, entries []RunLogEntry) []BannerRecord {
	records := make([]BannerRecord, 0, len(entries))
	for _, entry := range entries {
		record := BannerRecord{
			ID:          uuid.New(),
			RunID:       runID,
			RunDate:     entry.Date,
			ProductName: entry.Project,
			Filename:    entry.Filename,
			Status:      entry.Status,
			Step:        entry.Step,
			Error:       entry.Error,
		}
		if entry.Content != nil {
			record.Headline = entry.Content.Headline
			record.Subheadline = entry.Content.Subheadline
			record.Scene = entry.Content.Scene
			record.Prompt = entry.Content.Prompt
			record.Keywords = pq.StringArray(entry.Content.Keywords)
		}
		records = append(records, record)
	}
	return records
}
