// Package store persists each page's last-known snapshot locally so a
// reopened page can render immediately while its initial fetch is in flight.
// The cache is best-effort: every failure degrades to a miss.
package store

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// snapshotRecord is one cached snapshot, keyed by page and filter.
type snapshotRecord struct {
	Page      string         `gorm:"primaryKey;size:64"`
	FilterKey string         `gorm:"primaryKey;size:255"`
	Payload   datatypes.JSON `gorm:"type:json"`
	UpdatedAt time.Time
}

// SnapshotStore is a sqlite-backed snapshot cache.
type SnapshotStore struct {
	db     *gorm.DB
	logger zerolog.Logger
}

// Open creates or opens the cache database at path.
func Open(path string, logger zerolog.Logger) (*SnapshotStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&snapshotRecord{}); err != nil {
		return nil, err
	}

	return &SnapshotStore{
		db:     db,
		logger: logger.With().Str("component", "snapshot_store").Logger(),
	}, nil
}

// Save upserts the snapshot for (page, key). The value is stored as opaque
// JSON; the cache makes no promise about its shape across SDK versions.
func (s *SnapshotStore) Save(page, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}

	record := snapshotRecord{
		Page:      page,
		FilterKey: key,
		Payload:   datatypes.JSON(payload),
		UpdatedAt: time.Now().UTC(),
	}

	return s.db.Save(&record).Error
}

// Load reads the snapshot for (page, key) into out. It returns false on a
// miss; decode failures count as misses because a stale shape is useless.
func (s *SnapshotStore) Load(page, key string, out any) (bool, error) {
	var record snapshotRecord
	err := s.db.Where("page = ? AND filter_key = ?", page, key).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil
		}
		return false, err
	}

	if err := json.Unmarshal(record.Payload, out); err != nil {
		s.logger.Debug().Err(err).Str("page", page).Msg("cached snapshot shape mismatch, treating as miss")
		return false, nil
	}
	return true, nil
}
