package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// snapshotKey is the fixed storage key the whole-state document lives
// under, mirroring the single-document layout of the durable store.
const snapshotKey = "planhub-data"

// record is a row in the key/value snapshot table
type record struct {
	Key       string `gorm:"primarykey"`
	Data      []byte
	UpdatedAt time.Time
}

// Storage persists the serialized snapshot in a SQLite file. It
// implements store.Persister: the document is read once at startup and
// overwritten on every mutation.
type Storage struct {
	db *gorm.DB
}

// Open connects to the snapshot database at dbPath, creating the
// parent directory and schema as needed
func Open(dbPath string) (*Storage, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Quiet by default
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&record{}); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Storage{db: db}, nil
}

// Load reads the stored snapshot document, or (nil, nil) if none has
// been written yet
func (s *Storage) Load() ([]byte, error) {
	var rec record
	err := s.db.First(&rec, "key = ?", snapshotKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec.Data, nil
}

// Save overwrites the stored snapshot document
func (s *Storage) Save(data []byte) error {
	rec := record{Key: snapshotKey, Data: data, UpdatedAt: time.Now()}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		UpdateAll: true,
	}).Create(&rec).Error
}

// Close closes the underlying database connection
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
