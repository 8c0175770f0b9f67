package storage

import (
	"errors"
	"fmt"
	"os"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// Slot is one key-value row. The invoice collection lives in a single slot.
type Slot struct {
	Key   string `gorm:"primaryKey;size:255"`
	Value []byte
}

// TableName sets the table name used by gorm.
func (Slot) TableName() string { return "slots" }

// SQLite is a Medium backed by a local sqlite file via gorm.
type SQLite struct {
	db *gorm.DB
}

// Open opens (creating if needed) the sqlite database at path and migrates
// the slots table.
func Open(path string) (*SQLite, error) {
	logLevel := gormlogger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = gormlogger.Info
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	return NewSQLite(db)
}

// NewSQLite wraps an existing gorm connection. Tests use this with an
// in-memory dsn.
func NewSQLite(db *gorm.DB) (*SQLite, error) {
	if err := db.AutoMigrate(&Slot{}); err != nil {
		return nil, fmt.Errorf("migrate slots: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Get reads a slot. A missing key is (nil, false, nil), not an error.
func (s *SQLite) Get(key string) ([]byte, bool, error) {
	var slot Slot
	err := s.db.First(&slot, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read slot %s: %w", key, err)
	}
	return slot.Value, true, nil
}

// Set writes a slot, replacing any previous value in a single statement.
func (s *SQLite) Set(key string, value []byte) error {
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&Slot{Key: key, Value: value}).Error
	if err != nil {
		return fmt.Errorf("write slot %s: %w", key, err)
	}
	return nil
}
