// Package store provides the persistent warning store and its aggregation
// queries. It owns the warnings table: every write and every guild-scoped
// read goes through this package.
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/PancyStudios/ModBotGo/pkg/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Warning es una advertencia individual. Records are immutable once written;
// there is no update or delete path.
type Warning struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      string `gorm:"not null;index:idx_warnings_user_guild" json:"userId"`
	ModeratorID string `gorm:"not null" json:"moderatorId"`
	Reason      string `gorm:"not null" json:"reason"`
	Timestamp   int64  `gorm:"not null" json:"timestamp"`
	GuildID     string `gorm:"not null;index:idx_warnings_user_guild;index:idx_warnings_guild" json:"guildId"`
}

// TableName keeps the legacy table name instead of gorm's pluralized default.
func (Warning) TableName() string { return "warnings" }

// Store manages the SQLite connection shared by all command handlers and the
// heartbeat reporter. Individual operations are atomic; callers never
// coordinate locks themselves.
type Store struct {
	db *gorm.DB
}

var (
	instance *Store
	once     sync.Once
)

// Init initializes the global store instance
func Init(path string) (*Store, error) {
	var err error
	once.Do(func() {
		instance, err = Open(path)
	})
	return instance, err
}

// Get returns the global store instance
func Get() *Store {
	return instance
}

// Open opens (creating if needed) the warnings database at path and runs the
// schema migration. Use ":memory:" for an in-memory database.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("store: creating database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("store: opening database: %w", err)
	}

	sqldb, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("store: getting sql handle: %w", err)
	}

	// SQLite serializa las escrituras; una única conexión evita SQLITE_BUSY
	// entre handlers concurrentes.
	sqldb.SetMaxOpenConns(1)
	sqldb.SetConnMaxIdleTime(time.Hour)

	if err := db.Exec("PRAGMA journal_mode=WAL;").Error; err != nil {
		return nil, fmt.Errorf("store: setting journal mode: %w", err)
	}
	if err := db.Exec("PRAGMA synchronous=normal;").Error; err != nil {
		return nil, fmt.Errorf("store: setting synchronous mode: %w", err)
	}

	if err := db.AutoMigrate(&Warning{}); err != nil {
		return nil, fmt.Errorf("store: migrating warnings table: %w", err)
	}

	logger.Success("Base de datos de advertencias lista: "+path, "Store")
	return &Store{db: db}, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	sqldb, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqldb.Close()
}

// Ping verifies the database handle and measures the response time.
func (s *Store) Ping(ctx context.Context) (time.Duration, error) {
	sqldb, err := s.db.DB()
	if err != nil {
		return 0, err
	}
	start := time.Now()
	err = sqldb.PingContext(ctx)
	return time.Since(start), err
}

// AddWarning persists a new warning and returns its id. The timestamp is
// assigned here from the server clock, never by the caller. The record is
// durable before this returns nil.
func (s *Store) AddWarning(ctx context.Context, userID, moderatorID, guildID, reason string) (int64, error) {
	w := Warning{
		UserID:      userID,
		ModeratorID: moderatorID,
		GuildID:     guildID,
		Reason:      reason,
		Timestamp:   time.Now().Unix(),
	}

	if err := s.db.WithContext(ctx).Create(&w).Error; err != nil {
		return 0, fmt.Errorf("store: inserting warning: %w", err)
	}
	return w.ID, nil
}

// RecentWarnings returns at most limit warnings for the (user, guild) pair,
// newest first. Ties on timestamp fall back to insertion order. An empty
// slice is not an error.
func (s *Store) RecentWarnings(ctx context.Context, userID, guildID string, limit int) ([]Warning, error) {
	var rows []Warning
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND guild_id = ?", userID, guildID).
		Order("timestamp DESC, id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("store: querying warnings for user %s: %w", userID, err)
	}
	return rows, nil
}

// TotalWarnings counts the warnings in a guild, or across all guilds when
// guildID is empty. The global form exists for the heartbeat reporter only.
func (s *Store) TotalWarnings(ctx context.Context, guildID string) (int64, error) {
	var count int64
	q := s.db.WithContext(ctx).Model(&Warning{})
	if guildID != "" {
		q = q.Where("guild_id = ?", guildID)
	}
	if err := q.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("store: counting warnings: %w", err)
	}
	return count, nil
}
