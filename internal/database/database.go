package database

import (
	"fmt"
	"time"

	"storerating/internal/models"
	"storerating/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Config selects and tunes the database connection.
type Config struct {
	Driver   string // "postgres" or "sqlite"
	DSN      string
	LogLevel gormlogger.LogLevel
}

// Models lists every persisted model in dependency order.
func Models() []interface{} {
	return []interface{}{&models.User{}, &models.Store{}, &models.Rating{}}
}

// Open connects to the configured database. Driver errors are translated so
// repositories can match on gorm.ErrDuplicatedKey and friends.
func Open(cfg Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres", "":
		dialector = postgres.Open(cfg.DSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	level := cfg.LogLevel
	if level == 0 {
		level = gormlogger.Warn
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(level),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if cfg.Driver == "sqlite" {
		// one writer keeps in-memory databases alive and avoids SQLITE_BUSY
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}
	return db, nil
}

// Migrate creates missing tables, indexes and constraints.
func Migrate(db *gorm.DB) error {
	logger.Log.Info("Initializing database schema")
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	logger.Log.Info("Database schema initialized")
	return nil
}

// Reset drops every table and recreates the schema. Development only.
func Reset(db *gorm.DB) error {
	logger.Log.Warn("Dropping and recreating all tables")
	// reverse dependency order so foreign keys never block a drop
	for _, m := range []interface{}{&models.Rating{}, &models.Store{}, &models.User{}} {
		if err := db.Migrator().DropTable(m); err != nil {
			logger.Log.Error("Failed to drop table", zap.Error(err))
			return fmt.Errorf("failed to drop tables: %w", err)
		}
	}
	return Migrate(db)
}
