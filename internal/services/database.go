package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/greenpitch/greenpitch/internal/models"
)

// Database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// InitDB opens the database with connection pooling
func InitDB(driver, dsn string, logLevel logger.LogLevel) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverPostgres, "":
		dialector = postgres.Open(dsn)
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}

	// Get underlying sql.DB to configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	slog.Info("database connection established", "driver", driver)
	return db, nil
}

// AutoMigrate runs database migrations for all models
func AutoMigrate(db *gorm.DB) error {
	slog.Info("running database migrations")

	if err := db.AutoMigrate(&models.Preference{}); err != nil {
		return err
	}

	slog.Info("database migrations completed")
	return nil
}

// GormStore keeps visitor preferences in the preferences table
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

// Get retrieves a preference. A missing row is not an error.
func (s *GormStore) Get(ctx context.Context, visitorID, key string) (string, bool, error) {
	var pref models.Preference
	err := s.DB.WithContext(ctx).
		Where("visitor_id = ? AND key = ?", visitorID, key).
		First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return pref.Value, true, nil
}

// Set upserts a preference
func (s *GormStore) Set(ctx context.Context, visitorID, key, value string) error {
	db := s.DB.WithContext(ctx)

	var pref models.Preference
	err := db.Where("visitor_id = ? AND key = ?", visitorID, key).First(&pref).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		pref = models.Preference{VisitorID: visitorID, Key: key}
	}

	pref.Value = value
	return db.Save(&pref).Error
}
