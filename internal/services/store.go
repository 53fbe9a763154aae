package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/greenpitch/greenpitch/internal/site"
)

// Storage backends
const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

// MemoryStore keeps preferences in process memory
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context, visitorID, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[visitorID][key]
	return v, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, visitorID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prefs, ok := s.items[visitorID]
	if !ok {
		prefs = make(map[string]string)
		s.items[visitorID] = prefs
	}
	prefs[key] = value
	return nil
}

// StoreOptions selects and configures a preference backend
type StoreOptions struct {
	Kind        string
	RedisURL    string
	RedisPrefix string
	RedisTTL    time.Duration
	DatabaseURL string
	Migrate     bool
}

// OpenStore builds the configured backend. The returned close func releases
// its connections.
func OpenStore(opts StoreOptions) (site.PreferenceStore, func() error, error) {
	noop := func() error { return nil }

	switch opts.Kind {
	case StoreMemory, "":
		return NewMemoryStore(), noop, nil

	case StoreRedis:
		store, err := NewRedisStore(opts.RedisURL, opts.RedisPrefix, opts.RedisTTL)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return store, store.Close, nil

	case StorePostgres, StoreSQLite:
		db, err := InitDB(opts.Kind, opts.DatabaseURL, logger.Warn)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to connect to database: %w", err)
		}
		store, closeFn, err := openGormStore(db, opts.Migrate)
		if err != nil {
			return nil, noop, err
		}
		return store, closeFn, nil

	default:
		return nil, noop, fmt.Errorf("unknown store %q", opts.Kind)
	}
}

// openGormStore migrates db when asked and wraps it. The connection is
// closed again when migration fails.
func openGormStore(db *gorm.DB, migrate bool) (*GormStore, func() error, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	if migrate {
		if err := AutoMigrate(db); err != nil {
			sqlDB.Close()
			return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}
	return NewGormStore(db), sqlDB.Close, nil
}
