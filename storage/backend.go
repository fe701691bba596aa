package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Record is a raw namespaced value as the backends see it.
type Record struct {
	PhysicalKey string
	Namespace   string
	LogicalKey  string
	Value       []byte
}

// Tx reads and writes single records.
type Tx interface {
	// Load returns the raw value at physicalKey. ok is false when nothing is stored there.
	Load(ctx context.Context, physicalKey string) (value []byte, ok bool, err error)
	Save(ctx context.Context, rec Record) error
}

// Backend is a durable key/value store for namespaced records.
type Backend interface {
	Tx
	// Atomic runs fn with write isolation on physicalKey where the backend supports it.
	Atomic(ctx context.Context, physicalKey string, fn func(ctx context.Context, tx Tx) error) error
	// Namespaces lists every namespace that holds at least one record.
	Namespaces(ctx context.Context) ([]string, error)
	Close() error
}

// Drivers accepted by Open.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Driver   string
	DSN      string // postgres URL or sqlite file path
	RedisURL string
	Prefix   string // namespace prefix, also used for the redis namespace set
}

// Open builds the backend named by opts.Driver. SQL backends are migrated.
func Open(ctx context.Context, opts Options, logger *zap.Logger) (Backend, error) {
	switch opts.Driver {
	case DriverPostgres, DriverSQLite:
		db, err := OpenDB(opts.Driver, opts.DSN)
		if err != nil {
			return nil, err
		}
		b := NewGormBackend(db)
		if err := b.Migrate(); err != nil {
			_ = b.Close()
			return nil, fmt.Errorf("failed to migrate kv_records: %w", err)
		}
		logger.Info("storage ready", zap.String("driver", opts.Driver))
		return b, nil
	case DriverRedis:
		opt, err := redis.ParseURL(opts.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		client := redis.NewClient(opt)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to reach redis: %w", err)
		}
		logger.Info("storage ready", zap.String("driver", opts.Driver), zap.String("addr", opt.Addr))
		return NewRedisBackend(client, opts.Prefix+"namespaces"), nil
	case DriverMemory:
		logger.Warn("storage is in-memory, data will not survive a restart")
		return NewMemoryBackend(), nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
}

// OpenDB opens a gorm connection for the postgres or sqlite driver.
func OpenDB(driver, dsn string) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("%s storage needs DATABASE_URL", driver)
	}
	cfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)}

	var dialector gorm.Dialector
	switch driver {
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unknown sql driver %q", driver)
	}

	db, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if driver == DriverSQLite {
		// sqlite allows one writer; a single connection turns lock errors into waits
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}
