package dbcore

import (
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/schmilblick-org/violetear-coordinator/database/models"
)

// Options configures the store handle.
type Options struct {
	// DSN selects the driver: postgres:// / postgresql:// URLs and
	// key=value lists open postgres; anything else (a file path or
	// ":memory:") opens sqlite.
	DSN string
	// MaxOpenConns bounds the connection pool. Zero means DefaultMaxConns.
	MaxOpenConns int
	// ConnectRetries for the initial postgres connection. Zero means
	// DefaultConnectRetries.
	ConnectRetries int
}

const (
	DefaultMaxConns       = 16
	DefaultConnectRetries = 5
)

// DB is the process-scoped store handle. Opened once at startup, injected
// into the stores, closed at shutdown.
type DB struct {
	gorm *gorm.DB
}

var kvPairRegex = regexp.MustCompile(`(?i)\b(host|user|password|dbname|port|sslmode)=`)

func isPostgresDSN(dsn string) bool {
	lower := strings.ToLower(strings.TrimSpace(dsn))
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return true
	}
	return kvPairRegex.MatchString(dsn)
}

// maskDSN hides the password for log lines.
func maskDSN(dsn string) string {
	masked := regexp.MustCompile(`(password=)([^\s]+)`).ReplaceAllString(dsn, `${1}***`)
	return regexp.MustCompile(`(://[^:/@]+:)[^@]+@`).ReplaceAllString(masked, `${1}***@`)
}

// Open connects to the backing store, bounds the pool and ensures the schema
// exists. The schema ensure is idempotent; re-running it against an existing
// database is a no-op.
func Open(opts Options) (*DB, error) {
	dsn := strings.TrimSpace(opts.DSN)
	if dsn == "" {
		dsn = ":memory:"
	}
	retries := opts.ConnectRetries
	if retries <= 0 {
		retries = DefaultConnectRetries
	}

	// TranslateError gives portable gorm.ErrDuplicatedKey /
	// gorm.ErrForeignKeyViolated on every driver.
	cfg := &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	}

	var db *gorm.DB
	var err error
	if isPostgresDSN(dsn) {
		log.Printf("Using postgres backing store: %s", maskDSN(dsn))
		for i := 0; i < retries; i++ {
			db, err = gorm.Open(postgres.Open(dsn), cfg)
			if err == nil {
				break
			}
			log.Println("Retrying postgres connection:", err)
			time.Sleep(2 * time.Second)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: connect after %d retries: %v", ErrUnavailable, retries, err)
		}
	} else {
		db, err = gorm.Open(sqlite.Open(dsn), cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: open sqlite %q: %v", ErrUnavailable, dsn, err)
		}
		// sqlite does not check FK constraints unless told to
		db.Exec("PRAGMA foreign_keys = ON")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	maxConns := opts.MaxOpenConns
	if maxConns <= 0 {
		maxConns = DefaultMaxConns
	}
	// every pooled connection to an in-memory sqlite database would see its
	// own empty store
	if strings.Contains(dsn, ":memory:") {
		maxConns = 1
	}
	idleConns := maxConns / 2
	if idleConns < 1 {
		idleConns = 1
	}
	sqlDB.SetMaxOpenConns(maxConns)
	sqlDB.SetMaxIdleConns(idleConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.Exec("SELECT 1").Error; err != nil {
		return nil, fmt.Errorf("%w: ping: %v", ErrUnavailable, err)
	}

	if err := db.AutoMigrate(
		&models.Profile{},
		&models.Task{},
		&models.OperationLog{},
	); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return &DB{gorm: db}, nil
}

// Gorm exposes the underlying handle. Every statement issued through it uses
// bind parameters; no caller interpolates values into statement text.
func (d *DB) Gorm() *gorm.DB {
	return d.gorm
}

// Close releases the connection pool.
func (d *DB) Close() error {
	sqlDB, err := d.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
