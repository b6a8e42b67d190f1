package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"crime-report/pkg/utils"

	"github.com/glebarez/sqlite"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// Target is a parsed DATABASE_URL.
type Target struct {
	Dialect string
	DSN     string
}

// ParseURL accepts postgres:// / postgresql:// URLs and sqlite URLs in the
// sqlite:///relative/path form. Anything else is taken as a SQLite file path.
func ParseURL(raw string) Target {
	raw = strings.TrimSpace(raw)

	switch {
	case strings.HasPrefix(raw, "postgres://"), strings.HasPrefix(raw, "postgresql://"):
		return Target{Dialect: DialectPostgres, DSN: raw}
	case strings.HasPrefix(raw, "sqlite:///"):
		return Target{Dialect: DialectSQLite, DSN: strings.TrimPrefix(raw, "sqlite:///")}
	case strings.HasPrefix(raw, "sqlite://"):
		return Target{Dialect: DialectSQLite, DSN: strings.TrimPrefix(raw, "sqlite://")}
	case raw == "":
		return Target{Dialect: DialectSQLite, DSN: "crime_report.db"}
	default:
		return Target{Dialect: DialectSQLite, DSN: raw}
	}
}

// MaskURL hides the password of a connection URL so it can be logged or
// returned by diagnostics.
func MaskURL(raw string) string {
	target := ParseURL(raw)
	if target.Dialect == DialectSQLite {
		return "sqlite"
	}

	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok {
		return "postgresql://..."
	}
	// passwords may themselves contain '@'
	at := strings.LastIndex(rest, "@")
	if at < 0 {
		return scheme + "://..."
	}
	userInfo, host := rest[:at], rest[at+1:]
	user, _, hasPassword := strings.Cut(userInfo, ":")
	if !hasPassword {
		return scheme + "://" + user + "@" + host
	}
	return scheme + "://" + user + ":***@" + host
}

// gormConfig keeps every timestamp GORM writes in UTC so SQLite (which stores
// text) and Postgres compare the same instants.
func gormConfig(debug bool) *gorm.Config {
	level := logger.Warn
	if debug {
		level = logger.Info
	}
	return &gorm.Config{
		Logger:  logger.Default.LogMode(level),
		NowFunc: func() time.Time { return time.Now().UTC() },
	}
}

// InitDB opens the database described by config.URL.
func InitDB(config utils.DatabaseConfig, debug bool) (*gorm.DB, error) {
	target := ParseURL(config.URL)

	switch target.Dialect {
	case DialectPostgres:
		return openPostgres(target.DSN, config.MaxConns, debug)
	default:
		return openSQLite(target.DSN, debug)
	}
}

func openPostgres(dsn string, maxConns int32, debug bool) (*gorm.DB, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}

	if maxConns > 0 {
		poolConfig.MaxConns = maxConns
	}
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute
	poolConfig.ConnConfig.ConnectTimeout = 5 * time.Second

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database failed: %w", err)
	}

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: stdlib.OpenDBFromPool(pool)}), gormConfig(debug))
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("open gorm postgres: %w", err)
	}

	return db, nil
}

func openSQLite(path string, debug bool) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), gormConfig(debug))
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	// a single writer avoids SQLITE_BUSY under concurrent requests
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
