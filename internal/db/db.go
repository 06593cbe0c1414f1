package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"photoai/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// Options tunes the connection. Zero values fall back to defaults.
type Options struct {
	// SimpleProtocol avoids server-side prepared statements, which
	// transaction poolers like pgbouncer do not support.
	SimpleProtocol bool
	MaxOpenConns   int
	Logger         zerolog.Logger
}

// Open opens a GORM connection for a postgres URL or a sqlite DSN.
func Open(dsn string, opts Options) (*gorm.DB, error) {
	trimmed := strings.TrimSpace(dsn)
	if trimmed == "" {
		return nil, fmt.Errorf("db: empty dsn")
	}
	gcfg := &gorm.Config{
		Logger:         newGormLogger(opts.Logger),
		TranslateError: true,
	}

	switch DetectDialect(trimmed) {
	case DialectPostgres:
		sqlDB, err := openPostgresSQLDB(trimmed, opts.SimpleProtocol)
		if err != nil {
			return nil, err
		}
		conn, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), gcfg)
		if err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("db: open: %w", err)
		}
		maxOpen := opts.MaxOpenConns
		if maxOpen <= 0 {
			maxOpen = 25
		}
		sqlDB.SetMaxOpenConns(maxOpen)
		sqlDB.SetMaxIdleConns(maxOpen)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		return conn, ping(sqlDB)
	default:
		conn, err := gorm.Open(sqlite.Open(trimmed), gcfg)
		if err != nil {
			return nil, fmt.Errorf("db: open sqlite: %w", err)
		}
		sqlDB, err := conn.DB()
		if err != nil {
			return nil, fmt.Errorf("db: open sqlite sql: %w", err)
		}
		// SQLite serialises writers; a single connection also keeps
		// in-memory databases shared across queries.
		sqlDB.SetMaxOpenConns(1)
		if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("db: sqlite pragma: %w", err)
		}
		return conn, ping(sqlDB)
	}
}

// DetectDialect infers the dialect from a DSN string.
func DetectDialect(dsn string) string {
	lower := strings.ToLower(strings.TrimSpace(dsn))
	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return DialectPostgres
	case strings.Contains(lower, "host=") || strings.Contains(lower, "dbname="):
		return DialectPostgres
	default:
		return DialectSQLite
	}
}

// Migrate creates or updates every table the service owns.
func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(
		&model.User{},
		&model.UserCredit{},
		&model.Model{},
		&model.OutputImage{},
		&model.Pack{},
		&model.PackPrompt{},
		&model.Subscription{},
	); err != nil {
		return fmt.Errorf("db: migrate: %w", err)
	}
	return nil
}

// Close releases the underlying pool.
func Close(conn *gorm.DB) error {
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func openPostgresSQLDB(dsn string, simpleProtocol bool) (*sql.DB, error) {
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("db: parse dsn: %w", err)
	}
	if simpleProtocol {
		cfg.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	}
	return stdlib.OpenDB(*cfg), nil
}

func ping(sqlDB *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return fmt.Errorf("db: ping: %w", err)
	}
	return nil
}
