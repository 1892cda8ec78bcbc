// Package database opens the SQL store. Production runs on PostgreSQL; when no
// DATABASE_URL is configured the service falls back to an embedded SQLite file.
package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

const DefaultSQLitePath = "solarverify.db"

func init() {
	// modernc registers as "sqlite", which sqlx does not know.
	sqlx.BindDriver(string(SQLite), sqlx.QUESTION)
}

// Resolve maps a configured DSN to a driver and a driver-specific DSN.
func Resolve(dsn string) (Dialect, string) {
	dsn = strings.TrimSpace(dsn)
	switch {
	case dsn == "":
		return SQLite, sqliteDSN(DefaultSQLitePath)
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return Postgres, dsn
	case strings.HasPrefix(dsn, "sqlite://"):
		return SQLite, sqliteDSN(strings.TrimPrefix(dsn, "sqlite://"))
	case dsn == ":memory:", strings.HasPrefix(dsn, "file:"), strings.HasSuffix(dsn, ".db"):
		return SQLite, sqliteDSN(dsn)
	}
	// key=value connection strings
	return Postgres, dsn
}

func sqliteDSN(path string) string {
	if path == ":memory:" || strings.Contains(path, "?") {
		return path
	}
	return path + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
}

// Open connects and pings the database named by dsn.
func Open(ctx context.Context, dsn string, maxOpen int) (*sqlx.DB, error) {
	dialect, driverDSN := Resolve(dsn)

	db, err := sqlx.Open(string(dialect), driverDSN)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}
	switch {
	case dialect == SQLite:
		// one writer; in-memory databases exist per connection
		db.SetMaxOpenConns(1)
	case maxOpen > 0:
		db.SetMaxOpenConns(maxOpen)
		db.SetMaxIdleConns(maxOpen)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", dialect, err)
	}
	return db, nil
}

// DialectOf reports the dialect of an opened handle.
func DialectOf(db *sqlx.DB) Dialect {
	if db.DriverName() == string(SQLite) {
		return SQLite
	}
	return Postgres
}
