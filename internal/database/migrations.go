package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS components (
		id {{serial}},
		type TEXT NOT NULL,
		manufacturer TEXT NOT NULL,
		model TEXT NOT NULL,
		tier TEXT NOT NULL,
		technology TEXT NOT NULL DEFAULT '',
		warranty_years INTEGER NOT NULL DEFAULT 0,
		wattage_w DOUBLE PRECISION NOT NULL DEFAULT 0,
		efficiency_pct DOUBLE PRECISION NOT NULL DEFAULT 0,
		price_per_watt DOUBLE PRECISION NOT NULL DEFAULT 0,
		dimensions TEXT NOT NULL DEFAULT '',
		capacity_kwh DOUBLE PRECISION NOT NULL DEFAULT 0,
		usable_kwh DOUBLE PRECISION NOT NULL DEFAULT 0,
		round_trip_efficiency DOUBLE PRECISION NOT NULL DEFAULT 0,
		cycles INTEGER NOT NULL DEFAULT 0,
		price_per_kwh DOUBLE PRECISION NOT NULL DEFAULT 0,
		rating_kw DOUBLE PRECISION NOT NULL DEFAULT 0,
		inverter_type TEXT NOT NULL DEFAULT '',
		mppt_trackers INTEGER NOT NULL DEFAULT 0,
		unit_price DOUBLE PRECISION NOT NULL DEFAULT 0,
		UNIQUE (type, model)
	)`,
	`CREATE TABLE IF NOT EXISTS pricing_benchmarks (
		id {{serial}},
		region TEXT NOT NULL,
		size_band TEXT NOT NULL,
		min_kw DOUBLE PRECISION NOT NULL,
		max_kw DOUBLE PRECISION NOT NULL,
		price_low DOUBLE PRECISION NOT NULL,
		price_high DOUBLE PRECISION NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		UNIQUE (region, size_band)
	)`,
	`CREATE TABLE IF NOT EXISTS installer_benchmarks (
		id {{serial}},
		installer_type TEXT NOT NULL UNIQUE,
		min_per_kw DOUBLE PRECISION NOT NULL,
		max_per_kw DOUBLE PRECISION NOT NULL,
		description TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id {{serial}},
		email TEXT NOT NULL UNIQUE,
		email_hash TEXT NOT NULL,
		client_id TEXT NOT NULL DEFAULT '',
		free_checks_used INTEGER NOT NULL DEFAULT 0,
		free_checks_limit INTEGER NOT NULL DEFAULT 3,
		email_verified BOOLEAN NOT NULL DEFAULT FALSE,
		verified_at {{timestamp}} NULL,
		gdpr_consent BOOLEAN NOT NULL DEFAULT FALSE,
		consent_at {{timestamp}} NULL,
		created_at {{timestamp}} NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS usage_events (
		id {{serial}},
		subject_hash TEXT NOT NULL,
		kind TEXT NOT NULL,
		grade TEXT NOT NULL DEFAULT '',
		system_size_kw DOUBLE PRECISION NOT NULL DEFAULT 0,
		price_per_kw DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at {{timestamp}} NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS usage_events_subject_idx ON usage_events (subject_hash, created_at)`,
	`CREATE TABLE IF NOT EXISTS used_tokens (
		jti TEXT PRIMARY KEY,
		email TEXT NOT NULL,
		used_at {{timestamp}} NOT NULL,
		expires_at {{timestamp}} NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS used_tokens_expires_idx ON used_tokens (expires_at)`,
}

func placeholders(d Dialect) *strings.Replacer {
	if d == SQLite {
		return strings.NewReplacer(
			"{{serial}}", "INTEGER PRIMARY KEY AUTOINCREMENT",
			"{{timestamp}}", "TIMESTAMP",
		)
	}
	return strings.NewReplacer(
		"{{serial}}", "BIGSERIAL PRIMARY KEY",
		"{{timestamp}}", "TIMESTAMPTZ",
	)
}

// Migrate creates any missing tables. It is idempotent.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	r := placeholders(DialectOf(db))
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("migrate begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range schema {
		if _, err := tx.ExecContext(ctx, r.Replace(stmt)); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("migrate commit: %w", err)
	}
	return nil
}
