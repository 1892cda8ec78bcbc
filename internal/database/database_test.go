package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		dsn     string
		dialect Dialect
		driver  string
	}{
		{"", SQLite, "solarverify.db?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"},
		{"postgres://u:p@db:5432/solar?sslmode=disable", Postgres, "postgres://u:p@db:5432/solar?sslmode=disable"},
		{"postgresql://db/solar", Postgres, "postgresql://db/solar"},
		{"sqlite://data/dev.db", SQLite, "data/dev.db?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"},
		{":memory:", SQLite, ":memory:"},
		{"host=db user=solar dbname=solar", Postgres, "host=db user=solar dbname=solar"},
	}
	for _, tc := range cases {
		d, dsn := Resolve(tc.dsn)
		assert.Equal(t, tc.dialect, d, tc.dsn)
		assert.Equal(t, tc.driver, dsn, tc.dsn)
	}
}

func TestMigrateSQLite(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, ":memory:", 0)
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, SQLite, DialectOf(db))
	require.NoError(t, Migrate(ctx, db))
	// second run is a no-op
	require.NoError(t, Migrate(ctx, db))

	var tables []string
	require.NoError(t, db.SelectContext(ctx, &tables,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`))
	assert.Equal(t, []string{
		"components", "installer_benchmarks", "pricing_benchmarks",
		"usage_events", "used_tokens", "users",
	}, tables)
}
