// Package testdb opens migrated databases for repository and handler tests.
package testdb

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"ordering/internal/adapters/out/postgres"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// SQLite returns a private in-memory database named after the test, migrated and
// closed on cleanup.
func SQLite(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	db, err := postgres.Open(postgres.DatabaseConfig{
		Driver: postgres.DriverSQLite,
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
	})
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// Postgres is a throwaway PostgreSQL server.
type Postgres struct {
	Container *tcpostgres.PostgresContainer
	DSN       string
	DB        *gorm.DB
}

// StartPostgres runs a postgres:15-alpine container and migrates the schema. Callers
// terminate it with Stop.
func StartPostgres(ctx context.Context) (*Postgres, error) {
	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("ordering"),
		tcpostgres.WithUsername("ordering"),
		tcpostgres.WithPassword("ordering"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}
	db, err := postgres.Open(postgres.DatabaseConfig{Driver: postgres.DriverPostgres, DSN: dsn})
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}
	if err = postgres.Migrate(db); err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}
	return &Postgres{Container: container, DSN: dsn, DB: db}, nil
}

// Truncate empties every table.
func (p *Postgres) Truncate() error {
	return p.DB.Exec(`TRUNCATE TABLE members, catalog_items, orders, order_items,
		order_status_history, packing_entries, loyalty_accounts, loyalty_transactions,
		loyalty_gifts, notifications, notification_reads, payment_records, invoices`).Error
}

func (p *Postgres) Stop(ctx context.Context) error {
	if sqlDB, err := p.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	return p.Container.Terminate(ctx)
}
