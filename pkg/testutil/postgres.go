package testutil

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	pgpkg "github.com/bibbank/kyb-service/pkg/postgres"
)

// KYBTables lists the service tables in child-to-parent order.
var KYBTables = []string{
	"outbox",
	"screening_results",
	"risk_assessments",
	"documents",
	"beneficial_owners",
	"merchants",
}

// PostgresContainer is a throwaway PostgreSQL 16 database with a pool.
type PostgresContainer struct {
	Container *postgres.PostgresContainer
	DSN       string
	Pool      *pgxpool.Pool
}

// NewPostgresContainer starts a database and tears it down when the test ends.
func NewPostgresContainer(ctx context.Context, t *testing.T) *PostgresContainer {
	t.Helper()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("kyb"),
		postgres.WithUsername("kyb"),
		postgres.WithPassword("kyb"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	pc := &PostgresContainer{Container: container}
	t.Cleanup(func() { pc.terminate(t) })

	pc.DSN, err = container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get postgres connection string: %v", err)
	}
	pc.Pool, err = pgpkg.NewPool(ctx, pgpkg.Config{URL: pc.DSN, MaxConns: 5})
	if err != nil {
		t.Fatalf("failed to create pool: %v", err)
	}
	return pc
}

// NewMigratedPostgres starts a database with the schema in migrationsDir applied.
func NewMigratedPostgres(ctx context.Context, t *testing.T, migrationsDir string) *PostgresContainer {
	t.Helper()

	pc := NewPostgresContainer(ctx, t)
	pc.RunMigrations(t, migrationsDir)
	return pc
}

// RunMigrations applies the *.up.sql files in migrationsDir through golang-migrate,
// the same path the service takes at startup.
func (pc *PostgresContainer) RunMigrations(t *testing.T, migrationsDir string) {
	t.Helper()

	if err := pgpkg.RunMigrations(pc.DSN, "file://"+migrationsDir); err != nil {
		t.Fatalf("failed to apply migrations from %s: %v", migrationsDir, err)
	}
}

// Truncate empties tables (KYBTables when none are given) between subtests.
func (pc *PostgresContainer) Truncate(ctx context.Context, t *testing.T, tables ...string) {
	t.Helper()

	if len(tables) == 0 {
		tables = KYBTables
	}
	if _, err := pc.Pool.Exec(ctx, "TRUNCATE "+strings.Join(tables, ", ")+" CASCADE"); err != nil {
		t.Fatalf("failed to truncate %v: %v", tables, err)
	}
}

func (pc *PostgresContainer) terminate(t *testing.T) {
	t.Helper()

	if pc.Pool != nil {
		pc.Pool.Close()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := pc.Container.Terminate(ctx); err != nil {
		t.Logf("warning: failed to terminate postgres container: %v", err)
	}
}
