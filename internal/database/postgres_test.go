package database

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	dbdriver "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	src "github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

type fakeMigrator struct{ upErr, downErr error }

func (f fakeMigrator) Up() error   { return f.upErr }
func (f fakeMigrator) Down() error { return f.downErr }

func restore() {
	pgxpoolNew = pgxpool.New
	pingPool = func(ctx context.Context, p *pgxpool.Pool) error { return p.Ping(ctx) }
	closePool = func(p *pgxpool.Pool) { p.Close() }
	sqlOpenDB = sql.Open
	postgresWithInstanceFn = postgres.WithInstance
	iofsNewFn = iofs.New
	migrateNewWithInstance = func(sourceName string, sourceDriver src.Driver, databaseName string, databaseDriver dbdriver.Driver) (migrateInstance, error) {
		m, err := migrate.NewWithInstance(sourceName, sourceDriver, databaseName, databaseDriver)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
}

func withMigrator(m migrateInstance, err error) {
	sqlOpenDB = func(string, string) (*sql.DB, error) { return sql.Open("pgx", "") }
	postgresWithInstanceFn = func(*sql.DB, *postgres.Config) (dbdriver.Driver, error) { return nil, nil }
	iofsNewFn = func(fs.FS, string) (src.Driver, error) { return nil, nil }
	migrateNewWithInstance = func(string, src.Driver, string, dbdriver.Driver) (migrateInstance, error) { return m, err }
}

func TestNewPgxPool(t *testing.T) {
	t.Cleanup(restore)
	pgxpoolNew = func(ctx context.Context, url string) (*pgxpool.Pool, error) { return nil, errors.New("bad") }
	_, err := NewPgxPool(context.Background(), "url")
	require.Error(t, err)

	pgxpoolNew = func(ctx context.Context, url string) (*pgxpool.Pool, error) { return &pgxpool.Pool{}, nil }
	pingPool = func(context.Context, *pgxpool.Pool) error { return nil }
	db, err := NewPgxPool(context.Background(), "url")
	require.NoError(t, err)
	require.NotNil(t, db)

	closed := false
	pingPool = func(context.Context, *pgxpool.Pool) error { return errors.New("connection refused") }
	closePool = func(*pgxpool.Pool) { closed = true }
	_, err = NewPgxPool(context.Background(), "url")
	require.ErrorContains(t, err, "connection refused")
	require.True(t, closed)
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	require.NoError(t, err)
	names := map[string]bool{}
	for _, e := range entries {
		names[e.Name()] = true
	}
	require.True(t, names["000001_create_users_table.up.sql"])
	require.True(t, names["000002_create_customers_table.up.sql"])
	require.True(t, names["000002_create_customers_table.down.sql"])

	up, err := fs.ReadFile(migrationsFS, "migrations/000002_create_customers_table.up.sql")
	require.NoError(t, err)
	require.Contains(t, string(up), "IF NOT EXISTS")
	require.Contains(t, string(up), "UNIQUE (user_id, email)")
}

func TestRunMigrations(t *testing.T) {
	t.Cleanup(restore)

	sqlOpenDB = func(driver, dsn string) (*sql.DB, error) { return nil, errors.New("open") }
	require.Error(t, RunMigrations("url"))

	sqlOpenDB = func(driver, dsn string) (*sql.DB, error) {
		require.Equal(t, "pgx", driver)
		return sql.Open("pgx", "")
	}
	postgresWithInstanceFn = func(*sql.DB, *postgres.Config) (dbdriver.Driver, error) { return nil, errors.New("drv") }
	require.Error(t, RunMigrations("url"))

	postgresWithInstanceFn = func(*sql.DB, *postgres.Config) (dbdriver.Driver, error) { return nil, nil }
	iofsNewFn = func(f fs.FS, s string) (src.Driver, error) { return nil, errors.New("src") }
	require.Error(t, RunMigrations("url"))

	iofsNewFn = func(f fs.FS, s string) (src.Driver, error) {
		require.Equal(t, "migrations", s)
		return nil, nil
	}
	migrateNewWithInstance = func(string, src.Driver, string, dbdriver.Driver) (migrateInstance, error) {
		return nil, errors.New("mig")
	}
	require.Error(t, RunMigrations("url"))

	withMigrator(fakeMigrator{upErr: errors.New("u")}, nil)
	require.Error(t, RunMigrations("url"))

	withMigrator(fakeMigrator{upErr: migrate.ErrNoChange}, nil)
	require.NoError(t, RunMigrations("url"))

	withMigrator(fakeMigrator{}, nil)
	require.NoError(t, RunMigrations("url"))
}

func TestRollbackAll(t *testing.T) {
	t.Cleanup(restore)

	sqlOpenDB = func(string, string) (*sql.DB, error) { return nil, errors.New("open") }
	require.Error(t, RollbackAll("url"))

	withMigrator(nil, errors.New("mig"))
	require.Error(t, RollbackAll("url"))

	withMigrator(fakeMigrator{downErr: migrate.ErrNoChange}, nil)
	require.NoError(t, RollbackAll("url"))

	withMigrator(fakeMigrator{downErr: errors.New("d")}, nil)
	require.Error(t, RollbackAll("url"))

	withMigrator(fakeMigrator{}, nil)
	require.NoError(t, RollbackAll("url"))
}
