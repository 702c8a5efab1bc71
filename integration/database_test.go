//go:build database

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestContriboardWithPostgres tests the contriboard CLI with a PostgreSQL backend.
func TestContriboardWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres sslmode=disable", host, port.Port())

	// Set environment variables
	_ = os.Setenv("CONTRIBOARD_DB_BACKEND", "postgresql")
	_ = os.Setenv("CONTRIBOARD_DB_CONNECT", connStr)
	_ = os.Setenv("CONTRIBOARD_DATA_DIR", t.TempDir())
	defer func() { _ = os.Unsetenv("CONTRIBOARD_DB_BACKEND") }()
	defer func() { _ = os.Unsetenv("CONTRIBOARD_DB_CONNECT") }()
	defer func() { _ = os.Unsetenv("CONTRIBOARD_DATA_DIR") }()

	// Migrate the schema
	require.NoError(t, runContriboardCommand(t, "db", "migrate"))

	// Seed demo data
	require.NoError(t, runContriboardCommand(t, "seed", "--contributors", "5", "--days", "14"))

	// Check status
	require.NoError(t, runContriboardCommand(t, "db", "status"))

	// Run the query commands
	require.NoError(t, runContriboardCommand(t, "leaderboard"))
	require.NoError(t, runContriboardCommand(t, "top"))
	require.NoError(t, runContriboardCommand(t, "people"))
	require.NoError(t, runContriboardCommand(t, "activity", "--lookback-days", "14"))

	// Export the static tree
	require.NoError(t, runContriboardCommand(t, "export"))

	// Clear everything
	require.NoError(t, runContriboardCommand(t, "db", "clear"))
}

// TestContriboardWithMySQL tests the contriboard CLI with a MySQL backend.
func TestContriboardWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "contriboard",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/contriboard?parseTime=true", host, port.Port())

	// Set environment variables
	_ = os.Setenv("CONTRIBOARD_DB_BACKEND", "mysql")
	_ = os.Setenv("CONTRIBOARD_DB_CONNECT", connStr)
	_ = os.Setenv("CONTRIBOARD_DATA_DIR", t.TempDir())
	defer func() { _ = os.Unsetenv("CONTRIBOARD_DB_BACKEND") }()
	defer func() { _ = os.Unsetenv("CONTRIBOARD_DB_CONNECT") }()
	defer func() { _ = os.Unsetenv("CONTRIBOARD_DATA_DIR") }()

	// Migrate, seed and exercise the commands
	require.NoError(t, runContriboardCommand(t, "db", "migrate"))
	require.NoError(t, runContriboardCommand(t, "seed"))
	require.NoError(t, runContriboardCommand(t, "db", "status"))
	require.NoError(t, runContriboardCommand(t, "leaderboard", "--period", "month"))
	require.NoError(t, runContriboardCommand(t, "export"))
	require.NoError(t, runContriboardCommand(t, "db", "clear"))
}
