//go:build integration

package database

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/container-lab/liveness/pkg/config"
)

func setupPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("postgres"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return connStr
}

func TestConnectString_Postgres(t *testing.T) {
	connStr := setupPostgres(t)
	ctx := context.Background()

	conn, err := ConnectString(ctx, connStr)
	require.NoError(t, err)
	defer conn.Close(ctx)

	var one int
	require.NoError(t, conn.QueryRow(ctx, "SELECT 1").Scan(&one))
	assert.Equal(t, 1, one)
}

func TestConnectString_WrongPassword(t *testing.T) {
	connStr := setupPostgres(t)
	parsed, err := pgx.ParseConfig(connStr)
	require.NoError(t, err)

	_, err = Connect(context.Background(), config.DatabaseConfig{
		Host:     parsed.Host,
		Port:     int(parsed.Port),
		Name:     parsed.Database,
		User:     parsed.User,
		Password: "wrong",
		SSLMode:  "disable",
	})
	require.Error(t, err)
}
