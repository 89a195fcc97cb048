//go:build integration

package deps

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/container-lab/liveness/pkg/config"
	"github.com/container-lab/liveness/pkg/health"
	"github.com/container-lab/liveness/pkg/server"
)

func TestDependencyAwareStartup(t *testing.T) {
	ctx := context.Background()

	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = redisC.Terminate(ctx) })
	redisURL, err := redisC.Endpoint(ctx, "redis")
	require.NoError(t, err)

	pgC, err := tcpostgres.Run(ctx,
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
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })
	connStr, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	pgCfg, err := pgx.ParseConfig(connStr)
	require.NoError(t, err)

	cfg := &config.Config{
		RedisURL:       redisURL,
		ConnectTimeout: 10 * time.Second,
		Database: config.DatabaseConfig{
			Host:     pgCfg.Host,
			Port:     int(pgCfg.Port),
			Name:     pgCfg.Database,
			User:     pgCfg.User,
			Password: pgCfg.Password,
			SSLMode:  "disable",
		},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	pipeline, set := Pipeline(cfg, logger)
	defer set.Close(ctx)

	srv := server.New(server.Config{Addr: "127.0.0.1:0"}, health.NewRouter(health.FormatJSON), pipeline, logger)
	h, report, err := srv.Start(ctx)
	require.NoError(t, err)
	defer h.Shutdown(ctx)

	assert.True(t, report.Ready())
	assert.NotNil(t, set.Redis)
	assert.NotNil(t, set.Postgres)

	resp, err := http.Get("http://" + h.Addr().String() + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
