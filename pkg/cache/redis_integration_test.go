//go:build integration

package cache

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupRedis(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	url, err := container.Endpoint(ctx, "redis")
	require.NoError(t, err)
	return url
}

func TestConnect_Redis(t *testing.T) {
	url := setupRedis(t)

	client, err := Connect(context.Background(), url)
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, "PONG", client.Ping(context.Background()).Val())
}

func TestStep_Redis(t *testing.T) {
	url := setupRedis(t)

	var got *redis.Client
	step := Step(url, func(c *redis.Client) { got = c })
	require.NoError(t, step.Run(context.Background()))
	require.NotNil(t, got)
	assert.NoError(t, got.Close())
}
