package cache

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// closedAddr returns a loopback address with nothing listening on it.
func closedAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())
	return addr
}

func TestConnect_InvalidURL(t *testing.T) {
	_, err := Connect(context.Background(), "http://not-redis")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse redis url")
}

func TestConnect_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	client, err := Connect(ctx, "redis://"+closedAddr(t))
	require.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), "ping redis")
}

func TestStep_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	called := false
	step := Step("redis://"+closedAddr(t), func(*redis.Client) { called = true })

	assert.Equal(t, StepName, step.Name)
	require.Error(t, step.Run(ctx))
	assert.False(t, called)
}
