package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/container-lab/liveness/pkg/startup"
)

// StepName identifies the cache check in startup reports.
const StepName = "redis"

// Connect opens a client for url and issues a single PING. The client is
// closed again if the PING fails.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	// one attempt only
	opt.MaxRetries = -1

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", opt.Addr, err)
	}
	return client, nil
}

// Step wraps Connect as a startup step. onConnect receives the live client
// and owns closing it.
func Step(url string, onConnect func(*redis.Client)) startup.Step {
	return startup.Step{
		Name: StepName,
		Run: func(ctx context.Context) error {
			client, err := Connect(ctx, url)
			if err != nil {
				return err
			}
			if onConnect != nil {
				onConnect(client)
			} else {
				_ = client.Close()
			}
			return nil
		},
	}
}
