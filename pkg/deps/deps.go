// Package deps wires the cache and database checks into a startup pipeline
// and keeps the resulting connections for later cleanup.
package deps

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"

	"github.com/container-lab/liveness/pkg/cache"
	"github.com/container-lab/liveness/pkg/config"
	"github.com/container-lab/liveness/pkg/database"
	"github.com/container-lab/liveness/pkg/startup"
)

// Set holds the connections opened by a successful (or partial) run.
type Set struct {
	Redis    *redis.Client
	Postgres *pgx.Conn
}

// Pipeline returns the redis-then-postgres startup pipeline for cfg along
// with the Set its steps fill in.
func Pipeline(cfg *config.Config, logger *slog.Logger) (*startup.Pipeline, *Set) {
	set := &Set{}
	steps := []startup.Step{
		cache.Step(cfg.RedisURL, func(c *redis.Client) { set.Redis = c }),
		database.Step(cfg.Database, func(c *pgx.Conn) { set.Postgres = c }),
	}
	return startup.New(steps,
		startup.WithStepTimeout(cfg.ConnectTimeout),
		startup.WithLogger(logger),
	), set
}

// Close releases whatever connections were opened.
func (s *Set) Close(ctx context.Context) error {
	var errs []error
	if s.Redis != nil {
		errs = append(errs, s.Redis.Close())
		s.Redis = nil
	}
	if s.Postgres != nil {
		errs = append(errs, s.Postgres.Close(ctx))
		s.Postgres = nil
	}
	return errors.Join(errs...)
}
