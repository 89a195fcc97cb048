package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/container-lab/liveness/pkg/config"
	"github.com/container-lab/liveness/pkg/startup"
)

// StepName identifies the database check in startup reports.
const StepName = "postgres"

// Connect opens a single connection described by cfg and pings it.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*pgx.Conn, error) {
	return ConnectString(ctx, cfg.ConnString())
}

// ConnectString is Connect for a ready-made connection string or URL.
func ConnectString(ctx context.Context, connString string) (*pgx.Conn, error) {
	connCfg, err := pgx.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}
	// single dial, no fallback hosts
	connCfg.Fallbacks = nil

	conn, err := pgx.ConnectConfig(ctx, connCfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres at %s:%d: %w", connCfg.Host, connCfg.Port, err)
	}
	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return conn, nil
}

// Step wraps Connect as a startup step. onConnect receives the open
// connection and owns closing it.
func Step(cfg config.DatabaseConfig, onConnect func(*pgx.Conn)) startup.Step {
	return startup.Step{
		Name: StepName,
		Run: func(ctx context.Context) error {
			conn, err := Connect(ctx, cfg)
			if err != nil {
				return err
			}
			if onConnect != nil {
				onConnect(conn)
			} else {
				_ = conn.Close(ctx)
			}
			return nil
		},
	}
}
