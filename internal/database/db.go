// internal/database/db.go
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is the shared pool. It stays nil when Postgres is not configured; callers check.
var DB *pgxpool.Pool

// ConnectDB opens the pool and applies the schema.
func ConnectDB(ctx context.Context, user, password, host, port, dbname string) error {
	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s", user, password, host, port, dbname)

	config, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return fmt.Errorf("unable to parse pgx config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return fmt.Errorf("unable to create pgx pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return fmt.Errorf("db ping error: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return fmt.Errorf("apply schema: %w", err)
	}

	DB = pool
	return nil
}

// Close releases the pool if one was opened.
func Close() {
	if DB != nil {
		DB.Close()
		DB = nil
	}
}

const schema = `
CREATE TABLE IF NOT EXISTS preferences (
	user_id      UUID PRIMARY KEY,
	enabled      BOOLEAN NOT NULL DEFAULT TRUE,
	music_volume DOUBLE PRECISION NOT NULL DEFAULT 0.6,
	sfx_volume   DOUBLE PRECISION NOT NULL DEFAULT 0.6,
	music_track  INTEGER NOT NULL DEFAULT 0,
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS games (
	id         UUID PRIMARY KEY,
	session_id UUID NOT NULL,
	status     TEXT NOT NULL DEFAULT 'in_progress',
	start_time TIMESTAMPTZ NOT NULL DEFAULT now(),
	end_time   TIMESTAMPTZ,
	result     JSONB
);

CREATE TABLE IF NOT EXISTS game_events (
	id          BIGSERIAL PRIMARY KEY,
	game_id     UUID NOT NULL REFERENCES games(id) ON DELETE CASCADE,
	session_id  UUID NOT NULL,
	event_index INTEGER NOT NULL,
	event_type  TEXT NOT NULL,
	payload     JSONB NOT NULL DEFAULT '{}',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (session_id, event_index)
)`
