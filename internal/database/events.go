// internal/database/events.go
package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jason-s-yu/memoria/internal/cache"
)

// EventStore archives game events into the games and game_events tables.
type EventStore struct{}

// WriteEvents inserts records in a single transaction. The game row is created on first sight,
// reopened when a restart starts a new session, and closed on game_end.
func (EventStore) WriteEvents(ctx context.Context, records []cache.GameEventRecord) error {
	if DB == nil {
		return ErrNoDatabase
	}
	return pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		for _, rec := range records {
			if err := insertGameEventTx(ctx, tx, rec); err != nil {
				return fmt.Errorf("insertGameEventTx: %w", err)
			}
		}
		return nil
	})
}

// MarkAbandoned closes a game that is still in progress.
func (EventStore) MarkAbandoned(ctx context.Context, gameID uuid.UUID) error {
	if DB == nil {
		return ErrNoDatabase
	}
	q := `
	UPDATE games
	SET status = 'abandoned', end_time = NOW()
	WHERE id = $1 AND status = 'in_progress'
	`
	_, err := DB.Exec(ctx, q, gameID)
	return err
}

func insertGameEventTx(ctx context.Context, tx pgx.Tx, rec cache.GameEventRecord) error {
	upsertGameQ := `
	INSERT INTO games (id, session_id, status, start_time)
	VALUES ($1, $2, 'in_progress', NOW())
	ON CONFLICT (id)
	DO UPDATE SET session_id = EXCLUDED.session_id, status = 'in_progress', start_time = NOW(), end_time = NULL, result = NULL
	WHERE games.session_id <> EXCLUDED.session_id
	`
	if _, err := tx.Exec(ctx, upsertGameQ, rec.GameID, rec.SessionID); err != nil {
		return err
	}

	payload, err := json.Marshal(rec.Payload)
	if err != nil {
		return err
	}
	insertQ := `
	INSERT INTO game_events (game_id, session_id, event_index, event_type, payload, created_at)
	VALUES ($1, $2, $3, $4, $5, to_timestamp($6 / 1000.0))
	ON CONFLICT (session_id, event_index) DO NOTHING
	`
	if _, err := tx.Exec(ctx, insertQ, rec.GameID, rec.SessionID, rec.EventIndex, rec.EventType, payload, rec.Timestamp); err != nil {
		return err
	}

	if rec.EventType == "game_end" {
		finalizeQ := `
		UPDATE games
		SET status = 'completed', end_time = NOW(), result = $2
		WHERE id = $1
		`
		if _, err := tx.Exec(ctx, finalizeQ, rec.GameID, payload); err != nil {
			return err
		}
	}
	return nil
}
