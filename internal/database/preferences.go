// internal/database/preferences.go
package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jason-s-yu/memoria/internal/models"
)

var ErrNoDatabase = errors.New("database not connected")

// GetPreferences returns the stored audio preferences for userID, or the defaults if none were saved.
func GetPreferences(ctx context.Context, userID uuid.UUID) (*models.Preferences, error) {
	if DB == nil {
		return nil, ErrNoDatabase
	}
	p := models.DefaultPreferences(userID)
	q := `
	SELECT enabled, music_volume, sfx_volume, music_track
	FROM preferences
	WHERE user_id=$1
	`
	err := DB.QueryRow(ctx, q, userID).Scan(&p.Enabled, &p.MusicVolume, &p.SfxVolume, &p.MusicTrack)
	if errors.Is(err, pgx.ErrNoRows) {
		return &p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}
	return &p, nil
}

// UpsertPreferences stores prefs for prefs.UserID.
func UpsertPreferences(ctx context.Context, prefs *models.Preferences) error {
	if DB == nil {
		return ErrNoDatabase
	}
	q := `
	INSERT INTO preferences (user_id, enabled, music_volume, sfx_volume, music_track, updated_at)
	VALUES ($1, $2, $3, $4, $5, now())
	ON CONFLICT (user_id)
	DO UPDATE SET enabled=$2, music_volume=$3, sfx_volume=$4, music_track=$5, updated_at=now()
	`
	err := pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, execErr := tx.Exec(ctx, q, prefs.UserID, prefs.Enabled, prefs.MusicVolume, prefs.SfxVolume, prefs.MusicTrack)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("failed to upsert preferences: %w", err)
	}
	return nil
}
