// internal/handlers/preferences.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jason-s-yu/memoria/internal/database"
	"github.com/jason-s-yu/memoria/internal/models"
	"github.com/sirupsen/logrus"
)

// PreferencesStore loads and saves audio preferences.
type PreferencesStore interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.Preferences, error)
	Put(ctx context.Context, prefs *models.Preferences) error
}

type pgPreferences struct{}

func (pgPreferences) Get(ctx context.Context, userID uuid.UUID) (*models.Preferences, error) {
	return database.GetPreferences(ctx, userID)
}

func (pgPreferences) Put(ctx context.Context, prefs *models.Preferences) error {
	return database.UpsertPreferences(ctx, prefs)
}

// PostgresPreferences is the store backed by the shared pgx pool.
var PostgresPreferences PreferencesStore = pgPreferences{}

// GetPreferencesHandler returns the caller's audio preferences.
func GetPreferencesHandler(logger *logrus.Logger, store PreferencesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := EnsureGuestUser(w, r)
		if err != nil {
			logger.WithError(err).Error("failed to establish guest identity")
			writeError(w, http.StatusInternalServerError, "could not establish session")
			return
		}

		prefs, err := store.Get(r.Context(), userID)
		if err != nil {
			writePreferencesError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, prefs)
	}
}

// PutPreferencesHandler replaces the caller's audio preferences.
func PutPreferencesHandler(logger *logrus.Logger, store PreferencesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := EnsureGuestUser(w, r)
		if err != nil {
			logger.WithError(err).Error("failed to establish guest identity")
			writeError(w, http.StatusInternalServerError, "could not establish session")
			return
		}

		prefs := models.DefaultPreferences(userID)
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<12)).Decode(&prefs); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		prefs.UserID = userID
		if err := validate.Struct(prefs); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := store.Put(r.Context(), &prefs); err != nil {
			writePreferencesError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, prefs)
	}
}

func writePreferencesError(w http.ResponseWriter, logger *logrus.Logger, err error) {
	if errors.Is(err, database.ErrNoDatabase) {
		writeError(w, http.StatusServiceUnavailable, "preferences storage unavailable")
		return
	}
	logger.WithError(err).Error("preferences storage failed")
	writeError(w, http.StatusInternalServerError, "preferences storage failed")
}
