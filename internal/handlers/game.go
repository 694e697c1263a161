// internal/handlers/game.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jason-s-yu/memoria/internal/game"
	"github.com/jason-s-yu/memoria/internal/models"
	"github.com/sirupsen/logrus"
)

var validate = validator.New()

// createGameRequest is the body of POST /game/create. CardCount defaults to 12.
type createGameRequest struct {
	Mode      int                    `json:"mode" validate:"required,min=1,max=4"`
	CardCount int                    `json:"cardCount" validate:"gte=0"`
	Rules     map[string]interface{} `json:"rules,omitempty"`
}

// CreateGameHandler deals a new table owned by the calling guest and returns its id.
func CreateGameHandler(gs *GameServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := EnsureGuestUser(w, r)
		if err != nil {
			gs.Logger.WithError(err).Error("failed to establish guest identity")
			writeError(w, http.StatusInternalServerError, "could not establish session")
			return
		}

		var req createGameRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.CardCount == 0 {
			req.CardCount = 12
		}

		g, err := gs.CreateGame(userID, models.Mode(req.Mode), req.CardCount, req.Rules)
		if err != nil {
			var cfgErr *game.ConfigError
			if errors.As(err, &cfgErr) {
				writeError(w, http.StatusBadRequest, cfgErr.Error())
				return
			}
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		gs.Logger.WithFields(logrus.Fields{
			"game":  g.ID,
			"owner": userID,
			"mode":  g.Mode.String(),
			"cards": g.CardCount,
		}).Info("game created")
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"game_id": g.ID,
		})
	}
}
