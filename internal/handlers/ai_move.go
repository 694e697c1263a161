// internal/handlers/ai_move.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jason-s-yu/memoria/internal/models"
	"github.com/jason-s-yu/memoria/internal/oracle"
	"github.com/sirupsen/logrus"
)

// AIMoveHandler answers POST /api/ai-move with {"cards":[a,b]} chosen by the reference oracle.
func AIMoveHandler(logger *logrus.Logger, ref *oracle.Reference) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.MoveRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		move, err := ref.Suggest(req.State)
		switch {
		case errors.Is(err, oracle.ErrMalformed):
			writeError(w, http.StatusBadRequest, err.Error())
			return
		case errors.Is(err, oracle.ErrNoMove):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		case err != nil:
			logger.WithError(err).Error("reference move failed")
			writeError(w, http.StatusInternalServerError, "could not compute move")
			return
		}

		logger.WithFields(logrus.Fields{
			"difficulty": req.State.Difficulty,
			"cards":      move.Cards,
		}).Debug("suggested move")
		writeJSON(w, http.StatusOK, move)
	}
}
