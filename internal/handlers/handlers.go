package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/minefield-dev/minefield-server/internal/game"
)

func SendJSON(w http.ResponseWriter, v any) (int, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	w.Header().Add("Content-Type", "application/json")
	return w.Write(payload)
}

func sendJSONOrLog(w http.ResponseWriter, logger *slog.Logger, v any) {
	if _, err := SendJSON(w, v); err != nil {
		logger.Error(
			"unable to send response",
			slog.Any("response", v),
			slog.Any("error", err),
		)
	}
}

func wrapError(err error) map[string]string {
	return map[string]string{
		"error": err.Error(),
	}
}

// sendEngineError maps the engine taxonomy onto HTTP statuses: invalid
// positions and settings are the client's fault, illegal-state moves are a
// conflict with the session lifecycle.
func sendEngineError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, game.ErrOutOfBounds),
		errors.Is(err, game.ErrInvalidDimensions),
		errors.Is(err, game.ErrInvalidMineCount),
		errors.Is(err, game.ErrDensityExceeded):
		w.WriteHeader(http.StatusBadRequest)
	case errors.Is(err, game.ErrIllegalState):
		w.WriteHeader(http.StatusConflict)
	default:
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error("unexpected engine error", "error", err)
		return
	}
	sendJSONOrLog(w, logger, wrapError(err))
}
