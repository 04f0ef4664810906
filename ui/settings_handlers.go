package ui

import (
	"encoding/json"
	"net/http"

	"gocouncil/domain/council"
	apperrors "gocouncil/internal/errors"
)

func (a *App) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, a.service.Settings())
}

// handleUpdateSettings replaces the settings snapshot. The update applies
// to the next council run, never to one already in flight.
func (a *App) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings council.UserSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		a.respondError(w, r, apperrors.New(apperrors.CodeInvalidInput, "invalid request body"))
		return
	}

	if err := a.service.UpdateSettings(settings); err != nil {
		a.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, a.service.Settings())
}
