package ui

import (
	"net/http"
	"strconv"
)

func (a *App) handleListArchived(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	sessions, err := a.service.ArchivedSessions(r.Context(), limit)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, sessions)
}

func (a *App) handleGetArchived(w http.ResponseWriter, r *http.Request) {
	session, err := a.service.ArchivedSession(r.Context(), sessionParam(r))
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, session)
}
