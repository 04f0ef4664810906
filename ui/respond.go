package ui

import (
	"encoding/json"
	"errors"
	"net/http"

	"gocouncil/domain/core"
	apperrors "gocouncil/internal/errors"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// respondError maps domain errors onto HTTP statuses. Unrecognized errors
// become a 500 with the app error code when one is attached.
func (a *App) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	code := apperrors.GetCode(err)

	switch {
	case core.IsNotFoundError(err), errors.Is(err, core.ErrNoActiveSession):
		status = http.StatusNotFound
		code = apperrors.CodeNotFound
	case errors.Is(err, core.ErrEmptyInput),
		errors.Is(err, core.ErrTooManyPrinciples),
		errors.Is(err, core.ErrUnknownPrinciple):
		status = http.StatusBadRequest
		code = apperrors.CodeInvalidInput
	case errors.Is(err, core.ErrChatInFlight),
		errors.Is(err, core.ErrCouncilInFlight),
		errors.Is(err, core.ErrSessionCompleted):
		status = http.StatusConflict
		code = apperrors.CodeConflict
	case errors.Is(err, core.ErrServiceUnreachable),
		errors.Is(err, core.ErrSynthesisFailed):
		status = http.StatusBadGateway
		code = apperrors.CodeExternalService
	}

	if status >= http.StatusInternalServerError {
		a.logger.Errorw("request failed", "path", r.URL.Path, "error", err)
	}
	respondJSON(w, status, errorResponse{Error: err.Error(), Code: code})
}
