package ui

import (
	"bytes"
	"net/http"

	apperrors "gocouncil/internal/errors"
)

// handleExportDecisionLog streams every session as an xlsx workbook
func (a *App) handleExportDecisionLog(w http.ResponseWriter, r *http.Request) {
	sessions := a.service.ListSessions()

	var buf bytes.Buffer
	if err := a.exporter.Write(&buf, sessions); err != nil {
		a.respondError(w, r, apperrors.Wrap(err, "failed to build decision log"))
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="decision-log.xlsx"`)
	_, _ = buf.WriteTo(w)
}
