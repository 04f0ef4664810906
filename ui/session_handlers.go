package ui

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"gocouncil/domain/core"
	apperrors "gocouncil/internal/errors"
)

type submitMessageRequest struct {
	Text string `json:"text"`
}

func (a *App) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	session := a.service.NewSession()
	respondJSON(w, http.StatusCreated, session)
}

func (a *App) handleListSessions(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, a.service.SessionSummaries())
}

func (a *App) handleGetSession(w http.ResponseWriter, r *http.Request) {
	view, err := a.service.SessionView(sessionParam(r))
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (a *App) handleSelectSession(w http.ResponseWriter, r *http.Request) {
	if err := a.service.SelectSession(sessionParam(r)); err != nil {
		a.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"active": sessionParam(r).String()})
}

func (a *App) handleSubmitMessage(w http.ResponseWriter, r *http.Request) {
	var req submitMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.respondError(w, r, apperrors.New(apperrors.CodeInvalidInput, "invalid request body"))
		return
	}

	session, err := a.service.SubmitChatTurn(r.Context(), sessionParam(r), req.Text)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, session)
}

func (a *App) handleRunCouncil(w http.ResponseWriter, r *http.Request) {
	session, err := a.service.RunCouncil(r.Context(), sessionParam(r))
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, session)
}

func (a *App) handleGetDocuments(w http.ResponseWriter, r *http.Request) {
	session, err := a.service.GetSession(sessionParam(r))
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	if session.Documents == nil {
		a.respondError(w, r, core.NewNotFoundError("documents", session.ID.String()))
		return
	}

	if r.URL.Query().Get("format") == "html" {
		a.renderDocumentsHTML(w, session.Title, session.Documents.PRFAQ, session.Documents.Report)
		return
	}
	respondJSON(w, http.StatusOK, session.Documents)
}

// renderDocumentsHTML converts the markdown bundle into a standalone page
func (a *App) renderDocumentsHTML(w http.ResponseWriter, title, prfaq, report string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<!DOCTYPE html>\n<html>\n<head><title>%s</title></head>\n<body>\n", title)
	fmt.Fprintf(w, "<section id=\"prfaq\">\n%s</section>\n", renderMarkdown(prfaq))
	fmt.Fprintf(w, "<section id=\"report\">\n%s</section>\n", renderMarkdown(report))
	fmt.Fprint(w, "</body>\n</html>\n")
}

func renderMarkdown(source string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	return string(markdown.ToHTML([]byte(source), p, renderer))
}

func sessionParam(r *http.Request) core.SessionID {
	return core.SessionID(chi.URLParam(r, "id"))
}
