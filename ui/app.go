package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"gocouncil/adapters/excel"
	"gocouncil/app"
)

// App exposes the council service over HTTP
type App struct {
	router   *chi.Mux
	service  *app.CouncilService
	exporter *excel.DecisionLogWriter
	logger   *zap.SugaredLogger
}

// NewApp creates the HTTP application around a council service
func NewApp(service *app.CouncilService, logger *zap.SugaredLogger) *App {
	a := &App{
		router:   chi.NewRouter(),
		service:  service,
		exporter: excel.NewDecisionLogWriter(),
		logger:   logger,
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Route("/api", func(r chi.Router) {
		r.Post("/sessions", a.handleCreateSession)
		r.Get("/sessions", a.handleListSessions)
		r.Get("/sessions/{id}", a.handleGetSession)
		r.Post("/sessions/{id}/select", a.handleSelectSession)
		r.Post("/sessions/{id}/messages", a.handleSubmitMessage)
		r.Post("/sessions/{id}/council", a.handleRunCouncil)
		r.Get("/sessions/{id}/documents", a.handleGetDocuments)

		r.Get("/archive", a.handleListArchived)
		r.Get("/archive/{id}", a.handleGetArchived)

		r.Get("/export/decision-log", a.handleExportDecisionLog)

		r.Get("/settings", a.handleGetSettings)
		r.Put("/settings", a.handleUpdateSettings)
	})

	a.router.Get("/healthz", a.handleHealth)
}

// Router returns the HTTP handler for serving or testing
func (a *App) Router() http.Handler {
	return a.router
}

// Start runs the HTTP server on the given address
func (a *App) Start(addr string) error {
	a.logger.Infow("starting council server", "addr", addr)
	return http.ListenAndServe(addr, a.router)
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
