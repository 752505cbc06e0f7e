package server

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"
)

func addRoutes(r chi.Router, logger *slog.Logger, deps Deps) {
	broker := NewBroker()

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Gestionar Carrera Admin API", "/openapi.json", "/docs"))
	if deps.Health != nil {
		r.Mount("/healthz", deps.Health)
	}
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	// Admin auth.
	r.Post("/api/admin/login", handleAdminLogin(logger, deps.Admin))
	r.Post("/api/admin/logout", handleAdminLogout(logger, deps.Admin))
	r.Get("/api/admin/me", handleAdminMe(deps.Admin))

	// Participant management, requires admin auth.
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(adminAuthMiddleware(deps.Admin))

		r.Get("/categorias", handleListCategories(logger, deps.Backend))
		r.Get("/equipos", handleListTeams(logger, deps.Backend))
		r.Get("/categorias/{categoryID}/inscritos",
			handleListInscritos(logger, deps.Backend, deps.Metrics, deps.PageSize, deps.Now))
		r.Get("/categorias/{categoryID}/events", handleEvents(broker))

		r.Get("/inscritos/{id}", handleGetInscrito(logger, deps.Backend, deps.Now))
		r.Put("/inscritos/{id}", handleUpdateInscrito(logger, deps.Backend, broker, deps.Now))
		r.Delete("/inscritos/{id}", handleDeleteInscrito(logger, deps.Backend, broker))
		r.Get("/inscritos/{id}/documentos/{kind}", handleDocumentURL(logger, deps.Backend, deps.Signer))
	})

	if deps.SPADir != "" {
		if info, err := os.Stat(deps.SPADir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", deps.SPADir)
			r.NotFound(handleSPA(deps.SPADir))
		}
	}
}
