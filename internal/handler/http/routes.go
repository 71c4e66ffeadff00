package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Route("/api/v1", func(api chi.Router) {
		// routes without authorization
		api.Get("/health", h.health)

		// routes with authorization
		api.Group(func(r chi.Router) {
			r.Use(h.auth)

			r.Get("/health/protected", h.healthProtected)

			r.Get("/users/me", h.getMyProfile)
			r.Patch("/users/me", h.updateMyProfile)

			r.Get("/providers", h.listProviders)
			r.Post("/providers", h.createProvider)
			r.Get("/providers/{id}", h.getProvider)
			r.Patch("/providers/{id}", h.updateProvider)
			r.Delete("/providers/{id}", h.deleteProvider)

			r.Get("/costs", h.listCosts)
		})
	})

	return router
}
