package http

import (
	"github.com/MKhiriev/gsc-identity/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Get("/version", h.getServerVersion)
	router.Method("GET", "/metrics", h.metrics.Handler())

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/user/register", h.register)
		r.Post("/api/user/login", h.login)
		r.Post("/api/user/password/forgot", h.forgotPassword)
		r.Get("/api/user/password/reset/{token}", h.checkResetToken)
		r.Post("/api/user/password/reset", h.resetPassword)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/api/user/me", h.me)
		r.Patch("/api/user/profile", h.updateProfile)

		r.With(requireRole(models.RoleSuperAdmin)).
			Post("/api/admin/artifacts/purge", h.purgeArtifacts)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
