package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Recoverer)
	router.Use(withSecurityHeaders)
	router.Use(withCORS())
	router.Use(middleware.Compress(5, "application/json", "text/plain"))
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	router.Get("/api/version/", h.getServerVersion)
	router.Get("/healthz", h.healthz)
	if h.metrics != nil {
		router.Method("GET", "/metrics", h.metrics.Handler())
	}

	router.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(h.withRateLimit)

		// routes without authorization
		r.Get("/", h.listUsers)
		r.Post("/register", h.register)
		r.Post("/login", h.login)
		r.Post("/refresh-token", h.refreshToken)

		// routes behind the access gate
		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Post("/logout", h.logout)
			r.Post("/logout-all", h.logoutAll)
			r.Post("/change-password", h.changePassword)
			r.Get("/dashboard", h.dashboard)
		})
	})

	router.NotFound(routeNotFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
