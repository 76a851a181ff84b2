package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(
		h.withTraceID,
		h.withLogging,
		middleware.Recoverer,
		withGZip,
		h.withSession,
		h.withGate,
	)
	if h.server.RequestTimeout > 0 {
		router.Use(middleware.Timeout(h.server.RequestTimeout))
	}

	// public: the gate lets these through without a session
	router.Post("/api/signup", h.signup)
	router.Route("/api/auth", func(r chi.Router) {
		r.Post("/callback/credentials", h.credentialsCallback)
		r.Get("/session", h.getSession)
		r.Post("/signout", h.signout)
	})
	router.Get("/auth/login", h.loginPage)
	router.Get("/auth/signup", h.signupPage)

	if h.server.StaticDir != "" {
		router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(h.server.StaticDir))))
	}

	// protected
	router.Get("/", h.homePage)
	router.Get("/api/version", h.getServerVersion)

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
