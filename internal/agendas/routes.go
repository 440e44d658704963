package agendas

import (
	"net/http"

	"github.com/CivicAgenda/CA-Backend/internal/auth"
	"github.com/CivicAgenda/CA-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()
	sessionFetcher := auth.SessionInfo{}

	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalSessionMiddleware(sessionFetcher))
		r.Get("/", ListHandler)
		r.Get("/{id}", GetHandler)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher))
		r.Use(middleware.OriginCheckMiddleware)
		r.Post("/{id}/vote", VoteHandler)
	})

	return r
}

func SetupAdminRoutes() http.Handler {
	r := chi.NewRouter()

	r.Post("/", CreateHandler)
	r.Put("/{id}", UpdateHandler)
	r.Delete("/{id}", DeleteHandler)

	return r
}
