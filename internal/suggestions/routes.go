package suggestions

import (
	"net/http"

	"github.com/CivicAgenda/CA-Backend/internal/auth"
	"github.com/CivicAgenda/CA-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()
	sessionFetcher := auth.SessionInfo{}

	r.Get("/", ListHandler)

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher))
		r.Use(middleware.OriginCheckMiddleware)
		r.Post("/", CreateHandler)
		r.Post("/{id}/vote", VoteHandler)
	})

	return r
}

func SetupAdminRoutes() http.Handler {
	r := chi.NewRouter()

	r.Get("/", ModerationListHandler)
	r.Post("/{id}/approve", ApproveHandler)
	r.Post("/{id}/reject", RejectHandler)

	return r
}
