package votes

import (
	"net/http"

	"github.com/CivicAgenda/CA-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes(fetcher middleware.SessionFetcher) http.Handler {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalSessionMiddleware(fetcher))
		r.Post("/batch", BatchHandler)
	})

	return r
}
