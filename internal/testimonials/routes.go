package testimonials

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()

	r.Get("/", ListHandler)

	return r
}

func SetupAdminRoutes() http.Handler {
	r := chi.NewRouter()

	r.Post("/", CreateHandler)
	r.Put("/{id}", UpdateHandler)
	r.Delete("/{id}", DeleteHandler)

	return r
}
