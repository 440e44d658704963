package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/CivicAgenda/CA-Backend/internal/agendas"
	"github.com/CivicAgenda/CA-Backend/internal/auth"
	"github.com/CivicAgenda/CA-Backend/internal/db"
	"github.com/CivicAgenda/CA-Backend/internal/i18n"
	"github.com/CivicAgenda/CA-Backend/internal/middleware"
	"github.com/CivicAgenda/CA-Backend/internal/settings"
	"github.com/CivicAgenda/CA-Backend/internal/suggestions"
	"github.com/CivicAgenda/CA-Backend/internal/testimonials"
	"github.com/CivicAgenda/CA-Backend/internal/votes"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	response := "Server is up!"
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, response)
}

func main() {
	_ = godotenv.Load(".env.local")
	db.Connect()

	port := os.Getenv("PORT")
	if port == "" {
		port = "5050"
	}

	auth.Init()
	settings.Init()
	agendas.Init()
	votes.Init()
	suggestions.Init()
	testimonials.Init()

	sessionFetcher := auth.SessionInfo{}

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)
	r.Get("/", RootHandler)

	r.Mount("/auth", auth.SetupRoutes())
	r.Mount("/agendas", agendas.SetupRoutes())
	r.Mount("/suggestions", suggestions.SetupRoutes())
	r.Mount("/testimonials", testimonials.SetupRoutes())
	r.Mount("/votes", votes.SetupRoutes(sessionFetcher))
	r.Mount("/locales", i18n.SetupRoutes())

	// Everything under /admin requires a session plus at least moderator;
	// catalog and settings management is admin-only on top of that.
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher))

		r.Group(func(r chi.Router) {
			r.Use(middleware.ModeratorMiddleware)
			r.Mount("/suggestions", suggestions.SetupAdminRoutes())
			r.Mount("/testimonials", testimonials.SetupAdminRoutes())
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminMiddleware)
			r.Mount("/agendas", agendas.SetupAdminRoutes())
			r.Mount("/settings", settings.SetupAdminRoutes())
		})
	})

	fmt.Println("Server listening on port :" + port + "...")

	http.ListenAndServe("0.0.0.0:"+port, r)
}
