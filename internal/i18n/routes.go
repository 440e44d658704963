package i18n

import (
	"encoding/json"
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"
)

var langPattern = regexp.MustCompile(`^[a-zA-Z]{2,3}(-[a-zA-Z0-9]{2,8})*$`)
var namespacePattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()
	loader := DefaultLoader()

	r.Get("/{lang}", func(w http.ResponseWriter, req *http.Request) {
		lang := chi.URLParam(req, "lang")
		if !langPattern.MatchString(lang) {
			http.Error(w, "Invalid language tag", http.StatusBadRequest)
			return
		}

		resolved, err := loader.ResolveLanguage(lang)
		if err != nil {
			http.Error(w, "No locales available", http.StatusInternalServerError)
			return
		}

		bundle, err := loader.Load(resolved)
		if err != nil {
			http.Error(w, "Failed to load locale", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Cache-Control", "public, max-age=300")
		w.Header().Set("Content-Language", resolved)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(bundle)
	})

	r.Get("/{lang}/{namespace}", func(w http.ResponseWriter, req *http.Request) {
		lang := chi.URLParam(req, "lang")
		namespace := chi.URLParam(req, "namespace")
		if !langPattern.MatchString(lang) || !namespacePattern.MatchString(namespace) {
			http.Error(w, "Invalid locale path", http.StatusBadRequest)
			return
		}

		resolved, err := loader.ResolveLanguage(lang)
		if err != nil {
			http.Error(w, "No locales available", http.StatusInternalServerError)
			return
		}

		table, err := loader.LoadNamespace(resolved, namespace)
		if err != nil {
			http.Error(w, "Locale not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Cache-Control", "public, max-age=300")
		w.Header().Set("Content-Language", resolved)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(table)
	})

	return r
}
