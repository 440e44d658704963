package settings

import (
	"encoding/json"
	"net/http"

	"github.com/CivicAgenda/CA-Backend/internal/db"
	"github.com/go-chi/chi/v5"
)

func ListHandler(w http.ResponseWriter, r *http.Request) {
	var all []Setting
	if err := db.DB.Find(&all).Error; err != nil {
		http.Error(w, "Failed to fetch settings", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(all)
}

func GetHandler(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var s Setting
	if err := db.DB.First(&s, "name = ?", name).Error; err != nil {
		http.Error(w, "Setting not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s)
}

func UpdateHandler(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var body struct {
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := Set(name, body.Value); err != nil {
		http.Error(w, "Failed to update setting", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Setting{Name: name, Value: body.Value})
}

func SetupAdminRoutes() http.Handler {
	r := chi.NewRouter()

	r.Get("/", ListHandler)
	r.Get("/{name}", GetHandler)
	r.Put("/{name}", UpdateHandler)

	return r
}
