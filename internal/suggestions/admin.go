package suggestions

import (
	"encoding/json"
	"net/http"

	"github.com/CivicAgenda/CA-Backend/internal/db"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ModerationListHandler shows every suggestion regardless of status,
// optionally filtered with ?status=pending.
func ModerationListHandler(w http.ResponseWriter, r *http.Request) {
	query := db.DB.Order("created_at desc")

	if status := r.URL.Query().Get("status"); status != "" {
		if status != "pending" && status != "approved" && status != "rejected" {
			http.Error(w, "Invalid status filter", http.StatusBadRequest)
			return
		}
		query = query.Where("status = ?", status)
	}

	var items []Suggestion
	if err := query.Find(&items).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

func setStatus(w http.ResponseWriter, r *http.Request, status string) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		http.Error(w, "Invalid suggestion id", http.StatusBadRequest)
		return
	}

	var suggestion Suggestion
	if err := db.DB.First(&suggestion, "id = ?", id).Error; err != nil {
		http.Error(w, "Suggestion not found", http.StatusNotFound)
		return
	}

	if err := db.DB.Model(&suggestion).Update("status", status).Error; err != nil {
		http.Error(w, "Failed to update suggestion", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(suggestion)
}

func ApproveHandler(w http.ResponseWriter, r *http.Request) {
	setStatus(w, r, "approved")
}

func RejectHandler(w http.ResponseWriter, r *http.Request) {
	setStatus(w, r, "rejected")
}
