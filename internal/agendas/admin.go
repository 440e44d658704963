package agendas

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/CivicAgenda/CA-Backend/internal/db"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type agendaInput struct {
	SequenceID   int      `json:"sequence_id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	ProblemShort string   `json:"problem_short"`
	ProblemLong  string   `json:"problem_long"`
	Category     string   `json:"category"`
	Priority     string   `json:"priority"`
	Timeline     string   `json:"timeline"`
	KeyPoints    []string `json:"key_points"`
}

func validPriority(p string) bool {
	return p == "High" || p == "Medium" || p == "Low"
}

func CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input agendaInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(input.Title) == "" {
		http.Error(w, "Title is required", http.StatusBadRequest)
		return
	}
	if input.Priority == "" {
		input.Priority = "Medium"
	}
	if !validPriority(input.Priority) {
		http.Error(w, "Priority must be High, Medium or Low", http.StatusBadRequest)
		return
	}

	// Auto-assign the next sequence number unless the caller pinned one
	if input.SequenceID == 0 {
		var max struct{ Max int }
		db.DB.Model(&Agenda{}).Select("coalesce(max(sequence_id), 0) as max").Scan(&max)
		input.SequenceID = max.Max + 1
	}

	agenda := Agenda{
		ID:           uuid.New(),
		SequenceID:   input.SequenceID,
		Title:        input.Title,
		Description:  input.Description,
		ProblemShort: input.ProblemShort,
		ProblemLong:  input.ProblemLong,
		Category:     input.Category,
		Priority:     input.Priority,
		Timeline:     input.Timeline,
		KeyPoints:    pq.StringArray(input.KeyPoints),
	}

	if err := db.DB.Create(&agenda).Error; err != nil {
		http.Error(w, "Failed to create agenda", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(agenda)
}

func UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := Resolve(chi.URLParam(r, "id"))
	if errors.Is(err, ErrUnrecognizedID) {
		http.Error(w, "Invalid agenda id", http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var agenda Agenda
	if err := db.DB.First(&agenda, "id = ?", id).Error; err != nil {
		http.Error(w, "Agenda not found", http.StatusNotFound)
		return
	}

	var input agendaInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if input.Priority != "" && !validPriority(input.Priority) {
		http.Error(w, "Priority must be High, Medium or Low", http.StatusBadRequest)
		return
	}

	updates := map[string]interface{}{}
	if input.Title != "" {
		updates["title"] = input.Title
	}
	if input.Description != "" {
		updates["description"] = input.Description
	}
	if input.ProblemShort != "" {
		updates["problem_short"] = input.ProblemShort
	}
	if input.ProblemLong != "" {
		updates["problem_long"] = input.ProblemLong
	}
	if input.Category != "" {
		updates["category"] = input.Category
	}
	if input.Priority != "" {
		updates["priority"] = input.Priority
	}
	if input.Timeline != "" {
		updates["timeline"] = input.Timeline
	}
	if input.KeyPoints != nil {
		updates["key_points"] = pq.StringArray(input.KeyPoints)
	}

	if len(updates) == 0 {
		http.Error(w, "No fields to update", http.StatusBadRequest)
		return
	}

	if err := db.DB.Model(&agenda).Updates(updates).Error; err != nil {
		http.Error(w, "Failed to update agenda", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(agenda)
}

func DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := Resolve(chi.URLParam(r, "id"))
	if errors.Is(err, ErrUnrecognizedID) {
		http.Error(w, "Invalid agenda id", http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	result := db.DB.Delete(&Agenda{}, "id = ?", id)
	if result.Error != nil {
		http.Error(w, "Failed to delete agenda", http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "Agenda not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
