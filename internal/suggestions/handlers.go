package suggestions

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/CivicAgenda/CA-Backend/internal/agendas"
	"github.com/CivicAgenda/CA-Backend/internal/db"
	"github.com/CivicAgenda/CA-Backend/internal/notify"
	"github.com/CivicAgenda/CA-Backend/internal/ratelimit"
	"github.com/CivicAgenda/CA-Backend/internal/settings"
	"github.com/CivicAgenda/CA-Backend/internal/utils"
	"github.com/CivicAgenda/CA-Backend/internal/votes"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

const maxContentLength = 2000

// 5 suggestions per 10 minutes per client IP
var limiter = ratelimit.New(10*time.Minute, 5)

var sanitizer = bluemonday.StrictPolicy()

// CreateHandler accepts a new suggestion from an authenticated visitor.
// Validation happens before any database work; the email notification is
// fired out of band and never blocks or fails the response.
func CreateHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		AgendaID   string `json:"agenda_id"`
		Content    string `json:"content"`
		AuthorName string `json:"author_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	input.Content = strings.TrimSpace(input.Content)
	input.AuthorName = strings.TrimSpace(input.AuthorName)

	if input.Content == "" || input.AuthorName == "" {
		http.Error(w, "Content and author name are required", http.StatusBadRequest)
		return
	}
	if len(input.Content) > maxContentLength {
		http.Error(w, "Content too long", http.StatusBadRequest)
		return
	}
	if input.AgendaID == "" {
		http.Error(w, "Agenda id is required", http.StatusBadRequest)
		return
	}

	if ip := ratelimit.ClientIP(r); !limiter.Allow(ip) {
		retry := int(limiter.RetryAfter(ip).Seconds()) + 1
		w.Header().Set("Retry-After", strconv.Itoa(retry))
		http.Error(w, "Too many suggestions, slow down", http.StatusTooManyRequests)
		return
	}

	agendaID, err := agendas.Resolve(input.AgendaID)
	if errors.Is(err, agendas.ErrUnrecognizedID) {
		http.Error(w, "Invalid agenda id", http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	status := "pending"
	if settings.Bool(settings.AutoApproveSuggestions) {
		status = "approved"
	}

	suggestion := Suggestion{
		ID:         uuid.NewString(),
		AgendaID:   agendaID,
		Content:    sanitizer.Sanitize(input.Content),
		AuthorName: sanitizer.Sanitize(input.AuthorName),
		UserID:     userID,
		Status:     status,
	}

	if err := db.DB.Create(&suggestion).Error; err != nil {
		http.Error(w, "Failed to create suggestion", http.StatusInternalServerError)
		return
	}

	notify.Dispatch(notify.Payload{
		Event:        "suggestion.created",
		AgendaID:     suggestion.AgendaID,
		SuggestionID: suggestion.ID,
		AuthorName:   suggestion.AuthorName,
		Content:      suggestion.Content,
		Status:       suggestion.Status,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(suggestion)
}

// ListHandler serves the public feed: approved suggestions only, newest
// first, optionally narrowed to one agenda.
func ListHandler(w http.ResponseWriter, r *http.Request) {
	query := db.DB.Where("status = ?", "approved").Order("created_at desc")

	if rawID := r.URL.Query().Get("agenda_id"); rawID != "" {
		agendaID, err := agendas.Resolve(rawID)
		if errors.Is(err, agendas.ErrUnrecognizedID) {
			http.Error(w, "Invalid agenda id", http.StatusBadRequest)
			return
		}
		if err != nil {
			http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		query = query.Where("agenda_id = ?", agendaID)
	}

	var items []Suggestion
	if err := query.Find(&items).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	ids := make([]string, 0, len(items))
	for _, s := range items {
		ids = append(ids, s.ID)
	}
	counts, err := votes.CountsForMany(r.Context(), votes.KindSuggestion, ids)
	if err != nil {
		http.Error(w, "Failed to fetch vote counts", http.StatusInternalServerError)
		return
	}

	type withCounts struct {
		Suggestion
		Likes    int64 `json:"likes"`
		Dislikes int64 `json:"dislikes"`
	}
	response := make([]withCounts, 0, len(items))
	for _, s := range items {
		c := counts[s.ID]
		response = append(response, withCounts{Suggestion: s, Likes: c.Likes, Dislikes: c.Dislikes})
	}

	w.Header().Set("Cache-Control", "public, max-age=30")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// VoteHandler toggles the caller's vote on an approved suggestion.
func VoteHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		http.Error(w, "Invalid suggestion id", http.StatusBadRequest)
		return
	}

	var suggestion Suggestion
	if err := db.DB.First(&suggestion, "id = ? AND status = ?", id, "approved").Error; err != nil {
		http.Error(w, "Suggestion not found", http.StatusNotFound)
		return
	}

	var input struct {
		VoteType string `json:"vote_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	counts, err := votes.Toggle(r.Context(), votes.KindSuggestion, id, userID, input.VoteType)
	if errors.Is(err, votes.ErrBadVoteType) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, "Failed to record vote", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(counts)
}
