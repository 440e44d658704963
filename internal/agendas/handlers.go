package agendas

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/CivicAgenda/CA-Backend/internal/db"
	"github.com/CivicAgenda/CA-Backend/internal/utils"
	"github.com/CivicAgenda/CA-Backend/internal/votes"
	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

const listCacheSeconds = 60

// ListHandler serves the public catalog with vote aggregates. Query params:
// search, category, priority, timeline (short|medium|long), sort
// (popularity|newest), shuffle_seed, limit, offset.
func ListHandler(w http.ResponseWriter, r *http.Request) {
	query := db.DB.Model(&Agenda{})

	if category := r.URL.Query().Get("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if priority := r.URL.Query().Get("priority"); priority != "" {
		query = query.Where("priority = ?", priority)
	}

	var items []Agenda
	if err := query.Find(&items).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	ids := make([]string, 0, len(items))
	for _, a := range items {
		ids = append(ids, a.ID.String())
	}

	counts, err := votes.CountsForMany(r.Context(), votes.KindAgenda, ids)
	if err != nil {
		http.Error(w, "Failed to fetch vote counts", http.StatusInternalServerError)
		return
	}

	userID, _ := utils.GetUserIDFromContext(r.Context())
	userVotes, err := votes.UserVotes(r.Context(), votes.KindAgenda, ids, userID)
	if err != nil {
		http.Error(w, "Failed to fetch user votes", http.StatusInternalServerError)
		return
	}

	ranked := decorate(items, counts, userVotes)

	search := r.URL.Query().Get("search")
	timeline := r.URL.Query().Get("timeline")
	if search != "" || timeline != "" {
		filtered := ranked[:0]
		for _, item := range ranked {
			if MatchesSearch(item.Agenda, search) && MatchesTimeline(item.Agenda, timeline) {
				filtered = append(filtered, item)
			}
		}
		ranked = filtered
	}

	if seedStr := r.URL.Query().Get("shuffle_seed"); seedStr != "" {
		seed, err := strconv.ParseInt(seedStr, 10, 64)
		if err != nil {
			http.Error(w, "Invalid shuffle_seed", http.StatusBadRequest)
			return
		}
		Shuffle(ranked, seed)
	} else if r.URL.Query().Get("sort") == "newest" {
		SortByNewest(ranked)
	} else {
		SortByPopularity(ranked)
	}

	total := len(ranked)
	ranked = paginate(ranked, r.URL.Query().Get("limit"), r.URL.Query().Get("offset"))

	// Anonymous list responses are safe to share between visitors for a bit
	if userID == "" {
		w.Header().Set("Cache-Control",
			fmt.Sprintf("public, max-age=%d, stale-while-revalidate=%d", listCacheSeconds, listCacheSeconds*5))
	} else {
		w.Header().Set("Cache-Control", "no-store")
	}

	response := struct {
		Items []Ranked `json:"items"`
		Total int      `json:"total"`
	}{ranked, total}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func paginate(items []Ranked, limitStr, offsetStr string) []Ranked {
	offset, _ := strconv.Atoi(offsetStr)
	if offset < 0 {
		offset = 0
	}
	if offset > len(items) {
		offset = len(items)
	}
	items = items[offset:]

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		return items
	}
	if limit < len(items) {
		items = items[:limit]
	}
	return items
}

// GetHandler serves one agenda by uuid, raw sequence number, or
// "manifesto-<n>" slug.
func GetHandler(w http.ResponseWriter, r *http.Request) {
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
	err = db.DB.First(&agenda, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "Agenda not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	counts, err := votes.CountsFor(r.Context(), votes.KindAgenda, id)
	if err != nil {
		http.Error(w, "Failed to fetch vote counts", http.StatusInternalServerError)
		return
	}

	userID, _ := utils.GetUserIDFromContext(r.Context())
	userVotes, err := votes.UserVotes(r.Context(), votes.KindAgenda, []string{id}, userID)
	if err != nil {
		http.Error(w, "Failed to fetch user votes", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Ranked{
		Agenda:   agenda,
		Likes:    counts.Likes,
		Dislikes: counts.Dislikes,
		UserVote: userVotes[id],
	})
}

// VoteHandler toggles the caller's vote on an agenda and returns the updated
// aggregates.
func VoteHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		VoteType string `json:"vote_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	id, err := Resolve(chi.URLParam(r, "id"))
	if errors.Is(err, ErrUnrecognizedID) {
		http.Error(w, "Invalid agenda id", http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	counts, err := votes.Toggle(r.Context(), votes.KindAgenda, id, userID, input.VoteType)
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
