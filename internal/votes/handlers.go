package votes

import (
	"encoding/json"
	"net/http"

	"github.com/CivicAgenda/CA-Backend/internal/utils"
)

// BatchHandler returns aggregate counts (and the caller's own votes when a
// session is present) for a list of items in one round trip. Mounted with the
// optional session middleware so anonymous visitors can hydrate lists too.
func BatchHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Kind Kind     `json:"kind"`
		IDs  []string `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if input.Kind != KindAgenda && input.Kind != KindSuggestion {
		http.Error(w, "kind must be agenda or suggestion", http.StatusBadRequest)
		return
	}
	if len(input.IDs) == 0 || len(input.IDs) > 200 {
		http.Error(w, "ids must contain between 1 and 200 entries", http.StatusBadRequest)
		return
	}

	counts, err := CountsForMany(r.Context(), input.Kind, input.IDs)
	if err != nil {
		http.Error(w, "Failed to fetch vote counts", http.StatusInternalServerError)
		return
	}

	userID, _ := utils.GetUserIDFromContext(r.Context())
	userVotes, err := UserVotes(r.Context(), input.Kind, input.IDs, userID)
	if err != nil {
		http.Error(w, "Failed to fetch user votes", http.StatusInternalServerError)
		return
	}

	response := struct {
		Counts    map[string]Counts `json:"counts"`
		UserVotes map[string]string `json:"user_votes"`
	}{counts, userVotes}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
