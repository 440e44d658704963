package agendas

import (
	"math/rand"
	"sort"

	"github.com/CivicAgenda/CA-Backend/internal/votes"
)

// Ranked is an agenda row decorated with its vote aggregates for list views.
type Ranked struct {
	Agenda
	Likes    int64  `json:"likes"`
	Dislikes int64  `json:"dislikes"`
	UserVote string `json:"user_vote,omitempty"`
}

func (r Ranked) netScore() int64   { return r.Likes - r.Dislikes }
func (r Ranked) engagement() int64 { return r.Likes + r.Dislikes }

// SortByPopularity orders by descending net score (likes - dislikes),
// tie-broken by descending total engagement (likes + dislikes).
func SortByPopularity(items []Ranked) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].netScore() != items[j].netScore() {
			return items[i].netScore() > items[j].netScore()
		}
		return items[i].engagement() > items[j].engagement()
	})
}

func SortByNewest(items []Ranked) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

// Shuffle applies a seeded Fisher-Yates pass so the frontend can show a
// stable randomized order per visitor (same seed, same permutation).
func Shuffle(items []Ranked, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	for i := len(items) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

// decorate joins agendas with their vote aggregates and, when a user is
// present, that user's own vote.
func decorate(items []Agenda, counts map[string]votes.Counts, userVotes map[string]string) []Ranked {
	ranked := make([]Ranked, 0, len(items))
	for _, a := range items {
		id := a.ID.String()
		c := counts[id]
		ranked = append(ranked, Ranked{
			Agenda:   a,
			Likes:    c.Likes,
			Dislikes: c.Dislikes,
			UserVote: userVotes[id],
		})
	}
	return ranked
}
