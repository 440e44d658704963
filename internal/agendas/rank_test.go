package agendas_test

import (
	"testing"
	"time"

	"github.com/CivicAgenda/CA-Backend/internal/agendas"
	"github.com/google/uuid"
)

func ranked(title string, likes, dislikes int64) agendas.Ranked {
	return agendas.Ranked{
		Agenda:   agendas.Agenda{ID: uuid.New(), Title: title},
		Likes:    likes,
		Dislikes: dislikes,
	}
}

// TestSortByPopularity_NetScore: A(likes=5, dislikes=1) and
// B(likes=3, dislikes=0) have net scores 4 and 3, so the order is [A, B].
func TestSortByPopularity_NetScore(t *testing.T) {
	items := []agendas.Ranked{
		ranked("B", 3, 0),
		ranked("A", 5, 1),
	}

	agendas.SortByPopularity(items)

	if items[0].Title != "A" || items[1].Title != "B" {
		t.Errorf("expected [A B], got [%s %s]", items[0].Title, items[1].Title)
	}
}

// TestSortByPopularity_EngagementTiebreak verifies equal net scores are
// broken by total engagement (likes + dislikes), descending.
func TestSortByPopularity_EngagementTiebreak(t *testing.T) {
	items := []agendas.Ranked{
		ranked("quiet", 2, 0),   // net 2, engagement 2
		ranked("debated", 6, 4), // net 2, engagement 10
	}

	agendas.SortByPopularity(items)

	if items[0].Title != "debated" {
		t.Errorf("expected engagement tiebreak to rank debated first, got %s", items[0].Title)
	}
}

// TestSortByNewest verifies descending creation order.
func TestSortByNewest(t *testing.T) {
	old := ranked("old", 0, 0)
	old.CreatedAt = time.Now().Add(-48 * time.Hour)
	fresh := ranked("fresh", 0, 0)
	fresh.CreatedAt = time.Now()

	items := []agendas.Ranked{old, fresh}
	agendas.SortByNewest(items)

	if items[0].Title != "fresh" {
		t.Errorf("expected fresh first, got %s", items[0].Title)
	}
}

// TestShuffle_SeededAndStable verifies the same seed yields the same
// permutation, and the result is still a permutation of the input.
func TestShuffle_SeededAndStable(t *testing.T) {
	build := func() []agendas.Ranked {
		items := make([]agendas.Ranked, 10)
		for i := range items {
			items[i] = agendas.Ranked{Agenda: agendas.Agenda{SequenceID: i + 1}}
		}
		return items
	}

	a := build()
	b := build()
	agendas.Shuffle(a, 12345)
	agendas.Shuffle(b, 12345)

	seen := make(map[int]bool)
	for i := range a {
		if a[i].SequenceID != b[i].SequenceID {
			t.Fatalf("same seed gave different permutations at index %d", i)
		}
		seen[a[i].SequenceID] = true
	}
	if len(seen) != 10 {
		t.Errorf("shuffle lost elements: %d distinct of 10", len(seen))
	}

	c := build()
	agendas.Shuffle(c, 54321)
	same := true
	for i := range c {
		if c[i].SequenceID != a[i].SequenceID {
			same = false
			break
		}
	}
	if same {
		t.Log("different seeds produced the same permutation (possible but unlikely)")
	}
}
