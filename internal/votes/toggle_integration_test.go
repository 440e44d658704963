package votes_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/CivicAgenda/CA-Backend/internal/agendas"
	"github.com/CivicAgenda/CA-Backend/internal/db"
	"github.com/CivicAgenda/CA-Backend/internal/votes"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/lib/pq"
)

var dbAvailable bool

func TestMain(m *testing.M) {
	_ = godotenv.Load("../../.env.local")

	if os.Getenv("DATABASE_URL") == "" {
		// No database available — skip all integration tests gracefully.
		os.Exit(m.Run())
	}

	db.Connect()
	dbAvailable = true

	agendas.Init()
	votes.Init()

	os.Exit(m.Run())
}

// createTestAgenda inserts an agenda with a high sequence_id so it never
// collides with seeded rows, and cleans up the agenda plus its votes.
func createTestAgenda(t *testing.T) string {
	t.Helper()
	if !dbAvailable {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}

	agenda := agendas.Agenda{
		ID:          uuid.New(),
		SequenceID:  900000 + int(uuid.New().ID()%100000),
		Title:       fmt.Sprintf("test agenda %s", uuid.New().String()[:8]),
		Description: "integration fixture",
		Category:    "Test",
		Priority:    "Medium",
		KeyPoints:   pq.StringArray{},
	}
	if err := db.DB.Create(&agenda).Error; err != nil {
		t.Fatalf("failed to create test agenda: %v", err)
	}

	id := agenda.ID.String()
	t.Cleanup(func() {
		db.DB.Where("agenda_id = ?", id).Delete(&votes.AgendaVote{})
		db.DB.Where("id = ?", id).Delete(&agendas.Agenda{})
	})
	return id
}

// TestToggleCreateSwitchClear walks one user's vote through the full toggle
// lifecycle: like creates, dislike switches, dislike again clears.
func TestToggleCreateSwitchClear(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}
	agendaID := createTestAgenda(t)
	userID := uuid.NewString()
	ctx := context.Background()

	counts, err := votes.Toggle(ctx, votes.KindAgenda, agendaID, userID, "like")
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if counts.Likes != 1 || counts.Dislikes != 0 {
		t.Fatalf("after like: expected 1/0, got %d/%d", counts.Likes, counts.Dislikes)
	}

	counts, err = votes.Toggle(ctx, votes.KindAgenda, agendaID, userID, "dislike")
	if err != nil {
		t.Fatalf("switch toggle: %v", err)
	}
	if counts.Likes != 0 || counts.Dislikes != 1 {
		t.Fatalf("after switch: expected 0/1, got %d/%d", counts.Likes, counts.Dislikes)
	}

	counts, err = votes.Toggle(ctx, votes.KindAgenda, agendaID, userID, "dislike")
	if err != nil {
		t.Fatalf("clear toggle: %v", err)
	}
	if counts.Likes != 0 || counts.Dislikes != 0 {
		t.Fatalf("after clear: expected 0/0, got %d/%d", counts.Likes, counts.Dislikes)
	}

	// One toggle cycle must never leave more than one row per (item, user).
	var remaining int64
	db.DB.Model(&votes.AgendaVote{}).
		Where("agenda_id = ? AND user_id = ?", agendaID, userID).
		Count(&remaining)
	if remaining != 0 {
		t.Errorf("expected 0 vote rows after clear, found %d", remaining)
	}
}

// TestToggleConcurrentFirstVotes races two first votes from the same user at
// the unique (agenda_id, user_id) index: neither call may error and exactly
// one row survives. Opposite types keep the same-type clear branch out of
// play, so any interleaving must leave one row.
func TestToggleConcurrentFirstVotes(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}
	agendaID := createTestAgenda(t)
	userID := uuid.NewString()
	ctx := context.Background()

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for _, voteType := range []string{"like", "dislike"} {
		wg.Add(1)
		go func(vt string) {
			defer wg.Done()
			_, err := votes.Toggle(ctx, votes.KindAgenda, agendaID, userID, vt)
			errs <- err
		}(voteType)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("concurrent toggle errored: %v", err)
		}
	}

	var rows int64
	db.DB.Model(&votes.AgendaVote{}).
		Where("agenda_id = ? AND user_id = ?", agendaID, userID).
		Count(&rows)
	if rows != 1 {
		t.Errorf("expected exactly 1 vote row after the race, found %d", rows)
	}
}

// TestToggleRejectsUnknownType verifies that anything but like/dislike is
// rejected before touching the database.
func TestToggleRejectsUnknownType(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}
	agendaID := createTestAgenda(t)

	_, err := votes.Toggle(context.Background(), votes.KindAgenda, agendaID, uuid.NewString(), "upvote")
	if err != votes.ErrBadVoteType {
		t.Fatalf("expected ErrBadVoteType, got %v", err)
	}
}

// TestCountsForManyZeroFills verifies batch counts include items nobody has
// voted on, with zero counts, alongside items with votes.
func TestCountsForManyZeroFills(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}
	votedID := createTestAgenda(t)
	quietID := createTestAgenda(t)
	ctx := context.Background()

	userA := uuid.NewString()
	userB := uuid.NewString()
	if _, err := votes.Toggle(ctx, votes.KindAgenda, votedID, userA, "like"); err != nil {
		t.Fatalf("toggle userA: %v", err)
	}
	if _, err := votes.Toggle(ctx, votes.KindAgenda, votedID, userB, "dislike"); err != nil {
		t.Fatalf("toggle userB: %v", err)
	}

	counts, err := votes.CountsForMany(ctx, votes.KindAgenda, []string{votedID, quietID})
	if err != nil {
		t.Fatalf("CountsForMany: %v", err)
	}
	if c := counts[votedID]; c.Likes != 1 || c.Dislikes != 1 {
		t.Errorf("voted item: expected 1/1, got %d/%d", c.Likes, c.Dislikes)
	}
	if c, ok := counts[quietID]; !ok {
		t.Error("expected quiet item present in result")
	} else if c.Likes != 0 || c.Dislikes != 0 {
		t.Errorf("quiet item: expected 0/0, got %d/%d", c.Likes, c.Dislikes)
	}

	userVotes, err := votes.UserVotes(ctx, votes.KindAgenda, []string{votedID, quietID}, userA)
	if err != nil {
		t.Fatalf("UserVotes: %v", err)
	}
	if userVotes[votedID] != "like" {
		t.Errorf("expected userA vote 'like', got %q", userVotes[votedID])
	}
	if _, ok := userVotes[quietID]; ok {
		t.Error("expected no entry for item userA never voted on")
	}
}
