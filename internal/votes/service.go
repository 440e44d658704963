package votes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/CivicAgenda/CA-Backend/internal/db"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Counts struct {
	Likes    int64 `json:"likes"`
	Dislikes int64 `json:"dislikes"`
}

var ErrBadVoteType = errors.New("vote_type must be like or dislike")

// Toggle applies the one-active-vote-per-user rule: voting the same type
// again clears the vote, voting the other type switches it, no prior vote
// creates one. Returns the updated aggregate counts for the item.
func Toggle(ctx context.Context, kind Kind, itemID, userID, voteType string) (Counts, error) {
	if voteType != "like" && voteType != "dislike" {
		return Counts{}, ErrBadVoteType
	}

	var err error
	switch kind {
	case KindAgenda:
		err = toggleAgendaVote(ctx, itemID, userID, voteType)
	case KindSuggestion:
		err = toggleSuggestionVote(ctx, itemID, userID, voteType)
	default:
		err = fmt.Errorf("unknown vote kind %q", kind)
	}
	if err != nil {
		return Counts{}, err
	}

	invalidateCounts(ctx, kind, itemID)
	return CountsFor(ctx, kind, itemID)
}

func toggleAgendaVote(ctx context.Context, itemID, userID, voteType string) error {
	tx := db.DB.WithContext(ctx)

	var existing AgendaVote
	err := tx.First(&existing, "agenda_id = ? AND user_id = ?", itemID, userID).Error

	switch {
	case err == nil && existing.VoteType == voteType:
		// Re-clicking the same type clears the vote
		return tx.Delete(&existing).Error
	case err == nil:
		return tx.Model(&existing).Update("vote_type", voteType).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		// Two concurrent first votes race to the unique index; the loser
		// falls into the DO UPDATE path instead of surfacing an error.
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "agenda_id"}, {Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"vote_type": voteType}),
		}).Create(&AgendaVote{
			ID:        uuid.NewString(),
			AgendaID:  itemID,
			UserID:    userID,
			VoteType:  voteType,
			CreatedAt: time.Now(),
		}).Error
	default:
		return err
	}
}

func toggleSuggestionVote(ctx context.Context, itemID, userID, voteType string) error {
	tx := db.DB.WithContext(ctx)

	var existing SuggestionVote
	err := tx.First(&existing, "suggestion_id = ? AND user_id = ?", itemID, userID).Error

	switch {
	case err == nil && existing.VoteType == voteType:
		return tx.Delete(&existing).Error
	case err == nil:
		return tx.Model(&existing).Update("vote_type", voteType).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "suggestion_id"}, {Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"vote_type": voteType}),
		}).Create(&SuggestionVote{
			ID:           uuid.NewString(),
			SuggestionID: itemID,
			UserID:       userID,
			VoteType:     voteType,
			CreatedAt:    time.Now(),
		}).Error
	default:
		return err
	}
}

// CountsFor returns aggregate like/dislike counts for one item, reading
// through the redis cache when it is enabled.
func CountsFor(ctx context.Context, kind Kind, itemID string) (Counts, error) {
	if c, ok := cachedCounts(ctx, kind, itemID); ok {
		return c, nil
	}

	counts, err := CountsForMany(ctx, kind, []string{itemID})
	if err != nil {
		return Counts{}, err
	}
	c := counts[itemID]
	storeCounts(ctx, kind, itemID, c)
	return c, nil
}

// CountsForMany aggregates counts for a batch of items in one group-by.
// Items with no votes are present in the result with zero counts.
func CountsForMany(ctx context.Context, kind Kind, itemIDs []string) (map[string]Counts, error) {
	out := make(map[string]Counts, len(itemIDs))
	for _, id := range itemIDs {
		out[id] = Counts{}
	}
	if len(itemIDs) == 0 {
		return out, nil
	}

	type row struct {
		ItemID   string
		VoteType string
		Count    int64
	}
	var rows []row
	err := db.DB.WithContext(ctx).Table(kind.table()).
		Select(kind.itemColumn()+" as item_id, vote_type, count(*) as count").
		Where(kind.itemColumn()+" IN ?", itemIDs).
		Group(kind.itemColumn() + ", vote_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		c := out[r.ItemID]
		switch r.VoteType {
		case "like":
			c.Likes = r.Count
		case "dislike":
			c.Dislikes = r.Count
		}
		out[r.ItemID] = c
	}
	return out, nil
}

// UserVotes returns the caller's active vote type per item, for hydrating
// list views in one round trip.
func UserVotes(ctx context.Context, kind Kind, itemIDs []string, userID string) (map[string]string, error) {
	out := make(map[string]string)
	if userID == "" || len(itemIDs) == 0 {
		return out, nil
	}

	type row struct {
		ItemID   string
		VoteType string
	}
	var rows []row
	err := db.DB.WithContext(ctx).Table(kind.table()).
		Select(kind.itemColumn()+" as item_id, vote_type").
		Where(kind.itemColumn()+" IN ? AND user_id = ?", itemIDs, userID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		out[r.ItemID] = r.VoteType
	}
	return out, nil
}
