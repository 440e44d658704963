package votes

import "time"

type AgendaVote struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	AgendaID  string    `gorm:"type:uuid;not null;uniqueIndex:idx_agenda_votes_item_user" json:"agenda_id"`
	UserID    string    `gorm:"not null;uniqueIndex:idx_agenda_votes_item_user" json:"user_id"`
	VoteType  string    `gorm:"not null" json:"vote_type"` // like, dislike
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SuggestionVote struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	SuggestionID string    `gorm:"type:uuid;not null;uniqueIndex:idx_suggestion_votes_item_user" json:"suggestion_id"`
	UserID       string    `gorm:"not null;uniqueIndex:idx_suggestion_votes_item_user" json:"user_id"`
	VoteType     string    `gorm:"not null" json:"vote_type"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (AgendaVote) TableName() string     { return "votes.agenda_votes" }
func (SuggestionVote) TableName() string { return "votes.suggestion_votes" }

// Kind selects which vote table an operation targets.
type Kind string

const (
	KindAgenda     Kind = "agenda"
	KindSuggestion Kind = "suggestion"
)

func (k Kind) table() string {
	if k == KindSuggestion {
		return "votes.suggestion_votes"
	}
	return "votes.agenda_votes"
}

func (k Kind) itemColumn() string {
	if k == KindSuggestion {
		return "suggestion_id"
	}
	return "agenda_id"
}
