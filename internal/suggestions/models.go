package suggestions

import "time"

// Suggestion is a visitor-submitted comment on an agenda item, held for
// moderation unless auto-approval is switched on.
type Suggestion struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	AgendaID   string    `gorm:"type:uuid;not null;index" json:"agenda_id"`
	Content    string    `gorm:"not null" json:"content"`
	AuthorName string    `gorm:"not null" json:"author_name"`
	UserID     string    `gorm:"not null;index" json:"user_id"`
	Status     string    `gorm:"default:'pending';index" json:"status"` // pending, approved, rejected
	CreatedAt  time.Time `json:"created_at"`
}

func (Suggestion) TableName() string {
	return "feedback.suggestions"
}
