package agendas

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Agenda is one reform proposal in the public catalog. Canonical identity is
// the uuid; SequenceID backs the `manifesto-<n>` aliases the frontend uses.
type Agenda struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SequenceID   int            `gorm:"uniqueIndex;not null" json:"sequence_id"`
	Title        string         `gorm:"not null" json:"title"`
	Description  string         `json:"description"`
	ProblemShort string         `json:"problem_short"`
	ProblemLong  string         `json:"problem_long"`
	Category     string         `gorm:"index" json:"category"`
	Priority     string         `gorm:"default:'Medium'" json:"priority"` // High, Medium, Low
	Timeline     string         `json:"timeline"`                         // free text, e.g. "6 months"
	KeyPoints    pq.StringArray `gorm:"type:text[]" json:"key_points"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func (Agenda) TableName() string {
	return "catalog.agendas"
}
