package testimonials

import (
	"time"

	"github.com/google/uuid"
)

// Testimonial is presentational content authored by moderators; only active
// rows reach the public feed.
type Testimonial struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Profession   string    `json:"profession"`
	Testimonial  string    `gorm:"not null" json:"testimonial"`
	ImageURL     string    `json:"image_url,omitempty"`
	LinkedinURL  string    `json:"linkedin_url,omitempty"`
	DisplayOrder int       `gorm:"default:0" json:"display_order"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Testimonial) TableName() string {
	return "catalog.testimonials"
}
