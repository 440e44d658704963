package seeds

import (
	"fmt"
	"log"
	"os"

	"github.com/CivicAgenda/CA-Backend/internal/db"
	"github.com/CivicAgenda/CA-Backend/internal/testimonials"
	"github.com/goccy/go-yaml"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type testimonialSeed struct {
	Name         string `yaml:"name"`
	Profession   string `yaml:"profession"`
	Testimonial  string `yaml:"testimonial"`
	ImageURL     string `yaml:"image_url"`
	LinkedinURL  string `yaml:"linkedin_url"`
	DisplayOrder int    `yaml:"display_order"`
}

func SeedTestimonials() error {
	file, err := os.ReadFile("internal/seeds/data/testimonials.yaml")
	if err != nil {
		return fmt.Errorf("could not read testimonials.yaml: %w", err)
	}

	var rows []testimonialSeed
	if err := yaml.Unmarshal(file, &rows); err != nil {
		return fmt.Errorf("failed to parse testimonials.yaml: %w", err)
	}

	for _, row := range rows {
		var existing testimonials.Testimonial
		err := db.DB.First(&existing, "name = ?", row.Name).Error

		if err == nil {
			log.Printf("⚠️ Testimonial exists, skipping: %s", row.Name)
			continue
		} else if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("DB error on testimonial %s: %w", row.Name, err)
		}

		t := testimonials.Testimonial{
			ID:           uuid.New(),
			Name:         row.Name,
			Profession:   row.Profession,
			Testimonial:  row.Testimonial,
			ImageURL:     row.ImageURL,
			LinkedinURL:  row.LinkedinURL,
			DisplayOrder: row.DisplayOrder,
			IsActive:     true,
		}

		if err := db.DB.Create(&t).Error; err != nil {
			return fmt.Errorf("failed to create testimonial %s: %w", row.Name, err)
		}
	}

	log.Printf("✅ Seeded %d testimonials", len(rows))
	return nil
}
