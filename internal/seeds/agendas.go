package seeds

import (
	"fmt"
	"log"
	"os"

	"github.com/CivicAgenda/CA-Backend/internal/agendas"
	"github.com/CivicAgenda/CA-Backend/internal/db"
	"github.com/goccy/go-yaml"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type agendaSeed struct {
	SequenceID   int      `yaml:"sequence_id"`
	Title        string   `yaml:"title"`
	Description  string   `yaml:"description"`
	ProblemShort string   `yaml:"problem_short"`
	ProblemLong  string   `yaml:"problem_long"`
	Category     string   `yaml:"category"`
	Priority     string   `yaml:"priority"`
	Timeline     string   `yaml:"timeline"`
	KeyPoints    []string `yaml:"key_points"`
}

func SeedAgendas() error {
	file, err := os.ReadFile("internal/seeds/data/agendas.yaml")
	if err != nil {
		return fmt.Errorf("could not read agendas.yaml: %w", err)
	}

	var rows []agendaSeed
	if err := yaml.Unmarshal(file, &rows); err != nil {
		return fmt.Errorf("failed to parse agendas.yaml: %w", err)
	}

	for _, row := range rows {
		var existing agendas.Agenda
		err := db.DB.First(&existing, "sequence_id = ?", row.SequenceID).Error

		if err == nil {
			log.Printf("⚠️ Agenda exists, skipping: %s", row.Title)
			continue
		} else if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("DB error on agenda %s: %w", row.Title, err)
		}

		agenda := agendas.Agenda{
			ID:           uuid.New(),
			SequenceID:   row.SequenceID,
			Title:        row.Title,
			Description:  row.Description,
			ProblemShort: row.ProblemShort,
			ProblemLong:  row.ProblemLong,
			Category:     row.Category,
			Priority:     row.Priority,
			Timeline:     row.Timeline,
			KeyPoints:    pq.StringArray(row.KeyPoints),
		}

		if err := db.DB.Create(&agenda).Error; err != nil {
			return fmt.Errorf("failed to create agenda %s: %w", row.Title, err)
		}
	}

	log.Printf("✅ Seeded %d agendas", len(rows))
	return nil
}
