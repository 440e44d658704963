package suggestions

import (
	"log"
	"time"

	"github.com/CivicAgenda/CA-Backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "feedback"); err != nil {
		log.Fatal("Failed to create feedback schema: ", err)
	}

	if err := db.DB.AutoMigrate(&Suggestion{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}

	limiter.StartCleanup(30 * time.Minute)
}
