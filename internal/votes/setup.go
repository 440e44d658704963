package votes

import (
	"log"

	"github.com/CivicAgenda/CA-Backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "votes"); err != nil {
		log.Fatal("Failed to create votes schema: ", err)
	}

	if err := db.DB.AutoMigrate(&AgendaVote{}, &SuggestionVote{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}

	InitCache()
}
