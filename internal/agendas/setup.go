package agendas

import (
	"log"

	"github.com/CivicAgenda/CA-Backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "catalog"); err != nil {
		log.Fatal("Failed to create catalog schema: ", err)
	}

	if err := db.DB.AutoMigrate(&Agenda{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}
}
