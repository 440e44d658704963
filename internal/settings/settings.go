package settings

import (
	"log"
	"time"

	"github.com/CivicAgenda/CA-Backend/internal/db"
	gocache "github.com/patrickmn/go-cache"
)

type Setting struct {
	Name  string `gorm:"primaryKey" json:"name"`
	Value string `json:"value"`
}

func (Setting) TableName() string { return "app_config.settings" }

// AutoApproveSuggestions controls whether new suggestions skip moderation.
const AutoApproveSuggestions = "auto_approve_suggestions"

var defaults = map[string]string{
	AutoApproveSuggestions: "false",
}

// Settings change rarely; a short TTL keeps reads off the database without
// making admin updates feel stale.
var store = gocache.New(30*time.Second, 5*time.Minute)

func Init() {
	if err := db.EnsureSchema(db.DB, "app_config"); err != nil {
		log.Fatal("Failed to ensure schema app_config: ", err)
	}

	if err := db.DB.AutoMigrate(&Setting{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}

	for name, value := range defaults {
		var existing Setting
		if err := db.DB.First(&existing, "name = ?", name).Error; err != nil {
			db.DB.Create(&Setting{Name: name, Value: value})
		}
	}
}

// Get returns the value for name, reading through the cache. Missing rows
// fall back to the registered default.
func Get(name string) string {
	if v, ok := store.Get(name); ok {
		return v.(string)
	}

	var s Setting
	if err := db.DB.First(&s, "name = ?", name).Error; err != nil {
		return defaults[name]
	}
	store.Set(name, s.Value, gocache.DefaultExpiration)
	return s.Value
}

func Bool(name string) bool {
	switch Get(name) {
	case "true", "on", "1", "yes":
		return true
	}
	return false
}

// Set writes the value and refreshes the cache entry immediately.
func Set(name, value string) error {
	s := Setting{Name: name, Value: value}
	if err := db.DB.Save(&s).Error; err != nil {
		return err
	}
	store.Set(name, value, gocache.DefaultExpiration)
	return nil
}
