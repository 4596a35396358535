package database

import (
	"log"

	"services-portal/config"
	"services-portal/internal/domain/billing"
	"services-portal/internal/domain/catalog"
	"services-portal/internal/domain/content"
	"services-portal/internal/domain/notifications"
	"services-portal/internal/domain/projects"
	"services-portal/internal/domain/tickets"
	"services-portal/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	var (
		db  *gorm.DB
		err error
	)

	if config.DEMO_MODE {
		// In-memory store for demos and local development; wiped on restart.
		db, err = gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	} else {
		db, err = gorm.Open(postgres.Open(config.DB_URL), &gorm.Config{})
	}
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	DB = db

	if err := Migrate(DB); err != nil {
		log.Fatal("AutoMigrate error: ", err)
	}

	if config.DEMO_MODE {
		if err := SeedDemoData(DB); err != nil {
			log.Fatal("Demo seed error: ", err)
		}
	}
}

// Migrate creates or updates the schema for every domain model. Also used
// by handler tests against an in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&catalog.Category{},
		&catalog.Tier{},
		&projects.Project{},
		&billing.Payment{},
		&tickets.Ticket{},
		&content.Service{},
		&content.BlogPost{},
		&content.ContactMessage{},
		&notifications.Notification{},
	)
}
