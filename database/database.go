package database

import (
	"log"
	"os"

	"eventpay/internal/domain/forms"
	"eventpay/internal/domain/ledger"
	"eventpay/internal/domain/mentors"
	"eventpay/internal/domain/registrations"
	"eventpay/internal/domain/webhookevents"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("DB_URL not set")
	}

	// TranslateError turns driver unique-violation errors into
	// gorm.ErrDuplicatedKey, which the fulfillment and approval flows
	// rely on as their idempotency backstop.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	DB = db

	// Required for UUID generation
	if err := DB.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		log.Fatal("Failed to enable pgcrypto extension:", err)
	}

	if err := DB.AutoMigrate(
		&mentors.Mentor{},
		&forms.EventForm{},
		&registrations.Registration{},
		&ledger.Entry{},
		&webhookevents.Event{},
	); err != nil {
		log.Fatal("AutoMigrate error:", err)
	}
}
