package database

import (
	"fmt"

	"github.com/ashwinsr/placement-portal/config"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewDatabase opens the postgres connection. TranslateError is enabled so
// unique-constraint violations surface as gorm.ErrDuplicatedKey, which the
// attempt state machine relies on to detect duplicate submissions.
func NewDatabase(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.User,
		cfg.Database.Password, cfg.Database.Name, cfg.Database.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Error().Err(err).Str("host", cfg.Database.Host).Msg("Failed to connect to database")
		return nil, fmt.Errorf("opening database connection: %w", err)
	}

	log.Info().Str("host", cfg.Database.Host).Str("database", cfg.Database.Name).Msg("Database connection established")
	return db, nil
}
