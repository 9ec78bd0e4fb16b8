package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/JEerdekens/bookclub/internal/api/models"
)

// OpenGorm opens the GORM connection used by the repository layer and
// runs auto-migration for all models.
func OpenGorm(databaseURL string, logger *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Club{},
		&models.Book{},
		&models.Progress{},
		&models.Rating{},
		&models.WantToRead{},
		&models.Comment{},
		&models.ClubBook{},
		&models.ClubLocation{},
		&models.RefreshToken{},
	); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("connected to the database and applied migrations")
	return db, nil
}

// ConnectPool opens a pgx pool used for liveness probes and anything
// that needs raw SQL outside of GORM.
func ConnectPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return pool, nil
}
