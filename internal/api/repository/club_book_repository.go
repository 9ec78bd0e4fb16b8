package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/JEerdekens/bookclub/internal/api/models"

	"gorm.io/gorm"
)

type ClubBookRepository interface {
	Append(ctx context.Context, entry *models.ClubBook) error
	// ListFinishedBefore returns history rows for the club whose
	// finish date is non-null and strictly earlier than the cutoff.
	// Rows with no finish date are "not yet past" and excluded.
	ListFinishedBefore(ctx context.Context, clubID int64, cutoff time.Time) ([]models.ClubBook, error)
}

type clubBookRepository struct {
	db *gorm.DB
}

func NewClubBookRepository(db *gorm.DB) ClubBookRepository {
	return &clubBookRepository{db: db}
}

func (r *clubBookRepository) Append(ctx context.Context, entry *models.ClubBook) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("append club book: %w", err)
	}
	return nil
}

func (r *clubBookRepository) ListFinishedBefore(ctx context.Context, clubID int64, cutoff time.Time) ([]models.ClubBook, error) {
	var entries []models.ClubBook
	if err := r.db.WithContext(ctx).
		Where("club_id = ? AND finished_at IS NOT NULL AND finished_at < ?", clubID, cutoff).
		Order("finished_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
