package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/JEerdekens/bookclub/internal/api/models"

	"gorm.io/gorm"
)

type ClubRepository interface {
	Create(ctx context.Context, club *models.Club) error
	GetByID(ctx context.Context, id int64) (*models.Club, error)
	SetCurrentBook(ctx context.Context, clubID, bookID int64) error
	SetNextMeeting(ctx context.Context, clubID int64, date time.Time, timeOfDay, location string, bookID int64) error
}

type clubRepository struct {
	db *gorm.DB
}

func NewClubRepository(db *gorm.DB) ClubRepository {
	return &clubRepository{db: db}
}

func (r *clubRepository) Create(ctx context.Context, club *models.Club) error {
	if err := r.db.WithContext(ctx).Create(club).Error; err != nil {
		return fmt.Errorf("create club: %w", err)
	}
	return nil
}

func (r *clubRepository) GetByID(ctx context.Context, id int64) (*models.Club, error) {
	var club models.Club
	if err := r.db.WithContext(ctx).Preload("CurrentBook").First(&club, id).Error; err != nil {
		return nil, err
	}
	return &club, nil
}

func (r *clubRepository) SetCurrentBook(ctx context.Context, clubID, bookID int64) error {
	return r.db.WithContext(ctx).Model(&models.Club{}).Where("id = ?", clubID).
		Update("current_book_id", bookID).Error
}

func (r *clubRepository) SetNextMeeting(ctx context.Context, clubID int64, date time.Time, timeOfDay, location string, bookID int64) error {
	return r.db.WithContext(ctx).Model(&models.Club{}).Where("id = ?", clubID).
		Updates(map[string]any{
			"next_meeting_date":     date,
			"next_meeting_time":     timeOfDay,
			"next_meeting_location": location,
			"next_meeting_book_id":  bookID,
		}).Error
}
