package repository

import (
	"context"
	"fmt"

	"github.com/JEerdekens/bookclub/internal/api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WantToReadRepository interface {
	Add(ctx context.Context, userID string, bookID int64) error
	Remove(ctx context.Context, userID string, bookID int64) (bool, error)
	Exists(ctx context.Context, userID string, bookID int64) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]models.WantToRead, error)
	ListByUsers(ctx context.Context, userIDs []string) ([]models.WantToRead, error)
}

type wantToReadRepository struct {
	db *gorm.DB
}

func NewWantToReadRepository(db *gorm.DB) WantToReadRepository {
	return &wantToReadRepository{db: db}
}

// Add inserts the flag row. DoNothing on conflict keeps the call
// idempotent when two devices race on the same toggle.
func (r *wantToReadRepository) Add(ctx context.Context, userID string, bookID int64) error {
	entry := &models.WantToRead{
		UserID: userID,
		BookID: bookID,
	}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "book_id"}},
		DoNothing: true,
	}).Create(entry).Error; err != nil {
		return fmt.Errorf("add want-to-read: %w", err)
	}
	return nil
}

// Remove deletes the flag row and reports whether a row was removed.
func (r *wantToReadRepository) Remove(ctx context.Context, userID string, bookID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Delete(&models.WantToRead{})
	if result.Error != nil {
		return false, fmt.Errorf("remove want-to-read: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *wantToReadRepository) Exists(ctx context.Context, userID string, bookID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.WantToRead{}).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *wantToReadRepository) ListByUser(ctx context.Context, userID string) ([]models.WantToRead, error) {
	var entries []models.WantToRead
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("added_at DESC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list want-to-read: %w", err)
	}
	return entries, nil
}

func (r *wantToReadRepository) ListByUsers(ctx context.Context, userIDs []string) ([]models.WantToRead, error) {
	if len(userIDs) == 0 {
		return []models.WantToRead{}, nil
	}
	var entries []models.WantToRead
	if err := r.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list want-to-read for members: %w", err)
	}
	return entries, nil
}
