package repository

import (
	"context"
	"errors"

	"github.com/JEerdekens/bookclub/internal/api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingRepository interface {
	Upsert(ctx context.Context, rating *models.Rating) error
	Delete(ctx context.Context, userID string, bookID int64) error
	GetByUserAndBook(ctx context.Context, userID string, bookID int64) (*models.Rating, error)
	GetByBook(ctx context.Context, bookID int64, page, pageSize int) ([]models.Rating, int64, error)
	ListForBookByUsers(ctx context.Context, bookID int64, userIDs []string) ([]models.Rating, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Upsert writes the rating keyed by (user_id, book_id) as a single
// conditional put.
func (r *ratingRepository) Upsert(ctx context.Context, rating *models.Rating) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "book_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(rating).Error
}

// Delete a rating by user and book
func (r *ratingRepository) Delete(ctx context.Context, userID string, bookID int64) error {
	result := r.db.WithContext(ctx).Where("user_id = ? AND book_id = ?", userID, bookID).Delete(&models.Rating{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("rating not found")
	}
	return nil
}

// GetByUserAndBook retrieves a user's rating for a specific book
func (r *ratingRepository) GetByUserAndBook(ctx context.Context, userID string, bookID int64) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.WithContext(ctx).Where("user_id = ? AND book_id = ?", userID, bookID).
		Preload("User").
		First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// GetByBook retrieves all ratings for a specific book with pagination
func (r *ratingRepository) GetByBook(ctx context.Context, bookID int64, page, pageSize int) ([]models.Rating, int64, error) {
	var ratings []models.Rating
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Rating{}).Where("book_id = ?", bookID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := r.db.WithContext(ctx).Where("book_id = ?", bookID).
		Preload("User").
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&ratings).Error

	if err != nil {
		return nil, 0, err
	}

	return ratings, total, nil
}

func (r *ratingRepository) ListForBookByUsers(ctx context.Context, bookID int64, userIDs []string) ([]models.Rating, error) {
	if len(userIDs) == 0 {
		return []models.Rating{}, nil
	}
	var ratings []models.Rating
	if err := r.db.WithContext(ctx).
		Where("book_id = ? AND user_id IN ?", bookID, userIDs).
		Find(&ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}
