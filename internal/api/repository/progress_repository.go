package repository

import (
	"context"
	"time"

	"github.com/JEerdekens/bookclub/internal/api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository interface {
	Upsert(ctx context.Context, progress *models.Progress) error
	Get(ctx context.Context, userID string, bookID int64) (*models.Progress, error)
	ListByUser(ctx context.Context, userID string) ([]models.Progress, error)
	// ListForBookByUsers returns progress rows for one book restricted
	// to the given user set, in a single query.
	ListForBookByUsers(ctx context.Context, bookID int64, userIDs []string) ([]models.Progress, error)
	// ListByUsers returns all progress rows of the given users.
	ListByUsers(ctx context.Context, userIDs []string) ([]models.Progress, error)
	Delete(ctx context.Context, userID string, bookID int64) error
}

type progressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

// Upsert writes the row keyed by (user_id, book_id). The composite
// primary key turns this into a conditional put, so two concurrent
// writers can never produce a duplicate pair.
func (r *progressRepository) Upsert(ctx context.Context, progress *models.Progress) error {
	progress.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "book_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"percent", "updated_at"}),
	}).Create(progress).Error
}

func (r *progressRepository) Get(ctx context.Context, userID string, bookID int64) (*models.Progress, error) {
	var progress models.Progress
	if err := r.db.WithContext(ctx).Where("user_id = ? AND book_id = ?", userID, bookID).First(&progress).Error; err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *progressRepository) ListByUser(ctx context.Context, userID string) ([]models.Progress, error) {
	var list []models.Progress
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *progressRepository) ListForBookByUsers(ctx context.Context, bookID int64, userIDs []string) ([]models.Progress, error) {
	if len(userIDs) == 0 {
		return []models.Progress{}, nil
	}
	var list []models.Progress
	if err := r.db.WithContext(ctx).
		Where("book_id = ? AND user_id IN ?", bookID, userIDs).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *progressRepository) ListByUsers(ctx context.Context, userIDs []string) ([]models.Progress, error) {
	if len(userIDs) == 0 {
		return []models.Progress{}, nil
	}
	var list []models.Progress
	if err := r.db.WithContext(ctx).Where("user_id IN ?", userIDs).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *progressRepository) Delete(ctx context.Context, userID string, bookID int64) error {
	return r.db.WithContext(ctx).Where("user_id = ? AND book_id = ?", userID, bookID).
		Delete(&models.Progress{}).Error
}
