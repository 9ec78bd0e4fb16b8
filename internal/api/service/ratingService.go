package service

import (
	"context"
	"errors"
	"math"

	"github.com/JEerdekens/bookclub/internal/api/models"
	"github.com/JEerdekens/bookclub/internal/api/repository"

	"gorm.io/gorm"
)

type RatingService interface {
	// Upsert writes the caller's rating for a book. Values outside
	// [0.5, 5] or off the half-point grid are rejected.
	Upsert(ctx context.Context, userID string, bookID int64, value float64) error
	Delete(ctx context.Context, userID string, bookID int64) error
	// Get returns nil with no error when the user has not rated yet.
	Get(ctx context.Context, userID string, bookID int64) (*models.Rating, error)
	GetByBook(ctx context.Context, bookID int64, page, pageSize int) ([]models.Rating, int64, error)
}

type ratingService struct {
	ratingRepo  repository.RatingRepository
	bookRepo    repository.BookRepository
	invalidator *StatsInvalidator
}

func NewRatingService(ratingRepo repository.RatingRepository, bookRepo repository.BookRepository, invalidator *StatsInvalidator) RatingService {
	return &ratingService{
		ratingRepo:  ratingRepo,
		bookRepo:    bookRepo,
		invalidator: invalidator,
	}
}

func (s *ratingService) Upsert(ctx context.Context, userID string, bookID int64, value float64) error {
	if !validRating(value) {
		return ErrInvalidRating
	}

	if _, err := s.bookRepo.GetByID(ctx, bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookNotFound
		}
		return err
	}

	rating := &models.Rating{
		UserID: userID,
		BookID: bookID,
		Value:  value,
	}
	if err := s.ratingRepo.Upsert(ctx, rating); err != nil {
		return err
	}

	s.invalidator.BookChanged(ctx, userID, bookID)
	return nil
}

func (s *ratingService) Delete(ctx context.Context, userID string, bookID int64) error {
	if err := s.ratingRepo.Delete(ctx, userID, bookID); err != nil {
		return err
	}

	s.invalidator.BookChanged(ctx, userID, bookID)
	return nil
}

func (s *ratingService) Get(ctx context.Context, userID string, bookID int64) (*models.Rating, error) {
	rating, err := s.ratingRepo.GetByUserAndBook(ctx, userID, bookID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rating, nil
}

func (s *ratingService) GetByBook(ctx context.Context, bookID int64, page, pageSize int) ([]models.Rating, int64, error) {
	if _, err := s.bookRepo.GetByID(ctx, bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrBookNotFound
		}
		return nil, 0, err
	}
	return s.ratingRepo.GetByBook(ctx, bookID, page, pageSize)
}

// validRating accepts 0.5 through 5 in half-point steps.
func validRating(value float64) bool {
	if value < 0.5 || value > 5 {
		return false
	}
	doubled := value * 2
	return doubled == math.Trunc(doubled)
}
