package service

import (
	"context"
	"errors"

	"github.com/JEerdekens/bookclub/internal/api/models"
	"github.com/JEerdekens/bookclub/internal/api/repository"

	"gorm.io/gorm"
)

type WantToReadService interface {
	// Toggle flips the flag: insert with timestamp if absent, delete if
	// present. Returns the resulting wanted state. Two toggles return
	// the system to its prior state.
	Toggle(ctx context.Context, userID string, bookID int64) (bool, error)
	IsWanted(ctx context.Context, userID string, bookID int64) (bool, error)
	ListForUser(ctx context.Context, userID string) ([]models.WantToRead, error)
}

type wantToReadService struct {
	wantRepo repository.WantToReadRepository
	bookRepo repository.BookRepository
}

func NewWantToReadService(wantRepo repository.WantToReadRepository, bookRepo repository.BookRepository) WantToReadService {
	return &wantToReadService{
		wantRepo: wantRepo,
		bookRepo: bookRepo,
	}
}

func (s *wantToReadService) Toggle(ctx context.Context, userID string, bookID int64) (bool, error) {
	if _, err := s.bookRepo.GetByID(ctx, bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrBookNotFound
		}
		return false, err
	}

	removed, err := s.wantRepo.Remove(ctx, userID, bookID)
	if err != nil {
		return false, err
	}
	if removed {
		return false, nil
	}

	if err := s.wantRepo.Add(ctx, userID, bookID); err != nil {
		return false, err
	}
	return true, nil
}

func (s *wantToReadService) IsWanted(ctx context.Context, userID string, bookID int64) (bool, error) {
	return s.wantRepo.Exists(ctx, userID, bookID)
}

func (s *wantToReadService) ListForUser(ctx context.Context, userID string) ([]models.WantToRead, error) {
	return s.wantRepo.ListByUser(ctx, userID)
}
