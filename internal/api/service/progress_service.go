package service

import (
	"context"
	"errors"
	"log/slog"
	"math"

	"github.com/JEerdekens/bookclub/internal/api/models"
	"github.com/JEerdekens/bookclub/internal/api/repository"
	"github.com/JEerdekens/bookclub/internal/cache"

	"gorm.io/gorm"
)

// progressStore is the mirror surface the service reads and writes.
// *cache.ProgressCache satisfies it; tests swap in an in-memory store.
type progressStore interface {
	Get(ctx context.Context, userID string, bookID int64) (*cache.CachedProgress, error)
	Set(ctx context.Context, userID string, bookID int64, percent float64) error
	Invalidate(ctx context.Context, userID string, bookID int64) error
}

type ProgressService interface {
	// Upsert writes the caller's percent for a book, clamped to [0, 100].
	Upsert(ctx context.Context, userID string, bookID int64, percent float64) (float64, error)
	// UpsertFromPages converts a pages-read / total-pages pair to a
	// rounded percent and upserts it.
	UpsertFromPages(ctx context.Context, userID string, bookID int64, pagesRead, totalPages int) (float64, error)
	// Get returns nil with no error when the pair has no row yet.
	Get(ctx context.Context, userID string, bookID int64) (*models.Progress, error)
	GetByUser(ctx context.Context, userID string) ([]models.Progress, error)
}

type progressService struct {
	repo        repository.ProgressRepository
	bookRepo    repository.BookRepository
	cache       progressStore
	invalidator *StatsInvalidator
	logger      *slog.Logger
}

func NewProgressService(repo repository.ProgressRepository, bookRepo repository.BookRepository, progressCache progressStore, invalidator *StatsInvalidator, logger *slog.Logger) ProgressService {
	return &progressService{
		repo:        repo,
		bookRepo:    bookRepo,
		cache:       progressCache,
		invalidator: invalidator,
		logger:      logger,
	}
}

func (s *progressService) Upsert(ctx context.Context, userID string, bookID int64, percent float64) (float64, error) {
	if _, err := s.bookRepo.GetByID(ctx, bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrBookNotFound
		}
		return 0, err
	}

	clamped := math.Min(100, math.Max(0, percent))

	progress := &models.Progress{
		UserID:  userID,
		BookID:  bookID,
		Percent: clamped,
	}
	if err := s.repo.Upsert(ctx, progress); err != nil {
		return 0, err
	}

	// the mirror is best-effort, but a failed refresh must not leave the
	// old percent behind
	if err := s.cache.Set(ctx, userID, bookID, clamped); err != nil {
		s.logger.Warn("progress cache write failed", "user_id", userID, "book_id", bookID, "error", err)
		if err := s.cache.Invalidate(ctx, userID, bookID); err != nil {
			s.logger.Warn("progress cache invalidation failed", "user_id", userID, "book_id", bookID, "error", err)
		}
	}

	s.invalidator.BookChanged(ctx, userID, bookID)

	return clamped, nil
}

func (s *progressService) UpsertFromPages(ctx context.Context, userID string, bookID int64, pagesRead, totalPages int) (float64, error) {
	if pagesRead < 0 || totalPages <= 0 {
		return 0, ErrInvalidPages
	}
	percent := math.Round(float64(pagesRead) / float64(totalPages) * 100)
	return s.Upsert(ctx, userID, bookID, percent)
}

func (s *progressService) Get(ctx context.Context, userID string, bookID int64) (*models.Progress, error) {
	mirrored, err := s.cache.Get(ctx, userID, bookID)
	if err != nil {
		s.logger.Warn("progress cache read failed", "user_id", userID, "book_id", bookID, "error", err)
	} else if mirrored != nil {
		return &models.Progress{
			UserID:    userID,
			BookID:    bookID,
			Percent:   mirrored.Percent,
			UpdatedAt: mirrored.UpdatedAt,
		}, nil
	}

	progress, err := s.repo.Get(ctx, userID, bookID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	// backfill so the next poll is served from the mirror
	if err := s.cache.Set(ctx, userID, bookID, progress.Percent); err != nil {
		s.logger.Warn("progress cache write failed", "user_id", userID, "book_id", bookID, "error", err)
	}

	return progress, nil
}

func (s *progressService) GetByUser(ctx context.Context, userID string) ([]models.Progress, error) {
	return s.repo.ListByUser(ctx, userID)
}
