package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/JEerdekens/bookclub/internal/api/models"
	"github.com/JEerdekens/bookclub/internal/api/repository"
)

type BookService interface {
	Create(ctx context.Context, title, author string) (*models.Book, error)
	// Get fetches a book and lazily backfills the placeholder cover on
	// the first read of a coverless record.
	Get(ctx context.Context, id int64) (*models.Book, error)
	List(ctx context.Context) ([]models.Book, error)
}

type bookService struct {
	repo           repository.BookRepository
	placeholderURL string
	logger         *slog.Logger
}

func NewBookService(repo repository.BookRepository, placeholderURL string, logger *slog.Logger) BookService {
	return &bookService{
		repo:           repo,
		placeholderURL: placeholderURL,
		logger:         logger,
	}
}

func (s *bookService) Create(ctx context.Context, title, author string) (*models.Book, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	book := &models.Book{Title: title}
	if author = strings.TrimSpace(author); author != "" {
		book.Author = &author
	}

	if err := s.repo.Create(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *bookService) Get(ctx context.Context, id int64) (*models.Book, error) {
	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if book.ImageURL == nil || *book.ImageURL == "" {
		// the stored record gets the placeholder too, so a book is
		// never displayed without a cover more than once
		if err := s.repo.SetImageURL(ctx, id, s.placeholderURL); err != nil {
			s.logger.Warn("cover backfill failed", "book_id", id, "error", err)
		}
		placeholder := s.placeholderURL
		book.ImageURL = &placeholder
	}

	return book, nil
}

func (s *bookService) List(ctx context.Context) ([]models.Book, error) {
	return s.repo.List(ctx)
}
