package service

import (
	"context"
	"errors"
	"strings"

	"github.com/JEerdekens/bookclub/internal/api/models"
	"github.com/JEerdekens/bookclub/internal/api/repository"

	"gorm.io/gorm"
)

type CommentService interface {
	Create(ctx context.Context, userID string, bookID int64, text string, spoiler bool) (*models.Comment, error)
	Update(ctx context.Context, commentID int64, userID, text string, spoiler bool) (*models.Comment, error)
	Delete(ctx context.Context, commentID int64, userID string) error
	GetByBook(ctx context.Context, bookID int64, spoiler *bool, page, pageSize int) ([]models.Comment, int64, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	bookRepo    repository.BookRepository
}

func NewCommentService(commentRepo repository.CommentRepository, bookRepo repository.BookRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		bookRepo:    bookRepo,
	}
}

func (s *commentService) Create(ctx context.Context, userID string, bookID int64, text string, spoiler bool) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyComment
	}

	if _, err := s.bookRepo.GetByID(ctx, bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	comment := &models.Comment{
		UserID:  userID,
		BookID:  bookID,
		Text:    text,
		Spoiler: spoiler,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Update edits a comment in place. Only the author may edit.
func (s *commentService) Update(ctx context.Context, commentID int64, userID, text string, spoiler bool) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyComment
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID {
		return nil, ErrNotAuthor
	}

	comment.Text = text
	comment.Spoiler = spoiler
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, commentID int64, userID string) error {
	return s.commentRepo.Delete(ctx, commentID, userID)
}

func (s *commentService) GetByBook(ctx context.Context, bookID int64, spoiler *bool, page, pageSize int) ([]models.Comment, int64, error) {
	if _, err := s.bookRepo.GetByID(ctx, bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrBookNotFound
		}
		return nil, 0, err
	}
	return s.commentRepo.GetByBook(ctx, bookID, spoiler, page, pageSize)
}
