package service

import (
	"context"
	"errors"
	"testing"

	"github.com/JEerdekens/bookclub/internal/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func TestCommentCreate_TrimsText(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	bookRepo := new(MockBookRepository)
	svc := NewCommentService(commentRepo, bookRepo)

	bookRepo.On("GetByID", mock.Anything, int64(1)).Return(&models.Book{ID: 1}, nil)
	commentRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Comment) bool {
		return c.Text == "loved the ending" && c.UserID == "u1" && c.BookID == 1
	})).Return(nil)

	comment, err := svc.Create(context.Background(), "u1", 1, "  loved the ending  ", false)

	assert.NoError(t, err)
	assert.Equal(t, "loved the ending", comment.Text)
	commentRepo.AssertExpectations(t)
}

func TestCommentCreate_RejectsEmptyText(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	bookRepo := new(MockBookRepository)
	svc := NewCommentService(commentRepo, bookRepo)

	_, err := svc.Create(context.Background(), "u1", 1, "   ", false)

	assert.Equal(t, ErrEmptyComment, err)
	commentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCommentCreate_BookMissing(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	bookRepo := new(MockBookRepository)
	svc := NewCommentService(commentRepo, bookRepo)

	bookRepo.On("GetByID", mock.Anything, int64(42)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Create(context.Background(), "u1", 42, "great book", false)

	assert.Equal(t, ErrBookNotFound, err)
}

func TestCommentUpdate_OnlyAuthorMayEdit(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	bookRepo := new(MockBookRepository)
	svc := NewCommentService(commentRepo, bookRepo)

	commentRepo.On("GetByID", mock.Anything, int64(5)).Return(&models.Comment{
		ID:     5,
		UserID: "author",
		Text:   "original",
	}, nil)

	_, err := svc.Update(context.Background(), 5, "someone-else", "edited", false)

	assert.Equal(t, ErrNotAuthor, err)
	commentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCommentUpdate_AuthorEditsInPlace(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	bookRepo := new(MockBookRepository)
	svc := NewCommentService(commentRepo, bookRepo)

	commentRepo.On("GetByID", mock.Anything, int64(5)).Return(&models.Comment{
		ID:      5,
		UserID:  "author",
		Text:    "original",
		Spoiler: false,
	}, nil)
	commentRepo.On("Update", mock.Anything, mock.MatchedBy(func(c *models.Comment) bool {
		return c.ID == 5 && c.Text == "edited" && c.Spoiler
	})).Return(nil)

	comment, err := svc.Update(context.Background(), 5, "author", " edited ", true)

	assert.NoError(t, err)
	assert.Equal(t, "edited", comment.Text)
	assert.True(t, comment.Spoiler)
	commentRepo.AssertExpectations(t)
}

func TestCommentUpdate_RejectsEmptyText(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	bookRepo := new(MockBookRepository)
	svc := NewCommentService(commentRepo, bookRepo)

	_, err := svc.Update(context.Background(), 5, "author", "   ", false)

	assert.Equal(t, ErrEmptyComment, err)
	commentRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestCommentDelete_ScopedToAuthor(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	bookRepo := new(MockBookRepository)
	svc := NewCommentService(commentRepo, bookRepo)

	// the repository matches on both id and user_id, so a non-author
	// delete affects zero rows and surfaces as an error
	commentRepo.On("Delete", mock.Anything, int64(5), "someone-else").
		Return(errors.New("comment not found or you don't have permission to delete it"))

	err := svc.Delete(context.Background(), 5, "someone-else")

	assert.Error(t, err)
}

func TestCommentDelete_ByAuthor(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	bookRepo := new(MockBookRepository)
	svc := NewCommentService(commentRepo, bookRepo)

	commentRepo.On("Delete", mock.Anything, int64(5), "author").Return(nil)

	err := svc.Delete(context.Background(), 5, "author")

	assert.NoError(t, err)
	commentRepo.AssertExpectations(t)
}
