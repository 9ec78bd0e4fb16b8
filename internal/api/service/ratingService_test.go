package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/JEerdekens/bookclub/internal/api/models"
	"github.com/JEerdekens/bookclub/internal/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func TestValidRating(t *testing.T) {
	tests := []struct {
		value    float64
		expected bool
	}{
		{0.5, true},
		{1, true},
		{3.5, true},
		{5, true},
		{0, false},
		{0.25, false},
		{3.7, false},
		{5.5, false},
		{-1, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, validRating(tt.value), "value %v", tt.value)
	}
}

func TestRatingUpsert_RejectsOffGridValue(t *testing.T) {
	ratingRepo := new(MockRatingRepository)
	bookRepo := new(MockBookRepository)
	svc := NewRatingService(ratingRepo, bookRepo, nil)

	err := svc.Upsert(context.Background(), "u1", 1, 3.7)

	assert.Equal(t, ErrInvalidRating, err)
	bookRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	ratingRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestRatingUpsert_Success(t *testing.T) {
	ratingRepo := new(MockRatingRepository)
	bookRepo := new(MockBookRepository)
	svc := NewRatingService(ratingRepo, bookRepo, nil)

	bookRepo.On("GetByID", mock.Anything, int64(1)).Return(&models.Book{ID: 1}, nil)
	ratingRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(r *models.Rating) bool {
		return r.UserID == "u1" && r.BookID == 1 && r.Value == 4.5
	})).Return(nil)

	err := svc.Upsert(context.Background(), "u1", 1, 4.5)

	assert.NoError(t, err)
	ratingRepo.AssertExpectations(t)
}

func TestRatingUpsert_BookMissing(t *testing.T) {
	ratingRepo := new(MockRatingRepository)
	bookRepo := new(MockBookRepository)
	svc := NewRatingService(ratingRepo, bookRepo, nil)

	bookRepo.On("GetByID", mock.Anything, int64(42)).Return(nil, gorm.ErrRecordNotFound)

	err := svc.Upsert(context.Background(), "u1", 42, 3)

	assert.Equal(t, ErrBookNotFound, err)
}

func TestRatingUpsert_DropsClubSnapshot(t *testing.T) {
	ratingRepo := new(MockRatingRepository)
	bookRepo := new(MockBookRepository)
	userRepo := new(MockUserRepository)
	snapshots := newMemorySnapshots()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewRatingService(ratingRepo, bookRepo, NewStatsInvalidator(userRepo, snapshots, logger))

	clubID := int64(3)
	assert.NoError(t, snapshots.Set(context.Background(), clubID, 1, cache.CachedAverages{RatingCount: 2}))
	userRepo.On("FindByID", mock.Anything, "u1").Return(&models.User{ID: "u1", ClubID: &clubID}, nil)
	bookRepo.On("GetByID", mock.Anything, int64(1)).Return(&models.Book{ID: 1}, nil)
	ratingRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*models.Rating")).Return(nil)

	err := svc.Upsert(context.Background(), "u1", 1, 4)
	assert.NoError(t, err)

	stale, err := snapshots.Get(context.Background(), clubID, 1)
	assert.NoError(t, err)
	assert.Nil(t, stale)
}

func TestRatingUpsert_NoClubLeavesSnapshotsAlone(t *testing.T) {
	ratingRepo := new(MockRatingRepository)
	bookRepo := new(MockBookRepository)
	userRepo := new(MockUserRepository)
	snapshots := newMemorySnapshots()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewRatingService(ratingRepo, bookRepo, NewStatsInvalidator(userRepo, snapshots, logger))

	assert.NoError(t, snapshots.Set(context.Background(), 3, 1, cache.CachedAverages{RatingCount: 2}))
	userRepo.On("FindByID", mock.Anything, "u1").Return(&models.User{ID: "u1"}, nil)
	bookRepo.On("GetByID", mock.Anything, int64(1)).Return(&models.Book{ID: 1}, nil)
	ratingRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*models.Rating")).Return(nil)

	err := svc.Upsert(context.Background(), "u1", 1, 4)
	assert.NoError(t, err)

	kept, err := snapshots.Get(context.Background(), 3, 1)
	assert.NoError(t, err)
	assert.NotNil(t, kept)
}

func TestRatingGet_NoRecordMeansNil(t *testing.T) {
	ratingRepo := new(MockRatingRepository)
	bookRepo := new(MockBookRepository)
	svc := NewRatingService(ratingRepo, bookRepo, nil)

	ratingRepo.On("GetByUserAndBook", mock.Anything, "u1", int64(1)).Return(nil, gorm.ErrRecordNotFound)

	rating, err := svc.Get(context.Background(), "u1", 1)

	assert.NoError(t, err)
	assert.Nil(t, rating)
}
