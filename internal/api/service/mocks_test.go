package service

import (
	"context"
	"fmt"
	"time"

	"github.com/JEerdekens/bookclub/internal/api/models"
	"github.com/JEerdekens/bookclub/internal/cache"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByClub(ctx context.Context, clubID int64) ([]models.User, error) {
	args := m.Called(ctx, clubID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, id string, updates map[string]any) error {
	args := m.Called(ctx, id, updates)
	return args.Error(0)
}

// MockRefreshTokenRepository mocks the RefreshTokenRepository interface
type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(ctx context.Context, token *models.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) FindByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) Revoke(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) DeleteByUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockBookRepository mocks the BookRepository interface
type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) Create(ctx context.Context, book *models.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockBookRepository) GetByIDs(ctx context.Context, ids []int64) ([]models.Book, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Book), args.Error(1)
}

func (m *MockBookRepository) List(ctx context.Context) ([]models.Book, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Book), args.Error(1)
}

func (m *MockBookRepository) SetImageURL(ctx context.Context, id int64, url string) error {
	args := m.Called(ctx, id, url)
	return args.Error(0)
}

// MockProgressRepository mocks the ProgressRepository interface
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) Upsert(ctx context.Context, progress *models.Progress) error {
	args := m.Called(ctx, progress)
	return args.Error(0)
}

func (m *MockProgressRepository) Get(ctx context.Context, userID string, bookID int64) (*models.Progress, error) {
	args := m.Called(ctx, userID, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Progress), args.Error(1)
}

func (m *MockProgressRepository) ListByUser(ctx context.Context, userID string) ([]models.Progress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Progress), args.Error(1)
}

func (m *MockProgressRepository) ListForBookByUsers(ctx context.Context, bookID int64, userIDs []string) ([]models.Progress, error) {
	args := m.Called(ctx, bookID, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Progress), args.Error(1)
}

func (m *MockProgressRepository) ListByUsers(ctx context.Context, userIDs []string) ([]models.Progress, error) {
	args := m.Called(ctx, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Progress), args.Error(1)
}

func (m *MockProgressRepository) Delete(ctx context.Context, userID string, bookID int64) error {
	args := m.Called(ctx, userID, bookID)
	return args.Error(0)
}

// MockRatingRepository mocks the RatingRepository interface
type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) Upsert(ctx context.Context, rating *models.Rating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *MockRatingRepository) Delete(ctx context.Context, userID string, bookID int64) error {
	args := m.Called(ctx, userID, bookID)
	return args.Error(0)
}

func (m *MockRatingRepository) GetByUserAndBook(ctx context.Context, userID string, bookID int64) (*models.Rating, error) {
	args := m.Called(ctx, userID, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rating), args.Error(1)
}

func (m *MockRatingRepository) GetByBook(ctx context.Context, bookID int64, page, pageSize int) ([]models.Rating, int64, error) {
	args := m.Called(ctx, bookID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Rating), args.Get(1).(int64), args.Error(2)
}

func (m *MockRatingRepository) ListForBookByUsers(ctx context.Context, bookID int64, userIDs []string) ([]models.Rating, error) {
	args := m.Called(ctx, bookID, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Rating), args.Error(1)
}

// MockWantToReadRepository mocks the WantToReadRepository interface
type MockWantToReadRepository struct {
	mock.Mock
}

func (m *MockWantToReadRepository) Add(ctx context.Context, userID string, bookID int64) error {
	args := m.Called(ctx, userID, bookID)
	return args.Error(0)
}

func (m *MockWantToReadRepository) Remove(ctx context.Context, userID string, bookID int64) (bool, error) {
	args := m.Called(ctx, userID, bookID)
	return args.Bool(0), args.Error(1)
}

func (m *MockWantToReadRepository) Exists(ctx context.Context, userID string, bookID int64) (bool, error) {
	args := m.Called(ctx, userID, bookID)
	return args.Bool(0), args.Error(1)
}

func (m *MockWantToReadRepository) ListByUser(ctx context.Context, userID string) ([]models.WantToRead, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WantToRead), args.Error(1)
}

func (m *MockWantToReadRepository) ListByUsers(ctx context.Context, userIDs []string) ([]models.WantToRead, error) {
	args := m.Called(ctx, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WantToRead), args.Error(1)
}

// MockCommentRepository mocks the CommentRepository interface
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, commentID int64, userID string) error {
	args := m.Called(ctx, commentID, userID)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, commentID int64) (*models.Comment, error) {
	args := m.Called(ctx, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) GetByBook(ctx context.Context, bookID int64, spoiler *bool, page, pageSize int) ([]models.Comment, int64, error) {
	args := m.Called(ctx, bookID, spoiler, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Comment), args.Get(1).(int64), args.Error(2)
}

// MockClubRepository mocks the ClubRepository interface
type MockClubRepository struct {
	mock.Mock
}

func (m *MockClubRepository) Create(ctx context.Context, club *models.Club) error {
	args := m.Called(ctx, club)
	return args.Error(0)
}

func (m *MockClubRepository) GetByID(ctx context.Context, id int64) (*models.Club, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Club), args.Error(1)
}

func (m *MockClubRepository) SetCurrentBook(ctx context.Context, clubID, bookID int64) error {
	args := m.Called(ctx, clubID, bookID)
	return args.Error(0)
}

func (m *MockClubRepository) SetNextMeeting(ctx context.Context, clubID int64, date time.Time, timeOfDay, location string, bookID int64) error {
	args := m.Called(ctx, clubID, date, timeOfDay, location, bookID)
	return args.Error(0)
}

// MockLocationRepository mocks the LocationRepository interface
type MockLocationRepository struct {
	mock.Mock
}

func (m *MockLocationRepository) List(ctx context.Context) ([]models.ClubLocation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ClubLocation), args.Error(1)
}

func (m *MockLocationRepository) Create(ctx context.Context, location *models.ClubLocation) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

// MockClubBookRepository mocks the ClubBookRepository interface
type MockClubBookRepository struct {
	mock.Mock
}

func (m *MockClubBookRepository) Append(ctx context.Context, entry *models.ClubBook) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockClubBookRepository) ListFinishedBefore(ctx context.Context, clubID int64, cutoff time.Time) ([]models.ClubBook, error) {
	args := m.Called(ctx, clubID, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ClubBook), args.Error(1)
}

// memorySnapshots is an always-on in-memory stand-in for the aggregate
// snapshot cache.
type memorySnapshots struct {
	entries map[string]cache.CachedAverages
}

func newMemorySnapshots() *memorySnapshots {
	return &memorySnapshots{entries: make(map[string]cache.CachedAverages)}
}

func (m *memorySnapshots) Enabled() bool { return true }

func (m *memorySnapshots) Get(_ context.Context, clubID, bookID int64) (*cache.CachedAverages, error) {
	snapshot, ok := m.entries[fmt.Sprintf("%d:%d", clubID, bookID)]
	if !ok {
		return nil, nil
	}
	return &snapshot, nil
}

func (m *memorySnapshots) Set(_ context.Context, clubID, bookID int64, snapshot cache.CachedAverages) error {
	m.entries[fmt.Sprintf("%d:%d", clubID, bookID)] = snapshot
	return nil
}

func (m *memorySnapshots) Invalidate(_ context.Context, clubID, bookID int64) error {
	delete(m.entries, fmt.Sprintf("%d:%d", clubID, bookID))
	return nil
}

// memoryProgressMirror is an in-memory stand-in for the per-user
// progress mirror.
type memoryProgressMirror struct {
	entries map[string]cache.CachedProgress
}

func newMemoryProgressMirror() *memoryProgressMirror {
	return &memoryProgressMirror{entries: make(map[string]cache.CachedProgress)}
}

func (m *memoryProgressMirror) Get(_ context.Context, userID string, bookID int64) (*cache.CachedProgress, error) {
	row, ok := m.entries[fmt.Sprintf("%s:%d", userID, bookID)]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (m *memoryProgressMirror) Set(_ context.Context, userID string, bookID int64, percent float64) error {
	m.entries[fmt.Sprintf("%s:%d", userID, bookID)] = cache.CachedProgress{Percent: percent, UpdatedAt: time.Now()}
	return nil
}

func (m *memoryProgressMirror) Invalidate(_ context.Context, userID string, bookID int64) error {
	delete(m.entries, fmt.Sprintf("%s:%d", userID, bookID))
	return nil
}
