package service

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/JEerdekens/bookclub/internal/api/models"
	"github.com/JEerdekens/bookclub/internal/api/repository"
	"github.com/JEerdekens/bookclub/internal/cache"
)

// BookAverages are club-scoped aggregates for one book. Nil pointers
// mean nobody in the member set has a row yet; callers must not
// conflate that with a 0 average.
type BookAverages struct {
	AverageRating   *float64 `json:"average_rating"`
	RatingCount     int      `json:"rating_count"`
	AverageProgress *float64 `json:"average_progress"`
	ProgressCount   int      `json:"progress_count"`
}

// snapshotStore is the slice of the aggregate cache the service needs.
// *cache.StatsCache satisfies it; tests swap in an in-memory store.
type snapshotStore interface {
	Enabled() bool
	Get(ctx context.Context, clubID, bookID int64) (*cache.CachedAverages, error)
	Set(ctx context.Context, clubID, bookID int64, snapshot cache.CachedAverages) error
	Invalidate(ctx context.Context, clubID, bookID int64) error
}

// ClubStatsService derives club-scoped views from raw per-user records.
type ClubStatsService interface {
	Averages(ctx context.Context, bookID int64, memberIDs []string) (*BookAverages, error)
	// AveragesForClub is Averages behind the short-TTL snapshot cache.
	AveragesForClub(ctx context.Context, clubID, bookID int64, memberIDs []string) (*BookAverages, error)
	WantToReadList(ctx context.Context, memberIDs []string) ([]models.Book, error)
	CandidatePicks(ctx context.Context, memberIDs []string) ([]models.Book, error)
	PastReads(ctx context.Context, clubID int64) ([]models.Book, error)
}

type clubStatsService struct {
	ratingRepo   repository.RatingRepository
	progressRepo repository.ProgressRepository
	wantRepo     repository.WantToReadRepository
	bookRepo     repository.BookRepository
	clubBookRepo repository.ClubBookRepository
	statsCache   snapshotStore
	logger       *slog.Logger
}

func NewClubStatsService(
	ratingRepo repository.RatingRepository,
	progressRepo repository.ProgressRepository,
	wantRepo repository.WantToReadRepository,
	bookRepo repository.BookRepository,
	clubBookRepo repository.ClubBookRepository,
	statsCache snapshotStore,
	logger *slog.Logger,
) ClubStatsService {
	return &clubStatsService{
		ratingRepo:   ratingRepo,
		progressRepo: progressRepo,
		wantRepo:     wantRepo,
		bookRepo:     bookRepo,
		clubBookRepo: clubBookRepo,
		statsCache:   statsCache,
		logger:       logger,
	}
}

// Averages computes the plain arithmetic mean of ratings and progress
// for one book, restricted to the member set. No weighting, no outlier
// handling.
func (s *clubStatsService) Averages(ctx context.Context, bookID int64, memberIDs []string) (*BookAverages, error) {
	ratings, err := s.ratingRepo.ListForBookByUsers(ctx, bookID, memberIDs)
	if err != nil {
		return nil, err
	}
	progress, err := s.progressRepo.ListForBookByUsers(ctx, bookID, memberIDs)
	if err != nil {
		return nil, err
	}

	result := &BookAverages{
		RatingCount:   len(ratings),
		ProgressCount: len(progress),
	}

	if len(ratings) > 0 {
		var sum float64
		for _, r := range ratings {
			sum += r.Value
		}
		avg := round2(sum / float64(len(ratings)))
		result.AverageRating = &avg
	}

	if len(progress) > 0 {
		var sum float64
		for _, p := range progress {
			sum += p.Percent
		}
		avg := round2(sum / float64(len(progress)))
		result.AverageProgress = &avg
	}

	return result, nil
}

func (s *clubStatsService) AveragesForClub(ctx context.Context, clubID, bookID int64, memberIDs []string) (*BookAverages, error) {
	cached, err := s.statsCache.Get(ctx, clubID, bookID)
	if err != nil {
		s.logger.Warn("stats cache read failed", "club_id", clubID, "book_id", bookID, "error", err)
	}
	if cached != nil {
		return &BookAverages{
			AverageRating:   cached.AverageRating,
			RatingCount:     cached.RatingCount,
			AverageProgress: cached.AverageProgress,
			ProgressCount:   cached.ProgressCount,
		}, nil
	}

	averages, err := s.Averages(ctx, bookID, memberIDs)
	if err != nil {
		return nil, err
	}

	if err := s.statsCache.Set(ctx, clubID, bookID, cache.CachedAverages{
		AverageRating:   averages.AverageRating,
		RatingCount:     averages.RatingCount,
		AverageProgress: averages.AverageProgress,
		ProgressCount:   averages.ProgressCount,
	}); err != nil {
		s.logger.Warn("stats cache write failed", "club_id", clubID, "book_id", bookID, "error", err)
	}

	return averages, nil
}

// WantToReadList returns the deduped union of the members' want-to-read
// books. References to books that no longer resolve are dropped.
func (s *clubStatsService) WantToReadList(ctx context.Context, memberIDs []string) ([]models.Book, error) {
	bookIDs, err := s.wantedBookIDs(ctx, memberIDs)
	if err != nil {
		return nil, err
	}
	return s.resolveBooks(ctx, bookIDs)
}

// CandidatePicks filters the club want list down to books no member
// has finished. A member without a progress record counts as 0, so a
// book drops out only once every member is recorded at 100.
func (s *clubStatsService) CandidatePicks(ctx context.Context, memberIDs []string) ([]models.Book, error) {
	bookIDs, err := s.wantedBookIDs(ctx, memberIDs)
	if err != nil {
		return nil, err
	}
	if len(bookIDs) == 0 {
		return []models.Book{}, nil
	}

	rows, err := s.progressRepo.ListByUsers(ctx, memberIDs)
	if err != nil {
		return nil, err
	}

	memberProgress := make(map[string]map[int64]float64, len(memberIDs))
	for _, memberID := range memberIDs {
		memberProgress[memberID] = map[int64]float64{}
	}
	for _, row := range rows {
		if byBook, ok := memberProgress[row.UserID]; ok {
			byBook[row.BookID] = row.Percent
		}
	}

	candidates := make([]int64, 0, len(bookIDs))
	for _, bookID := range bookIDs {
		unfinished := true
		for _, byBook := range memberProgress {
			if byBook[bookID] >= 100 {
				unfinished = false
				break
			}
		}
		if unfinished {
			candidates = append(candidates, bookID)
		}
	}

	return s.resolveBooks(ctx, candidates)
}

// PastReads returns the club's history entries finished strictly
// before now, most recent first.
func (s *clubStatsService) PastReads(ctx context.Context, clubID int64) ([]models.Book, error) {
	entries, err := s.clubBookRepo.ListFinishedBefore(ctx, clubID, time.Now())
	if err != nil {
		return nil, err
	}

	bookIDs := make([]int64, 0, len(entries))
	for _, entry := range entries {
		bookIDs = append(bookIDs, entry.BookID)
	}
	return s.resolveBooks(ctx, bookIDs)
}

// wantedBookIDs collapses the members' want-to-read rows to a unique
// book id list, first-seen order.
func (s *clubStatsService) wantedBookIDs(ctx context.Context, memberIDs []string) ([]int64, error) {
	entries, err := s.wantRepo.ListByUsers(ctx, memberIDs)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]bool, len(entries))
	ids := make([]int64, 0, len(entries))
	for _, entry := range entries {
		if !seen[entry.BookID] {
			seen[entry.BookID] = true
			ids = append(ids, entry.BookID)
		}
	}
	return ids, nil
}

// resolveBooks batch-resolves ids and keeps the input order. Ids the
// store no longer knows are skipped silently.
func (s *clubStatsService) resolveBooks(ctx context.Context, ids []int64) ([]models.Book, error) {
	if len(ids) == 0 {
		return []models.Book{}, nil
	}

	books, err := s.bookRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]models.Book, len(books))
	for _, book := range books {
		byID[book.ID] = book
	}

	ordered := make([]models.Book, 0, len(ids))
	for _, id := range ids {
		if book, ok := byID[id]; ok {
			ordered = append(ordered, book)
		}
	}
	return ordered, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
