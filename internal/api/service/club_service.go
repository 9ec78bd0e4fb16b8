package service

import (
	"context"
	"errors"
	"time"

	"github.com/JEerdekens/bookclub/internal/api/models"
	"github.com/JEerdekens/bookclub/internal/api/repository"

	"gorm.io/gorm"
)

// HomeView is the "currently reading" screen: the caller's club, the
// current book, their own progress and rating, and the club averages.
// Everything is re-derived on every call; there is no per-view state.
type HomeView struct {
	Club       *models.Club  `json:"club,omitempty"`
	Book       *models.Book  `json:"book,omitempty"`
	MyProgress *float64      `json:"my_progress,omitempty"`
	MyRating   *float64      `json:"my_rating,omitempty"`
	ClubStats  *BookAverages `json:"club_stats,omitempty"`
}

type ClubService interface {
	Create(ctx context.Context, name, creatorID string) (*models.Club, error)
	Join(ctx context.Context, userID string, clubID int64) error
	// ScheduleMeeting sets the club's next meeting for the caller's club.
	ScheduleMeeting(ctx context.Context, userID string, date time.Time, timeOfDay, location string, bookID int64) error
	// SelectCurrentBook promotes a pick to the club's current book,
	// closing out the old one into the reading history.
	SelectCurrentBook(ctx context.Context, userID string, bookID int64) error
	Home(ctx context.Context, userID string) (*HomeView, error)
	Locations(ctx context.Context) ([]models.ClubLocation, error)
}

type clubService struct {
	clubRepo     repository.ClubRepository
	clubBookRepo repository.ClubBookRepository
	locationRepo repository.LocationRepository
	userRepo     repository.UserRepository
	membership   MembershipService
	stats        ClubStatsService
	books        BookService
	progress     ProgressService
	ratings      RatingService
}

func NewClubService(
	clubRepo repository.ClubRepository,
	clubBookRepo repository.ClubBookRepository,
	locationRepo repository.LocationRepository,
	userRepo repository.UserRepository,
	membership MembershipService,
	stats ClubStatsService,
	books BookService,
	progress ProgressService,
	ratings RatingService,
) ClubService {
	return &clubService{
		clubRepo:     clubRepo,
		clubBookRepo: clubBookRepo,
		locationRepo: locationRepo,
		userRepo:     userRepo,
		membership:   membership,
		stats:        stats,
		books:        books,
		progress:     progress,
		ratings:      ratings,
	}
}

func (s *clubService) Create(ctx context.Context, name, creatorID string) (*models.Club, error) {
	club := &models.Club{
		Name:      name,
		CreatorID: creatorID,
	}
	if err := s.clubRepo.Create(ctx, club); err != nil {
		return nil, err
	}
	// the creator joins their own club
	if err := s.userRepo.Update(ctx, creatorID, map[string]any{"club_id": club.ID}); err != nil {
		return nil, err
	}
	return club, nil
}

func (s *clubService) Join(ctx context.Context, userID string, clubID int64) error {
	if _, err := s.clubRepo.GetByID(ctx, clubID); err != nil {
		return err
	}
	return s.userRepo.Update(ctx, userID, map[string]any{"club_id": clubID})
}

func (s *clubService) ScheduleMeeting(ctx context.Context, userID string, date time.Time, timeOfDay, location string, bookID int64) error {
	clubID, err := s.callerClubID(ctx, userID)
	if err != nil {
		return err
	}
	return s.clubRepo.SetNextMeeting(ctx, clubID, date, timeOfDay, location, bookID)
}

func (s *clubService) SelectCurrentBook(ctx context.Context, userID string, bookID int64) error {
	clubID, err := s.callerClubID(ctx, userID)
	if err != nil {
		return err
	}

	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return err
	}

	// close out the outgoing book so PastReads picks it up
	if club.CurrentBookID != nil && *club.CurrentBookID != bookID {
		now := time.Now()
		if err := s.clubBookRepo.Append(ctx, &models.ClubBook{
			ClubID:     clubID,
			BookID:     *club.CurrentBookID,
			FinishedAt: &now,
		}); err != nil {
			return err
		}
	}

	return s.clubRepo.SetCurrentBook(ctx, clubID, bookID)
}

func (s *clubService) Home(ctx context.Context, userID string) (*HomeView, error) {
	membership, err := s.membership.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}
	if membership.Empty() {
		// "no club" is a displayable state, not a failure
		return &HomeView{}, nil
	}

	club, err := s.clubRepo.GetByID(ctx, *membership.ClubID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &HomeView{}, nil
		}
		return nil, err
	}

	view := &HomeView{Club: club}
	if club.CurrentBookID == nil {
		return view, nil
	}

	book, err := s.books.Get(ctx, *club.CurrentBookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return view, nil
		}
		return nil, err
	}
	view.Book = book

	if progress, err := s.progress.Get(ctx, userID, book.ID); err != nil {
		return nil, err
	} else if progress != nil {
		view.MyProgress = &progress.Percent
	}

	if rating, err := s.ratings.Get(ctx, userID, book.ID); err != nil {
		return nil, err
	} else if rating != nil {
		view.MyRating = &rating.Value
	}

	stats, err := s.stats.AveragesForClub(ctx, club.ID, book.ID, membership.MemberIDs())
	if err != nil {
		return nil, err
	}
	view.ClubStats = stats

	return view, nil
}

func (s *clubService) Locations(ctx context.Context) ([]models.ClubLocation, error) {
	return s.locationRepo.List(ctx)
}

func (s *clubService) callerClubID(ctx context.Context, userID string) (int64, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	if user.ClubID == nil {
		return 0, ErrNoClub
	}
	return *user.ClubID, nil
}
