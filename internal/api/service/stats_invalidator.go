package service

import (
	"context"
	"log/slog"

	"github.com/JEerdekens/bookclub/internal/api/repository"
)

// StatsInvalidator drops a club's cached aggregate snapshot for a book
// after one of its members writes a rating or progress row, so the
// next home-screen read recomputes instead of serving the stale TTL
// window. Failures only extend staleness, so they are logged and
// swallowed. A nil invalidator is a no-op.
type StatsInvalidator struct {
	userRepo  repository.UserRepository
	snapshots snapshotStore
	logger    *slog.Logger
}

func NewStatsInvalidator(userRepo repository.UserRepository, snapshots snapshotStore, logger *slog.Logger) *StatsInvalidator {
	return &StatsInvalidator{
		userRepo:  userRepo,
		snapshots: snapshots,
		logger:    logger,
	}
}

// BookChanged invalidates the snapshot for the writer's club, if any.
func (i *StatsInvalidator) BookChanged(ctx context.Context, userID string, bookID int64) {
	if i == nil || i.snapshots == nil || !i.snapshots.Enabled() {
		return
	}

	user, err := i.userRepo.FindByID(ctx, userID)
	if err != nil {
		i.logger.Warn("stats invalidation user lookup failed", "user_id", userID, "error", err)
		return
	}
	if user.ClubID == nil {
		return
	}

	if err := i.snapshots.Invalidate(ctx, *user.ClubID, bookID); err != nil {
		i.logger.Warn("stats snapshot invalidation failed", "club_id", *user.ClubID, "book_id", bookID, "error", err)
	}
}
