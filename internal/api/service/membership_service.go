package service

import (
	"context"
	"errors"

	"github.com/JEerdekens/bookclub/internal/api/models"
	"github.com/JEerdekens/bookclub/internal/api/repository"

	"gorm.io/gorm"
)

// Membership is the resolved roster of a user's club. A zero value
// means "no club", which every caller must treat as a displayable
// state, not a failure.
type Membership struct {
	ClubID  *int64
	Members []models.User
}

// Empty reports whether the user resolved to no club.
func (m *Membership) Empty() bool {
	return m == nil || m.ClubID == nil
}

// MemberIDs returns the member set as raw user ids.
func (m *Membership) MemberIDs() []string {
	if m == nil {
		return nil
	}
	ids := make([]string, 0, len(m.Members))
	for _, member := range m.Members {
		ids = append(ids, member.ID)
	}
	return ids
}

type MembershipService interface {
	// Resolve maps a user to the full roster of their club, the
	// requesting user included. No caching: every call re-fetches.
	Resolve(ctx context.Context, userID string) (*Membership, error)
}

type membershipService struct {
	userRepo repository.UserRepository
}

func NewMembershipService(userRepo repository.UserRepository) MembershipService {
	return &membershipService{userRepo: userRepo}
}

func (s *membershipService) Resolve(ctx context.Context, userID string) (*Membership, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &Membership{}, nil
	}
	if err != nil {
		return nil, err
	}

	if user.ClubID == nil {
		return &Membership{}, nil
	}

	members, err := s.userRepo.FindByClub(ctx, *user.ClubID)
	if err != nil {
		return nil, err
	}

	return &Membership{ClubID: user.ClubID, Members: members}, nil
}
