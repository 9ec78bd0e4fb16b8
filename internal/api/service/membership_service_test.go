package service

import (
	"context"
	"testing"

	"github.com/JEerdekens/bookclub/internal/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func TestResolve_UserWithoutClub(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewMembershipService(userRepo)

	userRepo.On("FindByID", mock.Anything, "u1").Return(&models.User{ID: "u1"}, nil)

	membership, err := svc.Resolve(context.Background(), "u1")

	assert.NoError(t, err)
	assert.True(t, membership.Empty())
	assert.Empty(t, membership.MemberIDs())
	userRepo.AssertNotCalled(t, "FindByClub", mock.Anything, mock.Anything)
}

func TestResolve_UnknownUserIsEmptyNotError(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewMembershipService(userRepo)

	userRepo.On("FindByID", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	membership, err := svc.Resolve(context.Background(), "ghost")

	assert.NoError(t, err)
	assert.True(t, membership.Empty())
}

func TestResolve_ReturnsFullRoster(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewMembershipService(userRepo)

	clubID := int64(3)
	userRepo.On("FindByID", mock.Anything, "u1").Return(&models.User{ID: "u1", ClubID: &clubID}, nil)
	userRepo.On("FindByClub", mock.Anything, clubID).Return([]models.User{
		{ID: "u1"},
		{ID: "u2"},
		{ID: "u3"},
	}, nil)

	membership, err := svc.Resolve(context.Background(), "u1")

	assert.NoError(t, err)
	assert.False(t, membership.Empty())
	assert.Equal(t, clubID, *membership.ClubID)
	assert.Equal(t, []string{"u1", "u2", "u3"}, membership.MemberIDs())
}
