package service

import (
	"context"
	"errors"
	"strings"

	"github.com/JEerdekens/bookclub/internal/api/models"
	"github.com/JEerdekens/bookclub/internal/api/repository"

	"gorm.io/gorm"
)

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	// CheckUsername normalizes the candidate and reports availability.
	CheckUsername(ctx context.Context, username string) (bool, error)
	// UpdateProfile changes username and/or avatar. Nil fields are
	// left untouched.
	UpdateProfile(ctx context.Context, userID string, username, avatarURL *string) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

func (s *userService) CheckUsername(ctx context.Context, username string) (bool, error) {
	normalized := strings.ToLower(strings.TrimSpace(username))
	if len(normalized) < 3 {
		return false, ErrUsernameTooShort
	}

	_, err := s.userRepo.FindByUsername(ctx, normalized)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, username, avatarURL *string) (*models.User, error) {
	updates := map[string]any{}

	if username != nil {
		available, err := s.CheckUsername(ctx, *username)
		if err != nil {
			return nil, err
		}
		if !available {
			return nil, ErrNameInUse
		}
		updates["username"] = strings.ToLower(strings.TrimSpace(*username))
	}

	if avatarURL != nil {
		updates["avatar_url"] = *avatarURL
	}

	if len(updates) > 0 {
		if err := s.userRepo.Update(ctx, userID, updates); err != nil {
			return nil, err
		}
	}

	return s.userRepo.FindByID(ctx, userID)
}
