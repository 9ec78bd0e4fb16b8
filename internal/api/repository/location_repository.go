package repository

import (
	"context"

	"github.com/JEerdekens/bookclub/internal/api/models"

	"gorm.io/gorm"
)

type LocationRepository interface {
	List(ctx context.Context) ([]models.ClubLocation, error)
	Create(ctx context.Context, location *models.ClubLocation) error
}

type locationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) List(ctx context.Context) ([]models.ClubLocation, error) {
	var locations []models.ClubLocation
	if err := r.db.WithContext(ctx).Order("name").Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

func (r *locationRepository) Create(ctx context.Context, location *models.ClubLocation) error {
	return r.db.WithContext(ctx).Create(location).Error
}
