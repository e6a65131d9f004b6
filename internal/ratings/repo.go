package ratings

import (
	"context"

	"gorm.io/gorm"

	"github.com/coauto/coauto-backend/pkg/db/models"
)

// Repository owns review persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a review row.
func (r *Repository) Create(ctx context.Context, rate *models.Rate) (*models.Rate, error) {
	if err := r.db.WithContext(ctx).Create(rate).Error; err != nil {
		return nil, err
	}
	return rate, nil
}

// FindByID loads a review without associations.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Rate, error) {
	var rate models.Rate
	if err := r.db.WithContext(ctx).First(&rate, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rate, nil
}

// ExistsForUserVehicle reports whether the (user, vehicle) pair already has a
// review.
func (r *Repository) ExistsForUserVehicle(ctx context.Context, userID, autoID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Rate{}).
		Where("id_user = ? AND id_auto = ?", userID, autoID).
		Count(&count).
		Error
	return count > 0, err
}

// ListByVehicle returns every review of one listing.
func (r *Repository) ListByVehicle(ctx context.Context, autoID int64) ([]models.Rate, error) {
	var rows []models.Rate
	err := r.db.WithContext(ctx).
		Where("id_auto = ?", autoID).
		Order("id ASC").
		Find(&rows).
		Error
	return rows, err
}

// Update overwrites the review columns. Missing ids fall through as
// successful no-ops.
func (r *Repository) Update(ctx context.Context, id int64, input UpdateRatingInput) error {
	values := map[string]any{
		"value":   input.Value,
		"comment": input.Comment,
	}
	if input.IDStatus != nil {
		values["id_status"] = *input.IDStatus
	}
	return r.db.WithContext(ctx).Model(&models.Rate{}).Where("id = ?", id).Updates(values).Error
}

// Delete removes a review row.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Rate{}).Error
}
