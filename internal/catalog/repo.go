package catalog

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/coauto/coauto-backend/pkg/db/models"
	"github.com/coauto/coauto-backend/pkg/pagination"
)

// Repository owns vehicle and vehicle-image persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateWithImages inserts the listing and its image rows in one transaction.
func (r *Repository) CreateWithImages(ctx context.Context, auto *models.Auto, imageURLs []string) (*models.Auto, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(auto).Error; err != nil {
			return err
		}
		if len(imageURLs) == 0 {
			return nil
		}
		images := make([]models.AutoImage, 0, len(imageURLs))
		for _, url := range imageURLs {
			images = append(images, models.AutoImage{URL: url, IDAuto: auto.ID})
		}
		return tx.Create(&images).Error
	})
	if err != nil {
		return nil, err
	}
	return auto, nil
}

// FindByID loads the listing without associations.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Auto, error) {
	var auto models.Auto
	if err := r.db.WithContext(ctx).First(&auto, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &auto, nil
}

// Exists reports whether a listing row exists.
func (r *Repository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Auto{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// List returns one page of listings plus the total row count.
func (r *Repository) List(ctx context.Context, params pagination.Params) ([]models.Auto, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Auto{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Auto
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset(params.Offset()).
		Limit(params.Limit()).
		Find(&rows).
		Error
	return rows, total, err
}

// Search matches brand and model with case-insensitive bound patterns.
func (r *Repository) Search(ctx context.Context, brand, model string) ([]models.Auto, error) {
	qb := r.db.WithContext(ctx).Model(&models.Auto{})
	if s := strings.TrimSpace(brand); s != "" {
		qb = qb.Where("LOWER(brand) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	if s := strings.TrimSpace(model); s != "" {
		qb = qb.Where("LOWER(model) LIKE ?", "%"+strings.ToLower(s)+"%")
	}

	var rows []models.Auto
	err := qb.Order("id ASC").Find(&rows).Error
	return rows, err
}

// Update overwrites the listing columns. The caller does not learn whether a
// row matched; missing ids fall through as successful no-ops.
func (r *Repository) Update(ctx context.Context, id int64, input UpdateVehicleInput) error {
	values := map[string]any{
		"model":       input.Model,
		"brand":       input.Brand,
		"year":        input.Year,
		"price":       input.Price,
		"type":        input.BodyType,
		"fuel":        input.Fuel,
		"doors":       input.Doors,
		"motor":       input.Motor,
		"height":      input.Height,
		"width":       input.Width,
		"length":      input.Length,
		"description": input.Description,
		"id_status":   input.IDStatus,
	}
	return r.db.WithContext(ctx).Model(&models.Auto{}).Where("id = ?", id).Updates(values).Error
}

// UpdateStatus repoints the listing's status column.
func (r *Repository) UpdateStatus(ctx context.Context, id, statusID int64) error {
	return r.db.WithContext(ctx).
		Model(&models.Auto{}).
		Where("id = ?", id).
		Update("id_status", statusID).
		Error
}

// ListImageURLs returns the image urls for one listing.
func (r *Repository) ListImageURLs(ctx context.Context, autoID int64) ([]string, error) {
	var urls []string
	err := r.db.WithContext(ctx).
		Model(&models.AutoImage{}).
		Where("id_auto = ?", autoID).
		Order("id ASC").
		Pluck("url", &urls).
		Error
	return urls, err
}

// ListRatingValues returns the rating values for one listing.
func (r *Repository) ListRatingValues(ctx context.Context, autoID int64) ([]int, error) {
	var values []int
	err := r.db.WithContext(ctx).
		Model(&models.Rate{}).
		Where("id_auto = ?", autoID).
		Pluck("value", &values).
		Error
	return values, err
}
