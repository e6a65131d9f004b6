package users

import (
	"context"

	"gorm.io/gorm"

	"github.com/coauto/coauto-backend/pkg/db/models"
	"github.com/coauto/coauto-backend/pkg/pagination"
)

// Repository owns the local mirror of directory accounts.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a mirrored account row.
func (r *Repository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// FindByID loads an account without associations.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindBySub loads an account by its directory subject id.
func (r *Repository) FindBySub(ctx context.Context, sub string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "sub = ?", sub).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail loads an account by email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UserExists reports whether an account row exists.
func (r *Repository) UserExists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// List returns one page of accounts plus the total row count.
func (r *Repository) List(ctx context.Context, params pagination.Params) ([]models.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.User
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset(params.Offset()).
		Limit(params.Limit()).
		Find(&rows).
		Error
	return rows, total, err
}

// UpdateProfile overwrites the mutable profile columns. Missing ids fall
// through as successful no-ops.
func (r *Repository) UpdateProfile(ctx context.Context, id int64, input UpdateProfileInput) error {
	values := map[string]any{
		"name":     input.Name,
		"lastname": input.Lastname,
		"id_role":  input.IDRole,
	}
	if input.ImageURL != nil {
		values["image_url"] = *input.ImageURL
	}
	return r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(values).Error
}

// UpdateStatus repoints the account's status column.
func (r *Repository) UpdateStatus(ctx context.Context, id, statusID int64) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("id_status", statusID).
		Error
}
