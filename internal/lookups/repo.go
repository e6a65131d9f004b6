// Package lookups exposes the shared status and role tables. Services use it
// for referential probes before writes; the API surfaces it read-only.
package lookups

import (
	"context"

	"gorm.io/gorm"

	"github.com/coauto/coauto-backend/pkg/db/models"
)

// Repository reads the lookup tables.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindStatus loads a status row by id.
func (r *Repository) FindStatus(ctx context.Context, id int64) (*models.Status, error) {
	var status models.Status
	if err := r.db.WithContext(ctx).First(&status, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &status, nil
}

// StatusExists reports whether a status row exists.
func (r *Repository) StatusExists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Status{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// ListStatuses returns every status row.
func (r *Repository) ListStatuses(ctx context.Context) ([]models.Status, error) {
	var rows []models.Status
	err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error
	return rows, err
}

// RoleExists reports whether a role row exists.
func (r *Repository) RoleExists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Role{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// FindRoleByName loads a role by its unique name.
func (r *Repository) FindRoleByName(ctx context.Context, name string) (*models.Role, error) {
	var role models.Role
	if err := r.db.WithContext(ctx).First(&role, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// ListRoles returns every role row.
func (r *Repository) ListRoles(ctx context.Context) ([]models.Role, error) {
	var rows []models.Role
	err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error
	return rows, err
}
