package users

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/coauto/coauto-backend/pkg/db/models"
	pkgerrors "github.com/coauto/coauto-backend/pkg/errors"
	"github.com/coauto/coauto-backend/pkg/pagination"
)

// Service exposes the account profile operations.
type Service interface {
	Get(ctx context.Context, id int64) (*UserDTO, error)
	List(ctx context.Context, params pagination.Params) (*UserList, error)
	UpdateProfile(ctx context.Context, id int64, input UpdateProfileInput) error
	SoftDelete(ctx context.Context, id, statusID int64) error
}

type userRepo interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context, params pagination.Params) ([]models.User, int64, error)
	UpdateProfile(ctx context.Context, id int64, input UpdateProfileInput) error
	UpdateStatus(ctx context.Context, id, statusID int64) error
}

type statusReader interface {
	FindStatus(ctx context.Context, id int64) (*models.Status, error)
}

type roleProbe interface {
	RoleExists(ctx context.Context, id int64) (bool, error)
}

// accountToggler flips the directory side of a soft delete.
type accountToggler interface {
	AdminEnableUser(ctx context.Context, username string) error
	AdminDisableUser(ctx context.Context, username string) error
}

type service struct {
	repo      userRepo
	statuses  statusReader
	roles     roleProbe
	directory accountToggler
}

// NewService constructs a user service instance.
func NewService(repo userRepo, statuses statusReader, roles roleProbe, directory accountToggler) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if statuses == nil {
		return nil, fmt.Errorf("status repository required")
	}
	if roles == nil {
		return nil, fmt.Errorf("role repository required")
	}
	if directory == nil {
		return nil, fmt.Errorf("directory client required")
	}
	return &service{repo: repo, statuses: statuses, roles: roles, directory: directory}, nil
}

// Get loads one account.
func (s *service) Get(ctx context.Context, id int64) (*UserDTO, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: load user")
	}
	dto := toUserDTO(user)
	return &dto, nil
}

// List pages through accounts.
func (s *service) List(ctx context.Context, params pagination.Params) (*UserList, error) {
	params = params.Normalize()
	rows, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: list users")
	}

	dtos := make([]UserDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, toUserDTO(&rows[i]))
	}
	return &UserList{
		Users:  dtos,
		Paging: pagination.NewPage(params, total),
	}, nil
}

// UpdateProfile overwrites the mutable profile fields. A zero-row match is
// still reported as success.
func (s *service) UpdateProfile(ctx context.Context, id int64, input UpdateProfileInput) error {
	exists, err := s.roles.RoleExists(ctx, input.IDRole)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: check role")
	}
	if !exists {
		return pkgerrors.New(pkgerrors.CodeValidation, "role does not exist")
	}

	if err := s.repo.UpdateProfile(ctx, id, input); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: update user")
	}
	return nil
}

// SoftDelete repoints the account's status row, then mirrors the change into
// the directory: an active status re-enables the account, anything else
// disables it. The two writes are sequential; a directory failure after the
// local update is reported as-is.
func (s *service) SoftDelete(ctx context.Context, id, statusID int64) error {
	status, err := s.statuses.FindStatus(ctx, statusID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeValidation, "status does not exist")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: load status")
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: load user")
	}

	if err := s.repo.UpdateStatus(ctx, id, statusID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: update user status")
	}

	if status.Value {
		return s.directory.AdminEnableUser(ctx, user.Sub)
	}
	return s.directory.AdminDisableUser(ctx, user.Sub)
}
