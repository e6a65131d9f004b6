package ratings

import (
	"context"
	"fmt"

	"github.com/coauto/coauto-backend/pkg/db/models"
	pkgerrors "github.com/coauto/coauto-backend/pkg/errors"
)

// Service exposes the review operations.
type Service interface {
	Create(ctx context.Context, input CreateRatingInput) (*RatingDTO, error)
	ListByVehicle(ctx context.Context, autoID int64) ([]RatingDTO, error)
	Update(ctx context.Context, id int64, input UpdateRatingInput) error
	Delete(ctx context.Context, id int64) error
}

type ratingRepo interface {
	Create(ctx context.Context, rate *models.Rate) (*models.Rate, error)
	ExistsForUserVehicle(ctx context.Context, userID, autoID int64) (bool, error)
	ListByVehicle(ctx context.Context, autoID int64) ([]models.Rate, error)
	Update(ctx context.Context, id int64, input UpdateRatingInput) error
	Delete(ctx context.Context, id int64) error
}

type userProbe interface {
	UserExists(ctx context.Context, id int64) (bool, error)
}

type vehicleProbe interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type statusProbe interface {
	StatusExists(ctx context.Context, id int64) (bool, error)
}

type service struct {
	repo     ratingRepo
	users    userProbe
	vehicles vehicleProbe
	statuses statusProbe
}

// NewService constructs a review service instance.
func NewService(repo ratingRepo, users userProbe, vehicles vehicleProbe, statuses statusProbe) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("rating repository required")
	}
	if users == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if vehicles == nil {
		return nil, fmt.Errorf("vehicle repository required")
	}
	if statuses == nil {
		return nil, fmt.Errorf("status repository required")
	}
	return &service{repo: repo, users: users, vehicles: vehicles, statuses: statuses}, nil
}

// Create inserts the review after the referent probes. A second review of the
// same vehicle by the same user is rejected before any insert.
func (s *service) Create(ctx context.Context, input CreateRatingInput) (*RatingDTO, error) {
	exists, err := s.users.UserExists(ctx, input.IDUser)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: check user")
	}
	if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user does not exist")
	}

	exists, err = s.vehicles.Exists(ctx, input.IDAuto)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: check vehicle")
	}
	if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vehicle does not exist")
	}

	if input.IDStatus != nil {
		exists, err = s.statuses.StatusExists(ctx, *input.IDStatus)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: check status")
		}
		if !exists {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "status does not exist")
		}
	}

	dup, err := s.repo.ExistsForUserVehicle(ctx, input.IDUser, input.IDAuto)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: check existing rating")
	}
	if dup {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user already rated this vehicle")
	}

	rate := &models.Rate{
		Value:    input.Value,
		Comment:  input.Comment,
		IDAuto:   input.IDAuto,
		IDUser:   input.IDUser,
		IDStatus: input.IDStatus,
	}
	created, err := s.repo.Create(ctx, rate)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: insert rating")
	}

	dto := toRatingDTO(created)
	return &dto, nil
}

// ListByVehicle returns every review of one listing.
func (s *service) ListByVehicle(ctx context.Context, autoID int64) ([]RatingDTO, error) {
	rows, err := s.repo.ListByVehicle(ctx, autoID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: list ratings")
	}
	dtos := make([]RatingDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, toRatingDTO(&rows[i]))
	}
	return dtos, nil
}

// Update overwrites the review. A zero-row match is still reported as
// success.
func (s *service) Update(ctx context.Context, id int64, input UpdateRatingInput) error {
	if input.IDStatus != nil {
		exists, err := s.statuses.StatusExists(ctx, *input.IDStatus)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: check status")
		}
		if !exists {
			return pkgerrors.New(pkgerrors.CodeValidation, "status does not exist")
		}
	}
	if err := s.repo.Update(ctx, id, input); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: update rating")
	}
	return nil
}

// Delete removes the review. Missing ids fall through as successful no-ops.
func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: delete rating")
	}
	return nil
}
