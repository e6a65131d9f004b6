package catalog

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/coauto/coauto-backend/pkg/db/models"
	pkgerrors "github.com/coauto/coauto-backend/pkg/errors"
	"github.com/coauto/coauto-backend/pkg/pagination"
)

// Service exposes the vehicle listing operations.
type Service interface {
	Create(ctx context.Context, input CreateVehicleInput) (*VehicleDTO, error)
	Get(ctx context.Context, id int64) (*VehicleDTO, error)
	List(ctx context.Context, params pagination.Params) (*VehicleList, error)
	Search(ctx context.Context, brand, model string) ([]VehicleDTO, error)
	Update(ctx context.Context, id int64, input UpdateVehicleInput) error
	SoftDelete(ctx context.Context, id, statusID int64) error
}

type vehicleRepo interface {
	CreateWithImages(ctx context.Context, auto *models.Auto, imageURLs []string) (*models.Auto, error)
	FindByID(ctx context.Context, id int64) (*models.Auto, error)
	List(ctx context.Context, params pagination.Params) ([]models.Auto, int64, error)
	Search(ctx context.Context, brand, model string) ([]models.Auto, error)
	Update(ctx context.Context, id int64, input UpdateVehicleInput) error
	UpdateStatus(ctx context.Context, id, statusID int64) error
	ListImageURLs(ctx context.Context, autoID int64) ([]string, error)
	ListRatingValues(ctx context.Context, autoID int64) ([]int, error)
}

type statusProbe interface {
	StatusExists(ctx context.Context, id int64) (bool, error)
}

type service struct {
	repo     vehicleRepo
	statuses statusProbe
}

// NewService constructs a vehicle service instance.
func NewService(repo vehicleRepo, statuses statusProbe) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("vehicle repository required")
	}
	if statuses == nil {
		return nil, fmt.Errorf("status repository required")
	}
	return &service{repo: repo, statuses: statuses}, nil
}

// Create persists the listing and its image rows after the status probe.
func (s *service) Create(ctx context.Context, input CreateVehicleInput) (*VehicleDTO, error) {
	if err := s.ensureStatus(ctx, input.IDStatus); err != nil {
		return nil, err
	}

	auto := &models.Auto{
		Model:       input.Model,
		Brand:       input.Brand,
		Year:        input.Year,
		Price:       input.Price,
		BodyType:    input.BodyType,
		Fuel:        input.Fuel,
		Doors:       input.Doors,
		Motor:       input.Motor,
		Height:      input.Height,
		Width:       input.Width,
		Length:      input.Length,
		Description: input.Description,
		IDStatus:    input.IDStatus,
	}

	created, err := s.repo.CreateWithImages(ctx, auto, input.Images)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: insert vehicle")
	}

	dto := toVehicleDTO(created, input.Images, nil)
	return &dto, nil
}

// Get loads one listing with its images and computed rating average.
func (s *service) Get(ctx context.Context, id int64) (*VehicleDTO, error) {
	auto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vehicle not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: load vehicle")
	}

	dto, err := s.decorate(ctx, auto)
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// List pages through listings, decorating each row with its child queries.
func (s *service) List(ctx context.Context, params pagination.Params) (*VehicleList, error) {
	params = params.Normalize()
	rows, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: list vehicles")
	}

	vehicles := make([]VehicleDTO, 0, len(rows))
	for i := range rows {
		dto, err := s.decorate(ctx, &rows[i])
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, *dto)
	}

	return &VehicleList{
		Vehicles: vehicles,
		Paging:   pagination.NewPage(params, total),
	}, nil
}

// Search filters by brand and model fragments.
func (s *service) Search(ctx context.Context, brand, model string) ([]VehicleDTO, error) {
	rows, err := s.repo.Search(ctx, brand, model)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: search vehicles")
	}

	vehicles := make([]VehicleDTO, 0, len(rows))
	for i := range rows {
		dto, err := s.decorate(ctx, &rows[i])
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, *dto)
	}
	return vehicles, nil
}

// Update overwrites the listing. A zero-row match is still reported as
// success; callers cannot distinguish it from an applied write.
func (s *service) Update(ctx context.Context, id int64, input UpdateVehicleInput) error {
	if err := s.ensureStatus(ctx, input.IDStatus); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, id, input); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: update vehicle")
	}
	return nil
}

// SoftDelete repoints the listing's status to the supplied row.
func (s *service) SoftDelete(ctx context.Context, id, statusID int64) error {
	if err := s.ensureStatus(ctx, statusID); err != nil {
		return err
	}
	if err := s.repo.UpdateStatus(ctx, id, statusID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: soft delete vehicle")
	}
	return nil
}

func (s *service) ensureStatus(ctx context.Context, statusID int64) error {
	exists, err := s.statuses.StatusExists(ctx, statusID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: check status")
	}
	if !exists {
		return pkgerrors.New(pkgerrors.CodeValidation, "status does not exist")
	}
	return nil
}

func (s *service) decorate(ctx context.Context, auto *models.Auto) (*VehicleDTO, error) {
	images, err := s.repo.ListImageURLs(ctx, auto.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: list vehicle images")
	}
	ratings, err := s.repo.ListRatingValues(ctx, auto.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: list vehicle ratings")
	}
	dto := toVehicleDTO(auto, images, ratings)
	return &dto, nil
}
