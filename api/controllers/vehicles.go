package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/coauto/coauto-backend/api/responses"
	"github.com/coauto/coauto-backend/api/validators"
	catalogsvc "github.com/coauto/coauto-backend/internal/catalog"
	pkgerrors "github.com/coauto/coauto-backend/pkg/errors"
	"github.com/coauto/coauto-backend/pkg/logger"
	"github.com/coauto/coauto-backend/pkg/pagination"
)

type vehicleRequest struct {
	Model       string   `json:"model" validate:"required,max=30"`
	Brand       string   `json:"brand" validate:"required,max=30"`
	Year        int      `json:"year" validate:"gte=0"`
	Price       float64  `json:"price" validate:"gte=0"`
	BodyType    string   `json:"type" validate:"required,max=30"`
	Fuel        string   `json:"fuel" validate:"required,max=20"`
	Doors       int      `json:"doors" validate:"gte=0"`
	Motor       string   `json:"motor" validate:"required,max=30"`
	Height      float64  `json:"height" validate:"gte=0"`
	Width       float64  `json:"width" validate:"gte=0"`
	Length      float64  `json:"length" validate:"gte=0"`
	Description string   `json:"description"`
	IDStatus    int64    `json:"id_status" validate:"required"`
	Images      []string `json:"images" validate:"omitempty,dive,url"`
}

type vehicleStatusRequest struct {
	IDStatus int64 `json:"id_status" validate:"required"`
}

// CreateVehicle handles listing creation with its image rows.
func CreateVehicle(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vehicle service unavailable"))
			return
		}

		var payload vehicleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vehicle, err := svc.Create(r.Context(), catalogsvc.CreateVehicleInput{
			Model:       payload.Model,
			Brand:       payload.Brand,
			Year:        payload.Year,
			Price:       payload.Price,
			BodyType:    payload.BodyType,
			Fuel:        payload.Fuel,
			Doors:       payload.Doors,
			Motor:       payload.Motor,
			Height:      payload.Height,
			Width:       payload.Width,
			Length:      payload.Length,
			Description: payload.Description,
			IDStatus:    payload.IDStatus,
			Images:      payload.Images,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, vehicle)
	}
}

// GetVehicle returns one listing with images and rating average.
func GetVehicle(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := vehicleContext(r.Context(), logg, id)
		vehicle, err := svc.Get(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, vehicle)
	}
}

// ListVehicles pages through listings.
func ListVehicles(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := paginationParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// SearchVehicles filters by brand and model query parameters.
func SearchVehicles(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		brand := validators.SanitizeString(r.URL.Query().Get("brand"), 30)
		model := validators.SanitizeString(r.URL.Query().Get("model"), 30)
		if brand == "" && model == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "brand or model query parameter is required"))
			return
		}

		vehicles, err := svc.Search(r.Context(), brand, model)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, vehicles)
	}
}

// UpdateVehicle overwrites a listing. A zero-row match still confirms.
func UpdateVehicle(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := vehicleContext(r.Context(), logg, id)
		var payload vehicleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		err = svc.Update(ctx, id, catalogsvc.UpdateVehicleInput{
			Model:       payload.Model,
			Brand:       payload.Brand,
			Year:        payload.Year,
			Price:       payload.Price,
			BodyType:    payload.BodyType,
			Fuel:        payload.Fuel,
			Doors:       payload.Doors,
			Motor:       payload.Motor,
			Height:      payload.Height,
			Width:       payload.Width,
			Length:      payload.Length,
			Description: payload.Description,
			IDStatus:    payload.IDStatus,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteMessage(w, "updated")
	}
}

// DeleteVehicle soft deletes a listing by repointing its status.
func DeleteVehicle(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := vehicleContext(r.Context(), logg, id)
		var payload vehicleStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.SoftDelete(ctx, id, payload.IDStatus); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteMessage(w, "deleted")
	}
}

// vehicleContext tags downstream log events with the listing under work.
func vehicleContext(ctx context.Context, logg *logger.Logger, id int64) context.Context {
	if logg == nil {
		return ctx
	}
	return logg.WithVehicleID(ctx, strconv.FormatInt(id, 10))
}

func paginationParams(r *http.Request) (pagination.Params, error) {
	page, err := validators.ParseQueryInt(r, "page", 1, 1, 1<<30)
	if err != nil {
		return pagination.Params{}, err
	}
	perPage, err := validators.ParseQueryInt(r, "per_page", pagination.DefaultPerPage, 1, pagination.MaxPerPage)
	if err != nil {
		return pagination.Params{}, err
	}
	return pagination.Params{Page: page, PerPage: perPage}, nil
}
