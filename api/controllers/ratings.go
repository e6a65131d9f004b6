package controllers

import (
	"net/http"

	"github.com/coauto/coauto-backend/api/responses"
	"github.com/coauto/coauto-backend/api/validators"
	ratingsvc "github.com/coauto/coauto-backend/internal/ratings"
	pkgerrors "github.com/coauto/coauto-backend/pkg/errors"
	"github.com/coauto/coauto-backend/pkg/logger"
)

type createRatingRequest struct {
	Value    int    `json:"value" validate:"required,gte=1,lte=5"`
	Comment  string `json:"comment" validate:"required,max=100,alphanumspace"`
	IDAuto   int64  `json:"id_auto" validate:"required"`
	IDUser   int64  `json:"id_user" validate:"required"`
	IDStatus *int64 `json:"id_status,omitempty"`
}

type updateRatingRequest struct {
	Value    int    `json:"value" validate:"required,gte=1,lte=5"`
	Comment  string `json:"comment" validate:"required,max=100,alphanumspace"`
	IDStatus *int64 `json:"id_status,omitempty"`
}

// CreateRating handles review creation.
func CreateRating(svc ratingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rating service unavailable"))
			return
		}

		var payload createRatingRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rating, err := svc.Create(r.Context(), ratingsvc.CreateRatingInput{
			Value:    payload.Value,
			Comment:  payload.Comment,
			IDAuto:   payload.IDAuto,
			IDUser:   payload.IDUser,
			IDStatus: payload.IDStatus,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rating)
	}
}

// ListVehicleRatings returns the reviews of one listing.
func ListVehicleRatings(svc ratingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ratings, err := svc.ListByVehicle(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, ratings)
	}
}

// UpdateRating overwrites a review. A zero-row match still confirms.
func UpdateRating(svc ratingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateRatingRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		err = svc.Update(r.Context(), id, ratingsvc.UpdateRatingInput{
			Value:    payload.Value,
			Comment:  payload.Comment,
			IDStatus: payload.IDStatus,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteMessage(w, "updated")
	}
}

// DeleteRating removes a review.
func DeleteRating(svc ratingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteMessage(w, "deleted")
	}
}
