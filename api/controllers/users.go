package controllers

import (
	"net/http"

	"github.com/coauto/coauto-backend/api/responses"
	"github.com/coauto/coauto-backend/api/validators"
	usersvc "github.com/coauto/coauto-backend/internal/users"
	pkgerrors "github.com/coauto/coauto-backend/pkg/errors"
	"github.com/coauto/coauto-backend/pkg/logger"
)

type updateProfileRequest struct {
	Name     string  `json:"name" validate:"required,max=50"`
	Lastname string  `json:"lastname" validate:"required,max=100"`
	IDRole   int64   `json:"id_role" validate:"required"`
	ImageURL *string `json:"image_url,omitempty" validate:"omitempty,url,max=500"`
}

type userStatusRequest struct {
	IDStatus int64 `json:"id_status" validate:"required"`
}

// GetUser returns one mirrored account.
func GetUser(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, user)
	}
}

// ListUsers pages through accounts.
func ListUsers(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user service unavailable"))
			return
		}

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

// UpdateUserProfile overwrites the mutable profile fields.
func UpdateUserProfile(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProfileRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		err = svc.UpdateProfile(r.Context(), id, usersvc.UpdateProfileInput{
			Name:     payload.Name,
			Lastname: payload.Lastname,
			IDRole:   payload.IDRole,
			ImageURL: payload.ImageURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteMessage(w, "updated")
	}
}

// DeleteUser soft deletes an account and mirrors the change to the directory.
func DeleteUser(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload userStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SoftDelete(r.Context(), id, payload.IDStatus); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteMessage(w, "deleted")
	}
}
