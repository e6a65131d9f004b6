package controllers

import (
	"net/http"

	"github.com/coauto/coauto-backend/api/responses"
	"github.com/coauto/coauto-backend/internal/lookups"
	pkgerrors "github.com/coauto/coauto-backend/pkg/errors"
	"github.com/coauto/coauto-backend/pkg/logger"
)

// ListStatuses returns the shared status table.
func ListStatuses(repo *lookups.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := repo.ListStatuses(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: list statuses"))
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// ListRoles returns the role table.
func ListRoles(repo *lookups.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := repo.ListRoles(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: list roles"))
			return
		}
		responses.WriteSuccess(w, rows)
	}
}
