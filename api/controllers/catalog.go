package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mbakken/labstock-backend/api/responses"
	"github.com/mbakken/labstock-backend/api/validators"
	"github.com/mbakken/labstock-backend/internal/catalog"
	pkgerrors "github.com/mbakken/labstock-backend/pkg/errors"
	"github.com/mbakken/labstock-backend/pkg/logger"
)

// GetItem returns a single item with its supplier listings.
func GetItem(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item id"))
			return
		}

		item, err := svc.GetItem(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, item)
	}
}

// ListItems returns a paginated item list with optional name search.
func ListItems(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 50, 1, 200)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		offset, err := validators.ParseQueryInt(r, "offset", 0, 0, 1_000_000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListItems(r.Context(), catalog.ListItemsInput{
			Search: validators.ParseQueryString(r, "search"),
			Limit:  limit,
			Offset: offset,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func ListDepartments(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return listReferences(logg, func(r *http.Request) (any, error) {
		return svc.ListDepartments(r.Context())
	})
}

func ListCategories(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return listReferences(logg, func(r *http.Request) (any, error) {
		return svc.ListCategories(r.Context())
	})
}

func ListLocations(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return listReferences(logg, func(r *http.Request) (any, error) {
		return svc.ListLocations(r.Context())
	})
}

func ListSuppliers(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return listReferences(logg, func(r *http.Request) (any, error) {
		return svc.ListSuppliers(r.Context())
	})
}

func listReferences(logg *logger.Logger, load func(*http.Request) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := load(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, data)
	}
}
